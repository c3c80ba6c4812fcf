package core

import (
	"slices"
	"sort"
	"strings"
)

// FilterState holds the roster filter inputs. Empty fields do not constrain.
type FilterState struct {
	Query  string
	Region string
	Party  string
}

// Facets are the selectable filter values derived from a roster.
type Facets struct {
	Regions []string
	Parties []string
}

// Active reports whether any clause constrains the roster.
func (f FilterState) Active() bool {
	return f.normalizedQuery() != "" || f.Region != "" || f.Party != ""
}

func (f FilterState) normalizedQuery() string {
	return strings.ToLower(strings.TrimSpace(f.Query))
}

// Matches applies every active clause to one record.
func (f FilterState) Matches(l LegislatorSummary) bool {
	return f.matches(l, f.normalizedQuery())
}

func (f FilterState) matches(l LegislatorSummary, q string) bool {
	if f.Region != "" && l.Region != f.Region {
		return false
	}
	if f.Party != "" && l.Party != f.Party {
		return false
	}
	if q != "" &&
		!strings.Contains(strings.ToLower(l.Name), q) &&
		!strings.Contains(strings.ToLower(l.LegalName), q) {
		return false
	}
	return true
}

// Filter returns the records passing f, in roster order.
func Filter(roster []LegislatorSummary, f FilterState) []LegislatorSummary {
	q := f.normalizedQuery()
	out := make([]LegislatorSummary, 0, len(roster))
	for _, l := range roster {
		if f.matches(l, q) {
			out = append(out, l)
		}
	}
	return out
}

// SortBySpend returns a copy of the roster ordered by yearly total, highest
// first. Equal totals keep their original order.
func SortBySpend(roster []LegislatorSummary) []LegislatorSummary {
	out := slices.Clone(roster)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].YearTotal > out[j].YearTotal
	})
	return out
}

// DeriveFacets collects the distinct non-empty regions and parties, sorted.
func DeriveFacets(roster []LegislatorSummary) Facets {
	regions := make([]string, 0, len(roster))
	parties := make([]string, 0, len(roster))
	for _, l := range roster {
		regions = append(regions, l.Region)
		parties = append(parties, l.Party)
	}
	return Facets{Regions: distinctSorted(regions), Parties: distinctSorted(parties)}
}

func distinctSorted(in []string) []string {
	seen := make(map[string]struct{}, len(in))
	out := make([]string, 0, len(in))
	for _, v := range in {
		if v == "" {
			continue
		}
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	sort.Strings(out)
	return out
}

// FindByID locates a record by identifier.
func FindByID(roster []LegislatorSummary, raw string) (LegislatorSummary, bool) {
	for _, l := range roster {
		if l.ID.Matches(raw) {
			return l, true
		}
	}
	return LegislatorSummary{}, false
}
