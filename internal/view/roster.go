package view

import (
	"fmt"

	"gastos/internal/core"
	"gastos/internal/dataset"
)

type (
	Option struct {
		Value    string
		Selected bool
	}

	Card struct {
		ID         string
		Name       string
		Subtitle   string
		PhotoURL   string // empty renders the placeholder
		YearTotal  string
		MonthTotal string
		DetailURL  string
	}

	// RosterList is the part of the roster screen replaced on filter changes.
	RosterList struct {
		Cards   []Card
		Matched int
		Total   int
		Summary string
	}

	RosterPage struct {
		Title   string
		Banner  string
		Sources []string
		Query   string
		Regions []Option
		Parties []Option
		Filter  core.FilterState
		List    RosterList
	}
)

// NewRosterList filters the snapshot roster and builds one card per match.
func NewRosterList(snap dataset.RosterSnapshot, state core.FilterState) RosterList {
	matched := core.Filter(snap.Roster, state)
	cards := make([]Card, len(matched))
	for i, l := range matched {
		cards[i] = Card{
			ID:         l.ID.String(),
			Name:       l.Name,
			Subtitle:   l.Subtitle(),
			PhotoURL:   l.PhotoURL,
			YearTotal:  core.FormatBRL(l.YearTotal),
			MonthTotal: core.FormatBRL(l.MonthTotal),
			DetailURL:  DetailURL(l.ID),
		}
	}
	return RosterList{
		Cards:   cards,
		Matched: len(matched),
		Total:   len(snap.Roster),
		Summary: fmt.Sprintf("%d de %d deputados", len(matched), len(snap.Roster)),
	}
}

// NewRosterPage builds the full roster screen.
func NewRosterPage(snap dataset.RosterSnapshot, state core.FilterState) RosterPage {
	return RosterPage{
		Title:   AppTitle,
		Banner:  Banner(snap.Metadata),
		Sources: sources(snap.Metadata),
		Query:   state.Query,
		Regions: options(snap.Facets.Regions, state.Region),
		Parties: options(snap.Facets.Parties, state.Party),
		Filter:  state,
		List:    NewRosterList(snap, state),
	}
}

func options(values []string, selected string) []Option {
	out := make([]Option, len(values))
	for i, v := range values {
		out[i] = Option{Value: v, Selected: v == selected}
	}
	return out
}
