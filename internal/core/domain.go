package core

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
)

type (
	// ID identifies a legislator. The datasets carry it as a JSON number in the
	// roster and as a string in links, so it is kept in its textual form.
	ID string

	LegislatorSummary struct {
		ID         ID
		Name       string
		LegalName  string // empty when absent
		Party      string // empty when absent
		Region     string // empty when absent
		PhotoURL   string // empty when absent
		YearTotal  float64
		MonthTotal float64
	}

	DatasetMetadata struct {
		UpdatedAt   string
		Year        int
		Legislature int
		Sources     []string
	}

	Transaction struct {
		Date        string
		Category    string
		Vendor      string
		Amount      float64
		DocumentURL string
	}

	LegislatorDetail struct {
		ID           ID
		Year         int
		CurrentMonth string
		YearTotal    float64
		MonthTotal   float64
		Transactions []Transaction
		ByMonth      Amounts
		ByCategory   Amounts
		ByVendor     Amounts
	}
)

var ErrInvalidID = errors.New("invalid id")

// ParseID normalizes a raw JSON value (number or string) to an ID.
// Numbers use their shortest textual form, so 42 and 42.0 both become "42".
func ParseID(raw json.RawMessage) (ID, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return "", ErrInvalidID
	}
	if raw[0] == '"' {
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return "", fmt.Errorf("decode id string: %w", err)
		}
		return ID(s), nil
	}
	var n json.Number
	if err := json.Unmarshal(raw, &n); err != nil {
		return "", fmt.Errorf("decode id number: %w", err)
	}
	if i, err := n.Int64(); err == nil {
		return ID(strconv.FormatInt(i, 10)), nil
	}
	f, err := n.Float64()
	if err != nil {
		return "", ErrInvalidID
	}
	return ID(strconv.FormatFloat(f, 'f', -1, 64)), nil
}

func (id ID) String() string { return string(id) }

// Matches compares an ID with an identifier received from a link.
func (id ID) Matches(raw string) bool {
	return string(id) == raw
}

// PathSafe reports whether the ID can be used as a single object name segment.
func (id ID) PathSafe() bool {
	s := string(id)
	if s == "" || s == "." || s == ".." {
		return false
	}
	return !strings.ContainsAny(s, `/\`) && !strings.ContainsRune(s, 0)
}

// Subtitle is the "party · region" line shown under a name.
func (l LegislatorSummary) Subtitle() string {
	return l.Party + " · " + l.Region
}
