// Package http provides HTTP server and handler implementations.
//
// This file turns query strings into roster filter state and legislator IDs.

package http

import (
	"net/http"
	"net/url"
	"strings"
	"unicode/utf8"

	"gastos/internal/core"
)

// maxParamLength bounds free text parameters.
const maxParamLength = 200

// ParseFilter extracts the roster filter from q, uf and partido.
func ParseFilter(values url.Values) core.FilterState {
	return core.FilterState{
		Query:  SanitizeInput(values.Get("q")),
		Region: SanitizeInput(values.Get("uf")),
		Party:  SanitizeInput(values.Get("partido")),
	}
}

// FilterQuery is the inverse of ParseFilter; empty clauses are omitted.
func FilterQuery(state core.FilterState) url.Values {
	v := url.Values{}
	if state.Query != "" {
		v.Set("q", state.Query)
	}
	if state.Region != "" {
		v.Set("uf", state.Region)
	}
	if state.Party != "" {
		v.Set("partido", state.Party)
	}
	return v
}

// ParseID returns the raw id parameter, trimmed.
func ParseID(values url.Values) string {
	return SanitizeInput(values.Get("id"))
}

// IsHTMX reports whether the request was issued by htmx.
func IsHTMX(r *http.Request) bool {
	return r.Header.Get("HX-Request") == "true"
}

// SanitizeInput trims whitespace, drops control characters and caps length.
func SanitizeInput(s string) string {
	s = strings.TrimSpace(s)
	s = strings.Map(func(r rune) rune {
		if r < 32 && r != 9 && r != 10 && r != 13 {
			return -1
		}
		return r
	}, s)
	if utf8.RuneCountInString(s) > maxParamLength {
		s = string([]rune(s)[:maxParamLength])
	}
	return s
}
