package http

import (
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"gastos/internal/core"
)

func TestParseFilter(t *testing.T) {
	tests := []struct {
		name  string
		query string
		want  core.FilterState
	}{
		{"empty", "", core.FilterState{}},
		{"all clauses", "q=ana&uf=SP&partido=X", core.FilterState{Query: "ana", Region: "SP", Party: "X"}},
		{"trimmed", "q=%20%20bru%20&uf=%20RJ", core.FilterState{Query: "bru", Region: "RJ"}},
		{"control chars dropped", "q=a%00b", core.FilterState{Query: "ab"}},
		{"unknown params ignored", "foo=bar&uf=MG", core.FilterState{Region: "MG"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			values, err := url.ParseQuery(tt.query)
			if err != nil {
				t.Fatal(err)
			}
			if got := ParseFilter(values); got != tt.want {
				t.Errorf("ParseFilter(%q) = %+v, want %+v", tt.query, got, tt.want)
			}
		})
	}
}

func TestFilterQueryRoundTrip(t *testing.T) {
	state := core.FilterState{Query: "carla dias", Party: "Y"}
	encoded := FilterQuery(state).Encode()
	if encoded != "partido=Y&q=carla+dias" {
		t.Fatalf("Encode() = %q", encoded)
	}
	values, _ := url.ParseQuery(encoded)
	if got := ParseFilter(values); got != state {
		t.Fatalf("round trip = %+v", got)
	}
	if FilterQuery(core.FilterState{}).Encode() != "" {
		t.Fatal("empty state should encode to nothing")
	}
}

func TestSanitizeInputCapsLength(t *testing.T) {
	long := strings.Repeat("é", maxParamLength+50)
	if got := SanitizeInput(long); len([]rune(got)) != maxParamLength {
		t.Fatalf("len = %d", len([]rune(got)))
	}
}

func TestParseIDAndIsHTMX(t *testing.T) {
	r := httptest.NewRequest("GET", "/deputado?id=%2042%20", nil)
	if got := ParseID(r.URL.Query()); got != "42" {
		t.Fatalf("ParseID() = %q", got)
	}
	if IsHTMX(r) {
		t.Fatal("plain request reported as htmx")
	}
	r.Header.Set("HX-Request", "true")
	if !IsHTMX(r) {
		t.Fatal("htmx request not detected")
	}
}
