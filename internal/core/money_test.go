package core

import (
	"encoding/json"
	"testing"
)

func TestFormatBRL(t *testing.T) {
	cases := []struct {
		in  float64
		out string
	}{
		{0, "R$\u00a00,00"},
		{1, "R$\u00a01,00"},
		{0.5, "R$\u00a00,50"},
		{1234.5, "R$\u00a01.234,50"},
		{1000, "R$\u00a01.000,00"},
		{999.999, "R$\u00a01.000,00"},
		{1234567.89, "R$\u00a01.234.567,89"},
		{-12.5, "-R$\u00a012,50"},
	}
	for _, tc := range cases {
		if got := FormatBRL(tc.in); got != tc.out {
			t.Fatalf("FormatBRL(%v) = %q, want %q", tc.in, got, tc.out)
		}
	}
}

func TestFormatBRLZeroNullAbsent(t *testing.T) {
	var withZero, withNull, absent Transaction
	for _, doc := range []struct {
		raw string
		dst *Transaction
	}{
		{`{"valor":0}`, &withZero},
		{`{"valor":null}`, &withNull},
		{`{}`, &absent},
	} {
		var w struct {
			Valor float64 `json:"valor"`
		}
		if err := json.Unmarshal([]byte(doc.raw), &w); err != nil {
			t.Fatalf("decode %s: %v", doc.raw, err)
		}
		doc.dst.Amount = w.Valor
	}
	a, b, c := FormatBRL(withZero.Amount), FormatBRL(withNull.Amount), FormatBRL(absent.Amount)
	if a != b || b != c {
		t.Fatalf("zero amounts differ: %q %q %q", a, b, c)
	}
}

func TestFormatDecimal(t *testing.T) {
	cases := map[float64]string{
		0:       "0.00",
		12.3:    "12.30",
		1234.56: "1234.56",
		-3:      "-3.00",
	}
	for in, want := range cases {
		if got := FormatDecimal(in); got != want {
			t.Fatalf("FormatDecimal(%v) = %q, want %q", in, got, want)
		}
	}
}
