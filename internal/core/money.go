// Package core provides the legislator expense domain: dataset records,
// the roster filter engine, aggregate ranking and money formatting.
//
// This file contains the currency helpers shared by every view that shows
// an amount.
package core

import (
	"math"
	"strconv"
	"strings"
)

// CurrencySymbol is the Brazilian real symbol used by FormatBRL.
const CurrencySymbol = "R$"

// ToCents rounds an amount in reais to whole cents, half away from zero.
func ToCents(v float64) int64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return int64(math.Round(v * 100))
}

// FormatBRL formats an amount the way pt-BR browsers render BRL currency.
//
// Examples:
//
//	FormatBRL(0)        -> "R$ 0,00"
//	FormatBRL(1234.5)   -> "R$ 1.234,50"
//	FormatBRL(-12.5)    -> "-R$ 12,50"
//
// The separator after the symbol is a non-breaking space.
func FormatBRL(v float64) string {
	cents := ToCents(v)
	neg := cents < 0
	if neg {
		cents = -cents
	}
	s := CurrencySymbol + "\u00a0" + groupThousands(cents/100) + "," + pad2(cents%100)
	if neg {
		return "-" + s
	}
	return s
}

// FormatDecimal renders an amount with exactly two decimals and a dot
// separator, as used in the transaction table.
func FormatDecimal(v float64) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		v = 0
	}
	return strconv.FormatFloat(v, 'f', 2, 64)
}

func groupThousands(n int64) string {
	digits := strconv.FormatInt(n, 10)
	if len(digits) <= 3 {
		return digits
	}
	var b strings.Builder
	lead := len(digits) % 3
	if lead > 0 {
		b.WriteString(digits[:lead])
	}
	for i := lead; i < len(digits); i += 3 {
		if b.Len() > 0 {
			b.WriteByte('.')
		}
		b.WriteString(digits[i : i+3])
	}
	return b.String()
}

func pad2(n int64) string {
	if n < 10 {
		return "0" + strconv.FormatInt(n, 10)
	}
	return strconv.FormatInt(n, 10)
}
