package core

import (
	"fmt"
	"slices"
	"sort"
)

const (
	TopCategoriesLimit = 8
	TopVendorsLimit    = 10
	TransactionLimit   = 400
)

// MonthKeys are the month keys of a detail document, in calendar order.
var MonthKeys = [12]string{"01", "02", "03", "04", "05", "06", "07", "08", "09", "10", "11", "12"}

// MonthPoint is one bar of the monthly chart.
type MonthPoint struct {
	Key    string
	Label  string
	Amount float64
}

// IsMonthKey reports whether k is one of "01".."12".
func IsMonthKey(k string) bool {
	return slices.Contains(MonthKeys[:], k)
}

// MonthlySeries always yields twelve points; months absent from the document are 0.
func MonthlySeries(d LegislatorDetail) [12]MonthPoint {
	var out [12]MonthPoint
	for i, k := range MonthKeys {
		out[i] = MonthPoint{Key: k, Label: fmt.Sprintf("M%s", k), Amount: d.ByMonth.Get(k)}
	}
	return out
}

// TopN ranks a mapping by amount, highest first, and keeps at most n entries.
// Ties keep document order.
func TopN(a Amounts, n int) []KeyAmount {
	ranked := slices.Clone([]KeyAmount(a))
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Amount > ranked[j].Amount
	})
	if n >= 0 && len(ranked) > n {
		ranked = ranked[:n]
	}
	return ranked
}

func TopCategories(d LegislatorDetail) []KeyAmount {
	return TopN(d.ByCategory, TopCategoriesLimit)
}

func TopVendors(d LegislatorDetail) []KeyAmount {
	return TopN(d.ByVendor, TopVendorsLimit)
}

// CappedTransactions returns the first TransactionLimit transactions in
// document order.
func CappedTransactions(d LegislatorDetail) []Transaction {
	if len(d.Transactions) <= TransactionLimit {
		return d.Transactions
	}
	return d.Transactions[:TransactionLimit]
}
