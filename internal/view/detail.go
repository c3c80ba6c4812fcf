package view

import (
	"fmt"
	"net/url"
	"strconv"

	"gastos/internal/core"
	"gastos/internal/dataset"
)

type (
	KPI struct {
		Label string
		Value string
	}

	RankedRow struct {
		Name   string
		Amount string
		// Width is the bar length in percent of the largest row.
		Width int
	}

	TableRow struct {
		Date        string
		Category    string
		Vendor      string
		Amount      string
		DocumentURL string // empty hides the link
	}

	DetailPage struct {
		Title      string
		Banner     string
		Sources    []string
		ID         string
		Name       string
		Subtitle   string
		PhotoURL   string
		SourceLine string
		KPIs       []KPI

		Months        []core.MonthPoint
		TopCategories []RankedRow
		TopVendors    []RankedRow

		Rows      []TableRow
		Truncated bool
		// TableNote is set when Rows is a prefix of the transactions.
		TableNote string
		ChartsURL string
	}

	// Charts is the JSON document feeding the two Chart.js canvases.
	Charts struct {
		Months     ChartSeries `json:"months"`
		Categories ChartSeries `json:"categories"`
	}

	ChartSeries struct {
		Labels []string  `json:"labels"`
		Values []float64 `json:"values"`
	}
)

// NewDetailPage builds the detail screen of one legislator.
func NewDetailPage(snap dataset.DetailSnapshot) DetailPage {
	l, d := snap.Legislator, snap.Detail
	months := core.MonthlySeries(d)
	capped := core.CappedTransactions(d)

	p := DetailPage{
		Title:      l.Name + " — Gastos",
		Banner:     Banner(snap.Metadata),
		Sources:    sources(snap.Metadata),
		ID:         l.ID.String(),
		Name:       l.Name,
		Subtitle:   l.Subtitle(),
		PhotoURL:   l.PhotoURL,
		SourceLine: SourceLine,
		KPIs: []KPI{
			{Label: "Gasto no ano", Value: core.FormatBRL(d.YearTotal)},
			{Label: "Gasto no mês", Value: core.FormatBRL(d.MonthTotal)},
			{Label: "Lançamentos no ano", Value: strconv.Itoa(len(d.Transactions))},
		},
		Months:        months[:],
		TopCategories: ranked(core.TopCategories(d)),
		TopVendors:    ranked(core.TopVendors(d)),
		Rows:          make([]TableRow, len(capped)),
		Truncated:     len(capped) < len(d.Transactions),
		ChartsURL:     "/api/deputado/charts?id=" + url.QueryEscape(l.ID.String()),
	}
	for i, t := range capped {
		p.Rows[i] = TableRow{
			Date:        t.Date,
			Category:    t.Category,
			Vendor:      t.Vendor,
			Amount:      core.FormatDecimal(t.Amount),
			DocumentURL: t.DocumentURL,
		}
	}
	if p.Truncated {
		p.TableNote = fmt.Sprintf("Exibindo %d de %d lançamentos", len(capped), len(d.Transactions))
	}
	return p
}

// NewCharts returns the monthly bar series and the top category pie series.
func NewCharts(d core.LegislatorDetail) Charts {
	var c Charts
	for _, m := range core.MonthlySeries(d) {
		c.Months.Labels = append(c.Months.Labels, m.Label)
		c.Months.Values = append(c.Months.Values, m.Amount)
	}
	c.Categories.Labels = []string{}
	c.Categories.Values = []float64{}
	for _, kv := range core.TopCategories(d) {
		c.Categories.Labels = append(c.Categories.Labels, kv.Key)
		c.Categories.Values = append(c.Categories.Values, kv.Amount)
	}
	return c
}

func ranked(in []core.KeyAmount) []RankedRow {
	var top float64
	for _, kv := range in {
		if kv.Amount > top {
			top = kv.Amount
		}
	}
	out := make([]RankedRow, len(in))
	for i, kv := range in {
		width := 0
		if top > 0 && kv.Amount > 0 {
			width = int(kv.Amount*100/top + 0.5)
			if width < 2 {
				width = 2
			}
			if width > 100 {
				width = 100
			}
		}
		out[i] = RankedRow{Name: kv.Key, Amount: core.FormatBRL(kv.Amount), Width: width}
	}
	return out
}
