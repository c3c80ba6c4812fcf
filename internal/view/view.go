// Package view builds the template models of the two dashboard screens from
// dataset snapshots. Every amount is formatted here so templates stay dumb.
package view

import (
	"fmt"
	"net/url"

	"gastos/internal/core"
)

// User-facing messages.
const (
	MsgRosterLoadFailed = "Erro ao carregar dados. Confira se a pasta docs/data existe."
	MsgMissingID        = "ID não informado."
	MsgNotFound         = "Deputado não encontrado."
	MsgDetailLoadFailed = "Erro ao carregar dados do deputado."

	SourceLine = "Fonte: Câmara dos Deputados (Dados Abertos / Cota Parlamentar)"
	AppTitle   = "Gastos dos Deputados"
)

// Banner is the metadata line shown on both screens, empty without metadata.
func Banner(meta *core.DatasetMetadata) string {
	if meta == nil {
		return ""
	}
	return fmt.Sprintf("Última atualização: %s · Ano: %d · Legislatura: %d",
		meta.UpdatedAt, meta.Year, meta.Legislature)
}

// DetailURL links a roster card to the detail screen.
func DetailURL(id core.ID) string {
	return "/deputado?id=" + url.QueryEscape(id.String())
}

// ErrorPage is rendered in place of a screen's main content.
type ErrorPage struct {
	Title   string
	Banner  string
	Message string
}

func sources(meta *core.DatasetMetadata) []string {
	if meta == nil {
		return nil
	}
	return meta.Sources
}
