package dataset

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"gastos/internal/core"
)

// Wire shapes of the published JSON documents. Absent and null fields decode
// to zero values; the conversions below are the only place defaults apply.

type wireLegislator struct {
	ID           json.RawMessage `json:"id"`
	Nome         string          `json:"nome"`
	NomeCivil    string          `json:"nomeCivil"`
	Partido      string          `json:"partido"`
	SiglaPartido string          `json:"siglaPartido"`
	UF           string          `json:"uf"`
	Foto         string          `json:"foto"`
	GastoAno     float64         `json:"gasto_ano"`
	GastoMes     float64         `json:"gasto_mes"`
}

type wireMetadata struct {
	UpdatedAt     string   `json:"updated_at"`
	Ano           flexInt  `json:"ano"`
	IDLegislatura flexInt  `json:"id_legislatura"`
	Sources       []string `json:"sources"`
}

type wireTransaction struct {
	Data         string  `json:"data"`
	Categoria    string  `json:"categoria"`
	Fornecedor   string  `json:"fornecedor"`
	Valor        float64 `json:"valor"`
	DocumentoURL string  `json:"documento_url"`
}

type wireDetail struct {
	ID            json.RawMessage   `json:"id"`
	Ano           flexInt           `json:"ano"`
	MesAtual      string            `json:"mes_atual"`
	GastoAno      float64           `json:"gasto_ano"`
	GastoMes      float64           `json:"gasto_mes"`
	Lancamentos   []wireTransaction `json:"lancamentos"`
	PorMes        core.Amounts      `json:"por_mes"`
	PorCategoria  core.Amounts      `json:"por_categoria"`
	PorFornecedor core.Amounts      `json:"por_fornecedor"`
}

// flexInt accepts 2025, "2025" and null.
type flexInt int

func (n *flexInt) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		return nil
	}
	s := string(data)
	if strings.HasPrefix(s, `"`) {
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		s = strings.TrimSpace(s)
		if s == "" {
			*n = 0
			return nil
		}
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return fmt.Errorf("invalid integer %s", data)
	}
	*n = flexInt(v)
	return nil
}

// decodeRoster reads deputados.json. Records without a usable id cannot be
// linked to a detail document and are skipped; skipped reports how many.
func decodeRoster(r io.Reader) (roster []core.LegislatorSummary, skipped int, err error) {
	var wire []wireLegislator
	if err := json.NewDecoder(r).Decode(&wire); err != nil {
		return nil, 0, fmt.Errorf("decode roster: %w", err)
	}
	roster = make([]core.LegislatorSummary, 0, len(wire))
	for _, w := range wire {
		id, err := core.ParseID(w.ID)
		if err != nil || id == "" {
			skipped++
			continue
		}
		party := w.Partido
		if party == "" {
			party = w.SiglaPartido
		}
		roster = append(roster, core.LegislatorSummary{
			ID:         id,
			Name:       w.Nome,
			LegalName:  w.NomeCivil,
			Party:      party,
			Region:     w.UF,
			PhotoURL:   w.Foto,
			YearTotal:  w.GastoAno,
			MonthTotal: w.GastoMes,
		})
	}
	return roster, skipped, nil
}

func decodeMetadata(r io.Reader) (*core.DatasetMetadata, error) {
	var w *wireMetadata
	if err := json.NewDecoder(r).Decode(&w); err != nil {
		return nil, fmt.Errorf("decode metadata: %w", err)
	}
	if w == nil {
		return nil, fmt.Errorf("decode metadata: document is null")
	}
	return &core.DatasetMetadata{
		UpdatedAt:   w.UpdatedAt,
		Year:        int(w.Ano),
		Legislature: int(w.IDLegislatura),
		Sources:     w.Sources,
	}, nil
}

func decodeDetail(r io.Reader) (*core.LegislatorDetail, error) {
	var w *wireDetail
	if err := json.NewDecoder(r).Decode(&w); err != nil {
		return nil, fmt.Errorf("decode detail: %w", err)
	}
	if w == nil {
		return nil, fmt.Errorf("decode detail: document is null")
	}

	d := &core.LegislatorDetail{
		Year:         int(w.Ano),
		CurrentMonth: w.MesAtual,
		YearTotal:    w.GastoAno,
		MonthTotal:   w.GastoMes,
		Transactions: make([]core.Transaction, len(w.Lancamentos)),
		ByCategory:   w.PorCategoria,
		ByVendor:     w.PorFornecedor,
	}
	if id, err := core.ParseID(w.ID); err == nil {
		d.ID = id
	}
	for i, t := range w.Lancamentos {
		d.Transactions[i] = core.Transaction{
			Date:        t.Data,
			Category:    t.Categoria,
			Vendor:      t.Fornecedor,
			Amount:      t.Valor,
			DocumentURL: t.DocumentoURL,
		}
	}
	for _, kv := range w.PorMes {
		if core.IsMonthKey(kv.Key) {
			d.ByMonth = append(d.ByMonth, kv)
		}
	}
	return d, nil
}
