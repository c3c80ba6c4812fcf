package http

import (
	"context"
	"errors"
	"net/http"

	"gastos/internal/dataset"
	"gastos/internal/log"
	"gastos/internal/view"
)

// handleDetail renders one legislator's expense screen.
func (s *Server) handleDetail(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), s.timeout)
	defer cancel()

	id := ParseID(r.URL.Query())
	snap, err := s.dataset.LoadDetail(ctx, id)
	if err != nil {
		status, msg := detailFailure(err)
		log.FromContext(ctx).DebugContext(ctx, "Detail unavailable",
			log.FieldLegislatorID, id, log.FieldStatusCode, status, log.FieldError, err)
		s.renderError(w, r, status, view.ErrorPage{Banner: view.Banner(snap.Metadata), Message: msg})
		return
	}

	page := view.NewDetailPage(snap)
	if page.Truncated {
		log.FromContext(ctx).DebugContext(ctx, "Transaction table truncated",
			log.FieldLegislatorID, id, log.FieldTransactions, len(snap.Detail.Transactions))
	}
	s.render(w, r, http.StatusOK, "deputado.html", page)
}

// handleCharts serves the monthly and category series for the detail charts.
func (s *Server) handleCharts(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), s.timeout)
	defer cancel()

	snap, err := s.dataset.LoadDetail(ctx, ParseID(r.URL.Query()))
	if err != nil {
		status, msg := detailFailure(err)
		writeJSON(w, status, map[string]string{"error": msg})
		return
	}
	w.Header().Set("Cache-Control", "no-cache")
	writeJSON(w, http.StatusOK, view.NewCharts(snap.Detail))
}

// detailFailure maps a LoadDetail error to a status and user message.
func detailFailure(err error) (int, string) {
	switch {
	case errors.Is(err, dataset.ErrMissingID):
		return http.StatusBadRequest, view.MsgMissingID
	case errors.Is(err, dataset.ErrNotFound):
		return http.StatusNotFound, view.MsgNotFound
	default:
		return http.StatusBadGateway, view.MsgDetailLoadFailed
	}
}
