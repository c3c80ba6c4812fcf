package http

import (
	"bytes"
	"context"
	"net/http"

	"gastos/internal/log"
	"gastos/internal/view"
)

// handleIndex renders the roster screen with the filter from the query string.
func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), s.timeout)
	defer cancel()

	state := ParseFilter(r.URL.Query())
	snap, err := s.dataset.LoadRoster(ctx)
	if err != nil {
		s.renderError(w, r, http.StatusBadGateway, view.ErrorPage{Message: view.MsgRosterLoadFailed})
		return
	}

	s.render(w, r, http.StatusOK, "index.html", view.NewRosterPage(snap, state))
}

// handleRosterPartial returns only the filtered list, swapped in by htmx on
// every filter change.
func (s *Server) handleRosterPartial(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), s.timeout)
	defer cancel()
	logger := log.FromContext(ctx)

	state := ParseFilter(r.URL.Query())
	snap, err := s.dataset.LoadRoster(ctx)
	if err != nil {
		listError(http.StatusBadGateway, view.MsgRosterLoadFailed).Write(w)
		return
	}

	list := view.NewRosterList(snap, state)
	if s.templates == nil {
		http.Error(w, "templates not loaded", http.StatusInternalServerError)
		return
	}
	var buf bytes.Buffer
	if err := s.templates.ExecuteTemplate(&buf, "roster_list", list); err != nil {
		logger.ErrorContext(ctx, "Roster list template failed", log.FieldError, err)
		http.Error(w, "template error", http.StatusInternalServerError)
		return
	}

	logger.DebugContext(ctx, "Roster filtered",
		log.FieldQuery, state.Query, "uf", state.Region, "partido", state.Party,
		log.FieldMatchCount, list.Matched, log.FieldRosterSize, list.Total)

	resp := NewHTMXResponse().
		TriggerRosterFiltered(list.Matched, list.Total).
		BodyHTML(buf.String())
	if IsHTMX(r) {
		push := "/"
		if q := FilterQuery(state).Encode(); q != "" {
			push += "?" + q
		}
		resp.PushURL(push)
	}
	resp.Write(w)
}
