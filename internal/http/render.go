package http

import (
	"bytes"
	"html/template"
	"net/http"

	"gastos/internal/log"
	"gastos/internal/view"
)

// render executes a template into a buffer before writing the status.
func (s *Server) render(w http.ResponseWriter, r *http.Request, status int, name string, data any) {
	logger := log.FromContext(r.Context())
	if s.templates == nil {
		logger.ErrorContext(r.Context(), "Templates not loaded", log.FieldPath, r.URL.Path)
		http.Error(w, "templates not loaded", http.StatusInternalServerError)
		return
	}

	var buf bytes.Buffer
	if err := s.templates.ExecuteTemplate(&buf, name, data); err != nil {
		logger.ErrorContext(r.Context(), "Template execution failed",
			log.NewFields().WithComponent(log.ComponentTemplate).WithOperation(log.OpRender).WithError(err).ToSlice()...)
		http.Error(w, "template error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = w.Write(buf.Bytes())
}

// renderError shows page.Message in place of the screen's main content.
func (s *Server) renderError(w http.ResponseWriter, r *http.Request, status int, page view.ErrorPage) {
	if page.Title == "" {
		page.Title = view.AppTitle
	}
	if s.templates == nil {
		http.Error(w, page.Message, status)
		return
	}
	s.render(w, r, status, "error.html", page)
}

func (s *Server) handleRateLimited(w http.ResponseWriter, r *http.Request) {
	const msg = "Muitas requisições. Tente novamente em instantes."
	if IsHTMX(r) {
		listError(http.StatusTooManyRequests, msg).Write(w)
		return
	}
	TooManyRequestsError(msg).Write(w)
}

// listError keeps the #list element in place so later filter swaps still
// find their target.
func listError(status int, msg string) *HTMXResponseBuilder {
	return NewHTMXResponse().
		Status(status).
		BodyHTML(`<section id="list" class="list"><p class="error">` +
			template.HTMLEscapeString(msg) + `</p></section>`)
}
