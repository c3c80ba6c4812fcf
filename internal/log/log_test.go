package log

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func newBufferLogger(buf *bytes.Buffer) *Logger {
	return New(Config{Level: slog.LevelDebug, Component: ComponentDataset, Output: buf})
}

func TestLoggerStampsComponent(t *testing.T) {
	var buf bytes.Buffer
	logger := newBufferLogger(&buf)

	logger.Info("Roster loaded", FieldRosterSize, 513)
	out := buf.String()
	if !strings.Contains(out, "component=dataset") || !strings.Contains(out, "roster_size=513") {
		t.Fatalf("unexpected log line: %s", out)
	}

	buf.Reset()
	logger.WithComponent(ComponentWatcher).Warn("Watch error")
	if strings.Count(buf.String(), "component=") != 1 || !strings.Contains(buf.String(), "component=watcher") {
		t.Fatalf("component should appear once: %s", buf.String())
	}
}

func TestJSONHandler(t *testing.T) {
	var buf bytes.Buffer
	logger := New(Config{Level: slog.LevelInfo, JSON: true, Output: &buf})
	logger.Debug("hidden")
	logger.Info("shown")
	if strings.Contains(buf.String(), "hidden") || !strings.Contains(buf.String(), `"component":"app"`) {
		t.Fatalf("unexpected output: %s", buf.String())
	}
}

func TestFromContextFallsBack(t *testing.T) {
	if FromContext(context.Background()) == nil {
		t.Fatal("FromContext should never return nil")
	}
}

func TestRequestIDMiddleware(t *testing.T) {
	var buf bytes.Buffer
	base := newBufferLogger(&buf)

	h := Middleware(base)(RequestIDMiddleware(func(r *http.Request) string {
		return r.Header.Get("X-Request-ID")
	})(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		FromContext(r.Context()).Info("handled")
	})))

	req := httptest.NewRequest(http.MethodGet, "/deputado?id=42", nil)
	req.Header.Set("X-Request-ID", "abc-123")
	h.ServeHTTP(httptest.NewRecorder(), req)

	if !strings.Contains(buf.String(), "request_id=abc-123") {
		t.Fatalf("request id missing: %s", buf.String())
	}
}

func TestStructuredLoggerLevels(t *testing.T) {
	var buf bytes.Buffer
	sl := NewStructuredLogger(newBufferLogger(&buf))
	req := httptest.NewRequest(http.MethodGet, "/deputado?id=x", nil)

	sl.LogHTTPEnd(context.Background(), req, http.StatusNotFound, 3, "10.0.0.1")
	if !strings.Contains(buf.String(), "level=WARN") || !strings.Contains(buf.String(), "status_code=404") {
		t.Fatalf("4xx should log at warn: %s", buf.String())
	}

	buf.Reset()
	sl.LogError(context.Background(), "Detail load failed", errors.New("boom"), ComponentDataset, OpRead,
		NewFields().WithLegislator("42"))
	out := buf.String()
	for _, want := range []string{"level=ERROR", "error=boom", "legislator_id=42", "operation=read"} {
		if !strings.Contains(out, want) {
			t.Fatalf("missing %q in %s", want, out)
		}
	}
}
