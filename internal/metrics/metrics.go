package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	DatasetFetches = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "gastos_dataset_fetches_total",
		Help: "Dataset objects read from the configured source, labelled by object kind and outcome.",
	}, []string{"kind", "outcome"})

	DatasetHardFailures = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "gastos_dataset_hard_failures_total",
		Help: "Screen loads that failed because a required dataset object could not be read.",
	}, []string{"screen"})

	DatasetFetchDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "gastos_dataset_fetch_duration_ms",
		Help:    "Latency of a single dataset object read and decode, in milliseconds.",
		Buckets: []float64{1, 5, 10, 25, 50, 100, 250, 500, 1000, 2500, 5000},
	}, []string{"kind"})

	CacheLookups = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "gastos_cache_lookups_total",
		Help: "Dataset cache lookups, labelled by result (hit or miss).",
	}, []string{"result"})

	CacheInvalidations = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "gastos_cache_invalidations_total",
		Help: "Cache invalidations, labelled by trigger (watch, schedule).",
	}, []string{"trigger"})

	CacheEntries = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "gastos_cache_entries",
		Help: "Decoded dataset objects currently cached.",
	})

	RefreshRuns = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "gastos_refresh_runs_total",
		Help: "Scheduled dataset refreshes, labelled by status.",
	}, []string{"status"})

	HTTPRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "gastos_http_requests_total",
		Help: "HTTP requests served, labelled by route and status code class.",
	}, []string{"route", "code"})

	HTTPRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "gastos_http_request_duration_ms",
		Help:    "HTTP request latency in milliseconds.",
		Buckets: []float64{1, 5, 10, 25, 50, 100, 250, 500, 1000, 2500},
	}, []string{"route"})

	RateLimited = promauto.NewCounter(prometheus.CounterOpts{
		Name: "gastos_rate_limited_total",
		Help: "Requests rejected by the per-client rate limiter.",
	})

	SuspiciousRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "gastos_suspicious_requests_total",
		Help: "Requests that look like scanner probes, labelled by reason.",
	}, []string{"reason"})
)

// Outcome labels for DatasetFetches.
const (
	OutcomeOK        = "ok"
	OutcomeMissing   = "missing"
	OutcomeError     = "error"
	OutcomeMalformed = "malformed"
)

// CodeClass maps a status code to its "2xx"-style label.
func CodeClass(status int) string {
	switch {
	case status >= 500:
		return "5xx"
	case status >= 400:
		return "4xx"
	case status >= 300:
		return "3xx"
	default:
		return "2xx"
	}
}
