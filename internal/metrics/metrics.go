// Package metrics holds the Prometheus collectors of the results page.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/pdiddy/linkresolver/internal/fetch"
)

// Fetch outcomes recorded in LinkFetchesTotal.
const (
	OutcomeSuccess = "success"
	OutcomeEmpty   = "empty"
	OutcomeError   = "error"
)

var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status_code"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	LinkFetchesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "link_fetches_total",
			Help: "Backend link fetches by outcome",
		},
		[]string{"outcome"},
	)

	LinkFetchDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "link_fetch_duration_seconds",
			Help:    "Backend link fetch duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
	)

	ApplicationInfo = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "application_info",
			Help: "Application information",
		},
		[]string{"service", "version", "environment"},
	)
)

// Init records the build and deployment labels.
func Init(service, version, environment string) {
	ApplicationInfo.WithLabelValues(service, version, environment).Set(1)
}

// Outcome classifies a terminal fetch state. Non-terminal states return "".
func Outcome(s fetch.State) string {
	switch {
	case s.Phase == fetch.PhaseError:
		return OutcomeError
	case s.Phase == fetch.PhaseSuccess && len(s.Resource) == 0:
		return OutcomeEmpty
	case s.Phase == fetch.PhaseSuccess:
		return OutcomeSuccess
	}
	return ""
}

// ObserveFetch records a terminal fetch state.
func ObserveFetch(s fetch.State, seconds float64) {
	outcome := Outcome(s)
	if outcome == "" {
		return
	}
	LinkFetchesTotal.WithLabelValues(outcome).Inc()
	LinkFetchDuration.Observe(seconds)
}
