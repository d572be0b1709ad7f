package server

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Projection outcomes used as the "outcome" label.
const (
	outcomeSuccess      = "success"
	outcomeNoSurplus    = "insufficient_surplus"
	outcomeInvalidInput = "invalid_input"
	outcomeHorizon      = "horizon_exceeded"
	outcomeError        = "error"
)

// Metrics holds the service collectors. Each server owns its registry so
// several instances (tests) never collide on registration.
type Metrics struct {
	registry        *prometheus.Registry
	projections     *prometheus.CounterVec
	reportDownloads prometheus.Counter
	rateLimited     prometheus.Counter
	monthsNeeded    prometheus.Histogram
}

// NewMetrics creates and registers the collectors.
func NewMetrics() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		projections: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "resilience_projections_total",
			Help: "Total number of projections by outcome",
		}, []string{"outcome"}),
		reportDownloads: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "resilience_report_downloads_total",
			Help: "Total number of PDF reports served",
		}),
		rateLimited: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "resilience_rate_limited_total",
			Help: "Total number of API requests rejected by the rate limiter",
		}),
		monthsNeeded: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "resilience_months_needed",
			Help:    "Months needed to reach the emergency fund target",
			Buckets: []float64{0, 1, 3, 6, 12, 24, 60, 120, 600},
		}),
	}
	m.registry.MustRegister(m.projections, m.reportDownloads, m.rateLimited, m.monthsNeeded)
	return m
}

// Handler exposes the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

func (m *Metrics) observeProjection(outcome string, months int) {
	m.projections.WithLabelValues(outcome).Inc()
	if outcome == outcomeSuccess {
		m.monthsNeeded.Observe(float64(months))
	}
}
