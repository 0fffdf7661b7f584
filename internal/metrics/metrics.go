// Package metrics defines the Prometheus metric collectors for the query
// API and exposes an HTTP handler for scraping.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds all Prometheus collectors for the analyzer service.
type Metrics struct {
	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec
	QueriesTotal        *prometheus.CounterVec
	DatasetRespondents  prometheus.Gauge
	DatasetQuestions    prometheus.Gauge
}

// New creates all collectors and registers them on the given registerer.
// Pass a fresh prometheus.NewRegistry() in tests to avoid collisions.
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		HTTPRequestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "http_requests_total",
				Help: "Total number of HTTP requests by method, path, and status.",
			},
			[]string{"method", "path", "status"},
		),
		HTTPRequestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "http_request_duration_seconds",
				Help:    "HTTP request latency in seconds.",
				Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
			},
			[]string{"method", "path"},
		),
		QueriesTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "survey_queries_total",
				Help: "Total analyzer queries by operation (distribution, subset, search, report).",
			},
			[]string{"operation"},
		),
		DatasetRespondents: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name: "survey_dataset_respondents",
				Help: "Respondent count of the loaded dataset snapshot.",
			},
		),
		DatasetQuestions: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name: "survey_dataset_questions",
				Help: "Question count of the loaded dataset snapshot.",
			},
		),
	}

	reg.MustRegister(
		m.HTTPRequestsTotal,
		m.HTTPRequestDuration,
		m.QueriesTotal,
		m.DatasetRespondents,
		m.DatasetQuestions,
	)

	return m
}

// Handler returns the scrape handler for a registry created with New.
func Handler(reg *prometheus.Registry) http.Handler {
	return promhttp.HandlerFor(reg, promhttp.HandlerOpts{})
}
