// Package server provides the HTTP REST API for the expert finder.
package server

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metric names as constants for consistency.
const (
	MetricHTTPRequestsTotal   = "http_requests_total"
	MetricHTTPRequestDuration = "http_request_duration_seconds"
	MetricSearchesTotal       = "expert_searches_total"
	MetricSearchResultsCount  = "expert_search_results"
	MetricStatsRefreshTotal   = "credibility_stats_refresh_total"
)

// Metrics contains Prometheus metrics for the API.
// All operations are thread-safe.
type Metrics struct {
	registry            *prometheus.Registry
	httpRequestsTotal   *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec
	searchesTotal       *prometheus.CounterVec
	searchResults       prometheus.Histogram
	statsRefreshTotal   *prometheus.CounterVec
}

// NewMetrics creates a Metrics instance with all collectors registered on a
// fresh registry.
func NewMetrics() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		httpRequestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: MetricHTTPRequestsTotal,
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "path", "status"},
		),
		httpRequestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    MetricHTTPRequestDuration,
				Help:    "HTTP request duration in seconds",
				Buckets: []float64{0.01, 0.1, 0.5, 1.0, 2.0, 5.0, 10.0, 30.0},
			},
			[]string{"method", "path", "status"},
		),
		searchesTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: MetricSearchesTotal,
				Help: "Total number of expert searches by outcome",
			},
			[]string{"outcome"},
		),
		searchResults: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Name:    MetricSearchResultsCount,
				Help:    "Number of results returned per search",
				Buckets: []float64{0, 1, 3, 5, 10, 20, 50},
			},
		),
		statsRefreshTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: MetricStatsRefreshTotal,
				Help: "Total number of credibility statistics refreshes by outcome",
			},
			[]string{"outcome"},
		),
	}

	m.registry.MustRegister(
		m.httpRequestsTotal,
		m.httpRequestDuration,
		m.searchesTotal,
		m.searchResults,
		m.statsRefreshTotal,
	)

	return m
}

// ObserveHTTPRequest records request count and duration for one HTTP request.
func (m *Metrics) ObserveHTTPRequest(method, path, status string, duration float64) {
	labels := prometheus.Labels{
		"method": method,
		"path":   path,
		"status": status,
	}
	m.httpRequestsTotal.With(labels).Inc()
	m.httpRequestDuration.With(labels).Observe(duration)
}

// ObserveSearch records the outcome and result count of one search.
func (m *Metrics) ObserveSearch(outcome string, results int) {
	m.searchesTotal.WithLabelValues(outcome).Inc()
	if outcome == "ok" {
		m.searchResults.Observe(float64(results))
	}
}

// IncStatsRefresh records one stats refresh attempt.
func (m *Metrics) IncStatsRefresh(outcome string) {
	m.statsRefreshTotal.WithLabelValues(outcome).Inc()
}

// Handler returns the HTTP handler serving the metrics registry.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
