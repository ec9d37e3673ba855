// Package server exposes run metrics over HTTP in Prometheus format. It is
// optional: the server only starts when a metrics address is configured.
package server

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics bundles the Prometheus collectors for a benchmark run. Each
// Metrics value owns its registry, so multiple instances (tests, repeated
// runs) never collide on registration.
type Metrics struct {
	registry *prometheus.Registry
	handler  http.Handler

	iterationsTotal   *prometheus.CounterVec
	iterationDuration *prometheus.HistogramVec
	activeRequests    prometheus.Gauge
	requestsTotal     prometheus.Counter
}

// NewMetrics creates the collectors and registers them, along with the Go
// runtime and process collectors, on a fresh registry.
func NewMetrics() *Metrics {
	registry := prometheus.NewRegistry()
	factory := promauto.With(registry)

	m := &Metrics{
		registry: registry,
		iterationsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "timebench_iterations_total",
			Help: "Number of timed iterations completed, per workload.",
		}, []string{"workload"}),
		iterationDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "timebench_iteration_duration_seconds",
			Help:    "Latency distribution of timed iterations, per workload.",
			Buckets: prometheus.ExponentialBuckets(1e-6, 4, 12),
		}, []string{"workload"}),
		activeRequests: factory.NewGauge(prometheus.GaugeOpts{
			Name: "timebench_active_requests",
			Help: "Number of HTTP requests currently being served.",
		}),
		requestsTotal: factory.NewCounter(prometheus.CounterOpts{
			Name: "timebench_requests_total",
			Help: "Total number of HTTP requests served.",
		}),
	}

	registry.MustRegister(collectors.NewGoCollector())
	registry.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	m.handler = promhttp.HandlerFor(registry, promhttp.HandlerOpts{})
	return m
}

// ObserveIteration records one timed iteration for a workload. The signature
// matches bench.Observer so it can hook straight into the runner.
func (m *Metrics) ObserveIteration(workload string, ns int64) {
	m.iterationsTotal.WithLabelValues(workload).Inc()
	m.iterationDuration.WithLabelValues(workload).Observe(float64(ns) / 1e9)
}

// IncrementActiveRequests increments the active HTTP requests gauge.
func (m *Metrics) IncrementActiveRequests() {
	m.activeRequests.Inc()
	m.requestsTotal.Inc()
}

// DecrementActiveRequests decrements the active HTTP requests gauge.
func (m *Metrics) DecrementActiveRequests() {
	m.activeRequests.Dec()
}

// WritePrometheus serves the registry contents in Prometheus text format.
func (m *Metrics) WritePrometheus(w http.ResponseWriter, r *http.Request) {
	m.handler.ServeHTTP(w, r)
}
