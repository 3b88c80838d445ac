// Package metrics exposes Prometheus counters for the preview server and
// exports.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Registry holds every chainmap metric on its own Prometheus registry.
type Registry struct {
	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec

	SessionsActive      prometheus.Gauge
	ActivationsTotal    *prometheus.CounterVec
	PanelTransitions    *prometheus.CounterVec
	ExportsTotal        *prometheus.CounterVec
	DataFaults          prometheus.Gauge
	LayoutExcludedSteps prometheus.Gauge

	registry *prometheus.Registry
}

// NewRegistry creates a registry with all metrics initialized.
func NewRegistry() *Registry {
	reg := prometheus.NewRegistry()
	r := &Registry{registry: reg}
	r.initHTTPMetrics()
	r.initMapMetrics()
	return r
}

func (r *Registry) initHTTPMetrics() {
	r.HTTPRequestsTotal = promauto.With(r.registry).NewCounterVec(
		prometheus.CounterOpts{
			Name: "chainmap_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "route", "status"},
	)

	r.HTTPRequestDuration = promauto.With(r.registry).NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "chainmap_http_request_duration_seconds",
			Help:    "HTTP request latency in seconds",
			Buckets: []float64{.001, .005, .01, .05, .1, .5, 1},
		},
		[]string{"method", "route"},
	)
}

func (r *Registry) initMapMetrics() {
	r.SessionsActive = promauto.With(r.registry).NewGauge(
		prometheus.GaugeOpts{
			Name: "chainmap_sessions_active",
			Help: "Number of live browser sessions",
		},
	)

	r.ActivationsTotal = promauto.With(r.registry).NewCounterVec(
		prometheus.CounterOpts{
			Name: "chainmap_node_activations_total",
			Help: "Node activations by node type",
		},
		[]string{"type"}, // center, sector, step, impact, overview
	)

	r.PanelTransitions = promauto.With(r.registry).NewCounterVec(
		prometheus.CounterOpts{
			Name: "chainmap_panel_transitions_total",
			Help: "Detail panel lifecycle transitions by target state",
		},
		[]string{"state"}, // open, closing, closed
	)

	r.ExportsTotal = promauto.With(r.registry).NewCounterVec(
		prometheus.CounterOpts{
			Name: "chainmap_exports_total",
			Help: "Scene exports by format and result",
		},
		[]string{"format", "status"},
	)

	r.DataFaults = promauto.With(r.registry).NewGauge(
		prometheus.GaugeOpts{
			Name: "chainmap_data_faults",
			Help: "Isolated data faults found while loading content",
		},
	)

	r.LayoutExcludedSteps = promauto.With(r.registry).NewGauge(
		prometheus.GaugeOpts{
			Name: "chainmap_layout_excluded_steps",
			Help: "Steps left out of the mind map by layout faults",
		},
	)
}

// RecordHTTPRequest records an HTTP request with its duration.
func (r *Registry) RecordHTTPRequest(method, route, status string, duration time.Duration) {
	r.HTTPRequestsTotal.WithLabelValues(method, route, status).Inc()
	r.HTTPRequestDuration.WithLabelValues(method, route).Observe(duration.Seconds())
}

// RecordActivation counts one node activation.
func (r *Registry) RecordActivation(nodeType string) {
	r.ActivationsTotal.WithLabelValues(nodeType).Inc()
}

// RecordPanel counts one panel transition into state.
func (r *Registry) RecordPanel(state string) {
	r.PanelTransitions.WithLabelValues(state).Inc()
}

// RecordExport counts one export attempt.
func (r *Registry) RecordExport(format string, err error) {
	status := "ok"
	if err != nil {
		status = "error"
	}
	r.ExportsTotal.WithLabelValues(format, status).Inc()
}

// SetContentHealth publishes the load-time fault counts.
func (r *Registry) SetContentHealth(faults, excluded int) {
	r.DataFaults.Set(float64(faults))
	r.LayoutExcludedSteps.Set(float64(excluded))
}

// Handler serves the registry in the Prometheus text format.
func (r *Registry) Handler() http.Handler {
	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{})
}

// Prometheus returns the underlying registry.
func (r *Registry) Prometheus() *prometheus.Registry {
	return r.registry
}
