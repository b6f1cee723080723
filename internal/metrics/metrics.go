// Package metrics exposes Prometheus counters for the display and settings endpoints.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "tasks_display"

// Result labels.
const (
	ResultOK       = "ok"
	ResultDenied   = "denied"
	ResultNotFound = "not_found"
	ResultInvalid  = "invalid"
	ResultError    = "error"
)

// Endpoint labels.
const (
	EndpointPage        = "page"
	EndpointFragment    = "fragment"
	EndpointSettings    = "settings_form"
	EndpointSettingsAPI = "settings_api"
)

// Metrics holds the service collectors.
type Metrics struct {
	DisplayRequests     *prometheus.CounterVec
	SettingsSubmissions *prometheus.CounterVec
	RequestDuration     *prometheus.HistogramVec

	gatherer prometheus.Gatherer
}

// New creates the collectors and registers them with registry.
func New(registry *prometheus.Registry) *Metrics {
	m := &Metrics{
		DisplayRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "display_requests_total",
			Help:      "Display page and fragment requests by endpoint and result",
		}, []string{"endpoint", "result"}),
		SettingsSubmissions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "settings_submissions_total",
			Help:      "Settings submissions by endpoint and result",
		}, []string{"endpoint", "result"}),
		RequestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency by route template and method",
			Buckets:   prometheus.DefBuckets,
		}, []string{"route", "method"}),
		gatherer: registry,
	}

	registry.MustRegister(
		m.DisplayRequests,
		m.SettingsSubmissions,
		m.RequestDuration,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

// ObserveDisplay counts one display request.
func (m *Metrics) ObserveDisplay(endpoint, result string) {
	m.DisplayRequests.WithLabelValues(endpoint, result).Inc()
}

// ObserveSettings counts one settings submission.
func (m *Metrics) ObserveSettings(endpoint, result string) {
	m.SettingsSubmissions.WithLabelValues(endpoint, result).Inc()
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.gatherer, promhttp.HandlerOpts{})
}
