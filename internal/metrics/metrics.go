// Package metrics holds the Prometheus instruments of the poeta server.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "poeta"

// Result labels.
const (
	ResultInflected = "inflected"
	ResultUnchanged = "unchanged"
	ResultError     = "error"
)

// Metrics groups every instrument registered for one server.
type Metrics struct {
	registry *prometheus.Registry

	inflections *prometheus.CounterVec
	rules       *prometheus.GaugeVec
	reloads     *prometheus.CounterVec
	requests    *prometheus.HistogramVec
}

// New registers the instruments on registry; nil creates a fresh one.
func New(registry *prometheus.Registry) *Metrics {
	if registry == nil {
		registry = prometheus.NewRegistry()
	}
	f := promauto.With(registry)
	return &Metrics{
		registry: registry,
		inflections: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "inflections_total",
			Help:      "Inflection requests by speech part and result.",
		}, []string{"part", "result"}),
		rules: f.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "rules_loaded",
			Help:      "Rules in the active table by speech part.",
		}, []string{"part"}),
		reloads: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "rule_reloads_total",
			Help:      "Rule file reloads by result.",
		}, []string{"result"}),
		requests: f.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency by route and status.",
			Buckets:   []float64{0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5},
		}, []string{"route", "status"}),
	}
}

// Registry returns the registry the instruments live on.
func (m *Metrics) Registry() *prometheus.Registry { return m.registry }

// RecordInflection counts one inflection of the given speech part.
func (m *Metrics) RecordInflection(part, result string) {
	m.inflections.WithLabelValues(part, result).Inc()
}

// SetRules publishes the rule count of each speech part. Parts missing
// from counts are dropped from the gauge.
func (m *Metrics) SetRules(counts map[string]int) {
	m.rules.Reset()
	for part, n := range counts {
		m.rules.WithLabelValues(part).Set(float64(n))
	}
}

// RecordReload counts a reload; err decides the result label.
func (m *Metrics) RecordReload(err error) {
	result := "success"
	if err != nil {
		result = "failure"
	}
	m.reloads.WithLabelValues(result).Inc()
}

// ObserveRequest records the latency of a served request.
func (m *Metrics) ObserveRequest(route string, status int, d time.Duration) {
	m.requests.WithLabelValues(route, http.StatusText(status)).Observe(d.Seconds())
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}
