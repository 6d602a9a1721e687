// Package metrics exposes Prometheus instrumentation for the gate and monitor.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Config holds the metric name prefix
type Config struct {
	Namespace string
	Subsystem string
}

// DefaultConfig returns the default naming
func DefaultConfig() Config {
	return Config{
		Namespace: "marketgate",
		Subsystem: "gate",
	}
}

// Metrics collects counters and gauges on a private registry
type Metrics struct {
	registry *prometheus.Registry

	decisions     *prometheus.CounterVec
	decisionTime  prometheus.Histogram
	marketOpen    prometheus.Gauge
	statusChanges prometheus.Counter
	wsClients     prometheus.Gauge
	httpRequests  *prometheus.CounterVec
}

// New creates a Metrics instance with its own registry
func New(cfg Config) *Metrics {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)

	return &Metrics{
		registry: reg,
		decisions: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: cfg.Namespace,
			Subsystem: cfg.Subsystem,
			Name:      "decisions_total",
			Help:      "Transfer authorization decisions by outcome",
		}, []string{"outcome"}),
		decisionTime: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: cfg.Namespace,
			Subsystem: cfg.Subsystem,
			Name:      "decision_duration_seconds",
			Help:      "Time spent evaluating a transfer request",
			Buckets:   []float64{0.00001, 0.0001, 0.001, 0.01, 0.1},
		}),
		marketOpen: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: cfg.Namespace,
			Subsystem: "market",
			Name:      "open",
			Help:      "1 when the market was open at the last status check",
		}),
		statusChanges: factory.NewCounter(prometheus.CounterOpts{
			Namespace: cfg.Namespace,
			Subsystem: "market",
			Name:      "status_changes_total",
			Help:      "Observed open/close transitions",
		}),
		wsClients: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: cfg.Namespace,
			Subsystem: "events",
			Name:      "ws_clients",
			Help:      "Connected event stream clients",
		}),
		httpRequests: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: cfg.Namespace,
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "HTTP requests by route and status class",
		}, []string{"route", "status"}),
	}
}

// RecordDecision counts a decision. outcome is "allowed" or the rejection code name.
func (m *Metrics) RecordDecision(outcome string, seconds float64) {
	m.decisions.WithLabelValues(outcome).Inc()
	m.decisionTime.Observe(seconds)
}

// SetMarketOpen records the last observed market state
func (m *Metrics) SetMarketOpen(open bool) {
	if open {
		m.marketOpen.Set(1)
		return
	}
	m.marketOpen.Set(0)
}

// RecordStatusChange counts an open/close transition
func (m *Metrics) RecordStatusChange() {
	m.statusChanges.Inc()
}

// WSClientConnected increments the connected client gauge
func (m *Metrics) WSClientConnected() {
	m.wsClients.Inc()
}

// WSClientDisconnected decrements the connected client gauge
func (m *Metrics) WSClientDisconnected() {
	m.wsClients.Dec()
}

// RecordHTTPRequest counts a served request
func (m *Metrics) RecordHTTPRequest(route, status string) {
	m.httpRequests.WithLabelValues(route, status).Inc()
}

// Handler returns the /metrics HTTP handler
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Registry returns the underlying registry
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}
