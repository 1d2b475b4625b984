package http

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the Prometheus collectors for the tutor API.
type Metrics struct {
	registry *prometheus.Registry

	turnsTotal   *prometheus.CounterVec
	intentsTotal *prometheus.CounterVec
	turnDuration *prometheus.HistogramVec
}

// NewMetrics creates the collectors on a dedicated registry so tests can
// run multiple servers without duplicate-registration panics.
func NewMetrics() *Metrics {
	registry := prometheus.NewRegistry()
	factory := promauto.With(registry)

	return &Metrics{
		registry: registry,
		turnsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "tutor",
			Name:      "turns_total",
			Help:      "Processed conversation turns by mode and outcome.",
		}, []string{"mode", "outcome"}),
		intentsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "tutor",
			Name:      "intents_total",
			Help:      "Classified intents by mode.",
		}, []string{"mode", "intent"}),
		turnDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "tutor",
			Name:      "turn_duration_seconds",
			Help:      "Turn processing latency by mode.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"mode"}),
	}
}

// Registry exposes the underlying registry for the /metrics handler.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

func (m *Metrics) observeTurn(mode, outcome, intent string, seconds float64) {
	m.turnsTotal.WithLabelValues(mode, outcome).Inc()
	if intent != "" {
		m.intentsTotal.WithLabelValues(mode, intent).Inc()
	}
	m.turnDuration.WithLabelValues(mode).Observe(seconds)
}
