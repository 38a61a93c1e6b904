package observability

import (
	"github.com/aretw0/arbor/pkg/domain"
	"github.com/prometheus/client_golang/prometheus"
)

// Namespace prefixes every metric name.
const Namespace = "arbor"

// Metrics holds the Prometheus collectors fed by lifecycle hooks.
type Metrics struct {
	NodeTicks    *prometheus.CounterVec
	Loads        *prometheus.CounterVec
	LoadDuration prometheus.Histogram
	LoadedNodes  prometheus.Counter
}

// NewMetrics creates the collectors and registers them with reg.
// A nil reg selects prometheus.DefaultRegisterer.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	m := &Metrics{
		NodeTicks: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: Namespace,
				Name:      "node_ticks_total",
				Help:      "Total number of node ticks by kind and resulting status",
			},
			[]string{"kind", "status"},
		),
		Loads: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: Namespace,
				Name:      "loads_total",
				Help:      "Total number of document loads by result",
			},
			[]string{"result"}, // "ok", "error"
		),
		LoadDuration: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: Namespace,
				Name:      "load_duration_seconds",
				Help:      "Document load duration in seconds",
				Buckets:   prometheus.ExponentialBuckets(0.0001, 4, 8),
			},
		),
		LoadedNodes: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: Namespace,
				Name:      "loaded_objects_total",
				Help:      "Total number of objects instantiated by successful loads",
			},
		),
	}
	reg.MustRegister(m.NodeTicks, m.Loads, m.LoadDuration, m.LoadedNodes)
	return m
}

// Hooks returns lifecycle hooks recording into m.
func (m *Metrics) Hooks() domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnTick: func(e *domain.TickEvent) {
			m.NodeTicks.WithLabelValues(e.Kind, e.Status.String()).Inc()
		},
		OnLoad: func(e *domain.LoadEvent) {
			m.LoadDuration.Observe(e.Duration.Seconds())
			if e.Err != nil {
				m.Loads.WithLabelValues("error").Inc()
				return
			}
			m.Loads.WithLabelValues("ok").Inc()
			m.LoadedNodes.Add(float64(e.Objects))
		},
	}
}
