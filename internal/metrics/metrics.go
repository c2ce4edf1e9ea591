// Package metrics records store and tracker activity in a private Prometheus
// registry that the CLI can dump to a node_exporter textfile on exit.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the collectors for one process.
type Metrics struct {
	registry *prometheus.Registry

	storeOps        *prometheus.CounterVec
	storeOpDuration *prometheus.HistogramVec
	mutations       *prometheus.CounterVec
	skills          *prometheus.GaugeVec
}

// New creates a registry with every skilltrack collector registered.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)

	return &Metrics{
		registry: reg,
		storeOps: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "skilltrack_store_ops_total",
				Help: "Total number of key-value store operations",
			},
			[]string{"backend", "op", "result"}, // result: ok, not_found, error
		),
		storeOpDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "skilltrack_store_op_duration_seconds",
				Help:    "Key-value store operation duration in seconds",
				Buckets: prometheus.ExponentialBuckets(0.0005, 2, 12), // 0.5ms to ~1s
			},
			[]string{"backend", "op"},
		),
		mutations: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "skilltrack_skill_mutations_total",
				Help: "Total number of skill mutations",
			},
			[]string{"op"}, // op: create, update, toggle, delete
		),
		skills: factory.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "skilltrack_skills",
				Help: "Number of tracked skills by status",
			},
			[]string{"status"},
		),
	}
}

// Registry exposes the underlying registry as a Gatherer.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// ObserveStoreOp records one store call.
func (m *Metrics) ObserveStoreOp(backend, op, result string, duration time.Duration) {
	m.storeOps.WithLabelValues(backend, op, result).Inc()
	m.storeOpDuration.WithLabelValues(backend, op).Observe(duration.Seconds())
}

// IncMutation counts a successful skill mutation.
func (m *Metrics) IncMutation(op string) {
	m.mutations.WithLabelValues(op).Inc()
}

// SetSkillCounts publishes the current number of skills per status.
func (m *Metrics) SetSkillCounts(counts map[string]int) {
	for status, n := range counts {
		m.skills.WithLabelValues(status).Set(float64(n))
	}
}

// WriteTextfile writes the registry in the text exposition format to path.
func (m *Metrics) WriteTextfile(path string) error {
	return prometheus.WriteToTextfile(path, m.registry)
}
