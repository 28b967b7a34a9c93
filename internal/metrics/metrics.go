package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/gyeongjo/reminderhub/internal/domain"
)

// Metrics groups all Prometheus instruments used across the application.
// Registered once at startup via New(); passed by pointer wherever needed.
type Metrics struct {
	TasksProcessed *prometheus.CounterVec
	TaskLatency    *prometheus.HistogramVec
	RemindersDepth prometheus.Gauge
	CleanupsDepth  prometheus.Gauge
	PendingTasks   prometheus.Gauge
}

// New registers all instruments with the given Prometheus registerer.
// Using a custom registry (instead of prometheus.DefaultRegisterer)
// keeps tests isolated and avoids global state.
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		TasksProcessed: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "tasks_processed_total",
			Help: "Total processed deferred tasks by kind and fire outcome.",
		}, []string{"kind", "outcome"}),

		TaskLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "task_processing_seconds",
			Help:    "Handler latency from dequeue to acknowledgement.",
			Buckets: prometheus.DefBuckets,
		}, []string{"kind"}),

		RemindersDepth: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "dispatch_depth_reminders",
			Help: "Reminder tasks waiting in the in-process dispatch queue.",
		}),
		CleanupsDepth: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "dispatch_depth_cleanups",
			Help: "Cleanup tasks waiting in the in-process dispatch queue.",
		}),
		PendingTasks: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "scheduled_tasks_pending",
			Help: "Durable tasks waiting for their fire-at to pass.",
		}),
	}

	reg.MustRegister(
		m.TasksProcessed,
		m.TaskLatency,
		m.RemindersDepth,
		m.CleanupsDepth,
		m.PendingTasks,
	)

	return m
}

// WorkerHooks returns the metric callback expected by worker.MetricHooks.
// Centralises the prometheus observation calls so the worker package
// stays metrics-agnostic.
func (m *Metrics) WorkerHooks() func(kind domain.TaskKind, outcome domain.Outcome, latency time.Duration) {
	return func(kind domain.TaskKind, outcome domain.Outcome, latency time.Duration) {
		m.TasksProcessed.WithLabelValues(string(kind), string(outcome)).Inc()
		m.TaskLatency.WithLabelValues(string(kind)).Observe(latency.Seconds())
	}
}
