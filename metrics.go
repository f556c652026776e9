package tpool

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics instruments a pool with Prometheus collectors.
//
// Every hook tolerates a nil receiver, so the pool calls them
// unconditionally; a pool without metrics pays a nil check and nothing
// else.
type Metrics struct {
	TasksSubmitted prometheus.Counter
	TasksCompleted prometheus.Counter
	TasksFailed    prometheus.Counter
	LiveWorkers    prometheus.Gauge
	ActiveWorkers  prometheus.Gauge
	TaskLatency    prometheus.Histogram
}

// NewMetrics builds the pool collectors and registers them on reg.
func NewMetrics(namespace, subsystem string, reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		TasksSubmitted: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "tasks_submitted_total",
			Help:      "Total number of tasks submitted to the pool",
		}),
		TasksCompleted: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "tasks_completed_total",
			Help:      "Total number of tasks that ran to completion",
		}),
		TasksFailed: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "tasks_failed_total",
			Help:      "Total number of tasks that panicked",
		}),
		LiveWorkers: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "live_workers",
			Help:      "Current number of live workers",
		}),
		ActiveWorkers: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "active_workers",
			Help:      "Current number of workers running a task",
		}),
		TaskLatency: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "task_latency_seconds",
			Help:      "Histogram of task execution latency",
			Buckets:   prometheus.DefBuckets,
		}),
	}

	reg.MustRegister(
		m.TasksSubmitted,
		m.TasksCompleted,
		m.TasksFailed,
		m.LiveWorkers,
		m.ActiveWorkers,
		m.TaskLatency,
	)
	return m
}

func (m *Metrics) submitted(n int) {
	if m != nil {
		m.TasksSubmitted.Add(float64(n))
	}
}

func (m *Metrics) completed(d time.Duration) {
	if m != nil {
		m.TasksCompleted.Inc()
		m.TaskLatency.Observe(d.Seconds())
	}
}

func (m *Metrics) failed(d time.Duration) {
	if m != nil {
		m.TasksFailed.Inc()
		m.TaskLatency.Observe(d.Seconds())
	}
}

func (m *Metrics) live(delta int) {
	if m != nil {
		m.LiveWorkers.Add(float64(delta))
	}
}

func (m *Metrics) active(delta int) {
	if m != nil {
		m.ActiveWorkers.Add(float64(delta))
	}
}
