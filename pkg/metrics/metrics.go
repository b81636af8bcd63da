package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// JobMetrics holds the counters a single provisioning run produces. This is
// a one-shot job, so instead of serving a scrape endpoint the metrics are
// flushed to a node_exporter textfile-collector file at the end of the run.
type JobMetrics struct {
	registry *prometheus.Registry

	StepsApplied prometheus.Counter
	StepsSkipped prometheus.Counter
	StepsFailed  prometheus.Counter
	Succeeded    prometheus.Gauge
	CompletedAt  prometheus.Gauge
}

// NewJobMetrics creates a registry with the run's role attached as a
// constant label.
func NewJobMetrics(role string) *JobMetrics {
	registry := prometheus.NewRegistry()
	labels := prometheus.Labels{"role": role}

	m := &JobMetrics{
		registry: registry,
		StepsApplied: prometheus.NewCounter(prometheus.CounterOpts{
			Name:        "pgbootstrap_steps_applied_total",
			Help:        "Steps whose mutation was performed",
			ConstLabels: labels,
		}),
		StepsSkipped: prometheus.NewCounter(prometheus.CounterOpts{
			Name:        "pgbootstrap_steps_skipped_total",
			Help:        "Steps skipped because they were already applied",
			ConstLabels: labels,
		}),
		StepsFailed: prometheus.NewCounter(prometheus.CounterOpts{
			Name:        "pgbootstrap_steps_failed_total",
			Help:        "Steps that failed and aborted the run",
			ConstLabels: labels,
		}),
		Succeeded: prometheus.NewGauge(prometheus.GaugeOpts{
			Name:        "pgbootstrap_run_succeeded",
			Help:        "1 if the run completed every step, 0 otherwise",
			ConstLabels: labels,
		}),
		CompletedAt: prometheus.NewGauge(prometheus.GaugeOpts{
			Name:        "pgbootstrap_completed_timestamp_seconds",
			Help:        "Unix time the run finished",
			ConstLabels: labels,
		}),
	}

	registry.MustRegister(m.StepsApplied, m.StepsSkipped, m.StepsFailed, m.Succeeded, m.CompletedAt)
	return m
}

// Record captures a finished run's outcome.
func (m *JobMetrics) Record(applied, skipped int, failed bool) {
	m.StepsApplied.Add(float64(applied))
	m.StepsSkipped.Add(float64(skipped))
	if failed {
		m.StepsFailed.Inc()
		m.Succeeded.Set(0)
	} else {
		m.Succeeded.Set(1)
	}
	m.CompletedAt.Set(float64(time.Now().Unix()))
}
