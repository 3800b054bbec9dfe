// Package metrics holds the worker's Prometheus collectors.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "vidmark"

type Metrics struct {
	jobs             *prometheus.CounterVec
	stageDuration    *prometheus.HistogramVec
	callbackFailures prometheus.Counter
}

// New registers the collectors on reg. Each test should pass its own
// prometheus.NewRegistry to avoid duplicate registration panics.
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		jobs: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "jobs_total",
			Help:      "Finished jobs by terminal status.",
		}, []string{"status"}),
		stageDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "stage_duration_seconds",
			Help:      "Wall time spent in each pipeline stage.",
			Buckets:   []float64{0.1, 0.5, 1, 5, 15, 30, 60, 120, 300, 600, 1800},
		}, []string{"stage"}),
		callbackFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "callback_failures_total",
			Help:      "Callback notifications that could not be delivered.",
		}),
	}

	reg.MustRegister(m.jobs, m.stageDuration, m.callbackFailures)
	return m
}

func (m *Metrics) JobFinished(status string) {
	m.jobs.WithLabelValues(status).Inc()
}

func (m *Metrics) ObserveStage(stage string, d time.Duration) {
	m.stageDuration.WithLabelValues(stage).Observe(d.Seconds())
}

func (m *Metrics) CallbackFailed() {
	m.callbackFailures.Inc()
}
