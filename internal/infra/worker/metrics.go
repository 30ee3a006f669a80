package worker

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"plannerx/internal/pkg/config"
)

// Metrics exposes the digest worker's Prometheus metrics. It embeds the
// shared configuration metrics and adds series for digest run outcomes:
//
//	worker_digest_runs_total{status}          runs by success/failure
//	worker_digest_run_duration_seconds        run duration histogram
//	worker_digest_deliveries_total{status}    per-user outcomes (sent/failed/skipped)
//	worker_digest_last_success_timestamp      unix time of last successful run
type Metrics struct {
	*config.Metrics

	DigestRunsTotal *prometheus.CounterVec

	// DigestRunDurationSeconds buckets cover sub-second noop runs up to
	// the 10-minute digest timeout.
	DigestRunDurationSeconds prometheus.Histogram

	DigestDeliveriesTotal *prometheus.CounterVec

	DigestLastSuccessTimestamp prometheus.Gauge
}

// NewMetrics creates and registers the worker metrics with the default
// Prometheus registry.
func NewMetrics() *Metrics {
	return &Metrics{
		Metrics: config.NewMetrics("worker"),

		DigestRunsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "worker_digest_runs_total",
			Help: "Total number of digest batch runs by status (success/failure)",
		}, []string{"status"}),

		DigestRunDurationSeconds: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "worker_digest_run_duration_seconds",
			Help:    "Duration of digest batch runs in seconds",
			Buckets: []float64{1, 5, 30, 60, 120, 300, 600},
		}),

		DigestDeliveriesTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "worker_digest_deliveries_total",
			Help: "Per-user digest outcomes by status (sent/failed/skipped)",
		}, []string{"status"}),

		DigestLastSuccessTimestamp: promauto.NewGauge(prometheus.GaugeOpts{
			Name: "worker_digest_last_success_timestamp",
			Help: "Unix timestamp of the last successful digest batch run",
		}),
	}
}

// RecordRun counts one digest batch run. Status is "success" or "failure".
func (m *Metrics) RecordRun(status string) {
	m.DigestRunsTotal.WithLabelValues(status).Inc()
}

// RecordRunDuration observes the duration of a digest batch run.
func (m *Metrics) RecordRunDuration(seconds float64) {
	m.DigestRunDurationSeconds.Observe(seconds)
}

// RecordDeliveries adds the per-user outcome counts of one batch run.
func (m *Metrics) RecordDeliveries(sent, failed, skipped int) {
	m.DigestDeliveriesTotal.WithLabelValues("sent").Add(float64(sent))
	m.DigestDeliveriesTotal.WithLabelValues("failed").Add(float64(failed))
	m.DigestDeliveriesTotal.WithLabelValues("skipped").Add(float64(skipped))
}

// RecordLastSuccess marks the current time as the last successful run.
func (m *Metrics) RecordLastSuccess() {
	m.DigestLastSuccessTimestamp.SetToCurrentTime()
}
