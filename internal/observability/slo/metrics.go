// Package slo tracks service level objectives for digest delivery.
package slo

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// SLO targets for the digest worker. The worker has no request path; its
// reliability is measured per batch run.
const (
	// DeliverySLO is the target ratio of eligible users who receive
	// their digest in a given run (0.99 = at most 1 in 100 failures).
	DeliverySLO = 0.99

	// NewsFallbackBudget is the maximum acceptable ratio of digests
	// shipped with the templated news summary instead of the AI
	// narrative. Above this, the AI integration needs attention.
	NewsFallbackBudget = 0.10

	// RunDurationSLO is the target for a full batch run in seconds.
	RunDurationSLO = 300.0
)

// SLO tracking gauges, updated after each digest batch run.
var (
	// SLODeliveryRatio is the delivery success ratio of the last run,
	// calculated as success / (success + errors). Skipped users are not
	// eligible and do not count.
	SLODeliveryRatio = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "slo_digest_delivery_ratio",
			Help: "Digest delivery success ratio of the last run (0-1), target: 0.99",
		},
	)

	// SLONewsFallbackRatio is the ratio of deliveries in the last run
	// that fell back to the templated news summary.
	SLONewsFallbackRatio = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "slo_news_fallback_ratio",
			Help: "Ratio of digests delivered with templated news fallback (0-1), budget: 0.10",
		},
	)

	// SLORunDuration is the duration of the last batch run in seconds.
	SLORunDuration = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "slo_digest_run_duration_seconds",
			Help: "Duration of the last digest batch run in seconds, target: 300",
		},
	)
)

// UpdateDeliveryRatio records the delivery ratio for a finished run.
// A run with no eligible users counts as fully successful.
func UpdateDeliveryRatio(success, errors int) {
	eligible := success + errors
	if eligible == 0 {
		SLODeliveryRatio.Set(1)
		return
	}
	SLODeliveryRatio.Set(float64(success) / float64(eligible))
}

// UpdateNewsFallbackRatio records the templated-summary ratio for a
// finished run.
func UpdateNewsFallbackRatio(fallbacks, delivered int) {
	if delivered == 0 {
		SLONewsFallbackRatio.Set(0)
		return
	}
	SLONewsFallbackRatio.Set(float64(fallbacks) / float64(delivered))
}

// UpdateRunDuration records the wall-clock duration of a finished run.
func UpdateRunDuration(seconds float64) {
	SLORunDuration.Set(seconds)
}
