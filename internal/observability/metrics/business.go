package metrics

import (
	"time"
)

// RecordNewsFetched records the number of items fetched from a feed source.
func RecordNewsFetched(source string, count int) {
	NewsItemsFetchedTotal.WithLabelValues(source).Add(float64(count))
}

// RecordNewsFetchError records a failed fetch for a feed source.
func RecordNewsFetchError(source string) {
	NewsFetchErrorsTotal.WithLabelValues(source).Inc()
}

// RecordNewsCacheLookup records a news cache lookup result.
func RecordNewsCacheLookup(hit bool) {
	result := "miss"
	if hit {
		result = "hit"
	}
	NewsCacheLookupsTotal.WithLabelValues(result).Inc()
}

// RecordRankOutcome records a headline ranking outcome. Outcome is one of
// "ok", "fallback" or "skipped".
func RecordRankOutcome(outcome string) {
	NewsRankOutcomesTotal.WithLabelValues(outcome).Inc()
}

// RecordNarrativeOutcome records a narrative generation outcome. Outcome
// is one of "ok", "fallback" or "skipped".
func RecordNarrativeOutcome(outcome string) {
	NewsNarrativeOutcomesTotal.WithLabelValues(outcome).Inc()
}

// RecordNarrativeDuration records the time taken to generate a narrative.
func RecordNarrativeDuration(duration time.Duration) {
	NarrativeDuration.Observe(duration.Seconds())
}

// RecordDigestBuilt records one assembled digest bundle and its build time.
func RecordDigestBuilt(duration time.Duration) {
	DigestsBuiltTotal.Inc()
	DigestBuildDuration.Observe(duration.Seconds())
}

// RecordEmailSent records the result of one digest email delivery.
func RecordEmailSent(success bool) {
	EmailsSentTotal.WithLabelValues(statusLabel(success)).Inc()
}

// RecordSMSSent records the result of one digest SMS delivery.
func RecordSMSSent(success bool) {
	SMSSentTotal.WithLabelValues(statusLabel(success)).Inc()
}

// RecordOperationDuration records the duration of a named database operation.
func RecordOperationDuration(operation string, duration time.Duration) {
	DBQueryDuration.WithLabelValues(operation).Observe(duration.Seconds())
}

// UpdateDBConnections updates the database connection pool gauges. Call
// periodically with sql.DBStats values.
func UpdateDBConnections(active, idle int) {
	DBConnectionsActive.Set(float64(active))
	DBConnectionsIdle.Set(float64(idle))
}

func statusLabel(success bool) string {
	if success {
		return "success"
	}
	return "failure"
}
