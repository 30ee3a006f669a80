// Package metrics provides centralized Prometheus metrics for the application.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// News pipeline metrics track feed fetching and summarization behavior.
var (
	// NewsItemsFetchedTotal counts items fetched per feed source.
	NewsItemsFetchedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "news_items_fetched_total",
			Help: "Total number of news items fetched from feed sources",
		},
		[]string{"source"},
	)

	// NewsFetchErrorsTotal counts failed feed fetches per source.
	NewsFetchErrorsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "news_fetch_errors_total",
			Help: "Total number of failed feed fetches",
		},
		[]string{"source"},
	)

	// NewsCacheLookupsTotal counts news cache lookups by result.
	NewsCacheLookupsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "news_cache_lookups_total",
			Help: "Total number of news cache lookups",
		},
		[]string{"result"}, // result: hit, miss
	)

	// NewsRankOutcomesTotal counts headline ranking outcomes. The
	// "fallback" label value means the AI ranking failed and the
	// newest-first ordering was used instead.
	NewsRankOutcomesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "news_rank_outcomes_total",
			Help: "Total number of headline ranking outcomes",
		},
		[]string{"outcome"}, // outcome: ok, fallback, skipped
	)

	// NewsNarrativeOutcomesTotal counts narrative generation outcomes.
	// The "fallback" label value means the templated summary was used.
	NewsNarrativeOutcomesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "news_narrative_outcomes_total",
			Help: "Total number of narrative generation outcomes",
		},
		[]string{"outcome"}, // outcome: ok, fallback, skipped
	)

	// NarrativeDuration measures time spent generating the news narrative.
	NarrativeDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "news_narrative_duration_seconds",
			Help:    "Time taken to generate the news narrative",
			Buckets: prometheus.ExponentialBuckets(0.5, 2, 10),
		},
	)
)

// Digest metrics track assembly and delivery of daily digests.
var (
	// DigestsBuiltTotal counts digest bundles assembled.
	DigestsBuiltTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "digests_built_total",
			Help: "Total number of digest bundles assembled",
		},
	)

	// DigestBuildDuration measures time to assemble one user's digest.
	DigestBuildDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "digest_build_duration_seconds",
			Help:    "Time taken to assemble a digest bundle",
			Buckets: prometheus.ExponentialBuckets(0.1, 2, 10),
		},
	)

	// EmailsSentTotal counts digest email deliveries by status.
	EmailsSentTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "digest_emails_sent_total",
			Help: "Total number of digest email deliveries",
		},
		[]string{"status"}, // status: success, failure
	)

	// SMSSentTotal counts digest SMS deliveries by status.
	SMSSentTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "digest_sms_sent_total",
			Help: "Total number of digest SMS deliveries",
		},
		[]string{"status"}, // status: success, failure
	)
)

// Database metrics track storage performance.
var (
	// DBQueryDuration measures database query duration by operation.
	DBQueryDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "db_query_duration_seconds",
			Help:    "Database query duration in seconds",
			Buckets: prometheus.ExponentialBuckets(0.001, 2, 10),
		},
		[]string{"operation"},
	)

	// DBConnectionsActive tracks active database connections.
	DBConnectionsActive = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "db_connections_active",
			Help: "Number of active database connections",
		},
	)

	// DBConnectionsIdle tracks idle database connections.
	DBConnectionsIdle = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "db_connections_idle",
			Help: "Number of idle database connections",
		},
	)
)
