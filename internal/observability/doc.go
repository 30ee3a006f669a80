// Package observability provides the planner's observability
// infrastructure: structured logging and Prometheus metrics.
//
// Subpackages:
//   - logging: structured logging utilities built on log/slog
//   - metrics: Prometheus metrics registry and recorders
//   - slo: service level objective tracking for digest delivery
//
// Example usage:
//
//	import (
//	    "plannerx/internal/observability/logging"
//	    "plannerx/internal/observability/metrics"
//	)
//
//	func main() {
//	    logger := logging.NewLogger()
//	    logger.Info("application started")
//
//	    metrics.RecordNewsFetched("root.cz", 12)
//	}
package observability
