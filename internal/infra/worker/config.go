// Package worker runs the scheduled digest job: cron dispatch, health
// probes and Prometheus metrics for the long-running planner process.
package worker

import (
	"fmt"
	"log/slog"
	"time"

	"plannerx/internal/pkg/config"
)

// Config controls the digest worker: when digests go out, in which
// timezone the schedule is evaluated, and the operational limits of a
// single run.
//
// All fields have safe defaults. LoadConfigFromEnv never fails: invalid
// environment values fall back to the defaults with a warning, so a typo
// in deployment config degrades to stock behavior instead of downtime.
type Config struct {
	// CronSchedule is the five-field cron expression for digest runs.
	// Default: "0 7 * * *" (every day at 7:00).
	CronSchedule string

	// Timezone is the IANA timezone the schedule is evaluated in.
	// Default: "Europe/Prague".
	Timezone string

	// DigestTimeout bounds a single batch digest run. Default: 10 minutes.
	DigestTimeout time.Duration

	// NewsCacheTTL is how long cached news stays fresh before the worker
	// refetches feeds. Default: 12 hours.
	NewsCacheTTL time.Duration

	// HealthPort is the port for the health and metrics HTTP server.
	// Default: 9091.
	HealthPort int
}

// DefaultConfig returns the production defaults: a morning digest in
// Central European time with a 12-hour news cache.
func DefaultConfig() Config {
	return Config{
		CronSchedule:  "0 7 * * *",
		Timezone:      "Europe/Prague",
		DigestTimeout: 10 * time.Minute,
		NewsCacheTTL:  12 * time.Hour,
		HealthPort:    9091,
	}
}

// Validate checks every field and returns all violations at once.
func (c *Config) Validate() error {
	var errs []error

	if err := config.ValidateCronSchedule(c.CronSchedule); err != nil {
		errs = append(errs, fmt.Errorf("cron schedule: %w", err))
	}
	if err := config.ValidateTimezone(c.Timezone); err != nil {
		errs = append(errs, fmt.Errorf("timezone: %w", err))
	}
	if err := config.ValidateDuration(c.DigestTimeout, 1*time.Minute, 2*time.Hour); err != nil {
		errs = append(errs, fmt.Errorf("digest timeout: %w", err))
	}
	if err := config.ValidateDuration(c.NewsCacheTTL, 1*time.Minute, 72*time.Hour); err != nil {
		errs = append(errs, fmt.Errorf("news cache ttl: %w", err))
	}
	if err := config.ValidateIntRange(c.HealthPort, 1024, 65535); err != nil {
		errs = append(errs, fmt.Errorf("health port: %w", err))
	}

	if len(errs) > 0 {
		return fmt.Errorf("validation failed: %v", errs)
	}
	return nil
}

// Location resolves the configured timezone. The config is validated
// before use, so resolution failure falls back to UTC rather than erroring.
func (c *Config) Location() *time.Location {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

// LoadConfigFromEnv loads worker configuration from environment variables
// with per-field validation and fallback to defaults:
//
//	DIGEST_CRON_SCHEDULE  cron expression (default "0 7 * * *")
//	DIGEST_TIMEZONE       IANA timezone (default "Europe/Prague")
//	DIGEST_TIMEOUT        duration 1m-2h (default "10m")
//	NEWS_CACHE_TTL        duration 1m-72h (default "12h")
//	WORKER_HEALTH_PORT    integer 1024-65535 (default 9091)
//
// Every fallback is logged and counted in the worker metrics. The error
// return is always nil; it exists so call sites read like other loaders.
func LoadConfigFromEnv(logger *slog.Logger, metrics *Metrics) (*Config, error) {
	cfg := DefaultConfig()
	anyFallback := false

	note := func(field string, result config.LoadResult) {
		if !result.FallbackApplied {
			return
		}
		anyFallback = true
		metrics.RecordValidationError(field)
		metrics.RecordFallback(field)
		for _, warning := range result.Warnings {
			logger.Warn("Configuration fallback applied",
				slog.String("field", field),
				slog.String("warning", warning))
		}
	}

	result := config.LoadEnvWithFallback("DIGEST_CRON_SCHEDULE", cfg.CronSchedule, config.ValidateCronSchedule)
	cfg.CronSchedule = result.Value.(string)
	note("cron_schedule", result)

	result = config.LoadEnvWithFallback("DIGEST_TIMEZONE", cfg.Timezone, config.ValidateTimezone)
	cfg.Timezone = result.Value.(string)
	note("timezone", result)

	result = config.LoadEnvDuration("DIGEST_TIMEOUT", cfg.DigestTimeout, func(d time.Duration) error {
		return config.ValidateDuration(d, 1*time.Minute, 2*time.Hour)
	})
	cfg.DigestTimeout = result.Value.(time.Duration)
	note("digest_timeout", result)

	result = config.LoadEnvDuration("NEWS_CACHE_TTL", cfg.NewsCacheTTL, func(d time.Duration) error {
		return config.ValidateDuration(d, 1*time.Minute, 72*time.Hour)
	})
	cfg.NewsCacheTTL = result.Value.(time.Duration)
	note("news_cache_ttl", result)

	result = config.LoadEnvInt("WORKER_HEALTH_PORT", cfg.HealthPort, func(v int) error {
		return config.ValidateIntRange(v, 1024, 65535)
	})
	cfg.HealthPort = result.Value.(int)
	note("health_port", result)

	metrics.SetFallbackActive(anyFallback)
	metrics.RecordLoadTimestamp()

	return &cfg, nil
}
