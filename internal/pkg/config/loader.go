// Package config provides fail-open loading of configuration values from
// environment variables. An invalid value never aborts startup: the loader
// falls back to the documented default, records a warning and lets the
// caller surface it through logs and metrics.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// LoadResult is the outcome of loading a single configuration value.
// Value carries the loaded value (or the default when a fallback was
// applied), Warnings explains every fallback in operator-readable form.
type LoadResult struct {
	Value           interface{}
	Warnings        []string
	FallbackApplied bool
}

func fallbackResult(envKey, raw string, err error, defaultValue interface{}) LoadResult {
	return LoadResult{
		Value: defaultValue,
		Warnings: []string{fmt.Sprintf(
			"Invalid %s='%s': %v, falling back to default '%v'",
			envKey, raw, err, defaultValue,
		)},
		FallbackApplied: true,
	}
}

// LoadEnvString reads a string from the environment without validation.
// Unset or empty variables yield the default.
func LoadEnvString(envKey, defaultValue string) string {
	if v := os.Getenv(envKey); v != "" {
		return v
	}
	return defaultValue
}

// LoadEnvWithFallback reads a string from the environment and validates it.
// An unset variable silently yields the default; a set-but-invalid value
// yields the default with a warning. The validator may be nil.
func LoadEnvWithFallback(envKey, defaultValue string, validator func(string) error) LoadResult {
	raw := os.Getenv(envKey)
	if raw == "" {
		return LoadResult{Value: defaultValue}
	}
	if validator != nil {
		if err := validator(raw); err != nil {
			return fallbackResult(envKey, raw, err, defaultValue)
		}
	}
	return LoadResult{Value: raw}
}

// LoadEnvDuration reads a Go duration string ("30s", "1h30m") from the
// environment. Parse and validation failures fall back to the default.
func LoadEnvDuration(envKey string, defaultValue time.Duration, validator func(time.Duration) error) LoadResult {
	raw := os.Getenv(envKey)
	if raw == "" {
		return LoadResult{Value: defaultValue}
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		return fallbackResult(envKey, raw, err, defaultValue)
	}
	if validator != nil {
		if err := validator(d); err != nil {
			return fallbackResult(envKey, raw, err, defaultValue)
		}
	}
	return LoadResult{Value: d}
}

// LoadEnvInt reads an integer from the environment. Parse and validation
// failures fall back to the default.
func LoadEnvInt(envKey string, defaultValue int, validator func(int) error) LoadResult {
	raw := os.Getenv(envKey)
	if raw == "" {
		return LoadResult{Value: defaultValue}
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return fallbackResult(envKey, raw, fmt.Errorf("invalid integer format"), defaultValue)
	}
	if validator != nil {
		if err := validator(n); err != nil {
			return fallbackResult(envKey, raw, err, defaultValue)
		}
	}
	return LoadResult{Value: n}
}

// LoadEnvBool reads a boolean from the environment, accepting the forms
// strconv.ParseBool understands ("1", "t", "true", "0", "false", ...).
func LoadEnvBool(envKey string, defaultValue bool) LoadResult {
	raw := os.Getenv(envKey)
	if raw == "" {
		return LoadResult{Value: defaultValue}
	}
	b, err := strconv.ParseBool(raw)
	if err != nil {
		return fallbackResult(envKey, raw, fmt.Errorf("invalid boolean format"), defaultValue)
	}
	return LoadResult{Value: b}
}
