package worker

import (
	"log/slog"
	"strings"
	"testing"
	"time"
)

// Worker metrics register with the default Prometheus registry, so tests
// share one instance.
var testMetrics = NewMetrics()

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.CronSchedule != "0 7 * * *" {
		t.Errorf("CronSchedule = %q, want %q", cfg.CronSchedule, "0 7 * * *")
	}
	if cfg.Timezone != "Europe/Prague" {
		t.Errorf("Timezone = %q, want %q", cfg.Timezone, "Europe/Prague")
	}
	if cfg.DigestTimeout != 10*time.Minute {
		t.Errorf("DigestTimeout = %v, want 10m", cfg.DigestTimeout)
	}
	if cfg.NewsCacheTTL != 12*time.Hour {
		t.Errorf("NewsCacheTTL = %v, want 12h", cfg.NewsCacheTTL)
	}
	if cfg.HealthPort != 9091 {
		t.Errorf("HealthPort = %d, want 9091", cfg.HealthPort)
	}

	if err := cfg.Validate(); err != nil {
		t.Errorf("default config should validate, got %v", err)
	}
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		errHas string
	}{
		{
			name:   "invalid cron schedule",
			mutate: func(c *Config) { c.CronSchedule = "every morning" },
			errHas: "cron schedule",
		},
		{
			name:   "invalid timezone",
			mutate: func(c *Config) { c.Timezone = "Mars/Olympus" },
			errHas: "timezone",
		},
		{
			name:   "digest timeout too short",
			mutate: func(c *Config) { c.DigestTimeout = time.Second },
			errHas: "digest timeout",
		},
		{
			name:   "digest timeout too long",
			mutate: func(c *Config) { c.DigestTimeout = 3 * time.Hour },
			errHas: "digest timeout",
		},
		{
			name:   "news cache ttl out of range",
			mutate: func(c *Config) { c.NewsCacheTTL = 100 * time.Hour },
			errHas: "news cache ttl",
		},
		{
			name:   "privileged health port",
			mutate: func(c *Config) { c.HealthPort = 80 },
			errHas: "health port",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if err == nil {
				t.Fatal("Validate() = nil, want error")
			}
			if !strings.Contains(err.Error(), tt.errHas) {
				t.Errorf("error %q should mention %q", err, tt.errHas)
			}
		})
	}

	t.Run("multiple violations aggregated", func(t *testing.T) {
		cfg := DefaultConfig()
		cfg.CronSchedule = "bad"
		cfg.HealthPort = 0
		err := cfg.Validate()
		if err == nil {
			t.Fatal("Validate() = nil, want error")
		}
		if !strings.Contains(err.Error(), "cron schedule") || !strings.Contains(err.Error(), "health port") {
			t.Errorf("error should carry both violations: %q", err)
		}
	})
}

func TestConfig_Location(t *testing.T) {
	cfg := DefaultConfig()
	if got := cfg.Location().String(); got != "Europe/Prague" {
		t.Errorf("Location() = %q, want Europe/Prague", got)
	}

	cfg.Timezone = "Nowhere/Invalid"
	if got := cfg.Location(); got != time.UTC {
		t.Errorf("Location() with invalid timezone = %v, want UTC", got)
	}
}

func TestLoadConfigFromEnv_Defaults(t *testing.T) {
	cfg, err := LoadConfigFromEnv(slog.Default(), testMetrics)
	if err != nil {
		t.Fatalf("LoadConfigFromEnv returned error: %v", err)
	}

	want := DefaultConfig()
	if *cfg != want {
		t.Errorf("config = %+v, want defaults %+v", *cfg, want)
	}
}

func TestLoadConfigFromEnv_Overrides(t *testing.T) {
	t.Setenv("DIGEST_CRON_SCHEDULE", "30 6 * * 1-5")
	t.Setenv("DIGEST_TIMEZONE", "UTC")
	t.Setenv("DIGEST_TIMEOUT", "20m")
	t.Setenv("NEWS_CACHE_TTL", "6h")
	t.Setenv("WORKER_HEALTH_PORT", "9191")

	cfg, err := LoadConfigFromEnv(slog.Default(), testMetrics)
	if err != nil {
		t.Fatalf("LoadConfigFromEnv returned error: %v", err)
	}

	if cfg.CronSchedule != "30 6 * * 1-5" {
		t.Errorf("CronSchedule = %q", cfg.CronSchedule)
	}
	if cfg.Timezone != "UTC" {
		t.Errorf("Timezone = %q", cfg.Timezone)
	}
	if cfg.DigestTimeout != 20*time.Minute {
		t.Errorf("DigestTimeout = %v", cfg.DigestTimeout)
	}
	if cfg.NewsCacheTTL != 6*time.Hour {
		t.Errorf("NewsCacheTTL = %v", cfg.NewsCacheTTL)
	}
	if cfg.HealthPort != 9191 {
		t.Errorf("HealthPort = %d", cfg.HealthPort)
	}
}

func TestLoadConfigFromEnv_InvalidValuesFallBack(t *testing.T) {
	t.Setenv("DIGEST_CRON_SCHEDULE", "whenever")
	t.Setenv("DIGEST_TIMEZONE", "Mars/Olympus")
	t.Setenv("DIGEST_TIMEOUT", "5s") // below 1m floor
	t.Setenv("WORKER_HEALTH_PORT", "99999")

	cfg, err := LoadConfigFromEnv(slog.Default(), testMetrics)
	if err != nil {
		t.Fatalf("LoadConfigFromEnv returned error: %v", err)
	}

	want := DefaultConfig()
	if *cfg != want {
		t.Errorf("invalid env should fall back to defaults, got %+v", *cfg)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("fallback config should validate, got %v", err)
	}
}
