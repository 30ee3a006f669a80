// Package summarizer provides the AI clients behind the news pipeline:
// headline ranking and narrative generation via OpenAI or Claude, with
// circuit breaker and retry logic around every call. All clients are
// optional; the news use case degrades to templated output without them.
package summarizer

import (
	"log/slog"
	"os"
	"strconv"
	"time"
)

const (
	defaultRankModel      = "gpt-3.5-turbo"
	defaultNarrativeModel = "gpt-4o-mini"

	defaultRankMaxTokens      = 200
	defaultNarrativeMaxTokens = 1200

	defaultTimeout = 60 * time.Second

	// itemContentLimit caps per-item content passed into the narrative
	// prompt, keeping the request within model context.
	itemContentLimit = 2000
)

// Config holds the shared knobs for the AI clients. Invalid environment
// values fall back to defaults with a warning; a digest run must not die on
// a typo in an env var.
type Config struct {
	RankModel          string
	NarrativeModel     string
	RankMaxTokens      int
	NarrativeMaxTokens int
	Timeout            time.Duration
}

// LoadConfig reads the summarizer configuration from environment variables.
//
// Environment variables:
//   - SUMMARIZER_RANK_MODEL: model for headline ranking (default gpt-3.5-turbo)
//   - SUMMARIZER_NARRATIVE_MODEL: model for narrative generation (default gpt-4o-mini)
//   - SUMMARIZER_TIMEOUT_SECONDS: per-call timeout (default 60)
func LoadConfig() Config {
	cfg := Config{
		RankModel:          defaultRankModel,
		NarrativeModel:     defaultNarrativeModel,
		RankMaxTokens:      defaultRankMaxTokens,
		NarrativeMaxTokens: defaultNarrativeMaxTokens,
		Timeout:            defaultTimeout,
	}

	if v := os.Getenv("SUMMARIZER_RANK_MODEL"); v != "" {
		cfg.RankModel = v
	}
	if v := os.Getenv("SUMMARIZER_NARRATIVE_MODEL"); v != "" {
		cfg.NarrativeModel = v
	}
	if v := os.Getenv("SUMMARIZER_TIMEOUT_SECONDS"); v != "" {
		parsed, err := strconv.Atoi(v)
		if err != nil || parsed <= 0 {
			slog.Warn("invalid SUMMARIZER_TIMEOUT_SECONDS, using default",
				slog.String("value", v),
				slog.Duration("default", defaultTimeout))
		} else {
			cfg.Timeout = time.Duration(parsed) * time.Second
		}
	}

	return cfg
}
