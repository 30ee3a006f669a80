// Package news provides the news aggregation and summarization use cases
// for the daily digest. Fetching goes through a whole-set on-disk cache;
// summarization degrades stage by stage so the digest always gets text.
package news

import (
	"context"
	"log/slog"
	"slices"
	"strings"
	"time"

	"plannerx/internal/domain/entity"
)

const (
	// perFeedDefault and perFeedFetchAll bound how many entries one source
	// contributes to a run.
	perFeedDefault  = 3
	perFeedFetchAll = 50

	// rankCandidateLimit caps how many headlines are offered to the ranker.
	rankCandidateLimit = 200

	// rankFallbackLimit is how many items survive when ranking is skipped.
	rankFallbackLimit = 10
)

// SourceFetcher retrieves entries from all configured feed sources.
type SourceFetcher interface {
	FetchAll(ctx context.Context, perFeed int) ([]entity.NewsItem, error)
}

// Cache persists the full fetched set between runs.
type Cache interface {
	Load(ttl time.Duration) ([]entity.NewsItem, bool)
	Save(items []entity.NewsItem) error
}

// Ranker orders headlines by importance, returning 0-based indices into the
// candidate list. May be absent or unreachable.
type Ranker interface {
	RankHeadlines(ctx context.Context, titles []string) ([]int, error)
}

// Generator produces a free-text narrative over the selected items.
// May be absent or unreachable.
type Generator interface {
	GenerateNarrative(ctx context.Context, items []entity.NewsItem) (string, error)
}

// Service provides the fetch and summarize use cases.
// Ranker and Generator may be nil; the service then falls back the same way
// it does when they error.
type Service struct {
	Fetcher   SourceFetcher
	Cache     Cache
	Ranker    Ranker
	Generator Generator
}

// NewService creates a news Service with the provided dependencies.
func NewService(fetcher SourceFetcher, cache Cache, ranker Ranker, generator Generator) *Service {
	return &Service{
		Fetcher:   fetcher,
		Cache:     cache,
		Ranker:    ranker,
		Generator: generator,
	}
}

// FetchOptions control one fetch run.
type FetchOptions struct {
	// MaxItems bounds the returned slice when FetchAll is false.
	MaxItems int

	// CacheTTL is how long a cached set stays fresh.
	CacheTTL time.Duration

	// FetchAll bypasses the cache read, raises the per-feed cap and returns
	// the full set for downstream ranking.
	FetchAll bool
}

// Fetch returns the current news set. A fresh-enough cache short-circuits
// the live fetch; otherwise all sources are fetched, deduplicated by link
// (first seen wins), sorted by the raw published string descending and the
// full set written back to the cache.
func (s *Service) Fetch(ctx context.Context, opts FetchOptions) ([]entity.NewsItem, error) {
	if !opts.FetchAll {
		if cached, ok := s.Cache.Load(opts.CacheTTL); ok {
			slog.Info("using cached news", slog.Int("items", len(cached)))
			return headOf(cached, opts.MaxItems), nil
		}
	}

	perFeed := perFeedDefault
	if opts.FetchAll {
		perFeed = perFeedFetchAll
	}

	fetched, err := s.Fetcher.FetchAll(ctx, perFeed)
	if err != nil {
		return nil, err
	}

	items := dedupeByLink(fetched)

	// The published field is compared as a string on purpose: feeds emit
	// wildly inconsistent date formats and the ordering only feeds display.
	slices.SortStableFunc(items, func(a, b entity.NewsItem) int {
		return strings.Compare(b.Published, a.Published)
	})

	if err := s.Cache.Save(items); err != nil {
		slog.Warn("news cache write failed", slog.Any("error", err))
	}

	slog.Info("news refreshed", slog.Int("items", len(items)))

	if opts.FetchAll {
		return items, nil
	}
	return headOf(items, opts.MaxItems), nil
}

// dedupeByLink collapses items sharing a link to the first occurrence.
func dedupeByLink(items []entity.NewsItem) []entity.NewsItem {
	seen := make(map[string]struct{}, len(items))
	out := make([]entity.NewsItem, 0, len(items))
	for _, it := range items {
		if _, dup := seen[it.Link]; dup {
			continue
		}
		seen[it.Link] = struct{}{}
		out = append(out, it)
	}
	return out
}

func headOf(items []entity.NewsItem, n int) []entity.NewsItem {
	if n > 0 && len(items) > n {
		return items[:n]
	}
	return items
}
