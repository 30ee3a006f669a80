package feed

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"sync"

	"github.com/mmcdole/gofeed"
	"github.com/sony/gobreaker"
	"golang.org/x/sync/errgroup"

	"plannerx/internal/domain/entity"
	"plannerx/internal/observability/metrics"
	"plannerx/internal/resilience/circuitbreaker"
	"plannerx/internal/resilience/retry"
)

const fetchConcurrency = 4

// Fetcher retrieves entries from all configured sources. Each source gets
// its own circuit breaker so one dead host does not block the others.
type Fetcher struct {
	client      *http.Client
	sources     []Source
	retryConfig retry.Config

	mu       sync.Mutex
	breakers map[string]*circuitbreaker.CircuitBreaker
}

// NewFetcher creates a Fetcher over the given sources.
func NewFetcher(client *http.Client, sources []Source) *Fetcher {
	return &Fetcher{
		client:      client,
		sources:     sources,
		retryConfig: retry.FeedFetchConfig(),
		breakers:    make(map[string]*circuitbreaker.CircuitBreaker),
	}
}

// FetchAll fetches up to perFeed entries from every source concurrently and
// returns them concatenated in configured source order, so downstream
// link deduplication is deterministic. Per-source failures are logged and
// skipped; FetchAll itself fails only on context cancellation.
func (f *Fetcher) FetchAll(ctx context.Context, perFeed int) ([]entity.NewsItem, error) {
	results := make([][]entity.NewsItem, len(f.sources))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(fetchConcurrency)

	for i, src := range f.sources {
		g.Go(func() error {
			items, err := f.fetchSource(ctx, src, perFeed)
			if err != nil {
				if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
					return err
				}
				metrics.RecordNewsFetchError(src.Label())
				slog.Error("feed fetch failed, skipping source",
					slog.String("source", src.Label()),
					slog.String("url", src.URL),
					slog.Any("error", err))
				return nil
			}
			metrics.RecordNewsFetched(src.Label(), len(items))
			results[i] = items
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	var all []entity.NewsItem
	for _, r := range results {
		all = append(all, r...)
	}

	slog.Info("feeds fetched",
		slog.Int("sources", len(f.sources)),
		slog.Int("items", len(all)))
	return all, nil
}

// fetchSource retrieves one source through its breaker with retry.
func (f *Fetcher) fetchSource(ctx context.Context, src Source, perFeed int) ([]entity.NewsItem, error) {
	cb := f.breakerFor(src)

	var items []entity.NewsItem
	retryErr := retry.WithBackoff(ctx, f.retryConfig, func() error {
		cbResult, err := cb.Execute(func() (any, error) {
			return f.doFetch(ctx, src, perFeed)
		})
		if err != nil {
			if errors.Is(err, gobreaker.ErrOpenState) {
				slog.Warn("feed circuit breaker open, request rejected",
					slog.String("source", src.Label()),
					slog.String("state", cb.State().String()))
			}
			return err
		}

		items = cbResult.([]entity.NewsItem)
		return nil
	})
	if retryErr != nil {
		return nil, retryErr
	}

	return items, nil
}

func (f *Fetcher) breakerFor(src Source) *circuitbreaker.CircuitBreaker {
	f.mu.Lock()
	defer f.mu.Unlock()

	cb, ok := f.breakers[src.URL]
	if !ok {
		cb = circuitbreaker.New(circuitbreaker.FeedFetchConfig("feed:" + src.Label()))
		f.breakers[src.URL] = cb
	}
	return cb
}

// doFetch performs the actual parse without retry or circuit breaker.
func (f *Fetcher) doFetch(ctx context.Context, src Source, perFeed int) ([]entity.NewsItem, error) {
	fp := gofeed.NewParser()
	fp.UserAgent = "PlannerXBot"
	fp.Client = f.client

	parsed, err := fp.ParseURLWithContext(src.URL, ctx)
	if err != nil {
		return nil, err
	}

	entries := parsed.Items
	if perFeed > 0 && len(entries) > perFeed {
		entries = entries[:perFeed]
	}

	items := make([]entity.NewsItem, 0, len(entries))
	for _, it := range entries {
		items = append(items, newsItemFrom(it, src.Label()))
	}
	return items, nil
}

// newsItemFrom maps a parsed entry onto the digest's news record.
func newsItemFrom(it *gofeed.Item, source string) entity.NewsItem {
	title := it.Title
	if title == "" {
		title = "No title"
	}

	return entity.NewsItem{
		Title:     title,
		Summary:   extractSummary(it.Description),
		Content:   extractContent(it.Content),
		Link:      it.Link,
		Published: it.Published,
		Source:    source,
	}
}
