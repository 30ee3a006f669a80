// Command diagnose_feeds checks every configured feed source and prints a
// per-source health report. Useful when a digest ships with fewer news
// items than expected.
//
// Usage:
//
//	go run ./scripts/diagnose_feeds.go [rss_feeds.yaml]
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/mmcdole/gofeed"

	"plannerx/internal/infra/feed"
)

// FeedDiagnostic is the report for a single source.
type FeedDiagnostic struct {
	Name         string `json:"name"`
	URL          string `json:"url"`
	Status       string `json:"status"` // "OK", "FETCH_ERROR", "EMPTY"
	ItemCount    int    `json:"item_count"`
	LatestDate   string `json:"latest_date,omitempty"`
	FeedType     string `json:"feed_type,omitempty"`
	ErrorMessage string `json:"error_message,omitempty"`
	ResponseTime int64  `json:"response_time_ms"`
}

func main() {
	path := "data/rss_feeds.yaml"
	if len(os.Args) > 1 {
		path = os.Args[1]
	}

	sources, err := feed.MustLoadSources(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load sources: %v\n", err)
		os.Exit(1)
	}

	client := &http.Client{Timeout: 15 * time.Second}
	parser := gofeed.NewParser()
	parser.UserAgent = "PlannerXBot"
	parser.Client = client

	diagnostics := make([]FeedDiagnostic, 0, len(sources))
	failures := 0
	for _, src := range sources {
		d := diagnose(parser, src)
		if d.Status != "OK" {
			failures++
		}
		diagnostics = append(diagnostics, d)
		fmt.Printf("%-12s %-30s items=%-4d %dms %s\n",
			d.Status, d.Name, d.ItemCount, d.ResponseTime, d.ErrorMessage)
	}

	out, err := json.MarshalIndent(diagnostics, "", "  ")
	if err == nil {
		if writeErr := os.WriteFile("feed_diagnostics.json", out, 0o644); writeErr == nil {
			fmt.Println("\nreport written to feed_diagnostics.json")
		}
	}

	fmt.Printf("\n%d/%d sources healthy\n", len(sources)-failures, len(sources))
	if failures > 0 {
		os.Exit(1)
	}
}

func diagnose(parser *gofeed.Parser, src feed.Source) FeedDiagnostic {
	d := FeedDiagnostic{Name: src.Label(), URL: src.URL}

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Second)
	defer cancel()

	start := time.Now()
	parsed, err := parser.ParseURLWithContext(src.URL, ctx)
	d.ResponseTime = time.Since(start).Milliseconds()

	if err != nil {
		d.Status = "FETCH_ERROR"
		d.ErrorMessage = err.Error()
		return d
	}

	d.FeedType = parsed.FeedType
	d.ItemCount = len(parsed.Items)
	if d.ItemCount == 0 {
		d.Status = "EMPTY"
		return d
	}

	d.Status = "OK"
	if parsed.Items[0].Published != "" {
		d.LatestDate = parsed.Items[0].Published
	}
	return d
}
