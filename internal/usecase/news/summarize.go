package news

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"plannerx/internal/domain/entity"
	"plannerx/internal/observability/metrics"
)

// noNewsMessage is the fixed text used when there is nothing to summarize.
const noNewsMessage = "Žiadne novinky nie sú k dispozícii."

// fallbackHeader opens the templated summary when generation is unavailable.
const fallbackHeader = "**Dnešné najdôležitejšie správy:**"

// StageOutcome records how one stage of the summarization pipeline ended.
type StageOutcome int

const (
	// StageSkipped means the stage never ran (no input).
	StageSkipped StageOutcome = iota

	// StageOK means the external service answered and its output was used.
	StageOK

	// StageFellBack means the service was absent, errored or answered
	// unusably, and the deterministic fallback was used instead.
	StageFellBack
)

// String returns the outcome label used in logs.
func (o StageOutcome) String() string {
	switch o {
	case StageSkipped:
		return "skipped"
	case StageOK:
		return "ok"
	case StageFellBack:
		return "fallback"
	default:
		return fmt.Sprintf("StageOutcome(%d)", int(o))
	}
}

// SummaryResult is the terminal state of one summarize run. Text is always
// non-empty; the outcomes say which stages degraded along the way.
type SummaryResult struct {
	Text    string
	Items   []entity.NewsItem
	Rank    StageOutcome
	Narrate StageOutcome
}

// Summarize turns a fetched news set into narrative text for the digest.
// Pipeline: rank up to 200 headlines, keep the top topN, generate a
// narrative over them. Every stage falls back independently; no path
// returns an error to the caller.
func (s *Service) Summarize(ctx context.Context, items []entity.NewsItem, topN int) SummaryResult {
	if len(items) == 0 {
		return SummaryResult{Text: noNewsMessage}
	}

	candidates := items
	if len(candidates) > rankCandidateLimit {
		candidates = candidates[:rankCandidateLimit]
	}

	ranked, rankOutcome := s.rank(ctx, candidates)
	metrics.RecordRankOutcome(rankOutcome.String())

	top := headOf(ranked, topN)
	if len(top) == 0 {
		return SummaryResult{Text: noNewsMessage, Rank: rankOutcome}
	}

	start := time.Now()
	text, narrateOutcome := s.narrate(ctx, top)
	metrics.RecordNarrativeOutcome(narrateOutcome.String())
	metrics.RecordNarrativeDuration(time.Since(start))

	slog.Info("news summarized",
		slog.Int("candidates", len(candidates)),
		slog.Int("selected", len(top)),
		slog.String("rank", rankOutcome.String()),
		slog.String("narrate", narrateOutcome.String()))

	return SummaryResult{
		Text:    text,
		Items:   top,
		Rank:    rankOutcome,
		Narrate: narrateOutcome,
	}
}

// rank orders the candidates by ranker-returned indices. Out-of-range
// indices are dropped. Any ranker failure degrades to the first items in
// original order.
func (s *Service) rank(ctx context.Context, candidates []entity.NewsItem) ([]entity.NewsItem, StageOutcome) {
	if s.Ranker == nil {
		return headOf(candidates, rankFallbackLimit), StageFellBack
	}

	titles := make([]string, len(candidates))
	for i, it := range candidates {
		titles[i] = it.Title
	}

	indices, err := s.Ranker.RankHeadlines(ctx, titles)
	if err != nil {
		slog.Warn("headline ranking failed, using original order", slog.Any("error", err))
		return headOf(candidates, rankFallbackLimit), StageFellBack
	}

	ranked := make([]entity.NewsItem, 0, len(indices))
	for _, idx := range indices {
		if idx < 0 || idx >= len(candidates) {
			continue
		}
		ranked = append(ranked, candidates[idx])
	}
	return ranked, StageOK
}

// narrate asks the generator for a narrative over the selected items,
// degrading to the templated summary on any failure.
func (s *Service) narrate(ctx context.Context, top []entity.NewsItem) (string, StageOutcome) {
	if s.Generator == nil {
		return simpleSummary(top), StageFellBack
	}

	text, err := s.Generator.GenerateNarrative(ctx, top)
	if err != nil || strings.TrimSpace(text) == "" {
		if err != nil {
			slog.Warn("narrative generation failed, using templated summary", slog.Any("error", err))
		}
		return simpleSummary(top), StageFellBack
	}
	return text, StageOK
}

// simpleSummary is the deterministic templated fallback: a header followed
// by a numbered title and summary per item.
func simpleSummary(items []entity.NewsItem) string {
	if len(items) == 0 {
		return noNewsMessage
	}

	lines := []string{fallbackHeader}
	for i, it := range items {
		lines = append(lines, fmt.Sprintf("%d. **%s**", i+1, it.Title))
		if it.Summary != "" {
			lines = append(lines, "   "+it.Summary)
		}
		lines = append(lines, "")
	}
	return strings.Join(lines, "\n")
}
