package summarizer

import (
	"context"

	"plannerx/internal/domain/entity"
)

// ErrDisabled is returned by the NoOp clients. The news use case treats it
// like any other service failure and takes the deterministic fallback.
var ErrDisabled = noOpError("summarizer disabled")

type noOpError string

func (e noOpError) Error() string { return string(e) }

// NoOp is the stand-in used in tests and development when no AI backend is
// configured. Both stages report unavailability, so summaries come out of
// the templated fallback and stay fully deterministic.
type NoOp struct{}

// NewNoOp creates a new NoOp client.
func NewNoOp() *NoOp {
	return &NoOp{}
}

// RankHeadlines reports the ranker as unavailable.
func (n *NoOp) RankHeadlines(_ context.Context, _ []string) ([]int, error) {
	return nil, ErrDisabled
}

// GenerateNarrative reports the generator as unavailable.
func (n *NoOp) GenerateNarrative(_ context.Context, _ []entity.NewsItem) (string, error) {
	return "", ErrDisabled
}
