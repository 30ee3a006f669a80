package summarizer

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
	"github.com/google/uuid"
	"github.com/sony/gobreaker"

	"plannerx/internal/domain/entity"
	"plannerx/internal/resilience/circuitbreaker"
	"plannerx/internal/resilience/retry"
)

// defaultClaudeModel is used when SUMMARIZER_NARRATIVE_MODEL does not name
// a Claude model.
var defaultClaudeModel = string(anthropic.ModelClaudeSonnet4_5_20250929)

// Claude implements narrative generation using Anthropic's Claude API.
type Claude struct {
	client         anthropic.Client
	circuitBreaker *circuitbreaker.CircuitBreaker
	retryConfig    retry.Config
	model          string
	maxTokens      int
	timeout        time.Duration
}

// NewClaude creates a Claude narrative generator with the given API key.
func NewClaude(apiKey string, config Config) *Claude {
	model := config.NarrativeModel
	if model == "" || model == defaultNarrativeModel {
		model = defaultClaudeModel
	}

	slog.Info("initialized claude summarizer", slog.String("model", model))

	return &Claude{
		client:         anthropic.NewClient(option.WithAPIKey(apiKey)),
		circuitBreaker: circuitbreaker.New(circuitbreaker.AIAPIConfig("claude-narrative")),
		retryConfig:    retry.AIAPIConfig(),
		model:          model,
		maxTokens:      config.NarrativeMaxTokens,
		timeout:        config.Timeout,
	}
}

// GenerateNarrative produces the structured Slovak summary over the
// selected items using Claude.
func (c *Claude) GenerateNarrative(ctx context.Context, items []entity.NewsItem) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	var result string

	retryErr := retry.WithBackoff(ctx, c.retryConfig, func() error {
		cbResult, err := c.circuitBreaker.Execute(func() (any, error) {
			return c.doGenerate(ctx, items)
		})
		if err != nil {
			if errors.Is(err, gobreaker.ErrOpenState) {
				slog.Warn("claude circuit breaker open, request rejected",
					slog.String("state", c.circuitBreaker.State().String()))
				return fmt.Errorf("claude api unavailable: circuit breaker open")
			}
			return err
		}

		result = cbResult.(string)
		return nil
	})
	if retryErr != nil {
		return "", fmt.Errorf("GenerateNarrative: %w", retryErr)
	}

	return result, nil
}

// doGenerate performs the actual API call without retry or circuit breaker.
func (c *Claude) doGenerate(ctx context.Context, items []entity.NewsItem) (string, error) {
	requestID := uuid.New().String()
	start := time.Now()

	message, err := c.client.Messages.New(ctx, anthropic.MessageNewParams{
		Model:     anthropic.Model(c.model),
		MaxTokens: int64(c.maxTokens),
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(
				anthropic.NewTextBlock(buildNarrativePrompt(items)),
			),
		},
	})

	duration := time.Since(start)

	if err != nil {
		slog.ErrorContext(ctx, "claude generation failed",
			slog.String("request_id", requestID),
			slog.Duration("duration", duration),
			slog.String("error", err.Error()))
		return "", fmt.Errorf("claude api error: %w", err)
	}

	if len(message.Content) == 0 {
		return "", fmt.Errorf("claude api returned empty response")
	}

	textBlock, ok := message.Content[0].AsAny().(anthropic.TextBlock)
	if !ok {
		return "", fmt.Errorf("claude api returned unexpected response type")
	}

	slog.InfoContext(ctx, "claude generation finished",
		slog.String("request_id", requestID),
		slog.Duration("duration", duration))

	return textBlock.Text, nil
}
