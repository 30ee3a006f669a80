package summarizer

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	openai "github.com/sashabaranov/go-openai"
	"github.com/sony/gobreaker"

	"plannerx/internal/domain/entity"
	"plannerx/internal/resilience/circuitbreaker"
	"plannerx/internal/resilience/retry"
)

// OpenAI implements both headline ranking and narrative generation using
// the OpenAI chat API. Ranking and generation run through separate circuit
// breakers so a tripped ranker does not block generation.
type OpenAI struct {
	client      *openai.Client
	rankBreaker *circuitbreaker.CircuitBreaker
	genBreaker  *circuitbreaker.CircuitBreaker
	retryConfig retry.Config
	config      Config
}

// NewOpenAI creates an OpenAI client with the given API key.
func NewOpenAI(apiKey string, config Config) *OpenAI {
	slog.Info("initialized openai summarizer",
		slog.String("rank_model", config.RankModel),
		slog.String("narrative_model", config.NarrativeModel))

	return &OpenAI{
		client:      openai.NewClient(apiKey),
		rankBreaker: circuitbreaker.New(circuitbreaker.AIAPIConfig("openai-rank")),
		genBreaker:  circuitbreaker.New(circuitbreaker.AIAPIConfig("openai-narrative")),
		retryConfig: retry.AIAPIConfig(),
		config:      config,
	}
}

// RankHeadlines asks the model to order the given titles by importance and
// returns 0-based indices into the input. An unparsable answer is an error;
// the news use case treats it as a rank fallback.
func (o *OpenAI) RankHeadlines(ctx context.Context, titles []string) ([]int, error) {
	ctx, cancel := context.WithTimeout(ctx, o.config.Timeout)
	defer cancel()

	answer, err := o.complete(ctx, o.rankBreaker, openai.ChatCompletionRequest{
		Model:       o.config.RankModel,
		MaxTokens:   o.config.RankMaxTokens,
		Temperature: 0.3,
		Messages: []openai.ChatCompletionMessage{{
			Role:    openai.ChatMessageRoleUser,
			Content: buildRankPrompt(titles),
		}},
	})
	if err != nil {
		return nil, fmt.Errorf("RankHeadlines: %w", err)
	}

	indices, err := parseIndices(answer)
	if err != nil {
		return nil, fmt.Errorf("RankHeadlines: %w", err)
	}
	return indices, nil
}

// GenerateNarrative produces the structured Slovak summary over the
// selected items.
func (o *OpenAI) GenerateNarrative(ctx context.Context, items []entity.NewsItem) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, o.config.Timeout)
	defer cancel()

	answer, err := o.complete(ctx, o.genBreaker, openai.ChatCompletionRequest{
		Model:       o.config.NarrativeModel,
		MaxTokens:   o.config.NarrativeMaxTokens,
		Temperature: 0.4,
		Messages: []openai.ChatCompletionMessage{{
			Role:    openai.ChatMessageRoleUser,
			Content: buildNarrativePrompt(items),
		}},
	})
	if err != nil {
		return "", fmt.Errorf("GenerateNarrative: %w", err)
	}
	return answer, nil
}

// complete runs one chat completion through the given breaker with retry.
func (o *OpenAI) complete(ctx context.Context, cb *circuitbreaker.CircuitBreaker, req openai.ChatCompletionRequest) (string, error) {
	var result string

	retryErr := retry.WithBackoff(ctx, o.retryConfig, func() error {
		cbResult, err := cb.Execute(func() (any, error) {
			return o.doComplete(ctx, req)
		})
		if err != nil {
			if errors.Is(err, gobreaker.ErrOpenState) {
				slog.Warn("openai circuit breaker open, request rejected",
					slog.String("name", cb.Name()),
					slog.String("state", cb.State().String()))
				return fmt.Errorf("openai api unavailable: circuit breaker open")
			}
			return err
		}

		result = cbResult.(string)
		return nil
	})
	if retryErr != nil {
		return "", retryErr
	}

	return result, nil
}

// doComplete performs the actual API call without retry or circuit breaker.
func (o *OpenAI) doComplete(ctx context.Context, req openai.ChatCompletionRequest) (string, error) {
	start := time.Now()

	resp, err := o.client.CreateChatCompletion(ctx, req)
	duration := time.Since(start)

	if err != nil {
		slog.ErrorContext(ctx, "openai completion failed",
			slog.String("model", req.Model),
			slog.Duration("duration", duration),
			slog.String("error", err.Error()))
		return "", fmt.Errorf("openai api error: %w", err)
	}

	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("openai api returned empty response")
	}

	slog.InfoContext(ctx, "openai completion finished",
		slog.String("model", req.Model),
		slog.Duration("duration", duration))

	return resp.Choices[0].Message.Content, nil
}
