// Package summarizer provides text generators backed by Gemini, OpenAI and Claude.
// Each generator sends one prompt per call and wraps the API with a circuit
// breaker, retry with backoff, structured logging and Prometheus metrics.
package summarizer

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
	"github.com/google/uuid"

	"daily-briefing/internal/resilience/circuitbreaker"
	"daily-briefing/internal/resilience/retry"
	"daily-briefing/internal/utils/text"
)

// ClaudeModel is the default Claude model.
var ClaudeModel = string(anthropic.ModelClaudeSonnet4_5_20250929)

// Claude implements briefing.TextGenerator using the Anthropic Messages API.
type Claude struct {
	client          anthropic.Client
	model           string
	maxTokens       int
	timeout         time.Duration
	circuitBreaker  *circuitbreaker.CircuitBreaker
	retryConfig     retry.Config
	metricsRecorder GenerationMetricsRecorder
}

// NewClaude creates a Claude generator. SDK retries are disabled because
// retry.Do already handles them.
func NewClaude(cfg Config) *Claude {
	model := cfg.Model
	if model == "" {
		model = ClaudeModel
	}

	opts := []option.RequestOption{
		option.WithAPIKey(cfg.APIKey),
		option.WithMaxRetries(0),
	}
	if cfg.BaseURL != "" {
		opts = append(opts, option.WithBaseURL(cfg.BaseURL))
	}

	slog.Info("Initialized text generator",
		slog.String("provider", ProviderClaude),
		slog.String("model", model))

	return &Claude{
		client:          anthropic.NewClient(opts...),
		model:           model,
		maxTokens:       cfg.maxTokens(),
		timeout:         cfg.timeout(),
		circuitBreaker:  circuitbreaker.New(circuitbreaker.TextGenerationConfig(ProviderClaude)),
		retryConfig:     cfg.retryConfig(),
		metricsRecorder: NewPrometheusGenerationMetrics(),
	}
}

// Name implements briefing.TextGenerator.
func (c *Claude) Name() string { return ProviderClaude }

// Generate sends prompt and returns the concatenated text blocks of the reply.
func (c *Claude) Generate(ctx context.Context, prompt string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	result, err := retry.Do(ctx, c.retryConfig, func() (string, error) {
		return circuitbreaker.Run(c.circuitBreaker, func() (string, error) {
			return c.doGenerate(ctx, prompt)
		})
	})
	if err != nil {
		c.metricsRecorder.RecordFailure(ProviderClaude)
		return "", fmt.Errorf("claude generate failed after retries: %w", err)
	}
	return result, nil
}

// doGenerate performs the actual API call without retry or circuit breaker.
func (c *Claude) doGenerate(ctx context.Context, prompt string) (string, error) {
	requestID := uuid.New().String()

	slog.InfoContext(ctx, "Starting text generation",
		slog.String("request_id", requestID),
		slog.String("provider", ProviderClaude),
		slog.Int("prompt_length", text.CountRunes(prompt)))

	start := time.Now()
	message, err := c.client.Messages.New(ctx, anthropic.MessageNewParams{
		Model:     anthropic.Model(c.model),
		MaxTokens: int64(c.maxTokens),
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(prompt)),
		},
	})
	duration := time.Since(start)

	if err != nil {
		slog.ErrorContext(ctx, "Text generation failed",
			slog.String("request_id", requestID),
			slog.String("provider", ProviderClaude),
			slog.Duration("duration", duration),
			slog.String("error", err.Error()))

		var apiErr *anthropic.Error
		if errors.As(err, &apiErr) {
			return "", fmt.Errorf("claude api error: %w", &retry.HTTPError{StatusCode: apiErr.StatusCode, Message: apiErr.Error()})
		}
		return "", fmt.Errorf("claude api error: %w", err)
	}

	var b strings.Builder
	for _, block := range message.Content {
		if tb, ok := block.AsAny().(anthropic.TextBlock); ok {
			b.WriteString(tb.Text)
		}
	}
	reply := b.String()
	if reply == "" {
		return "", fmt.Errorf("claude api returned empty response")
	}

	length := text.CountRunes(reply)
	slog.InfoContext(ctx, "Text generation completed",
		slog.String("request_id", requestID),
		slog.String("provider", ProviderClaude),
		slog.Int("response_length", length),
		slog.Duration("duration", duration))

	c.metricsRecorder.RecordDuration(ProviderClaude, duration)
	c.metricsRecorder.RecordResponseLength(ProviderClaude, length)
	return reply, nil
}
