package summarizer

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	openai "github.com/sashabaranov/go-openai"

	"daily-briefing/internal/resilience/circuitbreaker"
	"daily-briefing/internal/resilience/retry"
	"daily-briefing/internal/utils/text"
)

// Gemini is reached through its OpenAI-compatible endpoint.
const (
	GeminiBaseURL = "https://generativelanguage.googleapis.com/v1beta/openai/"
	GeminiModel   = "gemini-2.0-flash"
	OpenAIModel   = openai.GPT4o
)

// OpenAI implements briefing.TextGenerator over the chat completions API.
// The same type serves Gemini, which exposes a compatible endpoint.
// Calls go through a circuit breaker and retry with backoff.
type OpenAI struct {
	name            string
	client          *openai.Client
	model           string
	jsonMode        bool
	timeout         time.Duration
	circuitBreaker  *circuitbreaker.CircuitBreaker
	retryConfig     retry.Config
	metricsRecorder GenerationMetricsRecorder
}

// NewOpenAI creates a generator for the OpenAI API. JSON output is requested
// through response_format.
func NewOpenAI(cfg Config) *OpenAI {
	clientCfg := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientCfg.BaseURL = cfg.BaseURL
	}
	model := cfg.Model
	if model == "" {
		model = OpenAIModel
	}
	return newChatGenerator(ProviderOpenAI, clientCfg, model, true, cfg)
}

// NewGemini creates a generator for Gemini.
func NewGemini(cfg Config) *OpenAI {
	clientCfg := openai.DefaultConfig(cfg.APIKey)
	clientCfg.BaseURL = GeminiBaseURL
	if cfg.BaseURL != "" {
		clientCfg.BaseURL = cfg.BaseURL
	}
	model := cfg.Model
	if model == "" {
		model = GeminiModel
	}
	return newChatGenerator(ProviderGemini, clientCfg, model, false, cfg)
}

func newChatGenerator(name string, clientCfg openai.ClientConfig, model string, jsonMode bool, cfg Config) *OpenAI {
	slog.Info("Initialized text generator",
		slog.String("provider", name),
		slog.String("model", model))

	return &OpenAI{
		name:            name,
		client:          openai.NewClientWithConfig(clientCfg),
		model:           model,
		jsonMode:        jsonMode,
		timeout:         cfg.timeout(),
		circuitBreaker:  circuitbreaker.New(circuitbreaker.TextGenerationConfig(name)),
		retryConfig:     cfg.retryConfig(),
		metricsRecorder: NewPrometheusGenerationMetrics(),
	}
}

// Name implements briefing.TextGenerator.
func (o *OpenAI) Name() string { return o.name }

// Model returns the model identifier sent with each request.
func (o *OpenAI) Model() string { return o.model }

// Generate sends prompt as a single user message and returns the reply text.
func (o *OpenAI) Generate(ctx context.Context, prompt string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, o.timeout)
	defer cancel()

	result, err := retry.Do(ctx, o.retryConfig, func() (string, error) {
		return circuitbreaker.Run(o.circuitBreaker, func() (string, error) {
			return o.doGenerate(ctx, prompt)
		})
	})
	if err != nil {
		o.metricsRecorder.RecordFailure(o.name)
		return "", fmt.Errorf("%s generate failed after retries: %w", o.name, err)
	}
	return result, nil
}

// doGenerate performs the actual API call without retry or circuit breaker.
func (o *OpenAI) doGenerate(ctx context.Context, prompt string) (string, error) {
	requestID := uuid.New().String()

	slog.InfoContext(ctx, "Starting text generation",
		slog.String("request_id", requestID),
		slog.String("provider", o.name),
		slog.Int("prompt_length", text.CountRunes(prompt)))

	req := openai.ChatCompletionRequest{
		Model: o.model,
		Messages: []openai.ChatCompletionMessage{{
			Role:    openai.ChatMessageRoleUser,
			Content: prompt,
		}},
	}
	if o.jsonMode {
		req.ResponseFormat = &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		}
	}

	start := time.Now()
	resp, err := o.client.CreateChatCompletion(ctx, req)
	duration := time.Since(start)

	if err != nil {
		slog.ErrorContext(ctx, "Text generation failed",
			slog.String("request_id", requestID),
			slog.String("provider", o.name),
			slog.Duration("duration", duration),
			slog.String("error", err.Error()))
		return "", fmt.Errorf("%s api error: %w", o.name, classifyOpenAIError(err))
	}

	// Validate response structure (safety check to prevent panic on array access)
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("%s api returned empty response", o.name)
	}

	reply := resp.Choices[0].Message.Content
	length := text.CountRunes(reply)

	slog.InfoContext(ctx, "Text generation completed",
		slog.String("request_id", requestID),
		slog.String("provider", o.name),
		slog.Int("response_length", length),
		slog.Duration("duration", duration))

	o.metricsRecorder.RecordDuration(o.name, duration)
	o.metricsRecorder.RecordResponseLength(o.name, length)
	return reply, nil
}

// classifyOpenAIError exposes the HTTP status so retry can tell transient failures apart.
func classifyOpenAIError(err error) error {
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) && apiErr.HTTPStatusCode != 0 {
		return &retry.HTTPError{StatusCode: apiErr.HTTPStatusCode, Message: apiErr.Message}
	}
	var reqErr *openai.RequestError
	if errors.As(err, &reqErr) && reqErr.HTTPStatusCode != 0 {
		return &retry.HTTPError{StatusCode: reqErr.HTTPStatusCode, Message: reqErr.Error()}
	}
	return err
}
