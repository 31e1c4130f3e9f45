package summarizer

import (
	"errors"
	"fmt"
	"time"

	"daily-briefing/internal/resilience/retry"
	"daily-briefing/internal/usecase/briefing"
)

// Provider names.
const (
	ProviderGemini = "gemini"
	ProviderOpenAI = "openai"
	ProviderClaude = "claude"
)

// DefaultTimeout bounds a single generation call.
const DefaultTimeout = 90 * time.Second

var (
	// ErrMissingAPIKey is returned when the selected provider has no key.
	ErrMissingAPIKey = errors.New("summarizer api key not set")
	// ErrUnknownProvider is returned for a provider name New does not know.
	ErrUnknownProvider = errors.New("unknown summarizer provider")
)

// Config selects and configures a text generator.
type Config struct {
	Provider string
	APIKey   string

	// Model overrides the provider default.
	Model string
	// BaseURL overrides the provider endpoint; used by tests and proxies.
	BaseURL string

	Timeout   time.Duration
	MaxTokens int

	// Retry overrides retry.TextGenerationConfig when MaxAttempts is set.
	Retry retry.Config
}

func (c Config) timeout() time.Duration {
	if c.Timeout <= 0 {
		return DefaultTimeout
	}
	return c.Timeout
}

func (c Config) retryConfig() retry.Config {
	if c.Retry.MaxAttempts > 0 {
		return c.Retry
	}
	return retry.TextGenerationConfig()
}

func (c Config) maxTokens() int {
	if c.MaxTokens <= 0 {
		return 4096
	}
	return c.MaxTokens
}

// New returns the generator for cfg.Provider.
func New(cfg Config) (briefing.TextGenerator, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("%s: %w", cfg.Provider, ErrMissingAPIKey)
	}
	switch cfg.Provider {
	case ProviderGemini, "":
		return NewGemini(cfg), nil
	case ProviderOpenAI:
		return NewOpenAI(cfg), nil
	case ProviderClaude:
		return NewClaude(cfg), nil
	default:
		return nil, fmt.Errorf("%q: %w", cfg.Provider, ErrUnknownProvider)
	}
}
