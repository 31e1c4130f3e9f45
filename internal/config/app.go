// Package config assembles the application configuration.
//
// Values come from an optional settings file (BRIEFING_CONFIG_FILE) and from
// environment variables; a non-empty environment variable always wins.
// The result is an explicit AppConfig handed to constructors, never a global.
package config

import (
	"encoding/base64"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"daily-briefing/internal/domain/entity"
	pkgcfg "daily-briefing/internal/pkg/config"
)

// Summarizer providers.
const (
	ProviderGemini = "gemini"
	ProviderOpenAI = "openai"
	ProviderClaude = "claude"
)

// DefaultCategoryPriorities orders sections of the briefing.
var DefaultCategoryPriorities = []string{
	"Breaking News", "AI", "Tech", "Local", "World",
	"Business", "Science", "Finance", "Politics", "Health",
}

// AppConfig is everything the api, worker and cli binaries need.
type AppConfig struct {
	HTTPAddr string
	DataDir  string

	// Location decides which calendar day "today" is.
	Location *time.Location

	Summarizer SummarizerConfig
	Speech     SpeechConfig
	Feed       FeedConfig

	Personalities      []entity.VoicePersonality
	CategoryPriorities []string

	// SourcesMode is "builtin" (fixed list) or "file" (editable news-sources.json).
	SourcesMode string
	// StoreBackend is "file" (one JSON per date) or "bolt".
	StoreBackend string

	GenerationTimeout time.Duration

	// ForceRateLimit caps forced regenerations per client per minute. 0 disables the limit.
	ForceRateLimit int

	Notify NotifyConfig
}

// NotifyConfig holds the chat webhooks announcing new briefings.
// An empty webhook URL disables that channel.
type NotifyConfig struct {
	DiscordWebhookURL string
	SlackWebhookURL   string
	// PublicBaseURL prefixes links in messages, e.g. https://briefing.example.com.
	PublicBaseURL string
	Timeout       time.Duration
}

// SummarizerConfig selects and authenticates the text generation provider.
type SummarizerConfig struct {
	Provider        string
	GeminiAPIKey    string
	OpenAIAPIKey    string
	AnthropicAPIKey string
	Model           string
	Timeout         time.Duration
}

// APIKey returns the key of the selected provider.
func (s SummarizerConfig) APIKey() string {
	switch s.Provider {
	case ProviderOpenAI:
		return s.OpenAIAPIKey
	case ProviderClaude:
		return s.AnthropicAPIKey
	default:
		return s.GeminiAPIKey
	}
}

// SpeechConfig holds credentials of the TTS providers. Empty keys disable a provider.
type SpeechConfig struct {
	InworldAPIKey    string
	InworldSecret    string
	InworldVoices    []string
	InworldModel     string
	ElevenLabsAPIKey string
	ElevenLabsVoices []string
	Timeout          time.Duration
}

// InworldCredential returns the Basic auth credential. Inworld issues keys
// already base64 encoded; a separate secret means key:secret must be encoded here.
func (s SpeechConfig) InworldCredential() string {
	if s.InworldAPIKey == "" {
		return ""
	}
	if s.InworldSecret == "" {
		return s.InworldAPIKey
	}
	return base64.StdEncoding.EncodeToString([]byte(s.InworldAPIKey + ":" + s.InworldSecret))
}

// FeedConfig tunes the aggregator.
type FeedConfig struct {
	Timeout        time.Duration
	Concurrency    int
	ItemsPerSource int
}

// IsConfigured reports whether the selected summarizer has credentials.
// Without them the briefing endpoints answer 503.
func (c *AppConfig) IsConfigured() bool {
	return c.Summarizer.APIKey() != ""
}

// Default returns the configuration used when nothing is set.
func Default() AppConfig {
	return AppConfig{
		HTTPAddr: ":8080",
		DataDir:  "data",
		Location: time.UTC,
		Summarizer: SummarizerConfig{
			Provider: ProviderGemini,
			Timeout:  90 * time.Second,
		},
		Speech: SpeechConfig{
			InworldModel: "inworld-tts-1",
			Timeout:      60 * time.Second,
		},
		Feed: FeedConfig{
			Timeout:        10 * time.Second,
			Concurrency:    4,
			ItemsPerSource: 2,
		},
		CategoryPriorities: DefaultCategoryPriorities,
		SourcesMode:        "builtin",
		StoreBackend:       "file",
		GenerationTimeout:  10 * time.Minute,
		ForceRateLimit:     6,
		Notify: NotifyConfig{
			Timeout: 30 * time.Second,
		},
	}
}

// Load builds the AppConfig. Invalid environment values fall back to defaults with a
// warning; only an unreadable settings file is an error.
func Load(logger *slog.Logger, m *pkgcfg.ConfigMetrics) (*AppConfig, error) {
	cfg := Default()

	var file FileConfig
	if path := pkgcfg.LoadEnvString("BRIEFING_CONFIG_FILE", ""); path != "" {
		fc, err := LoadFile(path)
		if err != nil {
			return nil, err
		}
		file = *fc
		logger.Info("settings file loaded", slog.String("path", path))
	}

	cfg.HTTPAddr = pkgcfg.LoadEnvString("HTTP_ADDR", cfg.HTTPAddr)
	cfg.DataDir = pkgcfg.LoadEnvString("DATA_DIR", cfg.DataDir)

	tz := m.Observe(logger, "briefing_timezone",
		pkgcfg.LoadEnvWithFallback("BRIEFING_TIMEZONE", "UTC", pkgcfg.ValidateTimezone)).(string)
	// validated above
	cfg.Location, _ = time.LoadLocation(tz)

	// API keys: environment first, then the settings file
	cfg.Summarizer.GeminiAPIKey = pkgcfg.LoadEnvString("GEMINI_API_KEY", file.GeminiAPIKey)
	cfg.Summarizer.OpenAIAPIKey = pkgcfg.LoadEnvString("OPENAI_API_KEY", file.OpenAIAPIKey)
	cfg.Summarizer.AnthropicAPIKey = pkgcfg.LoadEnvString("ANTHROPIC_API_KEY", file.AnthropicAPIKey)
	cfg.Summarizer.Provider = strings.ToLower(m.Observe(logger, "summarizer_type",
		pkgcfg.LoadEnvWithFallback("SUMMARIZER_TYPE", defaultProvider(file, cfg.Summarizer),
			pkgcfg.OneOf(ProviderGemini, ProviderOpenAI, ProviderClaude))).(string))
	cfg.Summarizer.Model = pkgcfg.LoadEnvString("SUMMARIZER_MODEL", "")
	cfg.Summarizer.Timeout = m.Observe(logger, "summarizer_timeout",
		pkgcfg.LoadEnvDuration("SUMMARIZER_TIMEOUT", cfg.Summarizer.Timeout, func(d time.Duration) error {
			return pkgcfg.ValidateDuration(d, 5*time.Second, 5*time.Minute)
		})).(time.Duration)

	cfg.Speech.InworldAPIKey = pkgcfg.LoadEnvString("INWORLD_API_KEY", file.InworldAPIKey)
	cfg.Speech.InworldSecret = pkgcfg.LoadEnvString("INWORLD_SECRET", file.InworldSecret)
	cfg.Speech.InworldVoices = pkgcfg.LoadEnvList("INWORLD_VOICES", pkgcfg.SplitList(file.InworldVoices, nil))
	cfg.Speech.InworldModel = pkgcfg.LoadEnvString("INWORLD_MODEL", cfg.Speech.InworldModel)
	cfg.Speech.ElevenLabsAPIKey = pkgcfg.LoadEnvString("ELEVENLABS_API_KEY", file.ElevenLabsAPIKey)
	cfg.Speech.ElevenLabsVoices = pkgcfg.LoadEnvList("ELEVENLABS_VOICES", pkgcfg.SplitList(file.ElevenLabsVoices, nil))
	cfg.Speech.Timeout = m.Observe(logger, "tts_timeout",
		pkgcfg.LoadEnvDuration("TTS_TIMEOUT", cfg.Speech.Timeout, func(d time.Duration) error {
			return pkgcfg.ValidateDuration(d, 5*time.Second, 5*time.Minute)
		})).(time.Duration)

	cfg.Personalities = file.InworldVoicePersonalities
	fileCategories := file.CategoryPriorities
	if len(fileCategories) == 0 {
		fileCategories = cfg.CategoryPriorities
	}
	cfg.CategoryPriorities = pkgcfg.LoadEnvList("CATEGORY_PRIORITIES", fileCategories)

	cfg.Feed.Timeout = m.Observe(logger, "feed_fetch_timeout",
		pkgcfg.LoadEnvDuration("FEED_FETCH_TIMEOUT", cfg.Feed.Timeout, func(d time.Duration) error {
			return pkgcfg.ValidateDuration(d, time.Second, 2*time.Minute)
		})).(time.Duration)
	cfg.Feed.Concurrency = m.Observe(logger, "feed_fetch_concurrency",
		pkgcfg.LoadEnvInt("FEED_FETCH_CONCURRENCY", cfg.Feed.Concurrency, func(v int) error {
			return pkgcfg.ValidateIntRange(v, 1, 32)
		})).(int)
	cfg.Feed.ItemsPerSource = m.Observe(logger, "feed_items_per_source",
		pkgcfg.LoadEnvInt("FEED_ITEMS_PER_SOURCE", cfg.Feed.ItemsPerSource, func(v int) error {
			return pkgcfg.ValidateIntRange(v, 1, 10)
		})).(int)

	cfg.SourcesMode = strings.ToLower(m.Observe(logger, "sources_mode",
		pkgcfg.LoadEnvWithFallback("SOURCES_MODE", cfg.SourcesMode, pkgcfg.OneOf("builtin", "file"))).(string))
	cfg.StoreBackend = strings.ToLower(m.Observe(logger, "briefing_store",
		pkgcfg.LoadEnvWithFallback("BRIEFING_STORE", cfg.StoreBackend, pkgcfg.OneOf("file", "bolt"))).(string))
	cfg.GenerationTimeout = m.Observe(logger, "generation_timeout",
		pkgcfg.LoadEnvDuration("GENERATION_TIMEOUT", cfg.GenerationTimeout, func(d time.Duration) error {
			return pkgcfg.ValidateDuration(d, time.Minute, time.Hour)
		})).(time.Duration)

	cfg.ForceRateLimit = m.Observe(logger, "force_rate_limit",
		pkgcfg.LoadEnvInt("FORCE_RATE_LIMIT", cfg.ForceRateLimit, func(v int) error {
			return pkgcfg.ValidateIntRange(v, 0, 600)
		})).(int)

	cfg.Notify.DiscordWebhookURL = loadWebhook(logger, m, "DISCORD", "discord.com", "/api/webhooks/")
	cfg.Notify.SlackWebhookURL = loadWebhook(logger, m, "SLACK", "hooks.slack.com", "/services/")
	cfg.Notify.PublicBaseURL = strings.TrimRight(pkgcfg.LoadEnvString("PUBLIC_BASE_URL", ""), "/")

	m.Finish()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// loadWebhook reads <PREFIX>_ENABLED and <PREFIX>_WEBHOOK_URL. A malformed URL
// disables the channel with a warning rather than failing startup.
func loadWebhook(logger *slog.Logger, m *pkgcfg.ConfigMetrics, prefix, host, pathPrefix string) string {
	field := strings.ToLower(prefix) + "_webhook_url"
	if !m.Observe(logger, strings.ToLower(prefix)+"_enabled", pkgcfg.LoadEnvBool(prefix+"_ENABLED", false)).(bool) {
		return ""
	}
	raw := pkgcfg.LoadEnvString(prefix+"_WEBHOOK_URL", "")
	if raw == "" {
		logger.Warn("webhook URL is empty, disabling notifications", slog.String("field", field))
		return ""
	}
	if err := pkgcfg.ValidateWebhookURL(raw, host, pathPrefix); err != nil {
		// エラーメッセージにURLを含めない
		logger.Warn("invalid webhook URL, disabling notifications",
			slog.String("field", field),
			slog.String("reason", err.Error()))
		m.RecordValidationError(field)
		return ""
	}
	return raw
}

// defaultProvider prefers the settings file choice, then the first provider with a key.
func defaultProvider(file FileConfig, s SummarizerConfig) string {
	if p := strings.ToLower(strings.TrimSpace(file.Summarizer)); p != "" {
		if pkgcfg.OneOf(ProviderGemini, ProviderOpenAI, ProviderClaude)(p) == nil {
			return p
		}
	}
	switch {
	case s.GeminiAPIKey != "":
		return ProviderGemini
	case s.OpenAIAPIKey != "":
		return ProviderOpenAI
	case s.AnthropicAPIKey != "":
		return ProviderClaude
	}
	return ProviderGemini
}

// Validate checks invariants that defaults cannot repair.
func (c *AppConfig) Validate() error {
	if strings.TrimSpace(c.DataDir) == "" {
		return fmt.Errorf("DATA_DIR cannot be empty")
	}
	for _, p := range c.Personalities {
		if p.VoiceID == "" {
			return fmt.Errorf("voice personality %q has no voiceId", p.Name)
		}
	}
	return nil
}
