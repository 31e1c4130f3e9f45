package tts

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"daily-briefing/internal/domain/entity"
	"daily-briefing/internal/resilience/retry"
)

// ElevenLabs defaults.
const (
	ElevenLabsBaseURL       = "https://api.elevenlabs.io/v1/text-to-speech/"
	ElevenLabsDefaultVoice  = "21m00Tcm4TlvDq8ikWAM"
	ElevenLabsModel         = "eleven_monolingual_v1"
	ElevenLabsMaxInputChars = 5000
)

// ElevenLabsConfig configures the ElevenLabs provider.
type ElevenLabsConfig struct {
	APIKey  string
	Voices  []string
	BaseURL string

	HTTPClient *http.Client
	Timeout    time.Duration
	Retry      retry.Config
}

// ElevenLabs synthesizes speech with the ElevenLabs API, which answers with raw MP3.
type ElevenLabs struct {
	*client
	apiKey  string
	voices  []string
	baseURL string
}

// NewElevenLabs creates the ElevenLabs provider.
func NewElevenLabs(cfg ElevenLabsConfig) *ElevenLabs {
	base := cfg.BaseURL
	if base == "" {
		base = ElevenLabsBaseURL
	}
	if !strings.HasSuffix(base, "/") {
		base += "/"
	}
	return &ElevenLabs{
		client:  newClient("elevenlabs", cfg.HTTPClient, cfg.Timeout, cfg.Retry),
		apiKey:  cfg.APIKey,
		voices:  cfg.Voices,
		baseURL: base,
	}
}

// Name implements briefing.Synthesizer.
func (p *ElevenLabs) Name() string { return "elevenlabs" }

// MaxInputChars implements briefing.Synthesizer.
func (p *ElevenLabs) MaxInputChars() int { return ElevenLabsMaxInputChars }

// Voice ignores personas; their voice IDs belong to Inworld.
func (p *ElevenLabs) Voice(*entity.VoicePersonality) string {
	return pickVoice(p.voices, ElevenLabsDefaultVoice)
}

type voiceSettings struct {
	Stability       float64 `json:"stability"`
	SimilarityBoost float64 `json:"similarity_boost"`
}

type elevenLabsRequest struct {
	Text          string        `json:"text"`
	ModelID       string        `json:"model_id"`
	VoiceSettings voiceSettings `json:"voice_settings"`
}

// Synthesize implements briefing.Synthesizer.
func (p *ElevenLabs) Synthesize(ctx context.Context, text, voice string) ([]byte, string, error) {
	audio, err := p.postJSON(ctx, p.baseURL+url.PathEscape(voice),
		map[string]string{"xi-api-key": p.apiKey, "Accept": "audio/mpeg"},
		elevenLabsRequest{
			Text:          text,
			ModelID:       ElevenLabsModel,
			VoiceSettings: voiceSettings{Stability: 0.5, SimilarityBoost: 0.5},
		})
	if err != nil {
		return nil, "", fmt.Errorf("elevenlabs synthesize: %w", err)
	}
	if len(audio) == 0 {
		return nil, "", ErrEmptyAudio
	}
	return audio, "mp3", nil
}
