package tts

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"daily-briefing/internal/domain/entity"
	"daily-briefing/internal/resilience/retry"
)

// Inworld defaults.
const (
	InworldEndpoint      = "https://api.inworld.ai/tts/v1/voice"
	InworldDefaultModel  = "inworld-tts-1"
	InworldDefaultVoice  = "Ashley"
	InworldMaxInputChars = 2000
)

// ErrEmptyAudio is returned when a provider answers 2xx without audio.
var ErrEmptyAudio = errors.New("tts response contained no audio")

// InworldConfig configures the Inworld provider.
type InworldConfig struct {
	// Credential is the Basic auth value (base64 of key:secret).
	Credential string
	// Voices is the pool used when no persona voice applies.
	Voices   []string
	Model    string
	Endpoint string

	HTTPClient *http.Client
	Timeout    time.Duration
	Retry      retry.Config
}

// Inworld synthesizes speech with the Inworld TTS API. It is the only provider
// that honours persona voices.
type Inworld struct {
	*client
	credential string
	voices     []string
	model      string
	endpoint   string
}

// NewInworld creates the Inworld provider.
func NewInworld(cfg InworldConfig) *Inworld {
	model := cfg.Model
	if model == "" {
		model = InworldDefaultModel
	}
	endpoint := cfg.Endpoint
	if endpoint == "" {
		endpoint = InworldEndpoint
	}
	return &Inworld{
		client:     newClient("inworld", cfg.HTTPClient, cfg.Timeout, cfg.Retry),
		credential: cfg.Credential,
		voices:     cfg.Voices,
		model:      model,
		endpoint:   endpoint,
	}
}

// Name implements briefing.Synthesizer.
func (p *Inworld) Name() string { return "inworld" }

// MaxInputChars implements briefing.Synthesizer.
func (p *Inworld) MaxInputChars() int { return InworldMaxInputChars }

// Voice prefers the persona voice, then a random voice from the pool.
func (p *Inworld) Voice(persona *entity.VoicePersonality) string {
	if persona != nil && persona.VoiceID != "" {
		return persona.VoiceID
	}
	return pickVoice(p.voices, InworldDefaultVoice)
}

type inworldRequest struct {
	Text    string `json:"text"`
	VoiceID string `json:"voiceId"`
	ModelID string `json:"modelId"`
}

type inworldResponse struct {
	AudioContent string `json:"audioContent"`
}

// Synthesize implements briefing.Synthesizer. The API returns base64 MP3.
func (p *Inworld) Synthesize(ctx context.Context, text, voice string) ([]byte, string, error) {
	body, err := p.postJSON(ctx, p.endpoint,
		map[string]string{"Authorization": "Basic " + p.credential},
		inworldRequest{Text: text, VoiceID: voice, ModelID: p.model})
	if err != nil {
		return nil, "", fmt.Errorf("inworld synthesize: %w", err)
	}

	var resp inworldResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, "", fmt.Errorf("inworld decode response: %w", err)
	}
	if resp.AudioContent == "" {
		return nil, "", ErrEmptyAudio
	}
	audio, err := base64.StdEncoding.DecodeString(resp.AudioContent)
	if err != nil {
		return nil, "", fmt.Errorf("inworld decode audio: %w", err)
	}
	return audio, "mp3", nil
}
