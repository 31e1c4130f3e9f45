package tts

import (
	"net/http"

	"daily-briefing/internal/config"
	"daily-briefing/internal/usecase/briefing"
)

// Providers returns the configured providers in fallback order: Inworld, then
// ElevenLabs. Providers without credentials are left out.
func Providers(cfg config.SpeechConfig, httpClient *http.Client) []briefing.Synthesizer {
	var out []briefing.Synthesizer
	if cred := cfg.InworldCredential(); cred != "" {
		out = append(out, NewInworld(InworldConfig{
			Credential: cred,
			Voices:     cfg.InworldVoices,
			Model:      cfg.InworldModel,
			HTTPClient: httpClient,
			Timeout:    cfg.Timeout,
		}))
	}
	if cfg.ElevenLabsAPIKey != "" {
		out = append(out, NewElevenLabs(ElevenLabsConfig{
			APIKey:     cfg.ElevenLabsAPIKey,
			Voices:     cfg.ElevenLabsVoices,
			HTTPClient: httpClient,
			Timeout:    cfg.Timeout,
		}))
	}
	return out
}
