package briefing

import (
	"context"
	"log/slog"

	"daily-briefing/internal/domain/entity"
	"daily-briefing/internal/observability/metrics"
	"daily-briefing/internal/utils/text"
)

// AudioPathPrefix is the URL path under which narration files are served.
const AudioPathPrefix = "/api/audio/"

// Narrator synthesizes the narration script with the first provider that succeeds.
type Narrator struct {
	// Providers are tried in order. Unconfigured providers are left out.
	Providers []Synthesizer
	Audio     AudioStore
	Logger    *slog.Logger
}

// Narrate returns the retrieval path of the saved audio, or "" when the script
// is empty, no provider is configured or every provider failed.
func (n *Narrator) Narrate(ctx context.Context, script string, persona *entity.VoicePersonality) string {
	if script == "" || len(n.Providers) == 0 || n.Audio == nil {
		return ""
	}
	logger := n.Logger
	if logger == nil {
		logger = slog.Default()
	}

	for _, p := range n.Providers {
		input := text.Truncate(script, p.MaxInputChars())
		voice := p.Voice(persona)

		audio, ext, err := p.Synthesize(ctx, input, voice)
		if err != nil {
			metrics.RecordNarration(p.Name(), false)
			logger.WarnContext(ctx, "narration provider failed",
				slog.String("provider", p.Name()),
				slog.Any("error", err))
			continue
		}

		name, err := n.Audio.Save(p.Name(), ext, audio)
		if err != nil {
			metrics.RecordNarration(p.Name(), false)
			logger.ErrorContext(ctx, "failed to save narration audio",
				slog.String("provider", p.Name()),
				slog.Any("error", err))
			continue
		}

		metrics.RecordNarration(p.Name(), true)
		logger.InfoContext(ctx, "narration generated",
			slog.String("provider", p.Name()),
			slog.String("voice", voice),
			slog.String("file", name),
			slog.Int("bytes", len(audio)))
		return AudioPathPrefix + name
	}
	return ""
}
