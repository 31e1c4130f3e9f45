package briefing

import (
	"context"
	"io"
	"time"

	"daily-briefing/internal/domain/entity"
)

// FeedItem is one entry extracted from a feed. Missing fields are empty.
type FeedItem struct {
	Title       string
	Link        string
	Description string
	PubDate     string
	Enclosure   *entity.Enclosure
}

// FeedFetcher returns the raw text of a feed.
type FeedFetcher interface {
	Fetch(ctx context.Context, url string) (string, error)
}

// FeedParser extracts items from raw feed text. It never fails.
type FeedParser interface {
	Parse(raw string) []FeedItem
}

// TextGenerator sends a single prompt to a language model and returns its reply.
type TextGenerator interface {
	Name() string
	Generate(ctx context.Context, prompt string) (string, error)
}

// Synthesizer converts text to speech.
type Synthesizer interface {
	// Name identifies the provider in logs and metrics; it is also the audio file prefix.
	Name() string
	// MaxInputChars is the longest script, in runes, the provider accepts.
	MaxInputChars() int
	// Voice picks the voice for this call. persona may be nil.
	Voice(persona *entity.VoicePersonality) string
	Synthesize(ctx context.Context, text, voice string) (audio []byte, ext string, err error)
}

// Store persists at most one briefing per date.
type Store interface {
	// Get returns ErrBriefingNotFound when nothing is stored for date.
	Get(ctx context.Context, date string) (*entity.DailyBriefing, error)
	// Put overwrites any briefing stored for b.Date.
	Put(ctx context.Context, b *entity.DailyBriefing) error
}

// AudioStore keeps synthesized narration files.
type AudioStore interface {
	// Save writes data under a unique name built from prefix and ext and returns the name.
	Save(prefix, ext string, data []byte) (string, error)
	Open(name string) (io.ReadSeekCloser, time.Time, error)
}

// SourceProvider lists configured feed sources.
type SourceProvider interface {
	List(ctx context.Context) ([]entity.Source, error)
}

// Notifier announces a freshly generated briefing. Errors are logged, never fatal.
type Notifier interface {
	NotifyBriefing(ctx context.Context, b *entity.DailyBriefing) error
}

// Clock abstracts time for tests.
type Clock interface {
	Now() time.Time
}

// ClockFunc adapts a function to Clock.
type ClockFunc func() time.Time

// Now implements Clock.
func (f ClockFunc) Now() time.Time { return f() }

// SystemClock is the wall clock.
var SystemClock Clock = ClockFunc(time.Now)
