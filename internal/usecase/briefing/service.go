package briefing

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"sync"
	"time"

	"go.opentelemetry.io/otel/attribute"

	"daily-briefing/internal/domain/entity"
	"daily-briefing/internal/observability/metrics"
	"daily-briefing/internal/observability/tracing"
)

const (
	// DefaultGenerationTimeout bounds a whole generation run.
	DefaultGenerationTimeout = 10 * time.Minute
	// DefaultNotifyTimeout bounds the delivery of one briefing notification.
	DefaultNotifyTimeout = 3 * time.Minute
)

// Options holds the tunables of a Service. Zero values select defaults.
type Options struct {
	// Location decides which calendar day "today" is. Defaults to UTC.
	Location           *time.Location
	CategoryPriorities []string
	Personalities      []entity.VoicePersonality
	GenerationTimeout  time.Duration
	NotifyTimeout      time.Duration

	// Notifier is called in the background after a briefing is stored.
	Notifier Notifier
	Clock    Clock
	Logger   *slog.Logger
}

// Service orchestrates briefing generation and retrieval.
type Service struct {
	sources    SourceProvider
	aggregator *Aggregator
	summarizer *Summarizer
	narrator   *Narrator
	store      Store
	opts       Options

	mu       sync.Mutex
	inflight map[string]*generation
	closed   bool

	notifyWG sync.WaitGroup
}

// generation is one in-flight run for a date. done is closed once b and err are set.
type generation struct {
	done chan struct{}
	b    *entity.DailyBriefing
	err  error
}

// NewService creates a Service. narrator may be nil to disable audio.
func NewService(sources SourceProvider, agg *Aggregator, sum *Summarizer, nar *Narrator, store Store, opts Options) *Service {
	if opts.Location == nil {
		opts.Location = time.UTC
	}
	if opts.GenerationTimeout <= 0 {
		opts.GenerationTimeout = DefaultGenerationTimeout
	}
	if opts.NotifyTimeout <= 0 {
		opts.NotifyTimeout = DefaultNotifyTimeout
	}
	if opts.Clock == nil {
		opts.Clock = SystemClock
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	return &Service{
		sources:    sources,
		aggregator: agg,
		summarizer: sum,
		narrator:   nar,
		store:      store,
		opts:       opts,
		inflight:   make(map[string]*generation),
	}
}

// Configured reports whether a text generation provider is available.
func (s *Service) Configured() bool {
	return s.summarizer != nil && s.summarizer.Generator != nil
}

// Today returns the current calendar date in the configured location.
func (s *Service) Today() string {
	return s.opts.Clock.Now().In(s.opts.Location).Format(entity.DateLayout)
}

// Generate returns today's briefing.
//
// Without force a stored briefing is returned as is and no network call is made.
// Only one generation per date runs at a time; concurrent callers wait for it
// and share its result. The run is detached from ctx so a dropped client does
// not abort it, and is bounded by the generation timeout instead.
//
// ErrNotConfigured is returned when no summarizer provider is configured.
// On a storage failure the briefing is returned together with an error
// wrapping ErrPersistenceFailed.
func (s *Service) Generate(ctx context.Context, force bool) (*entity.DailyBriefing, error) {
	if !s.Configured() {
		return nil, ErrNotConfigured
	}
	today := s.Today()

	if !force {
		b, err := s.store.Get(ctx, today)
		switch {
		case err == nil:
			metrics.RecordCacheHit()
			return b, nil
		case !errors.Is(err, ErrBriefingNotFound):
			s.opts.Logger.WarnContext(ctx, "failed to read stored briefing, regenerating",
				slog.String("date", today),
				slog.Any("error", err))
		}
	}

	s.mu.Lock()
	g, running := s.inflight[today]
	if !running && !force {
		// A run may have stored today's briefing since the read above.
		if b, err := s.store.Get(ctx, today); err == nil {
			s.mu.Unlock()
			metrics.RecordCacheHit()
			return b, nil
		}
	}
	if !running {
		g = &generation{done: make(chan struct{})}
		s.inflight[today] = g
		go s.run(context.WithoutCancel(ctx), today, force, g)
	}
	s.mu.Unlock()

	if running {
		s.opts.Logger.InfoContext(ctx, "waiting for in-flight generation", slog.String("date", today))
	}

	select {
	case <-g.done:
		return g.b, g.err
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

func (s *Service) run(ctx context.Context, date string, force bool, g *generation) {
	defer func() {
		s.mu.Lock()
		delete(s.inflight, date)
		s.mu.Unlock()
		close(g.done)
	}()

	ctx, cancel := context.WithTimeout(ctx, s.opts.GenerationTimeout)
	defer cancel()

	g.b, g.err = s.generate(ctx, date, force)
}

func (s *Service) generate(ctx context.Context, date string, force bool) (b *entity.DailyBriefing, err error) {
	logger := s.opts.Logger.With(slog.String("date", date))
	start := time.Now()

	ctx, span := tracing.StartSpan(ctx, "briefing.generate",
		attribute.String("briefing.date", date),
		attribute.Bool("briefing.force", force))
	defer func() { tracing.EndSpan(span, err) }()

	logger.InfoContext(ctx, "briefing generation started", slog.Bool("force", force))

	all, err := s.sources.List(ctx)
	if err != nil {
		metrics.RecordGeneration("error", time.Since(start), 0)
		return nil, fmt.Errorf("list sources: %w", err)
	}
	sources := entity.EnabledSources(all)
	metrics.UpdateSourcesTotal(len(sources))

	aggCtx, aggSpan := tracing.StartSpan(ctx, "briefing.aggregate", attribute.Int("sources", len(sources)))
	articles, podcasts := s.aggregator.Aggregate(aggCtx, sources)
	aggSpan.SetAttributes(attribute.Int("articles", len(articles)), attribute.Int("podcasts", len(podcasts)))
	tracing.EndSpan(aggSpan, nil)

	ranked := RankByCategory(articles, s.opts.CategoryPriorities)
	persona := s.pickPersona()

	sumCtx, sumSpan := tracing.StartSpan(ctx, "briefing.summarize")
	summary := s.summarizer.Summarize(sumCtx, ranked, persona)
	sumSpan.SetAttributes(attribute.String("outcome", summary.Outcome))
	tracing.EndSpan(sumSpan, nil)

	var audioURL string
	if s.narrator != nil {
		narCtx, narSpan := tracing.StartSpan(ctx, "briefing.narrate")
		audioURL = s.narrator.Narrate(narCtx, summary.Script, persona)
		narSpan.SetAttributes(attribute.Bool("audio", audioURL != ""))
		tracing.EndSpan(narSpan, nil)
	}

	playlist := make([]entity.AudioTrack, 0, len(podcasts)+1)
	if audioURL != "" {
		playlist = append(playlist, entity.AudioTrack{
			Title: entity.SummaryTrackTitle,
			URL:   audioURL,
			Type:  entity.TrackTypeSummary,
		})
	}
	playlist = append(playlist, podcasts...)
	if ranked == nil {
		ranked = []entity.Article{}
	}

	b = &entity.DailyBriefing{
		Date:          date,
		GeneratedAt:   s.opts.Clock.Now().UTC(),
		SummaryText:   summary.Text,
		AudioPlaylist: playlist,
		Articles:      ranked,
	}

	if perr := s.store.Put(ctx, b); perr != nil {
		metrics.RecordGeneration("persist_error", time.Since(start), len(ranked))
		logger.ErrorContext(ctx, "failed to persist briefing", slog.Any("error", perr))
		return b, fmt.Errorf("%w: %w", ErrPersistenceFailed, perr)
	}

	metrics.RecordGeneration("success", time.Since(start), len(ranked))
	logger.InfoContext(ctx, "briefing generation completed",
		slog.Int("sources", len(sources)),
		slog.Int("articles", len(ranked)),
		slog.Int("tracks", len(playlist)),
		slog.String("summary_outcome", summary.Outcome),
		slog.Duration("duration", time.Since(start)))

	s.notify(ctx, b, logger)
	return b, nil
}

// notify delivers b in the background. Delivery is skipped once Shutdown has started.
func (s *Service) notify(ctx context.Context, b *entity.DailyBriefing, logger *slog.Logger) {
	if s.opts.Notifier == nil {
		return
	}
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		logger.WarnContext(ctx, "service shutting down, briefing notification skipped")
		return
	}
	s.notifyWG.Add(1)
	s.mu.Unlock()

	go func() {
		defer s.notifyWG.Done()

		nctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.opts.NotifyTimeout)
		defer cancel()

		if err := s.opts.Notifier.NotifyBriefing(nctx, b); err != nil {
			logger.WarnContext(nctx, "briefing notification failed", slog.Any("error", err))
		}
	}()
}

// Shutdown stops new notifications and waits for in-flight ones until ctx is done.
func (s *Service) Shutdown(ctx context.Context) error {
	s.mu.Lock()
	s.closed = true
	s.mu.Unlock()

	done := make(chan struct{})
	go func() {
		s.notifyWG.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		s.opts.Logger.Warn("briefing notifications still in flight at shutdown")
		return ctx.Err()
	}
}

// pickPersona returns a random configured personality, or nil.
func (s *Service) pickPersona() *entity.VoicePersonality {
	n := len(s.opts.Personalities)
	if n == 0 {
		return nil
	}
	p := s.opts.Personalities[rand.IntN(n)]
	return &p
}

// Latest returns the stored briefing for date without generating anything.
func (s *Service) Latest(ctx context.Context, date string) (*entity.DailyBriefing, error) {
	if err := entity.ValidateDate(date); err != nil {
		return nil, err
	}
	return s.store.Get(ctx, date)
}
