// Package app assembles the briefing pipeline from an AppConfig.
// The api, worker and cli binaries share it so they read and write the same data.
package app

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"path/filepath"
	"time"

	"daily-briefing/internal/config"
	"daily-briefing/internal/infra/feed"
	"daily-briefing/internal/infra/notifier"
	"daily-briefing/internal/infra/storage"
	"daily-briefing/internal/infra/summarizer"
	"daily-briefing/internal/infra/tts"
	"daily-briefing/internal/repository"
	"daily-briefing/internal/usecase/briefing"
	srcUC "daily-briefing/internal/usecase/source"
)

// BoltFileName is the database file used when BRIEFING_STORE=bolt.
const BoltFileName = "briefings.db"

// ShutdownTimeout bounds how long Close waits for pending notifications.
const ShutdownTimeout = 30 * time.Second

// App holds the wired services.
type App struct {
	Config    *config.AppConfig
	Briefings *briefing.Service
	Sources   *srcUC.Service
	Audio     *storage.AudioDir
	Store     briefing.Store

	closers []func() error
}

// New wires every component. A missing summarizer key is not an error: the
// service then reports Configured() == false and the API answers 503.
func New(cfg *config.AppConfig, logger *slog.Logger) (*App, error) {
	if logger == nil {
		logger = slog.Default()
	}
	a := &App{Config: cfg}

	repo, err := sourceRepository(cfg, logger)
	if err != nil {
		return nil, err
	}
	a.Sources = &srcUC.Service{Repo: repo}

	if err := a.openStore(cfg); err != nil {
		return nil, err
	}

	a.Audio, err = storage.NewAudioDir(cfg.DataDir)
	if err != nil {
		_ = a.Close()
		return nil, fmt.Errorf("open audio dir: %w", err)
	}

	client := newHTTPClient()

	gen, err := summarizer.New(summarizer.Config{
		Provider: cfg.Summarizer.Provider,
		APIKey:   cfg.Summarizer.APIKey(),
		Model:    cfg.Summarizer.Model,
		Timeout:  cfg.Summarizer.Timeout,
	})
	switch {
	case errors.Is(err, summarizer.ErrMissingAPIKey):
		logger.Warn("no API key for summarizer, briefing endpoints will answer 503",
			slog.String("provider", cfg.Summarizer.Provider))
		gen = nil
	case err != nil:
		_ = a.Close()
		return nil, err
	default:
		logger.Info("summarizer initialized", slog.String("provider", cfg.Summarizer.Provider))
	}

	providers := tts.Providers(cfg.Speech, client)
	names := make([]string, 0, len(providers))
	for _, p := range providers {
		names = append(names, p.Name())
	}
	logger.Info("speech providers initialized", slog.Any("providers", names))

	agg := &briefing.Aggregator{
		Fetcher:        feed.NewFetcher(client, cfg.Feed.Timeout),
		Parser:         feed.Parser{},
		Concurrency:    cfg.Feed.Concurrency,
		ItemsPerSource: cfg.Feed.ItemsPerSource,
		Logger:         logger,
	}
	sum := briefing.NewSummarizer(gen, logger)
	nar := &briefing.Narrator{Providers: providers, Audio: a.Audio, Logger: logger}

	a.Briefings = briefing.NewService(a.Sources, agg, sum, nar, a.Store, briefing.Options{
		Location:           cfg.Location,
		CategoryPriorities: cfg.CategoryPriorities,
		Personalities:      cfg.Personalities,
		GenerationTimeout:  cfg.GenerationTimeout,
		Notifier:           Notifier(cfg.Notify, logger),
		Logger:             logger,
	})
	return a, nil
}

func (a *App) openStore(cfg *config.AppConfig) error {
	switch cfg.StoreBackend {
	case "bolt":
		s, err := storage.NewBoltStore(filepath.Join(cfg.DataDir, BoltFileName))
		if err != nil {
			return fmt.Errorf("open bolt store: %w", err)
		}
		a.Store = s
		a.closers = append(a.closers, s.Close)
	default:
		s, err := storage.NewFileStore(cfg.DataDir)
		if err != nil {
			return fmt.Errorf("open file store: %w", err)
		}
		a.Store = s
	}
	return nil
}

func sourceRepository(cfg *config.AppConfig, logger *slog.Logger) (repository.SourceRepository, error) {
	if cfg.SourcesMode == "file" {
		repo, err := storage.NewSourceFile(cfg.DataDir, logger)
		if err != nil {
			return nil, fmt.Errorf("open source file: %w", err)
		}
		return repo, nil
	}
	return storage.Builtin{}, nil
}

// Notifier returns the configured webhook notifiers, or a no-op.
func Notifier(cfg config.NotifyConfig, logger *slog.Logger) briefing.Notifier {
	links := notifier.Links{BaseURL: cfg.PublicBaseURL}
	var out notifier.Multi
	if cfg.DiscordWebhookURL != "" {
		out = append(out, notifier.NewDiscordNotifier(notifier.DiscordConfig{
			Enabled:    true,
			WebhookURL: cfg.DiscordWebhookURL,
			Timeout:    cfg.Timeout,
		}, links, logger))
		logger.Info("Discord notifications enabled")
	}
	if cfg.SlackWebhookURL != "" {
		out = append(out, notifier.NewSlackNotifier(notifier.SlackConfig{
			Enabled:    true,
			WebhookURL: cfg.SlackWebhookURL,
			Timeout:    cfg.Timeout,
		}, links, logger))
		logger.Info("Slack notifications enabled")
	}
	if len(out) == 0 {
		return notifier.NewNoOpNotifier()
	}
	return out
}

// Close waits for pending notifications, then releases the store.
// Safe to call more than once.
func (a *App) Close() error {
	var errs []error
	if a.Briefings != nil {
		ctx, cancel := context.WithTimeout(context.Background(), ShutdownTimeout)
		errs = append(errs, a.Briefings.Shutdown(ctx))
		cancel()
	}
	for _, c := range a.closers {
		errs = append(errs, c())
	}
	a.closers = nil
	return errors.Join(errs...)
}

// newHTTPClient is shared by feeds and TTS. Per-call deadlines come from the
// callers; the client timeout is only a backstop.
func newHTTPClient() *http.Client {
	return &http.Client{
		Timeout: 2 * time.Minute,
		Transport: &http.Transport{
			Proxy:               http.ProxyFromEnvironment,
			MaxIdleConns:        100,
			MaxIdleConnsPerHost: 10,
			IdleConnTimeout:     90 * time.Second,
			TLSClientConfig: &tls.Config{
				MinVersion: tls.VersionTLS12,
			},
		},
	}
}
