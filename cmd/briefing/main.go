// Command briefing generates today's briefing once and prints it.
//
//	briefing [-force] [-output text|json]
package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"daily-briefing/internal/app"
	"daily-briefing/internal/config"
	"daily-briefing/internal/domain/entity"
	"daily-briefing/internal/observability/logging"
	pkgcfg "daily-briefing/internal/pkg/config"
	"daily-briefing/internal/usecase/briefing"
)

func main() {
	force := flag.Bool("force", false, "regenerate even if today's briefing is stored")
	output := flag.String("output", "text", "output format: text or json")
	flag.Parse()

	if *output != "text" && *output != "json" {
		fmt.Fprintf(os.Stderr, "invalid -output %q: want text or json\n", *output)
		os.Exit(2)
	}

	// ログは stderr、結果は stdout
	logger := logging.New(os.Stderr, os.Getenv("LOG_LEVEL"), os.Getenv("LOG_FORMAT"))
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, logger, *force, *output, os.Stdout); err != nil {
		logger.Error("briefing failed", slog.Any("error", err))
		os.Exit(1)
	}
}

func run(ctx context.Context, logger *slog.Logger, force bool, output string, w io.Writer) error {
	cfg, err := config.Load(logger, pkgcfg.NewConfigMetrics("cli"))
	if err != nil {
		return err
	}
	a, err := app.New(cfg, logger)
	if err != nil {
		return err
	}
	defer func() { _ = a.Close() }()

	b, err := a.Briefings.Generate(ctx, force)
	if err != nil && !(b != nil && errors.Is(err, briefing.ErrPersistenceFailed)) {
		return err
	}
	if err != nil {
		logger.Warn("briefing generated but not saved", slog.Any("error", err))
	}

	if output == "json" {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(b)
	}
	return writeText(w, b)
}

// writeText renders a briefing for a terminal.
func writeText(w io.Writer, b *entity.DailyBriefing) error {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Daily Briefing %s\n", b.Date)
	fmt.Fprintf(&sb, "%s\n\n", strings.Repeat("=", 24))
	fmt.Fprintf(&sb, "%s\n", b.SummaryText)

	if len(b.AudioPlaylist) > 0 {
		sb.WriteString("\nAudio:\n")
		for _, t := range b.AudioPlaylist {
			fmt.Fprintf(&sb, "  [%s] %s  %s\n", t.Type, t.Title, t.URL)
		}
	}

	fmt.Fprintf(&sb, "\nArticles (%d):\n", len(b.Articles))
	for _, a := range b.Articles {
		fmt.Fprintf(&sb, "  - %s (%s, %s)\n    %s\n", a.Title, a.SourceName, a.Category, a.Link)
	}

	_, err := io.WriteString(w, sb.String())
	return err
}
