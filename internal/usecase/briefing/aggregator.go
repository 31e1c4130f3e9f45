package briefing

import (
	"context"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"daily-briefing/internal/domain/entity"
	"daily-briefing/internal/observability/metrics"
)

// Aggregation defaults.
const (
	DefaultFetchConcurrency = 4
	DefaultItemsPerSource   = 2
)

// Aggregator runs the fetcher and parser over every source.
type Aggregator struct {
	Fetcher FeedFetcher
	Parser  FeedParser

	// Concurrency bounds fetches in flight; 1 fetches sequentially.
	Concurrency int
	// ItemsPerSource caps how many items each source contributes.
	ItemsPerSource int

	Logger *slog.Logger
}

// sourceResult is the contribution of one source, kept in a per-source slot.
type sourceResult struct {
	articles []entity.Article
	podcasts []entity.AudioTrack
}

// Aggregate returns articles in source order then item order, plus podcast
// tracks for audio enclosures of podcast sources.
// A failing source contributes nothing; Aggregate itself never fails.
func (a *Aggregator) Aggregate(ctx context.Context, sources []entity.Source) ([]entity.Article, []entity.AudioTrack) {
	results := make([]sourceResult, len(sources))

	limit := a.Concurrency
	if limit <= 0 {
		limit = DefaultFetchConcurrency
	}

	// errgroup is used for its limiter only; workers never return an error
	// so one bad source cannot cancel the others.
	var g errgroup.Group
	g.SetLimit(limit)
	for i := range sources {
		src := sources[i]
		g.Go(func() error {
			results[i] = a.collect(ctx, src)
			return nil
		})
	}
	_ = g.Wait()

	var (
		articles []entity.Article
		podcasts []entity.AudioTrack
	)
	for _, r := range results {
		articles = append(articles, r.articles...)
		podcasts = append(podcasts, r.podcasts...)
	}
	return articles, podcasts
}

func (a *Aggregator) collect(ctx context.Context, src entity.Source) sourceResult {
	logger := a.logger()
	start := time.Now()

	raw, err := a.Fetcher.Fetch(ctx, src.URL)
	metrics.RecordFeedFetch(err == nil, time.Since(start))
	if err != nil {
		logger.WarnContext(ctx, "feed fetch failed",
			slog.String("source_id", src.ID),
			slog.String("source_name", src.Name),
			slog.Any("error", err))
		return sourceResult{}
	}

	items := a.Parser.Parse(raw)
	if n := a.itemsPerSource(); len(items) > n {
		items = items[:n]
	}

	var res sourceResult
	for _, item := range items {
		article := entity.Article{
			Title:      item.Title,
			Link:       item.Link,
			Snippet:    item.Description,
			SourceName: src.Name,
			Category:   src.Category,
			PubDate:    item.PubDate,
		}
		if item.Enclosure.IsAudio() {
			article.Enclosure = &entity.Enclosure{URL: item.Enclosure.URL, Type: item.Enclosure.Type}
			if src.IsPodcast() {
				title := item.Title
				if title == "" {
					title = entity.PodcastEpisodeTitle
				}
				res.podcasts = append(res.podcasts, entity.AudioTrack{
					Title: title,
					URL:   item.Enclosure.URL,
					Type:  entity.TrackTypePodcast,
				})
			}
		}
		res.articles = append(res.articles, article)
	}

	logger.DebugContext(ctx, "feed aggregated",
		slog.String("source_id", src.ID),
		slog.Int("items", len(res.articles)),
		slog.Duration("duration", time.Since(start)))
	return res
}

func (a *Aggregator) itemsPerSource() int {
	if a.ItemsPerSource <= 0 {
		return DefaultItemsPerSource
	}
	return a.ItemsPerSource
}

func (a *Aggregator) logger() *slog.Logger {
	if a.Logger != nil {
		return a.Logger
	}
	return slog.Default()
}
