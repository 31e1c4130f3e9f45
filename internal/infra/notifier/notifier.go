// Package notifier announces finished briefings on chat webhooks.
//
// Discord and Slack notifiers share one delivery loop: token bucket rate
// limiting, a bounded retry on 5xx and network errors, and Retry-After
// handling on 429. Notification failures never fail a generation.
package notifier

import (
	"context"
	"errors"
	"strings"
	"sync"

	"daily-briefing/internal/domain/entity"
	"daily-briefing/internal/usecase/briefing"
)

var (
	_ briefing.Notifier = (*DiscordNotifier)(nil)
	_ briefing.Notifier = (*SlackNotifier)(nil)
	_ briefing.Notifier = (*NoOpNotifier)(nil)
	_ briefing.Notifier = Multi(nil)
)

// Multi fans a briefing out to every notifier concurrently and joins their errors.
type Multi []briefing.Notifier

// NotifyBriefing implements briefing.Notifier.
func (m Multi) NotifyBriefing(ctx context.Context, b *entity.DailyBriefing) error {
	if len(m) == 0 {
		return nil
	}
	if len(m) == 1 {
		return m[0].NotifyBriefing(ctx, b)
	}

	errs := make([]error, len(m))
	var wg sync.WaitGroup
	for i, n := range m {
		wg.Add(1)
		go func(i int, n briefing.Notifier) {
			defer wg.Done()
			errs[i] = n.NotifyBriefing(ctx, b)
		}(i, n)
	}
	wg.Wait()
	return errors.Join(errs...)
}

// Links builds absolute URLs for notification messages. An empty BaseURL
// yields empty links and the notifiers omit them.
type Links struct {
	BaseURL string
}

// Briefing returns the API URL of the briefing for date.
func (l Links) Briefing(date string) string {
	if l.BaseURL == "" {
		return ""
	}
	return strings.TrimRight(l.BaseURL, "/") + "/api/news/" + date
}

// Audio resolves a playlist URL. Absolute URLs (podcast enclosures) pass through.
func (l Links) Audio(u string) string {
	if u == "" || strings.HasPrefix(u, "http://") || strings.HasPrefix(u, "https://") {
		return u
	}
	if l.BaseURL == "" {
		return ""
	}
	return strings.TrimRight(l.BaseURL, "/") + "/" + strings.TrimLeft(u, "/")
}

// headline is the first line of a briefing message.
func headline(b *entity.DailyBriefing) string {
	return "Daily Briefing " + b.Date
}

// summaryTrackURL returns the narration URL, or "" when the briefing has none.
func summaryTrackURL(b *entity.DailyBriefing) string {
	if !b.HasNarration() {
		return ""
	}
	return b.AudioPlaylist[0].URL
}

// podcastCount counts the podcast episodes in the playlist.
func podcastCount(b *entity.DailyBriefing) int {
	n := 0
	for _, t := range b.AudioPlaylist {
		if t.Type == entity.TrackTypePodcast {
			n++
		}
	}
	return n
}
