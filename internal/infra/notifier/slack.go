package notifier

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"daily-briefing/internal/domain/entity"
)

// SlackConfig contains configuration for Slack incoming webhooks.
type SlackConfig struct {
	Enabled    bool
	WebhookURL string
	Timeout    time.Duration
}

// SlackNotifier posts a Block Kit message to a Slack incoming webhook.
type SlackNotifier struct {
	hook  *webhook
	links Links
}

// NewSlackNotifier creates a SlackNotifier limited to 1 req/s.
func NewSlackNotifier(config SlackConfig, links Links, logger *slog.Logger) *SlackNotifier {
	return &SlackNotifier{
		hook:  newWebhook("Slack", config.WebhookURL, config.Timeout, NewRateLimiter(1.0, 1), logger),
		links: links,
	}
}

// SlackWebhookPayload is the incoming webhook body. Text is the
// notification fallback shown by clients that cannot render blocks.
type SlackWebhookPayload struct {
	Text   string       `json:"text"`
	Blocks []SlackBlock `json:"blocks"`
}

// SlackBlock is a "header", "section" or "context" block.
type SlackBlock struct {
	Type     string            `json:"type"`
	Text     *SlackTextObject  `json:"text,omitempty"`
	Elements []SlackTextObject `json:"elements,omitempty"`
}

// SlackTextObject is "mrkdwn" or "plain_text".
type SlackTextObject struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

const (
	maxHeaderTextLength  = 150
	maxSectionTextLength = 3000
	maxContextTextLength = 2000
	maxFallbackLength    = 150
)

func (s *SlackNotifier) buildBlockKitPayload(b *entity.DailyBriefing) SlackWebhookPayload {
	title := headline(b)
	fallback := fmt.Sprintf("%s: %d articles", title, len(b.Articles))

	summary := b.SummaryText
	if link := s.links.Briefing(b.Date); link != "" {
		summary = fmt.Sprintf("%s\n\n<%s|Open briefing>", summary, link)
	}

	meta := []string{fmt.Sprintf("%d articles", len(b.Articles))}
	if n := podcastCount(b); n > 0 {
		meta = append(meta, fmt.Sprintf("%d podcasts", n))
	}
	if audio := s.links.Audio(summaryTrackURL(b)); audio != "" {
		meta = append(meta, fmt.Sprintf("<%s|%s>", audio, entity.SummaryTrackTitle))
	}
	meta = append(meta, b.GeneratedAt.UTC().Format(time.RFC3339))

	return SlackWebhookPayload{
		Text: truncateSummary(fallback, maxFallbackLength, truncationSuffix),
		Blocks: []SlackBlock{
			{
				Type: "header",
				Text: &SlackTextObject{Type: "plain_text", Text: truncateSummary(title, maxHeaderTextLength, truncationSuffix)},
			},
			{
				Type: "section",
				Text: &SlackTextObject{Type: "mrkdwn", Text: truncateSummary(summary, maxSectionTextLength, truncationSuffix)},
			},
			{
				Type: "context",
				Elements: []SlackTextObject{{
					Type: "mrkdwn",
					Text: truncateSummary(strings.Join(meta, " • "), maxContextTextLength, truncationSuffix),
				}},
			},
		},
	}
}

// NotifyBriefing implements briefing.Notifier.
func (s *SlackNotifier) NotifyBriefing(ctx context.Context, b *entity.DailyBriefing) error {
	if b == nil {
		return nil
	}
	return s.hook.deliver(ctx, b.Date, s.buildBlockKitPayload(b))
}
