package notifier

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"daily-briefing/internal/domain/entity"
)

// DiscordConfig contains configuration for Discord webhook notifications.
type DiscordConfig struct {
	Enabled bool

	// WebhookURL includes the webhook token; never log it.
	WebhookURL string

	Timeout time.Duration
}

// DiscordNotifier posts a briefing embed to a Discord webhook.
type DiscordNotifier struct {
	hook  *webhook
	links Links
}

// NewDiscordNotifier creates a DiscordNotifier limited to 0.5 req/s with a
// burst of 3 (Discord allows 30 webhook calls per minute).
func NewDiscordNotifier(config DiscordConfig, links Links, logger *slog.Logger) *DiscordNotifier {
	return &DiscordNotifier{
		hook:  newWebhook("Discord", config.WebhookURL, config.Timeout, NewRateLimiter(0.5, 3), logger),
		links: links,
	}
}

// DiscordWebhookPayload represents the JSON payload sent to Discord webhook.
type DiscordWebhookPayload struct {
	Embeds []DiscordEmbed `json:"embeds"`
}

// DiscordEmbed represents a Discord embed message.
type DiscordEmbed struct {
	Title       string              `json:"title"`
	Description string              `json:"description"`
	URL         string              `json:"url,omitempty"`
	Color       int                 `json:"color"`
	Fields      []DiscordEmbedField `json:"fields,omitempty"`
	Footer      DiscordEmbedFooter  `json:"footer"`
	Timestamp   string              `json:"timestamp"`
}

// DiscordEmbedField is one name/value row of an embed.
type DiscordEmbedField struct {
	Name   string `json:"name"`
	Value  string `json:"value"`
	Inline bool   `json:"inline,omitempty"`
}

// DiscordEmbedFooter represents the footer of a Discord embed.
type DiscordEmbedFooter struct {
	Text string `json:"text"`
}

const (
	maxTitleLength       = 256
	maxDescriptionLength = 4096
	truncationSuffix     = "..."

	// #5865F2
	discordBlueColor = 5793266
)

func (d *DiscordNotifier) buildEmbedPayload(b *entity.DailyBriefing) DiscordWebhookPayload {
	embed := DiscordEmbed{
		Title:       truncateSummary(headline(b), maxTitleLength, ""),
		Description: truncateSummary(b.SummaryText, maxDescriptionLength, truncationSuffix),
		URL:         d.links.Briefing(b.Date),
		Color:       discordBlueColor,
		Fields: []DiscordEmbedField{
			{Name: "Articles", Value: strconv.Itoa(len(b.Articles)), Inline: true},
			{Name: "Podcasts", Value: strconv.Itoa(podcastCount(b)), Inline: true},
		},
		Footer:    DiscordEmbedFooter{Text: "daily-briefing"},
		Timestamp: b.GeneratedAt.UTC().Format(time.RFC3339),
	}
	if audio := d.links.Audio(summaryTrackURL(b)); audio != "" {
		embed.Fields = append(embed.Fields, DiscordEmbedField{
			Name:  "Narration",
			Value: fmt.Sprintf("[%s](%s)", entity.SummaryTrackTitle, audio),
		})
	}
	return DiscordWebhookPayload{Embeds: []DiscordEmbed{embed}}
}

// NotifyBriefing implements briefing.Notifier.
func (d *DiscordNotifier) NotifyBriefing(ctx context.Context, b *entity.DailyBriefing) error {
	if b == nil {
		return nil
	}
	return d.hook.deliver(ctx, b.Date, d.buildEmbedPayload(b))
}
