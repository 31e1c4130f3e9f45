package notifier

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func TestSlackNotifier_buildBlockKitPayload(t *testing.T) {
	n := NewSlackNotifier(SlackConfig{}, Links{BaseURL: "https://briefing.example.com"}, nil)
	p := n.buildBlockKitPayload(sampleBriefing())

	if p.Text != "Daily Briefing 2026-03-01: 3 articles" {
		t.Errorf("fallback = %q", p.Text)
	}
	if len(p.Blocks) != 3 {
		t.Fatalf("expected 3 blocks, got %d", len(p.Blocks))
	}
	if p.Blocks[0].Type != "header" || p.Blocks[0].Text.Type != "plain_text" {
		t.Errorf("header block = %+v", p.Blocks[0])
	}
	section := p.Blocks[1].Text.Text
	if !strings.Contains(section, "Markets rallied") ||
		!strings.Contains(section, "<https://briefing.example.com/api/news/2026-03-01|Open briefing>") {
		t.Errorf("section = %q", section)
	}
	ctxText := p.Blocks[2].Elements[0].Text
	for _, want := range []string{"3 articles", "1 podcasts", "/api/audio/inworld-1772346600000.mp3|Daily Summary>", "2026-03-01T06:30:00Z"} {
		if !strings.Contains(ctxText, want) {
			t.Errorf("context %q missing %q", ctxText, want)
		}
	}
}

func TestSlackNotifier_TruncatesSection(t *testing.T) {
	n := NewSlackNotifier(SlackConfig{}, Links{}, nil)
	b := sampleBriefing()
	b.SummaryText = strings.Repeat("x", 5000)

	p := n.buildBlockKitPayload(b)
	if got := len(p.Blocks[1].Text.Text); got > maxSectionTextLength {
		t.Errorf("section length = %d", got)
	}
}

func TestSlackNotifier_NotifyBriefing(t *testing.T) {
	var got SlackWebhookPayload
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		_ = json.Unmarshal(body, &got)
		_, _ = w.Write([]byte("ok"))
	}))
	defer srv.Close()

	n := NewSlackNotifier(SlackConfig{WebhookURL: srv.URL, Timeout: time.Second}, Links{}, nil)
	if err := n.NotifyBriefing(context.Background(), sampleBriefing()); err != nil {
		t.Fatalf("NotifyBriefing: %v", err)
	}
	if len(got.Blocks) != 3 {
		t.Errorf("unexpected payload %+v", got)
	}
}
