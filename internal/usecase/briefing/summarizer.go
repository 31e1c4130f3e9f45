package briefing

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	"daily-briefing/internal/domain/entity"
	"daily-briefing/internal/observability/metrics"
	"daily-briefing/internal/utils/text"
)

// Summarizer defaults.
const (
	DefaultMinArticles        = 5
	DefaultMaxArticles        = 40
	DefaultMaxPromptChars     = 15000
	DefaultMinPlaintextLength = 50
)

// Summary outcome labels, also used as metric values.
const (
	OutcomeJSON      = "json"
	OutcomeExtracted = "extracted"
	OutcomePlaintext = "plaintext"
	OutcomeSkipped   = "skipped"
	OutcomeEmpty     = "empty"
	OutcomeError     = "error"
)

const summaryInstruction = `You are a news anchor. Create a daily briefing summary from the following headlines.
Organize the summary by category, using the categories given in brackets.
Format "bulletPoints" as a concise bulleted list in Markdown, with category headers.
Also provide a "narrativeScript" that flows naturally between the categories when read aloud.

Respond with ONLY a JSON object, no prose and no code fences:
{"bulletPoints": "string with markdown bullets", "narrativeScript": "string for TTS reading"}

Input:
`

// Summary is the outcome of one summarization.
type Summary struct {
	// Text is the bullet digest or one of the entity.Summary* sentinels.
	Text string
	// Script is the narration script; empty when no narration should be produced.
	Script string
	// Outcome names the parsing tier that produced Text.
	Outcome string
}

// Summarizer turns ranked articles into a digest and a narration script.
type Summarizer struct {
	Generator TextGenerator

	MinArticles        int
	MaxArticles        int
	MaxPromptChars     int
	MinPlaintextLength int

	Logger *slog.Logger
}

// NewSummarizer creates a Summarizer with default limits.
func NewSummarizer(gen TextGenerator, logger *slog.Logger) *Summarizer {
	return &Summarizer{
		Generator:          gen,
		MinArticles:        DefaultMinArticles,
		MaxArticles:        DefaultMaxArticles,
		MaxPromptChars:     DefaultMaxPromptChars,
		MinPlaintextLength: DefaultMinPlaintextLength,
		Logger:             logger,
	}
}

// Summarize never fails: every error path yields a sentinel text and an empty script.
// persona may be nil.
func (s *Summarizer) Summarize(ctx context.Context, articles []entity.Article, persona *entity.VoicePersonality) Summary {
	logger := s.Logger
	if logger == nil {
		logger = slog.Default()
	}

	if len(articles) < s.MinArticles || s.Generator == nil {
		metrics.RecordSummaryOutcome(OutcomeSkipped)
		return Summary{Text: entity.SummaryNotGenerated, Outcome: OutcomeSkipped}
	}

	prompt := s.BuildPrompt(articles, persona)
	resp, err := s.Generator.Generate(ctx, prompt)
	if err != nil {
		logger.WarnContext(ctx, "summary generation failed",
			slog.String("provider", s.Generator.Name()),
			slog.Any("error", err))
		metrics.RecordSummaryOutcome(OutcomeError)
		return Summary{Text: entity.SummaryError, Outcome: OutcomeError}
	}

	sum := ParseSummary(resp, s.MinPlaintextLength)
	metrics.RecordSummaryOutcome(sum.Outcome)
	logger.InfoContext(ctx, "summary generated",
		slog.String("provider", s.Generator.Name()),
		slog.String("outcome", sum.Outcome),
		slog.Int("articles", len(articles)))
	return sum
}

// BuildPrompt renders the persona preamble, the fixed instruction and the
// headline list. The list covers at most MaxArticles articles and is cut to
// MaxPromptChars runes.
func (s *Summarizer) BuildPrompt(articles []entity.Article, persona *entity.VoicePersonality) string {
	if s.MaxArticles > 0 && len(articles) > s.MaxArticles {
		articles = articles[:s.MaxArticles]
	}

	lines := make([]string, 0, len(articles))
	for _, a := range articles {
		lines = append(lines, fmt.Sprintf("[%s] %s - %s: %s",
			a.Category, a.SourceName, a.Title, text.CollapseSpace(a.Snippet)))
	}
	headlines := strings.Join(lines, "\n")
	if s.MaxPromptChars > 0 {
		headlines = text.Truncate(headlines, s.MaxPromptChars)
	}

	var b strings.Builder
	if persona != nil && strings.TrimSpace(persona.Personality) != "" {
		b.WriteString(strings.TrimSpace(persona.Personality))
		b.WriteString("\n")
		if persona.Name != "" {
			fmt.Fprintf(&b, "Write the narrativeScript in the voice of %s and sign off as %s.\n", persona.Name, persona.Name)
		}
		b.WriteString("\n")
	}
	b.WriteString(summaryInstruction)
	b.WriteString(headlines)
	return b.String()
}

type summaryPayload struct {
	BulletPoints    flexText `json:"bulletPoints"`
	NarrativeScript flexText `json:"narrativeScript"`
}

// flexText accepts a JSON string or an array of strings, which is joined with newlines.
type flexText string

func (f *flexText) UnmarshalJSON(data []byte) error {
	if len(data) > 0 && data[0] == '[' {
		var parts []string
		if err := json.Unmarshal(data, &parts); err != nil {
			return err
		}
		*f = flexText(strings.Join(parts, "\n"))
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	*f = flexText(s)
	return nil
}

// ParseSummary extracts the two summary fields from a model reply.
//
// The reply is tried as JSON, then the span from the first '{' to the last '}'
// as JSON, then as plaintext used for both fields when it has more than
// minPlaintext runes. Anything else is an error sentinel.
func ParseSummary(resp string, minPlaintext int) Summary {
	trimmed := strings.TrimSpace(resp)

	if p, ok := decodePayload(trimmed); ok {
		return payloadSummary(p, OutcomeJSON)
	}

	if start, end := strings.Index(trimmed, "{"), strings.LastIndex(trimmed, "}"); start >= 0 && end > start {
		if p, ok := decodePayload(trimmed[start : end+1]); ok {
			return payloadSummary(p, OutcomeExtracted)
		}
	}

	if text.CountRunes(trimmed) > minPlaintext {
		return Summary{Text: trimmed, Script: trimmed, Outcome: OutcomePlaintext}
	}
	return Summary{Text: entity.SummaryError, Outcome: OutcomeError}
}

func decodePayload(s string) (summaryPayload, bool) {
	var p summaryPayload
	if !strings.HasPrefix(s, "{") {
		return p, false
	}
	if err := json.Unmarshal([]byte(s), &p); err != nil {
		return p, false
	}
	return p, true
}

// payloadSummary maps a JSON reply without a digest to entity.SummaryFailed.
func payloadSummary(p summaryPayload, outcome string) Summary {
	bullets := strings.TrimSpace(string(p.BulletPoints))
	script := strings.TrimSpace(string(p.NarrativeScript))
	if bullets == "" {
		return Summary{Text: entity.SummaryFailed, Script: script, Outcome: OutcomeEmpty}
	}
	return Summary{Text: bullets, Script: script, Outcome: outcome}
}
