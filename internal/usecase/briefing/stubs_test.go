package briefing_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"sync"
	"sync/atomic"
	"time"

	"daily-briefing/internal/domain/entity"
	"daily-briefing/internal/usecase/briefing"
)

/* ──────────────────────────────── stubs ──────────────────────────────── */

type stubFetcher struct {
	bodies map[string]string
	errs   map[string]error
	delay  map[string]time.Duration
	calls  int32
}

func (f *stubFetcher) Fetch(ctx context.Context, url string) (string, error) {
	atomic.AddInt32(&f.calls, 1)
	if d := f.delay[url]; d > 0 {
		select {
		case <-time.After(d):
		case <-ctx.Done():
			return "", ctx.Err()
		}
	}
	if err := f.errs[url]; err != nil {
		return "", err
	}
	body, ok := f.bodies[url]
	if !ok {
		return "", errors.New("connection refused")
	}
	return body, nil
}

type stubGenerator struct {
	resp    string
	err     error
	calls   int32
	prompts []string
	mu      sync.Mutex
}

func (g *stubGenerator) Name() string { return "stub" }

func (g *stubGenerator) Generate(_ context.Context, prompt string) (string, error) {
	atomic.AddInt32(&g.calls, 1)
	g.mu.Lock()
	g.prompts = append(g.prompts, prompt)
	g.mu.Unlock()
	return g.resp, g.err
}

type stubSynth struct {
	name   string
	max    int
	voice  string
	err    error
	calls  int32
	inputs []string
	voices []string
}

func (s *stubSynth) Name() string       { return s.name }
func (s *stubSynth) MaxInputChars() int { return s.max }

func (s *stubSynth) Voice(p *entity.VoicePersonality) string {
	if p != nil && p.VoiceID != "" {
		return p.VoiceID
	}
	return s.voice
}

func (s *stubSynth) Synthesize(_ context.Context, text, voice string) ([]byte, string, error) {
	atomic.AddInt32(&s.calls, 1)
	s.inputs = append(s.inputs, text)
	s.voices = append(s.voices, voice)
	if s.err != nil {
		return nil, "", s.err
	}
	return []byte("ID3" + s.name), "mp3", nil
}

// memStore keeps briefings as JSON, like the real stores do.
type memStore struct {
	mu     sync.Mutex
	data   map[string][]byte
	putErr error
	puts   int32
}

func newMemStore() *memStore { return &memStore{data: make(map[string][]byte)} }

func (m *memStore) Get(_ context.Context, date string) (*entity.DailyBriefing, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	raw, ok := m.data[date]
	if !ok {
		return nil, briefing.ErrBriefingNotFound
	}
	var b entity.DailyBriefing
	if err := json.Unmarshal(raw, &b); err != nil {
		return nil, err
	}
	return &b, nil
}

func (m *memStore) Put(_ context.Context, b *entity.DailyBriefing) error {
	atomic.AddInt32(&m.puts, 1)
	if m.putErr != nil {
		return m.putErr
	}
	raw, err := json.Marshal(b)
	if err != nil {
		return err
	}
	m.mu.Lock()
	m.data[b.Date] = raw
	m.mu.Unlock()
	return nil
}

type memAudio struct {
	mu    sync.Mutex
	files map[string][]byte
	err   error
	seq   int
}

func (a *memAudio) Save(prefix, ext string, data []byte) (string, error) {
	if a.err != nil {
		return "", a.err
	}
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.files == nil {
		a.files = make(map[string][]byte)
	}
	a.seq++
	name := fmt.Sprintf("%s-%d.%s", prefix, a.seq, ext)
	a.files[name] = data
	return name, nil
}

type nopCloser struct{ *bytes.Reader }

func (nopCloser) Close() error { return nil }

func (a *memAudio) Open(name string) (io.ReadSeekCloser, time.Time, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	data, ok := a.files[name]
	if !ok {
		return nil, time.Time{}, entity.ErrNotFound
	}
	return nopCloser{bytes.NewReader(data)}, time.Time{}, nil
}

type staticSources []entity.Source

func (s staticSources) List(context.Context) ([]entity.Source, error) { return s, nil }

type stubNotifier struct {
	calls int32
	err   error
}

func (n *stubNotifier) NotifyBriefing(context.Context, *entity.DailyBriefing) error {
	atomic.AddInt32(&n.calls, 1)
	return n.err
}

// blockingNotifier holds every delivery until release is closed.
type blockingNotifier struct {
	release  chan struct{}
	calls    int32
	finished int32
}

func (n *blockingNotifier) NotifyBriefing(ctx context.Context, _ *entity.DailyBriefing) error {
	atomic.AddInt32(&n.calls, 1)
	defer atomic.AddInt32(&n.finished, 1)
	select {
	case <-n.release:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// lateStore misses on the first Get and returns late afterwards.
type lateStore struct {
	*memStore
	late  *entity.DailyBriefing
	reads int32
}

func (s *lateStore) Get(ctx context.Context, date string) (*entity.DailyBriefing, error) {
	if atomic.AddInt32(&s.reads, 1) == 1 {
		return nil, briefing.ErrBriefingNotFound
	}
	return s.late, nil
}

// stepClock advances by one second on each call.
type stepClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *stepClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(time.Second)
	return c.now
}

/* ──────────────────────────────── fixtures ──────────────────────────────── */

func rssFeed(items ...string) string {
	body := `<?xml version="1.0"?><rss version="2.0"><channel><title>t</title>`
	for _, it := range items {
		body += it
	}
	return body + `</channel></rss>`
}

func rssItem(title string) string {
	return fmt.Sprintf(`<item><title>%s</title><link>https://example.com/%s</link><description>About %s</description></item>`, title, title, title)
}

func podcastItem(title, audioURL string) string {
	return fmt.Sprintf(`<item><title>%s</title><link>https://example.com/%s</link><enclosure url="%s" type="audio/mpeg" length="1"/></item>`, title, title, audioURL)
}

func jsonSummary(bullets, script string) string {
	raw, _ := json.Marshal(map[string]string{"bulletPoints": bullets, "narrativeScript": script})
	return string(raw)
}

func articles(categories ...string) []entity.Article {
	out := make([]entity.Article, len(categories))
	for i, c := range categories {
		out[i] = entity.Article{Title: fmt.Sprintf("%s-%d", c, i), Category: c, SourceName: "src"}
	}
	return out
}
