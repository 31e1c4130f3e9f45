// Package tts provides text-to-speech providers for briefing narration.
//
// Inworld is the primary provider and ElevenLabs the secondary one. Both speak
// plain JSON over HTTPS, so they are implemented on net/http and share the retry
// and circuit breaker stack used by the rest of the application.
package tts

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math/rand/v2"
	"net/http"
	"time"

	"daily-briefing/internal/resilience/circuitbreaker"
	"daily-briefing/internal/resilience/retry"
)

// DefaultTimeout bounds one synthesis call, retries included.
const DefaultTimeout = 60 * time.Second

// MaxAudioBytes caps the audio accepted from a provider.
const MaxAudioBytes = 50 << 20

// ErrAudioTooLarge is returned when a provider reply exceeds MaxAudioBytes.
var ErrAudioTooLarge = errors.New("tts response too large")

// client performs JSON POST requests for one provider.
type client struct {
	name           string
	http           *http.Client
	timeout        time.Duration
	circuitBreaker *circuitbreaker.CircuitBreaker
	retryConfig    retry.Config
}

func newClient(name string, httpClient *http.Client, timeout time.Duration, rc retry.Config) *client {
	if httpClient == nil {
		httpClient = &http.Client{}
	}
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	if rc.MaxAttempts <= 0 {
		rc = retry.SpeechConfig()
	}
	return &client{
		name:           name,
		http:           httpClient,
		timeout:        timeout,
		circuitBreaker: circuitbreaker.New(circuitbreaker.SpeechConfig(name)),
		retryConfig:    rc,
	}
}

// postJSON sends body as JSON and returns the response body of a 2xx reply.
// Non-2xx replies become *retry.HTTPError.
func (c *client) postJSON(ctx context.Context, url string, headers map[string]string, body any) ([]byte, error) {
	payload, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	return retry.Do(ctx, c.retryConfig, func() ([]byte, error) {
		return circuitbreaker.Run(c.circuitBreaker, func() ([]byte, error) {
			return c.do(ctx, url, headers, payload)
		})
	})
}

func (c *client) do(ctx context.Context, url string, headers map[string]string, payload []byte) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer func() { _ = resp.Body.Close() }()

	data, err := io.ReadAll(io.LimitReader(resp.Body, MaxAudioBytes+1))
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		slog.WarnContext(ctx, "tts request rejected",
			slog.String("provider", c.name),
			slog.Int("status", resp.StatusCode),
			slog.Duration("duration", time.Since(start)))
		return nil, retry.FromResponse(resp, data)
	}
	if len(data) > MaxAudioBytes {
		return nil, ErrAudioTooLarge
	}
	return data, nil
}

// pickVoice returns a random voice from pool, or def when the pool is empty.
func pickVoice(pool []string, def string) string {
	if len(pool) == 0 {
		return def
	}
	return pool[rand.IntN(len(pool))]
}
