// Package feed fetches RSS feeds and extracts their items.
package feed

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"daily-briefing/internal/resilience/circuitbreaker"
	"daily-briefing/internal/resilience/retry"
)

// DefaultFetchTimeout bounds one source, retries included.
const DefaultFetchTimeout = 10 * time.Second

// maxFeedBytes caps the body read from a single feed.
const maxFeedBytes = 5 << 20

// ErrFeedTooLarge is returned when a feed body exceeds maxFeedBytes.
var ErrFeedTooLarge = errors.New("feed body too large")

// Fetcher retrieves the raw text of a feed.
// All sources share one circuit breaker; each call has its own deadline.
type Fetcher struct {
	client         *http.Client
	circuitBreaker *circuitbreaker.CircuitBreaker
	retryConfig    retry.Config
	timeout        time.Duration
	userAgent      string
}

// NewFetcher creates a Fetcher. A non-positive timeout selects DefaultFetchTimeout.
func NewFetcher(client *http.Client, timeout time.Duration) *Fetcher {
	if timeout <= 0 {
		timeout = DefaultFetchTimeout
	}
	return &Fetcher{
		client:         client,
		circuitBreaker: circuitbreaker.New(circuitbreaker.FeedFetchConfig()),
		retryConfig:    retry.FeedFetchConfig(),
		timeout:        timeout,
		userAgent:      "DailyBriefingBot/1.0",
	}
}

// Fetch returns the feed body as text. Transient failures are retried inside the
// same deadline, so a hung source never costs more than the configured timeout.
func (f *Fetcher) Fetch(ctx context.Context, feedURL string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, f.timeout)
	defer cancel()

	body, err := retry.Do(ctx, f.retryConfig, func() (string, error) {
		return circuitbreaker.Run(f.circuitBreaker, func() (string, error) {
			return f.doFetch(ctx, feedURL)
		})
	})
	if err != nil {
		return "", fmt.Errorf("fetch %s: %w", feedURL, err)
	}
	return body, nil
}

func (f *Fetcher) doFetch(ctx context.Context, feedURL string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, feedURL, nil)
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", f.userAgent)
	req.Header.Set("Accept", "application/rss+xml, application/atom+xml, application/xml;q=0.9, text/xml;q=0.9, */*;q=0.8")

	resp, err := f.client.Do(req)
	if err != nil {
		return "", err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))
		return "", retry.FromResponse(resp, nil)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxFeedBytes+1))
	if err != nil {
		return "", fmt.Errorf("read body: %w", err)
	}
	if len(data) > maxFeedBytes {
		return "", ErrFeedTooLarge
	}
	return string(data), nil
}
