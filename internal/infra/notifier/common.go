package notifier

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"

	"daily-briefing/internal/observability/metrics"
	"daily-briefing/internal/resilience/circuitbreaker"
)

// RateLimitError represents a 429 from a webhook service.
type RateLimitError struct {
	RetryAfter time.Duration
	Message    string
}

func (e *RateLimitError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("%s (retry after %v)", e.Message, e.RetryAfter)
	}
	return fmt.Sprintf("rate limit exceeded (retry after %v)", e.RetryAfter)
}

// ClientError represents a non-429 4xx. Never retried.
type ClientError struct {
	StatusCode int
	Message    string
}

func (e *ClientError) Error() string {
	return e.Message
}

// ServerError represents a 5xx from a webhook service.
type ServerError struct {
	StatusCode int
	Message    string
}

func (e *ServerError) Error() string {
	return e.Message
}

// is429Error checks if the error is a rate limit error and extracts retry_after.
func is429Error(err error) (*RateLimitError, bool) {
	var rateLimitErr *RateLimitError
	if errors.As(err, &rateLimitErr) {
		return rateLimitErr, true
	}
	return nil, false
}

// isRetryableError reports whether err is a 5xx or a transport failure.
// Rate limits are handled separately by is429Error.
func isRetryableError(err error) bool {
	var serverErr *ServerError
	if errors.As(err, &serverErr) {
		return true
	}
	var clientErr *ClientError
	if errors.As(err, &clientErr) {
		return false
	}
	var rateLimitErr *RateLimitError
	if errors.As(err, &rateLimitErr) {
		return false
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}
	return true
}

// truncateSummary shortens text to at most maxLength bytes, appending suffix
// when cut. It never splits a UTF-8 sequence.
func truncateSummary(text string, maxLength int, suffix string) string {
	if len(text) <= maxLength {
		return text
	}
	cut := maxLength - len(suffix)
	if cut < 0 {
		cut = 0
	}
	for cut > 0 && !utf8.RuneStart(text[cut]) {
		cut--
	}
	return text[:cut] + suffix
}

// webhookErrorBody is the union of the Discord and Slack error payloads we read.
type webhookErrorBody struct {
	Message    string  `json:"message"`
	RetryAfter float64 `json:"retry_after"`
}

// extractRetryAfter reads retry_after (seconds) from a JSON body, then the
// Retry-After header. Default 5s.
func extractRetryAfter(resp *http.Response, body []byte) time.Duration {
	var e webhookErrorBody
	if err := json.Unmarshal(body, &e); err == nil && e.RetryAfter > 0 {
		return time.Duration(e.RetryAfter * float64(time.Second))
	}
	if h := resp.Header.Get("Retry-After"); h != "" {
		if seconds, err := strconv.Atoi(h); err == nil && seconds > 0 {
			return time.Duration(seconds) * time.Second
		}
	}
	return 5 * time.Second
}

// maxRetryAfter caps how long a 429 may stall the delivery loop.
const maxRetryAfter = 60 * time.Second

// webhook posts JSON payloads to one URL with rate limiting and retries.
type webhook struct {
	service     string // "Discord" or "Slack"
	url         string
	client      *http.Client
	limiter     *RateLimiter
	breaker     *circuitbreaker.CircuitBreaker
	logger      *slog.Logger
	maxAttempts int
	baseDelay   time.Duration
}

func newWebhook(service, url string, timeout time.Duration, limiter *RateLimiter, logger *slog.Logger) *webhook {
	if logger == nil {
		logger = slog.Default()
	}
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &webhook{
		service:     service,
		url:         url,
		client:      &http.Client{Timeout: timeout},
		limiter:     limiter,
		breaker:     circuitbreaker.New(circuitbreaker.NotifierConfig(strings.ToLower(service))),
		logger:      logger,
		maxAttempts: 2,
		baseDelay:   5 * time.Second,
	}
}

// post sends one request and classifies the response.
func (w *webhook) post(ctx context.Context, payload []byte) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, w.url, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("create http request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := w.client.Do(req)
	if err != nil {
		return fmt.Errorf("execute http request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, _ := io.ReadAll(io.LimitReader(resp.Body, 64<<10))

	switch {
	case resp.StatusCode >= 200 && resp.StatusCode < 300:
		return nil
	case resp.StatusCode == http.StatusTooManyRequests:
		return &RateLimitError{
			Message:    w.service + " rate limit exceeded",
			RetryAfter: extractRetryAfter(resp, body),
		}
	case resp.StatusCode >= 400 && resp.StatusCode < 500:
		return &ClientError{
			StatusCode: resp.StatusCode,
			Message:    fmt.Sprintf("%s API client error: %s", w.service, string(body)),
		}
	case resp.StatusCode >= 500:
		return &ServerError{
			StatusCode: resp.StatusCode,
			Message:    fmt.Sprintf("%s API server error: %s", w.service, string(body)),
		}
	}
	return fmt.Errorf("unexpected status code %d: %s", resp.StatusCode, string(body))
}

// deliver sends payload through the channel's circuit breaker. An open
// breaker skips the webhook until its timeout elapses.
func (w *webhook) deliver(ctx context.Context, date string, payload any) error {
	channel := strings.ToLower(w.service)
	start := time.Now()

	_, err := circuitbreaker.Run(w.breaker, func() (struct{}, error) {
		return struct{}{}, w.send(ctx, date, payload)
	})

	status := "success"
	switch {
	case errors.Is(err, circuitbreaker.ErrOpen):
		status = "circuit_open"
		w.logger.Warn("notification skipped, circuit breaker open",
			slog.String("notifier", w.service),
			slog.String("date", date))
	case err != nil:
		status = "failure"
	}
	metrics.RecordNotification(channel, status, time.Since(start))
	return err
}

// send rate limits, then posts payload with up to maxAttempts tries.
func (w *webhook) send(ctx context.Context, date string, payload any) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal webhook payload: %w", err)
	}

	log := w.logger.With(
		slog.String("request_id", uuid.NewString()),
		slog.String("notifier", w.service),
		slog.String("date", date))
	log.Info("sending briefing notification")

	if w.limiter != nil {
		if err := w.limiter.Allow(ctx); err != nil {
			log.Error("rate limiter error", slog.Any("error", err))
			return fmt.Errorf("rate limiter error: %w", err)
		}
	}

	var lastErr error
	for attempt := 1; attempt <= w.maxAttempts; attempt++ {
		err := w.post(ctx, data)
		if err == nil {
			log.Info("briefing notification sent", slog.Int("attempt", attempt))
			return nil
		}
		lastErr = err

		var delay time.Duration
		if rl, ok := is429Error(err); ok {
			delay = min(rl.RetryAfter, maxRetryAfter)
			log.Warn("rate limit hit, backing off",
				slog.Duration("retry_after", delay),
				slog.Int("attempt", attempt))
		} else if !isRetryableError(err) {
			log.Error("notification failed with non-retryable error",
				slog.Any("error", err),
				slog.Int("attempt", attempt))
			return err
		} else {
			delay = w.baseDelay * time.Duration(attempt)
			log.Warn("webhook request failed, retrying",
				slog.Any("error", err),
				slog.Int("attempt", attempt),
				slog.Duration("delay", delay))
		}

		if attempt == w.maxAttempts {
			break
		}
		t := time.NewTimer(delay)
		select {
		case <-t.C:
		case <-ctx.Done():
			t.Stop()
			return fmt.Errorf("context canceled during retry backoff: %w", ctx.Err())
		}
	}

	log.Error("notification failed after all retries",
		slog.Any("error", lastErr),
		slog.Int("max_attempts", w.maxAttempts))
	return fmt.Errorf("%s notification failed after %d attempts: %w", w.service, w.maxAttempts, lastErr)
}
