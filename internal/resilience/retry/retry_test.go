package retry

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"syscall"
	"testing"
	"time"
)

func fastConfig() Config {
	return Config{
		Name:           "test",
		MaxAttempts:    3,
		InitialDelay:   5 * time.Millisecond,
		MaxDelay:       20 * time.Millisecond,
		Multiplier:     2.0,
		JitterFraction: 0.1,
	}
}

func TestWithBackoff_Success(t *testing.T) {
	attempts := 0
	err := WithBackoff(context.Background(), fastConfig(), func() error {
		attempts++
		return nil
	})

	if err != nil {
		t.Errorf("expected no error, got %v", err)
	}
	if attempts != 1 {
		t.Errorf("expected 1 attempt, got %d", attempts)
	}
}

func TestWithBackoff_SuccessAfterRetry(t *testing.T) {
	attempts := 0
	err := WithBackoff(context.Background(), fastConfig(), func() error {
		attempts++
		if attempts < 3 {
			return &HTTPError{StatusCode: 503, Message: "unavailable"}
		}
		return nil
	})

	if err != nil {
		t.Errorf("expected no error, got %v", err)
	}
	if attempts != 3 {
		t.Errorf("expected 3 attempts, got %d", attempts)
	}
}

func TestWithBackoff_MaxAttemptsExceeded(t *testing.T) {
	attempts := 0
	upstream := &HTTPError{StatusCode: 500, Message: "boom"}
	err := WithBackoff(context.Background(), fastConfig(), func() error {
		attempts++
		return upstream
	})

	if attempts != 3 {
		t.Errorf("expected 3 attempts, got %d", attempts)
	}
	if !errors.Is(err, upstream) {
		t.Errorf("expected wrapped upstream error, got %v", err)
	}
}

func TestWithBackoff_NonRetryableError(t *testing.T) {
	attempts := 0
	err := WithBackoff(context.Background(), fastConfig(), func() error {
		attempts++
		return &HTTPError{StatusCode: http.StatusUnauthorized, Message: "bad key"}
	})

	if attempts != 1 {
		t.Errorf("expected 1 attempt, got %d", attempts)
	}
	var httpErr *HTTPError
	if !errors.As(err, &httpErr) || httpErr.StatusCode != http.StatusUnauthorized {
		t.Errorf("expected 401 HTTPError, got %v", err)
	}
}

func TestWithBackoff_ContextCanceled(t *testing.T) {
	cfg := fastConfig()
	cfg.InitialDelay = time.Second

	ctx, cancel := context.WithCancel(context.Background())
	attempts := 0
	go func() {
		time.Sleep(20 * time.Millisecond)
		cancel()
	}()

	err := WithBackoff(ctx, cfg, func() error {
		attempts++
		return &HTTPError{StatusCode: 502}
	})

	if !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
	if attempts != 1 {
		t.Errorf("expected 1 attempt before cancellation, got %d", attempts)
	}
}

func TestWithBackoff_ZeroAttemptsRunsOnce(t *testing.T) {
	cfg := fastConfig()
	cfg.MaxAttempts = 0

	attempts := 0
	_ = WithBackoff(context.Background(), cfg, func() error {
		attempts++
		return nil
	})
	if attempts != 1 {
		t.Errorf("expected 1 attempt, got %d", attempts)
	}
}

func TestDo_ReturnsValue(t *testing.T) {
	attempts := 0
	got, err := Do(context.Background(), fastConfig(), func() (string, error) {
		attempts++
		if attempts == 1 {
			return "", &HTTPError{StatusCode: http.StatusTooManyRequests}
		}
		return "ok", nil
	})

	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "ok" {
		t.Errorf("got %q, want ok", got)
	}
}

func TestIsRetryable(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"nil", nil, false},
		{"canceled", context.Canceled, false},
		{"deadline", fmt.Errorf("wrap: %w", context.DeadlineExceeded), false},
		{"conn refused", syscall.ECONNREFUSED, true},
		{"conn reset", fmt.Errorf("read: %w", syscall.ECONNRESET), true},
		{"500", &HTTPError{StatusCode: 500}, true},
		{"429", &HTTPError{StatusCode: 429}, true},
		{"408", &HTTPError{StatusCode: 408}, true},
		{"404", &HTTPError{StatusCode: 404}, false},
		{"plain", errors.New("parse failure"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsRetryable(tt.err); got != tt.want {
				t.Errorf("IsRetryable(%v) = %v, want %v", tt.err, got, tt.want)
			}
		})
	}
}

func TestFeedFetchConfig_FitsFetchTimeout(t *testing.T) {
	cfg := FeedFetchConfig()
	// worst-case sleep between attempts must stay well under the 10s per-source budget
	if cfg.MaxDelay*time.Duration(cfg.MaxAttempts-1) >= 5*time.Second {
		t.Errorf("feed retry backoff too long: %+v", cfg)
	}
}

func TestFromResponse(t *testing.T) {
	resp := &http.Response{StatusCode: http.StatusBadGateway}
	e := FromResponse(resp, nil)
	if e.Message != "Bad Gateway" {
		t.Errorf("Message = %q", e.Message)
	}

	long := make([]byte, 500)
	for i := range long {
		long[i] = 'x'
	}
	e = FromResponse(resp, long)
	if len(e.Message) != 200 {
		t.Errorf("body should be capped at 200 bytes, got %d", len(e.Message))
	}
}

func TestAddJitter(t *testing.T) {
	base := 100 * time.Millisecond
	for i := 0; i < 50; i++ {
		d := addJitter(base, 0.5)
		if d < base || d > base+base/2 {
			t.Fatalf("jittered delay %v out of range", d)
		}
	}
	if addJitter(base, 0) != base {
		t.Errorf("zero jitter should not change delay")
	}
}
