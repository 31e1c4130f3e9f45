package circuitbreaker

import (
	"errors"
	"testing"
	"time"

	"github.com/sony/gobreaker"
)

func testConfig() Config {
	return Config{
		Name:             "test",
		MaxRequests:      1,
		Interval:         time.Minute,
		Timeout:          50 * time.Millisecond,
		FailureThreshold: 0.5,
		MinRequests:      2,
	}
}

func TestNew(t *testing.T) {
	cb := New(testConfig())

	if cb.Name() != "test" {
		t.Errorf("Name() = %q, want test", cb.Name())
	}
	if cb.State() != gobreaker.StateClosed {
		t.Errorf("initial state = %v, want closed", cb.State())
	}
	if cb.IsOpen() {
		t.Error("new breaker should not be open")
	}
}

func TestRun_Success(t *testing.T) {
	cb := New(testConfig())

	got, err := Run(cb, func() (int, error) { return 42, nil })
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != 42 {
		t.Errorf("got %d, want 42", got)
	}
}

func TestRun_PassesThroughError(t *testing.T) {
	cb := New(testConfig())
	upstream := errors.New("upstream down")

	_, err := Run(cb, func() (string, error) { return "", upstream })
	if !errors.Is(err, upstream) {
		t.Errorf("expected upstream error, got %v", err)
	}
}

func TestRun_TripsOpenAndRecovers(t *testing.T) {
	cb := New(testConfig())
	fail := func() (string, error) { return "", errors.New("fail") }

	for i := 0; i < 2; i++ {
		_, _ = Run(cb, fail)
	}
	if !cb.IsOpen() {
		t.Fatalf("breaker should be open after failures, state=%v", cb.State())
	}

	_, err := Run(cb, func() (string, error) { return "unreachable", nil })
	if !errors.Is(err, ErrOpen) {
		t.Errorf("expected ErrOpen, got %v", err)
	}

	time.Sleep(80 * time.Millisecond)

	got, err := Run(cb, func() (string, error) { return "probe", nil })
	if err != nil {
		t.Fatalf("half-open probe failed: %v", err)
	}
	if got != "probe" {
		t.Errorf("got %q, want probe", got)
	}
	if cb.State() != gobreaker.StateClosed {
		t.Errorf("state after successful probe = %v, want closed", cb.State())
	}
}

func TestRun_MinRequestsRespected(t *testing.T) {
	cfg := testConfig()
	cfg.MinRequests = 5
	cb := New(cfg)

	for i := 0; i < 4; i++ {
		_, _ = Run(cb, func() (int, error) { return 0, errors.New("fail") })
	}
	if cb.IsOpen() {
		t.Error("breaker opened before MinRequests was reached")
	}
}

func TestProviderConfigs(t *testing.T) {
	if got := TextGenerationConfig("gemini").Name; got != "gemini-api" {
		t.Errorf("TextGenerationConfig name = %q", got)
	}
	if got := SpeechConfig("inworld").Name; got != "inworld-tts" {
		t.Errorf("SpeechConfig name = %q", got)
	}
	feed := FeedFetchConfig()
	if feed.FailureThreshold < 0.8 {
		t.Errorf("feed breaker should tolerate many dead feeds, threshold=%v", feed.FailureThreshold)
	}
}
