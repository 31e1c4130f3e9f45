package summarizer_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"daily-briefing/internal/infra/summarizer"
	"daily-briefing/internal/resilience/retry"
)

// fastRetry keeps retry tests quick.
var fastRetry = retry.Config{Name: "test", MaxAttempts: 2, InitialDelay: time.Millisecond, MaxDelay: time.Millisecond, Multiplier: 1}

/* ───────── OpenAI-compatible (OpenAI, Gemini) ───────── */

func chatCompletion(content string) string {
	raw, _ := json.Marshal(map[string]any{
		"id":      "chatcmpl-1",
		"object":  "chat.completion",
		"created": 1,
		"model":   "test",
		"choices": []map[string]any{{
			"index":         0,
			"message":       map[string]string{"role": "assistant", "content": content},
			"finish_reason": "stop",
		}},
	})
	return string(raw)
}

func TestOpenAI_Generate(t *testing.T) {
	var got map[string]any
	var auth string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !strings.HasSuffix(r.URL.Path, "/chat/completions") {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		auth = r.Header.Get("Authorization")
		body, _ := io.ReadAll(r.Body)
		_ = json.Unmarshal(body, &got)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(chatCompletion(`{"bulletPoints":"- a","narrativeScript":"b"}`)))
	}))
	defer server.Close()

	gen := summarizer.NewOpenAI(summarizer.Config{APIKey: "sk-test", BaseURL: server.URL + "/v1", Retry: fastRetry})

	reply, err := gen.Generate(context.Background(), "prompt text")
	require.NoError(t, err)
	assert.Equal(t, `{"bulletPoints":"- a","narrativeScript":"b"}`, reply)
	assert.Equal(t, "openai", gen.Name())
	assert.Equal(t, "Bearer sk-test", auth)
	assert.Equal(t, "gpt-4o", got["model"])
	assert.Equal(t, map[string]any{"type": "json_object"}, got["response_format"])
}

func TestGemini_Defaults(t *testing.T) {
	var model any
	var format any
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var body map[string]any
		_ = json.NewDecoder(r.Body).Decode(&body)
		model, format = body["model"], body["response_format"]
		_, _ = w.Write([]byte(chatCompletion("plain answer")))
	}))
	defer server.Close()

	gen := summarizer.NewGemini(summarizer.Config{APIKey: "AIza-test", BaseURL: server.URL, Retry: fastRetry})

	reply, err := gen.Generate(context.Background(), "p")
	require.NoError(t, err)
	assert.Equal(t, "plain answer", reply)
	assert.Equal(t, "gemini", gen.Name())
	assert.Equal(t, summarizer.GeminiModel, model)
	assert.Nil(t, format)
}

func TestOpenAI_ErrorHandling(t *testing.T) {
	tests := []struct {
		name      string
		status    int
		wantCalls int32
	}{
		{"401 is not retried", http.StatusUnauthorized, 1},
		{"400 is not retried", http.StatusBadRequest, 1},
		{"429 is retried", http.StatusTooManyRequests, 2},
		{"500 is retried", http.StatusInternalServerError, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var calls int32
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				atomic.AddInt32(&calls, 1)
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(`{"error":{"message":"nope","type":"server_error"}}`))
			}))
			defer server.Close()

			gen := summarizer.NewOpenAI(summarizer.Config{APIKey: "sk-test", BaseURL: server.URL + "/v1", Retry: fastRetry})

			_, err := gen.Generate(context.Background(), "p")
			require.Error(t, err)

			var httpErr *retry.HTTPError
			require.True(t, errors.As(err, &httpErr), "error should carry the status: %v", err)
			assert.Equal(t, tt.status, httpErr.StatusCode)
			assert.Equal(t, tt.wantCalls, atomic.LoadInt32(&calls))
		})
	}
}

func TestOpenAI_EmptyChoices(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"id":"x","object":"chat.completion","choices":[]}`))
	}))
	defer server.Close()

	gen := summarizer.NewOpenAI(summarizer.Config{APIKey: "sk-test", BaseURL: server.URL + "/v1", Retry: fastRetry})

	_, err := gen.Generate(context.Background(), "p")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "empty response")
}

func TestOpenAI_Timeout(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	}))
	defer server.Close()

	gen := summarizer.NewOpenAI(summarizer.Config{
		APIKey: "sk-test", BaseURL: server.URL + "/v1", Retry: fastRetry, Timeout: 50 * time.Millisecond,
	})

	start := time.Now()
	_, err := gen.Generate(context.Background(), "p")
	require.Error(t, err)
	assert.Less(t, time.Since(start), 2*time.Second)
}

/* ───────── Claude ───────── */

func TestClaude_Generate(t *testing.T) {
	var apiKey, path string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		apiKey = r.Header.Get("X-Api-Key")
		path = r.URL.Path
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"id": "msg_1",
			"type": "message",
			"role": "assistant",
			"model": "claude-sonnet-4-5-20250929",
			"content": [{"type": "text", "text": "{\"bulletPoints\":\"- c\","}, {"type": "text", "text": "\"narrativeScript\":\"d\"}"}],
			"stop_reason": "end_turn",
			"usage": {"input_tokens": 10, "output_tokens": 5}
		}`))
	}))
	defer server.Close()

	gen := summarizer.NewClaude(summarizer.Config{APIKey: "sk-ant-test", BaseURL: server.URL, Retry: fastRetry})

	reply, err := gen.Generate(context.Background(), "prompt")
	require.NoError(t, err)
	assert.Equal(t, `{"bulletPoints":"- c","narrativeScript":"d"}`, reply)
	assert.Equal(t, "sk-ant-test", apiKey)
	assert.Equal(t, "/v1/messages", path)
	assert.Equal(t, "claude", gen.Name())
}

func TestClaude_AuthErrorNotRetried(t *testing.T) {
	var calls int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"type":"error","error":{"type":"authentication_error","message":"invalid x-api-key"}}`))
	}))
	defer server.Close()

	gen := summarizer.NewClaude(summarizer.Config{APIKey: "sk-ant-bad", BaseURL: server.URL, Retry: fastRetry})

	_, err := gen.Generate(context.Background(), "prompt")
	require.Error(t, err)

	var httpErr *retry.HTTPError
	require.True(t, errors.As(err, &httpErr))
	assert.Equal(t, http.StatusUnauthorized, httpErr.StatusCode)
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
}

/* ───────── factory ───────── */

func TestNew(t *testing.T) {
	tests := []struct {
		name     string
		cfg      summarizer.Config
		wantName string
		wantErr  error
	}{
		{"gemini", summarizer.Config{Provider: "gemini", APIKey: "k"}, "gemini", nil},
		{"default is gemini", summarizer.Config{APIKey: "k"}, "gemini", nil},
		{"openai", summarizer.Config{Provider: "openai", APIKey: "k"}, "openai", nil},
		{"claude", summarizer.Config{Provider: "claude", APIKey: "k"}, "claude", nil},
		{"missing key", summarizer.Config{Provider: "openai"}, "", summarizer.ErrMissingAPIKey},
		{"unknown", summarizer.Config{Provider: "llama", APIKey: "k"}, "", summarizer.ErrUnknownProvider},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gen, err := summarizer.New(tt.cfg)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, gen)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantName, gen.Name())
		})
	}
}
