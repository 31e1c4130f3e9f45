// Package resilience groups the fault tolerance helpers used around outbound calls.
//
//   - circuitbreaker wraps sony/gobreaker. Run calls a typed function through a breaker and
//     reports an open breaker as ErrOpen. FeedFetchConfig, TextGenerationConfig,
//     SpeechConfig and NotifierConfig hold the thresholds for feeds, LLM providers,
//     TTS providers and webhooks.
//   - retry retries with exponential backoff and jitter. Do returns the value of the
//     first successful attempt, and IsRetryable decides which errors get another attempt.
//     The per-concern configs match the breaker ones.
//
// A typical call puts retry outside and the breaker inside:
//
//	cb := circuitbreaker.New(circuitbreaker.SpeechConfig("elevenlabs"))
//	audio, err := retry.Do(ctx, retry.SpeechConfig(), func() ([]byte, error) {
//	    return circuitbreaker.Run(cb, func() ([]byte, error) {
//	        return synthesize(ctx, text)
//	    })
//	})
package resilience
