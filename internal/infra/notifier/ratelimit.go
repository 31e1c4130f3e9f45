package notifier

import (
	"context"

	"golang.org/x/time/rate"
)

// RateLimiter is a token bucket in front of a webhook.
type RateLimiter struct {
	limiter *rate.Limiter
}

// NewRateLimiter allows burst requests at once, refilled at requestsPerSecond.
//
//	limiter := NewRateLimiter(0.5, 3) // Discord: 30 req/min
func NewRateLimiter(requestsPerSecond float64, burst int) *RateLimiter {
	return &RateLimiter{limiter: rate.NewLimiter(rate.Limit(requestsPerSecond), burst)}
}

// Allow blocks until a token is available or ctx is done.
func (r *RateLimiter) Allow(ctx context.Context) error {
	return r.limiter.Wait(ctx)
}
