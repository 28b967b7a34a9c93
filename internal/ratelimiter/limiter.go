package ratelimiter

import (
	"context"

	"golang.org/x/time/rate"
)

// PushLimiter is a token bucket in front of the push provider.
// Burst equals the rate so no "saved up" burst above the configured
// per-second maximum is possible.
type PushLimiter struct {
	limiter *rate.Limiter
}

// New creates a PushLimiter allowing ratePerSec dispatches per second.
func New(ratePerSec int) *PushLimiter {
	return &PushLimiter{limiter: rate.NewLimiter(rate.Limit(ratePerSec), ratePerSec)}
}

// Wait blocks until a token is granted. Called by a worker immediately
// before dispatching. Returns a non-nil error only if ctx is cancelled
// while waiting.
func (l *PushLimiter) Wait(ctx context.Context) error {
	return l.limiter.Wait(ctx)
}
