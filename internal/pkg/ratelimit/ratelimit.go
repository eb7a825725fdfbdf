// Package ratelimit paces outbound calls to external APIs.
package ratelimit

import (
	"context"
	"time"

	"golang.org/x/time/rate"
)

// Limiter blocks until the next call is allowed or the context ends.
type Limiter interface {
	Wait(ctx context.Context) error
}

type intervalLimiter struct {
	limiter *rate.Limiter
}

// Interval returns a limiter that allows one call per d.
func Interval(d time.Duration) Limiter {
	return &intervalLimiter{limiter: rate.NewLimiter(rate.Every(d), 1)}
}

func (l *intervalLimiter) Wait(ctx context.Context) error {
	return l.limiter.Wait(ctx)
}

type noneLimiter struct{}

// None returns a limiter that never waits. Used in tests.
func None() Limiter { return noneLimiter{} }

func (noneLimiter) Wait(ctx context.Context) error { return ctx.Err() }
