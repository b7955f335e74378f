// Package ratelimit implements sliding-window request counters keyed by
// arbitrary strings, with in-memory and Redis backends.
package ratelimit

import (
	"context"
	"time"
)

// Policy caps requests per key to Limit within any Window-long interval.
type Policy struct {
	Name   string
	Limit  int
	Window time.Duration
}

// Result describes the decision for one request.
type Result struct {
	Allowed   bool
	Limit     int
	Remaining int
	ResetAt   time.Time
}

// RetryAfter is the wait until the oldest counted request leaves the window.
func (r Result) RetryAfter(now time.Time) time.Duration {
	if r.Allowed || !r.ResetAt.After(now) {
		return 0
	}
	return r.ResetAt.Sub(now)
}

// Limiter records a request for key under p and reports whether it is allowed.
// Denied requests are not counted.
type Limiter interface {
	Allow(ctx context.Context, key string, p Policy) (Result, error)
}
