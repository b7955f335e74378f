// Package cache stores rendered public responses keyed by page path so admin
// writes can invalidate exactly the pages they affect.
package cache

import (
	"context"
	"time"
)

// Pages is a response cache keyed by public page path ("/tools/zoom-ai").
type Pages interface {
	Get(ctx context.Context, path string) ([]byte, bool, error)
	Set(ctx context.Context, path string, body []byte, ttl time.Duration) error
	Invalidate(ctx context.Context, paths ...string) error
}

// Noop never stores anything. Used when no Redis is configured.
type Noop struct{}

func (Noop) Get(context.Context, string) ([]byte, bool, error)        { return nil, false, nil }
func (Noop) Set(context.Context, string, []byte, time.Duration) error { return nil }
func (Noop) Invalidate(context.Context, ...string) error              { return nil }
