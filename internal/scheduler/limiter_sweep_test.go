package scheduler

import (
	"context"
	"testing"
	"time"

	"github.com/zainmh-10/CreateAILab/internal/logger"
	"github.com/zainmh-10/CreateAILab/internal/ratelimit"
)

type countingSweeper struct{ calls int }

func (c *countingSweeper) Sweep() int { c.calls++; return c.calls }

func (c *countingSweeper) Len() int { return 0 }

func TestLimiterSweeper_Sweep(t *testing.T) {
	target := &countingSweeper{}
	ls := NewLimiterSweeper(target, logger.NewNop(), 0)
	if ls.interval != 5*time.Minute {
		t.Errorf("default interval = %v, want 5m", ls.interval)
	}
	if got := ls.Sweep(); got != 1 {
		t.Errorf("Sweep() = %d, want 1", got)
	}
}

func TestLimiterSweeper_PrunesMemoryLimiter(t *testing.T) {
	lim := ratelimit.NewMemoryLimiter()
	p := ratelimit.Policy{Limit: 1, Window: time.Millisecond}
	if _, err := lim.Allow(context.Background(), "k", p); err != nil {
		t.Fatalf("Allow() error = %v", err)
	}
	time.Sleep(5 * time.Millisecond)

	ls := NewLimiterSweeper(lim, logger.NewNop(), time.Minute)
	if got := ls.Sweep(); got != 1 {
		t.Errorf("Sweep() = %d, want 1", got)
	}
	if lim.Len() != 0 {
		t.Errorf("limiter still tracks %d keys", lim.Len())
	}
}
