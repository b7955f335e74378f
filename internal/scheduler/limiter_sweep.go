package scheduler

import (
	"context"
	"time"

	"github.com/zainmh-10/CreateAILab/internal/logger"
)

// Sweeper drops idle rate-limit keys and reports how many it removed.
type Sweeper interface {
	Sweep() int
	Len() int
}

// LimiterSweeper periodically prunes the in-memory rate limiter so keys for
// one-off visitors do not accumulate.
type LimiterSweeper struct {
	target   Sweeper
	logger   logger.Logger
	interval time.Duration
	stopCh   chan struct{}
}

func NewLimiterSweeper(target Sweeper, log logger.Logger, interval time.Duration) *LimiterSweeper {
	if interval <= 0 {
		interval = 5 * time.Minute
	}
	return &LimiterSweeper{
		target:   target,
		logger:   log,
		interval: interval,
		stopCh:   make(chan struct{}),
	}
}

func (ls *LimiterSweeper) Start(ctx context.Context) {
	ticker := time.NewTicker(ls.interval)
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				ls.Sweep()
			case <-ls.stopCh:
				return
			case <-ctx.Done():
				return
			}
		}
	}()
}

func (ls *LimiterSweeper) Stop() {
	close(ls.stopCh)
}

// Sweep runs one pruning pass.
func (ls *LimiterSweeper) Sweep() int {
	removed := ls.target.Sweep()
	if removed > 0 {
		ls.logger.Debug("pruned idle rate limit keys",
			logger.Int("removed", removed),
			logger.Int("tracked", ls.target.Len()))
	}
	return removed
}
