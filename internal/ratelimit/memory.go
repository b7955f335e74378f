package ratelimit

import (
	"context"
	"sync"
	"time"
)

// MemoryLimiter keeps per-key timestamp windows in process memory.
// It is exact for a single replica only.
type MemoryLimiter struct {
	mu      sync.Mutex
	windows map[string]*slidingWindow
	now     func() time.Time
}

type slidingWindow struct {
	timestamps []time.Time
	window     time.Duration
}

func NewMemoryLimiter() *MemoryLimiter {
	return &MemoryLimiter{
		windows: make(map[string]*slidingWindow),
		now:     time.Now,
	}
}

func (m *MemoryLimiter) Allow(_ context.Context, key string, p Policy) (Result, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.now()
	sw := m.windows[key]
	if sw == nil {
		sw = &slidingWindow{window: p.Window}
		m.windows[key] = sw
	}
	sw.window = p.Window
	sw.cleanup(now)

	if len(sw.timestamps) >= p.Limit {
		return Result{
			Allowed:   false,
			Limit:     p.Limit,
			Remaining: 0,
			ResetAt:   sw.timestamps[0].Add(p.Window),
		}, nil
	}

	sw.timestamps = append(sw.timestamps, now)
	return Result{
		Allowed:   true,
		Limit:     p.Limit,
		Remaining: p.Limit - len(sw.timestamps),
		ResetAt:   sw.timestamps[0].Add(p.Window),
	}, nil
}

// Sweep drops keys whose windows are empty and returns how many were removed.
func (m *MemoryLimiter) Sweep() int {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.now()
	removed := 0
	for key, sw := range m.windows {
		sw.cleanup(now)
		if len(sw.timestamps) == 0 {
			delete(m.windows, key)
			removed++
		}
	}
	return removed
}

// Len is the number of tracked keys.
func (m *MemoryLimiter) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.windows)
}

// cleanup removes timestamps that fell out of the window.
func (sw *slidingWindow) cleanup(now time.Time) {
	cutoff := now.Add(-sw.window)
	i := 0
	for ; i < len(sw.timestamps); i++ {
		if sw.timestamps[i].After(cutoff) {
			break
		}
	}
	sw.timestamps = sw.timestamps[i:]
}
