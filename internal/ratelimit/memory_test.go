package ratelimit

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
)

type MemoryLimiterSuite struct {
	suite.Suite
	limiter *MemoryLimiter
	clock   time.Time
	ctx     context.Context
}

func TestMemoryLimiterSuite(t *testing.T) {
	suite.Run(t, new(MemoryLimiterSuite))
}

func (s *MemoryLimiterSuite) SetupTest() {
	s.clock = time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	s.limiter = NewMemoryLimiter()
	s.limiter.now = func() time.Time { return s.clock }
	s.ctx = context.Background()
}

func (s *MemoryLimiterSuite) advance(d time.Duration) { s.clock = s.clock.Add(d) }

func (s *MemoryLimiterSuite) TestSixthRequestDenied() {
	p := Policy{Name: "ip", Limit: 5, Window: 10 * time.Minute}
	for i := 0; i < 5; i++ {
		res, err := s.limiter.Allow(s.ctx, "subscribe:ip:1.2.3.4", p)
		s.Require().NoError(err)
		s.True(res.Allowed, "request %d", i+1)
		s.Equal(4-i, res.Remaining)
	}

	res, err := s.limiter.Allow(s.ctx, "subscribe:ip:1.2.3.4", p)
	s.Require().NoError(err)
	s.False(res.Allowed)
	s.Equal(0, res.Remaining)
	s.Equal(10*time.Minute, res.RetryAfter(s.clock))
}

func (s *MemoryLimiterSuite) TestWindowSlides() {
	p := Policy{Limit: 2, Window: time.Minute}

	_, _ = s.limiter.Allow(s.ctx, "k", p)
	s.advance(30 * time.Second)
	_, _ = s.limiter.Allow(s.ctx, "k", p)

	res, _ := s.limiter.Allow(s.ctx, "k", p)
	s.False(res.Allowed)

	// First request leaves the window, second is still counted.
	s.advance(31 * time.Second)
	res, _ = s.limiter.Allow(s.ctx, "k", p)
	s.True(res.Allowed)
	res, _ = s.limiter.Allow(s.ctx, "k", p)
	s.False(res.Allowed)
}

func (s *MemoryLimiterSuite) TestKeysAreIndependent() {
	p := Policy{Limit: 1, Window: time.Hour}
	a, _ := s.limiter.Allow(s.ctx, "subscribe:email:a@example.com", p)
	b, _ := s.limiter.Allow(s.ctx, "subscribe:email:b@example.com", p)
	s.True(a.Allowed)
	s.True(b.Allowed)
}

func (s *MemoryLimiterSuite) TestDeniedRequestsAreNotCounted() {
	p := Policy{Limit: 1, Window: time.Minute}
	_, _ = s.limiter.Allow(s.ctx, "k", p)
	for i := 0; i < 10; i++ {
		_, _ = s.limiter.Allow(s.ctx, "k", p)
	}
	s.advance(61 * time.Second)
	res, _ := s.limiter.Allow(s.ctx, "k", p)
	s.True(res.Allowed)
}

func (s *MemoryLimiterSuite) TestSweep() {
	p := Policy{Limit: 3, Window: time.Minute}
	_, _ = s.limiter.Allow(s.ctx, "old", p)
	s.advance(2 * time.Minute)
	_, _ = s.limiter.Allow(s.ctx, "fresh", p)

	s.Equal(2, s.limiter.Len())
	s.Equal(1, s.limiter.Sweep())
	s.Equal(1, s.limiter.Len())

	s.advance(2 * time.Minute)
	s.Equal(1, s.limiter.Sweep())
	s.Equal(0, s.limiter.Len())
}

func (s *MemoryLimiterSuite) TestConcurrent() {
	p := Policy{Limit: 50, Window: time.Minute}
	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		allowed int
	)
	for i := 0; i < 200; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			res, err := s.limiter.Allow(s.ctx, "shared", p)
			if err == nil && res.Allowed {
				mu.Lock()
				allowed++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()
	s.Equal(50, allowed)
}
