//go:build integration

package ratelimit

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zainmh-10/CreateAILab/internal/testutil/containers"
)

func TestRedisLimiter(t *testing.T) {
	rc := containers.NewRedisContainer(t)
	ctx := context.Background()
	l := NewRedisLimiter(rc.Client)

	p := Policy{Name: "email", Limit: 3, Window: 24 * time.Hour}
	for i := 0; i < 3; i++ {
		res, err := l.Allow(ctx, "subscribe:email:a@example.com", p)
		require.NoError(t, err)
		assert.True(t, res.Allowed)
		assert.Equal(t, 2-i, res.Remaining)
	}

	res, err := l.Allow(ctx, "subscribe:email:a@example.com", p)
	require.NoError(t, err)
	assert.False(t, res.Allowed)
	assert.True(t, res.ResetAt.After(time.Now()))

	ttl, err := rc.Client.PTTL(ctx, defaultPrefix+"subscribe:email:a@example.com").Result()
	require.NoError(t, err)
	assert.Greater(t, ttl, time.Duration(0))

	other, err := l.Allow(ctx, "subscribe:email:b@example.com", p)
	require.NoError(t, err)
	assert.True(t, other.Allowed)
}

func TestRedisLimiterWindowExpiry(t *testing.T) {
	rc := containers.NewRedisContainer(t)
	ctx := context.Background()
	l := NewRedisLimiter(rc.Client)

	p := Policy{Limit: 1, Window: 300 * time.Millisecond}
	first, err := l.Allow(ctx, "k", p)
	require.NoError(t, err)
	require.True(t, first.Allowed)

	second, err := l.Allow(ctx, "k", p)
	require.NoError(t, err)
	require.False(t, second.Allowed)

	time.Sleep(400 * time.Millisecond)
	third, err := l.Allow(ctx, "k", p)
	require.NoError(t, err)
	assert.True(t, third.Allowed)
}
