package ratelimit

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const defaultPrefix = "creatorailab:ratelimit:"

// slidingWindowScript trims the sorted set to the window, then admits the
// request when fewer than limit members remain.
// KEYS[1]=key ARGV: now_ms window_ms limit member
// Returns {allowed, count, oldest_ms}.
var slidingWindowScript = redis.NewScript(`
local key = KEYS[1]
local now = tonumber(ARGV[1])
local window = tonumber(ARGV[2])
local limit = tonumber(ARGV[3])

redis.call('ZREMRANGEBYSCORE', key, '-inf', now - window)
local count = redis.call('ZCARD', key)
local allowed = 0
if count < limit then
  redis.call('ZADD', key, now, ARGV[4])
  count = count + 1
  allowed = 1
end
redis.call('PEXPIRE', key, window)

local oldest = redis.call('ZRANGE', key, 0, 0, 'WITHSCORES')
local oldestScore = now
if oldest[2] then
  oldestScore = tonumber(oldest[2])
end
return {allowed, count, oldestScore}
`)

// RedisLimiter shares counters across replicas through Redis sorted sets.
type RedisLimiter struct {
	rdb    redis.UniversalClient
	prefix string
}

func NewRedisLimiter(rdb redis.UniversalClient) *RedisLimiter {
	return &RedisLimiter{rdb: rdb, prefix: defaultPrefix}
}

func (l *RedisLimiter) Allow(ctx context.Context, key string, p Policy) (Result, error) {
	now := time.Now()
	nowMs := now.UnixMilli()
	member := fmt.Sprintf("%d-%s", nowMs, uuid.NewString())

	vals, err := slidingWindowScript.Run(ctx, l.rdb,
		[]string{l.prefix + key},
		nowMs, p.Window.Milliseconds(), p.Limit, member,
	).Int64Slice()
	if err != nil {
		return Result{}, fmt.Errorf("ratelimit %s: %w", key, err)
	}
	if len(vals) != 3 {
		return Result{}, fmt.Errorf("ratelimit %s: unexpected script reply %v", key, vals)
	}

	allowed := vals[0] == 1
	remaining := p.Limit - int(vals[1])
	if !allowed || remaining < 0 {
		remaining = 0
	}
	return Result{
		Allowed:   allowed,
		Limit:     p.Limit,
		Remaining: remaining,
		ResetAt:   time.UnixMilli(vals[2]).Add(p.Window),
	}, nil
}
