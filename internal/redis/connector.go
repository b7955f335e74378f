// Package redis connects the optional Redis backend shared by the page cache
// and the rate limiter.
package redis

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/zainmh-10/CreateAILab/internal/logger"
)

const (
	firstBackoff = 250 * time.Millisecond
	maxBackoff   = 5 * time.Second
	pingTimeout  = 2 * time.Second
)

// Options configures the client and how long startup waits for the first PING.
type Options struct {
	Addr           string
	Username       string
	Password       string
	DB             int
	PoolSize       int
	DialTimeout    time.Duration
	IOTimeout      time.Duration // read and write
	ConnectTimeout time.Duration // total wait for the first successful PING
}

// Connect returns nil when Addr is empty.
//
// Otherwise it pings with capped exponential backoff until ConnectTimeout.
// A Redis that never answers is logged and the client is returned anyway:
// go-redis reconnects lazily, the rate limiter fails open and the page cache
// misses until the server is back. Readiness reports it as down meanwhile.
func Connect(ctx context.Context, opts Options, log logger.Logger) *redis.Client {
	if opts.Addr == "" {
		log.Info("redis not configured, page cache disabled")
		return nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:         opts.Addr,
		Username:     opts.Username,
		Password:     opts.Password,
		DB:           opts.DB,
		PoolSize:     opts.PoolSize,
		DialTimeout:  opts.DialTimeout,
		ReadTimeout:  opts.IOTimeout,
		WriteTimeout: opts.IOTimeout,
	})

	log = log.With(logger.String("addr", opts.Addr))
	attempts, err := waitReady(ctx, client, opts.ConnectTimeout)
	if err != nil {
		log.Warn("redis unreachable at startup, continuing degraded",
			logger.Int("attempts", attempts),
			logger.Duration("waited", opts.ConnectTimeout),
			logger.Error(err))
		return client
	}
	if attempts > 1 {
		log.Info("connected to redis after retry", logger.Int("attempts", attempts))
	} else {
		log.Info("connected to redis")
	}
	return client
}

// waitReady pings until one succeeds or timeout elapses. It returns the
// number of attempts and the last ping error.
func waitReady(ctx context.Context, client *redis.Client, timeout time.Duration) (int, error) {
	if timeout <= 0 {
		timeout = pingTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	wait := firstBackoff
	for attempt := 1; ; attempt++ {
		pingCtx, pingCancel := context.WithTimeout(ctx, pingTimeout)
		err := client.Ping(pingCtx).Err()
		pingCancel()
		if err == nil {
			return attempt, nil
		}

		timer := time.NewTimer(wait)
		select {
		case <-ctx.Done():
			timer.Stop()
			return attempt, err
		case <-timer.C:
		}
		wait = min(wait*2, maxBackoff)
	}
}
