package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// KeyPrefixPage is the prefix for cached page bodies.
const KeyPrefixPage = "creatorailab:page:"

// PageKey returns the Redis key for a page path.
func PageKey(path string) string {
	return KeyPrefixPage + path
}

type Redis struct {
	client redis.UniversalClient
}

func NewRedis(client redis.UniversalClient) *Redis {
	return &Redis{client: client}
}

// Get returns the cached body; a miss is (nil, false, nil).
func (c *Redis) Get(ctx context.Context, path string) ([]byte, bool, error) {
	body, err := c.client.Get(ctx, PageKey(path)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("failed to get cached page: %w", err)
	}
	return body, true, nil
}

func (c *Redis) Set(ctx context.Context, path string, body []byte, ttl time.Duration) error {
	if err := c.client.Set(ctx, PageKey(path), body, ttl).Err(); err != nil {
		return fmt.Errorf("failed to cache page: %w", err)
	}
	return nil
}

// Invalidate removes the given paths in one round trip.
func (c *Redis) Invalidate(ctx context.Context, paths ...string) error {
	if len(paths) == 0 {
		return nil
	}
	keys := make([]string, 0, len(paths))
	for _, p := range paths {
		keys = append(keys, PageKey(p))
	}
	if err := c.client.Del(ctx, keys...).Err(); err != nil {
		return fmt.Errorf("failed to invalidate pages: %w", err)
	}
	return nil
}
