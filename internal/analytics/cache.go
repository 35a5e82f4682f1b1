package analytics

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const cacheVersionKey = "meubentin:analytics:version"

// Cache wraps Redis based caching of computed aggregates with versioning
// controls. Bumping the version invalidates every cached entry at once;
// orphaned entries expire through their TTL.
type Cache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewCache instantiates the cache helper. A nil client disables caching.
func NewCache(client *redis.Client, ttl time.Duration) *Cache {
	return &Cache{client: client, ttl: ttl}
}

// Version returns the current cache version, initialising when missing.
func (c *Cache) Version(ctx context.Context) (int64, error) {
	if c == nil || c.client == nil {
		return 0, nil
	}
	ver, err := c.client.Get(ctx, cacheVersionKey).Int64()
	if errors.Is(err, redis.Nil) {
		if err := c.client.Set(ctx, cacheVersionKey, 1, 0).Err(); err != nil {
			return 0, err
		}
		return 1, nil
	}
	if err != nil {
		return 0, err
	}
	return ver, nil
}

func (c *Cache) buildKey(ctx context.Context, suffix string) (string, error) {
	ver, err := c.Version(ctx)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("meubentin:analytics:%d:%s", ver, suffix), nil
}

// Get loads a cached aggregate into dst, reporting whether it was a hit.
func (c *Cache) Get(ctx context.Context, suffix string, dst any) (bool, error) {
	if c == nil || c.client == nil {
		return false, nil
	}
	key, err := c.buildKey(ctx, suffix)
	if err != nil {
		return false, err
	}
	data, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return false, nil
		}
		return false, err
	}
	if err := json.Unmarshal(data, dst); err != nil {
		return false, err
	}
	return true, nil
}

// Set stores an aggregate under the current version.
func (c *Cache) Set(ctx context.Context, suffix string, value any) error {
	if c == nil || c.client == nil {
		return nil
	}
	key, err := c.buildKey(ctx, suffix)
	if err != nil {
		return err
	}
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, key, data, c.ttl).Err()
}

// Bump advances the cache version, invalidating all cached aggregates.
func (c *Cache) Bump(ctx context.Context) error {
	if c == nil || c.client == nil {
		return nil
	}
	return c.client.Incr(ctx, cacheVersionKey).Err()
}
