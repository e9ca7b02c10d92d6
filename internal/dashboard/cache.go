package dashboard

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"leadflow_backend/platform/logger"

	"github.com/redis/go-redis/v9"
)

const cacheVersionKey = "dashboard:version"

// Cache stores summaries under versioned keys. Bumping the version makes
// every older key unreachable; entries then expire on their own TTL.
// Read and write failures are logged and fall through to the loader.
type Cache struct {
	client *redis.Client
	ttl    time.Duration
	log    *logger.Logger
}

// NewCache returns a cache backed by client. A nil client disables caching.
func NewCache(client *redis.Client, ttl time.Duration, log *logger.Logger) *Cache {
	if log == nil {
		log = logger.Discard()
	}
	return &Cache{client: client, ttl: ttl, log: log}
}

// Version returns the current cache version, initialising when missing.
func (c *Cache) Version(ctx context.Context) (int64, error) {
	if c == nil || c.client == nil {
		return 0, nil
	}
	ver, err := c.client.Get(ctx, cacheVersionKey).Int64()
	if errors.Is(err, redis.Nil) {
		if err := c.client.SetNX(ctx, cacheVersionKey, 1, 0).Err(); err != nil {
			return 0, err
		}
		return c.client.Get(ctx, cacheVersionKey).Int64()
	}
	if err != nil {
		return 0, err
	}
	return ver, nil
}

// BuildKey composes a cache key carrying the current version.
func (c *Cache) BuildKey(ctx context.Context, parts ...string) (string, error) {
	joined := strings.Join(parts, ":")
	if c == nil || c.client == nil {
		return joined, nil
	}
	ver, err := c.Version(ctx)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%s:%d", joined, ver), nil
}

// FetchJSON loads a cached value into dest or populates it from loader.
func (c *Cache) FetchJSON(ctx context.Context, key string, dest any, loader func(context.Context) (any, error)) error {
	if loader == nil {
		return errors.New("cache: loader required")
	}
	if c != nil && c.client != nil {
		payload, err := c.client.Get(ctx, key).Bytes()
		switch {
		case err == nil:
			if err := json.Unmarshal(payload, dest); err == nil {
				return nil
			}
			c.log.Warn("dashboard cache entry unreadable", "key", key)
		case !errors.Is(err, redis.Nil):
			c.log.Warn("dashboard cache read failed", "key", key, "error", err)
		}
	}

	value, err := loader(ctx)
	if err != nil {
		return err
	}
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	if c != nil && c.client != nil {
		if err := c.client.Set(ctx, key, raw, c.ttl).Err(); err != nil {
			c.log.Warn("dashboard cache write failed", "key", key, "error", err)
		}
	}
	return json.Unmarshal(raw, dest)
}

// Bump invalidates every cached summary.
func (c *Cache) Bump(ctx context.Context) error {
	if c == nil || c.client == nil {
		return nil
	}
	return c.client.Incr(ctx, cacheVersionKey).Err()
}
