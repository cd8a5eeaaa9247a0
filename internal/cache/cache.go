// Package cache provides an optional redis-backed JSON cache for query results.
package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

// Cache wraps a redis client with JSON marshalling and a fixed TTL. Cache
// failures are logged and treated as misses so the store remains the source of
// truth.
type Cache struct {
	rdb *redis.Client
	ttl time.Duration
}

// New opens a redis-backed cache. An empty addr disables caching and returns
// nil, which all callers must tolerate.
func New(addr, password string, ttl time.Duration) *Cache {
	if addr == "" {
		return nil
	}
	return &Cache{
		rdb: redis.NewClient(&redis.Options{Addr: addr, Password: password}),
		ttl: ttl,
	}
}

// Get loads and unmarshals a cached value into dest, reporting whether a usable
// entry was found.
func (c *Cache) Get(ctx context.Context, key string, dest any) bool {
	data, err := c.rdb.Get(ctx, key).Bytes()
	if err != nil {
		return false
	}
	if err := json.Unmarshal(data, dest); err != nil {
		log.Warn().Err(err).Str("key", key).Msg("cache: discarding corrupt entry")
		return false
	}
	return true
}

// Set stores a value under key for the configured TTL.
func (c *Cache) Set(ctx context.Context, key string, value any) {
	data, err := json.Marshal(value)
	if err != nil {
		log.Warn().Err(err).Str("key", key).Msg("cache: failed to marshal value")
		return
	}
	if err := c.rdb.Set(ctx, key, data, c.ttl).Err(); err != nil {
		log.Warn().Err(err).Str("key", key).Msg("cache: failed to store value")
	}
}
