// Package pagecache is a Redis-backed response cache keyed by request path.
// It is strictly best-effort: cache failures degrade to a miss and never fail
// the request.
package pagecache

import (
	"context"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/sirupsen/logrus"
)

// DefaultTTL bounds how long a cached response is served before the origin is
// consulted again.
const DefaultTTL = 5 * time.Minute

// Cache stores rendered responses by path.
type Cache interface {
	// Get returns the cached body and whether it was present.
	Get(ctx context.Context, path string) ([]byte, bool)

	// Set stores the body for the path.
	Set(ctx context.Context, path string, body []byte)

	// Invalidate drops the cached entries for the path, including any
	// query-string variants stored under it.
	Invalidate(ctx context.Context, path string)
}

// RedisCache is the Redis-backed Cache.
type RedisCache struct {
	client *redis.Client
	ttl    time.Duration
	logger *logrus.Logger
}

// NewRedisCache creates a cache over the given Redis client. A non-positive
// ttl falls back to DefaultTTL.
func NewRedisCache(client *redis.Client, ttl time.Duration, logger *logrus.Logger) *RedisCache {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &RedisCache{
		client: client,
		ttl:    ttl,
		logger: logger,
	}
}

func cacheKey(path string) string {
	return "page:" + path
}

// Get returns the cached body for the path. Any Redis failure is a miss.
func (c *RedisCache) Get(ctx context.Context, path string) ([]byte, bool) {
	body, err := c.client.Get(ctx, cacheKey(path)).Bytes()
	if err == redis.Nil {
		return nil, false
	}
	if err != nil {
		c.logger.WithError(err).WithField("path", path).Warn("Page cache read failed")
		return nil, false
	}
	return body, true
}

// Set stores the body for the path. Failures are logged and swallowed.
func (c *RedisCache) Set(ctx context.Context, path string, body []byte) {
	if err := c.client.Set(ctx, cacheKey(path), body, c.ttl).Err(); err != nil {
		c.logger.WithError(err).WithField("path", path).Warn("Page cache write failed")
	}
}

// Invalidate drops the cached entries for the path. Responses are cached by
// full request URI, so every query-string variant of the path has to go too.
// Failures are logged and swallowed; entries expire on their own.
func (c *RedisCache) Invalidate(ctx context.Context, path string) {
	var cursor uint64
	for {
		keys, next, err := c.client.Scan(ctx, cursor, cacheKey(path)+"*", 100).Result()
		if err != nil {
			c.logger.WithError(err).WithField("path", path).Warn("Page cache invalidation failed")
			return
		}
		if len(keys) > 0 {
			if err := c.client.Del(ctx, keys...).Err(); err != nil {
				c.logger.WithError(err).WithField("path", path).Warn("Page cache invalidation failed")
				return
			}
		}
		if next == 0 {
			return
		}
		cursor = next
	}
}
