package pagecache

import (
	"context"
	"io"
	"testing"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
)

// An unreachable Redis exercises the degrade path: every operation must be a
// silent miss or no-op.
func unreachableCache() *RedisCache {
	client := redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 50 * time.Millisecond,
	})
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return NewRedisCache(client, time.Minute, logger)
}

func TestRedisCache_DegradesOnFailure(t *testing.T) {
	cache := unreachableCache()
	ctx := context.Background()

	body, ok := cache.Get(ctx, "/api/v1/products")
	assert.False(t, ok)
	assert.Nil(t, body)

	assert.NotPanics(t, func() {
		cache.Set(ctx, "/api/v1/products", []byte(`{"products":[]}`))
		cache.Invalidate(ctx, "/api/v1/products")
	})
}
