package services

import (
	"io"
	"testing"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/light-bringer/cartsync-service/internal/config"
)

func TestNewCheckoutOptions(t *testing.T) {
	cfg := &config.Config{
		RedisAddr:          "localhost:6379",
		CartAPIBaseURL:     "http://localhost:8080/api/v1",
		IdentityVerifyURL:  "http://localhost:9000/api/auth/verify",
		PaymentRegisterURL: "https://gateway.example/register.do",
		PaymentCurrency:    "788",
		StashTTL:           30 * time.Minute,
	}
	redisClient := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
	defer redisClient.Close()

	logger := logrus.New()
	logger.SetOutput(io.Discard)

	opts := NewCheckoutOptions(cfg, redisClient, logger)
	require.NotNil(t, opts.Stash)
	require.NotNil(t, opts.CartAPI)
	require.NotNil(t, opts.Verifier)
	require.NotNil(t, opts.Gateway)

	t.Run("each session gets its own store and coordinator", func(t *testing.T) {
		storeA, coordA := opts.NewCoordinator()
		storeB, coordB := opts.NewCoordinator()
		require.NotNil(t, coordA)
		assert.NotSame(t, storeA, storeB)
		assert.NotSame(t, coordA, coordB)
		assert.True(t, storeA.IsEmpty())
	})
}
