// Package config loads service configuration from the environment.
package config

import (
	"time"

	"github.com/kelseyhightower/envconfig"
	"github.com/pkg/errors"
)

// Config holds all service settings. Values come from CARTSYNC_* environment
// variables.
type Config struct {
	// SpannerDB is the full database path:
	// projects/<p>/instances/<i>/databases/<d>
	SpannerDB string `envconfig:"SPANNER_DB" required:"true"`

	HTTPPort string `envconfig:"HTTP_PORT" default:"8080"`

	RedisAddr     string `envconfig:"REDIS_ADDR" default:"localhost:6379"`
	RedisPassword string `envconfig:"REDIS_PASSWORD"`

	IdentityVerifyURL string `envconfig:"IDENTITY_VERIFY_URL" required:"true"`

	// CartAPIBaseURL is where the sync coordinator persists carts. It defaults
	// to this service's own API for single-node deployments.
	CartAPIBaseURL string `envconfig:"CART_API_URL" default:"http://localhost:8080/api/v1"`

	RevalidationToken string `envconfig:"REVALIDATION_TOKEN" required:"true"`

	PaymentRegisterURL string `envconfig:"PAYMENT_REGISTER_URL"`
	PaymentUsername    string `envconfig:"PAYMENT_USERNAME"`
	PaymentPassword    string `envconfig:"PAYMENT_PASSWORD"`
	PaymentCurrency    string `envconfig:"PAYMENT_CURRENCY" default:"788"`
	PaymentReturnURL   string `envconfig:"PAYMENT_RETURN_URL"`
	PaymentFailURL     string `envconfig:"PAYMENT_FAIL_URL"`

	PageCacheTTL time.Duration `envconfig:"PAGE_CACHE_TTL" default:"5m"`
	StashTTL     time.Duration `envconfig:"STASH_TTL" default:"30m"`

	LogLevel string `envconfig:"LOG_LEVEL" default:"info"`
}

// Load reads the configuration from the environment.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("cartsync", &cfg); err != nil {
		return nil, errors.Wrap(err, "failed to load configuration")
	}
	return &cfg, nil
}
