package services

import (
	"github.com/go-redis/redis/v8"
	"github.com/sirupsen/logrus"

	"github.com/light-bringer/cartsync-service/internal/app/cart/local"
	cartsync "github.com/light-bringer/cartsync-service/internal/app/cart/sync"
	"github.com/light-bringer/cartsync-service/internal/client/cartapi"
	"github.com/light-bringer/cartsync-service/internal/client/identity"
	"github.com/light-bringer/cartsync-service/internal/client/payment"
	"github.com/light-bringer/cartsync-service/internal/config"
	"github.com/light-bringer/cartsync-service/internal/pkg/clock"
	"github.com/light-bringer/cartsync-service/internal/pkg/stash"
)

// CheckoutOptions holds the checkout-side collaborators: the stash carrying
// carts across the login boundary, the cart persistence client, the identity
// verifier and the payment gateway. They are shared; the local store and its
// coordinator are per visitor session.
type CheckoutOptions struct {
	Stash    stash.Stash
	CartAPI  cartsync.CartAPI
	Verifier cartsync.Verifier
	Gateway  cartsync.Gateway

	clk    clock.Clock
	logger *logrus.Logger
}

// NewCheckoutOptions wires the checkout collaborators from configuration.
func NewCheckoutOptions(cfg *config.Config, redisClient *redis.Client, logger *logrus.Logger) *CheckoutOptions {
	return &CheckoutOptions{
		Stash:    stash.NewRedisStash(redisClient, cfg.StashTTL),
		CartAPI:  cartapi.NewClient(cfg.CartAPIBaseURL, logger),
		Verifier: identity.NewClient(cfg.IdentityVerifyURL),
		Gateway: payment.NewClient(payment.Config{
			RegisterURL: cfg.PaymentRegisterURL,
			Username:    cfg.PaymentUsername,
			Password:    cfg.PaymentPassword,
			Currency:    cfg.PaymentCurrency,
			ReturnURL:   cfg.PaymentReturnURL,
			FailURL:     cfg.PaymentFailURL,
		}),
		clk:    clock.NewRealClock(),
		logger: logger,
	}
}

// NewCoordinator creates a coordinator over a fresh local cart.
func (o *CheckoutOptions) NewCoordinator() (*local.Store, *cartsync.Coordinator) {
	store := local.NewStore(o.clk)
	return store, cartsync.NewCoordinator(store, o.CartAPI, o.Verifier, o.Stash, o.Gateway, o.logger)
}
