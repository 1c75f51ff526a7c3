// Package sync decides when local cart state crosses to the server. Mutations
// never block on the network; persistence happens at the checkout boundary.
package sync

import (
	"context"
	"sync"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/light-bringer/cartsync-service/internal/app/cart/domain"
	"github.com/light-bringer/cartsync-service/internal/app/cart/local"
	"github.com/light-bringer/cartsync-service/internal/client/payment"
	"github.com/light-bringer/cartsync-service/internal/pkg/stash"
)

// ErrEmptyCart indicates checkout was attempted with nothing in the cart.
var ErrEmptyCart = errors.New("cannot check out an empty cart")

// Action tells the caller what to do after a checkout attempt.
type Action int

const (
	// ActionRedirectLogin sends the visitor to sign in; the cart is stashed.
	ActionRedirectLogin Action = iota
	// ActionProceed continues to checkout; the cart is persisted.
	ActionProceed
)

// Decision is the outcome of a checkout attempt.
type Decision struct {
	Action  Action
	OwnerID string
}

// Session identifies the caller across the login boundary.
type Session struct {
	// Token is the bearer credential, empty for anonymous visitors.
	Token string
	// ID is the opaque session key used for stashing.
	ID string
}

// CartAPI is the persistence boundary the coordinator syncs through.
type CartAPI interface {
	Fetch(ctx context.Context, token string) ([]*domain.LineItem, error)
	Upsert(ctx context.Context, token string, items []*domain.LineItem) error
	Remove(ctx context.Context, token string) error
}

// Verifier resolves a bearer token to an owner ID.
type Verifier interface {
	Verify(ctx context.Context, token string) (string, error)
}

// Gateway registers orders for payment.
type Gateway interface {
	Register(ctx context.Context, orderNumber string, amount *domain.Money) (*payment.Session, error)
}

// Coordinator owns the local-to-server sync lifecycle.
type Coordinator struct {
	store    *local.Store
	api      CartAPI
	verifier Verifier
	stash    stash.Stash
	gateway  Gateway
	logger   *logrus.Logger

	mu        sync.Mutex
	syncedFP  string
	syncedSet bool
}

// NewCoordinator creates a sync coordinator over the given collaborators.
func NewCoordinator(store *local.Store, api CartAPI, verifier Verifier, st stash.Stash, gateway Gateway, logger *logrus.Logger) *Coordinator {
	return &Coordinator{
		store:    store,
		api:      api,
		verifier: verifier,
		stash:    st,
		gateway:  gateway,
		logger:   logger,
	}
}

// Checkout runs the checkout trigger. Anonymous visitors get their cart
// stashed and a login redirect; authenticated visitors get their cart
// persisted and may proceed. An upsert failure keeps the visitor on the cart
// with local state intact.
func (c *Coordinator) Checkout(ctx context.Context, session Session) (*Decision, error) {
	if c.store.IsEmpty() {
		return nil, ErrEmptyCart
	}

	ownerID, err := c.verifier.Verify(ctx, session.Token)
	if err != nil {
		if errors.Is(err, domain.ErrNotAuthenticated) {
			return c.stashAndRedirect(ctx, session)
		}
		return nil, errors.Wrap(err, "failed to verify session")
	}

	if err := c.store.AssignOwner(ownerID); err != nil {
		return nil, err
	}

	if err := c.Sync(ctx, session.Token); err != nil {
		return nil, err
	}

	return &Decision{Action: ActionProceed, OwnerID: ownerID}, nil
}

// Sync persists the current local items. Already-synced content is a no-op.
// If the cart changed while the upsert was in flight, the result is treated
// as stale and the cart stays unsynced.
func (c *Coordinator) Sync(ctx context.Context, token string) error {
	fp := c.store.Fingerprint()
	if c.IsSynced() {
		return nil
	}

	items := c.store.Snapshot()
	if err := c.api.Upsert(ctx, token, items); err != nil {
		c.logger.WithError(err).Warn("Cart sync failed")
		return errors.Wrap(domain.ErrSyncFailed, err.Error())
	}

	current := c.store.Fingerprint()
	if current != fp {
		c.logger.WithFields(logrus.Fields{
			"synced_fingerprint":  fp,
			"current_fingerprint": current,
		}).Info("Cart changed during sync, marking unsynced")
		return nil
	}

	c.mu.Lock()
	c.syncedFP = fp
	c.syncedSet = true
	c.mu.Unlock()
	return nil
}

// IsSynced reports whether the current cart content matches the last
// successful sync.
func (c *Coordinator) IsSynced() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.syncedSet && c.syncedFP == c.store.Fingerprint()
}

// ResumeAfterLogin merges a stashed pre-login cart back into the local cart
// and syncs the union. A missing stash is not an error; whatever is local
// still syncs.
func (c *Coordinator) ResumeAfterLogin(ctx context.Context, session Session) error {
	ownerID, err := c.verifier.Verify(ctx, session.Token)
	if err != nil {
		return errors.Wrap(err, "failed to verify session")
	}
	if err := c.store.AssignOwner(ownerID); err != nil {
		return err
	}

	stashed, err := c.stash.Take(ctx, session.ID)
	if err != nil && !errors.Is(err, stash.ErrNotFound) {
		return errors.Wrap(err, "failed to recover stashed cart")
	}
	if len(stashed) > 0 {
		c.store.Merge(stashed)
	}

	if c.store.IsEmpty() {
		return nil
	}
	return c.Sync(ctx, session.Token)
}

// Restore replaces the local cart with the persisted one. Used when a
// returning visitor signs in on a fresh device.
func (c *Coordinator) Restore(ctx context.Context, token string) error {
	items, err := c.api.Fetch(ctx, token)
	if err != nil {
		return errors.Wrap(err, "failed to fetch persisted cart")
	}

	c.store.Replace(items)

	c.mu.Lock()
	c.syncedFP = c.store.Fingerprint()
	c.syncedSet = true
	c.mu.Unlock()
	return nil
}

// BeginPayment registers the cart total with the payment gateway and returns
// the hosted form session. The cart must be synced first.
func (c *Coordinator) BeginPayment(ctx context.Context, orderNumber string) (*payment.Session, error) {
	if c.store.IsEmpty() {
		return nil, ErrEmptyCart
	}
	if !c.IsSynced() {
		return nil, domain.ErrSyncFailed
	}

	return c.gateway.Register(ctx, orderNumber, c.store.TotalAmount())
}

// ConfirmOrder empties both sides of the cart after a completed order. The
// server-side delete is idempotent.
func (c *Coordinator) ConfirmOrder(ctx context.Context, token string) error {
	if err := c.api.Remove(ctx, token); err != nil {
		return errors.Wrap(err, "failed to clear persisted cart")
	}

	c.store.Clear()
	c.store.SetVisibility(false)

	c.mu.Lock()
	c.syncedFP = c.store.Fingerprint()
	c.syncedSet = true
	c.mu.Unlock()
	return nil
}

// stashAndRedirect parks the cart for the session and closes the drawer so
// the login page is unobstructed.
func (c *Coordinator) stashAndRedirect(ctx context.Context, session Session) (*Decision, error) {
	if err := c.stash.Put(ctx, session.ID, c.store.Snapshot()); err != nil {
		return nil, errors.Wrap(err, "failed to stash cart before login")
	}

	c.store.SetVisibility(false)
	c.logger.WithField("session_id", session.ID).Info("Stashed cart pending login")

	return &Decision{Action: ActionRedirectLogin}, nil
}
