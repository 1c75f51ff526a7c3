// Package local holds the in-process cart state that the storefront mutates
// between syncs. All mutations happen here first; persistence is deferred to
// the sync coordinator.
package local

import (
	"sync"

	"github.com/light-bringer/cartsync-service/internal/app/cart/domain"
	"github.com/light-bringer/cartsync-service/internal/pkg/clock"
)

// Store is a concurrency-safe holder for the working cart. The zero visibility
// state is closed.
type Store struct {
	mu    sync.Mutex
	cart  *domain.Cart
	clock clock.Clock
	open  bool
}

// NewStore creates an empty local cart store.
func NewStore(clk clock.Clock) *Store {
	return &Store{
		cart:  domain.NewCart("", clk),
		clock: clk,
	}
}

// AddItem adds one unit of the product variant, incrementing quantity when the
// same identity is already present.
func (s *Store) AddItem(productID int64, variantKey, name string, price *domain.Money, image, category string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cart.AddItem(productID, variantKey, name, price, image, category)
}

// RemoveItem removes the whole line for the identity. Missing identities are
// a no-op.
func (s *Store) RemoveItem(key domain.ItemKey) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cart.RemoveItem(key)
}

// UpdateQuantity applies a signed delta to the line's quantity, clamped at 1.
func (s *Store) UpdateQuantity(key domain.ItemKey, delta int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cart.UpdateQuantity(key, delta)
}

// Clear empties the cart.
func (s *Store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cart.Clear()
}

// Replace swaps the cart contents for the given items, deep-copying them.
func (s *Store) Replace(items []*domain.LineItem) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cart = domain.ReconstructCart(s.cart.OwnerID(), items, s.clock)
}

// Merge unions the given items into the cart, summing quantities on identity
// collisions.
func (s *Store) Merge(items []*domain.LineItem) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cart.Merge(items)
}

// AssignOwner stamps the cart with the authenticated owner.
func (s *Store) AssignOwner(ownerID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cart.AssignOwner(ownerID)
}

// Snapshot returns a deep copy of the current items so callers can read and
// serialize without holding the lock.
func (s *Store) Snapshot() []*domain.LineItem {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cart.Items()
}

// TotalAmount returns the current cart total.
func (s *Store) TotalAmount() *domain.Money {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cart.TotalAmount()
}

// Len returns the number of distinct lines.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cart.Len()
}

// IsEmpty reports whether the cart has no lines.
func (s *Store) IsEmpty() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cart.IsEmpty()
}

// Fingerprint returns the content fingerprint of the current items.
func (s *Store) Fingerprint() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cart.Fingerprint()
}

// ToggleVisibility flips the cart drawer open state and returns the new state.
func (s *Store) ToggleVisibility() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.open = !s.open
	return s.open
}

// SetVisibility forces the drawer open state.
func (s *Store) SetVisibility(open bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.open = open
}

// IsOpen reports whether the cart drawer is open.
func (s *Store) IsOpen() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.open
}
