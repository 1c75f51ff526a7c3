package domain

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"sort"

	"github.com/light-bringer/cartsync-service/internal/pkg/clock"
)

// Field names for change tracking
const (
	FieldItems = "items"
)

// Cart is the aggregate for a shopping cart. Items are kept in insertion order
// and are unique by (ProductID, VariantKey): adding an existing pair increments
// its quantity in place rather than appending a duplicate entry.
//
// OwnerID is empty for an anonymous, local-only cart and set to the opaque
// identity token once the cart is associated with an authenticated user.
type Cart struct {
	ownerID string
	items   []*LineItem

	// Clock for time operations (injected for testability)
	clock clock.Clock

	// Change tracking for optimized repository updates
	changes *ChangeTracker

	// Domain events to be published
	events []DomainEvent
}

// NewCart creates an empty cart. ownerID may be empty for an anonymous cart.
func NewCart(ownerID string, clk clock.Clock) *Cart {
	return &Cart{
		ownerID: ownerID,
		items:   make([]*LineItem, 0),
		clock:   clk,
		changes: NewChangeTracker(),
		events:  make([]DomainEvent, 0),
	}
}

// ReconstructCart reconstitutes a Cart from storage.
func ReconstructCart(ownerID string, items []*LineItem, clk clock.Clock) *Cart {
	copied := make([]*LineItem, 0, len(items))
	for _, item := range items {
		copied = append(copied, item.Copy())
	}
	return &Cart{
		ownerID: ownerID,
		items:   copied,
		clock:   clk,
		changes: NewChangeTracker(),
		events:  make([]DomainEvent, 0),
	}
}

// OwnerID returns the identity token the cart is associated with, or empty.
func (c *Cart) OwnerID() string { return c.ownerID }

// AssignOwner associates the cart with an authenticated identity.
func (c *Cart) AssignOwner(ownerID string) error {
	if ownerID == "" {
		return ErrEmptyOwner
	}
	c.ownerID = ownerID
	return nil
}

// Items returns a deep copy of the current line items in insertion order.
func (c *Cart) Items() []*LineItem {
	out := make([]*LineItem, 0, len(c.items))
	for _, item := range c.items {
		out = append(out, item.Copy())
	}
	return out
}

// Len returns the number of distinct line items.
func (c *Cart) Len() int { return len(c.items) }

// IsEmpty returns true when the cart holds no items.
func (c *Cart) IsEmpty() bool { return len(c.items) == 0 }

// AddItem adds one unit of the given product snapshot. If an item with the
// same (ProductID, VariantKey) already exists its quantity is incremented in
// place; otherwise the snapshot is appended with quantity 1. Always succeeds.
func (c *Cart) AddItem(productID int64, variantKey, name string, price *Money, image, category string) error {
	if existing := c.find(ItemKey{ProductID: productID, VariantKey: variantKey}); existing != nil {
		existing.Quantity++
		c.changes.MarkDirty(FieldItems)
		return nil
	}

	item, err := NewLineItem(productID, variantKey, name, price, image, category, 1)
	if err != nil {
		return err
	}
	c.items = append(c.items, item)
	c.changes.MarkDirty(FieldItems)
	return nil
}

// Merge folds another item set into the cart: union by (ProductID, VariantKey)
// with quantities summed. Used when a stashed pending cart rejoins the local
// cart after login.
func (c *Cart) Merge(items []*LineItem) {
	for _, incoming := range items {
		if existing := c.find(incoming.Key()); existing != nil {
			existing.Quantity += incoming.Quantity
		} else {
			c.items = append(c.items, incoming.Copy())
		}
	}
	if len(items) > 0 {
		c.changes.MarkDirty(FieldItems)
	}
}

// RemoveItem removes the matching entry entirely, regardless of quantity.
// Removing a missing item is a no-op, not an error.
func (c *Cart) RemoveItem(key ItemKey) {
	for i, item := range c.items {
		if item.Key() == key {
			c.items = append(c.items[:i], c.items[i+1:]...)
			c.changes.MarkDirty(FieldItems)
			return
		}
	}
}

// UpdateQuantity adds delta (positive or negative) to the matching item's
// quantity. The result is clamped at a floor of 1: decrementing never removes
// an item, removal stays an explicit operation. Missing items are a no-op.
func (c *Cart) UpdateQuantity(key ItemKey, delta int64) {
	item := c.find(key)
	if item == nil {
		return
	}
	item.Quantity += delta
	if item.Quantity < 1 {
		item.Quantity = 1
	}
	c.changes.MarkDirty(FieldItems)
}

// Clear empties all items.
func (c *Cart) Clear() {
	if len(c.items) == 0 {
		return
	}
	c.items = c.items[:0]
	c.changes.MarkDirty(FieldItems)
}

// TotalAmount recomputes the cart total from the current items on every call.
func (c *Cart) TotalAmount() *Money {
	total := ZeroMoney()
	for _, item := range c.items {
		total = total.Add(item.Subtotal())
	}
	return total
}

// Fingerprint returns a deterministic digest of the item set. The sync
// coordinator compares fingerprints to detect whether local state moved while
// a persistence call was in flight.
func (c *Cart) Fingerprint() string {
	return FingerprintItems(c.items)
}

// FingerprintItems digests an item set independent of insertion order.
func FingerprintItems(items []*LineItem) string {
	lines := make([]string, 0, len(items))
	for _, item := range items {
		lines = append(lines, fmt.Sprintf("%d|%s|%d|%s", item.ProductID, item.VariantKey, item.Quantity, item.Price.String()))
	}
	sort.Strings(lines)

	h := sha256.New()
	for _, line := range lines {
		h.Write([]byte(line))
		h.Write([]byte{'\n'})
	}
	return hex.EncodeToString(h.Sum(nil))
}

// RecordUpserted emits the persistence event for a full-replace write.
func (c *Cart) RecordUpserted() {
	c.recordEvent(&CartUpsertedEvent{
		OwnerID:    c.ownerID,
		ItemCount:  len(c.items),
		Total:      c.TotalAmount().String(),
		UpsertedAt: c.clock.Now(),
	})
}

// RecordCleared emits the persistence event for a cart deletion.
func (c *Cart) RecordCleared() {
	c.recordEvent(&CartClearedEvent{
		OwnerID:   c.ownerID,
		ClearedAt: c.clock.Now(),
	})
}

// Changes exposes the dirty-field tracker.
func (c *Cart) Changes() *ChangeTracker { return c.changes }

// DomainEvents returns the recorded, not-yet-published events.
func (c *Cart) DomainEvents() []DomainEvent { return c.events }

// ClearEvents clears all recorded domain events (called after publishing).
func (c *Cart) ClearEvents() {
	c.events = make([]DomainEvent, 0)
}

func (c *Cart) find(key ItemKey) *LineItem {
	for _, item := range c.items {
		if item.Key() == key {
			return item
		}
	}
	return nil
}

func (c *Cart) recordEvent(event DomainEvent) {
	c.events = append(c.events, event)
}
