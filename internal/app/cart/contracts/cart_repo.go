package contracts

import (
	"context"

	"cloud.google.com/go/spanner"

	"github.com/light-bringer/cartsync-service/internal/app/cart/domain"
)

// CartRepository defines the interface for cart persistence.
// Repositories return mutations, they don't apply them (Golden Mutation Pattern).
type CartRepository interface {
	// UpsertMut creates a mutation that fully replaces the owner's cart,
	// creating it when absent. The returned mutation is idempotent.
	UpsertMut(cart *domain.Cart) (*spanner.Mutation, error)

	// DeleteMut creates a mutation for deleting the owner's cart.
	// Deleting an absent cart is not an error.
	DeleteMut(ownerID string) *spanner.Mutation

	// GetByOwner retrieves the persisted cart, reconstructing the domain
	// aggregate. A missing row yields an empty cart, not an error.
	GetByOwner(ctx context.Context, ownerID string) (*domain.Cart, error)
}
