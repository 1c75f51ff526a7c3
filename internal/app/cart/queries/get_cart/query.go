package get_cart

import (
	"context"

	"github.com/light-bringer/cartsync-service/internal/app/cart/contracts"
	"github.com/light-bringer/cartsync-service/internal/app/cart/domain"
)

// Request contains the owner whose cart to retrieve.
type Request struct {
	OwnerID string
}

// Query handles the get cart query use case.
type Query struct {
	repo contracts.CartRepository
}

// NewQuery creates a new get cart query.
func NewQuery(repo contracts.CartRepository) *Query {
	return &Query{
		repo: repo,
	}
}

// Execute retrieves the owner's persisted cart. An absent cart comes back
// empty, never as an error.
func (q *Query) Execute(ctx context.Context, req *Request) (*domain.Cart, error) {
	if req.OwnerID == "" {
		return nil, domain.ErrEmptyOwner
	}
	return q.repo.GetByOwner(ctx, req.OwnerID)
}
