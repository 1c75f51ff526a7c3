package search_products

import (
	"context"

	"github.com/light-bringer/cartsync-service/internal/app/catalog/contracts"
)

// Request contains the search text.
type Request struct {
	Query string
}

// Query handles the product search query use case.
type Query struct {
	readModel contracts.ReadModel
}

// NewQuery creates a new product search query.
func NewQuery(readModel contracts.ReadModel) *Query {
	return &Query{
		readModel: readModel,
	}
}

// Execute retrieves products matching the search text by name or description.
func (q *Query) Execute(ctx context.Context, req *Request) ([]*contracts.ProductDTO, error) {
	return q.readModel.SearchProducts(ctx, req.Query)
}
