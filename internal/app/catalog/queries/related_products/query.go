package related_products

import (
	"context"

	"github.com/light-bringer/cartsync-service/internal/app/catalog/contracts"
)

// DefaultLimit is the number of related products returned when the caller
// does not override it.
const DefaultLimit = 4

// Request identifies the product whose neighbors should be listed.
type Request struct {
	Category  string
	ExcludeID int64
	Limit     int
}

// Query handles the related products query use case.
type Query struct {
	readModel contracts.ReadModel
}

// NewQuery creates a new related products query.
func NewQuery(readModel contracts.ReadModel) *Query {
	return &Query{
		readModel: readModel,
	}
}

// Execute retrieves products related by category, topped up with recent
// products when the category is sparse.
func (q *Query) Execute(ctx context.Context, req *Request) ([]*contracts.ProductDTO, error) {
	limit := req.Limit
	if limit <= 0 {
		limit = DefaultLimit
	}
	return q.readModel.RelatedProducts(ctx, req.Category, req.ExcludeID, limit)
}
