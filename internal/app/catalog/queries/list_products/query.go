package list_products

import (
	"context"

	"github.com/light-bringer/cartsync-service/internal/app/catalog/contracts"
)

// Request contains filtering and pagination parameters.
type Request struct {
	Category string
	Page     int
	Limit    int
	SortBy   string
	Order    string
}

// Query handles the list products query use case.
type Query struct {
	readModel contracts.ReadModel
}

// NewQuery creates a new list products query.
func NewQuery(readModel contracts.ReadModel) *Query {
	return &Query{
		readModel: readModel,
	}
}

// Execute retrieves a paginated list of products with filtering.
func (q *Query) Execute(ctx context.Context, req *Request) (*contracts.ListResult, error) {
	filter := &contracts.ListFilter{
		Category: req.Category,
		Page:     req.Page,
		Limit:    req.Limit,
		SortBy:   req.SortBy,
		Order:    req.Order,
	}

	return q.readModel.ListProducts(ctx, filter)
}
