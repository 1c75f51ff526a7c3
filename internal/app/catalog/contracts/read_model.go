package contracts

import (
	"context"
	"time"
)

// ProductDTO is a data transfer object for catalog queries.
type ProductDTO struct {
	ProductID   int64
	Name        string
	Description string
	Category    string
	Price       float64 // Approximate representation for display
	Image       string
	Sizes       []string
	Discount    *int64
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Sort directions accepted by ListFilter.Order.
const (
	OrderAsc  = "asc"
	OrderDesc = "desc"
)

// ListFilter defines filtering and pagination options for listing products.
// Page is 1-based; Limit is clamped to sane bounds by the read model.
type ListFilter struct {
	Category string
	Page     int
	Limit    int
	SortBy   string
	Order    string
}

// ListResult contains paginated product list results.
type ListResult struct {
	Products   []*ProductDTO
	Page       int
	TotalCount int64
}

// CategoryDTO is a single distinct category.
type CategoryDTO struct {
	Category string
}

// ReadModel defines the interface for catalog queries. The catalog store is an
// external collaborator; this service only ever reads it.
type ReadModel interface {
	// GetProductByID retrieves a product DTO by ID
	GetProductByID(ctx context.Context, productID int64) (*ProductDTO, error)

	// ListProducts retrieves a paginated list of products with filtering
	ListProducts(ctx context.Context, filter *ListFilter) (*ListResult, error)

	// ListCategories retrieves the distinct categories
	ListCategories(ctx context.Context) ([]*CategoryDTO, error)

	// SearchProducts retrieves products whose name or description contains
	// the query substring, case-insensitively
	SearchProducts(ctx context.Context, queryText string) ([]*ProductDTO, error)

	// RelatedProducts retrieves up to limit products sharing the category,
	// excluding excludeID, topped up with the most recent products when the
	// category yields fewer than limit matches
	RelatedProducts(ctx context.Context, category string, excludeID int64, limit int) ([]*ProductDTO, error)
}
