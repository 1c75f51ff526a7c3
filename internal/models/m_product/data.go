package m_product

import (
	"time"

	"cloud.google.com/go/spanner"
)

// Data represents the database model for the products table.
// The catalog store is owned elsewhere; this service only reads it, plus seeds
// rows in tests.
type Data struct {
	ProductID        int64
	Name             string
	Description      spanner.NullString
	Category         string
	PriceNumerator   int64
	PriceDenominator int64
	Image            spanner.NullString
	Sizes            []string
	Discount         spanner.NullInt64
	CreatedAt        time.Time
	UpdatedAt        time.Time
}
