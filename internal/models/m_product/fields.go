package m_product

// Field name constants for the products table.
// These provide type-safe field references and prevent typos.
const (
	TableName = "products"

	ProductID        = "product_id"
	Name             = "name"
	Description      = "description"
	Category         = "category"
	PriceNumerator   = "price_numerator"
	PriceDenominator = "price_denominator"
	Image            = "image"
	Sizes            = "sizes"
	Discount         = "discount"
	CreatedAt        = "created_at"
	UpdatedAt        = "updated_at"
)
