package m_product

import (
	"cloud.google.com/go/spanner"
)

// Model provides a facade for type-safe operations on the products table.
type Model struct{}

// NewModel creates a new Model instance.
func NewModel() *Model {
	return &Model{}
}

// AllColumns returns the column list for full-row reads.
func AllColumns() []string {
	return []string{
		ProductID,
		Name,
		Description,
		Category,
		PriceNumerator,
		PriceDenominator,
		Image,
		Sizes,
		Discount,
		CreatedAt,
		UpdatedAt,
	}
}

// InsertMut creates a Spanner mutation for inserting a product row.
// Only test fixtures and seed tooling write products; serving paths are read-only.
func (m *Model) InsertMut(data *Data) *spanner.Mutation {
	return spanner.InsertOrUpdate(
		TableName,
		AllColumns(),
		[]interface{}{
			data.ProductID,
			data.Name,
			data.Description,
			data.Category,
			data.PriceNumerator,
			data.PriceDenominator,
			data.Image,
			data.Sizes,
			data.Discount,
			spanner.CommitTimestamp,
			spanner.CommitTimestamp,
		},
	)
}

// DeleteMut creates a Spanner mutation for deleting a product row.
func (m *Model) DeleteMut(productID int64) *spanner.Mutation {
	return spanner.Delete(TableName, spanner.Key{productID})
}
