package m_cart

import (
	"cloud.google.com/go/spanner"
)

// Model provides a facade for type-safe operations on the carts table.
type Model struct{}

// NewModel creates a new Model instance.
func NewModel() *Model {
	return &Model{}
}

// UpsertMut creates a Spanner mutation that creates the cart row if absent and
// fully replaces it otherwise. Replaying the same data produces the same end
// state, which keeps the operation idempotent for retries.
func (m *Model) UpsertMut(data *Data) *spanner.Mutation {
	return spanner.InsertOrUpdate(
		TableName,
		[]string{
			OwnerID,
			Items,
			CreatedAt,
			UpdatedAt,
		},
		[]interface{}{
			data.OwnerID,
			data.Items,
			spanner.CommitTimestamp,
			spanner.CommitTimestamp,
		},
	)
}

// DeleteMut creates a Spanner mutation for deleting a cart.
// Deleting an absent row is not an error.
func (m *Model) DeleteMut(ownerID string) *spanner.Mutation {
	return spanner.Delete(TableName, spanner.Key{ownerID})
}
