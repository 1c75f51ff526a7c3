package m_cart

// Field name constants for the carts table.
// These provide type-safe field references and prevent typos.
const (
	TableName = "carts"

	OwnerID   = "owner_id"
	Items     = "items"
	CreatedAt = "created_at"
	UpdatedAt = "updated_at"
)
