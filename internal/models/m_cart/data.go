package m_cart

import (
	"time"

	"cloud.google.com/go/spanner"
)

// Data represents the database model for the carts table.
// Items holds the full line-item list as a JSON document; a cart upsert
// replaces the document wholesale.
type Data struct {
	OwnerID   string
	Items     spanner.NullJSON
	CreatedAt time.Time
	UpdatedAt time.Time
}
