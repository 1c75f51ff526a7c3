package list_events

import (
	"context"

	"github.com/light-bringer/cartsync-service/internal/app/cart/contracts"
)

// Query handles the list events query use case.
type Query struct {
	readModel contracts.EventReadModel
}

// NewQuery creates a new list events query.
func NewQuery(readModel contracts.EventReadModel) *Query {
	return &Query{
		readModel: readModel,
	}
}

// Execute retrieves recent outbox events matching the filter.
func (q *Query) Execute(ctx context.Context, filter *contracts.EventFilter) (*contracts.EventList, error) {
	return q.readModel.ListEvents(ctx, filter)
}
