package contracts

import (
	"context"
	"time"
)

// EventDTO is a data transfer object for outbox event queries.
type EventDTO struct {
	EventID     string
	EventType   string
	AggregateID string
	Payload     string
	Status      string
	CreatedAt   time.Time
	ProcessedAt *time.Time
}

// EventFilter defines filtering options for listing outbox events.
type EventFilter struct {
	EventType   string
	AggregateID string
	Status      string
	Limit       int
}

// EventList contains event list results.
type EventList struct {
	Events     []*EventDTO
	TotalCount int64
}

// EventReadModel defines the interface for outbox event queries.
// Read models can bypass the domain layer for performance.
type EventReadModel interface {
	// ListEvents retrieves recent outbox events with filtering
	ListEvents(ctx context.Context, filter *EventFilter) (*EventList, error)
}
