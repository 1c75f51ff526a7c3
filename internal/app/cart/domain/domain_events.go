package domain

import "time"

// DomainEvent is the base interface for all domain events.
type DomainEvent interface {
	EventType() string
	AggregateID() string
}

// CartUpsertedEvent is emitted when a persisted cart is created or fully replaced.
type CartUpsertedEvent struct {
	OwnerID    string
	ItemCount  int
	Total      string
	UpsertedAt time.Time
}

func (e *CartUpsertedEvent) EventType() string {
	return "cart.upserted"
}

func (e *CartUpsertedEvent) AggregateID() string {
	return e.OwnerID
}

// CartClearedEvent is emitted when a persisted cart is deleted.
type CartClearedEvent struct {
	OwnerID   string
	ClearedAt time.Time
}

func (e *CartClearedEvent) EventType() string {
	return "cart.cleared"
}

func (e *CartClearedEvent) AggregateID() string {
	return e.OwnerID
}
