package stash

import (
	"context"
	"sync"
	"time"

	"github.com/light-bringer/cartsync-service/internal/app/cart/domain"
	"github.com/light-bringer/cartsync-service/internal/pkg/clock"
)

type memoryEntry struct {
	items     []*domain.LineItem
	expiresAt time.Time
}

// MemoryStash is an in-process Stash used in tests and single-node setups.
type MemoryStash struct {
	mu      sync.Mutex
	entries map[string]memoryEntry
	clock   clock.Clock
	ttl     time.Duration
}

// NewMemoryStash creates an in-memory stash.
func NewMemoryStash(clk clock.Clock, ttl time.Duration) *MemoryStash {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &MemoryStash{
		entries: make(map[string]memoryEntry),
		clock:   clk,
		ttl:     ttl,
	}
}

// Put stores the items for the session.
func (s *MemoryStash) Put(ctx context.Context, sessionID string, items []*domain.LineItem) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	copied := make([]*domain.LineItem, len(items))
	for i, item := range items {
		copied[i] = item.Copy()
	}
	s.entries[sessionID] = memoryEntry{
		items:     copied,
		expiresAt: s.clock.Now().Add(s.ttl),
	}
	return nil
}

// Take retrieves and removes the stashed items.
func (s *MemoryStash) Take(ctx context.Context, sessionID string) ([]*domain.LineItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry, ok := s.entries[sessionID]
	if !ok {
		return nil, ErrNotFound
	}
	delete(s.entries, sessionID)

	if s.clock.Now().After(entry.expiresAt) {
		return nil, ErrNotFound
	}
	return entry.items, nil
}
