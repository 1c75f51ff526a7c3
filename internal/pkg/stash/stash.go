// Package stash parks cart contents for visitors who hit checkout before
// signing in. Entries are keyed by an opaque session ID and expire on their
// own; a successful read consumes the entry.
package stash

import (
	"context"
	"encoding/json"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/pkg/errors"

	"github.com/light-bringer/cartsync-service/internal/app/cart/domain"
)

// ErrNotFound indicates no stashed cart exists for the session.
var ErrNotFound = errors.New("no stashed cart for session")

// DefaultTTL bounds how long a pre-login cart survives.
const DefaultTTL = 30 * time.Minute

// Stash stores pending carts between the checkout attempt and the post-login
// return.
type Stash interface {
	// Put stores the items for the session, replacing any previous stash.
	Put(ctx context.Context, sessionID string, items []*domain.LineItem) error

	// Take retrieves and removes the stashed items. ErrNotFound when absent
	// or expired.
	Take(ctx context.Context, sessionID string) ([]*domain.LineItem, error)
}

// RedisStash is the Redis-backed Stash.
type RedisStash struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisStash creates a stash over the given Redis client. A non-positive
// ttl falls back to DefaultTTL.
func NewRedisStash(client *redis.Client, ttl time.Duration) *RedisStash {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &RedisStash{
		client: client,
		ttl:    ttl,
	}
}

func stashKey(sessionID string) string {
	return "cart:stash:" + sessionID
}

// Put stores the items for the session.
func (s *RedisStash) Put(ctx context.Context, sessionID string, items []*domain.LineItem) error {
	if sessionID == "" {
		return errors.New("session id cannot be empty")
	}

	payload, err := json.Marshal(items)
	if err != nil {
		return errors.Wrap(err, "failed to encode stashed cart")
	}

	if err := s.client.Set(ctx, stashKey(sessionID), payload, s.ttl).Err(); err != nil {
		return errors.Wrap(err, "failed to store stashed cart")
	}
	return nil
}

// Take retrieves and removes the stashed items.
func (s *RedisStash) Take(ctx context.Context, sessionID string) ([]*domain.LineItem, error) {
	if sessionID == "" {
		return nil, errors.New("session id cannot be empty")
	}

	key := stashKey(sessionID)
	payload, err := s.client.GetDel(ctx, key).Bytes()
	if err == redis.Nil {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, errors.Wrap(err, "failed to read stashed cart")
	}

	var items []*domain.LineItem
	if err := json.Unmarshal(payload, &items); err != nil {
		return nil, errors.Wrap(err, "failed to decode stashed cart")
	}
	return items, nil
}
