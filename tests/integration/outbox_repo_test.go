//go:build integration

package integration

import (
	"context"
	"testing"
	"time"

	"cloud.google.com/go/spanner"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/light-bringer/cartsync-service/internal/app/cart/domain"
	"github.com/light-bringer/cartsync-service/internal/app/cart/repo"
	"github.com/light-bringer/cartsync-service/internal/models/m_outbox"
	"github.com/light-bringer/cartsync-service/tests/testutil"
)

func TestOutboxRepository_EnrichEvent(t *testing.T) {
	repository := repo.NewOutboxRepo(nil)

	event := &domain.CartUpsertedEvent{
		OwnerID:   "user-7",
		ItemCount: 2,
		Total:     "29.49",
	}

	outboxEvent := repository.EnrichEvent(event, `{"ownerId":"user-7"}`)

	assert.NotEmpty(t, outboxEvent.EventID, "event ID should be generated")
	assert.Equal(t, "cart.upserted", outboxEvent.EventType)
	assert.Equal(t, "user-7", outboxEvent.AggregateID)
	assert.Equal(t, `{"ownerId":"user-7"}`, outboxEvent.Payload)
	assert.Equal(t, m_outbox.StatusPending, outboxEvent.Status)
}

func TestOutboxRepository_InsertMut(t *testing.T) {
	client, cleanup := testutil.SetupSpannerTest(t)
	defer cleanup()

	repository := repo.NewOutboxRepo(client)

	event := &domain.CartClearedEvent{
		OwnerID:   "user-7",
		ClearedAt: time.Now().UTC(),
	}
	outboxEvent := repository.EnrichEvent(event, `{"ownerId":"user-7"}`)

	mutation := repository.InsertMut(outboxEvent)
	require.NotNil(t, mutation)

	ctx := context.Background()
	_, err := client.Apply(ctx, []*spanner.Mutation{mutation})
	require.NoError(t, err)

	testutil.AssertRowCount(t, client, "outbox_events", 1)
	testutil.AssertOutboxEvent(t, client, "cart.cleared")
}
