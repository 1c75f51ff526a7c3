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
	"github.com/light-bringer/cartsync-service/tests/testutil"
)

func TestCartRepository_UpsertAndGet(t *testing.T) {
	client, cleanup := testutil.SetupSpannerTest(t)
	defer cleanup()

	ctx := context.Background()
	clk := testutil.NewFixedClock(time.Date(2026, 3, 15, 10, 0, 0, 0, time.UTC))
	repository := repo.NewCartRepo(client, clk)

	items := []*domain.LineItem{
		testutil.LineItem(t, 1, "M", "Tee", testutil.Money(t, 1999, 100), 2),
		testutil.LineItem(t, 2, "", "Mug", testutil.Money(t, 950, 100), 1),
	}
	cart := domain.ReconstructCart("user-7", items, clk)

	mut, err := repository.UpsertMut(cart)
	require.NoError(t, err)
	_, err = client.Apply(ctx, []*spanner.Mutation{mut})
	require.NoError(t, err)

	loaded, err := repository.GetByOwner(ctx, "user-7")
	require.NoError(t, err)
	require.Equal(t, 2, loaded.Len())

	loadedItems := loaded.Items()
	assert.Equal(t, int64(1), loadedItems[0].ProductID)
	assert.Equal(t, "M", loadedItems[0].VariantKey)
	assert.Equal(t, int64(2), loadedItems[0].Quantity)
	assert.Equal(t, "19.99", loadedItems[0].Price.String())
}

func TestCartRepository_UpsertReplacesWholesale(t *testing.T) {
	client, cleanup := testutil.SetupSpannerTest(t)
	defer cleanup()

	ctx := context.Background()
	clk := testutil.NewMockClock()
	repository := repo.NewCartRepo(client, clk)

	first := domain.ReconstructCart("user-7", []*domain.LineItem{
		testutil.LineItem(t, 1, "", "Tee", testutil.Money(t, 1999, 100), 1),
		testutil.LineItem(t, 2, "", "Mug", testutil.Money(t, 950, 100), 1),
	}, clk)
	mut, err := repository.UpsertMut(first)
	require.NoError(t, err)
	_, err = client.Apply(ctx, []*spanner.Mutation{mut})
	require.NoError(t, err)

	second := domain.ReconstructCart("user-7", []*domain.LineItem{
		testutil.LineItem(t, 3, "", "Cap", testutil.Money(t, 1500, 100), 4),
	}, clk)
	mut, err = repository.UpsertMut(second)
	require.NoError(t, err)
	_, err = client.Apply(ctx, []*spanner.Mutation{mut})
	require.NoError(t, err)

	loaded, err := repository.GetByOwner(ctx, "user-7")
	require.NoError(t, err)
	require.Equal(t, 1, loaded.Len())
	assert.Equal(t, int64(3), loaded.Items()[0].ProductID)

	testutil.AssertRowCount(t, client, "carts", 1)
}

func TestCartRepository_MissingOwnerGetsEmptyCart(t *testing.T) {
	client, cleanup := testutil.SetupSpannerTest(t)
	defer cleanup()

	repository := repo.NewCartRepo(client, testutil.NewMockClock())

	loaded, err := repository.GetByOwner(context.Background(), "nobody")
	require.NoError(t, err)
	assert.True(t, loaded.IsEmpty())
}

func TestCartRepository_Delete(t *testing.T) {
	client, cleanup := testutil.SetupSpannerTest(t)
	defer cleanup()

	ctx := context.Background()
	clk := testutil.NewMockClock()
	repository := repo.NewCartRepo(client, clk)

	cart := domain.ReconstructCart("user-7", []*domain.LineItem{
		testutil.LineItem(t, 1, "", "Tee", testutil.Money(t, 1999, 100), 1),
	}, clk)
	mut, err := repository.UpsertMut(cart)
	require.NoError(t, err)
	_, err = client.Apply(ctx, []*spanner.Mutation{mut})
	require.NoError(t, err)

	_, err = client.Apply(ctx, []*spanner.Mutation{repository.DeleteMut("user-7")})
	require.NoError(t, err)

	testutil.AssertRowCount(t, client, "carts", 0)

	t.Run("deleting an absent cart succeeds", func(t *testing.T) {
		_, err := client.Apply(ctx, []*spanner.Mutation{repository.DeleteMut("user-7")})
		assert.NoError(t, err)
	})
}
