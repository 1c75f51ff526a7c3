//go:build integration

package integration

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/light-bringer/cartsync-service/internal/app/cart/domain"
	"github.com/light-bringer/cartsync-service/internal/app/catalog/contracts"
	"github.com/light-bringer/cartsync-service/internal/app/catalog/repo"
	"github.com/light-bringer/cartsync-service/tests/testutil"
)

func TestCatalogReadModel(t *testing.T) {
	client, cleanup := testutil.SetupSpannerTest(t)
	defer cleanup()

	ctx := context.Background()
	testutil.SeedProduct(t, client, 1, "Graphic Tee", "shirts", 1999)
	testutil.SeedProduct(t, client, 2, "Plain Tee", "shirts", 1499)
	testutil.SeedProduct(t, client, 3, "Coffee Mug", "kitchen", 950)

	readModel := repo.NewReadModel(client)

	t.Run("list all", func(t *testing.T) {
		result, err := readModel.ListProducts(ctx, &contracts.ListFilter{})
		require.NoError(t, err)
		assert.Equal(t, int64(3), result.TotalCount)
		assert.Len(t, result.Products, 3)
	})

	t.Run("list by category", func(t *testing.T) {
		result, err := readModel.ListProducts(ctx, &contracts.ListFilter{Category: "shirts"})
		require.NoError(t, err)
		assert.Equal(t, int64(2), result.TotalCount)
	})

	t.Run("pagination", func(t *testing.T) {
		result, err := readModel.ListProducts(ctx, &contracts.ListFilter{Page: 2, Limit: 2})
		require.NoError(t, err)
		assert.Equal(t, int64(3), result.TotalCount)
		assert.Len(t, result.Products, 1)
		assert.Equal(t, 2, result.Page)
	})

	t.Run("get by id", func(t *testing.T) {
		dto, err := readModel.GetProductByID(ctx, 3)
		require.NoError(t, err)
		assert.Equal(t, "Coffee Mug", dto.Name)
		assert.InDelta(t, 9.5, dto.Price, 0.001)
	})

	t.Run("get missing id", func(t *testing.T) {
		_, err := readModel.GetProductByID(ctx, 404)
		assert.ErrorIs(t, err, domain.ErrProductNotFound)
	})

	t.Run("categories are distinct and sorted", func(t *testing.T) {
		categories, err := readModel.ListCategories(ctx)
		require.NoError(t, err)
		require.Len(t, categories, 2)
		assert.Equal(t, "kitchen", categories[0].Category)
		assert.Equal(t, "shirts", categories[1].Category)
	})

	t.Run("search matches name case-insensitively", func(t *testing.T) {
		dtos, err := readModel.SearchProducts(ctx, "TEE")
		require.NoError(t, err)
		assert.Len(t, dtos, 2)
	})

	t.Run("blank search returns nothing", func(t *testing.T) {
		dtos, err := readModel.SearchProducts(ctx, "   ")
		require.NoError(t, err)
		assert.Empty(t, dtos)
	})

	t.Run("related excludes the anchor and tops up", func(t *testing.T) {
		dtos, err := readModel.RelatedProducts(ctx, "shirts", 1, 4)
		require.NoError(t, err)
		require.Len(t, dtos, 2)
		for _, dto := range dtos {
			assert.NotEqual(t, int64(1), dto.ProductID)
		}
	})
}

func TestCatalogReadModel_SortByPriceMixedDenominators(t *testing.T) {
	client, cleanup := testutil.SetupSpannerTest(t)
	defer cleanup()

	ctx := context.Background()
	testutil.SeedProductPriced(t, client, 1, "Whole Units", "misc", testutil.Money(t, 5, 1))
	testutil.SeedProductPriced(t, client, 2, "Cents", "misc", testutil.Money(t, 499, 100))
	testutil.SeedProductPriced(t, client, 3, "Tenths", "misc", testutil.Money(t, 105, 10))

	readModel := repo.NewReadModel(client)

	result, err := readModel.ListProducts(ctx, &contracts.ListFilter{SortBy: "price", Order: contracts.OrderAsc})
	require.NoError(t, err)
	require.Len(t, result.Products, 3)

	// 4.99 < 5.00 < 10.50 regardless of how each fraction is stored.
	assert.Equal(t, int64(2), result.Products[0].ProductID)
	assert.Equal(t, int64(1), result.Products[1].ProductID)
	assert.Equal(t, int64(3), result.Products[2].ProductID)
}
