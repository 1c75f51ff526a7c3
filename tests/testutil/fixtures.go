package testutil

import (
	"context"
	"testing"
	"time"

	"cloud.google.com/go/spanner"
	"github.com/stretchr/testify/require"

	"github.com/light-bringer/cartsync-service/internal/app/cart/domain"
	"github.com/light-bringer/cartsync-service/internal/models/m_product"
)

// SeedProduct writes a catalog row directly to the database. The price is
// given in cents.
func SeedProduct(t *testing.T, client *spanner.Client, productID int64, name, category string, priceNumerator int64) {
	t.Helper()
	SeedProductPriced(t, client, productID, name, category, Money(t, priceNumerator, 100))
}

// SeedProductPriced writes a catalog row with an explicit price fraction.
func SeedProductPriced(t *testing.T, client *spanner.Client, productID int64, name, category string, price *domain.Money) {
	t.Helper()

	num, err := price.Numerator()
	require.NoError(t, err)
	denom, err := price.Denominator()
	require.NoError(t, err)

	ctx := context.Background()
	model := m_product.NewModel()
	data := &m_product.Data{
		ProductID:        productID,
		Name:             name,
		Description:      spanner.NullString{StringVal: "Seeded test product", Valid: true},
		Category:         category,
		PriceNumerator:   num,
		PriceDenominator: denom,
		Sizes:            []string{"S", "M", "L"},
		CreatedAt:        time.Now(),
		UpdatedAt:        time.Now(),
	}

	_, err = client.Apply(ctx, []*spanner.Mutation{model.InsertMut(data)})
	require.NoError(t, err, "failed to seed product")
}

// Money builds a Money value or fails the test.
func Money(t *testing.T, numerator, denominator int64) *domain.Money {
	t.Helper()
	m, err := domain.NewMoney(numerator, denominator)
	require.NoError(t, err)
	return m
}

// LineItem builds a line item or fails the test.
func LineItem(t *testing.T, productID int64, variantKey, name string, price *domain.Money, quantity int64) *domain.LineItem {
	t.Helper()
	item, err := domain.NewLineItem(productID, variantKey, name, price, "", "test", quantity)
	require.NoError(t, err)
	return item
}
