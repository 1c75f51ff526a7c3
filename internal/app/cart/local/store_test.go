package local

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/light-bringer/cartsync-service/internal/app/cart/domain"
	"github.com/light-bringer/cartsync-service/internal/pkg/clock"
)

var testTime = time.Date(2026, 3, 15, 10, 0, 0, 0, time.UTC)

func mustMoney(t *testing.T, num, denom int64) *domain.Money {
	t.Helper()
	m, err := domain.NewMoney(num, denom)
	require.NoError(t, err)
	return m
}

func mustItem(t *testing.T, productID int64, variant, name string, price *domain.Money, qty int64) *domain.LineItem {
	t.Helper()
	item, err := domain.NewLineItem(productID, variant, name, price, "", "shirts", qty)
	require.NoError(t, err)
	return item
}

func TestStore_AddAndSnapshot(t *testing.T) {
	store := NewStore(clock.NewMockClock(testTime))
	price := mustMoney(t, 1999, 100)

	require.NoError(t, store.AddItem(1, "M", "Tee", price, "", "shirts"))
	require.NoError(t, store.AddItem(1, "M", "Tee", price, "", "shirts"))

	snapshot := store.Snapshot()
	require.Len(t, snapshot, 1)
	assert.Equal(t, int64(2), snapshot[0].Quantity)

	t.Run("snapshot is isolated from the store", func(t *testing.T) {
		snapshot[0].Quantity = 99
		fresh := store.Snapshot()
		assert.Equal(t, int64(2), fresh[0].Quantity)
	})
}

func TestStore_ReplaceAndMerge(t *testing.T) {
	store := NewStore(clock.NewMockClock(testTime))
	price := mustMoney(t, 1000, 100)

	store.Replace([]*domain.LineItem{
		mustItem(t, 1, "M", "Tee", price, 2),
		mustItem(t, 2, "", "Mug", price, 1),
	})
	assert.Equal(t, 2, store.Len())

	store.Merge([]*domain.LineItem{
		mustItem(t, 1, "M", "Tee", price, 3),
		mustItem(t, 3, "", "Cap", price, 1),
	})

	snapshot := store.Snapshot()
	require.Len(t, snapshot, 3)

	byKey := make(map[domain.ItemKey]int64)
	for _, item := range snapshot {
		byKey[item.Key()] = item.Quantity
	}
	assert.Equal(t, int64(5), byKey[domain.ItemKey{ProductID: 1, VariantKey: "M"}])
	assert.Equal(t, int64(1), byKey[domain.ItemKey{ProductID: 3}])
}

func TestStore_QuantityClampAndRemove(t *testing.T) {
	store := NewStore(clock.NewMockClock(testTime))
	price := mustMoney(t, 500, 100)
	require.NoError(t, store.AddItem(1, "", "Mug", price, "", "kitchen"))

	key := domain.ItemKey{ProductID: 1}
	store.UpdateQuantity(key, -5)
	assert.Equal(t, int64(1), store.Snapshot()[0].Quantity)

	store.RemoveItem(domain.ItemKey{ProductID: 42})
	assert.Equal(t, 1, store.Len())

	store.RemoveItem(key)
	assert.True(t, store.IsEmpty())
}

func TestStore_Visibility(t *testing.T) {
	store := NewStore(clock.NewMockClock(testTime))
	assert.False(t, store.IsOpen())

	assert.True(t, store.ToggleVisibility())
	assert.False(t, store.ToggleVisibility())

	store.SetVisibility(true)
	assert.True(t, store.IsOpen())
}

func TestStore_ConcurrentAdds(t *testing.T) {
	store := NewStore(clock.NewMockClock(testTime))
	price := mustMoney(t, 100, 100)

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = store.AddItem(7, "L", "Hoodie", price, "", "shirts")
		}()
	}
	wg.Wait()

	snapshot := store.Snapshot()
	require.Len(t, snapshot, 1)
	assert.Equal(t, int64(20), snapshot[0].Quantity)
}
