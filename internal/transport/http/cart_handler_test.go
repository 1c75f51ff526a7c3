package http

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"cloud.google.com/go/spanner"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/light-bringer/cartsync-service/internal/app/cart/domain"
	"github.com/light-bringer/cartsync-service/internal/app/cart/queries/get_cart"
	"github.com/light-bringer/cartsync-service/internal/pkg/clock"
)

type fakeCartRepo struct {
	carts map[string][]*domain.LineItem
}

func (f *fakeCartRepo) UpsertMut(cart *domain.Cart) (*spanner.Mutation, error) {
	return nil, nil
}

func (f *fakeCartRepo) DeleteMut(ownerID string) *spanner.Mutation {
	return nil
}

func (f *fakeCartRepo) GetByOwner(ctx context.Context, ownerID string) (*domain.Cart, error) {
	clk := clock.NewMockClock(time.Date(2026, 3, 15, 10, 0, 0, 0, time.UTC))
	items, ok := f.carts[ownerID]
	if !ok {
		return domain.NewCart(ownerID, clk), nil
	}
	return domain.ReconstructCart(ownerID, items, clk), nil
}

func cartTestRouter(t *testing.T, repo *fakeCartRepo) http.Handler {
	t.Helper()
	handler := &CartHandler{
		getCart: get_cart.NewQuery(repo),
		logger:  discardLogger(),
	}
	return NewRouter(RouterConfig{
		Cart:       handler,
		Catalog:    newCatalogHandler(&fakeReadModel{}, newMemoryCache()),
		Events:     &EventsHandler{},
		Revalidate: NewRevalidateHandler("secret", newMemoryCache(), discardLogger()),
		Verifier:   &fakeVerifier{users: map[string]string{"tok-good": "user-7"}},
		Logger:     discardLogger(),
	})
}

func TestCart_RequiresAuth(t *testing.T) {
	router := cartTestRouter(t, &fakeCartRepo{})

	for _, method := range []string{http.MethodGet, http.MethodPost, http.MethodDelete} {
		t.Run(method, func(t *testing.T) {
			w := httptest.NewRecorder()
			router.ServeHTTP(w, httptest.NewRequest(method, "/api/v1/cart", nil))
			assert.Equal(t, http.StatusUnauthorized, w.Code)
			assert.JSONEq(t, `{"error":"Unauthorized"}`, w.Body.String())
		})
	}
}

func TestCart_Get(t *testing.T) {
	price, err := domain.NewMoney(1999, 100)
	require.NoError(t, err)
	item, err := domain.NewLineItem(1, "M", "Tee", price, "", "shirts", 2)
	require.NoError(t, err)

	t.Run("returns persisted items", func(t *testing.T) {
		router := cartTestRouter(t, &fakeCartRepo{carts: map[string][]*domain.LineItem{
			"user-7": {item},
		}})

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/api/v1/cart", nil)
		req.Header.Set("Authorization", "Bearer tok-good")
		router.ServeHTTP(w, req)

		require.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"productId":1`)
		assert.Contains(t, w.Body.String(), `"quantity":2`)
	})

	t.Run("never-synced owner gets an empty cart", func(t *testing.T) {
		router := cartTestRouter(t, &fakeCartRepo{})

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/api/v1/cart", nil)
		req.Header.Set("Authorization", "Bearer tok-good")
		router.ServeHTTP(w, req)

		require.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"products":[]}`, w.Body.String())
	})
}

func TestCart_UpsertValidation(t *testing.T) {
	router := cartTestRouter(t, &fakeCartRepo{})

	post := func(body string) *httptest.ResponseRecorder {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/api/v1/cart", strings.NewReader(body))
		req.Header.Set("Authorization", "Bearer tok-good")
		router.ServeHTTP(w, req)
		return w
	}

	t.Run("missing products key is 400", func(t *testing.T) {
		w := post(`{}`)
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.JSONEq(t, `{"error":"Products array is required"}`, w.Body.String())
	})

	t.Run("null products is 400", func(t *testing.T) {
		w := post(`{"products":null}`)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("non-array products is 400", func(t *testing.T) {
		w := post(`{"products":{"productId":1}}`)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("malformed body is 400", func(t *testing.T) {
		w := post(`not json`)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("item with zero quantity is 400", func(t *testing.T) {
		w := post(`{"products":[{"productId":1,"name":"Tee","price":19.99,"quantity":0}]}`)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}
