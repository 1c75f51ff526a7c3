package http

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/light-bringer/cartsync-service/internal/app/cart/domain"
	"github.com/light-bringer/cartsync-service/internal/app/catalog/contracts"
	"github.com/light-bringer/cartsync-service/internal/app/catalog/queries/get_product"
	"github.com/light-bringer/cartsync-service/internal/app/catalog/queries/list_categories"
	"github.com/light-bringer/cartsync-service/internal/app/catalog/queries/list_products"
	"github.com/light-bringer/cartsync-service/internal/app/catalog/queries/related_products"
	"github.com/light-bringer/cartsync-service/internal/app/catalog/queries/search_products"
)

type fakeReadModel struct {
	products []*contracts.ProductDTO
	fail     bool
}

func (f *fakeReadModel) GetProductByID(ctx context.Context, productID int64) (*contracts.ProductDTO, error) {
	for _, dto := range f.products {
		if dto.ProductID == productID {
			return dto, nil
		}
	}
	return nil, domain.ErrProductNotFound
}

func (f *fakeReadModel) ListProducts(ctx context.Context, filter *contracts.ListFilter) (*contracts.ListResult, error) {
	if f.fail {
		return nil, errors.New("store unavailable")
	}
	return &contracts.ListResult{Products: f.products, Page: 1, TotalCount: int64(len(f.products))}, nil
}

func (f *fakeReadModel) ListCategories(ctx context.Context) ([]*contracts.CategoryDTO, error) {
	if f.fail {
		return nil, errors.New("store unavailable")
	}
	return []*contracts.CategoryDTO{{Category: "shirts"}}, nil
}

func (f *fakeReadModel) SearchProducts(ctx context.Context, queryText string) ([]*contracts.ProductDTO, error) {
	if f.fail {
		return nil, errors.New("store unavailable")
	}
	return f.products, nil
}

func (f *fakeReadModel) RelatedProducts(ctx context.Context, category string, excludeID int64, limit int) ([]*contracts.ProductDTO, error) {
	if f.fail {
		return nil, errors.New("store unavailable")
	}
	return f.products, nil
}

type memoryCache struct {
	entries map[string][]byte
}

func newMemoryCache() *memoryCache {
	return &memoryCache{entries: make(map[string][]byte)}
}

func (c *memoryCache) Get(ctx context.Context, path string) ([]byte, bool) {
	body, ok := c.entries[path]
	return body, ok
}

func (c *memoryCache) Set(ctx context.Context, path string, body []byte) {
	c.entries[path] = body
}

func (c *memoryCache) Invalidate(ctx context.Context, path string) {
	for key := range c.entries {
		if strings.HasPrefix(key, path) {
			delete(c.entries, key)
		}
	}
}

func newCatalogHandler(rm contracts.ReadModel, cache *memoryCache) *CatalogHandler {
	return NewCatalogHandler(
		list_products.NewQuery(rm),
		get_product.NewQuery(rm),
		list_categories.NewQuery(rm),
		search_products.NewQuery(rm),
		related_products.NewQuery(rm),
		cache,
		discardLogger(),
	)
}

func catalogRouter(rm contracts.ReadModel, cache *memoryCache) http.Handler {
	return NewRouter(RouterConfig{
		Cart:       &CartHandler{},
		Catalog:    newCatalogHandler(rm, cache),
		Events:     &EventsHandler{},
		Revalidate: NewRevalidateHandler("secret", cache, discardLogger()),
		Verifier:   &fakeVerifier{},
		Logger:     discardLogger(),
	})
}

func sampleProducts() []*contracts.ProductDTO {
	return []*contracts.ProductDTO{
		{ProductID: 1, Name: "Tee", Category: "shirts", Price: 19.99, Sizes: []string{"S", "M"}},
		{ProductID: 2, Name: "Mug", Category: "kitchen", Price: 9.5},
	}
}

func TestCatalog_ListProducts(t *testing.T) {
	cache := newMemoryCache()
	router := catalogRouter(&fakeReadModel{products: sampleProducts()}, cache)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/products?category=shirts", nil))

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"totalCount":2`)

	t.Run("response is cached by request uri", func(t *testing.T) {
		_, ok := cache.Get(context.Background(), "/api/v1/products?category=shirts")
		assert.True(t, ok)
	})

	t.Run("cached body is served on the next hit", func(t *testing.T) {
		cache.Set(context.Background(), "/api/v1/products?category=shirts", []byte(`{"cached":true}`))
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/products?category=shirts", nil))
		assert.JSONEq(t, `{"cached":true}`, w.Body.String())
	})
}

func TestCatalog_ListDegradesToEmpty(t *testing.T) {
	router := catalogRouter(&fakeReadModel{fail: true}, newMemoryCache())

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/products", nil))

	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"products":[],"page":0,"totalCount":0}`, w.Body.String())
}

func TestCatalog_GetProduct(t *testing.T) {
	router := catalogRouter(&fakeReadModel{products: sampleProducts()}, newMemoryCache())

	t.Run("found", func(t *testing.T) {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/products/1", nil))
		require.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"name":"Tee"`)
	})

	t.Run("missing is 404", func(t *testing.T) {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/products/404", nil))
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("non-numeric id is 400", func(t *testing.T) {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/products/abc", nil))
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestCatalog_SearchAndRelated(t *testing.T) {
	router := catalogRouter(&fakeReadModel{products: sampleProducts()}, newMemoryCache())

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/products/search?q=tee", nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"products"`)

	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/products/1/related?category=shirts", nil))
	require.Equal(t, http.StatusOK, w.Code)
}

func TestCatalog_Categories(t *testing.T) {
	router := catalogRouter(&fakeReadModel{}, newMemoryCache())

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/categories", nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"categories":["shirts"]}`, w.Body.String())
}

func TestRevalidate(t *testing.T) {
	cache := newMemoryCache()
	cache.Set(context.Background(), "/api/v1/products", []byte(`{}`))
	router := catalogRouter(&fakeReadModel{}, cache)

	t.Run("wrong token is 401", func(t *testing.T) {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/api/v1/revalidate?token=wrong", strings.NewReader(`{"path":"/api/v1/products"}`))
		router.ServeHTTP(w, req)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("missing path is 400", func(t *testing.T) {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/api/v1/revalidate?token=secret", strings.NewReader(`{}`))
		router.ServeHTTP(w, req)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("valid request drops the cache entry", func(t *testing.T) {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/api/v1/revalidate?token=secret", strings.NewReader(`{"path":"/api/v1/products"}`))
		router.ServeHTTP(w, req)
		require.Equal(t, http.StatusOK, w.Code)

		_, ok := cache.Get(context.Background(), "/api/v1/products")
		assert.False(t, ok)
	})
}

func TestRevalidate_DropsQueryVariants(t *testing.T) {
	cache := newMemoryCache()
	router := catalogRouter(&fakeReadModel{products: sampleProducts()}, cache)

	// Warm a query-string variant through the real cache path.
	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/products?page=2", nil))
	require.Equal(t, http.StatusOK, w.Code)
	_, ok := cache.Get(context.Background(), "/api/v1/products?page=2")
	require.True(t, ok)

	w = httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/revalidate?token=secret", strings.NewReader(`{"path":"/api/v1/products"}`))
	router.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	_, ok = cache.Get(context.Background(), "/api/v1/products?page=2")
	assert.False(t, ok, "query-string variant should be invalidated with the path")
}
