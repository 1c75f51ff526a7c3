package http

import (
	"bytes"
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"

	"github.com/light-bringer/cartsync-service/internal/app/cart/domain"
	"github.com/light-bringer/cartsync-service/internal/app/catalog/contracts"
	"github.com/light-bringer/cartsync-service/internal/app/catalog/queries/get_product"
	"github.com/light-bringer/cartsync-service/internal/app/catalog/queries/list_categories"
	"github.com/light-bringer/cartsync-service/internal/app/catalog/queries/list_products"
	"github.com/light-bringer/cartsync-service/internal/app/catalog/queries/related_products"
	"github.com/light-bringer/cartsync-service/internal/app/catalog/queries/search_products"
	"github.com/light-bringer/cartsync-service/internal/pkg/pagecache"
)

// CatalogHandler serves the public catalog read endpoints. List-shaped reads
// degrade to empty results on store failure so product pages still render.
type CatalogHandler struct {
	listProducts    *list_products.Query
	getProduct      *get_product.Query
	listCategories  *list_categories.Query
	searchProducts  *search_products.Query
	relatedProducts *related_products.Query
	cache           pagecache.Cache
	logger          *logrus.Logger
}

// NewCatalogHandler creates a catalog handler.
func NewCatalogHandler(
	listProducts *list_products.Query,
	getProduct *get_product.Query,
	listCategories *list_categories.Query,
	searchProducts *search_products.Query,
	relatedProducts *related_products.Query,
	cache pagecache.Cache,
	logger *logrus.Logger,
) *CatalogHandler {
	return &CatalogHandler{
		listProducts:    listProducts,
		getProduct:      getProduct,
		listCategories:  listCategories,
		searchProducts:  searchProducts,
		relatedProducts: relatedProducts,
		cache:           cache,
		logger:          logger,
	}
}

// productJSON is the wire shape for a catalog product.
type productJSON struct {
	ProductID   int64    `json:"productId"`
	Name        string   `json:"name"`
	Description string   `json:"description,omitempty"`
	Category    string   `json:"category"`
	Price       float64  `json:"price"`
	Image       string   `json:"image,omitempty"`
	Sizes       []string `json:"sizes,omitempty"`
	Discount    *int64   `json:"discount,omitempty"`
}

type productListResponse struct {
	Products   []productJSON `json:"products"`
	Page       int           `json:"page"`
	TotalCount int64         `json:"totalCount"`
}

type categoriesResponse struct {
	Categories []string `json:"categories"`
}

type productsResponse struct {
	Products []productJSON `json:"products"`
}

func toProductJSON(dto *contracts.ProductDTO) productJSON {
	return productJSON{
		ProductID:   dto.ProductID,
		Name:        dto.Name,
		Description: dto.Description,
		Category:    dto.Category,
		Price:       dto.Price,
		Image:       dto.Image,
		Sizes:       dto.Sizes,
		Discount:    dto.Discount,
	}
}

func toProductList(dtos []*contracts.ProductDTO) []productJSON {
	out := make([]productJSON, 0, len(dtos))
	for _, dto := range dtos {
		out = append(out, toProductJSON(dto))
	}
	return out
}

// List handles GET /api/v1/products with category, pagination and sort
// query parameters. Responses are served from the page cache when fresh.
func (h *CatalogHandler) List(w http.ResponseWriter, r *http.Request) {
	cacheKey := r.URL.RequestURI()
	if body, ok := h.cache.Get(r.Context(), cacheKey); ok {
		writeCached(w, body)
		return
	}

	params := r.URL.Query()
	req := &list_products.Request{
		Category: params.Get("category"),
		SortBy:   params.Get("sortBy"),
		Order:    params.Get("order"),
	}
	if page, err := strconv.Atoi(params.Get("page")); err == nil {
		req.Page = page
	}
	if limit, err := strconv.Atoi(params.Get("limit")); err == nil {
		req.Limit = limit
	}

	result, err := h.listProducts.Execute(r.Context(), req)
	if err != nil {
		h.logger.WithError(err).Error("Product listing failed, serving empty list")
		respondJSON(w, http.StatusOK, productListResponse{Products: []productJSON{}})
		return
	}

	response := productListResponse{
		Products:   toProductList(result.Products),
		Page:       result.Page,
		TotalCount: result.TotalCount,
	}
	h.cacheAndRespond(w, r, cacheKey, response)
}

// Get handles GET /api/v1/products/{id}.
func (h *CatalogHandler) Get(w http.ResponseWriter, r *http.Request) {
	productID, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		respondError(w, domain.ErrInvalidProductID)
		return
	}

	dto, err := h.getProduct.Execute(r.Context(), &get_product.Request{ProductID: productID})
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, toProductJSON(dto))
}

// Categories handles GET /api/v1/categories.
func (h *CatalogHandler) Categories(w http.ResponseWriter, r *http.Request) {
	cacheKey := r.URL.RequestURI()
	if body, ok := h.cache.Get(r.Context(), cacheKey); ok {
		writeCached(w, body)
		return
	}

	dtos, err := h.listCategories.Execute(r.Context())
	if err != nil {
		h.logger.WithError(err).Error("Category listing failed, serving empty list")
		respondJSON(w, http.StatusOK, categoriesResponse{Categories: []string{}})
		return
	}

	categories := make([]string, 0, len(dtos))
	for _, dto := range dtos {
		categories = append(categories, dto.Category)
	}
	h.cacheAndRespond(w, r, cacheKey, categoriesResponse{Categories: categories})
}

// Search handles GET /api/v1/products/search?q=...
func (h *CatalogHandler) Search(w http.ResponseWriter, r *http.Request) {
	dtos, err := h.searchProducts.Execute(r.Context(), &search_products.Request{
		Query: r.URL.Query().Get("q"),
	})
	if err != nil {
		h.logger.WithError(err).Error("Product search failed, serving empty list")
		respondJSON(w, http.StatusOK, productsResponse{Products: []productJSON{}})
		return
	}

	respondJSON(w, http.StatusOK, productsResponse{Products: toProductList(dtos)})
}

// Related handles GET /api/v1/products/{id}/related?category=...
func (h *CatalogHandler) Related(w http.ResponseWriter, r *http.Request) {
	productID, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		respondError(w, domain.ErrInvalidProductID)
		return
	}

	dtos, err := h.relatedProducts.Execute(r.Context(), &related_products.Request{
		Category:  r.URL.Query().Get("category"),
		ExcludeID: productID,
	})
	if err != nil {
		h.logger.WithError(err).Error("Related products failed, serving empty list")
		respondJSON(w, http.StatusOK, productsResponse{Products: []productJSON{}})
		return
	}

	respondJSON(w, http.StatusOK, productsResponse{Products: toProductList(dtos)})
}

// cacheAndRespond stores the rendered body and writes it out.
func (h *CatalogHandler) cacheAndRespond(w http.ResponseWriter, r *http.Request, key string, payload interface{}) {
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(payload); err != nil {
		respondError(w, err)
		return
	}

	h.cache.Set(r.Context(), key, buf.Bytes())
	writeCached(w, buf.Bytes())
}

func writeCached(w http.ResponseWriter, body []byte) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(body)
}
