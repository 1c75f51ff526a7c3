package http

import (
	"encoding/json"
	"net/http"

	"github.com/sirupsen/logrus"

	"github.com/light-bringer/cartsync-service/internal/app/cart/domain"
	"github.com/light-bringer/cartsync-service/internal/app/cart/queries/get_cart"
	"github.com/light-bringer/cartsync-service/internal/app/cart/usecases/clear_cart"
	"github.com/light-bringer/cartsync-service/internal/app/cart/usecases/upsert_cart"
)

// CartHandler serves the authenticated cart endpoints.
type CartHandler struct {
	upsertCart *upsert_cart.Interactor
	clearCart  *clear_cart.Interactor
	getCart    *get_cart.Query
	logger     *logrus.Logger
}

// NewCartHandler creates a cart handler.
func NewCartHandler(upsertCart *upsert_cart.Interactor, clearCart *clear_cart.Interactor, getCart *get_cart.Query, logger *logrus.Logger) *CartHandler {
	return &CartHandler{
		upsertCart: upsertCart,
		clearCart:  clearCart,
		getCart:    getCart,
		logger:     logger,
	}
}

// cartResponse is the wire envelope for cart contents.
type cartResponse struct {
	Products []*domain.LineItem `json:"products"`
}

// upsertRequest is the wire shape for cart replacement. Products stays raw so
// an absent key can be told apart from an empty array.
type upsertRequest struct {
	Products json.RawMessage `json:"products"`
}

// successResponse acknowledges a write.
type successResponse struct {
	Success bool `json:"success"`
}

// Get handles GET /api/v1/cart. A never-synced owner gets an empty cart.
func (h *CartHandler) Get(w http.ResponseWriter, r *http.Request) {
	ownerID := ownerFromContext(r.Context())

	cart, err := h.getCart.Execute(r.Context(), &get_cart.Request{OwnerID: ownerID})
	if err != nil {
		h.logger.WithError(err).WithField("owner_id", ownerID).Error("Failed to load cart")
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, cartResponse{Products: cart.Items()})
}

// Upsert handles POST /api/v1/cart. The payload replaces the stored cart
// wholesale.
func (h *CartHandler) Upsert(w http.ResponseWriter, r *http.Request) {
	ownerID := ownerFromContext(r.Context())

	var req upsertRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, domain.ErrInvalidProducts)
		return
	}
	if len(req.Products) == 0 || string(req.Products) == "null" {
		respondError(w, domain.ErrInvalidProducts)
		return
	}

	var items []*domain.LineItem
	if err := json.Unmarshal(req.Products, &items); err != nil {
		// Shape errors from the decoder are client errors too.
		if status, _ := mapDomainError(err); status == http.StatusInternalServerError {
			err = domain.ErrInvalidProducts
		}
		respondError(w, err)
		return
	}

	if err := h.upsertCart.Execute(r.Context(), &upsert_cart.Request{
		OwnerID: ownerID,
		Items:   items,
	}); err != nil {
		h.logger.WithError(err).WithField("owner_id", ownerID).Error("Failed to upsert cart")
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, successResponse{Success: true})
}

// Clear handles DELETE /api/v1/cart. Clearing an absent cart succeeds.
func (h *CartHandler) Clear(w http.ResponseWriter, r *http.Request) {
	ownerID := ownerFromContext(r.Context())

	if err := h.clearCart.Execute(r.Context(), &clear_cart.Request{OwnerID: ownerID}); err != nil {
		h.logger.WithError(err).WithField("owner_id", ownerID).Error("Failed to clear cart")
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, successResponse{Success: true})
}
