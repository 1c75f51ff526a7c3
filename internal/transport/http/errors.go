package http

import (
	"errors"
	"net/http"

	"github.com/light-bringer/cartsync-service/internal/app/cart/domain"
)

// mapDomainError converts domain errors to an HTTP status and client-safe
// message. Unknown errors never leak their text.
func mapDomainError(err error) (int, string) {
	switch {
	case errors.Is(err, domain.ErrNotAuthenticated):
		return http.StatusUnauthorized, "Unauthorized"

	case errors.Is(err, domain.ErrCartNotFound):
		return http.StatusNotFound, "cart not found"

	case errors.Is(err, domain.ErrProductNotFound):
		return http.StatusNotFound, "product not found"

	case errors.Is(err, domain.ErrInvalidProducts):
		return http.StatusBadRequest, "Products array is required"

	case errors.Is(err, domain.ErrEmptyOwner):
		return http.StatusBadRequest, "cart owner cannot be empty"

	case errors.Is(err, domain.ErrInvalidProductID):
		return http.StatusBadRequest, "product id must be positive"

	case errors.Is(err, domain.ErrEmptyItemName):
		return http.StatusBadRequest, "line item name cannot be empty"

	case errors.Is(err, domain.ErrInvalidItemPrice):
		return http.StatusBadRequest, "line item price cannot be negative"

	case errors.Is(err, domain.ErrInvalidQuantity):
		return http.StatusBadRequest, "line item quantity must be at least 1"

	default:
		return http.StatusInternalServerError, "Internal Server Error"
	}
}
