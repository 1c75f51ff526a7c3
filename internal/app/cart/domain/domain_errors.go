package domain

import "errors"

// Domain errors as sentinel values
var (
	// Cart errors
	ErrCartNotFound    = errors.New("cart not found")
	ErrEmptyOwner      = errors.New("cart owner cannot be empty")
	ErrInvalidProducts = errors.New("invalid products data")

	// Line item errors
	ErrInvalidProductID = errors.New("product id must be positive")
	ErrEmptyItemName    = errors.New("line item name cannot be empty")
	ErrInvalidItemPrice = errors.New("line item price cannot be negative")
	ErrInvalidQuantity  = errors.New("line item quantity must be at least 1")

	// Catalog errors
	ErrProductNotFound = errors.New("product not found")

	// Money errors
	ErrMoneyOverflow = errors.New("money value exceeds int64 bounds")

	// Sync errors
	ErrNotAuthenticated = errors.New("checkout requires an authenticated user")
	ErrSyncFailed       = errors.New("cart could not be persisted")
)
