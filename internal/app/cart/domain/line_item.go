package domain

import (
	"encoding/json"
	"fmt"
	"strings"
)

// LineItem is one product+variant+quantity entry in a cart. Name, price, image
// and category are a display snapshot captured at add-time; they are not
// re-synced with later catalog changes.
type LineItem struct {
	ProductID  int64
	VariantKey string // empty means no variant selected
	Name       string
	Price      *Money
	Image      string
	Category   string
	Quantity   int64
}

// ItemKey identifies a line item within a cart. Two entries never share a key.
type ItemKey struct {
	ProductID  int64
	VariantKey string
}

// NewLineItem constructs a validated line item from a product snapshot.
// Call sites hand over product shapes that drifted across the storefront, so
// all normalization lives here: price coerced to Money, variant defaulted to
// empty, quantity floored at 1.
func NewLineItem(productID int64, variantKey, name string, price *Money, image, category string, quantity int64) (*LineItem, error) {
	if productID <= 0 {
		return nil, ErrInvalidProductID
	}
	if strings.TrimSpace(name) == "" {
		return nil, ErrEmptyItemName
	}
	if price == nil || price.IsNegative() || !price.IsSafeForStorage() {
		return nil, ErrInvalidItemPrice
	}
	if quantity < 1 {
		return nil, ErrInvalidQuantity
	}

	return &LineItem{
		ProductID:  productID,
		VariantKey: variantKey,
		Name:       name,
		Price:      price.Copy(),
		Image:      image,
		Category:   category,
		Quantity:   quantity,
	}, nil
}

// Key returns the item's identity within a cart.
func (li *LineItem) Key() ItemKey {
	return ItemKey{ProductID: li.ProductID, VariantKey: li.VariantKey}
}

// Subtotal returns price multiplied by quantity.
func (li *LineItem) Subtotal() *Money {
	return li.Price.MultiplyInt(li.Quantity)
}

// Copy creates a deep copy of the line item.
func (li *LineItem) Copy() *LineItem {
	dup := *li
	dup.Price = li.Price.Copy()
	return &dup
}

// lineItemJSON is the wire/storage shape of a line item. Price travels as a
// JSON number; legacy payloads may carry it as a currency-formatted string.
type lineItemJSON struct {
	ProductID  int64           `json:"productId"`
	VariantKey *string         `json:"variantKey"`
	Name       string          `json:"name"`
	Price      json.RawMessage `json:"price"`
	Image      string          `json:"image,omitempty"`
	Category   string          `json:"category,omitempty"`
	Quantity   int64           `json:"quantity"`
}

// MarshalJSON encodes the line item with the price as a plain decimal number.
func (li *LineItem) MarshalJSON() ([]byte, error) {
	var variant *string
	if li.VariantKey != "" {
		v := li.VariantKey
		variant = &v
	}
	return json.Marshal(&lineItemJSON{
		ProductID:  li.ProductID,
		VariantKey: variant,
		Name:       li.Name,
		Price:      json.RawMessage(li.Price.String()),
		Image:      li.Image,
		Category:   li.Category,
		Quantity:   li.Quantity,
	})
}

// UnmarshalJSON decodes and validates a line item. Malformed entries are
// rejected here, before anything reaches persistence.
func (li *LineItem) UnmarshalJSON(data []byte) error {
	var raw lineItemJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidProducts, err)
	}

	price, err := parseRawPrice(raw.Price)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidProducts, err)
	}

	variant := ""
	if raw.VariantKey != nil {
		variant = *raw.VariantKey
	}

	item, err := NewLineItem(raw.ProductID, variant, raw.Name, price, raw.Image, raw.Category, raw.Quantity)
	if err != nil {
		return err
	}

	*li = *item
	return nil
}

// parseRawPrice accepts either a JSON number or a (possibly currency-formatted)
// JSON string and normalizes it into Money.
func parseRawPrice(raw json.RawMessage) (*Money, error) {
	if len(raw) == 0 {
		return nil, fmt.Errorf("missing price")
	}

	trimmed := strings.TrimSpace(string(raw))
	if strings.HasPrefix(trimmed, `"`) {
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return nil, err
		}
		return ParseMoney(s)
	}

	return ParseMoney(trimmed)
}
