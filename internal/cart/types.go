package cart

import (
	"strconv"

	"github.com/shopspring/decimal"

	"github.com/bautizosmaitte/storefront-api/internal/catalog"
)

// Line is one purchasable entry in the cart. Quantity is not stored on the
// line; it lives in the store's quantity map keyed by the line ID, so a line
// is a pure description of what is being bought.
type Line struct {
	ID            string                  `json:"id"`
	ProductID     int                     `json:"productId"`
	Name          string                  `json:"name"`
	Slug          string                  `json:"slug"`
	Price         decimal.Decimal         `json:"price"`
	OriginalPrice decimal.Decimal         `json:"originalPrice"`
	IsDiscount    bool                    `json:"isDiscount"`
	Image         *catalog.Image          `json:"image,omitempty"`
	Variant       *catalog.ProductVariant `json:"variant,omitempty"`
}

// LineID builds the composite cart-line key: the product ID alone, or
// product and variant IDs joined with a dash when a variant is selected.
func LineID(productID int, variant *catalog.ProductVariant) string {
	if variant == nil {
		return strconv.Itoa(productID)
	}
	return strconv.Itoa(productID) + "-" + strconv.Itoa(variant.ID)
}

// NewLine builds a cart line from a product and an optional variant. The
// unit price is the discounted price when the product carries one, and the
// original list price is kept alongside for display.
func NewLine(product catalog.Product, variant *catalog.ProductVariant) Line {
	line := Line{
		ID:            LineID(product.ID, variant),
		ProductID:     product.ID,
		Name:          product.Name,
		Slug:          product.Slug,
		Price:         product.EffectivePrice(),
		OriginalPrice: product.Price,
		IsDiscount:    product.IsDiscount,
		Image:         product.MainImage,
		Variant:       variant,
	}
	return line
}

// Snapshot is the persisted shape of a cart: the line list plus the
// line-ID-to-quantity map, serialized together under one storage key.
type Snapshot struct {
	Items      []Line         `json:"items"`
	Quantities map[string]int `json:"quantities"`
}
