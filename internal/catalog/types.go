package catalog

import (
	"github.com/bautizosmaitte/storefront-api/pkg/pagination"
	"github.com/shopspring/decimal"
)

// Image is the CMS media shape referenced by products, categories, and brands.
type Image struct {
	ID              int           `json:"id"`
	URL             string        `json:"url"`
	AlternativeText string        `json:"alternativeText,omitempty"`
	Width           int           `json:"width,omitempty"`
	Height          int           `json:"height,omitempty"`
	Formats         *ImageFormats `json:"formats,omitempty"`
}

type ImageFormats struct {
	Thumbnail *Image `json:"thumbnail,omitempty"`
	Small     *Image `json:"small,omitempty"`
	Medium    *Image `json:"medium,omitempty"`
	Large     *Image `json:"large,omitempty"`
}

type Brand struct {
	ID          int    `json:"id"`
	Name        string `json:"name"`
	Slug        string `json:"slug"`
	Description string `json:"description,omitempty"`
	Logo        *Image `json:"logo,omitempty"`
}

type Category struct {
	ID          int    `json:"id"`
	Name        string `json:"name"`
	Slug        string `json:"slug"`
	Description string `json:"description,omitempty"`
	Image       *Image `json:"image,omitempty"`
}

// ProductVariant is a sub-SKU carrying its own stock count.
type ProductVariant struct {
	ID    int    `json:"id"`
	Name  string `json:"name"`
	Slug  string `json:"slug"`
	Image *Image `json:"image,omitempty"`
	Count int    `json:"count"`
}

type Product struct {
	ID            int              `json:"id"`
	Name          string           `json:"name"`
	Slug          string           `json:"slug"`
	Description   string           `json:"description,omitempty"`
	Barcode       string           `json:"barcode,omitempty"`
	Active        bool             `json:"active"`
	IsFeatured    bool             `json:"isFeatured"`
	IsDiscount    bool             `json:"isDiscount"`
	IsOnline      bool             `json:"isOnline"`
	Price         decimal.Decimal  `json:"price"`
	PriceDiscount *decimal.Decimal `json:"priceDiscount,omitempty"`
	Count         int              `json:"count"`
	MainImage     *Image           `json:"mainImage,omitempty"`
	Images        []Image          `json:"images,omitempty"`
	Categories    []Category       `json:"categories,omitempty"`
	Brand         *Brand           `json:"brand,omitempty"`
	Variants      []ProductVariant `json:"product_variants,omitempty"`
	CreatedAt     string           `json:"createdAt,omitempty"`
	UpdatedAt     string           `json:"updatedAt,omitempty"`
}

// EffectivePrice is the price a buyer pays: the discounted price when the
// discount flag is set and a discount price exists, the list price otherwise.
func (p Product) EffectivePrice() decimal.Decimal {
	if p.IsDiscount && p.PriceDiscount != nil {
		return *p.PriceDiscount
	}
	return p.Price
}

// Meta wraps the CMS pagination block.
type Meta struct {
	Pagination pagination.Meta `json:"pagination"`
}

// ProductList is the collection response shape for listing fetches.
type ProductList struct {
	Data []Product `json:"data"`
	Meta Meta      `json:"meta"`
}

type CategoryList struct {
	Data []Category `json:"data"`
	Meta Meta       `json:"meta"`
}

type BrandList struct {
	Data []Brand `json:"data"`
	Meta Meta    `json:"meta"`
}

// EmptyProductList is the degraded response used when a listing fetch fails.
func EmptyProductList() *ProductList {
	return &ProductList{
		Data: []Product{},
		Meta: Meta{Pagination: pagination.EmptyMeta()},
	}
}
