package catalog

import (
	"strings"

	"github.com/bautizosmaitte/storefront-api/pkg/pagination"
	"github.com/shopspring/decimal"
)

// Sentinel values older storefront clients send in place of "no filter".
// They are translated to absent values at the boundary; the query builder
// also tolerates them defensively.
const (
	CategoryAll = "todos"
	BrandAll    = "todas"
)

const (
	SortByCreatedAt = "createdAt"
	SortByPrice     = "price"
	SortByName      = "name"

	SortAsc  = "asc"
	SortDesc = "desc"
)

// Filters holds the recognized product listing filters. Zero values mean
// "no constraint"; sort and paging fall back to defaults when unset.
type Filters struct {
	Category   string           `json:"category,omitempty"`
	Brand      string           `json:"brand,omitempty"`
	MinPrice   *decimal.Decimal `json:"minPrice,omitempty"`
	MaxPrice   *decimal.Decimal `json:"maxPrice,omitempty"`
	IsFeatured bool             `json:"isFeatured,omitempty"`
	IsDiscount bool             `json:"isDiscount,omitempty"`
	Search     string           `json:"search,omitempty"`
	SortBy     string           `json:"sortBy,omitempty"`
	SortOrder  string           `json:"sortOrder,omitempty"`
	Page       int              `json:"page,omitempty"`
	PageSize   int              `json:"pageSize,omitempty"`
}

// DefaultFilters returns the unfiltered listing state.
func DefaultFilters() Filters {
	return Filters{
		SortBy:    SortByCreatedAt,
		SortOrder: SortDesc,
		Page:      pagination.DefaultPage,
		PageSize:  pagination.DefaultPageSize,
	}
}

// Normalized fills defaulted sort and paging fields and strips sentinels.
func (f Filters) Normalized() Filters {
	out := f
	if isSentinelCategory(out.Category) {
		out.Category = ""
	}
	if isSentinelBrand(out.Brand) {
		out.Brand = ""
	}
	if out.SortBy == "" {
		out.SortBy = SortByCreatedAt
	}
	if out.SortOrder == "" {
		out.SortOrder = SortDesc
	}
	out.Page = pagination.NormalizePage(out.Page)
	out.PageSize = pagination.NormalizePageSize(out.PageSize)
	return out
}

// HasActive reports whether any filter differs from its default.
func (f Filters) HasActive() bool {
	n := f.Normalized()
	if n.Category != "" || n.Brand != "" || n.Search != "" {
		return true
	}
	if n.MinPrice != nil || n.MaxPrice != nil {
		return true
	}
	if n.IsFeatured || n.IsDiscount {
		return true
	}
	if n.SortBy != SortByCreatedAt || n.SortOrder != SortDesc {
		return true
	}
	if n.Page != pagination.DefaultPage || n.PageSize != pagination.DefaultPageSize {
		return true
	}
	return false
}

func isSentinelCategory(value string) bool {
	return strings.EqualFold(strings.TrimSpace(value), CategoryAll)
}

func isSentinelBrand(value string) bool {
	return strings.EqualFold(strings.TrimSpace(value), BrandAll)
}
