package pagination

const (
	// DefaultPage is the first page served when none is requested.
	DefaultPage = 1
	// DefaultPageSize matches the storefront grid size.
	DefaultPageSize = 12
	// MaxPageSize caps how many products a single listing request can pull.
	MaxPageSize = 100
)

// Meta mirrors the CMS pagination block returned with every collection.
type Meta struct {
	Page      int `json:"page"`
	PageSize  int `json:"pageSize"`
	PageCount int `json:"pageCount"`
	Total     int `json:"total"`
}

// NormalizePage enforces the one-based page floor.
func NormalizePage(page int) int {
	if page < 1 {
		return DefaultPage
	}
	return page
}

// NormalizePageSize enforces the configured default and maximum page sizes.
func NormalizePageSize(size int) int {
	if size <= 0 {
		return DefaultPageSize
	}
	if size > MaxPageSize {
		return MaxPageSize
	}
	return size
}

// EmptyMeta is the pagination block used when a listing fetch degrades to
// an empty result set.
func EmptyMeta() Meta {
	return Meta{
		Page:      DefaultPage,
		PageSize:  DefaultPageSize,
		PageCount: 1,
		Total:     0,
	}
}
