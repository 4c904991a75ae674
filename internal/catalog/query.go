package catalog

import (
	"fmt"
	"net/url"
	"strings"
)

// BuildProductsQuery renders the filter state as a CMS listing query string,
// starting at the /products path. Only active constraints produce clauses;
// relations are always eagerly populated.
func BuildProductsQuery(filters Filters) string {
	f := filters.Normalized()

	var b strings.Builder
	b.WriteString("/products?filters[active][$eq]=true&filters[isOnline][$eq]=true")

	if f.Category != "" {
		fmt.Fprintf(&b, "&filters[categories][slug][$eq]=%s", escapeQueryValue(f.Category))
	}
	if f.Brand != "" {
		fmt.Fprintf(&b, "&filters[brand][slug][$eq]=%s", escapeQueryValue(f.Brand))
	}
	if f.MinPrice != nil {
		fmt.Fprintf(&b, "&filters[price][$gte]=%s", f.MinPrice.String())
	}
	if f.MaxPrice != nil {
		fmt.Fprintf(&b, "&filters[price][$lte]=%s", f.MaxPrice.String())
	}
	if f.IsFeatured {
		b.WriteString("&filters[isFeatured][$eq]=true")
	}
	if f.IsDiscount {
		b.WriteString("&filters[isDiscount][$eq]=true")
	}
	if f.Search != "" {
		fmt.Fprintf(&b, "&filters[name][$containsi]=%s", escapeQueryValue(f.Search))
	}

	fmt.Fprintf(&b, "&sort=%s:%s", escapeQueryValue(f.SortBy), escapeQueryValue(f.SortOrder))
	fmt.Fprintf(&b, "&pagination[page]=%d&pagination[pageSize]=%d", f.Page, f.PageSize)
	b.WriteString("&populate=*")

	return b.String()
}

// BuildProductBySlugQuery renders the single-product lookup for a slug.
func BuildProductBySlugQuery(slug string) string {
	return fmt.Sprintf(
		"/products?filters[slug][$eq]=%s&filters[active][$eq]=true&filters[isOnline][$eq]=true&populate=*",
		escapeQueryValue(slug),
	)
}

// BuildCategoriesQuery lists categories sorted by name with relations.
func BuildCategoriesQuery() string {
	return "/categories?sort=name:asc&populate=*"
}

// BuildBrandsQuery lists brands sorted by name with relations.
func BuildBrandsQuery() string {
	return "/brands?sort=name:asc&populate=*"
}

// escapeQueryValue percent-encodes a query value the way browsers encode
// URI components: spaces become %20, not "+".
func escapeQueryValue(value string) string {
	return strings.ReplaceAll(url.QueryEscape(value), "+", "%20")
}
