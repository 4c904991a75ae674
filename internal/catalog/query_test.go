package catalog

import (
	"strings"
	"testing"

	"github.com/shopspring/decimal"
)

func decPtr(value string) *decimal.Decimal {
	d := decimal.RequireFromString(value)
	return &d
}

func TestBuildProductsQueryDefaults(t *testing.T) {
	t.Parallel()

	got := BuildProductsQuery(Filters{})
	want := "/products?filters[active][$eq]=true&filters[isOnline][$eq]=true" +
		"&sort=createdAt:desc&pagination[page]=1&pagination[pageSize]=12&populate=*"
	if got != want {
		t.Fatalf("unexpected query\n got: %s\nwant: %s", got, want)
	}
}

func TestBuildProductsQuerySentinelsOmitClauses(t *testing.T) {
	t.Parallel()

	got := BuildProductsQuery(Filters{Category: "todos", Brand: "todas"})
	if strings.Contains(got, "categories") || strings.Contains(got, "brand") {
		t.Fatalf("sentinel values must not produce clauses: %s", got)
	}
}

func TestBuildProductsQueryAllFilters(t *testing.T) {
	t.Parallel()

	got := BuildProductsQuery(Filters{
		Category:   "vestidos",
		Brand:      "maitte",
		MinPrice:   decPtr("10000"),
		MaxPrice:   decPtr("50000"),
		IsFeatured: true,
		IsDiscount: true,
		Search:     "vestido blanco",
		SortBy:     SortByPrice,
		SortOrder:  SortAsc,
		Page:       3,
		PageSize:   24,
	})

	for _, clause := range []string{
		"filters[categories][slug][$eq]=vestidos",
		"filters[brand][slug][$eq]=maitte",
		"filters[price][$gte]=10000",
		"filters[price][$lte]=50000",
		"filters[isFeatured][$eq]=true",
		"filters[isDiscount][$eq]=true",
		"filters[name][$containsi]=vestido%20blanco",
		"sort=price:asc",
		"pagination[page]=3",
		"pagination[pageSize]=24",
		"populate=*",
	} {
		if !strings.Contains(got, clause) {
			t.Fatalf("missing clause %q in %s", clause, got)
		}
	}
}

func TestBuildProductsQuerySearchUsesPercentEncoding(t *testing.T) {
	t.Parallel()

	got := BuildProductsQuery(Filters{Search: "a b"})
	if !strings.Contains(got, "filters[name][$containsi]=a%20b") {
		t.Fatalf("expected percent-encoded space, got %s", got)
	}
	if strings.Contains(got, "a+b") {
		t.Fatalf("plus-encoding must not be used, got %s", got)
	}
}

func TestBuildProductsQueryClampsPaging(t *testing.T) {
	t.Parallel()

	got := BuildProductsQuery(Filters{Page: -2, PageSize: 10000})
	if !strings.Contains(got, "pagination[page]=1") {
		t.Fatalf("expected page floor, got %s", got)
	}
	if !strings.Contains(got, "pagination[pageSize]=100") {
		t.Fatalf("expected page size cap, got %s", got)
	}
}

func TestBuildProductBySlugQuery(t *testing.T) {
	t.Parallel()

	got := BuildProductBySlugQuery("vestido-bautizo")
	want := "/products?filters[slug][$eq]=vestido-bautizo&filters[active][$eq]=true&filters[isOnline][$eq]=true&populate=*"
	if got != want {
		t.Fatalf("unexpected query %s", got)
	}
}

func TestBuildCollectionQueries(t *testing.T) {
	t.Parallel()

	if got := BuildCategoriesQuery(); got != "/categories?sort=name:asc&populate=*" {
		t.Fatalf("unexpected categories query %s", got)
	}
	if got := BuildBrandsQuery(); got != "/brands?sort=name:asc&populate=*" {
		t.Fatalf("unexpected brands query %s", got)
	}
}
