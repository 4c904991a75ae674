package controllers

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/bautizosmaitte/storefront-api/api/responses"
	"github.com/bautizosmaitte/storefront-api/api/validators"
	"github.com/bautizosmaitte/storefront-api/internal/catalog"
	"github.com/bautizosmaitte/storefront-api/pkg/logger"
	"github.com/bautizosmaitte/storefront-api/pkg/pagination"
)

// ListProducts serves the filtered product listing. The catalog service
// already degrades upstream failures to an empty collection, so this
// handler only fails on bad input.
func ListProducts(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		filters, err := filtersFromQuery(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		list := svc.Products(r.Context(), filters)
		responses.WriteCollection(w, list.Data, list.Meta)
	}
}

func ProductBySlug(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		slug := chi.URLParam(r, "slug")

		product, err := svc.ProductBySlug(r.Context(), slug)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, product)
	}
}

func filtersFromQuery(r *http.Request) (catalog.Filters, error) {
	query := r.URL.Query()
	filters := catalog.Filters{
		Category:  strings.TrimSpace(query.Get("category")),
		Brand:     strings.TrimSpace(query.Get("brand")),
		Search:    strings.TrimSpace(query.Get("search")),
		SortBy:    strings.TrimSpace(query.Get("sortBy")),
		SortOrder: strings.TrimSpace(query.Get("sortOrder")),
	}

	var err error
	if filters.MinPrice, err = validators.ParseQueryDecimal(r, "minPrice"); err != nil {
		return catalog.Filters{}, err
	}
	if filters.MaxPrice, err = validators.ParseQueryDecimal(r, "maxPrice"); err != nil {
		return catalog.Filters{}, err
	}
	if filters.IsFeatured, err = validators.ParseQueryBool(r, "isFeatured"); err != nil {
		return catalog.Filters{}, err
	}
	if filters.IsDiscount, err = validators.ParseQueryBool(r, "isDiscount"); err != nil {
		return catalog.Filters{}, err
	}
	if filters.Page, err = validators.ParseQueryInt(r, "page", pagination.DefaultPage, 1, 10000); err != nil {
		return catalog.Filters{}, err
	}
	if filters.PageSize, err = validators.ParseQueryInt(r, "pageSize", pagination.DefaultPageSize, 1, pagination.MaxPageSize); err != nil {
		return catalog.Filters{}, err
	}
	// Sentinel category/brand values from older clients are stripped here
	// so the query builder only ever sees real constraints.
	return filters.Normalized(), nil
}
