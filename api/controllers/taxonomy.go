package controllers

import (
	"net/http"

	"github.com/bautizosmaitte/storefront-api/api/responses"
	"github.com/bautizosmaitte/storefront-api/internal/catalog"
	"github.com/bautizosmaitte/storefront-api/pkg/logger"
)

func ListCategories(svc catalog.Service, _ *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		list := svc.Categories(r.Context())
		responses.WriteCollection(w, list.Data, list.Meta)
	}
}

func ListBrands(svc catalog.Service, _ *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		list := svc.Brands(r.Context())
		responses.WriteCollection(w, list.Data, list.Meta)
	}
}
