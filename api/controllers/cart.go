package controllers

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/bautizosmaitte/storefront-api/api/middleware"
	"github.com/bautizosmaitte/storefront-api/api/responses"
	"github.com/bautizosmaitte/storefront-api/api/validators"
	"github.com/bautizosmaitte/storefront-api/internal/cart"
	"github.com/bautizosmaitte/storefront-api/internal/catalog"
	pkgerrors "github.com/bautizosmaitte/storefront-api/pkg/errors"
	"github.com/bautizosmaitte/storefront-api/pkg/logger"
)

// CartService is the session-scoped cart surface the handlers use.
type CartService interface {
	Get(ctx context.Context, sessionID string) (cart.View, error)
	AddItem(ctx context.Context, sessionID string, product catalog.Product, variant *catalog.ProductVariant, quantity int) (cart.View, error)
	UpdateQuantity(ctx context.Context, sessionID, lineID string, quantity int) (cart.View, error)
	RemoveItem(ctx context.Context, sessionID, lineID string) (cart.View, error)
	RemoveAll(ctx context.Context, sessionID string) (cart.View, error)
}

// ProductFinder resolves the product a mutation refers to. The cart stores
// a snapshot of the product, so adds always go through the catalog.
type ProductFinder interface {
	ProductBySlug(ctx context.Context, slug string) (*catalog.Product, error)
}

type cartAddRequest struct {
	Slug      string `json:"slug" validate:"required"`
	VariantID int    `json:"variantId,omitempty" validate:"omitempty,min=1"`
	Quantity  int    `json:"quantity,omitempty" validate:"omitempty,min=1"`
}

type cartQuantityRequest struct {
	Quantity int `json:"quantity"`
}

func CartFetch(svc CartService, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sid := middleware.SessionIDFromContext(r.Context())

		view, err := svc.Get(r.Context(), sid)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, view)
	}
}

func CartAddItem(svc CartService, finder ProductFinder, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		sid := middleware.SessionIDFromContext(ctx)

		var body cartAddRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		if body.Quantity == 0 {
			body.Quantity = 1
		}

		product, err := finder.ProductBySlug(ctx, body.Slug)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		var variant *catalog.ProductVariant
		if body.VariantID != 0 {
			variant = findVariant(product, body.VariantID)
			if variant == nil {
				responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeNotFound, "product variant not found"))
				return
			}
		}

		view, err := svc.AddItem(ctx, sid, *product, variant, body.Quantity)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, view)
	}
}

func CartUpdateQuantity(svc CartService, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		sid := middleware.SessionIDFromContext(ctx)
		lineID := chi.URLParam(r, "lineID")

		var body cartQuantityRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		view, err := svc.UpdateQuantity(ctx, sid, lineID, body.Quantity)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, view)
	}
}

func CartRemoveItem(svc CartService, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		sid := middleware.SessionIDFromContext(ctx)

		view, err := svc.RemoveItem(ctx, sid, chi.URLParam(r, "lineID"))
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, view)
	}
}

func CartClear(svc CartService, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		sid := middleware.SessionIDFromContext(ctx)

		view, err := svc.RemoveAll(ctx, sid)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, view)
	}
}

func findVariant(product *catalog.Product, variantID int) *catalog.ProductVariant {
	for i := range product.Variants {
		if product.Variants[i].ID == variantID {
			return &product.Variants[i]
		}
	}
	return nil
}
