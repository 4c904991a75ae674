package controllers

import (
	"context"
	"net/http"

	"github.com/bautizosmaitte/storefront-api/api/middleware"
	"github.com/bautizosmaitte/storefront-api/api/responses"
	"github.com/bautizosmaitte/storefront-api/api/validators"
	"github.com/bautizosmaitte/storefront-api/internal/catalog"
	"github.com/bautizosmaitte/storefront-api/internal/favorites"
	"github.com/bautizosmaitte/storefront-api/pkg/logger"
)

// FavoritesService is the session-scoped favorites surface the handlers use.
type FavoritesService interface {
	Get(ctx context.Context, sessionID string) (favorites.View, error)
	ToggleItem(ctx context.Context, sessionID string, product catalog.Product) (favorites.View, bool, error)
	RemoveItem(ctx context.Context, sessionID string, productID int) (favorites.View, error)
	RemoveAll(ctx context.Context, sessionID string) (favorites.View, error)
}

type favoritesToggleRequest struct {
	Slug string `json:"slug" validate:"required"`
}

type favoritesToggleResponse struct {
	Favorited  bool              `json:"favorited"`
	Items      []favorites.Entry `json:"items"`
	TotalItems int               `json:"totalItems"`
}

func FavoritesFetch(svc FavoritesService, logg *logger.Logger) http.HandlerFunc {
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

func FavoritesToggle(svc FavoritesService, finder ProductFinder, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		sid := middleware.SessionIDFromContext(ctx)

		var body favoritesToggleRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		product, err := finder.ProductBySlug(ctx, body.Slug)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		view, favorited, err := svc.ToggleItem(ctx, sid, *product)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, favoritesToggleResponse{
			Favorited:  favorited,
			Items:      view.Items,
			TotalItems: view.TotalItems,
		})
	}
}

func FavoritesRemove(svc FavoritesService, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		sid := middleware.SessionIDFromContext(ctx)

		productID, err := validators.ParseURLParamInt(r, "productID")
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		view, err := svc.RemoveItem(ctx, sid, productID)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, view)
	}
}

func FavoritesClear(svc FavoritesService, logg *logger.Logger) http.HandlerFunc {
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
