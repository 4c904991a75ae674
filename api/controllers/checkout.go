package controllers

import (
	"context"
	"net/http"
	"strings"

	"github.com/bautizosmaitte/storefront-api/api/middleware"
	"github.com/bautizosmaitte/storefront-api/api/responses"
	"github.com/bautizosmaitte/storefront-api/api/validators"
	"github.com/bautizosmaitte/storefront-api/internal/checkout"
	"github.com/bautizosmaitte/storefront-api/pkg/config"
	"github.com/bautizosmaitte/storefront-api/pkg/logger"
)

// CheckoutService is the orchestration surface the handler needs.
type CheckoutService interface {
	Totals(ctx context.Context, sessionID string) (checkout.Totals, error)
	Checkout(ctx context.Context, sessionID string, req checkout.Request) (*checkout.Result, error)
}

type checkoutRequest struct {
	CustomerEmail string `json:"customerEmail,omitempty" validate:"omitempty,email"`
}

// Checkout starts a payment for the session's cart and returns the
// provider's payment URL for the browser to navigate to.
func Checkout(svc CheckoutService, site config.SiteConfig, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		sid := middleware.SessionIDFromContext(ctx)

		var body checkoutRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		result, err := svc.Checkout(ctx, sid, checkout.Request{
			Origin:        requestOrigin(r, site),
			CustomerEmail: body.CustomerEmail,
		})
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, result)
	}
}

// CheckoutTotals previews the order math without creating a transaction.
func CheckoutTotals(svc CheckoutService, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		sid := middleware.SessionIDFromContext(ctx)

		totals, err := svc.Totals(ctx, sid)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, totals)
	}
}

// requestOrigin picks the origin the provider's redirect URLs are built
// from: the browser's Origin header when present, the configured public
// base URL otherwise.
func requestOrigin(r *http.Request, site config.SiteConfig) string {
	if origin := strings.TrimSpace(r.Header.Get("Origin")); origin != "" {
		return origin
	}
	return site.PublicBaseURL
}
