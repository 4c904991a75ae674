// Package checkout turns a session's cart into a payment transaction: it
// derives order totals, guards the obvious local failures before any
// network call, and hands the buyer off to the payment provider's hosted
// payment page.
package checkout

import (
	"context"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/bautizosmaitte/storefront-api/internal/cart"
	pkgerrors "github.com/bautizosmaitte/storefront-api/pkg/errors"
	"github.com/bautizosmaitte/storefront-api/pkg/logger"
	"github.com/bautizosmaitte/storefront-api/pkg/ventipay"
)

// taxRate is the Chilean IVA applied over the subtotal.
var taxRate = decimal.NewFromFloat(0.19)

const currency = "CLP"

// Paths under the storefront origin the provider sends the buyer back to.
const (
	callbackPath = "/carrito/callback"
	returnPath   = "/carrito/exito"
	cancelPath   = "/carrito"
)

// CartReader is the slice of the cart service checkout needs.
type CartReader interface {
	Get(ctx context.Context, sessionID string) (cart.View, error)
}

// TransactionCreator is the slice of the payment client checkout needs.
type TransactionCreator interface {
	CreateTransaction(ctx context.Context, req ventipay.TransactionRequest) (*ventipay.Transaction, error)
}

// Totals is the order math derived from the cart: subtotal, 19% tax,
// always-free shipping, and their sum.
type Totals struct {
	Subtotal decimal.Decimal `json:"subtotal"`
	Tax      decimal.Decimal `json:"tax"`
	Shipping decimal.Decimal `json:"shipping"`
	Total    decimal.Decimal `json:"total"`
}

// Request carries the per-checkout inputs gathered at the HTTP boundary.
type Request struct {
	Origin        string `json:"origin"`
	CustomerEmail string `json:"customerEmail"`
}

// Result is what the browser needs to continue payment.
type Result struct {
	PaymentURL    string `json:"paymentUrl"`
	TransactionID string `json:"transactionId"`
	Status        string `json:"status"`
	Totals        Totals `json:"totals"`
}

type Service struct {
	carts    CartReader
	payments TransactionCreator
	logg     *logger.Logger
}

func NewService(carts CartReader, payments TransactionCreator, logg *logger.Logger) *Service {
	return &Service{carts: carts, payments: payments, logg: logg}
}

// Totals computes the order math for a session's current cart without
// starting a payment.
func (s *Service) Totals(ctx context.Context, sessionID string) (Totals, error) {
	view, err := s.carts.Get(ctx, sessionID)
	if err != nil {
		return Totals{}, err
	}
	return totalsFor(view), nil
}

// Checkout creates a payment transaction for the session's cart. An empty
// cart is rejected with a user-visible error before any network call. The
// provider's payment URL is returned for the browser to navigate to; there
// is no automatic retry on failure.
func (s *Service) Checkout(ctx context.Context, sessionID string, req Request) (*Result, error) {
	view, err := s.carts.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if view.TotalItems == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeEmptyCart, "el carrito está vacío")
	}

	totals := totalsFor(view)
	origin := strings.TrimRight(req.Origin, "/")
	if origin == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "request origin is required")
	}

	tx, err := s.payments.CreateTransaction(ctx, ventipay.TransactionRequest{
		Amount:        minorUnits(totals.Total),
		Currency:      currency,
		Description:   orderDescription(view.TotalItems),
		CustomerEmail: req.CustomerEmail,
		CallbackURL:   origin + callbackPath,
		ReturnURL:     origin + returnPath,
		CancelURL:     origin + cancelPath,
	})
	if err != nil {
		if s.logg != nil {
			s.logg.Error(s.logg.WithSessionID(ctx, sessionID), "payment transaction failed", err)
		}
		return nil, err
	}

	return &Result{
		PaymentURL:    tx.PaymentURL,
		TransactionID: tx.ID,
		Status:        tx.Status,
		Totals:        totals,
	}, nil
}

func totalsFor(view cart.View) Totals {
	subtotal := view.TotalPrice
	tax := subtotal.Mul(taxRate)
	shipping := decimal.Zero
	return Totals{
		Subtotal: subtotal,
		Tax:      tax,
		Shipping: shipping,
		Total:    subtotal.Add(tax).Add(shipping),
	}
}

// minorUnits converts a total to the provider's integer amount.
func minorUnits(total decimal.Decimal) int64 {
	return total.Mul(decimal.NewFromInt(100)).Round(0).IntPart()
}

func orderDescription(totalItems int) string {
	if totalItems == 1 {
		return "Pedido de 1 artículo"
	}
	return fmt.Sprintf("Pedido de %d artículos", totalItems)
}
