package controllers

import (
	"context"
	"net/http"

	"github.com/bautizosmaitte/storefront-api/api/responses"
	"github.com/bautizosmaitte/storefront-api/api/validators"
	"github.com/bautizosmaitte/storefront-api/internal/sales"
	pkgerrors "github.com/bautizosmaitte/storefront-api/pkg/errors"
	"github.com/bautizosmaitte/storefront-api/pkg/logger"
)

// SalesClient is the CMS sale surface the handlers use.
type SalesClient interface {
	CreateSale(ctx context.Context, data sales.SaleData) (*sales.CreateSaleResult, error)
	SaleByID(ctx context.Context, saleID int) (*sales.Sale, error)
	UpdateSaleStatus(ctx context.Context, saleID int, state sales.State) bool
}

type saleCreateRequest struct {
	Name       string              `json:"name" validate:"required"`
	LastName   string              `json:"lastName" validate:"required"`
	Mail       string              `json:"mail" validate:"required,email"`
	Phone      string              `json:"phone" validate:"required"`
	Address    string              `json:"adress" validate:"required"`
	PostalCode string              `json:"postalCode,omitempty"`
	Region     string              `json:"region" validate:"required"`
	Products   []sales.SaleProduct `json:"products" validate:"required,min=1,dive"`
	Others     string              `json:"others,omitempty"`
}

type saleStatusRequest struct {
	State string `json:"state" validate:"required,oneof=PorPagar Reservado Enviado Entregado Cancelado"`
}

func SaleCreate(client SalesClient, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		var body saleCreateRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		result, err := client.CreateSale(ctx, sales.SaleData{
			Name:       body.Name,
			LastName:   body.LastName,
			Mail:       body.Mail,
			Phone:      body.Phone,
			Address:    body.Address,
			PostalCode: body.PostalCode,
			Region:     body.Region,
			Products:   body.Products,
			Others:     body.Others,
			Type:       "online",
		})
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, result)
	}
}

func SaleDetail(client SalesClient, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		saleID, err := validators.ParseURLParamInt(r, "saleID")
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		sale, err := client.SaleByID(ctx, saleID)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, sale)
	}
}

func SaleUpdateStatus(client SalesClient, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		saleID, err := validators.ParseURLParamInt(r, "saleID")
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		var body saleStatusRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		if ok := client.UpdateSaleStatus(ctx, saleID, sales.State(body.State)); !ok {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeDependency, "sale status update failed"))
			return
		}
		responses.WriteSuccess(w, map[string]any{"saleId": saleID, "state": body.State})
	}
}
