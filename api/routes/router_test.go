package routes

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/bautizosmaitte/storefront-api/internal/cart"
	"github.com/bautizosmaitte/storefront-api/internal/catalog"
	"github.com/bautizosmaitte/storefront-api/internal/checkout"
	"github.com/bautizosmaitte/storefront-api/internal/favorites"
	"github.com/bautizosmaitte/storefront-api/internal/sales"
	"github.com/bautizosmaitte/storefront-api/pkg/config"
	pkgerrors "github.com/bautizosmaitte/storefront-api/pkg/errors"
	"github.com/bautizosmaitte/storefront-api/pkg/kvstore"
	"github.com/bautizosmaitte/storefront-api/pkg/logger"
	"github.com/bautizosmaitte/storefront-api/pkg/pagination"
	"github.com/bautizosmaitte/storefront-api/pkg/ventipay"
)

type stubCatalog struct {
	products []catalog.Product
}

func (s *stubCatalog) Products(context.Context, catalog.Filters) (*catalog.ProductList, error) {
	return &catalog.ProductList{
		Data: s.products,
		Meta: catalog.Meta{Pagination: pagination.Meta{Page: 1, PageSize: 12, PageCount: 1, Total: len(s.products)}},
	}, nil
}

func (s *stubCatalog) ProductBySlug(_ context.Context, slug string) (*catalog.Product, error) {
	for i := range s.products {
		if s.products[i].Slug == slug {
			return &s.products[i], nil
		}
	}
	return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
}

func (s *stubCatalog) Categories(context.Context) (*catalog.CategoryList, error) {
	return &catalog.CategoryList{Data: []catalog.Category{}, Meta: catalog.Meta{Pagination: pagination.EmptyMeta()}}, nil
}

func (s *stubCatalog) Brands(context.Context) (*catalog.BrandList, error) {
	return &catalog.BrandList{Data: []catalog.Brand{}, Meta: catalog.Meta{Pagination: pagination.EmptyMeta()}}, nil
}

type stubPayments struct {
	lastRequest ventipay.TransactionRequest
}

func (s *stubPayments) CreateTransaction(_ context.Context, req ventipay.TransactionRequest) (*ventipay.Transaction, error) {
	s.lastRequest = req
	return &ventipay.Transaction{ID: "trx_1", PaymentURL: "https://pay.example/trx_1", Status: "pending"}, nil
}

type stubSales struct{}

func (stubSales) CreateSale(context.Context, sales.SaleData) (*sales.CreateSaleResult, error) {
	return &sales.CreateSaleResult{URL: "https://pay.example/trx_2", SaleID: 7}, nil
}

func (stubSales) SaleByID(context.Context, int) (*sales.Sale, error) {
	return nil, pkgerrors.New(pkgerrors.CodeNotFound, "sale not found")
}

func (stubSales) UpdateSaleStatus(context.Context, int, sales.State) bool { return true }

func testConfig() *config.Config {
	return &config.Config{
		App: config.AppConfig{Env: config.AppEnvDev, Port: "0"},
		Session: config.SessionConfig{
			Secret:     "router-test-secret",
			Issuer:     "maitte-storefront",
			TTL:        time.Hour,
			CookieName: "maitte_session",
		},
		Site: config.SiteConfig{
			AllowedOrigins: []string{"http://localhost:4321"},
			PublicBaseURL:  "https://bautizosmaitte.cl",
		},
	}
}

func newTestServer(t *testing.T) (*httptest.Server, *http.Client) {
	t.Helper()

	logg := logger.New(logger.Options{ServiceName: "router-test", Level: zerolog.Disabled, Output: io.Discard})
	kv := kvstore.NewMemory()

	source := &stubCatalog{products: []catalog.Product{{
		ID:    10,
		Name:  "Vestido Bautizo",
		Slug:  "vestido-bautizo",
		Price: decimal.NewFromInt(19990),
		Count: 5,
	}}}
	catalogSvc := catalog.NewService(source, logg)
	cartSvc := cart.NewService(kv, logg)

	router := NewRouter(Deps{
		Config:    testConfig(),
		Logger:    logg,
		KV:        kv,
		Catalog:   catalogSvc,
		Cart:      cartSvc,
		Favorites: favorites.NewService(kv, logg),
		Checkout:  checkout.NewService(cartSvc, &stubPayments{}, logg),
		Sales:     stubSales{},
	})

	server := httptest.NewServer(router)
	t.Cleanup(server.Close)

	jar, err := cookiejar.New(nil)
	require.NoError(t, err)
	return server, &http.Client{Jar: jar}
}

func decodeData(t *testing.T, res *http.Response, out any) {
	t.Helper()
	defer res.Body.Close()
	var envelope struct {
		Data json.RawMessage `json:"data"`
	}
	require.NoError(t, json.NewDecoder(res.Body).Decode(&envelope))
	require.NoError(t, json.Unmarshal(envelope.Data, out))
}

func TestRouterPublicEndpoints(t *testing.T) {
	server, client := newTestServer(t)

	res, err := client.Get(server.URL + "/health/live")
	require.NoError(t, err)
	res.Body.Close()
	require.Equal(t, http.StatusOK, res.StatusCode)

	res, err = client.Get(server.URL + "/api/v1/site-config")
	require.NoError(t, err)
	res.Body.Close()
	require.Equal(t, http.StatusOK, res.StatusCode)

	res, err = client.Get(server.URL + "/api/v1/products")
	require.NoError(t, err)
	defer res.Body.Close()
	require.Equal(t, http.StatusOK, res.StatusCode)

	var listing catalog.ProductList
	require.NoError(t, json.NewDecoder(res.Body).Decode(&listing))
	require.Len(t, listing.Data, 1)
	require.Equal(t, "vestido-bautizo", listing.Data[0].Slug)
}

func TestRouterCartFlowSharesSession(t *testing.T) {
	server, client := newTestServer(t)

	body := bytes.NewBufferString(`{"slug":"vestido-bautizo","quantity":2}`)
	res, err := client.Post(server.URL+"/api/v1/cart/items", "application/json", body)
	require.NoError(t, err)
	res.Body.Close()
	require.Equal(t, http.StatusCreated, res.StatusCode)

	res, err = client.Get(server.URL + "/api/v1/cart")
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, res.StatusCode)

	var view cart.View
	decodeData(t, res, &view)
	require.Equal(t, 2, view.TotalItems)
	require.Equal(t, 2, view.Quantities["10"])

	res, err = client.Get(server.URL + "/api/v1/checkout/totals")
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, res.StatusCode)

	var totals checkout.Totals
	decodeData(t, res, &totals)
	require.True(t, totals.Subtotal.Equal(decimal.NewFromInt(39980)), "subtotal %s", totals.Subtotal)
}

func TestRouterCheckoutUsesRequestOrigin(t *testing.T) {
	server, client := newTestServer(t)

	body := bytes.NewBufferString(`{"slug":"vestido-bautizo"}`)
	res, err := client.Post(server.URL+"/api/v1/cart/items", "application/json", body)
	require.NoError(t, err)
	res.Body.Close()
	require.Equal(t, http.StatusCreated, res.StatusCode)

	req, err := http.NewRequest(http.MethodPost, server.URL+"/api/v1/checkout", bytes.NewBufferString(`{}`))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Origin", "http://localhost:4321")

	res, err = client.Do(req)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, res.StatusCode)

	var result checkout.Result
	decodeData(t, res, &result)
	require.Equal(t, "https://pay.example/trx_1", result.PaymentURL)
}

func TestRouterCheckoutEmptyCartRejected(t *testing.T) {
	server, client := newTestServer(t)

	req, err := http.NewRequest(http.MethodPost, server.URL+"/api/v1/checkout", bytes.NewBufferString(`{}`))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")

	res, err := client.Do(req)
	require.NoError(t, err)
	defer res.Body.Close()
	require.Equal(t, http.StatusUnprocessableEntity, res.StatusCode)
}

func TestRouterSessionCookieIssuedOnce(t *testing.T) {
	server, client := newTestServer(t)

	res, err := client.Get(server.URL + "/api/v1/cart")
	require.NoError(t, err)
	res.Body.Close()
	require.NotEmpty(t, res.Cookies(), "first request should mint a session cookie")

	res, err = client.Get(server.URL + "/api/v1/cart")
	require.NoError(t, err)
	res.Body.Close()
	require.Empty(t, res.Cookies(), "valid cookie should be reused, not replaced")
}
