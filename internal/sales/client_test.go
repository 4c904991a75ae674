package sales

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/bautizosmaitte/storefront-api/pkg/config"
	pkgerrors "github.com/bautizosmaitte/storefront-api/pkg/errors"
)

func clientFor(server *httptest.Server) *Client {
	return NewClient(config.CMSConfig{BaseURL: "http://unused"}, nil, WithBaseURL(server.URL))
}

func testSaleData() SaleData {
	return SaleData{
		Name:     "Ana",
		LastName: "Pérez",
		Mail:     "ana@example.cl",
		Phone:    "+56912345678",
		Region:   "Metropolitana",
		Products: []SaleProduct{
			{Name: "Vestido Bautizo", Quantity: 1, UnitPrice: decimal.NewFromInt(19990)},
		},
	}
}

func TestCreateSalePostsOrderForm(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/sale" {
			t.Errorf("unexpected %s %s", r.Method, r.URL.Path)
		}
		body, _ := io.ReadAll(r.Body)
		var got SaleData
		if err := json.Unmarshal(body, &got); err != nil {
			t.Errorf("invalid payload: %v", err)
		}
		if got.Type != "online" {
			t.Errorf("expected type defaulted to online, got %q", got.Type)
		}
		if len(got.Products) != 1 || got.Products[0].Name != "Vestido Bautizo" {
			t.Errorf("unexpected products %+v", got.Products)
		}
		_ = json.NewEncoder(w).Encode(map[string]any{"url": "/carrito/exito", "saleId": 42})
	}))
	defer server.Close()

	result, err := clientFor(server).CreateSale(context.Background(), testSaleData())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.SaleID != 42 || result.URL != "/carrito/exito" {
		t.Fatalf("unexpected result %+v", result)
	}
}

func TestCreateSaleRejectsEmptyOrderLocally(t *testing.T) {
	t.Parallel()

	called := false
	server := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		called = true
	}))
	defer server.Close()

	_, err := clientFor(server).CreateSale(context.Background(), SaleData{Name: "Ana"})
	if !pkgerrors.HasCode(err, pkgerrors.CodeValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if called {
		t.Fatal("expected no network call for an empty order")
	}
}

func TestCreateSalePreservesCMSErrorMessage(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_ = json.NewEncoder(w).Encode(map[string]any{"message": "región inválida"})
	}))
	defer server.Close()

	_, err := clientFor(server).CreateSale(context.Background(), testSaleData())
	if !pkgerrors.HasCode(err, pkgerrors.CodeDependency) {
		t.Fatalf("expected dependency error, got %v", err)
	}
	typed := pkgerrors.As(err)
	if typed == nil {
		t.Fatalf("expected typed error, got %T", err)
	}
	if typed.Unwrap() == nil || typed.Unwrap().Error() != "región inválida" {
		t.Fatalf("expected CMS message preserved, got %v", typed.Unwrap())
	}
}

func TestSaleByIDExpandsRelations(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/sales/42" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if r.URL.Query().Get("populate") != "*" {
			t.Errorf("expected populate=*, got %s", r.URL.RawQuery)
		}
		_ = json.NewEncoder(w).Encode(map[string]any{
			"data": map[string]any{"id": 42, "state": "PorPagar", "mail": "ana@example.cl"},
		})
	}))
	defer server.Close()

	sale, err := clientFor(server).SaleByID(context.Background(), 42)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if sale.ID != 42 || sale.State != StatePending {
		t.Fatalf("unexpected sale %+v", sale)
	}
}

func TestSaleByIDNotFound(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.NotFound(w, nil)
	}))
	defer server.Close()

	_, err := clientFor(server).SaleByID(context.Background(), 99)
	if !pkgerrors.HasCode(err, pkgerrors.CodeNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}

	_, err = clientFor(server).SaleByID(context.Background(), 0)
	if !pkgerrors.HasCode(err, pkgerrors.CodeValidation) {
		t.Fatalf("expected validation error for zero id, got %v", err)
	}
}

func TestUpdateSaleStatusReportsBoolean(t *testing.T) {
	t.Parallel()

	var gotBody []byte
	status := http.StatusOK
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPut || r.URL.Path != "/sales/42" {
			t.Errorf("unexpected %s %s", r.Method, r.URL.Path)
		}
		gotBody, _ = io.ReadAll(r.Body)
		w.WriteHeader(status)
	}))
	defer server.Close()

	client := clientFor(server)
	if ok := client.UpdateSaleStatus(context.Background(), 42, StateReserved); !ok {
		t.Fatal("expected successful transition")
	}
	if string(gotBody) != `{"data":{"state":"Reservado"}}` {
		t.Fatalf("unexpected payload %s", gotBody)
	}

	status = http.StatusInternalServerError
	if ok := client.UpdateSaleStatus(context.Background(), 42, StateShipped); ok {
		t.Fatal("expected failed transition to report false")
	}

	// Invalid input never reaches the network.
	if ok := client.UpdateSaleStatus(context.Background(), 42, State("Perdido")); ok {
		t.Fatal("expected unknown state rejected")
	}
	if ok := client.UpdateSaleStatus(context.Background(), 0, StateReserved); ok {
		t.Fatal("expected zero id rejected")
	}
}

func TestStateValidation(t *testing.T) {
	t.Parallel()

	valid := []State{StatePending, StateReserved, StateShipped, StateDelivered, StateCancelled}
	for _, s := range valid {
		if !s.Valid() {
			t.Fatalf("expected %q valid", s)
		}
	}
	if State("Otro").Valid() {
		t.Fatal("expected unknown state invalid")
	}
}
