package favorites

import (
	"testing"

	"github.com/shopspring/decimal"

	"github.com/bautizosmaitte/storefront-api/internal/catalog"
)

func dec(value string) decimal.Decimal {
	d, err := decimal.NewFromString(value)
	if err != nil {
		panic(err)
	}
	return d
}

func testProduct(id int) catalog.Product {
	return catalog.Product{
		ID:    id,
		Name:  "Vestido Bautizo",
		Slug:  "vestido-bautizo",
		Price: dec("19990"),
	}
}

func TestAddItemIsIdempotent(t *testing.T) {
	t.Parallel()

	store := NewStore()
	store.AddItem(testProduct(1))
	store.AddItem(testProduct(1))

	if got := store.TotalItems(); got != 1 {
		t.Fatalf("expected one entry, got %d", got)
	}
	if !store.IsFavorite(1) {
		t.Fatal("expected product 1 favorited")
	}
}

func TestToggleItemIsItsOwnInverse(t *testing.T) {
	t.Parallel()

	store := NewStore()
	product := testProduct(1)

	if favorited := store.ToggleItem(product); !favorited {
		t.Fatal("expected first toggle to favorite")
	}
	if favorited := store.ToggleItem(product); favorited {
		t.Fatal("expected second toggle to unfavorite")
	}
	if store.IsFavorite(1) || store.TotalItems() != 0 {
		t.Fatal("expected membership restored to prior state")
	}

	// Same involution starting from a favorited state.
	store.AddItem(product)
	store.ToggleItem(product)
	store.ToggleItem(product)
	if !store.IsFavorite(1) {
		t.Fatal("expected double toggle to restore favorited state")
	}
}

func TestEntryCapturesEffectivePrice(t *testing.T) {
	t.Parallel()

	discount := dec("14990")
	product := testProduct(1)
	product.IsDiscount = true
	product.PriceDiscount = &discount

	store := NewStore()
	store.AddItem(product)

	entry := store.Items()[0]
	if !entry.Price.Equal(discount) {
		t.Fatalf("expected effective price %s, got %s", discount, entry.Price)
	}
	if !entry.OriginalPrice.Equal(dec("19990")) {
		t.Fatalf("expected original price kept, got %s", entry.OriginalPrice)
	}
}

func TestRemoveItemAndRemoveAll(t *testing.T) {
	t.Parallel()

	store := NewStore()
	store.AddItem(testProduct(1))
	store.AddItem(testProduct(2))

	store.RemoveItem(1)
	if store.IsFavorite(1) {
		t.Fatal("expected product 1 removed")
	}
	if !store.IsFavorite(2) {
		t.Fatal("expected product 2 untouched")
	}

	store.RemoveItem(99) // no-op

	store.RemoveAll()
	if store.TotalItems() != 0 {
		t.Fatalf("expected empty set, got %d", store.TotalItems())
	}
}

func TestRestoreDeduplicates(t *testing.T) {
	t.Parallel()

	store := NewStore()
	store.Restore(Snapshot{Items: []Entry{
		{ProductID: 1, Name: "first"},
		{ProductID: 1, Name: "duplicate"},
		{ProductID: 2, Name: "second"},
	}})

	if got := store.TotalItems(); got != 2 {
		t.Fatalf("expected duplicates dropped, got %d entries", got)
	}
	if store.Items()[0].Name != "first" {
		t.Fatalf("expected first occurrence kept, got %+v", store.Items()[0])
	}
}
