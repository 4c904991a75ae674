package cart

import (
	"testing"

	"github.com/shopspring/decimal"

	"github.com/bautizosmaitte/storefront-api/internal/catalog"
	pkgerrors "github.com/bautizosmaitte/storefront-api/pkg/errors"
)

func dec(value string) decimal.Decimal {
	d, err := decimal.NewFromString(value)
	if err != nil {
		panic(err)
	}
	return d
}

func testProduct() catalog.Product {
	return catalog.Product{
		ID:    10,
		Name:  "Vestido Bautizo",
		Slug:  "vestido-bautizo",
		Price: dec("19990"),
		Count: 5,
	}
}

func discountedProduct() catalog.Product {
	discount := dec("14990")
	p := testProduct()
	p.IsDiscount = true
	p.PriceDiscount = &discount
	return p
}

func TestAddItemAccumulatesOnOneLine(t *testing.T) {
	t.Parallel()

	store := NewStore()
	product := testProduct()

	for i := 0; i < 3; i++ {
		if err := store.AddItem(product, nil, 1); err != nil {
			t.Fatalf("add %d: %v", i, err)
		}
	}

	if got := len(store.Items()); got != 1 {
		t.Fatalf("expected one line, got %d", got)
	}
	if got := store.ItemQuantity("10"); got != 3 {
		t.Fatalf("expected quantity 3, got %d", got)
	}
	if got := store.TotalItems(); got != 3 {
		t.Fatalf("expected 3 total items, got %d", got)
	}
}

func TestAddItemUsesDiscountPrice(t *testing.T) {
	t.Parallel()

	store := NewStore()
	if err := store.AddItem(discountedProduct(), nil, 2); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	line := store.Items()[0]
	if !line.Price.Equal(dec("14990")) {
		t.Fatalf("expected discounted unit price, got %s", line.Price)
	}
	if !line.OriginalPrice.Equal(dec("19990")) {
		t.Fatalf("expected original price kept, got %s", line.OriginalPrice)
	}
	if !store.TotalPrice().Equal(dec("29980")) {
		t.Fatalf("expected total 29980, got %s", store.TotalPrice())
	}
}

func TestAddItemRejectsBeyondStockCeiling(t *testing.T) {
	t.Parallel()

	store := NewStore()
	product := testProduct() // stock 5

	if err := store.AddItem(product, nil, 4); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	err := store.AddItem(product, nil, 2)
	if !pkgerrors.HasCode(err, pkgerrors.CodeStockExceeded) {
		t.Fatalf("expected stock exceeded, got %v", err)
	}
	// Rejection leaves state unchanged; it never clamps to the ceiling.
	if got := store.ItemQuantity("10"); got != 4 {
		t.Fatalf("expected quantity untouched at 4, got %d", got)
	}
}

func TestAddItemVariantsAreSeparateLines(t *testing.T) {
	t.Parallel()

	store := NewStore()
	product := testProduct()
	small := &catalog.ProductVariant{ID: 1, Name: "Talla 2", Count: 2}
	large := &catalog.ProductVariant{ID: 2, Name: "Talla 4", Count: 3}

	if err := store.AddItem(product, small, 1); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := store.AddItem(product, large, 1); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if got := len(store.Items()); got != 2 {
		t.Fatalf("expected two variant lines, got %d", got)
	}
	if got := store.ItemQuantity("10-1"); got != 1 {
		t.Fatalf("expected variant line quantity 1, got %d", got)
	}

	// Variant ceiling, not the product's, bounds a variant line.
	err := store.AddItem(product, small, 2)
	if !pkgerrors.HasCode(err, pkgerrors.CodeStockExceeded) {
		t.Fatalf("expected variant ceiling rejection, got %v", err)
	}
}

func TestUpdateQuantityOverwrites(t *testing.T) {
	t.Parallel()

	store := NewStore()
	if err := store.AddItem(testProduct(), nil, 2); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := store.UpdateQuantity("10", 5); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := store.ItemQuantity("10"); got != 5 {
		t.Fatalf("expected overwrite to 5, got %d", got)
	}

	// No variant on the line means no ceiling for updates, even past the
	// product's stock count.
	if err := store.UpdateQuantity("10", 50); err != nil {
		t.Fatalf("expected unlimited ceiling without variant, got %v", err)
	}
}

func TestUpdateQuantityChecksVariantCeiling(t *testing.T) {
	t.Parallel()

	store := NewStore()
	variant := &catalog.ProductVariant{ID: 3, Name: "Talla 6", Count: 2}
	if err := store.AddItem(testProduct(), variant, 1); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	err := store.UpdateQuantity("10-3", 3)
	if !pkgerrors.HasCode(err, pkgerrors.CodeStockExceeded) {
		t.Fatalf("expected stock exceeded, got %v", err)
	}
	if got := store.ItemQuantity("10-3"); got != 1 {
		t.Fatalf("expected quantity untouched, got %d", got)
	}
}

func TestUpdateQuantityZeroRemoves(t *testing.T) {
	t.Parallel()

	for _, quantity := range []int{0, -1, -7} {
		store := NewStore()
		if err := store.AddItem(testProduct(), nil, 2); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if err := store.UpdateQuantity("10", quantity); err != nil {
			t.Fatalf("quantity %d: unexpected error: %v", quantity, err)
		}
		if got := store.ItemQuantity("10"); got != 0 {
			t.Fatalf("quantity %d: expected removal, got %d", quantity, got)
		}
		if got := len(store.Items()); got != 0 {
			t.Fatalf("quantity %d: expected no lines, got %d", quantity, got)
		}
	}
}

func TestRemoveItemAndRemoveAll(t *testing.T) {
	t.Parallel()

	store := NewStore()
	other := testProduct()
	other.ID = 11
	other.Slug = "ajuar"
	if err := store.AddItem(testProduct(), nil, 1); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := store.AddItem(other, nil, 1); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	store.RemoveItem("10")
	if got := store.ItemQuantity("10"); got != 0 {
		t.Fatalf("expected removed quantity to read 0, got %d", got)
	}
	if got := len(store.Items()); got != 1 {
		t.Fatalf("expected one remaining line, got %d", got)
	}

	store.RemoveItem("does-not-exist") // no-op

	store.RemoveAll()
	if store.TotalItems() != 0 || len(store.Items()) != 0 {
		t.Fatalf("expected empty cart, got %d items", store.TotalItems())
	}
	if !store.TotalPrice().IsZero() {
		t.Fatalf("expected zero total, got %s", store.TotalPrice())
	}
}

func TestTotalPriceSumsAcrossLines(t *testing.T) {
	t.Parallel()

	store := NewStore()
	first := testProduct() // 19990
	second := catalog.Product{ID: 20, Name: "Ajuar", Slug: "ajuar", Price: dec("9990"), Count: 10}

	if err := store.AddItem(first, nil, 2); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := store.AddItem(second, nil, 3); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := dec("19990").Mul(decimal.NewFromInt(2)).Add(dec("9990").Mul(decimal.NewFromInt(3)))
	if !store.TotalPrice().Equal(want) {
		t.Fatalf("expected %s, got %s", want, store.TotalPrice())
	}
}

func TestSnapshotRestoreRoundTrip(t *testing.T) {
	t.Parallel()

	store := NewStore()
	variant := &catalog.ProductVariant{ID: 1, Name: "Talla 2", Count: 4}
	if err := store.AddItem(testProduct(), variant, 2); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	restored := NewStore()
	restored.Restore(store.Snapshot())

	if got := restored.ItemQuantity("10-1"); got != 2 {
		t.Fatalf("expected restored quantity 2, got %d", got)
	}
	if !restored.TotalPrice().Equal(store.TotalPrice()) {
		t.Fatalf("expected equal totals, got %s vs %s", restored.TotalPrice(), store.TotalPrice())
	}
}

func TestRestoreDropsOrphanedEntries(t *testing.T) {
	t.Parallel()

	store := NewStore()
	store.Restore(Snapshot{
		Items: []Line{
			{ID: "1", Name: "kept", Price: dec("100")},
			{ID: "2", Name: "no quantity", Price: dec("200")},
		},
		Quantities: map[string]int{"1": 1, "ghost": 3},
	})

	if got := len(store.Items()); got != 1 {
		t.Fatalf("expected only the consistent line, got %d", got)
	}
	if got := store.TotalItems(); got != 1 {
		t.Fatalf("expected orphaned quantity dropped, got %d", got)
	}
}
