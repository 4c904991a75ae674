package cart

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/bautizosmaitte/storefront-api/internal/catalog"
	pkgerrors "github.com/bautizosmaitte/storefront-api/pkg/errors"
)

// Store is a plain cart state container. It is not safe for concurrent use;
// callers that share one across goroutines must serialize access themselves.
//
// Invariant: a line ID appears at most once in items and at most once in
// quantities, and every quantity key has a matching line.
type Store struct {
	items      []Line
	quantities map[string]int
}

// NewStore returns an empty cart.
func NewStore() *Store {
	return &Store{quantities: map[string]int{}}
}

// AddItem adds quantity units of a product (optionally a specific variant)
// to the cart. When the line already exists only its quantity grows; a new
// product+variant combination appends a line. If the resulting quantity
// would exceed the stock ceiling the call is rejected with a stock-exceeded
// error and the cart is left unchanged — quantities are never clamped.
func (s *Store) AddItem(product catalog.Product, variant *catalog.ProductVariant, quantity int) error {
	if quantity <= 0 {
		return pkgerrors.New(pkgerrors.CodeValidation, "quantity must be positive")
	}

	id := LineID(product.ID, variant)
	current := s.quantities[id]

	ceiling := product.Count
	if variant != nil {
		ceiling = variant.Count
	}
	if current+quantity > ceiling {
		return stockExceeded(id, current+quantity, ceiling)
	}

	if _, exists := s.quantities[id]; !exists {
		s.items = append(s.items, NewLine(product, variant))
	}
	s.quantities[id] = current + quantity
	return nil
}

// UpdateQuantity overwrites the quantity for a line. A quantity of zero or
// less removes the line. The stock ceiling is the variant count when the
// line has a variant; lines without a variant have no ceiling here, since
// the product count is not carried on the line.
func (s *Store) UpdateQuantity(lineID string, quantity int) error {
	if quantity <= 0 {
		s.RemoveItem(lineID)
		return nil
	}

	line, ok := s.line(lineID)
	if !ok {
		return pkgerrors.New(pkgerrors.CodeNotFound, fmt.Sprintf("no cart line %q", lineID))
	}
	if line.Variant != nil && quantity > line.Variant.Count {
		return stockExceeded(lineID, quantity, line.Variant.Count)
	}

	s.quantities[lineID] = quantity
	return nil
}

// RemoveItem drops a line and its quantity entry. Unknown IDs are a no-op.
func (s *Store) RemoveItem(lineID string) {
	delete(s.quantities, lineID)
	for i, line := range s.items {
		if line.ID == lineID {
			s.items = append(s.items[:i], s.items[i+1:]...)
			return
		}
	}
}

// RemoveAll empties the cart.
func (s *Store) RemoveAll() {
	s.items = nil
	s.quantities = map[string]int{}
}

// Items returns the cart lines in insertion order.
func (s *Store) Items() []Line {
	out := make([]Line, len(s.items))
	copy(out, s.items)
	return out
}

// TotalItems is the sum of all line quantities.
func (s *Store) TotalItems() int {
	total := 0
	for _, q := range s.quantities {
		total += q
	}
	return total
}

// TotalPrice is the sum of unit price times quantity across all lines.
func (s *Store) TotalPrice() decimal.Decimal {
	total := decimal.Zero
	for _, line := range s.items {
		quantity := decimal.NewFromInt(int64(s.quantities[line.ID]))
		total = total.Add(line.Price.Mul(quantity))
	}
	return total
}

// ItemQuantity returns the quantity for a line, zero when absent.
func (s *Store) ItemQuantity(lineID string) int {
	return s.quantities[lineID]
}

// Snapshot copies the cart state into its persisted shape.
func (s *Store) Snapshot() Snapshot {
	snap := Snapshot{
		Items:      make([]Line, len(s.items)),
		Quantities: make(map[string]int, len(s.quantities)),
	}
	copy(snap.Items, s.items)
	for id, q := range s.quantities {
		snap.Quantities[id] = q
	}
	return snap
}

// Restore replaces the cart state from a persisted snapshot. Quantity
// entries without a matching line are dropped so the store's invariant
// holds even for snapshots written by older code.
func (s *Store) Restore(snap Snapshot) {
	s.items = make([]Line, 0, len(snap.Items))
	s.quantities = make(map[string]int, len(snap.Quantities))
	seen := map[string]bool{}
	for _, line := range snap.Items {
		if seen[line.ID] {
			continue
		}
		seen[line.ID] = true
		s.items = append(s.items, line)
		if q, ok := snap.Quantities[line.ID]; ok && q > 0 {
			s.quantities[line.ID] = q
		}
	}
	// A line whose quantity entry is missing is meaningless; drop it.
	kept := s.items[:0]
	for _, line := range s.items {
		if _, ok := s.quantities[line.ID]; ok {
			kept = append(kept, line)
		}
	}
	s.items = kept
}

func (s *Store) line(lineID string) (Line, bool) {
	for _, line := range s.items {
		if line.ID == lineID {
			return line, true
		}
	}
	return Line{}, false
}

func stockExceeded(lineID string, requested, ceiling int) error {
	return pkgerrors.New(
		pkgerrors.CodeStockExceeded,
		fmt.Sprintf("requested %d units of line %q but only %d in stock", requested, lineID, ceiling),
	)
}
