package favorites

import (
	"github.com/shopspring/decimal"

	"github.com/bautizosmaitte/storefront-api/internal/catalog"
)

// Entry is one favorited product. Membership only, no quantities.
type Entry struct {
	ProductID     int             `json:"productId"`
	Name          string          `json:"name"`
	Slug          string          `json:"slug"`
	Price         decimal.Decimal `json:"price"`
	OriginalPrice decimal.Decimal `json:"originalPrice"`
	IsDiscount    bool            `json:"isDiscount"`
	Image         *catalog.Image  `json:"image,omitempty"`
}

// NewEntry builds a favorites entry from a product, capturing the
// effective price at the time of favoriting.
func NewEntry(product catalog.Product) Entry {
	return Entry{
		ProductID:     product.ID,
		Name:          product.Name,
		Slug:          product.Slug,
		Price:         product.EffectivePrice(),
		OriginalPrice: product.Price,
		IsDiscount:    product.IsDiscount,
		Image:         product.MainImage,
	}
}

// Snapshot is the persisted shape of the favorites set.
type Snapshot struct {
	Items []Entry `json:"items"`
}

// Store is a plain favorites state container keyed by product ID. At most
// one entry exists per product. Not safe for concurrent use.
type Store struct {
	items []Entry
}

func NewStore() *Store {
	return &Store{}
}

// AddItem records a product as favorited. Adding an already-favorited
// product is a no-op.
func (s *Store) AddItem(product catalog.Product) {
	if s.IsFavorite(product.ID) {
		return
	}
	s.items = append(s.items, NewEntry(product))
}

// RemoveItem drops a product from the set; unknown IDs are a no-op.
func (s *Store) RemoveItem(productID int) {
	for i, entry := range s.items {
		if entry.ProductID == productID {
			s.items = append(s.items[:i], s.items[i+1:]...)
			return
		}
	}
}

// ToggleItem adds the product when absent and removes it when present.
// Returns whether the product is favorited after the call.
func (s *Store) ToggleItem(product catalog.Product) bool {
	if s.IsFavorite(product.ID) {
		s.RemoveItem(product.ID)
		return false
	}
	s.AddItem(product)
	return true
}

// RemoveAll empties the set.
func (s *Store) RemoveAll() {
	s.items = nil
}

// Items returns the favorites in insertion order.
func (s *Store) Items() []Entry {
	out := make([]Entry, len(s.items))
	copy(out, s.items)
	return out
}

// TotalItems is the number of favorited products.
func (s *Store) TotalItems() int {
	return len(s.items)
}

// IsFavorite reports membership for a product ID.
func (s *Store) IsFavorite(productID int) bool {
	for _, entry := range s.items {
		if entry.ProductID == productID {
			return true
		}
	}
	return false
}

// Snapshot copies the set into its persisted shape.
func (s *Store) Snapshot() Snapshot {
	snap := Snapshot{Items: make([]Entry, len(s.items))}
	copy(snap.Items, s.items)
	return snap
}

// Restore replaces the set from a snapshot, deduplicating by product ID.
func (s *Store) Restore(snap Snapshot) {
	s.items = make([]Entry, 0, len(snap.Items))
	seen := map[int]bool{}
	for _, entry := range snap.Items {
		if seen[entry.ProductID] {
			continue
		}
		seen[entry.ProductID] = true
		s.items = append(s.items, entry)
	}
}
