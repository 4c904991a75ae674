package cart

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/shopspring/decimal"

	"github.com/bautizosmaitte/storefront-api/internal/catalog"
	pkgerrors "github.com/bautizosmaitte/storefront-api/pkg/errors"
	"github.com/bautizosmaitte/storefront-api/pkg/kvstore"
	"github.com/bautizosmaitte/storefront-api/pkg/logger"
)

// storageNamespace prefixes every persisted cart key.
const storageNamespace = "cartStorage"

// View is the cart state returned to callers after a read or mutation,
// with the derived totals computed alongside.
type View struct {
	Items      []Line          `json:"items"`
	Quantities map[string]int  `json:"quantities"`
	TotalItems int             `json:"totalItems"`
	TotalPrice decimal.Decimal `json:"totalPrice"`
}

// Service owns cart state per session: every operation rehydrates the
// session's snapshot from the key-value store, applies the mutation, and
// writes the result back before returning.
type Service struct {
	kv   kvstore.Store
	logg *logger.Logger

	// mu serializes load-modify-write cycles so two requests on the same
	// session cannot interleave their snapshots.
	mu sync.Mutex
}

func NewService(kv kvstore.Store, logg *logger.Logger) *Service {
	return &Service{kv: kv, logg: logg}
}

// Get returns the current cart for a session, empty if none was stored.
func (s *Service) Get(ctx context.Context, sessionID string) (View, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	store, err := s.load(ctx, sessionID)
	if err != nil {
		return View{}, err
	}
	return view(store), nil
}

// AddItem adds a product (optionally a variant) to the session's cart and
// persists the result. Stock-ceiling rejections leave the stored cart
// untouched and surface as a stock-exceeded error.
func (s *Service) AddItem(ctx context.Context, sessionID string, product catalog.Product, variant *catalog.ProductVariant, quantity int) (View, error) {
	return s.mutate(ctx, sessionID, func(store *Store) error {
		if err := store.AddItem(product, variant, quantity); err != nil {
			s.logRejection(ctx, sessionID, LineID(product.ID, variant), err)
			return err
		}
		return nil
	})
}

// UpdateQuantity overwrites a line's quantity; zero or less removes it.
func (s *Service) UpdateQuantity(ctx context.Context, sessionID, lineID string, quantity int) (View, error) {
	return s.mutate(ctx, sessionID, func(store *Store) error {
		if err := store.UpdateQuantity(lineID, quantity); err != nil {
			s.logRejection(ctx, sessionID, lineID, err)
			return err
		}
		return nil
	})
}

// RemoveItem drops a line from the session's cart.
func (s *Service) RemoveItem(ctx context.Context, sessionID, lineID string) (View, error) {
	return s.mutate(ctx, sessionID, func(store *Store) error {
		store.RemoveItem(lineID)
		return nil
	})
}

// RemoveAll empties the session's cart.
func (s *Service) RemoveAll(ctx context.Context, sessionID string) (View, error) {
	return s.mutate(ctx, sessionID, func(store *Store) error {
		store.RemoveAll()
		return nil
	})
}

func (s *Service) mutate(ctx context.Context, sessionID string, apply func(*Store) error) (View, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	store, err := s.load(ctx, sessionID)
	if err != nil {
		return View{}, err
	}
	if err := apply(store); err != nil {
		return view(store), err
	}
	if err := s.persist(ctx, sessionID, store); err != nil {
		return View{}, err
	}
	return view(store), nil
}

func (s *Service) load(ctx context.Context, sessionID string) (*Store, error) {
	store := NewStore()
	raw, err := s.kv.Get(ctx, storageKey(sessionID))
	if kvstore.IsNotFound(err) {
		return store, nil
	}
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "loading cart snapshot")
	}

	var snap Snapshot
	if err := json.Unmarshal(raw, &snap); err != nil {
		// A corrupt snapshot should not brick the session; start over.
		if s.logg != nil {
			s.logg.Error(s.logg.WithSessionID(ctx, sessionID), "discarding corrupt cart snapshot", err)
		}
		return store, nil
	}
	store.Restore(snap)
	return store, nil
}

func (s *Service) persist(ctx context.Context, sessionID string, store *Store) error {
	raw, err := json.Marshal(store.Snapshot())
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "encoding cart snapshot")
	}
	if err := s.kv.Set(ctx, storageKey(sessionID), raw); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "persisting cart snapshot")
	}
	return nil
}

func (s *Service) logRejection(ctx context.Context, sessionID, lineID string, err error) {
	if s.logg == nil {
		return
	}
	ctx = s.logg.WithSessionID(ctx, sessionID)
	ctx = s.logg.WithCartLineID(ctx, lineID)
	s.logg.Warn(ctx, "cart mutation rejected: "+err.Error())
}

func view(store *Store) View {
	v := View{
		Items:      store.Items(),
		Quantities: make(map[string]int, len(store.items)),
		TotalItems: store.TotalItems(),
		TotalPrice: store.TotalPrice(),
	}
	for _, line := range v.Items {
		v.Quantities[line.ID] = store.ItemQuantity(line.ID)
	}
	return v
}

func storageKey(sessionID string) string {
	return storageNamespace + ":" + sessionID
}
