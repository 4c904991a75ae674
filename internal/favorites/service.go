package favorites

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/bautizosmaitte/storefront-api/internal/catalog"
	pkgerrors "github.com/bautizosmaitte/storefront-api/pkg/errors"
	"github.com/bautizosmaitte/storefront-api/pkg/kvstore"
	"github.com/bautizosmaitte/storefront-api/pkg/logger"
)

// storageNamespace prefixes every persisted favorites key.
const storageNamespace = "favoritesStorage"

// View is the favorites state returned after a read or mutation.
type View struct {
	Items      []Entry `json:"items"`
	TotalItems int     `json:"totalItems"`
}

// Service owns favorites state per session with the same write-through
// snapshot cycle as the cart service.
type Service struct {
	kv   kvstore.Store
	logg *logger.Logger

	mu sync.Mutex
}

func NewService(kv kvstore.Store, logg *logger.Logger) *Service {
	return &Service{kv: kv, logg: logg}
}

// Get returns the session's favorites, empty if none were stored.
func (s *Service) Get(ctx context.Context, sessionID string) (View, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	store, err := s.load(ctx, sessionID)
	if err != nil {
		return View{}, err
	}
	return view(store), nil
}

// AddItem favorites a product; already-favorited products are a no-op.
func (s *Service) AddItem(ctx context.Context, sessionID string, product catalog.Product) (View, error) {
	return s.mutate(ctx, sessionID, func(store *Store) {
		store.AddItem(product)
	})
}

// RemoveItem unfavorites a product.
func (s *Service) RemoveItem(ctx context.Context, sessionID string, productID int) (View, error) {
	return s.mutate(ctx, sessionID, func(store *Store) {
		store.RemoveItem(productID)
	})
}

// ToggleItem flips a product's favorite membership and reports the
// resulting state alongside the view.
func (s *Service) ToggleItem(ctx context.Context, sessionID string, product catalog.Product) (View, bool, error) {
	var favorited bool
	v, err := s.mutate(ctx, sessionID, func(store *Store) {
		favorited = store.ToggleItem(product)
	})
	return v, favorited, err
}

// RemoveAll empties the session's favorites.
func (s *Service) RemoveAll(ctx context.Context, sessionID string) (View, error) {
	return s.mutate(ctx, sessionID, func(store *Store) {
		store.RemoveAll()
	})
}

// IsFavorite reports membership without mutating anything.
func (s *Service) IsFavorite(ctx context.Context, sessionID string, productID int) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	store, err := s.load(ctx, sessionID)
	if err != nil {
		return false, err
	}
	return store.IsFavorite(productID), nil
}

func (s *Service) mutate(ctx context.Context, sessionID string, apply func(*Store)) (View, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	store, err := s.load(ctx, sessionID)
	if err != nil {
		return View{}, err
	}
	apply(store)
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
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "loading favorites snapshot")
	}

	var snap Snapshot
	if err := json.Unmarshal(raw, &snap); err != nil {
		if s.logg != nil {
			s.logg.Error(s.logg.WithSessionID(ctx, sessionID), "discarding corrupt favorites snapshot", err)
		}
		return store, nil
	}
	store.Restore(snap)
	return store, nil
}

func (s *Service) persist(ctx context.Context, sessionID string, store *Store) error {
	raw, err := json.Marshal(store.Snapshot())
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "encoding favorites snapshot")
	}
	if err := s.kv.Set(ctx, storageKey(sessionID), raw); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "persisting favorites snapshot")
	}
	return nil
}

func view(store *Store) View {
	return View{Items: store.Items(), TotalItems: store.TotalItems()}
}

func storageKey(sessionID string) string {
	return storageNamespace + ":" + sessionID
}
