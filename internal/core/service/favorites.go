package service

import (
	"context"
	"errors"
	"log/slog"
	"slices"
	"sync"

	"github.com/niksmo/electrostyle/internal/core/domain"
	"github.com/niksmo/electrostyle/internal/core/port"
)

var _ port.FavoritesStore = (*FavoritesStore)(nil)

// A FavoritesStore owns the wishlist of one session.
type FavoritesStore struct {
	mu        sync.Mutex
	favorites []domain.Product
	persister persister
	notifier  port.Notifier
}

func NewFavoritesStore(
	ctx context.Context,
	storage port.LocalStorage,
	notifier port.Notifier,
	cfg StoreConfig,
) *FavoritesStore {
	s := &FavoritesStore{
		favorites: []domain.Product{},
		persister: newPersister(storage, FavoritesStorageKey, cfg),
		notifier:  notifier,
	}

	s.load(ctx)
	return s
}

func (s *FavoritesStore) load(ctx context.Context) {
	const op = "FavoritesStore.load"

	var favorites []domain.Product
	if !s.persister.load(ctx, &favorites) || favorites == nil {
		return
	}

	for _, p := range favorites {
		if p.ID == "" {
			slog.Error(
				"failed to load persisted state",
				"op", op,
				"err", errors.New("favorite without product id"),
			)
			return
		}
	}

	s.favorites = dedupProducts(favorites)
}

// rehydrated reports whether the stored favorites were read.
func (s *FavoritesStore) rehydrated() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.persister.rehydrated()
}

func (s *FavoritesStore) AddToFavorites(ctx context.Context, p domain.Product) {
	s.mu.Lock()
	added := s.add(ctx, p)
	s.mu.Unlock()

	if added {
		s.notify(ctx, "Added to Favorites",
			p.Name+" has been added to your wishlist.", domain.SeveritySuccess)
	}
}

func (s *FavoritesStore) RemoveFromFavorites(ctx context.Context, productID string) {
	s.mu.Lock()
	p, removed := s.remove(ctx, productID)
	s.mu.Unlock()

	if removed {
		s.notify(ctx, "Removed from Favorites",
			p.Name+" has been removed from your wishlist.", domain.SeverityInfo)
	}
}

// ToggleFavorite removes p when present and adds it otherwise.
func (s *FavoritesStore) ToggleFavorite(ctx context.Context, p domain.Product) {
	s.mu.Lock()
	removed, wasFavorite := s.remove(ctx, p.ID)
	if !wasFavorite {
		s.add(ctx, p)
	}
	s.mu.Unlock()

	if wasFavorite {
		s.notify(ctx, "Removed from Favorites",
			removed.Name+" has been removed from your wishlist.", domain.SeverityInfo)
		return
	}
	s.notify(ctx, "Added to Favorites",
		p.Name+" has been added to your wishlist.", domain.SeveritySuccess)
}

func (s *FavoritesStore) IsFavorite(productID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.index(productID) >= 0
}

// Favorites returns the products in insertion order.
func (s *FavoritesStore) Favorites() []domain.Product {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.favorites)
}

func (s *FavoritesStore) Count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.favorites)
}

func (s *FavoritesStore) add(ctx context.Context, p domain.Product) bool {
	if s.index(p.ID) >= 0 {
		return false
	}
	s.favorites = append(slices.Clone(s.favorites), p)
	s.persister.save(ctx, s.favorites)
	return true
}

func (s *FavoritesStore) remove(
	ctx context.Context, productID string,
) (domain.Product, bool) {
	idx := s.index(productID)
	if idx < 0 {
		return domain.Product{}, false
	}
	p := s.favorites[idx]
	s.favorites = slices.Delete(slices.Clone(s.favorites), idx, idx+1)
	s.persister.save(ctx, s.favorites)
	return p, true
}

func (s *FavoritesStore) index(productID string) int {
	return slices.IndexFunc(s.favorites, func(p domain.Product) bool {
		return p.ID == productID
	})
}

func (s *FavoritesStore) notify(
	ctx context.Context, title, desc string, sev domain.Severity,
) {
	s.notifier.Notify(ctx, domain.Notification{
		Title:       title,
		Description: desc,
		Severity:    sev,
	})
}

func dedupProducts(ps []domain.Product) []domain.Product {
	out := make([]domain.Product, 0, len(ps))
	for _, p := range ps {
		if slices.ContainsFunc(out, func(o domain.Product) bool { return o.ID == p.ID }) {
			continue
		}
		out = append(out, p)
	}
	return out
}
