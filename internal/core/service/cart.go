package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/niksmo/electrostyle/internal/core/domain"
	"github.com/niksmo/electrostyle/internal/core/port"
	"github.com/shopspring/decimal"
)

var _ port.CartStore = (*CartStore)(nil)

// A CartStore owns the cart state of one session.
//
// Mutations are applied one at a time through [domain.ReduceCart] and the
// item list is persisted after each of them.
type CartStore struct {
	mu        sync.Mutex
	state     domain.CartState
	persister persister
	notifier  port.Notifier
}

// NewCartStore creates an empty cart and rehydrates it from storage.
func NewCartStore(
	ctx context.Context,
	storage port.LocalStorage,
	notifier port.Notifier,
	cfg StoreConfig,
) *CartStore {
	s := &CartStore{
		persister: newPersister(storage, CartStorageKey, cfg),
		notifier:  notifier,
	}
	s.load(ctx)
	return s
}

func (s *CartStore) load(ctx context.Context) {
	const op = "CartStore.load"

	var items []domain.CartItem
	if !s.persister.load(ctx, &items) {
		return
	}

	for _, item := range items {
		if !item.Valid() {
			slog.Error(
				"failed to load persisted state",
				"op", op,
				"err", fmt.Errorf("invalid cart item %q", item.ID),
			)
			return
		}
	}

	s.state = domain.ReduceCart(s.state, domain.LoadCart{Items: items})
}

// rehydrated reports whether the stored cart was read.
func (s *CartStore) rehydrated() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.persister.rehydrated()
}

// dispatch applies a and persists the resulting items.
func (s *CartStore) dispatch(ctx context.Context, a domain.CartAction) {
	s.state = domain.ReduceCart(s.state, a)

	items := s.state.Items
	if items == nil {
		items = []domain.CartItem{}
	}
	s.persister.save(ctx, items)
}

func (s *CartStore) AddToCart(ctx context.Context, p domain.Product) error {
	s.mu.Lock()
	err := s.state.CanAdd(p)
	if err == nil {
		s.dispatch(ctx, domain.AddToCart{Product: p})
	}
	s.mu.Unlock()

	switch {
	case errors.Is(err, domain.ErrOutOfStock):
		s.notify(ctx, "Out of Stock",
			p.Name+" is currently out of stock.", domain.SeverityDestructive)
	case errors.Is(err, domain.ErrStockLimit):
		s.notify(ctx, "Stock Limit Reached",
			"Cannot add more "+p.Name+" to cart.", domain.SeverityDestructive)
	default:
		s.notify(ctx, "Added to Cart",
			p.Name+" has been added to your cart.", domain.SeveritySuccess)
	}
	return err
}

func (s *CartStore) RemoveFromCart(ctx context.Context, productID string) {
	s.mu.Lock()
	item, ok := s.state.Find(productID)
	s.dispatch(ctx, domain.RemoveFromCart{ProductID: productID})
	s.mu.Unlock()

	if ok {
		s.notify(ctx, "Removed from Cart",
			item.Name+" has been removed from your cart.", domain.SeverityInfo)
	}
}

func (s *CartStore) IncreaseQty(ctx context.Context, productID string) error {
	s.mu.Lock()
	item, ok := s.state.Find(productID)
	err := s.state.CanIncrease(productID)
	if err == nil {
		s.dispatch(ctx, domain.IncreaseQty{ProductID: productID})
	}
	s.mu.Unlock()

	if !ok {
		return nil
	}
	if err != nil {
		s.notify(ctx, "Stock Limit Reached",
			"Cannot add more "+item.Name+" to cart.", domain.SeverityDestructive)
		return err
	}
	s.notify(ctx, "Quantity Updated",
		item.Name+" quantity increased.", domain.SeverityInfo)
	return nil
}

func (s *CartStore) DecreaseQty(ctx context.Context, productID string) {
	s.mu.Lock()
	item, ok := s.state.Find(productID)
	s.dispatch(ctx, domain.DecreaseQty{ProductID: productID})
	s.mu.Unlock()

	if ok {
		s.notify(ctx, "Quantity Updated",
			item.Name+" quantity decreased.", domain.SeverityInfo)
	}
}

func (s *CartStore) ClearCart(ctx context.Context) {
	s.mu.Lock()
	s.dispatch(ctx, domain.ClearCart{})
	s.mu.Unlock()

	s.notify(ctx, "Cart Cleared",
		"All items have been removed from your cart.", domain.SeverityInfo)
}

// State returns a snapshot safe to read without the store lock.
func (s *CartStore) State() domain.CartState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return domain.CartState{
		Items: append([]domain.CartItem(nil), s.state.Items...),
		Count: s.state.Count,
	}
}

func (s *CartStore) CartTotal() decimal.Decimal {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.Total()
}

func (s *CartStore) notify(
	ctx context.Context, title, desc string, sev domain.Severity,
) {
	s.notifier.Notify(ctx, domain.Notification{
		Title:       title,
		Description: desc,
		Severity:    sev,
	})
}
