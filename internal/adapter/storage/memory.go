package storage

import (
	"context"
	"fmt"
	"sync"

	"github.com/niksmo/electrostyle/internal/core/domain"
	"github.com/niksmo/electrostyle/internal/core/port"
)

var (
	_ port.LocalStorageProvider = (*MemoryLocalStorage)(nil)
	_ port.OrderPublisher       = (*MemoryOrderBook)(nil)
	_ port.OrderReader          = (*MemoryOrderBook)(nil)
)

// A MemoryLocalStorage keeps session records in process memory.
type MemoryLocalStorage struct {
	mu    sync.RWMutex
	items map[string]map[string]string
}

func NewMemoryLocalStorage() *MemoryLocalStorage {
	return &MemoryLocalStorage{items: make(map[string]map[string]string)}
}

func (s *MemoryLocalStorage) LocalStorage(sessionID string) port.LocalStorage {
	return memorySession{s, sessionID}
}

type memorySession struct {
	s         *MemoryLocalStorage
	sessionID string
}

func (m memorySession) GetItem(ctx context.Context, key string) (string, error) {
	const op = "memorySession.GetItem"

	if err := ctx.Err(); err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}

	m.s.mu.RLock()
	defer m.s.mu.RUnlock()

	v, ok := m.s.items[m.sessionID][key]
	if !ok {
		return "", fmt.Errorf("%s: %w", op, port.ErrNoItem)
	}
	return v, nil
}

func (m memorySession) SetItem(ctx context.Context, key, value string) error {
	const op = "memorySession.SetItem"

	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	m.s.mu.Lock()
	defer m.s.mu.Unlock()

	items, ok := m.s.items[m.sessionID]
	if !ok {
		items = make(map[string]string)
		m.s.items[m.sessionID] = items
	}
	items[key] = value
	return nil
}

// A MemoryOrderBook keeps placed orders in process memory.
type MemoryOrderBook struct {
	mu     sync.RWMutex
	orders map[string]domain.Order
}

func NewMemoryOrderBook() *MemoryOrderBook {
	return &MemoryOrderBook{orders: make(map[string]domain.Order)}
}

func (b *MemoryOrderBook) PublishOrder(_ context.Context, o domain.Order) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.orders[o.Number] = o
	return nil
}

func (b *MemoryOrderBook) ReadOrder(
	_ context.Context, number string,
) (domain.Order, error) {
	const op = "MemoryOrderBook.ReadOrder"

	b.mu.RLock()
	defer b.mu.RUnlock()

	o, ok := b.orders[number]
	if !ok {
		return domain.Order{}, fmt.Errorf("%s: %w", op, domain.ErrNotFound)
	}
	return o, nil
}
