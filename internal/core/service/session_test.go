package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/niksmo/electrostyle/internal/adapter/storage"
	"github.com/niksmo/electrostyle/internal/core/domain"
	"github.com/niksmo/electrostyle/internal/core/port"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSessions(t *testing.T) {
	ctx := t.Context()
	global := newMockNotifier()
	sessions := NewSessions(storage.NewMemoryLocalStorage(), global, testStoreConfig)

	a := sessions.Open(ctx, "a")
	assert.Same(t, a, sessions.Open(ctx, "a"))
	assert.Equal(t, "a", a.ID())

	b := sessions.Open(ctx, "b")
	assert.NotSame(t, a, b)

	require.NoError(t, a.Cart().AddToCart(ctx, catalogProduct(t, "4")))
	a.Favorites().AddToFavorites(ctx, catalogProduct(t, "6"))

	assert.Empty(t, b.Cart().State().Items)
	assert.Empty(t, b.Favorites().Favorites())

	assert.Equal(t,
		[]string{"Added to Cart", "Added to Favorites"},
		notificationTitles(a.Notifications()))
	assert.Empty(t, a.Notifications(), "inbox is drained")
	assert.Empty(t, b.Notifications())

	assert.Equal(t,
		[]string{"Added to Cart", "Added to Favorites"},
		global.titles(), "global notifier sees every session")
}

func TestSessionsRehydrate(t *testing.T) {
	ctx := t.Context()
	ls := storage.NewMemoryLocalStorage()

	first := NewSessions(ls, newMockNotifier(), testStoreConfig).Open(ctx, "a")
	require.NoError(t, first.Cart().AddToCart(ctx, catalogProduct(t, "1")))
	first.Favorites().AddToFavorites(ctx, catalogProduct(t, "5"))

	second := NewSessions(ls, newMockNotifier(), testStoreConfig).Open(ctx, "a")
	assert.Equal(t, 1, second.Cart().State().Count)
	assert.True(t, second.Favorites().IsFavorite("5"))
}

var errStorageDown = errors.New("storage is down")

// unreliableStorages fails every read while down is set.
type unreliableStorages struct {
	*storage.MemoryLocalStorage
	down atomic.Bool
}

func (u *unreliableStorages) LocalStorage(sessionID string) port.LocalStorage {
	return unreliableStorage{u.MemoryLocalStorage.LocalStorage(sessionID), &u.down}
}

type unreliableStorage struct {
	port.LocalStorage
	down *atomic.Bool
}

func (u unreliableStorage) GetItem(ctx context.Context, key string) (string, error) {
	if u.down.Load() {
		return "", errStorageDown
	}
	return u.LocalStorage.GetItem(ctx, key)
}

func storedCart(t *testing.T, ls port.LocalStorageProvider) string {
	t.Helper()
	raw, err := ls.LocalStorage("a").GetItem(context.Background(), CartStorageKey)
	require.NoError(t, err)
	return raw
}

func TestSessionsReadFailure(t *testing.T) {
	ctx := t.Context()
	storages := &unreliableStorages{MemoryLocalStorage: storage.NewMemoryLocalStorage()}

	saved := NewSessions(storages, nil, testStoreConfig).Open(ctx, "a")
	require.NoError(t, saved.Cart().AddToCart(ctx, catalogProduct(t, "2")))
	require.NoError(t, saved.Cart().AddToCart(ctx, catalogProduct(t, "2")))
	before := storedCart(t, storages)

	sessions := NewSessions(storages, nil, testStoreConfig)

	storages.down.Store(true)
	s := sessions.Open(ctx, "a")
	assert.Empty(t, s.Cart().State().Items)
	require.NoError(t, s.Cart().AddToCart(ctx, catalogProduct(t, "6")))
	s.Favorites().AddToFavorites(ctx, catalogProduct(t, "6"))
	assert.Equal(t, before, storedCart(t, storages), "unread record is not overwritten")
	assert.Zero(t, sessions.Len(), "unread session is not kept")

	storages.down.Store(false)
	next := sessions.Open(ctx, "a")
	assert.NotSame(t, s, next)
	assert.Equal(t, 2, next.Cart().State().Count)
	assert.Equal(t, 1, sessions.Len())
}

func TestSessionsCanceledRequest(t *testing.T) {
	ls := storage.NewMemoryLocalStorage()
	saved := NewSessions(ls, nil, testStoreConfig).Open(t.Context(), "a")
	require.NoError(t, saved.Cart().AddToCart(t.Context(), catalogProduct(t, "2")))

	canceled, cancel := context.WithCancel(t.Context())
	cancel()

	sessions := NewSessions(ls, nil, testStoreConfig)
	s := sessions.Open(canceled, "a")
	assert.Equal(t, 1, s.Cart().State().Count)

	require.NoError(t, s.Cart().IncreaseQty(canceled, "2"))
	assert.Equal(t, 2,
		NewSessions(ls, nil, testStoreConfig).Open(t.Context(), "a").Cart().State().Count,
		"write outlives the request")
}

type fakeClock struct {
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.now = c.now.Add(d)
}

func TestSessionsIdleEviction(t *testing.T) {
	ctx := t.Context()
	clock := &fakeClock{now: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)}
	ls := storage.NewMemoryLocalStorage()

	sessions := NewSessions(ls, nil, testStoreConfig,
		SessionIdleTimeoutOpt(time.Minute))
	sessions.now = clock.Now

	a := sessions.Open(ctx, "a")
	require.NoError(t, a.Cart().AddToCart(ctx, catalogProduct(t, "4")))

	clock.Advance(30 * time.Second)
	b := sessions.Open(ctx, "b")

	clock.Advance(60 * time.Second)
	sessions.Open(ctx, "c")

	assert.Equal(t, 2, sessions.Len())
	assert.Same(t, b, sessions.Open(ctx, "b"), "idle for exactly the timeout")

	reopened := sessions.Open(ctx, "a")
	assert.NotSame(t, a, reopened)
	assert.Equal(t, 1, reopened.Cart().State().Count, "evicted session is rehydrated")
}

func TestSessionsMaxLive(t *testing.T) {
	ctx := t.Context()
	sessions := NewSessions(storage.NewMemoryLocalStorage(), nil, testStoreConfig,
		MaxLiveSessionsOpt(2))

	a := sessions.Open(ctx, "a")
	b := sessions.Open(ctx, "b")
	sessions.Open(ctx, "a")
	sessions.Open(ctx, "c")

	assert.Equal(t, 2, sessions.Len())
	assert.Same(t, a, sessions.Open(ctx, "a"))
	assert.NotSame(t, b, sessions.Open(ctx, "b"), "least recently used is dropped")
}

func TestSessionsOptsPanic(t *testing.T) {
	assert.Panics(t, func() { MaxLiveSessionsOpt(0) })
	assert.Panics(t, func() { SessionIdleTimeoutOpt(0) })
}

func TestSessionsConcurrentOpen(t *testing.T) {
	sessions := NewSessions(storage.NewMemoryLocalStorage(), nil, testStoreConfig)

	var wg sync.WaitGroup
	opened := make([]any, 8)
	for i := range opened {
		wg.Add(1)
		go func() {
			defer wg.Done()
			opened[i] = sessions.Open(t.Context(), "shared")
		}()
	}
	wg.Wait()

	for _, s := range opened[1:] {
		assert.Same(t, opened[0], s)
	}
}

func TestInbox(t *testing.T) {
	in := newInbox(inboxCapacity)
	for i := range inboxCapacity + 5 {
		in.Notify(t.Context(), domain.Notification{Title: fmt.Sprint(i)})
	}

	got := in.drain()
	require.Len(t, got, inboxCapacity)
	assert.Equal(t, "5", got[0].Title)
	assert.Equal(t, fmt.Sprint(inboxCapacity+4), got[len(got)-1].Title)

	assert.NotNil(t, in.drain())
	assert.Empty(t, in.drain())
}
