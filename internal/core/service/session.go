package service

import (
	"context"
	"log/slog"
	"slices"
	"sync"
	"sync/atomic"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/niksmo/electrostyle/internal/core/domain"
	"github.com/niksmo/electrostyle/internal/core/port"
)

var (
	_ port.SessionOpener = (*Sessions)(nil)
	_ port.Session       = (*Session)(nil)
)

const inboxCapacity = 20

// A Session owns the stores of one client. It is created on first use and
// rehydrated from the client's local storage.
type Session struct {
	id         string
	cart       *CartStore
	favorites  *FavoritesStore
	inbox      *inbox
	notifier   port.Notifier
	submitting atomic.Bool
}

func (s *Session) ID() string {
	return s.id
}

func (s *Session) Cart() port.CartStore {
	return s.cart
}

func (s *Session) Favorites() port.FavoritesStore {
	return s.favorites
}

func (s *Session) Notify(ctx context.Context, n domain.Notification) {
	s.notifier.Notify(ctx, n)
}

// Notifications drains the pending notifications.
func (s *Session) Notifications() []domain.Notification {
	return s.inbox.drain()
}

// StartSubmit marks an order submission as pending.
// It reports false when one is already pending.
func (s *Session) StartSubmit() bool {
	return s.submitting.CompareAndSwap(false, true)
}

func (s *Session) FinishSubmit() {
	s.submitting.Store(false)
}

// Defaults of the session registry.
const (
	DefaultMaxLiveSessions    = 10_000
	DefaultSessionIdleTimeout = 30 * time.Minute
)

// Sessions is the registry of live sessions.
//
// It holds at most a fixed number of sessions and drops the ones idle for
// longer than the idle timeout. A dropped session is rehydrated from local
// storage on its next use.
type Sessions struct {
	mu       sync.Mutex
	live     *lru.Cache[string, *liveSession]
	idle     time.Duration
	now      func() time.Time
	storages port.LocalStorageProvider
	notifier port.Notifier
	cfg      StoreConfig
}

type liveSession struct {
	*Session
	lastSeen time.Time
}

type sessionsOpts struct {
	maxLive int
	idle    time.Duration
}

type SessionsOpt func(*sessionsOpts)

// MaxLiveSessionsOpt bounds the number of sessions kept in memory.
// The least recently used session is dropped first.
func MaxLiveSessionsOpt(n int) SessionsOpt {
	if n < 1 {
		panic("max live sessions must be positive") // develop mistake
	}
	return func(o *sessionsOpts) {
		o.maxLive = n
	}
}

// SessionIdleTimeoutOpt sets how long an unused session stays in memory.
func SessionIdleTimeoutOpt(d time.Duration) SessionsOpt {
	if d <= 0 {
		panic("session idle timeout must be positive") // develop mistake
	}
	return func(o *sessionsOpts) {
		o.idle = d
	}
}

// NewSessions creates the registry. Every session notification is queued
// for the session and also passed to notifier.
func NewSessions(
	storages port.LocalStorageProvider,
	notifier port.Notifier,
	cfg StoreConfig,
	opts ...SessionsOpt,
) *Sessions {
	o := sessionsOpts{
		maxLive: DefaultMaxLiveSessions,
		idle:    DefaultSessionIdleTimeout,
	}
	for _, opt := range opts {
		opt(&o)
	}

	live, err := lru.New[string, *liveSession](o.maxLive)
	if err != nil {
		panic(err) // develop mistake
	}

	return &Sessions{
		live:     live,
		idle:     o.idle,
		now:      time.Now,
		storages: storages,
		notifier: notifier,
		cfg:      cfg,
	}
}

func (r *Sessions) Open(ctx context.Context, sessionID string) port.Session {
	return r.open(ctx, sessionID)
}

// Len returns the number of sessions held in memory.
func (r *Sessions) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.live.Len()
}

func (r *Sessions) open(ctx context.Context, sessionID string) *Session {
	const op = "Sessions.open"

	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.now()
	r.evictIdle(now)

	if ls, ok := r.live.Get(sessionID); ok {
		ls.lastSeen = now
		return ls.Session
	}

	s := r.newSession(ctx, sessionID)
	if !s.cart.rehydrated() || !s.favorites.rehydrated() {
		// serve this request from memory and read storage again next time
		slog.Warn("session is not rehydrated", "op", op)
		return s
	}

	r.live.Add(sessionID, &liveSession{Session: s, lastSeen: now})
	return s
}

// evictIdle drops sessions unused since before now minus the idle timeout.
// Recency order of the cache matches lastSeen order.
func (r *Sessions) evictIdle(now time.Time) {
	for {
		_, ls, ok := r.live.GetOldest()
		if !ok || now.Sub(ls.lastSeen) <= r.idle {
			return
		}
		r.live.RemoveOldest()
	}
}

func (r *Sessions) newSession(ctx context.Context, sessionID string) *Session {
	storage := r.storages.LocalStorage(sessionID)
	in := newInbox(inboxCapacity)
	notifier := multiNotifier{in, r.notifier}

	return &Session{
		id:        sessionID,
		cart:      NewCartStore(ctx, storage, notifier, r.cfg),
		favorites: NewFavoritesStore(ctx, storage, notifier, r.cfg),
		inbox:     in,
		notifier:  notifier,
	}
}

// An inbox keeps the latest notifications of a session until the UI reads them.
type inbox struct {
	mu    sync.Mutex
	limit int
	queue []domain.Notification
}

func newInbox(capacity int) *inbox {
	return &inbox{limit: capacity}
}

func (in *inbox) Notify(_ context.Context, n domain.Notification) {
	in.mu.Lock()
	defer in.mu.Unlock()

	in.queue = append(in.queue, n)
	if over := len(in.queue) - in.limit; over > 0 {
		in.queue = slices.Delete(in.queue, 0, over)
	}
}

func (in *inbox) drain() []domain.Notification {
	in.mu.Lock()
	defer in.mu.Unlock()

	out := in.queue
	in.queue = nil
	if out == nil {
		out = []domain.Notification{}
	}
	return out
}

type multiNotifier []port.Notifier

func (m multiNotifier) Notify(ctx context.Context, n domain.Notification) {
	for _, notifier := range m {
		if notifier != nil {
			notifier.Notify(ctx, n)
		}
	}
}
