package service

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"github.com/niksmo/electrostyle/internal/core/port"
	"github.com/niksmo/electrostyle/pkg/retry"
)

// Local storage keys.
const (
	CartStorageKey      = "electrostyle_cart"
	FavoritesStorageKey = "electrostyle_favorites"
)

// A StoreConfig controls how stores write to local storage.
type StoreConfig struct {
	WriteAttempts int
	WriteBackoff  time.Duration
}

// A persister loads and saves one JSON record of a local storage.
//
// Writes are best effort: a write that keeps failing is logged
// and the in-memory state stays authoritative.
//
// A persister whose record could not be read is detached: it never writes,
// so a stored record it has not seen is never overwritten.
type persister struct {
	storage  port.LocalStorage
	key      string
	retry    retry.RetryConfig
	detached bool
}

func newPersister(
	storage port.LocalStorage, key string, cfg StoreConfig,
) persister {
	return persister{
		storage: storage,
		key:     key,
		retry: retry.RetryConfig{
			MaxAttempts: cfg.WriteAttempts,
			Backoff:     retry.LinearBackoff(cfg.WriteBackoff),
			ShouldRetry: func(err error) bool {
				return !errors.Is(err, context.Canceled) &&
					!errors.Is(err, context.DeadlineExceeded)
			},
		},
	}
}

// load decodes the stored record into v and reports whether it succeeded.
// A missing or malformed record leaves v untouched. A failed read also
// detaches p.
//
// The read outlives ctx cancellation: a client that went away must not
// turn a stored record into an empty one.
func (p *persister) load(ctx context.Context, v any) bool {
	const op = "persister.load"
	log := slog.With("op", op, "key", p.key)

	data, err := p.storage.GetItem(context.WithoutCancel(ctx), p.key)
	if err != nil {
		if !errors.Is(err, port.ErrNoItem) {
			p.detached = true
			log.Error("failed to read local storage", "err", err)
		}
		return false
	}

	if err := json.Unmarshal([]byte(data), v); err != nil {
		log.Error("failed to load persisted state", "err", err)
		return false
	}
	return true
}

// rehydrated reports whether the stored record was read,
// including the case when there was none.
func (p persister) rehydrated() bool {
	return !p.detached
}

func (p persister) save(ctx context.Context, v any) {
	const op = "persister.save"
	log := slog.With("op", op, "key", p.key)

	if p.detached {
		log.Warn("skip write to unread local storage")
		return
	}

	data, err := json.Marshal(v)
	if err != nil {
		log.Error("failed to encode state", "err", err)
		return
	}

	// a mutation applied in memory is written even if the client went away
	ctx = context.WithoutCancel(ctx)
	err = retry.Do(ctx, p.retry, func() error {
		return p.storage.SetItem(ctx, p.key, string(data))
	})
	if err != nil {
		log.Error("failed to write local storage", "err", err)
	}
}
