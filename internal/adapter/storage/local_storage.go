package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/niksmo/electrostyle/internal/core/port"
)

var _ port.LocalStorageProvider = SQLLocalStorage{}

// A SQLLocalStorage keeps every session's local storage
// in the local_storage table.
type SQLLocalStorage struct {
	sqldb sqldb
}

func NewSQLLocalStorage(sqldb sqldb) SQLLocalStorage {
	return SQLLocalStorage{sqldb}
}

func (s SQLLocalStorage) LocalStorage(sessionID string) port.LocalStorage {
	return sessionStorage{sqldb: s.sqldb, sessionID: sessionID}
}

type sessionStorage struct {
	sqldb     sqldb
	sessionID string
}

func (s sessionStorage) GetItem(ctx context.Context, key string) (string, error) {
	const op = "sessionStorage.GetItem"

	if err := ctx.Err(); err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}

	query := `
		SELECT value FROM local_storage
		WHERE session_id = $1 AND key = $2;`

	var value string
	err := s.sqldb.QueryRowContext(ctx, query, s.sessionID, key).Scan(&value)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", fmt.Errorf("%s: %w", op, port.ErrNoItem)
		}
		return "", fmt.Errorf("%s: %w", op, err)
	}
	return value, nil
}

func (s sessionStorage) SetItem(ctx context.Context, key, value string) error {
	const op = "sessionStorage.SetItem"

	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	query := `
		INSERT INTO local_storage (session_id, key, value, updated_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (session_id, key) DO UPDATE SET
			value = EXCLUDED.value,
			updated_at = EXCLUDED.updated_at;`

	_, err := s.sqldb.ExecContext(
		ctx, query, s.sessionID, key, value, time.Now().UTC(),
	)
	if err != nil {
		return fmt.Errorf("%s: failed to exec: %w", op, err)
	}
	return nil
}
