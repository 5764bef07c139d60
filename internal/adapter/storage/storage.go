package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/stdlib"
	_ "modernc.org/sqlite"
)

// Supported SQL drivers.
const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

var ErrUnknownDriver = errors.New("unknown sql driver")

type sqldb interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	PingContext(ctx context.Context) error
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

type SQLDB struct {
	*sql.DB
}

// NewSQLDB opens and pings the database.
//
// Postgres connections go through pgx, sqlite through modernc.org/sqlite.
func NewSQLDB(ctx context.Context, driver, dsn string) (SQLDB, error) {
	const op = "SQLDB"
	log := slog.With("op", op, "driver", driver)

	db, err := open(driver, dsn)
	if err != nil {
		return SQLDB{}, fmt.Errorf("%s: %w", op, err)
	}

	s := SQLDB{db}
	if err := s.PingContext(ctx); err != nil {
		_ = db.Close()
		return SQLDB{}, fmt.Errorf("%s: database is unavailable: %w", op, err)
	}
	log.Info("database is available")
	return s, nil
}

func open(driver, dsn string) (*sql.DB, error) {
	switch driver {
	case DriverPostgres:
		connConfig, err := pgx.ParseConfig(dsn)
		if err != nil {
			return nil, err
		}
		return sql.Open("pgx", stdlib.RegisterConnConfig(connConfig))
	case DriverSQLite:
		db, err := sql.Open("sqlite", dsn)
		if err != nil {
			return nil, err
		}
		// single writer
		db.SetMaxOpenConns(1)
		return db, nil
	default:
		return nil, fmt.Errorf("%q: %w", driver, ErrUnknownDriver)
	}
}

func (s SQLDB) Close() {
	const op = "SQLDB.Close"
	log := slog.With("op", op)

	log.Info("closing sql database...")

	if err := s.DB.Close(); err != nil {
		log.Error("failed to close", "err", err)
		return
	}
	log.Info("sql database is closed")
}
