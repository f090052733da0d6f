package cursor

import (
	"context"
	"errors"
	"maps"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

const cursorTable = "sync_cursors"

const createCursorTable = `
CREATE TABLE IF NOT EXISTS sync_cursors (
	key        TEXT PRIMARY KEY,
	value      TEXT NOT NULL,
	updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
)`

// DB is the subset of *pgxpool.Pool the store uses.
type DB interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// PostgresStore keeps cursor values in the sync_cursors table.
type PostgresStore struct {
	db       DB
	defaults map[string]string
}

// NewPostgresStore creates the table if needed and seeds defaults without
// overwriting existing rows.
func NewPostgresStore(ctx context.Context, db DB, defaults map[string]string) (*PostgresStore, error) {
	if _, err := db.Exec(ctx, createCursorTable); err != nil {
		return nil, &PersistenceError{Op: "create", Path: cursorTable, Err: err}
	}

	for k, v := range defaults {
		_, err := db.Exec(ctx,
			`INSERT INTO sync_cursors (key, value) VALUES ($1, $2) ON CONFLICT (key) DO NOTHING`,
			k, v,
		)
		if err != nil {
			return nil, &PersistenceError{Op: "seed", Path: cursorTable, Err: err}
		}
	}

	return &PostgresStore{db: db, defaults: maps.Clone(defaults)}, nil
}

func (s *PostgresStore) Get(ctx context.Context, key string) (string, error) {
	var value string
	err := s.db.QueryRow(ctx, `SELECT value FROM sync_cursors WHERE key = $1`, key).Scan(&value)
	if errors.Is(err, pgx.ErrNoRows) {
		return lookupDefault(s.defaults, key)
	}
	if err != nil {
		return "", &PersistenceError{Op: "get", Path: cursorTable, Err: err}
	}
	return value, nil
}

func (s *PostgresStore) Set(ctx context.Context, key, value string) error {
	_, err := s.db.Exec(ctx, `
		INSERT INTO sync_cursors (key, value, updated_at) VALUES ($1, $2, now())
		ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value, updated_at = EXCLUDED.updated_at`,
		key, value,
	)
	if err != nil {
		return &PersistenceError{Op: "set", Path: cursorTable, Err: err}
	}
	return nil
}
