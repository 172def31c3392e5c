// Package store implements the client's durable persistence: a small
// SQLite-backed key-value layer and, on top of it, the namespaced,
// versioned JSON document store each record collection lives in.
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/nvoronin/daybook/internal/dbx"
)

// KV is minimal key-value persistence. Get returns (nil, nil) for an
// absent key.
type KV interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
}

// SQLiteKV implements KV over one table of the client database.
type SQLiteKV struct {
	db    dbx.DBTX
	table string
}

// NewDocumentKV returns the KV holding collection documents.
func NewDocumentKV(db dbx.DBTX) *SQLiteKV {
	return &SQLiteKV{db: db, table: "documents"}
}

// NewMetadataKV returns the KV holding sync-state flags, the active
// namespace and the auth token.
func NewMetadataKV(db dbx.DBTX) *SQLiteKV {
	return &SQLiteKV{db: db, table: "metadata"}
}

func (r *SQLiteKV) Get(ctx context.Context, key string) ([]byte, error) {
	var value []byte
	query := fmt.Sprintf(`SELECT value FROM %s WHERE key = ?`, r.table)
	err := r.db.QueryRowContext(ctx, query, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get %s[%s]: %w", r.table, key, err)
	}
	return value, nil
}

func (r *SQLiteKV) Set(ctx context.Context, key string, value []byte) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (key, value) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value
	`, r.table)
	if _, err := r.db.ExecContext(ctx, query, key, value); err != nil {
		return fmt.Errorf("failed to set %s[%s]: %w", r.table, key, err)
	}
	return nil
}

func (r *SQLiteKV) Delete(ctx context.Context, key string) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE key = ?`, r.table)
	if _, err := r.db.ExecContext(ctx, query, key); err != nil {
		return fmt.Errorf("failed to delete %s[%s]: %w", r.table, key, err)
	}
	return nil
}
