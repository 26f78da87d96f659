// Package storage provides the local blob store backing the inventory and
// recipe collections. Each collection lives under a single key and is always
// read and written as a whole; there is no finer-grained access.
package storage

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
)

// Storage keys for the two persisted collections.
const (
	InventoryKey = "wisechef_inventory"
	RecipesKey   = "wisechef_recipes"
)

// Blob defines whole-value access to a keyed blob store.
type Blob interface {
	// Get returns the stored value for key, or nil if nothing is stored.
	Get(ctx context.Context, key string) ([]byte, error)
	// Put stores value under key, replacing any previous value.
	Put(ctx context.Context, key string, value []byte) error
}

// PostgresStore implements Blob on a single Postgres key-value table.
type PostgresStore struct {
	db *sqlx.DB
}

// NewPostgresStore connects to the database and ensures the blob table exists.
func NewPostgresStore(dataSourceName string) (*PostgresStore, error) {
	db, err := sqlx.Connect("postgres", dataSourceName)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	schema := `
	CREATE TABLE IF NOT EXISTS blobs (
		key TEXT PRIMARY KEY,
		value TEXT NOT NULL
	);
	`
	if _, err := db.Exec(schema); err != nil {
		return nil, fmt.Errorf("failed to create blobs table: %w", err)
	}

	return &PostgresStore{db: db}, nil
}

// Get returns the value stored under key, or nil if the key is absent.
func (s *PostgresStore) Get(ctx context.Context, key string) ([]byte, error) {
	var value []byte
	err := s.db.QueryRowContext(ctx, "SELECT value FROM blobs WHERE key = $1", key).Scan(&value)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil // Nothing stored yet
		}
		return nil, fmt.Errorf("failed to get blob %q: %w", key, err)
	}
	return value, nil
}

// Put stores value under key, replacing any previous value as one unit.
func (s *PostgresStore) Put(ctx context.Context, key string, value []byte) error {
	_, err := s.db.ExecContext(ctx,
		"INSERT INTO blobs (key, value) VALUES ($1, $2) ON CONFLICT (key) DO UPDATE SET value = $2",
		key,
		value,
	)
	if err != nil {
		return fmt.Errorf("failed to put blob %q: %w", key, err)
	}
	return nil
}
