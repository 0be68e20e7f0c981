// Package db provides PostgreSQL storage for field definitions, imported
// records, import runs and the pending-file mailbox.
package db

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// DB wraps a PostgreSQL connection pool.
type DB struct {
	pool *pgxpool.Pool
}

// Connect establishes a connection pool to the database.
func Connect(ctx context.Context, databaseURL string) (*DB, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &DB{pool: pool}, nil
}

// Close closes the connection pool.
func (db *DB) Close() {
	if db.pool != nil {
		db.pool.Close()
	}
}

// EnsureSchema creates the tables the importer needs if they do not exist.
func (db *DB) EnsureSchema(ctx context.Context) error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS field_definitions (
			entity_type TEXT NOT NULL,
			field_name  TEXT NOT NULL,
			field_label TEXT NOT NULL DEFAULT '',
			field_type  TEXT NOT NULL DEFAULT 'text',
			is_required BOOLEAN NOT NULL DEFAULT FALSE,
			is_hidden   BOOLEAN NOT NULL DEFAULT FALSE,
			sort_order  INTEGER NOT NULL DEFAULT 0,
			PRIMARY KEY (entity_type, field_name)
		)`,
		`CREATE TABLE IF NOT EXISTS records (
			id          BIGSERIAL PRIMARY KEY,
			entity_type TEXT NOT NULL,
			dedupe_key  TEXT NOT NULL,
			data        JSONB NOT NULL,
			created_at  TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at  TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			UNIQUE (entity_type, dedupe_key)
		)`,
		`CREATE TABLE IF NOT EXISTS custom_field_labels (
			entity_type TEXT NOT NULL,
			field_name  TEXT NOT NULL,
			field_label TEXT NOT NULL,
			PRIMARY KEY (entity_type, field_name)
		)`,
		`CREATE TABLE IF NOT EXISTS import_runs (
			id          UUID PRIMARY KEY,
			entity_type TEXT NOT NULL,
			successful  INTEGER NOT NULL,
			failed      INTEGER NOT NULL,
			errors      JSONB,
			created_at  TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,
		`CREATE TABLE IF NOT EXISTS pending_files (
			key        TEXT PRIMARY KEY,
			payload    JSONB NOT NULL,
			expires_at TIMESTAMPTZ NOT NULL
		)`,
	}

	for _, stmt := range statements {
		if _, err := db.pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("failed to ensure schema: %w", err)
		}
	}
	return nil
}
