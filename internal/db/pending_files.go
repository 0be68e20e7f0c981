package db

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/avery/staffdesk/internal/handoff"
	"github.com/avery/staffdesk/internal/types"
	"github.com/jackc/pgx/v5"
)

// Mailbox is the PostgreSQL-backed pending-file handoff; it satisfies
// handoff.Mailbox so the file survives the page navigation between the staging
// view and the importer.
type Mailbox struct {
	db *DB
}

// NewMailbox creates a mailbox on top of an open database.
func NewMailbox(db *DB) *Mailbox { return &Mailbox{db: db} }

// Put stages a file under key, replacing any previous entry.
func (m *Mailbox) Put(ctx context.Context, key string, file types.PendingFile, ttl time.Duration) error {
	if ttl <= 0 {
		ttl = handoff.DefaultTTL
	}
	payload, err := json.Marshal(file)
	if err != nil {
		return fmt.Errorf("failed to marshal pending file: %w", err)
	}
	_, err = m.db.pool.Exec(ctx,
		`INSERT INTO pending_files (key, payload, expires_at)
		 VALUES ($1, $2, $3)
		 ON CONFLICT (key) DO UPDATE SET payload = $2, expires_at = $3`,
		key, payload, time.Now().Add(ttl),
	)
	if err != nil {
		return fmt.Errorf("failed to stage pending file: %w", err)
	}
	return nil
}

// Take removes and returns the staged file for key. The delete-returning
// statement makes the take atomic: two racing consumers cannot both see the
// same file. Expired entries are deleted but not returned.
func (m *Mailbox) Take(ctx context.Context, key string) (*types.PendingFile, error) {
	var payload []byte
	var expiresAt time.Time
	err := m.db.pool.QueryRow(ctx,
		`DELETE FROM pending_files WHERE key = $1 RETURNING payload, expires_at`,
		key,
	).Scan(&payload, &expiresAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, handoff.ErrEmpty
		}
		return nil, fmt.Errorf("failed to take pending file: %w", err)
	}

	if time.Now().After(expiresAt) {
		return nil, handoff.ErrEmpty
	}

	var file types.PendingFile
	if err := json.Unmarshal(payload, &file); err != nil {
		return nil, fmt.Errorf("failed to decode pending file: %w", err)
	}
	return &file, nil
}
