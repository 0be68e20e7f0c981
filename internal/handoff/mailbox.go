// Package handoff implements the one-shot pending-file mailbox: a staged file
// is put by one page and taken exactly once by the importer on another.
package handoff

import (
	"context"
	"encoding/base64"
	"fmt"
	"sync"
	"time"

	"github.com/avery/staffdesk/internal/types"
)

// ErrEmpty is returned by Take when no pending file is staged for the key.
var ErrEmpty = fmt.Errorf("no pending file")

// DefaultTTL bounds how long a staged file survives before the handoff is
// considered abandoned.
const DefaultTTL = 10 * time.Minute

// Mailbox is a single-consumer handoff channel keyed by session. Put
// overwrites any staged file; Take returns a staged file at most once.
type Mailbox interface {
	Put(ctx context.Context, key string, file types.PendingFile, ttl time.Duration) error
	Take(ctx context.Context, key string) (*types.PendingFile, error)
}

// Decode returns the file content carried in a pending-file payload.
func Decode(file *types.PendingFile) ([]byte, error) {
	data, err := base64.StdEncoding.DecodeString(file.Base64)
	if err != nil {
		return nil, fmt.Errorf("pending file %q has invalid base64 content: %w", file.Name, err)
	}
	return data, nil
}

// Encode builds a pending-file payload from raw content.
func Encode(name, contentType string, data []byte, isResume bool) types.PendingFile {
	return types.PendingFile{
		Name:     name,
		Base64:   base64.StdEncoding.EncodeToString(data),
		Type:     contentType,
		IsResume: isResume,
	}
}

type memoryEntry struct {
	file      types.PendingFile
	expiresAt time.Time
}

// MemoryMailbox is the in-process Mailbox used by tests and the CLI.
type MemoryMailbox struct {
	mu      sync.Mutex
	entries map[string]memoryEntry
	now     func() time.Time
}

// NewMemoryMailbox creates an empty in-memory mailbox.
func NewMemoryMailbox() *MemoryMailbox {
	return &MemoryMailbox{
		entries: make(map[string]memoryEntry),
		now:     time.Now,
	}
}

// Put stages a file under key, replacing any previous entry.
func (m *MemoryMailbox) Put(_ context.Context, key string, file types.PendingFile, ttl time.Duration) error {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries[key] = memoryEntry{file: file, expiresAt: m.now().Add(ttl)}
	return nil
}

// Take removes and returns the staged file for key. A second Take, or a Take
// after the TTL passed, returns ErrEmpty.
func (m *MemoryMailbox) Take(_ context.Context, key string) (*types.PendingFile, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	entry, ok := m.entries[key]
	if !ok {
		return nil, ErrEmpty
	}
	delete(m.entries, key)
	if m.now().After(entry.expiresAt) {
		return nil, ErrEmpty
	}
	file := entry.file
	return &file, nil
}
