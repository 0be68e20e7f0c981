package handoff

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryMailbox_TakeIsOneShot(t *testing.T) {
	ctx := context.Background()
	box := NewMemoryMailbox()

	staged := Encode("people.csv", "text/csv", []byte("First Name\nAda"), false)
	require.NoError(t, box.Put(ctx, "session-1", staged, 0))

	file, err := box.Take(ctx, "session-1")
	require.NoError(t, err)
	assert.Equal(t, "people.csv", file.Name)

	data, err := Decode(file)
	require.NoError(t, err)
	assert.Equal(t, "First Name\nAda", string(data))

	_, err = box.Take(ctx, "session-1")
	assert.ErrorIs(t, err, ErrEmpty)
}

func TestMemoryMailbox_PutOverwrites(t *testing.T) {
	ctx := context.Background()
	box := NewMemoryMailbox()

	require.NoError(t, box.Put(ctx, "k", Encode("a.csv", "text/csv", []byte("a"), false), 0))
	require.NoError(t, box.Put(ctx, "k", Encode("b.csv", "text/csv", []byte("b"), true), 0))

	file, err := box.Take(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, "b.csv", file.Name)
	assert.True(t, file.IsResume)
}

func TestMemoryMailbox_ExpiredEntryNotReturned(t *testing.T) {
	ctx := context.Background()
	box := NewMemoryMailbox()

	current := time.Now()
	box.now = func() time.Time { return current }

	require.NoError(t, box.Put(ctx, "k", Encode("a.csv", "text/csv", []byte("a"), false), time.Minute))
	current = current.Add(2 * time.Minute)

	_, err := box.Take(ctx, "k")
	assert.ErrorIs(t, err, ErrEmpty)
}

func TestDecode_RejectsBadBase64(t *testing.T) {
	file := Encode("a.csv", "text/csv", []byte("x"), false)
	file.Base64 = "%%%not-base64%%%"
	_, err := Decode(&file)
	require.Error(t, err)
}

func TestMemoryMailbox_KeysAreIndependent(t *testing.T) {
	ctx := context.Background()
	box := NewMemoryMailbox()

	require.NoError(t, box.Put(ctx, "a", Encode("a.csv", "text/csv", []byte("a"), false), 0))

	_, err := box.Take(ctx, "b")
	assert.ErrorIs(t, err, ErrEmpty)

	_, err = box.Take(ctx, "a")
	assert.NoError(t, err)
}
