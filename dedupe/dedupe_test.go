// SPDX-License-Identifier: MIT

package dedupe

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFingerprintIsStable(t *testing.T) {
	a := Fingerprint([]byte(`{"result":{}}`))
	b := Fingerprint([]byte(`{"result":{}}`))
	c := Fingerprint([]byte(`{"result":{"action":"x"}}`))
	assert.Equal(t, a, b)
	assert.NotEqual(t, a, c)
	assert.Len(t, a, 64)
}

func TestOpenSelectsBackend(t *testing.T) {
	store, err := Open(Config{})
	require.NoError(t, err)
	assert.IsType(t, &Memory{}, store)
	require.NoError(t, store.Close())

	_, err = Open(Config{Backend: "bogus"})
	assert.Error(t, err)
}

// storeContract exercises the behavior every backend must share.
func storeContract(t *testing.T, store Store) {
	t.Helper()
	ctx := context.Background()

	_, err := store.Get(ctx, "absent")
	assert.ErrorIs(t, err, ErrMiss)

	require.NoError(t, store.Put(ctx, "k1", []byte("response-1"), time.Minute))
	got, err := store.Get(ctx, "k1")
	require.NoError(t, err)
	assert.Equal(t, []byte("response-1"), got)

	// Overwrite wins.
	require.NoError(t, store.Put(ctx, "k1", []byte("response-2"), time.Minute))
	got, err = store.Get(ctx, "k1")
	require.NoError(t, err)
	assert.Equal(t, []byte("response-2"), got)
}

func TestMemoryStore(t *testing.T) {
	store := NewMemory()
	defer func() { _ = store.Close() }()
	storeContract(t, store)
}

func TestMemoryStoreExpiry(t *testing.T) {
	store := NewMemory()
	defer func() { _ = store.Close() }()
	ctx := context.Background()

	require.NoError(t, store.Put(ctx, "k", []byte("v"), 10*time.Millisecond))
	time.Sleep(30 * time.Millisecond)

	_, err := store.Get(ctx, "k")
	assert.ErrorIs(t, err, ErrMiss)
}

func TestSQLiteStore(t *testing.T) {
	store, err := NewSQLite(filepath.Join(t.TempDir(), "replay.db"))
	require.NoError(t, err)
	defer func() { _ = store.Close() }()
	storeContract(t, store)
}

func TestSQLiteStoreExpiry(t *testing.T) {
	store, err := NewSQLite(filepath.Join(t.TempDir(), "replay.db"))
	require.NoError(t, err)
	defer func() { _ = store.Close() }()
	ctx := context.Background()

	require.NoError(t, store.Put(ctx, "k", []byte("v"), 10*time.Millisecond))
	time.Sleep(30 * time.Millisecond)

	_, err = store.Get(ctx, "k")
	assert.ErrorIs(t, err, ErrMiss)
}

func TestBadgerStore(t *testing.T) {
	store, err := NewBadger(t.TempDir())
	require.NoError(t, err)
	defer func() { _ = store.Close() }()
	storeContract(t, store)
}
