// SPDX-License-Identifier: MIT

package dedupe

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRedis(t *testing.T) *Redis {
	t.Helper()
	srv := miniredis.RunT(t)
	store, err := NewRedis(srv.Addr())
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func TestRedisStore(t *testing.T) {
	storeContract(t, newTestRedis(t))
}

func TestRedisStoreKeysAreNamespaced(t *testing.T) {
	srv := miniredis.RunT(t)
	store, err := NewRedis(srv.Addr())
	require.NoError(t, err)
	defer func() { _ = store.Close() }()

	require.NoError(t, store.Put(context.Background(), "abc", []byte("v"), time.Minute))
	assert.True(t, srv.Exists("voxhook:replay:abc"))
}

func TestRedisStoreTTL(t *testing.T) {
	srv := miniredis.RunT(t)
	store, err := NewRedis(srv.Addr())
	require.NoError(t, err)
	defer func() { _ = store.Close() }()
	ctx := context.Background()

	require.NoError(t, store.Put(ctx, "k", []byte("v"), time.Second))
	srv.FastForward(2 * time.Second)

	_, err = store.Get(ctx, "k")
	assert.ErrorIs(t, err, ErrMiss)
}
