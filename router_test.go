// SPDX-License-Identifier: MIT

package voxhook

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func noopHandler(context.Context, *Conversation) error { return nil }

func TestRouterLookupPrecedence(t *testing.T) {
	r := newRouter()

	var called string
	r.handle(AnyState, "greet", func(context.Context, *Conversation) error {
		called = "any"
		return nil
	})
	r.handle("checkout", "greet", func(context.Context, *Conversation) error {
		called = "checkout"
		return nil
	})

	h, err := r.lookup("checkout", "greet")
	require.NoError(t, err)
	require.NoError(t, h(context.Background(), nil))
	assert.Equal(t, "checkout", called)

	h, err = r.lookup("browsing", "greet")
	require.NoError(t, err)
	require.NoError(t, h(context.Background(), nil))
	assert.Equal(t, "any", called)

	h, err = r.lookup("", "greet")
	require.NoError(t, err)
	require.NoError(t, h(context.Background(), nil))
	assert.Equal(t, "any", called)
}

func TestRouterRedirectChain(t *testing.T) {
	r := newRouter()
	var called bool
	r.handle(AnyState, "target", func(context.Context, *Conversation) error {
		called = true
		return nil
	})
	r.redirect(AnyState, "alias", AnyState, "middle")
	r.redirect(AnyState, "middle", AnyState, "target")

	h, err := r.lookup("", "alias")
	require.NoError(t, err)
	require.NoError(t, h(context.Background(), nil))
	assert.True(t, called)
}

func TestRouterCircularRedirect(t *testing.T) {
	r := newRouter()
	r.redirect(AnyState, "a", AnyState, "b")
	r.redirect(AnyState, "b", AnyState, "a")

	_, err := r.lookup("", "a")
	assert.ErrorIs(t, err, ErrCircularRedirect)

	r2 := newRouter()
	r2.redirect(AnyState, "self", AnyState, "self")
	_, err = r2.lookup("", "self")
	assert.ErrorIs(t, err, ErrCircularRedirect)
}

func TestRouterDanglingRedirect(t *testing.T) {
	r := newRouter()
	r.redirect(AnyState, "alias", AnyState, "missing")

	_, err := r.lookup("", "alias")
	assert.ErrorIs(t, err, ErrDanglingRedirect)
}

func TestRouterNoMatchWithoutFallback(t *testing.T) {
	r := newRouter()
	_, err := r.lookup("", "unknown")
	assert.ErrorIs(t, err, ErrNoMatchingHandler)
}

func TestRouterFallback(t *testing.T) {
	r := newRouter()
	r.fallback = noopHandler

	h, err := r.lookup("", "unknown")
	require.NoError(t, err)
	assert.NotNil(t, h)
}

func TestStateKey(t *testing.T) {
	assert.Equal(t, "greeted", stateKey("greeted"))
	assert.Equal(t, "", stateKey(nil))
	assert.Equal(t, "", stateKey(float64(3)))
}
