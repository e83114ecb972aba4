// SPDX-License-Identifier: MIT

// Package dedupe provides short-lived response caching keyed by request
// fingerprint, used to answer platform retries of the same webhook call with
// the originally serialized response instead of re-running handlers.
//
// This is transport-level replay suppression only. Conversation continuity
// still round-trips through the dialog token and contexts; nothing here
// persists session state.
package dedupe

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"time"
)

// ErrMiss reports a key with no cached response.
var ErrMiss = errors.New("dedupe: miss")

// DefaultTTL bounds how long a cached response may answer a retry. Platform
// retries arrive within seconds; anything older is a new turn.
const DefaultTTL = 30 * time.Second

// Store caches serialized responses by request fingerprint.
type Store interface {
	// Get returns the cached response for key, or ErrMiss.
	Get(ctx context.Context, key string) ([]byte, error)
	// Put caches a response under key for ttl.
	Put(ctx context.Context, key string, body []byte, ttl time.Duration) error
	// Close releases backend resources.
	Close() error
}

// Fingerprint derives the replay key for an inbound body.
func Fingerprint(body []byte) string {
	sum := sha256.Sum256(body)
	return hex.EncodeToString(sum[:])
}

// Config selects and parameterizes a backend.
type Config struct {
	// Backend is one of "memory", "redis", "badger", "sqlite".
	Backend string
	// DSN is the backend address: Redis URL, Badger directory, or SQLite
	// file path. Unused by the memory backend.
	DSN string
	// TTL overrides DefaultTTL when positive.
	TTL time.Duration
}

// Open constructs the configured backend. An empty backend name selects the
// in-memory store.
func Open(cfg Config) (Store, error) {
	switch cfg.Backend {
	case "", "memory":
		return NewMemory(), nil
	case "redis":
		return NewRedis(cfg.DSN)
	case "badger":
		return NewBadger(cfg.DSN)
	case "sqlite":
		return NewSQLite(cfg.DSN)
	default:
		return nil, fmt.Errorf("dedupe: unknown backend %q", cfg.Backend)
	}
}
