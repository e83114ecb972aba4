// SPDX-License-Identifier: MIT

package dedupe

import (
	"context"
	"sync"
	"time"
)

// Memory is the in-process backend. Entries expire lazily on read and via a
// background janitor.
type Memory struct {
	mu      sync.RWMutex
	entries map[string]memoryEntry
	stop    chan struct{}
	once    sync.Once
}

type memoryEntry struct {
	body      []byte
	expiresAt time.Time
}

// NewMemory creates an in-memory store with a janitor sweeping expired
// entries once per DefaultTTL.
func NewMemory() *Memory {
	m := &Memory{
		entries: map[string]memoryEntry{},
		stop:    make(chan struct{}),
	}
	go m.janitor(DefaultTTL)
	return m
}

func (m *Memory) Get(_ context.Context, key string) ([]byte, error) {
	m.mu.RLock()
	e, ok := m.entries[key]
	m.mu.RUnlock()
	if !ok || time.Now().After(e.expiresAt) {
		return nil, ErrMiss
	}
	return e.body, nil
}

func (m *Memory) Put(_ context.Context, key string, body []byte, ttl time.Duration) error {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	buf := make([]byte, len(body))
	copy(buf, body)
	m.mu.Lock()
	m.entries[key] = memoryEntry{body: buf, expiresAt: time.Now().Add(ttl)}
	m.mu.Unlock()
	return nil
}

func (m *Memory) Close() error {
	m.once.Do(func() { close(m.stop) })
	return nil
}

// Len reports the live entry count, expired entries included until swept.
func (m *Memory) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.entries)
}

func (m *Memory) janitor(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-m.stop:
			return
		case now := <-ticker.C:
			m.mu.Lock()
			for k, e := range m.entries {
				if now.After(e.expiresAt) {
					delete(m.entries, k)
				}
			}
			m.mu.Unlock()
		}
	}
}
