// SPDX-License-Identifier: MIT

package dedupe

import (
	"context"
	"errors"
	"time"

	"github.com/dgraph-io/badger/v4"
)

const badgerKeyPrefix = "replay:"

// Badger is the embedded on-disk store, suitable for single-node deployments
// that must survive restarts without an external service.
type Badger struct {
	db *badger.DB
}

// NewBadger opens (or creates) the Badger database at path.
func NewBadger(path string) (*Badger, error) {
	opts := badger.DefaultOptions(path).WithLogger(nil)
	db, err := badger.Open(opts)
	if err != nil {
		return nil, err
	}
	return &Badger{db: db}, nil
}

func (b *Badger) Get(_ context.Context, key string) ([]byte, error) {
	var out []byte
	err := b.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(badgerKeyPrefix + key))
		if err != nil {
			return err
		}
		out, err = item.ValueCopy(nil)
		return err
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		return nil, ErrMiss
	}
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (b *Badger) Put(_ context.Context, key string, body []byte, ttl time.Duration) error {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return b.db.Update(func(txn *badger.Txn) error {
		entry := badger.NewEntry([]byte(badgerKeyPrefix+key), body).WithTTL(ttl)
		return txn.SetEntry(entry)
	})
}

func (b *Badger) Close() error { return b.db.Close() }
