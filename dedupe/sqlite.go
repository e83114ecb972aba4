// SPDX-License-Identifier: MIT

package dedupe

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	_ "modernc.org/sqlite" // SQLite driver (pure Go, no CGO)
)

// SQLite is the single-file store. Expiry is stored per row and enforced on
// read; Put opportunistically prunes expired rows.
type SQLite struct {
	db *sql.DB
}

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS replay (
	key        TEXT PRIMARY KEY,
	body       BLOB NOT NULL,
	expires_at INTEGER NOT NULL
);
CREATE INDEX IF NOT EXISTS replay_expires ON replay(expires_at);
`

// NewSQLite opens the database at path in WAL mode and ensures the schema.
func NewSQLite(path string) (*SQLite, error) {
	// busy_timeout avoids "database locked" errors under concurrent turns
	dsn := fmt.Sprintf("file:%s?_busy_timeout=5000&_journal_mode=WAL&_synchronous=NORMAL", path)
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("dedupe: open sqlite: %w", err)
	}
	if _, err := db.Exec(sqliteSchema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("dedupe: init schema: %w", err)
	}
	return &SQLite{db: db}, nil
}

func (s *SQLite) Get(ctx context.Context, key string) ([]byte, error) {
	var body []byte
	err := s.db.QueryRowContext(ctx,
		`SELECT body FROM replay WHERE key = ? AND expires_at > ?`,
		key, time.Now().UnixMilli(),
	).Scan(&body)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrMiss
	}
	if err != nil {
		return nil, err
	}
	return body, nil
}

func (s *SQLite) Put(ctx context.Context, key string, body []byte, ttl time.Duration) error {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	now := time.Now()
	if _, err := s.db.ExecContext(ctx,
		`DELETE FROM replay WHERE expires_at <= ?`, now.UnixMilli(),
	); err != nil {
		return err
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO replay (key, body, expires_at) VALUES (?, ?, ?)
		 ON CONFLICT(key) DO UPDATE SET body = excluded.body, expires_at = excluded.expires_at`,
		key, body, now.Add(ttl).UnixMilli(),
	)
	return err
}

func (s *SQLite) Close() error { return s.db.Close() }
