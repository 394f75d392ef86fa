// Copyright (c) 2025 Authly
// Licensed under the MIT License. See LICENSE file in the project root for details.

// Package session implements a local cache of the last authenticated user.
// It lets whoami report a last-known identity when the API is unreachable.
// The cache is a small sqlite database in the XDG state dir; it holds no
// secrets (the token lives in the token store).
package session

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"path/filepath"
	"time"

	"authly/cli/internal/models"
	"authly/cli/internal/xdg"

	_ "modernc.org/sqlite"
)

const keyCurrentUser = "current_user"

// ErrNoUser is returned when the cache holds no user.
var ErrNoUser = errors.New("session: no cached user")

// Cache stores the last-known authenticated user.
type Cache struct {
	db *sql.DB
}

// Open creates or opens the cache database at path.
func Open(path string) (*Cache, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open session cache: %w", err)
	}
	_, err = db.Exec(`
		CREATE TABLE IF NOT EXISTS metadata (
			key        TEXT PRIMARY KEY,
			value      BLOB NOT NULL,
			updated_at INTEGER NOT NULL
		)
	`)
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to init session cache: %w", err)
	}
	return &Cache{db: db}, nil
}

// OpenDefault opens the cache at its standard location in the XDG state dir.
func OpenDefault() (*Cache, error) {
	dir, err := xdg.StateDir()
	if err != nil {
		return nil, err
	}
	return Open(filepath.Join(dir, "cache.db"))
}

// PutUser records u as the last authenticated user.
func (c *Cache) PutUser(ctx context.Context, u models.User) error {
	b, err := json.Marshal(u)
	if err != nil {
		return err
	}
	_, err = c.db.ExecContext(ctx, `
		INSERT INTO metadata (key, value, updated_at) VALUES (?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at
	`, keyCurrentUser, b, time.Now().Unix())
	if err != nil {
		return fmt.Errorf("failed to cache user: %w", err)
	}
	return nil
}

// User returns the last cached user, or ErrNoUser when nothing is cached.
func (c *Cache) User(ctx context.Context) (models.User, error) {
	var value []byte
	err := c.db.QueryRowContext(ctx,
		`SELECT value FROM metadata WHERE key = ?`, keyCurrentUser).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return models.User{}, ErrNoUser
	}
	if err != nil {
		return models.User{}, fmt.Errorf("failed to read cached user: %w", err)
	}
	var u models.User
	if err := json.Unmarshal(value, &u); err != nil {
		return models.User{}, fmt.Errorf("failed to decode cached user: %w", err)
	}
	return u, nil
}

// Clear wipes the cache (e.g. on logout).
func (c *Cache) Clear(ctx context.Context) error {
	_, err := c.db.ExecContext(ctx, `DELETE FROM metadata`)
	if err != nil {
		return fmt.Errorf("failed to clear session cache: %w", err)
	}
	return nil
}

// Close releases the underlying database handle.
func (c *Cache) Close() error {
	return c.db.Close()
}
