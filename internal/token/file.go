// Copyright (c) 2025 Authly
// Licensed under the MIT License. See LICENSE file in the project root for details.

package token

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"time"

	"authly/cli/internal/xdg"
)

// FileStore persists the token as a 0600 JSON file in the XDG state dir.
// It is the fallback for hosts without a usable OS keychain.
type FileStore struct {
	path string
}

// fileRecord is the on-disk layout: the token string and the issue time as
// epoch milliseconds, matching the companion web client's storage keys.
type fileRecord struct {
	Token     string `json:"token"`
	LastLogin int64  `json:"lastLoginTime"`
}

// NewFileStore returns a Store writing to session.json in the XDG state dir.
func NewFileStore() (*FileStore, error) {
	dir, err := xdg.StateDir()
	if err != nil {
		return nil, err
	}
	return &FileStore{path: filepath.Join(dir, "session.json")}, nil
}

// NewFileStoreAt returns a Store writing to the given path.
func NewFileStoreAt(path string) *FileStore {
	return &FileStore{path: path}
}

// Save persists the token and its issue time.
func (s *FileStore) Save(tok string, now time.Time) error {
	b, err := json.MarshalIndent(fileRecord{Token: tok, LastLogin: now.UnixMilli()}, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(s.path, b, 0o600)
}

// Load returns the stored token while it is fresh at now.
// An expired record is withheld but left on disk.
func (s *FileStore) Load(now time.Time) (string, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", ErrNotFound
		}
		return "", err
	}
	var rec fileRecord
	if err := json.Unmarshal(data, &rec); err != nil {
		return "", err
	}
	if rec.Token == "" {
		return "", ErrNotFound
	}
	if !Fresh(time.UnixMilli(rec.LastLogin), now) {
		return "", ErrExpired
	}
	return rec.Token, nil
}

// Clear removes the stored record. A missing file is not an error.
func (s *FileStore) Clear() error {
	if err := os.Remove(s.path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	return nil
}

// NewDefaultStore returns the keychain-backed store when the OS keychain is
// available and falls back to the file store otherwise.
func NewDefaultStore() (Store, error) {
	if ks, err := NewKeychainStore(); err == nil {
		return ks, nil
	}
	return NewFileStore()
}
