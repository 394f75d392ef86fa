// Copyright (c) 2025 Authly
// Licensed under the MIT License. See LICENSE file in the project root for details.

package token

import (
	"errors"
	"strconv"
	"time"

	"authly/cli/internal/keychain"
)

// KeychainStore persists the token in the OS keychain via the shared manager.
type KeychainStore struct {
	km *keychain.Manager
}

// NewKeychainStore returns a Store backed by the OS keychain.
// Fails when no native credential store is available on this host.
func NewKeychainStore() (*KeychainStore, error) {
	km, err := keychain.GetManager()
	if err != nil {
		return nil, err
	}
	return &KeychainStore{km: km}, nil
}

// Save persists the token and its issue time as epoch milliseconds.
func (s *KeychainStore) Save(tok string, now time.Time) error {
	if err := s.km.Set(keychain.KeyToken, tok); err != nil {
		return err
	}
	return s.km.Set(keychain.KeyLastLogin, strconv.FormatInt(now.UnixMilli(), 10))
}

// Load returns the stored token while it is fresh at now.
func (s *KeychainStore) Load(now time.Time) (string, error) {
	tok, err := s.km.Get(keychain.KeyToken)
	if err != nil {
		if errors.Is(err, keychain.ErrNotFound) {
			return "", ErrNotFound
		}
		return "", err
	}
	raw, err := s.km.Get(keychain.KeyLastLogin)
	if err != nil {
		if errors.Is(err, keychain.ErrNotFound) {
			return "", ErrNotFound
		}
		return "", err
	}
	ms, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return "", ErrNotFound
	}
	if !Fresh(time.UnixMilli(ms), now) {
		return "", ErrExpired
	}
	return tok, nil
}

// Clear removes the token and timestamp from the keychain.
func (s *KeychainStore) Clear() error {
	if err := s.km.Delete(keychain.KeyToken); err != nil {
		return err
	}
	return s.km.Delete(keychain.KeyLastLogin)
}
