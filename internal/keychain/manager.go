// Copyright (c) 2025 Authly
// Licensed under the MIT License. See LICENSE file in the project root for details.

// Package keychain provides centralized, thread-safe keychain operations for authly.
// It manages all interactions with the OS keychain/credential store through a
// single Manager, keeping the session token and its issue timestamp out of
// plain files wherever a native credential store is available.
package keychain

import (
	"errors"
	"sync"

	"github.com/99designs/keyring"
)

// Global keychain manager instance
var (
	globalManager *Manager
	globalError   error
	mu            sync.Mutex
)

// ServiceName identifies our keychain/credential store namespace.
const ServiceName = "authly"

// Keys used for storing secrets in the OS keychain.
// The token and timestamp key names mirror the persisted layout of the
// companion web client so both speak the same storage dialect.
const (
	KeyToken     = "token"
	KeyLastLogin = "lastLoginTime"
)

// ErrNotFound is returned when a key is absent from the keychain.
var ErrNotFound = errors.New("keychain: key not found")

// Manager provides thread-safe operations for the OS keychain.
type Manager struct {
	mu   sync.RWMutex
	ring keyring.Keyring
}

// NewManager opens the OS keyring and wraps it in a Manager.
func NewManager() (*Manager, error) {
	ring, err := keyring.Open(keyring.Config{
		ServiceName: ServiceName,
		PassPrefix:  ServiceName,
	})
	if err != nil {
		return nil, err
	}
	return &Manager{ring: ring}, nil
}

// GetManager returns the global keychain manager instance.
// If not initialized, it will be created on first call.
// If initialization fails, it will retry on subsequent calls.
func GetManager() (*Manager, error) {
	mu.Lock()
	defer mu.Unlock()

	if globalManager != nil {
		return globalManager, nil
	}

	globalManager, globalError = NewManager()
	if globalError != nil {
		return nil, globalError
	}
	return globalManager, nil
}

// Set stores a value under key. Thread-safe.
func (m *Manager) Set(key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.ring.Set(keyring.Item{Key: key, Data: []byte(value)})
}

// Get retrieves the value stored under key. Thread-safe.
// Returns ErrNotFound when the key is absent.
func (m *Manager) Get(key string) (string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	it, err := m.ring.Get(key)
	if err != nil {
		if errors.Is(err, keyring.ErrKeyNotFound) {
			return "", ErrNotFound
		}
		return "", err
	}
	return string(it.Data), nil
}

// Delete removes the value stored under key. Missing keys are not an error.
func (m *Manager) Delete(key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.ring.Remove(key); err != nil && !errors.Is(err, keyring.ErrKeyNotFound) {
		return err
	}
	return nil
}
