// Copyright (c) 2025 Authly
// Licensed under the MIT License. See LICENSE file in the project root for details.

// Package token implements persistence and freshness checking for the
// session token issued by the Authly API.
//
// A token is stored together with the time it was issued, and is only
// handed back to callers while it is younger than TTL. Expired records are
// withheld but not purged; the next successful login simply overwrites them.
package token

import (
	"errors"
	"time"
)

// TTL is how long a stored token remains usable after login (30 minutes,
// matching the server-side session window).
const TTL = 30 * time.Minute

// Persisted key names, shared with the companion web client's storage layout.
const (
	KeyToken     = "token"
	KeyLastLogin = "lastLoginTime"
)

var (
	// ErrNotFound is returned by Load when no token has ever been stored.
	ErrNotFound = errors.New("token: not found")
	// ErrExpired is returned by Load when the stored token is older than TTL.
	ErrExpired = errors.New("token: expired")
)

// Record is a stored token and the time it was issued.
type Record struct {
	Token     string    `json:"token"`
	LastLogin time.Time `json:"lastLoginTime"`
}

// Fresh reports whether a token issued at lastLogin is still usable at now.
// The check is a pure guard so it can be exercised with any clock in tests.
func Fresh(lastLogin, now time.Time) bool {
	return now.Sub(lastLogin) < TTL
}

// Store persists the session token. Implementations must treat Load of an
// expired record as a denial (ErrExpired) without deleting the record.
type Store interface {
	// Save persists the token with now as its issue time.
	// The token is stored as-is; no shape validation is performed.
	Save(tok string, now time.Time) error
	// Load returns the stored token when it is still fresh at now.
	// Returns ErrNotFound when nothing is stored and ErrExpired when the
	// record is older than TTL.
	Load(now time.Time) (string, error)
	// Clear removes the stored token and timestamp.
	Clear() error
}
