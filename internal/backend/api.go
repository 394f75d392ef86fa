// Copyright (c) 2025 Authly
// Licensed under the MIT License. See LICENSE file in the project root for details.

// Package backend implements the HTTP client for the Authly API.
package backend

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"authly/cli/internal/models"
)

// API is the surface of the Authly companion API used by the CLI.
type API interface {
	// SignUp creates an account. On success it returns the created user and
	// the session token carried in the response's Authorization header.
	SignUp(ctx context.Context, creds models.Credentials) (models.User, string, error)
	// Login authenticates existing credentials; same contract as SignUp.
	Login(ctx context.Context, creds models.Credentials) (models.User, string, error)
	// Logout invalidates the session identified by tok on the server.
	Logout(ctx context.Context, tok string) error
	// CurrentUser returns the user owning the session identified by tok.
	CurrentUser(ctx context.Context, tok string) (models.User, error)
}

// APIError is any non-OK response from the Authly API. All failure causes
// (validation, bad credentials, server errors) are surfaced uniformly as the
// status code plus the parsed error body; the caller owns user messaging.
type APIError struct {
	StatusCode int
	Body       map[string]any
}

func (e *APIError) Error() string {
	if msg := e.Message(); msg != "" {
		return fmt.Sprintf("api error: status %d: %s", e.StatusCode, msg)
	}
	return fmt.Sprintf("api error: status %d", e.StatusCode)
}

// Message extracts a human-readable message from the error body.
// It tries common field names and joins list-shaped error payloads.
func (e *APIError) Message() string {
	if e.Body == nil {
		return ""
	}
	for _, key := range []string{"error", "message"} {
		if v, ok := e.Body[key].(string); ok && v != "" {
			return v
		}
	}
	if v, ok := e.Body["errors"]; ok {
		switch errs := v.(type) {
		case []any:
			var parts []string
			for _, item := range errs {
				if s, ok := item.(string); ok && s != "" {
					parts = append(parts, s)
				}
			}
			return strings.Join(parts, "; ")
		case map[string]any:
			var parts []string
			for field, msg := range errs {
				if s, ok := msg.(string); ok && s != "" {
					parts = append(parts, field+" "+s)
				}
			}
			sort.Strings(parts)
			return strings.Join(parts, "; ")
		}
	}
	return ""
}
