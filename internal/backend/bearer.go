// Copyright (c) 2025 Authly
// Licensed under the MIT License. See LICENSE file in the project root for details.

package backend

import (
	"encoding/json"
	"net/http"
	"strings"

	"authly/cli/internal/models"
)

// parseBearerToken extracts token from a value like "Bearer <token>" case-insensitively.
// Returns the token string without the "Bearer " prefix, or empty string if invalid format.
func parseBearerToken(value string) string {
	v := strings.TrimSpace(value)
	if len(v) < 7 {
		return ""
	}
	if strings.EqualFold(v[0:6], "bearer") {
		if rest := strings.TrimSpace(v[6:]); rest != "" {
			return rest
		}
	}
	return ""
}

// sessionTokenFromHeaders extracts the session token from a response.
// The API sends it in the Authorization header, usually with a Bearer
// prefix; a bare token value is accepted too.
func sessionTokenFromHeaders(h http.Header) string {
	raw := h.Get("Authorization")
	if t := parseBearerToken(raw); t != "" {
		return t
	}
	// Scan remaining headers for a bearer-shaped value
	for k, vals := range h {
		if strings.EqualFold(k, "authorization") {
			continue
		}
		for _, v := range vals {
			lower := strings.ToLower(v)
			if idx := strings.Index(lower, "bearer "); idx >= 0 {
				if token := strings.TrimSpace(v[idx+len("bearer "):]); token != "" {
					return token
				}
			}
		}
	}
	return strings.TrimSpace(raw)
}

// decodeUser parses a user out of a response body.
// Be liberal in what we accept: the user object may sit at the top level or
// be nested under "user" or "data".
func decodeUser(body []byte) (models.User, error) {
	var raw map[string]any
	if err := json.Unmarshal(body, &raw); err != nil {
		return models.User{}, err
	}
	for _, key := range []string{"user", "data"} {
		if nested, ok := raw[key].(map[string]any); ok {
			raw = nested
			break
		}
	}
	return userFromMap(raw), nil
}

// userFromMap maps the common field spellings onto a User.
func userFromMap(raw map[string]any) models.User {
	var u models.User
	if v, ok := raw["id"].(float64); ok {
		u.ID = int64(v)
	}
	if v, ok := raw["email"].(string); ok {
		u.Email = v
	}
	if v, ok := raw["username"].(string); ok {
		u.Username = v
	}
	return u
}
