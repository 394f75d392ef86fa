// Copyright (c) 2025 Authly
// Licensed under the MIT License. See LICENSE file in the project root for details.

package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"authly/cli/internal/models"
)

// SignUp calls POST /signup with the credentials as JSON.
func (h *HTTP) SignUp(ctx context.Context, creds models.Credentials) (models.User, string, error) {
	return h.signIn(ctx, pathSignUp, creds)
}

// Login calls POST /login with the credentials as JSON.
func (h *HTTP) Login(ctx context.Context, creds models.Credentials) (models.User, string, error) {
	return h.signIn(ctx, pathLogin, creds)
}

// signIn posts credentials and, on an OK response, returns the user from the
// body and the session token from the Authorization header.
func (h *HTTP) signIn(ctx context.Context, path string, creds models.Credentials) (models.User, string, error) {
	payload, err := json.Marshal(creds)
	if err != nil {
		return models.User{}, "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, h.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return models.User{}, "", err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := h.client.Do(req)
	if err != nil {
		return models.User{}, "", err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return models.User{}, "", err
	}

	if !okStatus(resp.StatusCode) {
		return models.User{}, "", apiError(resp.StatusCode, body)
	}

	tok := sessionTokenFromHeaders(resp.Header)
	if tok == "" {
		return models.User{}, "", errors.New("no session token in response")
	}

	user, err := decodeUser(body)
	if err != nil {
		return models.User{}, "", err
	}
	return user, tok, nil
}

// Logout calls DELETE /logout with the session token attached.
func (h *HTTP) Logout(ctx context.Context, tok string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodDelete, h.baseURL+pathLogout, nil)
	if err != nil {
		return err
	}
	setAuthHeader(req, tok)

	resp, err := h.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if !okStatus(resp.StatusCode) {
		body, _ := io.ReadAll(resp.Body)
		return apiError(resp.StatusCode, body)
	}
	return nil
}

// CurrentUser calls GET /current_user with the session token attached.
// An empty tok still sends the request; the server answers non-OK and the
// caller sees a uniform APIError.
func (h *HTTP) CurrentUser(ctx context.Context, tok string) (models.User, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, h.baseURL+pathCurrentUser, nil)
	if err != nil {
		return models.User{}, err
	}
	req.Header.Set("Accept", "application/json")
	setAuthHeader(req, tok)

	resp, err := h.client.Do(req)
	if err != nil {
		return models.User{}, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return models.User{}, err
	}

	if !okStatus(resp.StatusCode) {
		return models.User{}, apiError(resp.StatusCode, body)
	}
	return decodeUser(body)
}

func setAuthHeader(req *http.Request, tok string) {
	if tok != "" {
		req.Header.Set("Authorization", "Bearer "+tok)
	}
}

func okStatus(code int) bool {
	return code >= 200 && code < 300
}

// apiError wraps a non-OK response. The body is parsed as JSON when possible
// so callers can surface the server's own error wording.
func apiError(status int, body []byte) *APIError {
	e := &APIError{StatusCode: status}
	var parsed map[string]any
	if err := json.Unmarshal(body, &parsed); err == nil {
		e.Body = parsed
	}
	return e
}
