package backend

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"authly/cli/internal/models"

	"github.com/stretchr/testify/require"
)

func TestSignUpParsesUserAndAuthorizationHeader(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/signup", r.URL.Path)
		require.Equal(t, "application/json", r.Header.Get("Content-Type"))

		w.Header().Set("Authorization", "Bearer abc")
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"id":1,"email":"a@b.com"}`))
	}))
	defer srv.Close()

	user, tok, err := New(srv.URL).SignUp(context.Background(), models.Credentials{Email: "a@b.com", Password: "pw"})
	require.NoError(t, err)
	require.Equal(t, "abc", tok)
	require.Equal(t, models.User{ID: 1, Email: "a@b.com"}, user)
}

func TestLoginParsesNestedUser(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/login", r.URL.Path)
		w.Header().Set("Authorization", "Bearer tok-1")
		_, _ = w.Write([]byte(`{"user":{"id":7,"email":"u@e.com","username":"u"}}`))
	}))
	defer srv.Close()

	user, tok, err := New(srv.URL).Login(context.Background(), models.Credentials{Email: "u@e.com", Password: "pw"})
	require.NoError(t, err)
	require.Equal(t, "tok-1", tok)
	require.Equal(t, models.User{ID: 7, Email: "u@e.com", Username: "u"}, user)
}

func TestLoginFailureSurfacesErrorBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"error":"invalid"}`))
	}))
	defer srv.Close()

	_, _, err := New(srv.URL).Login(context.Background(), models.Credentials{Email: "a@b.com", Password: "nope"})
	require.Error(t, err)

	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	require.Equal(t, http.StatusUnauthorized, apiErr.StatusCode)
	require.Equal(t, "invalid", apiErr.Message())
}

func TestSignUpWithoutTokenHeaderFails(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"id":1,"email":"a@b.com"}`))
	}))
	defer srv.Close()

	_, _, err := New(srv.URL).SignUp(context.Background(), models.Credentials{Email: "a@b.com", Password: "pw"})
	require.Error(t, err)
}

func TestLogoutSendsDeleteWithBearerToken(t *testing.T) {
	var gotMethod, gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		gotAuth = r.Header.Get("Authorization")
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	require.NoError(t, New(srv.URL).Logout(context.Background(), "abc"))
	require.Equal(t, http.MethodDelete, gotMethod)
	require.Equal(t, "Bearer abc", gotAuth)
}

func TestCurrentUserWithoutTokenGetsUniformError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Empty(t, r.Header.Get("Authorization"))
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"error":"not authorized"}`))
	}))
	defer srv.Close()

	_, err := New(srv.URL).CurrentUser(context.Background(), "")
	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	require.Equal(t, "not authorized", apiErr.Message())
}

func TestParseBearerToken(t *testing.T) {
	tests := []struct {
		name  string
		value string
		want  string
	}{
		{name: "standard", value: "Bearer abc", want: "abc"},
		{name: "lowercase scheme", value: "bearer abc", want: "abc"},
		{name: "extra whitespace", value: "  Bearer   abc  ", want: "abc"},
		{name: "no scheme", value: "abc", want: ""},
		{name: "scheme only", value: "Bearer ", want: ""},
		{name: "empty", value: "", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, parseBearerToken(tt.value))
		})
	}
}

func TestAPIErrorMessageShapes(t *testing.T) {
	tests := []struct {
		name string
		body map[string]any
		want string
	}{
		{name: "error string", body: map[string]any{"error": "invalid"}, want: "invalid"},
		{name: "message string", body: map[string]any{"message": "nope"}, want: "nope"},
		{name: "errors list", body: map[string]any{"errors": []any{"a", "b"}}, want: "a; b"},
		{name: "errors map", body: map[string]any{"errors": map[string]any{"email": "is taken"}}, want: "email is taken"},
		{name: "nil body", body: nil, want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := &APIError{StatusCode: 422, Body: tt.body}
			require.Equal(t, tt.want, e.Message())
		})
	}
}
