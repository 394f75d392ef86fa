package auth

import (
	"context"
	"net/http"
	"testing"
	"time"

	"authly/cli/internal/backend"
	"authly/cli/internal/models"
	"authly/cli/internal/token"

	"github.com/stretchr/testify/require"
)

// ---- fakes ----

// fakeTokenStore is an in-memory token.Store with the same freshness
// semantics as the real implementations.
type fakeTokenStore struct {
	tok       string
	lastLogin time.Time
	saveErr   error
}

func (f *fakeTokenStore) Save(tok string, now time.Time) error {
	if f.saveErr != nil {
		return f.saveErr
	}
	f.tok = tok
	f.lastLogin = now
	return nil
}

func (f *fakeTokenStore) Load(now time.Time) (string, error) {
	if f.tok == "" {
		return "", token.ErrNotFound
	}
	if !token.Fresh(f.lastLogin, now) {
		return "", token.ErrExpired
	}
	return f.tok, nil
}

func (f *fakeTokenStore) Clear() error {
	f.tok = ""
	f.lastLogin = time.Time{}
	return nil
}

// fakeBackend records calls and returns scripted results.
type fakeBackend struct {
	signInUser models.User
	signInTok  string
	signInErr  error

	logoutErr error

	currentUser    models.User
	currentUserErr error

	lastCreds       models.Credentials
	lastLogoutTok   string
	lastCurrentTok  string
	currentUserSeen bool
}

func (f *fakeBackend) SignUp(ctx context.Context, creds models.Credentials) (models.User, string, error) {
	f.lastCreds = creds
	return f.signInUser, f.signInTok, f.signInErr
}

func (f *fakeBackend) Login(ctx context.Context, creds models.Credentials) (models.User, string, error) {
	f.lastCreds = creds
	return f.signInUser, f.signInTok, f.signInErr
}

func (f *fakeBackend) Logout(ctx context.Context, tok string) error {
	f.lastLogoutTok = tok
	return f.logoutErr
}

func (f *fakeBackend) CurrentUser(ctx context.Context, tok string) (models.User, error) {
	f.lastCurrentTok = tok
	f.currentUserSeen = true
	return f.currentUser, f.currentUserErr
}

func newTestService(be backend.API, tokens token.Store) *Service {
	return NewService(be, tokens, NewStore(), nil)
}

// ---- tests ----

func TestSignUpSuccess(t *testing.T) {
	alice := models.User{ID: 1, Email: "a@b.com"}
	be := &fakeBackend{signInUser: alice, signInTok: "abc"}
	tokens := &fakeTokenStore{}
	svc := newTestService(be, tokens)

	issued := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return issued }

	user, err := svc.SignUp(context.Background(), models.Credentials{Email: "a@b.com", Password: "pw"})
	require.NoError(t, err)
	require.Equal(t, alice, user)

	// Token persisted with the sign-up time as session start.
	require.Equal(t, "abc", tokens.tok)
	require.Equal(t, issued, tokens.lastLogin)

	require.Equal(t, State{Checked: true, LoggedIn: true, CurrentUser: alice}, svc.Store().State())
}

func TestLoginFailureDispatchesNotAuthenticatedAndReturnsErrorBody(t *testing.T) {
	apiErr := &backend.APIError{StatusCode: http.StatusUnauthorized, Body: map[string]any{"error": "invalid"}}
	be := &fakeBackend{signInErr: apiErr}
	tokens := &fakeTokenStore{}
	svc := newTestService(be, tokens)

	_, err := svc.Login(context.Background(), models.Credentials{Email: "a@b.com", Password: "wrong"})
	require.ErrorIs(t, err, apiErr)
	require.Equal(t, "invalid", apiErr.Message())

	require.Equal(t, State{Checked: true}, svc.Store().State())
	require.Empty(t, tokens.tok)
}

func TestSignUpTokenSaveFailure(t *testing.T) {
	be := &fakeBackend{signInUser: models.User{ID: 1, Email: "a@b.com"}, signInTok: "abc"}
	tokens := &fakeTokenStore{saveErr: context.DeadlineExceeded}
	svc := newTestService(be, tokens)

	_, err := svc.SignUp(context.Background(), models.Credentials{Email: "a@b.com", Password: "pw"})
	require.Error(t, err)
	require.Equal(t, State{Checked: true}, svc.Store().State())
}

func TestCheckAuthWithFreshToken(t *testing.T) {
	alice := models.User{ID: 1, Email: "a@b.com"}
	be := &fakeBackend{currentUser: alice}
	tokens := &fakeTokenStore{tok: "abc", lastLogin: time.Now()}
	svc := newTestService(be, tokens)

	user, err := svc.CheckAuth(context.Background())
	require.NoError(t, err)
	require.Equal(t, alice, user)
	require.Equal(t, "abc", be.lastCurrentTok)
	require.Equal(t, State{Checked: true, LoggedIn: true, CurrentUser: alice}, svc.Store().State())
}

func TestCheckAuthWithExpiredTokenSendsUnauthenticatedRequest(t *testing.T) {
	apiErr := &backend.APIError{StatusCode: http.StatusUnauthorized}
	be := &fakeBackend{currentUserErr: apiErr}
	tokens := &fakeTokenStore{tok: "abc", lastLogin: time.Now().Add(-31 * time.Minute)}
	svc := newTestService(be, tokens)

	_, err := svc.CheckAuth(context.Background())
	require.ErrorIs(t, err, apiErr)

	// The stale token was withheld; the request went out without one.
	require.True(t, be.currentUserSeen)
	require.Empty(t, be.lastCurrentTok)

	require.Equal(t, State{Checked: true}, svc.Store().State())
}

func TestLogoutClearsLocalStateEvenOnRemoteFailure(t *testing.T) {
	apiErr := &backend.APIError{StatusCode: http.StatusInternalServerError}
	be := &fakeBackend{logoutErr: apiErr}
	tokens := &fakeTokenStore{tok: "abc", lastLogin: time.Now()}
	svc := newTestService(be, tokens)
	svc.Store().Dispatch(Authenticated(models.User{ID: 1, Email: "a@b.com"}))

	err := svc.Logout(context.Background())
	require.ErrorIs(t, err, apiErr)

	require.Equal(t, "abc", be.lastLogoutTok)
	require.Empty(t, tokens.tok)
	require.Equal(t, State{Checked: true}, svc.Store().State())
}

func TestLogoutSuccess(t *testing.T) {
	be := &fakeBackend{}
	tokens := &fakeTokenStore{tok: "abc", lastLogin: time.Now()}
	svc := newTestService(be, tokens)

	require.NoError(t, svc.Logout(context.Background()))
	require.Empty(t, tokens.tok)
	require.Equal(t, State{Checked: true}, svc.Store().State())
}

// Rapid repeated operations are not coordinated; the store simply applies
// whichever dispatch lands last.
func TestRepeatedChecksLastResolvedWins(t *testing.T) {
	alice := models.User{ID: 1, Email: "a@b.com"}
	be := &fakeBackend{currentUser: alice}
	tokens := &fakeTokenStore{tok: "abc", lastLogin: time.Now()}
	svc := newTestService(be, tokens)

	_, err := svc.CheckAuth(context.Background())
	require.NoError(t, err)

	be.currentUserErr = &backend.APIError{StatusCode: http.StatusUnauthorized}
	_, err = svc.CheckAuth(context.Background())
	require.Error(t, err)

	require.Equal(t, State{Checked: true}, svc.Store().State())
}
