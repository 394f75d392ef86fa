// Copyright (c) 2025 Authly
// Licensed under the MIT License. See LICENSE file in the project root for details.

package auth

import (
	"context"
	"time"

	"authly/cli/internal/backend"
	"authly/cli/internal/models"
	"authly/cli/internal/session"
	"authly/cli/internal/token"
)

// Service performs the network-calling auth operations and dispatches their
// outcome to the state store. Every operation issues exactly one HTTP call,
// dispatches exactly one event, and reports failures through its returned
// error only; it never panics and there are no retries.
//
// The token store is an injected dependency so tests can run against an
// in-memory fake instead of the OS keychain.
type Service struct {
	be     backend.API
	tokens token.Store
	store  *Store
	cache  *session.Cache // optional; nil disables offline caching
	now    func() time.Time
}

// NewService constructs a Service. cache may be nil.
func NewService(be backend.API, tokens token.Store, st *Store, cache *session.Cache) *Service {
	return &Service{
		be:     be,
		tokens: tokens,
		store:  st,
		cache:  cache,
		now:    time.Now,
	}
}

// Store returns the state container the service dispatches to.
func (s *Service) Store() *Store {
	return s.store
}

// SignUp creates an account and establishes a session.
// On success the returned token is persisted with the current time as the
// session start, and EventAuthenticated is dispatched with the new user.
// On any failure EventNotAuthenticated is dispatched and the API's error
// body is returned to the caller.
func (s *Service) SignUp(ctx context.Context, creds models.Credentials) (models.User, error) {
	return s.signIn(ctx, s.be.SignUp, creds)
}

// Login authenticates existing credentials; same contract as SignUp.
func (s *Service) Login(ctx context.Context, creds models.Credentials) (models.User, error) {
	return s.signIn(ctx, s.be.Login, creds)
}

type signInCall func(context.Context, models.Credentials) (models.User, string, error)

func (s *Service) signIn(ctx context.Context, call signInCall, creds models.Credentials) (models.User, error) {
	user, tok, err := call(ctx, creds)
	if err != nil {
		s.store.Dispatch(NotAuthenticated())
		return models.User{}, err
	}
	if err := s.tokens.Save(tok, s.now()); err != nil {
		s.store.Dispatch(NotAuthenticated())
		return models.User{}, err
	}
	s.store.Dispatch(Authenticated(user))
	s.cacheUser(ctx, user)
	return user, nil
}

// Logout ends the session. The remote call is best-effort: the local token
// and cached user are cleared and EventNotAuthenticated is dispatched no
// matter how the server answered; a transport or API failure is still
// reported to the caller.
func (s *Service) Logout(ctx context.Context) error {
	tok := s.loadToken()
	err := s.be.Logout(ctx, tok)

	s.store.Dispatch(NotAuthenticated())
	if cerr := s.tokens.Clear(); cerr != nil && err == nil {
		err = cerr
	}
	if s.cache != nil {
		_ = s.cache.Clear(ctx)
	}
	return err
}

// CheckAuth asks the API who owns the stored session token.
// A stale or missing token is not an error here: the request is simply sent
// unauthenticated, the server answers non-OK, and the state resolves to
// not-authenticated. Either way the check marks the state as Checked.
func (s *Service) CheckAuth(ctx context.Context) (models.User, error) {
	user, err := s.be.CurrentUser(ctx, s.loadToken())
	if err != nil {
		s.store.Dispatch(NotAuthenticated())
		return models.User{}, err
	}
	s.store.Dispatch(Authenticated(user))
	s.cacheUser(ctx, user)
	return user, nil
}

// LastKnownUser returns the cached user from the last successful operation.
// Used for offline display only; it proves nothing about the session.
func (s *Service) LastKnownUser(ctx context.Context) (models.User, error) {
	if s.cache == nil {
		return models.User{}, session.ErrNoUser
	}
	return s.cache.User(ctx)
}

// loadToken returns the stored token, or "" when it is missing or expired.
func (s *Service) loadToken() string {
	tok, err := s.tokens.Load(s.now())
	if err != nil {
		return ""
	}
	return tok
}

func (s *Service) cacheUser(ctx context.Context, u models.User) {
	if s.cache == nil {
		return
	}
	// Cache failures never fail the operation itself.
	_ = s.cache.PutUser(ctx, u)
}
