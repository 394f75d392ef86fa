// Copyright (c) 2025 Authly
// Licensed under the MIT License. See LICENSE file in the project root for details.

// Package auth provides client-side authentication state management for the CLI.
// It defines the auth state, the two events that can change it, the pure
// reducer that applies them, and the Service that performs the network-calling
// operations (sign up, login, logout, session check) against the Authly API.
package auth

import (
	"authly/cli/internal/models"
	"authly/cli/internal/store"
)

// EventKind tags an auth event.
type EventKind string

const (
	// EventAuthenticated is dispatched when an operation established a session.
	EventAuthenticated EventKind = "authenticated"
	// EventNotAuthenticated is dispatched when an operation ended without one.
	EventNotAuthenticated EventKind = "not_authenticated"
)

// Event is an auth state transition. Only EventAuthenticated carries a user.
type Event struct {
	Kind EventKind
	User models.User
}

// Authenticated builds the event for a successfully established session.
func Authenticated(u models.User) Event {
	return Event{Kind: EventAuthenticated, User: u}
}

// NotAuthenticated builds the event for a missing or ended session.
func NotAuthenticated() Event {
	return Event{Kind: EventNotAuthenticated}
}

// State is the client-side authentication state.
//
// Invariants maintained by Reduce:
//   - Checked is false only until the first event arrives; it never reverts.
//   - LoggedIn is true if and only if CurrentUser is non-zero.
type State struct {
	// Checked reports whether at least one session check has resolved.
	Checked bool
	// LoggedIn reports whether a session is currently established.
	LoggedIn bool
	// CurrentUser is the identity of the session owner; zero when logged out.
	CurrentUser models.User
}

// Reduce is the pure transition function for auth state.
// Unknown event kinds leave the state unchanged.
func Reduce(s State, ev Event) State {
	switch ev.Kind {
	case EventAuthenticated:
		return State{Checked: true, LoggedIn: true, CurrentUser: ev.User}
	case EventNotAuthenticated:
		return State{Checked: true, LoggedIn: false, CurrentUser: models.User{}}
	default:
		return s
	}
}

// Store is the state container specialized to auth state and events.
type Store = store.Store[State, Event]

// NewStore creates an auth store with zero initial state.
func NewStore() *Store {
	return store.New(State{}, Reduce)
}
