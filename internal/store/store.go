// Package store implements a minimal unidirectional state container.
// State changes flow through a single Dispatch path: an event is reduced
// against the current state by a pure reducer function, the result becomes
// the new state, and subscribers are notified. There is no other way to
// mutate the state, which keeps every transition observable and testable.
package store

import "sync"

// Reducer computes the next state from the current state and an event.
// It must be pure: no I/O, no mutation of its inputs.
type Reducer[S, E any] func(S, E) S

// Listener is invoked with the new state after every dispatch.
type Listener[S any] func(S)

// Store holds a state value and serializes all updates through Dispatch.
type Store[S, E any] struct {
	mu        sync.Mutex
	state     S
	reduce    Reducer[S, E]
	listeners map[int]Listener[S]
	nextID    int
}

// New creates a store with the given initial state and reducer.
func New[S, E any](initial S, reduce Reducer[S, E]) *Store[S, E] {
	return &Store[S, E]{
		state:     initial,
		reduce:    reduce,
		listeners: make(map[int]Listener[S]),
	}
}

// State returns a snapshot of the current state.
func (s *Store[S, E]) State() S {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Dispatch applies the event to the current state via the reducer and
// notifies subscribers with the resulting state. Dispatches are serialized;
// concurrent callers observe last-dispatched-wins semantics.
func (s *Store[S, E]) Dispatch(ev E) {
	s.mu.Lock()
	s.state = s.reduce(s.state, ev)
	next := s.state
	ls := make([]Listener[S], 0, len(s.listeners))
	for _, l := range s.listeners {
		ls = append(ls, l)
	}
	s.mu.Unlock()

	// Listeners run outside the lock so they may call State or Dispatch.
	for _, l := range ls {
		l(next)
	}
}

// Subscribe registers a listener and returns a function that removes it.
func (s *Store[S, E]) Subscribe(l Listener[S]) (unsubscribe func()) {
	s.mu.Lock()
	id := s.nextID
	s.nextID++
	s.listeners[id] = l
	s.mu.Unlock()

	return func() {
		s.mu.Lock()
		delete(s.listeners, id)
		s.mu.Unlock()
	}
}
