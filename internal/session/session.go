// Copyright (c) CurioSwitch (choko@curioswitch.org)
// SPDX-License-Identifier: BUSL-1.1

// Package session tracks the auth/profile state for each signed-in user: a
// small reentrant state machine fed by the profile subscription, holding the
// single-slot cache of the last known-good profile.
package session

import (
	"context"
	"sync"

	"cloud.google.com/go/firestore"

	"github.com/curioswitch/cookingrecipes/internal/recipedb"
	"github.com/curioswitch/cookingrecipes/internal/watch"
)

// State is the session state.
type State int

const (
	// StateIdle means no fetch has been attempted (or the user signed out).
	StateIdle State = iota
	// StateLoading means a fetch is in flight.
	StateLoading
	// StateSuccess means a profile was delivered; the payload may be stale
	// while the subscription is pending its next delivery.
	StateSuccess
	// StateError means the last delivery failed. The subscription keeps
	// running; the next delivery moves back to StateSuccess.
	StateError
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateLoading:
		return "loading"
	case StateSuccess:
		return "success"
	case StateError:
		return "error"
	}
	return "unknown"
}

// Status is a point-in-time view of a session.
type Status struct {
	State State

	// Profile is the last known-good profile. It stays readable in
	// StateError so the cached value keeps serving until a fresh delivery.
	Profile *recipedb.UserProfile

	// Message is set in StateError.
	Message string
}

// Session is the state for one signed-in user.
type Session struct {
	mu     sync.Mutex
	status Status
	cancel context.CancelFunc
}

// Status returns the current session status.
func (s *Session) Status() Status {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.status
}

// Profile returns the cached profile, or nil if none was delivered yet. The
// returned value is shared with concurrent readers; callers must not mutate
// it, they clone before editing.
func (s *Session) Profile() *recipedb.UserProfile {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.status.Profile
}

func (s *Session) apply(ev watch.ProfileEvent) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if ev.Err != nil {
		s.status.State = StateError
		s.status.Message = ev.Err.Error()
		return
	}
	s.status.State = StateSuccess
	s.status.Profile = ev.Profile
	s.status.Message = ""
}

// Manager owns the sessions, keyed by auth subject id.
type Manager struct {
	ctx   context.Context
	store *firestore.Client

	mu       sync.Mutex
	sessions map[string]*Session

	// newEvents starts a profile subscription. Replaceable in tests.
	newEvents func(ctx context.Context, userID string) <-chan watch.ProfileEvent
}

// NewManager returns a Manager whose subscriptions live until ctx is
// cancelled or the session ends.
func NewManager(ctx context.Context, store *firestore.Client) *Manager {
	m := &Manager{
		ctx:      ctx,
		store:    store,
		sessions: map[string]*Session{},
	}
	m.newEvents = func(ctx context.Context, userID string) <-chan watch.ProfileEvent {
		w := watch.NewProfileWatcher(store, userID)
		go func() {
			_ = w.Run(ctx)
		}()
		return w.Events()
	}
	return m
}

// Begin starts a session for the user, subscribing to their profile. It is
// idempotent: an existing session is returned untouched.
func (m *Manager) Begin(userID string) *Session {
	m.mu.Lock()
	defer m.mu.Unlock()
	if s, ok := m.sessions[userID]; ok {
		return s
	}

	ctx, cancel := context.WithCancel(m.ctx)
	s := &Session{
		status: Status{State: StateLoading},
		cancel: cancel,
	}
	events := m.newEvents(ctx, userID)
	go func() {
		for {
			select {
			case <-ctx.Done():
				return
			case ev := <-events:
				s.apply(ev)
			}
		}
	}()

	m.sessions[userID] = s
	return s
}

// Get returns the user's session, or nil if none (an idle user).
func (m *Manager) Get(userID string) *Session {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.sessions[userID]
}

// Status returns the user's session status, StateIdle when no session exists.
func (m *Manager) Status(userID string) Status {
	if s := m.Get(userID); s != nil {
		return s.Status()
	}
	return Status{State: StateIdle}
}

// Profile returns the user's cached profile, or nil for an idle user. The
// same no-mutation contract as Session.Profile applies.
func (m *Manager) Profile(userID string) *recipedb.UserProfile {
	if s := m.Get(userID); s != nil {
		return s.Profile()
	}
	return nil
}

// End tears down the user's session: the subscription is cancelled and the
// cached profile cleared. The user is idle afterwards.
func (m *Manager) End(userID string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.sessions[userID]
	if !ok {
		return
	}
	s.cancel()
	delete(m.sessions, userID)
}
