// Package session holds the client's in-memory view of the authenticated
// session and the guard that reconciles it with the token store and the
// server before protected work runs.
package session

import (
	"context"
	"sync"

	"remindcli/internal/client/models"
	"remindcli/internal/client/repositories/tokens"
)

// Snapshot is a point-in-time copy of the session. Invariant: Authenticated
// is true exactly when Tokens carries a non-empty access token. User may lag
// behind Authenticated (nil until the first profile fetch lands).
type Snapshot struct {
	Tokens        *models.TokenPair
	User          *models.UserProfile
	Authenticated bool
}

// State is the single owned session holder shared by every consumer.
// Transitions are all-or-nothing: tokens and the authenticated flag change
// together, and every token change is persisted to the store before the
// in-memory view moves.
type State struct {
	store tokens.Repository

	mu            sync.Mutex
	tokens        *models.TokenPair
	user          *models.UserProfile
	authenticated bool
	subs          []func(Snapshot)
}

func NewState(store tokens.Repository) *State {
	return &State{store: store}
}

// Hydrate initializes the in-memory session from the token store. Called
// once at process start, before any consumer reads the state.
func (s *State) Hydrate(ctx context.Context) error {
	pair, err := s.store.Load(ctx)
	if err != nil {
		return err
	}

	s.mu.Lock()
	s.tokens = pair
	s.authenticated = pair != nil && pair.Access != ""
	s.mu.Unlock()

	s.notify()
	return nil
}

// Subscribe registers fn to run after every session change. Callbacks run
// outside the state lock, on the mutating goroutine.
func (s *State) Subscribe(fn func(Snapshot)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.subs = append(s.subs, fn)
}

func (s *State) snapshotLocked() Snapshot {
	snap := Snapshot{Authenticated: s.authenticated, User: s.user}
	if s.tokens != nil {
		t := *s.tokens
		snap.Tokens = &t
	}
	return snap
}

func (s *State) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

// AccessToken returns the current access token, or "" when there is none.
func (s *State) AccessToken() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.tokens == nil {
		return ""
	}
	return s.tokens.Access
}

func (s *State) notify() {
	s.mu.Lock()
	snap := s.snapshotLocked()
	subs := make([]func(Snapshot), len(s.subs))
	copy(subs, s.subs)
	s.mu.Unlock()

	for _, fn := range subs {
		fn(snap)
	}
}

// SetSession stores the pair durably and marks the session authenticated.
// The store write happens first: if it fails, the in-memory session is left
// untouched so the two views never diverge.
func (s *State) SetSession(ctx context.Context, pair models.TokenPair) error {
	if err := s.store.Save(ctx, pair); err != nil {
		return err
	}

	s.mu.Lock()
	p := pair
	s.tokens = &p
	s.authenticated = pair.Access != ""
	s.mu.Unlock()

	s.notify()
	return nil
}

// UpdateAccess replaces only the access token, durably and in memory. The
// refresh token is reused, never rotated, so it is not rewritten.
func (s *State) UpdateAccess(ctx context.Context, access string) error {
	if err := s.store.SaveAccess(ctx, access); err != nil {
		return err
	}

	s.mu.Lock()
	if s.tokens == nil {
		s.tokens = &models.TokenPair{}
	}
	s.tokens.Access = access
	s.authenticated = access != ""
	s.mu.Unlock()

	s.notify()
	return nil
}

// SetUser replaces the profile without touching tokens.
func (s *State) SetUser(user *models.UserProfile) {
	s.mu.Lock()
	s.user = user
	s.mu.Unlock()

	s.notify()
}

// ClearSession wipes tokens, user and the durable store. The in-memory
// session is cleared even if the store write fails, so a consumer can never
// keep acting on credentials the owner asked to drop.
func (s *State) ClearSession(ctx context.Context) error {
	err := s.store.Clear(ctx)

	s.mu.Lock()
	s.tokens = nil
	s.user = nil
	s.authenticated = false
	s.mu.Unlock()

	s.notify()
	return err
}
