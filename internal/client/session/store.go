// Package session holds the in-memory session state of the WatchB client:
// the current access token, the authenticated flag, and the (lazily hydrated)
// user object. The store is observable; UI code subscribes and re-renders on
// every change.
package session

import (
	"sync"

	"github.com/dmitrijs2005/watchb/internal/client/models"
	"github.com/google/uuid"
)

// Credentials is an immutable snapshot of the session state.
//
// Invariant: IsAuthenticated implies AccessToken is non-empty. The reverse
// does not hold: a token may be committed before the user profile is fetched
// and the session marked as logged in.
type Credentials struct {
	AccessToken     string
	IsAuthenticated bool
	User            models.User
}

// UserPatch is a partial update of the user object. Nil fields keep their
// prior values; a pointer to the empty string clears the field (e.g. after
// an avatar delete).
type UserPatch struct {
	ID         *int64
	Username   *string
	Email      *string
	Profile    *string
	Visibility *string
	Avatar     *string
	Background *string
}

// Listener receives a state snapshot after every store action.
type Listener func(Credentials)

// Store is a process-wide observable holder of Credentials.
//
// Actions never perform I/O; they mutate state under a lock and then notify
// subscribers outside of it. Safe for concurrent use.
type Store struct {
	mu        sync.Mutex
	state     Credentials
	listeners map[uuid.UUID]Listener
}

func NewStore() *Store {
	return &Store{listeners: make(map[uuid.UUID]Listener)}
}

// Snapshot returns a copy of the current state.
func (s *Store) Snapshot() Credentials {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Subscribe registers fn to be called after every action. The returned
// function removes the subscription.
func (s *Store) Subscribe(fn Listener) (unsubscribe func()) {
	s.mu.Lock()
	id := uuid.New()
	s.listeners[id] = fn
	s.mu.Unlock()

	return func() {
		s.mu.Lock()
		delete(s.listeners, id)
		s.mu.Unlock()
	}
}

// SetToken replaces the access token. It does not touch IsAuthenticated.
func (s *Store) SetToken(token string) {
	s.mu.Lock()
	s.state.AccessToken = token
	s.notifyLocked()
}

// MarkLoggedIn flips the session into the authenticated state. Callers are
// expected to have set a token first.
func (s *Store) MarkLoggedIn() {
	s.mu.Lock()
	s.state.IsAuthenticated = true
	s.notifyLocked()
}

// SetUser shallow-merges the given patch into the user object. Fields absent
// from the patch keep their prior values.
func (s *Store) SetUser(patch UserPatch) {
	s.mu.Lock()
	u := &s.state.User
	if patch.ID != nil {
		u.ID = *patch.ID
	}
	if patch.Username != nil {
		u.Username = *patch.Username
	}
	if patch.Email != nil {
		u.Email = *patch.Email
	}
	if patch.Profile != nil {
		u.Profile = *patch.Profile
	}
	if patch.Visibility != nil {
		u.Visibility = *patch.Visibility
	}
	if patch.Avatar != nil {
		u.Avatar = *patch.Avatar
	}
	if patch.Background != nil {
		u.Background = *patch.Background
	}
	s.notifyLocked()
}

// SetUserFull replaces the whole user object. Used for initial hydration
// after a login or a silent refresh.
func (s *Store) SetUserFull(u models.User) {
	s.mu.Lock()
	s.state.User = u
	s.notifyLocked()
}

// MarkLoggedOut resets the store to the unauthenticated zero state.
func (s *Store) MarkLoggedOut() {
	s.mu.Lock()
	s.state = Credentials{}
	s.notifyLocked()
}

// notifyLocked snapshots state and listeners, releases the lock, and invokes
// the listeners. Must be called with s.mu held; the lock is released here so
// listeners can call back into the store.
func (s *Store) notifyLocked() {
	state := s.state
	listeners := make([]Listener, 0, len(s.listeners))
	for _, fn := range s.listeners {
		listeners = append(listeners, fn)
	}
	s.mu.Unlock()

	for _, fn := range listeners {
		fn(state)
	}
}
