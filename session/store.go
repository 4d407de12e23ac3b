// Package session holds the client's single source of truth: authentication
// state, the active space, and the space-scoped collections (templates,
// contacts, tags), kept consistent with the backend by refetching after every
// mutation. The store is the only component permitted to call session- or
// space-scoped mutation endpoints.
package session

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/jober-app/go-alimtalk-client/api"
	"github.com/jober-app/go-alimtalk-client/snapshot"
	"github.com/rs/zerolog"
)

// ErrNoActiveSpace is returned by space-scoped mutations when no space is
// selected.
var ErrNoActiveSpace = errors.New("no active space")

// Store is a constructible session store. All state access goes through the
// mutex; the store is the single writer of its own state and reads are
// synchronous snapshots. Network calls never run under the lock, so the
// suspension points are exactly the HTTP request boundaries.
type Store struct {
	lock      sync.Mutex
	state     State
	backend   Backend
	snapshots snapshot.Repo
	logger    zerolog.Logger
}

// StoreOption modifies a Store.
type StoreOption func(*Store)

// WithLogger sets the store's logger.
func WithLogger(logger zerolog.Logger) StoreOption {
	return func(s *Store) {
		s.logger = logger
	}
}

// New creates a Store over backend, persisting the partial state slice
// through snapshots.
func New(backend Backend, snapshots snapshot.Repo, options ...StoreOption) (*Store, error) {
	if backend == nil {
		return nil, fmt.Errorf("[session.New] backend is required")
	}
	if snapshots == nil {
		return nil, fmt.Errorf("[session.New] snapshot repo is required")
	}

	s := &Store{
		state:     initialState(),
		backend:   backend,
		snapshots: snapshots,
		logger:    zerolog.Nop(),
	}
	for _, opt := range options {
		opt(s)
	}
	return s, nil
}

// State returns a snapshot copy of the current state.
func (s *Store) State() State {
	s.lock.Lock()
	defer s.lock.Unlock()
	return s.state.snapshotCopy()
}

// Login marks the session authenticated. It does not call the network: the
// caller has already authenticated through the login endpoint.
func (s *Store) Login(user User) {
	s.lock.Lock()
	defer s.lock.Unlock()

	s.state.LoggedIn = true
	s.state.User = &user
	s.persistLocked()
}

// Logout terminates the server-side session and resets the state to its
// logged-out shape. A failing remote call is logged, never surfaced: the
// state is guaranteed logged-out afterward either way. The persisted snapshot
// is overwritten with the empty shape.
func (s *Store) Logout(ctx context.Context) {
	if err := s.backend.Logout(ctx); err != nil && !errors.Is(err, api.ErrSessionExpired) {
		s.logger.Error().Err(err).Msg("logout request failed, clearing local session anyway")
	}

	s.lock.Lock()
	defer s.lock.Unlock()

	s.state = initialState()
	if err := s.snapshots.Save(snapshot.Snapshot{}); err != nil {
		s.logger.Error().Err(err).Msg("failed to overwrite session snapshot")
	}
}

// DeleteAccount removes the account server-side, then performs a full logout.
func (s *Store) DeleteAccount(ctx context.Context) error {
	if err := s.backend.DeleteAccount(ctx); err != nil {
		if errors.Is(err, api.ErrSessionExpired) {
			return err
		}
		return fmt.Errorf("delete account: %w", err)
	}
	s.Logout(ctx)
	return nil
}

// Restore loads the persisted partial state (logged-in flag, user, current
// space). Derived collections are not persisted and must be refetched.
func (s *Store) Restore() error {
	snap, found, err := s.snapshots.Load()
	if err != nil {
		return fmt.Errorf("restore session snapshot: %w", err)
	}
	if !found || !snap.LoggedIn {
		return nil
	}

	s.lock.Lock()
	defer s.lock.Unlock()

	s.state.LoggedIn = true
	s.state.User = &User{UserID: snap.UserID, Username: snap.Username}
	if snap.CurrentSpace != nil {
		sp := *snap.CurrentSpace
		s.state.CurrentSpace = &sp
	}
	return nil
}

// ShowSnackbar replaces any pending notification with a new one.
func (s *Store) ShowSnackbar(message string, severity Severity) {
	s.lock.Lock()
	defer s.lock.Unlock()

	s.state.Snackbar = &Notification{
		Open:     true,
		Message:  message,
		Severity: severity,
	}
}

// HideSnackbar closes the pending notification, keeping its message so the
// view can animate it out.
func (s *Store) HideSnackbar() {
	s.lock.Lock()
	defer s.lock.Unlock()

	if s.state.Snackbar != nil {
		s.state.Snackbar.Open = false
	}
}

// persistLocked writes the persisted slice of state. Callers hold the lock.
func (s *Store) persistLocked() {
	snap := snapshot.Snapshot{
		LoggedIn: s.state.LoggedIn,
	}
	if s.state.User != nil {
		snap.UserID = s.state.User.UserID
		snap.Username = s.state.User.Username
	}
	if s.state.CurrentSpace != nil {
		sp := *s.state.CurrentSpace
		snap.CurrentSpace = &sp
	}
	if err := s.snapshots.Save(snap); err != nil {
		s.logger.Error().Err(err).Msg("failed to persist session snapshot")
	}
}

// notifyErr pushes an error snackbar and wraps err for the caller so its own
// failure branch still runs. Session expiry is already fully handled by the
// guard and is returned quietly.
func (s *Store) notifyErr(message string, err error) error {
	if errors.Is(err, api.ErrSessionExpired) {
		return err
	}
	s.ShowSnackbar(message, SeverityError)
	return fmt.Errorf("%s: %w", message, err)
}
