// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package session

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sync"

	"github.com/jeranaias/studysync-tui/internal/model"
	"github.com/jeranaias/studysync-tui/internal/security"
	"github.com/jeranaias/studysync-tui/internal/storage"
)

// Durable storage keys.
const (
	KeyUsername  = "username"
	KeyAuthToken = "authToken"
)

// Notification text emitted by Login and Logout.
const (
	MsgLoginSuccess   = "Login successful!"
	MsgLoginFailed    = "Login failed. Please check your username or password."
	MsgLogoutNotSaved = "Logged out, but the saved session could not be removed."
)

// LoginRoute is where Logout sends the user.
const LoginRoute = "/login"

// ErrNoProvider is the panic value for a Store used without NewStore.
var ErrNoProvider = errors.New("session: store used outside its provider")

// Authenticator exchanges credentials for a bearer token.
type Authenticator interface {
	Login(ctx context.Context, creds model.LoginCredentials) (string, error)
}

// Notifier shows global notifications.
type Notifier interface {
	Success(msg string)
	Error(msg string)
}

// Navigator moves the UI to a route.
type Navigator func(path string)

// Options configures a Store.
type Options struct {
	Storage storage.Store
	// Sealer encrypts the token at rest. Nil stores it as plain text.
	Sealer   *security.Sealer
	Auth     Authenticator
	Notifier Notifier
	Navigate Navigator
	Logger   *slog.Logger
}

// =============================================================================
// STORE
// =============================================================================

// Store is the process-wide session. It is safe for concurrent use.
type Store struct {
	mu       sync.RWMutex
	identity model.Identity

	storage storage.Store
	sealer  *security.Sealer
	auth    Authenticator
	logger  *slog.Logger

	// hooks are swapped by the UI after construction
	hookMu   sync.RWMutex
	notifier Notifier
	navigate Navigator

	subMu   sync.Mutex
	subs    map[int]func(model.Identity)
	nextSub int
}

// NewStore creates a Store seeded from durable storage.
func NewStore(opts Options) (*Store, error) {
	if opts.Storage == nil {
		return nil, errors.New("session: storage is required")
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	s := &Store{
		storage:  opts.Storage,
		sealer:   opts.Sealer,
		auth:     opts.Auth,
		notifier: opts.Notifier,
		navigate: opts.Navigate,
		logger:   logger.With("component", "session"),
		subs:     make(map[int]func(model.Identity)),
	}

	id, err := s.readStorage()
	if err != nil {
		return nil, err
	}
	s.identity = id
	return s, nil
}

func (s *Store) mustProvide() {
	if s == nil {
		panic(ErrNoProvider)
	}
}

// SetNotifier replaces the notification sink.
func (s *Store) SetNotifier(n Notifier) {
	s.mustProvide()
	s.hookMu.Lock()
	s.notifier = n
	s.hookMu.Unlock()
}

// SetNavigator replaces the navigation hook.
func (s *Store) SetNavigator(nav Navigator) {
	s.mustProvide()
	s.hookMu.Lock()
	s.navigate = nav
	s.hookMu.Unlock()
}

// =============================================================================
// ACCESSORS
// =============================================================================

// Username returns the logged-in username.
func (s *Store) Username() (string, bool) {
	s.mustProvide()
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.identity.Username, s.identity.Username != ""
}

// Token returns the bearer token, or "" when logged out.
func (s *Store) Token() string {
	s.mustProvide()
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.identity.Token
}

// Authenticated reports whether a user is logged in.
func (s *Store) Authenticated() bool {
	s.mustProvide()
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.identity.Authenticated()
}

// Snapshot returns a copy of the current identity.
func (s *Store) Snapshot() model.Identity {
	s.mustProvide()
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.identity
}

// Subscribe registers fn to be called after every identity change.
// fn runs on the goroutine that made the change. The returned function
// removes the subscription.
func (s *Store) Subscribe(fn func(model.Identity)) (unsubscribe func()) {
	s.mustProvide()
	s.subMu.Lock()
	id := s.nextSub
	s.nextSub++
	s.subs[id] = fn
	s.subMu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			s.subMu.Lock()
			delete(s.subs, id)
			s.subMu.Unlock()
		})
	}
}

// =============================================================================
// MUTATIONS
// =============================================================================

// Login authenticates with the backend. On success the token and the
// submitted username are persisted and subscribers are notified. On any
// failure the previous state is kept. Login never returns an error; the
// outcome is reported through the Notifier and the boolean.
func (s *Store) Login(ctx context.Context, creds model.LoginCredentials) bool {
	s.mustProvide()
	if s.auth == nil {
		s.logger.Error("login attempted without an authenticator")
		s.notifyError(MsgLoginFailed)
		return false
	}

	token, err := s.auth.Login(ctx, creds)
	if err != nil {
		s.logger.Warn("login failed", "username", creds.Username, "error", err)
		s.notifyError(MsgLoginFailed)
		return false
	}

	next := model.Identity{Username: creds.Username, Token: token}
	if err := s.writeStorage(next); err != nil {
		s.logger.Error("persist session", "error", err)
		s.notifyError(MsgLoginFailed)
		return false
	}

	s.mu.Lock()
	s.identity = next
	s.mu.Unlock()

	s.logger.Info("logged in", "username", creds.Username)
	s.notifySuccess(MsgLoginSuccess)
	s.publish(next)
	return true
}

// Logout clears the identity in memory and in storage, then navigates to
// the login route. It makes no remote call.
func (s *Store) Logout() {
	s.mustProvide()
	clearErr := s.storage.Delete(KeyUsername, KeyAuthToken)
	if clearErr != nil {
		s.logger.Error("clear session", "error", clearErr)
	}

	s.mu.Lock()
	was := s.identity.Username
	s.identity = model.Identity{}
	s.mu.Unlock()

	s.logger.Info("logged out", "username", was)
	if clearErr != nil {
		s.notifyError(MsgLogoutNotSaved)
	}
	s.publish(model.Identity{})

	s.hookMu.RLock()
	nav := s.navigate
	s.hookMu.RUnlock()
	if nav != nil {
		nav(LoginRoute)
	}
}

// Reload re-reads durable storage and reports whether the identity changed.
// Subscribers are notified on change.
func (s *Store) Reload() (bool, error) {
	s.mustProvide()
	next, err := s.readStorage()
	if err != nil {
		return false, err
	}

	s.mu.Lock()
	changed := next != s.identity
	s.identity = next
	s.mu.Unlock()

	if changed {
		s.logger.Info("session reloaded", "username", next.Username)
		s.publish(next)
	}
	return changed, nil
}

// =============================================================================
// INTERNALS
// =============================================================================

// readStorage loads the persisted identity. A token that cannot be
// unsealed is treated as logged out.
func (s *Store) readStorage() (model.Identity, error) {
	username, err := s.storage.Get(KeyUsername)
	if err != nil && !errors.Is(err, storage.ErrNotFound) {
		return model.Identity{}, fmt.Errorf("session: read username: %w", err)
	}
	token, err := s.storage.Get(KeyAuthToken)
	if err != nil && !errors.Is(err, storage.ErrNotFound) {
		return model.Identity{}, fmt.Errorf("session: read token: %w", err)
	}

	if security.IsSealed(token) {
		if s.sealer == nil {
			s.logger.Warn("stored token is sealed but no key is available")
			return model.Identity{}, nil
		}
		token, err = s.sealer.Open(token)
		if err != nil {
			s.logger.Warn("stored token could not be unsealed", "error", err)
			return model.Identity{}, nil
		}
	}

	if username == "" {
		return model.Identity{}, nil
	}
	return model.Identity{Username: username, Token: token}, nil
}

// writeStorage persists both keys in one write so a failure never pairs
// one user's name with another user's token.
func (s *Store) writeStorage(id model.Identity) error {
	token := id.Token
	if s.sealer != nil {
		sealed, err := s.sealer.Seal(token)
		if err != nil {
			return fmt.Errorf("seal token: %w", err)
		}
		token = sealed
	}
	return s.storage.SetMany(map[string]string{
		KeyUsername:  id.Username,
		KeyAuthToken: token,
	})
}

func (s *Store) publish(id model.Identity) {
	s.subMu.Lock()
	fns := make([]func(model.Identity), 0, len(s.subs))
	for _, fn := range s.subs {
		fns = append(fns, fn)
	}
	s.subMu.Unlock()

	for _, fn := range fns {
		fn(id)
	}
}

func (s *Store) notifySuccess(msg string) {
	s.hookMu.RLock()
	n := s.notifier
	s.hookMu.RUnlock()
	if n != nil {
		n.Success(msg)
	}
}

func (s *Store) notifyError(msg string) {
	s.hookMu.RLock()
	n := s.notifier
	s.hookMu.RUnlock()
	if n != nil {
		n.Error(msg)
	}
}
