// Package session owns the client's authentication state: the current user,
// the persisted token pair, and the operations that mutate them. No other
// component writes session state directly.
package session

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/forkahq/forka-cli/internal/client/api"
	"github.com/forkahq/forka-cli/internal/client/models"
	"github.com/forkahq/forka-cli/internal/client/repositories/sessiondata"
	"github.com/forkahq/forka-cli/internal/dbx"
	"github.com/forkahq/forka-cli/internal/logging"
)

// ErrNotAuthenticated is returned by operations that need a logged-in user.
var ErrNotAuthenticated = errors.New("not authenticated")

// API is the slice of the ForKa client the store needs.
type API interface {
	Login(ctx context.Context, username, password string) (*api.Credentials, error)
	Me(ctx context.Context) (*models.User, error)
}

// Store holds the session. Invariant: the store is authenticated iff both an
// access token and a user record are persisted; Initialize repairs any
// half-written state it finds rather than trusting it.
type Store struct {
	api    API
	db     *sql.DB
	logger logging.Logger

	mu            sync.RWMutex
	user          *models.User
	authenticated bool
	loading       bool
}

func NewStore(apiClient API, db *sql.DB, logger logging.Logger) *Store {
	return &Store{api: apiClient, db: db, logger: logger, loading: true}
}

func (s *Store) repo() sessiondata.Repository {
	return sessiondata.NewSQLiteRepository(s.db)
}

// Initialize restores the session from local storage. It always leaves the
// loading flag false, whatever else happens, and is safe to call again.
func (s *Store) Initialize(ctx context.Context) error {
	defer func() {
		s.mu.Lock()
		s.loading = false
		s.mu.Unlock()
	}()

	repo := s.repo()

	access, err := repo.Get(ctx, sessiondata.KeyAccessToken)
	if err != nil {
		return fmt.Errorf("reading access token: %w", err)
	}
	rawUser, err := repo.Get(ctx, sessiondata.KeyUser)
	if err != nil {
		return fmt.Errorf("reading user: %w", err)
	}

	if len(access) == 0 || len(rawUser) == 0 {
		// Half a session is no session.
		if len(access) != 0 || len(rawUser) != 0 {
			s.logger.Warn(ctx, "purging partial session state")
			_ = repo.Clear(ctx)
		}
		s.reset()
		return nil
	}

	var user models.User
	if err := json.Unmarshal(rawUser, &user); err != nil {
		s.logger.Warn(ctx, "purging unreadable session state", "error", err)
		_ = repo.Clear(ctx)
		s.reset()
		return nil
	}

	s.mu.Lock()
	s.user = &user
	s.authenticated = true
	s.mu.Unlock()

	s.logger.Info(ctx, "session restored", "username", user.Username)
	return nil
}

// Login authenticates and establishes the session. On failure nothing is
// mutated and the error (an *api.Error for business failures) is returned
// for inline display.
func (s *Store) Login(ctx context.Context, username, password string) error {
	creds, err := s.api.Login(ctx, username, password)
	if err != nil {
		return err
	}
	return s.SetSession(ctx, &creds.User, creds.Tokens)
}

// SetSession establishes a session from out-of-band credentials, e.g. after
// email verification. Tokens and user are persisted as one group.
func (s *Store) SetSession(ctx context.Context, user *models.User, tokens models.TokenPair) error {
	if err := s.persist(ctx, user, &tokens); err != nil {
		return fmt.Errorf("persisting session: %w", err)
	}

	s.mu.Lock()
	u := *user
	s.user = &u
	s.authenticated = true
	s.mu.Unlock()

	s.logger.Info(ctx, "session established", "username", user.Username)
	return nil
}

// Logout clears persisted and in-memory session state unconditionally. It
// never fails; storage errors are logged and the in-memory state is reset
// regardless.
func (s *Store) Logout(ctx context.Context) {
	if err := s.repo().Clear(ctx); err != nil {
		s.logger.Error(ctx, "clearing persisted session", "error", err)
	}
	s.reset()
	s.logger.Info(ctx, "logged out")
}

// UpdateUser shallow-merges the patch into the current user and re-persists
// the record. The token pair is untouched.
func (s *Store) UpdateUser(ctx context.Context, patch models.UserPatch) error {
	s.mu.Lock()
	if s.user == nil {
		s.mu.Unlock()
		return ErrNotAuthenticated
	}
	updated := *s.user
	patch.Apply(&updated)
	s.mu.Unlock()

	if err := s.persist(ctx, &updated, nil); err != nil {
		return fmt.Errorf("persisting user: %w", err)
	}

	s.mu.Lock()
	s.user = &updated
	s.mu.Unlock()
	return nil
}

// RefreshUser re-fetches the canonical user record and replaces the cached
// copy. On failure the cached copy is left untouched and the error returned.
func (s *Store) RefreshUser(ctx context.Context) error {
	user, err := s.api.Me(ctx)
	if err != nil {
		return err
	}

	if err := s.persist(ctx, user, nil); err != nil {
		return fmt.Errorf("persisting user: %w", err)
	}

	s.mu.Lock()
	s.user = user
	s.mu.Unlock()
	return nil
}

// User returns a copy of the current user, or nil when logged out.
func (s *Store) User() *models.User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.user == nil {
		return nil
	}
	u := *s.user
	return &u
}

func (s *Store) IsAuthenticated() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.authenticated
}

func (s *Store) IsLoading() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loading
}

// ForceLogout is wired to the transport's session-expiry callback: storage
// has already been purged, so only in-memory state needs resetting.
func (s *Store) ForceLogout() {
	s.reset()
}

func (s *Store) reset() {
	s.mu.Lock()
	s.user = nil
	s.authenticated = false
	s.mu.Unlock()
}

// persist writes the user record, and the token pair when given, in a single
// transaction so the storage group can never be observed half-written.
func (s *Store) persist(ctx context.Context, user *models.User, tokens *models.TokenPair) error {
	rawUser, err := json.Marshal(user)
	if err != nil {
		return err
	}

	return dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := sessiondata.NewSQLiteRepository(tx)

		if tokens != nil {
			if err := repo.Set(ctx, sessiondata.KeyAccessToken, []byte(tokens.Access)); err != nil {
				return err
			}
			if err := repo.Set(ctx, sessiondata.KeyRefreshToken, []byte(tokens.Refresh)); err != nil {
				return err
			}
		}
		return repo.Set(ctx, sessiondata.KeyUser, rawUser)
	})
}
