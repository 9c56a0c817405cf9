// Package session owns the client's belief about the current authentication:
// the bearer token plus the user profile. The store is the single source of
// truth for the token; the HTTP adapter reads it per request through the
// api.TokenSource interface and never keeps its own copy.
package session

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/dmitrijs2005/posterm/internal/api"
	"github.com/dmitrijs2005/posterm/internal/dbx"
	"github.com/dmitrijs2005/posterm/internal/logging"
	"github.com/dmitrijs2005/posterm/internal/models"
	"github.com/dmitrijs2005/posterm/internal/storage/sessiondata"
)

// Navigator receives redirect decisions. The router implements it.
type Navigator interface {
	Push(path string)
}

// AuthError carries the human-readable message recorded on the store:
// the server-supplied one when present, a per-action default otherwise.
type AuthError struct {
	Message string
	Err     error
}

func (e *AuthError) Error() string { return e.Message }
func (e *AuthError) Unwrap() error { return e.Err }

// Store holds the session state. Safe for concurrent use.
type Store struct {
	mu     sync.RWMutex
	user   *models.User
	token  string
	errMsg string

	client api.Client
	db     *sql.DB
	nav    Navigator
	log    logging.Logger
}

// New builds a Store seeded from durable storage. Malformed or unreadable
// stored data never fails construction: the store starts unauthenticated.
//
// The API client and the navigator are attached afterwards: the client's
// transport needs the store as its token source, and the router's guard
// needs the store for IsAuthenticated.
func New(ctx context.Context, db *sql.DB, log logging.Logger) *Store {
	s := &Store{db: db, log: log}
	s.restore(ctx)
	return s
}

// SetClient attaches the backend client used by Login and Register.
func (s *Store) SetClient(c api.Client) { s.client = c }

// SetNavigator attaches the redirect target for login/logout transitions.
func (s *Store) SetNavigator(nav Navigator) { s.nav = nav }

func (s *Store) push(path string) {
	if s.nav != nil {
		s.nav.Push(path)
	}
}

func (s *Store) repo() sessiondata.Repository {
	return sessiondata.NewSQLiteRepository(s.db)
}

// restore seeds session state from the two durable keys. Any read or decode
// problem leaves the store unauthenticated.
func (s *Store) restore(ctx context.Context) {
	repo := s.repo()

	tok, err := repo.Get(ctx, sessiondata.KeyToken)
	if err != nil || len(tok) == 0 {
		return
	}

	rawUser, err := repo.Get(ctx, sessiondata.KeyUser)
	if err != nil {
		return
	}

	var user models.User
	if err := json.Unmarshal(rawUser, &user); err != nil {
		s.log.Warn(ctx, "stored session is malformed, discarding", "error", err)
		return
	}

	s.mu.Lock()
	s.token = string(tok)
	s.user = &user
	s.mu.Unlock()
}

// Login authenticates against the backend. On success the session is kept in
// memory, persisted to durable storage and the navigator is sent to the
// application root. On failure the message is recorded and returned as
// *AuthError.
func (s *Store) Login(ctx context.Context, username, password string) error {
	res, err := s.client.Login(ctx, username, password)
	if err != nil {
		return s.authFailure("login failed", err)
	}

	s.mu.Lock()
	s.token = res.Token
	s.user = &res.User
	s.errMsg = ""
	s.mu.Unlock()

	if err := s.persist(ctx, res.Token, &res.User); err != nil {
		// The session is still valid for this process; only restoration
		// after restart is affected.
		s.log.Warn(ctx, "failed to persist session", "error", err)
	}

	s.push("/")
	return nil
}

// Register creates an account. Success does not authenticate: the caller has
// to log in (or navigate to the login surface) separately.
func (s *Store) Register(ctx context.Context, username, email, password string) (bool, error) {
	if err := s.client.Register(ctx, username, email, password); err != nil {
		return false, s.authFailure("registration failed", err)
	}
	return true, nil
}

// Logout clears in-memory and durable session state and redirects to /login.
// Safe to call when already logged out.
func (s *Store) Logout(ctx context.Context) {
	s.mu.Lock()
	s.token = ""
	s.user = nil
	s.errMsg = ""
	s.mu.Unlock()

	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := sessiondata.NewSQLiteRepository(tx)
		if err := repo.Delete(ctx, sessiondata.KeyToken); err != nil {
			return err
		}
		return repo.Delete(ctx, sessiondata.KeyUser)
	})
	if err != nil {
		s.log.Warn(ctx, "failed to clear stored session", "error", err)
	}

	s.push("/login")
}

func (s *Store) persist(ctx context.Context, token string, user *models.User) error {
	rawUser, err := json.Marshal(user)
	if err != nil {
		return err
	}

	return dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := sessiondata.NewSQLiteRepository(tx)
		if err := repo.Set(ctx, sessiondata.KeyToken, []byte(token)); err != nil {
			return err
		}
		return repo.Set(ctx, sessiondata.KeyUser, rawUser)
	})
}

func (s *Store) authFailure(defaultMsg string, err error) error {
	msg := defaultMsg
	var apiErr *api.APIError
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		msg = apiErr.Message
	}

	s.mu.Lock()
	s.errMsg = msg
	s.mu.Unlock()

	return &AuthError{Message: msg, Err: err}
}

// Token implements api.TokenSource.
func (s *Store) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

// IsAuthenticated reports whether a token is present.
func (s *Store) IsAuthenticated() bool {
	return s.Token() != ""
}

// User returns the current profile, or nil when logged out.
func (s *Store) User() *models.User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.user == nil {
		return nil
	}
	u := *s.user
	return &u
}

// Err returns the last recorded auth error message, "" when none.
func (s *Store) Err() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.errMsg
}

// ExpiresAt decodes the token's registered JWT claims without verifying the
// signature and returns the expiry. The token is otherwise opaque to the
// client; a malformed token or one without an exp claim yields a zero time.
func (s *Store) ExpiresAt() time.Time {
	tok := s.Token()
	if tok == "" {
		return time.Time{}
	}

	claims := &jwt.RegisteredClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(tok, claims); err != nil {
		return time.Time{}
	}
	if claims.ExpiresAt == nil {
		return time.Time{}
	}
	return claims.ExpiresAt.Time
}
