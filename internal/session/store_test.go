package session

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/posterm/internal/api"
	"github.com/dmitrijs2005/posterm/internal/logging"
	"github.com/dmitrijs2005/posterm/internal/models"
	"github.com/dmitrijs2005/posterm/internal/storage/sessiondata"

	_ "modernc.org/sqlite"
)

// ---- helpers ----

func setupDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = db.Close() })

	_, err = db.Exec(`
CREATE TABLE session (
  key   TEXT PRIMARY KEY,
  value BLOB NOT NULL
);`)
	require.NoError(t, err)
	return db
}

func getKey(t *testing.T, db *sql.DB, k string) []byte {
	t.Helper()
	var v []byte
	err := db.QueryRow(`SELECT value FROM session WHERE key=?`, k).Scan(&v)
	if errors.Is(err, sql.ErrNoRows) {
		return nil
	}
	require.NoError(t, err)
	return v
}

func discardLogger() logging.Logger {
	return logging.NewSlogLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

type fakeNav struct {
	pushes []string
}

func (n *fakeNav) Push(path string) { n.pushes = append(n.pushes, path) }

// fakeClient implements api.Client; only the auth calls matter here.
type fakeClient struct {
	api.Client // panic on anything not overridden

	loginRes *api.LoginResult
	loginErr error

	registerErr error

	lastLoginUser string
	lastLoginPass string
}

func (f *fakeClient) Login(ctx context.Context, username, password string) (*api.LoginResult, error) {
	f.lastLoginUser = username
	f.lastLoginPass = password
	return f.loginRes, f.loginErr
}

func (f *fakeClient) Register(ctx context.Context, username, email, password string) error {
	return f.registerErr
}

func newTestStore(t *testing.T, db *sql.DB, c api.Client) (*Store, *fakeNav) {
	t.Helper()
	nav := &fakeNav{}
	s := New(context.Background(), db, discardLogger())
	s.SetNavigator(nav)
	s.SetClient(c)
	return s, nav
}

// ---- tests ----

func TestLogin_Success(t *testing.T) {
	db := setupDB(t)
	fc := &fakeClient{loginRes: &api.LoginResult{
		Token: "tok-1",
		User:  models.User{ID: 1, Username: "alice"},
	}}
	s, nav := newTestStore(t, db, fc)

	require.NoError(t, s.Login(context.Background(), "alice", "pw"))

	assert.True(t, s.IsAuthenticated())
	assert.Equal(t, "tok-1", s.Token())
	assert.Equal(t, "alice", s.User().Username)
	assert.Empty(t, s.Err())

	assert.Equal(t, []byte("tok-1"), getKey(t, db, sessiondata.KeyToken))
	var stored models.User
	require.NoError(t, json.Unmarshal(getKey(t, db, sessiondata.KeyUser), &stored))
	assert.Equal(t, "alice", stored.Username)

	assert.Equal(t, []string{"/"}, nav.pushes)
}

func TestLogin_FailureUsesServerMessage(t *testing.T) {
	db := setupDB(t)
	fc := &fakeClient{loginErr: &api.APIError{Status: 401, Message: "invalid credentials"}}
	s, nav := newTestStore(t, db, fc)

	err := s.Login(context.Background(), "alice", "bad")
	require.Error(t, err)

	var authErr *AuthError
	require.ErrorAs(t, err, &authErr)
	assert.Equal(t, "invalid credentials", authErr.Message)
	assert.ErrorIs(t, err, api.ErrUnauthorized)

	assert.False(t, s.IsAuthenticated())
	assert.Equal(t, "invalid credentials", s.Err())
	assert.Empty(t, nav.pushes)
	assert.Nil(t, getKey(t, db, sessiondata.KeyToken))
}

func TestLogin_FailureFallsBackToDefaultMessage(t *testing.T) {
	db := setupDB(t)
	fc := &fakeClient{loginErr: api.ErrUnavailable}
	s, _ := newTestStore(t, db, fc)

	err := s.Login(context.Background(), "alice", "pw")
	require.Error(t, err)

	var authErr *AuthError
	require.ErrorAs(t, err, &authErr)
	assert.Equal(t, "login failed", authErr.Message)
}

func TestRegister_SuccessDoesNotAuthenticate(t *testing.T) {
	db := setupDB(t)
	fc := &fakeClient{}
	s, nav := newTestStore(t, db, fc)

	ok, err := s.Register(context.Background(), "bob", "b@c.d", "pw")
	require.NoError(t, err)
	assert.True(t, ok)

	assert.False(t, s.IsAuthenticated())
	assert.Empty(t, nav.pushes)
	assert.Nil(t, getKey(t, db, sessiondata.KeyToken))
}

func TestRegister_Failure(t *testing.T) {
	db := setupDB(t)
	fc := &fakeClient{registerErr: &api.APIError{Status: 409, Message: "username taken"}}
	s, _ := newTestStore(t, db, fc)

	ok, err := s.Register(context.Background(), "bob", "b@c.d", "pw")
	assert.False(t, ok)

	var authErr *AuthError
	require.ErrorAs(t, err, &authErr)
	assert.Equal(t, "username taken", authErr.Message)
	assert.Equal(t, "username taken", s.Err())
}

func TestLogout_ClearsStateAndIsIdempotent(t *testing.T) {
	db := setupDB(t)
	fc := &fakeClient{loginRes: &api.LoginResult{Token: "tok", User: models.User{Username: "alice"}}}
	s, nav := newTestStore(t, db, fc)

	require.NoError(t, s.Login(context.Background(), "alice", "pw"))
	require.True(t, s.IsAuthenticated())

	s.Logout(context.Background())

	assert.False(t, s.IsAuthenticated())
	assert.Nil(t, s.User())
	assert.Nil(t, getKey(t, db, sessiondata.KeyToken))
	assert.Nil(t, getKey(t, db, sessiondata.KeyUser))
	assert.Equal(t, "/login", nav.pushes[len(nav.pushes)-1])

	// second logout: same observable state, no panic
	s.Logout(context.Background())
	assert.False(t, s.IsAuthenticated())
	assert.Nil(t, getKey(t, db, sessiondata.KeyToken))
}

func TestRestore_SeedsFromStorage(t *testing.T) {
	db := setupDB(t)
	rawUser, _ := json.Marshal(models.User{ID: 2, Username: "carol"})
	_, err := db.Exec(`INSERT INTO session(key,value) VALUES('token','tok-xyz'), ('user', ?)`, rawUser)
	require.NoError(t, err)

	s, _ := newTestStore(t, db, &fakeClient{})

	assert.True(t, s.IsAuthenticated())
	assert.Equal(t, "tok-xyz", s.Token())
	assert.Equal(t, "carol", s.User().Username)
}

func TestRestore_MalformedUserFailsOpen(t *testing.T) {
	db := setupDB(t)
	_, err := db.Exec(`INSERT INTO session(key,value) VALUES('token','tok'), ('user','{not json')`)
	require.NoError(t, err)

	s, _ := newTestStore(t, db, &fakeClient{})

	assert.False(t, s.IsAuthenticated())
	assert.Nil(t, s.User())
}

func TestRestore_EmptyStorageMeansUnauthenticated(t *testing.T) {
	db := setupDB(t)
	s, _ := newTestStore(t, db, &fakeClient{})
	assert.False(t, s.IsAuthenticated())
}

func TestExpiresAt(t *testing.T) {
	db := setupDB(t)
	s, _ := newTestStore(t, db, &fakeClient{})

	exp := time.Now().Add(time.Hour).Truncate(time.Second)
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   "alice",
		ExpiresAt: jwt.NewNumericDate(exp),
	})
	signed, err := tok.SignedString([]byte("test-key"))
	require.NoError(t, err)

	fc := &fakeClient{loginRes: &api.LoginResult{Token: signed, User: models.User{Username: "alice"}}}
	s.SetClient(fc)
	require.NoError(t, s.Login(context.Background(), "alice", "pw"))

	assert.True(t, s.ExpiresAt().Equal(exp))
}

func TestExpiresAt_OpaqueTokenYieldsZero(t *testing.T) {
	db := setupDB(t)
	fc := &fakeClient{loginRes: &api.LoginResult{Token: "not-a-jwt", User: models.User{}}}
	s, _ := newTestStore(t, db, fc)

	require.NoError(t, s.Login(context.Background(), "x", "y"))
	assert.True(t, s.ExpiresAt().IsZero())
}
