package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/labstack/echo/v4"
	"github.com/pawmart/petstore/internal/errs"
	"github.com/pawmart/petstore/internal/model"
	"github.com/pawmart/petstore/internal/server"
	"github.com/pawmart/petstore/internal/service"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// credentialStore is a minimal service.UserStore for login tests.
type credentialStore struct {
	username string
	password string
}

func (s *credentialStore) NextID(ctx context.Context) (int64, error)             { return 1, nil }
func (s *credentialStore) Insert(ctx context.Context, u *model.User) error       { return nil }
func (s *credentialStore) InsertAll(ctx context.Context, us []*model.User) error { return nil }

func (s *credentialStore) GetByUsername(ctx context.Context, username string) (*model.User, error) {
	return nil, pgx.ErrNoRows
}

func (s *credentialStore) CredentialsMatch(ctx context.Context, username, password string) (bool, error) {
	return username == s.username && password == s.password, nil
}

func (s *credentialStore) UpdateFields(ctx context.Context, username string, update model.UserUpdate) error {
	return pgx.ErrNoRows
}

func (s *credentialStore) Delete(ctx context.Context, username string) error {
	return pgx.ErrNoRows
}

func newLoginHandler(store service.UserStore) *UserHandler {
	logger := zerolog.Nop()
	srv := &server.Server{Logger: &logger}
	return NewUserHandler(srv, service.NewUserService(srv, store))
}

func TestCreateUserRequestValidateRequiresUsername(t *testing.T) {
	req := &CreateUserRequest{}
	err := req.Validate()

	var httpErr *errs.HTTPError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, http.StatusBadRequest, httpErr.Status)

	req.Username = "alice"
	require.NoError(t, req.Validate())
}

func TestLoginRequestValidateRequiresBothCredentials(t *testing.T) {
	for _, req := range []*LoginRequest{
		{},
		{Username: "alice"},
		{Password: "secret"},
	} {
		err := req.Validate()

		var httpErr *errs.HTTPError
		require.ErrorAs(t, err, &httpErr)
		assert.Equal(t, http.StatusBadRequest, httpErr.Status)
		assert.Equal(t, "Invalid username/password supplied", httpErr.Message)
	}

	require.NoError(t, (&LoginRequest{Username: "alice", Password: "secret"}).Validate())
}

func TestLoginSetsSessionHeaders(t *testing.T) {
	h := newLoginHandler(&credentialStore{username: "alice", password: "secret"})

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/api/v3/user/login?username=alice&password=secret", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	response, err := h.Login(c, &LoginRequest{Username: "alice", Password: "secret"})
	require.NoError(t, err)

	assert.Equal(t, "5000", rec.Header().Get("X-Rate-Limit"))

	expiresAfter := rec.Header().Get("X-Expires-After")
	parsed, parseErr := time.Parse(time.RFC3339, expiresAfter)
	require.NoError(t, parseErr)
	assert.True(t, parsed.After(time.Now().Add(23*time.Hour)))

	assert.Equal(t, http.StatusOK, response.Code)
	assert.True(t, strings.HasPrefix(response.Message, "logged in user session:"))
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	h := newLoginHandler(&credentialStore{username: "alice", password: "secret"})

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/api/v3/user/login?username=alice&password=wrong", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	_, err := h.Login(c, &LoginRequest{Username: "alice", Password: "wrong"})
	require.Error(t, err)
	assert.Empty(t, rec.Header().Get("X-Rate-Limit"))
}

func TestLogoutIsEmpty200(t *testing.T) {
	logger := zerolog.Nop()
	h := NewUserHandler(&server.Server{Logger: &logger}, nil)

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/api/v3/user/logout", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	require.NoError(t, h.Logout(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, rec.Body.String())
}
