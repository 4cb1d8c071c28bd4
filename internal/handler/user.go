package handler

import (
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/pawmart/petstore/internal/errs"
	"github.com/pawmart/petstore/internal/model"
	"github.com/pawmart/petstore/internal/server"
	"github.com/pawmart/petstore/internal/service"
)

// UserHandler exposes the user endpoints.
type UserHandler struct {
	Handler
	users *service.UserService
}

// NewUserHandler constructs a UserHandler.
func NewUserHandler(s *server.Server, users *service.UserService) *UserHandler {
	return &UserHandler{
		Handler: NewHandler(s),
		users:   users,
	}
}

// CreateUserRequest is the JSON user payload for POST /user.
type CreateUserRequest struct {
	model.User
}

// Validate enforces the creation contract: username must be present.
func (r *CreateUserRequest) Validate() error {
	if r.Username == "" {
		return errs.NewBadRequestError("Username is required", nil)
	}
	return nil
}

// CreateUser handles POST /user.
func (h *UserHandler) CreateUser(c echo.Context, req *CreateUserRequest) (*model.User, error) {
	return h.users.Create(c.Request().Context(), &req.User)
}

// CreateUsersWithList handles POST /user/createWithList.
//
// Untyped because the payload is a bare JSON array, which doesn't fit
// the struct-bound pipeline. The response is the first created user,
// or an empty object when no entry qualified.
func (h *UserHandler) CreateUsersWithList(c echo.Context) error {
	var users []*model.User
	if err := c.Bind(&users); err != nil {
		return errs.NewBadRequestError("Invalid input", nil)
	}

	first, err := h.users.CreateAll(c.Request().Context(), users)
	if err != nil {
		return err
	}
	if first == nil {
		return c.JSON(http.StatusOK, struct{}{})
	}
	return c.JSON(http.StatusOK, first)
}

// LoginRequest carries the login query parameters.
type LoginRequest struct {
	Username string `query:"username" json:"-"`
	Password string `query:"password" json:"-"`
}

// Validate rejects logins missing either credential with the same 400
// the service returns for a bad pair, so callers can't probe which
// half was wrong.
func (r *LoginRequest) Validate() error {
	if r.Username == "" || r.Password == "" {
		return errs.NewBadRequestError("Invalid username/password supplied", nil)
	}
	return nil
}

// Login handles GET /user/login.
//
// On success it sets the static rate-limit headers the API has always
// returned and answers with a session message carrying the login time.
func (h *UserHandler) Login(c echo.Context, req *LoginRequest) (*model.APIResponse, error) {
	if err := h.users.Login(c.Request().Context(), req.Username, req.Password); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	c.Response().Header().Set("X-Rate-Limit", "5000")
	c.Response().Header().Set("X-Expires-After", now.Add(24*time.Hour).Format(time.RFC3339))

	return &model.APIResponse{
		Code:    http.StatusOK,
		Type:    "unknown",
		Message: fmt.Sprintf("logged in user session:%d", now.UnixNano()),
	}, nil
}

// Logout handles GET /user/logout. Sessions are not tracked, so this
// is an empty 200 regardless of state.
func (h *UserHandler) Logout(c echo.Context) error {
	return c.NoContent(http.StatusOK)
}

// UsernameRequest carries the username path parameter.
type UsernameRequest struct {
	Username string `param:"username" json:"-"`
}

func (r *UsernameRequest) Validate() error { return nil }

// GetUser handles GET /user/{username}.
func (h *UserHandler) GetUser(c echo.Context, req *UsernameRequest) (*model.User, error) {
	return h.users.Get(c.Request().Context(), req.Username)
}

// UpdateUserRequest is the partial-update payload for PUT /user/{username}.
type UpdateUserRequest struct {
	Username string `param:"username" json:"-"`
	model.UserUpdate
}

func (r *UpdateUserRequest) Validate() error { return nil }

// UpdateUser handles PUT /user/{username} and answers with an empty 200.
func (h *UserHandler) UpdateUser(c echo.Context, req *UpdateUserRequest) error {
	return h.users.Update(c.Request().Context(), req.Username, req.UserUpdate)
}

// DeleteUser handles DELETE /user/{username} and answers with an empty 200.
func (h *UserHandler) DeleteUser(c echo.Context, req *UsernameRequest) error {
	return h.users.Delete(c.Request().Context(), req.Username)
}
