package service

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/pawmart/petstore/internal/errs"
	"github.com/pawmart/petstore/internal/model"
	"github.com/pawmart/petstore/internal/server"
	"github.com/rs/zerolog"
)

// UserStore is the persistence surface UserService needs.
type UserStore interface {
	NextID(ctx context.Context) (int64, error)
	Insert(ctx context.Context, user *model.User) error
	InsertAll(ctx context.Context, users []*model.User) error
	GetByUsername(ctx context.Context, username string) (*model.User, error)
	CredentialsMatch(ctx context.Context, username, password string) (bool, error)
	UpdateFields(ctx context.Context, username string, update model.UserUpdate) error
	Delete(ctx context.Context, username string) error
}

// UserService implements the user operations.
type UserService struct {
	users UserStore
	log   *zerolog.Logger
}

// NewUserService constructs a UserService.
func NewUserService(s *server.Server, users UserStore) *UserService {
	return &UserService{
		users: users,
		log:   s.Logger,
	}
}

// Create stores a new user, assigning id = max+1 when absent, and
// returns the submitted user as-is.
func (s *UserService) Create(ctx context.Context, user *model.User) (*model.User, error) {
	if user.ID == 0 {
		id, err := s.users.NextID(ctx)
		if err != nil {
			return nil, err
		}
		user.ID = id
	}

	if err := s.users.Insert(ctx, user); err != nil {
		return nil, err
	}

	s.log.Info().Str("username", user.Username).Msg("user created")
	return user, nil
}

// CreateAll stores a batch of users inside one all-or-nothing
// transaction.
//
// Entries without a username are skipped, the rest get ids assigned
// (max+1 onwards) and inserted together; any failure rolls back the
// whole batch and surfaces as a 400 carrying the underlying message.
// On success the first inserted user is returned, or nil when nothing
// qualified; that asymmetric "first only" response is the API's
// documented behavior.
func (s *UserService) CreateAll(ctx context.Context, users []*model.User) (*model.User, error) {
	valid := make([]*model.User, 0, len(users))
	for _, user := range users {
		if user.Username == "" {
			s.log.Warn().Msg("skipping bulk user entry without username")
			continue
		}
		valid = append(valid, user)
	}

	if len(valid) == 0 {
		return nil, nil
	}

	nextID, err := s.users.NextID(ctx)
	if err != nil {
		return nil, err
	}
	for _, user := range valid {
		if user.ID == 0 {
			user.ID = nextID
			nextID++
		}
	}

	if err := s.users.InsertAll(ctx, valid); err != nil {
		return nil, errs.NewBadRequestError(err.Error(), nil)
	}

	s.log.Info().Int("count", len(valid)).Msg("users created in batch")
	return valid[0], nil
}

// Login checks a username/password pair against the store (plaintext
// comparison, preserved as documented).
func (s *UserService) Login(ctx context.Context, username, password string) error {
	match, err := s.users.CredentialsMatch(ctx, username, password)
	if err != nil {
		return err
	}
	if !match {
		return errs.NewBadRequestError("Invalid username/password supplied", nil)
	}
	return nil
}

// Get fetches a user by username. The returned record includes the
// password field; redacting it would diverge from the API's documented
// (if regrettable) contract.
func (s *UserService) Get(ctx context.Context, username string) (*model.User, error) {
	user, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, errs.NewNotFoundError("User not found")
		}
		return nil, err
	}
	return user, nil
}

// Update applies a partial update: only the fields present in the
// payload are written.
func (s *UserService) Update(ctx context.Context, username string, update model.UserUpdate) error {
	if err := s.users.UpdateFields(ctx, username, update); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return errs.NewNotFoundError("User not found")
		}
		return err
	}

	s.log.Info().Str("username", username).Msg("user updated")
	return nil
}

// Delete removes a user by username.
func (s *UserService) Delete(ctx context.Context, username string) error {
	if err := s.users.Delete(ctx, username); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return errs.NewNotFoundError("User not found")
		}
		return err
	}

	s.log.Info().Str("username", username).Msg("user deleted")
	return nil
}
