package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/pawmart/petstore/internal/model"
	"github.com/pawmart/petstore/internal/server"
	"github.com/rs/zerolog"
)

// UserRepository owns the users table.
type UserRepository struct {
	pool *pgxpool.Pool
	log  *zerolog.Logger
}

// NewUserRepository constructs a UserRepository from the app container.
func NewUserRepository(s *server.Server) *UserRepository {
	return &UserRepository{
		pool: s.DB.Pool,
		log:  s.Logger,
	}
}

// NextID returns max(id)+1 over the users table.
func (r *UserRepository) NextID(ctx context.Context) (int64, error) {
	var id int64
	err := r.pool.QueryRow(ctx, `SELECT COALESCE(MAX(id), 0) + 1 FROM users`).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("selecting next user id: %w", err)
	}
	return id, nil
}

const insertUserSQL = `
	INSERT INTO users (id, username, first_name, last_name, email, password, phone, user_status)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

// Insert writes a new user row. Optional fields stay NULL when absent.
func (r *UserRepository) Insert(ctx context.Context, user *model.User) error {
	_, err := r.pool.Exec(ctx, insertUserSQL,
		user.ID, user.Username, user.FirstName, user.LastName,
		user.Email, user.Password, user.Phone, user.UserStatus)
	if err != nil {
		return fmt.Errorf("inserting user: %w", err)
	}
	return nil
}

// InsertAll writes a batch of users inside one transaction: any insert
// failure rolls the whole batch back so a mid-batch failure leaves no
// partial rows. This is the only transactional write in the API.
func (r *UserRepository) InsertAll(ctx context.Context, users []*model.User) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("beginning user batch transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	for _, user := range users {
		if _, err := tx.Exec(ctx, insertUserSQL,
			user.ID, user.Username, user.FirstName, user.LastName,
			user.Email, user.Password, user.Phone, user.UserStatus); err != nil {
			return fmt.Errorf("inserting user %q: %w", user.Username, err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("committing user batch: %w", err)
	}
	return nil
}

const selectUserSQL = `
	SELECT id, username, first_name, last_name, email, password, phone, user_status
	FROM users`

// GetByUsername fetches a user by username. pgx.ErrNoRows is passed
// through (wrapped) when the username is unknown.
func (r *UserRepository) GetByUsername(ctx context.Context, username string) (*model.User, error) {
	var user model.User
	err := r.pool.QueryRow(ctx, selectUserSQL+` WHERE username = $1`, username).
		Scan(&user.ID, &user.Username, &user.FirstName, &user.LastName,
			&user.Email, &user.Password, &user.Phone, &user.UserStatus)
	if err != nil {
		return nil, fmt.Errorf("selecting user: %w", err)
	}
	return &user, nil
}

// CredentialsMatch reports whether a user exists with exactly this
// username/password pair. Passwords are stored and compared in
// plaintext; a documented smell of this API, preserved as-is.
func (r *UserRepository) CredentialsMatch(ctx context.Context, username, password string) (bool, error) {
	var match bool
	err := r.pool.QueryRow(ctx, `
		SELECT EXISTS (SELECT 1 FROM users WHERE username = $1 AND password = $2)`,
		username, password).Scan(&match)
	if err != nil {
		return false, fmt.Errorf("checking credentials: %w", err)
	}
	return match, nil
}

// UpdateFields applies a partial update built from the typed field set:
// only non-nil fields are written, through a parameterized statement
// whose column list is assembled from fixed names, never client input.
// Updating an unknown username reports pgx.ErrNoRows.
func (r *UserRepository) UpdateFields(ctx context.Context, username string, update model.UserUpdate) error {
	if update.Empty() {
		// Nothing to write; still report 404 for unknown usernames.
		_, err := r.GetByUsername(ctx, username)
		return err
	}

	columns := []string{}
	args := []any{username}

	appendSet := func(column string, value any) {
		args = append(args, value)
		columns = append(columns, fmt.Sprintf("%s = $%d", column, len(args)))
	}

	if update.FirstName != nil {
		appendSet("first_name", *update.FirstName)
	}
	if update.LastName != nil {
		appendSet("last_name", *update.LastName)
	}
	if update.Email != nil {
		appendSet("email", *update.Email)
	}
	if update.Password != nil {
		appendSet("password", *update.Password)
	}
	if update.Phone != nil {
		appendSet("phone", *update.Phone)
	}
	if update.UserStatus != nil {
		appendSet("user_status", *update.UserStatus)
	}

	sql := fmt.Sprintf(`UPDATE users SET %s WHERE username = $1`, strings.Join(columns, ", "))
	tag, err := r.pool.Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("updating user: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("updating user: %w", pgx.ErrNoRows)
	}
	return nil
}

// Delete removes a user. Deleting an unknown username reports
// pgx.ErrNoRows so callers can map it to a 404.
func (r *UserRepository) Delete(ctx context.Context, username string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM users WHERE username = $1`, username)
	if err != nil {
		return fmt.Errorf("deleting user: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("deleting user: %w", pgx.ErrNoRows)
	}
	return nil
}
