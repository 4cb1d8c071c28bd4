package service

import (
	"context"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/pawmart/petstore/internal/errs"
	"github.com/pawmart/petstore/internal/model"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeUserStore is an in-memory UserStore keyed by username.
type fakeUserStore struct {
	nextID    int64
	users     map[string]*model.User
	batchErr  error
	inserted  []*model.User
	batchSize int
}

func newFakeUserStore() *fakeUserStore {
	return &fakeUserStore{nextID: 1, users: make(map[string]*model.User)}
}

func (f *fakeUserStore) NextID(ctx context.Context) (int64, error) {
	return f.nextID, nil
}

func (f *fakeUserStore) Insert(ctx context.Context, user *model.User) error {
	f.users[user.Username] = user
	f.inserted = append(f.inserted, user)
	return nil
}

func (f *fakeUserStore) InsertAll(ctx context.Context, users []*model.User) error {
	if f.batchErr != nil {
		return f.batchErr
	}
	f.batchSize = len(users)
	for _, user := range users {
		f.users[user.Username] = user
		f.inserted = append(f.inserted, user)
	}
	return nil
}

func (f *fakeUserStore) GetByUsername(ctx context.Context, username string) (*model.User, error) {
	user, ok := f.users[username]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return user, nil
}

func (f *fakeUserStore) CredentialsMatch(ctx context.Context, username, password string) (bool, error) {
	user, ok := f.users[username]
	if !ok || user.Password == nil {
		return false, nil
	}
	return *user.Password == password, nil
}

func (f *fakeUserStore) UpdateFields(ctx context.Context, username string, update model.UserUpdate) error {
	user, ok := f.users[username]
	if !ok {
		return pgx.ErrNoRows
	}
	if update.FirstName != nil {
		user.FirstName = update.FirstName
	}
	if update.Password != nil {
		user.Password = update.Password
	}
	return nil
}

func (f *fakeUserStore) Delete(ctx context.Context, username string) error {
	if _, ok := f.users[username]; !ok {
		return pgx.ErrNoRows
	}
	delete(f.users, username)
	return nil
}

func strPtr(s string) *string { return &s }

func TestUserServiceCreateAssignsID(t *testing.T) {
	store := newFakeUserStore()
	store.nextID = 8
	svc := NewUserService(testServer(), store)

	user, err := svc.Create(context.Background(), &model.User{Username: "alice"})
	require.NoError(t, err)

	assert.Equal(t, int64(8), user.ID)
	assert.Contains(t, store.users, "alice")
}

func TestUserServiceCreateAllSkipsEntriesWithoutUsername(t *testing.T) {
	store := newFakeUserStore()
	store.nextID = 10
	svc := NewUserService(testServer(), store)

	first, err := svc.CreateAll(context.Background(), []*model.User{
		{Username: ""},
		{Username: "bob"},
		{Username: "carol"},
	})
	require.NoError(t, err)

	require.NotNil(t, first)
	assert.Equal(t, "bob", first.Username)
	assert.Equal(t, int64(10), first.ID)
	assert.Equal(t, int64(11), store.users["carol"].ID)
	assert.Equal(t, 2, store.batchSize)
}

func TestUserServiceCreateAllNothingValid(t *testing.T) {
	svc := NewUserService(testServer(), newFakeUserStore())

	first, err := svc.CreateAll(context.Background(), []*model.User{{Username: ""}})
	require.NoError(t, err)

	assert.Nil(t, first)
}

func TestUserServiceCreateAllBatchFailureIs400(t *testing.T) {
	store := newFakeUserStore()
	store.batchErr = errors.New("duplicate key value violates unique constraint")
	svc := NewUserService(testServer(), store)

	_, err := svc.CreateAll(context.Background(), []*model.User{{Username: "dave"}})

	var httpErr *errs.HTTPError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, 400, httpErr.Status)
	assert.Contains(t, httpErr.Message, "duplicate key")
}

func TestUserServiceLogin(t *testing.T) {
	store := newFakeUserStore()
	store.users["alice"] = &model.User{Username: "alice", Password: strPtr("secret")}
	svc := NewUserService(testServer(), store)

	require.NoError(t, svc.Login(context.Background(), "alice", "secret"))
}

func TestUserServiceLoginBadPassword(t *testing.T) {
	store := newFakeUserStore()
	store.users["alice"] = &model.User{Username: "alice", Password: strPtr("secret")}
	svc := NewUserService(testServer(), store)

	err := svc.Login(context.Background(), "alice", "wrong")

	var httpErr *errs.HTTPError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, 400, httpErr.Status)
	assert.Equal(t, "Invalid username/password supplied", httpErr.Message)
}

func TestUserServiceLoginUnknownUser(t *testing.T) {
	svc := NewUserService(testServer(), newFakeUserStore())

	err := svc.Login(context.Background(), "nobody", "secret")

	var httpErr *errs.HTTPError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, 400, httpErr.Status)
}

func TestUserServiceGetIncludesPassword(t *testing.T) {
	store := newFakeUserStore()
	store.users["alice"] = &model.User{Username: "alice", Password: strPtr("secret")}
	svc := NewUserService(testServer(), store)

	user, err := svc.Get(context.Background(), "alice")
	require.NoError(t, err)

	require.NotNil(t, user.Password)
	assert.Equal(t, "secret", *user.Password)
}

func TestUserServiceGetMissing(t *testing.T) {
	svc := NewUserService(testServer(), newFakeUserStore())

	_, err := svc.Get(context.Background(), "nobody")

	var httpErr *errs.HTTPError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, 404, httpErr.Status)
	assert.Equal(t, "User not found", httpErr.Message)
}

func TestUserServiceUpdatePartial(t *testing.T) {
	store := newFakeUserStore()
	store.users["alice"] = &model.User{Username: "alice", FirstName: strPtr("Alice")}
	svc := NewUserService(testServer(), store)

	err := svc.Update(context.Background(), "alice", model.UserUpdate{FirstName: strPtr("Alicia")})
	require.NoError(t, err)

	assert.Equal(t, "Alicia", *store.users["alice"].FirstName)
}

func TestUserServiceUpdateMissing(t *testing.T) {
	svc := NewUserService(testServer(), newFakeUserStore())

	err := svc.Update(context.Background(), "nobody", model.UserUpdate{FirstName: strPtr("x")})

	var httpErr *errs.HTTPError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, 404, httpErr.Status)
}

func TestUserServiceDelete(t *testing.T) {
	store := newFakeUserStore()
	store.users["alice"] = &model.User{Username: "alice"}
	svc := NewUserService(testServer(), store)

	require.NoError(t, svc.Delete(context.Background(), "alice"))
	assert.Empty(t, store.users)
}

func TestUserServiceDeleteMissing(t *testing.T) {
	svc := NewUserService(testServer(), newFakeUserStore())

	err := svc.Delete(context.Background(), "nobody")

	var httpErr *errs.HTTPError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, 404, httpErr.Status)
}
