package service

import (
	"context"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/pawmart/petstore/internal/errs"
	"github.com/pawmart/petstore/internal/model"
	"github.com/pawmart/petstore/internal/server"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testServer() *server.Server {
	logger := zerolog.Nop()
	return &server.Server{Logger: &logger}
}

// fakePetStore is an in-memory PetStore recording enough state to
// assert on service behavior.
type fakePetStore struct {
	nextID     int64
	statuses   map[int64]model.PetStatus
	pets       map[int64]*model.Pet
	categories []*model.Category
	photos     map[int64][]string
	tags       map[int64][]model.Tag
	deleted    []int64
}

func newFakePetStore() *fakePetStore {
	return &fakePetStore{
		nextID:   1,
		statuses: make(map[int64]model.PetStatus),
		pets:     make(map[int64]*model.Pet),
		photos:   make(map[int64][]string),
		tags:     make(map[int64][]model.Tag),
	}
}

func (f *fakePetStore) NextID(ctx context.Context) (int64, error) {
	return f.nextID, nil
}

func (f *fakePetStore) GetStatus(ctx context.Context, id int64) (model.PetStatus, error) {
	status, ok := f.statuses[id]
	if !ok {
		return "", pgx.ErrNoRows
	}
	return status, nil
}

func (f *fakePetStore) UpsertCategory(ctx context.Context, category *model.Category) error {
	f.categories = append(f.categories, category)
	return nil
}

func (f *fakePetStore) Insert(ctx context.Context, pet *model.Pet) error {
	f.pets[pet.ID] = pet
	f.statuses[pet.ID] = pet.Status
	return nil
}

func (f *fakePetStore) Update(ctx context.Context, pet *model.Pet) error {
	f.pets[pet.ID] = pet
	f.statuses[pet.ID] = pet.Status
	return nil
}

func (f *fakePetStore) UpdateFields(ctx context.Context, id int64, name *string, status *model.PetStatus) error {
	pet, ok := f.pets[id]
	if !ok {
		return pgx.ErrNoRows
	}
	if name != nil {
		pet.Name = *name
	}
	if status != nil {
		pet.Status = *status
		f.statuses[id] = *status
	}
	return nil
}

func (f *fakePetStore) ReplacePhotos(ctx context.Context, petID int64, urls []string) error {
	f.photos[petID] = urls
	return nil
}

func (f *fakePetStore) ReplaceTags(ctx context.Context, petID int64, tags []model.Tag) error {
	f.tags[petID] = tags
	return nil
}

func (f *fakePetStore) AddPhoto(ctx context.Context, petID int64, url string) error {
	f.photos[petID] = append(f.photos[petID], url)
	return nil
}

func (f *fakePetStore) Delete(ctx context.Context, petID int64) error {
	delete(f.pets, petID)
	delete(f.statuses, petID)
	f.deleted = append(f.deleted, petID)
	return nil
}

func (f *fakePetStore) GetByID(ctx context.Context, id int64) (*model.Pet, error) {
	pet, ok := f.pets[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return pet, nil
}

func (f *fakePetStore) FindByStatus(ctx context.Context, status model.PetStatus) ([]*model.Pet, error) {
	var out []*model.Pet
	for _, pet := range f.pets {
		if pet.Status == status {
			out = append(out, pet)
		}
	}
	return out, nil
}

func (f *fakePetStore) FindByTags(ctx context.Context, tags []string) ([]*model.Pet, error) {
	return []*model.Pet{}, nil
}

// fakeInventory counts Increment/Decrement calls per status.
type fakeInventory struct {
	counts map[string]int64
}

func newFakeInventory() *fakeInventory {
	return &fakeInventory{counts: make(map[string]int64)}
}

func (f *fakeInventory) All(ctx context.Context) (map[string]int64, error) {
	return f.counts, nil
}

func (f *fakeInventory) Increment(ctx context.Context, status string) error {
	f.counts[status]++
	return nil
}

func (f *fakeInventory) Decrement(ctx context.Context, status string) error {
	if f.counts[status] > 0 {
		f.counts[status]--
	}
	return nil
}

func TestPetServiceCreateAssignsDefaults(t *testing.T) {
	store := newFakePetStore()
	store.nextID = 42
	inventory := newFakeInventory()
	svc := NewPetService(testServer(), store, inventory)

	pet, err := svc.Create(context.Background(), &model.Pet{
		Name:      "doggie",
		PhotoURLs: []string{"https://example.com/1.jpg"},
	})
	require.NoError(t, err)

	assert.Equal(t, int64(42), pet.ID)
	assert.Equal(t, model.PetStatusAvailable, pet.Status)
	assert.Equal(t, int64(1), inventory.counts["available"])
	assert.Equal(t, []string{"https://example.com/1.jpg"}, store.photos[42])
}

func TestPetServiceCreateKeepsSubmittedID(t *testing.T) {
	store := newFakePetStore()
	inventory := newFakeInventory()
	svc := NewPetService(testServer(), store, inventory)

	pet, err := svc.Create(context.Background(), &model.Pet{
		ID:        7,
		Name:      "cat",
		PhotoURLs: []string{},
		Status:    model.PetStatusSold,
		Category:  &model.Category{ID: 1, Name: "cats"},
	})
	require.NoError(t, err)

	assert.Equal(t, int64(7), pet.ID)
	assert.Equal(t, int64(1), inventory.counts["sold"])
	require.Len(t, store.categories, 1)
	assert.Equal(t, "cats", store.categories[0].Name)
}

func TestPetServiceUpdateMovesInventoryOnStatusChange(t *testing.T) {
	store := newFakePetStore()
	inventory := newFakeInventory()
	svc := NewPetService(testServer(), store, inventory)

	_, err := svc.Create(context.Background(), &model.Pet{
		ID: 1, Name: "doggie", PhotoURLs: []string{}, Status: model.PetStatusAvailable,
	})
	require.NoError(t, err)
	require.Equal(t, int64(1), inventory.counts["available"])

	_, err = svc.Update(context.Background(), &model.Pet{
		ID: 1, Name: "doggie", PhotoURLs: []string{}, Status: model.PetStatusSold,
	})
	require.NoError(t, err)

	assert.Equal(t, int64(0), inventory.counts["available"])
	assert.Equal(t, int64(1), inventory.counts["sold"])
}

func TestPetServiceUpdateUnchangedStatusLeavesInventoryAlone(t *testing.T) {
	store := newFakePetStore()
	inventory := newFakeInventory()
	svc := NewPetService(testServer(), store, inventory)

	_, err := svc.Create(context.Background(), &model.Pet{
		ID: 1, Name: "doggie", PhotoURLs: []string{}, Status: model.PetStatusPending,
	})
	require.NoError(t, err)

	_, err = svc.Update(context.Background(), &model.Pet{
		ID: 1, Name: "renamed", PhotoURLs: []string{}, Status: model.PetStatusPending,
	})
	require.NoError(t, err)

	assert.Equal(t, int64(1), inventory.counts["pending"])
}

func TestPetServiceUpdateMissingPet(t *testing.T) {
	svc := NewPetService(testServer(), newFakePetStore(), newFakeInventory())

	_, err := svc.Update(context.Background(), &model.Pet{ID: 99, Name: "ghost"})

	var httpErr *errs.HTTPError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, 404, httpErr.Status)
	assert.Equal(t, "Pet not found", httpErr.Message)
}

func TestPetServiceDeleteDecrementsLastStatus(t *testing.T) {
	store := newFakePetStore()
	inventory := newFakeInventory()
	svc := NewPetService(testServer(), store, inventory)

	_, err := svc.Create(context.Background(), &model.Pet{
		ID: 3, Name: "doggie", PhotoURLs: []string{}, Status: model.PetStatusSold,
	})
	require.NoError(t, err)

	require.NoError(t, svc.Delete(context.Background(), 3))

	assert.Equal(t, int64(0), inventory.counts["sold"])
	assert.Equal(t, []int64{3}, store.deleted)
}

// A pet whose inventory bucket drifted to zero (or was never created,
// a possibility of the non-transactional create path) must not drive
// the counter negative on delete.
func TestPetServiceDeleteWithDriftedInventoryStaysAtZero(t *testing.T) {
	store := newFakePetStore()
	inventory := newFakeInventory()
	svc := NewPetService(testServer(), store, inventory)

	// Pet row exists but no matching inventory count was ever recorded.
	store.pets[8] = &model.Pet{ID: 8, Name: "doggie", Status: model.PetStatusSold}
	store.statuses[8] = model.PetStatusSold

	require.NoError(t, svc.Delete(context.Background(), 8))

	assert.Equal(t, int64(0), inventory.counts["sold"])
}

func TestPetServiceDeleteMissingPet(t *testing.T) {
	svc := NewPetService(testServer(), newFakePetStore(), newFakeInventory())

	err := svc.Delete(context.Background(), 12)

	var httpErr *errs.HTTPError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, 404, httpErr.Status)
}

func TestPetServiceFindByStatusDefaultsToAvailable(t *testing.T) {
	store := newFakePetStore()
	svc := NewPetService(testServer(), store, newFakeInventory())

	_, err := svc.Create(context.Background(), &model.Pet{
		ID: 1, Name: "a", PhotoURLs: []string{}, Status: model.PetStatusAvailable,
	})
	require.NoError(t, err)
	_, err = svc.Create(context.Background(), &model.Pet{
		ID: 2, Name: "b", PhotoURLs: []string{}, Status: model.PetStatusSold,
	})
	require.NoError(t, err)

	pets, err := svc.FindByStatus(context.Background(), "")
	require.NoError(t, err)

	require.Len(t, pets, 1)
	assert.Equal(t, int64(1), pets[0].ID)
}

func TestPetServiceFindByTagsEmptyListShortCircuits(t *testing.T) {
	svc := NewPetService(testServer(), newFakePetStore(), newFakeInventory())

	pets, err := svc.FindByTags(context.Background(), nil)
	require.NoError(t, err)

	assert.NotNil(t, pets)
	assert.Empty(t, pets)
}

func TestPetServiceUpdateWithFormChangesStatus(t *testing.T) {
	store := newFakePetStore()
	inventory := newFakeInventory()
	svc := NewPetService(testServer(), store, inventory)

	_, err := svc.Create(context.Background(), &model.Pet{
		ID: 5, Name: "doggie", PhotoURLs: []string{}, Status: model.PetStatusAvailable,
	})
	require.NoError(t, err)

	name := "rex"
	status := model.PetStatusPending
	pet, err := svc.UpdateWithForm(context.Background(), 5, &name, &status)
	require.NoError(t, err)

	assert.Equal(t, "rex", pet.Name)
	assert.Equal(t, model.PetStatusPending, pet.Status)
	assert.Equal(t, int64(0), inventory.counts["available"])
	assert.Equal(t, int64(1), inventory.counts["pending"])
}

func TestPetServiceUploadImageRecordsURLAndMetadata(t *testing.T) {
	store := newFakePetStore()
	svc := NewPetService(testServer(), store, newFakeInventory())

	_, err := svc.Create(context.Background(), &model.Pet{
		ID: 9, Name: "doggie", PhotoURLs: []string{}, Status: model.PetStatusAvailable,
	})
	require.NoError(t, err)

	response, err := svc.UploadImage(context.Background(), 9, "petstore.example.com", "profile shot")
	require.NoError(t, err)

	assert.Equal(t, 200, response.Code)
	assert.Contains(t, response.Message, "additionalMetadata: profile shot\n")
	assert.Contains(t, response.Message, "File uploaded: https://petstore.example.com/pet/9/photo/")
	require.Len(t, store.photos[9], 1)
}

func TestPetServiceUploadImageMissingPet(t *testing.T) {
	svc := NewPetService(testServer(), newFakePetStore(), newFakeInventory())

	_, err := svc.UploadImage(context.Background(), 1, "host", "")

	var httpErr *errs.HTTPError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, 404, httpErr.Status)
}
