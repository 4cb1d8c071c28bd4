package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/pawmart/petstore/internal/errs"
	"github.com/pawmart/petstore/internal/model"
	"github.com/pawmart/petstore/internal/server"
	"github.com/rs/zerolog"
)

// PetStore is the persistence surface PetService needs.
type PetStore interface {
	NextID(ctx context.Context) (int64, error)
	GetStatus(ctx context.Context, id int64) (model.PetStatus, error)
	UpsertCategory(ctx context.Context, category *model.Category) error
	Insert(ctx context.Context, pet *model.Pet) error
	Update(ctx context.Context, pet *model.Pet) error
	UpdateFields(ctx context.Context, id int64, name *string, status *model.PetStatus) error
	ReplacePhotos(ctx context.Context, petID int64, urls []string) error
	ReplaceTags(ctx context.Context, petID int64, tags []model.Tag) error
	AddPhoto(ctx context.Context, petID int64, url string) error
	Delete(ctx context.Context, petID int64) error
	GetByID(ctx context.Context, id int64) (*model.Pet, error)
	FindByStatus(ctx context.Context, status model.PetStatus) ([]*model.Pet, error)
	FindByTags(ctx context.Context, tags []string) ([]*model.Pet, error)
}

// InventoryStore maintains the per-status counters.
type InventoryStore interface {
	All(ctx context.Context) (map[string]int64, error)
	Increment(ctx context.Context, status string) error
	Decrement(ctx context.Context, status string) error
}

// PetService implements the pet operations, including the inventory
// bookkeeping that accompanies every status transition.
//
// The multi-statement sequences here (child-row replacement, decrement
// then increment) intentionally run outside a transaction: that is the
// API's documented best-effort behavior, not an oversight.
type PetService struct {
	pets      PetStore
	inventory InventoryStore
	log       *zerolog.Logger
}

// NewPetService constructs a PetService.
func NewPetService(s *server.Server, pets PetStore, inventory InventoryStore) *PetService {
	return &PetService{
		pets:      pets,
		inventory: inventory,
		log:       s.Logger,
	}
}

// Create stores a new pet with its photos and tags, and bumps the
// inventory bucket for its status.
//
// An absent id is assigned as max(existing)+1; an absent status
// defaults to "available". The submitted pet is returned as-is, not
// re-fetched.
func (s *PetService) Create(ctx context.Context, pet *model.Pet) (*model.Pet, error) {
	if pet.ID == 0 {
		id, err := s.pets.NextID(ctx)
		if err != nil {
			return nil, err
		}
		pet.ID = id
	}
	if pet.Status == "" {
		pet.Status = model.PetStatusAvailable
	}

	if pet.Category != nil {
		if err := s.pets.UpsertCategory(ctx, pet.Category); err != nil {
			return nil, err
		}
	}

	if err := s.pets.Insert(ctx, pet); err != nil {
		return nil, err
	}
	if err := s.pets.ReplacePhotos(ctx, pet.ID, pet.PhotoURLs); err != nil {
		return nil, err
	}
	if err := s.pets.ReplaceTags(ctx, pet.ID, pet.Tags); err != nil {
		return nil, err
	}

	if err := s.inventory.Increment(ctx, string(pet.Status)); err != nil {
		return nil, err
	}

	s.log.Info().Int64("pet_id", pet.ID).Str("status", string(pet.Status)).Msg("pet created")
	return pet, nil
}

// Update overwrites a pet in place: name, status, and category on the
// pet row, and a full delete-then-insert replacement of photos and
// tags. A status change moves one count between inventory buckets.
func (s *PetService) Update(ctx context.Context, pet *model.Pet) (*model.Pet, error) {
	storedStatus, err := s.pets.GetStatus(ctx, pet.ID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, errs.NewNotFoundError("Pet not found")
		}
		return nil, err
	}

	if pet.Status == "" {
		pet.Status = model.PetStatusAvailable
	}

	if pet.Status != storedStatus {
		if err := s.inventory.Decrement(ctx, string(storedStatus)); err != nil {
			return nil, err
		}
		if err := s.inventory.Increment(ctx, string(pet.Status)); err != nil {
			return nil, err
		}
	}

	if pet.Category != nil {
		if err := s.pets.UpsertCategory(ctx, pet.Category); err != nil {
			return nil, err
		}
	}

	if err := s.pets.Update(ctx, pet); err != nil {
		return nil, err
	}
	if err := s.pets.ReplacePhotos(ctx, pet.ID, pet.PhotoURLs); err != nil {
		return nil, err
	}
	if err := s.pets.ReplaceTags(ctx, pet.ID, pet.Tags); err != nil {
		return nil, err
	}

	s.log.Info().Int64("pet_id", pet.ID).Str("status", string(pet.Status)).Msg("pet updated")
	return pet, nil
}

// FindByStatus returns pets with the given status; an absent status
// defaults to "available". No matches is an empty array, not an error.
func (s *PetService) FindByStatus(ctx context.Context, status model.PetStatus) ([]*model.Pet, error) {
	if status == "" {
		status = model.PetStatusAvailable
	}
	return s.pets.FindByStatus(ctx, status)
}

// FindByTags returns pets matching any of the given tag names. An
// empty tag list short-circuits to an empty array without touching the
// store.
func (s *PetService) FindByTags(ctx context.Context, tags []string) ([]*model.Pet, error) {
	if len(tags) == 0 {
		return []*model.Pet{}, nil
	}
	return s.pets.FindByTags(ctx, tags)
}

// Get fetches a single pet with photos and tags reassembled.
func (s *PetService) Get(ctx context.Context, id int64) (*model.Pet, error) {
	pet, err := s.pets.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, errs.NewNotFoundError("Pet not found")
		}
		return nil, err
	}
	return pet, nil
}

// UpdateWithForm applies the optional form fields (name, status) to an
// existing pet, adjusting inventory when the status changes, and
// returns the refreshed pet.
func (s *PetService) UpdateWithForm(ctx context.Context, id int64, name *string, status *model.PetStatus) (*model.Pet, error) {
	storedStatus, err := s.pets.GetStatus(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, errs.NewNotFoundError("Pet not found")
		}
		return nil, err
	}

	if status != nil && *status != storedStatus {
		if err := s.inventory.Decrement(ctx, string(storedStatus)); err != nil {
			return nil, err
		}
		if err := s.inventory.Increment(ctx, string(*status)); err != nil {
			return nil, err
		}
	}

	if err := s.pets.UpdateFields(ctx, id, name, status); err != nil {
		return nil, err
	}

	return s.Get(ctx, id)
}

// Delete removes a pet, its photos and tags (children first), and
// decrements the inventory bucket matching its last known status.
func (s *PetService) Delete(ctx context.Context, id int64) error {
	storedStatus, err := s.pets.GetStatus(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return errs.NewNotFoundError("Pet not found")
		}
		return err
	}

	if err := s.inventory.Decrement(ctx, string(storedStatus)); err != nil {
		return err
	}
	if err := s.pets.Delete(ctx, id); err != nil {
		return err
	}

	s.log.Info().Int64("pet_id", id).Msg("pet deleted")
	return nil
}

// UploadImage records a synthesized photo URL for a pet.
//
// No file bytes are persisted; the URL is derived from the serving
// host, the pet id, and the upload time. The response message carries
// the optional metadata text when present.
func (s *PetService) UploadImage(ctx context.Context, id int64, host, metadata string) (*model.APIResponse, error) {
	if _, err := s.pets.GetStatus(ctx, id); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, errs.NewNotFoundError("Pet not found")
		}
		return nil, err
	}

	url := fmt.Sprintf("https://%s/pet/%d/photo/%d", host, id, time.Now().Unix())
	if err := s.pets.AddPhoto(ctx, id, url); err != nil {
		return nil, err
	}

	message := "File uploaded: " + url
	if metadata != "" {
		message = "additionalMetadata: " + metadata + "\n" + message
	}

	return &model.APIResponse{
		Code:    200,
		Type:    "unknown",
		Message: message,
	}, nil
}
