package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/pawmart/petstore/internal/model"
	"github.com/pawmart/petstore/internal/server"
	"github.com/rs/zerolog"
)

// PetRepository owns the pets table and its child tables (pet_photos,
// pet_tags) plus the categories parent table.
type PetRepository struct {
	pool *pgxpool.Pool
	log  *zerolog.Logger
}

// NewPetRepository constructs a PetRepository from the app container.
func NewPetRepository(s *server.Server) *PetRepository {
	return &PetRepository{
		pool: s.DB.Pool,
		log:  s.Logger,
	}
}

// NextID returns max(id)+1 over the pets table, the id-assignment rule
// for payloads that arrive without one.
func (r *PetRepository) NextID(ctx context.Context) (int64, error) {
	var id int64
	err := r.pool.QueryRow(ctx, `SELECT COALESCE(MAX(id), 0) + 1 FROM pets`).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("selecting next pet id: %w", err)
	}
	return id, nil
}

// GetStatus returns the stored status for a pet. pgx.ErrNoRows is
// passed through (wrapped) so callers can map it to a 404.
func (r *PetRepository) GetStatus(ctx context.Context, id int64) (model.PetStatus, error) {
	var status model.PetStatus
	err := r.pool.QueryRow(ctx, `SELECT status FROM pets WHERE id = $1`, id).Scan(&status)
	if err != nil {
		return "", fmt.Errorf("selecting pet status: %w", err)
	}
	return status, nil
}

// UpsertCategory inserts the category row if absent, otherwise updates
// its name. Pets reference categories by id, so the parent row must
// exist before the pet insert.
func (r *PetRepository) UpsertCategory(ctx context.Context, category *model.Category) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO categories (id, name) VALUES ($1, $2)
		ON CONFLICT (id) DO UPDATE SET name = EXCLUDED.name`,
		category.ID, category.Name)
	if err != nil {
		return fmt.Errorf("upserting category: %w", err)
	}
	return nil
}

// Insert writes the pet row. Child rows are written separately via
// ReplacePhotos/ReplaceTags.
func (r *PetRepository) Insert(ctx context.Context, pet *model.Pet) error {
	var categoryID *int64
	if pet.Category != nil {
		categoryID = &pet.Category.ID
	}

	_, err := r.pool.Exec(ctx, `
		INSERT INTO pets (id, name, status, category_id)
		VALUES ($1, $2, $3, $4)`,
		pet.ID, pet.Name, pet.Status, categoryID)
	if err != nil {
		return fmt.Errorf("inserting pet: %w", err)
	}
	return nil
}

// Update overwrites name, status, and category reference of a pet row.
func (r *PetRepository) Update(ctx context.Context, pet *model.Pet) error {
	var categoryID *int64
	if pet.Category != nil {
		categoryID = &pet.Category.ID
	}

	_, err := r.pool.Exec(ctx, `
		UPDATE pets SET name = $2, status = $3, category_id = $4
		WHERE id = $1`,
		pet.ID, pet.Name, pet.Status, categoryID)
	if err != nil {
		return fmt.Errorf("updating pet: %w", err)
	}
	return nil
}

// UpdateFields applies the optional form fields of the form-based pet
// update. Nil fields are left untouched.
func (r *PetRepository) UpdateFields(ctx context.Context, id int64, name *string, status *model.PetStatus) error {
	if name != nil {
		if _, err := r.pool.Exec(ctx, `UPDATE pets SET name = $2 WHERE id = $1`, id, *name); err != nil {
			return fmt.Errorf("updating pet name: %w", err)
		}
	}
	if status != nil {
		if _, err := r.pool.Exec(ctx, `UPDATE pets SET status = $2 WHERE id = $1`, id, *status); err != nil {
			return fmt.Errorf("updating pet status: %w", err)
		}
	}
	return nil
}

// ReplacePhotos fully replaces the photo rows for a pet:
// delete-then-insert, never a merge.
func (r *PetRepository) ReplacePhotos(ctx context.Context, petID int64, urls []string) error {
	if _, err := r.pool.Exec(ctx, `DELETE FROM pet_photos WHERE pet_id = $1`, petID); err != nil {
		return fmt.Errorf("deleting pet photos: %w", err)
	}
	for _, url := range urls {
		if _, err := r.pool.Exec(ctx, `
			INSERT INTO pet_photos (pet_id, url) VALUES ($1, $2)`, petID, url); err != nil {
			return fmt.Errorf("inserting pet photo: %w", err)
		}
	}
	return nil
}

// ReplaceTags fully replaces the tag rows for a pet. Tags are stored
// denormalized: the name is duplicated per row and the id may be null.
func (r *PetRepository) ReplaceTags(ctx context.Context, petID int64, tags []model.Tag) error {
	if _, err := r.pool.Exec(ctx, `DELETE FROM pet_tags WHERE pet_id = $1`, petID); err != nil {
		return fmt.Errorf("deleting pet tags: %w", err)
	}
	for _, tag := range tags {
		if _, err := r.pool.Exec(ctx, `
			INSERT INTO pet_tags (pet_id, tag_id, tag_name) VALUES ($1, $2, $3)`,
			petID, tag.ID, tag.Name); err != nil {
			return fmt.Errorf("inserting pet tag: %w", err)
		}
	}
	return nil
}

// AddPhoto appends a single photo row (image upload).
func (r *PetRepository) AddPhoto(ctx context.Context, petID int64, url string) error {
	if _, err := r.pool.Exec(ctx, `
		INSERT INTO pet_photos (pet_id, url) VALUES ($1, $2)`, petID, url); err != nil {
		return fmt.Errorf("inserting pet photo: %w", err)
	}
	return nil
}

// Delete removes a pet and its child rows, children first since no
// database-level cascade is assumed. The statements run sequentially
// and unwrapped, matching the API's best-effort contract.
func (r *PetRepository) Delete(ctx context.Context, petID int64) error {
	if _, err := r.pool.Exec(ctx, `DELETE FROM pet_photos WHERE pet_id = $1`, petID); err != nil {
		return fmt.Errorf("deleting pet photos: %w", err)
	}
	if _, err := r.pool.Exec(ctx, `DELETE FROM pet_tags WHERE pet_id = $1`, petID); err != nil {
		return fmt.Errorf("deleting pet tags: %w", err)
	}
	if _, err := r.pool.Exec(ctx, `DELETE FROM pets WHERE id = $1`, petID); err != nil {
		return fmt.Errorf("deleting pet: %w", err)
	}
	return nil
}

// petQuery is the base select joining pets to their optional category.
const petQuery = `
	SELECT p.id, p.name, p.status, c.id, c.name
	FROM pets p
	LEFT JOIN categories c ON c.id = p.category_id`

// GetByID fetches a single pet with photos and tags reassembled.
// pgx.ErrNoRows is passed through (wrapped) when the pet is unknown.
func (r *PetRepository) GetByID(ctx context.Context, id int64) (*model.Pet, error) {
	row := r.pool.QueryRow(ctx, petQuery+` WHERE p.id = $1`, id)

	pet, err := scanPet(row)
	if err != nil {
		return nil, fmt.Errorf("selecting pet: %w", err)
	}

	if err := r.loadChildren(ctx, []*model.Pet{pet}); err != nil {
		return nil, err
	}
	return pet, nil
}

// FindByStatus returns all pets with the given status, with photos and
// tags reassembled. An empty result is a valid, empty slice.
func (r *PetRepository) FindByStatus(ctx context.Context, status model.PetStatus) ([]*model.Pet, error) {
	rows, err := r.pool.Query(ctx, petQuery+` WHERE p.status = $1 ORDER BY p.id`, status)
	if err != nil {
		return nil, fmt.Errorf("selecting pets by status: %w", err)
	}
	defer rows.Close()

	pets, err := scanPets(rows)
	if err != nil {
		return nil, err
	}

	if err := r.loadChildren(ctx, pets); err != nil {
		return nil, err
	}
	return pets, nil
}

// FindByTags returns pets having at least one tag whose name is in
// tags. Matching is on the denormalized tag_name column.
func (r *PetRepository) FindByTags(ctx context.Context, tags []string) ([]*model.Pet, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT DISTINCT p.id, p.name, p.status, c.id, c.name
		FROM pets p
		INNER JOIN pet_tags pt ON pt.pet_id = p.id
		LEFT JOIN categories c ON c.id = p.category_id
		WHERE pt.tag_name = ANY($1)
		ORDER BY p.id`, tags)
	if err != nil {
		return nil, fmt.Errorf("selecting pets by tags: %w", err)
	}
	defer rows.Close()

	pets, err := scanPets(rows)
	if err != nil {
		return nil, err
	}

	if err := r.loadChildren(ctx, pets); err != nil {
		return nil, err
	}
	return pets, nil
}

// rowScanner is satisfied by both pgx.Row and pgx.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

// scanPet reads one pet row from the base select. The category columns
// come from a LEFT JOIN, so they scan into nullable pointers and the
// category is attached only when present.
func scanPet(row rowScanner) (*model.Pet, error) {
	var pet model.Pet
	var categoryID *int64
	var categoryName *string

	if err := row.Scan(&pet.ID, &pet.Name, &pet.Status, &categoryID, &categoryName); err != nil {
		return nil, err
	}

	if categoryID != nil {
		pet.Category = &model.Category{ID: *categoryID}
		if categoryName != nil {
			pet.Category.Name = *categoryName
		}
	}

	// Always arrays in responses, never null.
	pet.PhotoURLs = []string{}
	pet.Tags = []model.Tag{}

	return &pet, nil
}

func scanPets(rows interface {
	rowScanner
	Next() bool
	Err() error
}) ([]*model.Pet, error) {
	pets := []*model.Pet{}
	for rows.Next() {
		pet, err := scanPet(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning pet: %w", err)
		}
		pets = append(pets, pet)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating pets: %w", err)
	}
	return pets, nil
}

// loadChildren reassembles the denormalized children for a set of pets:
// distinct photo URLs and distinct (tag_id, tag_name) pairs, grouped by
// pet id in the application layer.
func (r *PetRepository) loadChildren(ctx context.Context, pets []*model.Pet) error {
	if len(pets) == 0 {
		return nil
	}

	ids := make([]int64, 0, len(pets))
	byID := make(map[int64]*model.Pet, len(pets))
	for _, pet := range pets {
		ids = append(ids, pet.ID)
		byID[pet.ID] = pet
	}

	photoRows, err := r.pool.Query(ctx, `
		SELECT DISTINCT pet_id, url FROM pet_photos WHERE pet_id = ANY($1)`, ids)
	if err != nil {
		return fmt.Errorf("selecting pet photos: %w", err)
	}
	defer photoRows.Close()

	for photoRows.Next() {
		var petID int64
		var url string
		if err := photoRows.Scan(&petID, &url); err != nil {
			return fmt.Errorf("scanning pet photo: %w", err)
		}
		if pet, ok := byID[petID]; ok {
			pet.PhotoURLs = append(pet.PhotoURLs, url)
		}
	}
	if err := photoRows.Err(); err != nil {
		return fmt.Errorf("iterating pet photos: %w", err)
	}

	tagRows, err := r.pool.Query(ctx, `
		SELECT DISTINCT pet_id, tag_id, tag_name FROM pet_tags WHERE pet_id = ANY($1)`, ids)
	if err != nil {
		return fmt.Errorf("selecting pet tags: %w", err)
	}
	defer tagRows.Close()

	for tagRows.Next() {
		var petID int64
		var tag model.Tag
		if err := tagRows.Scan(&petID, &tag.ID, &tag.Name); err != nil {
			return fmt.Errorf("scanning pet tag: %w", err)
		}
		if pet, ok := byID[petID]; ok {
			pet.Tags = append(pet.Tags, tag)
		}
	}
	if err := tagRows.Err(); err != nil {
		return fmt.Errorf("iterating pet tags: %w", err)
	}

	return nil
}
