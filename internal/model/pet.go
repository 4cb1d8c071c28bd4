// Package model defines the petstore domain entities as they appear on
// the wire and in the relational store.
package model

// PetStatus is the lifecycle status of a pet in the store.
type PetStatus string

const (
	PetStatusAvailable PetStatus = "available"
	PetStatusPending   PetStatus = "pending"
	PetStatusSold      PetStatus = "sold"
)

// Valid reports whether s is one of the known pet statuses.
func (s PetStatus) Valid() bool {
	switch s {
	case PetStatusAvailable, PetStatusPending, PetStatusSold:
		return true
	}
	return false
}

// Category groups pets ("Dogs", "Cats", ...).
type Category struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// Tag labels a pet. The ID is nullable: tags arrive denormalized on the
// pet payload and are stored per pet row, so a tag may carry a name only.
type Tag struct {
	ID   *int64 `json:"id,omitempty"`
	Name string `json:"name"`
}

// Pet is the store's central entity.
//
// PhotoURLs and Tags live in child tables (pet_photos, pet_tags) and are
// reassembled into arrays when a pet is read back.
type Pet struct {
	ID        int64     `json:"id"`
	Category  *Category `json:"category,omitempty"`
	Name      string    `json:"name"`
	PhotoURLs []string  `json:"photoUrls"`
	Tags      []Tag     `json:"tags"`
	Status    PetStatus `json:"status"`
}
