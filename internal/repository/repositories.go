package repository

import (
	"github.com/pawmart/petstore/internal/server"
)

// Repositories is a container for all repository instances, wired once
// from the application container and handed to the service layer.
type Repositories struct {
	Pets      *PetRepository
	Orders    *OrderRepository
	Users     *UserRepository
	Inventory *InventoryRepository
}

// NewRepositories constructs the repository container using the shared
// database pool and logger from the application container.
func NewRepositories(s *server.Server) *Repositories {
	return &Repositories{
		Pets:      NewPetRepository(s),
		Orders:    NewOrderRepository(s),
		Users:     NewUserRepository(s),
		Inventory: NewInventoryRepository(s),
	}
}
