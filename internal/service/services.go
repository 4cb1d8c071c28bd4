package service

import (
	"github.com/pawmart/petstore/internal/repository"
	"github.com/pawmart/petstore/internal/server"
)

// Services is the container for all business-logic services.
type Services struct {
	Pets  *PetService
	Store *StoreService
	Users *UserService
}

// NewService constructs the service container on top of the repository
// container.
func NewService(s *server.Server, repos *repository.Repositories) (*Services, error) {
	return &Services{
		Pets:  NewPetService(s, repos.Pets, repos.Inventory),
		Store: NewStoreService(s, repos.Orders, repos.Pets, repos.Inventory),
		Users: NewUserService(s, repos.Users),
	}, nil
}
