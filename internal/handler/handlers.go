package handler

import (
	"github.com/pawmart/petstore/internal/server"
	"github.com/pawmart/petstore/internal/service"
)

// Handlers is the container that groups all HTTP handlers. Router
// setup takes this one object instead of a parameter per handler.
type Handlers struct {
	Pet     *PetHandler
	Store   *StoreHandler
	User    *UserHandler
	Health  *HealthHandler
	OpenAPI *OpenAPIHandler
}

// NewHandlers constructs the handler container on top of the service
// container.
func NewHandlers(s *server.Server, services *service.Services) *Handlers {
	return &Handlers{
		Pet:     NewPetHandler(s, services.Pets),
		Store:   NewStoreHandler(s, services.Store),
		User:    NewUserHandler(s, services.Users),
		Health:  NewHealthHandler(s),
		OpenAPI: NewOpenAPIHandler(s),
	}
}
