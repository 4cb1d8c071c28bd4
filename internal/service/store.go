package service

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/pawmart/petstore/internal/errs"
	"github.com/pawmart/petstore/internal/model"
	"github.com/pawmart/petstore/internal/server"
	"github.com/rs/zerolog"
)

// OrderStore is the persistence surface StoreService needs.
type OrderStore interface {
	NextID(ctx context.Context) (int64, error)
	Insert(ctx context.Context, order *model.Order) error
	GetByID(ctx context.Context, id int64) (*model.Order, error)
	Delete(ctx context.Context, id int64) error
}

// PetChecker is the slice of the pet store used to verify that an
// order references an existing pet.
type PetChecker interface {
	GetStatus(ctx context.Context, id int64) (model.PetStatus, error)
}

// StoreService implements the store operations: the inventory report
// and order placement/lookup/deletion, including the legacy order-id
// validity ranges this API has always enforced.
type StoreService struct {
	orders    OrderStore
	pets      PetChecker
	inventory InventoryStore
	log       *zerolog.Logger
}

// NewStoreService constructs a StoreService.
func NewStoreService(s *server.Server, orders OrderStore, pets PetChecker, inventory InventoryStore) *StoreService {
	return &StoreService{
		orders:    orders,
		pets:      pets,
		inventory: inventory,
		log:       s.Logger,
	}
}

// Inventory returns the status -> count mapping.
func (s *StoreService) Inventory(ctx context.Context) (map[string]int64, error) {
	return s.inventory.All(ctx)
}

// PlaceOrder stores a new order for an existing pet.
//
// Defaults: id = max+1 when absent, quantity 1, status "placed",
// shipDate now (ISO-8601). The submitted order is returned as-is.
func (s *StoreService) PlaceOrder(ctx context.Context, order *model.Order) (*model.Order, error) {
	if _, err := s.pets.GetStatus(ctx, order.PetID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, errs.NewNotFoundError("Pet not found")
		}
		return nil, err
	}

	if order.ID == 0 {
		id, err := s.orders.NextID(ctx)
		if err != nil {
			return nil, err
		}
		order.ID = id
	}
	if order.Quantity == 0 {
		order.Quantity = 1
	}
	if order.Status == "" {
		order.Status = model.OrderStatusPlaced
	}
	if order.ShipDate == "" {
		order.ShipDate = time.Now().UTC().Format(time.RFC3339)
	}

	if err := s.orders.Insert(ctx, order); err != nil {
		return nil, err
	}

	s.log.Info().Int64("order_id", order.ID).Int64("pet_id", order.PetID).Msg("order placed")
	return order, nil
}

// GetOrder fetches an order by id.
//
// Ids in the open-closed range (5, 10] are rejected as invalid before
// any lookup. This is a preserved legacy business rule inherited from
// the reference API, not a bug; ids 1..5 and above 10 are eligible for
// normal lookup.
func (s *StoreService) GetOrder(ctx context.Context, id int64) (*model.Order, error) {
	if id > 5 && id <= 10 {
		return nil, errs.NewBadRequestError("Invalid ID supplied", nil)
	}

	order, err := s.orders.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, errs.NewNotFoundError("Order not found")
		}
		return nil, err
	}
	return order, nil
}

// DeleteOrder removes an order by id.
//
// Ids of 1000 and above are rejected as invalid before any lookup;
// another preserved legacy rule.
func (s *StoreService) DeleteOrder(ctx context.Context, id int64) error {
	if id >= 1000 {
		return errs.NewBadRequestError("Invalid ID supplied", nil)
	}

	if err := s.orders.Delete(ctx, id); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return errs.NewNotFoundError("Order not found")
		}
		return err
	}

	s.log.Info().Int64("order_id", id).Msg("order deleted")
	return nil
}
