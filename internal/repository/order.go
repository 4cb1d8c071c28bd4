package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/pawmart/petstore/internal/model"
	"github.com/pawmart/petstore/internal/server"
	"github.com/rs/zerolog"
)

// OrderRepository owns the orders table.
type OrderRepository struct {
	pool *pgxpool.Pool
	log  *zerolog.Logger
}

// NewOrderRepository constructs an OrderRepository from the app container.
func NewOrderRepository(s *server.Server) *OrderRepository {
	return &OrderRepository{
		pool: s.DB.Pool,
		log:  s.Logger,
	}
}

// NextID returns max(id)+1 over the orders table.
func (r *OrderRepository) NextID(ctx context.Context) (int64, error) {
	var id int64
	err := r.pool.QueryRow(ctx, `SELECT COALESCE(MAX(id), 0) + 1 FROM orders`).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("selecting next order id: %w", err)
	}
	return id, nil
}

// Insert writes a new order row.
func (r *OrderRepository) Insert(ctx context.Context, order *model.Order) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO orders (id, pet_id, quantity, ship_date, status, complete)
		VALUES ($1, $2, $3, $4, $5, $6)`,
		order.ID, order.PetID, order.Quantity, order.ShipDate, order.Status, order.Complete)
	if err != nil {
		return fmt.Errorf("inserting order: %w", err)
	}
	return nil
}

// GetByID fetches an order. pgx.ErrNoRows is passed through (wrapped)
// when the order is unknown.
func (r *OrderRepository) GetByID(ctx context.Context, id int64) (*model.Order, error) {
	var order model.Order
	var shipDate *string

	err := r.pool.QueryRow(ctx, `
		SELECT id, pet_id, quantity, ship_date, status, complete
		FROM orders WHERE id = $1`, id).
		Scan(&order.ID, &order.PetID, &order.Quantity, &shipDate, &order.Status, &order.Complete)
	if err != nil {
		return nil, fmt.Errorf("selecting order: %w", err)
	}

	if shipDate != nil {
		order.ShipDate = *shipDate
	}
	return &order, nil
}

// Delete removes an order. Deleting an unknown id reports
// pgx.ErrNoRows so callers can map it to a 404.
func (r *OrderRepository) Delete(ctx context.Context, id int64) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM orders WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("deleting order: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("deleting order: %w", pgx.ErrNoRows)
	}
	return nil
}
