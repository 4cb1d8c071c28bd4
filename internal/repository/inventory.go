package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/pawmart/petstore/internal/server"
	"github.com/rs/zerolog"
)

// InventoryRepository owns the per-status counter table.
//
// The counters are maintained incrementally on every pet status
// transition, never recomputed from the pets table.
type InventoryRepository struct {
	pool *pgxpool.Pool
	log  *zerolog.Logger
}

// NewInventoryRepository constructs an InventoryRepository from the app container.
func NewInventoryRepository(s *server.Server) *InventoryRepository {
	return &InventoryRepository{
		pool: s.DB.Pool,
		log:  s.Logger,
	}
}

// All returns the status -> count mapping for every known status.
func (r *InventoryRepository) All(ctx context.Context) (map[string]int64, error) {
	rows, err := r.pool.Query(ctx, `SELECT status, count FROM inventory`)
	if err != nil {
		return nil, fmt.Errorf("selecting inventory: %w", err)
	}
	defer rows.Close()

	counts := make(map[string]int64)
	for rows.Next() {
		var status string
		var count int64
		if err := rows.Scan(&status, &count); err != nil {
			return nil, fmt.Errorf("scanning inventory row: %w", err)
		}
		counts[status] = count
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating inventory: %w", err)
	}
	return counts, nil
}

// Increment bumps the counter for a status, creating the bucket at 1
// when it does not exist yet (insert-or-increment upsert).
func (r *InventoryRepository) Increment(ctx context.Context, status string) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO inventory (status, count) VALUES ($1, 1)
		ON CONFLICT (status) DO UPDATE SET count = inventory.count + 1`, status)
	if err != nil {
		return fmt.Errorf("incrementing inventory: %w", err)
	}
	return nil
}

// Decrement lowers the counter for a status. A missing or already
// empty bucket is a no-op rather than an error: counts never go
// negative even when the best-effort bookkeeping has drifted.
func (r *InventoryRepository) Decrement(ctx context.Context, status string) error {
	_, err := r.pool.Exec(ctx, `
		UPDATE inventory SET count = count - 1 WHERE status = $1 AND count > 0`, status)
	if err != nil {
		return fmt.Errorf("decrementing inventory: %w", err)
	}
	return nil
}
