// Package buyers exposes the small slice of buyer data the WhatsApp flow
// needs: how many prospective buyers could pick up a freshly listed batch.
package buyers

import (
	"context"
	"database/sql"
	"fmt"
	"sync"
)

// Buyer is a registered produce buyer with an optional pickup location.
type Buyer struct {
	ID        string
	Name      string
	Phone     string
	Latitude  float64
	Longitude float64
}

// Repository defines the interface for buyer reachability lookups.
type Repository interface {
	// CountReachable returns the number of buyers that could plausibly reach
	// a listing at the given coordinates. A zero count is not an error; the
	// caller falls back to generic wording.
	CountReachable(ctx context.Context, latitude, longitude float64) (int, error)
}

// PostgresRepository counts buyers in PostgreSQL.
type PostgresRepository struct {
	db *sql.DB
}

// NewPostgresRepository creates a new Postgres-backed repository.
func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

var _ Repository = (*PostgresRepository)(nil)

// CountReachable counts buyers that have registered a pickup location.
// TODO: filter by distance to the listing once buyer coverage justifies it;
// the coordinates are already threaded through for that.
func (r *PostgresRepository) CountReachable(ctx context.Context, latitude, longitude float64) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx, `
		SELECT COUNT(*) FROM buyers
		WHERE latitude IS NOT NULL AND longitude IS NOT NULL
	`).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("buyers: count reachable: %w", err)
	}
	return count, nil
}

// InMemoryRepository is an in-memory Repository used in tests.
type InMemoryRepository struct {
	mu     sync.RWMutex
	buyers []Buyer
}

// NewInMemoryRepository creates a new in-memory repository
func NewInMemoryRepository(buyers ...Buyer) *InMemoryRepository {
	return &InMemoryRepository{buyers: buyers}
}

func (r *InMemoryRepository) CountReachable(ctx context.Context, latitude, longitude float64) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	count := 0
	for _, b := range r.buyers {
		if b.Latitude != 0 || b.Longitude != 0 {
			count++
		}
	}
	return count, nil
}
