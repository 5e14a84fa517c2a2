package offers

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

// PostgresRepository persists offers to PostgreSQL.
type PostgresRepository struct {
	db *sql.DB
}

// NewPostgresRepository creates a new Postgres-backed repository.
func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

var _ Repository = (*PostgresRepository)(nil)

func (r *PostgresRepository) Create(ctx context.Context, offer *Offer) (*Offer, error) {
	if offer.ID == "" {
		offer.ID = uuid.NewString()
	}
	if offer.Status == "" {
		offer.Status = StatusPending
	}
	offer.CreatedAt = time.Now().UTC()

	_, err := r.db.ExecContext(ctx, `
		INSERT INTO offers (id, listing_id, buyer_name, buyer_phone, price_per_kg, total_amount, pickup_time, message, status, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`, offer.ID, offer.ListingID, offer.BuyerName, offer.BuyerPhone, offer.PricePerKg,
		offer.TotalAmount, offer.PickupTime, offer.Message, offer.Status, offer.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("offers: create: %w", err)
	}

	copied := *offer
	return &copied, nil
}

func (r *PostgresRepository) ListPending(ctx context.Context, listingID string) ([]Offer, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, listing_id, buyer_name, buyer_phone, price_per_kg, total_amount, pickup_time, message, status, created_at
		FROM offers
		WHERE listing_id = $1 AND status = $2
		ORDER BY price_per_kg DESC, created_at ASC
	`, listingID, StatusPending)
	if err != nil {
		return nil, fmt.Errorf("offers: list pending: %w", err)
	}
	defer rows.Close()

	var out []Offer
	for rows.Next() {
		var offer Offer
		err := rows.Scan(
			&offer.ID, &offer.ListingID, &offer.BuyerName, &offer.BuyerPhone,
			&offer.PricePerKg, &offer.TotalAmount, &offer.PickupTime, &offer.Message,
			&offer.Status, &offer.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("offers: scan: %w", err)
		}
		out = append(out, offer)
	}
	return out, rows.Err()
}

func (r *PostgresRepository) ListByListing(ctx context.Context, listingID string) ([]Offer, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, listing_id, buyer_name, buyer_phone, price_per_kg, total_amount, pickup_time, message, status, created_at
		FROM offers
		WHERE listing_id = $1
		ORDER BY price_per_kg DESC, created_at ASC
	`, listingID)
	if err != nil {
		return nil, fmt.Errorf("offers: list by listing: %w", err)
	}
	defer rows.Close()

	var out []Offer
	for rows.Next() {
		var offer Offer
		err := rows.Scan(
			&offer.ID, &offer.ListingID, &offer.BuyerName, &offer.BuyerPhone,
			&offer.PricePerKg, &offer.TotalAmount, &offer.PickupTime, &offer.Message,
			&offer.Status, &offer.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("offers: scan: %w", err)
		}
		out = append(out, offer)
	}
	return out, rows.Err()
}

func (r *PostgresRepository) CountForListing(ctx context.Context, listingID string) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM offers WHERE listing_id = $1`, listingID,
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("offers: count: %w", err)
	}
	return count, nil
}

// Accept runs the accept+reject pair in one transaction so a listing can
// never end up with two accepted offers or a half-rejected set.
func (r *PostgresRepository) Accept(ctx context.Context, listingID, offerID string) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("offers: begin accept: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	rows, err := tx.QueryContext(ctx,
		`SELECT id FROM offers WHERE listing_id = $1 AND status = $2 FOR UPDATE`,
		listingID, StatusPending,
	)
	if err != nil {
		return fmt.Errorf("offers: lock pending: %w", err)
	}
	var siblings []string
	found := false
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			rows.Close()
			return fmt.Errorf("offers: scan pending: %w", err)
		}
		if id == offerID {
			found = true
		} else {
			siblings = append(siblings, id)
		}
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return fmt.Errorf("offers: iterate pending: %w", err)
	}
	if !found {
		return ErrOfferNotFound
	}

	if _, err := tx.ExecContext(ctx,
		`UPDATE offers SET status = $1 WHERE id = $2`, StatusAccepted, offerID,
	); err != nil {
		return fmt.Errorf("offers: accept: %w", err)
	}

	if len(siblings) > 0 {
		if _, err := tx.ExecContext(ctx,
			`UPDATE offers SET status = $1 WHERE id = ANY($2)`, StatusRejected, pq.Array(siblings),
		); err != nil {
			return fmt.Errorf("offers: reject siblings: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("offers: commit accept: %w", err)
	}
	return nil
}
