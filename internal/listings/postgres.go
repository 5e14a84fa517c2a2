package listings

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/farmfast/platform/internal/grading"
)

// PostgresRepository persists listings to PostgreSQL.
type PostgresRepository struct {
	db *sql.DB
}

// NewPostgresRepository creates a new Postgres-backed repository.
func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

var _ Repository = (*PostgresRepository)(nil)

const listingColumns = `id, farmer_phone, crop_type, quality_grade, quantity_kg,
	location, full_address, pincode, latitude, longitude,
	price_range_min, price_range_max, shelf_life_days, image_url,
	hindi_summary, confidence_score, quality_factors, status, created_at, updated_at`

func (r *PostgresRepository) Create(ctx context.Context, listing *Listing) (*Listing, error) {
	if listing.ID == "" {
		listing.ID = uuid.NewString()
	}
	if listing.Status == "" {
		listing.Status = StatusActive
	}
	now := time.Now().UTC()
	listing.CreatedAt = now
	listing.UpdatedAt = now

	factors, err := json.Marshal(listing.QualityFactors)
	if err != nil {
		return nil, fmt.Errorf("listings: marshal quality factors: %w", err)
	}

	_, err = r.db.ExecContext(ctx, `
		INSERT INTO listings (
			id, farmer_phone, crop_type, quality_grade, quantity_kg,
			location, full_address, pincode, latitude, longitude,
			price_range_min, price_range_max, shelf_life_days, image_url,
			hindi_summary, confidence_score, quality_factors, status, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $19)
	`, listing.ID, listing.FarmerPhone, listing.CropType, listing.QualityGrade, listing.QuantityKg,
		listing.Location, listing.FullAddress, listing.Pincode, listing.Latitude, listing.Longitude,
		listing.PriceRangeMin, listing.PriceRangeMax, listing.ShelfLifeDays, listing.ImageURL,
		listing.HindiSummary, listing.ConfidenceScore, factors, listing.Status, now,
	)
	if err != nil {
		return nil, fmt.Errorf("listings: create: %w", err)
	}

	copied := *listing
	return &copied, nil
}

func (r *PostgresRepository) Get(ctx context.Context, id string) (*Listing, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+listingColumns+` FROM listings WHERE id = $1`, id)
	listing, err := scanListing(row)
	if err == sql.ErrNoRows {
		return nil, ErrListingNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("listings: get: %w", err)
	}
	return listing, nil
}

func (r *PostgresRepository) SetQuantity(ctx context.Context, id string, quantityKg int) error {
	return r.update(ctx, id, `quantity_kg = $2`, quantityKg)
}

func (r *PostgresRepository) SetLocation(ctx context.Context, id, pincode string, latitude, longitude float64, displayName string) error {
	return r.update(ctx, id, `pincode = $2, latitude = $3, longitude = $4, location = $5`,
		pincode, latitude, longitude, displayName)
}

func (r *PostgresRepository) SetStatus(ctx context.Context, id, status string) error {
	return r.update(ctx, id, `status = $2`, status)
}

func (r *PostgresRepository) update(ctx context.Context, id, set string, args ...any) error {
	query := fmt.Sprintf(`UPDATE listings SET %s, updated_at = NOW() WHERE id = $1`, set)
	result, err := r.db.ExecContext(ctx, query, append([]any{id}, args...)...)
	if err != nil {
		return fmt.Errorf("listings: update: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("listings: update result: %w", err)
	}
	if affected == 0 {
		return ErrListingNotFound
	}
	return nil
}

func (r *PostgresRepository) ListActive(ctx context.Context, limit int) ([]Listing, error) {
	query := `SELECT ` + listingColumns + ` FROM listings WHERE status = $1 ORDER BY created_at DESC`
	args := []any{StatusActive}
	if limit > 0 {
		query += ` LIMIT $2`
		args = append(args, limit)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listings: list active: %w", err)
	}
	defer rows.Close()

	var out []Listing
	for rows.Next() {
		listing, err := scanListing(rows)
		if err != nil {
			return nil, fmt.Errorf("listings: scan: %w", err)
		}
		out = append(out, *listing)
	}
	return out, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanListing(row rowScanner) (*Listing, error) {
	var listing Listing
	var factors []byte
	err := row.Scan(
		&listing.ID, &listing.FarmerPhone, &listing.CropType, &listing.QualityGrade, &listing.QuantityKg,
		&listing.Location, &listing.FullAddress, &listing.Pincode, &listing.Latitude, &listing.Longitude,
		&listing.PriceRangeMin, &listing.PriceRangeMax, &listing.ShelfLifeDays, &listing.ImageURL,
		&listing.HindiSummary, &listing.ConfidenceScore, &factors, &listing.Status,
		&listing.CreatedAt, &listing.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if len(factors) > 0 {
		var qf grading.QualityFactors
		if err := json.Unmarshal(factors, &qf); err == nil {
			listing.QualityFactors = qf
		}
	}
	return &listing, nil
}
