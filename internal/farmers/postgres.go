package farmers

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// PostgresRepository persists farmers to PostgreSQL.
type PostgresRepository struct {
	db *sql.DB
}

// NewPostgresRepository creates a new Postgres-backed repository.
func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

var _ Repository = (*PostgresRepository)(nil)

func (r *PostgresRepository) GetByPhone(ctx context.Context, phone string) (*Farmer, error) {
	var f Farmer
	err := r.db.QueryRowContext(ctx, `
		SELECT id, phone, name, full_address, location, pincode, latitude, longitude, created_at, updated_at
		FROM farmers
		WHERE phone = $1
	`, phone).Scan(
		&f.ID, &f.Phone, &f.Name, &f.FullAddress, &f.Location,
		&f.Pincode, &f.Latitude, &f.Longitude, &f.CreatedAt, &f.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, ErrFarmerNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("farmers: get by phone: %w", err)
	}
	return &f, nil
}

func (r *PostgresRepository) Upsert(ctx context.Context, farmer *Farmer) (*Farmer, error) {
	if farmer.ID == "" {
		farmer.ID = uuid.NewString()
	}
	now := time.Now().UTC()

	var f Farmer
	err := r.db.QueryRowContext(ctx, `
		INSERT INTO farmers (id, phone, name, full_address, location, pincode, latitude, longitude, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $9)
		ON CONFLICT (phone) DO UPDATE SET
			name = EXCLUDED.name,
			full_address = EXCLUDED.full_address,
			location = EXCLUDED.location,
			pincode = EXCLUDED.pincode,
			latitude = EXCLUDED.latitude,
			longitude = EXCLUDED.longitude,
			updated_at = EXCLUDED.updated_at
		RETURNING id, phone, name, full_address, location, pincode, latitude, longitude, created_at, updated_at
	`, farmer.ID, farmer.Phone, farmer.Name, farmer.FullAddress, farmer.Location,
		farmer.Pincode, farmer.Latitude, farmer.Longitude, now,
	).Scan(
		&f.ID, &f.Phone, &f.Name, &f.FullAddress, &f.Location,
		&f.Pincode, &f.Latitude, &f.Longitude, &f.CreatedAt, &f.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("farmers: upsert: %w", err)
	}
	return &f, nil
}

func (r *PostgresRepository) Update(ctx context.Context, phone string, update Update) error {
	if update.IsEmpty() {
		return nil
	}

	set := "updated_at = $1"
	args := []any{time.Now().UTC()}
	add := func(column string, value any) {
		args = append(args, value)
		set += fmt.Sprintf(", %s = $%d", column, len(args))
	}
	if update.Name != nil {
		add("name", *update.Name)
	}
	if update.FullAddress != nil {
		add("full_address", *update.FullAddress)
	}
	if update.Location != nil {
		add("location", *update.Location)
	}
	if update.Pincode != nil {
		add("pincode", *update.Pincode)
	}
	if update.Latitude != nil {
		add("latitude", *update.Latitude)
	}
	if update.Longitude != nil {
		add("longitude", *update.Longitude)
	}

	args = append(args, phone)
	query := fmt.Sprintf("UPDATE farmers SET %s WHERE phone = $%d", set, len(args))

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("farmers: update: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("farmers: update result: %w", err)
	}
	if affected == 0 {
		return ErrFarmerNotFound
	}
	return nil
}
