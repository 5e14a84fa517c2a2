package listings

import (
	"context"
	"database/sql/driver"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var listingTestColumns = []string{
	"id", "farmer_phone", "crop_type", "quality_grade", "quantity_kg",
	"location", "full_address", "pincode", "latitude", "longitude",
	"price_range_min", "price_range_max", "shelf_life_days", "image_url",
	"hindi_summary", "confidence_score", "quality_factors", "status", "created_at", "updated_at",
}

func listingRow(id string, now time.Time) []driver.Value {
	return []driver.Value{
		id, "+919876543210", "Tomato", "A", 500,
		"Meerut, Uttar Pradesh", "", "250001", 28.98, 77.7,
		18.0, 25.0, 7, "https://example.com/tomato.jpg",
		"ताज़ा टमाटर", 0.92, []byte(`{"color":"deep red","surface":"smooth","uniformity":"even"}`), StatusActive, now, now,
	}
}

func TestPostgresCreateGeneratesID(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewPostgresRepository(db)

	mock.ExpectExec("INSERT INTO listings").
		WillReturnResult(sqlmock.NewResult(0, 1))

	created, err := repo.Create(context.Background(), &Listing{
		FarmerPhone: "+919876543210",
		CropType:    "Tomato",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, created.ID)
	assert.Equal(t, StatusActive, created.Status)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresGetUnmarshalsQualityFactors(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewPostgresRepository(db)
	now := time.Now()

	mock.ExpectQuery("SELECT (.+) FROM listings WHERE id").
		WithArgs("listing-1").
		WillReturnRows(sqlmock.NewRows(listingTestColumns).AddRow(listingRow("listing-1", now)...))

	listing, err := repo.Get(context.Background(), "listing-1")
	require.NoError(t, err)
	assert.Equal(t, "Tomato", listing.CropType)
	assert.Equal(t, "deep red", listing.QualityFactors.Color)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresGetNotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewPostgresRepository(db)

	mock.ExpectQuery("SELECT (.+) FROM listings WHERE id").
		WithArgs("missing").
		WillReturnRows(sqlmock.NewRows(listingTestColumns))

	_, err = repo.Get(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrListingNotFound)
}

func TestPostgresSetQuantity(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewPostgresRepository(db)

	mock.ExpectExec("UPDATE listings SET quantity_kg").
		WithArgs("listing-1", 500).
		WillReturnResult(sqlmock.NewResult(0, 1))

	assert.NoError(t, repo.SetQuantity(context.Background(), "listing-1", 500))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresSetStatusUnknownListing(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewPostgresRepository(db)

	mock.ExpectExec("UPDATE listings SET status").
		WillReturnResult(sqlmock.NewResult(0, 0))

	err = repo.SetStatus(context.Background(), "missing", StatusSold)
	assert.ErrorIs(t, err, ErrListingNotFound)
}

func TestPostgresListActiveAppliesLimit(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewPostgresRepository(db)
	now := time.Now()

	mock.ExpectQuery("SELECT (.+) FROM listings WHERE status").
		WithArgs(StatusActive, 10).
		WillReturnRows(sqlmock.NewRows(listingTestColumns).
			AddRow(listingRow("l1", now)...).
			AddRow(listingRow("l2", now)...))

	active, err := repo.ListActive(context.Background(), 10)
	require.NoError(t, err)
	assert.Len(t, active, 2)
	assert.NoError(t, mock.ExpectationsWereMet())
}
