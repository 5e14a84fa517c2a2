package offers

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var offerColumns = []string{
	"id", "listing_id", "buyer_name", "buyer_phone",
	"price_per_kg", "total_amount", "pickup_time", "message", "status", "created_at",
}

func TestPostgresCreateDefaults(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewPostgresRepository(db)

	mock.ExpectExec("INSERT INTO offers").
		WillReturnResult(sqlmock.NewResult(0, 1))

	created, err := repo.Create(context.Background(), &Offer{
		ListingID:  "listing-1",
		BuyerName:  "Wholesale Hub",
		PricePerKg: 22,
	})
	require.NoError(t, err)
	assert.NotEmpty(t, created.ID)
	assert.Equal(t, StatusPending, created.Status)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresListPendingOrdersByPrice(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewPostgresRepository(db)
	now := time.Now()

	mock.ExpectQuery("SELECT (.+) FROM offers").
		WithArgs("listing-1", StatusPending).
		WillReturnRows(sqlmock.NewRows(offerColumns).
			AddRow("o1", "listing-1", "A", "+911111111111", 25.0, 12500.0, "कल सुबह", "", StatusPending, now).
			AddRow("o2", "listing-1", "B", "+912222222222", 22.0, 11000.0, "", "", StatusPending, now))

	pending, err := repo.ListPending(context.Background(), "listing-1")
	require.NoError(t, err)
	require.Len(t, pending, 2)
	assert.Equal(t, "o1", pending[0].ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresListByListingReturnsAllStatuses(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewPostgresRepository(db)
	now := time.Now()

	mock.ExpectQuery("SELECT (.+) FROM offers").
		WithArgs("listing-1").
		WillReturnRows(sqlmock.NewRows(offerColumns).
			AddRow("o1", "listing-1", "A", "+911111111111", 25.0, 12500.0, "", "", StatusAccepted, now).
			AddRow("o2", "listing-1", "B", "+912222222222", 22.0, 11000.0, "", "", StatusRejected, now))

	all, err := repo.ListByListing(context.Background(), "listing-1")
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, StatusAccepted, all[0].Status)
	assert.Equal(t, StatusRejected, all[1].Status)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresAcceptRejectsSiblings(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewPostgresRepository(db)

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT id FROM offers").
		WithArgs("listing-1", StatusPending).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow("o1").AddRow("o2").AddRow("o3"))
	mock.ExpectExec("UPDATE offers SET status").
		WithArgs(StatusAccepted, "o2").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("UPDATE offers SET status").
		WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectCommit()

	err = repo.Accept(context.Background(), "listing-1", "o2")
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresAcceptUnknownOffer(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewPostgresRepository(db)

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT id FROM offers").
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow("o1"))
	mock.ExpectRollback()

	err = repo.Accept(context.Background(), "listing-1", "missing")
	assert.ErrorIs(t, err, ErrOfferNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresCountForListing(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewPostgresRepository(db)

	mock.ExpectQuery("SELECT COUNT").
		WithArgs("listing-1").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(3))

	count, err := repo.CountForListing(context.Background(), "listing-1")
	require.NoError(t, err)
	assert.Equal(t, 3, count)
}
