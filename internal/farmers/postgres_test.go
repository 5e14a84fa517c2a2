package farmers

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var farmerColumns = []string{
	"id", "phone", "name", "full_address", "location",
	"pincode", "latitude", "longitude", "created_at", "updated_at",
}

func TestPostgresGetByPhone(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewPostgresRepository(db)
	now := time.Now()

	mock.ExpectQuery("SELECT (.+) FROM farmers").
		WithArgs("+919876543210").
		WillReturnRows(sqlmock.NewRows(farmerColumns).
			AddRow("id-1", "+919876543210", "Ramesh Kumar", "Village Rampur, Dist Meerut", "Meerut, Uttar Pradesh", "250001", 28.98, 77.7, now, now))

	farmer, err := repo.GetByPhone(context.Background(), "+919876543210")
	require.NoError(t, err)
	assert.Equal(t, "Ramesh Kumar", farmer.Name)
	assert.Equal(t, "250001", farmer.Pincode)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresGetByPhoneNotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewPostgresRepository(db)

	mock.ExpectQuery("SELECT (.+) FROM farmers").
		WithArgs("+910000000000").
		WillReturnRows(sqlmock.NewRows(farmerColumns))

	_, err = repo.GetByPhone(context.Background(), "+910000000000")
	assert.ErrorIs(t, err, ErrFarmerNotFound)
}

func TestPostgresUpsertAssignsID(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewPostgresRepository(db)
	now := time.Now()

	mock.ExpectQuery("INSERT INTO farmers").
		WillReturnRows(sqlmock.NewRows(farmerColumns).
			AddRow("id-1", "+919876543210", "Ramesh Kumar", "Village Rampur, Dist Meerut", "Meerut, Uttar Pradesh", "250001", 28.98, 77.7, now, now))

	saved, err := repo.Upsert(context.Background(), &Farmer{
		Phone: "+919876543210",
		Name:  "Ramesh Kumar",
	})
	require.NoError(t, err)
	assert.Equal(t, "id-1", saved.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresUpdatePartial(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewPostgresRepository(db)
	name := "Suresh"

	mock.ExpectExec("UPDATE farmers SET updated_at = (.+), name = (.+) WHERE phone").
		WillReturnResult(sqlmock.NewResult(0, 1))

	err = repo.Update(context.Background(), "+919876543210", Update{Name: &name})
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresUpdateUnknownPhone(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewPostgresRepository(db)
	pincode := "110001"

	mock.ExpectExec("UPDATE farmers SET").
		WillReturnResult(sqlmock.NewResult(0, 0))

	err = repo.Update(context.Background(), "+910000000000", Update{Pincode: &pincode})
	assert.ErrorIs(t, err, ErrFarmerNotFound)
}

func TestPostgresUpdateEmptyIsNoop(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewPostgresRepository(db)
	assert.NoError(t, repo.Update(context.Background(), "+919876543210", Update{}))
	assert.NoError(t, mock.ExpectationsWereMet())
}
