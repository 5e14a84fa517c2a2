package farmers

import (
	"errors"
	"time"
)

// ErrFarmerNotFound is returned when no farmer exists for a phone number.
var ErrFarmerNotFound = errors.New("farmers: farmer not found")

// Farmer is a registered seller, keyed by canonical phone number.
type Farmer struct {
	ID          string    `json:"id"`
	Phone       string    `json:"phone"`
	Name        string    `json:"name"`
	FullAddress string    `json:"full_address"`
	Location    string    `json:"location"`
	Pincode     string    `json:"pincode"`
	Latitude    float64   `json:"latitude"`
	Longitude   float64   `json:"longitude"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Update carries a partial profile change. Nil fields are left untouched.
type Update struct {
	Name        *string
	FullAddress *string
	Location    *string
	Pincode     *string
	Latitude    *float64
	Longitude   *float64
}

// IsEmpty reports whether the update would change nothing.
func (u Update) IsEmpty() bool {
	return u.Name == nil && u.FullAddress == nil && u.Location == nil &&
		u.Pincode == nil && u.Latitude == nil && u.Longitude == nil
}
