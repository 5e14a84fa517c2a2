package offers

import (
	"errors"
	"time"
)

// ErrOfferNotFound is returned when an offer id resolves to nothing, or when
// an accept races with another request and loses.
var ErrOfferNotFound = errors.New("offers: offer not found")

// Offer statuses.
const (
	StatusPending  = "pending"
	StatusAccepted = "accepted"
	StatusRejected = "rejected"
)

// Offer is one buyer's bid against a listing.
type Offer struct {
	ID          string    `json:"id"`
	ListingID   string    `json:"listing_id"`
	BuyerName   string    `json:"buyer_name"`
	BuyerPhone  string    `json:"buyer_phone"`
	PricePerKg  float64   `json:"price_per_kg"`
	TotalAmount float64   `json:"total_amount"`
	PickupTime  string    `json:"pickup_time"`
	Message     string    `json:"message"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"created_at"`
}
