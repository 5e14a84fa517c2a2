package listings

import (
	"errors"
	"time"

	"github.com/farmfast/platform/internal/grading"
)

// ErrListingNotFound is returned when a listing id resolves to nothing.
var ErrListingNotFound = errors.New("listings: listing not found")

// Listing statuses.
const (
	StatusActive  = "active"
	StatusSold    = "sold"
	StatusExpired = "expired"
)

// Listing is one produce batch offered for sale. It is created the moment a
// graded image arrives; quantity and location are filled in by later
// conversation steps.
type Listing struct {
	ID              string                 `json:"id"`
	FarmerPhone     string                 `json:"farmer_phone"`
	CropType        string                 `json:"crop_type"`
	QualityGrade    string                 `json:"quality_grade"`
	QuantityKg      int                    `json:"quantity_kg"`
	Location        string                 `json:"location"`
	FullAddress     string                 `json:"full_address"`
	Pincode         string                 `json:"pincode"`
	Latitude        float64                `json:"latitude"`
	Longitude       float64                `json:"longitude"`
	PriceRangeMin   float64                `json:"price_range_min"`
	PriceRangeMax   float64                `json:"price_range_max"`
	ShelfLifeDays   int                    `json:"shelf_life_days"`
	ImageURL        string                 `json:"image_url"`
	HindiSummary    string                 `json:"hindi_summary"`
	ConfidenceScore float64                `json:"confidence_score"`
	QualityFactors  grading.QualityFactors `json:"quality_factors"`
	Status          string                 `json:"status"`
	CreatedAt       time.Time              `json:"created_at"`
	UpdatedAt       time.Time              `json:"updated_at"`
}
