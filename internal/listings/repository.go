package listings

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Repository defines the interface for listing storage.
type Repository interface {
	Create(ctx context.Context, listing *Listing) (*Listing, error)
	Get(ctx context.Context, id string) (*Listing, error)
	SetQuantity(ctx context.Context, id string, quantityKg int) error
	SetLocation(ctx context.Context, id, pincode string, latitude, longitude float64, displayName string) error
	SetStatus(ctx context.Context, id, status string) error
	ListActive(ctx context.Context, limit int) ([]Listing, error)
}

// InMemoryRepository is an in-memory Repository used in tests and local runs.
type InMemoryRepository struct {
	mu   sync.RWMutex
	byID map[string]*Listing
}

// NewInMemoryRepository creates a new in-memory repository
func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{byID: make(map[string]*Listing)}
}

func (r *InMemoryRepository) Create(ctx context.Context, listing *Listing) (*Listing, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now().UTC()
	if listing.ID == "" {
		listing.ID = uuid.NewString()
	}
	if listing.Status == "" {
		listing.Status = StatusActive
	}
	listing.CreatedAt = now
	listing.UpdatedAt = now

	copied := *listing
	r.byID[listing.ID] = &copied
	result := copied
	return &result, nil
}

func (r *InMemoryRepository) Get(ctx context.Context, id string) (*Listing, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	listing, ok := r.byID[id]
	if !ok {
		return nil, ErrListingNotFound
	}
	copied := *listing
	return &copied, nil
}

func (r *InMemoryRepository) SetQuantity(ctx context.Context, id string, quantityKg int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	listing, ok := r.byID[id]
	if !ok {
		return ErrListingNotFound
	}
	listing.QuantityKg = quantityKg
	listing.UpdatedAt = time.Now().UTC()
	return nil
}

func (r *InMemoryRepository) SetLocation(ctx context.Context, id, pincode string, latitude, longitude float64, displayName string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	listing, ok := r.byID[id]
	if !ok {
		return ErrListingNotFound
	}
	listing.Pincode = pincode
	listing.Latitude = latitude
	listing.Longitude = longitude
	listing.Location = displayName
	listing.UpdatedAt = time.Now().UTC()
	return nil
}

func (r *InMemoryRepository) SetStatus(ctx context.Context, id, status string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	listing, ok := r.byID[id]
	if !ok {
		return ErrListingNotFound
	}
	listing.Status = status
	listing.UpdatedAt = time.Now().UTC()
	return nil
}

func (r *InMemoryRepository) ListActive(ctx context.Context, limit int) ([]Listing, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []Listing
	for _, listing := range r.byID {
		if listing.Status != StatusActive {
			continue
		}
		out = append(out, *listing)
		if limit > 0 && len(out) >= limit {
			break
		}
	}
	return out, nil
}
