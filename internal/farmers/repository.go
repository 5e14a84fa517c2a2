package farmers

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Repository defines the interface for farmer storage.
type Repository interface {
	GetByPhone(ctx context.Context, phone string) (*Farmer, error)
	// Upsert creates the farmer or replaces the profile fields of an existing
	// row with the same phone. It is safe to call repeatedly with the same
	// payload (webhook redeliveries).
	Upsert(ctx context.Context, farmer *Farmer) (*Farmer, error)
	Update(ctx context.Context, phone string, update Update) error
}

// InMemoryRepository is an in-memory Repository used in tests and local runs.
type InMemoryRepository struct {
	mu      sync.RWMutex
	byPhone map[string]*Farmer
}

// NewInMemoryRepository creates a new in-memory repository
func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{byPhone: make(map[string]*Farmer)}
}

func (r *InMemoryRepository) GetByPhone(ctx context.Context, phone string) (*Farmer, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	farmer, ok := r.byPhone[phone]
	if !ok {
		return nil, ErrFarmerNotFound
	}
	copied := *farmer
	return &copied, nil
}

func (r *InMemoryRepository) Upsert(ctx context.Context, farmer *Farmer) (*Farmer, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now().UTC()
	existing, ok := r.byPhone[farmer.Phone]
	if ok {
		farmer.ID = existing.ID
		farmer.CreatedAt = existing.CreatedAt
	} else {
		farmer.ID = uuid.NewString()
		farmer.CreatedAt = now
	}
	farmer.UpdatedAt = now

	copied := *farmer
	r.byPhone[farmer.Phone] = &copied
	result := copied
	return &result, nil
}

func (r *InMemoryRepository) Update(ctx context.Context, phone string, update Update) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	farmer, ok := r.byPhone[phone]
	if !ok {
		return ErrFarmerNotFound
	}
	if update.Name != nil {
		farmer.Name = *update.Name
	}
	if update.FullAddress != nil {
		farmer.FullAddress = *update.FullAddress
	}
	if update.Location != nil {
		farmer.Location = *update.Location
	}
	if update.Pincode != nil {
		farmer.Pincode = *update.Pincode
	}
	if update.Latitude != nil {
		farmer.Latitude = *update.Latitude
	}
	if update.Longitude != nil {
		farmer.Longitude = *update.Longitude
	}
	farmer.UpdatedAt = time.Now().UTC()
	return nil
}
