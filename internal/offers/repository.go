package offers

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Repository defines the interface for offer storage.
type Repository interface {
	Create(ctx context.Context, offer *Offer) (*Offer, error)
	// ListPending returns pending offers for a listing ordered by
	// price_per_kg descending. The ordering is part of the conversational
	// contract: "accept the first one" means the highest price.
	ListPending(ctx context.Context, listingID string) ([]Offer, error)
	// ListByListing returns every offer for a listing regardless of status,
	// ordered by price_per_kg descending. The read API uses it so a buyer
	// polling after an accept still sees their offer with its final status.
	ListByListing(ctx context.Context, listingID string) ([]Offer, error)
	CountForListing(ctx context.Context, listingID string) (int, error)
	// Accept marks the given offer accepted and every other pending offer on
	// the same listing rejected. Both updates happen together.
	Accept(ctx context.Context, listingID, offerID string) error
}

// InMemoryRepository is an in-memory Repository used in tests and local runs.
type InMemoryRepository struct {
	mu   sync.RWMutex
	byID map[string]*Offer
}

// NewInMemoryRepository creates a new in-memory repository
func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{byID: make(map[string]*Offer)}
}

func (r *InMemoryRepository) Create(ctx context.Context, offer *Offer) (*Offer, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if offer.ID == "" {
		offer.ID = uuid.NewString()
	}
	if offer.Status == "" {
		offer.Status = StatusPending
	}
	offer.CreatedAt = time.Now().UTC()

	copied := *offer
	r.byID[offer.ID] = &copied
	result := copied
	return &result, nil
}

func (r *InMemoryRepository) ListPending(ctx context.Context, listingID string) ([]Offer, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []Offer
	for _, offer := range r.byID {
		if offer.ListingID == listingID && offer.Status == StatusPending {
			out = append(out, *offer)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].PricePerKg > out[j].PricePerKg
	})
	return out, nil
}

func (r *InMemoryRepository) ListByListing(ctx context.Context, listingID string) ([]Offer, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []Offer
	for _, offer := range r.byID {
		if offer.ListingID == listingID {
			out = append(out, *offer)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].PricePerKg > out[j].PricePerKg
	})
	return out, nil
}

func (r *InMemoryRepository) CountForListing(ctx context.Context, listingID string) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	count := 0
	for _, offer := range r.byID {
		if offer.ListingID == listingID {
			count++
		}
	}
	return count, nil
}

func (r *InMemoryRepository) Accept(ctx context.Context, listingID, offerID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	selected, ok := r.byID[offerID]
	if !ok || selected.ListingID != listingID || selected.Status != StatusPending {
		return ErrOfferNotFound
	}

	selected.Status = StatusAccepted
	for _, offer := range r.byID {
		if offer.ListingID == listingID && offer.ID != offerID && offer.Status == StatusPending {
			offer.Status = StatusRejected
		}
	}
	return nil
}
