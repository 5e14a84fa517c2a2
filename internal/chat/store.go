package chat

import (
	"context"
	"errors"
	"sync"
	"time"
)

// ErrSessionNotFound is returned when no session exists for a phone number.
var ErrSessionNotFound = errors.New("chat: session not found")

// ErrStateConflict is returned by UpdateIfState when the session is no
// longer in the expected state. Callers use it to lose races gracefully:
// two webhook deliveries for the same phone may both try to accept an offer,
// only the first transition wins.
var ErrStateConflict = errors.New("chat: session state conflict")

// SessionUpdate is a partial update. Nil fields are left untouched; the
// Clear flags null a field out explicitly.
type SessionUpdate struct {
	State            *State
	FarmerName       *string
	TempFullAddress  *string
	ClearTempAddress bool
	CurrentListingID *string
	ClearListing     bool
	LastMessageAt    time.Time
}

// SessionStore persists conversation sessions.
type SessionStore interface {
	Get(ctx context.Context, farmerPhone string) (*Session, error)
	Create(ctx context.Context, session *Session) (*Session, error)
	Update(ctx context.Context, farmerPhone string, update SessionUpdate) (*Session, error)
	// UpdateIfState applies the update only while the session is still in
	// expected; otherwise it returns ErrStateConflict and changes nothing.
	UpdateIfState(ctx context.Context, farmerPhone string, expected State, update SessionUpdate) (*Session, error)
}

// InMemorySessionStore is a SessionStore for tests and local runs.
type InMemorySessionStore struct {
	mu       sync.RWMutex
	sessions map[string]*Session
}

func NewInMemorySessionStore() *InMemorySessionStore {
	return &InMemorySessionStore{sessions: make(map[string]*Session)}
}

var _ SessionStore = (*InMemorySessionStore)(nil)

func (s *InMemorySessionStore) Get(ctx context.Context, farmerPhone string) (*Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	session, ok := s.sessions[farmerPhone]
	if !ok {
		return nil, ErrSessionNotFound
	}
	copied := *session
	return &copied, nil
}

func (s *InMemorySessionStore) Create(ctx context.Context, session *Session) (*Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	copied := *session
	if copied.CreatedAt.IsZero() {
		copied.CreatedAt = time.Now().UTC()
	}
	s.sessions[copied.FarmerPhone] = &copied
	out := copied
	return &out, nil
}

func (s *InMemorySessionStore) Update(ctx context.Context, farmerPhone string, update SessionUpdate) (*Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.applyLocked(farmerPhone, update)
}

func (s *InMemorySessionStore) UpdateIfState(ctx context.Context, farmerPhone string, expected State, update SessionUpdate) (*Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	session, ok := s.sessions[farmerPhone]
	if !ok {
		return nil, ErrSessionNotFound
	}
	if session.State != expected {
		return nil, ErrStateConflict
	}
	return s.applyLocked(farmerPhone, update)
}

func (s *InMemorySessionStore) applyLocked(farmerPhone string, update SessionUpdate) (*Session, error) {
	session, ok := s.sessions[farmerPhone]
	if !ok {
		return nil, ErrSessionNotFound
	}
	if update.State != nil {
		session.State = *update.State
	}
	if update.FarmerName != nil {
		session.FarmerName = *update.FarmerName
	}
	if update.TempFullAddress != nil {
		session.TempFullAddress = *update.TempFullAddress
	}
	if update.ClearTempAddress {
		session.TempFullAddress = ""
	}
	if update.CurrentListingID != nil {
		session.CurrentListingID = *update.CurrentListingID
	}
	if update.ClearListing {
		session.CurrentListingID = ""
	}
	if !update.LastMessageAt.IsZero() {
		session.LastMessageAt = update.LastMessageAt
	}
	copied := *session
	return &copied, nil
}
