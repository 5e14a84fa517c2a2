// Package chat implements the WhatsApp conversational state machine that
// carries a farmer from first contact through registration, listing creation,
// and offer negotiation. All cross-message state lives in the session record;
// the engine itself is stateless and safe to run on many replicas.
package chat

import (
	"time"
)

// State is a session's position in the conversation.
type State string

const (
	// Registration flow.
	StateAwaitingName            State = "awaiting_name"
	StateAwaitingFullAddress     State = "awaiting_full_address"
	StateAwaitingInitialLocation State = "awaiting_initial_location"

	// Selling flow.
	StateIdle             State = "idle"
	StateAwaitingLocation State = "awaiting_location"
	StateAwaitingQuantity State = "awaiting_quantity"
	StateListingActive    State = "listing_active"
	StateReviewingOffers  State = "reviewing_offers"
	StateAwaitingHandover State = "awaiting_handover_confirmation"
)

// Steady reports whether the state is allowed to persist indefinitely.
// A farmer with an active listing must not be silently reset just because
// offers took more than a day to arrive.
func (s State) Steady() bool {
	return s == StateIdle || s == StateListingActive
}

// RegistrationStep reports whether the state is part of the onboarding flow.
func (s State) RegistrationStep() bool {
	switch s {
	case StateAwaitingName, StateAwaitingFullAddress, StateAwaitingInitialLocation:
		return true
	}
	return false
}

// Session is the per-phone conversation record. One row per farmer phone;
// created on first contact, reset in place when stale, never deleted by the
// conversation engine itself.
type Session struct {
	FarmerPhone      string    `json:"farmer_phone"`
	State            State     `json:"conversation_state"`
	FarmerName       string    `json:"farmer_name,omitempty"`
	TempFullAddress  string    `json:"temp_full_address,omitempty"`
	CurrentListingID string    `json:"current_listing_id,omitempty"`
	LastMessageAt    time.Time `json:"last_message_at"`
	CreatedAt        time.Time `json:"created_at"`
}

// Stale reports whether the session has sat in a non-steady state longer
// than the threshold.
func (s *Session) Stale(now time.Time, threshold time.Duration) bool {
	if s.LastMessageAt.IsZero() {
		return false
	}
	if s.State.Steady() {
		return false
	}
	return now.Sub(s.LastMessageAt) > threshold
}
