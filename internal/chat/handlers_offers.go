package chat

import (
	"context"
	"errors"
	"strconv"
	"strings"

	"github.com/farmfast/platform/internal/listings"
	"github.com/farmfast/platform/internal/offers"
)

func (e *Engine) handleOfferReview(ctx context.Context, t *turn) error {
	listing, err := e.currentListing(ctx, t)
	if listing == nil {
		return err
	}

	pending, err := e.deps.Offers.ListPending(ctx, listing.ID)
	if err != nil {
		return err
	}
	if len(pending) == 0 {
		e.send(ctx, t.from, msgNoPendingOffers)
		return nil
	}

	if equalsAny(t.lowerBody, offerListKeywords) {
		e.send(ctx, t.from, formatOfferList(pending))
		return nil
	}

	// Pick by number, or by an assent keyword meaning "take the best one".
	// Pending offers are ordered price-descending, so index 0 is the best.
	var selected *offers.Offer
	if n, err := strconv.Atoi(strings.TrimSpace(t.body)); err == nil && n >= 1 && n <= len(pending) {
		selected = &pending[n-1]
	} else if containsAny(t.lowerBody, acceptKeywords) {
		selected = &pending[0]
	}

	if selected == nil {
		e.send(ctx, t.from, formatOfferSummary(pending))
		return nil
	}

	return e.acceptOffer(ctx, t, listing, *selected)
}

// acceptOffer claims the state transition first, then commits the offer
// decision. Duplicate webhook deliveries race on the same session row; the
// compare-and-swap guarantees only one of them performs the accept.
func (e *Engine) acceptOffer(ctx context.Context, t *turn, listing *listings.Listing, selected offers.Offer) error {
	session, err := e.deps.Sessions.UpdateIfState(ctx, t.from, StateReviewingOffers, SessionUpdate{
		State:         statePtr(StateAwaitingHandover),
		LastMessageAt: t.now,
	})
	if err != nil {
		if errors.Is(err, ErrStateConflict) {
			e.deps.Logger.Info("offer accept lost the session race, dropping duplicate",
				"from", t.from, "offer_id", selected.ID)
			return nil
		}
		return err
	}
	t.session = session

	if err := e.deps.Offers.Accept(ctx, listing.ID, selected.ID); err != nil {
		// Undo the claimed transition so the farmer can try again.
		if _, revertErr := e.updateSession(ctx, t, SessionUpdate{State: statePtr(StateReviewingOffers)}); revertErr != nil {
			e.deps.Logger.Error("session revert failed after accept error",
				"error", revertErr, "from", t.from)
		}
		if errors.Is(err, offers.ErrOfferNotFound) {
			e.send(ctx, t.from, msgNoPendingOffers)
			return nil
		}
		return err
	}

	e.send(ctx, t.from, formatOfferAccepted(selected))
	return nil
}

func (e *Engine) handleHandover(ctx context.Context, t *turn) error {
	if !containsAny(t.lowerBody, handoverKeywords) {
		e.send(ctx, t.from, msgHandoverPrompt)
		return nil
	}

	if t.session.CurrentListingID != "" {
		if err := e.deps.Listings.SetStatus(ctx, t.session.CurrentListingID, listings.StatusSold); err != nil {
			if !errors.Is(err, listings.ErrListingNotFound) {
				return err
			}
			e.deps.Logger.Error("handover for missing listing",
				"from", t.from, "listing_id", t.session.CurrentListingID)
		}
	}

	if _, err := e.updateSession(ctx, t, SessionUpdate{
		State:        statePtr(StateIdle),
		ClearListing: true,
	}); err != nil {
		return err
	}

	e.send(ctx, t.from, msgHandoverComplete)
	return nil
}
