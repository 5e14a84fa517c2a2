package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/farmfast/platform/internal/chat"
	"github.com/farmfast/platform/internal/listings"
	"github.com/farmfast/platform/internal/messaging"
	"github.com/farmfast/platform/internal/observability/metrics"
	"github.com/farmfast/platform/internal/offers"
	"github.com/farmfast/platform/pkg/logging"
)

// OffersHandler exposes the buyer-facing offer API: buyers place offers
// against active listings, and the farmer is pushed a WhatsApp notification.
type OffersHandler struct {
	offers   offers.Repository
	listings listings.Repository
	sessions chat.SessionStore
	sender   chat.Messenger
	logger   *logging.Logger
	metrics  *metrics.ConversationMetrics
	country  string
}

type OffersConfig struct {
	Offers      offers.Repository
	Listings    listings.Repository
	Sessions    chat.SessionStore
	Sender      chat.Messenger
	Logger      *logging.Logger
	Metrics     *metrics.ConversationMetrics
	CountryCode string
}

func NewOffersHandler(cfg OffersConfig) *OffersHandler {
	if cfg.Logger == nil {
		cfg.Logger = logging.Default()
	}
	if cfg.CountryCode == "" {
		cfg.CountryCode = "91"
	}
	return &OffersHandler{
		offers:   cfg.Offers,
		listings: cfg.Listings,
		sessions: cfg.Sessions,
		sender:   cfg.Sender,
		logger:   cfg.Logger,
		metrics:  cfg.Metrics,
		country:  cfg.CountryCode,
	}
}

type createOfferRequest struct {
	ListingID  string  `json:"listing_id"`
	BuyerName  string  `json:"buyer_name"`
	BuyerPhone string  `json:"buyer_phone"`
	PricePerKg float64 `json:"price_per_kg"`
	PickupTime string  `json:"pickup_time"`
	Message    string  `json:"message"`
}

// Create handles POST /api/offers.
func (h *OffersHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createOfferRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if strings.TrimSpace(req.ListingID) == "" || strings.TrimSpace(req.BuyerName) == "" || req.PricePerKg <= 0 {
		writeError(w, http.StatusBadRequest, "listing_id, buyer_name and a positive price_per_kg are required")
		return
	}

	listing, err := h.listings.Get(r.Context(), req.ListingID)
	if err != nil {
		if errors.Is(err, listings.ErrListingNotFound) {
			writeError(w, http.StatusNotFound, "listing not found")
			return
		}
		h.logger.Error("listing lookup failed", "error", err, "listing_id", req.ListingID)
		writeError(w, http.StatusInternalServerError, "failed to create offer")
		return
	}
	if listing.Status != listings.StatusActive {
		writeError(w, http.StatusConflict, "listing is no longer active")
		return
	}

	offer, err := h.offers.Create(r.Context(), &offers.Offer{
		ListingID:   listing.ID,
		BuyerName:   strings.TrimSpace(req.BuyerName),
		BuyerPhone:  messaging.NormalizePhoneWithCountry(req.BuyerPhone, h.country),
		PricePerKg:  req.PricePerKg,
		TotalAmount: req.PricePerKg * float64(listing.QuantityKg),
		PickupTime:  strings.TrimSpace(req.PickupTime),
		Message:     strings.TrimSpace(req.Message),
		Status:      offers.StatusPending,
		CreatedAt:   time.Now().UTC(),
	})
	if err != nil {
		h.logger.Error("offer create failed", "error", err, "listing_id", listing.ID)
		h.metrics.ObserveOffer("error")
		writeError(w, http.StatusInternalServerError, "failed to create offer")
		return
	}
	h.metrics.ObserveOffer("created")

	// The notification and the state nudge are best-effort: the offer is
	// already stored, a flaky Twilio must not fail the buyer's request.
	h.notifyFarmer(r, listing, *offer)

	writeJSON(w, http.StatusCreated, offer)
}

func (h *OffersHandler) notifyFarmer(r *http.Request, listing *listings.Listing, offer offers.Offer) {
	ctx := r.Context()

	count, err := h.offers.CountForListing(ctx, listing.ID)
	if err != nil {
		h.logger.Warn("offer count failed, defaulting to 1", "error", err, "listing_id", listing.ID)
		count = 1
	}

	body := chat.FormatOfferNotification(offer, listing, count)
	if err := h.sender.Send(ctx, listing.FarmerPhone, body, ""); err != nil {
		h.logger.Warn("offer notification failed", "error", err, "to", listing.FarmerPhone)
		return
	}

	state := chat.StateReviewingOffers
	if _, err := h.sessions.Update(ctx, listing.FarmerPhone, chat.SessionUpdate{
		State:            &state,
		CurrentListingID: &listing.ID,
		LastMessageAt:    time.Now().UTC(),
	}); err != nil {
		h.logger.Warn("session nudge to reviewing_offers failed",
			"error", err, "farmer_phone", listing.FarmerPhone)
	}
}

// ListByListing handles GET /api/offers?listing_id=...
func (h *OffersHandler) ListByListing(w http.ResponseWriter, r *http.Request) {
	listingID := r.URL.Query().Get("listing_id")
	if listingID == "" {
		writeError(w, http.StatusBadRequest, "listing_id required")
		return
	}

	all, err := h.offers.ListByListing(r.Context(), listingID)
	if err != nil {
		h.logger.Error("offer list failed", "error", err, "listing_id", listingID)
		writeError(w, http.StatusInternalServerError, "failed to list offers")
		return
	}
	writeJSON(w, http.StatusOK, all)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
