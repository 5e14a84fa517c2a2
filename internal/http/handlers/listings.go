package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/farmfast/platform/internal/listings"
	"github.com/farmfast/platform/pkg/logging"
)

// ListingsHandler exposes read access to produce listings for the
// marketplace frontend.
type ListingsHandler struct {
	listings listings.Repository
	logger   *logging.Logger
}

func NewListingsHandler(repo listings.Repository, logger *logging.Logger) *ListingsHandler {
	if logger == nil {
		logger = logging.Default()
	}
	return &ListingsHandler{listings: repo, logger: logger}
}

// ListActive handles GET /api/listings.
func (h *ListingsHandler) ListActive(w http.ResponseWriter, r *http.Request) {
	limit := 50
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 || n > 200 {
			writeError(w, http.StatusBadRequest, "limit must be between 1 and 200")
			return
		}
		limit = n
	}

	active, err := h.listings.ListActive(r.Context(), limit)
	if err != nil {
		h.logger.Error("listing query failed", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to list listings")
		return
	}
	writeJSON(w, http.StatusOK, active)
}

// Get handles GET /api/listings/{id}.
func (h *ListingsHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	listing, err := h.listings.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, listings.ErrListingNotFound) {
			writeError(w, http.StatusNotFound, "listing not found")
			return
		}
		h.logger.Error("listing lookup failed", "error", err, "listing_id", id)
		writeError(w, http.StatusInternalServerError, "failed to fetch listing")
		return
	}
	writeJSON(w, http.StatusOK, listing)
}
