package handlers

import (
	"net/http"

	"github.com/farmfast/platform/internal/mandi"
)

// MandiHandler serves wholesale market price data.
type MandiHandler struct {
	service *mandi.Service
}

func NewMandiHandler(service *mandi.Service) *MandiHandler {
	return &MandiHandler{service: service}
}

// Prices handles GET /api/mandi-prices. The action parameter selects the
// view: prices (default), summaries, trend, commodities, or states.
func (h *MandiHandler) Prices(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	commodity := q.Get("commodity")
	state := q.Get("state")

	switch q.Get("action") {
	case "summaries":
		writeJSON(w, http.StatusOK, h.service.Summaries())
	case "trend":
		if commodity == "" {
			writeError(w, http.StatusBadRequest, "commodity parameter required")
			return
		}
		writeJSON(w, http.StatusOK, h.service.Trend(commodity))
	case "commodities":
		writeJSON(w, http.StatusOK, h.service.Commodities())
	case "states":
		writeJSON(w, http.StatusOK, h.service.States())
	default:
		writeJSON(w, http.StatusOK, h.service.Prices(commodity, state))
	}
}
