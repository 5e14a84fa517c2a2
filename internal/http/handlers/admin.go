package handlers

import (
	"context"
	"database/sql"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/farmfast/platform/internal/messaging"
	"github.com/farmfast/platform/pkg/logging"
)

// AdminHandler provides privileged endpoints for data maintenance. Purging a
// phone removes the farmer's profile, sessions, listings, and offers in one
// transaction; it backs both demo cleanup and deletion requests.
type AdminHandler struct {
	db      *sql.DB
	logger  *logging.Logger
	country string
}

type AdminConfig struct {
	DB          *sql.DB
	Logger      *logging.Logger
	CountryCode string
}

func NewAdminHandler(cfg AdminConfig) *AdminHandler {
	if cfg.Logger == nil {
		cfg.Logger = logging.Default()
	}
	if cfg.CountryCode == "" {
		cfg.CountryCode = "91"
	}
	return &AdminHandler{db: cfg.DB, logger: cfg.Logger, country: cfg.CountryCode}
}

type PurgePhoneResponse struct {
	Phone   string `json:"phone"`
	Deleted struct {
		Offers   int64 `json:"offers"`
		Listings int64 `json:"listings"`
		Sessions int64 `json:"sessions"`
		Farmers  int64 `json:"farmers"`
	} `json:"deleted"`
}

// PurgePhone deletes every record tied to a farmer phone number.
// Route: DELETE /admin/phones/{phone}
func (h *AdminHandler) PurgePhone(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.db == nil {
		http.Error(w, "database not configured", http.StatusServiceUnavailable)
		return
	}

	raw := strings.TrimSpace(chi.URLParam(r, "phone"))
	if raw == "" {
		http.Error(w, "missing phone", http.StatusBadRequest)
		return
	}
	phone := messaging.NormalizePhoneWithCountry(raw, h.country)

	ctx := r.Context()
	tx, err := h.db.BeginTx(ctx, nil)
	if err != nil {
		h.logger.Error("admin purge: begin tx failed", "error", err)
		http.Error(w, "failed to start transaction", http.StatusInternalServerError)
		return
	}
	defer tx.Rollback()

	var resp PurgePhoneResponse
	resp.Phone = phone

	resp.Deleted.Offers, err = execRowsAffected(ctx, tx, `
		DELETE FROM offers
		WHERE listing_id IN (SELECT id FROM listings WHERE farmer_phone = $1)
	`, phone)
	if err != nil {
		h.logger.Error("admin purge: delete offers failed", "error", err, "phone", phone)
		http.Error(w, "purge failed", http.StatusInternalServerError)
		return
	}

	resp.Deleted.Listings, err = execRowsAffected(ctx, tx, `
		DELETE FROM listings WHERE farmer_phone = $1
	`, phone)
	if err != nil {
		h.logger.Error("admin purge: delete listings failed", "error", err, "phone", phone)
		http.Error(w, "purge failed", http.StatusInternalServerError)
		return
	}

	resp.Deleted.Sessions, err = execRowsAffected(ctx, tx, `
		DELETE FROM chat_sessions WHERE farmer_phone = $1
	`, phone)
	if err != nil {
		h.logger.Error("admin purge: delete chat_sessions failed", "error", err, "phone", phone)
		http.Error(w, "purge failed", http.StatusInternalServerError)
		return
	}

	resp.Deleted.Farmers, err = execRowsAffected(ctx, tx, `
		DELETE FROM farmers WHERE phone = $1
	`, phone)
	if err != nil {
		h.logger.Error("admin purge: delete farmers failed", "error", err, "phone", phone)
		http.Error(w, "purge failed", http.StatusInternalServerError)
		return
	}

	if err := tx.Commit(); err != nil {
		h.logger.Error("admin purge: commit failed", "error", err, "phone", phone)
		http.Error(w, "purge failed", http.StatusInternalServerError)
		return
	}

	h.logger.Info("purged phone data",
		"phone", phone,
		"offers", resp.Deleted.Offers,
		"listings", resp.Deleted.Listings,
	)
	writeJSON(w, http.StatusOK, resp)
}

func execRowsAffected(ctx context.Context, tx *sql.Tx, query string, args ...any) (int64, error) {
	result, err := tx.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}
