// Package handlers holds the HTTP surface: the Twilio WhatsApp webhook, the
// buyer-facing marketplace API, and admin operations.
package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/farmfast/platform/internal/chat"
	"github.com/farmfast/platform/internal/messaging"
	"github.com/farmfast/platform/internal/observability/metrics"
	"github.com/farmfast/platform/pkg/logging"
)

type conversationEngine interface {
	HandleMessage(ctx context.Context, in chat.Inbound) error
}

// WhatsAppWebhookHandler receives inbound Twilio WhatsApp messages and feeds
// them to the conversation engine.
type WhatsAppWebhookHandler struct {
	engine         conversationEngine
	logger         *logging.Logger
	metrics        *metrics.ConversationMetrics
	authToken      string
	webhookURL     string
	validateSig    bool
	countryCode    string
	handlerTimeout time.Duration
}

type WhatsAppWebhookConfig struct {
	Engine  conversationEngine
	Logger  *logging.Logger
	Metrics *metrics.ConversationMetrics
	// AuthToken plus WebhookURL enable Twilio signature validation. Leave
	// WebhookURL empty to accept unsigned requests (local development).
	AuthToken   string
	WebhookURL  string
	CountryCode string
	Timeout     time.Duration
}

func NewWhatsAppWebhookHandler(cfg WhatsAppWebhookConfig) *WhatsAppWebhookHandler {
	if cfg.Logger == nil {
		cfg.Logger = logging.Default()
	}
	if cfg.CountryCode == "" {
		cfg.CountryCode = "91"
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 25 * time.Second
	}
	return &WhatsAppWebhookHandler{
		engine:         cfg.Engine,
		logger:         cfg.Logger,
		metrics:        cfg.Metrics,
		authToken:      cfg.AuthToken,
		webhookURL:     cfg.WebhookURL,
		validateSig:    cfg.AuthToken != "" && cfg.WebhookURL != "",
		countryCode:    cfg.CountryCode,
		handlerTimeout: cfg.Timeout,
	}
}

// ServeHTTP processes one webhook delivery. Apart from a failed signature
// check, the response is always 200 with a generic body: Twilio retries
// non-2xx responses and a retry storm against a failing handler helps nobody.
// Internal errors are logged and counted instead.
func (h *WhatsAppWebhookHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	if h.validateSig && !messaging.ValidateTwilioSignature(r, h.authToken, h.webhookURL) {
		h.logger.Warn("rejected webhook with invalid signature", "remote_ip", r.RemoteAddr)
		h.observe("unknown", "invalid_signature", start)
		http.Error(w, "invalid signature", http.StatusUnauthorized)
		return
	}

	req, err := messaging.ParseWhatsAppWebhook(r)
	if err != nil {
		h.logger.Error("unparseable webhook payload", "error", err)
		h.observe("unknown", "parse_error", start)
		h.ack(w)
		return
	}

	kind := "text"
	if req.HasMedia() {
		kind = "media"
	}

	in := chat.Inbound{
		From: messaging.NormalizePhoneWithCountry(req.From, h.countryCode),
		Body: req.Body,
	}
	if req.HasMedia() {
		in.MediaURL = req.MediaURL
	}

	ctx, cancel := context.WithTimeout(r.Context(), h.handlerTimeout)
	defer cancel()

	if err := h.engine.HandleMessage(ctx, in); err != nil {
		h.logger.Error("webhook handling failed",
			"error", err,
			"from", in.From,
			"kind", kind,
		)
		h.observe(kind, "error", start)
		h.ack(w)
		return
	}

	h.observe(kind, "ok", start)
	h.ack(w)
}

func (h *WhatsAppWebhookHandler) ack(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(map[string]bool{"success": true})
}

func (h *WhatsAppWebhookHandler) observe(kind, status string, start time.Time) {
	h.metrics.ObserveInbound(kind, status)
	h.metrics.ObserveWebhookLatency(kind, time.Since(start).Seconds())
}
