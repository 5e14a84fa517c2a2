package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/farmfast/platform/internal/http/handlers"
	httpmiddleware "github.com/farmfast/platform/internal/http/middleware"
	"github.com/farmfast/platform/pkg/logging"
)

// Config holds router configuration
type Config struct {
	Logger          *logging.Logger
	WhatsAppWebhook *handlers.WhatsAppWebhookHandler
	OffersHandler   *handlers.OffersHandler
	ListingsHandler *handlers.ListingsHandler
	MandiHandler    *handlers.MandiHandler
	AdminHandler    *handlers.AdminHandler
	HealthHandler   *handlers.HealthHandler
	MetricsHandler  http.Handler

	AdminAuthSecret    string
	CORSAllowedOrigins []string

	// OfferRatePerSecond throttles the public offer endpoint per client IP.
	// Zero disables rate limiting.
	OfferRatePerSecond float64
	OfferRateBurst     int
}

// New creates a new Chi router with all routes configured
func New(cfg *Config) http.Handler {
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Compress(5))
	if len(cfg.CORSAllowedOrigins) > 0 {
		r.Use(httpmiddleware.CORS(cfg.CORSAllowedOrigins))
	}
	if cfg.Logger != nil {
		r.Use(httpmiddleware.RequestLogger(cfg.Logger))
	}

	// Public endpoints (webhooks, health checks)
	r.Group(func(public chi.Router) {
		if cfg.HealthHandler != nil {
			public.Get("/health", cfg.HealthHandler.Check)
		}
		if cfg.WhatsAppWebhook != nil {
			public.Post("/webhooks/twilio/whatsapp", cfg.WhatsAppWebhook.ServeHTTP)
		}
	})

	// Marketplace API
	r.Route("/api", func(api chi.Router) {
		if cfg.OffersHandler != nil {
			api.Route("/offers", func(o chi.Router) {
				if cfg.OfferRatePerSecond > 0 {
					o.With(httpmiddleware.RateLimit(cfg.OfferRatePerSecond, cfg.OfferRateBurst)).
						Post("/", cfg.OffersHandler.Create)
				} else {
					o.Post("/", cfg.OffersHandler.Create)
				}
				o.Get("/", cfg.OffersHandler.ListByListing)
			})
		}
		if cfg.ListingsHandler != nil {
			api.Get("/listings", cfg.ListingsHandler.ListActive)
			api.Get("/listings/{id}", cfg.ListingsHandler.Get)
		}
		if cfg.MandiHandler != nil {
			api.Get("/mandi-prices", cfg.MandiHandler.Prices)
		}
	})

	// Admin endpoints behind JWT auth
	if cfg.AdminHandler != nil && cfg.AdminAuthSecret != "" {
		r.Route("/admin", func(admin chi.Router) {
			admin.Use(httpmiddleware.AdminJWT(cfg.AdminAuthSecret))
			admin.Delete("/phones/{phone}", cfg.AdminHandler.PurgePhone)
		})
	}

	if cfg.MetricsHandler != nil {
		r.Handle("/metrics", cfg.MetricsHandler)
	}

	return r
}
