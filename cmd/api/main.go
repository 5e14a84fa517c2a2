package main

import (
	"context"
	"crypto/tls"
	"database/sql"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/aws/aws-sdk-go-v2/service/bedrockruntime"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"

	"github.com/farmfast/platform/cmd/mainconfig"
	"github.com/farmfast/platform/internal/api/router"
	"github.com/farmfast/platform/internal/buyers"
	"github.com/farmfast/platform/internal/chat"
	appconfig "github.com/farmfast/platform/internal/config"
	"github.com/farmfast/platform/internal/farmers"
	"github.com/farmfast/platform/internal/geocoding"
	"github.com/farmfast/platform/internal/grading"
	"github.com/farmfast/platform/internal/http/handlers"
	"github.com/farmfast/platform/internal/listings"
	"github.com/farmfast/platform/internal/mandi"
	"github.com/farmfast/platform/internal/media"
	"github.com/farmfast/platform/internal/messaging"
	"github.com/farmfast/platform/internal/observability/metrics"
	"github.com/farmfast/platform/internal/offers"
	"github.com/farmfast/platform/pkg/logging"
)

func main() {
	_ = godotenv.Load()

	cfg := appconfig.Load()
	logger := logging.New(cfg.LogLevel)
	logger.Info("starting farmfast API server",
		"env", cfg.Env,
		"port", cfg.Port,
	)

	ctx := context.Background()

	db := connectPostgres(cfg.DatabaseURL, logger)
	rdb := connectRedis(cfg, logger)

	awsCfg, err := mainconfig.LoadAWSConfig(ctx, cfg)
	if err != nil {
		logger.Error("failed to load AWS config", "error", err)
		os.Exit(1)
	}

	grader := setupGrader(ctx, cfg, mainconfig.NewBedrockClient(awsCfg, cfg), logger)
	imageStore := media.NewStore(mainconfig.NewS3Client(awsCfg, cfg), cfg.S3Bucket, cfg.AWSRegion, logger)

	geocoder := geocoding.NewCachedGeocoder(
		geocoding.NewNominatimClient(cfg.NominatimBaseURL),
		rdb, cfg.GeocodeCacheTTL, logger,
	)

	sender := messaging.NewWhatsAppSender(cfg.TwilioAccountSID, cfg.TwilioAuthToken, cfg.TwilioWhatsAppFrom, logger)
	downloader := messaging.NewMediaDownloader(cfg.TwilioAccountSID, cfg.TwilioAuthToken)

	// Repositories: Postgres when DATABASE_URL is set, in-memory for local
	// development without a database.
	var (
		sessionStore chat.SessionStore
		farmerRepo   farmers.Repository
		listingRepo  listings.Repository
		offerRepo    offers.Repository
		buyerRepo    buyers.Repository
	)
	if db != nil {
		sessionStore = chat.NewPostgresSessionStore(db)
		farmerRepo = farmers.NewPostgresRepository(db)
		listingRepo = listings.NewPostgresRepository(db)
		offerRepo = offers.NewPostgresRepository(db)
		buyerRepo = buyers.NewPostgresRepository(db)
	} else {
		logger.Warn("DATABASE_URL not set, using in-memory stores")
		sessionStore = chat.NewInMemorySessionStore()
		farmerRepo = farmers.NewInMemoryRepository()
		listingRepo = listings.NewInMemoryRepository()
		offerRepo = offers.NewInMemoryRepository()
		buyerRepo = buyers.NewInMemoryRepository()
	}

	metricsHandler, convMetrics := setupConversationMetrics()

	engine := chat.NewEngine(chat.Deps{
		Sessions: sessionStore,
		Farmers:  farmerRepo,
		Listings: listingRepo,
		Offers:   offerRepo,
		Buyers:   buyerRepo,
		Grader:   grader,
		Geocoder: geocoder,
		Images:   imageStore,
		Media:    downloader,
		Sender:   sender,
		Metrics:  convMetrics,
		Logger:   logger,
	}, chat.Options{
		StaleAfter:   cfg.SessionStaleAfter,
		MinListingKg: cfg.MinListingKg,
	})

	webhookURL := ""
	if cfg.PublicBaseURL != "" {
		webhookURL = cfg.PublicBaseURL + "/webhooks/twilio/whatsapp"
	}

	routerCfg := &router.Config{
		Logger: logger,
		WhatsAppWebhook: handlers.NewWhatsAppWebhookHandler(handlers.WhatsAppWebhookConfig{
			Engine:      engine,
			Logger:      logger,
			Metrics:     convMetrics,
			AuthToken:   cfg.TwilioAuthToken,
			WebhookURL:  webhookURL,
			CountryCode: cfg.DefaultCountryCode,
		}),
		OffersHandler: handlers.NewOffersHandler(handlers.OffersConfig{
			Offers:      offerRepo,
			Listings:    listingRepo,
			Sessions:    sessionStore,
			Sender:      sender,
			Logger:      logger,
			Metrics:     convMetrics,
			CountryCode: cfg.DefaultCountryCode,
		}),
		ListingsHandler:    handlers.NewListingsHandler(listingRepo, logger),
		MandiHandler:       handlers.NewMandiHandler(mandi.NewService()),
		AdminHandler:       handlers.NewAdminHandler(handlers.AdminConfig{DB: db, Logger: logger, CountryCode: cfg.DefaultCountryCode}),
		HealthHandler:      handlers.NewHealthHandler(db),
		MetricsHandler:     metricsHandler,
		AdminAuthSecret:    cfg.AdminJWTSecret,
		CORSAllowedOrigins: cfg.CORSAllowedOrigins,
		OfferRatePerSecond: 5,
		OfferRateBurst:     10,
	}
	r := router.New(routerCfg)

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("server listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server forced to shutdown", "error", err)
		os.Exit(1)
	}

	logger.Info("server stopped")
}

// connectPostgres opens a pgx stdlib pool; a missing URL is tolerated so the
// server can run against in-memory stores in local development.
func connectPostgres(databaseURL string, logger *logging.Logger) *sql.DB {
	if databaseURL == "" {
		return nil
	}
	db, err := sql.Open("pgx", databaseURL)
	if err != nil {
		logger.Error("failed to open database", "error", err)
		os.Exit(1)
	}
	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(30 * time.Minute)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		logger.Warn("database unreachable at startup", "error", err)
	}
	return db
}

func connectRedis(cfg *appconfig.Config, logger *logging.Logger) *redis.Client {
	if cfg.RedisAddr == "" {
		return nil
	}
	opts := &redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
	}
	if cfg.RedisTLS {
		opts.TLSConfig = &tls.Config{MinVersion: tls.VersionTLS12}
	}
	rdb := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		logger.Warn("redis unreachable, geocode cache disabled", "error", err)
		return nil
	}
	return rdb
}

// setupGrader builds the produce grader: Bedrock first, Gemini as fallback
// when an API key is configured.
func setupGrader(ctx context.Context, cfg *appconfig.Config, bedrock *bedrockruntime.Client, logger *logging.Logger) grading.Grader {
	primary := grading.NewBedrockGrader(bedrock, cfg.BedrockModelID)
	if cfg.GeminiAPIKey == "" {
		return primary
	}
	gemini, err := grading.NewGeminiGrader(ctx, cfg.GeminiAPIKey, cfg.GeminiModelID)
	if err != nil {
		logger.Warn("gemini grader unavailable", "error", err)
		return primary
	}
	return grading.NewFallbackGrader(primary, gemini, logger)
}

func setupConversationMetrics() (http.Handler, *metrics.ConversationMetrics) {
	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector())
	registry.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	convMetrics := metrics.NewConversationMetrics(registry)
	return promhttp.HandlerFor(registry, promhttp.HandlerOpts{}), convMetrics
}
