package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"pmj0612/shopscraper/api"
	"pmj0612/shopscraper/config"
	"pmj0612/shopscraper/internal/scraper"
	"pmj0612/shopscraper/logger"
	"pmj0612/shopscraper/services/cache"
	"pmj0612/shopscraper/services/notifier"
	"pmj0612/shopscraper/services/storage"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func main() {
	// Load environment variables
	godotenv.Load()

	// Initialize logger first
	logger.Init()
	log := logger.Default

	// Load and validate configuration
	cfg := config.LoadConfig()
	if err := cfg.Validate(); err != nil {
		log.Fatal().Err(err).Msg("Invalid configuration")
	}

	log.Info().
		Str("environment", cfg.Environment).
		Str("base_url", cfg.BaseURL).
		Int("page_limit", cfg.PageLimit).
		Str("cache_backend", cfg.CacheBackend).
		Str("storage_backend", cfg.StorageBackend).
		Msg("Starting application")

	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Set up context cancelled on shutdown signals
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Initialize services
	services, err := initializeServices(ctx, cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize services")
	}
	defer services.Cleanup()

	// Create the scrape service and its HTTP trigger
	svc := scraper.NewService(scraper.Config{
		BaseURL:   cfg.BaseURL,
		PageLimit: cfg.PageLimit,
		Selectors: scraper.Selectors{
			Card:  cfg.CardSelector,
			Title: cfg.TitleSelector,
			Price: cfg.PriceSelector,
			Image: cfg.ImageSelector,
		},
		CacheTTL:         cfg.CacheTTL,
		FetchTimeout:     cfg.FetchTimeout,
		FetchMaxAttempts: cfg.FetchMaxAttempts,
		FetchBackoff:     cfg.FetchBackoff,
	}, services.Cache, services.Store, services.Notifier)

	handler := api.NewHandler(ctx, svc)

	srv := &http.Server{
		Addr:    cfg.HTTPAddr,
		Handler: handler.Router(),
	}

	// Start the HTTP server
	go func() {
		log.Info().Str("addr", cfg.HTTPAddr).Msg("Starting HTTP server")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("HTTP server failed")
		}
	}()

	// Wait for shutdown signal
	<-ctx.Done()
	log.Info().Msg("Received shutdown signal")

	// Stop accepting new requests, allow in-flight ones to finish
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("HTTP server shutdown failed")
	}

	log.Info().Msg("Shutting down gracefully...")
}

// Services holds all the initialized services
type Services struct {
	Cache    cache.CacheService
	Store    storage.Store
	Notifier notifier.Notifier
}

// Cleanup cleans up all services
func (s *Services) Cleanup() {
	if s.Notifier != nil {
		s.Notifier.Close()
	}
	if s.Store != nil {
		s.Store.Close()
	}
	if s.Cache != nil {
		s.Cache.Close()
	}
}

// initializeServices initializes the configured service backends
func initializeServices(ctx context.Context, cfg *config.Config) (*Services, error) {
	services := &Services{}

	// Initialize cache service
	switch cfg.CacheBackend {
	case "memcache":
		services.Cache = cache.NewMemcacheService(cfg.MemcacheAddr)
		logger.Info("Using Memcache at %s", cfg.MemcacheAddr)
	default:
		services.Cache = cache.NewRedisService(ctx, cfg.RedisAddr, cfg.RedisDB)
		logger.Info("Using Redis cache at %s (DB: %d)", cfg.RedisAddr, cfg.RedisDB)
	}

	// Initialize storage backend
	var store storage.Store
	var err error
	switch cfg.StorageBackend {
	case "sqlite":
		store, err = storage.NewSQLiteStore(cfg.SQLitePath)
	case "postgres":
		store, err = storage.NewPostgresStore(ctx, cfg.PostgresDSN)
	default:
		store, err = storage.NewJSONFileStore(cfg.DataFile)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to initialize %s storage: %w", cfg.StorageBackend, err)
	}
	services.Store = store
	logger.Info("Using %s storage", cfg.StorageBackend)

	// Initialize notifier
	switch cfg.NotifyBackend {
	case "redis":
		services.Notifier = notifier.NewRedisNotifier(ctx, cfg.RedisAddr, cfg.RedisDB, cfg.NotifyStream, cfg.NotifyStreamMaxLen)
		logger.Info("Publishing run notifications to Redis stream %s", cfg.NotifyStream)
	default:
		services.Notifier = notifier.NewLogNotifier()
	}

	return services, nil
}
