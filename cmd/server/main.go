package main

import (
	"fmt"
	"log"
	"os"

	"github.com/gearmatch/backend/config"
	httpDelivery "github.com/gearmatch/backend/internal/delivery/http"
	"github.com/gearmatch/backend/internal/domain"
	"github.com/gearmatch/backend/internal/infrastructure/cache"
	"github.com/gearmatch/backend/internal/infrastructure/catalog"
	"github.com/gearmatch/backend/internal/infrastructure/enrichment"
	"github.com/gearmatch/backend/internal/infrastructure/preferences"
	"github.com/gearmatch/backend/internal/usecase"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	log.Printf("Starting GearMatch Backend v1.0.0")
	log.Printf("Environment: %s", cfg.Server.Environment)
	log.Printf("Port: %s", cfg.Server.Port)
	log.Printf("Cache Type: %s", cfg.Cache.Type)

	debug := cfg.Server.Environment == "development" || cfg.Scoring.EnableDebugLogging

	// Initialize cache store
	var store domain.CacheRepository
	if cfg.Cache.Type == "redis" {
		redisCache, err := cache.NewRedisCache(cfg.Cache.RedisAddr, cfg.Cache.RedisDB)
		if err != nil {
			log.Fatalf("Failed to connect to Redis at %s: %v", cfg.Cache.RedisAddr, err)
		}
		store = redisCache
		log.Printf("Redis cache connected: %s (db %d)", cfg.Cache.RedisAddr, cfg.Cache.RedisDB)
	} else {
		store = cache.NewMemoryCache()
	}

	// Load the vehicle catalog
	vehicles, err := catalog.LoadFromFile(cfg.Catalog.SeedFile)
	if err != nil {
		log.Fatalf("Failed to load vehicle catalog: %v", err)
	}
	vehicleCatalog := catalog.NewMemoryCatalog(vehicles)
	log.Printf("Vehicle catalog loaded: %d vehicles from %s", vehicleCatalog.Size(), cfg.Catalog.SeedFile)

	// Enrichment provider behind a shared token budget
	tokens := enrichment.NewTokenRateLimiter(cfg.RateLimit.TokensPerWindow, cfg.RateLimit.Window)
	client := enrichment.NewClient(cfg.Enrichment.APIKey, cfg.Enrichment.BaseURL, tokens)
	if debug {
		client.SetDebug(true)
		log.Printf("Enrichment client debug mode enabled")
	}
	log.Printf("Enrichment provider configured: %s (budget: %d tokens per %s)",
		cfg.Enrichment.BaseURL, cfg.RateLimit.TokensPerWindow, cfg.RateLimit.Window)

	// Initialize usecase layer
	prefStore := preferences.NewMemoryStore()
	results := usecase.NewRecommendationCache(store, cfg.Cache.RecommendationTTL)
	prefService := usecase.NewPreferenceService(prefStore, results)
	enrichService := usecase.NewEnrichmentService(client, store, cfg.Cache.FeatureTTL)
	if debug {
		results.SetDebug(true)
		prefService.SetDebug(true)
		enrichService.SetDebug(true)
	}

	engine := usecase.NewRecommendationEngine(
		vehicleCatalog,
		prefService,
		enrichService,
		results,
		usecase.EngineConfig{
			RequestTimeout:        cfg.Scoring.RequestTimeout,
			MaxConcurrentVehicles: cfg.Scoring.MaxConcurrentVehicles,
			CandidateMultiplier:   cfg.Scoring.CandidateMultiplier,
			Weights:               usecase.DefaultWeights,
			Normalizer:            usecase.DefaultNormalizer,
			Debug:                 debug,
		},
	)

	log.Printf("Scoring: timeout=%s, concurrency=%d, multiplier=%d",
		cfg.Scoring.RequestTimeout,
		cfg.Scoring.MaxConcurrentVehicles,
		cfg.Scoring.CandidateMultiplier)

	// Create HTTP handler with dependencies
	handler := httpDelivery.NewHandler(engine, prefService)

	// Setup router
	router := httpDelivery.SetupRouter(cfg, handler)

	// Start server
	addr := fmt.Sprintf(":%s", cfg.Server.Port)
	log.Printf("Server listening on %s", addr)

	if err := router.Run(addr); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

func init() {
	// Set log flags for better debugging
	log.SetFlags(log.Ldate | log.Ltime | log.Lshortfile)
	log.SetOutput(os.Stdout)
}
