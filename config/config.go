package config

import (
	"bufio"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration for the application
type Config struct {
	Server     ServerConfig
	Catalog    CatalogConfig
	Enrichment EnrichmentConfig
	Cache      CacheConfig
	RateLimit  RateLimitConfig
	Scoring    ScoringConfig
}

// ServerConfig holds server-related configuration
type ServerConfig struct {
	Port           string   `mapstructure:"port"`
	Environment    string   `mapstructure:"environment"`
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// CatalogConfig holds vehicle catalog configuration
type CatalogConfig struct {
	SeedFile string `mapstructure:"seed_file"`
}

// EnrichmentConfig holds feature-classification provider configuration
type EnrichmentConfig struct {
	APIKey  string `mapstructure:"api_key"`
	BaseURL string `mapstructure:"base_url"`
}

// CacheConfig holds cache-related configuration
type CacheConfig struct {
	Type              string        `mapstructure:"type"` // "memory" or "redis"
	RedisAddr         string        `mapstructure:"redis_addr"`
	RedisDB           int           `mapstructure:"redis_db"`
	FeatureTTL        time.Duration `mapstructure:"feature_ttl"`
	RecommendationTTL time.Duration `mapstructure:"recommendation_ttl"`
}

// RateLimitConfig holds rate limiting configuration
type RateLimitConfig struct {
	PerIP           int           `mapstructure:"per_ip"`
	TokensPerWindow int           `mapstructure:"tokens_per_window"`
	Window          time.Duration `mapstructure:"window"`
}

// ScoringConfig holds recommendation pipeline configuration
type ScoringConfig struct {
	RequestTimeout        time.Duration `mapstructure:"request_timeout"`
	MaxConcurrentVehicles int           `mapstructure:"max_concurrent_vehicles"`
	CandidateMultiplier   int           `mapstructure:"candidate_multiplier"`
	EnableDebugLogging    bool          `mapstructure:"enable_debug_logging"`
}

// Load loads configuration from environment variables and config files
func Load() (*Config, error) {
	// Load .env file if it exists (development convenience)
	if err := loadEnvFile(); err != nil {
		return nil, fmt.Errorf("error loading .env file: %w", err)
	}

	v := viper.New()

	// Set config name and paths
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.AddConfigPath("/etc/gearmatch/")

	// Environment variable settings
	v.SetEnvPrefix("GEARMATCH")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Set default values
	setDefaults(v)

	// Read config file (optional - will use env vars if file doesn't exist)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
		// Config file not found; using environment variables and defaults
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}

	// Validate configuration
	if err := validate(&config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

// setDefaults sets default configuration values
func setDefaults(v *viper.Viper) {
	// Server defaults
	v.SetDefault("server.port", "8080")
	v.SetDefault("server.environment", "development")
	v.SetDefault("server.allowed_origins", []string{"http://localhost:3000"})

	// Catalog defaults
	v.SetDefault("catalog.seed_file", "data/vehicles.json")

	// Enrichment defaults
	v.SetDefault("enrichment.base_url", "https://api.gearmatch.dev/classify")

	// Cache defaults
	v.SetDefault("cache.type", "memory")
	v.SetDefault("cache.redis_addr", "localhost:6379")
	v.SetDefault("cache.redis_db", 0)
	v.SetDefault("cache.feature_ttl", "720h") // 30 days
	v.SetDefault("cache.recommendation_ttl", "24h")

	// Rate limit defaults
	v.SetDefault("ratelimit.per_ip", 100)
	v.SetDefault("ratelimit.tokens_per_window", 200000)
	v.SetDefault("ratelimit.window", "60s")

	// Scoring defaults
	v.SetDefault("scoring.request_timeout", "30s")
	v.SetDefault("scoring.max_concurrent_vehicles", 8)
	v.SetDefault("scoring.candidate_multiplier", 2)
	v.SetDefault("scoring.enable_debug_logging", false)
}

// validate validates the configuration
func validate(config *Config) error {
	if config.Enrichment.APIKey == "" {
		return fmt.Errorf("enrichment API key is required (set GEARMATCH_ENRICHMENT_API_KEY)")
	}

	if config.Cache.Type != "memory" && config.Cache.Type != "redis" {
		return fmt.Errorf("cache type must be 'memory' or 'redis', got: %s", config.Cache.Type)
	}

	if config.Cache.Type == "redis" && config.Cache.RedisAddr == "" {
		return fmt.Errorf("Redis address is required when cache type is 'redis'")
	}

	if config.RateLimit.TokensPerWindow <= 0 {
		return fmt.Errorf("tokens per window must be positive, got: %d", config.RateLimit.TokensPerWindow)
	}

	if config.RateLimit.Window <= 0 {
		return fmt.Errorf("rate limit window must be positive, got: %s", config.RateLimit.Window)
	}

	return nil
}

// loadEnvFile loads environment variables from a .env file in the working
// directory. Existing environment variables are never overridden.
func loadEnvFile() error {
	file, err := os.Open(".env")
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		key, value, found := strings.Cut(line, "=")
		if !found {
			continue
		}

		key = strings.TrimSpace(key)
		value = strings.TrimSpace(value)
		if _, exists := os.LookupEnv(key); !exists {
			os.Setenv(key, value)
		}
	}

	return scanner.Err()
}

