package domain

import (
	"context"
	"time"
)

// CacheRepository defines the interface for caching operations. Values are
// raw bytes so that memory and redis implementations behave identically.
type CacheRepository interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Exists(ctx context.Context, key string) (bool, error)
}

// VehicleRepository defines the interface for the external catalog store.
// ListVehicles returns vehicles ordered by MSRP descending; that ordering is
// also the ranking tie-break for equal total scores.
type VehicleRepository interface {
	ListVehicles(ctx context.Context, limit, offset int) ([]Vehicle, error)
	GetByID(ctx context.Context, id string) (*Vehicle, error)
}

// PreferenceRepository defines the interface for the external preferences store
type PreferenceRepository interface {
	Get(ctx context.Context, userID string) (*StoredPreferences, error)
	Save(ctx context.Context, prefs *StoredPreferences) error
}

// EnrichmentClient defines the interface for the external, metered
// feature-classification provider. FetchProfile issues the feature and
// use-case analysis requests and returns the parsed profile.
type EnrichmentClient interface {
	FetchProfile(ctx context.Context, year, model string) (*FeatureProfile, error)
}

// TokenLimiter guards the shared token budget in front of the enrichment
// provider. Built once at process start and passed by reference wherever
// enrichment calls are made, so tests can substitute a fake.
type TokenLimiter interface {
	CheckLimit(estimatedTokens int) bool
	RecordUsage(actualTokens int)
	WaitForCapacity(ctx context.Context, estimatedTokens int) error
	CurrentUsage() int
}
