package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/gearmatch/backend/internal/domain"
)

// DefaultFeatureTTL is how long a cached feature profile stays fresh.
// Feature sets change on model-year boundaries, so a month is conservative.
const DefaultFeatureTTL = 30 * 24 * time.Hour

const featureKeyPrefix = "features:"

// EnrichmentService serves feature profiles cache-first. Concurrent
// requests for the same model year collapse into a single provider fetch.
type EnrichmentService struct {
	client domain.EnrichmentClient
	cache  domain.CacheRepository
	ttl    time.Duration
	group  singleflight.Group
	debug  bool
}

// NewEnrichmentService creates an enrichment service. A non-positive ttl
// falls back to the default.
func NewEnrichmentService(client domain.EnrichmentClient, cache domain.CacheRepository, ttl time.Duration) *EnrichmentService {
	if ttl <= 0 {
		ttl = DefaultFeatureTTL
	}
	return &EnrichmentService{
		client: client,
		cache:  cache,
		ttl:    ttl,
	}
}

// SetDebug enables cache hit/miss logging
func (s *EnrichmentService) SetDebug(debug bool) {
	s.debug = debug
}

// GetProfile returns the feature profile for a model year, fetching and
// caching on miss. The profile's aggregate confidence is computed once at
// fetch time. Cache store failures degrade to a direct fetch.
func (s *EnrichmentService) GetProfile(ctx context.Context, year, model string) (*domain.FeatureProfile, error) {
	key := featureKeyPrefix + year + "-" + model

	if profile := s.lookup(ctx, key); profile != nil {
		if s.debug {
			log.Printf("[ENRICH] Cache hit for %s", key)
		}
		return profile, nil
	}

	// Collapse concurrent misses for the same model year into one fetch
	result, err, _ := s.group.Do(key, func() (interface{}, error) {
		// Another collapsed caller may have populated the cache while
		// this one waited on the group
		if profile := s.lookup(ctx, key); profile != nil {
			return profile, nil
		}

		profile, err := s.client.FetchProfile(ctx, year, model)
		if err != nil {
			return nil, err
		}
		profile.Confidence = aggregateConfidence(profile)

		s.store(ctx, key, profile)
		return profile, nil
	})
	if err != nil {
		return nil, fmt.Errorf("enrichment for %s-%s: %w", year, model, err)
	}

	return result.(*domain.FeatureProfile), nil
}

func (s *EnrichmentService) lookup(ctx context.Context, key string) *domain.FeatureProfile {
	data, err := s.cache.Get(ctx, key)
	if err != nil {
		if !errors.Is(err, domain.ErrCacheMiss) && s.debug {
			log.Printf("[ENRICH] Cache read failed for %s: %v", key, err)
		}
		return nil
	}

	var profile domain.FeatureProfile
	if err := json.Unmarshal(data, &profile); err != nil {
		log.Printf("[ENRICH] Corrupt cache entry for %s: %v", key, err)
		return nil
	}
	return &profile
}

func (s *EnrichmentService) store(ctx context.Context, key string, profile *domain.FeatureProfile) {
	data, err := json.Marshal(profile)
	if err != nil {
		log.Printf("[ENRICH] Failed to encode profile for %s: %v", key, err)
		return
	}
	// A failed write only costs a refetch later
	if err := s.cache.Set(ctx, key, data, s.ttl); err != nil {
		log.Printf("[ENRICH] Cache write failed for %s: %v", key, err)
	}
}

// aggregateConfidence is the mean of the per-feature confidences.
func aggregateConfidence(profile *domain.FeatureProfile) float64 {
	if len(profile.Features) == 0 {
		return 0
	}
	var sum float64
	for _, f := range profile.Features {
		sum += f.Confidence
	}
	return sum / float64(len(profile.Features))
}
