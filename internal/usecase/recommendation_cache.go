package usecase

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"log"
	"time"

	"github.com/gearmatch/backend/internal/domain"
)

// DefaultRecommendationTTL is how long ranked results stay valid without a
// preference change.
const DefaultRecommendationTTL = 24 * time.Hour

const recommendationKeyPrefix = "recommendations:"

// cachedRecommendations is the stored envelope: the ranked results plus the
// hash of the preferences that produced them. One entry per user; a stale
// hash on read counts as a miss, so a preference change invalidates without
// any key scan.
type cachedRecommendations struct {
	PreferencesHash string                `json:"preferencesHash"`
	Scores          []domain.VehicleScore `json:"scores"`
	ComputedAt      time.Time             `json:"computedAt"`
}

// RecommendationCache stores ranked recommendation lists per user, bound to
// the exact preferences they were computed from.
type RecommendationCache struct {
	cache domain.CacheRepository
	ttl   time.Duration
	debug bool
}

// NewRecommendationCache creates a recommendation cache. A non-positive ttl
// falls back to the default.
func NewRecommendationCache(cache domain.CacheRepository, ttl time.Duration) *RecommendationCache {
	if ttl <= 0 {
		ttl = DefaultRecommendationTTL
	}
	return &RecommendationCache{cache: cache, ttl: ttl}
}

// SetDebug enables cache hit/miss logging
func (c *RecommendationCache) SetDebug(debug bool) {
	c.debug = debug
}

// Get returns the cached ranking for a user if it was computed from
// preferences with the given hash. Cache failures read as misses.
func (c *RecommendationCache) Get(ctx context.Context, userID, preferencesHash string) ([]domain.VehicleScore, bool) {
	data, err := c.cache.Get(ctx, recommendationKeyPrefix+userID)
	if err != nil {
		if !errors.Is(err, domain.ErrCacheMiss) && c.debug {
			log.Printf("[RECCACHE] Read failed for user %s: %v", userID, err)
		}
		return nil, false
	}

	var entry cachedRecommendations
	if err := json.Unmarshal(data, &entry); err != nil {
		log.Printf("[RECCACHE] Corrupt entry for user %s: %v", userID, err)
		return nil, false
	}

	if entry.PreferencesHash != preferencesHash {
		if c.debug {
			log.Printf("[RECCACHE] Stale preferences hash for user %s", userID)
		}
		return nil, false
	}

	return entry.Scores, true
}

// Put stores a freshly computed ranking for a user.
func (c *RecommendationCache) Put(ctx context.Context, userID, preferencesHash string, scores []domain.VehicleScore) {
	data, err := json.Marshal(cachedRecommendations{
		PreferencesHash: preferencesHash,
		Scores:          scores,
		ComputedAt:      time.Now(),
	})
	if err != nil {
		log.Printf("[RECCACHE] Failed to encode entry for user %s: %v", userID, err)
		return
	}
	if err := c.cache.Set(ctx, recommendationKeyPrefix+userID, data, c.ttl); err != nil {
		log.Printf("[RECCACHE] Write failed for user %s: %v", userID, err)
	}
}

// Invalidate drops the user's cached ranking. Called whenever preferences
// are saved.
func (c *RecommendationCache) Invalidate(ctx context.Context, userID string) error {
	return c.cache.Delete(ctx, recommendationKeyPrefix+userID)
}

// HashPreferences produces the stable digest that binds a cached ranking to
// the preferences that produced it.
func HashPreferences(prefs domain.UserPreferences) string {
	data, err := json.Marshal(prefs)
	if err != nil {
		// UserPreferences contains nothing json.Marshal can reject
		return ""
	}
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}
