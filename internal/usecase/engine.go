package usecase

import (
	"context"
	"fmt"
	"log"
	"sort"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/gearmatch/backend/internal/domain"
)

// Engine defaults. Candidates are over-fetched by the multiplier so that
// scoring has room to reorder beyond the requested page.
const (
	DefaultRecommendationLimit   = 10
	DefaultCandidateMultiplier   = 2
	DefaultMaxConcurrentVehicles = 8
	DefaultRequestTimeout        = 30 * time.Second
)

// EngineConfig tunes the recommendation pipeline.
type EngineConfig struct {
	RequestTimeout        time.Duration
	MaxConcurrentVehicles int
	CandidateMultiplier   int
	Weights               domain.ScoringWeights
	Normalizer            domain.ScoreNormalizer
	Debug                 bool
}

// RecommendationEngine fans preference-aware scoring out over the catalog
// and returns the ranked results.
type RecommendationEngine struct {
	catalog     domain.VehicleRepository
	preferences *PreferenceService
	enrichment  *EnrichmentService
	results     *RecommendationCache

	timeout       time.Duration
	maxConcurrent int
	multiplier    int
	weights       domain.ScoringWeights
	normalizer    domain.ScoreNormalizer
	debug         bool
}

// NewRecommendationEngine creates an engine. Zero config fields fall back
// to the defaults.
func NewRecommendationEngine(
	catalog domain.VehicleRepository,
	preferences *PreferenceService,
	enrichment *EnrichmentService,
	results *RecommendationCache,
	cfg EngineConfig,
) *RecommendationEngine {
	if cfg.RequestTimeout <= 0 {
		cfg.RequestTimeout = DefaultRequestTimeout
	}
	if cfg.MaxConcurrentVehicles <= 0 {
		cfg.MaxConcurrentVehicles = DefaultMaxConcurrentVehicles
	}
	if cfg.CandidateMultiplier <= 0 {
		cfg.CandidateMultiplier = DefaultCandidateMultiplier
	}
	if cfg.Weights.Sum() == 0 {
		cfg.Weights = DefaultWeights
	}
	if cfg.Normalizer.Max <= cfg.Normalizer.Min {
		cfg.Normalizer = DefaultNormalizer
	}

	return &RecommendationEngine{
		catalog:       catalog,
		preferences:   preferences,
		enrichment:    enrichment,
		results:       results,
		timeout:       cfg.RequestTimeout,
		maxConcurrent: cfg.MaxConcurrentVehicles,
		multiplier:    cfg.CandidateMultiplier,
		weights:       cfg.Weights,
		normalizer:    cfg.Normalizer,
		debug:         cfg.Debug,
	}
}

// GetRecommendations returns the top ranked vehicles for a user. Results
// are served from cache when the user's preferences have not changed since
// they were computed. A non-positive limit falls back to the default.
func (e *RecommendationEngine) GetRecommendations(ctx context.Context, userID string, limit int) ([]domain.VehicleScore, error) {
	if userID == "" {
		return nil, fmt.Errorf("%w: user ID required", domain.ErrInvalidRequest)
	}
	if limit <= 0 {
		limit = DefaultRecommendationLimit
	}

	ctx, cancel := context.WithTimeout(ctx, e.timeout)
	defer cancel()

	profile, err := e.preferences.GetProfile(ctx, userID)
	if err != nil {
		return nil, err
	}
	hash := HashPreferences(profile)

	if cached, ok := e.results.Get(ctx, userID, hash); ok && len(cached) >= limit {
		if e.debug {
			log.Printf("[ENGINE] Serving cached recommendations for user %s", userID)
		}
		return cached[:limit], nil
	}

	scores, err := e.rank(ctx, profile, limit)
	if err != nil {
		return nil, err
	}

	e.results.Put(ctx, userID, hash, scores)
	return scores, nil
}

// rank scores the candidate pool concurrently and returns the top results.
func (e *RecommendationEngine) rank(ctx context.Context, profile domain.UserPreferences, limit int) ([]domain.VehicleScore, error) {
	vehicles, err := e.catalog.ListVehicles(ctx, limit*e.multiplier, 0)
	if err != nil {
		return nil, fmt.Errorf("failed to list candidates: %w", err)
	}
	if e.debug {
		log.Printf("[ENGINE] Scoring %d candidates", len(vehicles))
	}

	scores := make([]domain.VehicleScore, len(vehicles))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(e.maxConcurrent)

	for i, vehicle := range vehicles {
		i, vehicle := i, vehicle
		g.Go(func() error {
			score, err := e.scoreVehicle(gctx, vehicle, profile)
			if err != nil {
				return err
			}
			scores[i] = score
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	// Stable sort keeps the catalog's MSRP-descending order as tie-break
	sort.SliceStable(scores, func(i, j int) bool {
		return scores[i].TotalScore > scores[j].TotalScore
	})

	if len(scores) > limit {
		scores = scores[:limit]
	}
	return scores, nil
}

// scoreVehicle runs all six scoring modules for one vehicle and combines
// their verdicts into a ranked score.
func (e *RecommendationEngine) scoreVehicle(ctx context.Context, vehicle domain.Vehicle, profile domain.UserPreferences) (domain.VehicleScore, error) {
	featureProfile, err := e.enrichment.GetProfile(ctx, vehicle.Year, vehicle.Model)
	if err != nil {
		if ctx.Err() != nil {
			return domain.VehicleScore{}, ctx.Err()
		}
		// Score with neutral feature data rather than dropping the vehicle
		log.Printf("[ENGINE] Enrichment unavailable for %s %s %s: %v", vehicle.Year, vehicle.Make, vehicle.Model, err)
		featureProfile = nil
	}

	params := ScoringParams{
		Vehicle:     vehicle,
		Preferences: profile,
		Weights:     e.weights,
		Normalizer:  e.normalizer,
		Profile:     featureProfile,
	}

	// Modules are pure, so they run concurrently into fixed slots
	var typeRes, priceRes, featureRes, passengerRes, usageRes, fuelRes ModuleResult
	g, _ := errgroup.WithContext(ctx)
	g.Go(func() error { typeRes = scoreVehicleType(params); return nil })
	g.Go(func() error { priceRes = scorePriceCompatibility(params); return nil })
	g.Go(func() error { featureRes = scoreFeatureAlignment(params); return nil })
	g.Go(func() error { passengerRes = scorePassengerCapacity(params); return nil })
	g.Go(func() error { usageRes = scoreUsageCompatibility(params); return nil })
	g.Go(func() error { fuelRes = scoreFuelTypeMatch(params); return nil })
	if err := g.Wait(); err != nil {
		return domain.VehicleScore{}, err
	}

	factors := domain.ScoreFactors{
		VehicleTypeMatch:   normalizeScore(typeRes.Score, e.normalizer),
		PriceCompatibility: normalizeScore(priceRes.Score, e.normalizer),
		FeatureAlignment:   normalizeScore(featureRes.Score, e.normalizer),
		PassengerFit:       normalizeScore(passengerRes.Score, e.normalizer),
		FuelTypeMatch:      normalizeScore(fuelRes.Score, e.normalizer),
		UsageCompatibility: normalizeScore(usageRes.Score, e.normalizer),
		LocationFactor:     0, // location-aware scoring not implemented
	}

	totalScore := (factors.VehicleTypeMatch*e.weights.VehicleTypeMatch +
		factors.PriceCompatibility*e.weights.PriceCompatibility +
		factors.FeatureAlignment*e.weights.FeatureAlignment +
		factors.PassengerFit*e.weights.PassengerFit +
		factors.FuelTypeMatch*e.weights.FuelTypeMatch +
		factors.UsageCompatibility*e.weights.UsageCompatibility +
		factors.LocationFactor*e.weights.LocationFactor) / e.weights.Sum()

	confidence := computeConfidence([]float64{
		factors.VehicleTypeMatch,
		factors.PriceCompatibility,
		factors.FeatureAlignment,
		factors.PassengerFit,
		factors.FuelTypeMatch,
		factors.UsageCompatibility,
		typeRes.Confidence,
		priceRes.Confidence,
		featureRes.Confidence,
		passengerRes.Confidence,
		usageRes.Confidence,
		fuelRes.Confidence,
	})

	metadata := domain.ScoreMetadata{
		MatchingFeatures: orEmpty(featureRes.MatchingFeatures),
		MissingFeatures:  orEmpty(featureRes.MissingFeatures),
		FeatureNotes:     featureRes.Notes,
		UsageAnalysis:    orEmpty(usageRes.Notes),
	}
	if priceRes.PriceAnalysis != nil {
		metadata.PriceAnalysis = *priceRes.PriceAnalysis
	}
	metadata.PassengerAnalysis = passengerRes.PassengerAnalysis

	return domain.VehicleScore{
		VehicleID:       vehicle.ID,
		Vehicle:         vehicle,
		TotalScore:      totalScore * 100,
		ConfidenceScore: confidence,
		Factors:         factors,
		Metadata:        metadata,
	}, nil
}

func orEmpty(items []string) []string {
	if items == nil {
		return []string{}
	}
	return items
}
