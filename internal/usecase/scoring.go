package usecase

import (
	"math"

	"github.com/gearmatch/backend/internal/domain"
)

// Scoring curve parameters. The power curve stretches mid-range scores so
// that strong matches separate more clearly from mediocre ones.
const (
	normalizerWeight  = 1.2 // amplification applied before the curve
	scoreCurvePower   = 1.5 // exponent of the separation curve
	confidencePower   = 1.2 // exponent of the mean-confidence bonus
	varianceScale     = 200 // variance-to-penalty conversion on the 0-1 scale
	maxVariancePenalty = 0.7
)

// DefaultWeights is the fixed factor weight vector. Location carries zero
// weight until location-aware scoring ships.
var DefaultWeights = domain.ScoringWeights{
	VehicleTypeMatch:   0.2,
	PriceCompatibility: 0.25,
	FeatureAlignment:   0.2,
	PassengerFit:       0.1,
	FuelTypeMatch:      0.15,
	UsageCompatibility: 0.1,
	LocationFactor:     0,
}

// DefaultNormalizer maps raw module scores onto the canonical 0-1 range.
var DefaultNormalizer = domain.ScoreNormalizer{Min: 0, Max: 1, Weight: normalizerWeight}

// ScoringParams is everything a scoring module may consult for one vehicle.
// Modules treat it as read-only; all provider data arrives pre-fetched in
// Profile so the modules themselves stay side-effect free.
type ScoringParams struct {
	Vehicle     domain.Vehicle
	Preferences domain.UserPreferences
	Weights     domain.ScoringWeights
	Normalizer  domain.ScoreNormalizer

	// Profile is the enrichment result for this model year. Nil when
	// enrichment failed; modules then fall back to neutral scores with
	// reduced confidence.
	Profile *domain.FeatureProfile
}

// ModuleResult is a single module's verdict: a raw 0-1 score, the module's
// confidence in that score, and whatever explanation it can offer.
type ModuleResult struct {
	Score      float64
	Confidence float64

	MatchingFeatures []string
	MissingFeatures  []string
	Notes            []string

	PriceAnalysis     *domain.PriceAnalysis
	PassengerAnalysis *domain.PassengerAnalysis
}

// neutralResult is what a module returns when the preference it scores was
// never expressed, or when its inputs are missing.
func neutralResult(score, confidence float64, note string) ModuleResult {
	r := ModuleResult{Score: score, Confidence: confidence}
	if note != "" {
		r.Notes = []string{note}
	}
	return r
}

// normalizeScore rescales a raw module score into the canonical range,
// amplifies it by the normalizer weight, and applies the separation curve.
// Output is always within [0, 1].
func normalizeScore(raw float64, n domain.ScoreNormalizer) float64 {
	span := n.Max - n.Min
	if span <= 0 {
		span = 1
	}
	scaled := (raw - n.Min) / span
	scaled = clamp01(scaled * n.Weight)
	return math.Pow(scaled, scoreCurvePower)
}

// computeConfidence converts per-module confidences into one 0-100 score.
// Agreement between modules (low variance) earns back confidence lost to
// uncertain individual verdicts.
func computeConfidence(confidences []float64) float64 {
	if len(confidences) == 0 {
		return 0
	}

	var sum float64
	for _, c := range confidences {
		sum += c
	}
	mean := sum / float64(len(confidences))

	var variance float64
	for _, c := range confidences {
		d := c - mean
		variance += d * d
	}
	variance /= float64(len(confidences))

	penalty := math.Min(variance*varianceScale, maxVariancePenalty)
	bonus := math.Pow(mean, confidencePower)

	return clamp01(bonus-penalty) * 100
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
