package usecase

import (
	"testing"

	"github.com/gearmatch/backend/internal/domain"
)

func profileWith(features map[string]domain.FeatureAvailability) *domain.FeatureProfile {
	return &domain.FeatureProfile{
		VehicleKey: "2024-Test",
		Features:   features,
	}
}

func featureParams(profile *domain.FeatureProfile, desired []string, priorities []string) ScoringParams {
	return ScoringParams{
		Preferences: domain.UserPreferences{Features: desired, Priorities: priorities},
		Profile:     profile,
	}
}

func TestScoreFeatureAlignment(t *testing.T) {
	t.Run("no desired features scores neutral", func(t *testing.T) {
		result := scoreFeatureAlignment(featureParams(profileWith(nil), nil, nil))
		if result.Score != 0.5 {
			t.Errorf("score = %v, want 0.5", result.Score)
		}
		if result.Confidence != 1 {
			t.Errorf("confidence = %v, want 1", result.Confidence)
		}
	})

	t.Run("missing profile degrades to neutral with low confidence", func(t *testing.T) {
		result := scoreFeatureAlignment(featureParams(nil, []string{"awd"}, nil))
		if result.Score != 0.5 {
			t.Errorf("score = %v, want 0.5", result.Score)
		}
		if result.Confidence != 0.3 {
			t.Errorf("confidence = %v, want 0.3", result.Confidence)
		}
	})

	t.Run("splits matching and missing features", func(t *testing.T) {
		profile := profileWith(map[string]domain.FeatureAvailability{
			"awd":          {Available: true, Confidence: 0.9},
			"sunroof":      {Available: false, Confidence: 0.8},
			"heated-seats": {Available: true, Confidence: 0.95, Notes: "Standard on XLE and above"},
		})
		result := scoreFeatureAlignment(featureParams(profile, []string{"awd", "sunroof", "heated-seats"}, nil))

		if len(result.MatchingFeatures) != 2 {
			t.Errorf("matching = %v, want 2 entries", result.MatchingFeatures)
		}
		if len(result.MissingFeatures) != 1 || result.MissingFeatures[0] != "sunroof" {
			t.Errorf("missing = %v, want [sunroof]", result.MissingFeatures)
		}
		if len(result.Notes) != 1 {
			t.Errorf("notes = %v, want the availability note carried through", result.Notes)
		}
	})

	t.Run("unclassified feature counts missing at half confidence", func(t *testing.T) {
		profile := profileWith(map[string]domain.FeatureAvailability{
			"awd": {Available: true, Confidence: 1},
		})
		result := scoreFeatureAlignment(featureParams(profile, []string{"awd", "massaging-seats"}, nil))

		if len(result.MissingFeatures) != 1 || result.MissingFeatures[0] != "massaging-seats" {
			t.Errorf("missing = %v, want [massaging-seats]", result.MissingFeatures)
		}
		// (1 + 0.5) / 2
		if !almostEqual(result.Confidence, 0.75) {
			t.Errorf("confidence = %v, want 0.75", result.Confidence)
		}
	})

	t.Run("all features present earns the full-match bonus", func(t *testing.T) {
		profile := profileWith(map[string]domain.FeatureAvailability{
			"awd": {Available: true, Confidence: 1},
		})
		result := scoreFeatureAlignment(featureParams(profile, []string{"awd"}, nil))
		if result.Score != 1 {
			t.Errorf("score = %v, want 1 (base plus bonuses, capped)", result.Score)
		}
	})

	t.Run("priority matches raise the score", func(t *testing.T) {
		profile := profileWith(map[string]domain.FeatureAvailability{
			"awd":     {Available: true, Confidence: 1},
			"sunroof": {Available: false, Confidence: 1},
		})
		desired := []string{"awd", "sunroof"}

		plain := scoreFeatureAlignment(featureParams(profile, desired, nil))
		prioritized := scoreFeatureAlignment(featureParams(profile, desired, []string{"awd"}))
		if prioritized.Score <= plain.Score {
			t.Errorf("prioritized = %v, plain = %v, want prioritized higher", prioritized.Score, plain.Score)
		}
	})

	t.Run("missing a top priority feature costs extra", func(t *testing.T) {
		profile := profileWith(map[string]domain.FeatureAvailability{
			"awd":     {Available: true, Confidence: 1},
			"sunroof": {Available: false, Confidence: 1},
		})
		desired := []string{"awd", "sunroof"}

		plain := scoreFeatureAlignment(featureParams(profile, desired, nil))
		missed := scoreFeatureAlignment(featureParams(profile, desired, []string{"sunroof"}))
		if missed.Score >= plain.Score {
			t.Errorf("missed priority = %v, plain = %v, want missed lower", missed.Score, plain.Score)
		}
	})

	t.Run("balanced category coverage beats lopsided coverage", func(t *testing.T) {
		// Two matches spread over safety and comfort
		balanced := profileWith(map[string]domain.FeatureAvailability{
			"awd":     {Available: true, Confidence: 1},
			"sunroof": {Available: true, Confidence: 1},
			"towing":  {Available: false, Confidence: 1},
		})
		// Two matches piled into safety
		lopsided := profileWith(map[string]domain.FeatureAvailability{
			"awd":         {Available: true, Confidence: 1},
			"lane-assist": {Available: true, Confidence: 1},
			"towing":      {Available: false, Confidence: 1},
		})

		balancedResult := scoreFeatureAlignment(featureParams(balanced, []string{"awd", "sunroof", "towing"}, nil))
		lopsidedResult := scoreFeatureAlignment(featureParams(lopsided, []string{"awd", "lane-assist", "towing"}, nil))
		if balancedResult.Score <= lopsidedResult.Score {
			t.Errorf("balanced = %v, lopsided = %v, want balanced higher", balancedResult.Score, lopsidedResult.Score)
		}
	})
}

func TestPriorityMatchBonus(t *testing.T) {
	t.Run("no priorities means no bonus", func(t *testing.T) {
		if got := priorityMatchBonus([]string{"awd"}, nil); got != 0 {
			t.Errorf("bonus = %v, want 0", got)
		}
	})

	t.Run("only the top three priorities count", func(t *testing.T) {
		matching := []string{"heads-up"}
		priorities := []string{"awd", "sunroof", "towing", "heads-up"}
		if got := priorityMatchBonus(matching, priorities); got != 0 {
			t.Errorf("bonus = %v, want 0 for a match outside the top three", got)
		}
	})

	t.Run("all top three matched earns the cap", func(t *testing.T) {
		matching := []string{"awd", "sunroof", "towing"}
		priorities := []string{"awd", "sunroof", "towing"}
		if got := priorityMatchBonus(matching, priorities); !almostEqual(got, priorityBonusCap) {
			t.Errorf("bonus = %v, want %v", got, priorityBonusCap)
		}
	})
}
