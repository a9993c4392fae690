package usecase

import (
	"testing"

	"github.com/gearmatch/backend/internal/domain"
)

func fuelParams(preference string, vehicle domain.Vehicle) ScoringParams {
	return ScoringParams{
		Vehicle:     vehicle,
		Preferences: domain.UserPreferences{FuelPreference: preference},
	}
}

func TestScoreFuelTypeMatch(t *testing.T) {
	t.Run("empty preference scores neutral", func(t *testing.T) {
		result := scoreFuelTypeMatch(fuelParams("", domain.Vehicle{FuelType: "Regular Gas"}))
		if result.Score != 0.5 {
			t.Errorf("score = %v, want 0.5", result.Score)
		}
		if result.Confidence != 1 {
			t.Errorf("confidence = %v, want 1", result.Confidence)
		}
	})

	t.Run("no-preference scores mildly positive", func(t *testing.T) {
		result := scoreFuelTypeMatch(fuelParams("no-preference", domain.Vehicle{FuelType: "Diesel"}))
		if result.Score != noPreferenceScore {
			t.Errorf("score = %v, want %v", result.Score, noPreferenceScore)
		}
	})

	t.Run("exact substring match scores full", func(t *testing.T) {
		result := scoreFuelTypeMatch(fuelParams("diesel", domain.Vehicle{FuelType: "Turbocharged Diesel"}))
		if result.Score != 1 {
			t.Errorf("score = %v, want 1", result.Score)
		}
		if result.Confidence != 1 {
			t.Errorf("confidence = %v, want 1", result.Confidence)
		}
	})

	t.Run("secondary fuel column can carry the match", func(t *testing.T) {
		result := scoreFuelTypeMatch(fuelParams("electric", domain.Vehicle{
			FuelType1: "Regular Gasoline",
			FuelType2: "Electricity",
		}))
		if result.Score != 1 {
			t.Errorf("score = %v, want 1", result.Score)
		}
	})

	t.Run("gasoline preference accepts a hybrid at a discount", func(t *testing.T) {
		result := scoreFuelTypeMatch(fuelParams("gasoline", domain.Vehicle{FuelType: "Hybrid"}))
		// 0.9 related, then the efficiency bonus
		want := 0.9 * 1.05
		if !almostEqual(result.Score, want) {
			t.Errorf("score = %v, want %v", result.Score, want)
		}
		if result.Confidence != 0.9 {
			t.Errorf("confidence = %v, want 0.9", result.Confidence)
		}
	})

	t.Run("multi-fuel vehicles earn the flexibility bonus", func(t *testing.T) {
		single := scoreFuelTypeMatch(fuelParams("gasoline", domain.Vehicle{FuelType1: "Hybrid"}))
		multi := scoreFuelTypeMatch(fuelParams("gasoline", domain.Vehicle{
			FuelType1: "Hybrid",
			FuelType2: "Flex-Fuel",
		}))
		if multi.Score <= single.Score {
			t.Errorf("multi = %v, single = %v, want multi higher", multi.Score, single.Score)
		}
	})

	t.Run("electric preference rates fuel cell highly", func(t *testing.T) {
		result := scoreFuelTypeMatch(fuelParams("electric", domain.Vehicle{FuelType: "Hydrogen Fuel Cell"}))
		if result.Score != 0.9 {
			t.Errorf("score = %v, want 0.9", result.Score)
		}
	})

	t.Run("incompatible fuel scores zero with full confidence", func(t *testing.T) {
		result := scoreFuelTypeMatch(fuelParams("diesel", domain.Vehicle{FuelType: "Electricity"}))
		if result.Score != 0 {
			t.Errorf("score = %v, want 0", result.Score)
		}
		if result.Confidence != 1 {
			t.Errorf("confidence = %v, want 1", result.Confidence)
		}
	})
}

func TestHasAny(t *testing.T) {
	if !hasAny([]string{"plug-in hybrid"}, "hybrid", "electric") {
		t.Error("expected substring match on hybrid")
	}
	if hasAny([]string{"regular gas"}, "hybrid", "electric") {
		t.Error("expected no match for gasoline")
	}
}
