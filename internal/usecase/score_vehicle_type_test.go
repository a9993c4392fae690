package usecase

import (
	"testing"

	"github.com/gearmatch/backend/internal/domain"
)

func typeParams(sizeClass string, preferred ...string) ScoringParams {
	return ScoringParams{
		Vehicle:     domain.Vehicle{VehicleSizeClass: sizeClass},
		Preferences: domain.UserPreferences{VehicleTypes: preferred},
	}
}

func TestScoreVehicleType(t *testing.T) {
	t.Run("no preference scores neutral with full confidence", func(t *testing.T) {
		result := scoreVehicleType(typeParams("Sport Utility Vehicle"))
		if result.Score != 0.5 {
			t.Errorf("score = %v, want 0.5", result.Score)
		}
		if result.Confidence != 1 {
			t.Errorf("confidence = %v, want 1", result.Confidence)
		}
	})

	t.Run("exact substring match scores full", func(t *testing.T) {
		result := scoreVehicleType(typeParams("Small Sport Utility Vehicle 4WD", "sport utility"))
		if result.Score != 1 {
			t.Errorf("score = %v, want 1", result.Score)
		}
		if result.Confidence != 1 {
			t.Errorf("confidence = %v, want 1", result.Confidence)
		}
	})

	t.Run("match is case-insensitive", func(t *testing.T) {
		result := scoreVehicleType(typeParams("MIDSIZE SEDAN", "Sedan"))
		if result.Score != 1 {
			t.Errorf("score = %v, want 1", result.Score)
		}
	})

	t.Run("related type scores its similarity with reduced confidence", func(t *testing.T) {
		result := scoreVehicleType(typeParams("Compact Crossover", "suv"))
		if result.Score != 0.9 {
			t.Errorf("score = %v, want 0.9", result.Score)
		}
		if result.Confidence != 0.9 {
			t.Errorf("confidence = %v, want 0.9", result.Confidence)
		}
	})

	t.Run("best related match wins among relations", func(t *testing.T) {
		// Wagon relates to suv at 0.7 and to sedan at 0.6
		result := scoreVehicleType(typeParams("Station Wagon", "sedan"))
		if result.Score != 0.6 {
			t.Errorf("score = %v, want 0.6", result.Score)
		}
	})

	t.Run("hybrid preference matches electric fully", func(t *testing.T) {
		result := scoreVehicleType(typeParams("Electric Vehicle", "hybrid/electric"))
		if result.Score != 1 {
			t.Errorf("score = %v, want 1", result.Score)
		}
	})

	t.Run("no relation scores zero", func(t *testing.T) {
		result := scoreVehicleType(typeParams("Two Seater Coupe", "truck"))
		if result.Score != 0 {
			t.Errorf("score = %v, want 0", result.Score)
		}
		if result.Confidence != 1 {
			t.Errorf("confidence = %v, want 1", result.Confidence)
		}
	})

	t.Run("multiple strong matches earn a bonus", func(t *testing.T) {
		// Minivan matches "minivan" exactly (1.0) and relates to suv (0.6);
		// crossover matches suv at 0.9. Crossover-minivan would only hit
		// one, so compare against a body satisfying two preferences.
		single := scoreVehicleType(typeParams("Crossover", "suv"))
		double := scoreVehicleType(typeParams("Hybrid Electric Crossover", "suv", "hybrid/electric"))
		if double.Score <= single.Score {
			t.Errorf("double match = %v, single match = %v, want double higher", double.Score, single.Score)
		}
		if double.Score > 1 {
			t.Errorf("score = %v, want capped at 1", double.Score)
		}
	})

	t.Run("missing size class scores zero with note", func(t *testing.T) {
		result := scoreVehicleType(typeParams("", "suv"))
		if result.Score != 0 {
			t.Errorf("score = %v, want 0", result.Score)
		}
		if len(result.Notes) == 0 {
			t.Error("expected an explanatory note")
		}
	})

	t.Run("other vehicle type counts as a preference", func(t *testing.T) {
		params := typeParams("Roadster Convertible")
		params.Preferences.OtherVehicleType = "convertible"
		result := scoreVehicleType(params)
		if result.Score != 1 {
			t.Errorf("score = %v, want 1", result.Score)
		}
	})
}
