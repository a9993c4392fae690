package usecase

import (
	"fmt"
	"math"
	"strings"
)

// noPreferenceScore is the mild positive a vehicle gets when the user has
// no fuel preference at all.
const noPreferenceScore = 0.75

const (
	multiFuelBonus  = 0.1
	efficiencyBonus = 0.05
)

// fuelRelation maps a preferred fuel to catalog fuel-type substrings it
// partially satisfies.
type fuelRelation struct {
	fuel       string
	similarity float64
	note       string
}

var fuelCompatibility = map[string][]fuelRelation{
	"gasoline": {
		{"gas", 1, "Standard gasoline engine"},
		{"hybrid", 0.9, "Hybrid powertrain with gasoline engine"},
		{"plug-in hybrid", 0.8, "Plug-in hybrid with gasoline engine"},
		{"flex", 0.7, "Flex-fuel capability"},
	},
	"hybrid": {
		{"hybrid", 1, "Hybrid powertrain"},
		{"plug-in hybrid", 0.9, "Advanced plug-in hybrid system"},
		{"gas", 0.7, "Conventional gasoline engine"},
		{"electric", 0.6, "Full electric powertrain"},
	},
	"electric": {
		{"electric", 1, "Full electric powertrain"},
		{"fuel cell", 0.9, "Hydrogen fuel cell"},
		{"plug-in hybrid", 0.8, "Plug-in hybrid capability"},
		{"hybrid", 0.6, "Hybrid powertrain"},
	},
	"diesel": {
		{"diesel", 1, "Diesel engine"},
		{"biodiesel", 0.9, "Biodiesel compatible"},
		{"hybrid diesel", 0.8, "Diesel hybrid system"},
	},
}

// scoreFuelTypeMatch scores the vehicle's powertrain against the user's
// fuel preference. An exact substring match wins outright; otherwise the
// compatibility table finds the closest alternative, with bonuses for
// multi-fuel flexibility and efficient powertrains.
func scoreFuelTypeMatch(p ScoringParams) ModuleResult {
	preferred := strings.ToLower(p.Preferences.FuelPreference)
	if preferred == "" {
		return neutralResult(0.5, 1, "No fuel type preference specified")
	}

	fuelTypes := make([]string, 0, 3)
	seen := map[string]bool{}
	for _, t := range p.Vehicle.FuelTypes() {
		lower := strings.ToLower(t)
		if !seen[lower] {
			seen[lower] = true
			fuelTypes = append(fuelTypes, lower)
		}
	}

	if preferred == "no-preference" {
		return neutralResult(noPreferenceScore, 1, "No specific fuel type preference")
	}

	for _, t := range fuelTypes {
		if strings.Contains(t, preferred) {
			return ModuleResult{
				Score:      1,
				Confidence: 1,
				Notes:      []string{fmt.Sprintf("Exact match: %s", t)},
			}
		}
	}

	var bestScore float64
	var bestNote string
	for _, t := range fuelTypes {
		for _, rel := range fuelCompatibility[preferred] {
			if strings.Contains(t, rel.fuel) && rel.similarity > bestScore {
				bestScore = rel.similarity
				bestNote = rel.note
			}
		}
	}

	score := bestScore
	var notes []string
	if bestNote != "" {
		notes = append(notes, bestNote)
	}

	if len(fuelTypes) > 1 {
		score = math.Min(score*(1+multiFuelBonus), 1)
		notes = append(notes, "Multiple fuel options available")
	}
	if hasAny(fuelTypes, "hybrid", "electric") {
		score = math.Min(score*(1+efficiencyBonus), 1)
		notes = append(notes, "Efficient powertrain option")
	}

	confidence := 0.9
	if bestScore == 0 {
		notes = append(notes, fmt.Sprintf("No compatible fuel type for %s preference", preferred))
		confidence = 1
	}

	return ModuleResult{Score: score, Confidence: confidence, Notes: notes}
}

func hasAny(fuelTypes []string, wanted ...string) bool {
	for _, t := range fuelTypes {
		for _, w := range wanted {
			if strings.Contains(t, w) {
				return true
			}
		}
	}
	return false
}
