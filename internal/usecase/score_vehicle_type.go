package usecase

import (
	"fmt"
	"math"
	"strings"
)

// typeRelation maps a preferred body style to catalog size-class substrings
// it partially satisfies, with a similarity score for each.
type typeRelation struct {
	class      string
	similarity float64
}

var vehicleTypeRelations = map[string][]typeRelation{
	"suv": {
		{"crossover", 0.9},
		{"wagon", 0.7},
		{"minivan", 0.6},
	},
	"sedan": {
		{"coupe", 0.8},
		{"hatchback", 0.7},
		{"wagon", 0.6},
	},
	"truck": {
		{"suv", 0.6},
		{"van", 0.5},
	},
	"hybrid/electric": {
		{"hybrid", 1},
		{"electric", 1},
		{"plug-in", 0.9},
	},
	"minivan": {
		{"van", 0.9},
		{"suv", 0.7},
		{"wagon", 0.6},
	},
	"sports": {
		{"coupe", 0.9},
		{"convertible", 0.8},
		{"performance", 0.8},
	},
}

// Multi-type bonus parameters: vehicles that satisfy several of the user's
// preferred body styles get a small boost.
const (
	multiTypeThreshold = 0.7
	multiTypeStep      = 0.1
	multiTypeBonusCap  = 0.2
)

const relatedMatchConfidence = 0.9

type typeMatch struct {
	score      float64
	confidence float64
	note       string
}

// scoreVehicleType scores how well the vehicle's body style matches the
// user's preferred types. The best single match wins, plus a bonus when the
// vehicle satisfies more than one preference.
func scoreVehicleType(p ScoringParams) ModuleResult {
	preferred := p.Preferences.VehicleTypes
	if p.Preferences.OtherVehicleType != "" {
		preferred = append(append([]string{}, preferred...), p.Preferences.OtherVehicleType)
	}
	if len(preferred) == 0 {
		return neutralResult(0.5, 1, "No vehicle type preferences specified")
	}

	best := typeMatch{confidence: 1}
	matchesAboveThreshold := 0
	for _, want := range preferred {
		m := matchVehicleType(want, p.Vehicle.VehicleSizeClass)
		if m.score > best.score {
			best = m
		}
		if m.score > multiTypeThreshold {
			matchesAboveThreshold++
		}
	}

	var bonus float64
	if matchesAboveThreshold > 1 {
		bonus = math.Min(float64(matchesAboveThreshold-1)*multiTypeStep, multiTypeBonusCap)
	}

	result := ModuleResult{
		Score:      clamp01(best.score + bonus),
		Confidence: best.confidence,
	}
	if best.note != "" {
		result.Notes = []string{best.note}
	}
	return result
}

func matchVehicleType(preferred, actual string) typeMatch {
	if actual == "" {
		return typeMatch{confidence: 1, note: "No vehicle type information available"}
	}

	preferredLower := strings.ToLower(preferred)
	actualLower := strings.ToLower(actual)

	if strings.Contains(actualLower, preferredLower) {
		return typeMatch{
			score:      1,
			confidence: 1,
			note:       fmt.Sprintf("Exact match: %s", preferred),
		}
	}

	var bestScore float64
	var bestClass string
	for _, rel := range vehicleTypeRelations[preferredLower] {
		if strings.Contains(actualLower, rel.class) && rel.similarity > bestScore {
			bestScore = rel.similarity
			bestClass = rel.class
		}
	}

	if bestScore > 0 {
		return typeMatch{
			score:      bestScore,
			confidence: relatedMatchConfidence,
			note: fmt.Sprintf("Related match: %s is %d%% similar to %s",
				bestClass, int(math.Round(bestScore*100)), preferred),
		}
	}

	return typeMatch{
		confidence: 1,
		note:       fmt.Sprintf("No match between %s and %s", preferred, actual),
	}
}
