package usecase

import (
	"fmt"
	"math"

	"github.com/gearmatch/backend/internal/domain"
)

// Passenger capacity model: catalog passenger volume is converted to seats
// at 55 cubic feet per passenger.
const (
	volumePerPassenger = 55.0

	undershootPenalty     = 0.8 // applied when capacity falls short
	flexibilityBonusScale = 0.2
	comfortFloor          = 0.8
	comfortScale          = 0.2
	viableComfortCutoff   = 0.7

	volumeConfidence            = 0.9
	estimatedCapacityConfidence = 0.7
)

// seatingConfig is one body configuration's derived capacity and comfort.
type seatingConfig struct {
	name       string
	capacity   int
	comfort    float64
	confidence float64
}

// scorePassengerCapacity scores how well the vehicle seats the requested
// passenger count. Capacity per configuration is derived from catalog
// volumes; when the catalog has none, the enrichment profile's third-row
// verdict drives a 5- or 7-seat estimate.
func scorePassengerCapacity(p ScoringParams) ModuleResult {
	if p.Preferences.PassengerCount == nil || *p.Preferences.PassengerCount <= 0 {
		return ModuleResult{
			Score:      0.5,
			Confidence: 1,
			PassengerAnalysis: &domain.PassengerAnalysis{
				ActualCapacity: 5,
				Configuration:  "standard",
				Notes:          "No passenger capacity preference specified",
			},
		}
	}
	desired := *p.Preferences.PassengerCount

	configs := seatingConfigs(p.Vehicle, p.Profile)

	// Closest capacity to the request wins
	best := configs[0]
	for _, c := range configs[1:] {
		if abs(c.capacity-desired) < abs(best.capacity-desired) {
			best = c
		}
	}

	capacityDiff := abs(best.capacity - desired)
	baseScore := math.Max(0, 1-float64(capacityDiff)/float64(desired))

	if best.capacity < desired {
		baseScore *= undershootPenalty
	}

	flexibility := flexibilityScore(configs, desired)
	score := math.Min(baseScore*(1+flexibility*flexibilityBonusScale), 1)
	score = math.Min(score*(comfortFloor+best.comfort*comfortScale), 1)

	notes := fmt.Sprintf("%s configuration with %d passenger capacity", best.name, best.capacity)
	if p.Profile.Has("third-row") {
		notes += "; includes third row seating"
	}

	return ModuleResult{
		Score:      score,
		Confidence: best.confidence,
		PassengerAnalysis: &domain.PassengerAnalysis{
			ActualCapacity: best.capacity,
			Configuration:  best.name,
			Notes:          notes,
		},
	}
}

// seatingConfigs derives one config per catalog volume column, falling back
// to a third-row based estimate when the catalog has no volume data.
func seatingConfigs(v domain.Vehicle, profile *domain.FeatureProfile) []seatingConfig {
	var configs []seatingConfig

	if v.TwoDoorPassengerVolume != nil {
		vol := *v.TwoDoorPassengerVolume
		configs = append(configs, seatingConfig{
			name:       "2-door",
			capacity:   int(math.Round(vol / volumePerPassenger)),
			comfort:    comfortScore(vol, 2),
			confidence: volumeConfidence,
		})
	}
	if v.FourDoorPassengerVolume != nil {
		vol := *v.FourDoorPassengerVolume
		configs = append(configs, seatingConfig{
			name:       "4-door",
			capacity:   int(math.Round(vol / volumePerPassenger)),
			comfort:    comfortScore(vol, 4),
			confidence: volumeConfidence,
		})
	}
	if v.HatchbackPassengerVolume != nil {
		vol := *v.HatchbackPassengerVolume
		configs = append(configs, seatingConfig{
			name:       "hatchback",
			capacity:   int(math.Round(vol / volumePerPassenger)),
			comfort:    comfortScore(vol, 4),
			confidence: volumeConfidence,
		})
	}

	if len(configs) == 0 {
		capacity, comfort := 5, 0.9
		confidence := profile.FeatureConfidence("third-row", estimatedCapacityConfidence)
		if profile.Has("third-row") {
			capacity, comfort = 7, 0.8
		}
		configs = append(configs, seatingConfig{
			name:       "estimated",
			capacity:   capacity,
			comfort:    comfort,
			confidence: confidence,
		})
	}

	return configs
}

// comfortScore rates roominess against the per-passenger ideal, with a
// bonus for four-door access.
func comfortScore(volume float64, doors int) float64 {
	base := math.Min(volume/(volumePerPassenger*float64(doors)), 1)
	if doors == 4 {
		base += 0.1
	}
	return math.Min(base, 1)
}

// flexibilityScore is the share of configurations that seat the request
// comfortably. A single configuration earns nothing.
func flexibilityScore(configs []seatingConfig, desired int) float64 {
	if len(configs) == 1 {
		return 0
	}

	viable := 0
	for _, c := range configs {
		if c.capacity >= desired && c.comfort >= viableComfortCutoff {
			viable++
		}
	}
	return math.Min(float64(viable)/float64(len(configs)), 1)
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
