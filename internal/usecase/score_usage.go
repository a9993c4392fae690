package usecase

import (
	"fmt"
	"strings"

	"github.com/gearmatch/backend/internal/domain"
)

// Usage aggregation weights: a use case listed in the user's priorities
// weighs 1 minus 0.1 per rank; unranked use cases weigh 0.5.
const (
	priorityRankStep    = 0.1
	unrankedUsageWeight = 0.5
)

const efficientMPGThreshold = 30
const longRangeThreshold = 400.0

// useCaseVerdict is one analyzer's result for one use case.
type useCaseVerdict struct {
	score      float64
	confidence float64
	notes      []string
}

// scoreUsageCompatibility scores the vehicle against every use case the
// user selected, then averages the verdicts weighted by both priority rank
// and analyzer confidence.
func scoreUsageCompatibility(p ScoringParams) ModuleResult {
	usages := p.Preferences.Usage
	if len(usages) == 0 {
		return neutralResult(0.5, 1, "")
	}

	var notes []string
	var weightedSum, weightTotal, confidenceSum float64

	for _, usage := range usages {
		verdict := analyzeUseCase(usage, p.Vehicle, p.Profile)

		weight := unrankedUsageWeight
		for idx, priority := range p.Preferences.Priorities {
			if priority == usage {
				weight = 1 - float64(idx)*priorityRankStep
				break
			}
		}

		weightedSum += verdict.score * verdict.confidence * weight
		weightTotal += verdict.confidence * weight
		confidenceSum += verdict.confidence

		if len(verdict.notes) > 0 {
			notes = append(notes, fmt.Sprintf("%s: %s", usage, strings.Join(verdict.notes, ". ")))
		}
	}

	var score float64
	if weightTotal > 0 {
		score = weightedSum / weightTotal
	}

	return ModuleResult{
		Score:      clamp01(score),
		Confidence: confidenceSum / float64(len(usages)),
		Notes:      notes,
	}
}

func analyzeUseCase(usage string, v domain.Vehicle, profile *domain.FeatureProfile) useCaseVerdict {
	// Prefer the provider's direct suitability verdict when enrichment
	// analyzed this use case
	if profile != nil {
		if suitability, ok := profile.UseCases[usage]; ok && suitability.Confidence > 0 {
			return useCaseVerdict{
				score:      clamp01(suitability.Score),
				confidence: clamp01(suitability.Confidence),
				notes:      suitability.Notes,
			}
		}
	}

	switch usage {
	case "daily-commuting":
		return analyzeDailyCommuting(v, profile)
	case "road-trips":
		return analyzeRoadTrips(v, profile)
	case "off-roading":
		return analyzeOffRoading(v, profile)
	case "family":
		return analyzeFamilyUse(v, profile)
	case "business":
		return analyzeBusinessUse(v, profile)
	case "adventure":
		return analyzeAdventureUse(v, profile)
	default:
		return useCaseVerdict{
			score:      0.5,
			confidence: 0.5,
			notes:      []string{"Usage scenario not specifically analyzed"},
		}
	}
}

// featureAvailabilityRatio is the share of the listed features the profile
// reports as available.
func featureAvailabilityRatio(profile *domain.FeatureProfile, features []string) float64 {
	available := 0
	for _, f := range features {
		if profile.Has(f) {
			available++
		}
	}
	return float64(available) / float64(len(features))
}

func analyzeDailyCommuting(v domain.Vehicle, profile *domain.FeatureProfile) useCaseVerdict {
	featureScore := featureAvailabilityRatio(profile, []string{
		"safety-package", "lane-assist", "blind-spot", "smartphone", "heated-seats",
	})

	var notes []string
	score := featureScore * 0.6

	if strings.Contains(strings.ToLower(v.FuelType), "hybrid") {
		score += 0.2
		notes = append(notes, "Hybrid powertrain ideal for commuting")
	}
	if v.CombinedMPG != nil && *v.CombinedMPG > efficientMPGThreshold {
		score += 0.1
		notes = append(notes, "High fuel efficiency")
	}
	if strings.Contains(strings.ToLower(v.VehicleSizeClass), "compact") {
		score += 0.1
		notes = append(notes, "Compact size good for city driving")
	}

	return useCaseVerdict{score: clamp01(score), confidence: 0.9, notes: notes}
}

func analyzeRoadTrips(v domain.Vehicle, profile *domain.FeatureProfile) useCaseVerdict {
	featureScore := featureAvailabilityRatio(profile, []string{
		"heated-seats", "premium-audio", "large-screen", "wireless-charging", "heads-up",
	})

	var notes []string
	score := featureScore * 0.5

	if v.RangeMiles != nil && *v.RangeMiles > longRangeThreshold {
		score += 0.2
		notes = append(notes, "Excellent driving range")
	}
	if v.CombinedMPG != nil && *v.CombinedMPG > efficientMPGThreshold {
		score += 0.2
		notes = append(notes, "Good fuel efficiency for long trips")
	}
	sizeClass := strings.ToLower(v.VehicleSizeClass)
	if strings.Contains(sizeClass, "suv") || strings.Contains(sizeClass, "sedan") {
		score += 0.1
		notes = append(notes, "Comfortable size for long trips")
	}

	return useCaseVerdict{score: clamp01(score), confidence: 0.9, notes: notes}
}

func analyzeOffRoading(v domain.Vehicle, profile *domain.FeatureProfile) useCaseVerdict {
	featureScore := featureAvailabilityRatio(profile, []string{
		"awd", "towing", "adaptive-suspension",
	})

	var notes []string
	score := featureScore * 0.4

	drive := strings.ToLower(v.Drive)
	if strings.Contains(drive, "awd") || strings.Contains(drive, "4wd") || strings.Contains(drive, "all-wheel") || strings.Contains(drive, "4-wheel") {
		score += 0.4
		notes = append(notes, "AWD/4WD capability")
	}
	sizeClass := strings.ToLower(v.VehicleSizeClass)
	if strings.Contains(sizeClass, "suv") || strings.Contains(sizeClass, "truck") {
		score += 0.2
		notes = append(notes, "Body style suitable for off-road")
	}

	return useCaseVerdict{score: clamp01(score), confidence: 0.8, notes: notes}
}

func analyzeFamilyUse(v domain.Vehicle, profile *domain.FeatureProfile) useCaseVerdict {
	featureScore := featureAvailabilityRatio(profile, []string{
		"third-row", "safety-package", "blind-spot", "lane-assist", "wireless-charging",
	})

	var notes []string
	score := featureScore * 0.4

	if profile.Has("third-row") {
		score += 0.3
		notes = append(notes, "Third row seating available")
	}
	sizeClass := strings.ToLower(v.VehicleSizeClass)
	if strings.Contains(sizeClass, "suv") || strings.Contains(sizeClass, "minivan") {
		score += 0.2
		notes = append(notes, "Family-friendly size")
	}
	if profile.Has("safety-package") {
		score += 0.1
		notes = append(notes, "Advanced safety features")
	}

	return useCaseVerdict{score: clamp01(score), confidence: 0.9, notes: notes}
}

func analyzeBusinessUse(v domain.Vehicle, profile *domain.FeatureProfile) useCaseVerdict {
	featureScore := featureAvailabilityRatio(profile, []string{
		"premium-audio", "heated-seats", "large-screen", "wireless-charging", "heads-up",
	})

	var notes []string
	score := featureScore * 0.4

	sizeClass := strings.ToLower(v.VehicleSizeClass)
	if strings.Contains(sizeClass, "luxury") {
		score += 0.3
		notes = append(notes, "Luxury vehicle suitable for business")
	}
	if strings.Contains(sizeClass, "sedan") {
		score += 0.2
		notes = append(notes, "Professional sedan styling")
	}
	if profile.Has("premium-audio") {
		score += 0.1
		notes = append(notes, "Premium amenities")
	}

	return useCaseVerdict{score: clamp01(score), confidence: 0.85, notes: notes}
}

func analyzeAdventureUse(v domain.Vehicle, profile *domain.FeatureProfile) useCaseVerdict {
	featureScore := featureAvailabilityRatio(profile, []string{
		"awd", "towing", "adaptive-suspension", "sport-mode",
	})

	var notes []string
	score := featureScore * 0.3

	drive := strings.ToLower(v.Drive)
	if strings.Contains(drive, "awd") || strings.Contains(drive, "4wd") || strings.Contains(drive, "all-wheel") || strings.Contains(drive, "4-wheel") {
		score += 0.3
		notes = append(notes, "AWD/4WD capability")
	}
	if profile.Has("towing") {
		score += 0.2
		notes = append(notes, "Towing capability")
	}
	sizeClass := strings.ToLower(v.VehicleSizeClass)
	if strings.Contains(sizeClass, "suv") || strings.Contains(sizeClass, "crossover") {
		score += 0.2
		notes = append(notes, "Adventure-ready body style")
	}

	return useCaseVerdict{score: clamp01(score), confidence: 0.85, notes: notes}
}
