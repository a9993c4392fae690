package usecase

import (
	"math"
	"strings"

	"github.com/gearmatch/backend/internal/domain"
)

// featureCategoryIndex is the category grouping as per-category sets, built
// once from the canonical catalog.
var featureCategoryIndex = buildCategoryIndex()

func buildCategoryIndex() map[string]map[string]bool {
	idx := make(map[string]map[string]bool, len(domain.FeatureCategories))
	for category, features := range domain.FeatureCategories {
		set := make(map[string]bool, len(features))
		for _, f := range features {
			set[f] = true
		}
		idx[category] = set
	}
	return idx
}

// Feature bonus caps. Priority matches look at the user's top three
// priorities only.
const (
	priorityBonusCap         = 0.15
	priorityWindow           = 3
	categoryBonusCap         = 0.1
	allFeaturesBonus         = 0.05
	missingPriorityFactor    = 0.9
	unknownFeatureConfidence = 0.5
)

// scoreFeatureAlignment scores the vehicle's classified feature set against
// the features the user asked for. The base match ratio is boosted by
// priority alignment and by balanced coverage across feature categories,
// then adjusted for complete matches and for missing top-priority features.
func scoreFeatureAlignment(p ScoringParams) ModuleResult {
	desired := p.Preferences.Features
	if len(desired) == 0 {
		return neutralResult(0.5, 1, "")
	}

	if p.Profile == nil {
		return neutralResult(0.5, 0.3, "Feature data unavailable")
	}

	var matching, missing, notes []string
	categoryMatched := map[string]int{}
	categoryTotal := map[string]int{}
	var totalConfidence float64

	for _, feature := range desired {
		info, known := p.Profile.Features[feature]
		if !known {
			missing = append(missing, feature)
			totalConfidence += unknownFeatureConfidence
			continue
		}

		if info.Available {
			matching = append(matching, feature)
			if info.Notes != "" {
				notes = append(notes, info.Notes)
			}
		} else {
			missing = append(missing, feature)
		}
		totalConfidence += info.Confidence

		if cat := featureCategory(feature); cat != "" {
			categoryTotal[cat]++
			if info.Available {
				categoryMatched[cat]++
			}
		}
	}

	baseScore := float64(len(matching)) / float64(len(desired))
	priorityBonus := priorityMatchBonus(matching, p.Preferences.Priorities)
	categoryBonus := categoryCoverageBonus(categoryMatched, categoryTotal)

	score := math.Min(baseScore*(1+priorityBonus+categoryBonus), 1)

	// Everything the user asked for is present
	if len(missing) == 0 {
		score = math.Min(score+allFeaturesBonus, 1)
	}

	// A missing feature named in the top priorities hurts more than the
	// match ratio alone reflects
	if missesTopPriority(missing, p.Preferences.Priorities) {
		score *= missingPriorityFactor
	}

	return ModuleResult{
		Score:            score,
		Confidence:       totalConfidence / float64(len(desired)),
		MatchingFeatures: matching,
		MissingFeatures:  missing,
		Notes:            notes,
	}
}

func featureCategory(feature string) string {
	for category, features := range featureCategoryIndex {
		if features[feature] {
			return category
		}
	}
	return ""
}

// priorityMatchBonus rewards matches on the user's top three priorities,
// up to 15%.
func priorityMatchBonus(matching, priorities []string) float64 {
	if len(priorities) == 0 {
		return 0
	}

	top := priorities
	if len(top) > priorityWindow {
		top = top[:priorityWindow]
	}

	matches := 0
	for _, priority := range top {
		if containsFold(matching, priority) {
			matches++
		}
	}
	return float64(matches) / priorityWindow * priorityBonusCap
}

// categoryCoverageBonus rewards balanced coverage across feature categories,
// up to 10%. An even spread beats the same match count piled into one
// category.
func categoryCoverageBonus(matched, total map[string]int) float64 {
	if len(total) == 0 {
		return 0
	}

	scores := make([]float64, 0, len(total))
	var sum float64
	for category, count := range total {
		s := float64(matched[category]) / float64(count)
		scores = append(scores, s)
		sum += s
	}
	mean := sum / float64(len(scores))

	var variance float64
	for _, s := range scores {
		d := s - mean
		variance += d * d
	}
	stddev := math.Sqrt(variance / float64(len(scores)))

	return mean * (1 - stddev) * categoryBonusCap
}

func missesTopPriority(missing, priorities []string) bool {
	top := priorities
	if len(top) > priorityWindow {
		top = top[:priorityWindow]
	}
	for _, priority := range top {
		if containsFold(missing, priority) {
			return true
		}
	}
	return false
}

// containsFold reports whether any item case-insensitively contains needle
func containsFold(items []string, needle string) bool {
	needleLower := strings.ToLower(needle)
	for _, item := range items {
		if strings.Contains(strings.ToLower(item), needleLower) {
			return true
		}
	}
	return false
}
