package domain

import "time"

// Availability modes reported by the enrichment provider.
const (
	AvailabilityStandard     = "standard"
	AvailabilityOptional     = "optional"
	AvailabilityVariesByTrim = "varies_by_trim"
)

// FeatureAvailability is the provider's verdict on a single feature.
type FeatureAvailability struct {
	Available  bool    `json:"available"`
	Confidence float64 `json:"confidence"` // 0-1
	Notes      string  `json:"notes,omitempty"`
}

// UseCaseSuitability is the provider's verdict on one use case, from the
// parallel use-case analysis request.
type UseCaseSuitability struct {
	Score      float64  `json:"score"`      // 0-1
	Confidence float64  `json:"confidence"` // 0-1
	Notes      []string `json:"notes,omitempty"`
}

// FeatureProfile is the cached per-(year, model) enrichment result.
// Owned by the feature enrichment cache; a profile older than the cache TTL
// is never served.
type FeatureProfile struct {
	VehicleKey string                         `json:"vehicleKey"` // "{year}-{model}"
	Features   map[string]FeatureAvailability `json:"features"`
	TrimLevels []string                       `json:"trimLevels,omitempty"`
	Mode       string                         `json:"availabilityMode,omitempty"`
	UseCases   map[string]UseCaseSuitability  `json:"useCases,omitempty"`
	Confidence float64                        `json:"confidence"` // mean of per-feature confidences
	Source     string                         `json:"source"`
	FetchedAt  time.Time                      `json:"fetchedAt"`
}

// Has reports whether a feature is known to be available.
func (p *FeatureProfile) Has(key string) bool {
	if p == nil {
		return false
	}
	return p.Features[key].Available
}

// FeatureConfidence returns the provider's confidence for a feature, or the
// fallback when the feature was never classified.
func (p *FeatureProfile) FeatureConfidence(key string, fallback float64) float64 {
	if p == nil {
		return fallback
	}
	if f, ok := p.Features[key]; ok {
		return f.Confidence
	}
	return fallback
}

// FeatureDefinitions are the canonical features sent to the enrichment
// provider for classification, keyed by feature slug.
var FeatureDefinitions = map[string]string{
	// Safety & assistance
	"awd":            "All-wheel drive (AWD) system",
	"safety-package": "Advanced safety package including pre-collision system and automatic emergency braking",
	"lane-assist":    "Lane departure warning and lane keeping assist",
	"blind-spot":     "Blind spot monitoring with rear cross-traffic alert",

	// Comfort & convenience
	"sunroof":           "Sunroof or moonroof",
	"heated-seats":      "Heated front seats",
	"third-row":         "Third-row seating",
	"wireless-charging": "Wireless phone charging pad",

	// Technology & entertainment
	"large-screen":  "Large touchscreen display (8 inches or larger)",
	"premium-audio": "Premium audio system",
	"smartphone":    "Apple CarPlay and Android Auto integration",
	"heads-up":      "Heads-up display",

	// Performance & capability
	"towing":              "Towing package or capability",
	"sport-mode":          "Sport driving mode",
	"adaptive-suspension": "Adaptive or variable suspension system",
	"paddle-shifters":     "Paddle shifters for manual gear control",
}

// FeatureCategories groups feature slugs for the features module's balanced
// coverage bonus.
var FeatureCategories = map[string][]string{
	"safety":      {"safety-package", "lane-assist", "blind-spot", "awd"},
	"comfort":     {"sunroof", "heated-seats", "third-row", "wireless-charging"},
	"technology":  {"large-screen", "premium-audio", "smartphone", "heads-up"},
	"performance": {"towing", "sport-mode", "adaptive-suspension", "paddle-shifters"},
}

// UseCaseNames are the use cases the provider is asked to analyze, matching
// the usage module's heuristics.
var UseCaseNames = []string{
	"daily-commuting",
	"road-trips",
	"off-roading",
	"family",
	"business",
	"adventure",
}
