package domain

// ScoreFactors holds the per-dimension factor scores on the engine's
// internal 0-1 scale.
type ScoreFactors struct {
	VehicleTypeMatch   float64 `json:"vehicleTypeMatch"`
	PriceCompatibility float64 `json:"priceCompatibility"`
	FeatureAlignment   float64 `json:"featureAlignment"`
	PassengerFit       float64 `json:"passengerFit"`
	FuelTypeMatch      float64 `json:"fuelTypeMatch"`
	UsageCompatibility float64 `json:"usageCompatibility"`
	LocationFactor     float64 `json:"locationFactor"`
}

// ScoringWeights is the fixed per-factor weight vector. Process-wide
// constant; never mutated per request.
type ScoringWeights struct {
	VehicleTypeMatch   float64 `json:"vehicleTypeMatch"`
	PriceCompatibility float64 `json:"priceCompatibility"`
	FeatureAlignment   float64 `json:"featureAlignment"`
	PassengerFit       float64 `json:"passengerFit"`
	FuelTypeMatch      float64 `json:"fuelTypeMatch"`
	UsageCompatibility float64 `json:"usageCompatibility"`
	LocationFactor     float64 `json:"locationFactor"`
}

// Sum returns the total weight, the divisor of the weighted average.
func (w ScoringWeights) Sum() float64 {
	return w.VehicleTypeMatch + w.PriceCompatibility + w.FeatureAlignment +
		w.PassengerFit + w.FuelTypeMatch + w.UsageCompatibility + w.LocationFactor
}

// ScoreNormalizer rescales a module's raw score onto the engine's canonical
// 0-1 range before weighting.
type ScoreNormalizer struct {
	Min    float64 `json:"min"`
	Max    float64 `json:"max"`
	Weight float64 `json:"weight"`
}

// PriceAnalysis explains the price factor.
type PriceAnalysis struct {
	IsWithinBudget    bool     `json:"isWithinBudget"`
	PercentFromBudget float64  `json:"percentageFromBudget"`
	EstimatedMonthly  *float64 `json:"estimatedMonthly,omitempty"`
	CreditAdjustment  *float64 `json:"creditAdjustment,omitempty"`
	DownPaymentImpact *float64 `json:"downPaymentImpact,omitempty"`
}

// PassengerAnalysis explains the passenger factor.
type PassengerAnalysis struct {
	ActualCapacity int    `json:"actualCapacity"`
	Configuration  string `json:"configuration"`
	Notes          string `json:"notes"`
}

// ScoreMetadata carries the human-readable explanation for a ranked result.
type ScoreMetadata struct {
	MatchingFeatures  []string           `json:"matchingFeatures"`
	MissingFeatures   []string           `json:"missingFeatures"`
	FeatureNotes      []string           `json:"featureNotes,omitempty"`
	PriceAnalysis     PriceAnalysis      `json:"priceAnalysis"`
	PassengerAnalysis *PassengerAnalysis `json:"passengerAnalysis,omitempty"`
	UsageAnalysis     []string           `json:"usageAnalysis"`
}

// VehicleScore is one ranked recommendation. TotalScore and ConfidenceScore
// are surfaced on a 0-100 scale; the factors stay on the internal 0-1 scale.
type VehicleScore struct {
	VehicleID       string        `json:"vehicleId"`
	Vehicle         Vehicle       `json:"vehicle"`
	TotalScore      float64       `json:"totalScore"`
	ConfidenceScore float64       `json:"confidenceScore"`
	Factors         ScoreFactors  `json:"factors"`
	Metadata        ScoreMetadata `json:"metadata"`
}
