package domain

// Vehicle is a catalog record. It is read-only to the engine; the catalog
// store owns it. Numeric fields that the source catalog leaves blank are
// pointers so that "unknown" never reads as zero inside scoring logic.
type Vehicle struct {
	ID               string `json:"id"`
	Make             string `json:"make"`
	Model            string `json:"model"`
	Year             string `json:"year"`
	MSRP             *float64 `json:"msrp,omitempty"`
	VehicleSizeClass string `json:"vehicleSizeClass,omitempty"`
	Drive            string `json:"drive,omitempty"`
	Transmission     string `json:"transmission,omitempty"`

	// Fuel types as listed by the catalog. FuelType is the combined label
	// (e.g. "Regular Gas and Electricity"), FuelType1/FuelType2 the
	// individual powertrains.
	FuelType  string `json:"fuelType,omitempty"`
	FuelType1 string `json:"fuelType1,omitempty"`
	FuelType2 string `json:"fuelType2,omitempty"`

	// Seating volumes in cubic feet per body configuration.
	TwoDoorPassengerVolume   *float64 `json:"twoDoorPassengerVolume,omitempty"`
	FourDoorPassengerVolume  *float64 `json:"fourDoorPassengerVolume,omitempty"`
	HatchbackPassengerVolume *float64 `json:"hatchbackPassengerVolume,omitempty"`
	TwoDoorLuggageVolume     *float64 `json:"twoDoorLuggageVolume,omitempty"`
	FourDoorLuggageVolume    *float64 `json:"fourDoorLuggageVolume,omitempty"`
	HatchbackLuggageVolume   *float64 `json:"hatchbackLuggageVolume,omitempty"`

	CombinedMPG        *int     `json:"combinedMpg,omitempty"`
	RangeMiles         *float64 `json:"rangeMiles,omitempty"`
	Cylinders          *int     `json:"cylinders,omitempty"`
	EngineDisplacement *float64 `json:"engineDisplacement,omitempty"`

	// Trim/appearance metadata carried through to the result snapshot.
	ColorNames string `json:"colorNames,omitempty"`
	ModelGrade string `json:"modelGrade,omitempty"`
	ModelTag   string `json:"modelTag,omitempty"`
}

// FuelTypes returns the non-empty fuel type labels for this vehicle.
func (v *Vehicle) FuelTypes() []string {
	var types []string
	for _, t := range []string{v.FuelType, v.FuelType1, v.FuelType2} {
		if t != "" {
			types = append(types, t)
		}
	}
	return types
}

// EnrichmentKey is the cache key component identifying this vehicle's
// feature profile. Profiles are shared across trims of the same model year.
func (v *Vehicle) EnrichmentKey() string {
	return v.Year + "-" + v.Model
}
