package domain

import "time"

// Payment plan types.
const (
	PaymentCash    = "cash"
	PaymentFinance = "finance"
	PaymentLease   = "lease"
)

// Credit score bands used by the price module's rate adjustment.
const (
	CreditExcellent = "excellent"
	CreditGood      = "good"
	CreditFair      = "fair"
	CreditPoor      = "poor"
)

// PaymentPlan describes how the user intends to pay.
type PaymentPlan struct {
	Type           string   `json:"type"`
	Budget         *float64 `json:"budget,omitempty"`
	MonthlyPayment *float64 `json:"monthlyPayment,omitempty"`
	CreditScore    string   `json:"creditScore,omitempty"`
	DownPayment    *float64 `json:"downPayment,omitempty"`
}

// UserPreferences is the complete, normalized preference profile the scoring
// modules consume. Collections are always non-nil (possibly empty) and
// optional scalars are pointers, so modules never see sentinel values.
// Immutable once passed into the engine for a given request.
type UserPreferences struct {
	VehicleTypes     []string     `json:"vehicleTypes"`
	OtherVehicleType string       `json:"otherVehicleType,omitempty"`
	Usage            []string     `json:"usage"`
	Priorities       []string     `json:"priorities"` // rank-significant: index implies importance
	Features         []string     `json:"features"`
	FuelPreference   string       `json:"fuelPreference,omitempty"`
	PassengerCount   *int         `json:"passengerCount,omitempty"`
	PaymentPlan      *PaymentPlan `json:"paymentPlan,omitempty"`
	Location         string       `json:"location,omitempty"`
}

// StoredPreferences is the raw, partially-null record as the preferences
// store persists it. The preference builder normalizes it into
// UserPreferences before scoring.
type StoredPreferences struct {
	ID                 string    `json:"id"`
	UserID             string    `json:"userId"`
	VehicleTypes       []string  `json:"vehicleTypes,omitempty"`
	OtherVehicleType   *string   `json:"otherVehicleType,omitempty"`
	Usage              []string  `json:"usage,omitempty"`
	Priorities         []string  `json:"priorities,omitempty"`
	Features           []string  `json:"features,omitempty"`
	FuelPreference     *string   `json:"fuelPreference,omitempty"`
	PassengerCount     *int      `json:"passengerCount,omitempty"`
	PaymentPlan        string    `json:"paymentPlan"`
	PaymentBudget      *float64  `json:"paymentBudget,omitempty"`
	PaymentMonthly     *float64  `json:"paymentMonthly,omitempty"`
	CreditScore        *string   `json:"creditScore,omitempty"`
	PaymentDownPayment *float64  `json:"paymentDownPayment,omitempty"`
	Location           *string   `json:"location,omitempty"`
	CreatedAt          time.Time `json:"createdAt"`
	UpdatedAt          time.Time `json:"updatedAt"`
}
