package usecase

import (
	"context"
	"fmt"
	"log"

	"github.com/gearmatch/backend/internal/domain"
)

// PreferenceService owns the stored preference records and their
// normalization into the profile the scoring modules consume.
type PreferenceService struct {
	repo            domain.PreferenceRepository
	recommendations *RecommendationCache
	debug           bool
}

// NewPreferenceService creates a preference service. The recommendation
// cache is invalidated on every save; pass nil to skip invalidation.
func NewPreferenceService(repo domain.PreferenceRepository, recommendations *RecommendationCache) *PreferenceService {
	return &PreferenceService{repo: repo, recommendations: recommendations}
}

// SetDebug enables save/normalize logging
func (s *PreferenceService) SetDebug(debug bool) {
	s.debug = debug
}

// Get returns the raw stored record for a user.
func (s *PreferenceService) Get(ctx context.Context, userID string) (*domain.StoredPreferences, error) {
	if userID == "" {
		return nil, fmt.Errorf("%w: user ID required", domain.ErrInvalidRequest)
	}
	return s.repo.Get(ctx, userID)
}

// GetProfile loads and normalizes a user's preferences for scoring.
func (s *PreferenceService) GetProfile(ctx context.Context, userID string) (domain.UserPreferences, error) {
	stored, err := s.Get(ctx, userID)
	if err != nil {
		return domain.UserPreferences{}, err
	}
	return BuildProfile(stored), nil
}

// Save validates and persists a user's preferences, then invalidates any
// cached recommendations computed from the previous ones.
func (s *PreferenceService) Save(ctx context.Context, prefs *domain.StoredPreferences) error {
	if prefs == nil || prefs.UserID == "" {
		return fmt.Errorf("%w: user ID required", domain.ErrInvalidRequest)
	}
	if err := validatePaymentPlan(prefs); err != nil {
		return err
	}

	if err := s.repo.Save(ctx, prefs); err != nil {
		return fmt.Errorf("failed to save preferences: %w", err)
	}

	if s.recommendations != nil {
		// A failed invalidation is survivable: the embedded hash check
		// makes the stale entry unservable anyway
		if err := s.recommendations.Invalidate(ctx, prefs.UserID); err != nil {
			log.Printf("[PREFS] Failed to invalidate recommendations for user %s: %v", prefs.UserID, err)
		}
	}

	if s.debug {
		log.Printf("[PREFS] Saved preferences for user %s", prefs.UserID)
	}
	return nil
}

func validatePaymentPlan(prefs *domain.StoredPreferences) error {
	switch prefs.PaymentPlan {
	case "", domain.PaymentCash, domain.PaymentFinance, domain.PaymentLease:
	default:
		return fmt.Errorf("%w: unknown payment plan %q", domain.ErrInvalidRequest, prefs.PaymentPlan)
	}

	if prefs.CreditScore != nil {
		switch *prefs.CreditScore {
		case "", domain.CreditExcellent, domain.CreditGood, domain.CreditFair, domain.CreditPoor:
		default:
			return fmt.Errorf("%w: unknown credit score %q", domain.ErrInvalidRequest, *prefs.CreditScore)
		}
	}

	for _, amount := range []*float64{prefs.PaymentBudget, prefs.PaymentMonthly, prefs.PaymentDownPayment} {
		if amount != nil && *amount < 0 {
			return fmt.Errorf("%w: payment amounts cannot be negative", domain.ErrInvalidRequest)
		}
	}
	if prefs.PassengerCount != nil && *prefs.PassengerCount < 0 {
		return fmt.Errorf("%w: passenger count cannot be negative", domain.ErrInvalidRequest)
	}
	return nil
}

// BuildProfile normalizes a raw stored record into the profile the scoring
// modules consume: collections become non-nil, blank strings collapse, and
// the flattened payment columns reassemble into a plan. A nil record yields
// an empty profile whose modules all score neutral.
func BuildProfile(stored *domain.StoredPreferences) domain.UserPreferences {
	profile := domain.UserPreferences{
		VehicleTypes: []string{},
		Usage:        []string{},
		Priorities:   []string{},
		Features:     []string{},
	}
	if stored == nil {
		return profile
	}

	if len(stored.VehicleTypes) > 0 {
		profile.VehicleTypes = stored.VehicleTypes
	}
	if len(stored.Usage) > 0 {
		profile.Usage = stored.Usage
	}
	if len(stored.Priorities) > 0 {
		profile.Priorities = stored.Priorities
	}
	if len(stored.Features) > 0 {
		profile.Features = stored.Features
	}
	if stored.OtherVehicleType != nil {
		profile.OtherVehicleType = *stored.OtherVehicleType
	}
	if stored.FuelPreference != nil {
		profile.FuelPreference = *stored.FuelPreference
	}
	if stored.PassengerCount != nil && *stored.PassengerCount > 0 {
		count := *stored.PassengerCount
		profile.PassengerCount = &count
	}
	if stored.Location != nil {
		profile.Location = *stored.Location
	}

	if stored.PaymentPlan != "" {
		plan := domain.PaymentPlan{Type: stored.PaymentPlan}
		if stored.PaymentBudget != nil {
			budget := *stored.PaymentBudget
			plan.Budget = &budget
		}
		if stored.PaymentMonthly != nil {
			monthly := *stored.PaymentMonthly
			plan.MonthlyPayment = &monthly
		}
		if stored.CreditScore != nil {
			plan.CreditScore = *stored.CreditScore
		}
		if stored.PaymentDownPayment != nil {
			down := *stored.PaymentDownPayment
			plan.DownPayment = &down
		}
		profile.PaymentPlan = &plan
	}

	return profile
}
