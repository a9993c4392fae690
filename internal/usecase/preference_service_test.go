package usecase

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/gearmatch/backend/internal/domain"
)

// stubPreferenceRepo is an in-memory PreferenceRepository for service tests.
type stubPreferenceRepo struct {
	mutex   sync.Mutex
	records map[string]domain.StoredPreferences
}

func newStubPreferenceRepo() *stubPreferenceRepo {
	return &stubPreferenceRepo{records: make(map[string]domain.StoredPreferences)}
}

func (r *stubPreferenceRepo) Get(ctx context.Context, userID string) (*domain.StoredPreferences, error) {
	r.mutex.Lock()
	defer r.mutex.Unlock()
	record, ok := r.records[userID]
	if !ok {
		return nil, domain.ErrPreferencesNotFound
	}
	return &record, nil
}

func (r *stubPreferenceRepo) Save(ctx context.Context, prefs *domain.StoredPreferences) error {
	r.mutex.Lock()
	defer r.mutex.Unlock()
	r.records[prefs.UserID] = *prefs
	return nil
}

func sptr(s string) *string { return &s }

func TestPreferenceService_Save(t *testing.T) {
	ctx := context.Background()

	t.Run("persists a valid record", func(t *testing.T) {
		svc := NewPreferenceService(newStubPreferenceRepo(), nil)
		err := svc.Save(ctx, &domain.StoredPreferences{
			UserID:      "user-1",
			PaymentPlan: domain.PaymentCash,
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if _, err := svc.Get(ctx, "user-1"); err != nil {
			t.Errorf("expected the record to be readable, got %v", err)
		}
	})

	t.Run("rejects missing user ID", func(t *testing.T) {
		svc := NewPreferenceService(newStubPreferenceRepo(), nil)
		if err := svc.Save(ctx, &domain.StoredPreferences{}); !errors.Is(err, domain.ErrInvalidRequest) {
			t.Errorf("error = %v, want ErrInvalidRequest", err)
		}
	})

	t.Run("rejects unknown payment plan", func(t *testing.T) {
		svc := NewPreferenceService(newStubPreferenceRepo(), nil)
		err := svc.Save(ctx, &domain.StoredPreferences{UserID: "user-1", PaymentPlan: "barter"})
		if !errors.Is(err, domain.ErrInvalidRequest) {
			t.Errorf("error = %v, want ErrInvalidRequest", err)
		}
	})

	t.Run("rejects unknown credit score", func(t *testing.T) {
		svc := NewPreferenceService(newStubPreferenceRepo(), nil)
		err := svc.Save(ctx, &domain.StoredPreferences{
			UserID:      "user-1",
			PaymentPlan: domain.PaymentFinance,
			CreditScore: sptr("stellar"),
		})
		if !errors.Is(err, domain.ErrInvalidRequest) {
			t.Errorf("error = %v, want ErrInvalidRequest", err)
		}
	})

	t.Run("rejects negative amounts", func(t *testing.T) {
		svc := NewPreferenceService(newStubPreferenceRepo(), nil)
		err := svc.Save(ctx, &domain.StoredPreferences{
			UserID:        "user-1",
			PaymentPlan:   domain.PaymentCash,
			PaymentBudget: fptr(-100),
		})
		if !errors.Is(err, domain.ErrInvalidRequest) {
			t.Errorf("error = %v, want ErrInvalidRequest", err)
		}
	})

	t.Run("invalidates cached recommendations", func(t *testing.T) {
		store := newStubCache()
		recCache := NewRecommendationCache(store, time.Hour)
		recCache.Put(ctx, "user-1", "hash-a", sampleScores())

		svc := NewPreferenceService(newStubPreferenceRepo(), recCache)
		err := svc.Save(ctx, &domain.StoredPreferences{UserID: "user-1", PaymentPlan: domain.PaymentCash})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if _, ok := recCache.Get(ctx, "user-1", "hash-a"); ok {
			t.Error("expected cached recommendations to be invalidated on save")
		}
	})
}

func TestPreferenceService_Get(t *testing.T) {
	ctx := context.Background()
	svc := NewPreferenceService(newStubPreferenceRepo(), nil)

	t.Run("empty user ID is invalid", func(t *testing.T) {
		if _, err := svc.Get(ctx, ""); !errors.Is(err, domain.ErrInvalidRequest) {
			t.Errorf("error = %v, want ErrInvalidRequest", err)
		}
	})

	t.Run("unknown user returns ErrPreferencesNotFound", func(t *testing.T) {
		if _, err := svc.Get(ctx, "ghost"); !errors.Is(err, domain.ErrPreferencesNotFound) {
			t.Errorf("error = %v, want ErrPreferencesNotFound", err)
		}
	})
}

func TestBuildProfile(t *testing.T) {
	t.Run("nil record yields empty non-nil collections", func(t *testing.T) {
		profile := BuildProfile(nil)
		if profile.VehicleTypes == nil || profile.Usage == nil || profile.Priorities == nil || profile.Features == nil {
			t.Error("expected all collections to be non-nil")
		}
		if len(profile.VehicleTypes) != 0 {
			t.Errorf("vehicle types = %v, want empty", profile.VehicleTypes)
		}
		if profile.PaymentPlan != nil {
			t.Errorf("payment plan = %+v, want nil", profile.PaymentPlan)
		}
	})

	t.Run("reassembles the flattened payment plan", func(t *testing.T) {
		stored := &domain.StoredPreferences{
			UserID:             "user-1",
			PaymentPlan:        domain.PaymentFinance,
			PaymentBudget:      fptr(35000),
			PaymentMonthly:     fptr(550),
			CreditScore:        sptr(domain.CreditGood),
			PaymentDownPayment: fptr(4000),
		}
		profile := BuildProfile(stored)

		if profile.PaymentPlan == nil {
			t.Fatal("expected a payment plan")
		}
		if profile.PaymentPlan.Type != domain.PaymentFinance {
			t.Errorf("type = %q, want finance", profile.PaymentPlan.Type)
		}
		if profile.PaymentPlan.MonthlyPayment == nil || *profile.PaymentPlan.MonthlyPayment != 550 {
			t.Errorf("monthly = %v, want 550", profile.PaymentPlan.MonthlyPayment)
		}
		if profile.PaymentPlan.CreditScore != domain.CreditGood {
			t.Errorf("credit = %q, want good", profile.PaymentPlan.CreditScore)
		}
	})

	t.Run("collapses nullable scalars", func(t *testing.T) {
		stored := &domain.StoredPreferences{
			UserID:         "user-1",
			FuelPreference: sptr("hybrid"),
			PassengerCount: iptr(5),
			Location:       sptr("Portland, OR"),
			VehicleTypes:   []string{"suv", "minivan"},
		}
		profile := BuildProfile(stored)

		if profile.FuelPreference != "hybrid" {
			t.Errorf("fuel preference = %q, want hybrid", profile.FuelPreference)
		}
		if profile.PassengerCount == nil || *profile.PassengerCount != 5 {
			t.Errorf("passenger count = %v, want 5", profile.PassengerCount)
		}
		if len(profile.VehicleTypes) != 2 {
			t.Errorf("vehicle types = %v, want 2 entries", profile.VehicleTypes)
		}
	})

	t.Run("non-positive passenger count is dropped", func(t *testing.T) {
		profile := BuildProfile(&domain.StoredPreferences{UserID: "user-1", PassengerCount: iptr(0)})
		if profile.PassengerCount != nil {
			t.Errorf("passenger count = %v, want nil", profile.PassengerCount)
		}
	})
}
