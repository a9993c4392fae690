package preferences

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/gearmatch/backend/internal/domain"
)

// MemoryStore is an in-memory PreferenceRepository keyed by user ID. One
// record per user: saving again overwrites the previous record in place,
// keeping the original ID and CreatedAt.
type MemoryStore struct {
	mutex   sync.RWMutex
	records map[string]domain.StoredPreferences
	now     func() time.Time
}

// NewMemoryStore creates an empty preference store
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		records: make(map[string]domain.StoredPreferences),
		now:     time.Now,
	}
}

// Get returns the stored record for a user
func (s *MemoryStore) Get(ctx context.Context, userID string) (*domain.StoredPreferences, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mutex.RLock()
	defer s.mutex.RUnlock()

	record, ok := s.records[userID]
	if !ok {
		return nil, domain.ErrPreferencesNotFound
	}
	return &record, nil
}

// Save upserts the user's record. New records get a generated ID and
// CreatedAt; both are preserved on overwrite.
func (s *MemoryStore) Save(ctx context.Context, prefs *domain.StoredPreferences) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if prefs == nil || prefs.UserID == "" {
		return domain.ErrInvalidRequest
	}

	s.mutex.Lock()
	defer s.mutex.Unlock()

	record := *prefs
	if existing, ok := s.records[prefs.UserID]; ok {
		record.ID = existing.ID
		record.CreatedAt = existing.CreatedAt
	} else {
		if record.ID == "" {
			record.ID = uuid.NewString()
		}
		record.CreatedAt = s.now()
	}
	record.UpdatedAt = s.now()

	s.records[prefs.UserID] = record

	// Echo assigned bookkeeping back to the caller
	prefs.ID = record.ID
	prefs.CreatedAt = record.CreatedAt
	prefs.UpdatedAt = record.UpdatedAt
	return nil
}

var _ domain.PreferenceRepository = (*MemoryStore)(nil)
