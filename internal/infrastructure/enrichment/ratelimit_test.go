package enrichment

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gearmatch/backend/internal/domain"
)

func TestNewTokenRateLimiter_Defaults(t *testing.T) {
	limiter := NewTokenRateLimiter(0, 0)

	assert.Equal(t, DefaultTokenLimit, limiter.limit)
	assert.Equal(t, DefaultWindowSize, limiter.window)
}

func TestTokenRateLimiter_CheckLimit(t *testing.T) {
	limiter := NewTokenRateLimiter(10_000, time.Minute)

	assert.True(t, limiter.CheckLimit(10_000))
	assert.False(t, limiter.CheckLimit(10_001))

	limiter.RecordUsage(4_000)
	assert.True(t, limiter.CheckLimit(6_000))
	assert.False(t, limiter.CheckLimit(6_001))
}

func TestTokenRateLimiter_RecordUsage(t *testing.T) {
	limiter := NewTokenRateLimiter(10_000, time.Minute)

	limiter.RecordUsage(1_500)
	limiter.RecordUsage(2_500)
	assert.Equal(t, 4_000, limiter.CurrentUsage())

	// Non-positive usage is ignored
	limiter.RecordUsage(0)
	limiter.RecordUsage(-10)
	assert.Equal(t, 4_000, limiter.CurrentUsage())
}

func TestTokenRateLimiter_WindowExpiry(t *testing.T) {
	limiter := NewTokenRateLimiter(10_000, time.Minute)

	now := time.Now()
	limiter.now = func() time.Time { return now }

	limiter.RecordUsage(8_000)
	assert.Equal(t, 8_000, limiter.CurrentUsage())
	assert.False(t, limiter.CheckLimit(5_000))

	// Advance past the window: old usage no longer counts
	now = now.Add(61 * time.Second)
	assert.Equal(t, 0, limiter.CurrentUsage())
	assert.True(t, limiter.CheckLimit(5_000))
}

func TestTokenRateLimiter_WaitForCapacity(t *testing.T) {
	t.Run("returns immediately with headroom", func(t *testing.T) {
		limiter := NewTokenRateLimiter(10_000, time.Minute)
		ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
		defer cancel()

		start := time.Now()
		err := limiter.WaitForCapacity(ctx, 5_000)
		require.NoError(t, err)
		assert.Less(t, time.Since(start), 50*time.Millisecond)
	})

	t.Run("reports capacity exceeded on deadline", func(t *testing.T) {
		limiter := NewTokenRateLimiter(10_000, time.Minute)
		limiter.RecordUsage(10_000)

		ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
		defer cancel()

		err := limiter.WaitForCapacity(ctx, 1_000)
		assert.ErrorIs(t, err, domain.ErrCapacityExceeded)
	})

	t.Run("rejects requests larger than the window budget", func(t *testing.T) {
		limiter := NewTokenRateLimiter(10_000, time.Minute)

		err := limiter.WaitForCapacity(context.Background(), 10_001)
		assert.ErrorIs(t, err, domain.ErrCapacityExceeded)
	})
}
