package enrichment

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/gearmatch/backend/internal/domain"
)

// Token limiter defaults: the provider meters usage in tokens over a
// one-minute sliding window.
const (
	DefaultTokenLimit    = 200_000
	DefaultWindowSize    = 60 * time.Second
	capacityPollInterval = 1 * time.Second
)

// tokenWindow is one recorded usage entry inside the sliding window
type tokenWindow struct {
	tokens int
	at     time.Time
}

// TokenRateLimiter is a sliding-window token quota shared by every
// enrichment call in the process. It is constructed once at startup and
// injected wherever the provider is called; there is no package singleton.
type TokenRateLimiter struct {
	mutex   sync.Mutex
	windows []tokenWindow
	limit   int
	window  time.Duration

	// now is swappable for tests
	now func() time.Time
}

// NewTokenRateLimiter creates a limiter with the given per-window token
// budget. Non-positive arguments fall back to the provider defaults.
func NewTokenRateLimiter(limit int, window time.Duration) *TokenRateLimiter {
	if limit <= 0 {
		limit = DefaultTokenLimit
	}
	if window <= 0 {
		window = DefaultWindowSize
	}
	return &TokenRateLimiter{
		limit:  limit,
		window: window,
		now:    time.Now,
	}
}

// pruneLocked drops entries that fell out of the window. Caller holds mutex.
func (l *TokenRateLimiter) pruneLocked() {
	cutoff := l.now().Add(-l.window)
	kept := l.windows[:0]
	for _, w := range l.windows {
		if w.at.After(cutoff) {
			kept = append(kept, w)
		}
	}
	l.windows = kept
}

// currentLocked returns the token total inside the window. Caller holds mutex.
func (l *TokenRateLimiter) currentLocked() int {
	l.pruneLocked()
	total := 0
	for _, w := range l.windows {
		total += w.tokens
	}
	return total
}

// CheckLimit reports whether the window has headroom for estimatedTokens.
func (l *TokenRateLimiter) CheckLimit(estimatedTokens int) bool {
	l.mutex.Lock()
	defer l.mutex.Unlock()
	return l.currentLocked()+estimatedTokens <= l.limit
}

// RecordUsage adds actual token usage reported by the provider.
func (l *TokenRateLimiter) RecordUsage(actualTokens int) {
	if actualTokens <= 0 {
		return
	}
	l.mutex.Lock()
	defer l.mutex.Unlock()
	l.windows = append(l.windows, tokenWindow{tokens: actualTokens, at: l.now()})
	l.pruneLocked()
}

// CurrentUsage returns the token total currently counted against the window.
func (l *TokenRateLimiter) CurrentUsage() int {
	l.mutex.Lock()
	defer l.mutex.Unlock()
	return l.currentLocked()
}

// WaitForCapacity blocks until the window has headroom for estimatedTokens
// or the context expires. The wait polls once per second rather than spinning;
// a context deadline bounds it so a saturated window surfaces as
// ErrCapacityExceeded instead of stalling the request indefinitely.
func (l *TokenRateLimiter) WaitForCapacity(ctx context.Context, estimatedTokens int) error {
	if estimatedTokens > l.limit {
		return fmt.Errorf("%w: request of %d tokens exceeds window budget %d",
			domain.ErrCapacityExceeded, estimatedTokens, l.limit)
	}

	if l.CheckLimit(estimatedTokens) {
		return nil
	}

	ticker := time.NewTicker(capacityPollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return fmt.Errorf("%w: %v", domain.ErrCapacityExceeded, ctx.Err())
		case <-ticker.C:
			if l.CheckLimit(estimatedTokens) {
				return nil
			}
		}
	}
}

var _ domain.TokenLimiter = (*TokenRateLimiter)(nil)
