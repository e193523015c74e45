// Package ratelimit paces calls to the model providers.
package ratelimit

import (
	"context"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// Default configuration values.
const (
	// DefaultRate is the steady-state request rate per second.
	DefaultRate = 4.0

	// DefaultBurst is the bucket size for short bursts.
	DefaultBurst = 4

	// baseCooldown is the reactive backoff after the first failure.
	baseCooldown = time.Second

	// maxCooldown caps the reactive backoff.
	maxCooldown = 30 * time.Second
)

// Limiter implements dual-strategy throttling for provider calls.
// A token bucket paces steady-state traffic proactively; repeated
// upstream failures add a reactive cooldown that doubles per failure,
// so a struggling provider is not hammered while it recovers.
type Limiter struct {
	bucket *rate.Limiter

	mu       sync.Mutex
	failures int       // Consecutive upstream failures
	retryAt  time.Time // Earliest next attempt during cooldown
}

// New creates a limiter allowing rps requests per second with the
// given burst. A non-positive rps disables the proactive throttle.
func New(rps float64, burst int) *Limiter {
	if rps <= 0 {
		return &Limiter{bucket: rate.NewLimiter(rate.Inf, 0)}
	}
	if burst < 1 {
		burst = 1
	}
	return &Limiter{bucket: rate.NewLimiter(rate.Limit(rps), burst)}
}

// Unlimited creates a limiter that never throttles. Useful in tests
// and for local providers.
func Unlimited() *Limiter {
	return New(0, 0)
}

// Wait blocks until it's safe to make a request.
// It honours the reactive cooldown first, then the token bucket.
func (l *Limiter) Wait(ctx context.Context) error {
	l.mu.Lock()
	retryAt := l.retryAt
	l.mu.Unlock()

	if wait := time.Until(retryAt); wait > 0 {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(wait):
		}
	}

	return l.bucket.Wait(ctx)
}

// RecordFailure notes an upstream failure and extends the cooldown:
// 1s, 2s, 4s and so on up to the cap.
func (l *Limiter) RecordFailure() {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.failures++
	cooldown := baseCooldown << (l.failures - 1)
	if cooldown > maxCooldown || cooldown <= 0 {
		cooldown = maxCooldown
	}
	l.retryAt = time.Now().Add(cooldown)
}

// RecordSuccess clears the cooldown.
func (l *Limiter) RecordSuccess() {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.failures = 0
	l.retryAt = time.Time{}
}

// Cooldown returns the remaining reactive cooldown, zero when none.
func (l *Limiter) Cooldown() time.Duration {
	l.mu.Lock()
	defer l.mu.Unlock()

	if wait := time.Until(l.retryAt); wait > 0 {
		return wait
	}
	return 0
}

// Failures returns the consecutive failure count.
func (l *Limiter) Failures() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.failures
}
