package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/alexmorgan-dev/portfolio-api/internal/core/domain"
	"github.com/alexmorgan-dev/portfolio-api/internal/core/ports"
)

const (
	DefaultMaxLoginAttempts = 5
	DefaultLockoutWindow    = 15 * time.Minute

	// UnknownClientKey buckets requests that carry no usable client address.
	UnknownClientKey = "unknown"
)

// RateLimitPolicy configures the login lockout.
type RateLimitPolicy struct {
	MaxAttempts int
	Window      time.Duration
}

// RateLimiter enforces a temporary lockout after repeated login failures from
// one client. The window is measured from the most recent failure.
type RateLimiter struct {
	store  ports.AttemptStore
	policy RateLimitPolicy
	now    func() time.Time
	log    zerolog.Logger
}

func NewRateLimiter(store ports.AttemptStore, policy RateLimitPolicy, log zerolog.Logger) *RateLimiter {
	if policy.MaxAttempts <= 0 {
		policy.MaxAttempts = DefaultMaxLoginAttempts
	}
	if policy.Window <= 0 {
		policy.Window = DefaultLockoutWindow
	}
	return &RateLimiter{store: store, policy: policy, now: time.Now, log: log}
}

// Check reports whether clientID may attempt a login right now.
func (r *RateLimiter) Check(ctx context.Context, clientID string) (domain.RateLimitStatus, error) {
	key := clientKey(clientID)
	rec, ok, err := r.store.Get(ctx, key)
	if err != nil {
		return domain.RateLimitStatus{}, fmt.Errorf("rate limit check: %w", err)
	}
	if !ok {
		return r.fresh(), nil
	}

	elapsed := r.now().Sub(rec.LastFailure)
	if elapsed >= r.policy.Window {
		if err := r.store.Reset(ctx, key); err != nil {
			r.log.Warn().Err(err).Str("client_id", key).Msg("failed to clear stale login attempts")
		}
		return r.fresh(), nil
	}

	if rec.Count >= r.policy.MaxAttempts {
		remaining := r.policy.Window - elapsed
		return domain.RateLimitStatus{
			Allowed:        false,
			AttemptsLeft:   0,
			LockoutMinutes: domain.CeilMinutes(remaining),
			RetryAfter:     remaining,
		}, nil
	}

	return domain.RateLimitStatus{
		Allowed:      true,
		AttemptsLeft: r.policy.MaxAttempts - rec.Count,
	}, nil
}

// Acquire reserves one login attempt for clientID before the credentials
// are checked. The reservation counts as a failure until Record(success)
// clears it, so concurrent requests cannot all pass the lockout check. A
// refused status carries the remaining lockout.
func (r *RateLimiter) Acquire(ctx context.Context, clientID string) (domain.RateLimitStatus, error) {
	key := clientKey(clientID)
	now := r.now()
	rec, allowed, err := r.store.Acquire(ctx, key, now, r.policy.MaxAttempts, r.policy.Window)
	if err != nil {
		return domain.RateLimitStatus{}, fmt.Errorf("rate limit acquire: %w", err)
	}

	if !allowed {
		remaining := r.policy.Window - now.Sub(rec.LastFailure)
		if remaining <= 0 {
			remaining = time.Second
		}
		return domain.RateLimitStatus{
			Allowed:        false,
			AttemptsLeft:   0,
			LockoutMinutes: domain.CeilMinutes(remaining),
			RetryAfter:     remaining,
		}, nil
	}

	if rec.Count == r.policy.MaxAttempts {
		r.log.Warn().Str("client_id", key).Int("attempts", rec.Count).Msg("client reached login attempt limit")
	}
	return domain.RateLimitStatus{
		Allowed:      true,
		AttemptsLeft: r.policy.MaxAttempts - rec.Count,
	}, nil
}

// Record registers the outcome of a login attempt. A success clears the
// client's record; a failure increments it.
func (r *RateLimiter) Record(ctx context.Context, clientID string, success bool) error {
	key := clientKey(clientID)
	if success {
		if err := r.store.Reset(ctx, key); err != nil {
			return fmt.Errorf("reset login attempts: %w", err)
		}
		return nil
	}

	rec, err := r.store.RecordFailure(ctx, key, r.now(), r.policy.Window)
	if err != nil {
		return fmt.Errorf("record login failure: %w", err)
	}
	if rec.Count == r.policy.MaxAttempts {
		r.log.Warn().Str("client_id", key).Int("failures", rec.Count).Msg("client locked out")
	}
	return nil
}

func (r *RateLimiter) fresh() domain.RateLimitStatus {
	return domain.RateLimitStatus{Allowed: true, AttemptsLeft: r.policy.MaxAttempts}
}

func clientKey(clientID string) string {
	id := strings.TrimSpace(clientID)
	if id == "" {
		return UnknownClientKey
	}
	return id
}
