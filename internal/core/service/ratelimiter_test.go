package service

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/alexmorgan-dev/portfolio-api/internal/core/domain"
	"github.com/alexmorgan-dev/portfolio-api/internal/infrastructure/memory"
	"github.com/alexmorgan-dev/portfolio-api/pkg/logger"
)

type fakeClock struct {
	mu sync.Mutex
	t  time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{t: time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.t
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.t = c.t.Add(d)
	c.mu.Unlock()
}

func newTestLimiter(clock *fakeClock) *RateLimiter {
	r := NewRateLimiter(memory.NewAttemptStore(), RateLimitPolicy{}, logger.Nop())
	r.now = clock.Now
	return r
}

func fail(t *testing.T, r *RateLimiter, id string, n int) {
	t.Helper()
	for i := 0; i < n; i++ {
		if err := r.Record(context.Background(), id, false); err != nil {
			t.Fatalf("record: %v", err)
		}
	}
}

func TestRateLimiter_FreshClient(t *testing.T) {
	r := newTestLimiter(newFakeClock())

	st, err := r.Check(context.Background(), "10.0.0.1")
	if err != nil {
		t.Fatalf("check: %v", err)
	}
	if !st.Allowed || st.AttemptsLeft != DefaultMaxLoginAttempts {
		t.Fatalf("unexpected status: %+v", st)
	}
}

func TestRateLimiter_LocksAfterMaxFailures(t *testing.T) {
	clock := newFakeClock()
	r := newTestLimiter(clock)
	ctx := context.Background()

	fail(t, r, "10.0.0.1", DefaultMaxLoginAttempts-1)
	st, _ := r.Check(ctx, "10.0.0.1")
	if !st.Allowed || st.AttemptsLeft != 1 {
		t.Fatalf("expected one attempt left, got %+v", st)
	}

	fail(t, r, "10.0.0.1", 1)
	clock.Advance(time.Minute)
	st, _ = r.Check(ctx, "10.0.0.1")
	if st.Allowed || st.AttemptsLeft != 0 {
		t.Fatalf("expected lockout, got %+v", st)
	}
	if st.LockoutMinutes != 14 || st.RetryAfter != 14*time.Minute {
		t.Fatalf("expected 14 minutes remaining, got %+v", st)
	}

	// Other clients are unaffected.
	if st, _ := r.Check(ctx, "10.0.0.2"); !st.Allowed {
		t.Fatal("unrelated client must not be locked")
	}
}

func TestRateLimiter_LockoutMinutesRoundUp(t *testing.T) {
	clock := newFakeClock()
	r := newTestLimiter(clock)

	fail(t, r, "c", DefaultMaxLoginAttempts)
	clock.Advance(DefaultLockoutWindow - 30*time.Second)

	st, _ := r.Check(context.Background(), "c")
	if st.Allowed || st.LockoutMinutes != 1 {
		t.Fatalf("expected 1 minute lockout, got %+v", st)
	}
}

func TestRateLimiter_WindowExpiryResets(t *testing.T) {
	clock := newFakeClock()
	r := newTestLimiter(clock)
	ctx := context.Background()

	fail(t, r, "c", DefaultMaxLoginAttempts)
	clock.Advance(DefaultLockoutWindow)

	st, _ := r.Check(ctx, "c")
	if !st.Allowed || st.AttemptsLeft != DefaultMaxLoginAttempts {
		t.Fatalf("expected reset after window, got %+v", st)
	}

	// The stale record is gone, so a single new failure counts as the first.
	fail(t, r, "c", 1)
	st, _ = r.Check(ctx, "c")
	if st.AttemptsLeft != DefaultMaxLoginAttempts-1 {
		t.Fatalf("expected count to restart, got %+v", st)
	}
}

func TestRateLimiter_SuccessResets(t *testing.T) {
	r := newTestLimiter(newFakeClock())
	ctx := context.Background()

	fail(t, r, "c", 3)
	if err := r.Record(ctx, "c", true); err != nil {
		t.Fatalf("record success: %v", err)
	}

	st, _ := r.Check(ctx, "c")
	if st.AttemptsLeft != DefaultMaxLoginAttempts {
		t.Fatalf("expected full budget, got %+v", st)
	}
}

func TestRateLimiter_EmptyClientSharesUnknownBucket(t *testing.T) {
	r := newTestLimiter(newFakeClock())
	ctx := context.Background()

	fail(t, r, "", 2)
	fail(t, r, "   ", 1)

	st, _ := r.Check(ctx, UnknownClientKey)
	if st.AttemptsLeft != DefaultMaxLoginAttempts-3 {
		t.Fatalf("expected 3 failures on unknown key, got %+v", st)
	}
}

func TestRateLimiter_ConcurrentFailures(t *testing.T) {
	r := newTestLimiter(newFakeClock())

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = r.Record(context.Background(), "c", false)
		}()
	}
	wg.Wait()

	st, _ := r.Check(context.Background(), "c")
	if st.Allowed {
		t.Fatalf("expected lockout after concurrent failures, got %+v", st)
	}
}

type brokenStore struct{}

func (brokenStore) Get(context.Context, string) (domain.LoginAttempt, bool, error) {
	return domain.LoginAttempt{}, false, errors.New("redis down")
}

func (brokenStore) RecordFailure(context.Context, string, time.Time, time.Duration) (domain.LoginAttempt, error) {
	return domain.LoginAttempt{}, errors.New("redis down")
}

func (brokenStore) Acquire(context.Context, string, time.Time, int, time.Duration) (domain.LoginAttempt, bool, error) {
	return domain.LoginAttempt{}, false, errors.New("redis down")
}

func (brokenStore) Reset(context.Context, string) error { return errors.New("redis down") }

func TestRateLimiter_StoreErrors(t *testing.T) {
	r := NewRateLimiter(brokenStore{}, RateLimitPolicy{}, logger.Nop())

	if _, err := r.Check(context.Background(), "c"); err == nil {
		t.Fatal("expected check error")
	}
	if err := r.Record(context.Background(), "c", false); err == nil {
		t.Fatal("expected record error")
	}
	if _, err := r.Acquire(context.Background(), "c"); err == nil {
		t.Fatal("expected acquire error")
	}
}

func TestRateLimiter_AcquireCountsDownThenRefuses(t *testing.T) {
	clock := newFakeClock()
	r := newTestLimiter(clock)
	ctx := context.Background()

	for want := DefaultMaxLoginAttempts - 1; want >= 0; want-- {
		st, err := r.Acquire(ctx, "c")
		if err != nil {
			t.Fatalf("acquire: %v", err)
		}
		if !st.Allowed || st.AttemptsLeft != want {
			t.Fatalf("expected %d attempts left, got %+v", want, st)
		}
	}

	clock.Advance(time.Minute)
	st, err := r.Acquire(ctx, "c")
	if err != nil {
		t.Fatalf("acquire: %v", err)
	}
	if st.Allowed || st.LockoutMinutes != 14 || st.RetryAfter != 14*time.Minute {
		t.Fatalf("expected 14 minute lockout, got %+v", st)
	}

	// Refused attempts do not push the window out.
	clock.Advance(DefaultLockoutWindow - time.Minute)
	if st, _ := r.Acquire(ctx, "c"); !st.Allowed || st.AttemptsLeft != DefaultMaxLoginAttempts-1 {
		t.Fatalf("expected a fresh budget after the window, got %+v", st)
	}
}

func TestRateLimiter_ConcurrentAcquireStopsAtLimit(t *testing.T) {
	r := newTestLimiter(newFakeClock())

	var mu sync.Mutex
	allowed := 0
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			st, err := r.Acquire(context.Background(), "c")
			if err == nil && st.Allowed {
				mu.Lock()
				allowed++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	if allowed != DefaultMaxLoginAttempts {
		t.Fatalf("expected %d reservations, got %d", DefaultMaxLoginAttempts, allowed)
	}
}
