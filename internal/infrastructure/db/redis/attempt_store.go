package redis

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/alexmorgan-dev/portfolio-api/internal/core/domain"
)

const (
	attemptKeyPrefix = "login_attempts:"
	fieldCount       = "count"
	fieldLastFailure = "last_failure_ms"
)

// acquireScript resets a stale record, refuses when the count has reached
// the limit and otherwise counts the attempt. It returns {allowed, count,
// last_failure_ms}.
// KEYS[1] = attempt key, ARGV = now_ms, window_ms, max
var acquireScript = redis.NewScript(`
local now = tonumber(ARGV[1])
local window = tonumber(ARGV[2])
local max = tonumber(ARGV[3])
local count = tonumber(redis.call('HGET', KEYS[1], 'count') or '0')
local last = tonumber(redis.call('HGET', KEYS[1], 'last_failure_ms') or '0')
if count > 0 and now - last >= window then
  count = 0
end
if count >= max then
  return {0, count, last}
end
count = count + 1
redis.call('HSET', KEYS[1], 'count', count, 'last_failure_ms', now)
redis.call('PEXPIRE', KEYS[1], window)
return {1, count, now}
`)

// AttemptStore keeps login failure counters in Redis so every instance
// shares one lockout view.
// Key format: login_attempts:<client_id> (hash with count and last_failure_ms)
type AttemptStore struct {
	client *redis.Client
}

// NewAttemptStore creates an AttemptStore wrapping the given Redis client.
func NewAttemptStore(client *redis.Client) *AttemptStore {
	return &AttemptStore{client: client}
}

func (s *AttemptStore) Get(ctx context.Context, key string) (domain.LoginAttempt, bool, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	vals, err := s.client.HGetAll(ctx, s.key(key)).Result()
	if err != nil {
		return domain.LoginAttempt{}, false, fmt.Errorf("get login attempts: %w", err)
	}
	if len(vals) == 0 {
		return domain.LoginAttempt{}, false, nil
	}

	rec, err := decodeAttempt(vals)
	if err != nil {
		return domain.LoginAttempt{}, false, err
	}
	return rec, true, nil
}

// RecordFailure increments the counter and refreshes the key's expiry to ttl,
// so Redis drops the record once the lockout window has passed.
func (s *AttemptStore) RecordFailure(ctx context.Context, key string, at time.Time, ttl time.Duration) (domain.LoginAttempt, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	k := s.key(key)
	var incr *redis.IntCmd
	_, err := s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		incr = pipe.HIncrBy(ctx, k, fieldCount, 1)
		pipe.HSet(ctx, k, fieldLastFailure, at.UnixMilli())
		pipe.Expire(ctx, k, ttl)
		return nil
	})
	if err != nil {
		return domain.LoginAttempt{}, fmt.Errorf("record login failure: %w", err)
	}

	return domain.LoginAttempt{Count: int(incr.Val()), LastFailure: at}, nil
}

// Acquire checks and counts in one script run so instances sharing the
// key cannot race past the limit.
func (s *AttemptStore) Acquire(ctx context.Context, key string, at time.Time, max int, window time.Duration) (domain.LoginAttempt, bool, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := acquireScript.Run(ctx, s.client, []string{s.key(key)},
		at.UnixMilli(), window.Milliseconds(), max).Int64Slice()
	if err != nil {
		return domain.LoginAttempt{}, false, fmt.Errorf("acquire login attempt: %w", err)
	}
	if len(res) != 3 {
		return domain.LoginAttempt{}, false, fmt.Errorf("acquire login attempt: unexpected reply %v", res)
	}

	rec := domain.LoginAttempt{Count: int(res[1])}
	if res[2] > 0 {
		rec.LastFailure = time.UnixMilli(res[2])
	}
	return rec, res[0] == 1, nil
}

func (s *AttemptStore) Reset(ctx context.Context, key string) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	if err := s.client.Del(ctx, s.key(key)).Err(); err != nil {
		return fmt.Errorf("reset login attempts: %w", err)
	}
	return nil
}

func (s *AttemptStore) key(clientID string) string {
	return attemptKeyPrefix + clientID
}

func decodeAttempt(vals map[string]string) (domain.LoginAttempt, error) {
	count, err := strconv.Atoi(vals[fieldCount])
	if err != nil {
		return domain.LoginAttempt{}, fmt.Errorf("decode login attempts count: %w", err)
	}
	raw, ok := vals[fieldLastFailure]
	if !ok {
		return domain.LoginAttempt{}, errors.New("decode login attempts: missing last failure")
	}
	ms, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return domain.LoginAttempt{}, fmt.Errorf("decode login attempts last failure: %w", err)
	}
	return domain.LoginAttempt{Count: count, LastFailure: time.UnixMilli(ms)}, nil
}
