package redis

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/leaguehub/server/internal/port/outbound"
)

const rateLimitKeyPrefix = "leaguehub:ratelimit:"

// slidingWindow trims expired entries, counts the rest and records the
// request only when it fits, all in one round trip.
var slidingWindow = redis.NewScript(`
local key = KEYS[1]
local now = tonumber(ARGV[1])
local window = tonumber(ARGV[2])
local limit = tonumber(ARGV[3])
local member = ARGV[4]

redis.call('ZREMRANGEBYSCORE', key, 0, now - window)
local count = redis.call('ZCARD', key)
if count >= limit then
  return 0
end
redis.call('ZADD', key, now, member)
redis.call('PEXPIRE', key, math.ceil(window / 1000000))
return 1
`)

// RateLimiter implements outbound.RateLimiterPort with a sorted-set sliding window.
type RateLimiter struct {
	client redis.UniversalClient
	now    func() time.Time
}

// NewRateLimiter creates a new rate limiter adapter.
func NewRateLimiter(client redis.UniversalClient) *RateLimiter {
	return &RateLimiter{client: client, now: time.Now}
}

func (r *RateLimiter) Allow(ctx context.Context, key string, limit int, window time.Duration) (bool, error) {
	now := r.now().UnixNano()
	member := strconv.FormatInt(now, 10) + "-" + uuid.NewString()

	allowed, err := slidingWindow.Run(ctx, r.client,
		[]string{rateLimitKeyPrefix + key},
		now, window.Nanoseconds(), limit, member,
	).Int()
	if err != nil {
		return false, fmt.Errorf("rate limit %s: %w", key, err)
	}
	return allowed == 1, nil
}

func (r *RateLimiter) GetRemaining(ctx context.Context, key string, limit int, window time.Duration) (int, error) {
	fullKey := rateLimitKeyPrefix + key
	windowStart := r.now().UnixNano() - window.Nanoseconds()

	pipe := r.client.Pipeline()
	pipe.ZRemRangeByScore(ctx, fullKey, "0", strconv.FormatInt(windowStart, 10))
	countCmd := pipe.ZCard(ctx, fullKey)
	if _, err := pipe.Exec(ctx); err != nil {
		return 0, fmt.Errorf("rate limit remaining %s: %w", key, err)
	}

	remaining := limit - int(countCmd.Val())
	if remaining < 0 {
		remaining = 0
	}
	return remaining, nil
}

// Compile-time check
var _ outbound.RateLimiterPort = (*RateLimiter)(nil)
