package ratelimit

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/redis/go-redis/v9"
)

const redisKeyPrefix = "crowdchain:ratelimit:"

// tokenBucketScript refills and consumes atomically. ARGV: rate (tokens per
// second), burst, now (seconds, fractional), ttl (seconds).
// Returns {allowed, retry_after_ms}.
var tokenBucketScript = redis.NewScript(`
local key = KEYS[1]
local rate = tonumber(ARGV[1])
local burst = tonumber(ARGV[2])
local now = tonumber(ARGV[3])
local ttl = tonumber(ARGV[4])

local data = redis.call('HMGET', key, 'tokens', 'last_update')
local tokens = tonumber(data[1]) or burst
local last_update = tonumber(data[2]) or now

local elapsed = math.max(0, now - last_update)
tokens = math.min(burst, tokens + (elapsed * rate))

local allowed = 0
local retry_after_ms = 0
if tokens >= 1 then
	tokens = tokens - 1
	allowed = 1
else
	retry_after_ms = math.ceil(((1 - tokens) / rate) * 1000)
end

redis.call('HSET', key, 'tokens', tokens, 'last_update', now)
redis.call('EXPIRE', key, ttl)

return {allowed, retry_after_ms}
`)

// RedisLimiter is a Limiter whose buckets live in Redis so every replica
// shares them.
type RedisLimiter struct {
	client redis.Scripter
	rate   float64
	burst  int
	ttl    time.Duration
}

// NewRedisLimiter creates a RedisLimiter on an existing client.
func NewRedisLimiter(client redis.Scripter, requestsPerSecond float64, burst int) *RedisLimiter {
	if burst < 1 {
		burst = 1
	}
	// A bucket refills completely within burst/rate seconds; keep it a
	// little longer than that.
	ttl := time.Duration(math.Ceil(float64(burst)/requestsPerSecond)+1) * time.Second
	return &RedisLimiter{
		client: client,
		rate:   requestsPerSecond,
		burst:  burst,
		ttl:    ttl,
	}
}

// NewRedisClient parses a redis:// URL and returns a client for it.
func NewRedisClient(redisURL string) (*redis.Client, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("invalid redis url: %w", err)
	}
	return redis.NewClient(opts), nil
}

var _ Limiter = (*RedisLimiter)(nil)

// Allow implements Limiter. Redis failures are returned with an allowed
// Result; callers decide whether to fail open.
func (l *RedisLimiter) Allow(ctx context.Context, key string) (Result, error) {
	now := float64(time.Now().UnixMilli()) / 1000

	res, err := tokenBucketScript.Run(ctx, l.client,
		[]string{redisKeyPrefix + hashKey(key)},
		l.rate, l.burst, now, int(l.ttl.Seconds()),
	).Int64Slice()
	if err != nil {
		return Result{Allowed: true}, fmt.Errorf("rate limit script failed: %w", err)
	}
	if len(res) != 2 {
		return Result{Allowed: true}, fmt.Errorf("rate limit script returned %d values", len(res))
	}

	if res[0] == 1 {
		return Result{Allowed: true}, nil
	}
	return Result{Allowed: false, RetryAfter: time.Duration(res[1]) * time.Millisecond}, nil
}
