package ratelimit

import (
	"context"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

const (
	// idleTTL is how long an unused bucket is kept before it is swept.
	idleTTL = 10 * time.Minute
	// sweepThreshold is the bucket count that triggers a sweep on access.
	sweepThreshold = 10000
	// sweepInterval is the minimum time between two sweeps, so a map full
	// of active buckets is not rescanned on every request.
	sweepInterval = time.Minute
)

type memoryBucket struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// MemoryLimiter is a Limiter holding one x/time/rate bucket per key in
// process memory. Limits are not shared between replicas.
type MemoryLimiter struct {
	mu        sync.Mutex
	buckets   map[string]*memoryBucket
	lastSweep time.Time
	limit     rate.Limit
	burst     int
	now       func() time.Time
}

// NewMemoryLimiter creates a MemoryLimiter refilling requestsPerSecond
// tokens per second up to burst.
func NewMemoryLimiter(requestsPerSecond float64, burst int) *MemoryLimiter {
	return newMemoryLimiter(requestsPerSecond, burst, time.Now)
}

func newMemoryLimiter(requestsPerSecond float64, burst int, now func() time.Time) *MemoryLimiter {
	if burst < 1 {
		burst = 1
	}
	return &MemoryLimiter{
		buckets: make(map[string]*memoryBucket),
		limit:   rate.Limit(requestsPerSecond),
		burst:   burst,
		now:     now,
	}
}

var _ Limiter = (*MemoryLimiter)(nil)

// Allow implements Limiter. It never returns an error.
func (l *MemoryLimiter) Allow(_ context.Context, key string) (Result, error) {
	now := l.now()

	l.mu.Lock()
	defer l.mu.Unlock()

	if len(l.buckets) >= sweepThreshold && now.Sub(l.lastSweep) >= sweepInterval {
		l.sweep(now)
	}

	key = hashKey(key)
	bucket, ok := l.buckets[key]
	if !ok {
		bucket = &memoryBucket{limiter: rate.NewLimiter(l.limit, l.burst)}
		l.buckets[key] = bucket
	}
	bucket.lastSeen = now

	reservation := bucket.limiter.ReserveN(now, 1)
	if !reservation.OK() {
		return Result{Allowed: false, RetryAfter: time.Second}, nil
	}
	if delay := reservation.DelayFrom(now); delay > 0 {
		reservation.CancelAt(now)
		return Result{Allowed: false, RetryAfter: delay}, nil
	}
	return Result{Allowed: true}, nil
}

// Len returns the number of tracked buckets.
func (l *MemoryLimiter) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.buckets)
}

func (l *MemoryLimiter) sweep(now time.Time) {
	l.lastSweep = now
	for key, bucket := range l.buckets {
		if now.Sub(bucket.lastSeen) > idleTTL {
			delete(l.buckets, key)
		}
	}
}
