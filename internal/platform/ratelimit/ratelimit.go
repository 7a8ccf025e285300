// Package ratelimit provides per-key token bucket limiters, backed either by
// Redis for deployments with several replicas or by process memory.
package ratelimit

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"time"
)

// Result is the outcome of a single Allow call.
type Result struct {
	Allowed bool
	// RetryAfter is how long the caller should wait before the next token
	// is available. Zero when Allowed is true.
	RetryAfter time.Duration
}

// Limiter takes one token from the bucket identified by key.
type Limiter interface {
	Allow(ctx context.Context, key string) (Result, error)
}

// hashKey truncates a SHA-256 of key so raw client IPs are not stored.
func hashKey(key string) string {
	sum := sha256.Sum256([]byte(key))
	return hex.EncodeToString(sum[:8])
}
