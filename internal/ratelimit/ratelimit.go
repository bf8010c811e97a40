// Package ratelimit provides per-client fixed-window request limiting.
//
// The algorithm is a fixed-window counter: bursts at a window boundary can
// momentarily admit up to twice the limit across the edge. That tradeoff is
// intentional; do not replace it with a sliding window.
package ratelimit

import (
	"context"
	"time"
)

// AnonymousKey identifies callers whose client identifier could not be
// determined.
const AnonymousKey = "anonymous"

// DefaultSweepInterval is how often expired records are pruned from the
// in-memory store.
const DefaultSweepInterval = 5 * time.Minute

// Result is the computed outcome of one rate-limit check.
type Result struct {
	// Allowed is false iff the window's count had already reached the limit.
	Allowed bool
	// Limit is the configured window capacity, echoed for telemetry headers.
	Limit int
	// Remaining is limit minus the current count, floored at zero.
	Remaining int
	// ResetIn is how long until the current window ends.
	ResetIn time.Duration
}

// Store decides admit/reject for a client identifier. Implementations never
// return errors: backends that can fail (e.g. Redis) fail open and log.
//
// The store is injectable so multi-process deployments can share state
// through an external backend without touching the handler.
type Store interface {
	Check(ctx context.Context, key string, limit int, window time.Duration) Result
}
