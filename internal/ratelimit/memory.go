package ratelimit

import (
	"context"
	"sync"
	"time"
)

type record struct {
	count     int
	resetTime time.Time
}

// MemoryStore is the default single-process Store: a mutex-guarded map of
// fixed-window counters plus a background sweep that prunes expired records
// so memory stays bounded regardless of identifier churn.
type MemoryStore struct {
	mu      sync.Mutex
	records map[string]*record
	now     func() time.Time
	stop    chan struct{}
	done    chan struct{}
}

// NewMemoryStore creates a store and starts its sweep goroutine. Call Close
// to stop it. A non-positive sweepInterval falls back to the default.
func NewMemoryStore(sweepInterval time.Duration) *MemoryStore {
	if sweepInterval <= 0 {
		sweepInterval = DefaultSweepInterval
	}

	s := &MemoryStore{
		records: make(map[string]*record),
		now:     time.Now,
		stop:    make(chan struct{}),
		done:    make(chan struct{}),
	}

	go s.sweepLoop(sweepInterval)
	return s
}

// Check evaluates and updates the window for key. An expired record is
// treated as absent: the window restarts with count 1. A rejected request
// does not mutate state.
func (s *MemoryStore) Check(_ context.Context, key string, limit int, window time.Duration) Result {
	now := s.now()

	s.mu.Lock()
	defer s.mu.Unlock()

	rec, ok := s.records[key]
	if !ok || !now.Before(rec.resetTime) {
		s.records[key] = &record{count: 1, resetTime: now.Add(window)}
		return Result{
			Allowed:   true,
			Limit:     limit,
			Remaining: remaining(limit, 1),
			ResetIn:   window,
		}
	}

	if rec.count >= limit {
		return Result{
			Allowed:   false,
			Limit:     limit,
			Remaining: 0,
			ResetIn:   rec.resetTime.Sub(now),
		}
	}

	rec.count++
	return Result{
		Allowed:   true,
		Limit:     limit,
		Remaining: remaining(limit, rec.count),
		ResetIn:   rec.resetTime.Sub(now),
	}
}

// Close stops the sweep goroutine. The store remains usable afterwards;
// expired records are still replaced lazily on Check.
func (s *MemoryStore) Close() {
	select {
	case <-s.stop:
	default:
		close(s.stop)
		<-s.done
	}
}

// Len reports the number of live records, for tests and diagnostics.
func (s *MemoryStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.records)
}

func (s *MemoryStore) sweepLoop(interval time.Duration) {
	defer close(s.done)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			s.sweep()
		case <-s.stop:
			return
		}
	}
}

// sweep deletes records whose window has ended. It holds the lock only for
// the map walk, keeping request-path latency unaffected.
func (s *MemoryStore) sweep() {
	now := s.now()

	s.mu.Lock()
	defer s.mu.Unlock()

	for key, rec := range s.records {
		if !now.Before(rec.resetTime) {
			delete(s.records, key)
		}
	}
}

func remaining(limit, count int) int {
	if count >= limit {
		return 0
	}
	return limit - count
}
