package ratelimit

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const redisKeyPrefix = "ratelimit:"

// RedisStore is a Store backed by Redis, for deployments where quota must
// be shared across processes. It keeps the same fixed-window semantics as
// MemoryStore via INCR plus a window-scoped expiry.
//
// Backend failures fail open: the request is admitted and the error logged,
// so a Redis outage degrades to unlimited traffic rather than a hard 500.
type RedisStore struct {
	client redis.UniversalClient
	logger *zap.Logger
}

// NewRedisStore wraps an existing Redis client. No sweep is needed; Redis
// expires window keys on its own.
func NewRedisStore(client redis.UniversalClient, logger *zap.Logger) *RedisStore {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &RedisStore{client: client, logger: logger}
}

// Check increments the window counter for key and decides admit/reject.
func (s *RedisStore) Check(ctx context.Context, key string, limit int, window time.Duration) Result {
	redisKey := redisKeyPrefix + key

	count, err := s.client.Incr(ctx, redisKey).Result()
	if err != nil {
		s.logger.Warn("redis rate-limit check failed, failing open",
			zap.String("key", key), zap.Error(err))
		return Result{Allowed: true, Limit: limit, Remaining: remaining(limit, 1), ResetIn: window}
	}

	// First hit in a window owns setting the expiry.
	if count == 1 {
		if err := s.client.PExpire(ctx, redisKey, window).Err(); err != nil {
			s.logger.Warn("failed to set rate-limit window expiry",
				zap.String("key", key), zap.Error(err))
		}
	}

	resetIn := window
	if ttl, err := s.client.PTTL(ctx, redisKey).Result(); err == nil && ttl > 0 {
		resetIn = ttl
	}

	if count > int64(limit) {
		return Result{Allowed: false, Limit: limit, Remaining: 0, ResetIn: resetIn}
	}

	return Result{
		Allowed:   true,
		Limit:     limit,
		Remaining: remaining(limit, int(count)),
		ResetIn:   resetIn,
	}
}
