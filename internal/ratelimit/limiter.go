package ratelimit

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/spec-kit/storefront-service/internal/config"
)

// Limiter is a fixed-window per-client counter backed by Redis, so the limit
// holds across replicas. It fails open: if Redis is unreachable the request
// proceeds and the error is logged, the limiter never takes the API down.
type Limiter struct {
	client *redis.Client
	cfg    config.RateLimitConfig
	logger *zap.Logger
}

// NewLimiter builds a limiter from configuration.
func NewLimiter(client *redis.Client, cfg config.RateLimitConfig, logger *zap.Logger) *Limiter {
	return &Limiter{client: client, cfg: cfg, logger: logger}
}

// Allow counts one request for the client key within the current window and
// reports whether it stays under the limit.
func (l *Limiter) Allow(ctx context.Context, key string) bool {
	if l == nil || !l.cfg.Enabled || l.client == nil {
		return true
	}

	window := l.cfg.Window()
	bucket := time.Now().Unix() / int64(window/time.Second)
	redisKey := fmt.Sprintf("ratelimit:%s:%d", key, bucket)

	pipe := l.client.TxPipeline()
	count := pipe.Incr(ctx, redisKey)
	pipe.Expire(ctx, redisKey, window)
	if _, err := pipe.Exec(ctx); err != nil {
		l.logger.Warn("rate limiter unavailable", zap.Error(err))
		return true
	}

	return count.Val() <= int64(l.cfg.RequestsPerWindow)
}
