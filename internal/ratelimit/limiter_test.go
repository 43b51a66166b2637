package ratelimit

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"

	"github.com/spec-kit/storefront-service/internal/config"
)

func TestLimiter_DisabledAllowsEverything(t *testing.T) {
	limiter := NewLimiter(nil, config.RateLimitConfig{Enabled: false, RequestsPerWindow: 1}, zap.NewNop())

	for i := 0; i < 10; i++ {
		assert.True(t, limiter.Allow(context.Background(), "1.2.3.4"))
	}
}

func TestLimiter_NilClientFailsOpen(t *testing.T) {
	limiter := NewLimiter(nil, config.RateLimitConfig{Enabled: true, RequestsPerWindow: 1, WindowSeconds: 60}, zap.NewNop())

	assert.True(t, limiter.Allow(context.Background(), "1.2.3.4"))
}

func TestLimiter_NilReceiver(t *testing.T) {
	var limiter *Limiter
	assert.True(t, limiter.Allow(context.Background(), "1.2.3.4"))
}
