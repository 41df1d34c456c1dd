package ratelimit

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/go-redis/redis_rate/v10"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/xivmarket/marketboard/internal/adapter"
	"github.com/xivmarket/marketboard/internal/config"
	"github.com/xivmarket/marketboard/internal/logger"
)

const (
	healthCheckInterval = 10 * time.Second
	localEntryIdleTTL   = 10 * time.Minute
)

// Limiter throttles requests per client key
//
//go:generate mockgen -source=limiter.go -destination=../mocks/ratelimit.go -package=mocks -mock_names=Limiter=MockLimiter
type Limiter interface {
	// Allow reports whether the request identified by key may proceed
	Allow(ctx context.Context, key string) (bool, error)

	// Close shuts down the limiter and its Redis connection
	Close() error
}

// limiter enforces a per-key request rate shared across instances
// through Redis, with in-process counters when Redis is down
type limiter struct {
	config      config.RateLimitConfig
	redis       adapter.RedisClient
	distributed adapter.RedisRateLimiter
	clock       adapter.Clock

	mu    sync.Mutex
	local map[string]*localEntry

	closed         atomic.Bool
	closeOnce      sync.Once
	done           chan struct{}
	redisAvailable atomic.Bool
}

// localEntry holds the fallback limiter for a single client key
type localEntry struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// NewLimiter creates a new per-client rate limiter
func NewLimiter(cfg config.RateLimitConfig, rc adapter.RedisClient, clock adapter.Clock) (Limiter, error) {
	// Validate and set defaults
	if err := validateConfig(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	// Test Redis connectivity
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	redisAvailable := true
	if err := rc.Ping(ctx).Err(); err != nil {
		redisAvailable = false
		logger.Warn("Redis unavailable, rate limiting uses local counters", zap.Error(err))
	}

	l := &limiter{
		config:      cfg,
		redis:       rc,
		distributed: rc.NewRateLimiter(),
		clock:       clock,
		local:       make(map[string]*localEntry),
		done:        make(chan struct{}),
	}
	l.redisAvailable.Store(redisAvailable)

	// Start Redis health check goroutine
	go l.monitorRedisHealth()

	logger.Info("Rate limiter initialized",
		zap.Int("requests_per_second", cfg.RequestsPerSecond),
		zap.Int("burst", cfg.Burst),
		zap.Bool("redis_available", redisAvailable),
	)

	return l, nil
}

// Allow reports whether the request identified by key may proceed.
// Redis errors demote the limiter to local counters instead of failing
// the request.
func (l *limiter) Allow(ctx context.Context, key string) (bool, error) {
	if l.closed.Load() {
		return false, fmt.Errorf("limiter is closed")
	}

	if l.redisAvailable.Load() {
		allowed, err := l.tryDistributedLimit(ctx, key)
		if err == nil {
			return allowed, nil
		}
		if ctx.Err() != nil {
			return false, ctx.Err()
		}

		// Redis error, mark unavailable and serve from local counters
		// until the health check brings it back
		l.redisAvailable.Store(false)
		logger.Warn("Redis rate limiter error, falling back to local",
			zap.String("key", key),
			zap.Error(err),
		)
	}

	return l.localLimiter(key).Allow(), nil
}

// tryDistributedLimit checks the shared Redis counter for key
func (l *limiter) tryDistributedLimit(ctx context.Context, key string) (bool, error) {
	redisKey := l.config.KeyPrefix + key

	res, err := l.distributed.Allow(ctx, redisKey, redis_rate.Limit{
		Rate:   l.config.RequestsPerSecond,
		Burst:  l.config.Burst,
		Period: time.Second,
	})
	if err != nil {
		return false, err
	}

	if res.Allowed == 0 {
		logger.Debug("Rate limit exceeded",
			zap.String("key", key),
			zap.Duration("retry_after", res.RetryAfter),
			zap.Int("remaining", res.Remaining),
		)
		return false, nil
	}

	return true, nil
}

// localLimiter returns the in-process limiter for key, creating it on
// first sight
func (l *limiter) localLimiter(key string) *rate.Limiter {
	l.mu.Lock()
	defer l.mu.Unlock()

	entry, ok := l.local[key]
	if !ok {
		entry = &localEntry{
			limiter: rate.NewLimiter(rate.Limit(l.config.RequestsPerSecond), l.config.Burst),
		}
		l.local[key] = entry
	}
	entry.lastSeen = l.clock.Now()

	return entry.limiter
}

// evictIdleEntries drops local counters for clients that have gone quiet
func (l *limiter) evictIdleEntries() {
	cutoff := l.clock.Now().Add(-localEntryIdleTTL)

	l.mu.Lock()
	defer l.mu.Unlock()

	for key, entry := range l.local {
		if entry.lastSeen.Before(cutoff) {
			delete(l.local, key)
		}
	}
}

// monitorRedisHealth periodically checks Redis health and updates availability status
func (l *limiter) monitorRedisHealth() {
	for {
		select {
		case <-l.done:
			return
		case <-l.clock.After(healthCheckInterval):
		}

		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		err := l.redis.Ping(ctx).Err()
		cancel()

		redisAvailable := err == nil
		wasAvailable := l.redisAvailable.Load()
		l.redisAvailable.Store(redisAvailable)

		if !wasAvailable && redisAvailable {
			logger.Info("Redis connection restored")
		}

		l.evictIdleEntries()
	}
}

// Close shuts down the limiter and its Redis connection
func (l *limiter) Close() error {
	var err error
	l.closeOnce.Do(func() {
		l.closed.Store(true)
		close(l.done)

		if closeErr := l.redis.Close(); closeErr != nil {
			logger.Warn("Error closing Redis connection", zap.Error(closeErr))
			err = closeErr
		}
	})
	return err
}

// validateConfig validates and sets defaults for the configuration
func validateConfig(cfg *config.RateLimitConfig) error {
	if cfg.RequestsPerSecond <= 0 {
		return fmt.Errorf("requests_per_second must be positive")
	}

	if cfg.Burst <= 0 {
		cfg.Burst = cfg.RequestsPerSecond
	}

	if cfg.KeyPrefix == "" {
		cfg.KeyPrefix = "marketboard:limiter:"
	}

	return nil
}
