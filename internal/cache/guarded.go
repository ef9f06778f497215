package cache

import (
	"context"
	"errors"
	"net"
	"time"

	"project-tracker/backend/internal/config"
)

// Store is the subset of RedisCache the list cache needs.
type Store interface {
	Get(ctx context.Context, key string, dest interface{}) error
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error
	DeletePattern(ctx context.Context, pattern string) error
}

// GuardedCache routes every call through a circuit breaker and counts the
// outcome. A miss is not a failure; an open breaker answers ErrCacheDown
// without touching the backend.
type GuardedCache struct {
	store   Store
	breaker *CircuitBreaker
	metrics *CacheMetrics
	ttl     time.Duration
}

func NewGuardedCache(store Store, breaker *CircuitBreaker, ttl time.Duration) *GuardedCache {
	if breaker == nil {
		breaker = NewCircuitBreaker(nil)
	}
	return &GuardedCache{
		store:   store,
		breaker: breaker,
		metrics: NewCacheMetrics(),
		ttl:     ttl,
	}
}

// ConfigFrom maps the redis section of the application config onto client
// options.
func ConfigFrom(cfg config.RedisConfig) *CacheConfig {
	return &CacheConfig{
		Addr:         net.JoinHostPort(cfg.Host, cfg.Port),
		Password:     cfg.Password,
		DB:           cfg.DB,
		PoolSize:     cfg.PoolSize,
		MinIdleConns: cfg.MinIdleConns,
		MaxRetries:   cfg.MaxRetries,
		DialTimeout:  cfg.DialTimeout,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}
}

func (c *GuardedCache) Get(ctx context.Context, key string, dest interface{}) error {
	miss := false
	err := c.breaker.Execute(func() error {
		err := c.store.Get(ctx, key, dest)
		if errors.Is(err, ErrCacheMiss) {
			miss = true
			return nil
		}
		return err
	})

	switch {
	case errors.Is(err, ErrCircuitBreakerOpen):
		c.metrics.RecordError()
		return ErrCacheDown
	case err != nil:
		c.metrics.RecordError()
		return err
	case miss:
		c.metrics.RecordMiss()
		return ErrCacheMiss
	}

	c.metrics.RecordHit()
	return nil
}

// Set stores value with the configured TTL.
func (c *GuardedCache) Set(ctx context.Context, key string, value interface{}) error {
	err := c.breaker.Execute(func() error {
		return c.store.Set(ctx, key, value, c.ttl)
	})
	if err != nil {
		c.metrics.RecordError()
		if errors.Is(err, ErrCircuitBreakerOpen) {
			return ErrCacheDown
		}
		return err
	}
	c.metrics.RecordSet()
	return nil
}

func (c *GuardedCache) Invalidate(ctx context.Context, pattern string) error {
	err := c.breaker.Execute(func() error {
		return c.store.DeletePattern(ctx, pattern)
	})
	if err != nil {
		c.metrics.RecordError()
		if errors.Is(err, ErrCircuitBreakerOpen) {
			return ErrCacheDown
		}
		return err
	}
	c.metrics.RecordDelete()
	return nil
}

func (c *GuardedCache) Metrics() *CacheMetrics {
	return c.metrics
}

func (c *GuardedCache) Breaker() *CircuitBreaker {
	return c.breaker
}
