package cache

import (
	"context"
	"errors"
	"testing"
	"time"

	"project-tracker/backend/internal/config"
)

func TestGuardedCache_HitMissAndSet(t *testing.T) {
	redisCache, _ := setupTestRedis(t)
	gc := NewGuardedCache(redisCache, nil, time.Minute)
	ctx := context.Background()

	var got page
	if err := gc.Get(ctx, "k", &got); !errors.Is(err, ErrCacheMiss) {
		t.Fatalf("Expected miss, got %v", err)
	}

	if err := gc.Set(ctx, "k", page{Total: 1}); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	if err := gc.Get(ctx, "k", &got); err != nil {
		t.Fatalf("Expected hit, got %v", err)
	}

	stats := gc.Metrics().GetStats()
	if stats.Hits != 1 || stats.Misses != 1 || stats.Sets != 1 {
		t.Errorf("Unexpected stats %+v", stats)
	}
	if rate := gc.Metrics().HitRate(); rate != 50 {
		t.Errorf("Expected hit rate 50, got %v", rate)
	}
	if gc.Breaker().GetState() != CircuitBreakerClosed {
		t.Error("Misses must not trip the breaker")
	}
}

func TestGuardedCache_OpensWhenRedisIsDown(t *testing.T) {
	redisCache, mr := setupTestRedis(t)
	breaker := NewCircuitBreaker(&CircuitBreakerConfig{MaxFailures: 2, Timeout: time.Hour, HalfOpenMaxCalls: 1})
	gc := NewGuardedCache(redisCache, breaker, time.Minute)
	ctx := context.Background()

	mr.Close()

	var got page
	for i := 0; i < 2; i++ {
		if err := gc.Get(ctx, "k", &got); err == nil || errors.Is(err, ErrCacheMiss) {
			t.Fatalf("Expected backend error, got %v", err)
		}
	}

	if err := gc.Get(ctx, "k", &got); !errors.Is(err, ErrCacheDown) {
		t.Errorf("Expected ErrCacheDown once open, got %v", err)
	}
	if err := gc.Invalidate(ctx, "k*"); !errors.Is(err, ErrCacheDown) {
		t.Errorf("Expected ErrCacheDown on invalidate, got %v", err)
	}
	if gc.Metrics().GetStats().Errors != 4 {
		t.Errorf("Expected 4 errors, got %d", gc.Metrics().GetStats().Errors)
	}
}

func TestGuardedCache_Invalidate(t *testing.T) {
	redisCache, mr := setupTestRedis(t)
	gc := NewGuardedCache(redisCache, nil, time.Minute)
	ctx := context.Background()

	gc.Set(ctx, "projects:u1:1:10:", page{})
	gc.Set(ctx, "projects:u2:1:10:", page{})

	if err := gc.Invalidate(ctx, "projects:u1:*"); err != nil {
		t.Fatalf("Invalidate failed: %v", err)
	}
	if mr.Exists("projects:u1:1:10:") {
		t.Error("Expected u1 page to be invalidated")
	}
	if !mr.Exists("projects:u2:1:10:") {
		t.Error("Expected u2 page to survive")
	}
}

func TestConfigFrom(t *testing.T) {
	cfg := ConfigFrom(config.RedisConfig{Host: "cache", Port: "6380", DB: 2, PoolSize: 7})

	if cfg.Addr != "cache:6380" {
		t.Errorf("Expected cache:6380, got %s", cfg.Addr)
	}
	if cfg.DB != 2 || cfg.PoolSize != 7 {
		t.Errorf("Unexpected config %+v", cfg)
	}
}
