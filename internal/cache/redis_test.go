package cache

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
)

func TestDefaultCacheConfig(t *testing.T) {
	config := DefaultCacheConfig()

	if config.Addr != "localhost:6379" {
		t.Errorf("Expected Addr to be localhost:6379, got %s", config.Addr)
	}

	if config.PoolSize != 10 {
		t.Errorf("Expected PoolSize to be 10, got %d", config.PoolSize)
	}

	if config.MaxRetries != 3 {
		t.Errorf("Expected MaxRetries to be 3, got %d", config.MaxRetries)
	}

	if config.ReadTimeout != 3*time.Second {
		t.Errorf("Expected ReadTimeout to be 3s, got %v", config.ReadTimeout)
	}
}

func setupTestRedis(t *testing.T) (*RedisCache, *miniredis.Miniredis) {
	mr := miniredis.RunT(t)

	config := DefaultCacheConfig()
	config.Addr = mr.Addr()
	config.MaxRetries = -1

	cache := NewRedisCache(config)
	t.Cleanup(func() { cache.Close() })
	return cache, mr
}

func TestNewRedisCache_WithNilConfig(t *testing.T) {
	cache := NewRedisCache(nil)
	defer cache.Close()

	if cache.client == nil {
		t.Error("Expected Redis client to be initialized")
	}
}

type page struct {
	Total int64    `json:"total"`
	Items []string `json:"items"`
}

func TestRedisCache_SetGet(t *testing.T) {
	cache, mr := setupTestRedis(t)
	ctx := context.Background()

	want := page{Total: 2, Items: []string{"a", "b"}}
	if err := cache.Set(ctx, "projects:u1:1:10:", want, time.Minute); err != nil {
		t.Fatalf("Set failed: %v", err)
	}

	var got page
	if err := cache.Get(ctx, "projects:u1:1:10:", &got); err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if got.Total != 2 || len(got.Items) != 2 || got.Items[1] != "b" {
		t.Errorf("Unexpected cached value %+v", got)
	}

	mr.FastForward(2 * time.Minute)
	if err := cache.Get(ctx, "projects:u1:1:10:", &got); !errors.Is(err, ErrCacheMiss) {
		t.Errorf("Expected ErrCacheMiss after expiry, got %v", err)
	}
}

func TestRedisCache_GetMiss(t *testing.T) {
	cache, _ := setupTestRedis(t)

	var got page
	err := cache.Get(context.Background(), "missing", &got)
	if !errors.Is(err, ErrCacheMiss) {
		t.Errorf("Expected ErrCacheMiss, got %v", err)
	}
}

func TestRedisCache_GetCorrupt(t *testing.T) {
	cache, mr := setupTestRedis(t)
	mr.Set("broken", "{not json")

	var got page
	err := cache.Get(context.Background(), "broken", &got)
	if err == nil || errors.Is(err, ErrCacheMiss) {
		t.Errorf("Expected decode error, got %v", err)
	}
}

func TestRedisCache_DeletePattern(t *testing.T) {
	cache, mr := setupTestRedis(t)
	ctx := context.Background()

	for _, key := range []string{"tasks:p1:a", "tasks:p1:b", "tasks:p2:a"} {
		if err := cache.Set(ctx, key, "v", time.Minute); err != nil {
			t.Fatalf("Set %s failed: %v", key, err)
		}
	}

	if err := cache.DeletePattern(ctx, "tasks:p1:*"); err != nil {
		t.Fatalf("DeletePattern failed: %v", err)
	}

	if mr.Exists("tasks:p1:a") || mr.Exists("tasks:p1:b") {
		t.Error("Expected tasks:p1 keys to be removed")
	}
	if !mr.Exists("tasks:p2:a") {
		t.Error("Expected tasks:p2:a to survive")
	}

	if err := cache.DeletePattern(ctx, "nothing:*"); err != nil {
		t.Errorf("DeletePattern with no matches failed: %v", err)
	}
}

func TestRedisCache_Health(t *testing.T) {
	cache, mr := setupTestRedis(t)

	if err := cache.Health(context.Background()); err != nil {
		t.Errorf("Expected healthy cache, got %v", err)
	}

	mr.Close()
	if err := cache.Health(context.Background()); err == nil {
		t.Error("Expected health check to fail once redis is gone")
	}
}
