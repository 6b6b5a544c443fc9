//go:build integration

package cache

import (
	"context"
	"os"
	"testing"
	"time"
)

func exerciseBackend(t *testing.T, c Cache) {
	t.Helper()
	ctx := context.Background()
	key := "kitshelf-test-" + time.Now().Format("150405.000000")
	defer c.Delete(ctx, key)

	if _, hit, err := c.Get(ctx, key); err != nil || hit {
		t.Fatalf("Get() before Set = %v, %v; want miss", hit, err)
	}
	if err := c.Set(ctx, key, []byte("value"), time.Minute); err != nil {
		t.Fatalf("Set() error: %v", err)
	}
	data, hit, err := c.Get(ctx, key)
	if err != nil || !hit || string(data) != "value" {
		t.Fatalf("Get() = %q, %v, %v; want value, true, nil", data, hit, err)
	}
	if err := c.Delete(ctx, key); err != nil {
		t.Fatalf("Delete() error: %v", err)
	}
	if _, hit, _ := c.Get(ctx, key); hit {
		t.Error("key should be gone after Delete")
	}
}

func TestRedisCache_Integration(t *testing.T) {
	addr := os.Getenv("KITSHELF_REDIS_ADDR")
	if addr == "" {
		t.Skip("KITSHELF_REDIS_ADDR not set, skipping integration test")
	}
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	c, err := NewRedisCache(ctx, RedisConfig{Addr: addr})
	if err != nil {
		t.Fatalf("NewRedisCache() error: %v", err)
	}
	defer c.Close()
	exerciseBackend(t, c)
}

func TestMongoCache_Integration(t *testing.T) {
	uri := os.Getenv("KITSHELF_MONGO_URI")
	if uri == "" {
		t.Skip("KITSHELF_MONGO_URI not set, skipping integration test")
	}
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	c, err := NewMongoCache(ctx, MongoConfig{URI: uri, Collection: "cache_test"})
	if err != nil {
		t.Fatalf("NewMongoCache() error: %v", err)
	}
	defer c.Close()
	exerciseBackend(t, c)
}
