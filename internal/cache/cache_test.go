// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package cache

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"

	"mgepcar/internal/catalog"
)

// testValkeyClient returns a Redis client for tests.
// Skips if Valkey is unavailable.
func testValkeyClient(t *testing.T) *redis.Client {
	t.Helper()

	host := envOr("VALKEY_HOST", "localhost")
	port := envOr("VALKEY_PORT", "6379")
	password := os.Getenv("VALKEY_PASSWORD")

	client := redis.NewClient(&redis.Options{
		Addr:     host + ":" + port,
		Password: password,
		DB:       15, // Use DB 15 for tests.
	})

	ctx := context.Background()
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		t.Skipf("skipping integration test: Valkey not reachable: %v", err)
	}

	t.Cleanup(func() {
		keys, _ := client.Keys(ctx, "api:*").Result()
		if len(keys) > 0 {
			client.Del(ctx, keys...)
		}
		client.Close()
	})

	return client
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func TestConnectValkey(t *testing.T) {
	host := envOr("VALKEY_HOST", "localhost")
	port := envOr("VALKEY_PORT", "6379")

	client, err := ConnectValkey(host, port, os.Getenv("VALKEY_PASSWORD"))
	if err != nil {
		t.Skipf("skipping: Valkey not available: %v", err)
	}
	defer client.Close()

	if err := client.Ping(context.Background()).Err(); err != nil {
		t.Errorf("ping after connect: %v", err)
	}
}

func TestResponseCacheRoundTrip(t *testing.T) {
	client := testValkeyClient(t)
	rc := NewResponseCache(client, time.Minute)
	ctx := context.Background()

	key := ListingsKey(catalog.Criteria{Search: "bmw", MaxPrice: 200_000}, 1)
	body := []byte(`{"listings":[]}`)

	if _, ok := rc.Get(ctx, key); ok {
		t.Fatal("unexpected hit before Set")
	}

	rc.Set(ctx, key, body)

	got, ok := rc.Get(ctx, key)
	if !ok {
		t.Fatal("expected hit after Set")
	}
	if string(got) != string(body) {
		t.Errorf("body: got %q, want %q", got, body)
	}
}

func TestResponseCacheInvalidateAll(t *testing.T) {
	client := testValkeyClient(t)
	rc := NewResponseCache(client, time.Minute)
	ctx := context.Background()

	rc.Set(ctx, ListingsKey(catalog.Criteria{}, 1), []byte("a"))
	rc.Set(ctx, ListingKey("bmw-m4-competition", 0), []byte("b"))
	rc.Set(ctx, ReviewsKey(0), []byte("c"))

	rc.InvalidateAll(ctx)

	for _, key := range []string{
		ListingsKey(catalog.Criteria{}, 1),
		ListingKey("bmw-m4-competition", 0),
		ReviewsKey(0),
	} {
		if _, ok := rc.Get(ctx, key); ok {
			t.Errorf("key %q survived InvalidateAll", key)
		}
	}
}

func TestCacheKeysCriteriaSensitive(t *testing.T) {
	base := ListingsKey(catalog.Criteria{}, 1)
	cases := []string{
		ListingsKey(catalog.Criteria{Search: "audi"}, 1),
		ListingsKey(catalog.Criteria{MinYear: 2020}, 1),
		ListingsKey(catalog.Criteria{MaxPrice: 150_000}, 1),
		ListingsKey(catalog.Criteria{ShowSold: true}, 1),
		ListingsKey(catalog.Criteria{}, 2),
	}
	for _, key := range cases {
		if key == base {
			t.Errorf("criteria change produced identical key %q", key)
		}
	}
}
