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

	"omukit/internal/templated"
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
		keys, _ := client.Keys(ctx, "tmpl:*").Result()
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
		t.Skipf("skipping integration test: Valkey not reachable: %v", err)
	}
	client.Close()
}

func TestTemplateCacheListRoundTrip(t *testing.T) {
	client := testValkeyClient(t)
	tc := NewTemplateCache(client, time.Minute)
	ctx := context.Background()

	if _, ok := tc.GetList(ctx, "all"); ok {
		t.Fatal("expected miss on empty cache")
	}

	templates := []templated.Template{
		{ID: "t1", Name: "One", Thumbnail: "https://x/t1.webp"},
		{ID: "t2", Name: "Two"},
	}
	tc.SetList(ctx, "all", templates)

	got, ok := tc.GetList(ctx, "all")
	if !ok {
		t.Fatal("expected hit after set")
	}
	if len(got) != 2 || got[0].ID != "t1" || got[1].Name != "Two" {
		t.Errorf("cached listing = %+v", got)
	}

	// Different keys do not collide.
	if _, ok := tc.GetList(ctx, "folder-x"); ok {
		t.Error("folder listing must not hit the all-templates entry")
	}
}

func TestTemplateCacheDetailRoundTrip(t *testing.T) {
	client := testValkeyClient(t)
	tc := NewTemplateCache(client, time.Minute)
	ctx := context.Background()

	tmpl := &templated.Template{
		ID:   "t1",
		Name: "Resort",
		Layers: map[string]templated.Layer{
			"title-1": {Type: templated.LayerText, DefaultText: "RESORT"},
		},
	}
	tc.SetDetail(ctx, tmpl)

	got, ok := tc.GetDetail(ctx, "t1")
	if !ok {
		t.Fatal("expected hit")
	}
	if got.Layers["title-1"].DefaultText != "RESORT" {
		t.Errorf("cached detail = %+v", got)
	}

	tc.InvalidateDetail(ctx, "t1")
	if _, ok := tc.GetDetail(ctx, "t1"); ok {
		t.Error("expected miss after invalidation")
	}
}

func TestTemplateCacheExpiry(t *testing.T) {
	client := testValkeyClient(t)
	tc := NewTemplateCache(client, time.Second)
	ctx := context.Background()

	tc.SetDetail(ctx, &templated.Template{ID: "short-lived", Name: "S"})
	if _, ok := tc.GetDetail(ctx, "short-lived"); !ok {
		t.Fatal("expected hit before expiry")
	}

	time.Sleep(1100 * time.Millisecond)
	if _, ok := tc.GetDetail(ctx, "short-lived"); ok {
		t.Error("expected miss after TTL")
	}
}

func TestTemplateCacheIgnoresEmptyDetail(t *testing.T) {
	client := testValkeyClient(t)
	tc := NewTemplateCache(client, time.Minute)
	ctx := context.Background()

	tc.SetDetail(ctx, nil)
	tc.SetDetail(ctx, &templated.Template{})
	if _, ok := tc.GetDetail(ctx, ""); ok {
		t.Error("empty template must never be cached")
	}
}
