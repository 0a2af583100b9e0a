// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// template.go provides a Valkey-backed cache for remote template metadata.
// Template listings and layer details change rarely but cost a round trip to
// the Templated API on every request; caching them for a few minutes keeps
// the browse experience snappy and the remote quota intact. Only metadata is
// cached, never rendered assets.
package cache

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"omukit/internal/templated"
)

const (
	// tmplKeyPrefix namespaces template cache keys in Valkey.
	tmplKeyPrefix = "tmpl:"

	// DefaultTemplateTTL is how long template metadata stays cached.
	DefaultTemplateTTL = 5 * time.Minute
)

// TemplateCache caches template listings and details in Valkey. All lookups
// degrade to a miss on cache errors; a broken cache never fails a request.
type TemplateCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewTemplateCache creates a template cache backed by the given Valkey client.
func NewTemplateCache(client *redis.Client, ttl time.Duration) *TemplateCache {
	if ttl == 0 {
		ttl = DefaultTemplateTTL
	}
	return &TemplateCache{client: client, ttl: ttl}
}

// GetList retrieves a cached template listing. The key distinguishes the
// all-templates listing from per-folder listings.
func (tc *TemplateCache) GetList(ctx context.Context, key string) ([]templated.Template, bool) {
	val, err := tc.client.Get(ctx, tmplKeyPrefix+"list:"+key).Bytes()
	if err == redis.Nil {
		return nil, false
	}
	if err != nil {
		slog.Warn("template cache get error", "key", key, "error", err)
		return nil, false
	}

	var templates []templated.Template
	if err := json.Unmarshal(val, &templates); err != nil {
		slog.Warn("template cache decode error", "key", key, "error", err)
		return nil, false
	}
	slog.Debug("template cache hit", "key", key)
	return templates, true
}

// SetList stores a template listing with the configured TTL.
func (tc *TemplateCache) SetList(ctx context.Context, key string, templates []templated.Template) {
	data, err := json.Marshal(templates)
	if err != nil {
		return
	}
	if err := tc.client.Set(ctx, tmplKeyPrefix+"list:"+key, data, tc.ttl).Err(); err != nil {
		slog.Warn("template cache set error", "key", key, "error", err)
	}
}

// GetDetail retrieves a cached template with its layer map.
func (tc *TemplateCache) GetDetail(ctx context.Context, templateID string) (*templated.Template, bool) {
	val, err := tc.client.Get(ctx, tmplKeyPrefix+"detail:"+templateID).Bytes()
	if err == redis.Nil {
		return nil, false
	}
	if err != nil {
		slog.Warn("template cache get error", "id", templateID, "error", err)
		return nil, false
	}

	var t templated.Template
	if err := json.Unmarshal(val, &t); err != nil {
		slog.Warn("template cache decode error", "id", templateID, "error", err)
		return nil, false
	}
	return &t, true
}

// SetDetail stores a template detail with the configured TTL.
func (tc *TemplateCache) SetDetail(ctx context.Context, t *templated.Template) {
	if t == nil || t.ID == "" {
		return
	}
	data, err := json.Marshal(t)
	if err != nil {
		return
	}
	if err := tc.client.Set(ctx, tmplKeyPrefix+"detail:"+t.ID, data, tc.ttl).Err(); err != nil {
		slog.Warn("template cache set error", "id", t.ID, "error", err)
	}
}

// InvalidateDetail removes one cached template detail. Called after clone
// and tag operations that change what the remote side reports.
func (tc *TemplateCache) InvalidateDetail(ctx context.Context, templateID string) {
	if err := tc.client.Del(ctx, tmplKeyPrefix+"detail:"+templateID).Err(); err != nil {
		slog.Warn("template cache invalidate error", "id", templateID, "error", err)
	}
}
