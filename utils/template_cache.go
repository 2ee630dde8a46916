package utils

import (
	"context"
	"encoding/json"
	"time"

	"slotify/models"

	"github.com/go-redis/redis/v8"
)

// TemplateCache caches compiled weekly templates keyed by owner with a
// bounded TTL. It is an explicit object passed into the scheduling service,
// never ambient state; a major template edit invalidates the owner's entry.
type TemplateCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewTemplateCache(client *redis.Client, ttl time.Duration) *TemplateCache {
	return &TemplateCache{client: client, ttl: ttl}
}

func (tc *TemplateCache) key(owner string) string {
	return "template:" + owner
}

// Get returns the cached template for owner, or false on miss or decode
// failure (a corrupt entry is treated as a miss).
func (tc *TemplateCache) Get(ctx context.Context, owner string) (*models.WeeklyTemplate, bool) {
	raw, err := tc.client.Get(ctx, tc.key(owner)).Result()
	if err != nil {
		return nil, false
	}
	var tmpl models.WeeklyTemplate
	if err := json.Unmarshal([]byte(raw), &tmpl); err != nil {
		tc.client.Del(ctx, tc.key(owner))
		return nil, false
	}
	return &tmpl, true
}

func (tc *TemplateCache) Set(ctx context.Context, tmpl models.WeeklyTemplate) error {
	raw, err := json.Marshal(tmpl)
	if err != nil {
		return err
	}
	return tc.client.Set(ctx, tc.key(tmpl.Owner), raw, tc.ttl).Err()
}

// Invalidate drops the owner's cache entry.
func (tc *TemplateCache) Invalidate(ctx context.Context, owner string) error {
	return tc.client.Del(ctx, tc.key(owner)).Err()
}
