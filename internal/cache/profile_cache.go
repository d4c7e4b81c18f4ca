package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/smartkitchen/inventory-api/internal/config"
	"github.com/smartkitchen/inventory-api/internal/domain"
)

const (
	profileKeyPrefix     = "forecast:profile"
	profileScanBatchSize = 100
)

// ProfileCache memoizes derived usage profiles per item. Entries carry a
// short TTL and are invalidated when an event is appended for the item, so a
// cached profile is never older than the last log write.
type ProfileCache interface {
	GetProfile(ctx context.Context, itemName string) (*domain.ItemUsageProfile, bool, error)
	SetProfile(ctx context.Context, itemName string, profile *domain.ItemUsageProfile) error
	InvalidateItem(ctx context.Context, itemName string) error
	InvalidateAll(ctx context.Context) error
}

type redisProfileCache struct {
	client *redis.Client
	ttl    time.Duration
}

type noopProfileCache struct{}

func NewProfileCache(cfg config.CacheConfig) (ProfileCache, error) {
	if !cfg.Enabled {
		return &noopProfileCache{}, nil
	}

	client, ttl, err := newRedisClient(cfg)
	if err != nil {
		return nil, err
	}

	return &redisProfileCache{client: client, ttl: ttl}, nil
}

func NewNoopProfileCache() ProfileCache {
	return &noopProfileCache{}
}

func (c *redisProfileCache) GetProfile(ctx context.Context, itemName string) (*domain.ItemUsageProfile, bool, error) {
	payload, err := c.client.Get(ctx, profileKey(itemName)).Bytes()
	if err == redis.Nil {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("redis get failed: %w", err)
	}

	var profile domain.ItemUsageProfile
	if err := json.Unmarshal(payload, &profile); err != nil {
		return nil, false, fmt.Errorf("decode cached profile: %w", err)
	}
	return &profile, true, nil
}

func (c *redisProfileCache) SetProfile(ctx context.Context, itemName string, profile *domain.ItemUsageProfile) error {
	payload, err := json.Marshal(profile)
	if err != nil {
		return fmt.Errorf("encode profile cache: %w", err)
	}

	if err := c.client.Set(ctx, profileKey(itemName), payload, c.ttl).Err(); err != nil {
		return fmt.Errorf("redis set failed: %w", err)
	}
	return nil
}

func (c *redisProfileCache) InvalidateItem(ctx context.Context, itemName string) error {
	return c.client.Del(ctx, profileKey(itemName)).Err()
}

func (c *redisProfileCache) InvalidateAll(ctx context.Context) error {
	return deleteKeysWithPrefix(ctx, c.client, profileKeyPrefix, profileScanBatchSize)
}

func (n *noopProfileCache) GetProfile(ctx context.Context, itemName string) (*domain.ItemUsageProfile, bool, error) {
	return nil, false, nil
}

func (n *noopProfileCache) SetProfile(ctx context.Context, itemName string, profile *domain.ItemUsageProfile) error {
	return nil
}

func (n *noopProfileCache) InvalidateItem(ctx context.Context, itemName string) error {
	return nil
}

func (n *noopProfileCache) InvalidateAll(ctx context.Context) error {
	return nil
}

func profileKey(itemName string) string {
	return fmt.Sprintf("%s:%s", profileKeyPrefix, strings.ToLower(itemName))
}
