// Package cache decorates repositories with a Redis read-through cache.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/gdugdh24/covenant-backend/internal/domain"
	"github.com/gdugdh24/covenant-backend/internal/repository"
)

const defaultProfileTTL = 5 * time.Minute

// redisGetSetter is the subset of *redis.Client used by the cache.
type redisGetSetter interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd
}

type profileCache struct {
	next   repository.ProfileRepository
	client redisGetSetter
	ttl    time.Duration
	prefix string
	logger *zap.Logger
}

// NewProfileCache caches GetByIdentity lookups. Cache errors never fail a
// lookup; the underlying repository is consulted instead.
func NewProfileCache(next repository.ProfileRepository, client *redis.Client, ttl time.Duration, logger *zap.Logger) repository.ProfileRepository {
	if client == nil {
		return next
	}
	return newProfileCache(next, client, ttl, logger)
}

func newProfileCache(next repository.ProfileRepository, client redisGetSetter, ttl time.Duration, logger *zap.Logger) *profileCache {
	if ttl <= 0 {
		ttl = defaultProfileTTL
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &profileCache{
		next:   next,
		client: client,
		ttl:    ttl,
		prefix: "profile:",
		logger: logger,
	}
}

func (c *profileCache) GetByIdentity(ctx context.Context, identity string) (*domain.Profile, error) {
	key := c.prefix + identity

	raw, err := c.client.Get(ctx, key).Bytes()
	switch {
	case err == nil:
		var profile domain.Profile
		jsonErr := json.Unmarshal(raw, &profile)
		if jsonErr == nil {
			return &profile, nil
		}
		c.logger.Warn("discarding undecodable cached profile", zap.String("key", key), zap.Error(jsonErr))
	case !errors.Is(err, redis.Nil):
		c.logger.Warn("profile cache get failed", zap.String("key", key), zap.Error(err))
	}

	profile, err := c.next.GetByIdentity(ctx, identity)
	if err != nil {
		return nil, err
	}

	if payload, err := json.Marshal(profile); err == nil {
		if err := c.client.Set(ctx, key, payload, c.ttl).Err(); err != nil {
			c.logger.Warn("profile cache set failed", zap.String("key", key), zap.Error(err))
		}
	}
	return profile, nil
}

func (c *profileCache) QueryByFilter(ctx context.Context, filter repository.ProfileFilter) ([]*domain.Profile, error) {
	return c.next.QueryByFilter(ctx, filter)
}

func (c *profileCache) QueryNearby(ctx context.Context, query repository.NearbyQuery) ([]*domain.Profile, error) {
	return c.next.QueryNearby(ctx, query)
}

func (c *profileCache) Count(ctx context.Context) (int, error) {
	return c.next.Count(ctx)
}
