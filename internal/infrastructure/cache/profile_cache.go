// Package cache keeps public user profiles in Redis.
package cache

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/oksasatya/jobboard/internal/domain/entity"
	"github.com/oksasatya/jobboard/pkg/helpers"
)

const profileKeyPrefix = "user:profile:"

type ProfileCache struct {
	rdb redis.Cmdable
	ttl time.Duration
}

func NewProfileCache(rdb redis.Cmdable, ttl time.Duration) *ProfileCache {
	return &ProfileCache{rdb: rdb, ttl: ttl}
}

func profileKey(id string) string { return profileKeyPrefix + id }

// Get returns the cached profile. ok is false on a miss.
func (c *ProfileCache) Get(ctx context.Context, id string) (*entity.User, bool, error) {
	u, ok, err := helpers.GetJSON[entity.User](ctx, c.rdb, profileKey(id))
	if err != nil || !ok {
		return nil, false, err
	}
	return &u, true, nil
}

// Set stores the profile. The password hash never reaches Redis: User omits it from JSON.
func (c *ProfileCache) Set(ctx context.Context, u *entity.User) error {
	return helpers.SetJSON(ctx, c.rdb, profileKey(u.ID.Hex()), u, c.ttl)
}

func (c *ProfileCache) Invalidate(ctx context.Context, id string) error {
	return helpers.DelKeys(ctx, c.rdb, profileKey(id))
}
