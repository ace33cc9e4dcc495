package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/oksasatya/jobboard/internal/domain/entity"
)

func newCache(t *testing.T) (*ProfileCache, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })
	return NewProfileCache(rdb, time.Minute), mr
}

func TestProfileCacheRoundTrip(t *testing.T) {
	ctx := context.Background()
	c, mr := newCache(t)
	u := &entity.User{ID: primitive.NewObjectID(), Name: "Ada", Email: "ada@example.com", Password: "$2a$12$secret", Skills: []string{"go"}}

	_, ok, err := c.Get(ctx, u.ID.Hex())
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, c.Set(ctx, u))
	raw, err := mr.Get(profileKey(u.ID.Hex()))
	require.NoError(t, err)
	assert.NotContains(t, raw, "secret")

	got, ok, err := c.Get(ctx, u.ID.Hex())
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, u.ID, got.ID)
	assert.Equal(t, []string{"go"}, got.Skills)
	assert.Empty(t, got.Password)

	mr.FastForward(2 * time.Minute)
	_, ok, err = c.Get(ctx, u.ID.Hex())
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestProfileCacheInvalidate(t *testing.T) {
	ctx := context.Background()
	c, _ := newCache(t)
	u := &entity.User{ID: primitive.NewObjectID(), Name: "Ada"}
	require.NoError(t, c.Set(ctx, u))
	require.NoError(t, c.Invalidate(ctx, u.ID.Hex()))
	_, ok, err := c.Get(ctx, u.ID.Hex())
	require.NoError(t, err)
	assert.False(t, ok)
}
