package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDisabledCache(t *testing.T) {
	ctx := context.Background()

	for name, cache := range map[string]*CacheService{
		"nil client":  NewCacheService(nil, 0),
		"nil service": nil,
	} {
		t.Run(name, func(t *testing.T) {
			assert.False(t, cache.Enabled())
			assert.NoError(t, cache.Set(ctx, "k", 1, 0))

			var out int
			assert.ErrorIs(t, cache.Get(ctx, "k", &out), ErrCacheMiss)
			assert.NoError(t, cache.Delete(ctx, "k"))
			assert.NoError(t, cache.Ping(ctx))
			cache.Invalidate(ctx)
		})
	}
}

func TestSetIfCurrentSkipsInvalidatedGeneration(t *testing.T) {
	ctx := context.Background()
	cache := NewCacheService(nil, 0)

	gen := cache.Generation()
	ok, err := cache.SetIfCurrent(ctx, gen, "badges:10", 1)
	assert.NoError(t, err)
	assert.True(t, ok)

	cache.Invalidate(ctx)
	assert.Equal(t, gen+1, cache.Generation())

	ok, err = cache.SetIfCurrent(ctx, gen, "badges:10", 1)
	assert.NoError(t, err)
	assert.False(t, ok)

	var none *CacheService
	assert.Zero(t, none.Generation())
}

func TestCacheKeys(t *testing.T) {
	assert.Equal(t, "badges:10", BadgesCacheKey(10))
	assert.Equal(t, "leaderboard:goal:5:position=CF", LeaderboardCacheKey("goal", 5, "position=CF"))
}
