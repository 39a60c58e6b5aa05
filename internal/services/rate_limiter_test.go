package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/stitts-dev/efootball-stats/pkg/utils"
)

func TestRateLimiterPerKey(t *testing.T) {
	now := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	rl := NewRateLimiter(3)
	rl.now = func() time.Time { return now }

	for i := 0; i < 3; i++ {
		assert.NoError(t, rl.Allow("1.1.1.1"))
	}
	assert.ErrorIs(t, rl.Allow("1.1.1.1"), utils.ErrRateLimited)
	assert.NoError(t, rl.Allow("2.2.2.2"))

	// One token refills every 20s at 3/minute.
	now = now.Add(21 * time.Second)
	assert.NoError(t, rl.Allow("1.1.1.1"))
	assert.ErrorIs(t, rl.Allow("1.1.1.1"), utils.ErrRateLimited)

	assert.Equal(t, 2, rl.GetStats()["tracked_clients"])
}

func TestRateLimiterSweepsIdleClients(t *testing.T) {
	now := time.Now()
	rl := NewRateLimiter(1)
	rl.now = func() time.Time { return now }

	assert.NoError(t, rl.Allow("a"))
	now = now.Add(2 * visitorIdle)
	assert.NoError(t, rl.Allow("b"))
	assert.Equal(t, 1, rl.GetStats()["tracked_clients"])
}

func TestNilRateLimiterStats(t *testing.T) {
	var rl *RateLimiter
	assert.NoError(t, rl.Allow("x"))
	assert.Equal(t, 0, rl.GetStats()["tracked_clients"])
}

func TestRateLimiterDisabled(t *testing.T) {
	rl := NewRateLimiter(0)
	for i := 0; i < 100; i++ {
		assert.NoError(t, rl.Allow("x"))
	}
}
