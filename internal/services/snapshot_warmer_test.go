package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSnapshotWarmerLifecycle(t *testing.T) {
	ctx := context.Background()
	store := NewPlayerStore(newTestDB(t), NewCacheService(nil, 0), nil)
	_, err := store.Seed(ctx, storeFixture())
	require.NoError(t, err)

	warmer := NewSnapshotWarmer(NewLeaderboardService(store, NewCacheService(nil, 0), 5), quietLogger(), time.Hour)
	require.NoError(t, warmer.Start())
	assert.Error(t, warmer.Start(), "second start must fail")

	assert.Eventually(t, func() bool {
		last, _ := warmer.LastRun()
		return !last.IsZero()
	}, 2*time.Second, 10*time.Millisecond)

	warmer.Stop()
	_, runErr := warmer.LastRun()
	assert.NoError(t, runErr)

	// Stopping twice is a no-op.
	warmer.Stop()
}

func TestSnapshotWarmerRejectsBadInterval(t *testing.T) {
	warmer := NewSnapshotWarmer(nil, quietLogger(), 0)
	assert.Error(t, warmer.Start())
}
