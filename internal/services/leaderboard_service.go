package services

import (
	"context"
	"errors"

	"github.com/sirupsen/logrus"

	"github.com/stitts-dev/efootball-stats/internal/analytics"
	"github.com/stitts-dev/efootball-stats/internal/archetype"
	"github.com/stitts-dev/efootball-stats/internal/models"
	"github.com/stitts-dev/efootball-stats/internal/ranking"
)

// LeaderboardService serves whole-dataset computations (badges, archetypes,
// analytics) through the cache.
type LeaderboardService struct {
	store  *PlayerStore
	cache  *CacheService
	topN   int
	logger *logrus.Entry
}

func NewLeaderboardService(store *PlayerStore, cache *CacheService, topN int) *LeaderboardService {
	if topN <= 0 {
		topN = ranking.DefaultBadgeTopN
	}
	return &LeaderboardService{
		store:  store,
		cache:  cache,
		topN:   topN,
		logger: logrus.WithField("component", "leaderboards"),
	}
}

func (s *LeaderboardService) TopN() int {
	return s.topN
}

// cached loads key into dest, or computes it from a fresh snapshot and
// stores it. Cache errors never fail the request.
func cached[T any](ctx context.Context, s *LeaderboardService, key string, compute func([]models.PlayerCard) T) (T, error) {
	var out T
	err := s.cache.Get(ctx, key, &out)
	if err == nil {
		return out, nil
	}
	if !errors.Is(err, ErrCacheMiss) {
		s.logger.WithError(err).WithField("key", key).Warn("Cache read failed")
	}

	gen := s.cache.Generation()
	players, err := s.store.Snapshot(ctx)
	if err != nil {
		return out, err
	}
	out = compute(players)
	if _, err := s.cache.SetIfCurrent(ctx, gen, key, out); err != nil {
		s.logger.WithError(err).WithField("key", key).Warn("Cache write failed")
	}
	return out, nil
}

// Badges returns every card's badges for the given top-N (0 uses the default).
func (s *LeaderboardService) Badges(ctx context.Context, topN int) (map[uint][]ranking.Badge, error) {
	if topN <= 0 {
		topN = s.topN
	}
	return cached(ctx, s, BadgesCacheKey(topN), func(players []models.PlayerCard) map[uint][]ranking.Badge {
		return ranking.BuildBadges(players, topN)
	})
}

// Leaderboard ranks the current snapshot. filterKey identifies the filter set
// in the cache key and must change whenever filters do.
func (s *LeaderboardService) Leaderboard(ctx context.Context, metric ranking.Metric, limit int, filterKey string, filters ...ranking.Filter) ([]ranking.Entry, error) {
	return cached(ctx, s, LeaderboardCacheKey(string(metric), limit, filterKey), func(players []models.PlayerCard) []ranking.Entry {
		return ranking.Rank(players, metric, limit, filters...)
	})
}

func (s *LeaderboardService) Archetypes(ctx context.Context) (archetype.Assignments, error) {
	return cached(ctx, s, ArchetypesCacheKey(), archetype.AssignDistinct)
}

func (s *LeaderboardService) Analytics(ctx context.Context) (analytics.Summary, error) {
	return cached(ctx, s, AnalyticsCacheKey(), analytics.Summarize)
}

// Refresh recomputes the default snapshots from one consistent read.
func (s *LeaderboardService) Refresh(ctx context.Context) error {
	gen := s.cache.Generation()
	players, err := s.store.Snapshot(ctx)
	if err != nil {
		return err
	}
	entries := map[string]interface{}{
		BadgesCacheKey(s.topN): ranking.BuildBadges(players, s.topN),
		ArchetypesCacheKey():   archetype.AssignDistinct(players),
		AnalyticsCacheKey():    analytics.Summarize(players),
	}
	for key, value := range entries {
		current, err := s.cache.SetIfCurrent(ctx, gen, key, value)
		if err != nil {
			return err
		}
		if !current {
			s.logger.Debug("Cards changed during refresh, leaving snapshots to the next read")
			return nil
		}
	}
	return nil
}
