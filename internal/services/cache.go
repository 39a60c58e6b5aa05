package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

// ErrCacheMiss is returned by Get for absent keys and when caching is disabled.
var ErrCacheMiss = errors.New("cache miss")

const cacheKeyPrefix = "efstats:"

// CacheService stores JSON snapshots in redis. A nil client disables it:
// writes are dropped and every read misses.
type CacheService struct {
	client     *redis.Client
	ttl        time.Duration
	generation atomic.Uint64
}

func NewCacheService(client *redis.Client, ttl time.Duration) *CacheService {
	return &CacheService{
		client: client,
		ttl:    ttl,
	}
}

// NewRedisClient parses url and pings the server.
func NewRedisClient(ctx context.Context, url string) (*redis.Client, error) {
	opt, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("failed to parse redis url: %w", err)
	}
	client := redis.NewClient(opt)

	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}
	return client, nil
}

func (s *CacheService) Enabled() bool {
	return s != nil && s.client != nil
}

// Set stores value under key. A zero expiration uses the service TTL.
func (s *CacheService) Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error {
	if !s.Enabled() {
		return nil
	}
	if expiration == 0 {
		expiration = s.ttl
	}

	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to marshal value: %w", err)
	}

	if err := s.client.Set(ctx, cacheKeyPrefix+key, data, expiration).Err(); err != nil {
		return fmt.Errorf("failed to set cache: %w", err)
	}

	return nil
}

// Generation changes on every Invalidate. Read it before taking the snapshot
// a cached value is computed from.
func (s *CacheService) Generation() uint64 {
	if s == nil {
		return 0
	}
	return s.generation.Load()
}

// SetIfCurrent stores value only while no invalidation has happened since
// generation was read, and reports whether the value is current. A write that
// races an invalidation is deleted again.
func (s *CacheService) SetIfCurrent(ctx context.Context, generation uint64, key string, value interface{}) (bool, error) {
	if s.Generation() != generation {
		return false, nil
	}
	if err := s.Set(ctx, key, value, 0); err != nil {
		return false, err
	}
	if s.Generation() != generation {
		return false, s.Delete(ctx, key)
	}
	return true, nil
}

func (s *CacheService) Get(ctx context.Context, key string, dest interface{}) error {
	if !s.Enabled() {
		return ErrCacheMiss
	}

	data, err := s.client.Get(ctx, cacheKeyPrefix+key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return ErrCacheMiss
		}
		return fmt.Errorf("failed to get cache: %w", err)
	}

	if err := json.Unmarshal(data, dest); err != nil {
		return fmt.Errorf("failed to unmarshal value: %w", err)
	}

	return nil
}

func (s *CacheService) Delete(ctx context.Context, keys ...string) error {
	if !s.Enabled() || len(keys) == 0 {
		return nil
	}
	prefixed := make([]string, len(keys))
	for i, k := range keys {
		prefixed[i] = cacheKeyPrefix + k
	}
	if err := s.client.Del(ctx, prefixed...).Err(); err != nil {
		return fmt.Errorf("failed to delete cache: %w", err)
	}
	return nil
}

// Invalidate bumps the generation and drops every snapshot derived from the
// card table. Failures are logged; a stale entry expires with its TTL anyway.
func (s *CacheService) Invalidate(ctx context.Context) {
	if s == nil {
		return
	}
	s.generation.Add(1)
	if !s.Enabled() {
		return
	}
	iter := s.client.Scan(ctx, 0, cacheKeyPrefix+"*", 100).Iterator()
	var keys []string
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		logrus.Warnf("Cache scan failed: %v", err)
		return
	}
	if len(keys) == 0 {
		return
	}
	if err := s.client.Del(ctx, keys...).Err(); err != nil {
		logrus.Warnf("Cache invalidation failed: %v", err)
	}
}

func (s *CacheService) Ping(ctx context.Context) error {
	if !s.Enabled() {
		return nil
	}
	return s.client.Ping(ctx).Err()
}

// Cache key generators
func BadgesCacheKey(topN int) string {
	return fmt.Sprintf("badges:%d", topN)
}

func ArchetypesCacheKey() string {
	return "archetypes"
}

func AnalyticsCacheKey() string {
	return "analytics"
}

func LeaderboardCacheKey(metric string, limit int, filters string) string {
	return fmt.Sprintf("leaderboard:%s:%d:%s", metric, limit, filters)
}
