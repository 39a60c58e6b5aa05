package services

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
)

// SnapshotWarmer periodically precomputes leaderboard snapshots into the cache.
type SnapshotWarmer struct {
	leaderboards *LeaderboardService
	logger       *logrus.Logger
	cron         *cron.Cron
	interval     time.Duration
	mu           sync.Mutex
	isRunning    bool
	initial      sync.WaitGroup
	lastRun      time.Time
	lastErr      error
}

func NewSnapshotWarmer(leaderboards *LeaderboardService, logger *logrus.Logger, interval time.Duration) *SnapshotWarmer {
	return &SnapshotWarmer{
		leaderboards: leaderboards,
		logger:       logger,
		cron:         cron.New(),
		interval:     interval,
	}
}

// Start schedules the refresh and runs it once immediately.
func (s *SnapshotWarmer) Start() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.isRunning {
		return fmt.Errorf("snapshot warmer is already running")
	}
	if s.interval <= 0 {
		return fmt.Errorf("invalid refresh interval %s", s.interval)
	}

	schedule := fmt.Sprintf("@every %s", s.interval.String())
	if _, err := s.cron.AddFunc(schedule, s.warm); err != nil {
		return fmt.Errorf("failed to schedule snapshot warmer: %w", err)
	}

	s.cron.Start()
	s.isRunning = true

	s.initial.Add(1)
	go func() {
		defer s.initial.Done()
		s.warm()
	}()

	s.logger.WithField("interval", s.interval).Info("Snapshot warmer started")
	return nil
}

// Stop halts scheduling and waits for running refreshes.
func (s *SnapshotWarmer) Stop() {
	s.mu.Lock()
	if !s.isRunning {
		s.mu.Unlock()
		return
	}
	s.isRunning = false
	s.mu.Unlock()

	ctx := s.cron.Stop()
	<-ctx.Done()
	s.initial.Wait()

	s.logger.Info("Snapshot warmer stopped")
}

// LastRun reports when the last refresh finished and how it went.
func (s *SnapshotWarmer) LastRun() (time.Time, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastRun, s.lastErr
}

func (s *SnapshotWarmer) warm() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	start := time.Now()
	err := s.leaderboards.Refresh(ctx)

	s.mu.Lock()
	s.lastRun = time.Now()
	s.lastErr = err
	s.mu.Unlock()

	if err != nil {
		s.logger.Errorf("Snapshot refresh failed: %v", err)
		return
	}
	s.logger.WithField("duration", time.Since(start)).Debug("Snapshots refreshed")
}
