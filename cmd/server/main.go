package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"slices"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/stitts-dev/efootball-stats/internal/api"
	"github.com/stitts-dev/efootball-stats/internal/chat"
	"github.com/stitts-dev/efootball-stats/internal/models"
	"github.com/stitts-dev/efootball-stats/internal/services"
	"github.com/stitts-dev/efootball-stats/pkg/config"
	"github.com/stitts-dev/efootball-stats/pkg/database"
	"github.com/stitts-dev/efootball-stats/pkg/logger"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	log := logger.InitLogger(cfg.LogLevel, cfg.IsDevelopment())
	if cfg.IsDevelopment() {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}
	if cfg.IsProduction() && slices.Contains(cfg.CorsOrigins, "*") {
		log.Warn("CORS_ORIGINS allows every origin in production")
	}

	db, err := database.NewConnection(cfg.DatabaseDriver, cfg.DatabaseURL, cfg.IsDevelopment())
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	if err := db.AutoMigrate(models.AllModels()...); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Redis is optional; without it every request computes from the store.
	cache := services.NewCacheService(nil, cfg.CacheTTL)
	if cfg.RedisURL != "" {
		redisClient, err := services.NewRedisClient(ctx, cfg.RedisURL)
		if err != nil {
			log.WithError(err).Warn("Redis unavailable, caching disabled")
		} else {
			defer redisClient.Close()
			cache = services.NewCacheService(redisClient, cfg.CacheTTL)
		}
	}

	hub := services.NewWebSocketHub(log)
	go hub.Run(ctx)

	store := services.NewPlayerStore(db, cache, hub)
	cards, err := services.LoadSeed(cfg.SeedFile)
	if err != nil {
		log.Fatalf("Failed to load seed: %v", err)
	}
	if n, err := store.Seed(ctx, cards); err != nil {
		log.Fatalf("Failed to seed players: %v", err)
	} else if n > 0 {
		log.WithField("count", n).Info("Seeded empty player table")
	}

	leaderboards := services.NewLeaderboardService(store, cache, cfg.LeaderboardTopN)

	gemini := services.NewGeminiClient(cfg, log)
	if !gemini.Configured() {
		log.Warn("GEMINI_API_KEY not set, explain questions fall back to local answers")
	}
	modelCfg := chat.DefaultModelConfig()
	if cfg.LLMTemperature > 0 {
		modelCfg.Temperature = cfg.LLMTemperature
	}
	if cfg.LLMMaxTokens > 0 {
		modelCfg.MaxTokens = cfg.LLMMaxTokens
	}
	if cfg.LLMTopP > 0 {
		modelCfg.TopP = cfg.LLMTopP
	}
	resolver := chat.NewResolver(gemini, modelCfg,
		chat.WithTimeout(cfg.ExternalAPITimeout),
		chat.WithLogger(log),
	)

	var warmer *services.SnapshotWarmer
	if cache.Enabled() {
		interval, err := time.ParseDuration(cfg.SnapshotRefreshInterval)
		if err != nil {
			log.Warnf("Invalid snapshot refresh interval, using default 5m: %v", err)
			interval = 5 * time.Minute
		}
		warmer = services.NewSnapshotWarmer(leaderboards, log, interval)
		if err := warmer.Start(); err != nil {
			log.Errorf("Failed to start snapshot warmer: %v", err)
		}
		defer warmer.Stop()
	}

	router := api.NewRouter(api.Dependencies{
		Config:       cfg,
		DB:           db,
		Cache:        cache,
		Hub:          hub,
		Store:        store,
		Leaderboards: leaderboards,
		Resolver:     resolver,
		LLM:          gemini,
		ChatLimiter:  services.NewRateLimiter(cfg.ChatRateLimit),
		Warmer:       warmer,
		Logger:       log,
	})

	if cfg.IsDevelopment() {
		for _, route := range router.Routes() {
			log.Debugf("%s %s", route.Method, route.Path)
		}
	}

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.Port),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.WithService("efootball-stats").WithField("env", cfg.Env).Infof("Starting server on port %s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	<-ctx.Done()
	log.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Errorf("Server forced to shutdown: %v", err)
	}

	log.Info("Server exited")
}
