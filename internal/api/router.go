package api

import (
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/stitts-dev/efootball-stats/internal/api/handlers"
	"github.com/stitts-dev/efootball-stats/internal/api/middleware"
	"github.com/stitts-dev/efootball-stats/internal/chat"
	"github.com/stitts-dev/efootball-stats/internal/services"
	"github.com/stitts-dev/efootball-stats/pkg/config"
	"github.com/stitts-dev/efootball-stats/pkg/database"
)

// Dependencies are the long-lived services the routes are built from.
// Cache, LLM and Warmer may be nil.
type Dependencies struct {
	Config       *config.Config
	DB           *database.DB
	Cache        *services.CacheService
	Hub          *services.WebSocketHub
	Store        *services.PlayerStore
	Leaderboards *services.LeaderboardService
	Resolver     *chat.Resolver
	LLM          *services.GeminiClient
	ChatLimiter  *services.RateLimiter
	Warmer       *services.SnapshotWarmer
	Logger       *logrus.Logger
}

// NewRouter builds the engine with global middleware, /health and /api/v1.
func NewRouter(deps Dependencies) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.CorrelationID())
	router.Use(middleware.RequestLogger(deps.Logger))
	router.Use(middleware.ErrorLogger(deps.Logger))
	router.Use(middleware.CORS(deps.Config.CorsOrigins))

	health := handlers.NewHealthHandler(deps.DB, deps.Cache, deps.LLM, deps.Hub, deps.Warmer, deps.ChatLimiter)
	router.GET("/health", health.GetHealth)

	v1 := router.Group("/api/v1")
	v1.GET("/health", health.GetHealth)
	SetupRoutes(v1, deps)

	return router
}

// SetupRoutes registers the API on group.
func SetupRoutes(group *gin.RouterGroup, deps Dependencies) {
	playerHandler := handlers.NewPlayerHandler(deps.Store, deps.Leaderboards)
	leaderboardHandler := handlers.NewLeaderboardHandler(deps.Store, deps.Leaderboards)
	comparisonHandler := handlers.NewComparisonHandler(deps.Store)
	analyticsHandler := handlers.NewAnalyticsHandler(deps.Leaderboards)
	chatHandler := handlers.NewChatHandler(deps.Store, deps.Resolver, deps.Logger)
	wsHandler := handlers.NewWebSocketHandler(deps.Hub, deps.Config.CorsOrigins, deps.Logger)

	// Player endpoints
	group.GET("/players", playerHandler.ListPlayers)
	group.POST("/players", playerHandler.CreatePlayer)
	group.POST("/players/import", playerHandler.ImportPlayers)
	group.GET("/players/:id", playerHandler.GetPlayer)
	group.PUT("/players/:id/stats", playerHandler.UpdateStats)
	group.DELETE("/players/:id/stats", playerHandler.ResetStats)
	group.GET("/players/:id/similar", playerHandler.GetSimilar)
	group.GET("/players/:id/similar-scored", playerHandler.GetSimilarScored)
	group.GET("/careers/:name", playerHandler.GetCareer)

	// Leaderboards
	group.GET("/leaderboards/badges", leaderboardHandler.GetBadges)
	group.GET("/leaderboards/:metric", leaderboardHandler.GetLeaderboard)
	group.GET("/leaderboards/:metric/head-to-head", leaderboardHandler.GetHeadToHead)
	group.GET("/combinations", leaderboardHandler.GetCombinations)
	group.GET("/archetypes", leaderboardHandler.GetArchetypes)

	group.POST("/comparisons", comparisonHandler.CreateComparison)
	group.GET("/comparisons/:id", comparisonHandler.GetComparison)

	group.GET("/analytics", analyticsHandler.GetAnalytics)

	chatGroup := group.Group("/chat")
	chatGroup.GET("/questions", chatHandler.GetQuestions)
	chatGroup.POST("", middleware.RateLimit(deps.ChatLimiter), chatHandler.Ask)

	group.GET("/ws", wsHandler.HandleWebSocket)
}
