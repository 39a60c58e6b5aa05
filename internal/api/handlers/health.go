package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/stitts-dev/efootball-stats/internal/services"
	"github.com/stitts-dev/efootball-stats/pkg/database"
)

type HealthHandler struct {
	db     *database.DB
	cache  *services.CacheService
	llm    *services.GeminiClient
	hub    *services.WebSocketHub
	warmer *services.SnapshotWarmer
	chat   *services.RateLimiter
}

func NewHealthHandler(db *database.DB, cache *services.CacheService, llm *services.GeminiClient, hub *services.WebSocketHub, warmer *services.SnapshotWarmer, chat *services.RateLimiter) *HealthHandler {
	return &HealthHandler{
		db:     db,
		cache:  cache,
		llm:    llm,
		hub:    hub,
		warmer: warmer,
		chat:   chat,
	}
}

// GetHealth reports each dependency. Only the database is critical.
func (h *HealthHandler) GetHealth(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	status := "ok"
	code := http.StatusOK
	checks := gin.H{}

	if err := h.db.Ping(); err != nil {
		status = "degraded"
		code = http.StatusServiceUnavailable
		checks["database"] = gin.H{"status": "down", "error": err.Error()}
	} else {
		checks["database"] = gin.H{"status": "up"}
	}

	switch {
	case !h.cache.Enabled():
		checks["cache"] = gin.H{"status": "disabled"}
	case h.cache.Ping(ctx) != nil:
		checks["cache"] = gin.H{"status": "down"}
	default:
		checks["cache"] = gin.H{"status": "up"}
	}

	if h.llm != nil && h.llm.Configured() {
		checks["llm"] = gin.H{"status": "configured", "circuit": h.llm.State()}
	} else {
		checks["llm"] = gin.H{"status": "not_configured"}
	}

	if h.warmer != nil {
		if last, err := h.warmer.LastRun(); !last.IsZero() {
			warm := gin.H{"last_run": last.UTC()}
			if err != nil {
				warm["error"] = err.Error()
			}
			checks["snapshots"] = warm
		}
	}

	checks["chat_rate_limit"] = h.chat.GetStats()

	c.JSON(code, gin.H{
		"status":            status,
		"service":           "efootball-stats",
		"timestamp":         time.Now().UTC(),
		"websocket_clients": h.hub.ClientCount(),
		"checks":            checks,
	})
}
