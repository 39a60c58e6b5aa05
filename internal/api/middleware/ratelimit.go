package middleware

import (
	"github.com/gin-gonic/gin"

	"github.com/stitts-dev/efootball-stats/internal/services"
	"github.com/stitts-dev/efootball-stats/pkg/utils"
)

// RateLimit rejects clients that exceed limiter's allowance, keyed by client IP.
func RateLimit(limiter *services.RateLimiter) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := limiter.Allow(c.ClientIP()); err != nil {
			c.Header("Retry-After", "60")
			utils.SendTooManyRequests(c, err.Error())
			c.Abort()
			return
		}
		c.Next()
	}
}
