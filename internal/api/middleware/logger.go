package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// requestEntry tags an entry with the request line and correlation id.
func requestEntry(logger *logrus.Logger, c *gin.Context) *logrus.Entry {
	fields := logrus.Fields{
		"method":    c.Request.Method,
		"path":      c.FullPath(),
		"client_ip": c.ClientIP(),
	}
	if fields["path"] == "" {
		fields["path"] = c.Request.URL.Path
	}
	if id := c.GetString(CorrelationIDKey); id != "" {
		fields["correlation_id"] = id
	}
	return logger.WithFields(fields)
}

// RequestLogger writes one line per request, levelled by response status.
// Health probes log at debug.
func RequestLogger(logger *logrus.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		status := c.Writer.Status()
		entry := requestEntry(logger, c).WithFields(logrus.Fields{
			"status":  status,
			"latency": time.Since(start).String(),
			"bytes":   c.Writer.Size(),
		})
		if q := c.Request.URL.RawQuery; q != "" {
			entry = entry.WithField("query", q)
		}

		switch {
		case status >= 500:
			entry.Error("Request failed")
		case status >= 400:
			entry.Warn("Request rejected")
		case c.Request.URL.Path == "/health":
			entry.Debug("Request completed")
		default:
			entry.Info("Request completed")
		}
	}
}

// ErrorLogger reports errors handlers attached with c.Error.
func ErrorLogger(logger *logrus.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()
		for _, err := range c.Errors {
			requestEntry(logger, c).WithError(err.Err).Error("Request error")
		}
	}
}
