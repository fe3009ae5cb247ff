package api

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/osu-soilwater/cover-crop-advisor/internal/logger"
)

// RequestLogging logs every request with its status and latency.
func RequestLogging(log logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		log.Info("request", map[string]interface{}{
			"method":  c.Request.Method,
			"path":    c.Request.URL.Path,
			"status":  c.Writer.Status(),
			"latency": time.Since(start).String(),
		})
	}
}
