package middleware

import (
	"time"

	"gogrind/pkg/logger"

	"github.com/gin-gonic/gin"
)

// RequestLogger records method, path, latency and status for every request
func RequestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		logger.LogRequest(
			c.Request.Method,
			c.Request.URL.Path,
			c.ClientIP(),
			time.Since(start),
			c.Writer.Status(),
		)
	}
}
