package middleware

import (
	"dineslot/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// RequestIDMiddleware assigns every request a correlation id, taken from the
// X-Request-ID header when the caller sent one, and a logger carrying it.
func RequestIDMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.GetHeader(utils.RequestIDHeader)
		if requestID == "" || len(requestID) > 128 {
			requestID = uuid.New().String()
		}
		c.Set(utils.ContextRequestIDKey, requestID)
		c.Set(utils.ContextLoggerKey, utils.GetLogger().With(zap.String("requestID", requestID)))
		c.Header(utils.RequestIDHeader, requestID)
		c.Next()
	}
}

// AccessLogMiddleware logs one line per request with the request-scoped logger.
func AccessLogMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()
		utils.RequestLogger(c).Info("request",
			zap.String("method", c.Request.Method),
			zap.String("path", c.FullPath()),
			zap.Int("status", c.Writer.Status()),
			zap.String("ip", getClientIP(c)))
	}
}
