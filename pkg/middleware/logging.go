package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/feralclo/release-engine/pkg/logger"
)

// RequestLogger logs each HTTP request with method, path, status, latency
// and client address. Server errors log at error level, client errors at
// warn.
func RequestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		if raw := c.Request.URL.RawQuery; raw != "" {
			path = path + "?" + raw
		}

		c.Next()

		fields := []zap.Field{
			zap.String("method", c.Request.Method),
			zap.String("path", path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", time.Since(start)),
			zap.String("client_ip", c.ClientIP()),
		}
		if requestID := GetRequestID(c); requestID != "" {
			fields = append(fields, zap.String("request_id", requestID))
		}

		ctx := c.Request.Context()
		switch {
		case c.Writer.Status() >= 500:
			logger.ErrorCtx(ctx, "request failed", fields...)
		case c.Writer.Status() >= 400:
			logger.WarnCtx(ctx, "request rejected", fields...)
		default:
			logger.InfoCtx(ctx, "request handled", fields...)
		}
	}
}
