package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/guttosm/bsgreeks/internal/logger"
)

// RequestLogger is a Gin middleware that logs method, route, status code,
// request latency, and request ID (if available).
//
// Behavior:
//   - Logs at info for 2xx/3xx, warn for 4xx and error for 5xx.
//   - Uses the matched route template as "route" so uploads and calculations
//     group cleanly; the raw path is kept in "path".
//   - Adds the number of gin errors attached by handlers, if any.
//
// Usage:
//
//	router := gin.New()
//	router.Use(middleware.RequestID(), middleware.RequestLogger())
func RequestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		method := c.Request.Method
		path := c.Request.URL.Path

		c.Next()

		latency := time.Since(start)
		status := c.Writer.Status()
		rid, _ := c.Get(RequestIDKey)

		logger.L().WithLevel(levelFor(status)).
			Str("request_id", toString(rid)).
			Str("method", method).
			Str("path", path).
			Str("route", c.FullPath()).
			Int("status", status).
			Int64("latency_ms", latency.Milliseconds()).
			Int("bytes", c.Writer.Size()).
			Int("errors", len(c.Errors)).
			Str("client_ip", c.ClientIP()).
			Msg("http_request")
	}
}

func levelFor(status int) zerolog.Level {
	switch {
	case status >= 500:
		return zerolog.ErrorLevel
	case status >= 400:
		return zerolog.WarnLevel
	default:
		return zerolog.InfoLevel
	}
}

func toString(v any) string {
	if v == nil {
		return ""
	}
	if s, ok := v.(string); ok {
		return s
	}
	return ""
}
