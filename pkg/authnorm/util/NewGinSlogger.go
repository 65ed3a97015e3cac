package util

import (
	"log/slog"
	"time"

	"github.com/gin-gonic/gin"
)

// NewGinSlogger logs every request handled by gin. Requests which ended with errors attached to the
// context are logged at warn level regardless of the given level.
func NewGinSlogger(level slog.Level, logger *slog.Logger) func(*gin.Context) {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		end := time.Now()

		attributes := []slog.Attr{
			slog.Int("status", c.Writer.Status()),
			slog.String("method", c.Request.Method),
			slog.String("path", c.Request.URL.Path),
			slog.String("route", c.FullPath()),
			slog.String("ip", c.ClientIP()),
			slog.Duration("latency", end.Sub(start)),
			slog.Time("time", end),
		}
		if plugin := c.Param("plugin"); plugin != "" {
			attributes = append(attributes, slog.String("pluginName", plugin))
		}
		lvl := level
		if len(c.Errors) > 0 {
			lvl = slog.LevelWarn
			attributes = append(attributes, slog.String("errors", c.Errors.String()))
		}
		logger.LogAttrs(c.Request.Context(), lvl, "Handled request", attributes...)
	}
}
