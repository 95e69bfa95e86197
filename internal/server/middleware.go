package server

import (
	"strconv"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/abhisek/learnpath/internal/logger"
	"github.com/abhisek/learnpath/internal/metrics"
)

func corsMiddleware(origins []string) gin.HandlerFunc {
	cfg := cors.Config{
		AllowMethods: []string{"GET", "POST", "OPTIONS"},
		AllowHeaders: []string{"Content-Type", "X-Requested-With"},
		MaxAge:       12 * time.Hour,
	}
	if len(origins) == 0 || (len(origins) == 1 && origins[0] == "*") {
		cfg.AllowAllOrigins = true
	} else {
		cfg.AllowOrigins = origins
	}
	return cors.New(cfg)
}

// requestLog logs one line per request and feeds HTTP metrics.
func requestLog(log *logger.Logger, m *metrics.Metrics) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		elapsed := time.Since(start)

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		status := c.Writer.Status()

		if m != nil {
			m.RecordHTTPRequest(route, c.Request.Method, strconv.Itoa(status), elapsed)
		}

		kv := []any{"method", c.Request.Method, "route", route, "status", status, "latency_ms", elapsed.Milliseconds()}
		switch {
		case status >= 500:
			log.Error("request failed", append(kv, "errors", c.Errors.String())...)
		case status >= 400:
			log.Warn("request rejected", kv...)
		default:
			log.Debug("request served", kv...)
		}
	}
}
