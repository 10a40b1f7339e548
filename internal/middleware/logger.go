package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// RequestLogger 每个请求一行访问日志，写入全局 logger
func RequestLogger() gin.HandlerFunc {
	return requestLogger(func() *zerolog.Logger { return &log.Logger })
}

// RequestLoggerTo 写入指定 logger (测试用)
func RequestLoggerTo(l zerolog.Logger) gin.HandlerFunc {
	return requestLogger(func() *zerolog.Logger { return &l })
}

func requestLogger(logger func() *zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path

		// defer：handler panic (例如 zip 中途断开) 时也要留下访问日志
		defer func() {
			l := logger()
			status := c.Writer.Status()
			var event *zerolog.Event
			switch {
			case status >= 500:
				event = l.Error()
			case status >= 400:
				event = l.Warn()
			default:
				event = l.Info()
			}

			if len(c.Errors) > 0 {
				event = event.Str("errors", c.Errors.String())
			}
			event.
				Str("trace_id", c.GetString(TraceContextKey)).
				Str("method", c.Request.Method).
				Str("path", path).
				Int("status", status).
				Int("size", c.Writer.Size()).
				Dur("latency", time.Since(start)).
				Str("client_ip", c.ClientIP()).
				Msg("request")
		}()

		c.Next()
	}
}
