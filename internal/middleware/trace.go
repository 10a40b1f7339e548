package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// TraceContextKey 用于在 gin.Context 中存储 Trace ID
const TraceContextKey = "traceID"

const TraceHeader = "X-Trace-Id"

func TraceMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		// 1. 优先从 Header 获取（如果前端传了），否则生成新的
		traceID := c.GetHeader(TraceHeader)
		if traceID == "" {
			traceID = strings.ReplaceAll(uuid.New().String(), "-", "")
		}

		// 2. 存入 Gin Context
		c.Set(TraceContextKey, traceID)

		// 3. 带 trace_id 的 logger 挂到标准 Context，service 层用 log.Ctx(ctx) 取
		l := log.With().Str("trace_id", traceID).Logger()
		c.Request = c.Request.WithContext(l.WithContext(c.Request.Context()))

		// 4. 返回给前端，方便排查
		c.Header(TraceHeader, traceID)

		c.Next()
	}
}
