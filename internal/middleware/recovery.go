package middleware

import (
	"errors"
	"net/http"
	"runtime/debug"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

// Recovery 与 gin.Recovery 类似，但 http.ErrAbortHandler 要继续往上抛，
// 由 net/http 直接断开连接 (例如 zip 写到一半失败)
func Recovery() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			rec := recover()
			if rec == nil {
				return
			}
			if err, ok := rec.(error); ok && errors.Is(err, http.ErrAbortHandler) {
				log.Warn().Str("trace_id", c.GetString(TraceContextKey)).
					Str("path", c.Request.URL.Path).Msg("aborting response")
				panic(rec)
			}

			log.Error().
				Str("trace_id", c.GetString(TraceContextKey)).
				Interface("panic", rec).
				Bytes("stack", debug.Stack()).
				Msg("❌ panic recovered")
			if !c.Writer.Written() {
				c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
				return
			}
			c.Abort()
		}()
		c.Next()
	}
}
