package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"rag-backend/internal/model"
	"rag-backend/internal/service"
)

// IdentityKey 鉴权通过后身份信息在 gin.Context 中的 key
const IdentityKey = "identity"

// BearerAuth 校验 Authorization: Bearer <token>
// 失败直接 401，不会进入后面的 handler
func BearerAuth(auth service.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		// 1. 取 Header，必须是 "Bearer " 开头
		token, ok := strings.CutPrefix(c.GetHeader("Authorization"), "Bearer ")
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}

		// 2. 比对共享 token
		identity, err := auth.Verify(token)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}

		// 3. 身份挂到请求上
		c.Set(IdentityKey, identity)
		c.Next()
	}
}

// GetIdentity 取出 BearerAuth 挂上的身份
func GetIdentity(c *gin.Context) (model.Identity, bool) {
	v, ok := c.Get(IdentityKey)
	if !ok {
		return model.Identity{}, false
	}
	id, ok := v.(model.Identity)
	return id, ok
}
