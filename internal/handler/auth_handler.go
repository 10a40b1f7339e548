package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"rag-backend/internal/dto"
	"rag-backend/internal/middleware"
	"rag-backend/internal/service"
)

type AuthHandler struct {
	svc service.AuthService // 依赖接口，而不是具体的结构体
}

func NewAuthHandler(svc service.AuthService) *AuthHandler {
	return &AuthHandler{svc: svc}
}

// Token 下发共享 token (公开接口)
// GET /auth/token
func (h *AuthHandler) Token(c *gin.Context) {
	c.JSON(http.StatusOK, h.svc.Token())
}

// Ping 返回当前请求挂载的身份
// GET /ping
func (h *AuthHandler) Ping(c *gin.Context) {
	id, ok := middleware.GetIdentity(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}
	c.JSON(http.StatusOK, dto.PingResp{Name: id.Name, Email: id.Email})
}
