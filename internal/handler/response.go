package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"rag-backend/internal/service"
)

// writeError 按错误类别映射状态码，body 统一为 {"error": "..."}
// fallback 是该接口 500 时的提示语
func writeError(c *gin.Context, err error, fallback string) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, service.ErrMissingParameter):
		status = http.StatusBadRequest
	case errors.Is(err, service.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, service.ErrUnauthorized):
		status = http.StatusUnauthorized
	}

	msg := fallback
	if status != http.StatusInternalServerError || errors.Is(err, service.ErrDirectoryNotFound) {
		msg = service.Message(err, fallback)
	}

	// 原因只进日志
	_ = c.Error(err)
	c.AbortWithStatusJSON(status, gin.H{"error": msg})
}
