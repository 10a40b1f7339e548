package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"rag-backend/internal/service"
)

type DocumentHandler struct {
	svc *service.ArchiveService
}

func NewDocumentHandler(svc *service.ArchiveService) *DocumentHandler {
	return &DocumentHandler{svc: svc}
}

// countingWriter 记录是否已经向客户端写出字节
type countingWriter struct {
	w gin.ResponseWriter
	n int64
}

func (cw *countingWriter) Write(p []byte) (int, error) {
	n, err := cw.w.Write(p)
	cw.n += int64(n)
	return n, err
}

// Download 把文档目录打包为 zip 流式返回
// GET /api/documents/download
func (h *DocumentHandler) Download(c *gin.Context) {
	ctx := c.Request.Context()

	// 1. 先检查文档源，失败时还能返回 JSON
	archive, err := h.svc.Prepare(ctx)
	if err != nil {
		writeError(c, err, "Error creating archive")
		return
	}

	// 2. 设置下载头
	c.Header("Content-Type", "application/zip")
	c.Header("Content-Disposition", `attachment; filename="documents.zip"`)
	c.Status(http.StatusOK)

	// 3. 边压缩边写
	cw := &countingWriter{w: c.Writer}
	if err := archive.Stream(ctx, cw); err != nil {
		if cw.n == 0 && !c.Writer.Written() {
			c.Writer.Header().Del("Content-Type")
			c.Writer.Header().Del("Content-Disposition")
			writeError(c, err, "Error creating archive")
			return
		}
		// 已经写出部分数据，只能断开连接，客户端会拿到截断的 zip
		log.Ctx(ctx).Error().Err(err).Int64("written", cw.n).Msg("❌ archive stream failed")
		panic(http.ErrAbortHandler)
	}
}
