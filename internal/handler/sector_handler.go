package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"rag-backend/internal/service"
)

type SectorHandler struct {
	svc *service.LookupService
}

func NewSectorHandler(svc *service.LookupService) *SectorHandler {
	return &SectorHandler{svc: svc}
}

// Get 返回完整的 sector 记录
// GET /api/sectors?sector=
func (h *SectorHandler) Get(c *gin.Context) {
	sector, err := h.svc.GetSector(c.Request.Context(), c.Query("sector"))
	if err != nil {
		writeError(c, err, "Server error")
		return
	}
	c.JSON(http.StatusOK, sector)
}
