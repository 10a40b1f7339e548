package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"rag-backend/internal/service"
)

type ScrapeHandler struct {
	svc *service.ScrapeService
}

func NewScrapeHandler(svc *service.ScrapeService) *ScrapeHandler {
	return &ScrapeHandler{svc: svc}
}

// Scrape GET /api/scrape?url=
func (h *ScrapeHandler) Scrape(c *gin.Context) {
	resp, err := h.svc.Scrape(c.Request.Context(), c.Query("url"))
	if err != nil {
		writeError(c, err, "Server error")
		return
	}
	c.JSON(http.StatusOK, resp)
}
