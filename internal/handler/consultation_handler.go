package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"rag-backend/internal/service"
)

type ConsultationHandler struct {
	svc *service.LookupService
}

func NewConsultationHandler(svc *service.LookupService) *ConsultationHandler {
	return &ConsultationHandler{svc: svc}
}

// List 顾问姓名在咨询详情里做子串匹配
// GET /api/consultations?name=
func (h *ConsultationHandler) List(c *gin.Context) {
	list, err := h.svc.FindConsultations(c.Request.Context(), c.Query("name"))
	if err != nil {
		writeError(c, err, "Server error")
		return
	}
	c.JSON(http.StatusOK, list)
}
