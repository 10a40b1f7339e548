package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"rag-backend/internal/service"
)

type TeamHandler struct {
	svc *service.LookupService
}

func NewTeamHandler(svc *service.LookupService) *TeamHandler {
	return &TeamHandler{svc: svc}
}

// Get 按姓名查成员 (不含 insights)
// GET /api/team?name=
func (h *TeamHandler) Get(c *gin.Context) {
	resp, err := h.svc.GetTeamMember(c.Request.Context(), c.Query("name"))
	if err != nil {
		writeError(c, err, "Internal server error")
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Insights GET /api/team/insights?name=
func (h *TeamHandler) Insights(c *gin.Context) {
	insights, err := h.svc.GetTeamInsights(c.Request.Context(), c.Query("name"))
	if err != nil {
		writeError(c, err, "Internal server error")
		return
	}
	c.JSON(http.StatusOK, insights)
}
