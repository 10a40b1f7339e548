package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"rag-backend/internal/service"
)

type InvestmentHandler struct {
	svc *service.LookupService
}

func NewInvestmentHandler(svc *service.LookupService) *InvestmentHandler {
	return &InvestmentHandler{svc: svc}
}

// Get GET /api/investments?company_name=
func (h *InvestmentHandler) Get(c *gin.Context) {
	resp, err := h.svc.GetInvestment(c.Request.Context(), c.Query("company_name"))
	if err != nil {
		writeError(c, err, "Server error")
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Insights GET /api/investments/insights?company_name=
func (h *InvestmentHandler) Insights(c *gin.Context) {
	insights, err := h.svc.GetInvestmentInsights(c.Request.Context(), c.Query("company_name"))
	if err != nil {
		writeError(c, err, "Server error")
		return
	}
	c.JSON(http.StatusOK, insights)
}
