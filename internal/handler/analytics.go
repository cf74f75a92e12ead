package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"fundboard/internal/analytics"
	"fundboard/internal/service"
)

// AnalyticsHandler serves the per-trader performance breakdown.
type AnalyticsHandler struct {
	Analytics *service.AnalyticsService
}

func (h *AnalyticsHandler) Register(r *gin.RouterGroup) {
	r.GET("/analytics/:identifier", h.trader)
}

// @Summary Trader analytics by email or login
// @Tags analytics
// @Param identifier path string true "email or numeric login"
// @Success 200 {object} map[string]any
// @Failure 404 {object} map[string]any
// @Router /api/analytics/{identifier} [get]
func (h *AnalyticsHandler) trader(c *gin.Context) {
	result, err := h.Analytics.TraderAnalytics(c.Request.Context(), c.Param("identifier"))
	if err != nil {
		Error(c, http.StatusBadGateway, err.Error(), nil)
		return
	}
	if result == nil {
		NotFound(c, "no completed trades for this trader")
		return
	}
	Ok(c, gin.H{
		"analytics": result,
		"insights":  analytics.Insights(result),
	}, nil)
}
