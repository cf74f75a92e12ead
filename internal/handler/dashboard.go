package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"fundboard/internal/models"
	"fundboard/internal/service"
)

// DashboardHandler serves the manager roster and the per-trader
// drill-down views.
type DashboardHandler struct {
	Roster *service.RosterService
}

func (h *DashboardHandler) Register(r *gin.RouterGroup) {
	r.GET("/roster", h.roster)
	r.GET("/roster/summary", h.summary)
	r.GET("/trader/:login", h.trader)
	r.GET("/trader/:login/equity", h.equity)
	r.GET("/trader/:login/deals", h.deals)
}

// @Summary Active trader roster, sorted by phase then gain/loss
// @Tags roster
// @Success 200 {object} map[string]any
// @Router /api/roster [get]
func (h *DashboardHandler) roster(c *gin.Context) {
	rows, err := h.Roster.Roster(c.Request.Context())
	if err != nil {
		Error(c, http.StatusBadGateway, err.Error(), nil)
		return
	}
	Ok(c, rows, map[string]any{
		"total":       len(rows),
		"phase_order": models.PhaseOrder,
	})
}

// @Summary Roster summary statistics
// @Tags roster
// @Success 200 {object} models.SummaryStats
// @Router /api/roster/summary [get]
func (h *DashboardHandler) summary(c *gin.Context) {
	rows, err := h.Roster.Roster(c.Request.Context())
	if err != nil {
		Error(c, http.StatusBadGateway, err.Error(), nil)
		return
	}
	Ok(c, h.Roster.Summary(rows), nil)
}

func (h *DashboardHandler) trader(c *gin.Context) {
	login, ok := loginParam(c)
	if !ok {
		return
	}
	row, err := h.Roster.TraderRow(c.Request.Context(), login)
	if err != nil {
		Error(c, http.StatusBadGateway, err.Error(), nil)
		return
	}
	if row == nil {
		NotFound(c, "trader not on active roster")
		return
	}
	deals, err := h.Roster.Deals(c.Request.Context(), login, intQuery(c, "limit", 0))
	if err != nil {
		Error(c, http.StatusBadGateway, err.Error(), nil)
		return
	}
	Ok(c, gin.H{"trader": row, "deals": deals}, nil)
}

// equity returns the curve in the shape the chart frontend consumes:
// parallel label/value arrays with nulls preserved.
func (h *DashboardHandler) equity(c *gin.Context) {
	login, ok := loginParam(c)
	if !ok {
		return
	}
	points, err := h.Roster.EquitySeries(c.Request.Context(), login)
	if err != nil {
		Error(c, http.StatusBadGateway, err.Error(), nil)
		return
	}

	labels := make([]string, 0, len(points))
	equity := make([]*float64, 0, len(points))
	dailyBalance := make([]*float64, 0, len(points))
	for _, p := range points {
		labels = append(labels, p.Date.Format("2006-01-02"))
		equity = append(equity, p.Equity)
		dailyBalance = append(dailyBalance, p.DailyBalance)
	}

	c.JSON(http.StatusOK, gin.H{
		"labels":        labels,
		"equity":        equity,
		"daily_balance": dailyBalance,
	})
}

func (h *DashboardHandler) deals(c *gin.Context) {
	login, ok := loginParam(c)
	if !ok {
		return
	}
	deals, err := h.Roster.Deals(c.Request.Context(), login, intQuery(c, "limit", 0))
	if err != nil {
		Error(c, http.StatusBadGateway, err.Error(), nil)
		return
	}
	Ok(c, deals, map[string]any{"total": len(deals)})
}

func loginParam(c *gin.Context) (int64, bool) {
	login, err := strconv.ParseInt(c.Param("login"), 10, 64)
	if err != nil || login <= 0 {
		Error(c, http.StatusBadRequest, "invalid login", nil)
		return 0, false
	}
	return login, true
}

func intQuery(c *gin.Context, key string, def int) int {
	raw := c.Query(key)
	if raw == "" {
		return def
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return def
	}
	return v
}
