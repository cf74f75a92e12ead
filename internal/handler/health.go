package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"fundboard/internal/repository"
)

type HealthHandler struct {
	Repo repository.Repository
}

func (h *HealthHandler) Register(r *gin.Engine) {
	r.GET("/healthz", h.health)
	r.GET("/readyz", h.ready)
}

// @Summary Health check
// @Tags health
// @Success 200 {object} map[string]string
// @Router /healthz [get]
func (h *HealthHandler) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// @Summary Readiness check with per-database connection status
// @Tags health
// @Success 200 {object} map[string]string
// @Router /readyz [get]
func (h *HealthHandler) ready(c *gin.Context) {
	if h.Repo == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "repo_missing"})
		return
	}
	status := h.Repo.TestConnections(c.Request.Context())
	databases := make(map[string]string, len(status))
	healthy := true
	for name, err := range status {
		if err != nil {
			healthy = false
			databases[name] = err.Error()
			continue
		}
		databases[name] = "ok"
	}
	if !healthy {
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "db_unreachable", "databases": databases})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ready", "databases": databases})
}
