package handlers

import (
	"net/http"

	"shiffy/utils"

	"github.com/gin-gonic/gin"
)

// HealthHandler reports the last dependency check. Before the first check the
// service is reported as starting.
func HealthHandler(c *gin.Context) {
	status := utils.GetHealthStatus()
	if status.CheckedAt.IsZero() {
		c.JSON(http.StatusOK, gin.H{"status": "starting", "message": "Hi, I'm Shiffy"})
		return
	}
	if !status.Healthy() {
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "degraded", "checks": status})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok", "message": "Hi, I'm Shiffy", "checks": status})
}
