package handler

import (
	"ledger-lab/observability"
	"net/http"

	"github.com/gin-gonic/gin"
)

func RegisterHealth(router gin.IRouter, monitoring *observability.MonitoringManager) {
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "stats": monitoring.Snapshot()})
	})
}
