package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"sahayata/utils"
)

// HealthHandler reports liveness plus the last Mongo/Redis health snapshot.
func HealthHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"ok": true, "services": utils.GetHealthStatus()})
}
