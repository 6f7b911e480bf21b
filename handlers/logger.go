package handlers

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"sahayata/middleware"
	"sahayata/utils"
)

// getLogger returns the request-scoped logger, tagged with the caller's user
// ID when the request is authenticated.
func getLogger(c *gin.Context) *zap.Logger {
	logger := utils.GetLogger()
	if l, exists := c.Get("logger"); exists {
		if scoped, ok := l.(*zap.Logger); ok {
			logger = scoped
		}
	}
	if userID := middleware.UserID(c); userID != "" {
		logger = logger.With(zap.String("user_id", userID))
	}
	return logger
}
