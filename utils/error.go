package utils

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ErrorResponse defines the structure of error responses
type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

// ErrorHandler is a middleware to catch panics and return structured errors
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if err := recover(); err != nil {
				GetLogger().Error("Unhandled panic",
					zap.Any("error", err),
					zap.String("path", c.Request.URL.Path))

				c.AbortWithStatusJSON(http.StatusInternalServerError, ErrorResponse{
					Error:   "Internal Server Error",
					Details: "An unexpected error occurred. Please try again later.",
				})
			}
		}()
		c.Next()
	}
}

// JSONError sends a standardized JSON error response. Server errors are
// logged at error level, client errors at debug.
func JSONError(c *gin.Context, status int, message string, details string) {
	logger := GetLogger().With(zap.Int("status", status), zap.String("path", c.Request.URL.Path))
	if status >= http.StatusInternalServerError {
		logger.Error(message, zap.String("details", details))
	} else {
		logger.Debug(message, zap.String("details", details))
	}
	c.AbortWithStatusJSON(status, ErrorResponse{Error: message, Details: details})
}
