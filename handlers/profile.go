package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"sahayata/middleware"
	"sahayata/models"
	"sahayata/services/profile"
	"sahayata/utils"
)

type ProfileHandler struct {
	ProfileService profile.ProfileService
}

func NewProfileHandler(svc profile.ProfileService) *ProfileHandler {
	return &ProfileHandler{ProfileService: svc}
}

// GetProfileHandler returns the caller's profile, creating it on first access.
func (h *ProfileHandler) GetProfileHandler(c *gin.Context) {
	p, err := h.ProfileService.GetOrCreate(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		h.fail(c, "Failed to retrieve profile", err)
		return
	}
	c.JSON(http.StatusOK, p)
}

func (h *ProfileHandler) UpdateProfileHandler(c *gin.Context) {
	var req models.ProfileUpdate
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid request", err.Error())
		return
	}
	p, err := h.ProfileService.Update(c.Request.Context(), middleware.UserID(c), req)
	if err != nil {
		h.fail(c, "Failed to update profile", err)
		return
	}
	c.JSON(http.StatusOK, p)
}

// UpdateDeviceTokenHandler registers the caller's FCM token for push reminders.
func (h *ProfileHandler) UpdateDeviceTokenHandler(c *gin.Context) {
	var req models.DeviceTokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "token required", err.Error())
		return
	}
	if err := h.ProfileService.SetDeviceToken(c.Request.Context(), middleware.UserID(c), req.Token); err != nil {
		h.fail(c, "Failed to save device token", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

func (h *ProfileHandler) fail(c *gin.Context, message string, err error) {
	if errors.Is(err, profile.ErrUserNotFound) {
		utils.JSONError(c, http.StatusNotFound, "User not found", "")
		return
	}
	getLogger(c).Error(message, zap.Error(err))
	utils.JSONError(c, http.StatusInternalServerError, message, "")
}
