package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"sahayata/middleware"
	"sahayata/services/notification"
	"sahayata/utils"
)

type NotificationHandler struct {
	Notifications notification.NotificationService
}

func NewNotificationHandler(svc notification.NotificationService) *NotificationHandler {
	return &NotificationHandler{Notifications: svc}
}

// ListNotificationsHandler returns the newest notifications first.
func (h *NotificationHandler) ListNotificationsHandler(c *gin.Context) {
	items, err := h.Notifications.List(c.Request.Context(), middleware.UserID(c), queryLimit(c))
	if err != nil {
		notificationError(c, "Failed to list notifications", err)
		return
	}
	c.JSON(http.StatusOK, items)
}

func (h *NotificationHandler) MarkReadHandler(c *gin.Context) {
	if err := h.Notifications.MarkRead(c.Request.Context(), middleware.UserID(c), c.Param("id")); err != nil {
		notificationError(c, "Failed to mark notification read", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

func (h *NotificationHandler) MarkAllReadHandler(c *gin.Context) {
	updated, err := h.Notifications.MarkAllRead(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		notificationError(c, "Failed to mark notifications read", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "updated": updated})
}

// SendTestHandler sends a test email and SMS to the caller's own contacts.
func (h *NotificationHandler) SendTestHandler(c *gin.Context) {
	attempts, err := h.Notifications.SendTest(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		notificationError(c, "failed to send test notification", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "attempts": attempts})
}

func notificationError(c *gin.Context, message string, err error) {
	switch {
	case errors.Is(err, notification.ErrNotFound):
		utils.JSONError(c, http.StatusNotFound, "not found", "")
	case errors.Is(err, notification.ErrProfileNotFound):
		utils.JSONError(c, http.StatusNotFound, "profile not found", "")
	case errors.Is(err, notification.ErrNoContact):
		utils.JSONError(c, http.StatusBadRequest, err.Error(), "")
	default:
		getLogger(c).Error(message, zap.Error(err))
		utils.JSONError(c, http.StatusInternalServerError, message, "")
	}
}
