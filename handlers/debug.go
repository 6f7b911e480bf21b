package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"sahayata/models"
	"sahayata/services/notification"
	"sahayata/services/reminder"
	"sahayata/utils"
)

// DebugHandler exposes manual checks of the reminder and SMS plumbing.
type DebugHandler struct {
	Runners       []reminder.Runner
	Notifications notification.NotificationService
}

func NewDebugHandler(runners []reminder.Runner, notifications notification.NotificationService) *DebugHandler {
	return &DebugHandler{Runners: runners, Notifications: notifications}
}

// CheckRemindersHandler reports what the next cycle would send for ?kind=,
// or for every kind when none is given. Nothing is sent or marked.
func (h *DebugHandler) CheckRemindersHandler(c *gin.Context) {
	kind := models.ItemKind(c.Query("kind"))

	var results []reminder.CheckResult
	for _, r := range h.Runners {
		if kind != "" && r.Kind() != kind {
			continue
		}
		result, err := r.Check(c.Request.Context())
		if err != nil {
			getLogger(c).Error("Reminder check failed", zap.String("kind", string(r.Kind())), zap.Error(err))
			utils.JSONError(c, http.StatusInternalServerError, "Failed to check reminders", err.Error())
			return
		}
		results = append(results, result)
	}

	switch {
	case kind != "" && len(results) == 0:
		utils.JSONError(c, http.StatusBadRequest, "unknown kind", string(kind))
	case kind != "":
		c.JSON(http.StatusOK, results[0])
	default:
		c.JSON(http.StatusOK, gin.H{"results": results})
	}
}

type testSMSRequest struct {
	PhoneNumber string `json:"phoneNumber" binding:"required"`
	Message     string `json:"message"`
}

func (h *DebugHandler) TestSMSHandler(c *gin.Context) {
	var req testSMSRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "phoneNumber required", err.Error())
		return
	}
	text, err := h.Notifications.SendTestSMS(c.Request.Context(), req.PhoneNumber, req.Message)
	if err != nil {
		if errors.Is(err, notification.ErrSendFailed) {
			utils.JSONError(c, http.StatusBadGateway, "Failed to send test SMS", err.Error())
			return
		}
		utils.JSONError(c, http.StatusInternalServerError, "Failed to send test SMS", err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success":     true,
		"message":     "SMS sent successfully",
		"phoneNumber": req.PhoneNumber,
		"testMessage": text,
	})
}
