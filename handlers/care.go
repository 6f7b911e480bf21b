package handlers

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"sahayata/middleware"
	"sahayata/models"
	"sahayata/services/care"
	"sahayata/utils"
)

// CareService is implemented by *care.CareService.
type CareService interface {
	ListAppointments(ctx context.Context, userID string, limit int64) ([]models.Appointment, error)
	CreateAppointment(ctx context.Context, userID string, in models.AppointmentInput) (*models.Appointment, error)
	UpdateAppointment(ctx context.Context, userID, id string, in models.AppointmentInput) (*models.Appointment, error)
	DeleteAppointment(ctx context.Context, userID, id string) error

	ListRoutines(ctx context.Context, userID string) ([]models.RoutineTask, error)
	CreateRoutine(ctx context.Context, userID string, in models.RoutineInput) (*models.RoutineTask, error)
	UpdateRoutine(ctx context.Context, userID, id string, in models.RoutineInput) (*models.RoutineTask, error)
	DeleteRoutine(ctx context.Context, userID, id string) error
}

type CareHandler struct {
	Care CareService
}

func NewCareHandler(svc CareService) *CareHandler {
	return &CareHandler{Care: svc}
}

func (h *CareHandler) ListAppointmentsHandler(c *gin.Context) {
	items, err := h.Care.ListAppointments(c.Request.Context(), middleware.UserID(c), queryLimit(c))
	if err != nil {
		careError(c, "Failed to list appointments", err)
		return
	}
	c.JSON(http.StatusOK, items)
}

// CreateAppointmentHandler stores the appointment; the confirmation email and
// SMS go out before the response.
func (h *CareHandler) CreateAppointmentHandler(c *gin.Context) {
	var req models.AppointmentInput
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "title, date, time required", err.Error())
		return
	}
	appt, err := h.Care.CreateAppointment(c.Request.Context(), middleware.UserID(c), req)
	if err != nil {
		careError(c, "Failed to create appointment", err)
		return
	}
	c.JSON(http.StatusCreated, appt)
}

func (h *CareHandler) UpdateAppointmentHandler(c *gin.Context) {
	var req models.AppointmentInput
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "title, date, time required", err.Error())
		return
	}
	appt, err := h.Care.UpdateAppointment(c.Request.Context(), middleware.UserID(c), c.Param("id"), req)
	if err != nil {
		careError(c, "Failed to update appointment", err)
		return
	}
	c.JSON(http.StatusOK, appt)
}

func (h *CareHandler) DeleteAppointmentHandler(c *gin.Context) {
	if err := h.Care.DeleteAppointment(c.Request.Context(), middleware.UserID(c), c.Param("id")); err != nil {
		careError(c, "Failed to delete appointment", err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *CareHandler) ListRoutinesHandler(c *gin.Context) {
	items, err := h.Care.ListRoutines(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		careError(c, "Failed to list routines", err)
		return
	}
	c.JSON(http.StatusOK, items)
}

func (h *CareHandler) CreateRoutineHandler(c *gin.Context) {
	var req models.RoutineInput
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "title, date, time required", err.Error())
		return
	}
	task, err := h.Care.CreateRoutine(c.Request.Context(), middleware.UserID(c), req)
	if err != nil {
		careError(c, "Failed to create routine", err)
		return
	}
	c.JSON(http.StatusCreated, task)
}

func (h *CareHandler) UpdateRoutineHandler(c *gin.Context) {
	var req models.RoutineInput
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "title, date, time required", err.Error())
		return
	}
	task, err := h.Care.UpdateRoutine(c.Request.Context(), middleware.UserID(c), c.Param("id"), req)
	if err != nil {
		careError(c, "Failed to update routine", err)
		return
	}
	c.JSON(http.StatusOK, task)
}

func (h *CareHandler) DeleteRoutineHandler(c *gin.Context) {
	if err := h.Care.DeleteRoutine(c.Request.Context(), middleware.UserID(c), c.Param("id")); err != nil {
		careError(c, "Failed to delete routine", err)
		return
	}
	c.Status(http.StatusNoContent)
}

func careError(c *gin.Context, message string, err error) {
	if errors.Is(err, care.ErrNotFound) {
		utils.JSONError(c, http.StatusNotFound, "not found", "")
		return
	}
	getLogger(c).Error(message, zap.Error(err))
	utils.JSONError(c, http.StatusInternalServerError, message, "")
}

// queryLimit reads ?limit=; zero means no limit.
func queryLimit(c *gin.Context) int64 {
	limit, err := strconv.ParseInt(c.Query("limit"), 10, 64)
	if err != nil || limit < 0 {
		return 0
	}
	return limit
}
