package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"sahayata/middleware"
	"sahayata/models"
	"sahayata/services/user"
	"sahayata/utils"
)

type AuthHandler struct {
	UserService user.UserService
}

func NewAuthHandler(svc user.UserService) *AuthHandler {
	return &AuthHandler{UserService: svc}
}

// SignupHandler handles POST /api/auth/signup.
func (h *AuthHandler) SignupHandler(c *gin.Context) {
	logger := getLogger(c)

	var req models.SignupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "email and password required", err.Error())
		return
	}

	resp, err := h.UserService.Signup(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, user.ErrEmailTaken) {
			utils.JSONError(c, http.StatusConflict, "Email already in use", "")
			return
		}
		logger.Error("Signup failed", zap.Error(err))
		utils.JSONError(c, http.StatusInternalServerError, "Signup failed", "")
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// LoginHandler handles POST /api/auth/login.
func (h *AuthHandler) LoginHandler(c *gin.Context) {
	logger := getLogger(c)

	var req models.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "email and password required", err.Error())
		return
	}

	resp, err := h.UserService.Login(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, user.ErrInvalidCredentials) {
			utils.JSONError(c, http.StatusUnauthorized, "Invalid credentials", "")
			return
		}
		logger.Error("Login failed", zap.Error(err))
		utils.JSONError(c, http.StatusInternalServerError, "Login failed", "")
		return
	}
	c.JSON(http.StatusOK, resp)
}

// MeHandler handles GET /api/auth/me.
func (h *AuthHandler) MeHandler(c *gin.Context) {
	usr, err := h.UserService.GetUserByID(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			utils.JSONError(c, http.StatusNotFound, "User not found", "")
			return
		}
		getLogger(c).Error("Failed to load current user", zap.Error(err))
		utils.JSONError(c, http.StatusInternalServerError, "Failed to load user", "")
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": gin.H{
		"id":       usr.ID,
		"email":    usr.Email,
		"fullName": usr.FullName,
		"role":     usr.Role,
	}})
}
