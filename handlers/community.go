package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"sahayata/middleware"
	"sahayata/models"
	"sahayata/services/community"
	"sahayata/utils"
)

// CommunityService is implemented by *community.CommunityService.
type CommunityService interface {
	ListGroups(ctx context.Context, userID string) ([]models.GroupSummary, error)
	CreateGroup(ctx context.Context, userID string, in models.GroupInput) (*models.SupportGroup, error)
	ToggleMembership(ctx context.Context, userID, groupID string) ([]string, error)
	ListMessages(ctx context.Context, groupID string) ([]models.GroupMessageView, error)
	PostMessage(ctx context.Context, userID, groupID, text string) (*models.GroupMessageView, error)
}

type CommunityHandler struct {
	Community CommunityService
}

func NewCommunityHandler(svc CommunityService) *CommunityHandler {
	return &CommunityHandler{Community: svc}
}

func (h *CommunityHandler) ListGroupsHandler(c *gin.Context) {
	groups, err := h.Community.ListGroups(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		communityError(c, "Failed to list groups", err)
		return
	}
	c.JSON(http.StatusOK, groups)
}

func (h *CommunityHandler) CreateGroupHandler(c *gin.Context) {
	var req models.GroupInput
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, community.ErrInvalidGroupFields.Error(), err.Error())
		return
	}
	group, err := h.Community.CreateGroup(c.Request.Context(), middleware.UserID(c), req)
	if err != nil {
		communityError(c, "Failed to create group", err)
		return
	}
	c.JSON(http.StatusCreated, group)
}

func (h *CommunityHandler) ToggleMembershipHandler(c *gin.Context) {
	members, err := h.Community.ToggleMembership(c.Request.Context(), middleware.UserID(c), c.Param("groupId"))
	if err != nil {
		communityError(c, "Failed to update membership", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "members": members})
}

func (h *CommunityHandler) ListMessagesHandler(c *gin.Context) {
	messages, err := h.Community.ListMessages(c.Request.Context(), c.Param("groupId"))
	if err != nil {
		communityError(c, "Failed to list messages", err)
		return
	}
	c.JSON(http.StatusOK, messages)
}

type postMessageRequest struct {
	Message string `json:"message"`
}

func (h *CommunityHandler) PostMessageHandler(c *gin.Context) {
	var req postMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, community.ErrEmptyMessage.Error(), err.Error())
		return
	}
	view, err := h.Community.PostMessage(c.Request.Context(), middleware.UserID(c), c.Param("groupId"), req.Message)
	if err != nil {
		communityError(c, "Failed to post message", err)
		return
	}
	c.JSON(http.StatusCreated, view)
}

func communityError(c *gin.Context, message string, err error) {
	switch {
	case errors.Is(err, community.ErrProfileIncomplete):
		utils.JSONError(c, http.StatusForbidden, "Complete your profile before joining or creating groups", "")
	case errors.Is(err, community.ErrGroupNotFound):
		utils.JSONError(c, http.StatusNotFound, "group not found", "")
	case errors.Is(err, community.ErrEmptyMessage), errors.Is(err, community.ErrInvalidGroupFields):
		utils.JSONError(c, http.StatusBadRequest, err.Error(), "")
	default:
		getLogger(c).Error(message, zap.Error(err))
		utils.JSONError(c, http.StatusInternalServerError, message, "")
	}
}
