package community

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"sahayata/models"
	"sahayata/services/realtime"
)

const chatNotificationTitle = "New group message"

// ListMessages returns the group's messages oldest first, each joined with
// its author's profile.
func (s *CommunityService) ListMessages(ctx context.Context, groupID string) ([]models.GroupMessageView, error) {
	messages, err := s.Chats.ListByGroup(ctx, groupID)
	if err != nil {
		return nil, err
	}

	seen := make(map[string]bool)
	var authors []string
	for _, m := range messages {
		if !seen[m.UserID] {
			seen[m.UserID] = true
			authors = append(authors, m.UserID)
		}
	}
	profiles := make(map[string]*models.Profile, len(authors))
	if len(authors) > 0 {
		found, err := s.Profiles.ListByUserIDs(ctx, authors)
		if err != nil {
			return nil, err
		}
		for i := range found {
			profiles[found[i].UserID] = &found[i]
		}
	}

	views := make([]models.GroupMessageView, 0, len(messages))
	for _, m := range messages {
		views = append(views, models.GroupMessageView{GroupMessage: m, UserProfile: profiles[m.UserID]})
	}
	return views, nil
}

// PostMessage stores the message, broadcasts it to the group room and
// notifies every other member. Notification failures do not fail the post.
func (s *CommunityService) PostMessage(ctx context.Context, userID, groupID, text string) (*models.GroupMessageView, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, ErrEmptyMessage
	}

	message := models.GroupMessage{
		ID:        uuid.New().String(),
		GroupID:   groupID,
		UserID:    userID,
		Message:   text,
		CreatedAt: time.Now(),
	}
	if err := s.Chats.Create(ctx, message); err != nil {
		return nil, err
	}

	author, err := s.Profiles.GetByUserID(ctx, userID)
	if err != nil {
		s.logger.Warn("failed to load message author", zap.String("userId", userID), zap.Error(err))
		author = nil
	}
	view := &models.GroupMessageView{GroupMessage: message, UserProfile: author}

	s.emit(ctx, realtime.GroupTopic(groupID), realtime.EventGroupMessage, view)
	s.notifyMembers(ctx, message)
	return view, nil
}

func (s *CommunityService) notifyMembers(ctx context.Context, message models.GroupMessage) {
	group, err := s.Groups.GetByID(ctx, message.GroupID)
	if err != nil {
		s.logger.Warn("failed to load group for chat notifications", zap.String("groupId", message.GroupID), zap.Error(err))
		return
	}
	if group == nil {
		return
	}

	var pending []models.Notification
	for _, member := range group.Members {
		if member == message.UserID {
			continue
		}
		pending = append(pending, models.Notification{
			ID:      uuid.New().String(),
			UserID:  member,
			Type:    models.NotificationChat,
			Title:   chatNotificationTitle,
			Message: message.Message,
			Data: map[string]any{
				"groupId":   message.GroupID,
				"messageId": message.ID,
			},
			CreatedAt: message.CreatedAt,
		})
	}
	if len(pending) == 0 {
		return
	}

	stored, err := s.Notifications.InsertMany(ctx, pending)
	if err != nil {
		s.logger.Error("failed to store chat notifications", zap.String("groupId", message.GroupID), zap.Error(err))
		return
	}
	for _, n := range stored {
		s.emit(ctx, realtime.NotificationTopic(n.UserID), realtime.EventNotification, n)
	}
}
