// Package community implements support groups and their chat rooms.
package community

import (
	"context"
	"errors"

	"go.uber.org/zap"

	chatRepo "sahayata/database/repository/chat"
	groupRepo "sahayata/database/repository/group"
	"sahayata/models"
	"sahayata/services/realtime"
)

var (
	ErrGroupNotFound      = errors.New("group not found")
	ErrProfileIncomplete  = errors.New("profile is incomplete")
	ErrEmptyMessage       = errors.New("message required")
	ErrInvalidGroupFields = errors.New("name, description, schedule required")
)

// Profiles is the part of the profile repository the community features read.
type Profiles interface {
	GetByUserID(ctx context.Context, userID string) (*models.Profile, error)
	ListByUserIDs(ctx context.Context, userIDs []string) ([]models.Profile, error)
}

// Notifications persists chat notifications for group members.
type Notifications interface {
	InsertMany(ctx context.Context, notifications []models.Notification) ([]models.Notification, error)
}

type CommunityService struct {
	Groups        groupRepo.GroupRepository
	Chats         chatRepo.ChatRepository
	Profiles      Profiles
	Notifications Notifications
	Emitter       realtime.Emitter
	logger        *zap.Logger
}

func NewCommunityService(
	groups groupRepo.GroupRepository,
	chats chatRepo.ChatRepository,
	profiles Profiles,
	notifications Notifications,
	emitter realtime.Emitter,
	logger *zap.Logger,
) *CommunityService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CommunityService{
		Groups:        groups,
		Chats:         chats,
		Profiles:      profiles,
		Notifications: notifications,
		Emitter:       emitter,
		logger:        logger,
	}
}

// requireCompleteProfile gates group creation and membership changes.
func (s *CommunityService) requireCompleteProfile(ctx context.Context, userID string) error {
	profile, err := s.Profiles.GetByUserID(ctx, userID)
	if err != nil {
		return err
	}
	if profile == nil || !profile.IsProfileComplete {
		return ErrProfileIncomplete
	}
	return nil
}

func (s *CommunityService) emit(ctx context.Context, topic, event string, payload any) {
	if s.Emitter == nil {
		return
	}
	if err := s.Emitter.Emit(ctx, topic, event, payload); err != nil {
		s.logger.Warn("failed to emit event", zap.String("topic", topic), zap.String("event", event), zap.Error(err))
	}
}
