// Package notification serves the in-app notification inbox and the manual
// delivery checks for external channels.
package notification

import (
	"context"
	"errors"

	notificationRepo "sahayata/database/repository/notification"
	"sahayata/models"
	"sahayata/services/channels"
)

var (
	ErrNotFound        = errors.New("notification not found")
	ErrProfileNotFound = errors.New("profile not found")
	ErrNoContact       = errors.New("no email or phoneNumber on profile to send test")
	ErrSendFailed      = errors.New("provider did not accept the message")
)

const (
	DefaultListLimit = 50
	MaxListLimit     = 200

	testSubject    = "Sahayata Test Notification"
	testBody       = "This is a test notification from Sahayata."
	DefaultTestSMS = "Test SMS from Sahayata - SMS functionality is working!"
)

type ProfileFinder interface {
	GetByUserID(ctx context.Context, userID string) (*models.Profile, error)
}

type NotificationService interface {
	List(ctx context.Context, userID string, limit int64) ([]models.Notification, error)
	MarkRead(ctx context.Context, userID, id string) error
	MarkAllRead(ctx context.Context, userID string) (int64, error)
	SendTest(ctx context.Context, userID string) (*TestAttempts, error)
	SendTestSMS(ctx context.Context, phoneNumber, message string) (string, error)
}

// TestAttempts reports which contacts a test notification was sent to.
type TestAttempts struct {
	Email       string `json:"email,omitempty"`
	PhoneNumber string `json:"phoneNumber,omitempty"`
	EmailSent   bool   `json:"emailSent"`
	SMSSent     bool   `json:"smsSent"`
}

type DefaultNotificationService struct {
	Repo     notificationRepo.NotificationRepository
	Profiles ProfileFinder
	Channels *channels.NotificationChannels
}

func NewDefaultNotificationService(repo notificationRepo.NotificationRepository, profiles ProfileFinder, ch *channels.NotificationChannels) *DefaultNotificationService {
	return &DefaultNotificationService{Repo: repo, Profiles: profiles, Channels: ch}
}
