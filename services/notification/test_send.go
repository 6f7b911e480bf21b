package notification

import (
	"context"
	"strings"
)

// SendTest sends a test email and SMS to the contacts on the caller's
// profile. A channel that is not configured is skipped.
func (s *DefaultNotificationService) SendTest(ctx context.Context, userID string) (*TestAttempts, error) {
	profile, err := s.Profiles.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if profile == nil {
		return nil, ErrProfileNotFound
	}

	attempts := &TestAttempts{}
	if profile.Email != "" && s.Channels.EmailEnabled() {
		attempts.Email = profile.Email
		attempts.EmailSent = s.Channels.SendEmail(ctx, profile.Email, testSubject, testBody)
	}
	if profile.PhoneNumber != "" && s.Channels.SMSEnabled() {
		attempts.PhoneNumber = profile.PhoneNumber
		attempts.SMSSent = s.Channels.SendSMS(ctx, profile.PhoneNumber, testBody)
	}
	if attempts.Email == "" && attempts.PhoneNumber == "" {
		return nil, ErrNoContact
	}
	return attempts, nil
}

// SendTestSMS sends message, or a default text, to an arbitrary number and
// returns the text that was sent.
func (s *DefaultNotificationService) SendTestSMS(ctx context.Context, phoneNumber, message string) (string, error) {
	if strings.TrimSpace(message) == "" {
		message = DefaultTestSMS
	}
	if !s.Channels.SendSMS(ctx, phoneNumber, message) {
		return message, ErrSendFailed
	}
	return message, nil
}
