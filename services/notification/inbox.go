package notification

import (
	"context"

	"sahayata/models"
)

// List returns the newest notifications first. Out of range limits fall back
// to the default.
func (s *DefaultNotificationService) List(ctx context.Context, userID string, limit int64) ([]models.Notification, error) {
	if limit <= 0 || limit > MaxListLimit {
		limit = DefaultListLimit
	}
	return s.Repo.ListByUser(ctx, userID, limit)
}

func (s *DefaultNotificationService) MarkRead(ctx context.Context, userID, id string) error {
	ok, err := s.Repo.MarkRead(ctx, userID, id)
	if err != nil {
		return err
	}
	if !ok {
		return ErrNotFound
	}
	return nil
}

func (s *DefaultNotificationService) MarkAllRead(ctx context.Context, userID string) (int64, error) {
	return s.Repo.MarkAllRead(ctx, userID)
}
