package reminder

import (
	"context"

	"sahayata/models"
)

// Scheduled is satisfied by models.Appointment and models.RoutineTask.
type Scheduled interface {
	Base() models.Schedule
}

// ScheduledStore is the storage contract for one kind of scheduled item.
type ScheduledStore[T Scheduled] interface {
	// FindReminderCandidates returns items whose date is in dates and whose
	// reminder has not been fully sent.
	FindReminderCandidates(ctx context.Context, dates []string) ([]T, error)
	// SetReminderState moves the given items into state. Items not currently
	// in the state's predecessor are left untouched.
	SetReminderState(ctx context.Context, ids []string, state models.ReminderState) error
}

type NotificationStore interface {
	// InsertMany stores the notifications and returns them in input order.
	InsertMany(ctx context.Context, notifications []models.Notification) ([]models.Notification, error)
}

type ProfileFinder interface {
	// GetByUserID returns nil, nil when the user has no profile.
	GetByUserID(ctx context.Context, userID string) (*models.Profile, error)
}
