// Package care manages the appointments and routine tasks that the reminder
// engine watches.
package care

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.uber.org/zap"

	scheduledRepo "sahayata/database/repository/scheduled"
	"sahayata/models"
)

var ErrNotFound = errors.New("not found")

// AppointmentConfirmer sends the creation-time confirmation. It must not fail.
type AppointmentConfirmer interface {
	ConfirmAppointment(ctx context.Context, appt models.Appointment)
}

type CareService struct {
	Appointments scheduledRepo.ScheduledRepository[models.Appointment]
	Routines     scheduledRepo.ScheduledRepository[models.RoutineTask]
	Confirmer    AppointmentConfirmer

	now    func() time.Time
	logger *zap.Logger
}

func NewCareService(
	appointments scheduledRepo.ScheduledRepository[models.Appointment],
	routines scheduledRepo.ScheduledRepository[models.RoutineTask],
	confirmer AppointmentConfirmer,
	logger *zap.Logger,
) *CareService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CareService{
		Appointments: appointments,
		Routines:     routines,
		Confirmer:    confirmer,
		now:          time.Now,
		logger:       logger,
	}
}

func (s *CareService) newSchedule(userID, title, description, date, clock string) models.Schedule {
	now := s.now()
	return models.Schedule{
		UserID:        userID,
		Title:         strings.TrimSpace(title),
		Description:   description,
		Date:          date,
		Time:          clock,
		ReminderState: models.ReminderPending,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
}

// update applies fields to the user's item. Moving the item to a different
// date or time makes it eligible for a fresh reminder.
func update[T scheduledRepo.Item](ctx context.Context, repo scheduledRepo.ScheduledRepository[T], userID, id string, fields bson.M) (*T, error) {
	existing, err := repo.GetByID(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, ErrNotFound
	}

	base := (*existing).Base()
	if base.Date != fields["date"] || base.Time != fields["time"] {
		for k, v := range models.ReminderStateUpdate(models.ReminderPending) {
			fields[k] = v
		}
	}

	updated, err := repo.Update(ctx, userID, id, fields)
	if err != nil {
		return nil, err
	}
	if updated == nil {
		return nil, ErrNotFound
	}
	return updated, nil
}

func remove[T scheduledRepo.Item](ctx context.Context, repo scheduledRepo.ScheduledRepository[T], userID, id string) error {
	if _, err := repo.Delete(ctx, userID, id); err != nil {
		return fmt.Errorf("failed to delete: %w", err)
	}
	return nil
}
