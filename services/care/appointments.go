package care

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.uber.org/zap"

	"sahayata/models"
)

func (s *CareService) ListAppointments(ctx context.Context, userID string, limit int64) ([]models.Appointment, error) {
	return s.Appointments.ListByUser(ctx, userID, limit)
}

// CreateAppointment stores the appointment and then sends the confirmation
// email/SMS. Confirmation problems never fail the request.
func (s *CareService) CreateAppointment(ctx context.Context, userID string, in models.AppointmentInput) (*models.Appointment, error) {
	appt := models.Appointment{
		Schedule:    s.newSchedule(userID, in.Title, in.Description, in.Date, in.Time),
		Location:    strings.TrimSpace(in.Location),
		PhoneNumber: strings.TrimSpace(in.PhoneNumber),
	}
	appt.ID = uuid.New().String()

	if err := s.Appointments.Create(ctx, appt); err != nil {
		return nil, err
	}
	s.logger.Info("appointment created", zap.String("id", appt.ID), zap.String("user_id", userID))

	if s.Confirmer != nil {
		s.Confirmer.ConfirmAppointment(ctx, appt)
	}
	return &appt, nil
}

func (s *CareService) UpdateAppointment(ctx context.Context, userID, id string, in models.AppointmentInput) (*models.Appointment, error) {
	fields := bson.M{
		"title":       strings.TrimSpace(in.Title),
		"description": in.Description,
		"date":        in.Date,
		"time":        in.Time,
		"location":    strings.TrimSpace(in.Location),
		"phoneNumber": strings.TrimSpace(in.PhoneNumber),
	}
	return update(ctx, s.Appointments, userID, id, fields)
}

// DeleteAppointment succeeds whether or not the appointment existed.
func (s *CareService) DeleteAppointment(ctx context.Context, userID, id string) error {
	return remove(ctx, s.Appointments, userID, id)
}
