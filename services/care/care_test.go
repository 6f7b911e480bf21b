package care

import (
	"context"
	"errors"
	"testing"

	"go.mongodb.org/mongo-driver/bson"

	scheduledRepo "sahayata/database/repository/scheduled"
	"sahayata/models"
)

type memRepo[T scheduledRepo.Item] struct {
	items map[string]T
	apply func(T, bson.M) T
}

func (m *memRepo[T]) Create(_ context.Context, item T) error {
	m.items[item.Base().ID] = item
	return nil
}

func (m *memRepo[T]) GetByID(_ context.Context, userID, id string) (*T, error) {
	item, ok := m.items[id]
	if !ok || item.Base().UserID != userID {
		return nil, nil
	}
	return &item, nil
}

func (m *memRepo[T]) ListByUser(_ context.Context, userID string, _ int64) ([]T, error) {
	var out []T
	for _, item := range m.items {
		if item.Base().UserID == userID {
			out = append(out, item)
		}
	}
	return out, nil
}

func (m *memRepo[T]) Update(_ context.Context, userID, id string, set bson.M) (*T, error) {
	item, ok := m.items[id]
	if !ok || item.Base().UserID != userID {
		return nil, nil
	}
	item = m.apply(item, set)
	m.items[id] = item
	return &item, nil
}

func (m *memRepo[T]) Delete(_ context.Context, userID, id string) (bool, error) {
	item, ok := m.items[id]
	if !ok || item.Base().UserID != userID {
		return false, nil
	}
	delete(m.items, id)
	return true, nil
}

func (m *memRepo[T]) FindReminderCandidates(context.Context, []string) ([]T, error) { return nil, nil }

func (m *memRepo[T]) SetReminderState(context.Context, []string, models.ReminderState) error {
	return nil
}

func applySchedule(s *models.Schedule, set bson.M) {
	for k, v := range set {
		switch k {
		case "title":
			s.Title = v.(string)
		case "description":
			s.Description = v.(string)
		case "date":
			s.Date = v.(string)
		case "time":
			s.Time = v.(string)
		case "reminderState":
			s.ReminderState = v.(models.ReminderState)
		case "reminderSent":
			s.ReminderSent = v.(bool)
		case "externalReminderSent":
			s.ExternalReminderSent = v.(bool)
		}
	}
}

func newAppointmentRepo() *memRepo[models.Appointment] {
	return &memRepo[models.Appointment]{
		items: map[string]models.Appointment{},
		apply: func(a models.Appointment, set bson.M) models.Appointment {
			applySchedule(&a.Schedule, set)
			if v, ok := set["location"].(string); ok {
				a.Location = v
			}
			return a
		},
	}
}

func newRoutineRepo() *memRepo[models.RoutineTask] {
	return &memRepo[models.RoutineTask]{
		items: map[string]models.RoutineTask{},
		apply: func(r models.RoutineTask, set bson.M) models.RoutineTask {
			applySchedule(&r.Schedule, set)
			if v, ok := set["category"].(models.RoutineCategory); ok {
				r.Category = v
			}
			return r
		},
	}
}

type recordingConfirmer struct {
	confirmed []models.Appointment
}

func (r *recordingConfirmer) ConfirmAppointment(_ context.Context, appt models.Appointment) {
	r.confirmed = append(r.confirmed, appt)
}

func TestCreateAppointment_SendsConfirmation(t *testing.T) {
	confirmer := &recordingConfirmer{}
	svc := NewCareService(newAppointmentRepo(), newRoutineRepo(), confirmer, nil)

	appt, err := svc.CreateAppointment(context.Background(), "u1", models.AppointmentInput{
		Title: " Cardiology ", Date: "2025-03-10", Time: "10:30", Location: "City Clinic",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if appt.ID == "" || appt.Title != "Cardiology" || appt.ReminderState != models.ReminderPending {
		t.Errorf("unexpected appointment %+v", appt)
	}
	if appt.ReminderSent || appt.ExternalReminderSent {
		t.Errorf("new appointment must start with both flags false")
	}
	if len(confirmer.confirmed) != 1 || confirmer.confirmed[0].ID != appt.ID {
		t.Errorf("expected one confirmation for the new appointment, got %+v", confirmer.confirmed)
	}
}

func TestUpdateAppointment_RescheduleResetsReminder(t *testing.T) {
	tests := []struct {
		name      string
		date      string
		time      string
		wantState models.ReminderState
		wantFlags bool
	}{
		{name: "time changed", date: "2025-03-10", time: "15:00", wantState: models.ReminderPending},
		{name: "date changed", date: "2025-03-11", time: "10:30", wantState: models.ReminderPending},
		{name: "title only", date: "2025-03-10", time: "10:30", wantState: models.ReminderFullySent, wantFlags: true},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			repo := newAppointmentRepo()
			existing := models.Appointment{Schedule: models.Schedule{
				ID: "ap1", UserID: "u1", Title: "Old", Date: "2025-03-10", Time: "10:30",
			}}
			existing.SetReminderState(models.ReminderInAppSent)
			existing.SetReminderState(models.ReminderFullySent)
			repo.items["ap1"] = existing
			svc := NewCareService(repo, newRoutineRepo(), nil, nil)

			updated, err := svc.UpdateAppointment(context.Background(), "u1", "ap1", models.AppointmentInput{
				Title: "New", Date: test.date, Time: test.time,
			})
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if updated.Title != "New" {
				t.Errorf("expected title to change, got %q", updated.Title)
			}
			if updated.ReminderState != test.wantState {
				t.Errorf("expected state %s, got %s", test.wantState, updated.ReminderState)
			}
			if updated.ReminderSent != test.wantFlags || updated.ExternalReminderSent != test.wantFlags {
				t.Errorf("unexpected flags %v/%v", updated.ReminderSent, updated.ExternalReminderSent)
			}
		})
	}
}

func TestUpdate_ScopedToOwner(t *testing.T) {
	repo := newRoutineRepo()
	repo.items["r1"] = models.RoutineTask{Schedule: models.Schedule{ID: "r1", UserID: "owner", Date: "2025-03-10", Time: "08:00"}}
	svc := NewCareService(newAppointmentRepo(), repo, nil, nil)

	_, err := svc.UpdateRoutine(context.Background(), "intruder", "r1", models.RoutineInput{Title: "x", Date: "2025-03-10", Time: "08:00"})
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
	if err := svc.DeleteRoutine(context.Background(), "intruder", "r1"); err != nil {
		t.Errorf("unexpected delete error: %v", err)
	}
	if _, ok := repo.items["r1"]; !ok {
		t.Errorf("routine of another user must not be deleted")
	}
}

func TestCreateRoutine_DefaultCategory(t *testing.T) {
	svc := NewCareService(newAppointmentRepo(), newRoutineRepo(), nil, nil)

	task, err := svc.CreateRoutine(context.Background(), "u1", models.RoutineInput{Title: "Walk", Date: "2025-03-10", Time: "07:00"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if task.Category != models.CategoryOther || task.ReminderState != models.ReminderPending {
		t.Errorf("unexpected routine %+v", task)
	}
}
