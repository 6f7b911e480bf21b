package reminder

import (
	"testing"

	"sahayata/models"
)

func TestAppointmentMessages(t *testing.T) {
	tests := []struct {
		name     string
		location string
		inApp    string
		external string
	}{
		{
			name:     "with location",
			location: "City Clinic",
			inApp:    "Dentist at 14:00 (City Clinic)",
			external: "Sahayata Reminder: Dentist at 14:00 (City Clinic) - Don't forget your appointment!",
		},
		{
			name:     "without location",
			inApp:    "Dentist at 14:00",
			external: "Sahayata Reminder: Dentist at 14:00 - Don't forget your appointment!",
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			appt := appointment("ap1", "u1", "2025-03-10", "14:00")
			appt.Title = "Dentist"
			appt.Location = test.location

			n := AppointmentKind().InApp(appt)
			if n.Message != test.inApp {
				t.Errorf("expected in-app %q, got %q", test.inApp, n.Message)
			}
			subject, body := AppointmentKind().External(appt)
			if subject != AppointmentSubject || body != test.external {
				t.Errorf("unexpected external message %q / %q", subject, body)
			}
		})
	}
}

func TestRoutineMessages(t *testing.T) {
	tests := []struct {
		name        string
		category    models.RoutineCategory
		description string
		want        string
	}{
		{name: "with description", category: models.CategoryMedication, description: "after breakfast", want: "Metformin (medication) at 08:00 - after breakfast"},
		{name: "without description", category: models.CategoryExercise, want: "Metformin (exercise) at 08:00"},
		{name: "missing category", want: "Metformin (other) at 08:00"},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			r := routine("r1", "u1", "2025-03-10", "08:00")
			r.Title = "Metformin"
			r.Category = test.category
			r.Description = test.description

			n := RoutineKind().InApp(r)
			if n.Title != RoutineTitle || n.Message != test.want || n.Type != models.NotificationRoutine {
				t.Errorf("unexpected in-app notification %+v", n)
			}
			if n.Data["routineId"] != "r1" {
				t.Errorf("expected routineId in data, got %v", n.Data)
			}
			subject, body := RoutineKind().External(r)
			if subject != RoutineSubject || body != test.want {
				t.Errorf("unexpected external message %q / %q", subject, body)
			}
		})
	}
}
