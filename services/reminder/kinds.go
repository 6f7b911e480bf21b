package reminder

import (
	"fmt"

	"sahayata/models"
)

// Kind describes how one kind of scheduled item is rendered into
// notifications. It is the only part of the pipeline that differs between
// appointments and routines.
type Kind[T Scheduled] interface {
	Name() models.ItemKind
	// InApp fills the type, title, message and data of the in-app notification.
	InApp(item T) models.Notification
	// External returns the subject and body for email/SMS/push.
	External(item T) (subject, body string)
	// PhoneOverride returns an item-specific phone number, or "".
	PhoneOverride(item T) string
}

const (
	AppointmentTitle   = "Upcoming appointment"
	AppointmentSubject = "Upcoming Appointment Reminder"
	RoutineTitle       = "Routine Reminder"
	RoutineSubject     = "Routine Reminder"
)

type appointmentKind struct{}

// AppointmentKind renders appointment reminders.
func AppointmentKind() Kind[models.Appointment] { return appointmentKind{} }

func (appointmentKind) Name() models.ItemKind { return models.KindAppointment }

func (appointmentKind) InApp(a models.Appointment) models.Notification {
	return models.Notification{
		UserID:  a.UserID,
		Type:    models.NotificationAppointment,
		Title:   AppointmentTitle,
		Message: AppointmentMessage(a),
		Data:    map[string]any{"appointmentId": a.ID},
	}
}

func (appointmentKind) External(a models.Appointment) (string, string) {
	body := fmt.Sprintf("Sahayata Reminder: %s - Don't forget your appointment!", AppointmentMessage(a))
	return AppointmentSubject, body
}

func (appointmentKind) PhoneOverride(a models.Appointment) string { return a.PhoneNumber }

// AppointmentMessage is "{title} at {time}" plus " ({location})" when set.
func AppointmentMessage(a models.Appointment) string {
	msg := fmt.Sprintf("%s at %s", a.Title, a.Time)
	if a.Location != "" {
		msg += fmt.Sprintf(" (%s)", a.Location)
	}
	return msg
}

type routineKind struct{}

// RoutineKind renders routine task reminders.
func RoutineKind() Kind[models.RoutineTask] { return routineKind{} }

func (routineKind) Name() models.ItemKind { return models.KindRoutine }

func (routineKind) InApp(r models.RoutineTask) models.Notification {
	return models.Notification{
		UserID:  r.UserID,
		Type:    models.NotificationRoutine,
		Title:   RoutineTitle,
		Message: RoutineMessage(r),
		Data:    map[string]any{"routineId": r.ID},
	}
}

func (routineKind) External(r models.RoutineTask) (string, string) {
	return RoutineSubject, RoutineMessage(r)
}

// Routines have no per-item phone number; the profile's is always used.
func (routineKind) PhoneOverride(models.RoutineTask) string { return "" }

// RoutineMessage is "{title} ({category}) at {time}" plus " - {description}".
func RoutineMessage(r models.RoutineTask) string {
	category := r.Category
	if category == "" {
		category = models.CategoryOther
	}
	msg := fmt.Sprintf("%s (%s) at %s", r.Title, category, r.Time)
	if r.Description != "" {
		msg += " - " + r.Description
	}
	return msg
}
