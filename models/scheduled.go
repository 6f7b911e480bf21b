package models

import (
	"fmt"
	"time"
)

// Stored dates and times are wall-clock strings in these exact layouts.
const (
	DateLayout = "2006-01-02"
	TimeLayout = "15:04"
)

// ParseLayout parses value in loc and requires it to match layout exactly,
// so "9:30" is not accepted as "15:04".
func ParseLayout(layout, value string, loc *time.Location) (time.Time, error) {
	if len(value) != len(layout) {
		return time.Time{}, fmt.Errorf("%q does not match layout %q", value, layout)
	}
	return time.ParseInLocation(layout, value, loc)
}

// ItemKind identifies the two kinds of scheduled items that receive reminders.
type ItemKind string

const (
	KindAppointment ItemKind = "appointment"
	KindRoutine     ItemKind = "routine"
)

// ReminderState is the delivery state of the due-soon reminder for one item.
// It only ever moves forward: pending -> in_app_sent -> fully_sent.
type ReminderState string

const (
	ReminderPending   ReminderState = "pending"
	ReminderInAppSent ReminderState = "in_app_sent"
	ReminderFullySent ReminderState = "fully_sent"
)

// Predecessor returns the only state allowed to transition into s.
func (s ReminderState) Predecessor() (ReminderState, bool) {
	switch s {
	case ReminderInAppSent:
		return ReminderPending, true
	case ReminderFullySent:
		return ReminderInAppSent, true
	default:
		return "", false
	}
}

// InAppSent reports whether the in-app notification has been created.
func (s ReminderState) InAppSent() bool {
	return s == ReminderInAppSent || s == ReminderFullySent
}

// ExternalSent reports whether email/SMS delivery has been attempted.
func (s ReminderState) ExternalSent() bool {
	return s == ReminderFullySent
}

// Schedule holds the fields shared by appointments and routine tasks.
// ReminderSent and ExternalReminderSent are persisted next to ReminderState
// and always written together with it.
type Schedule struct {
	ID                   string        `bson:"id" json:"id"`
	UserID               string        `bson:"userId" json:"userId"`
	Title                string        `bson:"title" json:"title"`
	Description          string        `bson:"description,omitempty" json:"description,omitempty"`
	Date                 string        `bson:"date" json:"date"`
	Time                 string        `bson:"time" json:"time"`
	ReminderState        ReminderState `bson:"reminderState" json:"reminderState"`
	ReminderSent         bool          `bson:"reminderSent" json:"reminderSent"`
	ExternalReminderSent bool          `bson:"externalReminderSent" json:"externalReminderSent"`
	CreatedAt            time.Time     `bson:"createdAt" json:"createdAt"`
	UpdatedAt            time.Time     `bson:"updatedAt" json:"updatedAt"`
}

// Base gives generic code read access to the shared fields of an
// Appointment or RoutineTask.
func (s Schedule) Base() Schedule {
	return s
}

// EffectiveReminderState is ReminderState, or for documents written before
// that field existed, the state implied by the two flags.
func (s Schedule) EffectiveReminderState() ReminderState {
	switch {
	case s.ReminderState != "":
		return s.ReminderState
	case s.ExternalReminderSent:
		return ReminderFullySent
	case s.ReminderSent:
		return ReminderInAppSent
	default:
		return ReminderPending
	}
}

// SetReminderState moves the tagged state and keeps both flags in sync.
func (s *Schedule) SetReminderState(state ReminderState) {
	s.ReminderState = state
	s.ReminderSent = state.InAppSent()
	s.ExternalReminderSent = state.ExternalSent()
}

// ReminderStateUpdate is the $set document for moving to state.
func ReminderStateUpdate(state ReminderState) map[string]any {
	return map[string]any{
		"reminderState":        state,
		"reminderSent":         state.InAppSent(),
		"externalReminderSent": state.ExternalSent(),
	}
}
