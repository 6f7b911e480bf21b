package reminder

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"sahayata/models"
	"sahayata/services/channels"
)

const ConfirmationSubject = "Appointment Scheduled"

// Confirmer sends the one-off "appointment scheduled" message when an
// appointment is created. It never fails the caller and never touches the
// reminder state.
type Confirmer struct {
	profiles ProfileFinder
	channels *channels.NotificationChannels
	window   time.Duration
	logger   *zap.Logger
}

func NewConfirmer(profiles ProfileFinder, ch *channels.NotificationChannels, window time.Duration, logger *zap.Logger) *Confirmer {
	if window <= 0 {
		window = DefaultWindow
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Confirmer{profiles: profiles, channels: ch, window: window, logger: logger}
}

func (c *Confirmer) ConfirmAppointment(ctx context.Context, appt models.Appointment) {
	if c == nil {
		return
	}
	logger := c.logger.With(zap.String("appointment_id", appt.ID), zap.String("user_id", appt.UserID))

	var profile *models.Profile
	if c.profiles != nil {
		p, err := c.profiles.GetByUserID(ctx, appt.UserID)
		if err != nil {
			logger.Warn("profile lookup failed for confirmation", zap.Error(err))
		}
		profile = p
	}

	body := ConfirmationMessage(appt, c.window)
	phone := appt.PhoneNumber
	if profile != nil {
		c.channels.SendEmail(ctx, profile.Email, ConfirmationSubject, body)
		if phone == "" {
			phone = profile.PhoneNumber
		}
	}
	c.channels.SendSMS(ctx, phone, body)
}

// ConfirmationMessage is the body of the creation-time confirmation.
func ConfirmationMessage(appt models.Appointment, window time.Duration) string {
	var b strings.Builder
	b.WriteString("Appointment Scheduled!\n\n")
	fmt.Fprintf(&b, "%s\n", appt.Title)
	fmt.Fprintf(&b, "%s at %s\n", appt.Date, appt.Time)
	if appt.Location != "" {
		fmt.Fprintf(&b, "%s\n", appt.Location)
	}
	fmt.Fprintf(&b, "\nYou will receive a reminder %d minutes before your appointment.\n", int(window/time.Minute))
	b.WriteString("- Sahayata")
	return b.String()
}
