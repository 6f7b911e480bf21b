package channels

import (
	"context"

	"sahayata/config"

	"go.uber.org/zap"
)

// NewFromConfig builds the channel set once at process start. Channels whose
// configuration is missing, or whose client fails to initialize, are left
// disabled; this never fails the caller.
func NewFromConfig(ctx context.Context, cfg *config.Config, logger *zap.Logger) *NotificationChannels {
	ch := &NotificationChannels{
		CountryCode: cfg.DefaultCountryCode,
		Timeout:     cfg.ChannelTimeout,
		Logger:      logger.Named("channels"),
	}

	email, err := NewSMTPEmailSender(SMTPConfig{
		Host:     cfg.SMTPHost,
		Port:     cfg.SMTPPort,
		Username: cfg.SMTPUser,
		Password: cfg.SMTPPass,
		From:     cfg.SMTPFrom,
		Timeout:  cfg.ChannelTimeout,
	})
	switch {
	case err != nil:
		logger.Warn("Failed to initialize email transport", zap.Error(err))
	case email == nil:
		logger.Info("SMTP configuration not provided - email notifications disabled")
	default:
		ch.Email = email
		logger.Info("Email transport initialized", zap.String("host", cfg.SMTPHost))
	}

	if cfg.SMSConfigured() {
		ch.SMS = NewTwilioSMSSender(cfg.TwilioAccountSID, cfg.TwilioAuthToken, cfg.TwilioFrom)
		logger.Info("Twilio SMS client initialized")
	} else {
		logger.Info("Twilio credentials not provided or invalid - SMS notifications disabled")
	}

	push, err := NewFCMPushSender(ctx, cfg.FirebaseCredentialsFile)
	switch {
	case err != nil:
		logger.Warn("Failed to initialize FCM client", zap.Error(err))
	case push == nil:
		logger.Info("Firebase credentials not provided - push notifications disabled")
	default:
		ch.Push = push
		logger.Info("FCM push client initialized")
	}

	return ch
}
