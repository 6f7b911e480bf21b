package channels

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"
)

// EmailSender delivers a plain-text email through some provider.
type EmailSender interface {
	SendEmail(ctx context.Context, to, subject, body string) error
}

// SMSSender delivers a text message to an already normalized number.
type SMSSender interface {
	SendSMS(ctx context.Context, to, body string) error
}

// PushSender delivers a mobile push notification to a device token.
type PushSender interface {
	SendPush(ctx context.Context, token, title, body string, data map[string]string) error
}

// NotificationChannels bundles the optional external senders. A nil sender
// disables that channel. Every Send method is best-effort: provider errors
// and panics are logged and swallowed, and the return value only reports
// whether the provider accepted the message.
type NotificationChannels struct {
	Email EmailSender
	SMS   SMSSender
	Push  PushSender

	CountryCode string
	Timeout     time.Duration
	Logger      *zap.Logger
}

func (c *NotificationChannels) EmailEnabled() bool { return c != nil && c.Email != nil }
func (c *NotificationChannels) SMSEnabled() bool   { return c != nil && c.SMS != nil }
func (c *NotificationChannels) PushEnabled() bool  { return c != nil && c.Push != nil }

// SendEmail is a no-op when email is not configured.
func (c *NotificationChannels) SendEmail(ctx context.Context, to, subject, body string) bool {
	if !c.EmailEnabled() || to == "" {
		return false
	}
	return c.attempt(ctx, "email", to, func(ctx context.Context) error {
		return c.Email.SendEmail(ctx, to, subject, body)
	})
}

// SendSMS normalizes the number before handing it to the provider.
func (c *NotificationChannels) SendSMS(ctx context.Context, to, body string) bool {
	if !c.SMSEnabled() || to == "" {
		return false
	}
	formatted := NormalizePhone(to, c.CountryCode)
	c.logger().Debug("formatted phone", zap.String("raw", to), zap.String("formatted", formatted))
	return c.attempt(ctx, "sms", formatted, func(ctx context.Context) error {
		return c.SMS.SendSMS(ctx, formatted, body)
	})
}

func (c *NotificationChannels) SendPush(ctx context.Context, token, title, body string, data map[string]string) bool {
	if !c.PushEnabled() || token == "" {
		return false
	}
	return c.attempt(ctx, "push", "device", func(ctx context.Context) error {
		return c.Push.SendPush(ctx, token, title, body, data)
	})
}

func (c *NotificationChannels) attempt(ctx context.Context, channel, to string, send func(context.Context) error) (ok bool) {
	logger := c.logger().With(zap.String("channel", channel), zap.String("to", to))
	defer func() {
		if r := recover(); r != nil {
			logger.Error("send panicked", zap.Any("panic", r))
			ok = false
		}
	}()

	if c.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.Timeout)
		defer cancel()
	}

	if err := send(ctx); err != nil {
		logger.Warn("send failed", zap.Error(err))
		return false
	}
	logger.Info("sent")
	return true
}

func (c *NotificationChannels) logger() *zap.Logger {
	if c.Logger == nil {
		return zap.NewNop()
	}
	return c.Logger
}

// awaitContext runs a provider call that has no context support of its own
// and gives up when ctx ends. The call itself keeps running in the background.
func awaitContext(ctx context.Context, call func() error) error {
	done := make(chan error, 1)
	go func() {
		defer func() {
			if r := recover(); r != nil {
				done <- fmt.Errorf("provider panic: %v", r)
			}
		}()
		done <- call()
	}()

	select {
	case err := <-done:
		return err
	case <-ctx.Done():
		return ctx.Err()
	}
}
