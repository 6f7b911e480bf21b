package channels

import (
	"context"
	"errors"
	"testing"
	"time"

	"firebase.google.com/go/v4/messaging"
	twilioApi "github.com/twilio/twilio-go/rest/api/v2010"
)

type recordingSMS struct {
	to       []string
	err      error
	panics   bool
	deadline bool
}

func (r *recordingSMS) SendSMS(ctx context.Context, to, body string) error {
	_, r.deadline = ctx.Deadline()
	r.to = append(r.to, to)
	if r.panics {
		panic("provider exploded")
	}
	return r.err
}

type recordingEmail struct {
	to  []string
	err error
}

func (r *recordingEmail) SendEmail(ctx context.Context, to, subject, body string) error {
	r.to = append(r.to, to)
	return r.err
}

func TestSendSMS_NormalizesNumber(t *testing.T) {
	sms := &recordingSMS{}
	ch := &NotificationChannels{SMS: sms, CountryCode: "91"}

	if !ch.SendSMS(context.Background(), "9998887776", "hello") {
		t.Fatalf("expected send to succeed")
	}
	if len(sms.to) != 1 || sms.to[0] != "+919998887776" {
		t.Fatalf("expected normalized number, got %v", sms.to)
	}
}

func TestSendSMS_SwallowsErrors(t *testing.T) {
	ch := &NotificationChannels{SMS: &recordingSMS{err: errors.New("rate limited")}}
	if ch.SendSMS(context.Background(), "9998887776", "hello") {
		t.Errorf("expected failure to be reported as not sent")
	}
}

func TestSendSMS_RecoversPanics(t *testing.T) {
	ch := &NotificationChannels{SMS: &recordingSMS{panics: true}}
	if ch.SendSMS(context.Background(), "9998887776", "hello") {
		t.Errorf("expected panic to be reported as not sent")
	}
}

func TestSendSMS_AppliesTimeout(t *testing.T) {
	sms := &recordingSMS{}
	ch := &NotificationChannels{SMS: sms, Timeout: time.Second}
	ch.SendSMS(context.Background(), "9998887776", "hello")
	if !sms.deadline {
		t.Errorf("expected provider call to carry a deadline")
	}
}

func TestDisabledChannelsAreNoOps(t *testing.T) {
	var nilChannels *NotificationChannels
	if nilChannels.EmailEnabled() || nilChannels.SMSEnabled() || nilChannels.PushEnabled() {
		t.Fatalf("nil channel set must report everything disabled")
	}

	ch := &NotificationChannels{}
	if ch.SendEmail(context.Background(), "a@x.com", "s", "b") {
		t.Errorf("expected email to be skipped")
	}
	if ch.SendSMS(context.Background(), "9998887776", "b") {
		t.Errorf("expected sms to be skipped")
	}
	if ch.SendPush(context.Background(), "tok", "t", "b", nil) {
		t.Errorf("expected push to be skipped")
	}
}

func TestSendEmail_SkipsEmptyRecipient(t *testing.T) {
	email := &recordingEmail{}
	ch := &NotificationChannels{Email: email}
	if ch.SendEmail(context.Background(), "", "s", "b") {
		t.Errorf("expected empty recipient to be skipped")
	}
	if len(email.to) != 0 {
		t.Errorf("provider must not be called, got %v", email.to)
	}
}

type fakeMessageCreator struct {
	params *twilioApi.CreateMessageParams
	err    error
	block  chan struct{}
}

func (f *fakeMessageCreator) CreateMessage(params *twilioApi.CreateMessageParams) (*twilioApi.ApiV2010Message, error) {
	if f.block != nil {
		<-f.block
	}
	f.params = params
	return &twilioApi.ApiV2010Message{}, f.err
}

func TestTwilioSMSSender_BuildsParams(t *testing.T) {
	api := &fakeMessageCreator{}
	sender := &TwilioSMSSender{api: api, from: "+15550001111"}

	if err := sender.SendSMS(context.Background(), "+919998887776", "reminder"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if api.params == nil || *api.params.To != "+919998887776" || *api.params.From != "+15550001111" || *api.params.Body != "reminder" {
		t.Fatalf("unexpected params: %+v", api.params)
	}
}

func TestTwilioSMSSender_GivesUpOnDeadline(t *testing.T) {
	api := &fakeMessageCreator{block: make(chan struct{})}
	defer close(api.block)
	sender := &TwilioSMSSender{api: api, from: "+15550001111"}

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	err := sender.SendSMS(ctx, "+919998887776", "reminder")
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("expected deadline exceeded, got %v", err)
	}
}

type fakeMessaging struct {
	msg *messaging.Message
}

func (f *fakeMessaging) Send(ctx context.Context, message *messaging.Message) (string, error) {
	f.msg = message
	return "projects/x/messages/1", nil
}

func TestFCMPushSender_SendsHighPriority(t *testing.T) {
	client := &fakeMessaging{}
	sender := &FCMPushSender{client: client}

	if err := sender.SendPush(context.Background(), "tok", "Upcoming appointment", "Checkup at 10:30", map[string]string{"type": "appointment"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if client.msg.Token != "tok" || client.msg.Android.Priority != "high" {
		t.Fatalf("unexpected message: %+v", client.msg)
	}
	if client.msg.Data["type"] != "appointment" {
		t.Errorf("expected data to be forwarded")
	}
}
