package notification

import (
	"context"
	"errors"
	"testing"

	"sahayata/models"
	"sahayata/services/channels"
)

type memRepo struct {
	items     []models.Notification
	lastLimit int64
}

func (m *memRepo) InsertMany(_ context.Context, ns []models.Notification) ([]models.Notification, error) {
	m.items = append(m.items, ns...)
	return ns, nil
}

func (m *memRepo) ListByUser(_ context.Context, userID string, limit int64) ([]models.Notification, error) {
	m.lastLimit = limit
	var out []models.Notification
	for _, n := range m.items {
		if n.UserID == userID {
			out = append(out, n)
		}
	}
	return out, nil
}

func (m *memRepo) MarkRead(_ context.Context, userID, id string) (bool, error) {
	for i := range m.items {
		if m.items[i].ID == id && m.items[i].UserID == userID {
			m.items[i].Read = true
			return true, nil
		}
	}
	return false, nil
}

func (m *memRepo) MarkAllRead(_ context.Context, userID string) (int64, error) {
	var n int64
	for i := range m.items {
		if m.items[i].UserID == userID && !m.items[i].Read {
			m.items[i].Read = true
			n++
		}
	}
	return n, nil
}

type profiles map[string]models.Profile

func (p profiles) GetByUserID(_ context.Context, userID string) (*models.Profile, error) {
	profile, ok := p[userID]
	if !ok {
		return nil, nil
	}
	return &profile, nil
}

type sink struct {
	to  []string
	err error
}

func (s *sink) SendEmail(_ context.Context, to, _, _ string) error {
	s.to = append(s.to, to)
	return s.err
}

func (s *sink) SendSMS(_ context.Context, to, _ string) error {
	s.to = append(s.to, to)
	return s.err
}

func TestInbox(t *testing.T) {
	repo := &memRepo{items: []models.Notification{
		{ID: "n1", UserID: "u1"},
		{ID: "n2", UserID: "u1"},
		{ID: "n3", UserID: "u2"},
	}}
	svc := NewDefaultNotificationService(repo, profiles{}, nil)
	ctx := context.Background()

	tests := []struct {
		limit, want int64
	}{
		{limit: 0, want: DefaultListLimit},
		{limit: 10, want: 10},
		{limit: 5000, want: DefaultListLimit},
	}
	for _, test := range tests {
		if _, err := svc.List(ctx, "u1", test.limit); err != nil {
			t.Fatal(err)
		}
		if repo.lastLimit != test.want {
			t.Errorf("limit %d: expected %d, got %d", test.limit, test.want, repo.lastLimit)
		}
	}

	if err := svc.MarkRead(ctx, "u2", "n1"); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound for another user's notification, got %v", err)
	}
	if err := svc.MarkRead(ctx, "u1", "n1"); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
	count, err := svc.MarkAllRead(ctx, "u1")
	if err != nil || count != 1 {
		t.Errorf("expected 1 remaining unread, got %d (%v)", count, err)
	}
}

func TestSendTest(t *testing.T) {
	email, sms := &sink{}, &sink{}
	ch := &channels.NotificationChannels{Email: email, SMS: sms, CountryCode: "91"}
	svc := NewDefaultNotificationService(&memRepo{}, profiles{
		"full":    {UserID: "full", Email: "a@example.com", PhoneNumber: "9998887776"},
		"empty":   {UserID: "empty"},
		"emailed": {UserID: "emailed", Email: "b@example.com"},
	}, ch)
	ctx := context.Background()

	attempts, err := svc.SendTest(ctx, "full")
	if err != nil {
		t.Fatal(err)
	}
	if !attempts.EmailSent || !attempts.SMSSent {
		t.Errorf("expected both channels attempted, got %+v", attempts)
	}
	if len(sms.to) != 1 || sms.to[0] != "+919998887776" {
		t.Errorf("unexpected SMS recipients %v", sms.to)
	}

	if _, err := svc.SendTest(ctx, "empty"); !errors.Is(err, ErrNoContact) {
		t.Errorf("expected ErrNoContact, got %v", err)
	}
	if _, err := svc.SendTest(ctx, "nobody"); !errors.Is(err, ErrProfileNotFound) {
		t.Errorf("expected ErrProfileNotFound, got %v", err)
	}

	attempts, err = svc.SendTest(ctx, "emailed")
	if err != nil || attempts.PhoneNumber != "" {
		t.Errorf("expected email-only attempt, got %+v (%v)", attempts, err)
	}
}

func TestSendTest_UnconfiguredChannelsCountAsNoContact(t *testing.T) {
	svc := NewDefaultNotificationService(&memRepo{}, profiles{
		"full": {UserID: "full", Email: "a@example.com", PhoneNumber: "9998887776"},
	}, nil)
	if _, err := svc.SendTest(context.Background(), "full"); !errors.Is(err, ErrNoContact) {
		t.Errorf("expected ErrNoContact, got %v", err)
	}
}

func TestSendTestSMS(t *testing.T) {
	sms := &sink{}
	svc := NewDefaultNotificationService(&memRepo{}, profiles{}, &channels.NotificationChannels{SMS: sms})

	text, err := svc.SendTestSMS(context.Background(), "+15550001111", "")
	if err != nil || text != DefaultTestSMS {
		t.Errorf("expected default text to be sent, got %q (%v)", text, err)
	}

	sms.err = errors.New("unverified number")
	if _, err := svc.SendTestSMS(context.Background(), "+15550001111", "hi"); !errors.Is(err, ErrSendFailed) {
		t.Errorf("expected ErrSendFailed, got %v", err)
	}
}
