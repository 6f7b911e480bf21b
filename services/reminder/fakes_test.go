package reminder

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"sync"

	"sahayata/models"
)

// journal records the order in which side effects happen.
type journal struct {
	mu      sync.Mutex
	entries []string
}

func (j *journal) add(format string, args ...any) {
	if j == nil {
		return
	}
	j.mu.Lock()
	defer j.mu.Unlock()
	j.entries = append(j.entries, fmt.Sprintf(format, args...))
}

func (j *journal) index(entry string) int {
	j.mu.Lock()
	defer j.mu.Unlock()
	return slices.Index(j.entries, entry)
}

type memStore[T Scheduled] struct {
	mu      sync.Mutex
	items   []T
	apply   func(T, models.ReminderState) T
	journal *journal
	findErr error
	setErr  error
}

func newAppointmentStore(j *journal, items ...models.Appointment) *memStore[models.Appointment] {
	return &memStore[models.Appointment]{
		items:   items,
		journal: j,
		apply: func(a models.Appointment, s models.ReminderState) models.Appointment {
			a.SetReminderState(s)
			return a
		},
	}
}

func newRoutineStore(j *journal, items ...models.RoutineTask) *memStore[models.RoutineTask] {
	return &memStore[models.RoutineTask]{
		items:   items,
		journal: j,
		apply: func(r models.RoutineTask, s models.ReminderState) models.RoutineTask {
			r.SetReminderState(s)
			return r
		},
	}
}

func (s *memStore[T]) FindReminderCandidates(_ context.Context, dates []string) ([]T, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.findErr != nil {
		return nil, s.findErr
	}
	var out []T
	for _, item := range s.items {
		base := item.Base()
		if slices.Contains(dates, base.Date) && base.EffectiveReminderState() != models.ReminderFullySent {
			out = append(out, item)
		}
	}
	return out, nil
}

func (s *memStore[T]) SetReminderState(_ context.Context, ids []string, state models.ReminderState) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.setErr != nil {
		return s.setErr
	}
	from, ok := state.Predecessor()
	if !ok {
		return errors.New("invalid target state")
	}
	for i, item := range s.items {
		base := item.Base()
		if slices.Contains(ids, base.ID) && base.EffectiveReminderState() == from {
			s.items[i] = s.apply(item, state)
		}
	}
	s.journal.add("state:%s", state)
	return nil
}

func (s *memStore[T]) get(id string) T {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, item := range s.items {
		if item.Base().ID == id {
			return item
		}
	}
	var zero T
	return zero
}

type memNotifications struct {
	mu      sync.Mutex
	stored  []models.Notification
	journal *journal
	err     error
}

func (m *memNotifications) InsertMany(_ context.Context, ns []models.Notification) ([]models.Notification, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	m.stored = append(m.stored, ns...)
	m.journal.add("insert:%d", len(ns))
	return ns, nil
}

type memProfiles struct {
	profiles map[string]*models.Profile
	err      error
}

func (m memProfiles) GetByUserID(_ context.Context, userID string) (*models.Profile, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.profiles[userID], nil
}

type emitted struct {
	topic, event string
	payload      any
}

type recordingEmitter struct {
	mu      sync.Mutex
	events  []emitted
	journal *journal
}

func (r *recordingEmitter) Emit(_ context.Context, topic, event string, payload any) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, emitted{topic: topic, event: event, payload: payload})
	r.journal.add("emit:%s", topic)
	return nil
}

type sentMessage struct {
	to, subject, body string
}

type fakeEmail struct {
	mu      sync.Mutex
	sent    []sentMessage
	journal *journal
}

func (f *fakeEmail) SendEmail(_ context.Context, to, subject, body string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sent = append(f.sent, sentMessage{to: to, subject: subject, body: body})
	f.journal.add("email:%s", to)
	return nil
}

type fakeSMS struct {
	mu      sync.Mutex
	sent    []sentMessage
	failTo  map[string]bool
	panicTo map[string]bool
	journal *journal
}

func (f *fakeSMS) SendSMS(_ context.Context, to, body string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.journal.add("sms:%s", to)
	if f.panicTo[to] {
		panic("sms client blew up")
	}
	if f.failTo[to] {
		return errors.New("provider rejected number")
	}
	f.sent = append(f.sent, sentMessage{to: to, body: body})
	return nil
}

type fakePush struct {
	mu     sync.Mutex
	tokens []string
	data   []map[string]string
}

func (f *fakePush) SendPush(_ context.Context, token, _, _ string, data map[string]string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.tokens = append(f.tokens, token)
	f.data = append(f.data, data)
	return nil
}
