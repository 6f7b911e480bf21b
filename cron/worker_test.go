package cron

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/hibiken/asynq"

	"sahayata/config"
	"sahayata/models"
	"sahayata/services/reminder"
	"sahayata/services/tasks"
)

type fakeRunner struct {
	kind models.ItemKind
	err  error

	mu   sync.Mutex
	runs int
}

func (f *fakeRunner) Kind() models.ItemKind { return f.kind }

func (f *fakeRunner) Run(context.Context) (reminder.Result, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.runs++
	return reminder.Result{Kind: f.kind}, f.err
}

func (f *fakeRunner) Check(context.Context) (reminder.CheckResult, error) {
	return reminder.CheckResult{Kind: f.kind}, nil
}

func localConfig() *config.Config {
	return &config.Config{SchedulerMode: config.SchedulerModeLocal, ReminderSchedule: "*/5 * * * *"}
}

func TestNewScheduler_Local(t *testing.T) {
	appts := &fakeRunner{kind: models.KindAppointment}
	routines := &fakeRunner{kind: models.KindRoutine}

	s, err := NewScheduler(localConfig(), []reminder.Runner{appts, routines}, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := len(s.local.Entries()); got != 2 {
		t.Errorf("expected one cron entry per kind, got %d", got)
	}
}

func TestNewScheduler_Rejects(t *testing.T) {
	runners := []reminder.Runner{&fakeRunner{kind: models.KindAppointment}}

	bad := localConfig()
	bad.ReminderSchedule = "every five minutes"
	if _, err := NewScheduler(bad, runners, nil); err == nil {
		t.Errorf("expected invalid schedule to fail")
	}
	if _, err := NewScheduler(localConfig(), nil, nil); err == nil {
		t.Errorf("expected missing runners to fail")
	}
}

func TestRunKind_FailureDoesNotAffectOtherKinds(t *testing.T) {
	appts := &fakeRunner{kind: models.KindAppointment, err: errors.New("mongo down")}
	routines := &fakeRunner{kind: models.KindRoutine}
	s, err := NewScheduler(localConfig(), []reminder.Runner{appts, routines}, nil)
	if err != nil {
		t.Fatal(err)
	}

	s.RunKind(context.Background(), models.KindAppointment)
	s.RunKind(context.Background(), models.KindRoutine)
	s.RunKind(context.Background(), "medication")

	if appts.runs != 1 || routines.runs != 1 {
		t.Errorf("expected each kind to run once, got %d and %d", appts.runs, routines.runs)
	}
}

func TestHandleReminderScan(t *testing.T) {
	routines := &fakeRunner{kind: models.KindRoutine}
	s, err := NewScheduler(localConfig(), []reminder.Runner{routines}, nil)
	if err != nil {
		t.Fatal(err)
	}
	handler := handleReminderScan(s)

	task, _, err := tasks.NewReminderScanTask(models.KindRoutine)
	if err != nil {
		t.Fatal(err)
	}
	if err := handler(context.Background(), task); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
	if routines.runs != 1 {
		t.Errorf("expected routine cycle to run")
	}

	err = handler(context.Background(), asynq.NewTask(tasks.TypeReminderScan, []byte("{")))
	if !errors.Is(err, asynq.SkipRetry) {
		t.Errorf("expected malformed payload to skip retry, got %v", err)
	}
}
