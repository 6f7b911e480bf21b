// Package cron drives the periodic reminder cycles, either in process with
// robfig/cron or through an asynq scheduler and worker.
package cron

import (
	"context"
	"fmt"
	"time"

	"github.com/hibiken/asynq"
	robfig "github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"sahayata/config"
	"sahayata/models"
	"sahayata/services/reminder"
	"sahayata/services/tasks"
)

const runTimeout = 4 * time.Minute

// Scheduler runs every registered reminder kind on the configured cadence.
// Kinds are independent: one kind failing or running long never delays
// another.
type Scheduler struct {
	cfg     *config.Config
	runners []reminder.Runner
	logger  *zap.Logger

	local     *robfig.Cron
	scheduler *asynq.Scheduler
	server    *asynq.Server
}

func NewScheduler(cfg *config.Config, runners []reminder.Runner, logger *zap.Logger) (*Scheduler, error) {
	if len(runners) == 0 {
		return nil, fmt.Errorf("scheduler initialization error: no reminder kinds registered")
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	loc, err := cfg.Location()
	if err != nil {
		return nil, err
	}

	s := &Scheduler{cfg: cfg, runners: runners, logger: logger.Named("scheduler")}
	switch cfg.SchedulerMode {
	case config.SchedulerModeAsynq:
		err = s.initAsynq(loc)
	default:
		err = s.initLocal(loc)
	}
	if err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Scheduler) initLocal(loc *time.Location) error {
	s.local = robfig.New(robfig.WithLocation(loc))
	for _, r := range s.runners {
		kind := r.Kind()
		if _, err := s.local.AddFunc(s.cfg.ReminderSchedule, func() { s.RunKind(context.Background(), kind) }); err != nil {
			return fmt.Errorf("invalid REMINDER_SCHEDULE %q: %w", s.cfg.ReminderSchedule, err)
		}
	}
	return nil
}

func (s *Scheduler) initAsynq(loc *time.Location) error {
	redisOpts := asynq.RedisClientOpt{
		Addr:     s.cfg.RedisAddr,
		Password: s.cfg.RedisPassword,
		DB:       s.cfg.RedisQueueDB,
	}

	s.scheduler = asynq.NewScheduler(redisOpts, &asynq.SchedulerOpts{
		Location: loc,
		Logger:   s.logger.Sugar(),
	})
	for _, r := range s.runners {
		task, opts, err := tasks.NewReminderScanTask(r.Kind())
		if err != nil {
			return err
		}
		if _, err := s.scheduler.Register(s.cfg.ReminderSchedule, task, opts...); err != nil {
			return fmt.Errorf("failed to register %s scan: %w", r.Kind(), err)
		}
	}

	s.server = asynq.NewServer(redisOpts, asynq.Config{
		Concurrency: 2 * len(s.runners),
		Queues: map[string]int{
			"default": 1,
		},
		Logger: s.logger.Sugar(),
	})
	return nil
}

// Start begins scheduling. It does not block.
func (s *Scheduler) Start() error {
	if s.local != nil {
		s.local.Start()
		s.logger.Info("local reminder scheduler started",
			zap.String("schedule", s.cfg.ReminderSchedule), zap.Int("kinds", len(s.runners)))
		return nil
	}

	if err := s.scheduler.Start(); err != nil {
		return fmt.Errorf("failed to start reminder scheduler: %w", err)
	}

	mux := asynq.NewServeMux()
	mux.HandleFunc(tasks.TypeReminderScan, handleReminderScan(s))

	go func() {
		const maxAttempts = 5
		for attempts := 1; attempts <= maxAttempts; attempts++ {
			err := s.server.Start(mux)
			if err == nil {
				s.logger.Info("reminder worker started", zap.String("schedule", s.cfg.ReminderSchedule))
				return
			}
			s.logger.Warn("failed to start reminder worker",
				zap.Int("attempt", attempts), zap.Int("maxAttempts", maxAttempts), zap.Error(err))
			time.Sleep(time.Duration(attempts*2) * time.Second)
		}
		s.logger.Error("reminder worker not started, giving up")
	}()
	return nil
}

// Stop waits for running local jobs, or shuts the asynq side down.
func (s *Scheduler) Stop() {
	if s.local != nil {
		<-s.local.Stop().Done()
		return
	}
	s.scheduler.Shutdown()
	s.server.Shutdown()
}

// RunKind performs one cycle for kind and logs its outcome. Errors never
// escape: the next tick is the retry.
func (s *Scheduler) RunKind(ctx context.Context, kind models.ItemKind) {
	if err := s.run(ctx, kind); err != nil {
		s.logger.Error("reminder cycle failed", zap.String("kind", string(kind)), zap.Error(err))
	}
}

func (s *Scheduler) run(ctx context.Context, kind models.ItemKind) error {
	runner := s.runner(kind)
	if runner == nil {
		return fmt.Errorf("no reminder runner for kind %q", kind)
	}

	ctx, cancel := context.WithTimeout(ctx, runTimeout)
	defer cancel()

	result, err := runner.Run(ctx)
	if err != nil {
		return err
	}
	if result.Due > 0 || result.Invalid > 0 {
		s.logger.Info("reminder cycle finished",
			zap.String("kind", string(kind)),
			zap.Int("candidates", result.Candidates),
			zap.Int("due", result.Due),
			zap.Int("invalid", result.Invalid),
			zap.Int("inApp", result.InApp),
			zap.Int("external", result.External))
	}
	return nil
}

func (s *Scheduler) runner(kind models.ItemKind) reminder.Runner {
	for _, r := range s.runners {
		if r.Kind() == kind {
			return r
		}
	}
	return nil
}

func handleReminderScan(s *Scheduler) asynq.HandlerFunc {
	return func(ctx context.Context, task *asynq.Task) error {
		p, err := tasks.ParseReminderScanTask(task)
		if err != nil {
			s.logger.Error("dropping reminder scan", zap.Error(err))
			return fmt.Errorf("%w: %v", asynq.SkipRetry, err)
		}
		if err := s.run(ctx, p.Kind); err != nil {
			s.logger.Error("reminder cycle failed", zap.String("kind", string(p.Kind)), zap.Error(err))
			return err
		}
		return nil
	}
}
