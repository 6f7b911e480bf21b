package reminder

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"sahayata/models"
	"sahayata/services/channels"
	"sahayata/services/realtime"
)

// Runner is one kind's reminder cycle, independent of the item type.
type Runner interface {
	Kind() models.ItemKind
	// Run performs a full scan, filter and fan-out cycle.
	Run(ctx context.Context) (Result, error)
	// Check performs the scan and filter only and changes nothing.
	Check(ctx context.Context) (CheckResult, error)
}

// Result summarizes one cycle.
type Result struct {
	Kind       models.ItemKind `json:"kind"`
	Dates      []string        `json:"dates"`
	Candidates int             `json:"candidates"`
	Due        int             `json:"due"`
	Invalid    int             `json:"invalid"`
	InApp      int             `json:"inApp"`
	External   int             `json:"external"`
}

// DueItem is the dry-run view of an item that would be reminded.
type DueItem struct {
	ID            string               `json:"id"`
	UserID        string               `json:"userId"`
	Title         string               `json:"title"`
	Date          string               `json:"date"`
	Time          string               `json:"time"`
	ReminderState models.ReminderState `json:"reminderState"`
	MinutesUntil  int                  `json:"minutesUntil"`
}

type CheckResult struct {
	Kind       models.ItemKind `json:"kind"`
	Now        time.Time       `json:"now"`
	Dates      []string        `json:"dates"`
	Candidates int             `json:"candidates"`
	ToNotify   int             `json:"toNotify"`
	Items      []DueItem       `json:"items"`
}

// Deps are the collaborators shared by every pipeline.
type Deps struct {
	Notifications NotificationStore
	Profiles      ProfileFinder
	Emitter       realtime.Emitter
	Channels      *channels.NotificationChannels
	Logger        *zap.Logger
}

type Options struct {
	Location *time.Location
	Window   time.Duration
	Clock    func() time.Time
}

// Pipeline runs the reminder cycle for items of type T.
type Pipeline[T Scheduled] struct {
	kind  Kind[T]
	store ScheduledStore[T]
	deps  Deps

	loc    *time.Location
	window time.Duration
	now    func() time.Time
	logger *zap.Logger
}

func NewPipeline[T Scheduled](kind Kind[T], store ScheduledStore[T], deps Deps, opts Options) *Pipeline[T] {
	if opts.Location == nil {
		opts.Location = time.Local
	}
	if opts.Window <= 0 {
		opts.Window = DefaultWindow
	}
	if opts.Clock == nil {
		opts.Clock = time.Now
	}
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Pipeline[T]{
		kind:   kind,
		store:  store,
		deps:   deps,
		loc:    opts.Location,
		window: opts.Window,
		now:    opts.Clock,
		logger: logger.With(zap.String("kind", string(kind.Name()))),
	}
}

func (p *Pipeline[T]) Kind() models.ItemKind { return p.kind.Name() }

func (p *Pipeline[T]) scan(ctx context.Context, now time.Time) (dates []string, candidates, due []T, invalid int, err error) {
	dates = CandidateDates(now, p.loc, p.window)
	candidates, err = p.store.FindReminderCandidates(ctx, dates)
	if err != nil {
		return dates, nil, nil, 0, fmt.Errorf("failed to scan %s reminders: %w", p.kind.Name(), err)
	}
	due, bad := FilterDue(candidates, now, p.loc, p.window)
	for _, item := range bad {
		base := item.Base()
		p.logger.Warn("skipping item with invalid schedule",
			zap.String("id", base.ID), zap.String("date", base.Date), zap.String("time", base.Time))
	}
	return dates, candidates, due, len(bad), nil
}

func (p *Pipeline[T]) Check(ctx context.Context) (CheckResult, error) {
	now := p.now()
	dates, candidates, due, _, err := p.scan(ctx, now)
	if err != nil {
		return CheckResult{}, err
	}
	res := CheckResult{
		Kind:       p.kind.Name(),
		Now:        now.In(p.loc),
		Dates:      dates,
		Candidates: len(candidates),
		ToNotify:   len(due),
		Items:      make([]DueItem, 0, len(due)),
	}
	for _, item := range due {
		base := item.Base()
		when, _ := DueAt(base.Date, base.Time, p.loc)
		res.Items = append(res.Items, DueItem{
			ID:            base.ID,
			UserID:        base.UserID,
			Title:         base.Title,
			Date:          base.Date,
			Time:          base.Time,
			ReminderState: base.EffectiveReminderState(),
			MinutesUntil:  int(when.Sub(now) / time.Minute),
		})
	}
	return res, nil
}

// Run executes one cycle. In-app notifications are stored and flagged before
// any external delivery is attempted, so a slow or failing provider can never
// cause a duplicate in-app notification. Items already in in_app_sent (a
// previous cycle stopped before finishing) only get their external sends.
func (p *Pipeline[T]) Run(ctx context.Context) (Result, error) {
	now := p.now()
	dates, candidates, due, invalid, err := p.scan(ctx, now)
	res := Result{Kind: p.kind.Name(), Dates: dates, Candidates: len(candidates), Due: len(due), Invalid: invalid}
	if err != nil {
		return res, err
	}
	if len(due) == 0 {
		return res, nil
	}

	var fresh, resumed []T
	for _, item := range due {
		switch item.Base().EffectiveReminderState() {
		case models.ReminderInAppSent:
			resumed = append(resumed, item)
		case models.ReminderFullySent:
			// The store should never return these.
		default:
			fresh = append(fresh, item)
		}
	}

	if err := p.notifyInApp(ctx, fresh, now); err != nil {
		return res, err
	}
	res.InApp = len(fresh)

	external := append(fresh, resumed...)
	if len(external) == 0 {
		return res, nil
	}
	p.dispatchExternal(ctx, external)

	// Shutting down mid-batch leaves the items in in_app_sent for the next cycle.
	if err := ctx.Err(); err != nil {
		return res, fmt.Errorf("%s reminder cycle interrupted: %w", p.kind.Name(), err)
	}
	if err := p.store.SetReminderState(ctx, ids(external), models.ReminderFullySent); err != nil {
		return res, fmt.Errorf("failed to mark %s reminders fully sent: %w", p.kind.Name(), err)
	}
	res.External = len(external)

	p.logger.Info("reminder cycle complete",
		zap.Int("candidates", res.Candidates),
		zap.Int("in_app", res.InApp),
		zap.Int("external", res.External))
	return res, nil
}

func (p *Pipeline[T]) notifyInApp(ctx context.Context, items []T, now time.Time) error {
	if len(items) == 0 {
		return nil
	}

	drafts := make([]models.Notification, 0, len(items))
	for _, item := range items {
		n := p.kind.InApp(item)
		n.ID = uuid.New().String()
		n.UserID = item.Base().UserID
		n.CreatedAt = now
		drafts = append(drafts, n)
	}

	created, err := p.deps.Notifications.InsertMany(ctx, drafts)
	if err != nil {
		return fmt.Errorf("failed to create %s notifications: %w", p.kind.Name(), err)
	}
	if err := p.store.SetReminderState(ctx, ids(items), models.ReminderInAppSent); err != nil {
		return fmt.Errorf("failed to mark %s reminders in-app sent: %w", p.kind.Name(), err)
	}

	if p.deps.Emitter == nil {
		return nil
	}
	for _, n := range created {
		if err := p.deps.Emitter.Emit(ctx, realtime.NotificationTopic(n.UserID), realtime.EventNotification, n); err != nil {
			p.logger.Warn("failed to emit notification", zap.String("user_id", n.UserID), zap.Error(err))
		}
	}
	return nil
}

// dispatchExternal sends email, SMS and push for each item in turn. A failed
// send never stops the batch.
func (p *Pipeline[T]) dispatchExternal(ctx context.Context, items []T) {
	for _, item := range items {
		if ctx.Err() != nil {
			return
		}
		base := item.Base()
		logger := p.logger.With(zap.String("id", base.ID), zap.String("user_id", base.UserID))

		profile, err := p.deps.Profiles.GetByUserID(ctx, base.UserID)
		if err != nil {
			logger.Warn("profile lookup failed, skipping external reminder", zap.Error(err))
			continue
		}
		if profile == nil {
			logger.Info("no profile, skipping external reminder")
			continue
		}

		subject, body := p.kind.External(item)
		phone := p.kind.PhoneOverride(item)
		if phone == "" {
			phone = profile.PhoneNumber
		}

		p.deps.Channels.SendEmail(ctx, profile.Email, subject, body)
		p.deps.Channels.SendSMS(ctx, phone, body)
		p.deps.Channels.SendPush(ctx, profile.FCMToken, subject, body, pushData(p.kind.InApp(item).Data))
	}
}

func pushData(data map[string]any) map[string]string {
	out := make(map[string]string, len(data))
	for k, v := range data {
		out[k] = fmt.Sprint(v)
	}
	return out
}

func ids[T Scheduled](items []T) []string {
	out := make([]string, 0, len(items))
	for _, item := range items {
		out = append(out, item.Base().ID)
	}
	return out
}
