package scheduledRepo

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"sahayata/models"
)

// Item is an Appointment or a RoutineTask.
type Item interface {
	models.Appointment | models.RoutineTask
	Base() models.Schedule
}

// ScheduledRepository stores one kind of scheduled item. Every read and write
// outside the reminder methods is scoped to the owning user.
type ScheduledRepository[T Item] interface {
	Create(ctx context.Context, item T) error
	GetByID(ctx context.Context, userID, id string) (*T, error)
	ListByUser(ctx context.Context, userID string, limit int64) ([]T, error)
	Update(ctx context.Context, userID, id string, set bson.M) (*T, error)
	Delete(ctx context.Context, userID, id string) (bool, error)

	FindReminderCandidates(ctx context.Context, dates []string) ([]T, error)
	SetReminderState(ctx context.Context, ids []string, state models.ReminderState) error
}

type mongoScheduledRepo[T Item] struct {
	coll *mongo.Collection
	kind models.ItemKind
}

const (
	AppointmentsCollection = "appointments"
	RoutinesCollection     = "routines"
)

// NewAppointmentRepo returns the appointments repository and makes sure its
// indexes exist.
func NewAppointmentRepo(db *mongo.Database) (ScheduledRepository[models.Appointment], error) {
	repo, err := newRepo[models.Appointment](db.Collection(AppointmentsCollection), models.KindAppointment)
	if err != nil {
		return nil, err
	}
	return repo, nil
}

func NewRoutineRepo(db *mongo.Database) (ScheduledRepository[models.RoutineTask], error) {
	repo, err := newRepo[models.RoutineTask](db.Collection(RoutinesCollection), models.KindRoutine)
	if err != nil {
		return nil, err
	}
	return repo, nil
}

func newRepo[T Item](coll *mongo.Collection, kind models.ItemKind) (*mongoScheduledRepo[T], error) {
	repo := &mongoScheduledRepo[T]{coll: coll, kind: kind}
	if err := repo.ensureIndexes(); err != nil {
		return nil, err
	}
	return repo, nil
}

// newContext bounds a repository call when the caller has no deadline of its own.
func newContext(parent context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	if _, ok := parent.Deadline(); ok {
		return context.WithCancel(parent)
	}
	return context.WithTimeout(parent, timeout)
}
