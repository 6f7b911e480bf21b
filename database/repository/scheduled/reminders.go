package scheduledRepo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"

	"sahayata/models"
)

// FindReminderCandidates returns the items on any of dates whose reminder is
// not fully sent. Documents written before reminderState existed are judged
// by their reminderSent and externalReminderSent flags.
func (r *mongoScheduledRepo[T]) FindReminderCandidates(ctx context.Context, dates []string) ([]T, error) {
	ctx, cancel := newContext(ctx, 10*time.Second)
	defer cancel()

	cursor, err := r.coll.Find(ctx, CandidateFilter(dates))
	if err != nil {
		return nil, fmt.Errorf("failed to query %s reminder candidates: %w", r.kind, err)
	}
	defer cursor.Close(ctx)

	var items []T
	if err := cursor.All(ctx, &items); err != nil {
		return nil, fmt.Errorf("failed to decode %s reminder candidates: %w", r.kind, err)
	}
	return items, nil
}

// SetReminderState moves the items to state. Only items currently in the
// predecessor state match, so the state never moves backwards and a
// concurrent cycle cannot repeat a transition.
func (r *mongoScheduledRepo[T]) SetReminderState(ctx context.Context, ids []string, state models.ReminderState) error {
	if len(ids) == 0 {
		return nil
	}
	filter, err := TransitionFilter(ids, state)
	if err != nil {
		return err
	}

	ctx, cancel := newContext(ctx, 10*time.Second)
	defer cancel()

	set := bson.M(models.ReminderStateUpdate(state))
	set["updatedAt"] = time.Now()
	if _, err := r.coll.UpdateMany(ctx, filter, bson.M{"$set": set}); err != nil {
		return fmt.Errorf("failed to set %s reminder state to %s: %w", r.kind, state, err)
	}
	return nil
}

func CandidateFilter(dates []string) bson.M {
	return bson.M{
		"date": bson.M{"$in": dates},
		"$nor": bson.A{StateFilter(models.ReminderFullySent)},
	}
}

func TransitionFilter(ids []string, state models.ReminderState) (bson.M, error) {
	from, ok := state.Predecessor()
	if !ok {
		return nil, fmt.Errorf("no transition into reminder state %q", state)
	}
	filter := StateFilter(from)
	filter["id"] = bson.M{"$in": ids}
	return filter, nil
}

// StateFilter matches documents in state. Documents without reminderState
// match on the state implied by reminderSent and externalReminderSent.
func StateFilter(state models.ReminderState) bson.M {
	legacy := bson.M{"reminderState": nil}
	switch state {
	case models.ReminderPending:
		legacy["reminderSent"] = bson.M{"$ne": true}
		legacy["externalReminderSent"] = bson.M{"$ne": true}
	case models.ReminderInAppSent:
		legacy["reminderSent"] = true
		legacy["externalReminderSent"] = bson.M{"$ne": true}
	case models.ReminderFullySent:
		legacy["externalReminderSent"] = true
	}
	return bson.M{"$or": bson.A{bson.M{"reminderState": state}, legacy}}
}
