package scheduledRepo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func (r *mongoScheduledRepo[T]) Create(ctx context.Context, item T) error {
	ctx, cancel := newContext(ctx, 5*time.Second)
	defer cancel()

	if _, err := r.coll.InsertOne(ctx, item); err != nil {
		return fmt.Errorf("failed to create %s: %w", r.kind, err)
	}
	return nil
}

// GetByID returns nil, nil when the item does not exist or belongs to
// someone else.
func (r *mongoScheduledRepo[T]) GetByID(ctx context.Context, userID, id string) (*T, error) {
	ctx, cancel := newContext(ctx, 5*time.Second)
	defer cancel()

	var item T
	err := r.coll.FindOne(ctx, bson.M{"id": id, "userId": userID}).Decode(&item)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to fetch %s %s: %w", r.kind, id, err)
	}
	return &item, nil
}

// ListByUser returns the user's items ordered by date then time. A limit of
// zero means no limit.
func (r *mongoScheduledRepo[T]) ListByUser(ctx context.Context, userID string, limit int64) ([]T, error) {
	ctx, cancel := newContext(ctx, 10*time.Second)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "date", Value: 1}, {Key: "time", Value: 1}})
	if limit > 0 {
		opts.SetLimit(limit)
	}
	cursor, err := r.coll.Find(ctx, bson.M{"userId": userID}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list %s items: %w", r.kind, err)
	}
	defer cursor.Close(ctx)

	items := make([]T, 0)
	if err := cursor.All(ctx, &items); err != nil {
		return nil, fmt.Errorf("failed to decode %s items: %w", r.kind, err)
	}
	return items, nil
}

// Update applies set to the user's item and returns the updated document, or
// nil, nil when nothing matched.
func (r *mongoScheduledRepo[T]) Update(ctx context.Context, userID, id string, set bson.M) (*T, error) {
	ctx, cancel := newContext(ctx, 5*time.Second)
	defer cancel()

	set["updatedAt"] = time.Now()
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var item T
	err := r.coll.FindOneAndUpdate(ctx, bson.M{"id": id, "userId": userID}, bson.M{"$set": set}, opts).Decode(&item)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to update %s %s: %w", r.kind, id, err)
	}
	return &item, nil
}

// Delete reports whether a document was removed.
func (r *mongoScheduledRepo[T]) Delete(ctx context.Context, userID, id string) (bool, error) {
	ctx, cancel := newContext(ctx, 5*time.Second)
	defer cancel()

	res, err := r.coll.DeleteOne(ctx, bson.M{"id": id, "userId": userID})
	if err != nil {
		return false, fmt.Errorf("failed to delete %s %s: %w", r.kind, id, err)
	}
	return res.DeletedCount > 0, nil
}
