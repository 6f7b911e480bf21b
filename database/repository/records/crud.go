package recordsRepo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"sahayata/models"
)

// Create inserts a new medical record and returns its ID.
func (r *mongoRecordRepo) Create(ctx context.Context, record models.MedicalRecord) (string, error) {
	if record.ID == "" {
		record.ID = uuid.New().String()
	}
	record.CreatedAt = time.Now()
	record.UpdatedAt = record.CreatedAt

	if _, err := r.coll.InsertOne(ctx, record); err != nil {
		return "", fmt.Errorf("failed to create medical record: %w", err)
	}
	return record.ID, nil
}

func (r *mongoRecordRepo) GetByID(ctx context.Context, userID, id string) (*models.MedicalRecord, error) {
	return r.findOne(ctx, bson.M{"id": id, "userId": userID})
}

func (r *mongoRecordRepo) GetByAttachmentKey(ctx context.Context, userID, key string) (*models.MedicalRecord, error) {
	return r.findOne(ctx, bson.M{"attachmentKey": key, "userId": userID})
}

func (r *mongoRecordRepo) findOne(ctx context.Context, filter bson.M) (*models.MedicalRecord, error) {
	var record models.MedicalRecord
	if err := r.coll.FindOne(ctx, filter).Decode(&record); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to fetch medical record: %w", err)
	}
	return &record, nil
}

func (r *mongoRecordRepo) ListByUser(ctx context.Context, userID string) ([]models.MedicalRecord, error) {
	opts := options.Find().SetSort(bson.D{{Key: "date", Value: -1}, {Key: "createdAt", Value: -1}})
	cursor, err := r.coll.Find(ctx, bson.M{"userId": userID}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list medical records: %w", err)
	}
	defer cursor.Close(ctx)

	records := make([]models.MedicalRecord, 0)
	if err := cursor.All(ctx, &records); err != nil {
		return nil, fmt.Errorf("failed to decode medical records: %w", err)
	}
	return records, nil
}

func (r *mongoRecordRepo) Update(ctx context.Context, userID, id string, set bson.M) (*models.MedicalRecord, error) {
	set["updatedAt"] = time.Now()
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var record models.MedicalRecord
	err := r.coll.FindOneAndUpdate(ctx, bson.M{"id": id, "userId": userID}, bson.M{"$set": set}, opts).Decode(&record)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to update medical record %s: %w", id, err)
	}
	return &record, nil
}

// DeleteByID removes a medical record by ID.
func (r *mongoRecordRepo) DeleteByID(ctx context.Context, userID, id string) (*models.MedicalRecord, error) {
	var record models.MedicalRecord
	if err := r.coll.FindOneAndDelete(ctx, bson.M{"id": id, "userId": userID}).Decode(&record); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to delete medical record %s: %w", id, err)
	}
	return &record, nil
}
