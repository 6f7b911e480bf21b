package recordsRepo

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"sahayata/models"
)

type MedicalRecordRepository interface {
	Create(ctx context.Context, record models.MedicalRecord) (string, error)
	GetByID(ctx context.Context, userID, id string) (*models.MedicalRecord, error)
	GetByAttachmentKey(ctx context.Context, userID, key string) (*models.MedicalRecord, error)
	// ListByUser returns the newest records first.
	ListByUser(ctx context.Context, userID string) ([]models.MedicalRecord, error)
	Update(ctx context.Context, userID, id string, set bson.M) (*models.MedicalRecord, error)
	// DeleteByID removes the record and returns it, or nil when nothing matched.
	DeleteByID(ctx context.Context, userID, id string) (*models.MedicalRecord, error)
}

type mongoRecordRepo struct {
	coll *mongo.Collection
}

// NewMongoRecordRepo returns a new MedicalRecordRepository instance using MongoDB.
func NewMongoRecordRepo(db *mongo.Database) (MedicalRecordRepository, error) {
	repo := &mongoRecordRepo{coll: db.Collection("medical_records")}
	if err := repo.ensureIndexes(); err != nil {
		return nil, err
	}
	return repo, nil
}
