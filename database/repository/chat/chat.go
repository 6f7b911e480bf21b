package chatRepo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"sahayata/models"
)

type ChatRepository interface {
	Create(ctx context.Context, message models.GroupMessage) error
	// ListByGroup returns the group's messages oldest first.
	ListByGroup(ctx context.Context, groupID string) ([]models.GroupMessage, error)
}

type mongoChatRepo struct {
	coll *mongo.Collection
}

func NewMongoChatRepo(db *mongo.Database) (ChatRepository, error) {
	repo := &mongoChatRepo{coll: db.Collection("group_messages")}
	if err := repo.ensureIndexes(); err != nil {
		return nil, err
	}
	return repo, nil
}

func (r *mongoChatRepo) Create(ctx context.Context, message models.GroupMessage) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if _, err := r.coll.InsertOne(ctx, message); err != nil {
		return fmt.Errorf("failed to store message in group %s: %w", message.GroupID, err)
	}
	return nil
}

func (r *mongoChatRepo) ListByGroup(ctx context.Context, groupID string) ([]models.GroupMessage, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: 1}})
	cursor, err := r.coll.Find(ctx, bson.M{"groupId": groupID}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list messages for group %s: %w", groupID, err)
	}
	defer cursor.Close(ctx)

	messages := make([]models.GroupMessage, 0)
	if err := cursor.All(ctx, &messages); err != nil {
		return nil, fmt.Errorf("failed to decode messages: %w", err)
	}
	return messages, nil
}

func (r *mongoChatRepo) ensureIndexes() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	indexModels := []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true).SetName("unique_id")},
		{Keys: bson.D{{Key: "groupId", Value: 1}, {Key: "createdAt", Value: 1}}, Options: options.Index().SetName("group_created_idx")},
	}
	if _, err := r.coll.Indexes().CreateMany(ctx, indexModels); err != nil {
		return fmt.Errorf("failed to create chat indexes: %w", err)
	}
	return nil
}
