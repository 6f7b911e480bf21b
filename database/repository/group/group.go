package groupRepo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"sahayata/models"
)

type GroupRepository interface {
	List(ctx context.Context) ([]models.SupportGroup, error)
	GetByID(ctx context.Context, id string) (*models.SupportGroup, error)
	Create(ctx context.Context, group models.SupportGroup) error
	// ToggleMember adds userID to the group's members, or removes it when
	// already present, and returns the resulting member list. It returns
	// nil, nil when the group does not exist.
	ToggleMember(ctx context.Context, groupID, userID string) ([]string, error)
}

type mongoGroupRepo struct {
	coll *mongo.Collection
}

func NewMongoGroupRepo(db *mongo.Database) (GroupRepository, error) {
	repo := &mongoGroupRepo{coll: db.Collection("support_groups")}
	if err := repo.ensureIndexes(); err != nil {
		return nil, err
	}
	return repo, nil
}

func (r *mongoGroupRepo) List(ctx context.Context) ([]models.SupportGroup, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	cursor, err := r.coll.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "createdAt", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("failed to list groups: %w", err)
	}
	defer cursor.Close(ctx)

	groups := make([]models.SupportGroup, 0)
	if err := cursor.All(ctx, &groups); err != nil {
		return nil, fmt.Errorf("failed to decode groups: %w", err)
	}
	return groups, nil
}

func (r *mongoGroupRepo) GetByID(ctx context.Context, id string) (*models.SupportGroup, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var group models.SupportGroup
	if err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&group); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to fetch group %s: %w", id, err)
	}
	return &group, nil
}

func (r *mongoGroupRepo) Create(ctx context.Context, group models.SupportGroup) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if group.Members == nil {
		group.Members = []string{}
	}
	if _, err := r.coll.InsertOne(ctx, group); err != nil {
		return fmt.Errorf("failed to create group: %w", err)
	}
	return nil
}

// ToggleMember flips membership in a single update using an aggregation
// pipeline, so two concurrent toggles never lose each other's change.
func (r *mongoGroupRepo) ToggleMember(ctx context.Context, groupID, userID string) ([]string, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	members := bson.M{"$ifNull": bson.A{"$members", bson.A{}}}
	update := mongo.Pipeline{
		{{Key: "$set", Value: bson.M{
			"members": bson.M{"$cond": bson.A{
				bson.M{"$in": bson.A{userID, members}},
				bson.M{"$setDifference": bson.A{members, bson.A{userID}}},
				bson.M{"$concatArrays": bson.A{members, bson.A{userID}}},
			}},
		}}},
	}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var group models.SupportGroup
	if err := r.coll.FindOneAndUpdate(ctx, bson.M{"id": groupID}, update, opts).Decode(&group); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to toggle membership in group %s: %w", groupID, err)
	}
	if group.Members == nil {
		group.Members = []string{}
	}
	return group.Members, nil
}
