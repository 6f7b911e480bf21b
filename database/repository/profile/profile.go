package profileRepo

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

type ProfileRepository interface {
	// GetByUserID returns nil, nil when the user has no profile yet.
	GetByUserID(ctx context.Context, userID string) (*models.Profile, error)
	ListByUserIDs(ctx context.Context, userIDs []string) ([]models.Profile, error)
	Create(ctx context.Context, profile models.Profile) error
	// Upsert applies set to the user's profile, creating it with insert
	// when missing, and returns the result.
	Upsert(ctx context.Context, userID string, set, insert bson.M) (*models.Profile, error)
	SetFCMToken(ctx context.Context, userID, token string) error
}

type mongoProfileRepo struct {
	coll *mongo.Collection
}

func NewMongoProfileRepo(db *mongo.Database) (ProfileRepository, error) {
	repo := &mongoProfileRepo{coll: db.Collection("profiles")}
	if err := repo.ensureIndexes(); err != nil {
		return nil, err
	}
	return repo, nil
}

func (r *mongoProfileRepo) GetByUserID(ctx context.Context, userID string) (*models.Profile, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var profile models.Profile
	if err := r.coll.FindOne(ctx, bson.M{"userId": userID}).Decode(&profile); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to fetch profile for user %s: %w", userID, err)
	}
	return &profile, nil
}

func (r *mongoProfileRepo) ListByUserIDs(ctx context.Context, userIDs []string) ([]models.Profile, error) {
	if len(userIDs) == 0 {
		return nil, nil
	}
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	cursor, err := r.coll.Find(ctx, bson.M{"userId": bson.M{"$in": userIDs}})
	if err != nil {
		return nil, fmt.Errorf("failed to list profiles: %w", err)
	}
	defer cursor.Close(ctx)

	var profiles []models.Profile
	if err := cursor.All(ctx, &profiles); err != nil {
		return nil, fmt.Errorf("failed to decode profiles: %w", err)
	}
	return profiles, nil
}

func (r *mongoProfileRepo) Create(ctx context.Context, profile models.Profile) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	now := time.Now()
	profile.CreatedAt = now
	profile.UpdatedAt = now
	if _, err := r.coll.InsertOne(ctx, profile); err != nil {
		return fmt.Errorf("failed to create profile for user %s: %w", profile.UserID, err)
	}
	return nil
}

func (r *mongoProfileRepo) Upsert(ctx context.Context, userID string, set, insert bson.M) (*models.Profile, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	now := time.Now()
	set["updatedAt"] = now
	onInsert := bson.M{"createdAt": now}
	for k, v := range insert {
		if _, clash := set[k]; !clash {
			onInsert[k] = v
		}
	}
	update := bson.M{"$set": set, "$setOnInsert": onInsert}
	opts := options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After)

	var profile models.Profile
	if err := r.coll.FindOneAndUpdate(ctx, bson.M{"userId": userID}, update, opts).Decode(&profile); err != nil {
		return nil, fmt.Errorf("failed to update profile for user %s: %w", userID, err)
	}
	return &profile, nil
}

func (r *mongoProfileRepo) SetFCMToken(ctx context.Context, userID, token string) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	update := bson.M{"$set": bson.M{"fcmToken": token, "updatedAt": time.Now()}}
	res, err := r.coll.UpdateOne(ctx, bson.M{"userId": userID}, update)
	if err != nil {
		return fmt.Errorf("failed to set device token for user %s: %w", userID, err)
	}
	if res.MatchedCount == 0 {
		return fmt.Errorf("profile for user %s not found", userID)
	}
	return nil
}
