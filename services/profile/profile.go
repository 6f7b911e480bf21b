package profile

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"

	profileRepo "sahayata/database/repository/profile"
	"sahayata/models"
)

var ErrUserNotFound = errors.New("user not found")

// UserLookup is the part of the user repository the profile service needs.
type UserLookup interface {
	GetByID(ctx context.Context, id string) (*models.User, error)
}

type ProfileService interface {
	GetOrCreate(ctx context.Context, userID string) (*models.Profile, error)
	Update(ctx context.Context, userID string, update models.ProfileUpdate) (*models.Profile, error)
	SetDeviceToken(ctx context.Context, userID, token string) error
}

type DefaultProfileService struct {
	Repo  profileRepo.ProfileRepository
	Users UserLookup
}

func NewProfileService(repo profileRepo.ProfileRepository, users UserLookup) *DefaultProfileService {
	return &DefaultProfileService{Repo: repo, Users: users}
}

// GetOrCreate returns the user's profile, creating an incomplete one from the
// account details on first access.
func (s *DefaultProfileService) GetOrCreate(ctx context.Context, userID string) (*models.Profile, error) {
	profile, err := s.Repo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if profile != nil {
		return profile, nil
	}

	user, err := s.Users.GetByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch user: %w", err)
	}
	if user == nil {
		return nil, ErrUserNotFound
	}

	created := models.Profile{
		UserID:   userID,
		Email:    user.Email,
		FullName: user.FullName,
		Role:     roleOrDefault(user.Role),
	}
	if err := s.Repo.Create(ctx, created); err != nil {
		// Lost a race with a concurrent first access.
		if again, getErr := s.Repo.GetByUserID(ctx, userID); getErr == nil && again != nil {
			return again, nil
		}
		return nil, err
	}
	return s.Repo.GetByUserID(ctx, userID)
}

func (s *DefaultProfileService) Update(ctx context.Context, userID string, update models.ProfileUpdate) (*models.Profile, error) {
	set := bson.M{}
	if update.FullName != nil {
		set["fullName"] = *update.FullName
	}
	if update.Role != nil {
		set["role"] = *update.Role
	}
	if update.IsProfileComplete != nil {
		set["isProfileComplete"] = *update.IsProfileComplete
	}
	if update.PhoneNumber != nil {
		set["phoneNumber"] = *update.PhoneNumber
	}

	insert := bson.M{"userId": userID, "role": models.RoleCaretaker, "isProfileComplete": false}
	user, err := s.Users.GetByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch user: %w", err)
	}
	if user != nil {
		insert["email"] = user.Email
		insert["role"] = roleOrDefault(user.Role)
	}
	return s.Repo.Upsert(ctx, userID, set, insert)
}

// SetDeviceToken stores the FCM registration token used for push reminders.
func (s *DefaultProfileService) SetDeviceToken(ctx context.Context, userID, token string) error {
	if _, err := s.GetOrCreate(ctx, userID); err != nil {
		return err
	}
	return s.Repo.SetFCMToken(ctx, userID, token)
}

func roleOrDefault(role string) string {
	if role == "" {
		return models.RoleCaretaker
	}
	return role
}
