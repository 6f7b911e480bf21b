package profile

import (
	"context"
	"errors"
	"testing"

	"go.mongodb.org/mongo-driver/bson"

	"sahayata/models"
)

type memProfiles struct {
	byUser map[string]*models.Profile
}

func (m *memProfiles) GetByUserID(_ context.Context, userID string) (*models.Profile, error) {
	if p, ok := m.byUser[userID]; ok {
		copied := *p
		return &copied, nil
	}
	return nil, nil
}

func (m *memProfiles) ListByUserIDs(context.Context, []string) ([]models.Profile, error) {
	return nil, nil
}

func (m *memProfiles) Create(_ context.Context, p models.Profile) error {
	m.byUser[p.UserID] = &p
	return nil
}

func (m *memProfiles) Upsert(_ context.Context, userID string, set, insert bson.M) (*models.Profile, error) {
	p, ok := m.byUser[userID]
	if !ok {
		p = &models.Profile{UserID: userID}
		if v, ok := insert["email"].(string); ok {
			p.Email = v
		}
		if v, ok := insert["role"].(string); ok {
			p.Role = v
		}
		m.byUser[userID] = p
	}
	for k, v := range set {
		switch k {
		case "fullName":
			p.FullName = v.(string)
		case "role":
			p.Role = v.(string)
		case "isProfileComplete":
			p.IsProfileComplete = v.(bool)
		case "phoneNumber":
			p.PhoneNumber = v.(string)
		}
	}
	copied := *p
	return &copied, nil
}

func (m *memProfiles) SetFCMToken(_ context.Context, userID, token string) error {
	p, ok := m.byUser[userID]
	if !ok {
		return errors.New("not found")
	}
	p.FCMToken = token
	return nil
}

type memUsers map[string]*models.User

func (m memUsers) GetByID(_ context.Context, id string) (*models.User, error) { return m[id], nil }

func ptr[T any](v T) *T { return &v }

func TestGetOrCreate(t *testing.T) {
	repo := &memProfiles{byUser: map[string]*models.Profile{}}
	svc := NewProfileService(repo, memUsers{"u1": {ID: "u1", Email: "a@x.com", Role: models.RolePatient}})
	ctx := context.Background()

	p, err := svc.GetOrCreate(ctx, "u1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.Email != "a@x.com" || p.Role != models.RolePatient || p.IsProfileComplete {
		t.Errorf("unexpected profile %+v", p)
	}

	if _, err := svc.GetOrCreate(ctx, "ghost"); !errors.Is(err, ErrUserNotFound) {
		t.Errorf("expected ErrUserNotFound, got %v", err)
	}
}

func TestUpdate_OnlyTouchesProvidedFields(t *testing.T) {
	repo := &memProfiles{byUser: map[string]*models.Profile{
		"u1": {UserID: "u1", Email: "a@x.com", FullName: "Asha", Role: models.RoleCaretaker, PhoneNumber: "9998887776"},
	}}
	svc := NewProfileService(repo, memUsers{})

	p, err := svc.Update(context.Background(), "u1", models.ProfileUpdate{IsProfileComplete: ptr(true)})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !p.IsProfileComplete || p.FullName != "Asha" || p.PhoneNumber != "9998887776" {
		t.Errorf("unexpected profile %+v", p)
	}
}

func TestSetDeviceToken(t *testing.T) {
	repo := &memProfiles{byUser: map[string]*models.Profile{}}
	svc := NewProfileService(repo, memUsers{"u1": {ID: "u1", Email: "a@x.com"}})

	if err := svc.SetDeviceToken(context.Background(), "u1", "fcm-1"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if repo.byUser["u1"].FCMToken != "fcm-1" {
		t.Errorf("expected token to be stored")
	}
}
