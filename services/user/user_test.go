package user

import (
	"context"
	"errors"
	"testing"

	userRepo "sahayata/database/repository/user"
	"sahayata/models"
)

type memUsers struct {
	byEmail map[string]*models.User
}

func newMemUsers() *memUsers { return &memUsers{byEmail: map[string]*models.User{}} }

func (m *memUsers) GetByID(_ context.Context, id string) (*models.User, error) {
	for _, u := range m.byEmail {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, nil
}

func (m *memUsers) GetByEmail(_ context.Context, email string) (*models.User, error) {
	return m.byEmail[email], nil
}

func (m *memUsers) Create(_ context.Context, u *models.User) error {
	if _, ok := m.byEmail[u.Email]; ok {
		return userRepo.ErrDuplicateEmail
	}
	m.byEmail[u.Email] = u
	return nil
}

type fixedTokens struct{}

func (fixedTokens) GenerateToken(subject, _ string) (string, error) { return "token-" + subject, nil }

func TestSignupAndLogin(t *testing.T) {
	repo := newMemUsers()
	svc := NewUserService(repo, fixedTokens{})
	ctx := context.Background()

	res, err := svc.Signup(ctx, models.SignupRequest{Email: "  Asha@Example.com ", Password: "pw", FullName: "Asha"})
	if err != nil {
		t.Fatalf("signup: %v", err)
	}
	if res.User.Email != "asha@example.com" || res.User.Role != models.RoleCaretaker {
		t.Errorf("unexpected user %+v", res.User)
	}
	if res.Token != "token-"+res.User.ID {
		t.Errorf("unexpected token %q", res.Token)
	}
	if repo.byEmail["asha@example.com"].PasswordHash == "pw" {
		t.Errorf("password stored in clear text")
	}

	if _, err := svc.Signup(ctx, models.SignupRequest{Email: "asha@example.com", Password: "x"}); !errors.Is(err, ErrEmailTaken) {
		t.Errorf("expected ErrEmailTaken, got %v", err)
	}

	login, err := svc.Login(ctx, models.LoginRequest{Email: "ASHA@example.com", Password: "pw"})
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if login.User.ID != res.User.ID {
		t.Errorf("expected the same user, got %+v", login.User)
	}
}

func TestLogin_InvalidCredentials(t *testing.T) {
	repo := newMemUsers()
	svc := NewUserService(repo, fixedTokens{})
	ctx := context.Background()
	if _, err := svc.Signup(ctx, models.SignupRequest{Email: "a@x.com", Password: "right"}); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name string
		req  models.LoginRequest
	}{
		{name: "wrong password", req: models.LoginRequest{Email: "a@x.com", Password: "wrong"}},
		{name: "unknown email", req: models.LoginRequest{Email: "b@x.com", Password: "right"}},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			if _, err := svc.Login(ctx, test.req); !errors.Is(err, ErrInvalidCredentials) {
				t.Errorf("expected ErrInvalidCredentials, got %v", err)
			}
		})
	}
}

func TestGetUserByID_NotFound(t *testing.T) {
	svc := NewUserService(newMemUsers(), fixedTokens{})
	if _, err := svc.GetUserByID(context.Background(), "nope"); !errors.Is(err, ErrUserNotFound) {
		t.Errorf("expected ErrUserNotFound, got %v", err)
	}
}
