package user

import (
	"context"

	userRepo "sahayata/database/repository/user"
	"sahayata/models"
)

type UserService interface {
	Signup(ctx context.Context, req models.SignupRequest) (*AuthResponse, error)
	Login(ctx context.Context, req models.LoginRequest) (*AuthResponse, error)
	GetUserByID(ctx context.Context, userID string) (*models.User, error)
}

// TokenGenerator issues a session token for a user.
type TokenGenerator interface {
	GenerateToken(subject, email string) (string, error)
}

// DefaultUserService is the production implementation.
type DefaultUserService struct {
	Repo   userRepo.UserRepository
	Tokens TokenGenerator
}

func NewUserService(repo userRepo.UserRepository, tokens TokenGenerator) *DefaultUserService {
	return &DefaultUserService{Repo: repo, Tokens: tokens}
}

// AuthResponse contains the session token and the public user fields.
type AuthResponse struct {
	Token string   `json:"token"`
	User  AuthUser `json:"user"`
}

type AuthUser struct {
	ID       string `json:"id"`
	Email    string `json:"email"`
	FullName string `json:"fullName,omitempty"`
	Role     string `json:"role"`
}

func newAuthUser(u *models.User) AuthUser {
	return AuthUser{ID: u.ID, Email: u.Email, FullName: u.FullName, Role: u.Role}
}
