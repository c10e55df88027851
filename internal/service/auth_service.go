package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/dkenzh/buildops/internal/auth"
	"github.com/dkenzh/buildops/internal/model"
	"github.com/dkenzh/buildops/internal/repository"
)

type AuthService struct {
	users  *repository.UserRepository
	tokens *auth.TokenManager
}

func NewAuthService(users *repository.UserRepository, tokens *auth.TokenManager) *AuthService {
	return &AuthService{users: users, tokens: tokens}
}

type RegisterInput struct {
	Name     string
	Email    string
	Password string
	Role     model.Role
}

type AuthResult struct {
	Token string      `json:"token"`
	User  *model.User `json:"user"`
}

func (s *AuthService) Register(ctx context.Context, input RegisterInput) (*AuthResult, error) {
	input.Name = strings.TrimSpace(input.Name)
	input.Email = strings.TrimSpace(input.Email)
	if input.Name == "" || input.Email == "" {
		return nil, fmt.Errorf("%w: name and email are required", ErrInvalidInput)
	}
	if len(input.Password) < 6 {
		return nil, fmt.Errorf("%w: password must be at least 6 characters", ErrInvalidInput)
	}
	if input.Role == "" {
		input.Role = model.RoleUser
	}
	switch input.Role {
	case model.RoleAdmin, model.RoleManager, model.RoleUser:
	default:
		return nil, fmt.Errorf("%w: unknown role %q", ErrInvalidInput, input.Role)
	}

	exists, err := s.users.ExistsByEmail(ctx, input.Email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, fmt.Errorf("%w: email already registered", ErrConflict)
	}

	hash, err := auth.HashPassword(input.Password)
	if err != nil {
		return nil, err
	}
	user := &model.User{
		Name:         input.Name,
		Email:        input.Email,
		PasswordHash: hash,
		Role:         input.Role,
		IsActive:     true,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}
	return s.issue(user)
}

func (s *AuthService) Login(ctx context.Context, email, password string) (*AuthResult, error) {
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		// Same error for unknown email and bad password.
		return nil, fmt.Errorf("%w: invalid credentials", ErrUnauthorized)
	}
	if !user.IsActive || !auth.CheckPassword(user.PasswordHash, password) {
		return nil, fmt.Errorf("%w: invalid credentials", ErrUnauthorized)
	}
	return s.issue(user)
}

func (s *AuthService) Me(ctx context.Context, principal model.Principal) (*model.User, error) {
	user, err := s.users.GetByID(ctx, principal.UserID)
	if err != nil {
		return nil, translate(err)
	}
	return user, nil
}

func (s *AuthService) ListUsers(ctx context.Context, principal model.Principal) ([]model.User, error) {
	if !principal.IsElevated() {
		return nil, ErrPermissionDenied
	}
	return s.users.List(ctx)
}

// SetUserActive toggles account access. Deactivated users keep their
// records but can no longer log in.
func (s *AuthService) SetUserActive(ctx context.Context, principal model.Principal, id uuid.UUID, active bool) (*model.User, error) {
	if !principal.IsAdmin() {
		return nil, ErrPermissionDenied
	}
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		return nil, translate(err)
	}
	user.IsActive = active
	if err := s.users.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *AuthService) issue(user *model.User) (*AuthResult, error) {
	token, err := s.tokens.Issue(user)
	if err != nil {
		return nil, err
	}
	return &AuthResult{Token: token, User: user}, nil
}
