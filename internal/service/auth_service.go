package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"fleet-service/internal/auth"
	"fleet-service/internal/model"
	"fleet-service/internal/repository"
)

type AuthService struct {
	users  *repository.UserRepository
	tokens *auth.Manager
}

func NewAuthService(users *repository.UserRepository, tokens *auth.Manager) *AuthService {
	return &AuthService{users: users, tokens: tokens}
}

type RegisterInput struct {
	Email    string
	Password string
	Role     model.UserRole
}

func (s *AuthService) Register(ctx context.Context, input RegisterInput) (auth.TokenPair, error) {
	email := strings.ToLower(strings.TrimSpace(input.Email))
	if email == "" {
		return auth.TokenPair{}, fmt.Errorf("%w: email is required", ErrInvalidInput)
	}
	if len(input.Password) < 8 {
		return auth.TokenPair{}, fmt.Errorf("%w: password must be at least 8 characters", ErrInvalidInput)
	}
	role := input.Role
	if role == "" {
		role = model.UserRoleDispatcher
	}
	if !role.Valid() {
		return auth.TokenPair{}, fmt.Errorf("%w: unknown role %q", ErrInvalidInput, string(input.Role))
	}

	existing, err := s.users.GetByEmail(ctx, email)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return auth.TokenPair{}, err
	}
	if existing != nil {
		return auth.TokenPair{}, fmt.Errorf("%w: email already in use", ErrConflict)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return auth.TokenPair{}, err
	}

	user := &model.User{
		Email:        email,
		PasswordHash: string(hash),
		Role:         role,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return auth.TokenPair{}, err
	}

	return s.tokens.IssuePair(user)
}

func (s *AuthService) Login(ctx context.Context, email, password string) (auth.TokenPair, error) {
	user, err := s.users.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return auth.TokenPair{}, fmt.Errorf("%w: invalid credentials", ErrUnauthorized)
		}
		return auth.TokenPair{}, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return auth.TokenPair{}, fmt.Errorf("%w: invalid credentials", ErrUnauthorized)
	}

	return s.tokens.IssuePair(user)
}

func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (auth.TokenPair, error) {
	claims, err := s.tokens.ParseRefresh(refreshToken)
	if err != nil {
		return auth.TokenPair{}, fmt.Errorf("%w: invalid refresh token", ErrUnauthorized)
	}

	user, err := s.users.GetByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return auth.TokenPair{}, fmt.Errorf("%w: user no longer exists", ErrUnauthorized)
		}
		return auth.TokenPair{}, err
	}

	return s.tokens.IssuePair(user)
}

func (s *AuthService) Me(ctx context.Context, userID uuid.UUID) (*model.User, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: user %s", ErrNotFound, userID)
		}
		return nil, err
	}
	return user, nil
}
