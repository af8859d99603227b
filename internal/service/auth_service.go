package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"merchant-be/internal/common"
	"merchant-be/internal/entities"
	"merchant-be/internal/models"
	"merchant-be/internal/repository"
)

// PasswordHasher hashes and verifies user passwords
type PasswordHasher interface {
	Hash(plain string) (string, error)
	Verify(hash, plain string) (bool, error)
}

// TokenService issues and verifies session tokens
type TokenService interface {
	GenerateToken(userID string) (string, error)
	ValidateToken(token string) (string, error)
	TTL() time.Duration
}

// AuthService defines the interface for authentication business logic
type AuthService interface {
	Register(ctx context.Context, req *models.RegisterRequest) (*models.AuthResponse, error)
	Login(ctx context.Context, req *models.LoginRequest) (*models.AuthResponse, error)
	GetSession(ctx context.Context, token string) (*entities.User, error)
	SessionTTL() time.Duration
}

type authService struct {
	userRepo repository.UserRepository
	hasher   PasswordHasher
	tokens   TokenService
	now      func() time.Time
}

// NewAuthService creates a new auth service
func NewAuthService(userRepo repository.UserRepository, hasher PasswordHasher, tokens TokenService) AuthService {
	return &authService{
		userRepo: userRepo,
		hasher:   hasher,
		tokens:   tokens,
		now:      time.Now,
	}
}

// Register creates a new user account and signs it in
func (s *authService) Register(ctx context.Context, req *models.RegisterRequest) (*models.AuthResponse, error) {
	in := models.RegisterRequest{
		Name:     strings.TrimSpace(req.Name),
		Email:    strings.TrimSpace(req.Email),
		Password: strings.TrimSpace(req.Password),
	}
	if err := validateStruct(&in); err != nil {
		return nil, err
	}

	// Check if user already exists. The unique index still guards concurrent registrations.
	_, err := s.userRepo.FindByEmail(ctx, in.Email)
	if err == nil {
		return nil, fmt.Errorf("user with this email: %w", common.ErrConflict)
	}
	if !errors.Is(err, common.ErrNotFound) {
		return nil, err
	}

	hash, err := s.hasher.Hash(in.Password)
	if err != nil {
		return nil, err
	}

	user, err := s.userRepo.Create(ctx, &entities.User{
		Name:         in.Name,
		Email:        in.Email,
		PasswordHash: hash,
		CreatedAt:    s.now().UTC(),
	})
	if err != nil {
		if errors.Is(err, common.ErrConflict) {
			return nil, fmt.Errorf("user with this email: %w", common.ErrConflict)
		}
		return nil, err
	}

	return s.issue(user)
}

// Login authenticates a user and returns the user with a fresh token
func (s *authService) Login(ctx context.Context, req *models.LoginRequest) (*models.AuthResponse, error) {
	in := models.LoginRequest{
		Email:    strings.TrimSpace(req.Email),
		Password: strings.TrimSpace(req.Password),
	}
	if err := validateStruct(&in); err != nil {
		return nil, err
	}

	user, err := s.userRepo.FindByEmail(ctx, in.Email)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, common.ErrInvalidCredentials
		}
		return nil, err
	}

	ok, err := s.hasher.Verify(user.PasswordHash, in.Password)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, common.ErrInvalidCredentials
	}

	return s.issue(user)
}

// GetSession resolves the user a token was issued for
func (s *authService) GetSession(ctx context.Context, token string) (*entities.User, error) {
	if token == "" {
		return nil, fmt.Errorf("no token provided: %w", common.ErrUnauthorized)
	}

	userID, err := s.tokens.ValidateToken(token)
	if err != nil {
		return nil, fmt.Errorf("invalid token: %w", common.ErrUnauthorized)
	}

	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, fmt.Errorf("invalid token: %w", common.ErrUnauthorized)
		}
		return nil, err
	}
	return user, nil
}

// SessionTTL is the lifetime of issued tokens, used for the session cookie
func (s *authService) SessionTTL() time.Duration {
	return s.tokens.TTL()
}

func (s *authService) issue(user *entities.User) (*models.AuthResponse, error) {
	token, err := s.tokens.GenerateToken(user.ID.Hex())
	if err != nil {
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}

	out := *user
	out.PasswordHash = ""
	return &models.AuthResponse{Token: token, User: &out}, nil
}
