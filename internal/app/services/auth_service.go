package services

import (
	"context"
	"fmt"

	"github.com/omnalage/skill-exchange-platform/internal/app/models"
	"github.com/omnalage/skill-exchange-platform/internal/app/models/dto"
	"github.com/omnalage/skill-exchange-platform/internal/pkg/apperrors"
	"github.com/omnalage/skill-exchange-platform/internal/pkg/auth"
	"github.com/omnalage/skill-exchange-platform/internal/pkg/logger"
)

// AuthService handles account registration and token lifecycle
type AuthService interface {
	Register(ctx context.Context, req *dto.RegisterRequest) (*dto.AuthResponse, error)
	Login(ctx context.Context, req *dto.LoginRequest) (*dto.AuthResponse, error)
	RefreshToken(ctx context.Context, refreshToken string) (*dto.AuthResponse, error)
}

type authService struct {
	userStore    UserStore
	sessionStore SessionStore
	jwtService   *auth.JWTService
}

// NewAuthService creates a new authentication service
func NewAuthService(userStore UserStore, sessionStore SessionStore, jwtService *auth.JWTService) AuthService {
	return &authService{
		userStore:    userStore,
		sessionStore: sessionStore,
		jwtService:   jwtService,
	}
}

// Register creates an account and returns a fresh token pair
func (s *authService) Register(ctx context.Context, req *dto.RegisterRequest) (*dto.AuthResponse, error) {
	hashedPassword, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		Username: req.Username,
		Email:    req.Email,
		Password: hashedPassword,
		Skills:   []string{},
		Learning: []string{},
	}

	id, err := s.userStore.Create(ctx, user)
	if err != nil {
		return nil, err
	}
	user.ID = id

	logger.Info().Int64("userId", id).Str("username", user.Username).Msg("User registered")

	return s.issueTokens(ctx, user)
}

// Login verifies credentials and returns a fresh token pair
func (s *authService) Login(ctx context.Context, req *dto.LoginRequest) (*dto.AuthResponse, error) {
	user, err := s.userStore.GetByEmail(ctx, req.Email)
	if err != nil {
		return nil, err
	}

	if !auth.CheckPassword(user.Password, req.Password) {
		return nil, apperrors.ErrInvalidCredentials
	}

	return s.issueTokens(ctx, user)
}

// RefreshToken rotates a refresh token into a new token pair. The presented
// token is consumed whether or not rotation succeeds downstream.
func (s *authService) RefreshToken(ctx context.Context, refreshToken string) (*dto.AuthResponse, error) {
	userID, err := s.sessionStore.Get(ctx, refreshToken)
	if err != nil {
		return nil, err
	}

	if err := s.sessionStore.Delete(ctx, refreshToken); err != nil {
		logger.Warn().Err(err).Msg("Failed to delete consumed refresh token")
	}

	user, err := s.userStore.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	return s.issueTokens(ctx, user)
}

func (s *authService) issueTokens(ctx context.Context, user *models.User) (*dto.AuthResponse, error) {
	accessToken, refreshToken, expiresIn, err := s.jwtService.GenerateTokenPair(user)
	if err != nil {
		return nil, fmt.Errorf("failed to generate tokens: %w", err)
	}

	if err := s.sessionStore.Store(ctx, refreshToken, user.ID, s.jwtService.RefreshTokenExpiry()); err != nil {
		return nil, fmt.Errorf("failed to store session: %w", err)
	}

	return &dto.AuthResponse{
		Token:        "Bearer " + accessToken,
		RefreshToken: refreshToken,
		ID:           user.ID,
		ExpiresIn:    expiresIn,
	}, nil
}
