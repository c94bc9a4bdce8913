package services

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/omnalage/skill-exchange-platform/internal/app/models"
	"github.com/omnalage/skill-exchange-platform/internal/app/models/dto"
	"github.com/omnalage/skill-exchange-platform/internal/pkg/apperrors"
	"github.com/omnalage/skill-exchange-platform/internal/pkg/auth"
)

func newTestJWTService() *auth.JWTService {
	return auth.NewJWTService(auth.JWTConfig{
		SecretKey:       "test-secret",
		AccessTokenExp:  time.Hour,
		RefreshTokenExp: 24 * time.Hour,
		TokenIssuer:     "skill-exchange-test",
	})
}

func TestRegisterAndLogin(t *testing.T) {
	userStore := &fakeUserStore{users: map[int64]*models.User{}}
	sessionStore := &fakeSessionStore{}
	service := NewAuthService(userStore, sessionStore, newTestJWTService())

	registered, err := service.Register(context.Background(), &dto.RegisterRequest{
		Username: "ada",
		Email:    "ada@example.com",
		Password: "correct horse",
	})
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(registered.Token, "Bearer "))
	assert.NotEmpty(t, registered.RefreshToken)
	assert.Equal(t, int64(1), registered.ID)

	// Stored password must be hashed
	stored := userStore.users[1]
	assert.NotEqual(t, "correct horse", stored.Password)

	loggedIn, err := service.Login(context.Background(), &dto.LoginRequest{
		Email:    "ada@example.com",
		Password: "correct horse",
	})
	require.NoError(t, err)
	assert.Equal(t, registered.ID, loggedIn.ID)
}

func TestLogin_WrongPassword(t *testing.T) {
	userStore := &fakeUserStore{users: map[int64]*models.User{}}
	service := NewAuthService(userStore, &fakeSessionStore{}, newTestJWTService())

	_, err := service.Register(context.Background(), &dto.RegisterRequest{
		Username: "ada", Email: "ada@example.com", Password: "correct horse",
	})
	require.NoError(t, err)

	_, err = service.Login(context.Background(), &dto.LoginRequest{
		Email: "ada@example.com", Password: "wrong",
	})
	assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials)
}

func TestLogin_UnknownEmail(t *testing.T) {
	service := NewAuthService(&fakeUserStore{}, &fakeSessionStore{}, newTestJWTService())

	_, err := service.Login(context.Background(), &dto.LoginRequest{
		Email: "nobody@example.com", Password: "whatever",
	})
	assert.ErrorIs(t, err, apperrors.ErrUserNotFound)
}

func TestRegister_DuplicateEmail(t *testing.T) {
	userStore := &fakeUserStore{users: map[int64]*models.User{}}
	service := NewAuthService(userStore, &fakeSessionStore{}, newTestJWTService())

	_, err := service.Register(context.Background(), &dto.RegisterRequest{
		Username: "ada", Email: "ada@example.com", Password: "correct horse",
	})
	require.NoError(t, err)

	_, err = service.Register(context.Background(), &dto.RegisterRequest{
		Username: "other", Email: "ada@example.com", Password: "correct horse",
	})
	assert.ErrorIs(t, err, apperrors.ErrEmailAlreadyExists)
}

func TestRefreshToken_RotatesSession(t *testing.T) {
	userStore := &fakeUserStore{users: map[int64]*models.User{}}
	sessionStore := &fakeSessionStore{}
	service := NewAuthService(userStore, sessionStore, newTestJWTService())

	registered, err := service.Register(context.Background(), &dto.RegisterRequest{
		Username: "ada", Email: "ada@example.com", Password: "correct horse",
	})
	require.NoError(t, err)

	refreshed, err := service.RefreshToken(context.Background(), registered.RefreshToken)
	require.NoError(t, err)
	assert.Equal(t, registered.ID, refreshed.ID)
	assert.NotEqual(t, registered.RefreshToken, refreshed.RefreshToken)

	// The consumed token is gone
	_, err = service.RefreshToken(context.Background(), registered.RefreshToken)
	assert.ErrorIs(t, err, apperrors.ErrTokenNotFound)
}
