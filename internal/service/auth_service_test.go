package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"backoffice/internal/config"
	"backoffice/internal/domain"
	"backoffice/internal/service"
	"backoffice/mocks"
)

func testJWTConfig() config.JWTConfig {
	return config.JWTConfig{
		Secret:             "test-secret-key-for-unit-tests",
		AccessTokenExpiry:  15 * time.Minute,
		RefreshTokenExpiry: 168 * time.Hour,
		Issuer:             "backoffice-test",
	}
}

func hashPassword(password string) string {
	hash, _ := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	return string(hash)
}

func activeUser(role domain.UserRole) *domain.User {
	return &domain.User{
		ID:           uuid.New(),
		Email:        "user@winkel.nl",
		PasswordHash: hashPassword("password123"),
		FullName:     "Test User",
		Role:         role,
		IsActive:     true,
	}
}

func TestAuthService_Login_Success(t *testing.T) {
	userRepo := new(mocks.MockUserRepo)
	svc := service.NewAuthService(userRepo, testJWTConfig(), zap.NewNop())
	user := activeUser(domain.RoleEmployee)

	userRepo.On("GetByEmail", mock.Anything, "user@winkel.nl").Return(user, nil)
	userRepo.On("UpdateLastLogin", mock.Anything, user.ID).Return(nil)

	result, err := svc.Login(context.Background(), service.LoginInput{
		Email:    "user@winkel.nl",
		Password: "password123",
	})

	require.NoError(t, err)
	assert.NotEmpty(t, result.AccessToken)
	assert.NotEmpty(t, result.RefreshToken)
	assert.True(t, result.ExpiresAt.After(time.Now()))

	claims, err := svc.ValidateToken(result.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, user.ID, claims.UserID)
	actor := claims.Actor()
	assert.True(t, actor.Can(domain.CapManageCatalog))
	assert.False(t, actor.Can(domain.CapCommitPurchases))
	userRepo.AssertExpectations(t)
}

func TestAuthService_Login_InvalidPassword(t *testing.T) {
	userRepo := new(mocks.MockUserRepo)
	svc := service.NewAuthService(userRepo, testJWTConfig(), zap.NewNop())
	user := activeUser(domain.RoleAdmin)

	userRepo.On("GetByEmail", mock.Anything, user.Email).Return(user, nil)

	_, err := svc.Login(context.Background(), service.LoginInput{Email: user.Email, Password: "wrong-password"})

	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
	userRepo.AssertNotCalled(t, "UpdateLastLogin", mock.Anything, mock.Anything)
}

func TestAuthService_Login_UnknownEmail(t *testing.T) {
	userRepo := new(mocks.MockUserRepo)
	svc := service.NewAuthService(userRepo, testJWTConfig(), zap.NewNop())

	userRepo.On("GetByEmail", mock.Anything, "nobody@winkel.nl").Return(nil, domain.ErrNotFound)

	_, err := svc.Login(context.Background(), service.LoginInput{Email: "nobody@winkel.nl", Password: "password123"})
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
}

func TestAuthService_Login_InactiveUser(t *testing.T) {
	userRepo := new(mocks.MockUserRepo)
	svc := service.NewAuthService(userRepo, testJWTConfig(), zap.NewNop())
	user := activeUser(domain.RoleAdmin)
	user.IsActive = false

	userRepo.On("GetByEmail", mock.Anything, user.Email).Return(user, nil)

	_, err := svc.Login(context.Background(), service.LoginInput{Email: user.Email, Password: "password123"})
	assert.ErrorIs(t, err, domain.ErrUserInactive)
}

func TestAuthService_RefreshToken(t *testing.T) {
	userRepo := new(mocks.MockUserRepo)
	svc := service.NewAuthService(userRepo, testJWTConfig(), zap.NewNop())
	user := activeUser(domain.RoleAdmin)

	userRepo.On("GetByEmail", mock.Anything, user.Email).Return(user, nil)
	userRepo.On("UpdateLastLogin", mock.Anything, user.ID).Return(nil)
	userRepo.On("GetByID", mock.Anything, user.ID).Return(user, nil)

	pair, err := svc.Login(context.Background(), service.LoginInput{Email: user.Email, Password: "password123"})
	require.NoError(t, err)

	refreshed, err := svc.RefreshToken(context.Background(), pair.RefreshToken)
	require.NoError(t, err)
	assert.NotEmpty(t, refreshed.AccessToken)

	_, err = svc.RefreshToken(context.Background(), pair.AccessToken)
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestAuthService_ValidateToken_RejectsRefreshAudience(t *testing.T) {
	userRepo := new(mocks.MockUserRepo)
	svc := service.NewAuthService(userRepo, testJWTConfig(), zap.NewNop())
	user := activeUser(domain.RoleAdmin)

	userRepo.On("GetByEmail", mock.Anything, user.Email).Return(user, nil)
	userRepo.On("UpdateLastLogin", mock.Anything, user.ID).Return(nil)

	pair, err := svc.Login(context.Background(), service.LoginInput{Email: user.Email, Password: "password123"})
	require.NoError(t, err)

	_, err = svc.ValidateToken(pair.RefreshToken)
	assert.Error(t, err)
	_, err = svc.ValidateToken("not-a-token")
	assert.Error(t, err)
}
