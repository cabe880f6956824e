package handler_test

import (
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"backoffice/internal/domain"
	"backoffice/internal/handler"
	"backoffice/internal/service"
	"backoffice/mocks"
)

func newAuthHandler() (*handler.AuthHandler, *mocks.MockAuthService, *mocks.MockUserService) {
	authSvc := new(mocks.MockAuthService)
	userSvc := new(mocks.MockUserService)
	return handler.NewAuthHandler(authSvc, userSvc), authSvc, userSvc
}

func TestAuthHandler_Login(t *testing.T) {
	h, authSvc, _ := newAuthHandler()
	input := service.LoginInput{Email: "admin@example.nl", Password: "password123"}
	authSvc.On("Login", anyCtx, input).Return(&service.TokenPair{
		AccessToken:  "access",
		RefreshToken: "refresh",
		ExpiresAt:    time.Now().Add(15 * time.Minute),
	}, nil)

	c, w := newTestContext(http.MethodPost, "/api/v1/auth/login", input)

	h.Login(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "access", dataMap(t, decode(t, w))["access_token"])
	authSvc.AssertExpectations(t)
}

func TestAuthHandler_Login_InvalidCredentials(t *testing.T) {
	h, authSvc, _ := newAuthHandler()
	authSvc.On("Login", anyCtx, service.LoginInput{Email: "admin@example.nl", Password: "wrongpass"}).
		Return(nil, domain.ErrInvalidCredentials)

	c, w := newTestContext(http.MethodPost, "/api/v1/auth/login", map[string]string{
		"email":    "admin@example.nl",
		"password": "wrongpass",
	})

	h.Login(c)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "INVALID_CREDENTIALS", decode(t, w).Error.Code)
}

func TestAuthHandler_Login_BadEmail(t *testing.T) {
	h, _, _ := newAuthHandler()

	c, w := newTestContext(http.MethodPost, "/api/v1/auth/login", map[string]string{
		"email":    "not-an-email",
		"password": "password123",
	})

	h.Login(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAuthHandler_Me_ReturnsCapabilities(t *testing.T) {
	h, _, userSvc := newAuthHandler()
	actor := employeeActor()
	userSvc.On("GetByID", anyCtx, actor.UserID).Return(&domain.User{ID: actor.UserID, Email: actor.Email}, nil)

	c, w := newTestContext(http.MethodGet, "/api/v1/auth/me", nil)
	setActor(c, actor)

	h.Me(c)

	assert.Equal(t, http.StatusOK, w.Code)
	data := dataMap(t, decode(t, w))
	caps, ok := data["capabilities"].(map[string]interface{})
	assert.True(t, ok)
	assert.Equal(t, true, caps["manage_catalog"])
	assert.Equal(t, false, caps["commit_purchases"])
	assert.Equal(t, false, caps["manage_users"])
}

func TestAuthHandler_Me_NoAuth(t *testing.T) {
	h, _, _ := newAuthHandler()

	c, w := newTestContext(http.MethodGet, "/api/v1/auth/me", nil)

	h.Me(c)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
