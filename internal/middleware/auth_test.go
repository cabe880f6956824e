package middleware_test

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"backoffice/internal/domain"
	"backoffice/internal/middleware"
	"backoffice/internal/service"
	"backoffice/mocks"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func claimsFor(role domain.UserRole) *service.Claims {
	return &service.Claims{
		RegisteredClaims: jwt.RegisteredClaims{},
		UserID:           uuid.New(),
		Email:            "user@winkel.nl",
		Role:             role,
	}
}

func TestAuthMiddleware_ValidToken(t *testing.T) {
	mockAuth := new(mocks.MockAuthService)
	claims := claimsFor(domain.RoleEmployee)
	mockAuth.On("ValidateToken", "valid-token").Return(claims, nil)

	r := gin.New()
	r.Use(middleware.AuthMiddleware(mockAuth))
	r.GET("/test", func(c *gin.Context) {
		actor, _ := middleware.GetActor(c)
		uid, _ := middleware.GetUserID(c)
		c.JSON(http.StatusOK, gin.H{
			"user_id":      uid,
			"email":        actor.Email,
			"capabilities": actor.Capabilities,
		})
	})

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/test", http.NoBody)
	req.Header.Set("Authorization", "Bearer valid-token")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		UserID       string              `json:"user_id"`
		Email        string              `json:"email"`
		Capabilities domain.Capabilities `json:"capabilities"`
	}
	_ = json.Unmarshal(w.Body.Bytes(), &resp)
	assert.Equal(t, claims.UserID.String(), resp.UserID)
	assert.Equal(t, "user@winkel.nl", resp.Email)
	assert.True(t, resp.Capabilities.ManageCatalog)
	assert.False(t, resp.Capabilities.CommitPurchases)
	mockAuth.AssertExpectations(t)
}

func TestAuthMiddleware_MissingHeader(t *testing.T) {
	mockAuth := new(mocks.MockAuthService)

	r := gin.New()
	r.Use(middleware.AuthMiddleware(mockAuth))
	r.GET("/test", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/test", http.NoBody)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	mockAuth.AssertNotCalled(t, "ValidateToken", "")
}

func TestAuthMiddleware_InvalidToken(t *testing.T) {
	mockAuth := new(mocks.MockAuthService)
	mockAuth.On("ValidateToken", "bad").Return(nil, errors.New("token expired"))

	r := gin.New()
	r.Use(middleware.AuthMiddleware(mockAuth))
	r.GET("/test", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/test", http.NoBody)
	req.Header.Set("Authorization", "Bearer bad")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "invalid or expired token")
}

func TestRequireCapability(t *testing.T) {
	tests := []struct {
		name       string
		role       domain.UserRole
		capability domain.Capability
		want       int
	}{
		{"admin commits", domain.RoleAdmin, domain.CapCommitPurchases, http.StatusOK},
		{"employee cannot commit", domain.RoleEmployee, domain.CapCommitPurchases, http.StatusForbidden},
		{"employee manages catalog", domain.RoleEmployee, domain.CapManageCatalog, http.StatusOK},
		{"employee cannot delete", domain.RoleEmployee, domain.CapDeleteRecords, http.StatusForbidden},
		{"unknown role gets nothing", "guest", domain.CapViewStats, http.StatusForbidden},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockAuth := new(mocks.MockAuthService)
			mockAuth.On("ValidateToken", "tok").Return(claimsFor(tt.role), nil)

			r := gin.New()
			r.Use(middleware.AuthMiddleware(mockAuth))
			r.GET("/test", middleware.RequireCapability(tt.capability), func(c *gin.Context) {
				c.Status(http.StatusOK)
			})

			w := httptest.NewRecorder()
			req, _ := http.NewRequest(http.MethodGet, "/test", http.NoBody)
			req.Header.Set("Authorization", "Bearer tok")
			r.ServeHTTP(w, req)

			assert.Equal(t, tt.want, w.Code)
		})
	}
}

func TestRequireCapability_NoActor(t *testing.T) {
	r := gin.New()
	r.GET("/test", middleware.RequireCapability(domain.CapViewStats), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/test", http.NoBody)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusForbidden, w.Code)
}
