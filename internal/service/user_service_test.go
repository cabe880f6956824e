package service_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"backoffice/internal/domain"
	"backoffice/internal/service"
	"backoffice/mocks"
)

func TestUserService_Create(t *testing.T) {
	repo := new(mocks.MockUserRepo)
	svc := service.NewUserService(repo, zap.NewNop())

	repo.On("Create", mock.Anything, mock.MatchedBy(func(u *domain.User) bool {
		return u.Email == "new@winkel.nl" && u.IsActive &&
			bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte("password123")) == nil
	})).Return(nil)

	user, err := svc.Create(context.Background(), service.CreateUserInput{
		Email:    " new@winkel.nl ",
		Password: "password123",
		FullName: "New User",
		Role:     domain.RoleEmployee,
	})

	require.NoError(t, err)
	assert.Equal(t, domain.RoleEmployee, user.Role)
	repo.AssertExpectations(t)
}

func TestUserService_Create_InvalidRole(t *testing.T) {
	repo := new(mocks.MockUserRepo)
	svc := service.NewUserService(repo, zap.NewNop())

	_, err := svc.Create(context.Background(), service.CreateUserInput{
		Email: "x@winkel.nl", Password: "password123", FullName: "X", Role: "owner",
	})
	assert.ErrorIs(t, err, domain.ErrInvalidRole)
}

func TestUserService_Update_SelfWithoutManageUsers(t *testing.T) {
	repo := new(mocks.MockUserRepo)
	svc := service.NewUserService(repo, zap.NewNop())
	actor := employeeActor()
	user := &domain.User{ID: actor.UserID, Email: actor.Email, FullName: "Old", Role: domain.RoleEmployee, IsActive: true}

	repo.On("GetByID", mock.Anything, actor.UserID).Return(user, nil)
	repo.On("Update", mock.Anything, user).Return(nil)

	out, err := svc.Update(context.Background(), actor, actor.UserID, service.UpdateUserInput{FullName: ptr("New")})
	require.NoError(t, err)
	assert.Equal(t, "New", out.FullName)

	_, err = svc.Update(context.Background(), actor, actor.UserID, service.UpdateUserInput{Role: ptr(domain.RoleAdmin)})
	assert.ErrorIs(t, err, domain.ErrForbidden)

	_, err = svc.Update(context.Background(), actor, uuid.New(), service.UpdateUserInput{FullName: ptr("Other")})
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

func TestUserService_Update_ManagerChangesRole(t *testing.T) {
	repo := new(mocks.MockUserRepo)
	svc := service.NewUserService(repo, zap.NewNop())
	target := &domain.User{ID: uuid.New(), Role: domain.RoleEmployee, IsActive: true}

	repo.On("GetByID", mock.Anything, target.ID).Return(target, nil)
	repo.On("Update", mock.Anything, target).Return(nil)

	out, err := svc.Update(context.Background(), adminActor(), target.ID, service.UpdateUserInput{
		Role:     ptr(domain.RoleAdmin),
		IsActive: ptr(false),
	})

	require.NoError(t, err)
	assert.Equal(t, domain.RoleAdmin, out.Role)
	assert.False(t, out.IsActive)
}

func TestUserService_Delete_NotSelf(t *testing.T) {
	repo := new(mocks.MockUserRepo)
	svc := service.NewUserService(repo, zap.NewNop())
	actor := adminActor()

	err := svc.Delete(context.Background(), actor, actor.UserID)
	assert.ErrorIs(t, err, domain.ErrForbidden)

	other := uuid.New()
	repo.On("Delete", mock.Anything, other).Return(nil)
	assert.NoError(t, svc.Delete(context.Background(), actor, other))
}
