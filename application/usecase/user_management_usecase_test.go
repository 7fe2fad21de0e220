package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/terrapoint/terrapoint/application/port/inbound"
	"github.com/terrapoint/terrapoint/domain"
)

func newUserManagementFixture() (inbound.UserManagementUseCase, *fakeUserRepo) {
	repo := &fakeUserRepo{byUsername: map[string]*domain.User{
		"jane": {
			ID:           "u-1",
			Username:     "jane",
			Name:         "Jane",
			Email:        "jane@terrapoint.example",
			PasswordHash: "hash:s3cret",
			Role:         domain.RoleEmployee,
			Status:       domain.UserStatusActive,
		},
	}}
	return NewUserManagementUseCase(repo, fakePasswordService{}, NewSchemaValidator()), repo
}

func validCreateUserRequest() inbound.CreateUserRequest {
	return inbound.CreateUserRequest{
		Name:     "Bob Builder",
		Email:    "bob@terrapoint.example",
		Username: "bob",
		Password: "building-strong",
		MobileNo: "+91 98765 43210",
		Role:     "employee",
	}
}

func TestCreateUser(t *testing.T) {
	ctx := context.Background()

	t.Run("Creates", func(t *testing.T) {
		uc, repo := newUserManagementFixture()
		user, err := uc.CreateUser(ctx, admin, validCreateUserRequest())
		assert.NoError(t, err)
		assert.NotEmpty(t, user.ID)
		assert.Equal(t, "hash:building-strong", user.PasswordHash)
		assert.Equal(t, domain.UserStatusActive, user.Status, "status defaults to active")
		assert.NotNil(t, repo.byUsername["bob"])
	})

	t.Run("NonAdminDenied", func(t *testing.T) {
		uc, _ := newUserManagementFixture()
		_, err := uc.CreateUser(ctx, employee, validCreateUserRequest())
		assert.ErrorIs(t, err, domain.ErrPermissionDenied)
	})

	t.Run("EmptyPasswordRejected", func(t *testing.T) {
		uc, repo := newUserManagementFixture()
		req := validCreateUserRequest()
		req.Password = ""
		_, err := uc.CreateUser(ctx, admin, req)
		assert.ErrorIs(t, err, domain.ErrInvalidPayload)
		assert.Nil(t, repo.byUsername["bob"])
	})

	t.Run("ShortPasswordRejected", func(t *testing.T) {
		uc, _ := newUserManagementFixture()
		req := validCreateUserRequest()
		req.Password = "short"
		_, err := uc.CreateUser(ctx, admin, req)
		assert.ErrorIs(t, err, domain.ErrInvalidPayload)
	})

	t.Run("UnknownRoleRejected", func(t *testing.T) {
		uc, repo := newUserManagementFixture()
		req := validCreateUserRequest()
		req.Role = "superadmin"
		_, err := uc.CreateUser(ctx, admin, req)
		assert.ErrorIs(t, err, domain.ErrInvalidPayload)
		assert.Nil(t, repo.byUsername["bob"])
	})

	t.Run("BadEmailRejected", func(t *testing.T) {
		uc, _ := newUserManagementFixture()
		req := validCreateUserRequest()
		req.Email = "not-an-email"
		_, err := uc.CreateUser(ctx, admin, req)
		assert.ErrorIs(t, err, domain.ErrInvalidPayload)
	})

	t.Run("DuplicateEmailConflicts", func(t *testing.T) {
		uc, _ := newUserManagementFixture()
		req := validCreateUserRequest()
		req.Email = "jane@terrapoint.example"
		_, err := uc.CreateUser(ctx, admin, req)
		assert.ErrorIs(t, err, domain.ErrEmailExists)
	})
}

func TestUpdateUser(t *testing.T) {
	ctx := context.Background()

	t.Run("PatchesProvidedFields", func(t *testing.T) {
		uc, repo := newUserManagementFixture()
		user, err := uc.UpdateUser(ctx, admin, inbound.UpdateUserRequest{ID: "u-1", Role: "admin"})
		assert.NoError(t, err)
		assert.Equal(t, domain.RoleAdmin, user.Role)
		assert.Equal(t, "Jane", repo.byUsername["jane"].Name, "untouched fields survive")
	})

	t.Run("ShortPasswordRejected", func(t *testing.T) {
		uc, _ := newUserManagementFixture()
		_, err := uc.UpdateUser(ctx, admin, inbound.UpdateUserRequest{ID: "u-1", Password: "short"})
		assert.ErrorIs(t, err, domain.ErrInvalidPayload)
	})

	t.Run("UnknownRoleRejected", func(t *testing.T) {
		uc, repo := newUserManagementFixture()
		_, err := uc.UpdateUser(ctx, admin, inbound.UpdateUserRequest{ID: "u-1", Role: "root"})
		assert.ErrorIs(t, err, domain.ErrInvalidPayload)
		assert.Equal(t, domain.RoleEmployee, repo.byUsername["jane"].Role)
	})

	t.Run("EmailTakenConflicts", func(t *testing.T) {
		uc, repo := newUserManagementFixture()
		repo.byUsername["bob"] = &domain.User{
			ID: "u-2", Username: "bob", Email: "bob@terrapoint.example",
			Role: domain.RoleEmployee, Status: domain.UserStatusActive,
		}
		_, err := uc.UpdateUser(ctx, admin, inbound.UpdateUserRequest{ID: "u-1", Email: "bob@terrapoint.example"})
		assert.ErrorIs(t, err, domain.ErrEmailExists)
	})

	t.Run("KeepingOwnEmailIsFine", func(t *testing.T) {
		uc, _ := newUserManagementFixture()
		_, err := uc.UpdateUser(ctx, admin, inbound.UpdateUserRequest{ID: "u-1", Email: "jane@terrapoint.example", Name: "Jane D"})
		assert.NoError(t, err)
	})
}

func TestDeactivateUser(t *testing.T) {
	ctx := context.Background()
	uc, repo := newUserManagementFixture()

	assert.NoError(t, uc.DeactivateUser(ctx, admin, "u-1"))
	assert.Equal(t, domain.UserStatusInactive, repo.byUsername["jane"].Status)

	assert.ErrorIs(t, uc.DeactivateUser(ctx, employee, "u-1"), domain.ErrPermissionDenied)
	assert.ErrorIs(t, uc.DeactivateUser(ctx, admin, "missing"), domain.ErrUserNotFound)
}
