package inbound

import (
	"context"

	"github.com/terrapoint/terrapoint/domain"
)

type CreateUserRequest struct {
	Name     string `json:"name" validate:"required,min=2,max=255"`
	Email    string `json:"email" validate:"required,email"`
	Username string `json:"username" validate:"required,min=3,max=64"`
	Password string `json:"password" validate:"required,min=8"`
	MobileNo string `json:"mobile_no" validate:"required"`
	Role     string `json:"role" validate:"required,oneof=admin employee"`
	Status   string `json:"status,omitempty" validate:"omitempty,oneof=active inactive pending"`
}

type UpdateUserRequest struct {
	ID       string `json:"-"`
	Name     string `json:"name,omitempty" validate:"omitempty,min=2,max=255"`
	Email    string `json:"email,omitempty" validate:"omitempty,email"`
	MobileNo string `json:"mobile_no,omitempty"`
	Password string `json:"password,omitempty" validate:"omitempty,min=8"`
	Role     string `json:"role,omitempty" validate:"omitempty,oneof=admin employee"`
	Status   string `json:"status,omitempty" validate:"omitempty,oneof=active inactive pending"`
}

type ListUsersRequest struct {
	Page   int    `json:"page"`
	Limit  int    `json:"limit"`
	Name   string `json:"name,omitempty"`
	Role   string `json:"role,omitempty"`
	Status string `json:"status,omitempty"`
}

type UserList struct {
	Users []*domain.User `json:"data"`
	Total int            `json:"total"`
	Page  int            `json:"page"`
	Limit int            `json:"limit"`
}

// UserManagementUseCase is admin-only CRUD over user accounts. Users are
// never routed through the approval engine.
type UserManagementUseCase interface {
	CreateUser(ctx context.Context, p domain.Principal, req CreateUserRequest) (*domain.User, error)
	UpdateUser(ctx context.Context, p domain.Principal, req UpdateUserRequest) (*domain.User, error)
	DeactivateUser(ctx context.Context, p domain.Principal, id string) error
	GetUser(ctx context.Context, p domain.Principal, id string) (*domain.User, error)
	ListUsers(ctx context.Context, p domain.Principal, req ListUsersRequest) (*UserList, error)
}
