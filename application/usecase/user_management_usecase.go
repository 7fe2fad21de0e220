package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/terrapoint/terrapoint/application/port/inbound"
	"github.com/terrapoint/terrapoint/application/port/outbound"
	"github.com/terrapoint/terrapoint/domain"
)

// UserManagementUseCase is admin-only account administration. It bypasses
// the approval engine: accounts are managed out-of-band of the entity
// modules.
type UserManagementUseCase struct {
	userRepository  outbound.UserRepository
	passwordService outbound.PasswordService
	schema          *SchemaValidator
}

func NewUserManagementUseCase(
	userRepo outbound.UserRepository,
	passwordService outbound.PasswordService,
	schema *SchemaValidator,
) inbound.UserManagementUseCase {
	return &UserManagementUseCase{
		userRepository:  userRepo,
		passwordService: passwordService,
		schema:          schema,
	}
}

func (uc *UserManagementUseCase) CreateUser(ctx context.Context, p domain.Principal, req inbound.CreateUserRequest) (*domain.User, error) {
	if !p.IsAdmin() {
		return nil, domain.ErrPermissionDenied
	}
	if err := uc.schema.ValidateRequest(req); err != nil {
		return nil, err
	}

	exists, err := uc.userRepository.ExistsByEmail(ctx, req.Email)
	if err != nil {
		return nil, fmt.Errorf("failed to check email: %w", err)
	}
	if exists {
		return nil, domain.ErrEmailExists
	}

	hash, err := uc.passwordService.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	status := domain.UserStatus(req.Status)
	if req.Status == "" {
		status = domain.UserStatusActive
	}

	now := time.Now().UTC()
	user := &domain.User{
		ID:           uuid.New().String(),
		Name:         req.Name,
		Email:        req.Email,
		Username:     req.Username,
		PasswordHash: hash,
		MobileNo:     req.MobileNo,
		Role:         domain.UserRole(req.Role),
		Status:       status,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.userRepository.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}
	return user, nil
}

func (uc *UserManagementUseCase) UpdateUser(ctx context.Context, p domain.Principal, req inbound.UpdateUserRequest) (*domain.User, error) {
	if !p.IsAdmin() {
		return nil, domain.ErrPermissionDenied
	}
	if err := uc.schema.ValidateRequest(req); err != nil {
		return nil, err
	}

	user, err := uc.userRepository.FindByID(ctx, req.ID)
	if err != nil {
		return nil, err
	}

	if req.Email != "" && req.Email != user.Email {
		exists, err := uc.userRepository.ExistsByEmail(ctx, req.Email)
		if err != nil {
			return nil, fmt.Errorf("failed to check email: %w", err)
		}
		if exists {
			return nil, domain.ErrEmailExists
		}
	}

	if req.Name != "" {
		user.Name = req.Name
	}
	if req.Email != "" {
		user.Email = req.Email
	}
	if req.MobileNo != "" {
		user.MobileNo = req.MobileNo
	}
	if req.Role != "" {
		user.Role = domain.UserRole(req.Role)
	}
	if req.Status != "" {
		user.Status = domain.UserStatus(req.Status)
	}
	if req.Password != "" {
		hash, err := uc.passwordService.HashPassword(req.Password)
		if err != nil {
			return nil, fmt.Errorf("failed to hash password: %w", err)
		}
		user.PasswordHash = hash
	}
	user.UpdatedAt = time.Now().UTC()

	if err := uc.userRepository.Update(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to update user: %w", err)
	}
	return user, nil
}

// DeactivateUser marks the account inactive rather than deleting the row,
// so pending-action attribution and audit history stay resolvable.
func (uc *UserManagementUseCase) DeactivateUser(ctx context.Context, p domain.Principal, id string) error {
	if !p.IsAdmin() {
		return domain.ErrPermissionDenied
	}
	user, err := uc.userRepository.FindByID(ctx, id)
	if err != nil {
		return err
	}
	user.Status = domain.UserStatusInactive
	user.UpdatedAt = time.Now().UTC()
	if err := uc.userRepository.Update(ctx, user); err != nil {
		return fmt.Errorf("failed to deactivate user: %w", err)
	}
	return nil
}

func (uc *UserManagementUseCase) GetUser(ctx context.Context, p domain.Principal, id string) (*domain.User, error) {
	if !p.IsAdmin() && p.ID != id {
		return nil, domain.ErrPermissionDenied
	}
	return uc.userRepository.FindByID(ctx, id)
}

func (uc *UserManagementUseCase) ListUsers(ctx context.Context, p domain.Principal, req inbound.ListUsersRequest) (*inbound.UserList, error) {
	if !p.IsAdmin() {
		return nil, domain.ErrPermissionDenied
	}
	page := req.Page
	if page < 1 {
		page = 1
	}
	limit := req.Limit
	if limit < 1 || limit > 100 {
		limit = 50
	}
	users, total, err := uc.userRepository.FindAll(ctx, (page-1)*limit, limit, outbound.UserFilters{
		Name:   req.Name,
		Role:   req.Role,
		Status: req.Status,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	return &inbound.UserList{Users: users, Total: total, Page: page, Limit: limit}, nil
}
