package outbound

import (
	"context"

	"github.com/terrapoint/terrapoint/domain"
)

type UserFilters struct {
	Name   string
	Role   string
	Status string
}

type UserRepository interface {
	FindByID(ctx context.Context, id string) (*domain.User, error)
	FindByUsername(ctx context.Context, username string) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	Create(ctx context.Context, user *domain.User) error
	Update(ctx context.Context, user *domain.User) error
	FindAll(ctx context.Context, offset, limit int, filters UserFilters) ([]*domain.User, int, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
}
