package usecase

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/terrapoint/terrapoint/application/port/inbound"
	"github.com/terrapoint/terrapoint/application/port/outbound"
	"github.com/terrapoint/terrapoint/domain"
	"github.com/terrapoint/terrapoint/infrastructure/service/logger"
)

type fakeUserRepo struct {
	byUsername map[string]*domain.User
}

func (r *fakeUserRepo) FindByID(ctx context.Context, id string) (*domain.User, error) {
	for _, u := range r.byUsername {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *fakeUserRepo) FindByUsername(ctx context.Context, username string) (*domain.User, error) {
	u, ok := r.byUsername[username]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return u, nil
}

func (r *fakeUserRepo) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	for _, u := range r.byUsername {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *fakeUserRepo) Create(ctx context.Context, user *domain.User) error {
	r.byUsername[user.Username] = user
	return nil
}

func (r *fakeUserRepo) Update(ctx context.Context, user *domain.User) error {
	r.byUsername[user.Username] = user
	return nil
}

func (r *fakeUserRepo) FindAll(ctx context.Context, offset, limit int, filters outbound.UserFilters) ([]*domain.User, int, error) {
	var out []*domain.User
	for _, u := range r.byUsername {
		out = append(out, u)
	}
	return out, len(out), nil
}

func (r *fakeUserRepo) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	_, err := r.FindByEmail(ctx, email)
	return err == nil, nil
}

type fakeTokenService struct{}

func (fakeTokenService) GenerateAccessToken(claims outbound.TokenClaims) (string, error) {
	return "token-" + claims.UserID, nil
}

func (fakeTokenService) ValidateAccessToken(token string) (*outbound.TokenClaims, error) {
	return nil, domain.ErrUnauthorized
}

type fakePasswordService struct{}

func (fakePasswordService) HashPassword(password string) (string, error) {
	return "hash:" + password, nil
}

func (fakePasswordService) ComparePassword(hashedPassword, password string) error {
	if hashedPassword != "hash:"+password {
		return domain.ErrInvalidCredentials
	}
	return nil
}

type fakeLimiter struct {
	counts map[string]int
	limit  int
}

func (l *fakeLimiter) CheckLimit(ctx context.Context, key string, limit int, window time.Duration) (bool, error) {
	return l.counts[key] < limit, nil
}

func (l *fakeLimiter) Increment(ctx context.Context, key string, window time.Duration) error {
	l.counts[key]++
	return nil
}

func (l *fakeLimiter) Reset(ctx context.Context, key string) error {
	delete(l.counts, key)
	return nil
}

type nopLogger struct{}

func (nopLogger) Info(ctx context.Context, message string, fields map[string]interface{})             {}
func (nopLogger) Error(ctx context.Context, message string, err error, fields map[string]interface{}) {}
func (nopLogger) Warn(ctx context.Context, message string, fields map[string]interface{})             {}
func (nopLogger) Debug(ctx context.Context, message string, fields map[string]interface{})            {}
func (l nopLogger) WithFields(fields map[string]interface{}) logger.Logger                            { return l }

func newAuthFixture() (inbound.AuthUseCase, *fakeUserRepo, *fakeLimiter) {
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
		"ghost": {
			ID:           "u-2",
			Username:     "ghost",
			PasswordHash: "hash:s3cret",
			Role:         domain.RoleEmployee,
			Status:       domain.UserStatusInactive,
		},
	}}
	limiter := &fakeLimiter{counts: make(map[string]int)}
	uc := NewAuthUseCase(repo, fakeTokenService{}, fakePasswordService{}, limiter, nopLogger{})
	return uc, repo, limiter
}

func TestLogin(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		uc, _, _ := newAuthFixture()
		resp, err := uc.Login(ctx, inbound.LoginRequest{Username: "jane", Password: "s3cret", ClientIP: "10.0.0.1"})
		assert.NoError(t, err)
		assert.Equal(t, "token-u-1", resp.AccessToken)
		assert.Equal(t, "bearer", resp.TokenType)
		assert.Equal(t, "u-1", resp.User.ID)
	})

	t.Run("WrongPassword", func(t *testing.T) {
		uc, _, limiter := newAuthFixture()
		_, err := uc.Login(ctx, inbound.LoginRequest{Username: "jane", Password: "nope", ClientIP: "10.0.0.1"})
		assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
		assert.Equal(t, 1, limiter.counts["login:user:jane"], "failures must count against the limit")
	})

	t.Run("UnknownUserSameError", func(t *testing.T) {
		uc, _, _ := newAuthFixture()
		_, err := uc.Login(ctx, inbound.LoginRequest{Username: "nobody", Password: "s3cret"})
		assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
	})

	t.Run("EmptyCredentials", func(t *testing.T) {
		uc, _, _ := newAuthFixture()
		_, err := uc.Login(ctx, inbound.LoginRequest{})
		assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
	})

	t.Run("InactiveAccount", func(t *testing.T) {
		uc, _, _ := newAuthFixture()
		_, err := uc.Login(ctx, inbound.LoginRequest{Username: "ghost", Password: "s3cret"})
		assert.ErrorIs(t, err, domain.ErrAccountInactive)
	})

	t.Run("LockedOutAfterRepeatedFailures", func(t *testing.T) {
		uc, _, _ := newAuthFixture()
		for i := 0; i < loginAttemptLimit; i++ {
			_, err := uc.Login(ctx, inbound.LoginRequest{Username: "jane", Password: fmt.Sprintf("guess-%d", i), ClientIP: "10.0.0.1"})
			assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
		}
		_, err := uc.Login(ctx, inbound.LoginRequest{Username: "jane", Password: "s3cret", ClientIP: "10.0.0.1"})
		assert.ErrorIs(t, err, domain.ErrRateLimited, "even the right password is refused once locked")
	})

	t.Run("SuccessResetsFailureCounter", func(t *testing.T) {
		uc, _, limiter := newAuthFixture()
		_, _ = uc.Login(ctx, inbound.LoginRequest{Username: "jane", Password: "nope", ClientIP: "10.0.0.1"})
		_, err := uc.Login(ctx, inbound.LoginRequest{Username: "jane", Password: "s3cret", ClientIP: "10.0.0.1"})
		assert.NoError(t, err)
		assert.Zero(t, limiter.counts["login:user:jane"])
	})
}

func TestMe(t *testing.T) {
	ctx := context.Background()
	uc, _, _ := newAuthFixture()

	user, err := uc.Me(ctx, "u-1")
	assert.NoError(t, err)
	assert.Equal(t, "jane", user.Username)

	_, err = uc.Me(ctx, "")
	assert.ErrorIs(t, err, domain.ErrUnauthorized)

	_, err = uc.Me(ctx, "missing")
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}
