package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/terrapoint/terrapoint/application/port/inbound"
	"github.com/terrapoint/terrapoint/application/port/outbound"
	"github.com/terrapoint/terrapoint/domain"
	"github.com/terrapoint/terrapoint/infrastructure/service/logger"
)

const (
	loginAttemptLimit  = 5
	loginAttemptWindow = 15 * time.Minute
)

type AuthUseCase struct {
	userRepository   outbound.UserRepository
	tokenService     outbound.TokenService
	passwordService  outbound.PasswordService
	rateLimitService inbound.RateLimitService
	logger           logger.Logger
}

func NewAuthUseCase(
	userRepo outbound.UserRepository,
	tokenService outbound.TokenService,
	passwordService outbound.PasswordService,
	rateLimitService inbound.RateLimitService,
	log logger.Logger,
) inbound.AuthUseCase {
	return &AuthUseCase{
		userRepository:   userRepo,
		tokenService:     tokenService,
		passwordService:  passwordService,
		rateLimitService: rateLimitService,
		logger:           log,
	}
}

func (uc *AuthUseCase) Login(ctx context.Context, req inbound.LoginRequest) (*inbound.LoginResponse, error) {
	if req.Username == "" || req.Password == "" {
		return nil, domain.ErrInvalidCredentials
	}

	if uc.rateLimitService != nil {
		if err := uc.checkLoginLimits(ctx, req); err != nil {
			return nil, err
		}
	}

	user, err := uc.userRepository.FindByUsername(ctx, req.Username)
	if err != nil {
		uc.recordFailure(ctx, req)
		uc.logger.Warn(ctx, "Login failed: unknown username", map[string]interface{}{
			"username": req.Username,
			"ip":       req.ClientIP,
		})
		return nil, domain.ErrInvalidCredentials
	}

	if err := uc.passwordService.ComparePassword(user.PasswordHash, req.Password); err != nil {
		uc.recordFailure(ctx, req)
		uc.logger.Warn(ctx, "Login failed: bad password", map[string]interface{}{
			"username": req.Username,
			"ip":       req.ClientIP,
		})
		return nil, domain.ErrInvalidCredentials
	}

	if !user.IsActive() {
		uc.logger.Warn(ctx, "Login rejected: inactive account", map[string]interface{}{
			"user_id": user.ID,
			"status":  string(user.Status),
		})
		return nil, domain.ErrAccountInactive
	}

	token, err := uc.tokenService.GenerateAccessToken(outbound.TokenClaims{
		UserID:   user.ID,
		Username: user.Username,
		Name:     user.Name,
		Role:     string(user.Role),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to generate access token: %w", err)
	}

	if uc.rateLimitService != nil {
		_ = uc.rateLimitService.Reset(ctx, loginKey("user", req.Username))
	}

	uc.logger.Info(ctx, "Login succeeded", map[string]interface{}{
		"user_id": user.ID,
		"role":    string(user.Role),
	})

	return &inbound.LoginResponse{
		AccessToken: token,
		TokenType:   "bearer",
		User:        user,
	}, nil
}

func (uc *AuthUseCase) checkLoginLimits(ctx context.Context, req inbound.LoginRequest) error {
	keys := []string{loginKey("ip", req.ClientIP), loginKey("user", req.Username)}
	for _, key := range keys {
		allowed, err := uc.rateLimitService.CheckLimit(ctx, key, loginAttemptLimit, loginAttemptWindow)
		if err != nil {
			// Rate limiting is best-effort: a counter-store outage must
			// not lock everyone out.
			uc.logger.Error(ctx, "Failed to check login rate limit", err, map[string]interface{}{"key": key})
			continue
		}
		if !allowed {
			uc.logger.Warn(ctx, "Login rate limit exceeded", map[string]interface{}{"key": key})
			return domain.ErrRateLimited
		}
	}
	return nil
}

func (uc *AuthUseCase) recordFailure(ctx context.Context, req inbound.LoginRequest) {
	if uc.rateLimitService == nil {
		return
	}
	_ = uc.rateLimitService.Increment(ctx, loginKey("ip", req.ClientIP), loginAttemptWindow)
	_ = uc.rateLimitService.Increment(ctx, loginKey("user", req.Username), loginAttemptWindow)
}

func loginKey(kind, value string) string {
	return fmt.Sprintf("login:%s:%s", kind, value)
}

func (uc *AuthUseCase) Me(ctx context.Context, userID string) (*domain.User, error) {
	if userID == "" {
		return nil, domain.ErrUnauthorized
	}
	return uc.userRepository.FindByID(ctx, userID)
}
