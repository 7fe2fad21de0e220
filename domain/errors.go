package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors raised by the domain and use-case layers. The HTTP
// boundary maps them to status codes in pkg/apperror.
var (
	ErrUnauthorized     = errors.New("unauthorized")
	ErrPermissionDenied = errors.New("permission denied")
	ErrAccountInactive  = errors.New("account is inactive")

	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrRateLimited        = errors.New("too many login attempts")

	ErrUserNotFound     = errors.New("user not found")
	ErrEntityNotFound   = errors.New("entity not found")
	ErrActionNotFound   = errors.New("pending action not found")
	ErrDocumentNotFound = errors.New("document not found")

	ErrActionAlreadyProcessed = errors.New("action has already been processed")
	ErrEmailExists            = errors.New("email already exists")
	ErrInvalidModule          = errors.New("invalid module")
	ErrInvalidOperation       = errors.New("invalid operation")
	ErrTargetRequired         = errors.New("operation requires a target id")
	ErrInvalidPayload         = errors.New("invalid payload")

	ErrApplyFailed = errors.New("failed to apply pending action")
)

// ApplyFailed wraps a persistence failure that occurred while applying an
// approved action. The wrapped chain keeps the root cause while callers can
// still match errors.Is(err, ErrApplyFailed).
func ApplyFailed(err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%w: %v", ErrApplyFailed, err)
}
