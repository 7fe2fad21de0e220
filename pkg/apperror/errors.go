package apperror

import (
	"errors"
	"net/http"

	"github.com/terrapoint/terrapoint/domain"
)

// AppError is the machine-readable error shape returned to clients.
type AppError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Status  int    `json:"status"`
}

func (e *AppError) Error() string {
	return e.Message
}

func New(code, message string, status int) *AppError {
	return &AppError{Code: code, Message: message, Status: status}
}

// MapError translates domain errors into user-visible codes and HTTP
// statuses. Unknown errors collapse to a generic 500 so internals do not
// leak.
func MapError(err error) *AppError {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}

	switch {
	case errors.Is(err, domain.ErrUnauthorized):
		return New("UNAUTHORIZED", "Authentication required", http.StatusUnauthorized)
	case errors.Is(err, domain.ErrInvalidCredentials):
		return New("INVALID_CREDENTIALS", "Invalid username or password", http.StatusUnauthorized)
	case errors.Is(err, domain.ErrAccountInactive):
		return New("ACCOUNT_INACTIVE", "Account is inactive", http.StatusUnauthorized)
	case errors.Is(err, domain.ErrPermissionDenied):
		return New("PERMISSION_DENIED", "Not enough permissions", http.StatusForbidden)
	case errors.Is(err, domain.ErrRateLimited):
		return New("RATE_LIMITED", "Too many login attempts. Please try again later.", http.StatusTooManyRequests)
	case errors.Is(err, domain.ErrUserNotFound),
		errors.Is(err, domain.ErrEntityNotFound),
		errors.Is(err, domain.ErrActionNotFound),
		errors.Is(err, domain.ErrDocumentNotFound):
		return New("NOT_FOUND", err.Error(), http.StatusNotFound)
	case errors.Is(err, domain.ErrActionAlreadyProcessed):
		return New("ACTION_ALREADY_PROCESSED", "Action has already been processed", http.StatusConflict)
	case errors.Is(err, domain.ErrEmailExists):
		return New("EMAIL_EXISTS", "Email already exists", http.StatusConflict)
	case errors.Is(err, domain.ErrInvalidModule):
		return New("INVALID_MODULE", "Unknown module", http.StatusBadRequest)
	case errors.Is(err, domain.ErrInvalidOperation):
		return New("INVALID_OPERATION", "Unknown operation", http.StatusBadRequest)
	case errors.Is(err, domain.ErrTargetRequired):
		return New("INVALID_ACTION", "Operation requires a target id", http.StatusBadRequest)
	case errors.Is(err, domain.ErrInvalidPayload):
		return New("INVALID_PAYLOAD", err.Error(), http.StatusUnprocessableEntity)
	case errors.Is(err, domain.ErrApplyFailed):
		// The approval did not take effect; the action is still pending
		// and the reviewer may retry.
		return New("APPLY_FAILED", "Failed to apply action; it remains pending", http.StatusBadGateway)
	default:
		return New("INTERNAL_ERROR", "An unexpected error occurred", http.StatusInternalServerError)
	}
}
