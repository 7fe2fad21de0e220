package inbound

import (
	"context"

	"github.com/terrapoint/terrapoint/domain"
)

// SubmitActionRequest captures a non-admin mutation for review. Module and
// Operation arrive as raw tags from the HTTP boundary and are validated
// against the closed sets.
type SubmitActionRequest struct {
	Module    string        `json:"module"`
	Operation string        `json:"operation"`
	Payload   domain.Fields `json:"payload"`
	TargetID  string        `json:"target_id,omitempty"`
}

// ReviewActionRequest approves or rejects a pending action.
type ReviewActionRequest struct {
	ActionID string `json:"-"`
	Note     string `json:"note,omitempty"`
}

// ListActionsRequest filters a pending-action listing.
type ListActionsRequest struct {
	Status      string `json:"status,omitempty"`
	Module      string `json:"module,omitempty"`
	Operation   string `json:"operation,omitempty"`
	RequestedBy string `json:"requested_by,omitempty"`
	Page        int    `json:"page"`
	PageSize    int    `json:"page_size"`
}

// ActionList is a paginated pending-action listing.
type ActionList struct {
	Actions  []*domain.PendingAction `json:"data"`
	Total    int                     `json:"total"`
	Page     int                     `json:"page"`
	PageSize int                     `json:"page_size"`
}

// ApprovalUseCase owns the pending-action lifecycle: submission by
// employees, review by admins, transactional apply on approval.
type ApprovalUseCase interface {
	SubmitAction(ctx context.Context, requester domain.Principal, req SubmitActionRequest) (*domain.PendingAction, error)
	ApproveAction(ctx context.Context, reviewer domain.Principal, req ReviewActionRequest) (*domain.PendingAction, error)
	RejectAction(ctx context.Context, reviewer domain.Principal, req ReviewActionRequest) (*domain.PendingAction, error)
	GetAction(ctx context.Context, p domain.Principal, id string) (*domain.PendingAction, error)
	ListActions(ctx context.Context, p domain.Principal, req ListActionsRequest) (*ActionList, error)
	ListMyActions(ctx context.Context, p domain.Principal, req ListActionsRequest) (*ActionList, error)
	DeleteAction(ctx context.Context, p domain.Principal, id string) error
	History(ctx context.Context, p domain.Principal, module, targetID string, limit int) ([]*domain.AuditEntry, error)
}
