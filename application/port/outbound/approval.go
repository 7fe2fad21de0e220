package outbound

import (
	"context"

	"github.com/terrapoint/terrapoint/domain"
)

// PendingActionFilter narrows pending-action listings. Nil pointer fields
// mean "no filter".
type PendingActionFilter struct {
	Status      *domain.ActionStatus
	Module      *domain.Module
	Operation   *domain.Operation
	RequestedBy string
	Limit       int
	Offset      int
	SortAsc     bool
}

// PendingActionRepository persists pending actions. Implementations must
// make MarkReviewed a compare-and-set on the current status so that two
// racing reviewers cannot both win.
type PendingActionRepository interface {
	Create(ctx context.Context, action *domain.PendingAction) error
	FindByID(ctx context.Context, id string) (*domain.PendingAction, error)
	List(ctx context.Context, filter PendingActionFilter) ([]*domain.PendingAction, error)
	Count(ctx context.Context, filter PendingActionFilter) (int, error)

	// MarkReviewed transitions the action out of pending, guarded by the
	// current status. Returns domain.ErrActionAlreadyProcessed when the row
	// is no longer pending and domain.ErrActionNotFound when it is missing.
	MarkReviewed(ctx context.Context, id string, review domain.Review) error

	// Delete removes a processed action record (admin cleanup).
	Delete(ctx context.Context, id string) error
}

// AuditRepository is the append-only sink for applied mutations.
type AuditRepository interface {
	Append(ctx context.Context, entry *domain.AuditEntry) error
	ListByTarget(ctx context.Context, module domain.Module, targetID string, limit int) ([]*domain.AuditEntry, error)
}
