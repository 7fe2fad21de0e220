package usecase

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/terrapoint/terrapoint/application/port/inbound"
	"github.com/terrapoint/terrapoint/application/port/outbound"
	"github.com/terrapoint/terrapoint/domain"
)

// ApprovalUseCase mediates all non-admin mutations through a
// request -> review -> apply pipeline. Submission captures the intent as a
// pending action; approval replays it against the entity store inside a
// single transaction together with the status transition and the audit
// append.
type ApprovalUseCase struct {
	uow     outbound.UnitOfWork
	actions outbound.PendingActionRepository
	audit   outbound.AuditRepository
	modules outbound.ModuleRegistry
	schema  *SchemaValidator
}

func NewApprovalUseCase(
	uow outbound.UnitOfWork,
	actions outbound.PendingActionRepository,
	audit outbound.AuditRepository,
	modules outbound.ModuleRegistry,
	schema *SchemaValidator,
) *ApprovalUseCase {
	return &ApprovalUseCase{
		uow:     uow,
		actions: actions,
		audit:   audit,
		modules: modules,
		schema:  schema,
	}
}

// SubmitAction captures a mutation request as a new pending action. The
// payload is validated against the module schema and, for update/delete on
// owner-tracked modules, the requester must own the target at submission
// time; ownership is re-validated at apply time in case it changed.
func (uc *ApprovalUseCase) SubmitAction(ctx context.Context, requester domain.Principal, req inbound.SubmitActionRequest) (*domain.PendingAction, error) {
	if requester.ID == "" {
		return nil, domain.ErrUnauthorized
	}
	module, err := domain.ParseModule(req.Module)
	if err != nil {
		return nil, err
	}
	op, err := domain.ParseOperation(req.Operation)
	if err != nil {
		return nil, err
	}

	switch op {
	case domain.OperationCreate:
		if err := uc.schema.ValidateCreate(module, req.Payload); err != nil {
			return nil, err
		}
	case domain.OperationUpdate:
		if err := uc.schema.ValidatePatch(module, req.Payload); err != nil {
			return nil, err
		}
	}

	if op.RequiresTarget() {
		if err := uc.checkTargetAccess(ctx, requester, module, req.TargetID); err != nil {
			return nil, err
		}
	}

	action, err := domain.NewPendingAction(uuid.New().String(), module, op, req.Payload, req.TargetID, requester)
	if err != nil {
		return nil, err
	}
	if err := uc.actions.Create(ctx, action); err != nil {
		return nil, fmt.Errorf("failed to create pending action: %w", err)
	}
	return action, nil
}

// checkTargetAccess verifies the target exists and, on owner-tracked
// modules, that a non-admin requester owns it.
func (uc *ApprovalUseCase) checkTargetAccess(ctx context.Context, requester domain.Principal, module domain.Module, targetID string) error {
	store, ok := uc.modules.Store(module)
	if !ok {
		return domain.ErrInvalidModule
	}
	rec, err := store.Get(ctx, targetID)
	if err != nil {
		return err
	}
	if key := module.OwnerKey(); key != "" && !requester.IsAdmin() {
		if rec.String(key) != requester.ID {
			return domain.ErrPermissionDenied
		}
	}
	return nil
}

// ApproveAction transitions a pending action to approved and applies the
// captured operation. The transition, the entity mutation and the audit
// append share one transaction: any failure rolls everything back and the
// action stays pending so the reviewer can retry.
func (uc *ApprovalUseCase) ApproveAction(ctx context.Context, reviewer domain.Principal, req inbound.ReviewActionRequest) (*domain.PendingAction, error) {
	if !reviewer.IsAdmin() {
		return nil, domain.ErrPermissionDenied
	}

	var reviewed *domain.PendingAction
	err := uc.uow.Within(ctx, func(ctx context.Context, stores outbound.ApplyStores) error {
		action, err := stores.PendingActions().FindByID(ctx, req.ActionID)
		if err != nil {
			return err
		}
		review := domain.NewReview(domain.ActionStatusApproved, reviewer, req.Note)
		if err := stores.PendingActions().MarkReviewed(ctx, action.ID, review); err != nil {
			return err
		}
		if err := uc.apply(ctx, stores, action, reviewer); err != nil {
			return err
		}
		if err := action.MarkReviewed(review); err != nil {
			return err
		}
		reviewed = action
		return nil
	})
	if err != nil {
		return nil, err
	}
	return reviewed, nil
}

// RejectAction transitions a pending action to rejected. No entity mutation
// and no audit entry; the compare-and-set on the status is the only write.
func (uc *ApprovalUseCase) RejectAction(ctx context.Context, reviewer domain.Principal, req inbound.ReviewActionRequest) (*domain.PendingAction, error) {
	if !reviewer.IsAdmin() {
		return nil, domain.ErrPermissionDenied
	}
	action, err := uc.actions.FindByID(ctx, req.ActionID)
	if err != nil {
		return nil, err
	}
	review := domain.NewReview(domain.ActionStatusRejected, reviewer, req.Note)
	if err := uc.actions.MarkReviewed(ctx, action.ID, review); err != nil {
		return nil, err
	}
	if err := action.MarkReviewed(review); err != nil {
		return nil, err
	}
	return action, nil
}

// apply replays the captured operation against the module store and appends
// the audit entry. Runs only inside the approve transaction.
func (uc *ApprovalUseCase) apply(ctx context.Context, stores outbound.ApplyStores, action *domain.PendingAction, admin domain.Principal) error {
	store, ok := stores.Modules().Store(action.Module)
	if !ok {
		return domain.ErrInvalidModule
	}

	var (
		targetID      string
		before, after domain.Fields
	)

	switch action.Operation {
	case domain.OperationCreate:
		rec := action.Payload.Clone()
		rec["id"] = uuid.New().String()
		// Ownership is attributed to the original requester, not the
		// approving admin, so provenance survives the review step.
		if key := action.Module.OwnerKey(); key != "" && rec.String(key) == "" {
			rec[key] = action.RequestedBy
		}
		inserted, err := store.Insert(ctx, rec)
		if err != nil {
			return domain.ApplyFailed(err)
		}
		targetID = inserted.String("id")
		after = inserted

	case domain.OperationUpdate:
		targetID = action.TargetID
		if err := uc.recheckOwnership(ctx, store, action); err != nil {
			return err
		}
		b, a, err := store.Patch(ctx, action.TargetID, action.Payload)
		if err != nil {
			return wrapApplyErr(err)
		}
		before, after = b, a

	case domain.OperationDelete:
		targetID = action.TargetID
		if err := uc.recheckOwnership(ctx, store, action); err != nil {
			return err
		}
		b, err := store.Remove(ctx, action.TargetID)
		if err != nil {
			return wrapApplyErr(err)
		}
		before = b

	default:
		return domain.ErrInvalidOperation
	}

	entry := domain.NewAuditEntry(uuid.New().String(), action.Module, action.Operation, targetID, before, after, admin)
	if err := stores.Audit().Append(ctx, entry); err != nil {
		return domain.ApplyFailed(err)
	}
	return nil
}

func (uc *ApprovalUseCase) recheckOwnership(ctx context.Context, store outbound.ModuleStore, action *domain.PendingAction) error {
	key := action.Module.OwnerKey()
	if key == "" {
		return nil
	}
	rec, err := store.Get(ctx, action.TargetID)
	if err != nil {
		return wrapApplyErr(err)
	}
	if owner := rec.String(key); owner != "" && owner != action.RequestedBy {
		return domain.ErrPermissionDenied
	}
	return nil
}

// wrapApplyErr keeps domain error kinds visible to the caller and wraps
// everything else as an apply failure.
func wrapApplyErr(err error) error {
	if errors.Is(err, domain.ErrEntityNotFound) ||
		errors.Is(err, domain.ErrPermissionDenied) ||
		errors.Is(err, domain.ErrInvalidModule) {
		return err
	}
	return domain.ApplyFailed(err)
}

// GetAction returns one action; employees may only read their own.
func (uc *ApprovalUseCase) GetAction(ctx context.Context, p domain.Principal, id string) (*domain.PendingAction, error) {
	action, err := uc.actions.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !p.IsAdmin() && action.RequestedBy != p.ID {
		return nil, domain.ErrPermissionDenied
	}
	return action, nil
}

// ListActions is the admin review queue, filterable by status, module,
// operation and requester.
func (uc *ApprovalUseCase) ListActions(ctx context.Context, p domain.Principal, req inbound.ListActionsRequest) (*inbound.ActionList, error) {
	if !p.IsAdmin() {
		return nil, domain.ErrPermissionDenied
	}
	filter, err := buildActionFilter(req)
	if err != nil {
		return nil, err
	}
	return uc.listActions(ctx, req, filter)
}

// ListMyActions lists the caller's own submissions regardless of role.
func (uc *ApprovalUseCase) ListMyActions(ctx context.Context, p domain.Principal, req inbound.ListActionsRequest) (*inbound.ActionList, error) {
	req.RequestedBy = p.ID
	filter, err := buildActionFilter(req)
	if err != nil {
		return nil, err
	}
	return uc.listActions(ctx, req, filter)
}

func (uc *ApprovalUseCase) listActions(ctx context.Context, req inbound.ListActionsRequest, filter outbound.PendingActionFilter) (*inbound.ActionList, error) {
	actions, err := uc.actions.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list pending actions: %w", err)
	}
	total, err := uc.actions.Count(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to count pending actions: %w", err)
	}
	return &inbound.ActionList{
		Actions:  actions,
		Total:    total,
		Page:     filter.Offset/filter.Limit + 1,
		PageSize: filter.Limit,
	}, nil
}

func buildActionFilter(req inbound.ListActionsRequest) (outbound.PendingActionFilter, error) {
	filter := outbound.PendingActionFilter{RequestedBy: req.RequestedBy}
	if req.Status != "" {
		status := domain.ActionStatus(req.Status)
		switch status {
		case domain.ActionStatusPending, domain.ActionStatusApproved, domain.ActionStatusRejected:
			filter.Status = &status
		default:
			return filter, fmt.Errorf("%w: unknown status %q", domain.ErrInvalidPayload, req.Status)
		}
	}
	if req.Module != "" {
		m, err := domain.ParseModule(req.Module)
		if err != nil {
			return filter, err
		}
		filter.Module = &m
	}
	if req.Operation != "" {
		op, err := domain.ParseOperation(req.Operation)
		if err != nil {
			return filter, err
		}
		filter.Operation = &op
	}
	page := req.Page
	if page < 1 {
		page = 1
	}
	size := req.PageSize
	if size < 1 || size > 100 {
		size = 50
	}
	filter.Limit = size
	filter.Offset = (page - 1) * size
	return filter, nil
}

// DeleteAction removes an action record. Admin-only; used to clean up the
// processed queue or cancel a stale request.
func (uc *ApprovalUseCase) DeleteAction(ctx context.Context, p domain.Principal, id string) error {
	if !p.IsAdmin() {
		return domain.ErrPermissionDenied
	}
	return uc.actions.Delete(ctx, id)
}

// History returns the audit trail for one entity, newest first. Admin-only:
// before/after snapshots may contain fields the requester could no longer
// see.
func (uc *ApprovalUseCase) History(ctx context.Context, p domain.Principal, module, targetID string, limit int) ([]*domain.AuditEntry, error) {
	if !p.IsAdmin() {
		return nil, domain.ErrPermissionDenied
	}
	m, err := domain.ParseModule(module)
	if err != nil {
		return nil, err
	}
	if limit < 1 || limit > 500 {
		limit = 100
	}
	return uc.audit.ListByTarget(ctx, m, targetID, limit)
}
