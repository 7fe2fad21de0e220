package usecase

import (
	"context"
	"fmt"
	"io"

	"github.com/google/uuid"

	"github.com/terrapoint/terrapoint/application/port/inbound"
	"github.com/terrapoint/terrapoint/application/port/outbound"
	"github.com/terrapoint/terrapoint/domain"
)

// EntityUseCase is role-gated CRUD over the managed modules. Admins mutate
// the store directly; employee mutations are captured by the approval
// engine and surfaced to the caller as a pending result, not an error.
type EntityUseCase struct {
	modules   outbound.ModuleRegistry
	approvals inbound.ApprovalUseCase
	schema    *SchemaValidator
	csv       outbound.CSVCodec
	audit     outbound.AuditRepository
}

func NewEntityUseCase(
	modules outbound.ModuleRegistry,
	approvals inbound.ApprovalUseCase,
	schema *SchemaValidator,
	csv outbound.CSVCodec,
	audit outbound.AuditRepository,
) *EntityUseCase {
	return &EntityUseCase{
		modules:   modules,
		approvals: approvals,
		schema:    schema,
		csv:       csv,
		audit:     audit,
	}
}

func (uc *EntityUseCase) store(module string) (outbound.ModuleStore, domain.Module, error) {
	m, err := domain.ParseModule(module)
	if err != nil {
		return nil, "", err
	}
	store, ok := uc.modules.Store(m)
	if !ok {
		return nil, "", domain.ErrInvalidModule
	}
	return store, m, nil
}

// List returns module records with filter/sort/pagination. Employees only
// see records they own on owner-tracked modules; the filter is applied at
// the query layer, not re-checked downstream.
func (uc *EntityUseCase) List(ctx context.Context, p domain.Principal, module string, req inbound.ListEntitiesRequest) (*inbound.EntityList, error) {
	store, m, err := uc.store(module)
	if err != nil {
		return nil, err
	}
	opts := buildListOptions(p, m, req)
	records, err := store.List(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list %s: %w", m, err)
	}
	total, err := store.Count(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to count %s: %w", m, err)
	}
	return &inbound.EntityList{
		Records:  records,
		Total:    total,
		Page:     opts.Offset/opts.Limit + 1,
		PageSize: opts.Limit,
	}, nil
}

func buildListOptions(p domain.Principal, m domain.Module, req inbound.ListEntitiesRequest) outbound.ListOptions {
	opts := outbound.ListOptions{
		Filters:  req.Filters,
		Sort:     req.Sort,
		SortDesc: req.SortDesc,
	}
	if !p.IsAdmin() && m.TracksOwnership() {
		opts.OwnerID = p.ID
	}
	page := req.Page
	if page < 1 {
		page = 1
	}
	size := req.PageSize
	if size < 1 || size > 100 {
		size = 50
	}
	opts.Limit = size
	opts.Offset = (page - 1) * size
	return opts
}

func (uc *EntityUseCase) Get(ctx context.Context, p domain.Principal, module, id string) (domain.Fields, error) {
	store, m, err := uc.store(module)
	if err != nil {
		return nil, err
	}
	rec, err := store.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if key := m.OwnerKey(); key != "" && !p.IsAdmin() && rec.String(key) != p.ID {
		return nil, domain.ErrPermissionDenied
	}
	return rec, nil
}

// Create inserts directly for admins; employee submissions become pending
// actions and the caller receives the captured action instead.
func (uc *EntityUseCase) Create(ctx context.Context, p domain.Principal, module string, payload domain.Fields) (*inbound.MutationResult, error) {
	store, m, err := uc.store(module)
	if err != nil {
		return nil, err
	}
	if !p.IsAdmin() {
		action, err := uc.approvals.SubmitAction(ctx, p, inbound.SubmitActionRequest{
			Module:    module,
			Operation: string(domain.OperationCreate),
			Payload:   payload,
		})
		if err != nil {
			return nil, err
		}
		return &inbound.MutationResult{PendingAction: action}, nil
	}

	if err := uc.schema.ValidateCreate(m, payload); err != nil {
		return nil, err
	}
	rec := payload.Clone()
	rec["id"] = uuid.New().String()
	if key := m.OwnerKey(); key != "" && rec.String(key) == "" {
		rec[key] = p.ID
	}
	inserted, err := store.Insert(ctx, rec)
	if err != nil {
		return nil, fmt.Errorf("failed to create %s record: %w", m, err)
	}
	if err := uc.recordAudit(ctx, m, domain.OperationCreate, inserted.String("id"), nil, inserted, p); err != nil {
		return nil, err
	}
	return &inbound.MutationResult{Applied: true, Record: inserted}, nil
}

func (uc *EntityUseCase) Update(ctx context.Context, p domain.Principal, module, id string, patch domain.Fields) (*inbound.MutationResult, error) {
	store, m, err := uc.store(module)
	if err != nil {
		return nil, err
	}
	if !p.IsAdmin() {
		action, err := uc.approvals.SubmitAction(ctx, p, inbound.SubmitActionRequest{
			Module:    module,
			Operation: string(domain.OperationUpdate),
			Payload:   patch,
			TargetID:  id,
		})
		if err != nil {
			return nil, err
		}
		return &inbound.MutationResult{PendingAction: action}, nil
	}

	if err := uc.schema.ValidatePatch(m, patch); err != nil {
		return nil, err
	}
	before, after, err := store.Patch(ctx, id, patch)
	if err != nil {
		return nil, err
	}
	if err := uc.recordAudit(ctx, m, domain.OperationUpdate, id, before, after, p); err != nil {
		return nil, err
	}
	return &inbound.MutationResult{Applied: true, Record: after}, nil
}

func (uc *EntityUseCase) Delete(ctx context.Context, p domain.Principal, module, id string) (*inbound.MutationResult, error) {
	store, m, err := uc.store(module)
	if err != nil {
		return nil, err
	}
	if !p.IsAdmin() {
		action, err := uc.approvals.SubmitAction(ctx, p, inbound.SubmitActionRequest{
			Module:    module,
			Operation: string(domain.OperationDelete),
			TargetID:  id,
		})
		if err != nil {
			return nil, err
		}
		return &inbound.MutationResult{PendingAction: action}, nil
	}

	before, err := store.Remove(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := uc.recordAudit(ctx, m, domain.OperationDelete, id, before, nil, p); err != nil {
		return nil, err
	}
	return &inbound.MutationResult{Applied: true}, nil
}

// recordAudit snapshots an admin mutation that bypassed the approval
// engine, so direct and reviewed changes share one audit trail.
func (uc *EntityUseCase) recordAudit(ctx context.Context, m domain.Module, op domain.Operation, targetID string, before, after domain.Fields, p domain.Principal) error {
	entry := domain.NewAuditEntry(uuid.New().String(), m, op, targetID, before, after, p)
	if err := uc.audit.Append(ctx, entry); err != nil {
		return fmt.Errorf("failed to record audit entry: %w", err)
	}
	return nil
}

// ExportCSV streams the caller's visible records as CSV.
func (uc *EntityUseCase) ExportCSV(ctx context.Context, p domain.Principal, module string, req inbound.ListEntitiesRequest, w io.Writer) error {
	store, m, err := uc.store(module)
	if err != nil {
		return err
	}
	opts := buildListOptions(p, m, req)
	opts.Limit = 10000
	opts.Offset = 0
	records, err := store.List(ctx, opts)
	if err != nil {
		return fmt.Errorf("failed to export %s: %w", m, err)
	}
	return uc.csv.Write(w, records)
}

// ImportCSV inserts rows directly for admins and captures each row as a
// pending create action for employees. Row failures are collected, not
// fatal, so one bad row does not abort the batch.
func (uc *EntityUseCase) ImportCSV(ctx context.Context, p domain.Principal, module string, r io.Reader) (*inbound.ImportResult, error) {
	_, m, err := uc.store(module)
	if err != nil {
		return nil, err
	}
	rows, err := uc.csv.Read(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidPayload, err)
	}

	result := &inbound.ImportResult{}
	for i, row := range rows {
		delete(row, "id")
		delete(row, "created_at")
		delete(row, "updated_at")
		// CSV cells are all strings; restore the schema's numeric and
		// boolean types so exported records survive re-import.
		row = uc.schema.Coerce(m, row)
		out, err := uc.Create(ctx, p, module, row)
		if err != nil {
			result.Errors = append(result.Errors, fmt.Sprintf("row %d: %v", i+1, err))
			continue
		}
		if out.Applied {
			result.Inserted++
		} else {
			result.Captured++
		}
	}
	return result, nil
}
