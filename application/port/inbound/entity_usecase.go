package inbound

import (
	"context"
	"io"

	"github.com/terrapoint/terrapoint/domain"
)

// ListEntitiesRequest is the filter/sort/paginate contract of the module
// listing endpoints.
type ListEntitiesRequest struct {
	Filters  map[string]string `json:"filters,omitempty"`
	Sort     string            `json:"sort,omitempty"`
	SortDesc bool              `json:"sort_desc,omitempty"`
	Page     int               `json:"page"`
	PageSize int               `json:"page_size"`
}

// EntityList is a paginated record listing.
type EntityList struct {
	Records  []domain.Fields `json:"data"`
	Total    int             `json:"total"`
	Page     int             `json:"page"`
	PageSize int             `json:"page_size"`
}

// MutationResult distinguishes an applied mutation (admin path) from one
// captured as a pending action (employee path). Exactly one of Record and
// PendingAction is set.
type MutationResult struct {
	Applied       bool                  `json:"applied"`
	Record        domain.Fields         `json:"record,omitempty"`
	PendingAction *domain.PendingAction `json:"pending_action,omitempty"`
}

// ImportResult summarizes a CSV import.
type ImportResult struct {
	Inserted int      `json:"inserted"`
	Captured int      `json:"captured"`
	Errors   []string `json:"errors,omitempty"`
}

// EntityUseCase is role-gated CRUD over the managed modules. Admin
// mutations apply directly (and are audit-logged); employee mutations are
// deferred through the approval engine.
type EntityUseCase interface {
	List(ctx context.Context, p domain.Principal, module string, req ListEntitiesRequest) (*EntityList, error)
	Get(ctx context.Context, p domain.Principal, module, id string) (domain.Fields, error)
	Create(ctx context.Context, p domain.Principal, module string, payload domain.Fields) (*MutationResult, error)
	Update(ctx context.Context, p domain.Principal, module, id string, patch domain.Fields) (*MutationResult, error)
	Delete(ctx context.Context, p domain.Principal, module, id string) (*MutationResult, error)
	ExportCSV(ctx context.Context, p domain.Principal, module string, req ListEntitiesRequest, w io.Writer) error
	ImportCSV(ctx context.Context, p domain.Principal, module string, r io.Reader) (*ImportResult, error)
}
