package outbound

import (
	"context"

	"github.com/terrapoint/terrapoint/domain"
)

// ListOptions is the filter/sort/paginate contract shared by all module
// stores. Filters match document fields by equality (strings matched
// case-insensitively as substrings, mirroring the ILIKE behavior of the
// listing endpoints).
type ListOptions struct {
	Filters  map[string]string
	OwnerID  string // restrict to records owned by this user; "" means all
	Sort     string
	SortDesc bool
	Limit    int
	Offset   int
}

// ModuleStore is generic typed CRUD over one module's records. Records are
// opaque documents; id, created_at and updated_at are managed by the store.
type ModuleStore interface {
	Module() domain.Module

	// Insert stores a new record. The record must already carry its id;
	// module-specific derived fields (e.g. a lead's inquiry number) are
	// filled in when absent. Returns the stored record.
	Insert(ctx context.Context, rec domain.Fields) (domain.Fields, error)

	Get(ctx context.Context, id string) (domain.Fields, error)

	// Patch applies a sparse field merge: only keys present in patch change.
	// Returns the record before and after the merge.
	Patch(ctx context.Context, id string, patch domain.Fields) (before, after domain.Fields, err error)

	// Remove deletes the record and returns its final state.
	Remove(ctx context.Context, id string) (before domain.Fields, err error)

	List(ctx context.Context, opts ListOptions) ([]domain.Fields, error)
	Count(ctx context.Context, opts ListOptions) (int, error)
}

// ModuleRegistry resolves a module tag to its store. Resolved once at
// startup; an unknown tag means the action is malformed.
type ModuleRegistry interface {
	Store(m domain.Module) (ModuleStore, bool)
}
