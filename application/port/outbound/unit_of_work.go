package outbound

import "context"

// ApplyStores is the set of stores visible inside one transactional unit.
type ApplyStores interface {
	PendingActions() PendingActionRepository
	Audit() AuditRepository
	Modules() ModuleRegistry
}

// UnitOfWork runs a function inside a single transaction. Every store
// handed to fn is bound to that transaction; if fn returns an error nothing
// it did persists. The approval engine wraps the status transition, the
// entity mutation and the audit append in one unit so a mid-apply failure
// leaves the action pending and the store untouched.
type UnitOfWork interface {
	Within(ctx context.Context, fn func(ctx context.Context, stores ApplyStores) error) error
}
