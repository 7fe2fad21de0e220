package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/terrapoint/terrapoint/application/port/outbound"
)

// SQLUnitOfWork runs a function with every repository rebound onto one
// transaction. The approval engine uses it so a status transition, the
// entity mutation and the audit append commit or roll back together.
type SQLUnitOfWork struct {
	db *sql.DB
}

func NewSQLUnitOfWork(db *sql.DB) *SQLUnitOfWork {
	return &SQLUnitOfWork{db: db}
}

func (u *SQLUnitOfWork) Within(ctx context.Context, fn func(ctx context.Context, stores outbound.ApplyStores) error) error {
	tx, err := u.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	stores := &txStores{
		actions: NewPendingActionRepository(tx),
		audit:   NewAuditRepository(tx),
		modules: NewRegistry(tx),
	}
	if err := fn(ctx, stores); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			return fmt.Errorf("%w (rollback failed: %v)", err, rbErr)
		}
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

type txStores struct {
	actions *PendingActionRepository
	audit   *AuditRepository
	modules *Registry
}

func (s *txStores) PendingActions() outbound.PendingActionRepository { return s.actions }
func (s *txStores) Audit() outbound.AuditRepository                  { return s.audit }
func (s *txStores) Modules() outbound.ModuleRegistry                 { return s.modules }

var _ outbound.UnitOfWork = (*SQLUnitOfWork)(nil)
