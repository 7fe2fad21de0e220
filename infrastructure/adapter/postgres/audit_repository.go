package postgres

import (
	"context"
	"fmt"

	"github.com/terrapoint/terrapoint/application/port/outbound"
	"github.com/terrapoint/terrapoint/domain"
)

// AuditRepository is the append-only audit log. Rows are never updated or
// deleted.
type AuditRepository struct {
	db Querier
}

func NewAuditRepository(db Querier) *AuditRepository {
	return &AuditRepository{db: db}
}

func (r *AuditRepository) Append(ctx context.Context, entry *domain.AuditEntry) error {
	before, err := entry.Before.Encode()
	if err != nil {
		return fmt.Errorf("failed to encode audit before snapshot: %w", err)
	}
	after, err := entry.After.Encode()
	if err != nil {
		return fmt.Errorf("failed to encode audit after snapshot: %w", err)
	}
	query := `
        INSERT INTO audit_log (id, module, operation, target_id, before_state, after_state, admin_id, admin_name, created_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
    `
	_, err = r.db.ExecContext(ctx, query,
		entry.ID,
		string(entry.Module),
		string(entry.Operation),
		entry.TargetID,
		before,
		after,
		entry.AdminID,
		entry.AdminName,
		entry.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to append audit entry: %w", err)
	}
	return nil
}

func (r *AuditRepository) ListByTarget(ctx context.Context, module domain.Module, targetID string, limit int) ([]*domain.AuditEntry, error) {
	query := `
        SELECT id, module, operation, target_id, before_state, after_state, admin_id, admin_name, created_at
        FROM audit_log
        WHERE module = $1 AND target_id = $2
        ORDER BY created_at DESC
        LIMIT $3
    `
	rows, err := r.db.QueryContext(ctx, query, string(module), targetID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query audit entries: %w", err)
	}
	defer rows.Close()
	var entries []*domain.AuditEntry
	for rows.Next() {
		var (
			entry  domain.AuditEntry
			before []byte
			after  []byte
		)
		err := rows.Scan(
			&entry.ID,
			&entry.Module,
			&entry.Operation,
			&entry.TargetID,
			&before,
			&after,
			&entry.AdminID,
			&entry.AdminName,
			&entry.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan audit entry: %w", err)
		}
		if entry.Before, err = domain.DecodeFields(before); err != nil {
			return nil, fmt.Errorf("failed to decode audit before snapshot: %w", err)
		}
		if entry.After, err = domain.DecodeFields(after); err != nil {
			return nil, fmt.Errorf("failed to decode audit after snapshot: %w", err)
		}
		entries = append(entries, &entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating audit entries: %w", err)
	}
	return entries, nil
}

var _ outbound.AuditRepository = (*AuditRepository)(nil)
