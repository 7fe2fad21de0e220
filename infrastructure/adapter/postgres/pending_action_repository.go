package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/terrapoint/terrapoint/application/port/outbound"
	"github.com/terrapoint/terrapoint/domain"
)

type PendingActionRepository struct {
	db Querier
}

func NewPendingActionRepository(db Querier) *PendingActionRepository {
	return &PendingActionRepository{db: db}
}

func (r *PendingActionRepository) Create(ctx context.Context, action *domain.PendingAction) error {
	payload, err := action.Payload.Encode()
	if err != nil {
		return fmt.Errorf("failed to encode action payload: %w", err)
	}
	query := `
        INSERT INTO pending_actions (id, module, operation, payload, target_id, requested_by, requested_by_name, status, created_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
    `
	_, err = r.db.ExecContext(ctx, query,
		action.ID,
		string(action.Module),
		string(action.Operation),
		payload,
		nullable(action.TargetID),
		action.RequestedBy,
		action.RequestedByName,
		string(action.Status),
		action.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create pending action: %w", err)
	}
	return nil
}

func (r *PendingActionRepository) FindByID(ctx context.Context, id string) (*domain.PendingAction, error) {
	query := selectActionColumns + ` WHERE id = $1`
	action, err := r.scanAction(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrActionNotFound
		}
		return nil, fmt.Errorf("failed to find pending action: %w", err)
	}
	return action, nil
}

func (r *PendingActionRepository) List(ctx context.Context, filter outbound.PendingActionFilter) ([]*domain.PendingAction, error) {
	where, args := buildActionWhereClause(filter)
	query := selectActionColumns + " WHERE 1=1 " + where
	direction := "DESC"
	if filter.SortAsc {
		direction = "ASC"
	}
	query += " ORDER BY created_at " + direction
	argIndex := len(args) + 1
	if filter.Limit > 0 {
		query += fmt.Sprintf(" LIMIT $%d", argIndex)
		args = append(args, filter.Limit)
		argIndex++
	}
	if filter.Offset > 0 {
		query += fmt.Sprintf(" OFFSET $%d", argIndex)
		args = append(args, filter.Offset)
	}
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query pending actions: %w", err)
	}
	defer rows.Close()
	var actions []*domain.PendingAction
	for rows.Next() {
		action, err := r.scanAction(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan pending action: %w", err)
		}
		actions = append(actions, action)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating pending actions: %w", err)
	}
	return actions, nil
}

func (r *PendingActionRepository) Count(ctx context.Context, filter outbound.PendingActionFilter) (int, error) {
	where, args := buildActionWhereClause(filter)
	query := "SELECT COUNT(*) FROM pending_actions WHERE 1=1 " + where
	var count int
	if err := r.db.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count pending actions: %w", err)
	}
	return count, nil
}

// MarkReviewed is a compare-and-set on the pending status: the UPDATE only
// matches while the row is still pending, so of two racing reviewers exactly
// one sees a row change and the other gets ErrActionAlreadyProcessed.
func (r *PendingActionRepository) MarkReviewed(ctx context.Context, id string, review domain.Review) error {
	query := `
        UPDATE pending_actions
        SET status = $2, reviewed_by = $3, reviewed_by_name = $4, review_note = $5, reviewed_at = $6
        WHERE id = $1 AND status = $7
    `
	result, err := r.db.ExecContext(ctx, query,
		id,
		string(review.Status),
		review.ReviewerID,
		review.ReviewerName,
		review.Note,
		review.ReviewedAt,
		string(domain.ActionStatusPending),
	)
	if err != nil {
		return fmt.Errorf("failed to mark action reviewed: %w", err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		// Either the row is gone or someone else already reviewed it.
		if _, err := r.FindByID(ctx, id); err != nil {
			return err
		}
		return domain.ErrActionAlreadyProcessed
	}
	return nil
}

func (r *PendingActionRepository) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM pending_actions WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete pending action: %w", err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return domain.ErrActionNotFound
	}
	return nil
}

const selectActionColumns = `
        SELECT id, module, operation, payload, target_id, requested_by, requested_by_name, status, reviewed_by, reviewed_by_name, review_note, reviewed_at, created_at
        FROM pending_actions`

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func (r *PendingActionRepository) scanAction(row rowScanner) (*domain.PendingAction, error) {
	var (
		action         domain.PendingAction
		payload        []byte
		targetID       sql.NullString
		reviewedBy     sql.NullString
		reviewedByName sql.NullString
		reviewNote     sql.NullString
		reviewedAt     sql.NullTime
	)
	err := row.Scan(
		&action.ID,
		&action.Module,
		&action.Operation,
		&payload,
		&targetID,
		&action.RequestedBy,
		&action.RequestedByName,
		&action.Status,
		&reviewedBy,
		&reviewedByName,
		&reviewNote,
		&reviewedAt,
		&action.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	fields, err := domain.DecodeFields(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to decode action payload: %w", err)
	}
	action.Payload = fields
	action.TargetID = targetID.String
	action.ReviewedBy = reviewedBy.String
	action.ReviewedByName = reviewedByName.String
	action.ReviewNote = reviewNote.String
	if reviewedAt.Valid {
		at := reviewedAt.Time
		action.ReviewedAt = &at
	}
	return &action, nil
}

func buildActionWhereClause(filter outbound.PendingActionFilter) (string, []interface{}) {
	var conditions []string
	var args []interface{}
	idx := 1
	if filter.Status != nil {
		conditions = append(conditions, fmt.Sprintf("status = $%d", idx))
		args = append(args, string(*filter.Status))
		idx++
	}
	if filter.Module != nil {
		conditions = append(conditions, fmt.Sprintf("module = $%d", idx))
		args = append(args, string(*filter.Module))
		idx++
	}
	if filter.Operation != nil {
		conditions = append(conditions, fmt.Sprintf("operation = $%d", idx))
		args = append(args, string(*filter.Operation))
		idx++
	}
	if filter.RequestedBy != "" {
		conditions = append(conditions, fmt.Sprintf("requested_by = $%d", idx))
		args = append(args, filter.RequestedBy)
		idx++
	}
	where := ""
	if len(conditions) > 0 {
		where = " AND " + strings.Join(conditions, " AND ")
	}
	return where, args
}

func nullable(s string) interface{} {
	if s == "" {
		return nil
	}
	return s
}

var _ outbound.PendingActionRepository = (*PendingActionRepository)(nil)
