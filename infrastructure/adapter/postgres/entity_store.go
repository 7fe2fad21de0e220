package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/terrapoint/terrapoint/application/port/outbound"
	"github.com/terrapoint/terrapoint/domain"
)

// moduleSpec pins the per-module physical details: the table, the payload
// field that carries ownership, and defaults filled in on insert.
type moduleSpec struct {
	table    string
	ownerKey string
	defaults func(rec domain.Fields)
}

var moduleSpecs = map[domain.Module]moduleSpec{
	domain.ModuleLeads: {
		table:    "leads",
		ownerKey: domain.ModuleLeads.OwnerKey(),
		defaults: func(rec domain.Fields) {
			if rec.String("inquiry_no") == "" {
				rec["inquiry_no"] = domain.GenerateInquiryNo(time.Now().UTC())
			}
		},
	},
	domain.ModuleDevelopers: {table: "developers"},
	domain.ModuleContacts:   {table: "contacts"},
	domain.ModuleProjects:   {table: "projects"},
	domain.ModuleInventory:  {table: "inventory"},
	domain.ModuleLand:       {table: "land"},
}

// EntityStore is the JSONB-backed store for one module's records. All six
// module tables share a single layout (id, owner_id, data, created_at,
// updated_at), so one implementation parameterized by moduleSpec covers
// every module.
type EntityStore struct {
	db     Querier
	module domain.Module
	spec   moduleSpec
}

func NewEntityStore(db Querier, module domain.Module) (*EntityStore, error) {
	spec, ok := moduleSpecs[module]
	if !ok {
		return nil, domain.ErrInvalidModule
	}
	return &EntityStore{db: db, module: module, spec: spec}, nil
}

func (s *EntityStore) Module() domain.Module {
	return s.module
}

func (s *EntityStore) Insert(ctx context.Context, rec domain.Fields) (domain.Fields, error) {
	id := rec.String("id")
	if id == "" {
		return nil, fmt.Errorf("record id cannot be empty")
	}
	doc := stripManaged(rec)
	if s.spec.defaults != nil {
		s.spec.defaults(doc)
	}
	data, err := doc.Encode()
	if err != nil {
		return nil, fmt.Errorf("failed to encode %s record: %w", s.module, err)
	}
	now := time.Now().UTC()
	query := fmt.Sprintf(`
        INSERT INTO %s (id, owner_id, data, created_at, updated_at)
        VALUES ($1, $2, $3, $4, $5)
    `, s.spec.table)
	_, err = s.db.ExecContext(ctx, query, id, s.ownerOf(doc), data, now, now)
	if err != nil {
		return nil, fmt.Errorf("failed to insert %s record: %w", s.module, err)
	}
	return s.compose(id, doc, now, now), nil
}

func (s *EntityStore) Get(ctx context.Context, id string) (domain.Fields, error) {
	query := fmt.Sprintf(`
        SELECT data, created_at, updated_at
        FROM %s
        WHERE id = $1
    `, s.spec.table)
	var (
		data      []byte
		createdAt time.Time
		updatedAt time.Time
	)
	err := s.db.QueryRowContext(ctx, query, id).Scan(&data, &createdAt, &updatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrEntityNotFound
		}
		return nil, fmt.Errorf("failed to find %s record: %w", s.module, err)
	}
	doc, err := domain.DecodeFields(data)
	if err != nil {
		return nil, fmt.Errorf("failed to decode %s record: %w", s.module, err)
	}
	return s.compose(id, doc, createdAt, updatedAt), nil
}

func (s *EntityStore) Patch(ctx context.Context, id string, patch domain.Fields) (domain.Fields, domain.Fields, error) {
	query := fmt.Sprintf(`
        SELECT data, created_at, updated_at
        FROM %s
        WHERE id = $1
        FOR UPDATE
    `, s.spec.table)
	var (
		data      []byte
		createdAt time.Time
		updatedAt time.Time
	)
	err := s.db.QueryRowContext(ctx, query, id).Scan(&data, &createdAt, &updatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil, domain.ErrEntityNotFound
		}
		return nil, nil, fmt.Errorf("failed to find %s record: %w", s.module, err)
	}
	doc, err := domain.DecodeFields(data)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to decode %s record: %w", s.module, err)
	}
	merged := doc.Merge(stripManaged(patch))
	encoded, err := merged.Encode()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to encode %s record: %w", s.module, err)
	}
	now := time.Now().UTC()
	update := fmt.Sprintf(`
        UPDATE %s
        SET data = $2, owner_id = $3, updated_at = $4
        WHERE id = $1
    `, s.spec.table)
	if _, err := s.db.ExecContext(ctx, update, id, encoded, s.ownerOf(merged), now); err != nil {
		return nil, nil, fmt.Errorf("failed to update %s record: %w", s.module, err)
	}
	before := s.compose(id, doc, createdAt, updatedAt)
	after := s.compose(id, merged, createdAt, now)
	return before, after, nil
}

func (s *EntityStore) Remove(ctx context.Context, id string) (domain.Fields, error) {
	before, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	query := fmt.Sprintf(`DELETE FROM %s WHERE id = $1`, s.spec.table)
	result, err := s.db.ExecContext(ctx, query, id)
	if err != nil {
		return nil, fmt.Errorf("failed to delete %s record: %w", s.module, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return nil, domain.ErrEntityNotFound
	}
	return before, nil
}

func (s *EntityStore) List(ctx context.Context, opts outbound.ListOptions) ([]domain.Fields, error) {
	where, args := s.buildWhereClause(opts)
	query := fmt.Sprintf(`
        SELECT id, data, created_at, updated_at
        FROM %s
        WHERE 1=1
    `, s.spec.table) + where
	query, args = s.appendOrder(query, args, opts)
	argIndex := len(args) + 1
	if opts.Limit > 0 {
		query += fmt.Sprintf(" LIMIT $%d", argIndex)
		args = append(args, opts.Limit)
		argIndex++
	}
	if opts.Offset > 0 {
		query += fmt.Sprintf(" OFFSET $%d", argIndex)
		args = append(args, opts.Offset)
	}
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query %s records: %w", s.module, err)
	}
	defer rows.Close()
	var records []domain.Fields
	for rows.Next() {
		var (
			id        string
			data      []byte
			createdAt time.Time
			updatedAt time.Time
		)
		if err := rows.Scan(&id, &data, &createdAt, &updatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan %s record: %w", s.module, err)
		}
		doc, err := domain.DecodeFields(data)
		if err != nil {
			return nil, fmt.Errorf("failed to decode %s record: %w", s.module, err)
		}
		records = append(records, s.compose(id, doc, createdAt, updatedAt))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating %s records: %w", s.module, err)
	}
	return records, nil
}

func (s *EntityStore) Count(ctx context.Context, opts outbound.ListOptions) (int, error) {
	where, args := s.buildWhereClause(opts)
	query := fmt.Sprintf("SELECT COUNT(*) FROM %s WHERE 1=1", s.spec.table) + where
	var count int
	if err := s.db.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count %s records: %w", s.module, err)
	}
	return count, nil
}

func (s *EntityStore) buildWhereClause(opts outbound.ListOptions) (string, []interface{}) {
	var conditions []string
	var args []interface{}
	idx := 1
	if opts.OwnerID != "" {
		conditions = append(conditions, fmt.Sprintf("owner_id = $%d", idx))
		args = append(args, opts.OwnerID)
		idx++
	}
	keys := make([]string, 0, len(opts.Filters))
	for key := range opts.Filters {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	for _, key := range keys {
		conditions = append(conditions, fmt.Sprintf("data->>$%d ILIKE '%%' || $%d || '%%'", idx, idx+1))
		args = append(args, key, opts.Filters[key])
		idx += 2
	}
	where := ""
	if len(conditions) > 0 {
		where = " AND " + strings.Join(conditions, " AND ")
	}
	return where, args
}

func (s *EntityStore) appendOrder(query string, args []interface{}, opts outbound.ListOptions) (string, []interface{}) {
	direction := "ASC"
	if opts.SortDesc {
		direction = "DESC"
	}
	switch opts.Sort {
	case "":
		query += " ORDER BY created_at DESC"
	case "id", "created_at", "updated_at":
		query += fmt.Sprintf(" ORDER BY %s %s", opts.Sort, direction)
	default:
		query += fmt.Sprintf(" ORDER BY data->>$%d %s", len(args)+1, direction)
		args = append(args, opts.Sort)
	}
	return query, args
}

func (s *EntityStore) ownerOf(doc domain.Fields) interface{} {
	if s.spec.ownerKey == "" {
		return nil
	}
	owner := doc.String(s.spec.ownerKey)
	if owner == "" {
		return nil
	}
	return owner
}

// compose rebuilds the outward record: the stored document plus the
// store-managed id and timestamps.
func (s *EntityStore) compose(id string, doc domain.Fields, createdAt, updatedAt time.Time) domain.Fields {
	rec := doc.Clone()
	if rec == nil {
		rec = domain.Fields{}
	}
	rec["id"] = id
	rec["created_at"] = createdAt.Format(time.RFC3339)
	rec["updated_at"] = updatedAt.Format(time.RFC3339)
	return rec
}

// stripManaged drops the store-managed keys from an incoming document so
// they never shadow the real columns.
func stripManaged(rec domain.Fields) domain.Fields {
	doc := rec.Clone()
	if doc == nil {
		return domain.Fields{}
	}
	delete(doc, "id")
	delete(doc, "created_at")
	delete(doc, "updated_at")
	return doc
}

var _ outbound.ModuleStore = (*EntityStore)(nil)
