package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/terrapoint/terrapoint/application/port/outbound"
	"github.com/terrapoint/terrapoint/domain"
)

type DocumentRepository struct {
	db Querier
}

func NewDocumentRepository(db Querier) *DocumentRepository {
	return &DocumentRepository{db: db}
}

func (r *DocumentRepository) Create(ctx context.Context, doc *domain.Document) error {
	query := `
        INSERT INTO documents (id, module, entity_id, label, filename, content_type, file_size, storage_key, public_url, uploaded_by, uploaded_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
    `
	_, err := r.db.ExecContext(ctx, query,
		doc.ID,
		string(doc.Module),
		doc.EntityID,
		doc.Label,
		doc.Filename,
		doc.ContentType,
		doc.FileSize,
		doc.StorageKey,
		doc.PublicURL,
		doc.UploadedBy,
		doc.UploadedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create document: %w", err)
	}
	return nil
}

func (r *DocumentRepository) FindByID(ctx context.Context, id string) (*domain.Document, error) {
	query := `
        SELECT id, module, entity_id, label, filename, content_type, file_size, storage_key, public_url, uploaded_by, uploaded_at
        FROM documents
        WHERE id = $1
    `
	var doc domain.Document
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&doc.ID,
		&doc.Module,
		&doc.EntityID,
		&doc.Label,
		&doc.Filename,
		&doc.ContentType,
		&doc.FileSize,
		&doc.StorageKey,
		&doc.PublicURL,
		&doc.UploadedBy,
		&doc.UploadedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrDocumentNotFound
		}
		return nil, fmt.Errorf("failed to find document: %w", err)
	}
	return &doc, nil
}

func (r *DocumentRepository) ListByEntity(ctx context.Context, module domain.Module, entityID string) ([]*domain.Document, error) {
	query := `
        SELECT id, module, entity_id, label, filename, content_type, file_size, storage_key, public_url, uploaded_by, uploaded_at
        FROM documents
        WHERE module = $1 AND entity_id = $2
        ORDER BY uploaded_at DESC
    `
	rows, err := r.db.QueryContext(ctx, query, string(module), entityID)
	if err != nil {
		return nil, fmt.Errorf("failed to query documents: %w", err)
	}
	defer rows.Close()
	var docs []*domain.Document
	for rows.Next() {
		var doc domain.Document
		err := rows.Scan(
			&doc.ID,
			&doc.Module,
			&doc.EntityID,
			&doc.Label,
			&doc.Filename,
			&doc.ContentType,
			&doc.FileSize,
			&doc.StorageKey,
			&doc.PublicURL,
			&doc.UploadedBy,
			&doc.UploadedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan document: %w", err)
		}
		docs = append(docs, &doc)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating documents: %w", err)
	}
	return docs, nil
}

func (r *DocumentRepository) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM documents WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete document: %w", err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return domain.ErrDocumentNotFound
	}
	return nil
}

var _ outbound.DocumentRepository = (*DocumentRepository)(nil)
