package usecase

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/terrapoint/terrapoint/application/port/inbound"
	"github.com/terrapoint/terrapoint/application/port/outbound"
	"github.com/terrapoint/terrapoint/domain"
)

// DocumentUseCase stores uploaded files and their metadata rows. Upload is
// open to every active user; removal is restricted to admins and the
// original uploader.
type DocumentUseCase struct {
	documents outbound.DocumentRepository
	storage   outbound.FileStorage
}

func NewDocumentUseCase(documents outbound.DocumentRepository, storage outbound.FileStorage) inbound.DocumentUseCase {
	return &DocumentUseCase{documents: documents, storage: storage}
}

func (uc *DocumentUseCase) Upload(ctx context.Context, p domain.Principal, req inbound.UploadDocumentRequest) (*domain.Document, error) {
	module, err := domain.ParseModule(req.Module)
	if err != nil {
		return nil, err
	}
	if req.EntityID == "" || req.Filename == "" || req.Body == nil {
		return nil, domain.ErrInvalidPayload
	}

	id := uuid.New().String()
	key := fmt.Sprintf("documents/%s/%s%s", module, id, filepath.Ext(req.Filename))
	url, err := uc.storage.Upload(ctx, key, req.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to store file: %w", err)
	}

	doc := &domain.Document{
		ID:          id,
		Module:      module,
		EntityID:    req.EntityID,
		Label:       req.Label,
		Filename:    req.Filename,
		ContentType: req.ContentType,
		FileSize:    req.FileSize,
		StorageKey:  key,
		PublicURL:   url,
		UploadedBy:  p.ID,
		UploadedAt:  time.Now().UTC(),
	}
	if err := uc.documents.Create(ctx, doc); err != nil {
		// Metadata write failed: remove the orphaned file body.
		_ = uc.storage.Delete(ctx, key)
		return nil, fmt.Errorf("failed to create document record: %w", err)
	}
	return doc, nil
}

func (uc *DocumentUseCase) ListByEntity(ctx context.Context, p domain.Principal, module, entityID string) ([]*domain.Document, error) {
	m, err := domain.ParseModule(module)
	if err != nil {
		return nil, err
	}
	return uc.documents.ListByEntity(ctx, m, entityID)
}

func (uc *DocumentUseCase) Download(ctx context.Context, p domain.Principal, id string) (*domain.Document, io.ReadCloser, error) {
	doc, err := uc.documents.FindByID(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	body, err := uc.storage.Download(ctx, doc.StorageKey)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read file: %w", err)
	}
	return doc, body, nil
}

func (uc *DocumentUseCase) Delete(ctx context.Context, p domain.Principal, id string) error {
	doc, err := uc.documents.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if !p.IsAdmin() && doc.UploadedBy != p.ID {
		return domain.ErrPermissionDenied
	}
	if err := uc.documents.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete document record: %w", err)
	}
	_ = uc.storage.Delete(ctx, doc.StorageKey)
	return nil
}
