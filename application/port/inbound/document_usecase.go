package inbound

import (
	"context"
	"io"

	"github.com/terrapoint/terrapoint/domain"
)

type UploadDocumentRequest struct {
	Module      string    `json:"module"`
	EntityID    string    `json:"entity_id"`
	Label       string    `json:"label,omitempty"`
	Filename    string    `json:"filename"`
	ContentType string    `json:"content_type,omitempty"`
	FileSize    int64     `json:"file_size,omitempty"`
	Body        io.Reader `json:"-"`
}

type DocumentUseCase interface {
	Upload(ctx context.Context, p domain.Principal, req UploadDocumentRequest) (*domain.Document, error)
	ListByEntity(ctx context.Context, p domain.Principal, module, entityID string) ([]*domain.Document, error)
	Download(ctx context.Context, p domain.Principal, id string) (*domain.Document, io.ReadCloser, error)
	Delete(ctx context.Context, p domain.Principal, id string) error
}
