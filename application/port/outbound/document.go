package outbound

import (
	"context"
	"io"

	"github.com/terrapoint/terrapoint/domain"
)

type DocumentRepository interface {
	Create(ctx context.Context, doc *domain.Document) error
	FindByID(ctx context.Context, id string) (*domain.Document, error)
	ListByEntity(ctx context.Context, module domain.Module, entityID string) ([]*domain.Document, error)
	Delete(ctx context.Context, id string) error
}

// FileStorage stores uploaded file bodies under opaque keys. Backed by
// viant/afs, so the base URL decides the scheme (local file path now,
// an S3-compatible bucket URL in deployment).
type FileStorage interface {
	Upload(ctx context.Context, key string, body io.Reader) (publicURL string, err error)
	Download(ctx context.Context, key string) (io.ReadCloser, error)
	Delete(ctx context.Context, key string) error
}
