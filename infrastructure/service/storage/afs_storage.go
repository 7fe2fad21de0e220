package storage

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/viant/afs"
	"github.com/viant/afs/file"
	"github.com/viant/afs/url"

	"github.com/terrapoint/terrapoint/application/port/outbound"
)

// AFSStorage stores file bodies through the viant/afs abstract file
// system. The base URL picks the backend: a plain path or file:// URL for
// local disk, an s3:// URL for bucket storage.
type AFSStorage struct {
	fs        afs.Service
	baseURL   string
	publicURL string
}

func NewAFSStorage(baseURL, publicURL string) *AFSStorage {
	return &AFSStorage{
		fs:        afs.New(),
		baseURL:   baseURL,
		publicURL: strings.TrimSuffix(publicURL, "/"),
	}
}

func (s *AFSStorage) Upload(ctx context.Context, key string, body io.Reader) (string, error) {
	target := url.Join(s.baseURL, key)
	if err := s.fs.Upload(ctx, target, file.DefaultFileOsMode, body); err != nil {
		return "", fmt.Errorf("failed to upload %s: %w", key, err)
	}
	if s.publicURL == "" {
		return "/" + key, nil
	}
	return s.publicURL + "/" + key, nil
}

func (s *AFSStorage) Download(ctx context.Context, key string) (io.ReadCloser, error) {
	reader, err := s.fs.OpenURL(ctx, url.Join(s.baseURL, key))
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", key, err)
	}
	return reader, nil
}

func (s *AFSStorage) Delete(ctx context.Context, key string) error {
	if err := s.fs.Delete(ctx, url.Join(s.baseURL, key)); err != nil {
		return fmt.Errorf("failed to delete %s: %w", key, err)
	}
	return nil
}

var _ outbound.FileStorage = (*AFSStorage)(nil)
