package domain

import "time"

// Document is the metadata row for an uploaded file attached to an entity.
// The file body lives in the storage backend under StorageKey.
type Document struct {
	ID          string    `json:"id"`
	Module      Module    `json:"module"`
	EntityID    string    `json:"entity_id"`
	Label       string    `json:"label,omitempty"`
	Filename    string    `json:"filename"`
	ContentType string    `json:"content_type,omitempty"`
	FileSize    int64     `json:"file_size,omitempty"`
	StorageKey  string    `json:"storage_key"`
	PublicURL   string    `json:"public_url,omitempty"`
	UploadedBy  string    `json:"uploaded_by"`
	UploadedAt  time.Time `json:"uploaded_at"`
}
