package model

import "time"

// Document is client paperwork (contracts, KYC, specs) stored in object
// storage and registered with the platform API.
type Document struct {
	ID          int64     `json:"id"`
	ClientID    int64     `json:"client_id"`
	ProjectID   int64     `json:"project_id,omitempty"`
	Name        string    `json:"name"`
	ContentType string    `json:"content_type"`
	SizeBytes   int64     `json:"size_bytes"`
	StorageKey  string    `json:"storage_key"`
	UploadedBy  int64     `json:"uploaded_by"`
	UploadedAt  time.Time `json:"uploaded_at"`
}

// RegisterDocumentRequest registers an uploaded object with the platform.
type RegisterDocumentRequest struct {
	ClientID    int64  `json:"client_id"`
	ProjectID   int64  `json:"project_id,omitempty"`
	Name        string `json:"name"`
	ContentType string `json:"content_type"`
	SizeBytes   int64  `json:"size_bytes"`
	StorageKey  string `json:"storage_key"`
}
