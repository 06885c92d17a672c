package storage

import (
	"context"
	"fmt"
	"io"
	"sync"
)

// Uploader stores document content and returns the object's storage key.
// The platform API records metadata; the bytes live in object storage.
type Uploader interface {
	Upload(ctx context.Context, key string, body io.Reader, contentType string) error
}

// MemUploader is an in-memory Uploader for tests and local development.
type MemUploader struct {
	mu      sync.Mutex
	objects map[string][]byte
}

// NewMemUploader creates an empty in-memory uploader.
func NewMemUploader() *MemUploader {
	return &MemUploader{objects: make(map[string][]byte)}
}

func (m *MemUploader) Upload(_ context.Context, key string, body io.Reader, _ string) error {
	data, err := io.ReadAll(body)
	if err != nil {
		return fmt.Errorf("read upload body: %w", err)
	}
	m.mu.Lock()
	m.objects[key] = data
	m.mu.Unlock()
	return nil
}

// Object returns a stored object's content, for test assertions.
func (m *MemUploader) Object(key string) ([]byte, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	data, ok := m.objects[key]
	return data, ok
}
