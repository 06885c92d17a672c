package auth

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

const credentialsFileName = "session.json"

// Credentials is a persisted session record: the bearer token plus the
// serialized user profile, stored side by side.
type Credentials struct {
	Token string          `json:"token"`
	User  json.RawMessage `json:"user"`
}

// CredentialStore persists one session record across process restarts on
// the same device. A nil record from Read means no session is stored.
type CredentialStore interface {
	Read() (*Credentials, error)
	Write(token string, user []byte) error
	Clear() error
}

// FileStore keeps the session record in a mode-0600 JSON file under the
// user's home directory (~/.baraza/session.json by default).
type FileStore struct {
	path string
}

// NewFileStore creates a FileStore at the given path. An empty path
// resolves to ~/.baraza/session.json.
func NewFileStore(path string) (*FileStore, error) {
	if path == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("find home directory: %w", err)
		}
		path = filepath.Join(home, ".baraza", credentialsFileName)
	}
	return &FileStore{path: path}, nil
}

// Read loads the stored session record. A missing file is not an error;
// it reports an absent record.
func (fs *FileStore) Read() (*Credentials, error) {
	data, err := os.ReadFile(fs.path)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read credentials: %w", err)
	}

	var creds Credentials
	if err := json.Unmarshal(data, &creds); err != nil {
		return nil, fmt.Errorf("parse credentials: %w", err)
	}
	if creds.Token == "" || len(creds.User) == 0 {
		return nil, fmt.Errorf("incomplete credentials record")
	}
	return &creds, nil
}

// Write stores the session record, creating the parent directory with
// restrictive permissions if needed.
func (fs *FileStore) Write(token string, user []byte) error {
	if err := os.MkdirAll(filepath.Dir(fs.path), 0700); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}

	data, err := json.MarshalIndent(Credentials{Token: token, User: user}, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal credentials: %w", err)
	}

	if err := os.WriteFile(fs.path, data, 0600); err != nil {
		return fmt.Errorf("write credentials: %w", err)
	}
	return nil
}

// Clear removes the stored record. Removing an absent record is a no-op.
func (fs *FileStore) Clear() error {
	if err := os.Remove(fs.path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("clear credentials: %w", err)
	}
	return nil
}

// MemStore is an in-memory CredentialStore for tests.
type MemStore struct {
	creds *Credentials
}

func (ms *MemStore) Read() (*Credentials, error) {
	if ms.creds == nil {
		return nil, nil
	}
	c := *ms.creds
	return &c, nil
}

func (ms *MemStore) Write(token string, user []byte) error {
	ms.creds = &Credentials{Token: token, User: append([]byte(nil), user...)}
	return nil
}

func (ms *MemStore) Clear() error {
	ms.creds = nil
	return nil
}
