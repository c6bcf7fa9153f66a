/*
Package identity persists the session's server-assigned identity across restarts.

The server issues an opaque identity string once per session; presenting it back
on the next connection lets the server recognize a returning participant. The
Store interface makes that slot an explicit dependency of the session controller
with a read-at-start/write-on-auth contract, instead of ambient shared storage.
*/
package identity

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// Store holds the single persisted identity slot.
type Store interface {
	// Load returns the cached identity, or an empty string when none is cached.
	Load() (string, error)

	// Save replaces the cached identity.
	Save(id string) error
}

// FileStore persists the identity slot as a small file on disk.
// Last writer wins; there is no locking, since one session is normally active
// per client profile.
type FileStore struct {
	path string
}

// NewFileStore returns a FileStore backed by the given file path.
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// DefaultPath returns the per-user default location of the identity slot,
// under the operating system's user configuration directory.
func DefaultPath() (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("failed to resolve user config directory: %w", err)
	}

	return filepath.Join(configDir, "roomchat", "identity"), nil
}

// Load reads the cached identity. A missing file is not an error: it simply
// means no identity has been issued yet.
func (s *FileStore) Load() (string, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", nil
		}
		return "", fmt.Errorf("failed to read identity file %s: %w", s.path, err)
	}

	return strings.TrimSpace(string(data)), nil
}

// Save writes the identity to the slot, creating the parent directory if needed.
func (s *FileStore) Save(id string) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return fmt.Errorf("failed to create identity directory: %w", err)
	}

	if err := os.WriteFile(s.path, []byte(id+"\n"), 0o600); err != nil {
		return fmt.Errorf("failed to write identity file %s: %w", s.path, err)
	}

	return nil
}

// MemStore is an in-memory Store for tests and headless embedding.
type MemStore struct {
	id string
}

// NewMemStore returns a MemStore seeded with the given identity.
func NewMemStore(id string) *MemStore {
	return &MemStore{id: id}
}

// Load returns the stored identity.
func (s *MemStore) Load() (string, error) {
	return s.id, nil
}

// Save replaces the stored identity.
func (s *MemStore) Save(id string) error {
	s.id = id
	return nil
}
