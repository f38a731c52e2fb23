package snapshot

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/afero"
)

// FileStore keeps the snapshot in a single JSON file.
type FileStore struct {
	fs   afero.Fs
	path string
}

var _ Store = (*FileStore)(nil)

// NewFileStore creates a file backed store at path on fs.
func NewFileStore(fs afero.Fs, path string) *FileStore {
	return &FileStore{fs: fs, path: path}
}

// Path returns the snapshot file location.
func (s *FileStore) Path() string {
	return s.path
}

// Load reads the snapshot file. A missing file yields an empty snapshot.
func (s *FileStore) Load(ctx context.Context) (Snapshot, error) {
	data, err := afero.ReadFile(s.fs, s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Snapshot{}, nil
		}
		return nil, fmt.Errorf("failed to read snapshot %s: %w", s.path, err)
	}
	return Decode(data)
}

// Save writes the snapshot through a temporary file and a rename so a crash
// never leaves a truncated file behind.
func (s *FileStore) Save(ctx context.Context, snap Snapshot) error {
	data, err := Encode(snap)
	if err != nil {
		return err
	}

	if dir := filepath.Dir(s.path); dir != "." {
		if err := s.fs.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create snapshot directory: %w", err)
		}
	}

	tmp := s.path + ".tmp"
	if err := afero.WriteFile(s.fs, tmp, data, 0o644); err != nil {
		return fmt.Errorf("failed to write snapshot %s: %w", tmp, err)
	}
	if err := s.fs.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("failed to replace snapshot %s: %w", s.path, err)
	}
	return nil
}
