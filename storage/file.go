package storage

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/fhelabs/experiment-registry/interfaces"
)

// FileStore implements a BlobStore on the local file system, one file per
// key. It is meant for development and tests, not for shared deployments.
type FileStore struct {
	baseDir     string
	log         *slog.Logger
	locationURI string
}

// NewFileStore creates a file-backed store rooted at baseDir, creating the
// directory if needed.
func NewFileStore(baseDir string, log *slog.Logger) (*FileStore, error) {
	if err := os.MkdirAll(baseDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create base directory: %w", err)
	}

	return &FileStore{
		baseDir:     baseDir,
		log:         log,
		locationURI: fmt.Sprintf("file://%s", baseDir),
	}, nil
}

// GetData reads the blob stored under key. Returns ErrNotFound if the file
// doesn't exist or is empty.
func (s *FileStore) GetData(ctx context.Context, key string) ([]byte, error) {
	path, err := s.keyPath(key)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, interfaces.ErrNotFound
		}
		return nil, fmt.Errorf("failed to read blob file: %w", err)
	}
	if len(data) == 0 {
		return nil, interfaces.ErrNotFound
	}

	s.log.Debug("Fetched blob from file",
		slog.String("path", path),
		slog.Int("size", len(data)))
	return data, nil
}

// SetData writes value to the file derived from key.
func (s *FileStore) SetData(ctx context.Context, key string, value []byte) error {
	path, err := s.keyPath(key)
	if err != nil {
		return err
	}

	if err := os.WriteFile(path, value, 0644); err != nil {
		return fmt.Errorf("failed to write blob file: %w", err)
	}

	s.log.Debug("Stored blob in file",
		slog.String("path", path),
		slog.Int("size", len(value)))
	return nil
}

// Available checks that the base directory still exists.
func (s *FileStore) Available(ctx context.Context) bool {
	_, err := os.Stat(s.baseDir)
	if err != nil {
		s.log.Debug("File store unavailable", "err", err)
		return false
	}
	return true
}

// Name returns a unique identifier for this store.
func (s *FileStore) Name() string {
	return fmt.Sprintf("file-%s", filepath.Base(s.baseDir))
}

// LocationURI returns the URI that identifies this store.
func (s *FileStore) LocationURI() string {
	return s.locationURI
}

// keyPath maps a storage key onto a file path, rejecting keys that would
// escape the base directory.
func (s *FileStore) keyPath(key string) (string, error) {
	if key == "" || strings.ContainsAny(key, "/\\") || strings.Contains(key, "..") {
		return "", fmt.Errorf("invalid storage key: %q", key)
	}
	return filepath.Join(s.baseDir, key), nil
}
