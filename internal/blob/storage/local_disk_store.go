package storage

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	apperrors "github.com/dsse/forwardpriv/internal/errors"
)

// LocalDiskStore implements ByteStore as one file per blob under baseDir,
// named by file_id. This is the default persistence engine; any ByteStore
// implementation can be substituted without touching blob/usecase.
type LocalDiskStore struct {
	baseDir string
}

// NewLocalDiskStore creates a LocalDiskStore rooted at baseDir, creating the
// directory if it does not already exist.
func NewLocalDiskStore(baseDir string) (*LocalDiskStore, error) {
	if err := os.MkdirAll(baseDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create blob storage directory: %w", err)
	}
	return &LocalDiskStore{baseDir: baseDir}, nil
}

func (l *LocalDiskStore) pathFor(fileID string) string {
	return filepath.Join(l.baseDir, fileID)
}

// Put writes data to a file named by fileID and returns its path. Writes go
// to a temp file in the same directory followed by an atomic rename, the
// same write-then-rename discipline client state persistence uses, so a
// crash mid-write never leaves a torn blob on disk.
func (l *LocalDiskStore) Put(_ context.Context, fileID string, data []byte) (string, error) {
	finalPath := l.pathFor(fileID)

	tmp, err := os.CreateTemp(l.baseDir, fileID+".tmp-*")
	if err != nil {
		return "", fmt.Errorf("failed to create temp blob file: %w", err)
	}
	tmpPath := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpPath)
		return "", fmt.Errorf("failed to write blob: %w", err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpPath)
		return "", fmt.Errorf("failed to close blob temp file: %w", err)
	}
	if err := os.Rename(tmpPath, finalPath); err != nil {
		_ = os.Remove(tmpPath)
		return "", fmt.Errorf("failed to finalize blob file: %w", err)
	}

	return finalPath, nil
}

// Get reads the bytes stored at path.
func (l *LocalDiskStore) Get(_ context.Context, path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, apperrors.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read blob: %w", err)
	}
	return data, nil
}

// Delete removes the file at path, treating an already-missing file as success.
func (l *LocalDiskStore) Delete(_ context.Context, path string) error {
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to delete blob: %w", err)
	}
	return nil
}

// Clear removes the entire storage directory tree and recreates it empty.
func (l *LocalDiskStore) Clear(_ context.Context) error {
	if err := os.RemoveAll(l.baseDir); err != nil {
		return fmt.Errorf("failed to clear blob storage: %w", err)
	}
	return os.MkdirAll(l.baseDir, 0o755)
}

// Size walks baseDir and sums the size of every regular file in it.
func (l *LocalDiskStore) Size(_ context.Context) (int64, error) {
	var total int64
	err := filepath.Walk(l.baseDir, func(_ string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if !info.IsDir() {
			total += info.Size()
		}
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("failed to size blob storage: %w", err)
	}
	return total, nil
}
