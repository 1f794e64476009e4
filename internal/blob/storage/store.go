// Package storage implements the opaque byte container that backs blob
// entries: local-disk storage addressed by file_id, grounded on the
// original's store_encrypted_file/get_encrypted_file file-per-blob layout.
package storage

import "context"

// ByteStore is the swappable byte container behind a blob's storage_path,
// kept as a separate concern from the metadata row so the persistence
// engine can change without touching blob use case code.
type ByteStore interface {
	// Put writes data for fileID and returns the storage path it was
	// written under.
	Put(ctx context.Context, fileID string, data []byte) (path string, err error)

	// Get reads the bytes at path.
	Get(ctx context.Context, path string) ([]byte, error)

	// Delete removes the bytes at path, if present.
	Delete(ctx context.Context, path string) error

	// Clear removes every byte container this store manages.
	Clear(ctx context.Context) error

	// Size returns the total bytes currently held across every container
	// this store manages, for server_stats reporting.
	Size(ctx context.Context) (int64, error)
}
