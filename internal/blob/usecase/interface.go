// Package usecase implements business logic orchestration for the server
// blob store: a metadata row describing each file, stored separately from
// its encrypted bytes.
package usecase

import (
	"context"

	blobDomain "github.com/dsse/forwardpriv/internal/blob/domain"
)

// BlobRepository defines persistence operations for blob metadata rows.
type BlobRepository interface {
	Put(ctx context.Context, entry *blobDomain.BlobEntry) error
	Get(ctx context.Context, fileID string) (*blobDomain.BlobEntry, error)
	Clear(ctx context.Context) error

	// CountFiles returns the total number of stored blob metadata rows.
	CountFiles(ctx context.Context) (int64, error)
}

// ByteStore is the opaque byte container a blob's encrypted payload is
// written to, addressed by the storage_path recorded in its metadata row.
type ByteStore interface {
	Put(ctx context.Context, fileID string, data []byte) (path string, err error)
	Get(ctx context.Context, path string) ([]byte, error)
	Delete(ctx context.Context, path string) error
	Clear(ctx context.Context) error

	// Size returns the total bytes currently held across every container.
	Size(ctx context.Context) (int64, error)
}

// BlobUseCase defines business logic operations for the blob store.
type BlobUseCase interface {
	// PutBlob writes the encrypted file bytes and records its metadata row.
	PutBlob(ctx context.Context, fileID string, nonce, storedFileKey, encryptedBytes []byte) error

	// GetBlob retrieves a blob's metadata and encrypted bytes.
	GetBlob(ctx context.Context, fileID string) (entry *blobDomain.BlobEntry, encryptedBytes []byte, err error)

	// ClearAll drops every blob entry and its underlying bytes.
	ClearAll(ctx context.Context) error

	// Stats reports the file count and total stored byte size used by
	// server_stats.
	Stats(ctx context.Context) (fileCount int64, sizeBytes int64, err error)
}
