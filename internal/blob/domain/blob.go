// Package domain defines the blob metadata row persisted by the server
// blob store: file_id -> (nonce, stored_file_key, storage_path).
package domain

import "time"

// BlobEntry is a blob's metadata row. The file bytes themselves live in an
// opaque byte container addressed by StoragePath (see blob/storage).
//
// FileKey here is the server-stored copy of the file key: recorded for
// operational completeness but never used as a trust anchor by download,
// which requires the key supplied by the caller.
type BlobEntry struct {
	FileID      string
	Nonce       []byte
	FileKey     []byte
	StoragePath string
	CreatedAt   time.Time
}
