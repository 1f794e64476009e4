// Package usecase implements the client-side upload/search/download/clear
// protocol, composing the index use case, blob use case, search engine,
// crypto services and client state store into single higher-level
// operations.
package usecase

import (
	"context"

	clientDomain "github.com/dsse/forwardpriv/internal/client/domain"
)

// ClientUseCase implements the protocol a DSSE client runs against the
// server: upload, search, download, clear, and the supplemental list of
// tracked keywords.
type ClientUseCase interface {
	// Upload encrypts plaintext under a fresh file key, stores it as a
	// blob, appends a new head node to keyword's chain, and advances the
	// client's local head for keyword. Returns the generated file id.
	Upload(ctx context.Context, keyword, originalName string, plaintext []byte) (fileID string, err error)

	// Search walks the chain for keyword from the client's current head
	// and returns every descriptor recovered. Returns ErrKeywordNotFound
	// if keyword has never been uploaded to from this client state.
	Search(ctx context.Context, keyword string) ([]clientDomain.Descriptor, error)

	// Download fetches the named file's ciphertext and decrypts it with
	// fileKeyHex, the hex-encoded file key supplied by the caller. The
	// server-recorded copy of the key (blobDomain.BlobEntry.FileKey) is
	// never used as a trust anchor here: a wrong fileKeyHex must fail
	// decryption, not silently fall back to the stored key.
	Download(ctx context.Context, fileID, fileKeyHex string) (plaintext []byte, err error)

	// ClearClient discards all local chain-head state without touching
	// the server. It does not delete any uploaded data.
	ClearClient() error

	// ListKeywords returns every keyword the client has local state for.
	ListKeywords() []string

	// Stats summarizes server-side index and blob storage usage.
	Stats(ctx context.Context) (*clientDomain.Stats, error)
}
