// Package usecase implements business logic orchestration for the server-side
// index store: the append-only address -> encrypted-node map that backs
// every keyword's chain.
package usecase

import (
	"context"

	indexDomain "github.com/dsse/forwardpriv/internal/index/domain"
)

// IndexRepository defines persistence operations for encrypted index entries.
// Implementations must support transaction-aware operations via context
// propagation (see database.GetTx).
type IndexRepository interface {
	// Put upserts an entry at its address. Idempotent: re-inserting the same
	// address overwrites the previous row, which exists only to make
	// crash/retry safe — addresses do not collide in normal operation.
	Put(ctx context.Context, entry *indexDomain.Entry) error

	// Get retrieves the entry at address, or ErrNodeNotFound.
	Get(ctx context.Context, address []byte) (*indexDomain.Entry, error)

	// CountNodes returns the total number of stored entries.
	CountNodes(ctx context.Context) (int64, error)

	// SizeBytes returns the total number of ciphertext+nonce bytes stored.
	SizeBytes(ctx context.Context) (int64, error)

	// Clear deletes every entry. Used by server_clear_all.
	Clear(ctx context.Context) error
}

// IndexUseCase defines business logic operations for the index store.
type IndexUseCase interface {
	PutNode(ctx context.Context, address, nonce, ciphertext []byte) error
	GetNode(ctx context.Context, address []byte) (*indexDomain.Entry, error)
	Stats(ctx context.Context) (nodeCount int64, sizeBytes int64, err error)
	Clear(ctx context.Context) error
}
