package usecase

import (
	"context"
	"fmt"
	"time"

	blobDomain "github.com/dsse/forwardpriv/internal/blob/domain"
	cryptoDomain "github.com/dsse/forwardpriv/internal/crypto/domain"
	"github.com/dsse/forwardpriv/internal/database"
)

// blobUseCase implements BlobUseCase on top of a BlobRepository (metadata)
// and a ByteStore (encrypted bytes). Grounded on the original's
// PersistentServer.store_encrypted_file / get_encrypted_file: a metadata
// row plus a file on disk, file_id collision treated as replacement.
//
// keeper, when non-nil, wraps the server-stored copy of the file key
// (blobDomain.BlobEntry.FileKey) at rest through an external KMS before it
// ever reaches the database. This hardens the operational-completeness
// copy the domain keeps around; it has no bearing on Download, which
// never reads that copy at all.
type blobUseCase struct {
	txManager database.TxManager
	repo      BlobRepository
	bytes     ByteStore
	keeper    cryptoDomain.KMSKeeper
}

// NewBlobUseCase creates a new BlobUseCase. keeper may be nil, in which
// case the stored file key is persisted as-is (the behavior before KMS
// wrapping was wired in).
func NewBlobUseCase(txManager database.TxManager, repo BlobRepository, bytes ByteStore, keeper cryptoDomain.KMSKeeper) BlobUseCase {
	return &blobUseCase{txManager: txManager, repo: repo, bytes: bytes, keeper: keeper}
}

// PutBlob writes encryptedBytes to the byte store, then records the
// metadata row pointing at it. file_id collision overwrites both the bytes
// and the row. storedFileKey is wrapped through keeper before it is
// persisted, when a keeper is configured.
func (u *blobUseCase) PutBlob(ctx context.Context, fileID string, nonce, storedFileKey, encryptedBytes []byte) error {
	path, err := u.bytes.Put(ctx, fileID, encryptedBytes)
	if err != nil {
		return err
	}

	keyToStore := storedFileKey
	if u.keeper != nil {
		keyToStore, err = u.keeper.Encrypt(ctx, storedFileKey)
		if err != nil {
			return fmt.Errorf("failed to wrap stored file key: %w", err)
		}
	}

	return u.txManager.WithTx(ctx, func(txCtx context.Context) error {
		return u.repo.Put(txCtx, &blobDomain.BlobEntry{
			FileID:      fileID,
			Nonce:       nonce,
			FileKey:     keyToStore,
			StoragePath: path,
			CreatedAt:   time.Now().UTC(),
		})
	})
}

// GetBlob retrieves a blob's metadata row and its encrypted bytes. A
// missing row or missing bytes both surface as blobDomain.ErrBlobNotFound.
// entry.FileKey is unwrapped back to its plaintext form when a keeper is
// configured, so callers see the same value PutBlob was given.
func (u *blobUseCase) GetBlob(ctx context.Context, fileID string) (*blobDomain.BlobEntry, []byte, error) {
	entry, err := u.repo.Get(ctx, fileID)
	if err != nil {
		return nil, nil, err
	}

	if u.keeper != nil {
		plainKey, err := u.keeper.Decrypt(ctx, entry.FileKey)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to unwrap stored file key: %w", err)
		}
		entry.FileKey = plainKey
	}

	encryptedBytes, err := u.bytes.Get(ctx, entry.StoragePath)
	if err != nil {
		return nil, nil, blobDomain.ErrBlobNotFound
	}

	return entry, encryptedBytes, nil
}

// ClearAll drops every blob metadata row and the underlying byte container.
func (u *blobUseCase) ClearAll(ctx context.Context) error {
	if err := u.bytes.Clear(ctx); err != nil {
		return err
	}
	return u.txManager.WithTx(ctx, func(txCtx context.Context) error {
		return u.repo.Clear(txCtx)
	})
}

// Stats reports the file count and total stored byte size used by
// server_stats.
func (u *blobUseCase) Stats(ctx context.Context) (int64, int64, error) {
	count, err := u.repo.CountFiles(ctx)
	if err != nil {
		return 0, 0, err
	}
	size, err := u.bytes.Size(ctx)
	if err != nil {
		return 0, 0, err
	}
	return count, size, nil
}
