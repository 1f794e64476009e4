package usecase

import (
	"context"
	"time"

	"github.com/dsse/forwardpriv/internal/database"
	indexDomain "github.com/dsse/forwardpriv/internal/index/domain"
)

// indexUseCase implements IndexUseCase on top of an IndexRepository.
//
// Every write goes through the transaction manager, so a write joins the
// transaction already carried by its context, if any.
type indexUseCase struct {
	txManager database.TxManager
	repo      IndexRepository
}

// NewIndexUseCase creates a new IndexUseCase backed by repo.
func NewIndexUseCase(txManager database.TxManager, repo IndexRepository) IndexUseCase {
	return &indexUseCase{txManager: txManager, repo: repo}
}

// PutNode stores an encrypted chain node at address.
func (u *indexUseCase) PutNode(ctx context.Context, address, nonce, ciphertext []byte) error {
	return u.txManager.WithTx(ctx, func(txCtx context.Context) error {
		return u.repo.Put(txCtx, &indexDomain.Entry{
			Address:    address,
			Nonce:      nonce,
			Ciphertext: ciphertext,
			CreatedAt:  time.Now().UTC(),
		})
	})
}

// GetNode retrieves the encrypted chain node stored at address.
func (u *indexUseCase) GetNode(ctx context.Context, address []byte) (*indexDomain.Entry, error) {
	return u.repo.Get(ctx, address)
}

// Stats reports the node count and total stored size used by server_stats.
func (u *indexUseCase) Stats(ctx context.Context) (int64, int64, error) {
	count, err := u.repo.CountNodes(ctx)
	if err != nil {
		return 0, 0, err
	}
	size, err := u.repo.SizeBytes(ctx)
	if err != nil {
		return 0, 0, err
	}
	return count, size, nil
}

// Clear removes every index entry. Part of server_clear_all.
func (u *indexUseCase) Clear(ctx context.Context) error {
	return u.txManager.WithTx(ctx, func(txCtx context.Context) error {
		return u.repo.Clear(txCtx)
	})
}
