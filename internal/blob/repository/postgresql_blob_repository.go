// Package repository implements data persistence for blob metadata rows.
// Provides PostgreSQL and MySQL implementations with transaction support
// via database.GetTx().
package repository

import (
	"context"
	"database/sql"

	blobDomain "github.com/dsse/forwardpriv/internal/blob/domain"
	"github.com/dsse/forwardpriv/internal/database"
	apperrors "github.com/dsse/forwardpriv/internal/errors"
)

// PostgreSQLBlobRepository implements blob metadata persistence for
// PostgreSQL.
type PostgreSQLBlobRepository struct {
	db *sql.DB
}

// NewPostgreSQLBlobRepository creates a new PostgreSQL blob repository.
func NewPostgreSQLBlobRepository(db *sql.DB) *PostgreSQLBlobRepository {
	return &PostgreSQLBlobRepository{db: db}
}

// Put upserts a blob's metadata row, replacing it on file_id collision.
func (p *PostgreSQLBlobRepository) Put(ctx context.Context, entry *blobDomain.BlobEntry) error {
	querier := database.GetTx(ctx, p.db)

	query := `INSERT INTO blobs (file_id, nonce, file_key, storage_path, created_at)
			  VALUES ($1, $2, $3, $4, $5)
			  ON CONFLICT (file_id) DO UPDATE
			  SET nonce = EXCLUDED.nonce, file_key = EXCLUDED.file_key,
			      storage_path = EXCLUDED.storage_path, created_at = EXCLUDED.created_at`

	_, err := querier.ExecContext(ctx, query, entry.FileID, entry.Nonce, entry.FileKey, entry.StoragePath, entry.CreatedAt)
	if err != nil {
		return apperrors.Wrap(err, "failed to put blob")
	}
	return nil
}

// Get retrieves a blob's metadata row.
func (p *PostgreSQLBlobRepository) Get(ctx context.Context, fileID string) (*blobDomain.BlobEntry, error) {
	querier := database.GetTx(ctx, p.db)

	query := `SELECT file_id, nonce, file_key, storage_path, created_at FROM blobs WHERE file_id = $1`

	var entry blobDomain.BlobEntry
	err := querier.QueryRowContext(ctx, query, fileID).Scan(
		&entry.FileID, &entry.Nonce, &entry.FileKey, &entry.StoragePath, &entry.CreatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, blobDomain.ErrBlobNotFound
	}
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to get blob")
	}
	return &entry, nil
}

// CountFiles returns the total number of stored blob metadata rows.
func (p *PostgreSQLBlobRepository) CountFiles(ctx context.Context) (int64, error) {
	querier := database.GetTx(ctx, p.db)

	var count int64
	err := querier.QueryRowContext(ctx, `SELECT COUNT(*) FROM blobs`).Scan(&count)
	if err != nil {
		return 0, apperrors.Wrap(err, "failed to count blobs")
	}
	return count, nil
}

// Clear deletes every blob metadata row.
func (p *PostgreSQLBlobRepository) Clear(ctx context.Context) error {
	querier := database.GetTx(ctx, p.db)

	if _, err := querier.ExecContext(ctx, `DELETE FROM blobs`); err != nil {
		return apperrors.Wrap(err, "failed to clear blobs")
	}
	return nil
}
