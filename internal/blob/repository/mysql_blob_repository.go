package repository

import (
	"context"
	"database/sql"

	blobDomain "github.com/dsse/forwardpriv/internal/blob/domain"
	"github.com/dsse/forwardpriv/internal/database"
	apperrors "github.com/dsse/forwardpriv/internal/errors"
)

// MySQLBlobRepository implements blob metadata persistence for MySQL.
type MySQLBlobRepository struct {
	db *sql.DB
}

// NewMySQLBlobRepository creates a new MySQL blob repository.
func NewMySQLBlobRepository(db *sql.DB) *MySQLBlobRepository {
	return &MySQLBlobRepository{db: db}
}

// Put upserts a blob's metadata row, replacing it on file_id collision.
func (m *MySQLBlobRepository) Put(ctx context.Context, entry *blobDomain.BlobEntry) error {
	querier := database.GetTx(ctx, m.db)

	query := `INSERT INTO blobs (file_id, nonce, file_key, storage_path, created_at)
			  VALUES (?, ?, ?, ?, ?)
			  ON DUPLICATE KEY UPDATE nonce = VALUES(nonce), file_key = VALUES(file_key),
			      storage_path = VALUES(storage_path), created_at = VALUES(created_at)`

	_, err := querier.ExecContext(ctx, query, entry.FileID, entry.Nonce, entry.FileKey, entry.StoragePath, entry.CreatedAt)
	if err != nil {
		return apperrors.Wrap(err, "failed to put blob")
	}
	return nil
}

// Get retrieves a blob's metadata row.
func (m *MySQLBlobRepository) Get(ctx context.Context, fileID string) (*blobDomain.BlobEntry, error) {
	querier := database.GetTx(ctx, m.db)

	query := `SELECT file_id, nonce, file_key, storage_path, created_at FROM blobs WHERE file_id = ?`

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
func (m *MySQLBlobRepository) CountFiles(ctx context.Context) (int64, error) {
	querier := database.GetTx(ctx, m.db)

	var count int64
	err := querier.QueryRowContext(ctx, `SELECT COUNT(*) FROM blobs`).Scan(&count)
	if err != nil {
		return 0, apperrors.Wrap(err, "failed to count blobs")
	}
	return count, nil
}

// Clear deletes every blob metadata row.
func (m *MySQLBlobRepository) Clear(ctx context.Context) error {
	querier := database.GetTx(ctx, m.db)

	if _, err := querier.ExecContext(ctx, `DELETE FROM blobs`); err != nil {
		return apperrors.Wrap(err, "failed to clear blobs")
	}
	return nil
}
