package repository

import (
	"context"
	"database/sql"

	"github.com/dsse/forwardpriv/internal/database"
	apperrors "github.com/dsse/forwardpriv/internal/errors"
	indexDomain "github.com/dsse/forwardpriv/internal/index/domain"
)

// MySQLIndexRepository implements index-entry persistence for MySQL.
// Addresses, nonces and ciphertexts are all stored as VARBINARY/BLOB.
type MySQLIndexRepository struct {
	db *sql.DB
}

// NewMySQLIndexRepository creates a new MySQL index repository.
func NewMySQLIndexRepository(db *sql.DB) *MySQLIndexRepository {
	return &MySQLIndexRepository{db: db}
}

// Put upserts an encrypted entry at its address.
func (m *MySQLIndexRepository) Put(ctx context.Context, entry *indexDomain.Entry) error {
	querier := database.GetTx(ctx, m.db)

	query := `INSERT INTO index_nodes (address, nonce, ciphertext, created_at)
			  VALUES (?, ?, ?, ?)
			  ON DUPLICATE KEY UPDATE nonce = VALUES(nonce), ciphertext = VALUES(ciphertext), created_at = VALUES(created_at)`

	_, err := querier.ExecContext(ctx, query, entry.Address, entry.Nonce, entry.Ciphertext, entry.CreatedAt)
	if err != nil {
		return apperrors.Wrap(err, "failed to put index node")
	}
	return nil
}

// Get retrieves the encrypted entry at address.
func (m *MySQLIndexRepository) Get(ctx context.Context, address []byte) (*indexDomain.Entry, error) {
	querier := database.GetTx(ctx, m.db)

	query := `SELECT address, nonce, ciphertext, created_at FROM index_nodes WHERE address = ?`

	var entry indexDomain.Entry
	err := querier.QueryRowContext(ctx, query, address).Scan(
		&entry.Address, &entry.Nonce, &entry.Ciphertext, &entry.CreatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, indexDomain.ErrNodeNotFound
	}
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to get index node")
	}
	return &entry, nil
}

// CountNodes returns the total number of stored entries.
func (m *MySQLIndexRepository) CountNodes(ctx context.Context) (int64, error) {
	querier := database.GetTx(ctx, m.db)

	var count int64
	err := querier.QueryRowContext(ctx, `SELECT COUNT(*) FROM index_nodes`).Scan(&count)
	if err != nil {
		return 0, apperrors.Wrap(err, "failed to count index nodes")
	}
	return count, nil
}

// SizeBytes returns the total nonce+ciphertext bytes stored across all entries.
func (m *MySQLIndexRepository) SizeBytes(ctx context.Context) (int64, error) {
	querier := database.GetTx(ctx, m.db)

	var size sql.NullInt64
	query := `SELECT SUM(LENGTH(nonce) + LENGTH(ciphertext)) FROM index_nodes`
	if err := querier.QueryRowContext(ctx, query).Scan(&size); err != nil {
		return 0, apperrors.Wrap(err, "failed to size index nodes")
	}
	return size.Int64, nil
}

// Clear deletes every index entry.
func (m *MySQLIndexRepository) Clear(ctx context.Context) error {
	querier := database.GetTx(ctx, m.db)

	if _, err := querier.ExecContext(ctx, `DELETE FROM index_nodes`); err != nil {
		return apperrors.Wrap(err, "failed to clear index nodes")
	}
	return nil
}
