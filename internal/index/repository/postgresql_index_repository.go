// Package repository implements data persistence for the encrypted index
// store. Provides PostgreSQL and MySQL implementations with transaction
// support via database.GetTx().
package repository

import (
	"context"
	"database/sql"

	"github.com/dsse/forwardpriv/internal/database"
	apperrors "github.com/dsse/forwardpriv/internal/errors"
	indexDomain "github.com/dsse/forwardpriv/internal/index/domain"
)

// PostgreSQLIndexRepository implements index-entry persistence for
// PostgreSQL. Addresses, nonces and ciphertexts are all stored as BYTEA.
type PostgreSQLIndexRepository struct {
	db *sql.DB
}

// NewPostgreSQLIndexRepository creates a new PostgreSQL index repository.
func NewPostgreSQLIndexRepository(db *sql.DB) *PostgreSQLIndexRepository {
	return &PostgreSQLIndexRepository{db: db}
}

// Put upserts an encrypted entry at its address.
func (p *PostgreSQLIndexRepository) Put(ctx context.Context, entry *indexDomain.Entry) error {
	querier := database.GetTx(ctx, p.db)

	query := `INSERT INTO index_nodes (address, nonce, ciphertext, created_at)
			  VALUES ($1, $2, $3, $4)
			  ON CONFLICT (address) DO UPDATE
			  SET nonce = EXCLUDED.nonce, ciphertext = EXCLUDED.ciphertext, created_at = EXCLUDED.created_at`

	_, err := querier.ExecContext(ctx, query, entry.Address, entry.Nonce, entry.Ciphertext, entry.CreatedAt)
	if err != nil {
		return apperrors.Wrap(err, "failed to put index node")
	}
	return nil
}

// Get retrieves the encrypted entry at address.
func (p *PostgreSQLIndexRepository) Get(ctx context.Context, address []byte) (*indexDomain.Entry, error) {
	querier := database.GetTx(ctx, p.db)

	query := `SELECT address, nonce, ciphertext, created_at FROM index_nodes WHERE address = $1`

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
func (p *PostgreSQLIndexRepository) CountNodes(ctx context.Context) (int64, error) {
	querier := database.GetTx(ctx, p.db)

	var count int64
	err := querier.QueryRowContext(ctx, `SELECT COUNT(*) FROM index_nodes`).Scan(&count)
	if err != nil {
		return 0, apperrors.Wrap(err, "failed to count index nodes")
	}
	return count, nil
}

// SizeBytes returns the total nonce+ciphertext bytes stored across all entries.
func (p *PostgreSQLIndexRepository) SizeBytes(ctx context.Context) (int64, error) {
	querier := database.GetTx(ctx, p.db)

	var size sql.NullInt64
	query := `SELECT SUM(octet_length(nonce) + octet_length(ciphertext)) FROM index_nodes`
	if err := querier.QueryRowContext(ctx, query).Scan(&size); err != nil {
		return 0, apperrors.Wrap(err, "failed to size index nodes")
	}
	return size.Int64, nil
}

// Clear deletes every index entry.
func (p *PostgreSQLIndexRepository) Clear(ctx context.Context) error {
	querier := database.GetTx(ctx, p.db)

	if _, err := querier.ExecContext(ctx, `DELETE FROM index_nodes`); err != nil {
		return apperrors.Wrap(err, "failed to clear index nodes")
	}
	return nil
}
