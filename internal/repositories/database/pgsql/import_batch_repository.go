package pgsql

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/openbooks/ledger/internal/apperrors"
	"github.com/openbooks/ledger/internal/core/domain"
	"github.com/openbooks/ledger/internal/core/ports"
	"github.com/openbooks/ledger/internal/utils/mapping"
)

type PgxImportBatchRepository struct {
	pool *pgxpool.Pool
}

// newPgxImportBatchRepository creates a new repository for statement import
// batch records.
func newPgxImportBatchRepository(pool *pgxpool.Pool) ports.ImportBatchRepository {
	return &PgxImportBatchRepository{pool: pool}
}

var _ ports.ImportBatchRepository = (*PgxImportBatchRepository)(nil)

// SaveImportBatch inserts one import batch record.
func (r *PgxImportBatchRepository) SaveImportBatch(ctx context.Context, batch domain.ImportBatch) error {
	m := mapping.ToModelImportBatch(batch)

	query := `
		INSERT INTO import_batches (import_batch_id, source_account_ref, ledger_account_id, imported_at, content_hash, transaction_count)
		VALUES ($1, $2, $3, $4, $5, $6);
	`
	_, err := r.pool.Exec(ctx, query,
		m.ImportBatchID,
		m.SourceAccountRef,
		m.LedgerAccountID,
		m.ImportedAt,
		m.ContentHash,
		m.TransactionCount,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to insert import batch "+m.ImportBatchID, err)
	}
	return nil
}
