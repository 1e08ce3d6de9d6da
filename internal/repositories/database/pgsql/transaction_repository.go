package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/openbooks/ledger/internal/apperrors"
	"github.com/openbooks/ledger/internal/core/domain"
	"github.com/openbooks/ledger/internal/core/ports"
	"github.com/openbooks/ledger/internal/models"
	"github.com/openbooks/ledger/internal/utils/mapping"
)

type PgxTransactionRepository struct {
	BaseRepository
}

// newPgxTransactionRepository creates a new repository for transaction and
// entry data.
func newPgxTransactionRepository(pool *pgxpool.Pool) ports.TransactionRepository {
	return &PgxTransactionRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ ports.TransactionRepository = (*PgxTransactionRepository)(nil)

// SaveTransaction writes the transaction header and all entry rows within a
// single database transaction. Nothing is written when any insert fails.
func (r *PgxTransactionRepository) SaveTransaction(ctx context.Context, txn domain.Transaction) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	modelTxn := mapping.ToModelTransaction(txn)
	headerQuery := `
		INSERT INTO transactions (transaction_id, transaction_date, description, reference, created_at)
		VALUES ($1, $2, $3, $4, $5);
	`
	_, err = tx.Exec(ctx, headerQuery,
		modelTxn.TransactionID,
		modelTxn.Date,
		modelTxn.Description,
		modelTxn.Reference,
		modelTxn.CreatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" { // unique_violation
			return fmt.Errorf("transaction %s: %w", modelTxn.TransactionID, apperrors.ErrDuplicate)
		}
		return apperrors.NewAppError(500, "failed to insert transaction "+modelTxn.TransactionID, err)
	}

	if err := insertEntries(ctx, tx, txn); err != nil {
		return err
	}

	return r.Commit(ctx, tx)
}

// FindTransactionByID retrieves a transaction and its entries in posting order.
func (r *PgxTransactionRepository) FindTransactionByID(ctx context.Context, transactionID string) (*domain.Transaction, error) {
	headerQuery := `
		SELECT transaction_id, transaction_date, description, reference, created_at
		FROM transactions
		WHERE transaction_id = $1;
	`
	var m models.Transaction
	err := r.Pool.QueryRow(ctx, headerQuery, transactionID).Scan(
		&m.TransactionID,
		&m.Date,
		&m.Description,
		&m.Reference,
		&m.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFoundError("transaction " + transactionID + " not found")
		}
		return nil, apperrors.NewAppError(500, "failed to find transaction "+transactionID, err)
	}

	entriesQuery := `
		SELECT entry_id, transaction_id, account_id, position, debit, credit, description
		FROM entries
		WHERE transaction_id = $1
		ORDER BY position;
	`
	rows, err := r.Pool.Query(ctx, entriesQuery, transactionID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query entries for transaction "+transactionID, err)
	}
	defer rows.Close()

	txn := mapping.ToDomainTransaction(m)
	for rows.Next() {
		var e models.Entry
		if err := rows.Scan(&e.EntryID, &e.TransactionID, &e.AccountID, &e.Position, &e.Debit, &e.Credit, &e.Description); err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan entry row for transaction "+transactionID, err)
		}
		txn.Entries = append(txn.Entries, mapping.ToDomainEntry(e))
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating entry rows for transaction "+transactionID, err)
	}

	return &txn, nil
}

// TransactionExists reports whether a transaction ID is already taken.
func (r *PgxTransactionRepository) TransactionExists(ctx context.Context, transactionID string) (bool, error) {
	var exists bool
	err := r.Pool.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM transactions WHERE transaction_id = $1);`,
		transactionID,
	).Scan(&exists)
	if err != nil {
		return false, apperrors.NewAppError(500, "failed to check transaction "+transactionID, err)
	}
	return exists, nil
}

// CountTransactionsOnDate counts transactions dated exactly on the given day.
func (r *PgxTransactionRepository) CountTransactionsOnDate(ctx context.Context, date time.Time) (int, error) {
	var count int
	err := r.Pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM transactions WHERE transaction_date = $1;`,
		date,
	).Scan(&count)
	if err != nil {
		return 0, apperrors.NewAppError(500, "failed to count transactions on date", err)
	}
	return count, nil
}

// ReplaceTransaction swaps the full entry set of an existing transaction and
// updates its header, all within one database transaction. Partial states are
// never observable.
func (r *PgxTransactionRepository) ReplaceTransaction(ctx context.Context, txn domain.Transaction) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	modelTxn := mapping.ToModelTransaction(txn)
	updateQuery := `
		UPDATE transactions
		SET transaction_date = $2,
		    description = $3,
		    reference = $4
		WHERE transaction_id = $1;
	`
	cmdTag, err := tx.Exec(ctx, updateQuery,
		modelTxn.TransactionID,
		modelTxn.Date,
		modelTxn.Description,
		modelTxn.Reference,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to update transaction "+modelTxn.TransactionID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.NewNotFoundError("transaction " + modelTxn.TransactionID + " not found for replace")
	}

	if _, err := tx.Exec(ctx, `DELETE FROM entries WHERE transaction_id = $1;`, modelTxn.TransactionID); err != nil {
		return apperrors.NewAppError(500, "failed to delete entries for transaction "+modelTxn.TransactionID, err)
	}

	if err := insertEntries(ctx, tx, txn); err != nil {
		return err
	}

	return r.Commit(ctx, tx)
}

// DeleteTransaction removes the entries and then the transaction row.
func (r *PgxTransactionRepository) DeleteTransaction(ctx context.Context, transactionID string) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	if _, err := tx.Exec(ctx, `DELETE FROM entries WHERE transaction_id = $1;`, transactionID); err != nil {
		return apperrors.NewAppError(500, "failed to delete entries for transaction "+transactionID, err)
	}

	cmdTag, err := tx.Exec(ctx, `DELETE FROM transactions WHERE transaction_id = $1;`, transactionID)
	if err != nil {
		return apperrors.NewAppError(500, "failed to delete transaction "+transactionID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.NewNotFoundError("transaction " + transactionID + " not found for delete")
	}

	return r.Commit(ctx, tx)
}

// insertEntries batch-inserts the entry rows of a transaction inside tx.
func insertEntries(ctx context.Context, tx pgx.Tx, txn domain.Transaction) error {
	batch := &pgx.Batch{}
	entryQuery := `
		INSERT INTO entries (entry_id, transaction_id, account_id, position, debit, credit, description)
		VALUES ($1, $2, $3, $4, $5, $6, $7);
	`
	for i, entry := range txn.Entries {
		modelEntry := mapping.ToModelEntry(entry, i+1)
		batch.Queue(entryQuery,
			modelEntry.EntryID,
			modelEntry.TransactionID,
			modelEntry.AccountID,
			modelEntry.Position,
			modelEntry.Debit,
			modelEntry.Credit,
			modelEntry.Description,
		)
	}

	br := tx.SendBatch(ctx, batch)
	if err := br.Close(); err != nil {
		return apperrors.NewAppError(500, "failed to execute entry batch for transaction "+txn.TransactionID, err)
	}
	return nil
}
