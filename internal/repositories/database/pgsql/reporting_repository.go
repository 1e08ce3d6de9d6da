package pgsql

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/openbooks/ledger/internal/apperrors"
	"github.com/openbooks/ledger/internal/core/domain"
	"github.com/openbooks/ledger/internal/core/ports"
	"github.com/shopspring/decimal"
)

type PgxReportingRepository struct {
	pool *pgxpool.Pool
}

// newPgxReportingRepository creates the read-side repository for balance and
// report queries.
func newPgxReportingRepository(pool *pgxpool.Pool) ports.ReportingRepository {
	return &PgxReportingRepository{pool: pool}
}

var _ ports.ReportingRepository = (*PgxReportingRepository)(nil)

// AccountTotals sums the debit and credit legs posted to an account through
// asOf (inclusive). An account with no entries yields zero totals; account
// existence is the caller's concern.
func (r *PgxReportingRepository) AccountTotals(ctx context.Context, accountID string, asOf *time.Time) (decimal.Decimal, decimal.Decimal, error) {
	query := `
		SELECT COALESCE(SUM(e.debit), 0), COALESCE(SUM(e.credit), 0)
		FROM entries e
		JOIN transactions t ON t.transaction_id = e.transaction_id
		WHERE e.account_id = $1
	`
	args := []any{accountID}
	if asOf != nil {
		query += ` AND t.transaction_date <= $2`
		args = append(args, *asOf)
	}

	var debits, credits decimal.Decimal
	if err := r.pool.QueryRow(ctx, query, args...).Scan(&debits, &credits); err != nil {
		return decimal.Zero, decimal.Zero, apperrors.NewAppError(500, "failed to sum entries for account "+accountID, err)
	}
	return debits, credits, nil
}

// TotalsByType returns per-account debit/credit sums over a date window for
// accounts of one type. Accounts without entries in the window are omitted.
func (r *PgxReportingRepository) TotalsByType(ctx context.Context, accountType domain.AccountType, start, end time.Time) ([]domain.AccountTotals, error) {
	query := `
		SELECT a.account_id, a.name, COALESCE(SUM(e.debit), 0), COALESCE(SUM(e.credit), 0)
		FROM accounts a
		JOIN entries e ON e.account_id = a.account_id
		JOIN transactions t ON t.transaction_id = e.transaction_id
		WHERE a.account_type = $1
		  AND t.transaction_date BETWEEN $2 AND $3
		GROUP BY a.account_id, a.name
		ORDER BY a.account_id;
	`
	rows, err := r.pool.Query(ctx, query, accountType, start, end)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query totals by account type", err)
	}
	defer rows.Close()

	totals := []domain.AccountTotals{}
	for rows.Next() {
		var t domain.AccountTotals
		if err := rows.Scan(&t.AccountID, &t.Name, &t.Debits, &t.Credits); err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan account totals row", err)
		}
		totals = append(totals, t)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating account totals rows", err)
	}
	return totals, nil
}

// TransactionsTouchingAccounts lists transactions with at least one entry on
// any of the given accounts, most recent first.
func (r *PgxReportingRepository) TransactionsTouchingAccounts(ctx context.Context, accountIDs []string, limit, offset int) ([]domain.TransactionSummary, error) {
	if len(accountIDs) == 0 {
		return []domain.TransactionSummary{}, nil
	}
	query := `
		SELECT DISTINCT t.transaction_id, t.transaction_date, t.description, t.reference
		FROM transactions t
		JOIN entries e ON e.transaction_id = t.transaction_id
		WHERE e.account_id = ANY($1)
		ORDER BY t.transaction_date DESC, t.transaction_id DESC
		LIMIT $2 OFFSET $3;
	`
	rows, err := r.pool.Query(ctx, query, accountIDs, limit, offset)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query bank transactions", err)
	}
	defer rows.Close()

	summaries := []domain.TransactionSummary{}
	for rows.Next() {
		var s domain.TransactionSummary
		if err := rows.Scan(&s.TransactionID, &s.Date, &s.Description, &s.Reference); err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan transaction summary row", err)
		}
		summaries = append(summaries, s)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating transaction summary rows", err)
	}
	return summaries, nil
}

// TransactionEffects returns the raw debit-minus-credit effect of one
// transaction on each of the given accounts. Accounts the transaction does
// not touch are absent from the map.
func (r *PgxReportingRepository) TransactionEffects(ctx context.Context, transactionID string, accountIDs []string) (map[string]decimal.Decimal, error) {
	query := `
		SELECT e.account_id, COALESCE(SUM(e.debit - e.credit), 0)
		FROM entries e
		WHERE e.transaction_id = $1 AND e.account_id = ANY($2)
		GROUP BY e.account_id;
	`
	rows, err := r.pool.Query(ctx, query, transactionID, accountIDs)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query effects for transaction "+transactionID, err)
	}
	defer rows.Close()

	effects := map[string]decimal.Decimal{}
	for rows.Next() {
		var accountID string
		var effect decimal.Decimal
		if err := rows.Scan(&accountID, &effect); err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan effect row for transaction "+transactionID, err)
		}
		effects[accountID] = effect
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating effect rows for transaction "+transactionID, err)
	}
	return effects, nil
}

// AccountEntries lists an account's entries with their transaction headers,
// ascending by date then transaction ID then entry position.
func (r *PgxReportingRepository) AccountEntries(ctx context.Context, accountID string, limit int) ([]domain.EntryWithTransaction, error) {
	query := `
		SELECT t.transaction_id, t.transaction_date, t.description, t.reference,
		       e.description, e.debit, e.credit
		FROM transactions t
		JOIN entries e ON e.transaction_id = t.transaction_id
		WHERE e.account_id = $1
		ORDER BY t.transaction_date ASC, t.transaction_id ASC, e.position ASC
		LIMIT $2;
	`
	rows, err := r.pool.Query(ctx, query, accountID, limit)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query entries for account "+accountID, err)
	}
	defer rows.Close()

	return collectEntriesWithTransactions(rows, accountID)
}

// EntriesInRange lists an account's entries dated within [start, end].
func (r *PgxReportingRepository) EntriesInRange(ctx context.Context, accountID string, start, end time.Time) ([]domain.EntryWithTransaction, error) {
	query := `
		SELECT t.transaction_id, t.transaction_date, t.description, t.reference,
		       e.description, e.debit, e.credit
		FROM transactions t
		JOIN entries e ON e.transaction_id = t.transaction_id
		WHERE e.account_id = $1
		  AND t.transaction_date BETWEEN $2 AND $3
		ORDER BY t.transaction_date ASC, t.transaction_id ASC, e.position ASC;
	`
	rows, err := r.pool.Query(ctx, query, accountID, start, end)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query entry range for account "+accountID, err)
	}
	defer rows.Close()

	return collectEntriesWithTransactions(rows, accountID)
}

func collectEntriesWithTransactions(rows pgx.Rows, accountID string) ([]domain.EntryWithTransaction, error) {
	entries := []domain.EntryWithTransaction{}
	for rows.Next() {
		var e domain.EntryWithTransaction
		if err := rows.Scan(&e.TransactionID, &e.Date, &e.Description, &e.Reference, &e.EntryDescription, &e.Debit, &e.Credit); err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan entry row for account "+accountID, err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating entry rows for account "+accountID, err)
	}
	return entries, nil
}
