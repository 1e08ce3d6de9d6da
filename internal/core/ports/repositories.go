package ports

import (
	"context"
	"time"

	"github.com/openbooks/ledger/internal/core/domain"
	"github.com/shopspring/decimal"
)

// AccountRepository defines persistence operations for the chart of accounts.
type AccountRepository interface {
	// SaveAccount inserts the account if its ID is not already taken.
	// It returns false (and no error) when the ID exists.
	SaveAccount(ctx context.Context, account domain.Account) (bool, error)
	// FindAccountByID returns apperrors.ErrNotFound when the account does not exist.
	FindAccountByID(ctx context.Context, accountID string) (*domain.Account, error)
	// ListAccounts returns accounts ordered by ID, optionally active ones only.
	ListAccounts(ctx context.Context, activeOnly bool) ([]domain.Account, error)
	// ListBankAccounts returns active asset accounts whose name suggests a
	// bank or cash account, ordered by ID.
	ListBankAccounts(ctx context.Context) ([]domain.Account, error)
	// SetAccountActive flips the active flag; ErrNotFound when absent.
	SetAccountActive(ctx context.Context, accountID string, active bool) error
}

// TransactionRepository defines persistence operations for transactions and
// their entries. Every mutation is atomic: either the transaction row and all
// entry rows are written, or nothing is.
type TransactionRepository interface {
	SaveTransaction(ctx context.Context, txn domain.Transaction) error
	// FindTransactionByID returns the transaction with its entries in
	// original posting order; ErrNotFound when absent.
	FindTransactionByID(ctx context.Context, transactionID string) (*domain.Transaction, error)
	TransactionExists(ctx context.Context, transactionID string) (bool, error)
	CountTransactionsOnDate(ctx context.Context, date time.Time) (int, error)
	// ReplaceTransaction deletes all existing entries for the transaction,
	// updates the header row, and inserts the new entry set in one unit.
	ReplaceTransaction(ctx context.Context, txn domain.Transaction) error
	DeleteTransaction(ctx context.Context, transactionID string) error
}

// ReportingRepository exposes the read-side aggregate queries the report
// generator is built on. Reads need at most snapshot consistency.
type ReportingRepository interface {
	// AccountTotals sums the debit and credit legs posted to the account
	// through asOf (inclusive); nil means through latest.
	AccountTotals(ctx context.Context, accountID string, asOf *time.Time) (debits, credits decimal.Decimal, err error)
	// TotalsByType returns per-account debit/credit sums for entries dated in
	// [start, end] on accounts of the given type, ordered by account ID.
	// Accounts with no entries in the window are omitted.
	TotalsByType(ctx context.Context, accountType domain.AccountType, start, end time.Time) ([]domain.AccountTotals, error)
	// TransactionsTouchingAccounts lists transactions with at least one entry
	// on any of the accounts, newest first (date desc, ID desc), paginated.
	TransactionsTouchingAccounts(ctx context.Context, accountIDs []string, limit, offset int) ([]domain.TransactionSummary, error)
	// TransactionEffects returns per-account raw debit-minus-credit effects of
	// one transaction, restricted to the given accounts.
	TransactionEffects(ctx context.Context, transactionID string, accountIDs []string) (map[string]decimal.Decimal, error)
	// AccountEntries lists entries on the account joined with their
	// transaction headers, ascending by date then transaction ID.
	AccountEntries(ctx context.Context, accountID string, limit int) ([]domain.EntryWithTransaction, error)
	// EntriesInRange lists the account's entries dated in [start, end],
	// ascending by date then transaction ID.
	EntriesInRange(ctx context.Context, accountID string, start, end time.Time) ([]domain.EntryWithTransaction, error)
}

// ImportBatchRepository records statement import batches.
type ImportBatchRepository interface {
	SaveImportBatch(ctx context.Context, batch domain.ImportBatch) error
}
