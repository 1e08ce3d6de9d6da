package ports

import (
	"context"
	"time"

	"github.com/openbooks/ledger/internal/core/domain"
	"github.com/shopspring/decimal"
)

// AccountSvc is the account directory consumed by external callers.
type AccountSvc interface {
	// CreateAccount inserts a new account; it returns false when the ID is
	// already taken. A non-empty parent ID must reference an existing account.
	CreateAccount(ctx context.Context, accountID, name string, accountType domain.AccountType, parentID, description string) (bool, error)
	GetAccount(ctx context.Context, accountID string) (*domain.Account, error)
	ListAccounts(ctx context.Context, activeOnly bool) ([]domain.Account, error)
	ListBankAccounts(ctx context.Context) ([]domain.Account, error)
	// DeactivateAccount is the only supported removal path; it refuses while
	// the account balance is nonzero.
	DeactivateAccount(ctx context.Context, accountID string) error
	// SeedChartOfAccounts installs the default chart, insert-if-absent.
	// It returns how many accounts were created.
	SeedChartOfAccounts(ctx context.Context) (int, error)
}

// PostingSvc validates and commits balanced transactions.
type PostingSvc interface {
	PostTransaction(ctx context.Context, transactionID string, date time.Time, description, reference string, entries []domain.EntryInput) (*domain.Transaction, error)
	// PostNewTransaction generates a TXN-YYYYMMDD-NNN identifier and retries
	// on ID conflicts until the commit succeeds.
	PostNewTransaction(ctx context.Context, date time.Time, description, reference string, entries []domain.EntryInput) (*domain.Transaction, error)
	GenerateTransactionID(ctx context.Context, date time.Time) (string, error)
	ReplaceTransaction(ctx context.Context, transactionID string, date time.Time, description, reference string, entries []domain.EntryInput) (*domain.Transaction, error)
	DeleteTransaction(ctx context.Context, transactionID string) error
	GetTransaction(ctx context.Context, transactionID string) (*domain.Transaction, error)
}

// ReportingSvc computes balances and standard financial reports.
type ReportingSvc interface {
	// AccountBalance returns the polarity-normalized balance through asOf
	// (nil means through latest). Unknown accounts yield ErrNotFound, never a
	// silent zero.
	AccountBalance(ctx context.Context, accountID string, asOf *time.Time) (decimal.Decimal, error)
	TrialBalance(ctx context.Context, asOf *time.Time) ([]domain.TrialBalanceRow, error)
	IncomeStatement(ctx context.Context, start, end time.Time) (*domain.IncomeStatement, error)
	BalanceSheet(ctx context.Context, asOf time.Time) (*domain.BalanceSheet, error)
	// BankActivity returns transactions touching bank accounts, newest first,
	// with signed effects and running balance snapshots, plus an accountID to
	// name map for the bank accounts.
	BankActivity(ctx context.Context, limit, offset int) ([]domain.BankActivity, map[string]string, error)
	AccountHistory(ctx context.Context, accountID string, limit int) ([]domain.HistoryRow, error)
}

// StatementSvc imports and exports bank statements in the OFX interchange
// format.
type StatementSvc interface {
	// ImportStatement maps each statement record to a balanced two-entry
	// transaction against cashAccountID. Re-importing the same document is
	// idempotent: records whose derived ID already exists are skipped.
	ImportStatement(ctx context.Context, document []byte, cashAccountID string) (*domain.ImportResult, error)
	// ExportStatement serializes the account's entries in [start, end] to an
	// OFX document carrying that account's leg of each transaction.
	ExportStatement(ctx context.Context, accountID string, start, end time.Time) ([]byte, error)
}
