package services_test

import (
	"context"
	"time"

	"github.com/openbooks/ledger/internal/core/domain"
	"github.com/openbooks/ledger/internal/core/ports"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
)

// --- Mock AccountRepository ---

type MockAccountRepository struct {
	mock.Mock
}

var _ ports.AccountRepository = (*MockAccountRepository)(nil)

func (m *MockAccountRepository) SaveAccount(ctx context.Context, account domain.Account) (bool, error) {
	args := m.Called(ctx, account)
	return args.Bool(0), args.Error(1)
}

func (m *MockAccountRepository) FindAccountByID(ctx context.Context, accountID string) (*domain.Account, error) {
	args := m.Called(ctx, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountRepository) ListAccounts(ctx context.Context, activeOnly bool) ([]domain.Account, error) {
	args := m.Called(ctx, activeOnly)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Account), args.Error(1)
}

func (m *MockAccountRepository) ListBankAccounts(ctx context.Context) ([]domain.Account, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Account), args.Error(1)
}

func (m *MockAccountRepository) SetAccountActive(ctx context.Context, accountID string, active bool) error {
	args := m.Called(ctx, accountID, active)
	return args.Error(0)
}

// --- Mock TransactionRepository ---

type MockTransactionRepository struct {
	mock.Mock
}

var _ ports.TransactionRepository = (*MockTransactionRepository)(nil)

func (m *MockTransactionRepository) SaveTransaction(ctx context.Context, txn domain.Transaction) error {
	args := m.Called(ctx, txn)
	return args.Error(0)
}

func (m *MockTransactionRepository) FindTransactionByID(ctx context.Context, transactionID string) (*domain.Transaction, error) {
	args := m.Called(ctx, transactionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Transaction), args.Error(1)
}

func (m *MockTransactionRepository) TransactionExists(ctx context.Context, transactionID string) (bool, error) {
	args := m.Called(ctx, transactionID)
	return args.Bool(0), args.Error(1)
}

func (m *MockTransactionRepository) CountTransactionsOnDate(ctx context.Context, date time.Time) (int, error) {
	args := m.Called(ctx, date)
	return args.Int(0), args.Error(1)
}

func (m *MockTransactionRepository) ReplaceTransaction(ctx context.Context, txn domain.Transaction) error {
	args := m.Called(ctx, txn)
	return args.Error(0)
}

func (m *MockTransactionRepository) DeleteTransaction(ctx context.Context, transactionID string) error {
	args := m.Called(ctx, transactionID)
	return args.Error(0)
}

// --- Mock ReportingRepository ---

type MockReportingRepository struct {
	mock.Mock
}

var _ ports.ReportingRepository = (*MockReportingRepository)(nil)

func (m *MockReportingRepository) AccountTotals(ctx context.Context, accountID string, asOf *time.Time) (decimal.Decimal, decimal.Decimal, error) {
	args := m.Called(ctx, accountID, asOf)
	return args.Get(0).(decimal.Decimal), args.Get(1).(decimal.Decimal), args.Error(2)
}

func (m *MockReportingRepository) TotalsByType(ctx context.Context, accountType domain.AccountType, start, end time.Time) ([]domain.AccountTotals, error) {
	args := m.Called(ctx, accountType, start, end)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.AccountTotals), args.Error(1)
}

func (m *MockReportingRepository) TransactionsTouchingAccounts(ctx context.Context, accountIDs []string, limit, offset int) ([]domain.TransactionSummary, error) {
	args := m.Called(ctx, accountIDs, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.TransactionSummary), args.Error(1)
}

func (m *MockReportingRepository) TransactionEffects(ctx context.Context, transactionID string, accountIDs []string) (map[string]decimal.Decimal, error) {
	args := m.Called(ctx, transactionID, accountIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]decimal.Decimal), args.Error(1)
}

func (m *MockReportingRepository) AccountEntries(ctx context.Context, accountID string, limit int) ([]domain.EntryWithTransaction, error) {
	args := m.Called(ctx, accountID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.EntryWithTransaction), args.Error(1)
}

func (m *MockReportingRepository) EntriesInRange(ctx context.Context, accountID string, start, end time.Time) ([]domain.EntryWithTransaction, error) {
	args := m.Called(ctx, accountID, start, end)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.EntryWithTransaction), args.Error(1)
}

// --- Mock ImportBatchRepository ---

type MockImportBatchRepository struct {
	mock.Mock
}

var _ ports.ImportBatchRepository = (*MockImportBatchRepository)(nil)

func (m *MockImportBatchRepository) SaveImportBatch(ctx context.Context, batch domain.ImportBatch) error {
	args := m.Called(ctx, batch)
	return args.Error(0)
}
