package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// TrialBalanceRow represents a single row in a trial balance report.
// Abnormal balances appear in the column opposite the account type's normal
// column, as absolute values; amounts in these columns are never negative.
type TrialBalanceRow struct {
	AccountID   string          `json:"accountID"`
	AccountName string          `json:"accountName"`
	Debit       decimal.Decimal `json:"debit"`
	Credit      decimal.Decimal `json:"credit"`
}

// AccountAmount represents an account with its net amount for financial reports.
type AccountAmount struct {
	AccountID string          `json:"accountID"`
	Name      string          `json:"name"`
	Amount    decimal.Decimal `json:"amount"`
}

// AccountTotals holds the raw debit and credit sums for one account over some
// window, before any polarity normalization.
type AccountTotals struct {
	AccountID string
	Name      string
	Debits    decimal.Decimal
	Credits   decimal.Decimal
}

// IncomeStatement reports revenue and expense activity over a date window.
type IncomeStatement struct {
	StartDate     time.Time       `json:"startDate"`
	EndDate       time.Time       `json:"endDate"`
	Revenues      []AccountAmount `json:"revenues"`
	TotalRevenue  decimal.Decimal `json:"totalRevenue"`
	Expenses      []AccountAmount `json:"expenses"`
	TotalExpenses decimal.Decimal `json:"totalExpenses"`
	NetIncome     decimal.Decimal `json:"netIncome"`
}

// BalanceSheetSection lists the nonzero accounts of one type with their total.
type BalanceSheetSection struct {
	Accounts []AccountAmount `json:"accounts"`
	Total    decimal.Decimal `json:"total"`
}

// BalanceSheet reports asset, liability and equity positions as of a date.
type BalanceSheet struct {
	AsOf        time.Time           `json:"asOf"`
	Assets      BalanceSheetSection `json:"assets"`
	Liabilities BalanceSheetSection `json:"liabilities"`
	Equity      BalanceSheetSection `json:"equity"`
}

// TransactionSummary is a transaction row without its entries, as listed by
// the bank activity view.
type TransactionSummary struct {
	TransactionID string    `json:"transactionID"`
	Date          time.Time `json:"date"`
	Description   string    `json:"description"`
	Reference     string    `json:"reference"`
}

// BankActivity pairs a transaction with its signed effect on every bank
// account and the balance snapshot after the transaction was applied.
// Rows are ordered most recent first; the snapshots are computed by walking
// backward from current balances, so callers must not reorder them.
type BankActivity struct {
	Transaction   TransactionSummary         `json:"transaction"`
	Effects       map[string]decimal.Decimal `json:"effects"`
	BalancesAfter map[string]decimal.Decimal `json:"balancesAfter"`
}

// EntryWithTransaction is an entry joined with its transaction header, used
// by account history and statement export.
type EntryWithTransaction struct {
	TransactionID    string
	Date             time.Time
	Description      string
	Reference        string
	EntryDescription string
	Debit            decimal.Decimal
	Credit           decimal.Decimal
}

// HistoryRow is one line of an account's transaction history with the
// polarity-normalized effect and forward-running balance.
type HistoryRow struct {
	TransactionID    string          `json:"transactionID"`
	Date             time.Time       `json:"date"`
	Description      string          `json:"description"`
	Reference        string          `json:"reference"`
	EntryDescription string          `json:"entryDescription"`
	Debit            decimal.Decimal `json:"debit"`
	Credit           decimal.Decimal `json:"credit"`
	Effect           decimal.Decimal `json:"effect"`
	RunningBalance   decimal.Decimal `json:"runningBalance"`
}
