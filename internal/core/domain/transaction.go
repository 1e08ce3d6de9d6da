package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Entry is a single debit or credit line of a transaction. Exactly one of
// Debit/Credit is conventionally nonzero, but balance math always uses the
// difference, so both being set is tolerated.
type Entry struct {
	EntryID       string          `json:"entryID"`
	TransactionID string          `json:"transactionID"`
	AccountID     string          `json:"accountID"`
	Debit         decimal.Decimal `json:"debit"`
	Credit        decimal.Decimal `json:"credit"`
	Description   string          `json:"description"`
}

// Transaction is a balanced set of entries posted on a single date.
// Entries are owned exclusively by their transaction and keep input order.
type Transaction struct {
	TransactionID string    `json:"transactionID"`
	Date          time.Time `json:"date"`
	Description   string    `json:"description"`
	Reference     string    `json:"reference"` // free text, e.g. an external FITID
	CreatedAt     time.Time `json:"createdAt"`
	Entries       []Entry   `json:"entries"`
}

// EntryInput is the caller-facing shape of a transaction line before posting.
type EntryInput struct {
	AccountID   string          `json:"accountID"`
	Debit       decimal.Decimal `json:"debit"`
	Credit      decimal.Decimal `json:"credit"`
	Description string          `json:"description"`
}
