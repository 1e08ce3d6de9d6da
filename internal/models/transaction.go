package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Transaction is the database representation of a transaction header row.
type Transaction struct {
	TransactionID string    `db:"transaction_id"`
	Date          time.Time `db:"transaction_date"`
	Description   string    `db:"description"`
	Reference     string    `db:"reference"`
	CreatedAt     time.Time `db:"created_at"`
}

// Entry is the database representation of a single transaction line.
// Money columns are NUMERIC; they must never round-trip through binary
// floating point.
type Entry struct {
	EntryID       string          `db:"entry_id"`
	TransactionID string          `db:"transaction_id"`
	AccountID     string          `db:"account_id"`
	Position      int             `db:"position"`
	Debit         decimal.Decimal `db:"debit"`
	Credit        decimal.Decimal `db:"credit"`
	Description   string          `db:"description"`
}
