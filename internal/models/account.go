package models

import "time"

// AccountType mirrors domain.AccountType at the storage layer.
type AccountType string

// Account is the database representation of a chart-of-accounts row.
// ParentID uses string for the nullable self-referencing foreign key; the
// repository maps empty string to NULL.
type Account struct {
	AccountID   string      `db:"account_id"`
	Name        string      `db:"name"`
	AccountType AccountType `db:"account_type"`
	ParentID    string      `db:"parent_id"`
	Description string      `db:"description"`
	IsActive    bool        `db:"is_active"`
	CreatedAt   time.Time   `db:"created_at"`
}
