package domain

import "time"

// AccountType defines the fundamental accounting type of an account.
type AccountType string

const (
	Asset     AccountType = "ASSET"
	Liability AccountType = "LIABILITY"
	Equity    AccountType = "EQUITY"
	Revenue   AccountType = "REVENUE"
	Expense   AccountType = "EXPENSE"
)

// DebitNormal reports whether accounts of this type carry a normal debit
// balance. Assets and expenses grow on the debit side; liabilities, equity
// and revenue grow on the credit side.
func (t AccountType) DebitNormal() bool {
	return t == Asset || t == Expense
}

// Valid reports whether t is one of the five closed account types.
func (t AccountType) Valid() bool {
	switch t {
	case Asset, Liability, Equity, Revenue, Expense:
		return true
	}
	return false
}

// Account represents a node in the chart of accounts.
type Account struct {
	AccountID   string      `json:"accountID"`
	Name        string      `json:"name"`
	AccountType AccountType `json:"accountType"`
	ParentID    string      `json:"parentID,omitempty"` // empty for top-level headings
	Description string      `json:"description"`
	IsActive    bool        `json:"isActive"`
	CreatedAt   time.Time   `json:"createdAt"`
}
