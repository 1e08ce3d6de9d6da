package services

import "github.com/openbooks/ledger/internal/core/domain"

// AccountSeed is one row of the default chart of accounts.
type AccountSeed struct {
	AccountID   string
	Name        string
	AccountType domain.AccountType
	ParentID    string
	Description string
}

// DefaultChartOfAccounts returns the standard chart installed at
// initialization: five top-level type headings with their common
// sub-accounts. Parents precede children so the seed can be inserted in
// order.
func DefaultChartOfAccounts() []AccountSeed {
	return []AccountSeed{
		// Assets
		{AccountID: "1000", Name: "ASSETS", AccountType: domain.Asset},
		{AccountID: "1100", Name: "Current Assets", AccountType: domain.Asset, ParentID: "1000"},
		{AccountID: "1110", Name: "Cash and Bank Accounts", AccountType: domain.Asset, ParentID: "1100"},
		{AccountID: "1120", Name: "Accounts Receivable", AccountType: domain.Asset, ParentID: "1100"},
		{AccountID: "1130", Name: "Inventory", AccountType: domain.Asset, ParentID: "1100"},
		{AccountID: "1140", Name: "Prepaid Expenses", AccountType: domain.Asset, ParentID: "1100"},
		{AccountID: "1200", Name: "Fixed Assets", AccountType: domain.Asset, ParentID: "1000"},
		{AccountID: "1210", Name: "Equipment", AccountType: domain.Asset, ParentID: "1200"},
		{AccountID: "1220", Name: "Accumulated Depreciation - Equipment", AccountType: domain.Asset, ParentID: "1200"},

		// Liabilities
		{AccountID: "2000", Name: "LIABILITIES", AccountType: domain.Liability},
		{AccountID: "2100", Name: "Current Liabilities", AccountType: domain.Liability, ParentID: "2000"},
		{AccountID: "2110", Name: "Accounts Payable", AccountType: domain.Liability, ParentID: "2100"},
		{AccountID: "2120", Name: "Accrued Expenses", AccountType: domain.Liability, ParentID: "2100"},
		{AccountID: "2130", Name: "Short-term Debt", AccountType: domain.Liability, ParentID: "2100"},
		{AccountID: "2200", Name: "Long-term Liabilities", AccountType: domain.Liability, ParentID: "2000"},
		{AccountID: "2210", Name: "Long-term Debt", AccountType: domain.Liability, ParentID: "2200"},

		// Equity
		{AccountID: "3000", Name: "EQUITY", AccountType: domain.Equity},
		{AccountID: "3100", Name: "Owner's Equity", AccountType: domain.Equity, ParentID: "3000"},
		{AccountID: "3200", Name: "Retained Earnings", AccountType: domain.Equity, ParentID: "3000"},

		// Revenue
		{AccountID: "4000", Name: "REVENUE", AccountType: domain.Revenue},
		{AccountID: "4100", Name: "Sales Revenue", AccountType: domain.Revenue, ParentID: "4000"},
		{AccountID: "4200", Name: "Service Revenue", AccountType: domain.Revenue, ParentID: "4000"},
		{AccountID: "4300", Name: "Other Income", AccountType: domain.Revenue, ParentID: "4000"},

		// Expenses
		{AccountID: "5000", Name: "EXPENSES", AccountType: domain.Expense},
		{AccountID: "5100", Name: "Cost of Goods Sold", AccountType: domain.Expense, ParentID: "5000"},
		{AccountID: "5200", Name: "Operating Expenses", AccountType: domain.Expense, ParentID: "5000"},
		{AccountID: "5210", Name: "Salaries and Wages", AccountType: domain.Expense, ParentID: "5200"},
		{AccountID: "5220", Name: "Rent Expense", AccountType: domain.Expense, ParentID: "5200"},
		{AccountID: "5230", Name: "Utilities Expense", AccountType: domain.Expense, ParentID: "5200"},
		{AccountID: "5240", Name: "Office Supplies", AccountType: domain.Expense, ParentID: "5200"},
		{AccountID: "5250", Name: "Depreciation Expense", AccountType: domain.Expense, ParentID: "5200"},
	}
}
