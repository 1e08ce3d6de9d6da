package services

import (
	"context"
	"log/slog"
	"time"

	"github.com/openbooks/ledger/internal/core/domain"
	"github.com/openbooks/ledger/internal/core/ports"
	"github.com/openbooks/ledger/internal/utils/accounting"
	"github.com/shopspring/decimal"
)

type reportingService struct {
	accountRepo ports.AccountRepository
	reportRepo  ports.ReportingRepository
	logger      *slog.Logger
}

// NewReportingService creates the report generator.
func NewReportingService(accountRepo ports.AccountRepository, reportRepo ports.ReportingRepository, logger *slog.Logger) ports.ReportingSvc {
	return &reportingService{
		accountRepo: accountRepo,
		reportRepo:  reportRepo,
		logger:      logger,
	}
}

var _ ports.ReportingSvc = (*reportingService)(nil)

// AccountBalance returns the polarity-normalized balance of an account
// through asOf (nil means through latest). An unknown account is an error,
// never a silent zero: "not found" must stay distinguishable from "balance
// is zero".
func (s *reportingService) AccountBalance(ctx context.Context, accountID string, asOf *time.Time) (decimal.Decimal, error) {
	account, err := s.accountRepo.FindAccountByID(ctx, accountID)
	if err != nil {
		return decimal.Zero, err
	}
	return s.balanceOf(ctx, account, asOf)
}

func (s *reportingService) balanceOf(ctx context.Context, account *domain.Account, asOf *time.Time) (decimal.Decimal, error) {
	debits, credits, err := s.reportRepo.AccountTotals(ctx, account.AccountID, asOf)
	if err != nil {
		return decimal.Zero, err
	}
	return accounting.SignedEffect(account.AccountType, debits, credits), nil
}

// TrialBalance lists every active account with a nonzero balance, placing
// normal balances in their type's column and abnormal balances in the
// opposite column as absolute values. The trailing TOTAL row carries equal
// debit and credit sums; that equality holds by the double-entry invariant.
func (s *reportingService) TrialBalance(ctx context.Context, asOf *time.Time) ([]domain.TrialBalanceRow, error) {
	accounts, err := s.accountRepo.ListAccounts(ctx, true)
	if err != nil {
		return nil, err
	}

	rows := []domain.TrialBalanceRow{}
	totalDebits := decimal.Zero
	totalCredits := decimal.Zero

	for i := range accounts {
		account := &accounts[i]
		balance, err := s.balanceOf(ctx, account, asOf)
		if err != nil {
			return nil, err
		}
		if balance.IsZero() {
			continue
		}

		row := domain.TrialBalanceRow{AccountID: account.AccountID, AccountName: account.Name}
		debitColumn := account.AccountType.DebitNormal() == balance.IsPositive()
		if debitColumn {
			row.Debit = balance.Abs()
			totalDebits = totalDebits.Add(row.Debit)
		} else {
			row.Credit = balance.Abs()
			totalCredits = totalCredits.Add(row.Credit)
		}
		rows = append(rows, row)
	}

	rows = append(rows, domain.TrialBalanceRow{
		AccountID:   "TOTAL",
		AccountName: "TOTAL",
		Debit:       totalDebits,
		Credit:      totalCredits,
	})
	return rows, nil
}

// IncomeStatement reports revenue and expense activity for entries dated in
// [start, end] inclusive. Accounts with zero net change in the window are
// excluded.
func (s *reportingService) IncomeStatement(ctx context.Context, start, end time.Time) (*domain.IncomeStatement, error) {
	revenues, totalRevenue, err := s.netChangeByType(ctx, domain.Revenue, start, end)
	if err != nil {
		return nil, err
	}
	expenses, totalExpenses, err := s.netChangeByType(ctx, domain.Expense, start, end)
	if err != nil {
		return nil, err
	}

	return &domain.IncomeStatement{
		StartDate:     start,
		EndDate:       end,
		Revenues:      revenues,
		TotalRevenue:  totalRevenue,
		Expenses:      expenses,
		TotalExpenses: totalExpenses,
		NetIncome:     totalRevenue.Sub(totalExpenses),
	}, nil
}

func (s *reportingService) netChangeByType(ctx context.Context, accountType domain.AccountType, start, end time.Time) ([]domain.AccountAmount, decimal.Decimal, error) {
	totals, err := s.reportRepo.TotalsByType(ctx, accountType, start, end)
	if err != nil {
		return nil, decimal.Zero, err
	}

	amounts := []domain.AccountAmount{}
	sum := decimal.Zero
	for _, t := range totals {
		net := accounting.SignedEffect(accountType, t.Debits, t.Credits)
		if net.IsZero() {
			continue
		}
		amounts = append(amounts, domain.AccountAmount{AccountID: t.AccountID, Name: t.Name, Amount: net})
		sum = sum.Add(net)
	}
	return amounts, sum, nil
}

// BalanceSheet reports asset, liability and equity positions as of a date,
// excluding zero balances.
func (s *reportingService) BalanceSheet(ctx context.Context, asOf time.Time) (*domain.BalanceSheet, error) {
	accounts, err := s.accountRepo.ListAccounts(ctx, true)
	if err != nil {
		return nil, err
	}

	sheet := &domain.BalanceSheet{AsOf: asOf}
	sections := map[domain.AccountType]*domain.BalanceSheetSection{
		domain.Asset:     &sheet.Assets,
		domain.Liability: &sheet.Liabilities,
		domain.Equity:    &sheet.Equity,
	}

	for i := range accounts {
		account := &accounts[i]
		section, ok := sections[account.AccountType]
		if !ok {
			continue
		}
		balance, err := s.balanceOf(ctx, account, &asOf)
		if err != nil {
			return nil, err
		}
		if balance.IsZero() {
			continue
		}
		section.Accounts = append(section.Accounts, domain.AccountAmount{
			AccountID: account.AccountID,
			Name:      account.Name,
			Amount:    balance,
		})
		section.Total = section.Total.Add(balance)
	}
	return sheet, nil
}

// BankActivity lists transactions touching any bank/cash account, most
// recent first, with the signed effect on each bank account and the balance
// snapshot after the transaction. Snapshots are derived by starting from
// current balances and subtracting effects while walking the descending
// result set, so the page order is load-bearing.
func (s *reportingService) BankActivity(ctx context.Context, limit, offset int) ([]domain.BankActivity, map[string]string, error) {
	bankAccounts, err := s.accountRepo.ListBankAccounts(ctx)
	if err != nil {
		return nil, nil, err
	}
	if len(bankAccounts) == 0 {
		return []domain.BankActivity{}, map[string]string{}, nil
	}

	accountIDs := make([]string, len(bankAccounts))
	names := make(map[string]string, len(bankAccounts))
	balances := make(map[string]decimal.Decimal, len(bankAccounts))
	for i := range bankAccounts {
		account := &bankAccounts[i]
		accountIDs[i] = account.AccountID
		names[account.AccountID] = account.Name

		balance, err := s.balanceOf(ctx, account, nil)
		if err != nil {
			return nil, nil, err
		}
		balances[account.AccountID] = balance
	}

	summaries, err := s.reportRepo.TransactionsTouchingAccounts(ctx, accountIDs, limit, offset)
	if err != nil {
		return nil, nil, err
	}

	activity := make([]domain.BankActivity, 0, len(summaries))
	for _, summary := range summaries {
		effects, err := s.reportRepo.TransactionEffects(ctx, summary.TransactionID, accountIDs)
		if err != nil {
			return nil, nil, err
		}

		row := domain.BankActivity{
			Transaction:   summary,
			Effects:       make(map[string]decimal.Decimal, len(accountIDs)),
			BalancesAfter: make(map[string]decimal.Decimal, len(accountIDs)),
		}
		for _, id := range accountIDs {
			effect, ok := effects[id]
			if !ok {
				effect = decimal.Zero
			}
			row.Effects[id] = effect
			row.BalancesAfter[id] = balances[id]
		}
		activity = append(activity, row)

		// Walk backward: the balance before this transaction is the snapshot
		// minus its effect.
		for _, id := range accountIDs {
			balances[id] = balances[id].Sub(row.Effects[id])
		}
	}
	return activity, names, nil
}

// AccountHistory lists an account's entries ascending by date then
// transaction ID, with a running balance accumulated forward from zero using
// the account's normal polarity.
func (s *reportingService) AccountHistory(ctx context.Context, accountID string, limit int) ([]domain.HistoryRow, error) {
	account, err := s.accountRepo.FindAccountByID(ctx, accountID)
	if err != nil {
		return nil, err
	}

	entries, err := s.reportRepo.AccountEntries(ctx, accountID, limit)
	if err != nil {
		return nil, err
	}

	rows := make([]domain.HistoryRow, 0, len(entries))
	running := decimal.Zero
	for _, e := range entries {
		effect := accounting.SignedEffect(account.AccountType, e.Debit, e.Credit)
		running = running.Add(effect)
		rows = append(rows, domain.HistoryRow{
			TransactionID:    e.TransactionID,
			Date:             e.Date,
			Description:      e.Description,
			Reference:        e.Reference,
			EntryDescription: e.EntryDescription,
			Debit:            e.Debit,
			Credit:           e.Credit,
			Effect:           effect,
			RunningBalance:   running,
		})
	}
	return rows, nil
}
