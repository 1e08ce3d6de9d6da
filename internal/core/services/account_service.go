package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/openbooks/ledger/internal/apperrors"
	"github.com/openbooks/ledger/internal/core/domain"
	"github.com/openbooks/ledger/internal/core/ports"
	"github.com/openbooks/ledger/internal/utils/accounting"
)

type accountService struct {
	accountRepo ports.AccountRepository
	reportRepo  ports.ReportingRepository
	logger      *slog.Logger
}

// NewAccountService creates the account directory service.
func NewAccountService(accountRepo ports.AccountRepository, reportRepo ports.ReportingRepository, logger *slog.Logger) ports.AccountSvc {
	return &accountService{
		accountRepo: accountRepo,
		reportRepo:  reportRepo,
		logger:      logger,
	}
}

var _ ports.AccountSvc = (*accountService)(nil)

// CreateAccount inserts a new account. It returns false when the ID is
// already taken. A non-empty parent ID must reference an existing account;
// the type is fixed at creation and determines normal-balance polarity.
func (s *accountService) CreateAccount(ctx context.Context, accountID, name string, accountType domain.AccountType, parentID, description string) (bool, error) {
	if accountID == "" || name == "" {
		return false, fmt.Errorf("%w: account ID and name are required", apperrors.ErrValidation)
	}
	if !accountType.Valid() {
		return false, fmt.Errorf("%w: unknown account type %q", apperrors.ErrValidation, accountType)
	}
	if parentID != "" {
		if _, err := s.accountRepo.FindAccountByID(ctx, parentID); err != nil {
			return false, fmt.Errorf("parent account %s: %w", parentID, err)
		}
	}

	account := domain.Account{
		AccountID:   accountID,
		Name:        name,
		AccountType: accountType,
		ParentID:    parentID,
		Description: description,
		IsActive:    true,
		CreatedAt:   time.Now().UTC(),
	}
	created, err := s.accountRepo.SaveAccount(ctx, account)
	if err != nil {
		return false, err
	}
	if created {
		s.logger.Info("account created",
			slog.String("account_id", accountID),
			slog.String("account_type", string(accountType)),
		)
	}
	return created, nil
}

func (s *accountService) GetAccount(ctx context.Context, accountID string) (*domain.Account, error) {
	return s.accountRepo.FindAccountByID(ctx, accountID)
}

func (s *accountService) ListAccounts(ctx context.Context, activeOnly bool) ([]domain.Account, error) {
	return s.accountRepo.ListAccounts(ctx, activeOnly)
}

func (s *accountService) ListBankAccounts(ctx context.Context) ([]domain.Account, error) {
	return s.accountRepo.ListBankAccounts(ctx)
}

// DeactivateAccount flags an account inactive. Deactivation is the only
// supported removal path and requires a zero balance; history is retained.
func (s *accountService) DeactivateAccount(ctx context.Context, accountID string) error {
	account, err := s.accountRepo.FindAccountByID(ctx, accountID)
	if err != nil {
		return err
	}

	debits, credits, err := s.reportRepo.AccountTotals(ctx, accountID, nil)
	if err != nil {
		return err
	}
	balance := accounting.SignedEffect(account.AccountType, debits, credits)
	if !balance.IsZero() {
		return fmt.Errorf("%w: account %s has balance %s, only zero-balance accounts can be deactivated",
			apperrors.ErrValidation, accountID, balance)
	}

	if err := s.accountRepo.SetAccountActive(ctx, accountID, false); err != nil {
		return err
	}
	s.logger.Info("account deactivated", slog.String("account_id", accountID))
	return nil
}

// SeedChartOfAccounts installs the default chart of accounts. Accounts that
// already exist are left untouched, so re-running is idempotent.
func (s *accountService) SeedChartOfAccounts(ctx context.Context) (int, error) {
	created := 0
	for _, seed := range DefaultChartOfAccounts() {
		ok, err := s.CreateAccount(ctx, seed.AccountID, seed.Name, seed.AccountType, seed.ParentID, seed.Description)
		if err != nil {
			return created, fmt.Errorf("failed to seed account %s: %w", seed.AccountID, err)
		}
		if ok {
			created++
		}
	}
	if created > 0 {
		s.logger.Info("chart of accounts seeded", slog.Int("created", created))
	}
	return created, nil
}
