package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/openbooks/ledger/internal/apperrors"
	"github.com/openbooks/ledger/internal/core/domain"
	"github.com/openbooks/ledger/internal/core/ports"
	"github.com/openbooks/ledger/internal/utils/accounting"
)

// maxIDAttempts bounds the retry loop when concurrent postings race for the
// same date sequence.
const maxIDAttempts = 10

type postingService struct {
	txnRepo     ports.TransactionRepository
	accountRepo ports.AccountRepository
	logger      *slog.Logger
}

// NewPostingService creates the posting engine.
func NewPostingService(txnRepo ports.TransactionRepository, accountRepo ports.AccountRepository, logger *slog.Logger) ports.PostingSvc {
	return &postingService{
		txnRepo:     txnRepo,
		accountRepo: accountRepo,
		logger:      logger,
	}
}

var _ ports.PostingSvc = (*postingService)(nil)

// PostTransaction validates and atomically commits a transaction with the
// given ID. Validation failures block the operation before anything is
// written; a duplicate ID yields apperrors.ErrDuplicate.
func (s *postingService) PostTransaction(ctx context.Context, transactionID string, date time.Time, description, reference string, entries []domain.EntryInput) (*domain.Transaction, error) {
	if transactionID == "" {
		return nil, fmt.Errorf("%w: transaction ID is required", apperrors.ErrValidation)
	}
	if err := s.validateEntries(ctx, entries); err != nil {
		return nil, err
	}

	txn := buildTransaction(transactionID, date, description, reference, entries)
	if err := s.txnRepo.SaveTransaction(ctx, txn); err != nil {
		return nil, err
	}

	s.logger.Info("transaction posted",
		slog.String("transaction_id", transactionID),
		slog.Int("entries", len(entries)),
	)
	return &txn, nil
}

// PostNewTransaction generates a TXN-YYYYMMDD-NNN identifier and posts with
// it, retrying on ID conflicts. Generation and insert are not one atomic
// step, so a concurrent posting for the same date can win the race; the
// unique constraint on the transaction ID detects that and we retry with the
// next free sequence.
func (s *postingService) PostNewTransaction(ctx context.Context, date time.Time, description, reference string, entries []domain.EntryInput) (*domain.Transaction, error) {
	for attempt := 0; attempt < maxIDAttempts; attempt++ {
		transactionID, err := s.GenerateTransactionID(ctx, date)
		if err != nil {
			return nil, err
		}
		txn, err := s.PostTransaction(ctx, transactionID, date, description, reference, entries)
		if errors.Is(err, apperrors.ErrDuplicate) {
			continue
		}
		return txn, err
	}
	return nil, apperrors.NewAppError(500, "could not allocate a unique transaction ID after repeated conflicts", nil)
}

// GenerateTransactionID builds TXN-YYYYMMDD-NNN where NNN is the next unused
// sequence for the date. Sequences past 999 widen naturally to four or more
// digits.
func (s *postingService) GenerateTransactionID(ctx context.Context, date time.Time) (string, error) {
	count, err := s.txnRepo.CountTransactionsOnDate(ctx, date)
	if err != nil {
		return "", err
	}

	dateStr := date.Format("20060102")
	seq := count + 1
	for {
		transactionID := fmt.Sprintf("TXN-%s-%03d", dateStr, seq)
		exists, err := s.txnRepo.TransactionExists(ctx, transactionID)
		if err != nil {
			return "", err
		}
		if !exists {
			return transactionID, nil
		}
		seq++
	}
}

// ReplaceTransaction swaps the full entry set of an existing transaction.
// The new set is validated first; an unbalanced replacement leaves the stored
// transaction untouched.
func (s *postingService) ReplaceTransaction(ctx context.Context, transactionID string, date time.Time, description, reference string, entries []domain.EntryInput) (*domain.Transaction, error) {
	if transactionID == "" {
		return nil, fmt.Errorf("%w: transaction ID is required", apperrors.ErrValidation)
	}
	if err := s.validateEntries(ctx, entries); err != nil {
		return nil, err
	}

	txn := buildTransaction(transactionID, date, description, reference, entries)
	if err := s.txnRepo.ReplaceTransaction(ctx, txn); err != nil {
		return nil, err
	}

	s.logger.Info("transaction replaced",
		slog.String("transaction_id", transactionID),
		slog.Int("entries", len(entries)),
	)
	return &txn, nil
}

// DeleteTransaction removes a transaction and its entries.
func (s *postingService) DeleteTransaction(ctx context.Context, transactionID string) error {
	if err := s.txnRepo.DeleteTransaction(ctx, transactionID); err != nil {
		return err
	}
	s.logger.Info("transaction deleted", slog.String("transaction_id", transactionID))
	return nil
}

func (s *postingService) GetTransaction(ctx context.Context, transactionID string) (*domain.Transaction, error) {
	return s.txnRepo.FindTransactionByID(ctx, transactionID)
}

// validateEntries enforces the balanced-entry invariant and resolves every
// referenced account, rejecting unknown or inactive accounts before any
// write happens.
func (s *postingService) validateEntries(ctx context.Context, entries []domain.EntryInput) error {
	if err := accounting.ValidateBalanced(entries); err != nil {
		return err
	}

	seen := make(map[string]struct{}, len(entries))
	for _, e := range entries {
		if _, ok := seen[e.AccountID]; ok {
			continue
		}
		seen[e.AccountID] = struct{}{}

		account, err := s.accountRepo.FindAccountByID(ctx, e.AccountID)
		if err != nil {
			return fmt.Errorf("entry account %s: %w", e.AccountID, err)
		}
		if !account.IsActive {
			return fmt.Errorf("%w: account %s is inactive", apperrors.ErrValidation, e.AccountID)
		}
	}
	return nil
}

// buildTransaction assembles the domain transaction with derived entry IDs
// (<transaction_id>_<position>, 1-based) preserving input order.
func buildTransaction(transactionID string, date time.Time, description, reference string, entries []domain.EntryInput) domain.Transaction {
	txn := domain.Transaction{
		TransactionID: transactionID,
		Date:          date,
		Description:   description,
		Reference:     reference,
		CreatedAt:     time.Now().UTC(),
		Entries:       make([]domain.Entry, len(entries)),
	}
	for i, e := range entries {
		txn.Entries[i] = domain.Entry{
			EntryID:       fmt.Sprintf("%s_%d", transactionID, i+1),
			TransactionID: transactionID,
			AccountID:     e.AccountID,
			Debit:         e.Debit,
			Credit:        e.Credit,
			Description:   e.Description,
		}
	}
	return txn
}
