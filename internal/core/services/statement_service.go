package services

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/openbooks/ledger/internal/apperrors"
	"github.com/openbooks/ledger/internal/core/domain"
	"github.com/openbooks/ledger/internal/core/ports"
	"github.com/openbooks/ledger/internal/ofx"
	"github.com/shopspring/decimal"
)

// importIDPrefix namespaces transaction IDs derived from statement FITIDs,
// making re-imports idempotent.
const importIDPrefix = "OFX_"

// OffsetAccounts configures the default offset accounts a statement import
// posts against. The statement itself carries only one leg of each
// transaction; the engine supplies the other.
type OffsetAccounts struct {
	Income  string // credited for positive statement amounts
	Expense string // debited for negative statement amounts
}

type statementService struct {
	accountRepo ports.AccountRepository
	txnRepo     ports.TransactionRepository
	reportRepo  ports.ReportingRepository
	batchRepo   ports.ImportBatchRepository
	posting     ports.PostingSvc
	offsets     OffsetAccounts
	logger      *slog.Logger
}

// NewStatementService creates the statement interchange service.
func NewStatementService(
	accountRepo ports.AccountRepository,
	txnRepo ports.TransactionRepository,
	reportRepo ports.ReportingRepository,
	batchRepo ports.ImportBatchRepository,
	posting ports.PostingSvc,
	offsets OffsetAccounts,
	logger *slog.Logger,
) ports.StatementSvc {
	return &statementService{
		accountRepo: accountRepo,
		txnRepo:     txnRepo,
		reportRepo:  reportRepo,
		batchRepo:   batchRepo,
		posting:     posting,
		offsets:     offsets,
		logger:      logger,
	}
}

var _ ports.StatementSvc = (*statementService)(nil)

// ImportStatement parses an OFX document and maps each record to a balanced
// two-entry transaction against the cash account: positive amounts debit
// cash and credit the income offset, negative amounts debit the expense
// offset and credit cash. Records whose derived ID already exists are
// skipped, so importing the same document twice leaves the ledger unchanged.
// A record that cannot be mapped is skipped and logged; a document without a
// bank account block aborts the import with nothing committed.
func (s *statementService) ImportStatement(ctx context.Context, document []byte, cashAccountID string) (*domain.ImportResult, error) {
	stmt, err := ofx.Parse(document)
	if err != nil {
		return nil, err
	}

	cash, err := s.accountRepo.FindAccountByID(ctx, cashAccountID)
	if err != nil {
		return nil, fmt.Errorf("cash account %s: %w", cashAccountID, err)
	}
	if !cash.IsActive {
		return nil, fmt.Errorf("%w: cash account %s is inactive", apperrors.ErrValidation, cashAccountID)
	}

	result := &domain.ImportResult{}
	for _, record := range stmt.Transactions {
		if record.FITID == "" {
			s.logger.Warn("skipping statement record without FITID")
			result.Skipped++
			continue
		}

		transactionID := importIDPrefix + record.FITID
		exists, err := s.txnRepo.TransactionExists(ctx, transactionID)
		if err != nil {
			return nil, err
		}
		if exists {
			result.Skipped++
			continue
		}

		date, amount, mapErr := parseStatementRecord(record)
		if mapErr != nil {
			s.logger.Warn("skipping unmappable statement record",
				slog.String("fitid", record.FITID),
				slog.String("error", mapErr.Error()),
			)
			result.Skipped++
			continue
		}

		description := strings.TrimSpace(record.Name + " " + record.Memo)
		entries := s.mapToEntries(cashAccountID, amount, description)

		if _, err := s.posting.PostTransaction(ctx, transactionID, date, description, record.FITID, entries); err != nil {
			s.logger.Warn("failed to import statement record",
				slog.String("fitid", record.FITID),
				slog.String("error", err.Error()),
			)
			result.Skipped++
			continue
		}
		result.Imported++
	}

	hash := sha256.Sum256(document)
	batch := domain.ImportBatch{
		ImportBatchID:    uuid.NewString(),
		SourceAccountRef: strings.TrimLeft(stmt.BankID+":"+stmt.AccountID, ":"),
		LedgerAccountID:  cashAccountID,
		ImportedAt:       time.Now().UTC(),
		ContentHash:      hex.EncodeToString(hash[:]),
		TransactionCount: result.Imported,
	}
	if err := s.batchRepo.SaveImportBatch(ctx, batch); err != nil {
		return nil, err
	}
	result.BatchID = batch.ImportBatchID

	s.logger.Info("statement imported",
		slog.String("batch_id", batch.ImportBatchID),
		slog.Int("imported", result.Imported),
		slog.Int("skipped", result.Skipped),
	)
	return result, nil
}

// parseStatementRecord extracts the posting date and signed amount of a raw
// statement record.
func parseStatementRecord(record ofx.StatementTransaction) (time.Time, decimal.Decimal, error) {
	if len(record.DatePosted) < 8 {
		return time.Time{}, decimal.Zero, fmt.Errorf("posted date %q too short", record.DatePosted)
	}
	date, err := time.Parse("20060102", record.DatePosted[:8])
	if err != nil {
		return time.Time{}, decimal.Zero, fmt.Errorf("invalid posted date %q: %w", record.DatePosted, err)
	}
	amount, err := decimal.NewFromString(record.Amount)
	if err != nil {
		return time.Time{}, decimal.Zero, fmt.Errorf("invalid amount %q: %w", record.Amount, err)
	}
	return date, amount, nil
}

// mapToEntries maps a signed statement amount to a balanced two-entry set.
func (s *statementService) mapToEntries(cashAccountID string, amount decimal.Decimal, description string) []domain.EntryInput {
	if amount.IsPositive() {
		return []domain.EntryInput{
			{AccountID: cashAccountID, Debit: amount, Description: description},
			{AccountID: s.offsets.Income, Credit: amount, Description: description},
		}
	}
	abs := amount.Abs()
	return []domain.EntryInput{
		{AccountID: s.offsets.Expense, Debit: abs, Description: description},
		{AccountID: cashAccountID, Credit: abs, Description: description},
	}
}

// ExportStatement serializes the account's entries dated in [start, end] to
// an OFX document. Only the exported account's leg is written; the offset
// legs of the underlying transactions are not re-derivable from a statement
// and are not included.
func (s *statementService) ExportStatement(ctx context.Context, accountID string, start, end time.Time) ([]byte, error) {
	if _, err := s.accountRepo.FindAccountByID(ctx, accountID); err != nil {
		return nil, err
	}

	entries, err := s.reportRepo.EntriesInRange(ctx, accountID, start, end)
	if err != nil {
		return nil, err
	}

	exportEntries := make([]ofx.ExportEntry, len(entries))
	for i, e := range entries {
		exportEntries[i] = ofx.ExportEntry{
			TransactionID: e.TransactionID,
			Date:          e.Date,
			Description:   e.Description,
			Debit:         e.Debit,
			Credit:        e.Credit,
		}
	}

	return ofx.Write(ofx.Export{
		AccountID:  accountID,
		Start:      start,
		End:        end,
		ServerTime: time.Now().UTC(),
		Entries:    exportEntries,
	}), nil
}
