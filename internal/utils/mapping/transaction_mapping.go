package mapping

import (
	"github.com/openbooks/ledger/internal/core/domain"
	"github.com/openbooks/ledger/internal/models"
)

// ToModelTransaction converts a domain transaction header to its database row.
func ToModelTransaction(d domain.Transaction) models.Transaction {
	return models.Transaction{
		TransactionID: d.TransactionID,
		Date:          d.Date,
		Description:   d.Description,
		Reference:     d.Reference,
		CreatedAt:     d.CreatedAt,
	}
}

// ToDomainTransaction converts a database transaction row to the domain
// representation. Entries are attached separately by the repository.
func ToDomainTransaction(m models.Transaction) domain.Transaction {
	return domain.Transaction{
		TransactionID: m.TransactionID,
		Date:          m.Date,
		Description:   m.Description,
		Reference:     m.Reference,
		CreatedAt:     m.CreatedAt,
	}
}

// ToModelEntry converts a domain entry to its database row. Position is the
// 1-based index of the entry within its transaction.
func ToModelEntry(d domain.Entry, position int) models.Entry {
	return models.Entry{
		EntryID:       d.EntryID,
		TransactionID: d.TransactionID,
		AccountID:     d.AccountID,
		Position:      position,
		Debit:         d.Debit,
		Credit:        d.Credit,
		Description:   d.Description,
	}
}

// ToDomainEntry converts a database entry row to the domain representation.
func ToDomainEntry(m models.Entry) domain.Entry {
	return domain.Entry{
		EntryID:       m.EntryID,
		TransactionID: m.TransactionID,
		AccountID:     m.AccountID,
		Debit:         m.Debit,
		Credit:        m.Credit,
		Description:   m.Description,
	}
}

// ToModelImportBatch converts a domain import batch to its database row.
func ToModelImportBatch(d domain.ImportBatch) models.ImportBatch {
	return models.ImportBatch{
		ImportBatchID:    d.ImportBatchID,
		SourceAccountRef: d.SourceAccountRef,
		LedgerAccountID:  d.LedgerAccountID,
		ImportedAt:       d.ImportedAt,
		ContentHash:      d.ContentHash,
		TransactionCount: d.TransactionCount,
	}
}
