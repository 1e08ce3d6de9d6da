package models

import "time"

// ImportBatch is the database representation of one statement import.
type ImportBatch struct {
	ImportBatchID    string    `db:"import_batch_id"`
	SourceAccountRef string    `db:"source_account_ref"`
	LedgerAccountID  string    `db:"ledger_account_id"`
	ImportedAt       time.Time `db:"imported_at"`
	ContentHash      string    `db:"content_hash"`
	TransactionCount int       `db:"transaction_count"`
}
