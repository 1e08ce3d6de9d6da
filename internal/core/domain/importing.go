package domain

import "time"

// ImportBatch records one statement import for auditability.
type ImportBatch struct {
	ImportBatchID    string    `json:"importBatchID"`
	SourceAccountRef string    `json:"sourceAccountRef"` // bank and account identifiers from the statement
	LedgerAccountID  string    `json:"ledgerAccountID"`  // cash account the statement was imported against
	ImportedAt       time.Time `json:"importedAt"`
	ContentHash      string    `json:"contentHash"` // hex SHA-256 of the source document
	TransactionCount int       `json:"transactionCount"`
}

// ImportResult summarizes the outcome of one statement import.
type ImportResult struct {
	BatchID  string `json:"batchID"`
	Imported int    `json:"imported"`
	Skipped  int    `json:"skipped"` // duplicates and records that could not be mapped
}
