package pgsql

import (
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/openbooks/ledger/internal/core/ports"
)

// RepositoryProvider bundles the pgsql-backed repositories behind their ports.
type RepositoryProvider struct {
	Account     ports.AccountRepository
	Transaction ports.TransactionRepository
	Reporting   ports.ReportingRepository
	ImportBatch ports.ImportBatchRepository
}

// NewRepositoryProvider wires all repositories to a shared connection pool.
func NewRepositoryProvider(pool *pgxpool.Pool) *RepositoryProvider {
	return &RepositoryProvider{
		Account:     newPgxAccountRepository(pool),
		Transaction: newPgxTransactionRepository(pool),
		Reporting:   newPgxReportingRepository(pool),
		ImportBatch: newPgxImportBatchRepository(pool),
	}
}
