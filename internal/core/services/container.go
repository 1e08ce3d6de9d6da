package services

import (
	"log/slog"

	"github.com/openbooks/ledger/internal/core/ports"
	"github.com/openbooks/ledger/internal/repositories/database/pgsql"
)

// ServiceContainer bundles the engine services consumed by external callers
// (web layer, CLI).
type ServiceContainer struct {
	Account   ports.AccountSvc
	Posting   ports.PostingSvc
	Reporting ports.ReportingSvc
	Statement ports.StatementSvc
}

// NewServiceContainer wires the engine services to a repository provider.
func NewServiceContainer(repos *pgsql.RepositoryProvider, offsets OffsetAccounts, logger *slog.Logger) *ServiceContainer {
	posting := NewPostingService(repos.Transaction, repos.Account, logger)
	return &ServiceContainer{
		Account:   NewAccountService(repos.Account, repos.Reporting, logger),
		Posting:   posting,
		Reporting: NewReportingService(repos.Account, repos.Reporting, logger),
		Statement: NewStatementService(repos.Account, repos.Transaction, repos.Reporting, repos.ImportBatch, posting, offsets, logger),
	}
}
