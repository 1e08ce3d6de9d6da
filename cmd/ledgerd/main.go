package main

import (
	"context"
	"database/sql"
	"log/slog"
	"os"

	"github.com/openbooks/ledger/internal/core/services"
	"github.com/openbooks/ledger/internal/platform/config"
	"github.com/openbooks/ledger/internal/repositories/database/pgsql"
	"github.com/openbooks/ledger/pkg/database"

	_ "github.com/jackc/pgx/v5/stdlib"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Error("Failed to load config", slog.String("error", err.Error()))
		os.Exit(1)
	}

	ctx := context.Background()

	pool, err := database.NewPgxPool(ctx, cfg.DatabaseURL)
	if err != nil {
		logger.Error("Failed to initialize database pool", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer pool.Close()
	logger.Info("Database connection pool established.")

	// Migrations use a standard sql.DB connection via the pgx stdlib driver,
	// compatible with the main pool.
	migrationDB, err := sql.Open("pgx", cfg.DatabaseURL)
	if err != nil {
		logger.Error("Failed to open database connection for migrations", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer migrationDB.Close()

	if err := pgsql.RunMigrations(migrationDB); err != nil {
		logger.Error("Failed to run migrations", slog.String("error", err.Error()))
		os.Exit(1)
	}
	logger.Info("Database migrations applied.")

	repos := pgsql.NewRepositoryProvider(pool)
	container := services.NewServiceContainer(repos, services.OffsetAccounts{
		Income:  cfg.ImportIncomeAccount,
		Expense: cfg.ImportExpenseAccount,
	}, logger)

	created, err := container.Account.SeedChartOfAccounts(ctx)
	if err != nil {
		logger.Error("Failed to seed chart of accounts", slog.String("error", err.Error()))
		os.Exit(1)
	}
	logger.Info("Chart of accounts ready", slog.Int("created", created))

	banks, err := container.Account.ListBankAccounts(ctx)
	if err != nil {
		logger.Error("Failed to list bank accounts", slog.String("error", err.Error()))
		os.Exit(1)
	}
	logger.Info("Ledger engine ready",
		slog.Int("bank_accounts", len(banks)),
		slog.Bool("production", cfg.IsProduction),
	)
}
