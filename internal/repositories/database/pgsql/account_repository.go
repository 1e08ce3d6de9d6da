package pgsql

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/openbooks/ledger/internal/apperrors"
	"github.com/openbooks/ledger/internal/core/domain"
	"github.com/openbooks/ledger/internal/core/ports"
	"github.com/openbooks/ledger/internal/models"
	"github.com/openbooks/ledger/internal/utils/mapping"
)

type PgxAccountRepository struct {
	pool *pgxpool.Pool
}

// newPgxAccountRepository creates a new repository for chart-of-accounts data.
func newPgxAccountRepository(pool *pgxpool.Pool) ports.AccountRepository {
	return &PgxAccountRepository{pool: pool}
}

var _ ports.AccountRepository = (*PgxAccountRepository)(nil)

// SaveAccount inserts an account, ignoring the insert when the ID is taken.
// Seeding relies on this being idempotent.
func (r *PgxAccountRepository) SaveAccount(ctx context.Context, account domain.Account) (bool, error) {
	modelAcc := mapping.ToModelAccount(account)

	query := `
		INSERT INTO accounts (account_id, name, account_type, parent_id, description, is_active, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (account_id) DO NOTHING;
	`
	var parentID sql.NullString
	if modelAcc.ParentID != "" {
		parentID = sql.NullString{String: modelAcc.ParentID, Valid: true}
	}

	cmdTag, err := r.pool.Exec(ctx, query,
		modelAcc.AccountID,
		modelAcc.Name,
		modelAcc.AccountType,
		parentID,
		modelAcc.Description,
		modelAcc.IsActive,
		modelAcc.CreatedAt,
	)
	if err != nil {
		return false, apperrors.NewAppError(500, "failed to insert account "+modelAcc.AccountID, err)
	}
	return cmdTag.RowsAffected() > 0, nil
}

// FindAccountByID retrieves an account by its ID.
func (r *PgxAccountRepository) FindAccountByID(ctx context.Context, accountID string) (*domain.Account, error) {
	query := `
		SELECT account_id, name, account_type, parent_id, description, is_active, created_at
		FROM accounts
		WHERE account_id = $1;
	`
	m, err := scanAccount(r.pool.QueryRow(ctx, query, accountID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFoundError("account " + accountID + " not found")
		}
		return nil, apperrors.NewAppError(500, "failed to find account "+accountID, err)
	}

	acc := mapping.ToDomainAccount(m)
	return &acc, nil
}

// ListAccounts returns accounts ordered by ID.
func (r *PgxAccountRepository) ListAccounts(ctx context.Context, activeOnly bool) ([]domain.Account, error) {
	query := `
		SELECT account_id, name, account_type, parent_id, description, is_active, created_at
		FROM accounts
	`
	if activeOnly {
		query += ` WHERE is_active`
	}
	query += ` ORDER BY account_id;`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query accounts", err)
	}
	defer rows.Close()

	return collectAccounts(rows)
}

// ListBankAccounts returns active asset accounts whose name contains one of
// the bank/cash markers, ordered by ID. The match is case-insensitive.
func (r *PgxAccountRepository) ListBankAccounts(ctx context.Context) ([]domain.Account, error) {
	query := `
		SELECT account_id, name, account_type, parent_id, description, is_active, created_at
		FROM accounts
		WHERE account_type = 'ASSET'
		  AND is_active
		  AND (lower(name) LIKE '%bank%' OR lower(name) LIKE '%cash%'
		       OR lower(name) LIKE '%checking%' OR lower(name) LIKE '%savings%')
		ORDER BY account_id;
	`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query bank accounts", err)
	}
	defer rows.Close()

	return collectAccounts(rows)
}

// SetAccountActive updates the active flag of an account.
func (r *PgxAccountRepository) SetAccountActive(ctx context.Context, accountID string, active bool) error {
	query := `UPDATE accounts SET is_active = $2 WHERE account_id = $1;`

	cmdTag, err := r.pool.Exec(ctx, query, accountID, active)
	if err != nil {
		return apperrors.NewAppError(500, "failed to update account "+accountID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.NewNotFoundError("account " + accountID + " not found for update")
	}
	return nil
}

func scanAccount(row pgx.Row) (models.Account, error) {
	var m models.Account
	var parentID sql.NullString

	err := row.Scan(
		&m.AccountID,
		&m.Name,
		&m.AccountType,
		&parentID,
		&m.Description,
		&m.IsActive,
		&m.CreatedAt,
	)
	if err != nil {
		return models.Account{}, err
	}
	if parentID.Valid {
		m.ParentID = parentID.String
	}
	return m, nil
}

func collectAccounts(rows pgx.Rows) ([]domain.Account, error) {
	accounts := []domain.Account{}
	for rows.Next() {
		m, err := scanAccount(rows)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan account row", err)
		}
		accounts = append(accounts, mapping.ToDomainAccount(m))
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating account rows", err)
	}
	return accounts, nil
}
