package pgsql

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/pumpsoft/fuel_station_backend/internal/apperrors"
	"github.com/pumpsoft/fuel_station_backend/internal/core/domain"
	portsrepo "github.com/pumpsoft/fuel_station_backend/internal/core/ports/repositories"
	"github.com/pumpsoft/fuel_station_backend/internal/models"
	"github.com/pumpsoft/fuel_station_backend/internal/utils/mapping"
)

const accountColumns = `account_id, pump_id, code, name, account_type, account_group, balance_type,
	       opening_balance, current_balance, reconciled_balance, parent_account_id, description,
	       is_system_account, is_active, is_locked,
	       created_at, created_by, last_updated_at, last_updated_by, version`

type PgxAccountRepository struct {
	BaseRepository
}

// newPgxAccountRepository creates a new repository for chart-of-accounts data.
func newPgxAccountRepository(pool *pgxpool.Pool) portsrepo.AccountRepositoryFacade {
	return &PgxAccountRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

// Ensure implementation matches interface
var _ portsrepo.AccountRepositoryFacade = (*PgxAccountRepository)(nil)

func scanAccount(s rowScanner) (models.Account, error) {
	var m models.Account
	var parentID sql.NullString
	err := s.Scan(
		&m.AccountID,
		&m.PumpID,
		&m.Code,
		&m.Name,
		&m.AccountType,
		&m.AccountGroup,
		&m.BalanceType,
		&m.OpeningBalance,
		&m.CurrentBalance,
		&m.ReconciledBalance,
		&parentID,
		&m.Description,
		&m.IsSystemAccount,
		&m.IsActive,
		&m.IsLocked,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
		&m.Version,
	)
	if err != nil {
		return m, err
	}
	if parentID.Valid {
		m.ParentAccountID = parentID.String
	}
	return m, nil
}

// SaveAccount persists a new account.
func (r *PgxAccountRepository) SaveAccount(ctx context.Context, account domain.Account) error {
	m := mapping.ToModelAccount(account)

	query := `
		INSERT INTO accounts (
			account_id, pump_id, code, name, account_type, account_group, balance_type,
			opening_balance, current_balance, reconciled_balance, parent_account_id, description,
			is_system_account, is_active, is_locked,
			created_at, created_by, last_updated_at, last_updated_by, version
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, 1);
	`
	var parentID *string
	if m.ParentAccountID != "" {
		parentID = &m.ParentAccountID
	}

	_, err := r.Pool.Exec(ctx, query,
		m.AccountID,
		m.PumpID,
		m.Code,
		m.Name,
		m.AccountType,
		m.AccountGroup,
		m.BalanceType,
		m.OpeningBalance,
		m.CurrentBalance,
		m.ReconciledBalance,
		parentID,
		m.Description,
		m.IsSystemAccount,
		m.IsActive,
		m.IsLocked,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		if mapped := classifyPgError(err); mapped != nil {
			return fmt.Errorf("%w: account code %s in pump %s", mapped, m.Code, m.PumpID)
		}
		return fmt.Errorf("failed to save account %s: %w", m.AccountID, err)
	}
	return nil
}

// FindAccountByID retrieves an account by its unique identifier.
func (r *PgxAccountRepository) FindAccountByID(ctx context.Context, accountID string) (*domain.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE account_id = $1;`

	m, err := scanAccount(r.Pool.QueryRow(ctx, query, accountID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find account by ID %s: %w", accountID, err)
	}

	domainAccount := mapping.ToDomainAccount(m)
	return &domainAccount, nil
}

// FindAccountByCode retrieves an account by its code within a pump.
func (r *PgxAccountRepository) FindAccountByCode(ctx context.Context, pumpID string, code string) (*domain.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE pump_id = $1 AND code = $2;`

	m, err := scanAccount(r.Pool.QueryRow(ctx, query, pumpID, code))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find account by code %s in pump %s: %w", code, pumpID, err)
	}

	domainAccount := mapping.ToDomainAccount(m)
	return &domainAccount, nil
}

// FindAccountsByIDs retrieves multiple accounts by their IDs.
func (r *PgxAccountRepository) FindAccountsByIDs(ctx context.Context, accountIDs []string) (map[string]domain.Account, error) {
	if len(accountIDs) == 0 {
		return map[string]domain.Account{}, nil
	}

	query := `SELECT ` + accountColumns + ` FROM accounts WHERE account_id = ANY($1);`

	rows, err := r.Pool.Query(ctx, query, accountIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to query accounts by IDs: %w", err)
	}
	defer rows.Close()

	accounts := make(map[string]domain.Account, len(accountIDs))
	for rows.Next() {
		m, scanErr := scanAccount(rows)
		if scanErr != nil {
			return nil, fmt.Errorf("failed to scan account row: %w", scanErr)
		}
		accounts[m.AccountID] = mapping.ToDomainAccount(m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating account rows: %w", err)
	}

	return accounts, nil
}

// ListAccounts retrieves a paginated list of accounts for a given pump.
func (r *PgxAccountRepository) ListAccounts(ctx context.Context, pumpID string, limit int, offset int) ([]domain.Account, error) {
	if limit <= 0 {
		limit = 20
	}

	query := `SELECT ` + accountColumns + ` FROM accounts WHERE pump_id = $1 ORDER BY code LIMIT $2 OFFSET $3;`

	rows, err := r.Pool.Query(ctx, query, pumpID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to query accounts for pump %s: %w", pumpID, err)
	}
	defer rows.Close()

	accounts := make([]domain.Account, 0, limit)
	for rows.Next() {
		m, scanErr := scanAccount(rows)
		if scanErr != nil {
			return nil, fmt.Errorf("failed to scan account row for pump %s: %w", pumpID, scanErr)
		}
		accounts = append(accounts, mapping.ToDomainAccount(m))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating account rows for pump %s: %w", pumpID, err)
	}

	return accounts, nil
}

// UpdateAccount updates an existing account's descriptive details.
// Balances are never written through this method; they change only inside
// posting and reconciliation transactions.
func (r *PgxAccountRepository) UpdateAccount(ctx context.Context, account domain.Account) error {
	m := mapping.ToModelAccount(account)

	query := `
		UPDATE accounts
		SET name = $2,
		    account_group = $3,
		    description = $4,
		    last_updated_at = $5,
		    last_updated_by = $6,
		    version = version + 1
		WHERE account_id = $1;
	`
	cmdTag, err := r.Pool.Exec(ctx, query,
		m.AccountID,
		m.Name,
		m.AccountGroup,
		m.Description,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to update account %s: %w", m.AccountID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("%w: account %s", apperrors.ErrNotFound, m.AccountID)
	}
	return nil
}

// SetAccountLocked toggles the posting lock on an account.
func (r *PgxAccountRepository) SetAccountLocked(ctx context.Context, accountID string, locked bool, userID string, now time.Time) error {
	query := `
		UPDATE accounts
		SET is_locked = $2,
		    last_updated_at = $3,
		    last_updated_by = $4,
		    version = version + 1
		WHERE account_id = $1;
	`
	cmdTag, err := r.Pool.Exec(ctx, query, accountID, locked, now, userID)
	if err != nil {
		return fmt.Errorf("failed to set lock on account %s: %w", accountID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("%w: account %s", apperrors.ErrNotFound, accountID)
	}
	return nil
}

// DeactivateAccount marks an account as inactive.
func (r *PgxAccountRepository) DeactivateAccount(ctx context.Context, accountID string, userID string, now time.Time) error {
	query := `
		UPDATE accounts
		SET is_active = FALSE,
		    last_updated_at = $2,
		    last_updated_by = $3,
		    version = version + 1
		WHERE account_id = $1;
	`
	cmdTag, err := r.Pool.Exec(ctx, query, accountID, now, userID)
	if err != nil {
		return fmt.Errorf("failed to deactivate account %s: %w", accountID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("%w: account %s", apperrors.ErrNotFound, accountID)
	}
	return nil
}

// FindAccountsByIDsForUpdate locks the account rows inside the given
// transaction and returns them. Rows are locked in ascending account_id order
// so concurrent postings that share accounts always queue instead of
// deadlocking. The surrounding transaction's lock_timeout bounds the wait.
func (r *PgxAccountRepository) FindAccountsByIDsForUpdate(ctx context.Context, tx pgx.Tx, accountIDs []string) (map[string]domain.Account, error) {
	if len(accountIDs) == 0 {
		return map[string]domain.Account{}, nil
	}

	sorted := make([]string, len(accountIDs))
	copy(sorted, accountIDs)
	sort.Strings(sorted)

	query := `SELECT ` + accountColumns + ` FROM accounts WHERE account_id = ANY($1) ORDER BY account_id FOR UPDATE;`

	rows, err := tx.Query(ctx, query, sorted)
	if err != nil {
		if mapped := classifyPgError(err); mapped != nil {
			return nil, fmt.Errorf("%w: could not lock accounts", mapped)
		}
		return nil, fmt.Errorf("failed to lock accounts for update: %w", err)
	}
	defer rows.Close()

	accounts := make(map[string]domain.Account, len(sorted))
	for rows.Next() {
		m, scanErr := scanAccount(rows)
		if scanErr != nil {
			return nil, fmt.Errorf("failed to scan locked account row: %w", scanErr)
		}
		accounts[m.AccountID] = mapping.ToDomainAccount(m)
	}
	if err := rows.Err(); err != nil {
		if mapped := classifyPgError(err); mapped != nil {
			return nil, fmt.Errorf("%w: could not lock accounts", mapped)
		}
		return nil, fmt.Errorf("error iterating locked account rows: %w", err)
	}

	for _, id := range sorted {
		if _, ok := accounts[id]; !ok {
			return nil, fmt.Errorf("%w: account %s", apperrors.ErrNotFound, id)
		}
	}

	return accounts, nil
}

// UpdateAccountBalancesInTx overwrites the cached current balance of each
// account with its recomputed ledger value within the transaction. The rows
// must already be locked via FindAccountsByIDsForUpdate.
func (r *PgxAccountRepository) UpdateAccountBalancesInTx(ctx context.Context, tx pgx.Tx, newBalances map[string]decimal.Decimal, userID string, now time.Time) error {
	if len(newBalances) == 0 {
		return nil
	}

	query := `
		UPDATE accounts
		SET current_balance = $2,
		    last_updated_at = $3,
		    last_updated_by = $4,
		    version = version + 1
		WHERE account_id = $1;
	`

	batch := &pgx.Batch{}
	for accountID, balance := range newBalances {
		batch.Queue(query, accountID, balance, now, userID)
	}

	br := tx.SendBatch(ctx, batch)
	if err := br.Close(); err != nil {
		return fmt.Errorf("failed to update account balances: %w", err)
	}
	return nil
}
