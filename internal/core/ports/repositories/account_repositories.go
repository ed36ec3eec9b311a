package repositories

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/pumpsoft/fuel_station_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// AccountReader defines read operations for chart-of-accounts data
type AccountReader interface {
	// FindAccountByID retrieves a specific account by its unique identifier.
	FindAccountByID(ctx context.Context, accountID string) (*domain.Account, error)

	// FindAccountByCode retrieves an account by its code within a pump.
	FindAccountByCode(ctx context.Context, pumpID string, code string) (*domain.Account, error)

	// FindAccountsByIDs retrieves multiple accounts by their IDs.
	FindAccountsByIDs(ctx context.Context, accountIDs []string) (map[string]domain.Account, error)

	// ListAccounts retrieves a paginated list of accounts for a given pump.
	ListAccounts(ctx context.Context, pumpID string, limit int, offset int) ([]domain.Account, error)
}

// AccountWriter defines write operations for account data
type AccountWriter interface {
	// SaveAccount persists a new account.
	SaveAccount(ctx context.Context, account domain.Account) error

	// UpdateAccount updates an existing account's details.
	UpdateAccount(ctx context.Context, account domain.Account) error

	// SetAccountLocked toggles the posting lock on an account.
	SetAccountLocked(ctx context.Context, accountID string, locked bool, userID string, now time.Time) error

	// DeactivateAccount marks an account as inactive.
	DeactivateAccount(ctx context.Context, accountID string, userID string, now time.Time) error
}

// AccountPostingSupport defines operations the posting engine needs while it
// holds account locks inside a database transaction.
type AccountPostingSupport interface {
	// FindAccountsByIDsForUpdate locks the account rows in ascending
	// account-id order and returns them. The fixed order is what prevents
	// deadlock between concurrently posting vouchers that share accounts.
	FindAccountsByIDsForUpdate(ctx context.Context, tx pgx.Tx, accountIDs []string) (map[string]domain.Account, error)

	// UpdateAccountBalancesInTx overwrites the cached current balance of each
	// account with its recomputed ledger value within the transaction.
	UpdateAccountBalancesInTx(ctx context.Context, tx pgx.Tx, newBalances map[string]decimal.Decimal, userID string, now time.Time) error
}

// AccountRepositoryFacade combines all account-related repository interfaces
type AccountRepositoryFacade interface {
	AccountReader
	AccountWriter
	AccountPostingSupport
}
