package services

import (
	"context"
	"time"

	"github.com/pumpsoft/fuel_station_backend/internal/core/domain"
	"github.com/pumpsoft/fuel_station_backend/internal/dto"
	"github.com/shopspring/decimal"
)

// AccountReaderSvc defines read operations for chart-of-accounts data
type AccountReaderSvc interface {
	// GetAccountByID retrieves a specific account, scoped to a pump.
	GetAccountByID(ctx context.Context, pumpID string, accountID string) (*domain.Account, error)

	// GetAccountsByIDs retrieves multiple accounts by their IDs.
	GetAccountsByIDs(ctx context.Context, pumpID string, accountIDs []string) (map[string]domain.Account, error)

	// ListAccounts retrieves a paginated list of accounts for a pump.
	ListAccounts(ctx context.Context, pumpID string, limit int, offset int) ([]domain.Account, error)

	// ResolveParentChain walks the parent links from the account to the root,
	// failing if a cycle is detected.
	ResolveParentChain(ctx context.Context, pumpID string, accountID string) ([]domain.Account, error)
}

// AccountWriterSvc defines write operations for account data
type AccountWriterSvc interface {
	// CreateAccount persists a new account; the code must be unique per pump.
	CreateAccount(ctx context.Context, pumpID string, req dto.CreateAccountRequest, userID string) (*domain.Account, error)

	// UpdateAccount updates an existing account's descriptive fields.
	UpdateAccount(ctx context.Context, pumpID string, accountID string, req dto.UpdateAccountRequest, userID string) (*domain.Account, error)

	// LockAccount blocks new postings to the account.
	LockAccount(ctx context.Context, pumpID string, accountID string, userID string) error

	// UnlockAccount re-enables postings to the account.
	UnlockAccount(ctx context.Context, pumpID string, accountID string, userID string) error

	// DeactivateAccount marks an account as inactive. Accounts are never
	// deleted.
	DeactivateAccount(ctx context.Context, pumpID string, accountID string, userID string) error
}

// AccountBalanceSvc defines balance reads over the ledger.
type AccountBalanceSvc interface {
	// BalanceAsOf reconstructs the account balance at end of the given date
	// from the ledger, not the cached current balance, so backdated postings
	// are reflected for historical dates.
	BalanceAsOf(ctx context.Context, pumpID string, accountID string, asOf time.Time) (decimal.Decimal, error)
}

// AccountSvcFacade combines all account-related service interfaces
type AccountSvcFacade interface {
	AccountReaderSvc
	AccountWriterSvc
	AccountBalanceSvc
}
