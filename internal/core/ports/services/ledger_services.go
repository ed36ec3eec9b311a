package services

import (
	"context"
	"time"

	"github.com/pumpsoft/fuel_station_backend/internal/core/domain"
	"github.com/pumpsoft/fuel_station_backend/internal/dto"
)

// LedgerSvcFacade exposes statement and balance reads over the posted ledger.
type LedgerSvcFacade interface {
	// GetStatement returns the ordered ledger rows of an account between two
	// dates, with opening and closing balances.
	GetStatement(ctx context.Context, pumpID string, accountID string, from, to time.Time) (*dto.StatementResponse, error)

	// GetLedgerEntry retrieves one posted ledger entry.
	GetLedgerEntry(ctx context.Context, pumpID string, ledgerEntryID string) (*domain.LedgerEntry, error)
}

// ReconciliationSvcFacade marks posted entries as matched against external
// statements. It never mutates amounts or running balances.
type ReconciliationSvcFacade interface {
	// Reconcile flags the entry and moves the account's reconciled balance to
	// the entry's running balance.
	Reconcile(ctx context.Context, pumpID string, ledgerEntryID string, userID string, asOf time.Time) (*domain.LedgerEntry, error)

	// Unreconciled lists an account's entries not yet matched.
	Unreconciled(ctx context.Context, pumpID string, accountID string) ([]domain.LedgerEntry, error)
}
