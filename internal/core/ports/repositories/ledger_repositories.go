package repositories

import (
	"context"
	"time"

	"github.com/pumpsoft/fuel_station_backend/internal/core/domain"
)

// LedgerReader defines read operations over posted ledger entries. All reads
// observe only fully committed postings (snapshot isolation).
type LedgerReader interface {
	// FindLedgerEntryByID retrieves one posted ledger entry.
	FindLedgerEntryByID(ctx context.Context, ledgerEntryID string) (*domain.LedgerEntry, error)

	// LedgerEntriesForAccount retrieves all entries of an account ordered by
	// (transaction_date, entry_no).
	LedgerEntriesForAccount(ctx context.Context, accountID string) ([]domain.LedgerEntry, error)

	// LedgerEntriesForAccountBetween retrieves the ordered entries of an
	// account whose transaction date falls within [from, to].
	LedgerEntriesForAccountBetween(ctx context.Context, accountID string, from, to time.Time) ([]domain.LedgerEntry, error)

	// LastEntryBefore returns the latest entry strictly before the given
	// instant in (transaction_date, entry_no) order, or nil if the account
	// has none.
	LastEntryBefore(ctx context.Context, accountID string, before time.Time) (*domain.LedgerEntry, error)

	// UnreconciledEntries lists entries not yet matched against a statement.
	UnreconciledEntries(ctx context.Context, accountID string) ([]domain.LedgerEntry, error)

	// EntriesByVoucherID retrieves the ledger rows a voucher produced.
	EntriesByVoucherID(ctx context.Context, voucherID string) ([]domain.LedgerEntry, error)
}

// ReconciliationWriter updates reconciliation metadata. Amounts and running
// balances are never touched by these operations.
type ReconciliationWriter interface {
	// MarkReconciled flags an entry as reconciled and moves the account's
	// reconciled balance to that entry's running balance, atomically.
	MarkReconciled(ctx context.Context, ledgerEntryID string, userID string, asOf time.Time) (*domain.LedgerEntry, error)
}

// LedgerRepositoryFacade combines the ledger repository interfaces
type LedgerRepositoryFacade interface {
	LedgerReader
	ReconciliationWriter
}
