package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/pumpsoft/fuel_station_backend/internal/apperrors"
	"github.com/pumpsoft/fuel_station_backend/internal/core/domain"
	portsrepo "github.com/pumpsoft/fuel_station_backend/internal/core/ports/repositories"
	"github.com/pumpsoft/fuel_station_backend/internal/models"
	"github.com/pumpsoft/fuel_station_backend/internal/utils/mapping"
)

const ledgerEntryColumns = `ledger_entry_id, entry_no, pump_id, account_id, voucher_id, voucher_number,
	       transaction_date, entry_type, debit_amount, credit_amount, running_balance, narration,
	       is_reconciled, reconciled_at, reconciled_by,
	       created_at, created_by, last_updated_at, last_updated_by, version`

type PgxLedgerRepository struct {
	BaseRepository
}

// newPgxLedgerRepository creates a new repository for posted ledger entries.
func newPgxLedgerRepository(pool *pgxpool.Pool) portsrepo.LedgerRepositoryFacade {
	return &PgxLedgerRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

// Ensure implementation matches interface
var _ portsrepo.LedgerRepositoryFacade = (*PgxLedgerRepository)(nil)

func scanLedgerEntry(s rowScanner) (models.LedgerEntry, error) {
	var m models.LedgerEntry
	err := s.Scan(
		&m.LedgerEntryID,
		&m.EntryNo,
		&m.PumpID,
		&m.AccountID,
		&m.VoucherID,
		&m.VoucherNumber,
		&m.TransactionDate,
		&m.EntryType,
		&m.DebitAmount,
		&m.CreditAmount,
		&m.RunningBalance,
		&m.Narration,
		&m.IsReconciled,
		&m.ReconciledAt,
		&m.ReconciledBy,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
		&m.Version,
	)
	return m, err
}

func collectLedgerEntries(rows pgx.Rows) ([]models.LedgerEntry, error) {
	defer rows.Close()

	entries := []models.LedgerEntry{}
	for rows.Next() {
		m, err := scanLedgerEntry(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan ledger entry row: %w", err)
		}
		entries = append(entries, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating ledger entry rows: %w", err)
	}
	return entries, nil
}

// FindLedgerEntryByID retrieves one posted ledger entry.
func (r *PgxLedgerRepository) FindLedgerEntryByID(ctx context.Context, ledgerEntryID string) (*domain.LedgerEntry, error) {
	query := `SELECT ` + ledgerEntryColumns + ` FROM ledger_entries WHERE ledger_entry_id = $1;`

	m, err := scanLedgerEntry(r.Pool.QueryRow(ctx, query, ledgerEntryID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find ledger entry by ID %s: %w", ledgerEntryID, err)
	}

	domainEntry := mapping.ToDomainLedgerEntry(m)
	return &domainEntry, nil
}

// LedgerEntriesForAccount retrieves all entries of an account in
// (transaction_date, entry_no) order.
func (r *PgxLedgerRepository) LedgerEntriesForAccount(ctx context.Context, accountID string) ([]domain.LedgerEntry, error) {
	query := `
		SELECT ` + ledgerEntryColumns + `
		FROM ledger_entries
		WHERE account_id = $1
		ORDER BY transaction_date, entry_no;
	`
	rows, err := r.Pool.Query(ctx, query, accountID)
	if err != nil {
		return nil, fmt.Errorf("failed to query ledger entries for account %s: %w", accountID, err)
	}

	entries, err := collectLedgerEntries(rows)
	if err != nil {
		return nil, err
	}
	return mapping.ToDomainLedgerEntrySlice(entries), nil
}

// LedgerEntriesForAccountBetween retrieves the ordered entries of an account
// whose transaction date falls within [from, to].
func (r *PgxLedgerRepository) LedgerEntriesForAccountBetween(ctx context.Context, accountID string, from, to time.Time) ([]domain.LedgerEntry, error) {
	query := `
		SELECT ` + ledgerEntryColumns + `
		FROM ledger_entries
		WHERE account_id = $1 AND transaction_date >= $2 AND transaction_date <= $3
		ORDER BY transaction_date, entry_no;
	`
	rows, err := r.Pool.Query(ctx, query, accountID, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to query ledger entries for account %s: %w", accountID, err)
	}

	entries, err := collectLedgerEntries(rows)
	if err != nil {
		return nil, err
	}
	return mapping.ToDomainLedgerEntrySlice(entries), nil
}

// LastEntryBefore returns the latest entry strictly before the given instant
// in (transaction_date, entry_no) order, or nil if the account has none.
func (r *PgxLedgerRepository) LastEntryBefore(ctx context.Context, accountID string, before time.Time) (*domain.LedgerEntry, error) {
	query := `
		SELECT ` + ledgerEntryColumns + `
		FROM ledger_entries
		WHERE account_id = $1 AND transaction_date < $2
		ORDER BY transaction_date DESC, entry_no DESC
		LIMIT 1;
	`
	m, err := scanLedgerEntry(r.Pool.QueryRow(ctx, query, accountID, before))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find last ledger entry before %s for account %s: %w", before, accountID, err)
	}

	domainEntry := mapping.ToDomainLedgerEntry(m)
	return &domainEntry, nil
}

// UnreconciledEntries lists entries not yet matched against a statement.
func (r *PgxLedgerRepository) UnreconciledEntries(ctx context.Context, accountID string) ([]domain.LedgerEntry, error) {
	query := `
		SELECT ` + ledgerEntryColumns + `
		FROM ledger_entries
		WHERE account_id = $1 AND is_reconciled = FALSE
		ORDER BY transaction_date, entry_no;
	`
	rows, err := r.Pool.Query(ctx, query, accountID)
	if err != nil {
		return nil, fmt.Errorf("failed to query unreconciled entries for account %s: %w", accountID, err)
	}

	entries, err := collectLedgerEntries(rows)
	if err != nil {
		return nil, err
	}
	return mapping.ToDomainLedgerEntrySlice(entries), nil
}

// EntriesByVoucherID retrieves the ledger rows a voucher produced.
func (r *PgxLedgerRepository) EntriesByVoucherID(ctx context.Context, voucherID string) ([]domain.LedgerEntry, error) {
	query := `
		SELECT ` + ledgerEntryColumns + `
		FROM ledger_entries
		WHERE voucher_id = $1
		ORDER BY entry_no;
	`
	rows, err := r.Pool.Query(ctx, query, voucherID)
	if err != nil {
		return nil, fmt.Errorf("failed to query ledger entries for voucher %s: %w", voucherID, err)
	}

	entries, err := collectLedgerEntries(rows)
	if err != nil {
		return nil, err
	}
	return mapping.ToDomainLedgerEntrySlice(entries), nil
}

// MarkReconciled flags an entry as reconciled and moves the owning account's
// reconciled balance to that entry's running balance, in one transaction.
// Amounts and running balances are never touched.
func (r *PgxLedgerRepository) MarkReconciled(ctx context.Context, ledgerEntryID string, userID string, asOf time.Time) (*domain.LedgerEntry, error) {
	tx, err := r.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer r.Rollback(ctx, tx)

	entryQuery := `
		UPDATE ledger_entries
		SET is_reconciled = TRUE,
		    reconciled_at = $2,
		    reconciled_by = $3,
		    last_updated_at = $2,
		    last_updated_by = $3,
		    version = version + 1
		WHERE ledger_entry_id = $1 AND is_reconciled = FALSE
		RETURNING ` + ledgerEntryColumns + `;
	`
	m, err := scanLedgerEntry(tx.QueryRow(ctx, entryQuery, ledgerEntryID, asOf, userID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			// Lost a race: the entry vanished or someone reconciled it first.
			return nil, fmt.Errorf("%w: ledger entry %s is not reconcilable", apperrors.ErrInvalidState, ledgerEntryID)
		}
		return nil, fmt.Errorf("failed to mark ledger entry %s reconciled: %w", ledgerEntryID, err)
	}

	accountQuery := `
		UPDATE accounts
		SET reconciled_balance = $2,
		    last_updated_at = $3,
		    last_updated_by = $4,
		    version = version + 1
		WHERE account_id = $1;
	`
	cmdTag, err := tx.Exec(ctx, accountQuery, m.AccountID, m.RunningBalance, asOf, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to update reconciled balance for account %s: %w", m.AccountID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return nil, fmt.Errorf("%w: account %s", apperrors.ErrNotFound, m.AccountID)
	}

	if err := r.Commit(ctx, tx); err != nil {
		return nil, err
	}

	domainEntry := mapping.ToDomainLedgerEntry(m)
	return &domainEntry, nil
}
