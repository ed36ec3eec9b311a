package pgsql

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/pumpsoft/fuel_station_backend/internal/apperrors"
	"github.com/pumpsoft/fuel_station_backend/internal/core/domain"
	portsrepo "github.com/pumpsoft/fuel_station_backend/internal/core/ports/repositories"
	"github.com/pumpsoft/fuel_station_backend/internal/models"
	"github.com/pumpsoft/fuel_station_backend/internal/utils/accounting"
	"github.com/pumpsoft/fuel_station_backend/internal/utils/mapping"
	"github.com/pumpsoft/fuel_station_backend/internal/utils/pagination"
)

// postingLockTimeout bounds how long a posting transaction waits for account
// row locks. A timed-out posting writes nothing and is safe to retry.
const postingLockTimeout = "3s"

const voucherColumns = `voucher_id, pump_id, voucher_number, voucher_type, voucher_date, narration,
	       total_amount, status, cancel_reason, posted_at, posted_by,
	       reverses_voucher_id, reversed_by_voucher_id,
	       created_at, created_by, last_updated_at, last_updated_by, version`

const voucherEntryColumns = `entry_id, voucher_id, account_id, entry_type, amount, narration, line_no,
	       created_at, created_by, last_updated_at, last_updated_by, version`

type PgxVoucherRepository struct {
	BaseRepository
	accountRepo portsrepo.AccountRepositoryFacade
}

// newPgxVoucherRepository creates a new repository for voucher data. It takes
// the account repository as a dependency because posting locks and rewrites
// account rows inside its own transaction.
func newPgxVoucherRepository(pool *pgxpool.Pool, accountRepo portsrepo.AccountRepositoryFacade) portsrepo.VoucherRepositoryFacade {
	return &PgxVoucherRepository{
		BaseRepository: BaseRepository{Pool: pool},
		accountRepo:    accountRepo,
	}
}

// Ensure implementation matches interface
var _ portsrepo.VoucherRepositoryFacade = (*PgxVoucherRepository)(nil)

func scanVoucher(s rowScanner) (models.Voucher, error) {
	var m models.Voucher
	var voucherNumber sql.NullString
	err := s.Scan(
		&m.VoucherID,
		&m.PumpID,
		&voucherNumber,
		&m.VoucherType,
		&m.VoucherDate,
		&m.Narration,
		&m.TotalAmount,
		&m.Status,
		&m.CancelReason,
		&m.PostedAt,
		&m.PostedBy,
		&m.ReversesVoucherID,
		&m.ReversedByVoucherID,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
		&m.Version,
	)
	if err != nil {
		return m, err
	}
	if voucherNumber.Valid {
		m.VoucherNumber = voucherNumber.String
	}
	return m, nil
}

func scanVoucherEntry(s rowScanner) (models.VoucherEntry, error) {
	var m models.VoucherEntry
	err := s.Scan(
		&m.EntryID,
		&m.VoucherID,
		&m.AccountID,
		&m.EntryType,
		&m.Amount,
		&m.Narration,
		&m.LineNo,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
		&m.Version,
	)
	return m, err
}

const insertVoucherEntryQuery = `
	INSERT INTO voucher_entries (
		entry_id, voucher_id, account_id, entry_type, amount, narration, line_no,
		created_at, created_by, last_updated_at, last_updated_by, version
	)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, 1);
`

func queueVoucherEntryInserts(batch *pgx.Batch, entries []domain.VoucherEntry) {
	for _, entry := range entries {
		m := mapping.ToModelVoucherEntry(entry)
		batch.Queue(insertVoucherEntryQuery,
			m.EntryID,
			m.VoucherID,
			m.AccountID,
			m.EntryType,
			m.Amount,
			m.Narration,
			m.LineNo,
			m.CreatedAt,
			m.CreatedBy,
			m.LastUpdatedAt,
			m.LastUpdatedBy,
		)
	}
}

// SaveVoucher persists a new draft voucher together with its entries in one
// transaction.
func (r *PgxVoucherRepository) SaveVoucher(ctx context.Context, voucher domain.Voucher, entries []domain.VoucherEntry) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	m := mapping.ToModelVoucher(voucher)
	var voucherNumber *string
	if m.VoucherNumber != "" {
		voucherNumber = &m.VoucherNumber
	}

	headerQuery := `
		INSERT INTO vouchers (
			voucher_id, pump_id, voucher_number, voucher_type, voucher_date, narration,
			total_amount, status, cancel_reason, posted_at, posted_by,
			reverses_voucher_id, reversed_by_voucher_id,
			created_at, created_by, last_updated_at, last_updated_by, version
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, 1);
	`
	_, err = tx.Exec(ctx, headerQuery,
		m.VoucherID,
		m.PumpID,
		voucherNumber,
		m.VoucherType,
		m.VoucherDate,
		m.Narration,
		m.TotalAmount,
		m.Status,
		m.CancelReason,
		m.PostedAt,
		m.PostedBy,
		m.ReversesVoucherID,
		m.ReversedByVoucherID,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		if mapped := classifyPgError(err); mapped != nil {
			return fmt.Errorf("%w: voucher %s", mapped, m.VoucherID)
		}
		return fmt.Errorf("failed to insert voucher %s: %w", m.VoucherID, err)
	}

	batch := &pgx.Batch{}
	queueVoucherEntryInserts(batch, entries)
	br := tx.SendBatch(ctx, batch)
	if err := br.Close(); err != nil {
		return fmt.Errorf("failed to insert entries for voucher %s: %w", m.VoucherID, err)
	}

	return r.Commit(ctx, tx)
}

// FindVoucherByID retrieves a voucher header by its unique identifier.
func (r *PgxVoucherRepository) FindVoucherByID(ctx context.Context, voucherID string) (*domain.Voucher, error) {
	query := `SELECT ` + voucherColumns + ` FROM vouchers WHERE voucher_id = $1;`

	m, err := scanVoucher(r.Pool.QueryRow(ctx, query, voucherID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find voucher by ID %s: %w", voucherID, err)
	}

	domainVoucher := mapping.ToDomainVoucher(m)
	return &domainVoucher, nil
}

// FindEntriesByVoucherID retrieves the ordered lines of a voucher.
func (r *PgxVoucherRepository) FindEntriesByVoucherID(ctx context.Context, voucherID string) ([]domain.VoucherEntry, error) {
	query := `SELECT ` + voucherEntryColumns + ` FROM voucher_entries WHERE voucher_id = $1 ORDER BY line_no;`

	rows, err := r.Pool.Query(ctx, query, voucherID)
	if err != nil {
		return nil, fmt.Errorf("failed to query entries for voucher %s: %w", voucherID, err)
	}
	defer rows.Close()

	entries := []models.VoucherEntry{}
	for rows.Next() {
		m, scanErr := scanVoucherEntry(rows)
		if scanErr != nil {
			return nil, fmt.Errorf("failed to scan entry row for voucher %s: %w", voucherID, scanErr)
		}
		entries = append(entries, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating entry rows for voucher %s: %w", voucherID, err)
	}

	return mapping.ToDomainVoucherEntrySlice(entries), nil
}

// ListVouchersByPump retrieves a paginated list of vouchers for a pump using
// token-based pagination, optionally filtered by status.
func (r *PgxVoucherRepository) ListVouchersByPump(ctx context.Context, pumpID string, status *domain.VoucherStatus, limit int, nextToken *string) ([]domain.Voucher, *string, error) {
	if limit <= 0 {
		limit = 20
	}
	// Fetch one extra row to learn whether a next page exists.
	fetchLimit := limit + 1

	baseQuery := `SELECT ` + voucherColumns + ` FROM vouchers`
	filterClause := `WHERE pump_id = $1`
	args := []interface{}{pumpID}

	if status != nil {
		args = append(args, string(*status))
		filterClause += ` AND status = $` + strconv.Itoa(len(args))
	}

	// Ordering must be stable for the cursor to work: voucher_date DESC with
	// created_at DESC as the tie-breaker.
	orderByClause := `ORDER BY voucher_date DESC, created_at DESC`

	if nextToken != nil && *nextToken != "" {
		lastDate, lastCreatedAt, decodeErr := pagination.DecodeToken(*nextToken)
		if decodeErr != nil {
			return nil, nil, fmt.Errorf("%w: invalid nextToken", apperrors.ErrValidation)
		}
		args = append(args, lastDate, lastCreatedAt)
		filterClause += ` AND (voucher_date, created_at) < ($` + strconv.Itoa(len(args)-1) + `, $` + strconv.Itoa(len(args)) + `)`
	}

	args = append(args, fetchLimit)
	query := baseQuery + " " + filterClause + " " + orderByClause + " LIMIT $" + strconv.Itoa(len(args)) + ";"

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to query vouchers for pump %s: %w", pumpID, err)
	}
	defer rows.Close()

	modelVouchers := make([]models.Voucher, 0, fetchLimit)
	for rows.Next() {
		m, scanErr := scanVoucher(rows)
		if scanErr != nil {
			return nil, nil, fmt.Errorf("failed to scan voucher row for pump %s: %w", pumpID, scanErr)
		}
		modelVouchers = append(modelVouchers, m)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, fmt.Errorf("error iterating voucher rows for pump %s: %w", pumpID, err)
	}

	var nextTokenVal *string
	results := modelVouchers
	if len(modelVouchers) > limit {
		last := modelVouchers[limit-1]
		token := pagination.EncodeToken(last.VoucherDate, last.CreatedAt)
		nextTokenVal = &token
		results = modelVouchers[:limit]
	}

	domainVouchers := make([]domain.Voucher, len(results))
	for i, m := range results {
		domainVouchers[i] = mapping.ToDomainVoucher(m)
	}
	return domainVouchers, nextTokenVal, nil
}

// ReplaceVoucherEntries swaps the full entry list of a DRAFT voucher and
// refreshes the voucher's total amount.
func (r *PgxVoucherRepository) ReplaceVoucherEntries(ctx context.Context, voucherID string, entries []domain.VoucherEntry, totalAmount decimal.Decimal, userID string, now time.Time) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	// The status guard doubles as the existence check: a missing voucher and a
	// non-draft voucher are both refused.
	headerQuery := `
		UPDATE vouchers
		SET total_amount = $2,
		    last_updated_at = $3,
		    last_updated_by = $4,
		    version = version + 1
		WHERE voucher_id = $1 AND status = 'DRAFT';
	`
	cmdTag, err := tx.Exec(ctx, headerQuery, voucherID, totalAmount, now, userID)
	if err != nil {
		return fmt.Errorf("failed to update voucher %s for entry replacement: %w", voucherID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("%w: voucher %s is not an editable draft", apperrors.ErrInvalidState, voucherID)
	}

	if _, err := tx.Exec(ctx, `DELETE FROM voucher_entries WHERE voucher_id = $1;`, voucherID); err != nil {
		return fmt.Errorf("failed to delete entries for voucher %s: %w", voucherID, err)
	}

	batch := &pgx.Batch{}
	queueVoucherEntryInserts(batch, entries)
	br := tx.SendBatch(ctx, batch)
	if err := br.Close(); err != nil {
		return fmt.Errorf("failed to insert replacement entries for voucher %s: %w", voucherID, err)
	}

	return r.Commit(ctx, tx)
}

// UpdateVoucherStatus transitions a voucher's status, recording the
// cancellation reason when moving to CANCELLED. The update is guarded by the
// expected current status so concurrent transitions lose cleanly.
func (r *PgxVoucherRepository) UpdateVoucherStatus(ctx context.Context, voucherID string, from, to domain.VoucherStatus, reason string, userID string, now time.Time) error {
	query := `
		UPDATE vouchers
		SET status = $3,
		    cancel_reason = $4,
		    last_updated_at = $5,
		    last_updated_by = $6,
		    version = version + 1
		WHERE voucher_id = $1 AND status = $2;
	`
	cmdTag, err := r.Pool.Exec(ctx, query, voucherID, string(from), string(to), reason, now, userID)
	if err != nil {
		return fmt.Errorf("failed to update status of voucher %s: %w", voucherID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("%w: voucher %s is not %s", apperrors.ErrInvalidState, voucherID, from)
	}
	return nil
}

// LinkReversal records the reversal relationship on the original voucher.
func (r *PgxVoucherRepository) LinkReversal(ctx context.Context, originalVoucherID string, reversingVoucherID string, userID string, now time.Time) error {
	query := `
		UPDATE vouchers
		SET reversed_by_voucher_id = $2,
		    last_updated_at = $3,
		    last_updated_by = $4,
		    version = version + 1
		WHERE voucher_id = $1 AND status = 'POSTED' AND reversed_by_voucher_id IS NULL;
	`
	cmdTag, err := r.Pool.Exec(ctx, query, originalVoucherID, reversingVoucherID, now, userID)
	if err != nil {
		return fmt.Errorf("failed to link reversal on voucher %s: %w", originalVoucherID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("%w: voucher %s is not a reversible posted voucher", apperrors.ErrInvalidState, originalVoucherID)
	}
	return nil
}

// PostVoucher materializes an approved voucher into the ledger. Everything
// happens in one transaction: the voucher number is drawn from the per
// (type, pump, year) sequence, the affected account rows are locked in a fixed
// order, running balances are re-chained (including entries after a backdated
// voucher date), ledger rows are inserted, cached account balances are
// overwritten and the voucher flips to POSTED. On any error nothing is
// observable and the voucher stays APPROVED.
func (r *PgxVoucherRepository) PostVoucher(ctx context.Context, voucher domain.Voucher, entries []domain.VoucherEntry, fyName string, postedBy string, now time.Time) (*portsrepo.PostingResult, error) {
	tx, err := r.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer r.Rollback(ctx, tx)

	if _, err := tx.Exec(ctx, `SET LOCAL lock_timeout = '`+postingLockTimeout+`';`); err != nil {
		return nil, fmt.Errorf("failed to set lock timeout for posting voucher %s: %w", voucher.VoucherID, err)
	}

	accountIDs := distinctAccountIDs(entries)
	lockedAccounts, err := r.accountRepo.FindAccountsByIDsForUpdate(ctx, tx, accountIDs)
	if err != nil {
		return nil, fmt.Errorf("posting voucher %s: %w", voucher.VoucherID, err)
	}

	voucherNumber, err := r.nextVoucherNumber(ctx, tx, voucher.VoucherType, voucher.PumpID, fyName)
	if err != nil {
		return nil, fmt.Errorf("posting voucher %s: %w", voucher.VoucherID, err)
	}

	entryNos, err := r.allocateEntryNos(ctx, tx, len(entries))
	if err != nil {
		return nil, fmt.Errorf("posting voucher %s: %w", voucher.VoucherID, err)
	}

	// Build one ledger entry per voucher line, in line order so the allocated
	// entry numbers follow the document.
	ordered := make([]domain.VoucherEntry, len(entries))
	copy(ordered, entries)
	sort.SliceStable(ordered, func(i, j int) bool { return ordered[i].LineNo < ordered[j].LineNo })

	newByAccount := make(map[string][]domain.LedgerEntry, len(lockedAccounts))
	postedEntryIDs := make([]string, 0, len(ordered))
	for i, entry := range ordered {
		ledgerEntry := domain.LedgerEntry{
			LedgerEntryID:   uuid.NewString(),
			EntryNo:         entryNos[i],
			PumpID:          voucher.PumpID,
			AccountID:       entry.AccountID,
			VoucherID:       voucher.VoucherID,
			VoucherNumber:   voucherNumber,
			TransactionDate: voucher.VoucherDate,
			EntryType:       entry.EntryType,
			Narration:       entry.Narration,
			AuditFields: domain.AuditFields{
				CreatedAt:     now,
				CreatedBy:     postedBy,
				LastUpdatedAt: now,
				LastUpdatedBy: postedBy,
			},
		}
		if entry.EntryType == domain.Debit {
			ledgerEntry.DebitAmount = entry.Amount
			ledgerEntry.CreditAmount = decimal.Zero
		} else {
			ledgerEntry.DebitAmount = decimal.Zero
			ledgerEntry.CreditAmount = entry.Amount
		}
		newByAccount[entry.AccountID] = append(newByAccount[entry.AccountID], ledgerEntry)
		postedEntryIDs = append(postedEntryIDs, ledgerEntry.LedgerEntryID)
	}

	insertBatch := &pgx.Batch{}
	rechainBatch := &pgx.Batch{}
	newBalances := make(map[string]decimal.Decimal, len(newByAccount))

	for accountID, newEntries := range newByAccount {
		account := lockedAccounts[accountID]

		openingBalance := account.OpeningBalance
		prior, err := r.lastEntryAtOrBeforeInTx(ctx, tx, accountID, voucher.VoucherDate)
		if err != nil {
			return nil, err
		}
		if prior != nil {
			openingBalance = prior.RunningBalance
		}

		// Entries dated after the voucher must be re-chained when the voucher
		// is backdated; same-day entries keep their place because the new
		// entry numbers are the largest on that date.
		suffix, err := r.entriesAfterInTx(ctx, tx, accountID, voucher.VoucherDate)
		if err != nil {
			return nil, err
		}

		newIDs := make(map[string]struct{}, len(newEntries))
		for _, e := range newEntries {
			newIDs[e.LedgerEntryID] = struct{}{}
		}

		chained, finalBalance, err := accounting.ChainRunningBalances(openingBalance, account.BalanceType, append(newEntries, suffix...))
		if err != nil {
			return nil, fmt.Errorf("posting voucher %s: %w", voucher.VoucherID, err)
		}

		for _, e := range chained {
			if _, isNew := newIDs[e.LedgerEntryID]; isNew {
				queueLedgerEntryInsert(insertBatch, mapping.ToModelLedgerEntry(e))
			} else {
				rechainBatch.Queue(
					`UPDATE ledger_entries SET running_balance = $2, last_updated_at = $3, last_updated_by = $4, version = version + 1 WHERE ledger_entry_id = $1;`,
					e.LedgerEntryID, e.RunningBalance, now, postedBy,
				)
			}
		}
		newBalances[accountID] = finalBalance
	}

	br := tx.SendBatch(ctx, insertBatch)
	if err := br.Close(); err != nil {
		if mapped := classifyPgError(err); mapped != nil {
			return nil, fmt.Errorf("%w: ledger insert for voucher %s", mapped, voucher.VoucherID)
		}
		return nil, fmt.Errorf("failed to insert ledger entries for voucher %s: %w", voucher.VoucherID, err)
	}

	if rechainBatch.Len() > 0 {
		br = tx.SendBatch(ctx, rechainBatch)
		if err := br.Close(); err != nil {
			return nil, fmt.Errorf("failed to re-chain ledger entries for voucher %s: %w", voucher.VoucherID, err)
		}
	}

	if err := r.accountRepo.UpdateAccountBalancesInTx(ctx, tx, newBalances, postedBy, now); err != nil {
		return nil, fmt.Errorf("posting voucher %s: %w", voucher.VoucherID, err)
	}

	flipQuery := `
		UPDATE vouchers
		SET status = 'POSTED',
		    voucher_number = $2,
		    posted_at = $3,
		    posted_by = $4,
		    last_updated_at = $3,
		    last_updated_by = $4,
		    version = version + 1
		WHERE voucher_id = $1 AND status = 'APPROVED';
	`
	cmdTag, err := tx.Exec(ctx, flipQuery, voucher.VoucherID, voucherNumber, now, postedBy)
	if err != nil {
		if mapped := classifyPgError(err); mapped != nil {
			return nil, fmt.Errorf("%w: voucher number %s", mapped, voucherNumber)
		}
		return nil, fmt.Errorf("failed to flip voucher %s to POSTED: %w", voucher.VoucherID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return nil, fmt.Errorf("%w: voucher %s is not APPROVED", apperrors.ErrInvalidState, voucher.VoucherID)
	}

	if err := r.Commit(ctx, tx); err != nil {
		return nil, err
	}

	return &portsrepo.PostingResult{
		VoucherNumber:  voucherNumber,
		PostedEntryIDs: postedEntryIDs,
	}, nil
}

// nextVoucherNumber draws the next sequence value for the (type, pump, year)
// scope and formats it as <prefix>/<year-name>/<6-digit counter>. The upsert
// runs under the posting transaction, so an aborted posting never burns a
// number and numbers stay gapless.
func (r *PgxVoucherRepository) nextVoucherNumber(ctx context.Context, tx pgx.Tx, voucherType domain.VoucherType, pumpID string, fyName string) (string, error) {
	query := `
		INSERT INTO voucher_sequences (voucher_type, pump_id, fy_name, next_value)
		VALUES ($1, $2, $3, 2)
		ON CONFLICT (voucher_type, pump_id, fy_name)
		DO UPDATE SET next_value = voucher_sequences.next_value + 1
		RETURNING next_value - 1;
	`
	var seq int64
	if err := tx.QueryRow(ctx, query, string(voucherType), pumpID, fyName).Scan(&seq); err != nil {
		return "", fmt.Errorf("failed to draw voucher number for %s/%s: %w", voucherType, fyName, err)
	}
	return fmt.Sprintf("%s/%s/%06d", voucherType.NumberPrefix(), fyName, seq), nil
}

// allocateEntryNos reserves n consecutive-ish values from the global ledger
// entry sequence. Only the relative order matters, gaps are fine.
func (r *PgxVoucherRepository) allocateEntryNos(ctx context.Context, tx pgx.Tx, n int) ([]int64, error) {
	rows, err := tx.Query(ctx, `SELECT nextval('ledger_entry_no_seq') FROM generate_series(1, $1);`, n)
	if err != nil {
		return nil, fmt.Errorf("failed to allocate ledger entry numbers: %w", err)
	}
	defer rows.Close()

	nos := make([]int64, 0, n)
	for rows.Next() {
		var no int64
		if err := rows.Scan(&no); err != nil {
			return nil, fmt.Errorf("failed to scan ledger entry number: %w", err)
		}
		nos = append(nos, no)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating ledger entry numbers: %w", err)
	}
	if len(nos) != n {
		return nil, fmt.Errorf("expected %d ledger entry numbers, got %d", n, len(nos))
	}
	return nos, nil
}

func (r *PgxVoucherRepository) lastEntryAtOrBeforeInTx(ctx context.Context, tx pgx.Tx, accountID string, date time.Time) (*domain.LedgerEntry, error) {
	query := `
		SELECT ` + ledgerEntryColumns + `
		FROM ledger_entries
		WHERE account_id = $1 AND transaction_date <= $2
		ORDER BY transaction_date DESC, entry_no DESC
		LIMIT 1;
	`
	m, err := scanLedgerEntry(tx.QueryRow(ctx, query, accountID, date))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find chain anchor for account %s: %w", accountID, err)
	}
	domainEntry := mapping.ToDomainLedgerEntry(m)
	return &domainEntry, nil
}

func (r *PgxVoucherRepository) entriesAfterInTx(ctx context.Context, tx pgx.Tx, accountID string, date time.Time) ([]domain.LedgerEntry, error) {
	query := `
		SELECT ` + ledgerEntryColumns + `
		FROM ledger_entries
		WHERE account_id = $1 AND transaction_date > $2
		ORDER BY transaction_date, entry_no;
	`
	rows, err := tx.Query(ctx, query, accountID, date)
	if err != nil {
		return nil, fmt.Errorf("failed to query trailing ledger entries for account %s: %w", accountID, err)
	}

	entries, err := collectLedgerEntries(rows)
	if err != nil {
		return nil, err
	}
	return mapping.ToDomainLedgerEntrySlice(entries), nil
}

func queueLedgerEntryInsert(batch *pgx.Batch, m models.LedgerEntry) {
	query := `
		INSERT INTO ledger_entries (
			ledger_entry_id, entry_no, pump_id, account_id, voucher_id, voucher_number,
			transaction_date, entry_type, debit_amount, credit_amount, running_balance, narration,
			is_reconciled, reconciled_at, reconciled_by,
			created_at, created_by, last_updated_at, last_updated_by, version
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, 1);
	`
	batch.Queue(query,
		m.LedgerEntryID,
		m.EntryNo,
		m.PumpID,
		m.AccountID,
		m.VoucherID,
		m.VoucherNumber,
		m.TransactionDate,
		m.EntryType,
		m.DebitAmount,
		m.CreditAmount,
		m.RunningBalance,
		m.Narration,
		m.IsReconciled,
		m.ReconciledAt,
		m.ReconciledBy,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
}

func distinctAccountIDs(entries []domain.VoucherEntry) []string {
	seen := make(map[string]struct{}, len(entries))
	ids := make([]string, 0, len(entries))
	for _, e := range entries {
		if _, ok := seen[e.AccountID]; ok {
			continue
		}
		seen[e.AccountID] = struct{}{}
		ids = append(ids, e.AccountID)
	}
	return ids
}
