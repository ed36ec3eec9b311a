package repositories

import (
	"context"
	"time"

	"github.com/pumpsoft/fuel_station_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// PostingResult reports what a successful posting materialized.
type PostingResult struct {
	VoucherNumber  string
	PostedEntryIDs []string
}

// VoucherReader defines read operations for voucher data
type VoucherReader interface {
	// FindVoucherByID retrieves a voucher header by its unique identifier.
	FindVoucherByID(ctx context.Context, voucherID string) (*domain.Voucher, error)

	// FindEntriesByVoucherID retrieves the ordered lines of a voucher.
	FindEntriesByVoucherID(ctx context.Context, voucherID string) ([]domain.VoucherEntry, error)

	// ListVouchersByPump retrieves a paginated list of vouchers for a pump
	// using token-based pagination, optionally filtered by status.
	ListVouchersByPump(ctx context.Context, pumpID string, status *domain.VoucherStatus, limit int, nextToken *string) ([]domain.Voucher, *string, error)
}

// VoucherWriter defines write operations for draft/approved vouchers
type VoucherWriter interface {
	// SaveVoucher persists a new draft voucher together with its entries.
	SaveVoucher(ctx context.Context, voucher domain.Voucher, entries []domain.VoucherEntry) error

	// ReplaceVoucherEntries swaps the full entry list of a DRAFT voucher and
	// refreshes the voucher's total amount.
	ReplaceVoucherEntries(ctx context.Context, voucherID string, entries []domain.VoucherEntry, totalAmount decimal.Decimal, userID string, now time.Time) error

	// UpdateVoucherStatus transitions a voucher's status, recording the
	// cancellation reason when moving to CANCELLED. The update is guarded by
	// the expected current status so concurrent transitions lose cleanly.
	UpdateVoucherStatus(ctx context.Context, voucherID string, from, to domain.VoucherStatus, reason string, userID string, now time.Time) error

	// LinkReversal records the reversal relationship on the original voucher.
	LinkReversal(ctx context.Context, originalVoucherID string, reversingVoucherID string, userID string, now time.Time) error
}

// VoucherPoster materializes an approved voucher into the ledger. The whole
// operation (voucher numbering, account locking, re-chaining, ledger inserts,
// cached balance updates and the status flip to POSTED) runs in one database
// transaction; on any error nothing is observable and the voucher stays
// APPROVED.
type VoucherPoster interface {
	PostVoucher(ctx context.Context, voucher domain.Voucher, entries []domain.VoucherEntry, fyName string, postedBy string, now time.Time) (*PostingResult, error)
}

// VoucherRepositoryFacade combines all voucher-related repository interfaces
type VoucherRepositoryFacade interface {
	VoucherReader
	VoucherWriter
	VoucherPoster
}
