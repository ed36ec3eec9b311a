package services

import (
	"context"

	"github.com/pumpsoft/fuel_station_backend/internal/core/domain"
	"github.com/pumpsoft/fuel_station_backend/internal/dto"
)

// PostingResult reports the outcome of a successful posting.
type PostingResult struct {
	VoucherID      string
	VoucherNumber  string
	PostedEntryIDs []string
}

// VoucherBuilderSvc assembles and mutates draft vouchers.
type VoucherBuilderSvc interface {
	// CreateDraftVoucher starts a DRAFT voucher from the given lines after
	// structural validation of each line (positive amount, postable account
	// in the voucher's pump).
	CreateDraftVoucher(ctx context.Context, pumpID string, req dto.CreateVoucherRequest, creatorUserID string) (*domain.Voucher, error)

	// AddVoucherEntry appends a line to a DRAFT voucher.
	AddVoucherEntry(ctx context.Context, pumpID string, voucherID string, req dto.AddVoucherEntryRequest, userID string) (*domain.Voucher, error)

	// ValidateVoucher re-runs the structural checks (balance, minimum lines)
	// without changing state.
	ValidateVoucher(ctx context.Context, pumpID string, voucherID string) error
}

// PostingEngineSvc drives the voucher state machine and materializes ledger
// entries.
type PostingEngineSvc interface {
	// ApproveVoucher validates a DRAFT voucher and transitions it to APPROVED.
	ApproveVoucher(ctx context.Context, pumpID string, voucherID string, userID string) (*domain.Voucher, error)

	// PostVoucher posts an APPROVED voucher: verifies scope and account
	// state, assigns the voucher number, writes the ledger entries with
	// correct running balances and flips the voucher to POSTED, atomically.
	PostVoucher(ctx context.Context, pumpID string, voucherID string, userID string) (*PostingResult, error)

	// CancelVoucher cancels a DRAFT or APPROVED voucher with a mandatory
	// reason. POSTED vouchers cannot be cancelled.
	CancelVoucher(ctx context.Context, pumpID string, voucherID string, reason string, userID string) error

	// ReverseVoucher creates, approves and posts a new voucher that offsets a
	// POSTED one. This is the only correction path for posted vouchers.
	ReverseVoucher(ctx context.Context, pumpID string, voucherID string, userID string) (*domain.Voucher, error)
}

// VoucherReaderSvc defines read operations for vouchers.
type VoucherReaderSvc interface {
	// GetVoucherByID retrieves a voucher with its entries.
	GetVoucherByID(ctx context.Context, pumpID string, voucherID string) (*domain.Voucher, error)

	// ListVouchers retrieves a paginated list of vouchers for a pump.
	ListVouchers(ctx context.Context, pumpID string, params dto.ListVouchersParams) (*dto.ListVouchersResponse, error)
}

// VoucherSvcFacade combines all voucher-related service interfaces
type VoucherSvcFacade interface {
	VoucherBuilderSvc
	PostingEngineSvc
	VoucherReaderSvc
}
