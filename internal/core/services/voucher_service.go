package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/pumpsoft/fuel_station_backend/internal/apperrors"
	"github.com/pumpsoft/fuel_station_backend/internal/core/domain"
	portsrepo "github.com/pumpsoft/fuel_station_backend/internal/core/ports/repositories"
	portssvc "github.com/pumpsoft/fuel_station_backend/internal/core/ports/services"
	"github.com/pumpsoft/fuel_station_backend/internal/dto"
	"github.com/pumpsoft/fuel_station_backend/internal/middleware"
	"github.com/pumpsoft/fuel_station_backend/internal/utils/accounting"
)

var (
	ErrVoucherUnbalanced    = fmt.Errorf("%w: voucher entries do not balance", apperrors.ErrValidation)
	ErrInvalidAmount        = fmt.Errorf("%w: entry amount must be positive", apperrors.ErrValidation)
	ErrAccountNotPostable   = fmt.Errorf("%w: account does not accept postings", apperrors.ErrValidation)
	ErrCancelReasonRequired = fmt.Errorf("%w: cancellation reason is required", apperrors.ErrValidation)
	ErrInvalidTransition    = fmt.Errorf("%w: voucher status transition not allowed", apperrors.ErrInvalidState)
	ErrNotDraft             = fmt.Errorf("%w: voucher is not a draft", apperrors.ErrInvalidState)
	ErrNotPostedVoucher     = fmt.Errorf("%w: voucher is not posted", apperrors.ErrInvalidState)
	ErrAlreadyReversed      = fmt.Errorf("%w: voucher is already reversed", apperrors.ErrInvalidState)
	ErrIsReversalVoucher    = fmt.Errorf("%w: cannot reverse a reversing voucher", apperrors.ErrInvalidState)
)

// voucherService builds draft vouchers and drives the posting state machine.
type voucherService struct {
	voucherRepo   portsrepo.VoucherRepositoryFacade
	accountSvc    portssvc.AccountSvcFacade
	fySvc         portssvc.FinancialYearSvcFacade
	pumpSvc       portssvc.PumpSvcFacade
	enforcePeriod bool
}

// NewVoucherService creates a new VoucherService. When enforcePeriod is set,
// posting rejects voucher dates outside the active financial year instead of
// only recording which year numbered the voucher.
func NewVoucherService(voucherRepo portsrepo.VoucherRepositoryFacade, accountSvc portssvc.AccountSvcFacade, fySvc portssvc.FinancialYearSvcFacade, pumpSvc portssvc.PumpSvcFacade, enforcePeriod bool) portssvc.VoucherSvcFacade {
	return &voucherService{
		voucherRepo:   voucherRepo,
		accountSvc:    accountSvc,
		fySvc:         fySvc,
		pumpSvc:       pumpSvc,
		enforcePeriod: enforcePeriod,
	}
}

var _ portssvc.VoucherSvcFacade = (*voucherService)(nil)

// CreateDraftVoucher starts a DRAFT voucher from the given lines. Each line
// must carry a positive amount against a postable account of the pump; the
// voucher need not balance yet, that is checked on approval.
func (s *voucherService) CreateDraftVoucher(ctx context.Context, pumpID string, req dto.CreateVoucherRequest, creatorUserID string) (*domain.Voucher, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if err := s.pumpSvc.AssertPumpActive(ctx, pumpID); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	voucherID := uuid.NewString()

	entries := make([]domain.VoucherEntry, len(req.Entries))
	accountIDs := make([]string, 0, len(req.Entries))
	for i, entryReq := range req.Entries {
		if entryReq.Amount.LessThanOrEqual(decimal.Zero) {
			return nil, fmt.Errorf("%w: account %s", ErrInvalidAmount, entryReq.AccountID)
		}
		entries[i] = domain.VoucherEntry{
			EntryID:   uuid.NewString(),
			VoucherID: voucherID,
			AccountID: entryReq.AccountID,
			EntryType: entryReq.EntryType,
			Amount:    entryReq.Amount,
			Narration: entryReq.Narration,
			LineNo:    i + 1,
			AuditFields: domain.AuditFields{
				CreatedAt:     now,
				CreatedBy:     creatorUserID,
				LastUpdatedAt: now,
				LastUpdatedBy: creatorUserID,
			},
		}
		accountIDs = append(accountIDs, entryReq.AccountID)
	}

	if err := s.assertAccountsPostable(ctx, pumpID, accountIDs); err != nil {
		return nil, err
	}

	debits, _ := accounting.SumEntrySides(entries)
	voucher := domain.Voucher{
		VoucherID:   voucherID,
		PumpID:      pumpID,
		VoucherType: req.VoucherType,
		VoucherDate: req.Date,
		Narration:   req.Narration,
		TotalAmount: debits,
		Status:      domain.VoucherDraft,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	if err := s.voucherRepo.SaveVoucher(ctx, voucher, entries); err != nil {
		logger.Error("Failed to save draft voucher", slog.String("error", err.Error()), slog.String("pump_id", pumpID))
		return nil, fmt.Errorf("failed to save voucher: %w", err)
	}

	logger.Info("Draft voucher created", slog.String("voucher_id", voucherID), slog.String("voucher_type", string(req.VoucherType)), slog.String("pump_id", pumpID))
	voucher.Entries = entries
	return &voucher, nil
}

// AddVoucherEntry appends one line to a DRAFT voucher and refreshes its total.
func (s *voucherService) AddVoucherEntry(ctx context.Context, pumpID string, voucherID string, req dto.AddVoucherEntryRequest, userID string) (*domain.Voucher, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	voucher, err := s.getScopedVoucher(ctx, pumpID, voucherID)
	if err != nil {
		return nil, err
	}
	if voucher.Status != domain.VoucherDraft {
		return nil, fmt.Errorf("%w: voucher %s is %s", ErrNotDraft, voucherID, voucher.Status)
	}
	if req.Amount.LessThanOrEqual(decimal.Zero) {
		return nil, fmt.Errorf("%w: account %s", ErrInvalidAmount, req.AccountID)
	}
	if err := s.assertAccountsPostable(ctx, pumpID, []string{req.AccountID}); err != nil {
		return nil, err
	}

	entries, err := s.voucherRepo.FindEntriesByVoucherID(ctx, voucherID)
	if err != nil {
		logger.Error("Failed to fetch voucher entries", slog.String("error", err.Error()), slog.String("voucher_id", voucherID))
		return nil, fmt.Errorf("failed to fetch voucher entries: %w", err)
	}

	now := time.Now().UTC()
	entries = append(entries, domain.VoucherEntry{
		EntryID:   uuid.NewString(),
		VoucherID: voucherID,
		AccountID: req.AccountID,
		EntryType: req.EntryType,
		Amount:    req.Amount,
		Narration: req.Narration,
		LineNo:    len(entries) + 1,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	})

	debits, _ := accounting.SumEntrySides(entries)
	if err := s.voucherRepo.ReplaceVoucherEntries(ctx, voucherID, entries, debits, userID, now); err != nil {
		logger.Error("Failed to replace voucher entries", slog.String("error", err.Error()), slog.String("voucher_id", voucherID))
		return nil, fmt.Errorf("failed to update voucher entries: %w", err)
	}

	voucher.TotalAmount = debits
	voucher.Entries = entries
	voucher.LastUpdatedAt = now
	voucher.LastUpdatedBy = userID

	logger.Info("Voucher entry added", slog.String("voucher_id", voucherID), slog.Int("line_no", len(entries)))
	return voucher, nil
}

// ValidateVoucher re-runs the structural checks without changing state.
func (s *voucherService) ValidateVoucher(ctx context.Context, pumpID string, voucherID string) error {
	if _, err := s.getScopedVoucher(ctx, pumpID, voucherID); err != nil {
		return err
	}
	entries, err := s.voucherRepo.FindEntriesByVoucherID(ctx, voucherID)
	if err != nil {
		return fmt.Errorf("failed to fetch voucher entries: %w", err)
	}
	if err := accounting.ValidateVoucherEntries(entries); err != nil {
		return fmt.Errorf("%w: %s", ErrVoucherUnbalanced, err.Error())
	}
	return nil
}

// ApproveVoucher validates a DRAFT voucher and moves it to APPROVED.
func (s *voucherService) ApproveVoucher(ctx context.Context, pumpID string, voucherID string, userID string) (*domain.Voucher, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	voucher, err := s.getScopedVoucher(ctx, pumpID, voucherID)
	if err != nil {
		return nil, err
	}
	if !voucher.Status.CanTransitionTo(domain.VoucherApproved) {
		return nil, fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, voucher.Status, domain.VoucherApproved)
	}

	entries, err := s.voucherRepo.FindEntriesByVoucherID(ctx, voucherID)
	if err != nil {
		logger.Error("Failed to fetch voucher entries", slog.String("error", err.Error()), slog.String("voucher_id", voucherID))
		return nil, fmt.Errorf("failed to fetch voucher entries: %w", err)
	}
	if err := accounting.ValidateVoucherEntries(entries); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrVoucherUnbalanced, err.Error())
	}
	accountIDs := make([]string, len(entries))
	for i, e := range entries {
		accountIDs[i] = e.AccountID
	}
	if err := s.assertAccountsPostable(ctx, pumpID, accountIDs); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	if err := s.voucherRepo.UpdateVoucherStatus(ctx, voucherID, voucher.Status, domain.VoucherApproved, "", userID, now); err != nil {
		logger.Error("Failed to approve voucher", slog.String("error", err.Error()), slog.String("voucher_id", voucherID))
		return nil, fmt.Errorf("failed to approve voucher: %w", err)
	}

	voucher.Status = domain.VoucherApproved
	voucher.Entries = entries
	voucher.LastUpdatedAt = now
	voucher.LastUpdatedBy = userID

	logger.Info("Voucher approved", slog.String("voucher_id", voucherID))
	return voucher, nil
}

// PostVoucher materializes an APPROVED voucher into the ledger: the voucher
// number, the ledger entries with running balances, the cached account
// balances and the status flip all commit atomically or not at all.
func (s *voucherService) PostVoucher(ctx context.Context, pumpID string, voucherID string, userID string) (*portssvc.PostingResult, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	voucher, err := s.getScopedVoucher(ctx, pumpID, voucherID)
	if err != nil {
		return nil, err
	}
	if !voucher.Status.CanTransitionTo(domain.VoucherPosted) {
		return nil, fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, voucher.Status, domain.VoucherPosted)
	}

	entries, err := s.voucherRepo.FindEntriesByVoucherID(ctx, voucherID)
	if err != nil {
		logger.Error("Failed to fetch voucher entries", slog.String("error", err.Error()), slog.String("voucher_id", voucherID))
		return nil, fmt.Errorf("failed to fetch voucher entries: %w", err)
	}
	if err := accounting.ValidateVoucherEntries(entries); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrVoucherUnbalanced, err.Error())
	}
	accountIDs := make([]string, len(entries))
	for i, e := range entries {
		accountIDs[i] = e.AccountID
	}
	if err := s.assertAccountsPostable(ctx, pumpID, accountIDs); err != nil {
		return nil, err
	}

	fy, err := s.fySvc.GetActiveFinancialYear(ctx, pumpID)
	if err != nil {
		return nil, err
	}
	if s.enforcePeriod && !fy.Contains(voucher.VoucherDate) {
		return nil, fmt.Errorf("%w: %s not in %s", ErrDateOutsideActiveYear, voucher.VoucherDate.Format("2006-01-02"), fy.Name)
	}

	now := time.Now().UTC()
	result, err := s.voucherRepo.PostVoucher(ctx, *voucher, entries, fy.Name, userID, now)
	if err != nil {
		if errors.Is(err, apperrors.ErrLockTimeout) {
			logger.Warn("Posting lost its account locks, safe to retry", slog.String("voucher_id", voucherID))
		} else {
			logger.Error("Failed to post voucher", slog.String("error", err.Error()), slog.String("voucher_id", voucherID))
		}
		return nil, fmt.Errorf("failed to post voucher: %w", err)
	}

	logger.Info("Voucher posted", slog.String("voucher_id", voucherID), slog.String("voucher_number", result.VoucherNumber), slog.Int("ledger_entries", len(result.PostedEntryIDs)))
	return &portssvc.PostingResult{
		VoucherID:      voucherID,
		VoucherNumber:  result.VoucherNumber,
		PostedEntryIDs: result.PostedEntryIDs,
	}, nil
}

// CancelVoucher cancels a DRAFT or APPROVED voucher. POSTED vouchers are
// immutable; the only correction path for them is ReverseVoucher.
func (s *voucherService) CancelVoucher(ctx context.Context, pumpID string, voucherID string, reason string, userID string) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	if reason == "" {
		return ErrCancelReasonRequired
	}

	voucher, err := s.getScopedVoucher(ctx, pumpID, voucherID)
	if err != nil {
		return err
	}
	if !voucher.Status.CanTransitionTo(domain.VoucherCancelled) {
		return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, voucher.Status, domain.VoucherCancelled)
	}

	if err := s.voucherRepo.UpdateVoucherStatus(ctx, voucherID, voucher.Status, domain.VoucherCancelled, reason, userID, time.Now().UTC()); err != nil {
		logger.Error("Failed to cancel voucher", slog.String("error", err.Error()), slog.String("voucher_id", voucherID))
		return fmt.Errorf("failed to cancel voucher: %w", err)
	}

	logger.Info("Voucher cancelled", slog.String("voucher_id", voucherID), slog.String("reason", reason))
	return nil
}

// ReverseVoucher creates, approves and posts a voucher that offsets a POSTED
// one by flipping every line's side. The original and the reversal stay
// linked. If posting the reversal fails, the reversal is left behind as a
// cancellable draft and the original remains untouched.
func (s *voucherService) ReverseVoucher(ctx context.Context, pumpID string, voucherID string, userID string) (*domain.Voucher, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	original, err := s.getScopedVoucher(ctx, pumpID, voucherID)
	if err != nil {
		return nil, err
	}
	if original.Status != domain.VoucherPosted {
		return nil, fmt.Errorf("%w: voucher %s is %s", ErrNotPostedVoucher, voucherID, original.Status)
	}
	if original.ReversedByVoucherID != nil {
		return nil, fmt.Errorf("%w: by voucher %s", ErrAlreadyReversed, *original.ReversedByVoucherID)
	}
	if original.ReversesVoucherID != nil {
		return nil, fmt.Errorf("%w: voucher %s reverses %s", ErrIsReversalVoucher, voucherID, *original.ReversesVoucherID)
	}

	originalEntries, err := s.voucherRepo.FindEntriesByVoucherID(ctx, voucherID)
	if err != nil {
		logger.Error("Failed to fetch entries of voucher being reversed", slog.String("error", err.Error()), slog.String("voucher_id", voucherID))
		return nil, fmt.Errorf("failed to fetch voucher entries: %w", err)
	}

	now := time.Now().UTC()
	reversalID := uuid.NewString()

	reversal := domain.Voucher{
		VoucherID:         reversalID,
		PumpID:            pumpID,
		VoucherType:       original.VoucherType,
		VoucherDate:       original.VoucherDate,
		Narration:         fmt.Sprintf("Reversal of %s: %s", original.VoucherNumber, original.Narration),
		TotalAmount:       original.TotalAmount,
		Status:            domain.VoucherDraft,
		ReversesVoucherID: &original.VoucherID,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}

	reversalEntries := make([]domain.VoucherEntry, len(originalEntries))
	for i, e := range originalEntries {
		reversalEntries[i] = domain.VoucherEntry{
			EntryID:   uuid.NewString(),
			VoucherID: reversalID,
			AccountID: e.AccountID,
			EntryType: e.EntryType.Opposite(),
			Amount:    e.Amount,
			Narration: e.Narration,
			LineNo:    e.LineNo,
			AuditFields: domain.AuditFields{
				CreatedAt:     now,
				CreatedBy:     userID,
				LastUpdatedAt: now,
				LastUpdatedBy: userID,
			},
		}
	}

	if err := s.voucherRepo.SaveVoucher(ctx, reversal, reversalEntries); err != nil {
		logger.Error("Failed to save reversing voucher", slog.String("error", err.Error()), slog.String("original_voucher_id", voucherID))
		return nil, fmt.Errorf("failed to save reversing voucher: %w", err)
	}
	if err := s.voucherRepo.UpdateVoucherStatus(ctx, reversalID, domain.VoucherDraft, domain.VoucherApproved, "", userID, now); err != nil {
		logger.Error("Failed to approve reversing voucher", slog.String("error", err.Error()), slog.String("reversal_voucher_id", reversalID))
		return nil, fmt.Errorf("failed to approve reversing voucher: %w", err)
	}
	reversal.Status = domain.VoucherApproved

	fy, err := s.fySvc.GetActiveFinancialYear(ctx, pumpID)
	if err != nil {
		return nil, err
	}

	result, err := s.voucherRepo.PostVoucher(ctx, reversal, reversalEntries, fy.Name, userID, now)
	if err != nil {
		logger.Error("Failed to post reversing voucher, draft left for cleanup", slog.String("error", err.Error()), slog.String("reversal_voucher_id", reversalID))
		return nil, fmt.Errorf("failed to post reversing voucher: %w", err)
	}

	if err := s.voucherRepo.LinkReversal(ctx, original.VoucherID, reversalID, userID, now); err != nil {
		logger.Error("Failed to link reversal to original voucher", slog.String("error", err.Error()), slog.String("original_voucher_id", voucherID), slog.String("reversal_voucher_id", reversalID))
		return nil, fmt.Errorf("failed to link reversal: %w", err)
	}

	reversal.Status = domain.VoucherPosted
	reversal.VoucherNumber = result.VoucherNumber
	reversal.PostedAt = &now
	reversal.PostedBy = userID
	reversal.Entries = reversalEntries

	logger.Info("Voucher reversed", slog.String("original_voucher_id", voucherID), slog.String("reversal_voucher_id", reversalID), slog.String("voucher_number", result.VoucherNumber))
	return &reversal, nil
}

// GetVoucherByID retrieves a voucher with its entries.
func (s *voucherService) GetVoucherByID(ctx context.Context, pumpID string, voucherID string) (*domain.Voucher, error) {
	voucher, err := s.getScopedVoucher(ctx, pumpID, voucherID)
	if err != nil {
		return nil, err
	}
	entries, err := s.voucherRepo.FindEntriesByVoucherID(ctx, voucherID)
	if err != nil {
		middleware.GetLoggerFromCtx(ctx).Error("Failed to fetch voucher entries", slog.String("error", err.Error()), slog.String("voucher_id", voucherID))
		return nil, fmt.Errorf("failed to fetch voucher entries: %w", err)
	}
	voucher.Entries = entries
	return voucher, nil
}

// ListVouchers retrieves a paginated list of vouchers for a pump.
func (s *voucherService) ListVouchers(ctx context.Context, pumpID string, params dto.ListVouchersParams) (*dto.ListVouchersResponse, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if err := s.pumpSvc.AssertPumpActive(ctx, pumpID); err != nil {
		return nil, err
	}

	var status *domain.VoucherStatus
	if params.Status != nil && *params.Status != "" {
		st := domain.VoucherStatus(*params.Status)
		switch st {
		case domain.VoucherDraft, domain.VoucherApproved, domain.VoucherPosted, domain.VoucherCancelled:
			status = &st
		default:
			return nil, fmt.Errorf("%w: unknown voucher status %q", apperrors.ErrValidation, *params.Status)
		}
	}

	limit := params.Limit
	if limit <= 0 {
		limit = 20
	}

	vouchers, nextToken, err := s.voucherRepo.ListVouchersByPump(ctx, pumpID, status, limit, params.NextToken)
	if err != nil {
		logger.Error("Failed to list vouchers", slog.String("error", err.Error()), slog.String("pump_id", pumpID))
		return nil, fmt.Errorf("failed to list vouchers: %w", err)
	}

	responses := make([]dto.VoucherResponse, len(vouchers))
	for i := range vouchers {
		responses[i] = dto.ToVoucherResponse(&vouchers[i])
	}

	return &dto.ListVouchersResponse{
		Vouchers:  responses,
		NextToken: nextToken,
	}, nil
}

// getScopedVoucher fetches a voucher header and hides vouchers of other pumps.
func (s *voucherService) getScopedVoucher(ctx context.Context, pumpID string, voucherID string) (*domain.Voucher, error) {
	voucher, err := s.voucherRepo.FindVoucherByID(ctx, voucherID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			middleware.GetLoggerFromCtx(ctx).Error("Failed to find voucher", slog.String("error", err.Error()), slog.String("voucher_id", voucherID))
		}
		return nil, err
	}
	if voucher.PumpID != pumpID {
		return nil, apperrors.ErrNotFound
	}
	return voucher, nil
}

// assertAccountsPostable verifies every account exists in the pump and
// currently accepts postings.
func (s *voucherService) assertAccountsPostable(ctx context.Context, pumpID string, accountIDs []string) error {
	accounts, err := s.accountSvc.GetAccountsByIDs(ctx, pumpID, uniqueStrings(accountIDs))
	if err != nil {
		return err
	}
	for id, acc := range accounts {
		if !acc.AcceptsPostings() {
			return fmt.Errorf("%w: account %s", ErrAccountNotPostable, id)
		}
	}
	return nil
}

// uniqueStrings returns a slice containing only the unique strings from the input.
func uniqueStrings(input []string) []string {
	seen := make(map[string]struct{}, len(input))
	result := make([]string, 0, len(input))
	for _, str := range input {
		if _, ok := seen[str]; !ok {
			seen[str] = struct{}{}
			result = append(result, str)
		}
	}
	return result
}
