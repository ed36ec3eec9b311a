package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/pumpsoft/fuel_station_backend/internal/apperrors"
	"github.com/pumpsoft/fuel_station_backend/internal/core/domain"
	portsrepo "github.com/pumpsoft/fuel_station_backend/internal/core/ports/repositories"
	portssvc "github.com/pumpsoft/fuel_station_backend/internal/core/ports/services"
	"github.com/pumpsoft/fuel_station_backend/internal/dto"
	"github.com/pumpsoft/fuel_station_backend/internal/middleware"
)

var ErrStatementRange = fmt.Errorf("%w: statement 'from' date must not be after 'to'", apperrors.ErrValidation)

// ledgerService reads the posted ledger. It never writes: ledger rows are
// produced exclusively by the posting engine.
type ledgerService struct {
	ledgerRepo portsrepo.LedgerRepositoryFacade
	accountSvc portssvc.AccountSvcFacade
}

// NewLedgerService creates a new LedgerService.
func NewLedgerService(ledgerRepo portsrepo.LedgerRepositoryFacade, accountSvc portssvc.AccountSvcFacade) portssvc.LedgerSvcFacade {
	return &ledgerService{
		ledgerRepo: ledgerRepo,
		accountSvc: accountSvc,
	}
}

var _ portssvc.LedgerSvcFacade = (*ledgerService)(nil)

// GetStatement returns the ordered ledger rows of an account between two
// dates. The opening balance is the running balance of the last entry before
// the window, or the account's opening balance when the window precedes all
// activity.
func (s *ledgerService) GetStatement(ctx context.Context, pumpID string, accountID string, from, to time.Time) (*dto.StatementResponse, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if from.After(to) {
		return nil, fmt.Errorf("%w: from %s, to %s", ErrStatementRange, from.Format("2006-01-02"), to.Format("2006-01-02"))
	}

	account, err := s.accountSvc.GetAccountByID(ctx, pumpID, accountID)
	if err != nil {
		return nil, err
	}

	opening := account.OpeningBalance
	last, err := s.ledgerRepo.LastEntryBefore(ctx, accountID, from)
	if err != nil {
		logger.Error("Failed to read opening balance entry", slog.String("error", err.Error()), slog.String("account_id", accountID))
		return nil, fmt.Errorf("failed to read ledger: %w", err)
	}
	if last != nil {
		opening = last.RunningBalance
	}

	entries, err := s.ledgerRepo.LedgerEntriesForAccountBetween(ctx, accountID, from, to)
	if err != nil {
		logger.Error("Failed to read statement entries", slog.String("error", err.Error()), slog.String("account_id", accountID))
		return nil, fmt.Errorf("failed to read ledger: %w", err)
	}

	closing := opening
	if len(entries) > 0 {
		closing = entries[len(entries)-1].RunningBalance
	}

	logger.Debug("Statement built", slog.String("account_id", accountID), slog.Int("entry_count", len(entries)))
	return &dto.StatementResponse{
		AccountID:      accountID,
		From:           from,
		To:             to,
		OpeningBalance: opening,
		ClosingBalance: closing,
		Entries:        dto.ToLedgerEntryResponses(entries),
	}, nil
}

// GetLedgerEntry retrieves one posted ledger entry, hiding entries of other
// pumps.
func (s *ledgerService) GetLedgerEntry(ctx context.Context, pumpID string, ledgerEntryID string) (*domain.LedgerEntry, error) {
	entry, err := s.ledgerRepo.FindLedgerEntryByID(ctx, ledgerEntryID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			middleware.GetLoggerFromCtx(ctx).Error("Failed to find ledger entry", slog.String("error", err.Error()), slog.String("ledger_entry_id", ledgerEntryID))
		}
		return nil, err
	}
	if entry.PumpID != pumpID {
		return nil, apperrors.ErrNotFound
	}
	return entry, nil
}
