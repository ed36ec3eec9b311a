package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/pumpsoft/fuel_station_backend/internal/apperrors"
	"github.com/pumpsoft/fuel_station_backend/internal/core/domain"
	portsrepo "github.com/pumpsoft/fuel_station_backend/internal/core/ports/repositories"
	portssvc "github.com/pumpsoft/fuel_station_backend/internal/core/ports/services"
	"github.com/pumpsoft/fuel_station_backend/internal/middleware"
)

var ErrAlreadyReconciled = fmt.Errorf("%w: ledger entry already reconciled", apperrors.ErrInvalidState)

// reconciliationService matches posted ledger entries against external
// statements. Amounts and running balances are never touched here.
type reconciliationService struct {
	ledgerRepo portsrepo.LedgerRepositoryFacade
	ledgerSvc  portssvc.LedgerSvcFacade
	accountSvc portssvc.AccountSvcFacade
}

// NewReconciliationService creates a new ReconciliationService.
func NewReconciliationService(ledgerRepo portsrepo.LedgerRepositoryFacade, ledgerSvc portssvc.LedgerSvcFacade, accountSvc portssvc.AccountSvcFacade) portssvc.ReconciliationSvcFacade {
	return &reconciliationService{
		ledgerRepo: ledgerRepo,
		ledgerSvc:  ledgerSvc,
		accountSvc: accountSvc,
	}
}

var _ portssvc.ReconciliationSvcFacade = (*reconciliationService)(nil)

// Reconcile flags an entry as matched and moves the account's reconciled
// balance to that entry's running balance.
func (s *reconciliationService) Reconcile(ctx context.Context, pumpID string, ledgerEntryID string, userID string, asOf time.Time) (*domain.LedgerEntry, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	entry, err := s.ledgerSvc.GetLedgerEntry(ctx, pumpID, ledgerEntryID)
	if err != nil {
		return nil, err
	}
	if entry.IsReconciled {
		return nil, fmt.Errorf("%w: entry %s", ErrAlreadyReconciled, ledgerEntryID)
	}

	if asOf.IsZero() {
		asOf = time.Now().UTC()
	}

	reconciled, err := s.ledgerRepo.MarkReconciled(ctx, ledgerEntryID, userID, asOf)
	if err != nil {
		logger.Error("Failed to mark entry reconciled", slog.String("error", err.Error()), slog.String("ledger_entry_id", ledgerEntryID))
		return nil, fmt.Errorf("failed to reconcile entry: %w", err)
	}

	logger.Info("Ledger entry reconciled", slog.String("ledger_entry_id", ledgerEntryID), slog.String("account_id", reconciled.AccountID))
	return reconciled, nil
}

// Unreconciled lists an account's posted entries not yet matched.
func (s *reconciliationService) Unreconciled(ctx context.Context, pumpID string, accountID string) ([]domain.LedgerEntry, error) {
	if _, err := s.accountSvc.GetAccountByID(ctx, pumpID, accountID); err != nil {
		return nil, err
	}

	entries, err := s.ledgerRepo.UnreconciledEntries(ctx, accountID)
	if err != nil {
		middleware.GetLoggerFromCtx(ctx).Error("Failed to list unreconciled entries", slog.String("error", err.Error()), slog.String("account_id", accountID))
		return nil, fmt.Errorf("failed to list unreconciled entries: %w", err)
	}
	return entries, nil
}
