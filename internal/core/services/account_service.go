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
)

var (
	ErrDuplicateAccountCode = fmt.Errorf("%w: account code already in use", apperrors.ErrDuplicate)
	ErrParentAccountInvalid = fmt.Errorf("%w: parent account invalid", apperrors.ErrValidation)
	ErrAccountCycle         = fmt.Errorf("%w: account hierarchy contains a cycle", apperrors.ErrInternal)
	ErrSystemAccount        = fmt.Errorf("%w: system accounts cannot be deactivated", apperrors.ErrForbidden)
)

// accountService owns the chart of accounts of each pump.
type accountService struct {
	accountRepo portsrepo.AccountRepositoryFacade
	ledgerRepo  portsrepo.LedgerRepositoryFacade
	pumpSvc     portssvc.PumpSvcFacade
}

// NewAccountService creates a new AccountService.
func NewAccountService(accountRepo portsrepo.AccountRepositoryFacade, ledgerRepo portsrepo.LedgerRepositoryFacade, pumpSvc portssvc.PumpSvcFacade) portssvc.AccountSvcFacade {
	return &accountService{
		accountRepo: accountRepo,
		ledgerRepo:  ledgerRepo,
		pumpSvc:     pumpSvc,
	}
}

var _ portssvc.AccountSvcFacade = (*accountService)(nil)

// CreateAccount persists a new account after uniqueness and hierarchy checks.
func (s *accountService) CreateAccount(ctx context.Context, pumpID string, req dto.CreateAccountRequest, userID string) (*domain.Account, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if err := s.pumpSvc.AssertPumpActive(ctx, pumpID); err != nil {
		return nil, err
	}

	existing, err := s.accountRepo.FindAccountByCode(ctx, pumpID, req.Code)
	if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
		logger.Error("Failed to check account code uniqueness", slog.String("error", err.Error()), slog.String("pump_id", pumpID))
		return nil, fmt.Errorf("failed to check account code: %w", err)
	}
	if existing != nil {
		return nil, fmt.Errorf("%w: code %s in pump %s", ErrDuplicateAccountCode, req.Code, pumpID)
	}

	parentAccountID := ""
	if req.ParentAccountID != nil && *req.ParentAccountID != "" {
		parent, err := s.accountRepo.FindAccountByID(ctx, *req.ParentAccountID)
		if err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				return nil, fmt.Errorf("%w: parent %s not found", ErrParentAccountInvalid, *req.ParentAccountID)
			}
			return nil, fmt.Errorf("failed to fetch parent account: %w", err)
		}
		if parent.PumpID != pumpID {
			return nil, fmt.Errorf("%w: parent %s belongs to another pump", ErrParentAccountInvalid, *req.ParentAccountID)
		}
		parentAccountID = parent.AccountID
	}

	balanceType := req.BalanceType
	if balanceType == "" {
		balanceType = domain.NormalBalanceFor(req.AccountType)
	}

	now := time.Now().UTC()
	account := domain.Account{
		AccountID:         uuid.NewString(),
		PumpID:            pumpID,
		Code:              req.Code,
		Name:              req.Name,
		AccountType:       req.AccountType,
		AccountGroup:      req.AccountGroup,
		BalanceType:       balanceType,
		OpeningBalance:    req.OpeningBalance,
		CurrentBalance:    req.OpeningBalance,
		ReconciledBalance: req.OpeningBalance,
		ParentAccountID:   parentAccountID,
		Description:       req.Description,
		IsActive:          true,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}

	if err := s.accountRepo.SaveAccount(ctx, account); err != nil {
		if errors.Is(err, apperrors.ErrDuplicate) {
			// Lost a race with a concurrent create of the same code.
			return nil, fmt.Errorf("%w: code %s in pump %s", ErrDuplicateAccountCode, req.Code, pumpID)
		}
		logger.Error("Failed to save account", slog.String("error", err.Error()), slog.String("pump_id", pumpID))
		return nil, fmt.Errorf("failed to save account: %w", err)
	}

	logger.Info("Account created", slog.String("account_id", account.AccountID), slog.String("code", account.Code), slog.String("pump_id", pumpID))
	return &account, nil
}

// GetAccountByID retrieves an account, hiding accounts of other pumps.
func (s *accountService) GetAccountByID(ctx context.Context, pumpID string, accountID string) (*domain.Account, error) {
	account, err := s.accountRepo.FindAccountByID(ctx, accountID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			middleware.GetLoggerFromCtx(ctx).Error("Failed to find account", slog.String("error", err.Error()), slog.String("account_id", accountID))
		}
		return nil, err
	}
	if account.PumpID != pumpID {
		// Obscure existence across pumps.
		return nil, apperrors.ErrNotFound
	}
	return account, nil
}

// GetAccountsByIDs retrieves multiple accounts, requiring every one to exist
// and to belong to the given pump.
func (s *accountService) GetAccountsByIDs(ctx context.Context, pumpID string, accountIDs []string) (map[string]domain.Account, error) {
	accounts, err := s.accountRepo.FindAccountsByIDs(ctx, accountIDs)
	if err != nil {
		middleware.GetLoggerFromCtx(ctx).Error("Failed to fetch accounts", slog.String("error", err.Error()), slog.String("pump_id", pumpID))
		return nil, fmt.Errorf("failed to fetch accounts: %w", err)
	}
	for _, id := range accountIDs {
		acc, found := accounts[id]
		if !found || acc.PumpID != pumpID {
			return nil, fmt.Errorf("%w: account %s", apperrors.ErrNotFound, id)
		}
	}
	return accounts, nil
}

func (s *accountService) ListAccounts(ctx context.Context, pumpID string, limit int, offset int) ([]domain.Account, error) {
	if err := s.pumpSvc.AssertPumpActive(ctx, pumpID); err != nil {
		return nil, err
	}
	if limit <= 0 {
		limit = 50
	}
	accounts, err := s.accountRepo.ListAccounts(ctx, pumpID, limit, offset)
	if err != nil {
		middleware.GetLoggerFromCtx(ctx).Error("Failed to list accounts", slog.String("error", err.Error()), slog.String("pump_id", pumpID))
		return nil, fmt.Errorf("failed to list accounts: %w", err)
	}
	return accounts, nil
}

// ResolveParentChain walks parent links from the account up to its root.
// The chain starts with the account itself and ends at the root.
func (s *accountService) ResolveParentChain(ctx context.Context, pumpID string, accountID string) ([]domain.Account, error) {
	seen := make(map[string]struct{})
	chain := make([]domain.Account, 0, 4)

	currentID := accountID
	for currentID != "" {
		if _, visited := seen[currentID]; visited {
			middleware.GetLoggerFromCtx(ctx).Error("Cycle detected in account hierarchy", slog.String("account_id", currentID), slog.String("pump_id", pumpID))
			return nil, fmt.Errorf("%w: via account %s", ErrAccountCycle, currentID)
		}
		seen[currentID] = struct{}{}

		account, err := s.GetAccountByID(ctx, pumpID, currentID)
		if err != nil {
			return nil, err
		}
		chain = append(chain, *account)
		currentID = account.ParentAccountID
	}
	return chain, nil
}

// UpdateAccount updates the descriptive fields of an account. Code, type and
// balances are not updatable through this path.
func (s *accountService) UpdateAccount(ctx context.Context, pumpID string, accountID string, req dto.UpdateAccountRequest, userID string) (*domain.Account, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	account, err := s.GetAccountByID(ctx, pumpID, accountID)
	if err != nil {
		return nil, err
	}

	updated := false
	if req.Name != nil {
		account.Name = *req.Name
		updated = true
	}
	if req.AccountGroup != nil {
		account.AccountGroup = *req.AccountGroup
		updated = true
	}
	if req.Description != nil {
		account.Description = *req.Description
		updated = true
	}
	if !updated {
		return account, nil
	}

	now := time.Now().UTC()
	account.LastUpdatedAt = now
	account.LastUpdatedBy = userID

	if err := s.accountRepo.UpdateAccount(ctx, *account); err != nil {
		logger.Error("Failed to update account", slog.String("error", err.Error()), slog.String("account_id", accountID))
		return nil, fmt.Errorf("failed to update account: %w", err)
	}

	logger.Info("Account updated", slog.String("account_id", accountID))
	return account, nil
}

func (s *accountService) LockAccount(ctx context.Context, pumpID string, accountID string, userID string) error {
	return s.setAccountLocked(ctx, pumpID, accountID, true, userID)
}

func (s *accountService) UnlockAccount(ctx context.Context, pumpID string, accountID string, userID string) error {
	return s.setAccountLocked(ctx, pumpID, accountID, false, userID)
}

func (s *accountService) setAccountLocked(ctx context.Context, pumpID string, accountID string, locked bool, userID string) error {
	if _, err := s.GetAccountByID(ctx, pumpID, accountID); err != nil {
		return err
	}
	if err := s.accountRepo.SetAccountLocked(ctx, accountID, locked, userID, time.Now().UTC()); err != nil {
		middleware.GetLoggerFromCtx(ctx).Error("Failed to toggle account lock", slog.String("error", err.Error()), slog.String("account_id", accountID))
		return fmt.Errorf("failed to toggle account lock: %w", err)
	}
	middleware.GetLoggerFromCtx(ctx).Info("Account lock toggled", slog.String("account_id", accountID), slog.Bool("locked", locked))
	return nil
}

// DeactivateAccount marks an account inactive. Accounts are never deleted so
// historical ledger rows keep a valid reference.
func (s *accountService) DeactivateAccount(ctx context.Context, pumpID string, accountID string, userID string) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	account, err := s.GetAccountByID(ctx, pumpID, accountID)
	if err != nil {
		return err
	}
	if account.IsSystemAccount {
		return fmt.Errorf("%w: account %s", ErrSystemAccount, accountID)
	}

	if err := s.accountRepo.DeactivateAccount(ctx, accountID, userID, time.Now().UTC()); err != nil {
		logger.Error("Failed to deactivate account", slog.String("error", err.Error()), slog.String("account_id", accountID))
		return fmt.Errorf("failed to deactivate account: %w", err)
	}

	logger.Info("Account deactivated", slog.String("account_id", accountID))
	return nil
}

// BalanceAsOf reconstructs the balance at end of the given day from the
// ledger, so backdated postings are reflected for historical dates. The cached
// current balance is never consulted here.
func (s *accountService) BalanceAsOf(ctx context.Context, pumpID string, accountID string, asOf time.Time) (decimal.Decimal, error) {
	account, err := s.GetAccountByID(ctx, pumpID, accountID)
	if err != nil {
		return decimal.Zero, err
	}

	cutoff := asOf.Truncate(24 * time.Hour).Add(24 * time.Hour)
	last, err := s.ledgerRepo.LastEntryBefore(ctx, accountID, cutoff)
	if err != nil {
		middleware.GetLoggerFromCtx(ctx).Error("Failed to read ledger for balance", slog.String("error", err.Error()), slog.String("account_id", accountID))
		return decimal.Zero, fmt.Errorf("failed to read ledger: %w", err)
	}
	if last == nil {
		return account.OpeningBalance, nil
	}
	return last.RunningBalance, nil
}
