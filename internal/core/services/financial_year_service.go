package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/pumpsoft/fuel_station_backend/internal/apperrors"
	"github.com/pumpsoft/fuel_station_backend/internal/core/domain"
	portsrepo "github.com/pumpsoft/fuel_station_backend/internal/core/ports/repositories"
	portssvc "github.com/pumpsoft/fuel_station_backend/internal/core/ports/services"
	"github.com/pumpsoft/fuel_station_backend/internal/dto"
	"github.com/pumpsoft/fuel_station_backend/internal/middleware"
)

var (
	ErrNoActiveFinancialYear = fmt.Errorf("%w: no active financial year", apperrors.ErrPeriod)
	ErrDateOutsideActiveYear = fmt.Errorf("%w: date outside the active financial year", apperrors.ErrPeriod)
	ErrInvalidYearRange      = fmt.Errorf("%w: financial year start must precede end", apperrors.ErrValidation)
	ErrOverlappingYear       = fmt.Errorf("%w: financial year overlaps an existing one", apperrors.ErrValidation)
	ErrDuplicateYearName     = fmt.Errorf("%w: financial year name already in use", apperrors.ErrDuplicate)
)

// financialYearService owns the fiscal periods and the single-active-year
// invariant per scope.
type financialYearService struct {
	fyRepo  portsrepo.FinancialYearRepositoryFacade
	pumpSvc portssvc.PumpSvcFacade
}

// NewFinancialYearService creates a new FinancialYearService.
func NewFinancialYearService(fyRepo portsrepo.FinancialYearRepositoryFacade, pumpSvc portssvc.PumpSvcFacade) portssvc.FinancialYearSvcFacade {
	return &financialYearService{
		fyRepo:  fyRepo,
		pumpSvc: pumpSvc,
	}
}

var _ portssvc.FinancialYearSvcFacade = (*financialYearService)(nil)

// CreateFinancialYear opens a new, inactive fiscal period after range and
// overlap checks against the years of the same scope.
func (s *financialYearService) CreateFinancialYear(ctx context.Context, pumpID string, req dto.CreateFinancialYearRequest, userID string) (*domain.FinancialYear, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if !req.StartDate.Before(req.EndDate) {
		return nil, fmt.Errorf("%w: start %s, end %s", ErrInvalidYearRange, req.StartDate.Format("2006-01-02"), req.EndDate.Format("2006-01-02"))
	}

	var scopePumpID *string
	if !req.Global {
		if err := s.pumpSvc.AssertPumpActive(ctx, pumpID); err != nil {
			return nil, err
		}
		scopePumpID = &pumpID
	}

	existing, err := s.fyRepo.ListFinancialYears(ctx, pumpID)
	if err != nil {
		logger.Error("Failed to list financial years for overlap check", slog.String("error", err.Error()), slog.String("pump_id", pumpID))
		return nil, fmt.Errorf("failed to list financial years: %w", err)
	}
	for _, fy := range existing {
		if !sameScope(fy.PumpID, scopePumpID) {
			continue
		}
		if fy.Name == req.Name {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateYearName, req.Name)
		}
		if rangesOverlap(req.StartDate, req.EndDate, fy.StartDate, fy.EndDate) {
			return nil, fmt.Errorf("%w: overlaps %s", ErrOverlappingYear, fy.Name)
		}
	}

	now := time.Now().UTC()
	fy := domain.FinancialYear{
		FinancialYearID: uuid.NewString(),
		Name:            req.Name,
		StartDate:       req.StartDate,
		EndDate:         req.EndDate,
		IsActive:        false,
		PumpID:          scopePumpID,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}

	if err := s.fyRepo.SaveFinancialYear(ctx, fy); err != nil {
		if errors.Is(err, apperrors.ErrDuplicate) {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateYearName, req.Name)
		}
		logger.Error("Failed to save financial year", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to save financial year: %w", err)
	}

	logger.Info("Financial year created", slog.String("financial_year_id", fy.FinancialYearID), slog.String("name", fy.Name))
	return &fy, nil
}

// ActivateFinancialYear swaps the active year of the target scope atomically.
func (s *financialYearService) ActivateFinancialYear(ctx context.Context, financialYearID string, userID string) (*domain.FinancialYear, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	fy, err := s.fyRepo.ActivateFinancialYear(ctx, financialYearID, userID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			logger.Error("Failed to activate financial year", slog.String("error", err.Error()), slog.String("financial_year_id", financialYearID))
		}
		return nil, err
	}

	logger.Info("Financial year activated", slog.String("financial_year_id", fy.FinancialYearID), slog.String("name", fy.Name))
	return fy, nil
}

// GetActiveFinancialYear returns the active year for a pump, preferring the
// pump-scoped year over a global one.
func (s *financialYearService) GetActiveFinancialYear(ctx context.Context, pumpID string) (*domain.FinancialYear, error) {
	fy, err := s.fyRepo.FindActiveFinancialYear(ctx, pumpID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: pump %s", ErrNoActiveFinancialYear, pumpID)
		}
		middleware.GetLoggerFromCtx(ctx).Error("Failed to find active financial year", slog.String("error", err.Error()), slog.String("pump_id", pumpID))
		return nil, fmt.Errorf("failed to find active financial year: %w", err)
	}
	return fy, nil
}

func (s *financialYearService) ListFinancialYears(ctx context.Context, pumpID string) ([]domain.FinancialYear, error) {
	years, err := s.fyRepo.ListFinancialYears(ctx, pumpID)
	if err != nil {
		middleware.GetLoggerFromCtx(ctx).Error("Failed to list financial years", slog.String("error", err.Error()), slog.String("pump_id", pumpID))
		return nil, fmt.Errorf("failed to list financial years: %w", err)
	}
	return years, nil
}

// Classify positions a date relative to the active year of the scope.
func (s *financialYearService) Classify(ctx context.Context, pumpID string, date time.Time) (domain.DateClass, error) {
	fy, err := s.GetActiveFinancialYear(ctx, pumpID)
	if err != nil {
		return "", err
	}
	return fy.Classify(date), nil
}

// AssertOpenPeriod rejects dates outside the active year of the scope.
func (s *financialYearService) AssertOpenPeriod(ctx context.Context, pumpID string, date time.Time) error {
	fy, err := s.GetActiveFinancialYear(ctx, pumpID)
	if err != nil {
		return err
	}
	if !fy.Contains(date) {
		return fmt.Errorf("%w: %s not in %s", ErrDateOutsideActiveYear, date.Format("2006-01-02"), fy.Name)
	}
	return nil
}

func sameScope(a, b *string) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}

func rangesOverlap(aStart, aEnd, bStart, bEnd time.Time) bool {
	return !aStart.After(bEnd) && !bStart.After(aEnd)
}
