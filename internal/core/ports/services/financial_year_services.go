package services

import (
	"context"
	"time"

	"github.com/pumpsoft/fuel_station_backend/internal/core/domain"
	"github.com/pumpsoft/fuel_station_backend/internal/dto"
)

// FinancialYearSvcFacade owns the fiscal periods and the "exactly one active
// year per scope" invariant.
type FinancialYearSvcFacade interface {
	// CreateFinancialYear opens a new (inactive) fiscal period.
	CreateFinancialYear(ctx context.Context, pumpID string, req dto.CreateFinancialYearRequest, userID string) (*domain.FinancialYear, error)

	// ActivateFinancialYear swaps the active year of the target scope
	// atomically: the previous active year is deactivated and the requested
	// one activated with no intermediate state visible.
	ActivateFinancialYear(ctx context.Context, financialYearID string, userID string) (*domain.FinancialYear, error)

	// GetActiveFinancialYear returns the active year for a pump (pump scope
	// first, global fallback).
	GetActiveFinancialYear(ctx context.Context, pumpID string) (*domain.FinancialYear, error)

	// ListFinancialYears lists the years visible to a pump.
	ListFinancialYears(ctx context.Context, pumpID string) ([]domain.FinancialYear, error)

	// Classify positions a date relative to the active year of the scope.
	Classify(ctx context.Context, pumpID string, date time.Time) (domain.DateClass, error)

	// AssertOpenPeriod rejects dates outside the active year of the scope.
	// The posting engine calls this before materializing ledger entries.
	AssertOpenPeriod(ctx context.Context, pumpID string, date time.Time) error
}
