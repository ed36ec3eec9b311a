package repositories

import (
	"context"

	"github.com/pumpsoft/fuel_station_backend/internal/core/domain"
)

// FinancialYearReader defines read operations for fiscal periods
type FinancialYearReader interface {
	// FindFinancialYearByID retrieves a year by its unique identifier.
	FindFinancialYearByID(ctx context.Context, financialYearID string) (*domain.FinancialYear, error)

	// FindActiveFinancialYear returns the active year for the pump scope,
	// falling back to the active global year, or ErrNotFound when neither
	// exists.
	FindActiveFinancialYear(ctx context.Context, pumpID string) (*domain.FinancialYear, error)

	// ListFinancialYears retrieves the years visible to a pump (its own plus
	// global ones).
	ListFinancialYears(ctx context.Context, pumpID string) ([]domain.FinancialYear, error)
}

// FinancialYearWriter defines write operations for fiscal periods
type FinancialYearWriter interface {
	// SaveFinancialYear persists a new year (inactive by default).
	SaveFinancialYear(ctx context.Context, fy domain.FinancialYear) error

	// ActivateFinancialYear deactivates the currently active year of the same
	// scope and activates the requested one as a single atomic swap. There is
	// never an observable window with zero or two active years per scope.
	ActivateFinancialYear(ctx context.Context, financialYearID string, userID string) (*domain.FinancialYear, error)
}

// FinancialYearRepositoryFacade combines the financial-year interfaces
type FinancialYearRepositoryFacade interface {
	FinancialYearReader
	FinancialYearWriter
}
