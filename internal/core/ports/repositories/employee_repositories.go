package repositories

import (
	"context"
	"time"

	"github.com/pumpsoft/fuel_station_backend/internal/core/domain"
)

// EmployeeRepositoryFacade defines persistence operations for staff records.
type EmployeeRepositoryFacade interface {
	SaveEmployee(ctx context.Context, employee domain.Employee) error
	FindEmployeeByID(ctx context.Context, employeeID string) (*domain.Employee, error)
	ListEmployeesByPump(ctx context.Context, pumpID string, limit int, offset int) ([]domain.Employee, error)
	UpdateEmployee(ctx context.Context, employee domain.Employee) error
	DeactivateEmployee(ctx context.Context, employeeID string, userID string, now time.Time) error
}
