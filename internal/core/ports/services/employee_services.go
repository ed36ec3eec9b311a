package services

import (
	"context"

	"github.com/pumpsoft/fuel_station_backend/internal/core/domain"
	"github.com/pumpsoft/fuel_station_backend/internal/dto"
)

// EmployeeSvcFacade manages staff records.
type EmployeeSvcFacade interface {
	CreateEmployee(ctx context.Context, pumpID string, req dto.CreateEmployeeRequest, userID string) (*domain.Employee, error)
	GetEmployeeByID(ctx context.Context, pumpID string, employeeID string) (*domain.Employee, error)
	ListEmployees(ctx context.Context, pumpID string, limit int, offset int) ([]domain.Employee, error)
	UpdateEmployee(ctx context.Context, pumpID string, employeeID string, req dto.UpdateEmployeeRequest, userID string) (*domain.Employee, error)
	DeactivateEmployee(ctx context.Context, pumpID string, employeeID string, userID string) error
}
