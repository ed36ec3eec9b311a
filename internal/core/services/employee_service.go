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

// employeeService manages staff records. Credentials and authentication live
// outside this system; these records exist for audit and payroll postings.
type employeeService struct {
	employeeRepo portsrepo.EmployeeRepositoryFacade
	pumpSvc      portssvc.PumpSvcFacade
}

// NewEmployeeService creates a new EmployeeService.
func NewEmployeeService(employeeRepo portsrepo.EmployeeRepositoryFacade, pumpSvc portssvc.PumpSvcFacade) portssvc.EmployeeSvcFacade {
	return &employeeService{
		employeeRepo: employeeRepo,
		pumpSvc:      pumpSvc,
	}
}

var _ portssvc.EmployeeSvcFacade = (*employeeService)(nil)

func (s *employeeService) CreateEmployee(ctx context.Context, pumpID string, req dto.CreateEmployeeRequest, userID string) (*domain.Employee, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if err := s.pumpSvc.AssertPumpActive(ctx, pumpID); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	joinedOn := req.JoinedOn
	if joinedOn.IsZero() {
		joinedOn = now
	}

	employee := domain.Employee{
		EmployeeID:  uuid.NewString(),
		PumpID:      pumpID,
		Name:        req.Name,
		Phone:       req.Phone,
		Designation: req.Designation,
		JoinedOn:    joinedOn,
		IsActive:    true,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}

	if err := s.employeeRepo.SaveEmployee(ctx, employee); err != nil {
		logger.Error("Failed to save employee", slog.String("error", err.Error()), slog.String("pump_id", pumpID))
		return nil, fmt.Errorf("failed to save employee: %w", err)
	}

	logger.Info("Employee created", slog.String("employee_id", employee.EmployeeID), slog.String("pump_id", pumpID))
	return &employee, nil
}

func (s *employeeService) GetEmployeeByID(ctx context.Context, pumpID string, employeeID string) (*domain.Employee, error) {
	employee, err := s.employeeRepo.FindEmployeeByID(ctx, employeeID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			middleware.GetLoggerFromCtx(ctx).Error("Failed to find employee", slog.String("error", err.Error()), slog.String("employee_id", employeeID))
		}
		return nil, err
	}
	if employee.PumpID != pumpID {
		return nil, apperrors.ErrNotFound
	}
	return employee, nil
}

func (s *employeeService) ListEmployees(ctx context.Context, pumpID string, limit int, offset int) ([]domain.Employee, error) {
	if err := s.pumpSvc.AssertPumpActive(ctx, pumpID); err != nil {
		return nil, err
	}
	if limit <= 0 {
		limit = 20
	}
	employees, err := s.employeeRepo.ListEmployeesByPump(ctx, pumpID, limit, offset)
	if err != nil {
		middleware.GetLoggerFromCtx(ctx).Error("Failed to list employees", slog.String("error", err.Error()), slog.String("pump_id", pumpID))
		return nil, fmt.Errorf("failed to list employees: %w", err)
	}
	return employees, nil
}

func (s *employeeService) UpdateEmployee(ctx context.Context, pumpID string, employeeID string, req dto.UpdateEmployeeRequest, userID string) (*domain.Employee, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	employee, err := s.GetEmployeeByID(ctx, pumpID, employeeID)
	if err != nil {
		return nil, err
	}

	updated := false
	if req.Name != nil {
		employee.Name = *req.Name
		updated = true
	}
	if req.Phone != nil {
		employee.Phone = *req.Phone
		updated = true
	}
	if req.Designation != nil {
		employee.Designation = *req.Designation
		updated = true
	}
	if !updated {
		return employee, nil
	}

	now := time.Now().UTC()
	employee.LastUpdatedAt = now
	employee.LastUpdatedBy = userID

	if err := s.employeeRepo.UpdateEmployee(ctx, *employee); err != nil {
		logger.Error("Failed to update employee", slog.String("error", err.Error()), slog.String("employee_id", employeeID))
		return nil, fmt.Errorf("failed to update employee: %w", err)
	}

	logger.Info("Employee updated", slog.String("employee_id", employeeID))
	return employee, nil
}

// DeactivateEmployee soft-deletes the record so historical audit references
// stay resolvable.
func (s *employeeService) DeactivateEmployee(ctx context.Context, pumpID string, employeeID string, userID string) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	if _, err := s.GetEmployeeByID(ctx, pumpID, employeeID); err != nil {
		return err
	}

	if err := s.employeeRepo.DeactivateEmployee(ctx, employeeID, userID, time.Now().UTC()); err != nil {
		logger.Error("Failed to deactivate employee", slog.String("error", err.Error()), slog.String("employee_id", employeeID))
		return fmt.Errorf("failed to deactivate employee: %w", err)
	}

	logger.Info("Employee deactivated", slog.String("employee_id", employeeID))
	return nil
}
