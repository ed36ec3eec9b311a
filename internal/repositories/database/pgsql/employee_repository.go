package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/pumpsoft/fuel_station_backend/internal/apperrors"
	"github.com/pumpsoft/fuel_station_backend/internal/core/domain"
	portsrepo "github.com/pumpsoft/fuel_station_backend/internal/core/ports/repositories"
	"github.com/pumpsoft/fuel_station_backend/internal/models"
	"github.com/pumpsoft/fuel_station_backend/internal/utils/mapping"
)

const employeeColumns = `employee_id, pump_id, name, phone, designation, joined_on, is_active, deleted_at,
	       created_at, created_by, last_updated_at, last_updated_by, version`

type PgxEmployeeRepository struct {
	BaseRepository
}

// newPgxEmployeeRepository creates a new repository for staff records.
func newPgxEmployeeRepository(pool *pgxpool.Pool) portsrepo.EmployeeRepositoryFacade {
	return &PgxEmployeeRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

// Ensure implementation matches interface
var _ portsrepo.EmployeeRepositoryFacade = (*PgxEmployeeRepository)(nil)

func scanEmployee(s rowScanner) (models.Employee, error) {
	var m models.Employee
	err := s.Scan(
		&m.EmployeeID,
		&m.PumpID,
		&m.Name,
		&m.Phone,
		&m.Designation,
		&m.JoinedOn,
		&m.IsActive,
		&m.DeletedAt,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
		&m.Version,
	)
	return m, err
}

// SaveEmployee persists a new employee.
func (r *PgxEmployeeRepository) SaveEmployee(ctx context.Context, employee domain.Employee) error {
	m := mapping.ToModelEmployee(employee)

	query := `
		INSERT INTO employees (
			employee_id, pump_id, name, phone, designation, joined_on, is_active, deleted_at,
			created_at, created_by, last_updated_at, last_updated_by, version
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, 1);
	`
	_, err := r.Pool.Exec(ctx, query,
		m.EmployeeID,
		m.PumpID,
		m.Name,
		m.Phone,
		m.Designation,
		m.JoinedOn,
		m.IsActive,
		m.DeletedAt,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		if mapped := classifyPgError(err); mapped != nil {
			return fmt.Errorf("%w: employee %s", mapped, m.EmployeeID)
		}
		return fmt.Errorf("failed to save employee %s: %w", m.EmployeeID, err)
	}
	return nil
}

// FindEmployeeByID retrieves an employee by their unique identifier.
// Soft-deleted employees remain findable so historical audit references stay
// resolvable.
func (r *PgxEmployeeRepository) FindEmployeeByID(ctx context.Context, employeeID string) (*domain.Employee, error) {
	query := `SELECT ` + employeeColumns + ` FROM employees WHERE employee_id = $1;`

	m, err := scanEmployee(r.Pool.QueryRow(ctx, query, employeeID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find employee by ID %s: %w", employeeID, err)
	}

	domainEmployee := mapping.ToDomainEmployee(m)
	return &domainEmployee, nil
}

// ListEmployeesByPump retrieves a paginated list of active employees for a pump.
func (r *PgxEmployeeRepository) ListEmployeesByPump(ctx context.Context, pumpID string, limit int, offset int) ([]domain.Employee, error) {
	if limit <= 0 {
		limit = 20
	}

	query := `
		SELECT ` + employeeColumns + `
		FROM employees
		WHERE pump_id = $1 AND deleted_at IS NULL
		ORDER BY name
		LIMIT $2 OFFSET $3;
	`
	rows, err := r.Pool.Query(ctx, query, pumpID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to query employees for pump %s: %w", pumpID, err)
	}
	defer rows.Close()

	employees := make([]domain.Employee, 0, limit)
	for rows.Next() {
		m, scanErr := scanEmployee(rows)
		if scanErr != nil {
			return nil, fmt.Errorf("failed to scan employee row for pump %s: %w", pumpID, scanErr)
		}
		employees = append(employees, mapping.ToDomainEmployee(m))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating employee rows for pump %s: %w", pumpID, err)
	}

	return employees, nil
}

// UpdateEmployee updates an existing employee's details.
func (r *PgxEmployeeRepository) UpdateEmployee(ctx context.Context, employee domain.Employee) error {
	m := mapping.ToModelEmployee(employee)

	query := `
		UPDATE employees
		SET name = $2,
		    phone = $3,
		    designation = $4,
		    last_updated_at = $5,
		    last_updated_by = $6,
		    version = version + 1
		WHERE employee_id = $1 AND deleted_at IS NULL;
	`
	cmdTag, err := r.Pool.Exec(ctx, query,
		m.EmployeeID,
		m.Name,
		m.Phone,
		m.Designation,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to update employee %s: %w", m.EmployeeID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("%w: employee %s", apperrors.ErrNotFound, m.EmployeeID)
	}
	return nil
}

// DeactivateEmployee soft-deletes an employee record.
func (r *PgxEmployeeRepository) DeactivateEmployee(ctx context.Context, employeeID string, userID string, now time.Time) error {
	query := `
		UPDATE employees
		SET is_active = FALSE,
		    deleted_at = $2,
		    last_updated_at = $2,
		    last_updated_by = $3,
		    version = version + 1
		WHERE employee_id = $1 AND deleted_at IS NULL;
	`
	cmdTag, err := r.Pool.Exec(ctx, query, employeeID, now, userID)
	if err != nil {
		return fmt.Errorf("failed to deactivate employee %s: %w", employeeID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("%w: employee %s", apperrors.ErrNotFound, employeeID)
	}
	return nil
}
