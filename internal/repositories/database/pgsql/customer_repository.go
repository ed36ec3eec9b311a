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

const customerColumns = `customer_id, pump_id, name, phone, address, account_id, credit_limit, is_active,
	       created_at, created_by, last_updated_at, last_updated_by, version`

type PgxCustomerRepository struct {
	BaseRepository
}

// newPgxCustomerRepository creates a new repository for credit customers.
func newPgxCustomerRepository(pool *pgxpool.Pool) portsrepo.CustomerRepositoryFacade {
	return &PgxCustomerRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

// Ensure implementation matches interface
var _ portsrepo.CustomerRepositoryFacade = (*PgxCustomerRepository)(nil)

func scanCustomer(s rowScanner) (models.Customer, error) {
	var m models.Customer
	err := s.Scan(
		&m.CustomerID,
		&m.PumpID,
		&m.Name,
		&m.Phone,
		&m.Address,
		&m.AccountID,
		&m.CreditLimit,
		&m.IsActive,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
		&m.Version,
	)
	return m, err
}

// SaveCustomer persists a new customer.
func (r *PgxCustomerRepository) SaveCustomer(ctx context.Context, customer domain.Customer) error {
	m := mapping.ToModelCustomer(customer)

	query := `
		INSERT INTO customers (
			customer_id, pump_id, name, phone, address, account_id, credit_limit, is_active,
			created_at, created_by, last_updated_at, last_updated_by, version
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, 1);
	`
	_, err := r.Pool.Exec(ctx, query,
		m.CustomerID,
		m.PumpID,
		m.Name,
		m.Phone,
		m.Address,
		m.AccountID,
		m.CreditLimit,
		m.IsActive,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		if mapped := classifyPgError(err); mapped != nil {
			return fmt.Errorf("%w: customer %s", mapped, m.CustomerID)
		}
		return fmt.Errorf("failed to save customer %s: %w", m.CustomerID, err)
	}
	return nil
}

// FindCustomerByID retrieves a customer by their unique identifier.
func (r *PgxCustomerRepository) FindCustomerByID(ctx context.Context, customerID string) (*domain.Customer, error) {
	query := `SELECT ` + customerColumns + ` FROM customers WHERE customer_id = $1;`

	m, err := scanCustomer(r.Pool.QueryRow(ctx, query, customerID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find customer by ID %s: %w", customerID, err)
	}

	domainCustomer := mapping.ToDomainCustomer(m)
	return &domainCustomer, nil
}

// ListCustomersByPump retrieves a paginated list of customers for a pump.
func (r *PgxCustomerRepository) ListCustomersByPump(ctx context.Context, pumpID string, limit int, offset int) ([]domain.Customer, error) {
	if limit <= 0 {
		limit = 20
	}

	query := `
		SELECT ` + customerColumns + `
		FROM customers
		WHERE pump_id = $1
		ORDER BY name
		LIMIT $2 OFFSET $3;
	`
	rows, err := r.Pool.Query(ctx, query, pumpID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to query customers for pump %s: %w", pumpID, err)
	}
	defer rows.Close()

	customers := make([]domain.Customer, 0, limit)
	for rows.Next() {
		m, scanErr := scanCustomer(rows)
		if scanErr != nil {
			return nil, fmt.Errorf("failed to scan customer row for pump %s: %w", pumpID, scanErr)
		}
		customers = append(customers, mapping.ToDomainCustomer(m))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating customer rows for pump %s: %w", pumpID, err)
	}

	return customers, nil
}

// UpdateCustomer updates an existing customer's details.
func (r *PgxCustomerRepository) UpdateCustomer(ctx context.Context, customer domain.Customer) error {
	m := mapping.ToModelCustomer(customer)

	query := `
		UPDATE customers
		SET name = $2,
		    phone = $3,
		    address = $4,
		    credit_limit = $5,
		    last_updated_at = $6,
		    last_updated_by = $7,
		    version = version + 1
		WHERE customer_id = $1;
	`
	cmdTag, err := r.Pool.Exec(ctx, query,
		m.CustomerID,
		m.Name,
		m.Phone,
		m.Address,
		m.CreditLimit,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to update customer %s: %w", m.CustomerID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("%w: customer %s", apperrors.ErrNotFound, m.CustomerID)
	}
	return nil
}

// DeactivateCustomer marks a customer as inactive.
func (r *PgxCustomerRepository) DeactivateCustomer(ctx context.Context, customerID string, userID string, now time.Time) error {
	query := `
		UPDATE customers
		SET is_active = FALSE,
		    last_updated_at = $2,
		    last_updated_by = $3,
		    version = version + 1
		WHERE customer_id = $1;
	`
	cmdTag, err := r.Pool.Exec(ctx, query, customerID, now, userID)
	if err != nil {
		return fmt.Errorf("failed to deactivate customer %s: %w", customerID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("%w: customer %s", apperrors.ErrNotFound, customerID)
	}
	return nil
}
