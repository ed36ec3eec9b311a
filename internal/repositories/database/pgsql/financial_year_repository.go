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

const financialYearColumns = `financial_year_id, name, start_date, end_date, is_active, pump_id,
	       created_at, created_by, last_updated_at, last_updated_by, version`

type PgxFinancialYearRepository struct {
	BaseRepository
}

// newPgxFinancialYearRepository creates a new repository for fiscal periods.
func newPgxFinancialYearRepository(pool *pgxpool.Pool) portsrepo.FinancialYearRepositoryFacade {
	return &PgxFinancialYearRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

// Ensure implementation matches interface
var _ portsrepo.FinancialYearRepositoryFacade = (*PgxFinancialYearRepository)(nil)

func scanFinancialYear(s rowScanner) (models.FinancialYear, error) {
	var m models.FinancialYear
	err := s.Scan(
		&m.FinancialYearID,
		&m.Name,
		&m.StartDate,
		&m.EndDate,
		&m.IsActive,
		&m.PumpID,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
		&m.Version,
	)
	return m, err
}

// SaveFinancialYear persists a new year (inactive by default).
func (r *PgxFinancialYearRepository) SaveFinancialYear(ctx context.Context, fy domain.FinancialYear) error {
	m := mapping.ToModelFinancialYear(fy)

	query := `
		INSERT INTO financial_years (
			financial_year_id, name, start_date, end_date, is_active, pump_id,
			created_at, created_by, last_updated_at, last_updated_by, version
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, 1);
	`
	_, err := r.Pool.Exec(ctx, query,
		m.FinancialYearID,
		m.Name,
		m.StartDate,
		m.EndDate,
		m.IsActive,
		m.PumpID,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		if mapped := classifyPgError(err); mapped != nil {
			return fmt.Errorf("%w: financial year %s", mapped, m.Name)
		}
		return fmt.Errorf("failed to save financial year %s: %w", m.FinancialYearID, err)
	}
	return nil
}

// FindFinancialYearByID retrieves a year by its unique identifier.
func (r *PgxFinancialYearRepository) FindFinancialYearByID(ctx context.Context, financialYearID string) (*domain.FinancialYear, error) {
	query := `SELECT ` + financialYearColumns + ` FROM financial_years WHERE financial_year_id = $1;`

	m, err := scanFinancialYear(r.Pool.QueryRow(ctx, query, financialYearID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find financial year by ID %s: %w", financialYearID, err)
	}

	domainFY := mapping.ToDomainFinancialYear(m)
	return &domainFY, nil
}

// FindActiveFinancialYear returns the active year for the pump scope, falling
// back to the active global year. Pump-scoped years win over global ones.
func (r *PgxFinancialYearRepository) FindActiveFinancialYear(ctx context.Context, pumpID string) (*domain.FinancialYear, error) {
	query := `
		SELECT ` + financialYearColumns + `
		FROM financial_years
		WHERE is_active = TRUE AND (pump_id = $1 OR pump_id IS NULL)
		ORDER BY pump_id NULLS LAST
		LIMIT 1;
	`
	m, err := scanFinancialYear(r.Pool.QueryRow(ctx, query, pumpID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find active financial year for pump %s: %w", pumpID, err)
	}

	domainFY := mapping.ToDomainFinancialYear(m)
	return &domainFY, nil
}

// ListFinancialYears retrieves the years visible to a pump (its own plus
// global ones), newest first.
func (r *PgxFinancialYearRepository) ListFinancialYears(ctx context.Context, pumpID string) ([]domain.FinancialYear, error) {
	query := `
		SELECT ` + financialYearColumns + `
		FROM financial_years
		WHERE pump_id = $1 OR pump_id IS NULL
		ORDER BY start_date DESC;
	`
	rows, err := r.Pool.Query(ctx, query, pumpID)
	if err != nil {
		return nil, fmt.Errorf("failed to query financial years for pump %s: %w", pumpID, err)
	}
	defer rows.Close()

	years := []domain.FinancialYear{}
	for rows.Next() {
		m, scanErr := scanFinancialYear(rows)
		if scanErr != nil {
			return nil, fmt.Errorf("failed to scan financial year row: %w", scanErr)
		}
		years = append(years, mapping.ToDomainFinancialYear(m))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating financial year rows: %w", err)
	}

	return years, nil
}

// ActivateFinancialYear deactivates the currently active year of the same
// scope and activates the requested one as a single atomic swap. An advisory
// lock serializes concurrent activations so there is never an observable
// window with zero or two active years per scope.
func (r *PgxFinancialYearRepository) ActivateFinancialYear(ctx context.Context, financialYearID string, userID string) (*domain.FinancialYear, error) {
	tx, err := r.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer r.Rollback(ctx, tx)

	if _, err := tx.Exec(ctx, `SELECT pg_advisory_xact_lock(hashtext('financial_year_activation'));`); err != nil {
		return nil, fmt.Errorf("failed to acquire activation lock: %w", err)
	}

	targetQuery := `SELECT ` + financialYearColumns + ` FROM financial_years WHERE financial_year_id = $1 FOR UPDATE;`
	target, err := scanFinancialYear(tx.QueryRow(ctx, targetQuery, financialYearID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find financial year %s for activation: %w", financialYearID, err)
	}

	now := time.Now().UTC()

	deactivateQuery := `
		UPDATE financial_years
		SET is_active = FALSE,
		    last_updated_at = $2,
		    last_updated_by = $3,
		    version = version + 1
		WHERE is_active = TRUE
		  AND pump_id IS NOT DISTINCT FROM $1
		  AND financial_year_id != $4;
	`
	if _, err := tx.Exec(ctx, deactivateQuery, target.PumpID, now, userID, financialYearID); err != nil {
		return nil, fmt.Errorf("failed to deactivate current financial year: %w", err)
	}

	activateQuery := `
		UPDATE financial_years
		SET is_active = TRUE,
		    last_updated_at = $2,
		    last_updated_by = $3,
		    version = version + 1
		WHERE financial_year_id = $1
		RETURNING ` + financialYearColumns + `;
	`
	activated, err := scanFinancialYear(tx.QueryRow(ctx, activateQuery, financialYearID, now, userID))
	if err != nil {
		return nil, fmt.Errorf("failed to activate financial year %s: %w", financialYearID, err)
	}

	if err := r.Commit(ctx, tx); err != nil {
		return nil, err
	}

	domainFY := mapping.ToDomainFinancialYear(activated)
	return &domainFY, nil
}
