package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/pumpsoft/fuel_station_backend/internal/apperrors"
	"github.com/pumpsoft/fuel_station_backend/internal/core/domain"
	portsrepo "github.com/pumpsoft/fuel_station_backend/internal/core/ports/repositories"
	"github.com/pumpsoft/fuel_station_backend/internal/models"
	"github.com/pumpsoft/fuel_station_backend/internal/utils/mapping"
)

const pumpColumns = `pump_id, name, address, gstin, is_active,
	       created_at, created_by, last_updated_at, last_updated_by, version`

type PgxPumpRepository struct {
	BaseRepository
}

// newPgxPumpRepository creates a new repository for station units.
func newPgxPumpRepository(pool *pgxpool.Pool) portsrepo.PumpRepositoryFacade {
	return &PgxPumpRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

// Ensure implementation matches interface
var _ portsrepo.PumpRepositoryFacade = (*PgxPumpRepository)(nil)

func scanPump(s rowScanner) (models.Pump, error) {
	var m models.Pump
	err := s.Scan(
		&m.PumpID,
		&m.Name,
		&m.Address,
		&m.GSTIN,
		&m.IsActive,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
		&m.Version,
	)
	return m, err
}

// SavePump persists a new pump.
func (r *PgxPumpRepository) SavePump(ctx context.Context, pump domain.Pump) error {
	m := mapping.ToModelPump(pump)

	query := `
		INSERT INTO pumps (
			pump_id, name, address, gstin, is_active,
			created_at, created_by, last_updated_at, last_updated_by, version
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, 1);
	`
	_, err := r.Pool.Exec(ctx, query,
		m.PumpID,
		m.Name,
		m.Address,
		m.GSTIN,
		m.IsActive,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		if mapped := classifyPgError(err); mapped != nil {
			return fmt.Errorf("%w: pump %s", mapped, m.PumpID)
		}
		return fmt.Errorf("failed to save pump %s: %w", m.PumpID, err)
	}
	return nil
}

// FindPumpByID retrieves a pump by its unique identifier.
func (r *PgxPumpRepository) FindPumpByID(ctx context.Context, pumpID string) (*domain.Pump, error) {
	query := `SELECT ` + pumpColumns + ` FROM pumps WHERE pump_id = $1;`

	m, err := scanPump(r.Pool.QueryRow(ctx, query, pumpID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find pump by ID %s: %w", pumpID, err)
	}

	domainPump := mapping.ToDomainPump(m)
	return &domainPump, nil
}

// ListPumps retrieves a paginated list of pumps.
func (r *PgxPumpRepository) ListPumps(ctx context.Context, limit int, offset int) ([]domain.Pump, error) {
	if limit <= 0 {
		limit = 20
	}

	query := `SELECT ` + pumpColumns + ` FROM pumps ORDER BY name LIMIT $1 OFFSET $2;`

	rows, err := r.Pool.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to query pumps: %w", err)
	}
	defer rows.Close()

	pumps := make([]domain.Pump, 0, limit)
	for rows.Next() {
		m, scanErr := scanPump(rows)
		if scanErr != nil {
			return nil, fmt.Errorf("failed to scan pump row: %w", scanErr)
		}
		pumps = append(pumps, mapping.ToDomainPump(m))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating pump rows: %w", err)
	}

	return pumps, nil
}

// UpdatePump updates an existing pump's details.
func (r *PgxPumpRepository) UpdatePump(ctx context.Context, pump domain.Pump) error {
	m := mapping.ToModelPump(pump)

	query := `
		UPDATE pumps
		SET name = $2,
		    address = $3,
		    gstin = $4,
		    is_active = $5,
		    last_updated_at = $6,
		    last_updated_by = $7,
		    version = version + 1
		WHERE pump_id = $1;
	`
	cmdTag, err := r.Pool.Exec(ctx, query,
		m.PumpID,
		m.Name,
		m.Address,
		m.GSTIN,
		m.IsActive,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to update pump %s: %w", m.PumpID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("%w: pump %s", apperrors.ErrNotFound, m.PumpID)
	}
	return nil
}
