package repositories

import (
	"context"

	"github.com/pumpsoft/fuel_station_backend/internal/core/domain"
)

// PumpRepositoryFacade defines persistence operations for pumps.
type PumpRepositoryFacade interface {
	SavePump(ctx context.Context, pump domain.Pump) error
	FindPumpByID(ctx context.Context, pumpID string) (*domain.Pump, error)
	ListPumps(ctx context.Context, limit int, offset int) ([]domain.Pump, error)
	UpdatePump(ctx context.Context, pump domain.Pump) error
}
