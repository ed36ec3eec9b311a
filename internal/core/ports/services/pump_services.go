package services

import (
	"context"

	"github.com/pumpsoft/fuel_station_backend/internal/core/domain"
	"github.com/pumpsoft/fuel_station_backend/internal/dto"
)

// PumpSvcFacade manages pump (scope) records.
type PumpSvcFacade interface {
	CreatePump(ctx context.Context, req dto.CreatePumpRequest, userID string) (*domain.Pump, error)
	GetPumpByID(ctx context.Context, pumpID string) (*domain.Pump, error)
	ListPumps(ctx context.Context, limit int, offset int) ([]domain.Pump, error)
	UpdatePump(ctx context.Context, pumpID string, req dto.UpdatePumpRequest, userID string) (*domain.Pump, error)

	// AssertPumpActive fails with ErrNotFound/ErrForbidden when the pump is
	// missing or disabled. Scoped services call this before acting.
	AssertPumpActive(ctx context.Context, pumpID string) error
}
