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

var ErrPumpInactive = fmt.Errorf("%w: pump is disabled", apperrors.ErrForbidden)

// pumpService manages pump records, the owning scope of everything else.
type pumpService struct {
	pumpRepo portsrepo.PumpRepositoryFacade
}

// NewPumpService creates a new PumpService.
func NewPumpService(pumpRepo portsrepo.PumpRepositoryFacade) portssvc.PumpSvcFacade {
	return &pumpService{pumpRepo: pumpRepo}
}

var _ portssvc.PumpSvcFacade = (*pumpService)(nil)

func (s *pumpService) CreatePump(ctx context.Context, req dto.CreatePumpRequest, userID string) (*domain.Pump, error) {
	logger := middleware.GetLoggerFromCtx(ctx)
	now := time.Now().UTC()

	pump := domain.Pump{
		PumpID:   uuid.NewString(),
		Name:     req.Name,
		Address:  req.Address,
		GSTIN:    req.GSTIN,
		IsActive: true,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}

	if err := s.pumpRepo.SavePump(ctx, pump); err != nil {
		logger.Error("Failed to save pump", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to save pump: %w", err)
	}

	logger.Info("Pump created", slog.String("pump_id", pump.PumpID))
	return &pump, nil
}

func (s *pumpService) GetPumpByID(ctx context.Context, pumpID string) (*domain.Pump, error) {
	pump, err := s.pumpRepo.FindPumpByID(ctx, pumpID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			middleware.GetLoggerFromCtx(ctx).Error("Failed to find pump", slog.String("error", err.Error()), slog.String("pump_id", pumpID))
		}
		return nil, err
	}
	return pump, nil
}

func (s *pumpService) ListPumps(ctx context.Context, limit int, offset int) ([]domain.Pump, error) {
	if limit <= 0 {
		limit = 20
	}
	pumps, err := s.pumpRepo.ListPumps(ctx, limit, offset)
	if err != nil {
		middleware.GetLoggerFromCtx(ctx).Error("Failed to list pumps", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to list pumps: %w", err)
	}
	return pumps, nil
}

func (s *pumpService) UpdatePump(ctx context.Context, pumpID string, req dto.UpdatePumpRequest, userID string) (*domain.Pump, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	pump, err := s.pumpRepo.FindPumpByID(ctx, pumpID)
	if err != nil {
		return nil, err
	}

	updated := false
	if req.Name != nil {
		pump.Name = *req.Name
		updated = true
	}
	if req.Address != nil {
		pump.Address = *req.Address
		updated = true
	}
	if req.GSTIN != nil {
		pump.GSTIN = *req.GSTIN
		updated = true
	}
	if !updated {
		return pump, nil
	}

	now := time.Now().UTC()
	pump.LastUpdatedAt = now
	pump.LastUpdatedBy = userID

	if err := s.pumpRepo.UpdatePump(ctx, *pump); err != nil {
		logger.Error("Failed to update pump", slog.String("error", err.Error()), slog.String("pump_id", pumpID))
		return nil, fmt.Errorf("failed to update pump: %w", err)
	}

	logger.Info("Pump updated", slog.String("pump_id", pumpID))
	return pump, nil
}

// AssertPumpActive fails when the pump is missing or disabled. Scoped services
// call this before acting on pump-owned data.
func (s *pumpService) AssertPumpActive(ctx context.Context, pumpID string) error {
	pump, err := s.pumpRepo.FindPumpByID(ctx, pumpID)
	if err != nil {
		return err
	}
	if !pump.IsActive {
		return fmt.Errorf("%w: pump %s", ErrPumpInactive, pumpID)
	}
	return nil
}
