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

var ErrCustomerAccountInvalid = fmt.Errorf("%w: linked receivable account invalid", apperrors.ErrValidation)

// customerService manages credit customers and their optional link to a
// receivable account in the chart.
type customerService struct {
	customerRepo portsrepo.CustomerRepositoryFacade
	accountSvc   portssvc.AccountSvcFacade
	pumpSvc      portssvc.PumpSvcFacade
}

// NewCustomerService creates a new CustomerService.
func NewCustomerService(customerRepo portsrepo.CustomerRepositoryFacade, accountSvc portssvc.AccountSvcFacade, pumpSvc portssvc.PumpSvcFacade) portssvc.CustomerSvcFacade {
	return &customerService{
		customerRepo: customerRepo,
		accountSvc:   accountSvc,
		pumpSvc:      pumpSvc,
	}
}

var _ portssvc.CustomerSvcFacade = (*customerService)(nil)

func (s *customerService) CreateCustomer(ctx context.Context, pumpID string, req dto.CreateCustomerRequest, userID string) (*domain.Customer, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if err := s.pumpSvc.AssertPumpActive(ctx, pumpID); err != nil {
		return nil, err
	}

	var accountID *string
	if req.AccountID != nil && *req.AccountID != "" {
		account, err := s.accountSvc.GetAccountByID(ctx, pumpID, *req.AccountID)
		if err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				return nil, fmt.Errorf("%w: account %s not found", ErrCustomerAccountInvalid, *req.AccountID)
			}
			return nil, err
		}
		if account.AccountType != domain.Asset {
			return nil, fmt.Errorf("%w: account %s is %s, expected ASSET", ErrCustomerAccountInvalid, *req.AccountID, account.AccountType)
		}
		accountID = &account.AccountID
	}

	now := time.Now().UTC()
	customer := domain.Customer{
		CustomerID:  uuid.NewString(),
		PumpID:      pumpID,
		Name:        req.Name,
		Phone:       req.Phone,
		Address:     req.Address,
		AccountID:   accountID,
		CreditLimit: req.CreditLimit,
		IsActive:    true,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}

	if err := s.customerRepo.SaveCustomer(ctx, customer); err != nil {
		logger.Error("Failed to save customer", slog.String("error", err.Error()), slog.String("pump_id", pumpID))
		return nil, fmt.Errorf("failed to save customer: %w", err)
	}

	logger.Info("Customer created", slog.String("customer_id", customer.CustomerID), slog.String("pump_id", pumpID))
	return &customer, nil
}

func (s *customerService) GetCustomerByID(ctx context.Context, pumpID string, customerID string) (*domain.Customer, error) {
	customer, err := s.customerRepo.FindCustomerByID(ctx, customerID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			middleware.GetLoggerFromCtx(ctx).Error("Failed to find customer", slog.String("error", err.Error()), slog.String("customer_id", customerID))
		}
		return nil, err
	}
	if customer.PumpID != pumpID {
		return nil, apperrors.ErrNotFound
	}
	return customer, nil
}

func (s *customerService) ListCustomers(ctx context.Context, pumpID string, limit int, offset int) ([]domain.Customer, error) {
	if err := s.pumpSvc.AssertPumpActive(ctx, pumpID); err != nil {
		return nil, err
	}
	if limit <= 0 {
		limit = 20
	}
	customers, err := s.customerRepo.ListCustomersByPump(ctx, pumpID, limit, offset)
	if err != nil {
		middleware.GetLoggerFromCtx(ctx).Error("Failed to list customers", slog.String("error", err.Error()), slog.String("pump_id", pumpID))
		return nil, fmt.Errorf("failed to list customers: %w", err)
	}
	return customers, nil
}

func (s *customerService) UpdateCustomer(ctx context.Context, pumpID string, customerID string, req dto.UpdateCustomerRequest, userID string) (*domain.Customer, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	customer, err := s.GetCustomerByID(ctx, pumpID, customerID)
	if err != nil {
		return nil, err
	}

	updated := false
	if req.Name != nil {
		customer.Name = *req.Name
		updated = true
	}
	if req.Phone != nil {
		customer.Phone = *req.Phone
		updated = true
	}
	if req.Address != nil {
		customer.Address = *req.Address
		updated = true
	}
	if req.CreditLimit != nil {
		customer.CreditLimit = *req.CreditLimit
		updated = true
	}
	if !updated {
		return customer, nil
	}

	now := time.Now().UTC()
	customer.LastUpdatedAt = now
	customer.LastUpdatedBy = userID

	if err := s.customerRepo.UpdateCustomer(ctx, *customer); err != nil {
		logger.Error("Failed to update customer", slog.String("error", err.Error()), slog.String("customer_id", customerID))
		return nil, fmt.Errorf("failed to update customer: %w", err)
	}

	logger.Info("Customer updated", slog.String("customer_id", customerID))
	return customer, nil
}

func (s *customerService) DeactivateCustomer(ctx context.Context, pumpID string, customerID string, userID string) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	if _, err := s.GetCustomerByID(ctx, pumpID, customerID); err != nil {
		return err
	}

	if err := s.customerRepo.DeactivateCustomer(ctx, customerID, userID, time.Now().UTC()); err != nil {
		logger.Error("Failed to deactivate customer", slog.String("error", err.Error()), slog.String("customer_id", customerID))
		return fmt.Errorf("failed to deactivate customer: %w", err)
	}

	logger.Info("Customer deactivated", slog.String("customer_id", customerID))
	return nil
}
