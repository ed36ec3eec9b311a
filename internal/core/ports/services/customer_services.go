package services

import (
	"context"

	"github.com/pumpsoft/fuel_station_backend/internal/core/domain"
	"github.com/pumpsoft/fuel_station_backend/internal/dto"
)

// CustomerSvcFacade manages credit customers.
type CustomerSvcFacade interface {
	CreateCustomer(ctx context.Context, pumpID string, req dto.CreateCustomerRequest, userID string) (*domain.Customer, error)
	GetCustomerByID(ctx context.Context, pumpID string, customerID string) (*domain.Customer, error)
	ListCustomers(ctx context.Context, pumpID string, limit int, offset int) ([]domain.Customer, error)
	UpdateCustomer(ctx context.Context, pumpID string, customerID string, req dto.UpdateCustomerRequest, userID string) (*domain.Customer, error)
	DeactivateCustomer(ctx context.Context, pumpID string, customerID string, userID string) error
}
