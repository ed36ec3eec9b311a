package repositories

import (
	"context"
	"time"

	"github.com/pumpsoft/fuel_station_backend/internal/core/domain"
)

// CustomerRepositoryFacade defines persistence operations for credit customers.
type CustomerRepositoryFacade interface {
	SaveCustomer(ctx context.Context, customer domain.Customer) error
	FindCustomerByID(ctx context.Context, customerID string) (*domain.Customer, error)
	ListCustomersByPump(ctx context.Context, pumpID string, limit int, offset int) ([]domain.Customer, error)
	UpdateCustomer(ctx context.Context, customer domain.Customer) error
	DeactivateCustomer(ctx context.Context, customerID string, userID string, now time.Time) error
}
