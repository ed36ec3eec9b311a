package dto

import (
	"time"

	"github.com/pumpsoft/fuel_station_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateCustomerRequest defines the data needed to register a credit customer.
type CreateCustomerRequest struct {
	Name        string          `json:"name" binding:"required"`
	Phone       string          `json:"phone"`
	Address     string          `json:"address"`
	AccountID   *string         `json:"accountID"` // Linked receivable account, optional
	CreditLimit decimal.Decimal `json:"creditLimit"`
}

// UpdateCustomerRequest defines the data allowed for updating a customer.
type UpdateCustomerRequest struct {
	Name        *string          `json:"name"`
	Phone       *string          `json:"phone"`
	Address     *string          `json:"address"`
	CreditLimit *decimal.Decimal `json:"creditLimit"`
}

// CustomerResponse defines the data returned for a customer.
type CustomerResponse struct {
	CustomerID  string          `json:"customerID"`
	PumpID      string          `json:"pumpID"`
	Name        string          `json:"name"`
	Phone       string          `json:"phone"`
	Address     string          `json:"address"`
	AccountID   *string         `json:"accountID,omitempty"`
	CreditLimit decimal.Decimal `json:"creditLimit"`
	IsActive    bool            `json:"isActive"`
	CreatedAt   time.Time       `json:"createdAt"`
}

// ToCustomerResponse converts a domain.Customer to CustomerResponse
func ToCustomerResponse(c *domain.Customer) CustomerResponse {
	return CustomerResponse{
		CustomerID:  c.CustomerID,
		PumpID:      c.PumpID,
		Name:        c.Name,
		Phone:       c.Phone,
		Address:     c.Address,
		AccountID:   c.AccountID,
		CreditLimit: c.CreditLimit,
		IsActive:    c.IsActive,
		CreatedAt:   c.CreatedAt,
	}
}

// ListCustomersResponse wraps the customers of a pump.
type ListCustomersResponse struct {
	Customers []CustomerResponse `json:"customers"`
}
