package mapping

import (
	"github.com/pumpsoft/fuel_station_backend/internal/core/domain"
	"github.com/pumpsoft/fuel_station_backend/internal/models"
)

// ToModelCustomer converts a domain Customer to a model Customer
func ToModelCustomer(d domain.Customer) models.Customer {
	return models.Customer{
		CustomerID:  d.CustomerID,
		PumpID:      d.PumpID,
		Name:        d.Name,
		Phone:       d.Phone,
		Address:     d.Address,
		AccountID:   d.AccountID,
		CreditLimit: d.CreditLimit,
		IsActive:    d.IsActive,
		AuditFields: ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainCustomer converts a model Customer to a domain Customer
func ToDomainCustomer(m models.Customer) domain.Customer {
	return domain.Customer{
		CustomerID:  m.CustomerID,
		PumpID:      m.PumpID,
		Name:        m.Name,
		Phone:       m.Phone,
		Address:     m.Address,
		AccountID:   m.AccountID,
		CreditLimit: m.CreditLimit,
		IsActive:    m.IsActive,
		AuditFields: ToDomainAuditFields(m.AuditFields),
	}
}
