package mapping

import (
	"github.com/pumpsoft/fuel_station_backend/internal/core/domain"
	"github.com/pumpsoft/fuel_station_backend/internal/models"
)

// ToModelEmployee converts a domain Employee to a model Employee
func ToModelEmployee(d domain.Employee) models.Employee {
	return models.Employee{
		EmployeeID:  d.EmployeeID,
		PumpID:      d.PumpID,
		Name:        d.Name,
		Phone:       d.Phone,
		Designation: d.Designation,
		JoinedOn:    d.JoinedOn,
		IsActive:    d.IsActive,
		DeletedAt:   d.DeletedAt,
		AuditFields: ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainEmployee converts a model Employee to a domain Employee
func ToDomainEmployee(m models.Employee) domain.Employee {
	return domain.Employee{
		EmployeeID:  m.EmployeeID,
		PumpID:      m.PumpID,
		Name:        m.Name,
		Phone:       m.Phone,
		Designation: m.Designation,
		JoinedOn:    m.JoinedOn,
		IsActive:    m.IsActive,
		DeletedAt:   m.DeletedAt,
		AuditFields: ToDomainAuditFields(m.AuditFields),
	}
}
