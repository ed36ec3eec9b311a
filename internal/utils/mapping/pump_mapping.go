package mapping

import (
	"github.com/pumpsoft/fuel_station_backend/internal/core/domain"
	"github.com/pumpsoft/fuel_station_backend/internal/models"
)

// ToModelPump converts a domain Pump to a model Pump
func ToModelPump(d domain.Pump) models.Pump {
	return models.Pump{
		PumpID:      d.PumpID,
		Name:        d.Name,
		Address:     d.Address,
		GSTIN:       d.GSTIN,
		IsActive:    d.IsActive,
		AuditFields: ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainPump converts a model Pump to a domain Pump
func ToDomainPump(m models.Pump) domain.Pump {
	return domain.Pump{
		PumpID:      m.PumpID,
		Name:        m.Name,
		Address:     m.Address,
		GSTIN:       m.GSTIN,
		IsActive:    m.IsActive,
		AuditFields: ToDomainAuditFields(m.AuditFields),
	}
}
