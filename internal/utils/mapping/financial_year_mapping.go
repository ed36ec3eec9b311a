package mapping

import (
	"github.com/pumpsoft/fuel_station_backend/internal/core/domain"
	"github.com/pumpsoft/fuel_station_backend/internal/models"
)

// ToModelFinancialYear converts a domain FinancialYear to a model FinancialYear
func ToModelFinancialYear(d domain.FinancialYear) models.FinancialYear {
	return models.FinancialYear{
		FinancialYearID: d.FinancialYearID,
		Name:            d.Name,
		StartDate:       d.StartDate,
		EndDate:         d.EndDate,
		IsActive:        d.IsActive,
		PumpID:          d.PumpID,
		AuditFields:     ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainFinancialYear converts a model FinancialYear to a domain FinancialYear
func ToDomainFinancialYear(m models.FinancialYear) domain.FinancialYear {
	return domain.FinancialYear{
		FinancialYearID: m.FinancialYearID,
		Name:            m.Name,
		StartDate:       m.StartDate,
		EndDate:         m.EndDate,
		IsActive:        m.IsActive,
		PumpID:          m.PumpID,
		AuditFields:     ToDomainAuditFields(m.AuditFields),
	}
}
