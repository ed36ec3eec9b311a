package mapping

import (
	"github.com/pumpsoft/fuel_station_backend/internal/core/domain"
	"github.com/pumpsoft/fuel_station_backend/internal/models"
)

// ToModelAccount converts a domain Account to a model Account
func ToModelAccount(d domain.Account) models.Account {
	return models.Account{
		AccountID:         d.AccountID,
		PumpID:            d.PumpID,
		Code:              d.Code,
		Name:              d.Name,
		AccountType:       models.AccountType(d.AccountType),
		AccountGroup:      d.AccountGroup,
		BalanceType:       models.BalanceType(d.BalanceType),
		OpeningBalance:    d.OpeningBalance,
		CurrentBalance:    d.CurrentBalance,
		ReconciledBalance: d.ReconciledBalance,
		ParentAccountID:   d.ParentAccountID,
		Description:       d.Description,
		IsSystemAccount:   d.IsSystemAccount,
		IsActive:          d.IsActive,
		IsLocked:          d.IsLocked,
		AuditFields:       ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainAccount converts a model Account to a domain Account
func ToDomainAccount(m models.Account) domain.Account {
	return domain.Account{
		AccountID:         m.AccountID,
		PumpID:            m.PumpID,
		Code:              m.Code,
		Name:              m.Name,
		AccountType:       domain.AccountType(m.AccountType),
		AccountGroup:      m.AccountGroup,
		BalanceType:       domain.BalanceType(m.BalanceType),
		OpeningBalance:    m.OpeningBalance,
		CurrentBalance:    m.CurrentBalance,
		ReconciledBalance: m.ReconciledBalance,
		ParentAccountID:   m.ParentAccountID,
		Description:       m.Description,
		IsSystemAccount:   m.IsSystemAccount,
		IsActive:          m.IsActive,
		IsLocked:          m.IsLocked,
		AuditFields:       ToDomainAuditFields(m.AuditFields),
	}
}
