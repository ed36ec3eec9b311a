package services

import (
	portsrepo "github.com/pumpsoft/fuel_station_backend/internal/core/ports/repositories"
	portssvc "github.com/pumpsoft/fuel_station_backend/internal/core/ports/services"
)

// NewServiceContainer wires the services and their dependencies into the
// container the handlers consume. enforceOpenPeriod controls whether posting
// rejects voucher dates outside the active financial year.
func NewServiceContainer(repos portsrepo.RepositoryProvider, enforceOpenPeriod bool) *portssvc.ServiceContainer {
	pumpSvc := NewPumpService(repos.PumpRepo)
	accountSvc := NewAccountService(repos.AccountRepo, repos.LedgerRepo, pumpSvc)
	fySvc := NewFinancialYearService(repos.FinancialYearRepo, pumpSvc)
	voucherSvc := NewVoucherService(repos.VoucherRepo, accountSvc, fySvc, pumpSvc, enforceOpenPeriod)
	ledgerSvc := NewLedgerService(repos.LedgerRepo, accountSvc)
	reconciliationSvc := NewReconciliationService(repos.LedgerRepo, ledgerSvc, accountSvc)
	employeeSvc := NewEmployeeService(repos.EmployeeRepo, pumpSvc)
	customerSvc := NewCustomerService(repos.CustomerRepo, accountSvc, pumpSvc)

	return &portssvc.ServiceContainer{
		Pump:           pumpSvc,
		Employee:       employeeSvc,
		Customer:       customerSvc,
		Account:        accountSvc,
		Voucher:        voucherSvc,
		Ledger:         ledgerSvc,
		Reconciliation: reconciliationSvc,
		FinancialYear:  fySvc,
	}
}
