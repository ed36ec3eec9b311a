package pgsql

import (
	"github.com/jackc/pgx/v5/pgxpool"
	portsrepo "github.com/pumpsoft/fuel_station_backend/internal/core/ports/repositories"
)

func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	accountRepo := newPgxAccountRepository(dbPool)
	voucherRepo := newPgxVoucherRepository(dbPool, accountRepo)
	ledgerRepo := newPgxLedgerRepository(dbPool)
	financialYearRepo := newPgxFinancialYearRepository(dbPool)
	pumpRepo := newPgxPumpRepository(dbPool)
	employeeRepo := newPgxEmployeeRepository(dbPool)
	customerRepo := newPgxCustomerRepository(dbPool)

	return portsrepo.RepositoryProvider{
		AccountRepo:       accountRepo,
		VoucherRepo:       voucherRepo,
		LedgerRepo:        ledgerRepo,
		FinancialYearRepo: financialYearRepo,
		PumpRepo:          pumpRepo,
		EmployeeRepo:      employeeRepo,
		CustomerRepo:      customerRepo,
	}
}
