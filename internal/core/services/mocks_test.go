package services_test

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"

	"github.com/pumpsoft/fuel_station_backend/internal/core/domain"
	portsrepo "github.com/pumpsoft/fuel_station_backend/internal/core/ports/repositories"
	portssvc "github.com/pumpsoft/fuel_station_backend/internal/core/ports/services"
	"github.com/pumpsoft/fuel_station_backend/internal/dto"
)

// Shared hand-written mocks for the repository and service ports, used by all
// the service test suites in this package.

// --- Mock PumpRepository ---

type MockPumpRepository struct {
	mock.Mock
}

var _ portsrepo.PumpRepositoryFacade = (*MockPumpRepository)(nil)

func (m *MockPumpRepository) SavePump(ctx context.Context, pump domain.Pump) error {
	args := m.Called(ctx, pump)
	return args.Error(0)
}

func (m *MockPumpRepository) FindPumpByID(ctx context.Context, pumpID string) (*domain.Pump, error) {
	args := m.Called(ctx, pumpID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Pump), args.Error(1)
}

func (m *MockPumpRepository) ListPumps(ctx context.Context, limit int, offset int) ([]domain.Pump, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Pump), args.Error(1)
}

func (m *MockPumpRepository) UpdatePump(ctx context.Context, pump domain.Pump) error {
	args := m.Called(ctx, pump)
	return args.Error(0)
}

// --- Mock AccountRepository ---

type MockAccountRepository struct {
	mock.Mock
}

var _ portsrepo.AccountRepositoryFacade = (*MockAccountRepository)(nil)

func (m *MockAccountRepository) FindAccountByID(ctx context.Context, accountID string) (*domain.Account, error) {
	args := m.Called(ctx, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountRepository) FindAccountByCode(ctx context.Context, pumpID string, code string) (*domain.Account, error) {
	args := m.Called(ctx, pumpID, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountRepository) FindAccountsByIDs(ctx context.Context, accountIDs []string) (map[string]domain.Account, error) {
	args := m.Called(ctx, accountIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]domain.Account), args.Error(1)
}

func (m *MockAccountRepository) ListAccounts(ctx context.Context, pumpID string, limit int, offset int) ([]domain.Account, error) {
	args := m.Called(ctx, pumpID, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Account), args.Error(1)
}

func (m *MockAccountRepository) SaveAccount(ctx context.Context, account domain.Account) error {
	args := m.Called(ctx, account)
	return args.Error(0)
}

func (m *MockAccountRepository) UpdateAccount(ctx context.Context, account domain.Account) error {
	args := m.Called(ctx, account)
	return args.Error(0)
}

func (m *MockAccountRepository) SetAccountLocked(ctx context.Context, accountID string, locked bool, userID string, now time.Time) error {
	args := m.Called(ctx, accountID, locked, userID, now)
	return args.Error(0)
}

func (m *MockAccountRepository) DeactivateAccount(ctx context.Context, accountID string, userID string, now time.Time) error {
	args := m.Called(ctx, accountID, userID, now)
	return args.Error(0)
}

func (m *MockAccountRepository) FindAccountsByIDsForUpdate(ctx context.Context, tx pgx.Tx, accountIDs []string) (map[string]domain.Account, error) {
	args := m.Called(ctx, tx, accountIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]domain.Account), args.Error(1)
}

func (m *MockAccountRepository) UpdateAccountBalancesInTx(ctx context.Context, tx pgx.Tx, newBalances map[string]decimal.Decimal, userID string, now time.Time) error {
	args := m.Called(ctx, tx, newBalances, userID, now)
	return args.Error(0)
}

// --- Mock VoucherRepository ---

type MockVoucherRepository struct {
	mock.Mock
}

var _ portsrepo.VoucherRepositoryFacade = (*MockVoucherRepository)(nil)

func (m *MockVoucherRepository) FindVoucherByID(ctx context.Context, voucherID string) (*domain.Voucher, error) {
	args := m.Called(ctx, voucherID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Voucher), args.Error(1)
}

func (m *MockVoucherRepository) FindEntriesByVoucherID(ctx context.Context, voucherID string) ([]domain.VoucherEntry, error) {
	args := m.Called(ctx, voucherID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.VoucherEntry), args.Error(1)
}

func (m *MockVoucherRepository) ListVouchersByPump(ctx context.Context, pumpID string, status *domain.VoucherStatus, limit int, nextToken *string) ([]domain.Voucher, *string, error) {
	args := m.Called(ctx, pumpID, status, limit, nextToken)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	var returnedNextToken *string
	if args.Get(1) != nil {
		tokenVal := args.Get(1).(string)
		returnedNextToken = &tokenVal
	}
	return args.Get(0).([]domain.Voucher), returnedNextToken, args.Error(2)
}

func (m *MockVoucherRepository) SaveVoucher(ctx context.Context, voucher domain.Voucher, entries []domain.VoucherEntry) error {
	args := m.Called(ctx, voucher, entries)
	return args.Error(0)
}

func (m *MockVoucherRepository) ReplaceVoucherEntries(ctx context.Context, voucherID string, entries []domain.VoucherEntry, totalAmount decimal.Decimal, userID string, now time.Time) error {
	args := m.Called(ctx, voucherID, entries, totalAmount, userID, now)
	return args.Error(0)
}

func (m *MockVoucherRepository) UpdateVoucherStatus(ctx context.Context, voucherID string, from, to domain.VoucherStatus, reason string, userID string, now time.Time) error {
	args := m.Called(ctx, voucherID, from, to, reason, userID, now)
	return args.Error(0)
}

func (m *MockVoucherRepository) LinkReversal(ctx context.Context, originalVoucherID string, reversingVoucherID string, userID string, now time.Time) error {
	args := m.Called(ctx, originalVoucherID, reversingVoucherID, userID, now)
	return args.Error(0)
}

func (m *MockVoucherRepository) PostVoucher(ctx context.Context, voucher domain.Voucher, entries []domain.VoucherEntry, fyName string, postedBy string, now time.Time) (*portsrepo.PostingResult, error) {
	args := m.Called(ctx, voucher, entries, fyName, postedBy, now)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*portsrepo.PostingResult), args.Error(1)
}

// --- Mock LedgerRepository ---

type MockLedgerRepository struct {
	mock.Mock
}

var _ portsrepo.LedgerRepositoryFacade = (*MockLedgerRepository)(nil)

func (m *MockLedgerRepository) FindLedgerEntryByID(ctx context.Context, ledgerEntryID string) (*domain.LedgerEntry, error) {
	args := m.Called(ctx, ledgerEntryID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.LedgerEntry), args.Error(1)
}

func (m *MockLedgerRepository) LedgerEntriesForAccount(ctx context.Context, accountID string) ([]domain.LedgerEntry, error) {
	args := m.Called(ctx, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.LedgerEntry), args.Error(1)
}

func (m *MockLedgerRepository) LedgerEntriesForAccountBetween(ctx context.Context, accountID string, from, to time.Time) ([]domain.LedgerEntry, error) {
	args := m.Called(ctx, accountID, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.LedgerEntry), args.Error(1)
}

func (m *MockLedgerRepository) LastEntryBefore(ctx context.Context, accountID string, before time.Time) (*domain.LedgerEntry, error) {
	args := m.Called(ctx, accountID, before)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.LedgerEntry), args.Error(1)
}

func (m *MockLedgerRepository) UnreconciledEntries(ctx context.Context, accountID string) ([]domain.LedgerEntry, error) {
	args := m.Called(ctx, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.LedgerEntry), args.Error(1)
}

func (m *MockLedgerRepository) EntriesByVoucherID(ctx context.Context, voucherID string) ([]domain.LedgerEntry, error) {
	args := m.Called(ctx, voucherID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.LedgerEntry), args.Error(1)
}

func (m *MockLedgerRepository) MarkReconciled(ctx context.Context, ledgerEntryID string, userID string, asOf time.Time) (*domain.LedgerEntry, error) {
	args := m.Called(ctx, ledgerEntryID, userID, asOf)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.LedgerEntry), args.Error(1)
}

// --- Mock FinancialYearRepository ---

type MockFinancialYearRepository struct {
	mock.Mock
}

var _ portsrepo.FinancialYearRepositoryFacade = (*MockFinancialYearRepository)(nil)

func (m *MockFinancialYearRepository) FindFinancialYearByID(ctx context.Context, financialYearID string) (*domain.FinancialYear, error) {
	args := m.Called(ctx, financialYearID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.FinancialYear), args.Error(1)
}

func (m *MockFinancialYearRepository) FindActiveFinancialYear(ctx context.Context, pumpID string) (*domain.FinancialYear, error) {
	args := m.Called(ctx, pumpID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.FinancialYear), args.Error(1)
}

func (m *MockFinancialYearRepository) ListFinancialYears(ctx context.Context, pumpID string) ([]domain.FinancialYear, error) {
	args := m.Called(ctx, pumpID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.FinancialYear), args.Error(1)
}

func (m *MockFinancialYearRepository) SaveFinancialYear(ctx context.Context, fy domain.FinancialYear) error {
	args := m.Called(ctx, fy)
	return args.Error(0)
}

func (m *MockFinancialYearRepository) ActivateFinancialYear(ctx context.Context, financialYearID string, userID string) (*domain.FinancialYear, error) {
	args := m.Called(ctx, financialYearID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.FinancialYear), args.Error(1)
}

// --- Mock EmployeeRepository ---

type MockEmployeeRepository struct {
	mock.Mock
}

var _ portsrepo.EmployeeRepositoryFacade = (*MockEmployeeRepository)(nil)

func (m *MockEmployeeRepository) SaveEmployee(ctx context.Context, employee domain.Employee) error {
	args := m.Called(ctx, employee)
	return args.Error(0)
}

func (m *MockEmployeeRepository) FindEmployeeByID(ctx context.Context, employeeID string) (*domain.Employee, error) {
	args := m.Called(ctx, employeeID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Employee), args.Error(1)
}

func (m *MockEmployeeRepository) ListEmployeesByPump(ctx context.Context, pumpID string, limit int, offset int) ([]domain.Employee, error) {
	args := m.Called(ctx, pumpID, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Employee), args.Error(1)
}

func (m *MockEmployeeRepository) UpdateEmployee(ctx context.Context, employee domain.Employee) error {
	args := m.Called(ctx, employee)
	return args.Error(0)
}

func (m *MockEmployeeRepository) DeactivateEmployee(ctx context.Context, employeeID string, userID string, now time.Time) error {
	args := m.Called(ctx, employeeID, userID, now)
	return args.Error(0)
}

// --- Mock CustomerRepository ---

type MockCustomerRepository struct {
	mock.Mock
}

var _ portsrepo.CustomerRepositoryFacade = (*MockCustomerRepository)(nil)

func (m *MockCustomerRepository) SaveCustomer(ctx context.Context, customer domain.Customer) error {
	args := m.Called(ctx, customer)
	return args.Error(0)
}

func (m *MockCustomerRepository) FindCustomerByID(ctx context.Context, customerID string) (*domain.Customer, error) {
	args := m.Called(ctx, customerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Customer), args.Error(1)
}

func (m *MockCustomerRepository) ListCustomersByPump(ctx context.Context, pumpID string, limit int, offset int) ([]domain.Customer, error) {
	args := m.Called(ctx, pumpID, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Customer), args.Error(1)
}

func (m *MockCustomerRepository) UpdateCustomer(ctx context.Context, customer domain.Customer) error {
	args := m.Called(ctx, customer)
	return args.Error(0)
}

func (m *MockCustomerRepository) DeactivateCustomer(ctx context.Context, customerID string, userID string, now time.Time) error {
	args := m.Called(ctx, customerID, userID, now)
	return args.Error(0)
}

// --- Mock PumpService ---

type MockPumpService struct {
	mock.Mock
}

var _ portssvc.PumpSvcFacade = (*MockPumpService)(nil)

func (m *MockPumpService) CreatePump(ctx context.Context, req dto.CreatePumpRequest, userID string) (*domain.Pump, error) {
	args := m.Called(ctx, req, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Pump), args.Error(1)
}

func (m *MockPumpService) GetPumpByID(ctx context.Context, pumpID string) (*domain.Pump, error) {
	args := m.Called(ctx, pumpID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Pump), args.Error(1)
}

func (m *MockPumpService) ListPumps(ctx context.Context, limit int, offset int) ([]domain.Pump, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Pump), args.Error(1)
}

func (m *MockPumpService) UpdatePump(ctx context.Context, pumpID string, req dto.UpdatePumpRequest, userID string) (*domain.Pump, error) {
	args := m.Called(ctx, pumpID, req, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Pump), args.Error(1)
}

func (m *MockPumpService) AssertPumpActive(ctx context.Context, pumpID string) error {
	args := m.Called(ctx, pumpID)
	return args.Error(0)
}

// --- Mock AccountService ---

type MockAccountService struct {
	mock.Mock
}

var _ portssvc.AccountSvcFacade = (*MockAccountService)(nil)

func (m *MockAccountService) GetAccountByID(ctx context.Context, pumpID string, accountID string) (*domain.Account, error) {
	args := m.Called(ctx, pumpID, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountService) GetAccountsByIDs(ctx context.Context, pumpID string, accountIDs []string) (map[string]domain.Account, error) {
	args := m.Called(ctx, pumpID, accountIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]domain.Account), args.Error(1)
}

func (m *MockAccountService) ListAccounts(ctx context.Context, pumpID string, limit int, offset int) ([]domain.Account, error) {
	args := m.Called(ctx, pumpID, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Account), args.Error(1)
}

func (m *MockAccountService) ResolveParentChain(ctx context.Context, pumpID string, accountID string) ([]domain.Account, error) {
	args := m.Called(ctx, pumpID, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Account), args.Error(1)
}

func (m *MockAccountService) CreateAccount(ctx context.Context, pumpID string, req dto.CreateAccountRequest, userID string) (*domain.Account, error) {
	args := m.Called(ctx, pumpID, req, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountService) UpdateAccount(ctx context.Context, pumpID string, accountID string, req dto.UpdateAccountRequest, userID string) (*domain.Account, error) {
	args := m.Called(ctx, pumpID, accountID, req, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountService) LockAccount(ctx context.Context, pumpID string, accountID string, userID string) error {
	args := m.Called(ctx, pumpID, accountID, userID)
	return args.Error(0)
}

func (m *MockAccountService) UnlockAccount(ctx context.Context, pumpID string, accountID string, userID string) error {
	args := m.Called(ctx, pumpID, accountID, userID)
	return args.Error(0)
}

func (m *MockAccountService) DeactivateAccount(ctx context.Context, pumpID string, accountID string, userID string) error {
	args := m.Called(ctx, pumpID, accountID, userID)
	return args.Error(0)
}

func (m *MockAccountService) BalanceAsOf(ctx context.Context, pumpID string, accountID string, asOf time.Time) (decimal.Decimal, error) {
	args := m.Called(ctx, pumpID, accountID, asOf)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

// --- Mock FinancialYearService ---

type MockFinancialYearService struct {
	mock.Mock
}

var _ portssvc.FinancialYearSvcFacade = (*MockFinancialYearService)(nil)

func (m *MockFinancialYearService) CreateFinancialYear(ctx context.Context, pumpID string, req dto.CreateFinancialYearRequest, userID string) (*domain.FinancialYear, error) {
	args := m.Called(ctx, pumpID, req, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.FinancialYear), args.Error(1)
}

func (m *MockFinancialYearService) ActivateFinancialYear(ctx context.Context, financialYearID string, userID string) (*domain.FinancialYear, error) {
	args := m.Called(ctx, financialYearID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.FinancialYear), args.Error(1)
}

func (m *MockFinancialYearService) GetActiveFinancialYear(ctx context.Context, pumpID string) (*domain.FinancialYear, error) {
	args := m.Called(ctx, pumpID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.FinancialYear), args.Error(1)
}

func (m *MockFinancialYearService) ListFinancialYears(ctx context.Context, pumpID string) ([]domain.FinancialYear, error) {
	args := m.Called(ctx, pumpID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.FinancialYear), args.Error(1)
}

func (m *MockFinancialYearService) Classify(ctx context.Context, pumpID string, date time.Time) (domain.DateClass, error) {
	args := m.Called(ctx, pumpID, date)
	return args.Get(0).(domain.DateClass), args.Error(1)
}

func (m *MockFinancialYearService) AssertOpenPeriod(ctx context.Context, pumpID string, date time.Time) error {
	args := m.Called(ctx, pumpID, date)
	return args.Error(0)
}
