package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/pumpsoft/fuel_station_backend/internal/apperrors"
	"github.com/pumpsoft/fuel_station_backend/internal/core/domain"
	portssvc "github.com/pumpsoft/fuel_station_backend/internal/core/ports/services"
	"github.com/pumpsoft/fuel_station_backend/internal/core/services"
	"github.com/pumpsoft/fuel_station_backend/internal/dto"
)

type AccountServiceTestSuite struct {
	suite.Suite
	mockAccountRepo *MockAccountRepository
	mockLedgerRepo  *MockLedgerRepository
	mockPumpSvc     *MockPumpService
	service         portssvc.AccountSvcFacade

	pumpID string
	userID string
}

func (suite *AccountServiceTestSuite) SetupTest() {
	suite.mockAccountRepo = new(MockAccountRepository)
	suite.mockLedgerRepo = new(MockLedgerRepository)
	suite.mockPumpSvc = new(MockPumpService)
	suite.service = services.NewAccountService(suite.mockAccountRepo, suite.mockLedgerRepo, suite.mockPumpSvc)

	suite.pumpID = uuid.NewString()
	suite.userID = uuid.NewString()
}

func (suite *AccountServiceTestSuite) TestCreateAccount_Success() {
	ctx := context.Background()
	req := dto.CreateAccountRequest{
		Code:           "1001",
		Name:           "Cash in Hand",
		AccountType:    domain.Asset,
		AccountGroup:   "Current Assets",
		OpeningBalance: decimal.NewFromInt(10000),
	}

	suite.mockPumpSvc.On("AssertPumpActive", ctx, suite.pumpID).Return(nil).Once()
	suite.mockAccountRepo.On("FindAccountByCode", ctx, suite.pumpID, "1001").Return(nil, apperrors.ErrNotFound).Once()
	suite.mockAccountRepo.On("SaveAccount", ctx, mock.AnythingOfType("domain.Account")).Return(nil).Once()

	account, err := suite.service.CreateAccount(ctx, suite.pumpID, req, suite.userID)

	suite.Require().NoError(err)
	suite.Require().NotNil(account)
	suite.Equal(suite.pumpID, account.PumpID)
	// Balance type defaults from the account type.
	suite.Equal(domain.DebitBalance, account.BalanceType)
	suite.True(account.CurrentBalance.Equal(req.OpeningBalance))
	suite.True(account.IsActive)
	suite.False(account.IsLocked)
	suite.mockAccountRepo.AssertExpectations(suite.T())
}

func (suite *AccountServiceTestSuite) TestCreateAccount_DuplicateCode() {
	ctx := context.Background()
	existing := &domain.Account{AccountID: uuid.NewString(), PumpID: suite.pumpID, Code: "1001"}
	req := dto.CreateAccountRequest{Code: "1001", Name: "Cash", AccountType: domain.Asset}

	suite.mockPumpSvc.On("AssertPumpActive", ctx, suite.pumpID).Return(nil).Once()
	suite.mockAccountRepo.On("FindAccountByCode", ctx, suite.pumpID, "1001").Return(existing, nil).Once()

	_, err := suite.service.CreateAccount(ctx, suite.pumpID, req, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, services.ErrDuplicateAccountCode)
	suite.ErrorIs(err, apperrors.ErrDuplicate)
	suite.mockAccountRepo.AssertNotCalled(suite.T(), "SaveAccount", mock.Anything, mock.Anything)
}

func (suite *AccountServiceTestSuite) TestCreateAccount_CreditBalanceDefault() {
	ctx := context.Background()
	req := dto.CreateAccountRequest{Code: "4001", Name: "Fuel Sales", AccountType: domain.Income}

	suite.mockPumpSvc.On("AssertPumpActive", ctx, suite.pumpID).Return(nil).Once()
	suite.mockAccountRepo.On("FindAccountByCode", ctx, suite.pumpID, "4001").Return(nil, apperrors.ErrNotFound).Once()
	suite.mockAccountRepo.On("SaveAccount", ctx, mock.AnythingOfType("domain.Account")).Return(nil).Once()

	account, err := suite.service.CreateAccount(ctx, suite.pumpID, req, suite.userID)

	suite.Require().NoError(err)
	suite.Equal(domain.CreditBalance, account.BalanceType)
}

func (suite *AccountServiceTestSuite) TestCreateAccount_ParentInOtherPump() {
	ctx := context.Background()
	parentID := uuid.NewString()
	parent := &domain.Account{AccountID: parentID, PumpID: uuid.NewString()}
	req := dto.CreateAccountRequest{Code: "1002", Name: "Till", AccountType: domain.Asset, ParentAccountID: &parentID}

	suite.mockPumpSvc.On("AssertPumpActive", ctx, suite.pumpID).Return(nil).Once()
	suite.mockAccountRepo.On("FindAccountByCode", ctx, suite.pumpID, "1002").Return(nil, apperrors.ErrNotFound).Once()
	suite.mockAccountRepo.On("FindAccountByID", ctx, parentID).Return(parent, nil).Once()

	_, err := suite.service.CreateAccount(ctx, suite.pumpID, req, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, services.ErrParentAccountInvalid)
}

func (suite *AccountServiceTestSuite) TestGetAccountByID_WrongPumpHidden() {
	ctx := context.Background()
	accountID := uuid.NewString()
	account := &domain.Account{AccountID: accountID, PumpID: uuid.NewString()}

	suite.mockAccountRepo.On("FindAccountByID", ctx, accountID).Return(account, nil).Once()

	_, err := suite.service.GetAccountByID(ctx, suite.pumpID, accountID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func (suite *AccountServiceTestSuite) TestResolveParentChain_Success() {
	ctx := context.Background()
	root := domain.Account{AccountID: uuid.NewString(), PumpID: suite.pumpID, Code: "1000"}
	child := domain.Account{AccountID: uuid.NewString(), PumpID: suite.pumpID, Code: "1001", ParentAccountID: root.AccountID}

	suite.mockAccountRepo.On("FindAccountByID", ctx, child.AccountID).Return(&child, nil).Once()
	suite.mockAccountRepo.On("FindAccountByID", ctx, root.AccountID).Return(&root, nil).Once()

	chain, err := suite.service.ResolveParentChain(ctx, suite.pumpID, child.AccountID)

	suite.Require().NoError(err)
	suite.Require().Len(chain, 2)
	suite.Equal(child.AccountID, chain[0].AccountID)
	suite.Equal(root.AccountID, chain[1].AccountID)
}

func (suite *AccountServiceTestSuite) TestResolveParentChain_CycleDetected() {
	ctx := context.Background()
	a := domain.Account{AccountID: uuid.NewString(), PumpID: suite.pumpID}
	b := domain.Account{AccountID: uuid.NewString(), PumpID: suite.pumpID}
	a.ParentAccountID = b.AccountID
	b.ParentAccountID = a.AccountID

	suite.mockAccountRepo.On("FindAccountByID", ctx, a.AccountID).Return(&a, nil)
	suite.mockAccountRepo.On("FindAccountByID", ctx, b.AccountID).Return(&b, nil)

	_, err := suite.service.ResolveParentChain(ctx, suite.pumpID, a.AccountID)

	suite.Require().Error(err)
	suite.ErrorIs(err, services.ErrAccountCycle)
}

func (suite *AccountServiceTestSuite) TestDeactivateAccount_SystemAccountRejected() {
	ctx := context.Background()
	accountID := uuid.NewString()
	account := &domain.Account{AccountID: accountID, PumpID: suite.pumpID, IsSystemAccount: true}

	suite.mockAccountRepo.On("FindAccountByID", ctx, accountID).Return(account, nil).Once()

	err := suite.service.DeactivateAccount(ctx, suite.pumpID, accountID, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, services.ErrSystemAccount)
	suite.ErrorIs(err, apperrors.ErrForbidden)
	suite.mockAccountRepo.AssertNotCalled(suite.T(), "DeactivateAccount", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *AccountServiceTestSuite) TestLockAccount_Success() {
	ctx := context.Background()
	accountID := uuid.NewString()
	account := &domain.Account{AccountID: accountID, PumpID: suite.pumpID, IsActive: true}

	suite.mockAccountRepo.On("FindAccountByID", ctx, accountID).Return(account, nil).Once()
	suite.mockAccountRepo.On("SetAccountLocked", ctx, accountID, true, suite.userID, mock.AnythingOfType("time.Time")).Return(nil).Once()

	err := suite.service.LockAccount(ctx, suite.pumpID, accountID, suite.userID)

	suite.Require().NoError(err)
	suite.mockAccountRepo.AssertExpectations(suite.T())
}

func (suite *AccountServiceTestSuite) TestBalanceAsOf_UsesLedgerNotCache() {
	ctx := context.Background()
	accountID := uuid.NewString()
	account := &domain.Account{
		AccountID:      accountID,
		PumpID:         suite.pumpID,
		OpeningBalance: decimal.NewFromInt(1000),
		CurrentBalance: decimal.NewFromInt(9999), // Cache must be ignored
	}
	asOf := time.Date(2025, 6, 15, 13, 45, 0, 0, time.UTC)
	entry := &domain.LedgerEntry{LedgerEntryID: uuid.NewString(), AccountID: accountID, RunningBalance: decimal.NewFromInt(4200)}

	suite.mockAccountRepo.On("FindAccountByID", ctx, accountID).Return(account, nil).Once()
	// The cutoff is the start of the day after asOf, so entries anywhere on
	// the asOf day are included.
	cutoff := time.Date(2025, 6, 16, 0, 0, 0, 0, time.UTC)
	suite.mockLedgerRepo.On("LastEntryBefore", ctx, accountID, cutoff).Return(entry, nil).Once()

	balance, err := suite.service.BalanceAsOf(ctx, suite.pumpID, accountID, asOf)

	suite.Require().NoError(err)
	suite.True(balance.Equal(decimal.NewFromInt(4200)))
	suite.mockLedgerRepo.AssertExpectations(suite.T())
}

func (suite *AccountServiceTestSuite) TestBalanceAsOf_NoEntriesFallsBackToOpening() {
	ctx := context.Background()
	accountID := uuid.NewString()
	account := &domain.Account{AccountID: accountID, PumpID: suite.pumpID, OpeningBalance: decimal.NewFromInt(1000)}

	suite.mockAccountRepo.On("FindAccountByID", ctx, accountID).Return(account, nil).Once()
	suite.mockLedgerRepo.On("LastEntryBefore", ctx, accountID, mock.AnythingOfType("time.Time")).Return(nil, nil).Once()

	balance, err := suite.service.BalanceAsOf(ctx, suite.pumpID, accountID, time.Now())

	suite.Require().NoError(err)
	suite.True(balance.Equal(decimal.NewFromInt(1000)))
}

func TestAccountServiceTestSuite(t *testing.T) {
	suite.Run(t, new(AccountServiceTestSuite))
}
