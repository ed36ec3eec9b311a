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
)

type LedgerServiceTestSuite struct {
	suite.Suite
	mockLedgerRepo *MockLedgerRepository
	mockAccountSvc *MockAccountService
	ledgerSvc      portssvc.LedgerSvcFacade
	reconSvc       portssvc.ReconciliationSvcFacade

	pumpID    string
	userID    string
	accountID string
	account   domain.Account
}

func (suite *LedgerServiceTestSuite) SetupTest() {
	suite.mockLedgerRepo = new(MockLedgerRepository)
	suite.mockAccountSvc = new(MockAccountService)
	suite.ledgerSvc = services.NewLedgerService(suite.mockLedgerRepo, suite.mockAccountSvc)
	suite.reconSvc = services.NewReconciliationService(suite.mockLedgerRepo, suite.ledgerSvc, suite.mockAccountSvc)

	suite.pumpID = uuid.NewString()
	suite.userID = uuid.NewString()
	suite.accountID = uuid.NewString()
	suite.account = domain.Account{
		AccountID:      suite.accountID,
		PumpID:         suite.pumpID,
		BalanceType:    domain.DebitBalance,
		OpeningBalance: decimal.NewFromInt(1000),
		IsActive:       true,
	}
}

func (suite *LedgerServiceTestSuite) TestGetStatement_Success() {
	ctx := context.Background()
	from := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2025, 6, 30, 0, 0, 0, 0, time.UTC)
	prior := &domain.LedgerEntry{LedgerEntryID: uuid.NewString(), AccountID: suite.accountID, RunningBalance: decimal.NewFromInt(1500)}
	entries := []domain.LedgerEntry{
		{LedgerEntryID: uuid.NewString(), EntryNo: 10, AccountID: suite.accountID, RunningBalance: decimal.NewFromInt(2000)},
		{LedgerEntryID: uuid.NewString(), EntryNo: 11, AccountID: suite.accountID, RunningBalance: decimal.NewFromInt(1800)},
	}

	suite.mockAccountSvc.On("GetAccountByID", ctx, suite.pumpID, suite.accountID).Return(&suite.account, nil).Once()
	suite.mockLedgerRepo.On("LastEntryBefore", ctx, suite.accountID, from).Return(prior, nil).Once()
	suite.mockLedgerRepo.On("LedgerEntriesForAccountBetween", ctx, suite.accountID, from, to).Return(entries, nil).Once()

	statement, err := suite.ledgerSvc.GetStatement(ctx, suite.pumpID, suite.accountID, from, to)

	suite.Require().NoError(err)
	suite.True(statement.OpeningBalance.Equal(decimal.NewFromInt(1500)))
	suite.True(statement.ClosingBalance.Equal(decimal.NewFromInt(1800)))
	suite.Len(statement.Entries, 2)
	suite.mockLedgerRepo.AssertExpectations(suite.T())
}

func (suite *LedgerServiceTestSuite) TestGetStatement_NoPriorActivityUsesOpeningBalance() {
	ctx := context.Background()
	from := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2025, 6, 30, 0, 0, 0, 0, time.UTC)

	suite.mockAccountSvc.On("GetAccountByID", ctx, suite.pumpID, suite.accountID).Return(&suite.account, nil).Once()
	suite.mockLedgerRepo.On("LastEntryBefore", ctx, suite.accountID, from).Return(nil, nil).Once()
	suite.mockLedgerRepo.On("LedgerEntriesForAccountBetween", ctx, suite.accountID, from, to).Return([]domain.LedgerEntry{}, nil).Once()

	statement, err := suite.ledgerSvc.GetStatement(ctx, suite.pumpID, suite.accountID, from, to)

	suite.Require().NoError(err)
	suite.True(statement.OpeningBalance.Equal(decimal.NewFromInt(1000)))
	suite.True(statement.ClosingBalance.Equal(decimal.NewFromInt(1000)))
	suite.Empty(statement.Entries)
}

func (suite *LedgerServiceTestSuite) TestGetStatement_BadRange() {
	ctx := context.Background()
	from := time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)

	_, err := suite.ledgerSvc.GetStatement(ctx, suite.pumpID, suite.accountID, from, to)

	suite.Require().Error(err)
	suite.ErrorIs(err, services.ErrStatementRange)
	suite.mockLedgerRepo.AssertNotCalled(suite.T(), "LedgerEntriesForAccountBetween", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *LedgerServiceTestSuite) TestGetLedgerEntry_WrongPumpHidden() {
	ctx := context.Background()
	entryID := uuid.NewString()
	entry := &domain.LedgerEntry{LedgerEntryID: entryID, PumpID: uuid.NewString()}

	suite.mockLedgerRepo.On("FindLedgerEntryByID", ctx, entryID).Return(entry, nil).Once()

	_, err := suite.ledgerSvc.GetLedgerEntry(ctx, suite.pumpID, entryID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func (suite *LedgerServiceTestSuite) TestReconcile_Success() {
	ctx := context.Background()
	entryID := uuid.NewString()
	asOf := time.Date(2025, 6, 20, 0, 0, 0, 0, time.UTC)
	entry := &domain.LedgerEntry{LedgerEntryID: entryID, PumpID: suite.pumpID, AccountID: suite.accountID, RunningBalance: decimal.NewFromInt(1800)}
	reconciled := *entry
	reconciled.IsReconciled = true
	reconciled.ReconciledAt = &asOf
	reconciled.ReconciledBy = suite.userID

	suite.mockLedgerRepo.On("FindLedgerEntryByID", ctx, entryID).Return(entry, nil).Once()
	suite.mockLedgerRepo.On("MarkReconciled", ctx, entryID, suite.userID, asOf).Return(&reconciled, nil).Once()

	result, err := suite.reconSvc.Reconcile(ctx, suite.pumpID, entryID, suite.userID, asOf)

	suite.Require().NoError(err)
	suite.True(result.IsReconciled)
	suite.Equal(suite.userID, result.ReconciledBy)
	suite.mockLedgerRepo.AssertExpectations(suite.T())
}

func (suite *LedgerServiceTestSuite) TestReconcile_AlreadyReconciled() {
	ctx := context.Background()
	entryID := uuid.NewString()
	entry := &domain.LedgerEntry{LedgerEntryID: entryID, PumpID: suite.pumpID, AccountID: suite.accountID, IsReconciled: true}

	suite.mockLedgerRepo.On("FindLedgerEntryByID", ctx, entryID).Return(entry, nil).Once()

	_, err := suite.reconSvc.Reconcile(ctx, suite.pumpID, entryID, suite.userID, time.Now())

	suite.Require().Error(err)
	suite.ErrorIs(err, services.ErrAlreadyReconciled)
	suite.ErrorIs(err, apperrors.ErrInvalidState)
	suite.mockLedgerRepo.AssertNotCalled(suite.T(), "MarkReconciled", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *LedgerServiceTestSuite) TestUnreconciled_Success() {
	ctx := context.Background()
	entries := []domain.LedgerEntry{
		{LedgerEntryID: uuid.NewString(), PumpID: suite.pumpID, AccountID: suite.accountID},
	}

	suite.mockAccountSvc.On("GetAccountByID", ctx, suite.pumpID, suite.accountID).Return(&suite.account, nil).Once()
	suite.mockLedgerRepo.On("UnreconciledEntries", ctx, suite.accountID).Return(entries, nil).Once()

	result, err := suite.reconSvc.Unreconciled(ctx, suite.pumpID, suite.accountID)

	suite.Require().NoError(err)
	suite.Len(result, 1)
}

func TestLedgerServiceTestSuite(t *testing.T) {
	suite.Run(t, new(LedgerServiceTestSuite))
}
