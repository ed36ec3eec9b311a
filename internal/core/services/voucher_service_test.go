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
	portsrepo "github.com/pumpsoft/fuel_station_backend/internal/core/ports/repositories"
	portssvc "github.com/pumpsoft/fuel_station_backend/internal/core/ports/services"
	"github.com/pumpsoft/fuel_station_backend/internal/core/services"
	"github.com/pumpsoft/fuel_station_backend/internal/dto"
)

type VoucherServiceTestSuite struct {
	suite.Suite
	mockVoucherRepo *MockVoucherRepository
	mockAccountSvc  *MockAccountService
	mockFYSvc       *MockFinancialYearService
	mockPumpSvc     *MockPumpService
	service         portssvc.VoucherSvcFacade

	pumpID       string
	userID       string
	cashAccount  domain.Account
	salesAccount domain.Account
	activeYear   domain.FinancialYear
}

func (suite *VoucherServiceTestSuite) SetupTest() {
	suite.mockVoucherRepo = new(MockVoucherRepository)
	suite.mockAccountSvc = new(MockAccountService)
	suite.mockFYSvc = new(MockFinancialYearService)
	suite.mockPumpSvc = new(MockPumpService)
	suite.service = services.NewVoucherService(suite.mockVoucherRepo, suite.mockAccountSvc, suite.mockFYSvc, suite.mockPumpSvc, false)

	suite.pumpID = uuid.NewString()
	suite.userID = uuid.NewString()

	suite.cashAccount = domain.Account{
		AccountID:   uuid.NewString(),
		PumpID:      suite.pumpID,
		Code:        "1001",
		AccountType: domain.Asset,
		BalanceType: domain.DebitBalance,
		IsActive:    true,
	}
	suite.salesAccount = domain.Account{
		AccountID:   uuid.NewString(),
		PumpID:      suite.pumpID,
		Code:        "4001",
		AccountType: domain.Income,
		BalanceType: domain.CreditBalance,
		IsActive:    true,
	}
	suite.activeYear = domain.FinancialYear{
		FinancialYearID: uuid.NewString(),
		Name:            "FY2025-26",
		StartDate:       time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC),
		EndDate:         time.Date(2026, 3, 31, 0, 0, 0, 0, time.UTC),
		IsActive:        true,
	}
}

func (suite *VoucherServiceTestSuite) accountsMap() map[string]domain.Account {
	return map[string]domain.Account{
		suite.cashAccount.AccountID:  suite.cashAccount,
		suite.salesAccount.AccountID: suite.salesAccount,
	}
}

func (suite *VoucherServiceTestSuite) balancedEntries(voucherID string, amount decimal.Decimal) []domain.VoucherEntry {
	return []domain.VoucherEntry{
		{EntryID: uuid.NewString(), VoucherID: voucherID, AccountID: suite.cashAccount.AccountID, EntryType: domain.Debit, Amount: amount, LineNo: 1},
		{EntryID: uuid.NewString(), VoucherID: voucherID, AccountID: suite.salesAccount.AccountID, EntryType: domain.Credit, Amount: amount, LineNo: 2},
	}
}

// --- CreateDraftVoucher ---

func (suite *VoucherServiceTestSuite) TestCreateDraftVoucher_Success() {
	ctx := context.Background()
	req := dto.CreateVoucherRequest{
		VoucherType: domain.Sales,
		Date:        time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC),
		Narration:   "Fuel sale, shift A",
		Entries: []dto.CreateVoucherEntryRequest{
			{AccountID: suite.cashAccount.AccountID, EntryType: domain.Debit, Amount: decimal.NewFromInt(500)},
			{AccountID: suite.salesAccount.AccountID, EntryType: domain.Credit, Amount: decimal.NewFromInt(500)},
		},
	}

	suite.mockPumpSvc.On("AssertPumpActive", ctx, suite.pumpID).Return(nil).Once()
	suite.mockAccountSvc.On("GetAccountsByIDs", ctx, suite.pumpID, []string{suite.cashAccount.AccountID, suite.salesAccount.AccountID}).Return(suite.accountsMap(), nil).Once()
	suite.mockVoucherRepo.On("SaveVoucher", ctx, mock.AnythingOfType("domain.Voucher"), mock.AnythingOfType("[]domain.VoucherEntry")).Return(nil).Once()

	voucher, err := suite.service.CreateDraftVoucher(ctx, suite.pumpID, req, suite.userID)

	suite.Require().NoError(err)
	suite.Require().NotNil(voucher)
	suite.Equal(domain.VoucherDraft, voucher.Status)
	suite.Empty(voucher.VoucherNumber) // Numbers are assigned at posting
	suite.True(voucher.TotalAmount.Equal(decimal.NewFromInt(500)))
	suite.Len(voucher.Entries, 2)
	suite.Equal(1, voucher.Entries[0].LineNo)
	suite.Equal(2, voucher.Entries[1].LineNo)

	suite.mockVoucherRepo.AssertExpectations(suite.T())
	suite.mockAccountSvc.AssertExpectations(suite.T())
	suite.mockPumpSvc.AssertExpectations(suite.T())
}

func (suite *VoucherServiceTestSuite) TestCreateDraftVoucher_UnbalancedStillDraft() {
	// A draft may be saved unbalanced; balance is enforced at approval.
	ctx := context.Background()
	req := dto.CreateVoucherRequest{
		VoucherType: domain.JournalVoucher,
		Date:        time.Now(),
		Narration:   "Partial capture",
		Entries: []dto.CreateVoucherEntryRequest{
			{AccountID: suite.cashAccount.AccountID, EntryType: domain.Debit, Amount: decimal.NewFromInt(300)},
			{AccountID: suite.salesAccount.AccountID, EntryType: domain.Credit, Amount: decimal.NewFromInt(100)},
		},
	}

	suite.mockPumpSvc.On("AssertPumpActive", ctx, suite.pumpID).Return(nil).Once()
	suite.mockAccountSvc.On("GetAccountsByIDs", ctx, suite.pumpID, mock.Anything).Return(suite.accountsMap(), nil).Once()
	suite.mockVoucherRepo.On("SaveVoucher", ctx, mock.AnythingOfType("domain.Voucher"), mock.AnythingOfType("[]domain.VoucherEntry")).Return(nil).Once()

	voucher, err := suite.service.CreateDraftVoucher(ctx, suite.pumpID, req, suite.userID)

	suite.Require().NoError(err)
	suite.Equal(domain.VoucherDraft, voucher.Status)
	suite.True(voucher.TotalAmount.Equal(decimal.NewFromInt(300)))
}

func (suite *VoucherServiceTestSuite) TestCreateDraftVoucher_NonPositiveAmount() {
	ctx := context.Background()
	req := dto.CreateVoucherRequest{
		VoucherType: domain.Receipt,
		Date:        time.Now(),
		Narration:   "Bad line",
		Entries: []dto.CreateVoucherEntryRequest{
			{AccountID: suite.cashAccount.AccountID, EntryType: domain.Debit, Amount: decimal.Zero},
			{AccountID: suite.salesAccount.AccountID, EntryType: domain.Credit, Amount: decimal.NewFromInt(100)},
		},
	}

	suite.mockPumpSvc.On("AssertPumpActive", ctx, suite.pumpID).Return(nil).Once()

	_, err := suite.service.CreateDraftVoucher(ctx, suite.pumpID, req, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, services.ErrInvalidAmount)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockVoucherRepo.AssertNotCalled(suite.T(), "SaveVoucher", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *VoucherServiceTestSuite) TestCreateDraftVoucher_LockedAccount() {
	ctx := context.Background()
	locked := suite.cashAccount
	locked.IsLocked = true
	accounts := map[string]domain.Account{
		locked.AccountID:             locked,
		suite.salesAccount.AccountID: suite.salesAccount,
	}
	req := dto.CreateVoucherRequest{
		VoucherType: domain.Receipt,
		Date:        time.Now(),
		Narration:   "Locked target",
		Entries: []dto.CreateVoucherEntryRequest{
			{AccountID: locked.AccountID, EntryType: domain.Debit, Amount: decimal.NewFromInt(100)},
			{AccountID: suite.salesAccount.AccountID, EntryType: domain.Credit, Amount: decimal.NewFromInt(100)},
		},
	}

	suite.mockPumpSvc.On("AssertPumpActive", ctx, suite.pumpID).Return(nil).Once()
	suite.mockAccountSvc.On("GetAccountsByIDs", ctx, suite.pumpID, mock.Anything).Return(accounts, nil).Once()

	_, err := suite.service.CreateDraftVoucher(ctx, suite.pumpID, req, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, services.ErrAccountNotPostable)
	suite.mockVoucherRepo.AssertNotCalled(suite.T(), "SaveVoucher", mock.Anything, mock.Anything, mock.Anything)
}

// --- AddVoucherEntry ---

func (suite *VoucherServiceTestSuite) TestAddVoucherEntry_Success() {
	ctx := context.Background()
	voucherID := uuid.NewString()
	voucher := &domain.Voucher{VoucherID: voucherID, PumpID: suite.pumpID, Status: domain.VoucherDraft}
	existing := []domain.VoucherEntry{
		{EntryID: uuid.NewString(), VoucherID: voucherID, AccountID: suite.cashAccount.AccountID, EntryType: domain.Debit, Amount: decimal.NewFromInt(200), LineNo: 1},
	}
	req := dto.AddVoucherEntryRequest{AccountID: suite.salesAccount.AccountID, EntryType: domain.Credit, Amount: decimal.NewFromInt(200)}

	suite.mockVoucherRepo.On("FindVoucherByID", ctx, voucherID).Return(voucher, nil).Once()
	suite.mockAccountSvc.On("GetAccountsByIDs", ctx, suite.pumpID, []string{suite.salesAccount.AccountID}).
		Return(map[string]domain.Account{suite.salesAccount.AccountID: suite.salesAccount}, nil).Once()
	suite.mockVoucherRepo.On("FindEntriesByVoucherID", ctx, voucherID).Return(existing, nil).Once()
	suite.mockVoucherRepo.On("ReplaceVoucherEntries", ctx, voucherID, mock.AnythingOfType("[]domain.VoucherEntry"), mock.AnythingOfType("decimal.Decimal"), suite.userID, mock.AnythingOfType("time.Time")).Return(nil).Once()

	updated, err := suite.service.AddVoucherEntry(ctx, suite.pumpID, voucherID, req, suite.userID)

	suite.Require().NoError(err)
	suite.Len(updated.Entries, 2)
	suite.Equal(2, updated.Entries[1].LineNo)
	suite.True(updated.TotalAmount.Equal(decimal.NewFromInt(200)))
	suite.mockVoucherRepo.AssertExpectations(suite.T())
}

func (suite *VoucherServiceTestSuite) TestAddVoucherEntry_NotDraft() {
	ctx := context.Background()
	voucherID := uuid.NewString()
	voucher := &domain.Voucher{VoucherID: voucherID, PumpID: suite.pumpID, Status: domain.VoucherApproved}
	req := dto.AddVoucherEntryRequest{AccountID: suite.salesAccount.AccountID, EntryType: domain.Credit, Amount: decimal.NewFromInt(200)}

	suite.mockVoucherRepo.On("FindVoucherByID", ctx, voucherID).Return(voucher, nil).Once()

	_, err := suite.service.AddVoucherEntry(ctx, suite.pumpID, voucherID, req, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, services.ErrNotDraft)
	suite.ErrorIs(err, apperrors.ErrInvalidState)
	suite.mockVoucherRepo.AssertNotCalled(suite.T(), "ReplaceVoucherEntries", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *VoucherServiceTestSuite) TestAddVoucherEntry_WrongPumpHidden() {
	ctx := context.Background()
	voucherID := uuid.NewString()
	voucher := &domain.Voucher{VoucherID: voucherID, PumpID: uuid.NewString(), Status: domain.VoucherDraft}
	req := dto.AddVoucherEntryRequest{AccountID: suite.salesAccount.AccountID, EntryType: domain.Credit, Amount: decimal.NewFromInt(200)}

	suite.mockVoucherRepo.On("FindVoucherByID", ctx, voucherID).Return(voucher, nil).Once()

	_, err := suite.service.AddVoucherEntry(ctx, suite.pumpID, voucherID, req, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrNotFound)
}

// --- ApproveVoucher ---

func (suite *VoucherServiceTestSuite) TestApproveVoucher_Success() {
	ctx := context.Background()
	voucherID := uuid.NewString()
	voucher := &domain.Voucher{VoucherID: voucherID, PumpID: suite.pumpID, Status: domain.VoucherDraft}
	entries := suite.balancedEntries(voucherID, decimal.NewFromInt(750))

	suite.mockVoucherRepo.On("FindVoucherByID", ctx, voucherID).Return(voucher, nil).Once()
	suite.mockVoucherRepo.On("FindEntriesByVoucherID", ctx, voucherID).Return(entries, nil).Once()
	suite.mockAccountSvc.On("GetAccountsByIDs", ctx, suite.pumpID, mock.Anything).Return(suite.accountsMap(), nil).Once()
	suite.mockVoucherRepo.On("UpdateVoucherStatus", ctx, voucherID, domain.VoucherDraft, domain.VoucherApproved, "", suite.userID, mock.AnythingOfType("time.Time")).Return(nil).Once()

	approved, err := suite.service.ApproveVoucher(ctx, suite.pumpID, voucherID, suite.userID)

	suite.Require().NoError(err)
	suite.Equal(domain.VoucherApproved, approved.Status)
	suite.mockVoucherRepo.AssertExpectations(suite.T())
}

func (suite *VoucherServiceTestSuite) TestApproveVoucher_Unbalanced() {
	ctx := context.Background()
	voucherID := uuid.NewString()
	voucher := &domain.Voucher{VoucherID: voucherID, PumpID: suite.pumpID, Status: domain.VoucherDraft}
	entries := []domain.VoucherEntry{
		{EntryID: uuid.NewString(), VoucherID: voucherID, AccountID: suite.cashAccount.AccountID, EntryType: domain.Debit, Amount: decimal.NewFromInt(750), LineNo: 1},
		{EntryID: uuid.NewString(), VoucherID: voucherID, AccountID: suite.salesAccount.AccountID, EntryType: domain.Credit, Amount: decimal.NewFromInt(700), LineNo: 2},
	}

	suite.mockVoucherRepo.On("FindVoucherByID", ctx, voucherID).Return(voucher, nil).Once()
	suite.mockVoucherRepo.On("FindEntriesByVoucherID", ctx, voucherID).Return(entries, nil).Once()

	_, err := suite.service.ApproveVoucher(ctx, suite.pumpID, voucherID, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, services.ErrVoucherUnbalanced)
	suite.mockVoucherRepo.AssertNotCalled(suite.T(), "UpdateVoucherStatus", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *VoucherServiceTestSuite) TestApproveVoucher_FromPosted() {
	ctx := context.Background()
	voucherID := uuid.NewString()
	voucher := &domain.Voucher{VoucherID: voucherID, PumpID: suite.pumpID, Status: domain.VoucherPosted}

	suite.mockVoucherRepo.On("FindVoucherByID", ctx, voucherID).Return(voucher, nil).Once()

	_, err := suite.service.ApproveVoucher(ctx, suite.pumpID, voucherID, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, services.ErrInvalidTransition)
}

// --- PostVoucher ---

func (suite *VoucherServiceTestSuite) TestPostVoucher_Success() {
	ctx := context.Background()
	voucherID := uuid.NewString()
	voucher := &domain.Voucher{VoucherID: voucherID, PumpID: suite.pumpID, VoucherType: domain.Sales, VoucherDate: time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC), Status: domain.VoucherApproved}
	entries := suite.balancedEntries(voucherID, decimal.NewFromInt(500))
	repoResult := &portsrepo.PostingResult{
		VoucherNumber:  "SAL/FY2025-26/000042",
		PostedEntryIDs: []string{uuid.NewString(), uuid.NewString()},
	}

	suite.mockVoucherRepo.On("FindVoucherByID", ctx, voucherID).Return(voucher, nil).Once()
	suite.mockVoucherRepo.On("FindEntriesByVoucherID", ctx, voucherID).Return(entries, nil).Once()
	suite.mockAccountSvc.On("GetAccountsByIDs", ctx, suite.pumpID, mock.Anything).Return(suite.accountsMap(), nil).Once()
	suite.mockFYSvc.On("GetActiveFinancialYear", ctx, suite.pumpID).Return(&suite.activeYear, nil).Once()
	suite.mockVoucherRepo.On("PostVoucher", ctx, *voucher, entries, suite.activeYear.Name, suite.userID, mock.AnythingOfType("time.Time")).Return(repoResult, nil).Once()

	result, err := suite.service.PostVoucher(ctx, suite.pumpID, voucherID, suite.userID)

	suite.Require().NoError(err)
	suite.Equal(voucherID, result.VoucherID)
	suite.Equal("SAL/FY2025-26/000042", result.VoucherNumber)
	suite.Len(result.PostedEntryIDs, 2)
	suite.mockVoucherRepo.AssertExpectations(suite.T())
	suite.mockFYSvc.AssertExpectations(suite.T())
}

func (suite *VoucherServiceTestSuite) TestPostVoucher_FromDraft() {
	ctx := context.Background()
	voucherID := uuid.NewString()
	voucher := &domain.Voucher{VoucherID: voucherID, PumpID: suite.pumpID, Status: domain.VoucherDraft}

	suite.mockVoucherRepo.On("FindVoucherByID", ctx, voucherID).Return(voucher, nil).Once()

	_, err := suite.service.PostVoucher(ctx, suite.pumpID, voucherID, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, services.ErrInvalidTransition)
	suite.mockVoucherRepo.AssertNotCalled(suite.T(), "PostVoucher", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *VoucherServiceTestSuite) TestPostVoucher_LockTimeoutPropagates() {
	ctx := context.Background()
	voucherID := uuid.NewString()
	voucher := &domain.Voucher{VoucherID: voucherID, PumpID: suite.pumpID, VoucherDate: time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC), Status: domain.VoucherApproved}
	entries := suite.balancedEntries(voucherID, decimal.NewFromInt(500))

	suite.mockVoucherRepo.On("FindVoucherByID", ctx, voucherID).Return(voucher, nil).Once()
	suite.mockVoucherRepo.On("FindEntriesByVoucherID", ctx, voucherID).Return(entries, nil).Once()
	suite.mockAccountSvc.On("GetAccountsByIDs", ctx, suite.pumpID, mock.Anything).Return(suite.accountsMap(), nil).Once()
	suite.mockFYSvc.On("GetActiveFinancialYear", ctx, suite.pumpID).Return(&suite.activeYear, nil).Once()
	suite.mockVoucherRepo.On("PostVoucher", ctx, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(nil, apperrors.ErrLockTimeout).Once()

	_, err := suite.service.PostVoucher(ctx, suite.pumpID, voucherID, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrLockTimeout)
}

func (suite *VoucherServiceTestSuite) TestPostVoucher_EnforcedPeriodRejectsOutsideDate() {
	ctx := context.Background()
	enforcing := services.NewVoucherService(suite.mockVoucherRepo, suite.mockAccountSvc, suite.mockFYSvc, suite.mockPumpSvc, true)

	voucherID := uuid.NewString()
	voucher := &domain.Voucher{VoucherID: voucherID, PumpID: suite.pumpID, VoucherDate: time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC), Status: domain.VoucherApproved}
	entries := suite.balancedEntries(voucherID, decimal.NewFromInt(500))

	suite.mockVoucherRepo.On("FindVoucherByID", ctx, voucherID).Return(voucher, nil).Once()
	suite.mockVoucherRepo.On("FindEntriesByVoucherID", ctx, voucherID).Return(entries, nil).Once()
	suite.mockAccountSvc.On("GetAccountsByIDs", ctx, suite.pumpID, mock.Anything).Return(suite.accountsMap(), nil).Once()
	suite.mockFYSvc.On("GetActiveFinancialYear", ctx, suite.pumpID).Return(&suite.activeYear, nil).Once()

	_, err := enforcing.PostVoucher(ctx, suite.pumpID, voucherID, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, services.ErrDateOutsideActiveYear)
	suite.ErrorIs(err, apperrors.ErrPeriod)
	suite.mockVoucherRepo.AssertNotCalled(suite.T(), "PostVoucher", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

// --- CancelVoucher ---

func (suite *VoucherServiceTestSuite) TestCancelVoucher_Success() {
	ctx := context.Background()
	voucherID := uuid.NewString()
	voucher := &domain.Voucher{VoucherID: voucherID, PumpID: suite.pumpID, Status: domain.VoucherApproved}

	suite.mockVoucherRepo.On("FindVoucherByID", ctx, voucherID).Return(voucher, nil).Once()
	suite.mockVoucherRepo.On("UpdateVoucherStatus", ctx, voucherID, domain.VoucherApproved, domain.VoucherCancelled, "entered twice", suite.userID, mock.AnythingOfType("time.Time")).Return(nil).Once()

	err := suite.service.CancelVoucher(ctx, suite.pumpID, voucherID, "entered twice", suite.userID)

	suite.Require().NoError(err)
	suite.mockVoucherRepo.AssertExpectations(suite.T())
}

func (suite *VoucherServiceTestSuite) TestCancelVoucher_ReasonRequired() {
	ctx := context.Background()

	err := suite.service.CancelVoucher(ctx, suite.pumpID, uuid.NewString(), "", suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, services.ErrCancelReasonRequired)
	suite.mockVoucherRepo.AssertNotCalled(suite.T(), "FindVoucherByID", mock.Anything, mock.Anything)
}

func (suite *VoucherServiceTestSuite) TestCancelVoucher_PostedRejected() {
	ctx := context.Background()
	voucherID := uuid.NewString()
	voucher := &domain.Voucher{VoucherID: voucherID, PumpID: suite.pumpID, Status: domain.VoucherPosted}

	suite.mockVoucherRepo.On("FindVoucherByID", ctx, voucherID).Return(voucher, nil).Once()

	err := suite.service.CancelVoucher(ctx, suite.pumpID, voucherID, "mistake", suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, services.ErrInvalidTransition)
	suite.mockVoucherRepo.AssertNotCalled(suite.T(), "UpdateVoucherStatus", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

// --- ReverseVoucher ---

func (suite *VoucherServiceTestSuite) TestReverseVoucher_Success() {
	ctx := context.Background()
	voucherID := uuid.NewString()
	postedAt := time.Date(2025, 6, 16, 10, 0, 0, 0, time.UTC)
	original := &domain.Voucher{
		VoucherID:     voucherID,
		PumpID:        suite.pumpID,
		VoucherNumber: "SAL/FY2025-26/000042",
		VoucherType:   domain.Sales,
		VoucherDate:   time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC),
		Narration:     "Fuel sale, shift A",
		TotalAmount:   decimal.NewFromInt(500),
		Status:        domain.VoucherPosted,
		PostedAt:      &postedAt,
	}
	originalEntries := suite.balancedEntries(voucherID, decimal.NewFromInt(500))
	repoResult := &portsrepo.PostingResult{VoucherNumber: "SAL/FY2025-26/000043", PostedEntryIDs: []string{uuid.NewString(), uuid.NewString()}}

	suite.mockVoucherRepo.On("FindVoucherByID", ctx, voucherID).Return(original, nil).Once()
	suite.mockVoucherRepo.On("FindEntriesByVoucherID", ctx, voucherID).Return(originalEntries, nil).Once()
	suite.mockVoucherRepo.On("SaveVoucher", ctx, mock.MatchedBy(func(v domain.Voucher) bool {
		return v.ReversesVoucherID != nil && *v.ReversesVoucherID == voucherID && v.Status == domain.VoucherDraft
	}), mock.MatchedBy(func(entries []domain.VoucherEntry) bool {
		// Every line keeps its amount and flips its side.
		if len(entries) != len(originalEntries) {
			return false
		}
		for i := range entries {
			if entries[i].EntryType != originalEntries[i].EntryType.Opposite() || !entries[i].Amount.Equal(originalEntries[i].Amount) {
				return false
			}
		}
		return true
	})).Return(nil).Once()
	suite.mockVoucherRepo.On("UpdateVoucherStatus", ctx, mock.AnythingOfType("string"), domain.VoucherDraft, domain.VoucherApproved, "", suite.userID, mock.AnythingOfType("time.Time")).Return(nil).Once()
	suite.mockFYSvc.On("GetActiveFinancialYear", ctx, suite.pumpID).Return(&suite.activeYear, nil).Once()
	suite.mockVoucherRepo.On("PostVoucher", ctx, mock.AnythingOfType("domain.Voucher"), mock.AnythingOfType("[]domain.VoucherEntry"), suite.activeYear.Name, suite.userID, mock.AnythingOfType("time.Time")).Return(repoResult, nil).Once()
	suite.mockVoucherRepo.On("LinkReversal", ctx, voucherID, mock.AnythingOfType("string"), suite.userID, mock.AnythingOfType("time.Time")).Return(nil).Once()

	reversal, err := suite.service.ReverseVoucher(ctx, suite.pumpID, voucherID, suite.userID)

	suite.Require().NoError(err)
	suite.Require().NotNil(reversal)
	suite.Equal(domain.VoucherPosted, reversal.Status)
	suite.Equal("SAL/FY2025-26/000043", reversal.VoucherNumber)
	suite.Require().NotNil(reversal.ReversesVoucherID)
	suite.Equal(voucherID, *reversal.ReversesVoucherID)
	suite.True(reversal.TotalAmount.Equal(original.TotalAmount))
	suite.mockVoucherRepo.AssertExpectations(suite.T())
}

func (suite *VoucherServiceTestSuite) TestReverseVoucher_NotPosted() {
	ctx := context.Background()
	voucherID := uuid.NewString()
	voucher := &domain.Voucher{VoucherID: voucherID, PumpID: suite.pumpID, Status: domain.VoucherApproved}

	suite.mockVoucherRepo.On("FindVoucherByID", ctx, voucherID).Return(voucher, nil).Once()

	_, err := suite.service.ReverseVoucher(ctx, suite.pumpID, voucherID, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, services.ErrNotPostedVoucher)
}

func (suite *VoucherServiceTestSuite) TestReverseVoucher_AlreadyReversed() {
	ctx := context.Background()
	voucherID := uuid.NewString()
	reversalID := uuid.NewString()
	voucher := &domain.Voucher{VoucherID: voucherID, PumpID: suite.pumpID, Status: domain.VoucherPosted, ReversedByVoucherID: &reversalID}

	suite.mockVoucherRepo.On("FindVoucherByID", ctx, voucherID).Return(voucher, nil).Once()

	_, err := suite.service.ReverseVoucher(ctx, suite.pumpID, voucherID, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, services.ErrAlreadyReversed)
	suite.mockVoucherRepo.AssertNotCalled(suite.T(), "SaveVoucher", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *VoucherServiceTestSuite) TestReverseVoucher_ReversalOfReversal() {
	ctx := context.Background()
	voucherID := uuid.NewString()
	originalID := uuid.NewString()
	voucher := &domain.Voucher{VoucherID: voucherID, PumpID: suite.pumpID, Status: domain.VoucherPosted, ReversesVoucherID: &originalID}

	suite.mockVoucherRepo.On("FindVoucherByID", ctx, voucherID).Return(voucher, nil).Once()

	_, err := suite.service.ReverseVoucher(ctx, suite.pumpID, voucherID, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, services.ErrIsReversalVoucher)
}

// --- ListVouchers ---

func (suite *VoucherServiceTestSuite) TestListVouchers_InvalidStatus() {
	ctx := context.Background()
	bad := "SHREDDED"

	suite.mockPumpSvc.On("AssertPumpActive", ctx, suite.pumpID).Return(nil).Once()

	_, err := suite.service.ListVouchers(ctx, suite.pumpID, dto.ListVouchersParams{Status: &bad})

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *VoucherServiceTestSuite) TestListVouchers_StatusFilterAndToken() {
	ctx := context.Background()
	statusStr := "POSTED"
	posted := domain.VoucherPosted
	token := "eyJ2IjoxfQ"
	vouchers := []domain.Voucher{{VoucherID: uuid.NewString(), PumpID: suite.pumpID, Status: domain.VoucherPosted}}

	suite.mockPumpSvc.On("AssertPumpActive", ctx, suite.pumpID).Return(nil).Once()
	suite.mockVoucherRepo.On("ListVouchersByPump", ctx, suite.pumpID, &posted, 20, (*string)(nil)).Return(vouchers, token, nil).Once()

	resp, err := suite.service.ListVouchers(ctx, suite.pumpID, dto.ListVouchersParams{Status: &statusStr})

	suite.Require().NoError(err)
	suite.Len(resp.Vouchers, 1)
	suite.Require().NotNil(resp.NextToken)
	suite.Equal(token, *resp.NextToken)
	suite.mockVoucherRepo.AssertExpectations(suite.T())
}

func TestVoucherServiceTestSuite(t *testing.T) {
	suite.Run(t, new(VoucherServiceTestSuite))
}
