package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/finacct/backend/internal/apperrors"
	"github.com/finacct/backend/internal/core/domain"
	portsrepo "github.com/finacct/backend/internal/core/ports/repositories"
	"github.com/finacct/backend/internal/core/services"
	"github.com/finacct/backend/internal/dto"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type PeriodClosingServiceTestSuite struct {
	suite.Suite
	mockPeriodRepo *MockPeriodRepository
	mockAccountSvc *MockAccountReaderSvc
	mockAuditSink  *MockAuditSink
	service        *services.PeriodClosingService

	ctx      context.Context
	tenantID string
	userID   string

	retainedEarnings domain.Account
	incomeSummary    domain.Account
	req              dto.ClosePeriodRequest
}

func (suite *PeriodClosingServiceTestSuite) SetupTest() {
	suite.mockPeriodRepo = new(MockPeriodRepository)
	suite.mockAccountSvc = new(MockAccountReaderSvc)
	suite.mockAuditSink = new(MockAuditSink)
	suite.service = services.NewPeriodClosingService(
		suite.mockPeriodRepo,
		suite.mockAccountSvc,
		suite.mockAuditSink,
		nil,
		"USD",
	)

	suite.ctx = context.Background()
	suite.tenantID = uuid.NewString()
	suite.userID = uuid.NewString()

	suite.retainedEarnings = domain.Account{
		AccountID:    uuid.NewString(),
		TenantID:     suite.tenantID,
		Code:         domain.CodeRetainedEarnings,
		Name:         "Retained Earnings",
		AccountType:  domain.Equity,
		CurrencyCode: "EUR",
		IsActive:     true,
	}
	suite.incomeSummary = domain.Account{
		AccountID:    uuid.NewString(),
		TenantID:     suite.tenantID,
		Code:         domain.CodeIncomeSummary,
		Name:         "Income Summary",
		AccountType:  domain.Equity,
		CurrencyCode: "EUR",
		IsActive:     true,
	}
	suite.req = dto.ClosePeriodRequest{
		Period:    "2025-01",
		StartDate: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2025, 1, 31, 0, 0, 0, 0, time.UTC),
	}
}

func (suite *PeriodClosingServiceTestSuite) expectRoleResolution() {
	suite.mockAccountSvc.On("ResolveRoleAccount", suite.ctx, suite.tenantID, domain.RoleRetainedEarnings).Return(&suite.retainedEarnings, nil).Once()
	suite.mockAccountSvc.On("ResolveRoleAccount", suite.ctx, suite.tenantID, domain.RoleIncomeSummary).Return(&suite.incomeSummary, nil).Once()
}

func (suite *PeriodClosingServiceTestSuite) TestClosePeriod_Success() {
	suite.expectRoleResolution()
	netIncome := decimal.NewFromFloat(1234.56)
	closingTxnID := uuid.NewString()

	suite.mockPeriodRepo.On("ClosePeriod", suite.ctx, mock.MatchedBy(func(close domain.PeriodClose) bool {
		return close.TenantID == suite.tenantID &&
			close.Period == "2025-01" &&
			close.Status == domain.PeriodClosed
	}), portsrepo.ClosingAccounts{
		RetainedEarningsID: suite.retainedEarnings.AccountID,
		IncomeSummaryID:    suite.incomeSummary.AccountID,
		CurrencyCode:       "EUR",
	}, suite.userID).Return(netIncome, closingTxnID, nil).Once()
	suite.mockAuditSink.On("Record", suite.ctx, suite.tenantID, suite.userID, "PERIOD_CLOSE", mock.Anything).Once()

	result, err := suite.service.ClosePeriod(suite.ctx, suite.tenantID, suite.req, suite.userID)

	suite.Require().NoError(err)
	suite.Equal(domain.PeriodClosed, result.Status)
	suite.Equal("2025-01", result.Period)
	suite.True(result.NetIncome.Equal(netIncome))
	suite.mockPeriodRepo.AssertExpectations(suite.T())
	suite.mockAuditSink.AssertExpectations(suite.T())
}

func (suite *PeriodClosingServiceTestSuite) TestClosePeriod_InvertedRange() {
	req := dto.ClosePeriodRequest{
		Period:    "2025-01",
		StartDate: time.Date(2025, 1, 31, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
	}

	result, err := suite.service.ClosePeriod(suite.ctx, suite.tenantID, req, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.Nil(result)
	suite.mockPeriodRepo.AssertNotCalled(suite.T(), "ClosePeriod", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *PeriodClosingServiceTestSuite) TestClosePeriod_AlreadyClosed() {
	suite.expectRoleResolution()

	suite.mockPeriodRepo.On("ClosePeriod", suite.ctx, mock.Anything, mock.Anything, suite.userID).Return(decimal.Zero, nil, apperrors.ErrAlreadyClosed).Once()

	result, err := suite.service.ClosePeriod(suite.ctx, suite.tenantID, suite.req, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrAlreadyClosed)
	suite.Nil(result)
	suite.mockAuditSink.AssertNotCalled(suite.T(), "Record", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *PeriodClosingServiceTestSuite) TestClosePeriod_MissingSystemAccounts() {
	// Unmapped roles are tolerated up front; the repository rejects the
	// close only when a closing entry is actually needed.
	unmappedErr := apperrors.ErrMissingSystemAccount
	suite.mockAccountSvc.On("ResolveRoleAccount", suite.ctx, suite.tenantID, domain.RoleRetainedEarnings).Return(nil, unmappedErr).Once()
	suite.mockAccountSvc.On("ResolveRoleAccount", suite.ctx, suite.tenantID, domain.RoleIncomeSummary).Return(nil, unmappedErr).Once()

	suite.mockPeriodRepo.On("ClosePeriod", suite.ctx, mock.Anything, portsrepo.ClosingAccounts{CurrencyCode: "USD"}, suite.userID).Return(decimal.Zero, nil, apperrors.ErrMissingSystemAccount).Once()

	result, err := suite.service.ClosePeriod(suite.ctx, suite.tenantID, suite.req, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrMissingSystemAccount)
	suite.Nil(result)
}

func (suite *PeriodClosingServiceTestSuite) TestClosePeriod_ZeroNetIncomeSkipsClosingEntry() {
	suite.expectRoleResolution()

	suite.mockPeriodRepo.On("ClosePeriod", suite.ctx, mock.Anything, mock.Anything, suite.userID).Return(decimal.Zero, nil, nil).Once()
	suite.mockAuditSink.On("Record", suite.ctx, suite.tenantID, suite.userID, "PERIOD_CLOSE", mock.MatchedBy(func(details any) bool {
		m, ok := details.(map[string]string)
		if !ok {
			return false
		}
		_, hasClosingTxn := m["closingTransactionID"]
		return !hasClosingTxn
	})).Once()

	result, err := suite.service.ClosePeriod(suite.ctx, suite.tenantID, suite.req, suite.userID)

	suite.Require().NoError(err)
	suite.True(result.NetIncome.IsZero())
	suite.mockAuditSink.AssertExpectations(suite.T())
}

func (suite *PeriodClosingServiceTestSuite) TestIsDateLocked() {
	date := time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC)
	covering := &domain.PeriodClose{TenantID: suite.tenantID, Period: "2025-01"}

	suite.mockPeriodRepo.On("FindClosedPeriodCovering", suite.ctx, suite.tenantID, date).Return(covering, nil).Once()

	locked, err := suite.service.IsDateLocked(suite.ctx, suite.tenantID, date)

	suite.Require().NoError(err)
	suite.True(locked)
}

func (suite *PeriodClosingServiceTestSuite) TestIsDateLocked_OpenDate() {
	date := time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC)

	suite.mockPeriodRepo.On("FindClosedPeriodCovering", suite.ctx, suite.tenantID, date).Return(nil, apperrors.ErrNotFound).Once()

	locked, err := suite.service.IsDateLocked(suite.ctx, suite.tenantID, date)

	suite.Require().NoError(err)
	suite.False(locked)
}

func (suite *PeriodClosingServiceTestSuite) TestListClosedPeriods_EmptyNotNil() {
	suite.mockPeriodRepo.On("ListPeriodCloses", suite.ctx, suite.tenantID).Return([]domain.PeriodClose(nil), nil).Once()

	closes, err := suite.service.ListClosedPeriods(suite.ctx, suite.tenantID)

	suite.Require().NoError(err)
	suite.NotNil(closes)
	suite.Empty(closes)
}

func TestPeriodClosingServiceTestSuite(t *testing.T) {
	suite.Run(t, new(PeriodClosingServiceTestSuite))
}
