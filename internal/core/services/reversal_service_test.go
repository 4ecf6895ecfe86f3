package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/finacct/backend/internal/apperrors"
	"github.com/finacct/backend/internal/core/domain"
	"github.com/finacct/backend/internal/core/services"
	"github.com/finacct/backend/internal/dto"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type ReversalServiceTestSuite struct {
	suite.Suite
	mockRefundRepo  *MockRefundRepository
	mockPostingRepo *MockPostingRepository
	mockAuditSink   *MockAuditSink
	service         *services.ReversalService

	ctx      context.Context
	tenantID string
	userID   string

	original        domain.Transaction
	originalEntries []domain.Entry
}

func (suite *ReversalServiceTestSuite) SetupTest() {
	suite.mockRefundRepo = new(MockRefundRepository)
	suite.mockPostingRepo = new(MockPostingRepository)
	suite.mockAuditSink = new(MockAuditSink)
	suite.service = services.NewReversalService(
		suite.mockRefundRepo,
		suite.mockPostingRepo,
		suite.mockAuditSink,
		nil,
	)

	suite.ctx = context.Background()
	suite.tenantID = uuid.NewString()
	suite.userID = uuid.NewString()

	originalID := uuid.NewString()
	suite.original = domain.Transaction{
		TransactionID:   originalID,
		TenantID:        suite.tenantID,
		TransactionDate: time.Date(2025, 2, 10, 0, 0, 0, 0, time.UTC),
		Description:     "Customer invoice",
		Source:          domain.SourceManual,
		Status:          domain.Posted,
		CurrencyCode:    "USD",
		Amount:          decimal.NewFromInt(250),
	}
	// Debit cash 250, credit revenue 250: net value is 250 credit-side
	suite.originalEntries = []domain.Entry{
		{EntryID: uuid.NewString(), TransactionID: originalID, AccountID: uuid.NewString(), Debit: decimal.NewFromInt(250), Credit: decimal.Zero, CurrencyCode: "USD"},
		{EntryID: uuid.NewString(), TransactionID: originalID, AccountID: uuid.NewString(), Debit: decimal.Zero, Credit: decimal.NewFromInt(250), CurrencyCode: "USD"},
	}
}

func (suite *ReversalServiceTestSuite) requestedRefund(amount decimal.Decimal) *domain.Refund {
	return &domain.Refund{
		RefundID:              uuid.NewString(),
		TenantID:              suite.tenantID,
		CustomerID:            uuid.NewString(),
		OriginalTransactionID: suite.original.TransactionID,
		Amount:                amount,
		CurrencyCode:          "USD",
		Status:                domain.RefundRequested,
	}
}

func (suite *ReversalServiceTestSuite) TestRequestRefund_Success() {
	req := dto.RequestRefundRequest{
		CustomerID:            uuid.NewString(),
		OriginalTransactionID: suite.original.TransactionID,
		Amount:                decimal.NewFromInt(100),
		CurrencyCode:          "USD",
		Reason:                "defective goods",
	}

	suite.mockPostingRepo.On("FindTransactionByID", suite.ctx, suite.original.TransactionID).Return(&suite.original, nil).Once()
	suite.mockRefundRepo.On("FindActiveRefundForTransaction", suite.ctx, suite.tenantID, suite.original.TransactionID).Return(nil, apperrors.ErrNotFound).Once()
	suite.mockRefundRepo.On("SaveRefund", suite.ctx, mock.AnythingOfType("domain.Refund")).Return(nil).Once()
	suite.mockAuditSink.On("Record", suite.ctx, suite.tenantID, suite.userID, "REFUND_REQUESTED", mock.Anything).Once()

	refund, err := suite.service.RequestRefund(suite.ctx, suite.tenantID, req, suite.userID)

	suite.Require().NoError(err)
	suite.Require().NotNil(refund)
	suite.Equal(domain.RefundRequested, refund.Status)
	suite.True(refund.Amount.Equal(decimal.NewFromInt(100)))
	suite.mockRefundRepo.AssertExpectations(suite.T())
	suite.mockAuditSink.AssertExpectations(suite.T())
}

func (suite *ReversalServiceTestSuite) TestRequestRefund_NonPositiveAmount() {
	req := dto.RequestRefundRequest{
		CustomerID:            uuid.NewString(),
		OriginalTransactionID: suite.original.TransactionID,
		Amount:                decimal.Zero,
		CurrencyCode:          "USD",
	}

	refund, err := suite.service.RequestRefund(suite.ctx, suite.tenantID, req, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.Nil(refund)
	suite.mockPostingRepo.AssertNotCalled(suite.T(), "FindTransactionByID", mock.Anything, mock.Anything)
}

func (suite *ReversalServiceTestSuite) TestRequestRefund_ForeignTransaction() {
	foreign := suite.original
	foreign.TenantID = uuid.NewString()
	req := dto.RequestRefundRequest{
		CustomerID:            uuid.NewString(),
		OriginalTransactionID: foreign.TransactionID,
		Amount:                decimal.NewFromInt(10),
		CurrencyCode:          "USD",
	}

	suite.mockPostingRepo.On("FindTransactionByID", suite.ctx, foreign.TransactionID).Return(&foreign, nil).Once()

	refund, err := suite.service.RequestRefund(suite.ctx, suite.tenantID, req, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrNotFound)
	suite.Nil(refund)
	suite.mockRefundRepo.AssertNotCalled(suite.T(), "SaveRefund", mock.Anything, mock.Anything)
}

func (suite *ReversalServiceTestSuite) TestRequestRefund_ActiveRefundExists() {
	existing := suite.requestedRefund(decimal.NewFromInt(50))
	req := dto.RequestRefundRequest{
		CustomerID:            uuid.NewString(),
		OriginalTransactionID: suite.original.TransactionID,
		Amount:                decimal.NewFromInt(25),
		CurrencyCode:          "USD",
	}

	suite.mockPostingRepo.On("FindTransactionByID", suite.ctx, suite.original.TransactionID).Return(&suite.original, nil).Once()
	suite.mockRefundRepo.On("FindActiveRefundForTransaction", suite.ctx, suite.tenantID, suite.original.TransactionID).Return(existing, nil).Once()

	refund, err := suite.service.RequestRefund(suite.ctx, suite.tenantID, req, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrDuplicate)
	suite.Nil(refund)
	suite.mockRefundRepo.AssertNotCalled(suite.T(), "SaveRefund", mock.Anything, mock.Anything)
}

func (suite *ReversalServiceTestSuite) TestApproveRefund_FullReversal() {
	refund := suite.requestedRefund(decimal.NewFromInt(250))

	suite.mockRefundRepo.On("FindRefundByID", suite.ctx, suite.tenantID, refund.RefundID).Return(refund, nil).Once()
	suite.mockPostingRepo.On("FindTransactionByID", suite.ctx, suite.original.TransactionID).Return(&suite.original, nil).Once()
	suite.mockPostingRepo.On("FindEntriesByTransactionID", suite.ctx, suite.original.TransactionID).Return(suite.originalEntries, nil).Once()
	suite.mockPostingRepo.On("SaveReversal", suite.ctx, mock.AnythingOfType("domain.Transaction"), mock.AnythingOfType("[]domain.Entry"), refund.RefundID, suite.userID).Return(nil).Once()
	suite.mockAuditSink.On("Record", suite.ctx, suite.tenantID, suite.userID, "REFUND_APPROVED", mock.Anything).Once()

	approved, reversal, err := suite.service.ApproveRefund(suite.ctx, suite.tenantID, refund.RefundID, suite.userID)

	suite.Require().NoError(err)
	suite.Equal(domain.RefundApproved, approved.Status)
	suite.Equal(suite.userID, approved.ApprovedBy)
	suite.Require().NotNil(approved.ReversalTransactionID)
	suite.Equal(reversal.TransactionID, *approved.ReversalTransactionID)

	suite.Equal(domain.SourceRefund, reversal.Source)
	suite.Require().Len(reversal.Entries, 2)
	// Legs swap sides one-to-one: the original debit leg becomes a credit
	suite.True(reversal.Entries[0].Credit.Equal(decimal.NewFromInt(250)))
	suite.True(reversal.Entries[0].Debit.IsZero())
	suite.True(reversal.Entries[1].Debit.Equal(decimal.NewFromInt(250)))
	suite.True(reversal.Amount.Equal(decimal.NewFromInt(250)))
	suite.mockPostingRepo.AssertExpectations(suite.T())
}

func (suite *ReversalServiceTestSuite) TestApproveRefund_PartialScalesLegs() {
	// 100 refunded of a 250 net original: every leg scales by 0.4
	refund := suite.requestedRefund(decimal.NewFromInt(100))

	suite.mockRefundRepo.On("FindRefundByID", suite.ctx, suite.tenantID, refund.RefundID).Return(refund, nil).Once()
	suite.mockPostingRepo.On("FindTransactionByID", suite.ctx, suite.original.TransactionID).Return(&suite.original, nil).Once()
	suite.mockPostingRepo.On("FindEntriesByTransactionID", suite.ctx, suite.original.TransactionID).Return(suite.originalEntries, nil).Once()
	suite.mockPostingRepo.On("SaveReversal", suite.ctx, mock.Anything, mock.Anything, refund.RefundID, suite.userID).Return(nil).Once()
	suite.mockAuditSink.On("Record", suite.ctx, suite.tenantID, suite.userID, "REFUND_APPROVED", mock.Anything).Once()

	_, reversal, err := suite.service.ApproveRefund(suite.ctx, suite.tenantID, refund.RefundID, suite.userID)

	suite.Require().NoError(err)
	suite.Require().Len(reversal.Entries, 2)
	suite.True(reversal.Entries[0].Credit.Equal(decimal.NewFromInt(100)))
	suite.True(reversal.Entries[1].Debit.Equal(decimal.NewFromInt(100)))
	suite.True(reversal.Amount.Equal(decimal.NewFromInt(100)))
}

func (suite *ReversalServiceTestSuite) TestApproveRefund_OverDemandClampsToFull() {
	// A refund exceeding the original net reverses exactly once, never more
	refund := suite.requestedRefund(decimal.NewFromInt(400))

	suite.mockRefundRepo.On("FindRefundByID", suite.ctx, suite.tenantID, refund.RefundID).Return(refund, nil).Once()
	suite.mockPostingRepo.On("FindTransactionByID", suite.ctx, suite.original.TransactionID).Return(&suite.original, nil).Once()
	suite.mockPostingRepo.On("FindEntriesByTransactionID", suite.ctx, suite.original.TransactionID).Return(suite.originalEntries, nil).Once()
	suite.mockPostingRepo.On("SaveReversal", suite.ctx, mock.Anything, mock.Anything, refund.RefundID, suite.userID).Return(nil).Once()
	suite.mockAuditSink.On("Record", suite.ctx, suite.tenantID, suite.userID, "REFUND_APPROVED", mock.Anything).Once()

	_, reversal, err := suite.service.ApproveRefund(suite.ctx, suite.tenantID, refund.RefundID, suite.userID)

	suite.Require().NoError(err)
	suite.True(reversal.Amount.Equal(decimal.NewFromInt(250)))
}

func (suite *ReversalServiceTestSuite) TestApproveRefund_AlreadyApproved() {
	refund := suite.requestedRefund(decimal.NewFromInt(100))
	refund.Status = domain.RefundApproved

	suite.mockRefundRepo.On("FindRefundByID", suite.ctx, suite.tenantID, refund.RefundID).Return(refund, nil).Once()

	_, _, err := suite.service.ApproveRefund(suite.ctx, suite.tenantID, refund.RefundID, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrConflict)
	suite.mockPostingRepo.AssertNotCalled(suite.T(), "SaveReversal", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *ReversalServiceTestSuite) TestApproveRefund_OriginalWithoutEntries() {
	refund := suite.requestedRefund(decimal.NewFromInt(100))

	suite.mockRefundRepo.On("FindRefundByID", suite.ctx, suite.tenantID, refund.RefundID).Return(refund, nil).Once()
	suite.mockPostingRepo.On("FindTransactionByID", suite.ctx, suite.original.TransactionID).Return(&suite.original, nil).Once()
	suite.mockPostingRepo.On("FindEntriesByTransactionID", suite.ctx, suite.original.TransactionID).Return([]domain.Entry{}, nil).Once()

	_, _, err := suite.service.ApproveRefund(suite.ctx, suite.tenantID, refund.RefundID, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrReversalFailed)
}

func (suite *ReversalServiceTestSuite) TestApproveRefund_ConcurrentApprovalConflict() {
	// SaveReversal finds the refund no longer in the requested state
	refund := suite.requestedRefund(decimal.NewFromInt(100))

	suite.mockRefundRepo.On("FindRefundByID", suite.ctx, suite.tenantID, refund.RefundID).Return(refund, nil).Once()
	suite.mockPostingRepo.On("FindTransactionByID", suite.ctx, suite.original.TransactionID).Return(&suite.original, nil).Once()
	suite.mockPostingRepo.On("FindEntriesByTransactionID", suite.ctx, suite.original.TransactionID).Return(suite.originalEntries, nil).Once()
	suite.mockPostingRepo.On("SaveReversal", suite.ctx, mock.Anything, mock.Anything, refund.RefundID, suite.userID).Return(apperrors.ErrConflict).Once()

	_, _, err := suite.service.ApproveRefund(suite.ctx, suite.tenantID, refund.RefundID, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrConflict)
	suite.mockAuditSink.AssertNotCalled(suite.T(), "Record", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *ReversalServiceTestSuite) TestReleaseRefund_Success() {
	refund := suite.requestedRefund(decimal.NewFromInt(100))
	refund.Status = domain.RefundApproved

	suite.mockRefundRepo.On("FindRefundByID", suite.ctx, suite.tenantID, refund.RefundID).Return(refund, nil).Once()
	suite.mockRefundRepo.On("UpdateRefundStatus", suite.ctx, suite.tenantID, refund.RefundID, domain.RefundReleased, suite.userID).Return(nil).Once()
	suite.mockAuditSink.On("Record", suite.ctx, suite.tenantID, suite.userID, "REFUND_RELEASED", mock.Anything).Once()

	released, err := suite.service.ReleaseRefund(suite.ctx, suite.tenantID, refund.RefundID, suite.userID)

	suite.Require().NoError(err)
	suite.Equal(domain.RefundReleased, released.Status)
	suite.mockRefundRepo.AssertExpectations(suite.T())
}

func (suite *ReversalServiceTestSuite) TestReleaseRefund_NotApproved() {
	refund := suite.requestedRefund(decimal.NewFromInt(100))

	suite.mockRefundRepo.On("FindRefundByID", suite.ctx, suite.tenantID, refund.RefundID).Return(refund, nil).Once()

	released, err := suite.service.ReleaseRefund(suite.ctx, suite.tenantID, refund.RefundID, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrConflict)
	suite.Nil(released)
	suite.mockRefundRepo.AssertNotCalled(suite.T(), "UpdateRefundStatus", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *ReversalServiceTestSuite) TestFailRefund_FromRequested() {
	refund := suite.requestedRefund(decimal.NewFromInt(100))

	suite.mockRefundRepo.On("FindRefundByID", suite.ctx, suite.tenantID, refund.RefundID).Return(refund, nil).Twice()
	suite.mockRefundRepo.On("UpdateRefundStatus", suite.ctx, suite.tenantID, refund.RefundID, domain.RefundFailed, suite.userID).Return(nil).Once()
	suite.mockAuditSink.On("Record", suite.ctx, suite.tenantID, suite.userID, "REFUND_FAILED", mock.Anything).Once()

	failed, err := suite.service.FailRefund(suite.ctx, suite.tenantID, refund.RefundID, suite.userID)

	suite.Require().NoError(err)
	suite.Equal(domain.RefundFailed, failed.Status)
}

func (suite *ReversalServiceTestSuite) TestFailRefund_TerminalState() {
	refund := suite.requestedRefund(decimal.NewFromInt(100))
	refund.Status = domain.RefundReleased

	suite.mockRefundRepo.On("FindRefundByID", suite.ctx, suite.tenantID, refund.RefundID).Return(refund, nil).Once()

	failed, err := suite.service.FailRefund(suite.ctx, suite.tenantID, refund.RefundID, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrConflict)
	suite.Nil(failed)
}

func TestReversalServiceTestSuite(t *testing.T) {
	suite.Run(t, new(ReversalServiceTestSuite))
}
