package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/finacct/backend/internal/apperrors"
	"github.com/finacct/backend/internal/core/domain"
	portssvc "github.com/finacct/backend/internal/core/ports/services"
	"github.com/finacct/backend/internal/dto"
	"github.com/finacct/backend/internal/handlers"
	"github.com/finacct/backend/internal/middleware"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// --- Mock PostingService ---
type MockPostingSvc struct {
	mock.Mock
}

func (m *MockPostingSvc) PostTransaction(ctx context.Context, tenantID string, req dto.PostTransactionRequest, userID string) (*domain.Transaction, error) {
	args := m.Called(ctx, tenantID, req, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Transaction), args.Error(1)
}

func (m *MockPostingSvc) GetTransactionByID(ctx context.Context, tenantID string, transactionID string) (*domain.Transaction, error) {
	args := m.Called(ctx, tenantID, transactionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Transaction), args.Error(1)
}

func (m *MockPostingSvc) ListTransactions(ctx context.Context, tenantID string, params dto.ListTransactionsParams) ([]domain.Transaction, string, error) {
	args := m.Called(ctx, tenantID, params)
	if args.Get(0) == nil {
		return nil, "", args.Error(2)
	}
	return args.Get(0).([]domain.Transaction), args.String(1), args.Error(2)
}

// Ensure mock implements the interface
var _ portssvc.PostingSvcFacade = (*MockPostingSvc)(nil)

// --- Test Suite ---
type PostingHandlerTestSuite struct {
	suite.Suite
	router         *gin.Engine
	mockPostingSvc *MockPostingSvc
	jwtSecret      string
	tenantID       string
	userID         string
}

func (suite *PostingHandlerTestSuite) generateTestToken() string {
	claims := middleware.LedgerClaims{
		TenantID: suite.tenantID,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    "finacct-test",
			Subject:   suite.userID,
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(1 * time.Hour)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(suite.jwtSecret))
	if err != nil {
		suite.FailNow("Failed to sign test token", err.Error())
	}
	return signed
}

func (suite *PostingHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	suite.router = gin.New()
	suite.jwtSecret = "test-secret-key-that-is-long-enough"
	suite.tenantID = uuid.NewString()
	suite.userID = uuid.NewString()

	suite.router.Use(middleware.AuthMiddleware(suite.jwtSecret))

	suite.mockPostingSvc = new(MockPostingSvc)

	v1 := suite.router.Group("/api/v1")
	handlers.RegisterPostingRoutes(v1, suite.mockPostingSvc)
}

func (suite *PostingHandlerTestSuite) performRequest(method, path string, body any) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		suite.Require().NoError(err)
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+suite.generateTestToken())

	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)
	return w
}

// --- Test Cases ---

func (suite *PostingHandlerTestSuite) TestPostTransaction_Success() {
	cashAccountID := uuid.NewString()
	revenueAccountID := uuid.NewString()
	req := dto.PostTransactionRequest{
		Date:         time.Date(2025, 3, 15, 0, 0, 0, 0, time.UTC),
		Description:  "Invoice payment",
		CurrencyCode: "USD",
		Lines: []dto.EntryLineRequest{
			{AccountID: cashAccountID, Debit: decimal.NewFromInt(100)},
			{AccountID: revenueAccountID, Credit: decimal.NewFromInt(100)},
		},
	}
	posted := &domain.Transaction{
		TransactionID:   uuid.NewString(),
		TenantID:        suite.tenantID,
		TransactionDate: req.Date,
		Description:     req.Description,
		Source:          domain.SourceManual,
		Status:          domain.Posted,
		CurrencyCode:    "USD",
		Amount:          decimal.NewFromInt(100),
	}

	suite.mockPostingSvc.On("PostTransaction", mock.Anything, suite.tenantID, mock.MatchedBy(func(got dto.PostTransactionRequest) bool {
		return got.Description == "Invoice payment" && len(got.Lines) == 2
	}), suite.userID).Return(posted, nil).Once()

	w := suite.performRequest(http.MethodPost, "/api/v1/transactions", req)

	suite.Equal(http.StatusCreated, w.Code)
	var resp dto.TransactionResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal(posted.TransactionID, resp.TransactionID)
	suite.mockPostingSvc.AssertExpectations(suite.T())
}

func (suite *PostingHandlerTestSuite) TestPostTransaction_Unbalanced() {
	req := dto.PostTransactionRequest{
		Date:         time.Date(2025, 3, 15, 0, 0, 0, 0, time.UTC),
		Description:  "Lopsided",
		CurrencyCode: "USD",
		Lines: []dto.EntryLineRequest{
			{AccountID: uuid.NewString(), Debit: decimal.NewFromInt(100)},
			{AccountID: uuid.NewString(), Credit: decimal.NewFromInt(90)},
		},
	}

	suite.mockPostingSvc.On("PostTransaction", mock.Anything, suite.tenantID, mock.Anything, suite.userID).Return(nil, fmt.Errorf("%w: debits sum is 100 and credits sum is 90", apperrors.ErrUnbalancedEntry)).Once()

	w := suite.performRequest(http.MethodPost, "/api/v1/transactions", req)

	suite.Equal(http.StatusBadRequest, w.Code)
}

func (suite *PostingHandlerTestSuite) TestPostTransaction_ClosedPeriod() {
	req := dto.PostTransactionRequest{
		Date:         time.Date(2025, 1, 10, 0, 0, 0, 0, time.UTC),
		Description:  "Late posting",
		CurrencyCode: "USD",
		Lines: []dto.EntryLineRequest{
			{AccountID: uuid.NewString(), Debit: decimal.NewFromInt(100)},
			{AccountID: uuid.NewString(), Credit: decimal.NewFromInt(100)},
		},
	}

	suite.mockPostingSvc.On("PostTransaction", mock.Anything, suite.tenantID, mock.Anything, suite.userID).Return(nil, fmt.Errorf("%w: period 2025-01 is closed", apperrors.ErrPeriodLocked)).Once()

	w := suite.performRequest(http.MethodPost, "/api/v1/transactions", req)

	suite.Equal(http.StatusConflict, w.Code)
}

func (suite *PostingHandlerTestSuite) TestPostTransaction_MissingLines() {
	body := map[string]any{
		"date":         "2025-03-15T00:00:00Z",
		"description":  "No legs",
		"currencyCode": "USD",
	}

	w := suite.performRequest(http.MethodPost, "/api/v1/transactions", body)

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.mockPostingSvc.AssertNotCalled(suite.T(), "PostTransaction", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *PostingHandlerTestSuite) TestGetTransaction_Success() {
	transactionID := uuid.NewString()
	txn := &domain.Transaction{
		TransactionID: transactionID,
		TenantID:      suite.tenantID,
		Description:   "Invoice payment",
		Status:        domain.Posted,
		Amount:        decimal.NewFromInt(100),
		Entries: []domain.Entry{
			{EntryID: uuid.NewString(), TransactionID: transactionID, AccountID: uuid.NewString(), Debit: decimal.NewFromInt(100)},
			{EntryID: uuid.NewString(), TransactionID: transactionID, AccountID: uuid.NewString(), Credit: decimal.NewFromInt(100)},
		},
	}

	suite.mockPostingSvc.On("GetTransactionByID", mock.Anything, suite.tenantID, transactionID).Return(txn, nil).Once()

	w := suite.performRequest(http.MethodGet, fmt.Sprintf("/api/v1/transactions/%s", transactionID), nil)

	suite.Equal(http.StatusOK, w.Code)
	var resp dto.TransactionResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Len(resp.Entries, 2)
}

func (suite *PostingHandlerTestSuite) TestListTransactions_WithToken() {
	nextToken := "page-two"
	transactions := []domain.Transaction{
		{TransactionID: uuid.NewString(), TenantID: suite.tenantID, Amount: decimal.NewFromInt(100)},
	}

	suite.mockPostingSvc.On("ListTransactions", mock.Anything, suite.tenantID, dto.ListTransactionsParams{Limit: 10}).Return(transactions, nextToken, nil).Once()

	w := suite.performRequest(http.MethodGet, "/api/v1/transactions?limit=10", nil)

	suite.Equal(http.StatusOK, w.Code)
	var resp dto.ListTransactionsResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Len(resp.Transactions, 1)
	suite.Require().NotNil(resp.NextToken)
	suite.Equal(nextToken, *resp.NextToken)
}

func TestPostingHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(PostingHandlerTestSuite))
}
