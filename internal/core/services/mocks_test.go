package services_test

import (
	"context"
	"time"

	"github.com/finacct/backend/internal/core/domain"
	portsrepo "github.com/finacct/backend/internal/core/ports/repositories"
	portssvc "github.com/finacct/backend/internal/core/ports/services"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
)

// --- Mock AccountRepository ---

type MockAccountRepository struct {
	mock.Mock
}

var _ portsrepo.AccountRepositoryFacade = (*MockAccountRepository)(nil)

func (m *MockAccountRepository) SaveAccount(ctx context.Context, account domain.Account) error {
	args := m.Called(ctx, account)
	return args.Error(0)
}

func (m *MockAccountRepository) FindAccountByID(ctx context.Context, accountID string) (*domain.Account, error) {
	args := m.Called(ctx, accountID)
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

func (m *MockAccountRepository) FindAccountByCode(ctx context.Context, tenantID string, code string) (*domain.Account, error) {
	args := m.Called(ctx, tenantID, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountRepository) FindAccountByTypeAndNamePattern(ctx context.Context, tenantID string, accountType domain.AccountType, pattern string) (*domain.Account, error) {
	args := m.Called(ctx, tenantID, accountType, pattern)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountRepository) ListAccountsByTenant(ctx context.Context, tenantID string) ([]domain.Account, error) {
	args := m.Called(ctx, tenantID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Account), args.Error(1)
}

func (m *MockAccountRepository) FindRoleAccountID(ctx context.Context, tenantID string, role domain.AccountRole) (string, error) {
	args := m.Called(ctx, tenantID, role)
	return args.String(0), args.Error(1)
}

func (m *MockAccountRepository) FindAccountsByCodePrefix(ctx context.Context, tenantID string, prefix string) ([]domain.Account, error) {
	args := m.Called(ctx, tenantID, prefix)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Account), args.Error(1)
}

func (m *MockAccountRepository) UpsertRoleMapping(ctx context.Context, tenantID string, role domain.AccountRole, accountID string) error {
	args := m.Called(ctx, tenantID, role, accountID)
	return args.Error(0)
}

func (m *MockAccountRepository) FindAccountsByIDsForUpdate(ctx context.Context, tx pgx.Tx, accountIDs []string) (map[string]domain.Account, error) {
	args := m.Called(ctx, tx, accountIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]domain.Account), args.Error(1)
}

// --- Mock PostingRepository ---

type MockPostingRepository struct {
	mock.Mock
}

var _ portsrepo.PostingRepositoryFacade = (*MockPostingRepository)(nil)

func (m *MockPostingRepository) SaveTransaction(ctx context.Context, transaction domain.Transaction, entries []domain.Entry) error {
	args := m.Called(ctx, transaction, entries)
	return args.Error(0)
}

func (m *MockPostingRepository) SaveReversal(ctx context.Context, transaction domain.Transaction, entries []domain.Entry, refundID string, approverUserID string) error {
	args := m.Called(ctx, transaction, entries, refundID, approverUserID)
	return args.Error(0)
}

func (m *MockPostingRepository) FindTransactionByID(ctx context.Context, transactionID string) (*domain.Transaction, error) {
	args := m.Called(ctx, transactionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Transaction), args.Error(1)
}

func (m *MockPostingRepository) FindEntriesByTransactionID(ctx context.Context, transactionID string) ([]domain.Entry, error) {
	args := m.Called(ctx, transactionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Entry), args.Error(1)
}

func (m *MockPostingRepository) ListTransactionsByTenant(ctx context.Context, tenantID string, limit int, nextToken *string) ([]domain.Transaction, *string, error) {
	args := m.Called(ctx, tenantID, limit, nextToken)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	var returnedNextToken *string
	if args.Get(1) != nil {
		tokenVal := args.Get(1).(string)
		returnedNextToken = &tokenVal
	}
	return args.Get(0).([]domain.Transaction), returnedNextToken, args.Error(2)
}

// --- Mock PeriodRepository ---

type MockPeriodRepository struct {
	mock.Mock
}

var _ portsrepo.PeriodRepositoryFacade = (*MockPeriodRepository)(nil)

func (m *MockPeriodRepository) FindClosedPeriodCovering(ctx context.Context, tenantID string, date time.Time) (*domain.PeriodClose, error) {
	args := m.Called(ctx, tenantID, date)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PeriodClose), args.Error(1)
}

func (m *MockPeriodRepository) FindPeriodClose(ctx context.Context, tenantID string, period string) (*domain.PeriodClose, error) {
	args := m.Called(ctx, tenantID, period)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PeriodClose), args.Error(1)
}

func (m *MockPeriodRepository) ListPeriodCloses(ctx context.Context, tenantID string) ([]domain.PeriodClose, error) {
	args := m.Called(ctx, tenantID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.PeriodClose), args.Error(1)
}

func (m *MockPeriodRepository) ClosePeriod(ctx context.Context, close domain.PeriodClose, accounts portsrepo.ClosingAccounts, closedByUserID string) (decimal.Decimal, *string, error) {
	args := m.Called(ctx, close, accounts, closedByUserID)
	var closingTxnID *string
	if args.Get(1) != nil {
		idVal := args.Get(1).(string)
		closingTxnID = &idVal
	}
	return args.Get(0).(decimal.Decimal), closingTxnID, args.Error(2)
}

// --- Mock RefundRepository ---

type MockRefundRepository struct {
	mock.Mock
}

var _ portsrepo.RefundRepositoryFacade = (*MockRefundRepository)(nil)

func (m *MockRefundRepository) FindRefundByID(ctx context.Context, tenantID string, refundID string) (*domain.Refund, error) {
	args := m.Called(ctx, tenantID, refundID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Refund), args.Error(1)
}

func (m *MockRefundRepository) FindActiveRefundForTransaction(ctx context.Context, tenantID string, originalTransactionID string) (*domain.Refund, error) {
	args := m.Called(ctx, tenantID, originalTransactionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Refund), args.Error(1)
}

func (m *MockRefundRepository) ListRefundsByTenant(ctx context.Context, tenantID string) ([]domain.Refund, error) {
	args := m.Called(ctx, tenantID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Refund), args.Error(1)
}

func (m *MockRefundRepository) SaveRefund(ctx context.Context, refund domain.Refund) error {
	args := m.Called(ctx, refund)
	return args.Error(0)
}

func (m *MockRefundRepository) UpdateRefundStatus(ctx context.Context, tenantID string, refundID string, status domain.RefundStatus, actorUserID string) error {
	args := m.Called(ctx, tenantID, refundID, status, actorUserID)
	return args.Error(0)
}

// --- Mock ReportingRepository ---

type MockReportingRepository struct {
	mock.Mock
}

var _ portsrepo.ReportingRepository = (*MockReportingRepository)(nil)

func (m *MockReportingRepository) GetTrialBalanceRows(ctx context.Context, tenantID string, start, end time.Time) ([]domain.TrialBalanceRow, error) {
	args := m.Called(ctx, tenantID, start, end)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.TrialBalanceRow), args.Error(1)
}

func (m *MockReportingRepository) GetBalanceSheetRows(ctx context.Context, tenantID string, asOf time.Time) ([]domain.Account, map[string]decimal.Decimal, error) {
	args := m.Called(ctx, tenantID, asOf)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	return args.Get(0).([]domain.Account), args.Get(1).(map[string]decimal.Decimal), args.Error(2)
}

func (m *MockReportingRepository) GetIncomeStatementTotals(ctx context.Context, tenantID string, start, end time.Time) (decimal.Decimal, decimal.Decimal, error) {
	args := m.Called(ctx, tenantID, start, end)
	return args.Get(0).(decimal.Decimal), args.Get(1).(decimal.Decimal), args.Error(2)
}

func (m *MockReportingRepository) GetCashFlowTotals(ctx context.Context, tenantID string, accountIDs []string, start, end time.Time) (decimal.Decimal, decimal.Decimal, error) {
	args := m.Called(ctx, tenantID, accountIDs, start, end)
	return args.Get(0).(decimal.Decimal), args.Get(1).(decimal.Decimal), args.Error(2)
}

func (m *MockReportingRepository) ListLedgerLines(ctx context.Context, tenantID string, accountID string, limit int, nextToken *string) ([]domain.LedgerLine, *string, error) {
	args := m.Called(ctx, tenantID, accountID, limit, nextToken)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	var returnedNextToken *string
	if args.Get(1) != nil {
		tokenVal := args.Get(1).(string)
		returnedNextToken = &tokenVal
	}
	return args.Get(0).([]domain.LedgerLine), returnedNextToken, args.Error(2)
}

// --- Mock AccountReaderSvc ---

type MockAccountReaderSvc struct {
	mock.Mock
}

var _ portssvc.AccountReaderSvc = (*MockAccountReaderSvc)(nil)

func (m *MockAccountReaderSvc) GetAccountByID(ctx context.Context, tenantID string, accountID string) (*domain.Account, error) {
	args := m.Called(ctx, tenantID, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountReaderSvc) GetAccountsByIDs(ctx context.Context, tenantID string, accountIDs []string) (map[string]domain.Account, error) {
	args := m.Called(ctx, tenantID, accountIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]domain.Account), args.Error(1)
}

func (m *MockAccountReaderSvc) FindByCode(ctx context.Context, tenantID string, code string) (*domain.Account, error) {
	args := m.Called(ctx, tenantID, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountReaderSvc) FindByTypeAndNamePattern(ctx context.Context, tenantID string, accountType domain.AccountType, pattern string) (*domain.Account, error) {
	args := m.Called(ctx, tenantID, accountType, pattern)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountReaderSvc) ListAccounts(ctx context.Context, tenantID string) ([]domain.Account, error) {
	args := m.Called(ctx, tenantID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Account), args.Error(1)
}

func (m *MockAccountReaderSvc) ResolveRoleAccount(ctx context.Context, tenantID string, role domain.AccountRole) (*domain.Account, error) {
	args := m.Called(ctx, tenantID, role)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

// --- Mock sinks ---

type MockAuditSink struct {
	mock.Mock
}

var _ portssvc.AuditSink = (*MockAuditSink)(nil)

func (m *MockAuditSink) Record(ctx context.Context, tenantID string, userID string, action string, details any) {
	m.Called(ctx, tenantID, userID, action, details)
}

type MockNotificationSink struct {
	mock.Mock
}

var _ portssvc.NotificationSink = (*MockNotificationSink)(nil)

func (m *MockNotificationSink) Notify(ctx context.Context, tenantID string, kind string, payload any) {
	m.Called(ctx, tenantID, kind, payload)
}

// --- Mock AuditLogRepository ---

type MockAuditLogRepository struct {
	mock.Mock
}

var _ portsrepo.AuditLogRepository = (*MockAuditLogRepository)(nil)

func (m *MockAuditLogRepository) SaveAuditLog(ctx context.Context, tenantID string, userID string, action string, details []byte) error {
	args := m.Called(ctx, tenantID, userID, action, details)
	return args.Error(0)
}
