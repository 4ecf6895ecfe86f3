package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/finacct/backend/internal/apperrors"
	"github.com/finacct/backend/internal/core/domain"
	portsrepo "github.com/finacct/backend/internal/core/ports/repositories"
	portssvc "github.com/finacct/backend/internal/core/ports/services"
	"github.com/finacct/backend/internal/dto"
	"github.com/finacct/backend/internal/middleware"
	"github.com/google/uuid"
)

// roleFallbackCodes maps system roles to the conventional account codes used
// by tenants bootstrapped before explicit role mappings existed.
var roleFallbackCodes = map[domain.AccountRole]string{
	domain.RoleRetainedEarnings: domain.CodeRetainedEarnings,
	domain.RoleIncomeSummary:    domain.CodeIncomeSummary,
}

type AccountRegistryService struct {
	accountRepo     portsrepo.AccountRepositoryFacade
	auditSink       portssvc.AuditSink
	defaultCurrency string
}

func NewAccountRegistryService(repo portsrepo.AccountRepositoryFacade, auditSink portssvc.AuditSink, defaultCurrency string) *AccountRegistryService {
	return &AccountRegistryService{
		accountRepo:     repo,
		auditSink:       auditSink,
		defaultCurrency: defaultCurrency,
	}
}

var _ portssvc.AccountRegistrySvcFacade = (*AccountRegistryService)(nil)

// CreateAccount validates the account type, defaults the currency and
// persists the new account.
func (s *AccountRegistryService) CreateAccount(ctx context.Context, tenantID string, req dto.CreateAccountRequest, userID string) (*domain.Account, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	accountType, ok := domain.NormalizeAccountType(req.AccountType)
	if !ok {
		return nil, fmt.Errorf("%w: unknown account type %q", apperrors.ErrValidation, req.AccountType)
	}

	currency := req.CurrencyCode
	if currency == "" {
		currency = s.defaultCurrency
	}

	now := time.Now()
	account := domain.Account{
		AccountID:    uuid.NewString(),
		TenantID:     tenantID,
		Code:         req.Code,
		Name:         req.Name,
		AccountType:  accountType,
		CurrencyCode: currency,
		IsActive:     true,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}

	if err := s.accountRepo.SaveAccount(ctx, account); err != nil {
		if !errors.Is(err, apperrors.ErrDuplicate) {
			logger.Error("Failed to save account", slog.String("error", err.Error()), slog.String("code", req.Code))
		}
		return nil, err
	}

	s.auditSink.Record(ctx, tenantID, userID, "ACCOUNT_CREATED", map[string]string{
		"accountID": account.AccountID,
		"code":      account.Code,
	})
	logger.Info("Account created", slog.String("account_id", account.AccountID), slog.String("code", account.Code))
	return &account, nil
}

// GetAccountByID retrieves an account, enforcing tenant ownership.
func (s *AccountRegistryService) GetAccountByID(ctx context.Context, tenantID string, accountID string) (*domain.Account, error) {
	account, err := s.accountRepo.FindAccountByID(ctx, accountID)
	if err != nil {
		return nil, err
	}
	if account.TenantID != tenantID {
		// Foreign accounts are indistinguishable from missing ones
		return nil, apperrors.ErrNotFound
	}
	return account, nil
}

// GetAccountsByIDs retrieves multiple accounts, failing when any id is
// missing or belongs to another tenant.
func (s *AccountRegistryService) GetAccountsByIDs(ctx context.Context, tenantID string, accountIDs []string) (map[string]domain.Account, error) {
	accounts, err := s.accountRepo.FindAccountsByIDs(ctx, accountIDs)
	if err != nil {
		return nil, err
	}
	for _, id := range accountIDs {
		acc, ok := accounts[id]
		if !ok || acc.TenantID != tenantID {
			return nil, fmt.Errorf("%w: account %s", apperrors.ErrAccountNotFound, id)
		}
	}
	return accounts, nil
}

// FindByCode retrieves the tenant's account with the given code.
func (s *AccountRegistryService) FindByCode(ctx context.Context, tenantID string, code string) (*domain.Account, error) {
	account, err := s.accountRepo.FindAccountByCode(ctx, tenantID, code)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: no account with code %s", apperrors.ErrAccountNotFound, code)
		}
		return nil, err
	}
	return account, nil
}

// FindByTypeAndNamePattern retrieves an account by type and name substring.
// The error message names the pattern so callers can tell users which account
// to create.
func (s *AccountRegistryService) FindByTypeAndNamePattern(ctx context.Context, tenantID string, accountType domain.AccountType, pattern string) (*domain.Account, error) {
	account, err := s.accountRepo.FindAccountByTypeAndNamePattern(ctx, tenantID, accountType, pattern)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: no %s account matching %q", apperrors.ErrAccountNotFound, accountType, pattern)
		}
		return nil, err
	}
	return account, nil
}

// ListAccounts retrieves the tenant's chart ordered by code.
func (s *AccountRegistryService) ListAccounts(ctx context.Context, tenantID string) ([]domain.Account, error) {
	logger := middleware.GetLoggerFromCtx(ctx)
	accounts, err := s.accountRepo.ListAccountsByTenant(ctx, tenantID)
	if err != nil {
		logger.Error("Failed to list accounts", slog.String("error", err.Error()))
		return nil, err
	}
	if accounts == nil {
		return []domain.Account{}, nil
	}
	return accounts, nil
}

// ResolveRoleAccount resolves a system role to the tenant's account via the
// explicit mapping table, falling back to the conventional code (retained
// earnings and income summary only), then to the code prefix for cash.
func (s *AccountRegistryService) ResolveRoleAccount(ctx context.Context, tenantID string, role domain.AccountRole) (*domain.Account, error) {
	accountID, err := s.accountRepo.FindRoleAccountID(ctx, tenantID, role)
	if err == nil {
		return s.GetAccountByID(ctx, tenantID, accountID)
	}
	if !errors.Is(err, apperrors.ErrNotFound) {
		return nil, err
	}

	if code, ok := roleFallbackCodes[role]; ok {
		account, err := s.accountRepo.FindAccountByCode(ctx, tenantID, code)
		if err == nil {
			return account, nil
		}
		if !errors.Is(err, apperrors.ErrNotFound) {
			return nil, err
		}
	}

	if role == domain.RoleCash {
		accounts, err := s.accountRepo.FindAccountsByCodePrefix(ctx, tenantID, domain.CashCodePrefix)
		if err != nil {
			return nil, err
		}
		if len(accounts) > 0 {
			return &accounts[0], nil
		}
	}

	return nil, fmt.Errorf("%w: role %s is not mapped for tenant", apperrors.ErrMissingSystemAccount, role)
}

// AssignRole maps a system role to an account after verifying ownership.
func (s *AccountRegistryService) AssignRole(ctx context.Context, tenantID string, req dto.AssignRoleRequest, userID string) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	if _, err := s.GetAccountByID(ctx, tenantID, req.AccountID); err != nil {
		return err
	}

	if err := s.accountRepo.UpsertRoleMapping(ctx, tenantID, req.Role, req.AccountID); err != nil {
		logger.Error("Failed to assign role", slog.String("error", err.Error()), slog.String("role", string(req.Role)))
		return err
	}

	s.auditSink.Record(ctx, tenantID, userID, "ACCOUNT_ROLE_ASSIGNED", map[string]string{
		"role":      string(req.Role),
		"accountID": req.AccountID,
	})
	logger.Info("Role assigned", slog.String("role", string(req.Role)), slog.String("account_id", req.AccountID))
	return nil
}
