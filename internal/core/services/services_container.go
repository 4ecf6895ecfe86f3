package services

import (
	portsrepo "github.com/finacct/backend/internal/core/ports/repositories"
	portssvc "github.com/finacct/backend/internal/core/ports/services"
	"github.com/finacct/backend/internal/platform/cache"
	"github.com/finacct/backend/internal/platform/config"
)

// NewServiceContainer creates a new service container with properly initialized dependencies
func NewServiceContainer(cfg *config.Config, repos portsrepo.RepositoryProvider, reportCache *cache.ReportCache) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	auditSink := NewAuditService(repos.AuditRepo)
	notificationSink := NewWebhookNotificationService(cfg.NotifyWebhookURL)

	container.AccountSvc = NewAccountRegistryService(repos.AccountRepo, auditSink, cfg.DefaultCurrency)

	container.PostingSvc = NewPostingService(
		repos.PostingRepo,
		repos.PeriodRepo,
		container.AccountSvc,
		auditSink,
		notificationSink,
		reportCache,
		cfg.LargeTxThreshold,
	)

	container.PeriodSvc = NewPeriodClosingService(
		repos.PeriodRepo,
		container.AccountSvc,
		auditSink,
		reportCache,
		cfg.DefaultCurrency,
	)

	container.RefundSvc = NewReversalService(
		repos.RefundRepo,
		repos.PostingRepo,
		auditSink,
		reportCache,
	)

	container.ReportingSvc = NewReportingService(repos.ReportingRepo, container.AccountSvc, reportCache)

	return container
}

// Compile-time interface checks
var (
	_ portssvc.AccountRegistrySvcFacade = (*AccountRegistryService)(nil)
	_ portssvc.PostingSvcFacade         = (*PostingService)(nil)
	_ portssvc.PeriodSvcFacade          = (*PeriodClosingService)(nil)
	_ portssvc.RefundSvcFacade          = (*ReversalService)(nil)
	_ portssvc.ReportingSvcFacade       = (*ReportingService)(nil)
)
