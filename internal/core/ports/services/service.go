package services

// ServiceContainer aggregates all service facades for handler wiring
type ServiceContainer struct {
	AccountSvc   AccountRegistrySvcFacade
	PostingSvc   PostingSvcFacade
	PeriodSvc    PeriodSvcFacade
	RefundSvc    RefundSvcFacade
	ReportingSvc ReportingSvcFacade
}
