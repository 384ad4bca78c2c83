package services

// ServiceContainer holds all service facades, wired once at startup.
type ServiceContainer struct {
	Account      AccountSvcFacade
	Organization OrganizationSvcFacade
	Posting      PostingSvcFacade
	Reversal     ReversalSvcFacade
	Reporting    ReportingSvcFacade
	Notifier     ReversalNotifier
}
