package services

import (
	"log/slog"

	portsrepo "github.com/MORPHEWS-SOVIDA/ledger-engine/internal/core/ports/repositories"
	portssvc "github.com/MORPHEWS-SOVIDA/ledger-engine/internal/core/ports/services"
	"github.com/MORPHEWS-SOVIDA/ledger-engine/internal/platform/config"
	"github.com/MORPHEWS-SOVIDA/ledger-engine/internal/utils"
)

// NewServiceContainer creates a new service container with properly initialized dependencies.
func NewServiceContainer(cfg *config.Config, repos portsrepo.RepositoryProvider, logger *slog.Logger, posthog *utils.PosthogClientWrapper) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	container.Organization = NewOrganizationService(repos.OrganizationRepo, cfg.DefaultFeePolicy())
	container.Account = NewAccountService(repos.AccountRepo, repos.TransactionRepo)
	container.Notifier = NewAsyncReversalNotifier(logger, posthog, cfg.NotifierQueueSize)

	container.Posting = NewPostingService(repos, container.Organization, container.Account, posthog)
	container.Reversal = NewReversalService(repos, container.Notifier, posthog)
	container.Reporting = NewReportingService(repos)

	return container
}
