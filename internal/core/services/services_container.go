package services

import (
	portsrepo "github.com/restopilot/resto_books_app/internal/core/ports/repositories"
	portssvc "github.com/restopilot/resto_books_app/internal/core/ports/services"
	"github.com/restopilot/resto_books_app/pkg/config"
)

// NewServiceContainer creates a new service container with properly initialized dependencies
func NewServiceContainer(cfg *config.Config, repos portsrepo.RepositoryProvider) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	// Initialize restaurant service first since other services depend on it
	container.Restaurant = NewRestaurantService(repos.RestaurantRepo, repos.AccountRepo)

	// Create restaurant authorizer for service dependencies
	restaurantAuthorizer := container.Restaurant.(portssvc.RestaurantAuthorizerSvc)

	container.Account = NewAccountService(
		repos.AccountRepo,
		WithRestaurantAuthorizer(restaurantAuthorizer),
	)

	container.Journal = NewJournalService(repos.JournalRepo, container.Account, container.Restaurant)
	container.Ledger = NewLedgerService(repos.ReportingRepo, WithLedgerRestaurantAuthorizer(restaurantAuthorizer))
	container.Reporting = NewReportingService(repos.ReportingRepo, WithReportingRestaurantAuthorizer(restaurantAuthorizer))

	return container
}

// Helper to check interface implementations at compile time
var (
	_ portssvc.AccountSvcFacade    = (*accountService)(nil)
	_ portssvc.RestaurantSvcFacade = (*restaurantService)(nil)
	_ portssvc.JournalSvcFacade    = (*journalService)(nil)
	_ portssvc.LedgerService       = (*ledgerService)(nil)
	_ portssvc.ReportingService    = (*reportingService)(nil)
)
