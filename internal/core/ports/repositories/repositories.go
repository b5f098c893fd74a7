package repositories

// RepositoryProvider holds all repository interfaces needed by services.
type RepositoryProvider struct {
	RestaurantRepo RestaurantRepositoryFacade
	AccountRepo    AccountRepositoryFacade
	JournalRepo    JournalRepositoryWithTx
	ReportingRepo  ReportingRepository
}
