package pgsql

import (
	"github.com/jackc/pgx/v5/pgxpool"

	portsrepo "github.com/restopilot/resto_books_app/internal/core/ports/repositories"
)

// NewRepositoryProvider creates the full set of PostgreSQL-backed
// repositories sharing a single connection pool. The journal repository
// depends on the account repository for in-transaction balance updates.
func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	accountRepo := newPgxAccountRepository(dbPool)
	return portsrepo.RepositoryProvider{
		RestaurantRepo: newPgxRestaurantRepository(dbPool),
		AccountRepo:    accountRepo,
		JournalRepo:    newPgxJournalRepository(dbPool, accountRepo),
		ReportingRepo:  newPgxReportingRepository(dbPool),
	}
}
