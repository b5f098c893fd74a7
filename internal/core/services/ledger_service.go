package services

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/restopilot/resto_books_app/internal/apperrors"
	"github.com/restopilot/resto_books_app/internal/core/domain"
	portsrepo "github.com/restopilot/resto_books_app/internal/core/ports/repositories"
	portssvc "github.com/restopilot/resto_books_app/internal/core/ports/services"
	"github.com/restopilot/resto_books_app/internal/utils/accounting"
)

// ledgerService implements the LedgerService interface.
type ledgerService struct {
	BaseService
	reportingRepo portsrepo.ReportingRepository
}

// LedgerServiceOption is a functional option for configuring the ledger service
type LedgerServiceOption func(*ledgerService)

// WithLedgerRestaurantAuthorizer sets the restaurant authorizer for the ledger service.
func WithLedgerRestaurantAuthorizer(authorizer portssvc.RestaurantAuthorizerSvc) LedgerServiceOption {
	return func(s *ledgerService) {
		s.RestaurantAuthorizer = authorizer
	}
}

// NewLedgerService creates a new ledger service with the provided options
func NewLedgerService(repo portsrepo.ReportingRepository, options ...LedgerServiceOption) portssvc.LedgerService {
	svc := &ledgerService{
		reportingRepo: repo,
	}
	for _, option := range options {
		option(svc)
	}
	return svc
}

// Ensure ledgerService implements the LedgerService interface
var _ portssvc.LedgerService = (*ledgerService)(nil)

// GetLedger returns the per-account projection of every validated entry as of
// the given date. Accounts with no activity appear with zero totals, so the
// result always covers the full chart.
func (s *ledgerService) GetLedger(ctx context.Context, restaurantID string, asOf time.Time, userID string) ([]domain.LedgerAccount, error) {
	if err := s.AuthorizeUser(ctx, userID, restaurantID, domain.RoleReadOnly); err != nil {
		s.LogError(ctx, err, "User not authorized to view ledger",
			slog.String("user_id", userID),
			slog.String("restaurant_id", restaurantID))
		return nil, err
	}

	accounts, err := s.reportingRepo.GetLedgerData(ctx, restaurantID, asOf)
	if err != nil {
		s.LogError(ctx, err, "Failed to retrieve ledger data",
			slog.String("restaurant_id", restaurantID),
			slog.String("asOf", asOf.Format(time.RFC3339)))
		return nil, fmt.Errorf("failed to retrieve ledger data: %w", err)
	}

	// The repository returns raw debit and credit totals; the normal-side
	// balance is derived here so the sign convention lives in one place.
	for i := range accounts {
		accounts[i].Balance = accounting.NormalBalance(accounts[i].AccountType, accounts[i].DebitTotal, accounts[i].CreditTotal)
	}

	sort.Slice(accounts, func(i, j int) bool { return accounts[i].Code < accounts[j].Code })

	s.LogInfo(ctx, "Ledger projected",
		slog.String("restaurant_id", restaurantID),
		slog.String("asOf", asOf.Format(time.RFC3339)),
		slog.Int("account_count", len(accounts)))
	return accounts, nil
}

// GetAccountLedger returns the ledger projection for a single account.
func (s *ledgerService) GetAccountLedger(ctx context.Context, restaurantID string, accountID string, asOf time.Time, userID string) (*domain.LedgerAccount, error) {
	accounts, err := s.GetLedger(ctx, restaurantID, asOf, userID)
	if err != nil {
		return nil, err
	}

	for i := range accounts {
		if accounts[i].AccountID == accountID {
			return &accounts[i], nil
		}
	}
	return nil, fmt.Errorf("%w: account %s", apperrors.ErrNotFound, accountID)
}
