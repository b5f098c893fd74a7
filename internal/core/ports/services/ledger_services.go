package services

import (
	"context"
	"time"

	"github.com/restopilot/resto_books_app/internal/core/domain"
)

// LedgerService defines operations for projecting journal entries into
// per-account ledger aggregates.
type LedgerService interface {
	// GetLedger returns the ledger projection for every account of a
	// restaurant as of the given date. Accounts with no activity appear
	// with zero totals.
	GetLedger(ctx context.Context, restaurantID string, asOf time.Time, userID string) ([]domain.LedgerAccount, error)

	// GetAccountLedger returns the ledger projection for a single account.
	GetAccountLedger(ctx context.Context, restaurantID string, accountID string, asOf time.Time, userID string) (*domain.LedgerAccount, error)
}
