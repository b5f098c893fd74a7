package repositories

import (
	"context"
	"time"

	"github.com/restopilot/resto_books_app/internal/core/domain"
)

// ReportingRepository defines operations for retrieving financial report data.
// All queries fold only validated entries (reversal pairs excluded).
type ReportingRepository interface {
	// GetTrialBalanceData retrieves per-account debit/credit totals as of a date.
	GetTrialBalanceData(ctx context.Context, restaurantID string, asOf time.Time) ([]domain.TrialBalanceRow, error)

	// GetProfitAndLossData retrieves revenue and expense nets for a period.
	GetProfitAndLossData(ctx context.Context, restaurantID string, from, to time.Time) (revenue []domain.AccountAmount, expenses []domain.AccountAmount, err error)

	// GetBalanceSheetData retrieves asset, liability and equity nets as of a date.
	GetBalanceSheetData(ctx context.Context, restaurantID string, asOf time.Time) (assets []domain.AccountAmount, liabilities []domain.AccountAmount, equity []domain.AccountAmount, err error)

	// GetLedgerData retrieves the full per-account projection as of a date,
	// including accounts with no activity.
	GetLedgerData(ctx context.Context, restaurantID string, asOf time.Time) ([]domain.LedgerAccount, error)
}
