package services

import (
	"context"
	"time"

	"github.com/restopilot/resto_books_app/internal/core/domain"
)

// ReportingService defines operations for generating financial reports
type ReportingService interface {
	// TrialBalance generates a trial balance report as of a specific date
	TrialBalance(ctx context.Context, restaurantID string, asOf time.Time, userID string) (*domain.TrialBalance, error)

	// ProfitAndLoss generates a profit and loss report for a specific period
	ProfitAndLoss(ctx context.Context, restaurantID string, from, to time.Time, userID string) (*domain.PAndLReport, error)

	// BalanceSheet generates a balance sheet report as of a specific date
	BalanceSheet(ctx context.Context, restaurantID string, asOf time.Time, userID string) (*domain.BalanceSheetReport, error)
}
