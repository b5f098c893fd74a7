package services

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/restopilot/resto_books_app/internal/core/domain"
	portsrepo "github.com/restopilot/resto_books_app/internal/core/ports/repositories"
	portssvc "github.com/restopilot/resto_books_app/internal/core/ports/services"
)

// reportingService implements the ReportingService interface
type reportingService struct {
	BaseService
	reportingRepo portsrepo.ReportingRepository
}

// ReportingServiceOption is a functional option for configuring the reporting service
type ReportingServiceOption func(*reportingService)

// WithReportingRestaurantAuthorizer sets the restaurant authorizer for the reporting service.
func WithReportingRestaurantAuthorizer(authorizer portssvc.RestaurantAuthorizerSvc) ReportingServiceOption {
	return func(s *reportingService) {
		s.RestaurantAuthorizer = authorizer
	}
}

// NewReportingService creates a new reporting service with the provided options
func NewReportingService(repo portsrepo.ReportingRepository, options ...ReportingServiceOption) portssvc.ReportingService {
	svc := &reportingService{
		reportingRepo: repo,
	}
	for _, option := range options {
		option(svc)
	}
	return svc
}

// Ensure reportingService implements the ReportingService interface
var _ portssvc.ReportingService = (*reportingService)(nil)

// TrialBalance generates a trial balance report as of a specific date.
// The report covers every account, sorted by code, and flags the books as
// unbalanced when total debits and credits diverge.
func (s *reportingService) TrialBalance(ctx context.Context, restaurantID string, asOf time.Time, userID string) (*domain.TrialBalance, error) {
	if err := s.AuthorizeUser(ctx, userID, restaurantID, domain.RoleReadOnly); err != nil {
		s.LogError(ctx, err, "User not authorized to view trial balance report",
			slog.String("user_id", userID),
			slog.String("restaurant_id", restaurantID))
		return nil, err
	}

	rows, err := s.reportingRepo.GetTrialBalanceData(ctx, restaurantID, asOf)
	if err != nil {
		s.LogError(ctx, err, "Failed to retrieve trial balance data",
			slog.String("restaurant_id", restaurantID),
			slog.String("asOf", asOf.Format(time.RFC3339)))
		return nil, fmt.Errorf("failed to retrieve trial balance data: %w", err)
	}

	sort.Slice(rows, func(i, j int) bool { return rows[i].Code < rows[j].Code })

	totalDebit := decimal.Zero
	totalCredit := decimal.Zero
	for _, row := range rows {
		totalDebit = totalDebit.Add(row.Debit)
		totalCredit = totalCredit.Add(row.Credit)
	}

	report := &domain.TrialBalance{
		AsOf:        asOf,
		Rows:        rows,
		TotalDebit:  totalDebit,
		TotalCredit: totalCredit,
		IsBalanced:  totalDebit.Equal(totalCredit),
	}

	if !report.IsBalanced {
		// Every entry is balance-checked at write time, so this indicates
		// corrupted data and must be surfaced loudly.
		s.LogWarn(ctx, "Trial balance does not balance",
			slog.String("restaurant_id", restaurantID),
			slog.String("total_debit", totalDebit.String()),
			slog.String("total_credit", totalCredit.String()))
	}

	s.LogInfo(ctx, "Trial balance report generated",
		slog.String("restaurant_id", restaurantID),
		slog.String("asOf", asOf.Format(time.RFC3339)),
		slog.Int("row_count", len(rows)))
	return report, nil
}

// ProfitAndLoss generates a profit and loss report for a specific period.
func (s *reportingService) ProfitAndLoss(ctx context.Context, restaurantID string, from, to time.Time, userID string) (*domain.PAndLReport, error) {
	if err := s.AuthorizeUser(ctx, userID, restaurantID, domain.RoleReadOnly); err != nil {
		s.LogError(ctx, err, "User not authorized to view profit and loss report",
			slog.String("user_id", userID),
			slog.String("restaurant_id", restaurantID))
		return nil, err
	}

	revenue, expenses, err := s.reportingRepo.GetProfitAndLossData(ctx, restaurantID, from, to)
	if err != nil {
		s.LogError(ctx, err, "Failed to retrieve profit and loss data",
			slog.String("restaurant_id", restaurantID),
			slog.String("from", from.Format(time.RFC3339)),
			slog.String("to", to.Format(time.RFC3339)))
		return nil, fmt.Errorf("failed to retrieve profit and loss data: %w", err)
	}

	sortAccountAmounts(revenue)
	sortAccountAmounts(expenses)

	totalRevenue := sumAccountAmounts(revenue)
	totalExpenses := sumAccountAmounts(expenses)

	report := &domain.PAndLReport{
		From:          from,
		To:            to,
		Revenue:       revenue,
		Expenses:      expenses,
		TotalRevenue:  totalRevenue,
		TotalExpenses: totalExpenses,
		NetProfit:     totalRevenue.Sub(totalExpenses),
	}

	s.LogInfo(ctx, "Profit and loss report generated",
		slog.String("restaurant_id", restaurantID),
		slog.String("from", from.Format(time.RFC3339)),
		slog.String("to", to.Format(time.RFC3339)),
		slog.Int("revenue_accounts", len(revenue)),
		slog.Int("expense_accounts", len(expenses)))
	return report, nil
}

// BalanceSheet generates a balance sheet report as of a specific date. The
// period's net profit is injected into Equity as a pseudo-equity row, which
// is what makes the accounting identity hold before year-end closing.
func (s *reportingService) BalanceSheet(ctx context.Context, restaurantID string, asOf time.Time, userID string) (*domain.BalanceSheetReport, error) {
	if err := s.AuthorizeUser(ctx, userID, restaurantID, domain.RoleReadOnly); err != nil {
		s.LogError(ctx, err, "User not authorized to view balance sheet report",
			slog.String("user_id", userID),
			slog.String("restaurant_id", restaurantID))
		return nil, err
	}

	assets, liabilities, equity, err := s.reportingRepo.GetBalanceSheetData(ctx, restaurantID, asOf)
	if err != nil {
		s.LogError(ctx, err, "Failed to retrieve balance sheet data",
			slog.String("restaurant_id", restaurantID),
			slog.String("asOf", asOf.Format(time.RFC3339)))
		return nil, fmt.Errorf("failed to retrieve balance sheet data: %w", err)
	}

	// Net profit over the whole life of the books up to asOf. Revenue and
	// expense accounts are never closed into equity here, so their running
	// result is what bridges the two sides of the balance sheet.
	revenue, expenses, err := s.reportingRepo.GetProfitAndLossData(ctx, restaurantID, time.Time{}, asOf)
	if err != nil {
		s.LogError(ctx, err, "Failed to retrieve result data for balance sheet",
			slog.String("restaurant_id", restaurantID))
		return nil, fmt.Errorf("failed to retrieve result data: %w", err)
	}
	netProfit := sumAccountAmounts(revenue).Sub(sumAccountAmounts(expenses))

	if !netProfit.IsZero() {
		resultName := "Résultat de l'exercice"
		if ca := domain.LookupChartAccount(domain.ResultAccountCode); ca != nil {
			resultName = ca.Name
		}
		equity = append(equity, domain.AccountAmount{
			Code:      domain.ResultAccountCode,
			Name:      resultName,
			NetAmount: netProfit,
		})
	}

	sortAccountAmounts(assets)
	sortAccountAmounts(liabilities)
	sortAccountAmounts(equity)

	totalAssets := sumAccountAmounts(assets)
	totalLiabilities := sumAccountAmounts(liabilities)
	totalEquity := sumAccountAmounts(equity)

	report := &domain.BalanceSheetReport{
		AsOf:             asOf,
		Assets:           assets,
		Liabilities:      liabilities,
		Equity:           equity,
		TotalAssets:      totalAssets,
		TotalLiabilities: totalLiabilities,
		TotalEquity:      totalEquity,
		NetProfit:        netProfit,
		IsBalanced:       totalAssets.Equal(totalLiabilities.Add(totalEquity)),
	}

	if !report.IsBalanced {
		s.LogWarn(ctx, "Balance sheet does not balance",
			slog.String("restaurant_id", restaurantID),
			slog.String("total_assets", totalAssets.String()),
			slog.String("total_liabilities", totalLiabilities.String()),
			slog.String("total_equity", totalEquity.String()))
	}

	s.LogInfo(ctx, "Balance sheet report generated",
		slog.String("restaurant_id", restaurantID),
		slog.String("asOf", asOf.Format(time.RFC3339)),
		slog.Int("asset_accounts", len(assets)),
		slog.Int("liability_accounts", len(liabilities)),
		slog.Int("equity_accounts", len(equity)))
	return report, nil
}

func sumAccountAmounts(amounts []domain.AccountAmount) decimal.Decimal {
	total := decimal.Zero
	for _, a := range amounts {
		total = total.Add(a.NetAmount)
	}
	return total
}

func sortAccountAmounts(amounts []domain.AccountAmount) {
	sort.Slice(amounts, func(i, j int) bool { return amounts[i].Code < amounts[j].Code })
}
