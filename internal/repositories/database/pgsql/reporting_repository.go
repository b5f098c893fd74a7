package pgsql

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/restopilot/resto_books_app/internal/apperrors"
	"github.com/restopilot/resto_books_app/internal/core/domain"
	portsrepo "github.com/restopilot/resto_books_app/internal/core/ports/repositories"
)

// Reporting queries fold only validated entries. Reversed originals and
// their reversal counter-entries cancel each other out arithmetically, but
// excluding both keeps the reports free of offsetting noise.
const validEntriesFilter = `e.status = 'VALIDATED' AND e.original_entry_id IS NULL`

type PgxReportingRepository struct {
	BaseRepository
}

func newPgxReportingRepository(pool *pgxpool.Pool) portsrepo.ReportingRepository {
	return &PgxReportingRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.ReportingRepository = (*PgxReportingRepository)(nil)

// GetTrialBalanceData aggregates per-account debit and credit totals over
// validated entries dated on or before asOf.
func (r *PgxReportingRepository) GetTrialBalanceData(ctx context.Context, restaurantID string, asOf time.Time) ([]domain.TrialBalanceRow, error) {
	query := `
		SELECT a.account_id, a.code, a.name, a.account_type,
		       COALESCE(SUM(CASE WHEN l.side = 'DEBIT' THEN l.amount ELSE 0 END), 0)  AS total_debit,
		       COALESCE(SUM(CASE WHEN l.side = 'CREDIT' THEN l.amount ELSE 0 END), 0) AS total_credit
		FROM journal_lines l
		JOIN journal_entries e ON l.entry_id = e.entry_id
		JOIN accounts a ON l.account_id = a.account_id
		WHERE e.restaurant_id = $1 AND e.entry_date <= $2 AND ` + validEntriesFilter + `
		GROUP BY a.account_id, a.code, a.name, a.account_type
		ORDER BY a.code;
	`
	rows, err := r.Pool.Query(ctx, query, restaurantID, asOf)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query trial balance data for restaurant "+restaurantID, err)
	}
	defer rows.Close()

	result := []domain.TrialBalanceRow{}
	for rows.Next() {
		var row domain.TrialBalanceRow
		var accountType string
		if err := rows.Scan(&row.AccountID, &row.Code, &row.AccountName, &accountType, &row.Debit, &row.Credit); err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan trial balance row for restaurant "+restaurantID, err)
		}
		row.AccountType = domain.AccountType(accountType)
		result = append(result, row)
	}

	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating trial balance rows for restaurant "+restaurantID, err)
	}

	return result, nil
}

// GetProfitAndLossData retrieves per-account nets for revenue and expense
// accounts over the period. Revenue accounts carry credit-normal balances,
// so their net is credit minus debit; expenses are the opposite.
func (r *PgxReportingRepository) GetProfitAndLossData(ctx context.Context, restaurantID string, from, to time.Time) ([]domain.AccountAmount, []domain.AccountAmount, error) {
	query := `
		SELECT a.account_id, a.code, a.name, a.account_type,
		       COALESCE(SUM(CASE WHEN l.side = 'DEBIT' THEN l.amount ELSE -l.amount END), 0) AS net_debit
		FROM journal_lines l
		JOIN journal_entries e ON l.entry_id = e.entry_id
		JOIN accounts a ON l.account_id = a.account_id
		WHERE e.restaurant_id = $1
		  AND e.entry_date >= $2 AND e.entry_date <= $3
		  AND a.account_type IN ('REVENUE', 'EXPENSE')
		  AND ` + validEntriesFilter + `
		GROUP BY a.account_id, a.code, a.name, a.account_type
		ORDER BY a.code;
	`
	rows, err := r.Pool.Query(ctx, query, restaurantID, from, to)
	if err != nil {
		return nil, nil, apperrors.NewAppError(500, "failed to query P&L data for restaurant "+restaurantID, err)
	}
	defer rows.Close()

	revenue := []domain.AccountAmount{}
	expenses := []domain.AccountAmount{}
	for rows.Next() {
		var item domain.AccountAmount
		var accountType string
		if err := rows.Scan(&item.AccountID, &item.Code, &item.Name, &accountType, &item.NetAmount); err != nil {
			return nil, nil, apperrors.NewAppError(500, "failed to scan P&L row for restaurant "+restaurantID, err)
		}
		switch domain.AccountType(accountType) {
		case domain.Revenue:
			item.NetAmount = item.NetAmount.Neg()
			revenue = append(revenue, item)
		case domain.Expense:
			expenses = append(expenses, item)
		}
	}

	if err := rows.Err(); err != nil {
		return nil, nil, apperrors.NewAppError(500, "error iterating P&L rows for restaurant "+restaurantID, err)
	}

	return revenue, expenses, nil
}

// GetBalanceSheetData retrieves per-account nets for assets, liabilities and
// equity as of a date. Assets carry debit-normal balances; liabilities and
// equity are negated to their credit-normal presentation.
func (r *PgxReportingRepository) GetBalanceSheetData(ctx context.Context, restaurantID string, asOf time.Time) ([]domain.AccountAmount, []domain.AccountAmount, []domain.AccountAmount, error) {
	query := `
		SELECT a.account_id, a.code, a.name, a.account_type,
		       COALESCE(SUM(CASE WHEN l.side = 'DEBIT' THEN l.amount ELSE -l.amount END), 0) AS net_debit
		FROM journal_lines l
		JOIN journal_entries e ON l.entry_id = e.entry_id
		JOIN accounts a ON l.account_id = a.account_id
		WHERE e.restaurant_id = $1
		  AND e.entry_date <= $2
		  AND a.account_type IN ('ASSET', 'LIABILITY', 'EQUITY')
		  AND ` + validEntriesFilter + `
		GROUP BY a.account_id, a.code, a.name, a.account_type
		ORDER BY a.code;
	`
	rows, err := r.Pool.Query(ctx, query, restaurantID, asOf)
	if err != nil {
		return nil, nil, nil, apperrors.NewAppError(500, "failed to query balance sheet data for restaurant "+restaurantID, err)
	}
	defer rows.Close()

	assets := []domain.AccountAmount{}
	liabilities := []domain.AccountAmount{}
	equity := []domain.AccountAmount{}
	for rows.Next() {
		var item domain.AccountAmount
		var accountType string
		if err := rows.Scan(&item.AccountID, &item.Code, &item.Name, &accountType, &item.NetAmount); err != nil {
			return nil, nil, nil, apperrors.NewAppError(500, "failed to scan balance sheet row for restaurant "+restaurantID, err)
		}
		switch domain.AccountType(accountType) {
		case domain.Asset:
			assets = append(assets, item)
		case domain.Liability:
			item.NetAmount = item.NetAmount.Neg()
			liabilities = append(liabilities, item)
		case domain.Equity:
			item.NetAmount = item.NetAmount.Neg()
			equity = append(equity, item)
		}
	}

	if err := rows.Err(); err != nil {
		return nil, nil, nil, apperrors.NewAppError(500, "error iterating balance sheet rows for restaurant "+restaurantID, err)
	}

	return assets, liabilities, equity, nil
}

// GetLedgerData retrieves the per-account debit/credit totals as of a date.
// The LEFT JOIN keeps accounts with no activity in the projection with zero
// totals.
func (r *PgxReportingRepository) GetLedgerData(ctx context.Context, restaurantID string, asOf time.Time) ([]domain.LedgerAccount, error) {
	query := `
		SELECT a.account_id, a.code, a.name, a.account_type,
		       COALESCE(SUM(CASE WHEN e.entry_id IS NOT NULL AND l.side = 'DEBIT' THEN l.amount ELSE 0 END), 0)  AS total_debit,
		       COALESCE(SUM(CASE WHEN e.entry_id IS NOT NULL AND l.side = 'CREDIT' THEN l.amount ELSE 0 END), 0) AS total_credit
		FROM accounts a
		LEFT JOIN journal_lines l ON l.account_id = a.account_id
		LEFT JOIN journal_entries e ON l.entry_id = e.entry_id
		                            AND e.entry_date <= $2
		                            AND ` + validEntriesFilter + `
		WHERE a.restaurant_id = $1 AND a.is_active = TRUE
		GROUP BY a.account_id, a.code, a.name, a.account_type
		ORDER BY a.code;
	`
	rows, err := r.Pool.Query(ctx, query, restaurantID, asOf)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query ledger data for restaurant "+restaurantID, err)
	}
	defer rows.Close()

	result := []domain.LedgerAccount{}
	for rows.Next() {
		var acc domain.LedgerAccount
		var accountType string
		if err := rows.Scan(&acc.AccountID, &acc.Code, &acc.Name, &accountType, &acc.DebitTotal, &acc.CreditTotal); err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan ledger row for restaurant "+restaurantID, err)
		}
		acc.AccountType = domain.AccountType(accountType)
		result = append(result, acc)
	}

	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating ledger rows for restaurant "+restaurantID, err)
	}

	return result, nil
}
