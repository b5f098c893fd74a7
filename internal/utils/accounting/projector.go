package accounting

import (
	"fmt"
	"sort"

	"github.com/restopilot/resto_books_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// Project folds every line of every non-draft entry into per-account debit
// and credit totals and a normal-side balance. It is a pure function: the
// result depends only on the inputs, and projecting the same collections
// twice yields identical output. Accounts with no activity are included with
// zero totals. The result is sorted by account code ascending.
//
// A line referencing an account missing from accounts fails with
// ErrUnknownAccount rather than being silently dropped.
func Project(accounts []domain.Account, entries []domain.JournalEntry) ([]domain.LedgerAccount, error) {
	byID := make(map[string]*domain.LedgerAccount, len(accounts))
	result := make([]domain.LedgerAccount, len(accounts))
	for i, acc := range accounts {
		result[i] = domain.LedgerAccount{
			AccountID:   acc.AccountID,
			Code:        acc.Code,
			Name:        acc.Name,
			AccountType: acc.AccountType,
			DebitTotal:  decimal.Zero,
			CreditTotal: decimal.Zero,
			Balance:     decimal.Zero,
		}
		byID[acc.AccountID] = &result[i]
	}

	for _, entry := range entries {
		if entry.Status == domain.Draft {
			continue
		}
		for _, line := range entry.Lines {
			la, ok := byID[line.AccountID]
			if !ok {
				return nil, fmt.Errorf("%w: account %s in entry %s", ErrUnknownAccount, line.AccountID, entry.EntryID)
			}
			switch line.Side {
			case domain.Debit:
				la.DebitTotal = la.DebitTotal.Add(line.Amount)
			case domain.Credit:
				la.CreditTotal = la.CreditTotal.Add(line.Amount)
			default:
				return nil, fmt.Errorf("unknown line side %q in entry %s", line.Side, entry.EntryID)
			}
		}
	}

	for i := range result {
		result[i].Balance = NormalBalance(result[i].AccountType, result[i].DebitTotal, result[i].CreditTotal)
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].Code < result[j].Code
	})

	return result, nil
}
