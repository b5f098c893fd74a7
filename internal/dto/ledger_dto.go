package dto

import (
	"github.com/restopilot/resto_books_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// LedgerAccountResponse represents one projected account in the ledger view.
type LedgerAccountResponse struct {
	AccountID   string          `json:"accountID"`
	Code        string          `json:"code"`
	Name        string          `json:"name"`
	AccountType string          `json:"accountType"`
	DebitTotal  decimal.Decimal `json:"debitTotal"`
	CreditTotal decimal.Decimal `json:"creditTotal"`
	Balance     decimal.Decimal `json:"balance"`
}

// LedgerResponse wraps the full ledger projection of a restaurant.
type LedgerResponse struct {
	AsOf     string                  `json:"asOf"`
	Accounts []LedgerAccountResponse `json:"accounts"`
}

// ToLedgerAccountResponse converts a domain.LedgerAccount to a DTO.
func ToLedgerAccountResponse(la *domain.LedgerAccount) LedgerAccountResponse {
	return LedgerAccountResponse{
		AccountID:   la.AccountID,
		Code:        la.Code,
		Name:        la.Name,
		AccountType: string(la.AccountType),
		DebitTotal:  la.DebitTotal,
		CreditTotal: la.CreditTotal,
		Balance:     la.Balance,
	}
}

// ToLedgerResponse converts a ledger projection to a DTO response.
func ToLedgerResponse(accounts []domain.LedgerAccount, asOf string) LedgerResponse {
	list := make([]LedgerAccountResponse, len(accounts))
	for i, la := range accounts {
		list[i] = ToLedgerAccountResponse(&la)
	}
	return LedgerResponse{AsOf: asOf, Accounts: list}
}
