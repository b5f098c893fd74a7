package domain

import "github.com/shopspring/decimal"

// LedgerAccount is the projected state of one account: the running debit and
// credit totals of every journal line referencing it, and the resulting
// balance. It is derived, never persisted.
//
// Balance is normal-side signed: debitTotal-creditTotal for debit-normal
// types (ASSET, EXPENSE), creditTotal-debitTotal for credit-normal types
// (LIABILITY, EQUITY, REVENUE), so normal activity always yields a positive
// balance regardless of account type.
type LedgerAccount struct {
	AccountID   string          `json:"accountID"`
	Code        string          `json:"code"`
	Name        string          `json:"name"`
	AccountType AccountType     `json:"accountType"`
	DebitTotal  decimal.Decimal `json:"debitTotal"`
	CreditTotal decimal.Decimal `json:"creditTotal"`
	Balance     decimal.Decimal `json:"balance"`
}
