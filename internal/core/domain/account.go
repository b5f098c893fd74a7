package domain

import (
	"fmt"
	"regexp"

	"github.com/shopspring/decimal"
)

// AccountType defines the fundamental accounting type of an account.
type AccountType string

const (
	Asset     AccountType = "ASSET"
	Liability AccountType = "LIABILITY"
	Equity    AccountType = "EQUITY"
	Revenue   AccountType = "REVENUE"
	Expense   AccountType = "EXPENSE"
)

// AllAccountTypes lists the recognized account types.
var AllAccountTypes = []AccountType{Asset, Liability, Equity, Revenue, Expense}

// IsValidAccountType reports whether t is one of the recognized account types.
func IsValidAccountType(t AccountType) bool {
	switch t {
	case Asset, Liability, Equity, Revenue, Expense:
		return true
	}
	return false
}

// IsDebitNormal reports whether accounts of type t increase on the debit side.
func (t AccountType) IsDebitNormal() bool {
	return t == Asset || t == Expense
}

// Account represents one entry of a restaurant's chart of accounts.
// Codes follow the French plan comptable convention: the first digit is the
// account class (1..7) and determines the default account type.
type Account struct {
	AccountID    string          `json:"accountID"`    // Primary key (UUID)
	RestaurantID string          `json:"restaurantID"` // FK -> restaurants.restaurant_id
	Code         string          `json:"code"`         // Classification code, unique per restaurant (e.g. "512", "707")
	Name         string          `json:"name"`         // Human label
	AccountType  AccountType     `json:"accountType"`  // Stored redundantly; derived from Class unless overridden
	Description  string          `json:"description"`
	IsActive     bool            `json:"isActive"`
	Balance      decimal.Decimal `json:"balance"` // Persisted normal-side balance
	AuditFields
}

// Class returns the account class, i.e. the first byte of the code.
func (a Account) Class() byte {
	if a.Code == "" {
		return 0
	}
	return a.Code[0]
}

var accountCodeRe = regexp.MustCompile(`^[1-7][0-9]{1,7}$`)

// ValidateAccountCode checks that code is a well-formed chart-of-accounts code:
// digits only, 2 to 8 characters, first digit a recognized class 1..7.
func ValidateAccountCode(code string) error {
	if !accountCodeRe.MatchString(code) {
		return fmt.Errorf("invalid account code %q: expected 2-8 digits starting with a class 1-7", code)
	}
	return nil
}

// AccountTypeForClass derives the default account type from a class digit.
//
// 1=Equity, 2=Fixed assets, 3=Inventory, 4=Third parties, 5=Financial,
// 6=Expenses, 7=Revenue. Classes 2, 3 and 5 are debit-normal asset classes;
// class 4 defaults to payables (LIABILITY) and receivable accounts such as
// 411 override the type at creation.
func AccountTypeForClass(class byte) (AccountType, error) {
	switch class {
	case '1':
		return Equity, nil
	case '2', '3', '5':
		return Asset, nil
	case '4':
		return Liability, nil
	case '6':
		return Expense, nil
	case '7':
		return Revenue, nil
	default:
		return "", fmt.Errorf("unknown account class %q", string(class))
	}
}
