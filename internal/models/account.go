package models

import "github.com/shopspring/decimal"

// AccountType mirrors domain.AccountType at the persistence layer.
type AccountType string

// Account is the persistence model for a chart-of-accounts row.
type Account struct {
	AccountID    string
	RestaurantID string
	Code         string
	Name         string
	AccountType  AccountType
	Description  string
	IsActive     bool
	Balance      decimal.Decimal
	AuditFields
}
