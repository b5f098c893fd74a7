package services

import (
	"context"

	"github.com/restopilot/resto_books_app/internal/core/domain"
	"github.com/restopilot/resto_books_app/internal/dto"
	"github.com/shopspring/decimal"
)

// AccountReaderSvc defines read operations for account data
type AccountReaderSvc interface {
	// GetAccountByID retrieves a specific account by its unique identifier.
	GetAccountByID(ctx context.Context, restaurantID string, accountID string, userID string) (*domain.Account, error)

	// GetAccountByCode retrieves an account by its chart code within a restaurant.
	GetAccountByCode(ctx context.Context, restaurantID string, code string, userID string) (*domain.Account, error)

	// GetAccountsByIDs retrieves multiple accounts by their IDs.
	GetAccountsByIDs(ctx context.Context, restaurantID string, accountIDs []string, userID string) (map[string]domain.Account, error)

	// ListAccounts retrieves a paginated list of accounts for a given restaurant.
	ListAccounts(ctx context.Context, restaurantID string, userID string, limit int, offset int) ([]domain.Account, error)
}

// AccountWriterSvc defines write operations for account data
type AccountWriterSvc interface {
	// CreateAccount persists a new account.
	CreateAccount(ctx context.Context, restaurantID string, req dto.CreateAccountRequest, userID string) (*domain.Account, error)

	// UpdateAccount updates an existing account's details.
	UpdateAccount(ctx context.Context, restaurantID string, accountID string, req dto.UpdateAccountRequest, userID string) (*domain.Account, error)

	// DeactivateAccount marks an account as inactive.
	// Accounts holding a non-zero balance cannot be deactivated.
	DeactivateAccount(ctx context.Context, restaurantID string, accountID string, userID string) error
}

// AccountCalculatorSvc defines calculation operations for account data
type AccountCalculatorSvc interface {
	// CalculateAccountBalance calculates the current balance of an account.
	CalculateAccountBalance(ctx context.Context, restaurantID string, accountID string, userID string) (decimal.Decimal, error)
}

// AccountSvcFacade combines all account-related service interfaces
// This is a facade for clients that need access to all operations
type AccountSvcFacade interface {
	AccountReaderSvc
	AccountWriterSvc
	AccountCalculatorSvc
}
