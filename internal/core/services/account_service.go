package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/restopilot/resto_books_app/internal/apperrors"
	"github.com/restopilot/resto_books_app/internal/core/domain"
	portsrepo "github.com/restopilot/resto_books_app/internal/core/ports/repositories"
	portssvc "github.com/restopilot/resto_books_app/internal/core/ports/services"
	"github.com/restopilot/resto_books_app/internal/dto"
)

// accountService implements the AccountSvcFacade interface
type accountService struct {
	BaseService
	accountRepo portsrepo.AccountRepositoryFacade
}

// AccountServiceOption is a functional option for configuring the account service
type AccountServiceOption func(*accountService)

// WithRestaurantAuthorizer adds the restaurant authorizer dependency
func WithRestaurantAuthorizer(authorizer portssvc.RestaurantAuthorizerSvc) AccountServiceOption {
	return func(s *accountService) {
		s.RestaurantAuthorizer = authorizer
	}
}

// NewAccountService creates a new account service with the provided options
func NewAccountService(repo portsrepo.AccountRepositoryFacade, options ...AccountServiceOption) portssvc.AccountSvcFacade {
	svc := &accountService{
		accountRepo: repo,
	}
	for _, option := range options {
		option(svc)
	}
	return svc
}

// Ensure accountService implements the AccountSvcFacade interface
var _ portssvc.AccountSvcFacade = (*accountService)(nil)

// CreateAccount validates the chart code, derives the account type from its
// class digit (unless explicitly overridden, e.g. 411 Clients as an ASSET)
// and persists the account.
func (s *accountService) CreateAccount(ctx context.Context, restaurantID string, req dto.CreateAccountRequest, userID string) (*domain.Account, error) {
	if err := s.AuthorizeUser(ctx, userID, restaurantID, domain.RoleManager); err != nil {
		s.LogError(ctx, err, "User not authorized to create account",
			slog.String("user_id", userID),
			slog.String("restaurant_id", restaurantID))
		return nil, err
	}

	if err := domain.ValidateAccountCode(req.Code); err != nil {
		return nil, fmt.Errorf("%w: %s", apperrors.ErrValidation, err.Error())
	}

	accountType, err := domain.AccountTypeForClass(req.Code[0])
	if err != nil {
		return nil, fmt.Errorf("%w: %s", apperrors.ErrValidation, err.Error())
	}
	if req.AccountType != nil {
		if !domain.IsValidAccountType(*req.AccountType) {
			return nil, fmt.Errorf("%w: unknown account type %q", apperrors.ErrValidation, *req.AccountType)
		}
		accountType = *req.AccountType
	}

	now := time.Now().UTC()
	account := domain.Account{
		AccountID:    uuid.NewString(),
		RestaurantID: restaurantID,
		Code:         req.Code,
		Name:         req.Name,
		AccountType:  accountType,
		Description:  req.Description,
		IsActive:     true,
		Balance:      decimal.Zero,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}

	if err := s.accountRepo.SaveAccount(ctx, account); err != nil {
		if errors.Is(err, apperrors.ErrDuplicate) {
			s.LogWarn(ctx, "Duplicate account code",
				slog.String("code", req.Code),
				slog.String("restaurant_id", restaurantID))
			return nil, fmt.Errorf("%w: account code %s already exists in restaurant %s", apperrors.ErrDuplicate, req.Code, restaurantID)
		}
		s.LogError(ctx, err, "Failed to save account",
			slog.String("account_id", account.AccountID),
			slog.String("restaurant_id", restaurantID))
		return nil, err
	}

	s.LogInfo(ctx, "Account created successfully",
		slog.String("account_id", account.AccountID),
		slog.String("code", account.Code),
		slog.String("restaurant_id", restaurantID))
	return &account, nil
}

func (s *accountService) GetAccountByID(ctx context.Context, restaurantID string, accountID string, userID string) (*domain.Account, error) {
	if err := s.AuthorizeUser(ctx, userID, restaurantID, domain.RoleReadOnly); err != nil {
		return nil, err
	}

	account, err := s.accountRepo.FindAccountByID(ctx, accountID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find account by ID", slog.String("account_id", accountID))
		}
		return nil, err
	}

	if account.RestaurantID != restaurantID {
		// Obscure existence of accounts in other restaurants
		return nil, apperrors.ErrNotFound
	}
	return account, nil
}

func (s *accountService) GetAccountByCode(ctx context.Context, restaurantID string, code string, userID string) (*domain.Account, error) {
	if err := s.AuthorizeUser(ctx, userID, restaurantID, domain.RoleReadOnly); err != nil {
		return nil, err
	}

	account, err := s.accountRepo.FindAccountByCode(ctx, restaurantID, code)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find account by code",
				slog.String("code", code),
				slog.String("restaurant_id", restaurantID))
		}
		return nil, err
	}
	return account, nil
}

func (s *accountService) GetAccountsByIDs(ctx context.Context, restaurantID string, accountIDs []string, userID string) (map[string]domain.Account, error) {
	if err := s.AuthorizeUser(ctx, userID, restaurantID, domain.RoleReadOnly); err != nil {
		return nil, err
	}

	accounts, err := s.accountRepo.FindAccountsByIDs(ctx, accountIDs)
	if err != nil {
		s.LogError(ctx, err, "Failed to find accounts by IDs", slog.Int("count", len(accountIDs)))
		return nil, err
	}

	// Drop accounts belonging to other restaurants rather than leaking them.
	for id, acc := range accounts {
		if acc.RestaurantID != restaurantID {
			delete(accounts, id)
		}
	}
	return accounts, nil
}

func (s *accountService) ListAccounts(ctx context.Context, restaurantID string, userID string, limit int, offset int) ([]domain.Account, error) {
	if err := s.AuthorizeUser(ctx, userID, restaurantID, domain.RoleReadOnly); err != nil {
		return nil, err
	}

	if limit <= 0 {
		limit = 50
	}
	accounts, err := s.accountRepo.ListAccounts(ctx, restaurantID, limit, offset)
	if err != nil {
		s.LogError(ctx, err, "Failed to list accounts", slog.String("restaurant_id", restaurantID))
		return nil, fmt.Errorf("failed to list accounts: %w", err)
	}
	return accounts, nil
}

func (s *accountService) UpdateAccount(ctx context.Context, restaurantID string, accountID string, req dto.UpdateAccountRequest, userID string) (*domain.Account, error) {
	if err := s.AuthorizeUser(ctx, userID, restaurantID, domain.RoleManager); err != nil {
		return nil, err
	}

	account, err := s.GetAccountByID(ctx, restaurantID, accountID, userID)
	if err != nil {
		return nil, err
	}

	updated := false
	if req.Name != nil {
		account.Name = *req.Name
		updated = true
	}
	if req.Description != nil {
		account.Description = *req.Description
		updated = true
	}
	if !updated {
		return account, nil
	}

	now := time.Now().UTC()
	account.LastUpdatedAt = now
	account.LastUpdatedBy = userID

	if err := s.accountRepo.UpdateAccount(ctx, *account); err != nil {
		s.LogError(ctx, err, "Failed to update account", slog.String("account_id", accountID))
		return nil, err
	}

	s.LogInfo(ctx, "Account updated successfully", slog.String("account_id", accountID))
	return account, nil
}

// DeactivateAccount marks an account as inactive. Accounts carrying a
// non-zero balance are refused so the books cannot hide live value.
func (s *accountService) DeactivateAccount(ctx context.Context, restaurantID string, accountID string, userID string) error {
	if err := s.AuthorizeUser(ctx, userID, restaurantID, domain.RoleManager); err != nil {
		return err
	}

	account, err := s.GetAccountByID(ctx, restaurantID, accountID, userID)
	if err != nil {
		return err
	}

	if !account.Balance.IsZero() {
		s.LogWarn(ctx, "Refusing to deactivate account with non-zero balance",
			slog.String("account_id", accountID),
			slog.String("balance", account.Balance.String()))
		return fmt.Errorf("%w: account %s has non-zero balance %s", apperrors.ErrConflict, account.Code, account.Balance.String())
	}

	if err := s.accountRepo.DeactivateAccount(ctx, accountID, userID, time.Now().UTC()); err != nil {
		s.LogError(ctx, err, "Failed to deactivate account", slog.String("account_id", accountID))
		return err
	}

	s.LogInfo(ctx, "Account deactivated", slog.String("account_id", accountID))
	return nil
}

func (s *accountService) CalculateAccountBalance(ctx context.Context, restaurantID string, accountID string, userID string) (decimal.Decimal, error) {
	account, err := s.GetAccountByID(ctx, restaurantID, accountID, userID)
	if err != nil {
		return decimal.Zero, err
	}
	return account.Balance, nil
}
