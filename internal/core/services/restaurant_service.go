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
	"github.com/restopilot/resto_books_app/internal/middleware"
)

// restaurantService implements the RestaurantSvcFacade interface.
type restaurantService struct {
	BaseService
	restaurantRepo portsrepo.RestaurantRepositoryFacade
	accountRepo    portsrepo.AccountRepositoryFacade
}

// NewRestaurantService creates a new RestaurantService.
func NewRestaurantService(restaurantRepo portsrepo.RestaurantRepositoryFacade, accountRepo portsrepo.AccountRepositoryFacade) portssvc.RestaurantSvcFacade {
	return &restaurantService{
		restaurantRepo: restaurantRepo,
		accountRepo:    accountRepo,
	}
}

// Ensure restaurantService implements the RestaurantSvcFacade interface
var _ portssvc.RestaurantSvcFacade = (*restaurantService)(nil)

// CreateRestaurant persists a new restaurant and seeds its chart of accounts
// with the predefined restaurant chart.
func (s *restaurantService) CreateRestaurant(ctx context.Context, name, description, defaultCurrencyCode, creatorUserID string) (*domain.Restaurant, error) {
	if name == "" {
		return nil, fmt.Errorf("%w: restaurant name is required", apperrors.ErrValidation)
	}

	now := time.Now().UTC()
	restaurant := domain.Restaurant{
		RestaurantID:        uuid.NewString(),
		Name:                name,
		Description:         description,
		DefaultCurrencyCode: defaultCurrencyCode,
		IsActive:            true,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	if err := s.restaurantRepo.SaveRestaurant(ctx, restaurant); err != nil {
		s.LogError(ctx, err, "Failed to save restaurant", slog.String("name", name))
		return nil, err
	}

	// Seed the default chart of accounts so the books are usable immediately.
	seed := make([]domain.Account, len(domain.DefaultChart))
	for i, ca := range domain.DefaultChart {
		seed[i] = domain.Account{
			AccountID:    uuid.NewString(),
			RestaurantID: restaurant.RestaurantID,
			Code:         ca.Code,
			Name:         ca.Name,
			AccountType:  ca.Type,
			IsActive:     true,
			Balance:      decimal.Zero,
			AuditFields: domain.AuditFields{
				CreatedAt:     now,
				CreatedBy:     creatorUserID,
				LastUpdatedAt: now,
				LastUpdatedBy: creatorUserID,
			},
		}
	}
	if err := s.accountRepo.SaveAccounts(ctx, seed); err != nil {
		s.LogError(ctx, err, "Failed to seed chart of accounts",
			slog.String("restaurant_id", restaurant.RestaurantID))
		return nil, fmt.Errorf("failed to seed chart of accounts: %w", err)
	}

	s.LogInfo(ctx, "Restaurant created successfully",
		slog.String("restaurant_id", restaurant.RestaurantID),
		slog.Int("seeded_accounts", len(seed)))
	return &restaurant, nil
}

// FindRestaurantByID retrieves a specific restaurant by its ID.
func (s *restaurantService) FindRestaurantByID(ctx context.Context, restaurantID string) (*domain.Restaurant, error) {
	restaurant, err := s.restaurantRepo.FindRestaurantByID(ctx, restaurantID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find restaurant by ID", slog.String("restaurant_id", restaurantID))
		}
		return nil, err
	}
	return restaurant, nil
}

// ListRestaurants retrieves a paginated list of restaurants.
func (s *restaurantService) ListRestaurants(ctx context.Context, userID string, limit int, offset int) ([]domain.Restaurant, error) {
	if limit <= 0 {
		limit = 50
	}
	restaurants, err := s.restaurantRepo.ListRestaurants(ctx, limit, offset)
	if err != nil {
		s.LogError(ctx, err, "Failed to list restaurants")
		return nil, fmt.Errorf("failed to list restaurants: %w", err)
	}
	return restaurants, nil
}

// UpdateRestaurant updates a restaurant's name and description.
func (s *restaurantService) UpdateRestaurant(ctx context.Context, restaurantID string, req dto.UpdateRestaurantRequest, requestingUserID string) (*domain.Restaurant, error) {
	if err := s.AuthorizeUserAction(ctx, requestingUserID, restaurantID, domain.RoleManager); err != nil {
		return nil, err
	}

	restaurant, err := s.restaurantRepo.FindRestaurantByID(ctx, restaurantID)
	if err != nil {
		return nil, err
	}

	updated := false
	if req.Name != nil {
		if *req.Name == "" {
			return nil, fmt.Errorf("%w: restaurant name is required", apperrors.ErrValidation)
		}
		restaurant.Name = *req.Name
		updated = true
	}
	if req.Description != nil {
		restaurant.Description = *req.Description
		updated = true
	}
	if !updated {
		return restaurant, nil
	}

	now := time.Now().UTC()
	restaurant.LastUpdatedAt = now
	restaurant.LastUpdatedBy = requestingUserID

	if err := s.restaurantRepo.UpdateRestaurant(ctx, *restaurant); err != nil {
		s.LogError(ctx, err, "Failed to update restaurant", slog.String("restaurant_id", restaurantID))
		return nil, err
	}

	s.LogInfo(ctx, "Restaurant updated", slog.String("restaurant_id", restaurantID))
	return restaurant, nil
}

// DeactivateRestaurant marks a restaurant as inactive.
func (s *restaurantService) DeactivateRestaurant(ctx context.Context, restaurantID string, requestingUserID string) error {
	if err := s.AuthorizeUserAction(ctx, requestingUserID, restaurantID, domain.RoleAdmin); err != nil {
		return err
	}

	restaurant, err := s.restaurantRepo.FindRestaurantByID(ctx, restaurantID)
	if err != nil {
		return err
	}

	now := time.Now().UTC()
	restaurant.IsActive = false
	restaurant.LastUpdatedAt = now
	restaurant.LastUpdatedBy = requestingUserID

	if err := s.restaurantRepo.UpdateRestaurant(ctx, *restaurant); err != nil {
		s.LogError(ctx, err, "Failed to deactivate restaurant", slog.String("restaurant_id", restaurantID))
		return err
	}

	s.LogInfo(ctx, "Restaurant deactivated", slog.String("restaurant_id", restaurantID))
	return nil
}

// AuthorizeUserAction checks that the restaurant exists and that the caller's
// role, resolved by the auth middleware, satisfies the required role.
func (s *restaurantService) AuthorizeUserAction(ctx context.Context, userID, restaurantID string, requiredRole domain.RestaurantRole) error {
	restaurant, err := s.restaurantRepo.FindRestaurantByID(ctx, restaurantID)
	if err != nil {
		return err // Propagates ErrNotFound
	}
	if !restaurant.IsActive {
		return fmt.Errorf("%w: restaurant %s is inactive", apperrors.ErrForbidden, restaurantID)
	}

	role, ok := middleware.GetUserRoleFromCtx(ctx)
	if !ok {
		s.LogWarn(ctx, "No role found in context during authorization",
			slog.String("user_id", userID),
			slog.String("restaurant_id", restaurantID))
		return fmt.Errorf("%w: no role resolved for user %s", apperrors.ErrForbidden, userID)
	}

	if !role.MeetsRequirement(requiredRole) {
		return fmt.Errorf("%w: role %s does not meet required role %s", apperrors.ErrForbidden, role, requiredRole)
	}
	return nil
}
