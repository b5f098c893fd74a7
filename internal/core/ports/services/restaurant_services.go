package services

import (
	"context"

	"github.com/restopilot/resto_books_app/internal/core/domain"
	"github.com/restopilot/resto_books_app/internal/dto"
)

// RestaurantReaderSvc defines read operations for restaurant data
type RestaurantReaderSvc interface {
	// FindRestaurantByID retrieves a specific restaurant by its ID.
	FindRestaurantByID(ctx context.Context, restaurantID string) (*domain.Restaurant, error)

	// ListRestaurants retrieves a paginated list of restaurants.
	ListRestaurants(ctx context.Context, userID string, limit int, offset int) ([]domain.Restaurant, error)
}

// RestaurantWriterSvc defines write operations for restaurant data
type RestaurantWriterSvc interface {
	// CreateRestaurant persists a new restaurant and seeds its default
	// chart of accounts.
	CreateRestaurant(ctx context.Context, name, description, defaultCurrencyCode, creatorUserID string) (*domain.Restaurant, error)

	// UpdateRestaurant updates a restaurant's name and description.
	UpdateRestaurant(ctx context.Context, restaurantID string, req dto.UpdateRestaurantRequest, requestingUserID string) (*domain.Restaurant, error)

	// DeactivateRestaurant marks a restaurant as inactive.
	DeactivateRestaurant(ctx context.Context, restaurantID string, requestingUserID string) error
}

// RestaurantAuthorizerSvc defines operations for restaurant authorization
type RestaurantAuthorizerSvc interface {
	// AuthorizeUserAction checks if a user has required permissions for a restaurant.
	AuthorizeUserAction(ctx context.Context, userID, restaurantID string, requiredRole domain.RestaurantRole) error
}

// RestaurantSvcFacade combines all restaurant-related service interfaces
// This is a facade for clients that need access to all operations
type RestaurantSvcFacade interface {
	RestaurantReaderSvc
	RestaurantWriterSvc
	RestaurantAuthorizerSvc
}
