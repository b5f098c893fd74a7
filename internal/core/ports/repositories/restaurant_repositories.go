package repositories

import (
	"context"

	"github.com/restopilot/resto_books_app/internal/core/domain"
)

// RestaurantRepositoryFacade defines persistence operations for restaurants.
type RestaurantRepositoryFacade interface {
	// SaveRestaurant persists a new restaurant.
	SaveRestaurant(ctx context.Context, restaurant domain.Restaurant) error

	// FindRestaurantByID retrieves a restaurant by its unique identifier.
	FindRestaurantByID(ctx context.Context, restaurantID string) (*domain.Restaurant, error)

	// ListRestaurants retrieves a paginated list of restaurants.
	ListRestaurants(ctx context.Context, limit int, offset int) ([]domain.Restaurant, error)

	// UpdateRestaurant updates an existing restaurant's details.
	UpdateRestaurant(ctx context.Context, restaurant domain.Restaurant) error
}
