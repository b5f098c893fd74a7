package dto

import (
	"time"

	"github.com/restopilot/resto_books_app/internal/core/domain"
)

// CreateRestaurantRequest defines data for creating a new restaurant.
type CreateRestaurantRequest struct {
	Name                string `json:"name" binding:"required"`
	Description         string `json:"description"`
	DefaultCurrencyCode string `json:"defaultCurrencyCode" binding:"required,iso4217"`
}

// UpdateRestaurantRequest defines the updatable restaurant fields. Nil fields
// are left unchanged.
type UpdateRestaurantRequest struct {
	Name        *string `json:"name" binding:"omitempty,min=1"`
	Description *string `json:"description"`
}

// RestaurantResponse defines data returned for a restaurant.
type RestaurantResponse struct {
	RestaurantID        string    `json:"restaurantID"`
	Name                string    `json:"name"`
	Description         string    `json:"description"`
	DefaultCurrencyCode string    `json:"defaultCurrencyCode"`
	IsActive            bool      `json:"isActive"`
	CreatedAt           time.Time `json:"createdAt"`
	CreatedBy           string    `json:"createdBy"` // UserID
	LastUpdatedAt       time.Time `json:"lastUpdatedAt"`
	LastUpdatedBy       string    `json:"lastUpdatedBy"` // UserID
}

// ToRestaurantResponse converts domain.Restaurant to DTO.
func ToRestaurantResponse(r *domain.Restaurant) RestaurantResponse {
	return RestaurantResponse{
		RestaurantID:        r.RestaurantID,
		Name:                r.Name,
		Description:         r.Description,
		DefaultCurrencyCode: r.DefaultCurrencyCode,
		IsActive:            r.IsActive,
		CreatedAt:           r.CreatedAt,
		CreatedBy:           r.CreatedBy,
		LastUpdatedAt:       r.LastUpdatedAt,
		LastUpdatedBy:       r.LastUpdatedBy,
	}
}

// ListRestaurantsParams defines query parameters for listing restaurants.
type ListRestaurantsParams struct {
	Limit  int `form:"limit,default=50" binding:"omitempty,gt=0,lte=100"`
	Offset int `form:"offset,default=0" binding:"omitempty,gte=0"`
}

// ListRestaurantsResponse wraps a list of restaurants.
type ListRestaurantsResponse struct {
	Restaurants []RestaurantResponse `json:"restaurants"`
}

// ToListRestaurantsResponse converts a slice of domain.Restaurant to DTO.
func ToListRestaurantsResponse(rs []domain.Restaurant) ListRestaurantsResponse {
	list := make([]RestaurantResponse, len(rs))
	for i, r := range rs {
		list[i] = ToRestaurantResponse(&r)
	}
	return ListRestaurantsResponse{Restaurants: list}
}
