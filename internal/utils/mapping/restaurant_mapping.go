package mapping

import (
	"github.com/restopilot/resto_books_app/internal/core/domain"
	"github.com/restopilot/resto_books_app/internal/models"
)

// ToModelRestaurant converts a domain Restaurant to its persistence model.
func ToModelRestaurant(d domain.Restaurant) models.Restaurant {
	return models.Restaurant{
		RestaurantID:        d.RestaurantID,
		Name:                d.Name,
		Description:         d.Description,
		DefaultCurrencyCode: d.DefaultCurrencyCode,
		IsActive:            d.IsActive,
		AuditFields:         ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainRestaurant converts a persistence Restaurant to the domain.
func ToDomainRestaurant(m models.Restaurant) domain.Restaurant {
	return domain.Restaurant{
		RestaurantID:        m.RestaurantID,
		Name:                m.Name,
		Description:         m.Description,
		DefaultCurrencyCode: m.DefaultCurrencyCode,
		IsActive:            m.IsActive,
		AuditFields:         ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainRestaurantSlice converts a slice of persistence Restaurants to the domain.
func ToDomainRestaurantSlice(ms []models.Restaurant) []domain.Restaurant {
	ds := make([]domain.Restaurant, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainRestaurant(m)
	}
	return ds
}
