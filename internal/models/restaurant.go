package models

// Restaurant is the persistence model for a tenant restaurant.
type Restaurant struct {
	RestaurantID        string
	Name                string
	Description         string
	DefaultCurrencyCode string
	IsActive            bool
	AuditFields
}
