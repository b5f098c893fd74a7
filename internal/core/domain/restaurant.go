package domain

// Restaurant is the tenant boundary: every account and journal entry belongs
// to exactly one restaurant, and its books are kept in a single currency.
type Restaurant struct {
	RestaurantID        string `json:"restaurantID"` // Primary key (UUID)
	Name                string `json:"name"`
	Description         string `json:"description"`
	DefaultCurrencyCode string `json:"defaultCurrencyCode"` // e.g. "EUR"
	IsActive            bool   `json:"isActive"`
	AuditFields
}

// RestaurantRole is a caller's role for restaurant operations.
type RestaurantRole string

const (
	RoleAdmin    RestaurantRole = "ADMIN"
	RoleManager  RestaurantRole = "MANAGER"
	RoleReadOnly RestaurantRole = "READONLY"
)

var roleRank = map[RestaurantRole]int{
	RoleReadOnly: 1,
	RoleManager:  2,
	RoleAdmin:    3,
}

// MeetsRequirement reports whether role satisfies the required role.
func (r RestaurantRole) MeetsRequirement(required RestaurantRole) bool {
	have, ok := roleRank[r]
	if !ok {
		return false
	}
	want, ok := roleRank[required]
	if !ok {
		return false
	}
	return have >= want
}
