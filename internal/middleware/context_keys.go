package middleware

import (
	"context"

	"github.com/gin-gonic/gin"

	"github.com/restopilot/resto_books_app/internal/core/domain"
)

// userIDKey is the key used to store the authenticated user's ID.
const userIDKey = contextKey("userID")

// userRoleKey is the key used to store the authenticated user's role.
const userRoleKey = contextKey("userRole")

// ContextWithUser returns a context carrying the authenticated user's ID and
// role. Used by the auth middleware once a principal is resolved.
func ContextWithUser(ctx context.Context, userID string, role domain.RestaurantRole) context.Context {
	ctx = context.WithValue(ctx, userIDKey, userID)
	return context.WithValue(ctx, userRoleKey, role)
}

// GetUserIDFromContext retrieves the authenticated user ID from the Gin context.
// It returns the user ID and a boolean indicating if it was found.
func GetUserIDFromContext(c *gin.Context) (string, bool) {
	userIDVal := c.Request.Context().Value(userIDKey)
	if userIDVal == nil {
		return "", false
	}
	userID, ok := userIDVal.(string)
	if !ok {
		return "", false
	}
	return userID, true
}

// GetUserRoleFromCtx retrieves the authenticated user's role from a context.
// It returns the role and a boolean indicating if it was found.
func GetUserRoleFromCtx(ctx context.Context) (domain.RestaurantRole, bool) {
	roleVal := ctx.Value(userRoleKey)
	if roleVal == nil {
		return "", false
	}
	role, ok := roleVal.(domain.RestaurantRole)
	if !ok {
		return "", false
	}
	return role, true
}
