package middleware

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/restopilot/resto_books_app/pkg/config"
)

// APIKeyAuthMiddleware creates a Gin middleware handler that resolves the
// caller's identity from the X-API-Key header against the configured key
// table. The resolved user ID and role are stored in the request context.
func APIKeyAuthMiddleware(keys map[string]config.APIKeyPrincipal) gin.HandlerFunc {
	return func(c *gin.Context) {
		logger := GetLoggerFromCtx(c.Request.Context())

		apiKey := c.GetHeader("X-API-Key")
		if apiKey == "" {
			logger.Warn("X-API-Key header missing")
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "X-API-Key header required"})
			return
		}

		principal, ok := keys[apiKey]
		if !ok {
			logger.Warn("Unknown API key presented")
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid API key"})
			return
		}

		// Store the user ID and role in the standard request context
		ctx := ContextWithUser(c.Request.Context(), principal.UserID, principal.Role)

		// Enrich the request logger with the resolved identity
		enrichedLogger := logger.With(
			slog.String("user_id", principal.UserID),
			slog.String("role", string(principal.Role)),
		)
		ctx = context.WithValue(ctx, loggerCtxKey, enrichedLogger)

		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}
