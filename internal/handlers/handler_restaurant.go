package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/restopilot/resto_books_app/internal/apperrors"
	portssvc "github.com/restopilot/resto_books_app/internal/core/ports/services"
	"github.com/restopilot/resto_books_app/internal/dto"
	"github.com/restopilot/resto_books_app/internal/middleware"
)

// restaurantHandler handles HTTP requests related to restaurants.
type restaurantHandler struct {
	restaurantService portssvc.RestaurantSvcFacade
}

// newRestaurantHandler creates a new restaurantHandler.
func newRestaurantHandler(rs portssvc.RestaurantSvcFacade) *restaurantHandler {
	return &restaurantHandler{
		restaurantService: rs,
	}
}

// registerRestaurantRoutes registers routes related to restaurants.
// Account, journal, ledger and reporting routes are nested under a specific
// restaurant because every book belongs to exactly one restaurant.
func registerRestaurantRoutes(rg *gin.RouterGroup, services *portssvc.ServiceContainer) {
	h := newRestaurantHandler(services.Restaurant)

	restaurantsTopLevel := rg.Group("/restaurants")
	{
		restaurantsTopLevel.POST("", h.createRestaurant)
		restaurantsTopLevel.GET("", h.listRestaurants)
	}

	restaurantSpecific := rg.Group("/restaurants/:restaurant_id")
	{
		restaurantSpecific.GET("", h.getRestaurant)
		restaurantSpecific.PUT("", h.updateRestaurant)
		restaurantSpecific.DELETE("", h.deactivateRestaurant)

		registerAccountRoutes(restaurantSpecific, services.Account)
		registerJournalRoutes(restaurantSpecific, services.Journal)
		registerLedgerRoutes(restaurantSpecific, services.Ledger)
		registerReportingRoutes(restaurantSpecific, services.Reporting)
	}
}

// createRestaurant godoc
// @Summary Create a new restaurant
// @Description Creates a new restaurant and seeds its default chart of accounts.
// @Tags restaurants
// @Accept  json
// @Produce  json
// @Param   restaurant body dto.CreateRestaurantRequest true "Restaurant details"
// @Success 201 {object} dto.RestaurantResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Failed to create restaurant"
// @Security ApiKeyAuth
// @Router /restaurants [post]
func (h *restaurantHandler) createRestaurant(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateRestaurantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CreateRestaurant", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	creatorUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("Creator user ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	logger = logger.With(slog.String("creator_user_id", creatorUserID))
	logger.Info("Received request to create restaurant", slog.String("restaurant_name", req.Name))

	newRestaurant, err := h.restaurantService.CreateRestaurant(c.Request.Context(), req.Name, req.Description, req.DefaultCurrencyCode, creatorUserID)
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			logger.Warn("Validation error creating restaurant", slog.String("error", err.Error()))
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		logger.Error("Failed to create restaurant in service", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create restaurant"})
		return
	}

	logger.Info("Restaurant created successfully", slog.String("restaurant_id", newRestaurant.RestaurantID))
	c.JSON(http.StatusCreated, dto.ToRestaurantResponse(newRestaurant))
}

// listRestaurants godoc
// @Summary List restaurants
// @Description Retrieves a paginated list of active restaurants.
// @Tags restaurants
// @Produce  json
// @Param limit query int false "Page size" default(50)
// @Param offset query int false "Page offset" default(0)
// @Success 200 {object} dto.ListRestaurantsResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Failed to list restaurants"
// @Security ApiKeyAuth
// @Router /restaurants [get]
func (h *restaurantHandler) listRestaurants(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("User ID not found in context for listRestaurants")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var params dto.ListRestaurantsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		logger.Warn("Failed to bind query for listRestaurants", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	restaurants, err := h.restaurantService.ListRestaurants(c.Request.Context(), userID, params.Limit, params.Offset)
	if err != nil {
		logger.Error("Failed to list restaurants from service", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list restaurants"})
		return
	}

	c.JSON(http.StatusOK, dto.ToListRestaurantsResponse(restaurants))
}

// getRestaurant godoc
// @Summary Get restaurant details
// @Description Retrieves a restaurant by its ID.
// @Tags restaurants
// @Produce  json
// @Param restaurant_id path string true "Restaurant ID"
// @Success 200 {object} dto.RestaurantResponse
// @Failure 404 {object} map[string]string "Restaurant not found"
// @Failure 500 {object} map[string]string "Failed to retrieve restaurant"
// @Security ApiKeyAuth
// @Router /restaurants/{restaurant_id} [get]
func (h *restaurantHandler) getRestaurant(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	restaurantID := c.Param("restaurant_id")

	restaurant, err := h.restaurantService.FindRestaurantByID(c.Request.Context(), restaurantID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			logger.Warn("Restaurant not found", slog.String("restaurant_id", restaurantID))
			c.JSON(http.StatusNotFound, gin.H{"error": "Restaurant not found"})
			return
		}
		logger.Error("Failed to get restaurant from service", slog.String("error", err.Error()), slog.String("restaurant_id", restaurantID))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve restaurant"})
		return
	}

	c.JSON(http.StatusOK, dto.ToRestaurantResponse(restaurant))
}

// updateRestaurant godoc
// @Summary Update a restaurant
// @Description Updates a restaurant's name and description.
// @Tags restaurants
// @Accept  json
// @Produce  json
// @Param restaurant_id path string true "Restaurant ID"
// @Param restaurant body dto.UpdateRestaurantRequest true "Fields to update"
// @Success 200 {object} dto.RestaurantResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Forbidden"
// @Failure 404 {object} map[string]string "Restaurant not found"
// @Failure 500 {object} map[string]string "Failed to update restaurant"
// @Security ApiKeyAuth
// @Router /restaurants/{restaurant_id} [put]
func (h *restaurantHandler) updateRestaurant(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	restaurantID := c.Param("restaurant_id")

	var req dto.UpdateRestaurantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for UpdateRestaurant", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	restaurant, err := h.restaurantService.UpdateRestaurant(c.Request.Context(), restaurantID, req, userID)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Restaurant not found"})
		case errors.Is(err, apperrors.ErrValidation):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, apperrors.ErrForbidden):
			c.JSON(http.StatusForbidden, gin.H{"error": "Forbidden"})
		default:
			logger.Error("Failed to update restaurant in service", slog.String("error", err.Error()), slog.String("restaurant_id", restaurantID))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update restaurant"})
		}
		return
	}

	logger.Info("Restaurant updated successfully", slog.String("restaurant_id", restaurantID))
	c.JSON(http.StatusOK, dto.ToRestaurantResponse(restaurant))
}

// deactivateRestaurant godoc
// @Summary Deactivate a restaurant
// @Description Marks a restaurant as inactive. Requires the ADMIN role.
// @Tags restaurants
// @Produce  json
// @Param restaurant_id path string true "Restaurant ID"
// @Success 204 "Restaurant deactivated"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Forbidden"
// @Failure 404 {object} map[string]string "Restaurant not found"
// @Failure 500 {object} map[string]string "Failed to deactivate restaurant"
// @Security ApiKeyAuth
// @Router /restaurants/{restaurant_id} [delete]
func (h *restaurantHandler) deactivateRestaurant(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	restaurantID := c.Param("restaurant_id")

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("User ID not found in context for deactivateRestaurant")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	err := h.restaurantService.DeactivateRestaurant(c.Request.Context(), restaurantID, userID)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrNotFound):
			logger.Warn("Restaurant not found for deactivation", slog.String("restaurant_id", restaurantID))
			c.JSON(http.StatusNotFound, gin.H{"error": "Restaurant not found"})
		case errors.Is(err, apperrors.ErrForbidden):
			logger.Warn("User not authorized to deactivate restaurant", slog.String("restaurant_id", restaurantID), slog.String("user_id", userID))
			c.JSON(http.StatusForbidden, gin.H{"error": "Forbidden"})
		default:
			logger.Error("Failed to deactivate restaurant in service", slog.String("error", err.Error()), slog.String("restaurant_id", restaurantID))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to deactivate restaurant"})
		}
		return
	}

	c.Status(http.StatusNoContent)
}
