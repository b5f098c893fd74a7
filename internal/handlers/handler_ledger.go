package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/restopilot/resto_books_app/internal/apperrors"
	portssvc "github.com/restopilot/resto_books_app/internal/core/ports/services"
	"github.com/restopilot/resto_books_app/internal/dto"
	"github.com/restopilot/resto_books_app/internal/middleware"
)

// ledgerHandler handles HTTP requests for the per-account ledger projection.
type ledgerHandler struct {
	ledgerService portssvc.LedgerService
}

func newLedgerHandler(ls portssvc.LedgerService) *ledgerHandler {
	return &ledgerHandler{
		ledgerService: ls,
	}
}

// registerLedgerRoutes registers ledger routes nested under a restaurant.
func registerLedgerRoutes(rg *gin.RouterGroup, ledgerService portssvc.LedgerService) {
	h := newLedgerHandler(ledgerService)

	ledger := rg.Group("/ledger")
	{
		ledger.GET("", h.getLedger)
		ledger.GET("/:account_id", h.getAccountLedger)
	}
}

// parseAsOfParam parses the optional asOf query parameter, defaulting to now.
// An explicit date is inclusive of the whole day, so entries whose entry_date
// carries a time of day still fall inside the bound.
func parseAsOfParam(c *gin.Context) (time.Time, error) {
	asOfStr := c.Query("asOf")
	if asOfStr == "" {
		return time.Now().UTC(), nil
	}
	day, err := time.Parse("2006-01-02", asOfStr)
	if err != nil {
		return time.Time{}, err
	}
	return endOfDay(day), nil
}

// endOfDay returns the last instant of the given day.
func endOfDay(day time.Time) time.Time {
	return day.AddDate(0, 0, 1).Add(-time.Nanosecond)
}

// getLedger godoc
// @Summary Get the ledger
// @Description Retrieves the ledger projection for every account of the restaurant as of a date. Accounts with no activity appear with zero totals.
// @Tags ledger
// @Produce  json
// @Param restaurant_id path string true "Restaurant ID"
// @Param asOf query string false "Projection date (YYYY-MM-DD)" default(current date)
// @Success 200 {object} dto.LedgerResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Forbidden"
// @Failure 500 {object} map[string]string "Failed to retrieve ledger"
// @Security ApiKeyAuth
// @Router /restaurants/{restaurant_id}/ledger [get]
func (h *ledgerHandler) getLedger(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	restaurantID := c.Param("restaurant_id")

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	asOf, err := parseAsOfParam(c)
	if err != nil {
		logger.Warn("Invalid asOf date for getLedger", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid asOf date, expected YYYY-MM-DD"})
		return
	}

	accounts, err := h.ledgerService.GetLedger(c.Request.Context(), restaurantID, asOf, userID)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrForbidden):
			c.JSON(http.StatusForbidden, gin.H{"error": "Forbidden"})
		case errors.Is(err, apperrors.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Restaurant not found"})
		default:
			logger.Error("Failed to get ledger from service", slog.String("error", err.Error()), slog.String("restaurant_id", restaurantID))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve ledger"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToLedgerResponse(accounts, asOf.Format("2006-01-02")))
}

// getAccountLedger godoc
// @Summary Get a single account's ledger
// @Description Retrieves the ledger projection for one account as of a date.
// @Tags ledger
// @Produce  json
// @Param restaurant_id path string true "Restaurant ID"
// @Param account_id path string true "Account ID"
// @Param asOf query string false "Projection date (YYYY-MM-DD)" default(current date)
// @Success 200 {object} dto.LedgerAccountResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Forbidden"
// @Failure 404 {object} map[string]string "Account not found"
// @Failure 500 {object} map[string]string "Failed to retrieve ledger"
// @Security ApiKeyAuth
// @Router /restaurants/{restaurant_id}/ledger/{account_id} [get]
func (h *ledgerHandler) getAccountLedger(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	restaurantID := c.Param("restaurant_id")
	accountID := c.Param("account_id")

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	asOf, err := parseAsOfParam(c)
	if err != nil {
		logger.Warn("Invalid asOf date for getAccountLedger", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid asOf date, expected YYYY-MM-DD"})
		return
	}

	account, err := h.ledgerService.GetAccountLedger(c.Request.Context(), restaurantID, accountID, asOf, userID)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrNotFound):
			logger.Warn("Account not found in ledger", slog.String("account_id", accountID))
			c.JSON(http.StatusNotFound, gin.H{"error": "Account not found"})
		case errors.Is(err, apperrors.ErrForbidden):
			c.JSON(http.StatusForbidden, gin.H{"error": "Forbidden"})
		default:
			logger.Error("Failed to get account ledger from service", slog.String("error", err.Error()), slog.String("account_id", accountID))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve ledger"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToLedgerAccountResponse(account))
}
