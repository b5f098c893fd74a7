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

// reportingHandler handles HTTP requests related to financial reports.
type reportingHandler struct {
	reportingService portssvc.ReportingService
}

// newReportingHandler creates a new reportingHandler.
func newReportingHandler(rs portssvc.ReportingService) *reportingHandler {
	return &reportingHandler{
		reportingService: rs,
	}
}

// registerReportingRoutes registers report routes nested under a restaurant.
func registerReportingRoutes(rg *gin.RouterGroup, reportingService portssvc.ReportingService) {
	h := newReportingHandler(reportingService)

	reports := rg.Group("/reports")
	{
		reports.GET("/trial-balance", h.getTrialBalance)
		reports.GET("/profit-and-loss", h.getProfitAndLoss)
		reports.GET("/balance-sheet", h.getBalanceSheet)
	}
}

// getTrialBalance godoc
// @Summary Generate a trial balance
// @Description Generates a trial balance as of a specific date: every account's debit and credit totals plus the balance check.
// @Tags reports
// @Produce  json
// @Param restaurant_id path string true "Restaurant ID"
// @Param asOf query string false "Report date (YYYY-MM-DD)" default(current date)
// @Success 200 {object} dto.TrialBalanceResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Forbidden"
// @Failure 500 {object} map[string]string "Failed to generate report"
// @Security ApiKeyAuth
// @Router /restaurants/{restaurant_id}/reports/trial-balance [get]
func (h *reportingHandler) getTrialBalance(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	restaurantID := c.Param("restaurant_id")

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	asOf, err := parseAsOfParam(c)
	if err != nil {
		logger.Warn("Invalid asOf date for getTrialBalance", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid asOf date, expected YYYY-MM-DD"})
		return
	}

	tb, err := h.reportingService.TrialBalance(c.Request.Context(), restaurantID, asOf, userID)
	if err != nil {
		h.writeReportError(c, logger, err, restaurantID, "trial balance")
		return
	}

	c.JSON(http.StatusOK, dto.ToTrialBalanceResponse(tb))
}

// getProfitAndLoss godoc
// @Summary Generate a profit and loss report
// @Description Generates a profit and loss report over a period: revenue and expense nets with the resulting net profit.
// @Tags reports
// @Produce  json
// @Param restaurant_id path string true "Restaurant ID"
// @Param from query string true "Period start (YYYY-MM-DD)"
// @Param to query string true "Period end (YYYY-MM-DD)"
// @Success 200 {object} dto.ProfitAndLossResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Forbidden"
// @Failure 500 {object} map[string]string "Failed to generate report"
// @Security ApiKeyAuth
// @Router /restaurants/{restaurant_id}/reports/profit-and-loss [get]
func (h *reportingHandler) getProfitAndLoss(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	restaurantID := c.Param("restaurant_id")

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	from, err := time.Parse("2006-01-02", c.Query("from"))
	if err != nil {
		logger.Warn("Invalid from date for getProfitAndLoss", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid from date, expected YYYY-MM-DD"})
		return
	}
	to, err := time.Parse("2006-01-02", c.Query("to"))
	if err != nil {
		logger.Warn("Invalid to date for getProfitAndLoss", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid to date, expected YYYY-MM-DD"})
		return
	}
	if to.Before(from) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "to date must not precede from date"})
		return
	}

	// The period end is inclusive of the whole day.
	report, err := h.reportingService.ProfitAndLoss(c.Request.Context(), restaurantID, from, endOfDay(to), userID)
	if err != nil {
		h.writeReportError(c, logger, err, restaurantID, "profit and loss")
		return
	}

	c.JSON(http.StatusOK, dto.ToProfitAndLossResponse(report))
}

// getBalanceSheet godoc
// @Summary Generate a balance sheet
// @Description Generates a balance sheet as of a specific date. The accounting identity assets = liabilities + equity is checked and reported.
// @Tags reports
// @Produce  json
// @Param restaurant_id path string true "Restaurant ID"
// @Param asOf query string false "Report date (YYYY-MM-DD)" default(current date)
// @Success 200 {object} dto.BalanceSheetResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Forbidden"
// @Failure 500 {object} map[string]string "Failed to generate report"
// @Security ApiKeyAuth
// @Router /restaurants/{restaurant_id}/reports/balance-sheet [get]
func (h *reportingHandler) getBalanceSheet(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	restaurantID := c.Param("restaurant_id")

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	asOf, err := parseAsOfParam(c)
	if err != nil {
		logger.Warn("Invalid asOf date for getBalanceSheet", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid asOf date, expected YYYY-MM-DD"})
		return
	}

	report, err := h.reportingService.BalanceSheet(c.Request.Context(), restaurantID, asOf, userID)
	if err != nil {
		h.writeReportError(c, logger, err, restaurantID, "balance sheet")
		return
	}

	c.JSON(http.StatusOK, dto.ToBalanceSheetResponse(report))
}

func (h *reportingHandler) writeReportError(c *gin.Context, logger *slog.Logger, err error, restaurantID, report string) {
	switch {
	case errors.Is(err, apperrors.ErrForbidden):
		c.JSON(http.StatusForbidden, gin.H{"error": "Forbidden"})
	case errors.Is(err, apperrors.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Restaurant not found"})
	default:
		logger.Error("Failed to generate "+report+" report", slog.String("error", err.Error()), slog.String("restaurant_id", restaurantID))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate report"})
	}
}
