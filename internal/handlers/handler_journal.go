package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/restopilot/resto_books_app/internal/apperrors"
	portssvc "github.com/restopilot/resto_books_app/internal/core/ports/services"
	"github.com/restopilot/resto_books_app/internal/core/services"
	"github.com/restopilot/resto_books_app/internal/dto"
	"github.com/restopilot/resto_books_app/internal/middleware"
	"github.com/restopilot/resto_books_app/internal/utils/accounting"
)

// journalHandler handles HTTP requests related to journal entries.
type journalHandler struct {
	journalService portssvc.JournalSvcFacade
}

// newJournalHandler creates a new journalHandler.
func newJournalHandler(js portssvc.JournalSvcFacade) *journalHandler {
	return &journalHandler{
		journalService: js,
	}
}

// registerJournalRoutes registers journal routes nested under a restaurant.
// The account statement route lives here rather than on the account handler
// because statement rows are journal lines.
func registerJournalRoutes(rg *gin.RouterGroup, journalService portssvc.JournalSvcFacade) {
	h := newJournalHandler(journalService)

	entries := rg.Group("/journal-entries")
	{
		entries.POST("", h.createEntry)
		entries.GET("", h.listEntries)
		entries.GET("/:entry_id", h.getEntry)
		entries.POST("/:entry_id/validate", h.validateEntry)
		entries.POST("/:entry_id/reverse", h.reverseEntry)
		entries.DELETE("/:entry_id", h.deleteEntry)
	}

	rg.GET("/accounts/:account_id/statement", h.listLinesByAccount)
}

// createEntry godoc
// @Summary Create a journal entry
// @Description Creates a balanced journal entry with at least two lines. Posts as VALIDATED unless draft is set.
// @Tags journal-entries
// @Accept  json
// @Produce  json
// @Param restaurant_id path string true "Restaurant ID"
// @Param entry body dto.CreateJournalEntryRequest true "Entry with lines"
// @Success 201 {object} dto.JournalEntryResponse
// @Failure 400 {object} map[string]string "Invalid or unbalanced entry"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Forbidden"
// @Failure 500 {object} map[string]string "Failed to create entry"
// @Security ApiKeyAuth
// @Router /restaurants/{restaurant_id}/journal-entries [post]
func (h *journalHandler) createEntry(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	restaurantID := c.Param("restaurant_id")

	var req dto.CreateJournalEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CreateEntry", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	creatorUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("Creator user ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	logger = logger.With(slog.String("creator_user_id", creatorUserID), slog.String("restaurant_id", restaurantID))

	entry, err := h.journalService.CreateEntry(c.Request.Context(), restaurantID, req, creatorUserID)
	if err != nil {
		switch {
		case errors.Is(err, accounting.ErrEntryUnbalanced),
			errors.Is(err, accounting.ErrEntryMinLines),
			errors.Is(err, accounting.ErrEntryMinAccounts),
			errors.Is(err, services.ErrAccountNotFound),
			errors.Is(err, services.ErrDescriptionMissing),
			errors.Is(err, apperrors.ErrValidation):
			logger.Warn("Validation error creating entry", slog.String("error", err.Error()))
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, apperrors.ErrForbidden):
			c.JSON(http.StatusForbidden, gin.H{"error": "Forbidden"})
		case errors.Is(err, apperrors.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Restaurant not found"})
		default:
			logger.Error("Failed to create entry in service", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create entry"})
		}
		return
	}

	logger.Info("Journal entry created", slog.String("entry_id", entry.EntryID), slog.String("piece_number", entry.PieceNumber))
	c.JSON(http.StatusCreated, dto.ToJournalEntryResponse(entry))
}

// getEntry godoc
// @Summary Get a journal entry
// @Description Retrieves a journal entry with its lines.
// @Tags journal-entries
// @Produce  json
// @Param restaurant_id path string true "Restaurant ID"
// @Param entry_id path string true "Entry ID"
// @Success 200 {object} dto.JournalEntryResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Forbidden"
// @Failure 404 {object} map[string]string "Entry not found"
// @Failure 500 {object} map[string]string "Failed to retrieve entry"
// @Security ApiKeyAuth
// @Router /restaurants/{restaurant_id}/journal-entries/{entry_id} [get]
func (h *journalHandler) getEntry(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	restaurantID := c.Param("restaurant_id")
	entryID := c.Param("entry_id")

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	entry, err := h.journalService.GetEntryByID(c.Request.Context(), restaurantID, entryID, userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			logger.Warn("Entry not found", slog.String("entry_id", entryID))
			c.JSON(http.StatusNotFound, gin.H{"error": "Entry not found"})
			return
		}
		if errors.Is(err, apperrors.ErrForbidden) {
			c.JSON(http.StatusForbidden, gin.H{"error": "Forbidden"})
			return
		}
		logger.Error("Failed to get entry from service", slog.String("error", err.Error()), slog.String("entry_id", entryID))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve entry"})
		return
	}

	c.JSON(http.StatusOK, dto.ToJournalEntryResponse(entry))
}

// listEntries godoc
// @Summary List journal entries
// @Description Retrieves a cursor-paginated list of journal entries, newest first, with optional date, status and reference type filters.
// @Tags journal-entries
// @Produce  json
// @Param restaurant_id path string true "Restaurant ID"
// @Param limit query int false "Page size" default(20)
// @Param nextToken query string false "Cursor from the previous page"
// @Param fromDate query string false "Earliest entry date (YYYY-MM-DD)"
// @Param toDate query string false "Latest entry date (YYYY-MM-DD)"
// @Param status query string false "Entry status filter" Enums(DRAFT, VALIDATED, REVERSED)
// @Param referenceType query string false "Reference type filter" Enums(POS_SALE, EXPENSE_CLAIM, INVENTORY, PAYROLL, MANUAL)
// @Param includeReversals query bool false "Include reversed entries and their reversals" default(true)
// @Success 200 {object} dto.ListEntriesResponse
// @Failure 400 {object} map[string]string "Invalid query parameters"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Forbidden"
// @Failure 500 {object} map[string]string "Failed to list entries"
// @Security ApiKeyAuth
// @Router /restaurants/{restaurant_id}/journal-entries [get]
func (h *journalHandler) listEntries(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	restaurantID := c.Param("restaurant_id")

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var params dto.ListEntriesParams
	if err := c.ShouldBindQuery(&params); err != nil {
		logger.Warn("Failed to bind query for listEntries", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	page, err := h.journalService.ListEntries(c.Request.Context(), restaurantID, userID, params)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrValidation):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, apperrors.ErrForbidden):
			c.JSON(http.StatusForbidden, gin.H{"error": "Forbidden"})
		case errors.Is(err, apperrors.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Restaurant not found"})
		default:
			logger.Error("Failed to list entries from service", slog.String("error", err.Error()), slog.String("restaurant_id", restaurantID))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list entries"})
		}
		return
	}

	c.JSON(http.StatusOK, page)
}

// validateEntry godoc
// @Summary Validate a draft entry
// @Description Promotes a draft entry to VALIDATED, making it immutable and visible to reports.
// @Tags journal-entries
// @Produce  json
// @Param restaurant_id path string true "Restaurant ID"
// @Param entry_id path string true "Entry ID"
// @Success 200 {object} dto.JournalEntryResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Forbidden"
// @Failure 404 {object} map[string]string "Entry not found"
// @Failure 409 {object} map[string]string "Entry is not a draft"
// @Failure 500 {object} map[string]string "Failed to validate entry"
// @Security ApiKeyAuth
// @Router /restaurants/{restaurant_id}/journal-entries/{entry_id}/validate [post]
func (h *journalHandler) validateEntry(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	restaurantID := c.Param("restaurant_id")
	entryID := c.Param("entry_id")

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	entry, err := h.journalService.ValidateEntry(c.Request.Context(), restaurantID, entryID, userID)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Entry not found"})
		case errors.Is(err, apperrors.ErrConflict):
			logger.Warn("Entry is not a draft", slog.String("entry_id", entryID))
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		case errors.Is(err, apperrors.ErrForbidden):
			c.JSON(http.StatusForbidden, gin.H{"error": "Forbidden"})
		default:
			logger.Error("Failed to validate entry in service", slog.String("error", err.Error()), slog.String("entry_id", entryID))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to validate entry"})
		}
		return
	}

	logger.Info("Journal entry validated", slog.String("entry_id", entryID), slog.String("piece_number", entry.PieceNumber))
	c.JSON(http.StatusOK, dto.ToJournalEntryResponse(entry))
}

// reverseEntry godoc
// @Summary Reverse a validated entry
// @Description Creates a reversal entry mirroring the original with debit and credit sides swapped. The original is marked REVERSED.
// @Tags journal-entries
// @Produce  json
// @Param restaurant_id path string true "Restaurant ID"
// @Param entry_id path string true "Entry ID"
// @Success 201 {object} dto.JournalEntryResponse "The reversal entry"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Forbidden"
// @Failure 404 {object} map[string]string "Entry not found"
// @Failure 409 {object} map[string]string "Entry cannot be reversed"
// @Failure 500 {object} map[string]string "Failed to reverse entry"
// @Security ApiKeyAuth
// @Router /restaurants/{restaurant_id}/journal-entries/{entry_id}/reverse [post]
func (h *journalHandler) reverseEntry(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	restaurantID := c.Param("restaurant_id")
	entryID := c.Param("entry_id")

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	reversal, err := h.journalService.ReverseEntry(c.Request.Context(), restaurantID, entryID, userID)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Entry not found"})
		case errors.Is(err, apperrors.ErrConflict):
			logger.Warn("Entry cannot be reversed", slog.String("entry_id", entryID), slog.String("error", err.Error()))
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		case errors.Is(err, apperrors.ErrForbidden):
			c.JSON(http.StatusForbidden, gin.H{"error": "Forbidden"})
		default:
			logger.Error("Failed to reverse entry in service", slog.String("error", err.Error()), slog.String("entry_id", entryID))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to reverse entry"})
		}
		return
	}

	logger.Info("Journal entry reversed", slog.String("entry_id", entryID), slog.String("reversal_entry_id", reversal.EntryID))
	c.JSON(http.StatusCreated, dto.ToJournalEntryResponse(reversal))
}

// deleteEntry godoc
// @Summary Delete a draft entry
// @Description Removes a draft entry and its lines. Validated entries are immutable and must be reversed instead.
// @Tags journal-entries
// @Produce  json
// @Param restaurant_id path string true "Restaurant ID"
// @Param entry_id path string true "Entry ID"
// @Success 204 "Entry deleted"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Forbidden"
// @Failure 404 {object} map[string]string "Entry not found"
// @Failure 409 {object} map[string]string "Entry is not a draft"
// @Failure 500 {object} map[string]string "Failed to delete entry"
// @Security ApiKeyAuth
// @Router /restaurants/{restaurant_id}/journal-entries/{entry_id} [delete]
func (h *journalHandler) deleteEntry(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	restaurantID := c.Param("restaurant_id")
	entryID := c.Param("entry_id")

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	err := h.journalService.DeleteEntry(c.Request.Context(), restaurantID, entryID, userID)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Entry not found"})
		case errors.Is(err, services.ErrEntryImmutable), errors.Is(err, apperrors.ErrConflict):
			logger.Warn("Attempted to delete a non-draft entry", slog.String("entry_id", entryID))
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		case errors.Is(err, apperrors.ErrForbidden):
			c.JSON(http.StatusForbidden, gin.H{"error": "Forbidden"})
		default:
			logger.Error("Failed to delete entry in service", slog.String("error", err.Error()), slog.String("entry_id", entryID))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete entry"})
		}
		return
	}

	c.Status(http.StatusNoContent)
}

// listLinesByAccount godoc
// @Summary Get an account statement
// @Description Retrieves the validated journal lines of an account, newest first, each with its running balance.
// @Tags accounts
// @Produce  json
// @Param restaurant_id path string true "Restaurant ID"
// @Param account_id path string true "Account ID"
// @Param limit query int false "Page size" default(20)
// @Param nextToken query string false "Cursor from the previous page"
// @Success 200 {object} dto.ListLinesResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Forbidden"
// @Failure 404 {object} map[string]string "Account not found"
// @Failure 500 {object} map[string]string "Failed to retrieve statement"
// @Security ApiKeyAuth
// @Router /restaurants/{restaurant_id}/accounts/{account_id}/statement [get]
func (h *journalHandler) listLinesByAccount(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	restaurantID := c.Param("restaurant_id")
	accountID := c.Param("account_id")

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var params dto.ListLinesParams
	if err := c.ShouldBindQuery(&params); err != nil {
		logger.Warn("Failed to bind query for listLinesByAccount", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	page, err := h.journalService.ListLinesByAccount(c.Request.Context(), restaurantID, accountID, userID, params)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Account not found"})
		case errors.Is(err, apperrors.ErrForbidden):
			c.JSON(http.StatusForbidden, gin.H{"error": "Forbidden"})
		case errors.Is(err, apperrors.ErrValidation):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			logger.Error("Failed to list account lines from service", slog.String("error", err.Error()), slog.String("account_id", accountID))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve statement"})
		}
		return
	}

	c.JSON(http.StatusOK, page)
}
