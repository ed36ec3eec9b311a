package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/pumpsoft/fuel_station_backend/internal/apperrors"
	portssvc "github.com/pumpsoft/fuel_station_backend/internal/core/ports/services"
	"github.com/pumpsoft/fuel_station_backend/internal/dto"
	"github.com/pumpsoft/fuel_station_backend/internal/middleware"
)

// ledgerHandler handles HTTP requests for statements and reconciliation.
type ledgerHandler struct {
	ledgerService         portssvc.LedgerSvcFacade
	reconciliationService portssvc.ReconciliationSvcFacade
}

// newLedgerHandler creates a new ledgerHandler.
func newLedgerHandler(ledgerService portssvc.LedgerSvcFacade, reconciliationService portssvc.ReconciliationSvcFacade) *ledgerHandler {
	return &ledgerHandler{
		ledgerService:         ledgerService,
		reconciliationService: reconciliationService,
	}
}

// getStatement godoc
// @Summary Get an account statement
// @Description Returns the ordered ledger rows of an account between two dates with opening and closing balances
// @Tags ledger
// @Produce json
// @Param pump_id path string true "Pump ID"
// @Param account_id path string true "Account ID"
// @Param from query string true "Start date (YYYY-MM-DD)"
// @Param to query string true "End date (YYYY-MM-DD)"
// @Success 200 {object} dto.StatementResponse
// @Failure 400 {object} map[string]string "Invalid parameters"
// @Failure 404 {object} map[string]string "Account not found"
// @Router /pumps/{pump_id}/accounts/{account_id}/statement [get]
func (h *ledgerHandler) getStatement(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	pumpID := c.Param("pump_id")
	accountID := c.Param("account_id")

	var params dto.StatementParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid parameters, from and to dates are required (YYYY-MM-DD)"})
		return
	}

	statement, err := h.ledgerService.GetStatement(c.Request.Context(), pumpID, accountID, params.From, params.To)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Account not found"})
		case errors.Is(err, apperrors.ErrValidation):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			logger.Error("Failed to build statement", slog.String("error", err.Error()), slog.String("account_id", accountID))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to build statement"})
		}
		return
	}

	c.JSON(http.StatusOK, statement)
}

// getLedgerEntry godoc
// @Summary Get a ledger entry
// @Description Retrieves one posted ledger entry
// @Tags ledger
// @Produce json
// @Param pump_id path string true "Pump ID"
// @Param entry_id path string true "Ledger entry ID"
// @Success 200 {object} dto.LedgerEntryResponse
// @Failure 404 {object} map[string]string "Ledger entry not found"
// @Router /pumps/{pump_id}/ledger-entries/{entry_id} [get]
func (h *ledgerHandler) getLedgerEntry(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	pumpID := c.Param("pump_id")
	entryID := c.Param("entry_id")

	entry, err := h.ledgerService.GetLedgerEntry(c.Request.Context(), pumpID, entryID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Ledger entry not found"})
			return
		}
		logger.Error("Failed to get ledger entry", slog.String("error", err.Error()), slog.String("entry_id", entryID))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve ledger entry"})
		return
	}

	c.JSON(http.StatusOK, dto.ToLedgerEntryResponse(*entry))
}

// reconcileEntry godoc
// @Summary Reconcile a ledger entry
// @Description Flags the entry as matched against an external statement and moves the account's reconciled balance forward
// @Tags ledger
// @Accept json
// @Produce json
// @Param pump_id path string true "Pump ID"
// @Param entry_id path string true "Ledger entry ID"
// @Param request body dto.ReconcileRequest false "Reconciliation time (default now)"
// @Success 200 {object} dto.LedgerEntryResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Ledger entry not found"
// @Failure 409 {object} map[string]string "Entry is not reconcilable"
// @Router /pumps/{pump_id}/ledger-entries/{entry_id}/reconcile [post]
func (h *ledgerHandler) reconcileEntry(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	pumpID := c.Param("pump_id")
	entryID := c.Param("entry_id")

	// The body is optional, asOf defaults to now.
	var req dto.ReconcileRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			logger.Error("Failed to bind JSON for reconcileEntry", slog.String("error", err.Error()))
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
			return
		}
	}

	userID, ok := middleware.GetEmployeeIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	asOf := time.Now().UTC()
	if req.AsOf != nil {
		asOf = *req.AsOf
	}

	entry, err := h.reconciliationService.Reconcile(c.Request.Context(), pumpID, entryID, userID, asOf)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Ledger entry not found"})
		case errors.Is(err, apperrors.ErrInvalidState):
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		default:
			logger.Error("Failed to reconcile ledger entry", slog.String("error", err.Error()), slog.String("entry_id", entryID))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to reconcile ledger entry"})
		}
		return
	}

	logger.Info("Ledger entry reconciled", slog.String("entry_id", entryID))
	c.JSON(http.StatusOK, dto.ToLedgerEntryResponse(*entry))
}

// listUnreconciled godoc
// @Summary List unreconciled entries
// @Description Lists an account's posted entries not yet matched against a statement
// @Tags ledger
// @Produce json
// @Param pump_id path string true "Pump ID"
// @Param account_id path string true "Account ID"
// @Success 200 {object} dto.UnreconciledResponse
// @Failure 404 {object} map[string]string "Account not found"
// @Router /pumps/{pump_id}/accounts/{account_id}/unreconciled [get]
func (h *ledgerHandler) listUnreconciled(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	pumpID := c.Param("pump_id")
	accountID := c.Param("account_id")

	entries, err := h.reconciliationService.Unreconciled(c.Request.Context(), pumpID, accountID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Account not found"})
			return
		}
		logger.Error("Failed to list unreconciled entries", slog.String("error", err.Error()), slog.String("account_id", accountID))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list unreconciled entries"})
		return
	}

	c.JSON(http.StatusOK, dto.UnreconciledResponse{
		AccountID: accountID,
		Entries:   dto.ToLedgerEntryResponses(entries),
	})
}

// registerLedgerRoutes registers statement and reconciliation routes
func registerLedgerRoutes(rg *gin.RouterGroup, ledgerService portssvc.LedgerSvcFacade, reconciliationService portssvc.ReconciliationSvcFacade) {
	handler := newLedgerHandler(ledgerService, reconciliationService)

	accounts := rg.Group("/accounts")
	{
		accounts.GET("/:account_id/statement", handler.getStatement)
		accounts.GET("/:account_id/unreconciled", handler.listUnreconciled)
	}

	entries := rg.Group("/ledger-entries")
	{
		entries.GET("/:entry_id", handler.getLedgerEntry)
		entries.POST("/:entry_id/reconcile", handler.reconcileEntry)
	}
}
